package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "pending"
	OrderStatusAccepted  OrderStatus = "accepted"
	OrderStatusInTransit OrderStatus = "in_transit"
	OrderStatusDelivered OrderStatus = "delivered"
	OrderStatusCancelled OrderStatus = "cancelled"
)

// OrderStatuses is the declaration order of the order_status enum.
var OrderStatuses = []OrderStatus{
	OrderStatusPending, OrderStatusAccepted, OrderStatusInTransit, OrderStatusDelivered, OrderStatusCancelled,
}

var orderFlow = map[OrderStatus]OrderStatus{
	OrderStatusPending:   OrderStatusAccepted,
	OrderStatusAccepted:  OrderStatusInTransit,
	OrderStatusInTransit: OrderStatusDelivered,
}

func IsValidOrderStatus(s string) bool {
	for _, v := range OrderStatuses {
		if string(v) == s {
			return true
		}
	}
	return false
}

func (s OrderStatus) IsTerminal() bool {
	return s == OrderStatusDelivered || s == OrderStatusCancelled
}

// CanTransition allows only the next step of the delivery flow, or a
// cancellation while the order is still open.
func (s OrderStatus) CanTransition(to OrderStatus) bool {
	if s.IsTerminal() {
		return false
	}
	if to == OrderStatusCancelled {
		return true
	}
	return orderFlow[s] == to
}

type OrderPriority string

const (
	PriorityLow    OrderPriority = "low"
	PriorityNormal OrderPriority = "normal"
	PriorityHigh   OrderPriority = "high"
	PriorityUrgent OrderPriority = "urgent"
)

var OrderPriorities = []OrderPriority{PriorityLow, PriorityNormal, PriorityHigh, PriorityUrgent}

func IsValidPriority(p string) bool {
	for _, v := range OrderPriorities {
		if string(v) == p {
			return true
		}
	}
	return false
}

type Order struct {
	BaseModel
	MerchantID       uuid.UUID     `json:"merchant_id" sql:"index" gorm:"column:merchant_id;type:uuid;not null;" valid:"Required"`
	Merchant         *User         `json:"merchant,omitempty" gorm:"foreignKey:MerchantID"`
	CustomerName     string        `json:"customer_name" gorm:"column:customer_name;not null;"`
	CustomerPhone    string        `json:"customer_phone" gorm:"column:customer_phone;not null;"`
	PickupAddress    string        `json:"pickup_address" gorm:"column:pickup_address;null;"`
	PickupLatitude   *float64      `json:"pickup_latitude" gorm:"column:pickup_latitude;null;"`
	PickupLongitude  *float64      `json:"pickup_longitude" gorm:"column:pickup_longitude;null;"`
	DeliveryAddress  string        `json:"delivery_address" gorm:"column:delivery_address;not null;"`
	Latitude         *float64      `json:"latitude" gorm:"column:latitude;null;"`
	Longitude        *float64      `json:"longitude" gorm:"column:longitude;null;"`
	ScheduledAt      *time.Time    `json:"scheduled_at" sql:"index" gorm:"column:scheduled_at;null;"`
	Status           OrderStatus   `json:"status" sql:"index" gorm:"column:status;type:order_status;not null;default:'pending'"`
	Priority         OrderPriority `json:"priority" sql:"index" gorm:"column:priority;type:order_priority;not null;default:'normal'"`
	DeliveryPersonID *uuid.UUID    `json:"delivery_person_id" sql:"index" gorm:"column:delivery_person_id;type:uuid;null;"`
	DeliveryPerson   *User         `json:"delivery_person,omitempty" gorm:"foreignKey:DeliveryPersonID"`
	Notes            string        `json:"notes" gorm:"column:notes;null;"`
}

func (Order) TableName() string {
	return "orders"
}

// OrderBody is the request body of create and update.
type OrderBody struct {
	MerchantID      *uuid.UUID `json:"merchant_id"`
	CustomerName    *string    `json:"customer_name" valid:"Required"`
	CustomerPhone   *string    `json:"customer_phone" valid:"Required"`
	PickupAddress   *string    `json:"pickup_address"`
	PickupLatitude  *float64   `json:"pickup_latitude"`
	PickupLongitude *float64   `json:"pickup_longitude"`
	DeliveryAddress *string    `json:"delivery_address" valid:"Required"`
	Latitude        *float64   `json:"latitude"`
	Longitude       *float64   `json:"longitude"`
	ScheduledAt     *time.Time `json:"scheduled_at"`
	Priority        *string    `json:"priority"`
	Notes           *string    `json:"notes"`
}

type OrderStatusBody struct {
	Status *string `json:"status" valid:"Required"`
	Note   string  `json:"note"`
}

type AssignOrderBody struct {
	DeliveryPersonID *uuid.UUID `json:"delivery_person_id" valid:"Required"`
}

// OrderParam holds list filters, always combined with the caller scope.
type OrderParam struct {
	MerchantID       *uuid.UUID `json:"merchant_id" form:"-"`
	DeliveryPersonID *uuid.UUID `json:"delivery_person_id" form:"-"`
	Status           string     `json:"status" form:"status"`
	Priority         string     `json:"priority" form:"priority"`
	Search           string     `json:"search" form:"search"`
	DateFrom         *time.Time `json:"date_from" form:"date_from" time_format:"2006-01-02T15:04:05Z07:00"`
	DateTo           *time.Time `json:"date_to" form:"date_to" time_format:"2006-01-02T15:04:05Z07:00"`
	Available        bool       `json:"available" form:"available"`
	Sort             string     `json:"sort" form:"sort"`
	Pagination
}

type ListOrderResponse struct {
	Data []Order                `json:"data"`
	Meta map[string]interface{} `json:"meta"`
}

type OrderStats struct {
	Total    int64                 `json:"total"`
	ByStatus map[OrderStatus]int64 `json:"by_status"`
}

// OrderHistory keeps one row per change made to an order.
type OrderHistory struct {
	BaseModel
	OrderID    uuid.UUID      `json:"order_id" sql:"index" gorm:"column:order_id;type:uuid;not null;" valid:"Required"`
	Action     string         `json:"action" sql:"index" gorm:"column:action;not null;" valid:"Required"`
	FromStatus OrderStatus    `json:"from_status" gorm:"column:from_status;null;"`
	ToStatus   OrderStatus    `json:"to_status" gorm:"column:to_status;null;"`
	Note       string         `json:"note" gorm:"null"`
	Data       datatypes.JSON `json:"data" gorm:"null"`
	Worker     uuid.UUID      `json:"worker" sql:"index" gorm:"column:worker;type:uuid;not null;"`
}

func (OrderHistory) TableName() string {
	return "order_history"
}

// OrderEvent is published to the event bus on create and status change.
type OrderEvent struct {
	Type             string      `json:"type"`
	OrderID          uuid.UUID   `json:"order_id"`
	MerchantID       uuid.UUID   `json:"merchant_id"`
	DeliveryPersonID *uuid.UUID  `json:"delivery_person_id,omitempty"`
	FromStatus       OrderStatus `json:"from_status,omitempty"`
	Status           OrderStatus `json:"status"`
	Worker           uuid.UUID   `json:"worker"`
	OccurredAt       time.Time   `json:"occurred_at"`
}
