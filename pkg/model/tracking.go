package model

import (
	"time"

	"github.com/google/uuid"
)

type TrackingStatus string

const (
	TrackingEnRouteToPickup   TrackingStatus = "en_route_to_pickup"
	TrackingAtPickup          TrackingStatus = "at_pickup"
	TrackingPickedUp          TrackingStatus = "picked_up"
	TrackingEnRouteToDelivery TrackingStatus = "en_route_to_delivery"
	TrackingAtDelivery        TrackingStatus = "at_delivery"
	TrackingDelivered         TrackingStatus = "delivered"
)

// TrackingStatuses is the delivery stage sequence.
var TrackingStatuses = []TrackingStatus{
	TrackingEnRouteToPickup,
	TrackingAtPickup,
	TrackingPickedUp,
	TrackingEnRouteToDelivery,
	TrackingAtDelivery,
	TrackingDelivered,
}

func (s TrackingStatus) stage() int {
	for i, v := range TrackingStatuses {
		if v == s {
			return i
		}
	}
	return -1
}

func IsValidTrackingStatus(s string) bool {
	return TrackingStatus(s).stage() >= 0
}

// CanAdvance only allows moving forward; stages may be skipped.
func (s TrackingStatus) CanAdvance(to TrackingStatus) bool {
	from, next := s.stage(), to.stage()
	return from >= 0 && next > from
}

// HeadingToPickup is true until the parcel has been collected.
func (s TrackingStatus) HeadingToPickup() bool {
	return s.stage() < TrackingPickedUp.stage()
}

// DeliveryTracking is the live state of one delivery person on one order.
// It is keyed by (OrderID, DeliveryPersonID) and has no identity of its own.
type DeliveryTracking struct {
	OrderID           uuid.UUID      `json:"order_id"`
	DeliveryPersonID  uuid.UUID      `json:"delivery_person_id"`
	CurrentPosition   LatLng         `json:"current_position"`
	Pickup            LatLng         `json:"pickup"`
	Delivery          LatLng         `json:"delivery"`
	Route             *GoogleRoute   `json:"route,omitempty"`
	ETA               *time.Time     `json:"eta,omitempty"`
	DistanceRemaining float64        `json:"distance_remaining"`
	DurationRemaining float64        `json:"duration_remaining"`
	Status            TrackingStatus `json:"status"`
	StartedAt         time.Time      `json:"started_at"`
	UpdatedAt         time.Time      `json:"updated_at"`
}

type TrackingKey struct {
	OrderID          uuid.UUID
	DeliveryPersonID uuid.UUID
}

func (t DeliveryTracking) Key() TrackingKey {
	return TrackingKey{OrderID: t.OrderID, DeliveryPersonID: t.DeliveryPersonID}
}

type StartTrackingRequest struct {
	OrderID          *uuid.UUID `json:"order_id" valid:"Required"`
	DeliveryPersonID *uuid.UUID `json:"delivery_person_id"`
	CurrentPosition  *LatLng    `json:"current_position"`
	Pickup           *LatLng    `json:"pickup"`
	Delivery         *LatLng    `json:"delivery"`
}

type StartTrackingResponse struct {
	Tracking DeliveryTracking `json:"tracking"`
	RouteOK  bool             `json:"route_available"`
	Message  string           `json:"message,omitempty"`
}

type PositionUpdateRequest struct {
	Position *LatLng `json:"position"`
}

type TrackingStatusRequest struct {
	Status *string `json:"status" valid:"Required"`
}

type TrackingFilter struct {
	OrderID          *uuid.UUID `json:"order_id" form:"-"`
	DeliveryPersonID *uuid.UUID `json:"delivery_person_id" form:"-"`
}
