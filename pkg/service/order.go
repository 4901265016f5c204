package service

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"gitlab.com/goxp/cloud0/ginext"
	"gitlab.com/goxp/cloud0/logger"
	"golang.org/x/sync/errgroup"
	"gorm.io/datatypes"

	"logiroute/ms-delivery/pkg/events"
	"logiroute/ms-delivery/pkg/metrics"
	"logiroute/ms-delivery/pkg/model"
	"logiroute/ms-delivery/pkg/repo"
	"logiroute/ms-delivery/pkg/utils"
	"logiroute/ms-delivery/pkg/valid"
)

type OrderService struct {
	repo      repo.PGInterface
	publisher events.Publisher
}

func NewOrderService(repo repo.PGInterface, publisher events.Publisher) OrderServiceInterface {
	return &OrderService{repo: repo, publisher: publisher}
}

type OrderServiceInterface interface {
	CreateOrder(ctx context.Context, caller model.Caller, req model.OrderBody) (rs model.Order, err error)
	GetListOrder(ctx context.Context, caller model.Caller, req model.OrderParam) (rs model.ListOrderResponse, err error)
	GetOneOrder(ctx context.Context, caller model.Caller, id uuid.UUID) (rs model.Order, err error)
	GetOrderHistory(ctx context.Context, caller model.Caller, id uuid.UUID) (rs []model.OrderHistory, err error)
	UpdateOrder(ctx context.Context, caller model.Caller, id uuid.UUID, req model.OrderBody) (rs model.Order, err error)
	UpdateStatus(ctx context.Context, caller model.Caller, id uuid.UUID, req model.OrderStatusBody) (rs model.Order, err error)
	AssignOrder(ctx context.Context, caller model.Caller, id uuid.UUID, req model.AssignOrderBody) (rs model.Order, err error)
	GetStats(ctx context.Context, caller model.Caller) (rs model.OrderStats, err error)
	ExportOrders(ctx context.Context, caller model.Caller, req model.OrderParam) (*bytes.Buffer, error)
}

func badRequest(msg string) error {
	return ginext.NewError(http.StatusBadRequest, msg)
}

// coordinates accepts both values or neither.
func coordinates(lat, lng *float64) (*float64, *float64, error) {
	if lat == nil && lng == nil {
		return nil, nil, nil
	}
	if lat == nil || lng == nil || !(model.LatLng{Lat: *lat, Lng: *lng}).Valid() {
		return nil, nil, badRequest(utils.MESS_INVALID_COORDINATE)
	}
	return lat, lng, nil
}

// canView mirrors the list scope for a single order.
func canView(caller model.Caller, order model.Order) bool {
	switch caller.Role {
	case model.RoleAdmin, model.RoleLogisticsTechnician:
		return true
	case model.RoleMerchant:
		return order.MerchantID == caller.ID
	case model.RoleDeliveryPerson:
		if order.DeliveryPersonID == nil {
			return order.Status == model.OrderStatusPending
		}
		return *order.DeliveryPersonID == caller.ID
	}
	return false
}

func snapshot(order model.Order) datatypes.JSON {
	order.Merchant = nil
	order.DeliveryPerson = nil
	b, err := json.Marshal(order)
	if err != nil {
		return nil
	}
	return datatypes.JSON(b)
}

func (s *OrderService) publish(ctx context.Context, eventType string, order model.Order, from model.OrderStatus, worker uuid.UUID) {
	log := logger.WithCtx(ctx, "OrderService.publish")

	err := s.publisher.Publish(ctx, order.ID.String(), model.OrderEvent{
		Type:             eventType,
		OrderID:          order.ID,
		MerchantID:       order.MerchantID,
		DeliveryPersonID: order.DeliveryPersonID,
		FromStatus:       from,
		Status:           order.Status,
		Worker:           worker,
		OccurredAt:       time.Now().UTC(),
	})
	metrics.RecordOrderEvent(eventType, err)
	if err != nil {
		// the DB write already committed, the event is best effort
		log.WithError(err).WithField("order_id", order.ID).Error("publish order event")
	}
}

func (s *OrderService) CreateOrder(ctx context.Context, caller model.Caller, req model.OrderBody) (rs model.Order, err error) {
	log := logger.WithCtx(ctx, "OrderService.CreateOrder")

	if err = utils.CheckPermission(ctx, caller, uuid.Nil, model.RoleMerchant, model.RoleAdmin); err != nil {
		return rs, err
	}

	merchantID := caller.ID
	if caller.Role == model.RoleAdmin {
		if req.MerchantID == nil {
			log.Error("error_400: admin must pass merchant_id")
			return rs, badRequest("merchant_id is required")
		}
		merchant, err := s.repo.GetOneUserByID(ctx, *req.MerchantID, nil)
		if err != nil {
			return rs, err
		}
		if merchant.Role != model.RoleMerchant {
			return rs, badRequest("merchant_id is not a merchant")
		}
		merchantID = merchant.ID
	}

	priority := model.PriorityNormal
	if p := valid.String(req.Priority); p != "" {
		if !model.IsValidPriority(p) {
			log.WithField("priority", p).Error("error_400: invalid priority")
			return rs, badRequest("Invalid priority")
		}
		priority = model.OrderPriority(p)
	}

	lat, lng, err := coordinates(req.Latitude, req.Longitude)
	if err != nil {
		return rs, err
	}
	pickupLat, pickupLng, err := coordinates(req.PickupLatitude, req.PickupLongitude)
	if err != nil {
		return rs, err
	}

	rs = model.Order{
		MerchantID:      merchantID,
		CustomerName:    strings.TrimSpace(valid.String(req.CustomerName)),
		CustomerPhone:   strings.TrimSpace(valid.String(req.CustomerPhone)),
		PickupAddress:   valid.String(req.PickupAddress),
		PickupLatitude:  pickupLat,
		PickupLongitude: pickupLng,
		DeliveryAddress: strings.TrimSpace(valid.String(req.DeliveryAddress)),
		Latitude:        lat,
		Longitude:       lng,
		ScheduledAt:     req.ScheduledAt,
		Status:          model.OrderStatusPending,
		Priority:        priority,
		Notes:           valid.String(req.Notes),
	}
	if rs.CustomerName == "" || rs.CustomerPhone == "" || rs.DeliveryAddress == "" {
		return rs, badRequest(utils.MessageError()[http.StatusBadRequest])
	}
	rs.CreatorID = caller.ID
	rs.UpdaterID = caller.ID

	err = s.repo.Transaction(ctx, func(rp repo.PGInterface) error {
		if err := rp.CreateOrder(ctx, &rs, nil); err != nil {
			return err
		}
		return rp.LogHistory(ctx, &model.OrderHistory{
			OrderID:  rs.ID,
			Action:   utils.ACTION_CREATE_ORDER,
			ToStatus: rs.Status,
			Data:     snapshot(rs),
			Worker:   caller.ID,
		}, nil)
	})
	if err != nil {
		return rs, err
	}

	s.publish(ctx, utils.EVENT_ORDER_CREATED, rs, "", caller.ID)
	return rs, nil
}

func (s *OrderService) GetListOrder(ctx context.Context, caller model.Caller, req model.OrderParam) (rs model.ListOrderResponse, err error) {
	if req.Status != "" && !model.IsValidOrderStatus(req.Status) {
		return rs, badRequest("Invalid status")
	}
	if req.Priority != "" && !model.IsValidPriority(req.Priority) {
		return rs, badRequest("Invalid priority")
	}
	return s.repo.GetListOrder(ctx, req, caller, nil)
}

func (s *OrderService) getVisibleOrder(ctx context.Context, caller model.Caller, id uuid.UUID) (rs model.Order, err error) {
	rs, err = s.repo.GetOneOrder(ctx, id, nil)
	if err != nil {
		return rs, err
	}
	if !canView(caller, rs) {
		logger.WithCtx(ctx, "OrderService.getVisibleOrder").
			WithField("user_id", caller.ID).WithField("order_id", id).
			Error("error_403: order out of caller scope")
		return rs, forbidden()
	}
	return rs, nil
}

func (s *OrderService) GetOneOrder(ctx context.Context, caller model.Caller, id uuid.UUID) (rs model.Order, err error) {
	return s.getVisibleOrder(ctx, caller, id)
}

func (s *OrderService) GetOrderHistory(ctx context.Context, caller model.Caller, id uuid.UUID) (rs []model.OrderHistory, err error) {
	if _, err = s.getVisibleOrder(ctx, caller, id); err != nil {
		return nil, err
	}
	return s.repo.GetOrderHistory(ctx, id, nil)
}

func (s *OrderService) UpdateOrder(ctx context.Context, caller model.Caller, id uuid.UUID, req model.OrderBody) (rs model.Order, err error) {
	log := logger.WithCtx(ctx, "OrderService.UpdateOrder")

	rs, err = s.repo.GetOneOrder(ctx, id, nil)
	if err != nil {
		return rs, err
	}
	if err = utils.CheckPermission(ctx, caller, rs.MerchantID, model.RoleAdmin); err != nil {
		return rs, err
	}
	if rs.Status.IsTerminal() {
		log.WithField("status", rs.Status).Error("error_409: order is closed")
		return rs, ginext.NewError(http.StatusConflict, "Order can no longer be changed")
	}

	if req.CustomerName != nil {
		rs.CustomerName = strings.TrimSpace(*req.CustomerName)
	}
	if req.CustomerPhone != nil {
		rs.CustomerPhone = strings.TrimSpace(*req.CustomerPhone)
	}
	if req.DeliveryAddress != nil {
		rs.DeliveryAddress = strings.TrimSpace(*req.DeliveryAddress)
	}
	if req.PickupAddress != nil {
		rs.PickupAddress = *req.PickupAddress
	}
	if req.Latitude != nil || req.Longitude != nil {
		if rs.Latitude, rs.Longitude, err = coordinates(req.Latitude, req.Longitude); err != nil {
			return rs, err
		}
	}
	if req.PickupLatitude != nil || req.PickupLongitude != nil {
		if rs.PickupLatitude, rs.PickupLongitude, err = coordinates(req.PickupLatitude, req.PickupLongitude); err != nil {
			return rs, err
		}
	}
	if req.ScheduledAt != nil {
		rs.ScheduledAt = req.ScheduledAt
	}
	if req.Priority != nil {
		if !model.IsValidPriority(*req.Priority) {
			return rs, badRequest("Invalid priority")
		}
		rs.Priority = model.OrderPriority(*req.Priority)
	}
	if req.Notes != nil {
		rs.Notes = *req.Notes
	}
	if rs.CustomerName == "" || rs.CustomerPhone == "" || rs.DeliveryAddress == "" {
		return rs, badRequest(utils.MessageError()[http.StatusBadRequest])
	}
	rs.UpdaterID = caller.ID

	err = s.repo.Transaction(ctx, func(rp repo.PGInterface) error {
		if err := rp.UpdateOrder(ctx, &rs, rs.Status, nil); err != nil {
			return err
		}
		return rp.LogHistory(ctx, &model.OrderHistory{
			OrderID:    rs.ID,
			Action:     utils.ACTION_UPDATE_ORDER,
			FromStatus: rs.Status,
			ToStatus:   rs.Status,
			Data:       snapshot(rs),
			Worker:     caller.ID,
		}, nil)
	})
	return rs, err
}

// checkStatusActor applies the per role rules on who may move an order to next.
func checkStatusActor(ctx context.Context, caller model.Caller, order *model.Order, next model.OrderStatus) error {
	switch caller.Role {
	case model.RoleAdmin, model.RoleLogisticsTechnician:
		return nil
	case model.RoleMerchant:
		if next != model.OrderStatusCancelled {
			return forbidden()
		}
		return utils.CheckPermission(ctx, caller, order.MerchantID)
	case model.RoleDeliveryPerson:
		if next == model.OrderStatusCancelled {
			return forbidden()
		}
		if order.DeliveryPersonID == nil {
			// accepting an open order claims it
			if next != model.OrderStatusAccepted {
				return forbidden()
			}
			order.DeliveryPersonID = &caller.ID
			return nil
		}
		return utils.CheckPermission(ctx, caller, *order.DeliveryPersonID)
	}
	return forbidden()
}

func (s *OrderService) UpdateStatus(ctx context.Context, caller model.Caller, id uuid.UUID, req model.OrderStatusBody) (rs model.Order, err error) {
	log := logger.WithCtx(ctx, "OrderService.UpdateStatus")

	next := valid.String(req.Status)
	if !model.IsValidOrderStatus(next) {
		log.WithField("status", next).Error("error_400: invalid status")
		return rs, badRequest("Invalid status")
	}

	rs, err = s.repo.GetOneOrder(ctx, id, nil)
	if err != nil {
		return rs, err
	}
	from := rs.Status
	if !from.CanTransition(model.OrderStatus(next)) {
		log.WithField("from", from).WithField("to", next).Error("error_409: invalid status transition")
		return rs, ginext.NewError(http.StatusConflict, "Cannot change status from "+string(from)+" to "+next)
	}
	if err = checkStatusActor(ctx, caller, &rs, model.OrderStatus(next)); err != nil {
		return rs, err
	}

	rs.Status = model.OrderStatus(next)
	rs.UpdaterID = caller.ID
	err = s.repo.Transaction(ctx, func(rp repo.PGInterface) error {
		if err := rp.UpdateOrder(ctx, &rs, from, nil); err != nil {
			return err
		}
		return rp.LogHistory(ctx, &model.OrderHistory{
			OrderID:    rs.ID,
			Action:     utils.ACTION_UPDATE_STATUS,
			FromStatus: from,
			ToStatus:   rs.Status,
			Note:       req.Note,
			Worker:     caller.ID,
		}, nil)
	})
	if err != nil {
		return rs, err
	}

	s.publish(ctx, utils.EVENT_ORDER_STATUS_CHANGED, rs, from, caller.ID)
	return rs, nil
}

func (s *OrderService) AssignOrder(ctx context.Context, caller model.Caller, id uuid.UUID, req model.AssignOrderBody) (rs model.Order, err error) {
	log := logger.WithCtx(ctx, "OrderService.AssignOrder")

	rs, err = s.repo.GetOneOrder(ctx, id, nil)
	if err != nil {
		return rs, err
	}
	if err = utils.CheckPermission(ctx, caller, rs.MerchantID, model.RoleAdmin, model.RoleLogisticsTechnician); err != nil {
		return rs, err
	}
	if rs.Status.IsTerminal() {
		log.WithField("status", rs.Status).Error("error_409: order is closed")
		return rs, ginext.NewError(http.StatusConflict, "Order can no longer be changed")
	}

	dp, err := s.repo.GetOneUserByID(ctx, *req.DeliveryPersonID, nil)
	if err != nil {
		return rs, err
	}
	if dp.Role != model.RoleDeliveryPerson {
		log.WithField("user_id", dp.ID).Error("error_400: assignee is not a delivery person")
		return rs, badRequest("delivery_person_id is not a delivery person")
	}

	rs.DeliveryPersonID = &dp.ID
	rs.DeliveryPerson = nil
	rs.UpdaterID = caller.ID
	err = s.repo.Transaction(ctx, func(rp repo.PGInterface) error {
		if err := rp.UpdateOrder(ctx, &rs, rs.Status, nil); err != nil {
			return err
		}
		data, _ := json.Marshal(map[string]string{"delivery_person_id": dp.ID.String()})
		return rp.LogHistory(ctx, &model.OrderHistory{
			OrderID:    rs.ID,
			Action:     utils.ACTION_ASSIGN_ORDER,
			FromStatus: rs.Status,
			ToStatus:   rs.Status,
			Data:       datatypes.JSON(data),
			Worker:     caller.ID,
		}, nil)
	})
	if err != nil {
		return rs, err
	}

	s.publish(ctx, utils.EVENT_ORDER_ASSIGNED, rs, rs.Status, caller.ID)
	return rs, nil
}

func (s *OrderService) GetStats(ctx context.Context, caller model.Caller) (rs model.OrderStats, err error) {
	log := logger.WithCtx(ctx, "OrderService.GetStats")

	rs.ByStatus = make(map[model.OrderStatus]int64, len(model.OrderStatuses))
	var mu sync.Mutex

	g, gctx := errgroup.WithContext(ctx)
	for _, status := range model.OrderStatuses {
		status := status
		g.Go(func() error {
			count, err := s.repo.CountOrderByStatus(gctx, caller, status, nil)
			if err != nil {
				return err
			}
			mu.Lock()
			rs.ByStatus[status] = count
			rs.Total += count
			mu.Unlock()
			return nil
		})
	}
	if err = g.Wait(); err != nil {
		log.WithError(err).Error("error_500: count orders in GetStats")
		return rs, ginext.NewError(http.StatusInternalServerError, utils.MessageError()[http.StatusInternalServerError])
	}
	return rs, nil
}
