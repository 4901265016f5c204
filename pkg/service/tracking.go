package service

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/google/uuid"
	"gitlab.com/goxp/cloud0/ginext"
	"gitlab.com/goxp/cloud0/logger"

	"logiroute/ms-delivery/pkg/geo"
	"logiroute/ms-delivery/pkg/model"
	"logiroute/ms-delivery/pkg/store"
	"logiroute/ms-delivery/pkg/utils"
	"logiroute/ms-delivery/pkg/valid"
)

type TrackingService struct {
	routes    RouteServiceInterface
	store     store.TrackingStore
	orders    OrderAccess
	debouncer *geo.Debouncer
	now       func() time.Time
}

// NewTrackingService builds the service; with a nil orders, merchants can not read tracking.
func NewTrackingService(routes RouteServiceInterface, st store.TrackingStore, orders OrderAccess, debounce time.Duration) TrackingServiceInterface {
	return &TrackingService{
		routes:    routes,
		store:     st,
		orders:    orders,
		debouncer: geo.NewDebouncer(debounce),
		now:       time.Now,
	}
}

type TrackingServiceInterface interface {
	StartTracking(ctx context.Context, caller model.Caller, req model.StartTrackingRequest) (rs model.StartTrackingResponse, err error)
	GetTracking(ctx context.Context, caller model.Caller, key model.TrackingKey) (rs model.DeliveryTracking, err error)
	ListTracking(ctx context.Context, caller model.Caller, filter model.TrackingFilter) (rs []model.DeliveryTracking, err error)
	UpdatePosition(ctx context.Context, caller model.Caller, key model.TrackingKey, req model.PositionUpdateRequest) (rs model.DeliveryTracking, err error)
	UpdateStatus(ctx context.Context, caller model.Caller, key model.TrackingKey, req model.TrackingStatusRequest) (rs model.DeliveryTracking, err error)
	RequestRecalculation(ctx context.Context, caller model.Caller, key model.TrackingKey) error
	DeleteTracking(ctx context.Context, caller model.Caller, key model.TrackingKey) error
	Close()
}

// canWrite: staff, or the delivery person the record belongs to.
func canWrite(ctx context.Context, caller model.Caller, dpID uuid.UUID) error {
	return utils.CheckPermission(ctx, caller, dpID, model.RoleAdmin, model.RoleLogisticsTechnician)
}

func (s *TrackingService) storeError(ctx context.Context, err error) error {
	if errors.Is(err, store.ErrNotFound) {
		return ginext.NewError(http.StatusNotFound, utils.MessageError()[http.StatusNotFound])
	}
	logger.WithCtx(ctx, "TrackingService.storeError").WithError(err).Error("error_500: tracking store")
	return ginext.NewError(http.StatusInternalServerError, utils.MessageError()[http.StatusInternalServerError])
}

// routeFor asks for the remaining leg(s): through pickup until the parcel is collected.
func (s *TrackingService) routeFor(ctx context.Context, t model.DeliveryTracking) (model.RouteResult, error) {
	req := geo.DirectionsRequest{Origin: t.CurrentPosition, Destination: t.Delivery}
	if t.Status.HeadingToPickup() {
		req.Waypoints = []model.LatLng{t.Pickup}
	}
	return s.routes.Directions(ctx, req)
}

func (s *TrackingService) applyRoute(t *model.DeliveryTracking, r model.RouteResult) {
	route := r.Route
	t.Route = &route
	t.DistanceRemaining = r.Distance
	t.DurationRemaining = r.Duration
	eta := s.now().Add(time.Duration(r.Duration) * time.Second)
	t.ETA = &eta
}

func (s *TrackingService) StartTracking(ctx context.Context, caller model.Caller, req model.StartTrackingRequest) (rs model.StartTrackingResponse, err error) {
	log := logger.WithCtx(ctx, "TrackingService.StartTracking")

	if req.OrderID == nil || *req.OrderID == uuid.Nil {
		return rs, badRequest("order_id is required")
	}
	dpID := caller.ID
	if req.DeliveryPersonID != nil {
		dpID = *req.DeliveryPersonID
	}
	if caller.Role != model.RoleDeliveryPerson && req.DeliveryPersonID == nil {
		return rs, badRequest("delivery_person_id is required")
	}
	if err = canWrite(ctx, caller, dpID); err != nil {
		return rs, err
	}

	now := s.now()
	t := model.DeliveryTracking{
		OrderID:          valid.UUID(req.OrderID),
		DeliveryPersonID: dpID,
		CurrentPosition:  s.routes.Sanitize(ctx, req.CurrentPosition),
		Pickup:           s.routes.Sanitize(ctx, req.Pickup),
		Delivery:         s.routes.Sanitize(ctx, req.Delivery),
		Status:           model.TrackingEnRouteToPickup,
		StartedAt:        now,
		UpdatedAt:        now,
	}

	rs.RouteOK = true
	route, err := s.routeFor(ctx, t)
	if err != nil {
		// tracking still starts, the route can be recalculated later
		log.WithError(err).WithField("order_id", t.OrderID).Warn(utils.MESS_NO_ROUTE_AVAILABLE)
		rs.RouteOK = false
		rs.Message = utils.MESS_NO_ROUTE_AVAILABLE
		t.DistanceRemaining = geo.HaversineMeters(t.CurrentPosition, t.Pickup) + geo.HaversineMeters(t.Pickup, t.Delivery)
	} else {
		s.applyRoute(&t, route)
	}

	if err = s.store.Save(ctx, t); err != nil {
		return rs, s.storeError(ctx, err)
	}
	rs.Tracking = t
	return rs, nil
}

// merchantOwns lets a merchant through only when ms-order shows them the order.
func (s *TrackingService) merchantOwns(ctx context.Context, caller model.Caller, orderID uuid.UUID) error {
	if s.orders == nil {
		return forbidden()
	}
	return s.orders.CanView(ctx, caller, orderID)
}

// canRead: staff, the delivery person themself, or the merchant owning the order.
func (s *TrackingService) canRead(ctx context.Context, caller model.Caller, t model.DeliveryTracking) error {
	if caller.Role == model.RoleMerchant {
		return s.merchantOwns(ctx, caller, t.OrderID)
	}
	return canWrite(ctx, caller, t.DeliveryPersonID)
}

func (s *TrackingService) GetTracking(ctx context.Context, caller model.Caller, key model.TrackingKey) (rs model.DeliveryTracking, err error) {
	rs, err = s.store.Get(ctx, key)
	if err != nil {
		return rs, s.storeError(ctx, err)
	}
	if err = s.canRead(ctx, caller, rs); err != nil {
		return model.DeliveryTracking{}, err
	}
	return rs, nil
}

func (s *TrackingService) ListTracking(ctx context.Context, caller model.Caller, filter model.TrackingFilter) (rs []model.DeliveryTracking, err error) {
	switch {
	case caller.Role.IsStaff():
	case caller.Role == model.RoleDeliveryPerson:
		filter.DeliveryPersonID = &caller.ID
	case caller.Role == model.RoleMerchant && filter.OrderID != nil:
		if err = s.merchantOwns(ctx, caller, *filter.OrderID); err != nil {
			return nil, err
		}
	default:
		return nil, forbidden()
	}

	rs, err = s.store.List(ctx, filter)
	if err != nil {
		return nil, s.storeError(ctx, err)
	}
	return rs, nil
}

// remaining estimates what is left from the current position by straight lines,
// keeping the pace of the last provider route when there is one.
func (s *TrackingService) remaining(t *model.DeliveryTracking) {
	var dist float64
	if t.Status.HeadingToPickup() {
		dist = geo.HaversineMeters(t.CurrentPosition, t.Pickup) + geo.HaversineMeters(t.Pickup, t.Delivery)
	} else {
		dist = geo.HaversineMeters(t.CurrentPosition, t.Delivery)
	}

	if t.DistanceRemaining > 0 && t.DurationRemaining > 0 {
		pace := t.DurationRemaining / t.DistanceRemaining
		t.DurationRemaining = dist * pace
		eta := s.now().Add(time.Duration(t.DurationRemaining) * time.Second)
		t.ETA = &eta
	}
	t.DistanceRemaining = dist
}

func (s *TrackingService) UpdatePosition(ctx context.Context, caller model.Caller, key model.TrackingKey, req model.PositionUpdateRequest) (rs model.DeliveryTracking, err error) {
	if err = canWrite(ctx, caller, key.DeliveryPersonID); err != nil {
		return rs, err
	}
	if req.Position == nil || !req.Position.Valid() {
		return rs, badRequest(utils.MESS_INVALID_COORDINATE)
	}

	rs, err = s.store.Get(ctx, key)
	if err != nil {
		return rs, s.storeError(ctx, err)
	}
	rs.CurrentPosition = *req.Position
	if rs.Status != model.TrackingDelivered {
		s.remaining(&rs)
	}
	rs.UpdatedAt = s.now()

	if err = s.store.Save(ctx, rs); err != nil {
		return rs, s.storeError(ctx, err)
	}
	return rs, nil
}

func (s *TrackingService) UpdateStatus(ctx context.Context, caller model.Caller, key model.TrackingKey, req model.TrackingStatusRequest) (rs model.DeliveryTracking, err error) {
	log := logger.WithCtx(ctx, "TrackingService.UpdateStatus")

	if err = canWrite(ctx, caller, key.DeliveryPersonID); err != nil {
		return rs, err
	}
	next := valid.String(req.Status)
	if !model.IsValidTrackingStatus(next) {
		return rs, badRequest("Invalid status")
	}

	rs, err = s.store.Get(ctx, key)
	if err != nil {
		return rs, s.storeError(ctx, err)
	}
	if !rs.Status.CanAdvance(model.TrackingStatus(next)) {
		log.WithField("from", rs.Status).WithField("to", next).Error("error_409: tracking status can only move forward")
		return rs, ginext.NewError(http.StatusConflict, "Cannot change status from "+string(rs.Status)+" to "+next)
	}

	rs.Status = model.TrackingStatus(next)
	now := s.now()
	if rs.Status == model.TrackingDelivered {
		rs.DistanceRemaining = 0
		rs.DurationRemaining = 0
		rs.ETA = &now
	} else {
		s.remaining(&rs)
	}
	rs.UpdatedAt = now

	if err = s.store.Save(ctx, rs); err != nil {
		return rs, s.storeError(ctx, err)
	}
	return rs, nil
}

// RequestRecalculation schedules a provider call; bursts for the same key collapse into one.
func (s *TrackingService) RequestRecalculation(ctx context.Context, caller model.Caller, key model.TrackingKey) error {
	if err := canWrite(ctx, caller, key.DeliveryPersonID); err != nil {
		return err
	}
	if _, err := s.store.Get(ctx, key); err != nil {
		return s.storeError(ctx, err)
	}

	s.debouncer.Trigger(key, func() {
		s.recalculate(context.Background(), key)
	})
	return nil
}

func (s *TrackingService) recalculate(ctx context.Context, key model.TrackingKey) {
	log := logger.WithCtx(ctx, "TrackingService.recalculate").
		WithField("order_id", key.OrderID).
		WithField("delivery_person_id", key.DeliveryPersonID)

	t, err := s.store.Get(ctx, key)
	if err != nil {
		log.WithError(err).Warn("tracking record gone before recalculation")
		return
	}
	if t.Status == model.TrackingDelivered {
		return
	}
	route, err := s.routeFor(ctx, t)
	if err != nil {
		log.WithError(err).Warn(utils.MESS_NO_ROUTE_AVAILABLE)
		return
	}

	// position may have moved while the provider answered
	latest, err := s.store.Get(ctx, key)
	if err != nil {
		return
	}
	s.applyRoute(&latest, route)
	latest.UpdatedAt = s.now()
	if err = s.store.Save(ctx, latest); err != nil {
		log.WithError(err).Error("error_500: save recalculated route")
	}
}

func (s *TrackingService) DeleteTracking(ctx context.Context, caller model.Caller, key model.TrackingKey) error {
	if err := canWrite(ctx, caller, key.DeliveryPersonID); err != nil {
		return err
	}
	if err := s.store.Delete(ctx, key); err != nil {
		return s.storeError(ctx, err)
	}
	return nil
}

// Close drops pending recalculations.
func (s *TrackingService) Close() {
	s.debouncer.Stop()
}
