package handlers

import (
	"net/http"

	"gitlab.com/goxp/cloud0/ginext"
	"gitlab.com/goxp/cloud0/logger"

	"logiroute/ms-delivery/pkg/model"
	"logiroute/ms-delivery/pkg/service"
)

type TrackingHandlers struct {
	service service.TrackingServiceInterface
}

func NewTrackingHandlers(service service.TrackingServiceInterface) *TrackingHandlers {
	return &TrackingHandlers{service: service}
}

func trackingKey(r *ginext.Request) (key model.TrackingKey, err error) {
	if key.OrderID, err = uuidParam(r, "orderId"); err != nil {
		return key, err
	}
	if key.DeliveryPersonID, err = uuidParam(r, "deliveryPersonId"); err != nil {
		return key, err
	}
	return key, nil
}

func (h *TrackingHandlers) StartTracking(r *ginext.Request) (*ginext.Response, error) {
	log := logger.WithCtx(r.GinCtx, "TrackingHandlers.StartTracking")

	caller, err := currentCaller(r)
	if err != nil {
		return nil, err
	}

	req := model.StartTrackingRequest{}
	if err = bindValid(r.GinCtx, r, &req); err != nil {
		return nil, err
	}

	rs, err := h.service.StartTracking(r.Context(), caller, req)
	if err != nil {
		return nil, err
	}
	log.WithField("order_id", rs.Tracking.OrderID).WithField("route_available", rs.RouteOK).Info("tracking started")

	return ginext.NewResponseData(http.StatusCreated, rs), nil
}

func (h *TrackingHandlers) ListTracking(r *ginext.Request) (*ginext.Response, error) {
	caller, err := currentCaller(r)
	if err != nil {
		return nil, err
	}

	filter := model.TrackingFilter{}
	if filter.OrderID, err = uuidQuery(r, "order_id"); err != nil {
		return nil, err
	}
	if filter.DeliveryPersonID, err = uuidQuery(r, "delivery_person_id"); err != nil {
		return nil, err
	}

	rs, err := h.service.ListTracking(r.Context(), caller, filter)
	if err != nil {
		return nil, err
	}
	return ok(rs), nil
}

func (h *TrackingHandlers) GetTracking(r *ginext.Request) (*ginext.Response, error) {
	caller, err := currentCaller(r)
	if err != nil {
		return nil, err
	}
	key, err := trackingKey(r)
	if err != nil {
		return nil, err
	}

	rs, err := h.service.GetTracking(r.Context(), caller, key)
	if err != nil {
		return nil, err
	}
	return ok(rs), nil
}

func (h *TrackingHandlers) UpdatePosition(r *ginext.Request) (*ginext.Response, error) {
	caller, err := currentCaller(r)
	if err != nil {
		return nil, err
	}
	key, err := trackingKey(r)
	if err != nil {
		return nil, err
	}

	req := model.PositionUpdateRequest{}
	if err = bindValid(r.GinCtx, r, &req); err != nil {
		return nil, err
	}

	rs, err := h.service.UpdatePosition(r.Context(), caller, key, req)
	if err != nil {
		return nil, err
	}
	return ok(rs), nil
}

func (h *TrackingHandlers) UpdateStatus(r *ginext.Request) (*ginext.Response, error) {
	caller, err := currentCaller(r)
	if err != nil {
		return nil, err
	}
	key, err := trackingKey(r)
	if err != nil {
		return nil, err
	}

	req := model.TrackingStatusRequest{}
	if err = bindValid(r.GinCtx, r, &req); err != nil {
		return nil, err
	}

	rs, err := h.service.UpdateStatus(r.Context(), caller, key, req)
	if err != nil {
		return nil, err
	}
	return ok(rs), nil
}

// RequestRecalculation accepts the request, the route is refreshed after the debounce window.
func (h *TrackingHandlers) RequestRecalculation(r *ginext.Request) (*ginext.Response, error) {
	caller, err := currentCaller(r)
	if err != nil {
		return nil, err
	}
	key, err := trackingKey(r)
	if err != nil {
		return nil, err
	}

	if err = h.service.RequestRecalculation(r.Context(), caller, key); err != nil {
		return nil, err
	}
	return ginext.NewResponseData(http.StatusAccepted, "recalculation scheduled"), nil
}

func (h *TrackingHandlers) DeleteTracking(r *ginext.Request) (*ginext.Response, error) {
	caller, err := currentCaller(r)
	if err != nil {
		return nil, err
	}
	key, err := trackingKey(r)
	if err != nil {
		return nil, err
	}

	if err = h.service.DeleteTracking(r.Context(), caller, key); err != nil {
		return nil, err
	}
	return ok(key.OrderID), nil
}
