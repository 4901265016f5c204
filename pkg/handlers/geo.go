package handlers

import (
	"gitlab.com/goxp/cloud0/ginext"
	"gitlab.com/goxp/cloud0/logger"

	"logiroute/ms-delivery/pkg/model"
	"logiroute/ms-delivery/pkg/service"
	"logiroute/ms-delivery/pkg/valid"
)

type GeoHandlers struct {
	service service.RouteServiceInterface
}

func NewGeoHandlers(service service.RouteServiceInterface) *GeoHandlers {
	return &GeoHandlers{service: service}
}

func (h *GeoHandlers) CalculateRoute(r *ginext.Request) (*ginext.Response, error) {
	if _, err := currentCaller(r); err != nil {
		return nil, err
	}

	req := model.RouteRequest{}
	if err := bindValid(r.GinCtx, r, &req); err != nil {
		return nil, err
	}

	rs, err := h.service.CalculateRoute(r.Context(), req)
	if err != nil {
		return nil, err
	}
	return ok(rs), nil
}

func (h *GeoHandlers) OptimizeRoute(r *ginext.Request) (*ginext.Response, error) {
	log := logger.WithCtx(r.GinCtx, "GeoHandlers.OptimizeRoute")

	if _, err := currentCaller(r); err != nil {
		return nil, err
	}

	req := model.OptimizeRouteRequest{}
	if err := bindValid(r.GinCtx, r, &req); err != nil {
		return nil, err
	}

	rs, err := h.service.OptimizeRoute(r.Context(), req)
	if err != nil {
		return nil, err
	}
	log.WithField("stops", len(req.Stops)).WithField("order", rs.WaypointOrder).Info("route optimized")
	return ok(rs), nil
}

func (h *GeoHandlers) Geocode(r *ginext.Request) (*ginext.Response, error) {
	if _, err := currentCaller(r); err != nil {
		return nil, err
	}

	req := model.GeocodeParam{}
	if err := bindValid(r.GinCtx, r, &req); err != nil {
		return nil, err
	}

	rs, err := h.service.Geocode(r.Context(), req.Address)
	if err != nil {
		return nil, err
	}
	return ok(rs), nil
}

func (h *GeoHandlers) ReverseGeocode(r *ginext.Request) (*ginext.Response, error) {
	if _, err := currentCaller(r); err != nil {
		return nil, err
	}

	req := model.ReverseGeocodeParam{}
	if err := bindValid(r.GinCtx, r, &req); err != nil {
		return nil, err
	}

	rs, err := h.service.ReverseGeocode(r.Context(), model.LatLng{Lat: valid.Float64(req.Lat), Lng: valid.Float64(req.Lng)})
	if err != nil {
		return nil, err
	}
	return ok(rs), nil
}

func (h *GeoHandlers) CacheStats(r *ginext.Request) (*ginext.Response, error) {
	return ok(h.service.CacheStats()), nil
}
