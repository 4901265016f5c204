package service

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
	"gitlab.com/goxp/cloud0/ginext"
	"gitlab.com/goxp/cloud0/logger"

	"logiroute/ms-delivery/pkg/geo"
	"logiroute/ms-delivery/pkg/metrics"
	"logiroute/ms-delivery/pkg/model"
	"logiroute/ms-delivery/pkg/utils"
)

// maxWaypoints is the provider limit on intermediate stops.
const maxWaypoints = 25

type RouteConfig struct {
	DefaultPosition model.LatLng
	CacheSize       int
	CacheTTL        time.Duration
}

type RouteService struct {
	provider   geo.Provider
	defaultPos model.LatLng
	cache      *expirable.LRU[string, model.RouteResult]
	stats      *metrics.CacheStats
}

func NewRouteService(provider geo.Provider, cfg RouteConfig) RouteServiceInterface {
	if cfg.CacheSize <= 0 {
		cfg.CacheSize = 512
	}
	return &RouteService{
		provider:   provider,
		defaultPos: cfg.DefaultPosition,
		cache:      expirable.NewLRU[string, model.RouteResult](cfg.CacheSize, nil, cfg.CacheTTL),
		stats:      &metrics.CacheStats{},
	}
}

type RouteServiceInterface interface {
	CalculateRoute(ctx context.Context, req model.RouteRequest) (rs model.RouteResult, err error)
	OptimizeRoute(ctx context.Context, req model.OptimizeRouteRequest) (rs model.RouteResult, err error)
	// Directions returns geo.ErrNoRoute untranslated so callers can degrade.
	Directions(ctx context.Context, req geo.DirectionsRequest) (rs model.RouteResult, err error)
	Geocode(ctx context.Context, address string) (rs []model.GeocodeResult, err error)
	ReverseGeocode(ctx context.Context, p model.LatLng) (rs []model.GeocodeResult, err error)
	Sanitize(ctx context.Context, p *model.LatLng) model.LatLng
	CacheStats() model.CacheStatsResponse
}

func noRoute() error {
	return ginext.NewError(http.StatusNotFound, utils.MESS_NO_ROUTE_AVAILABLE)
}

// Sanitize swaps missing or malformed coordinates for the configured default.
func (s *RouteService) Sanitize(ctx context.Context, p *model.LatLng) model.LatLng {
	res, ok := geo.Sanitize(p, s.defaultPos)
	if !ok {
		log := logger.WithCtx(ctx, "RouteService.Sanitize")
		if p == nil {
			log.Warn("missing coordinate, using default position")
		} else {
			log.WithField("lat", p.Lat).WithField("lng", p.Lng).Warn("invalid coordinate, using default position")
		}
	}
	return res
}

func cacheKey(req geo.DirectionsRequest) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%.5f,%.5f>%.5f,%.5f", req.Origin.Lat, req.Origin.Lng, req.Destination.Lat, req.Destination.Lng)
	for _, w := range req.Waypoints {
		fmt.Fprintf(&b, "|%.5f,%.5f", w.Lat, w.Lng)
	}
	if req.Optimize {
		b.WriteString("|opt")
	}
	return b.String()
}

// summarize keeps the first route and totals its legs.
func summarize(routes []model.GoogleRoute) model.RouteResult {
	first := routes[0]
	rs := model.RouteResult{Route: first, WaypointOrder: first.WaypointOrder}
	for _, leg := range first.Legs {
		rs.Distance += leg.Distance.Value
		rs.Duration += leg.Duration.Value
	}
	return rs
}

func (s *RouteService) Directions(ctx context.Context, req geo.DirectionsRequest) (rs model.RouteResult, err error) {
	log := logger.WithCtx(ctx, "RouteService.Directions")

	key := cacheKey(req)
	if cached, ok := s.cache.Get(key); ok {
		s.stats.Hit()
		return cached, nil
	}
	s.stats.Miss()

	routes, err := s.provider.Directions(ctx, req)
	if err != nil || len(routes) == 0 {
		log.WithError(err).WithField("request", key).Error("error_404: " + utils.MESS_NO_ROUTE_AVAILABLE)
		return rs, geo.ErrNoRoute
	}

	rs = summarize(routes)
	s.cache.Add(key, rs)
	return rs, nil
}

func (s *RouteService) CalculateRoute(ctx context.Context, req model.RouteRequest) (rs model.RouteResult, err error) {
	rs, err = s.Directions(ctx, geo.DirectionsRequest{
		Origin:      s.Sanitize(ctx, req.CurrentPosition),
		Destination: s.Sanitize(ctx, req.Delivery),
		Waypoints:   []model.LatLng{s.Sanitize(ctx, req.Pickup)},
	})
	if err != nil {
		return rs, noRoute()
	}
	return rs, nil
}

func (s *RouteService) OptimizeRoute(ctx context.Context, req model.OptimizeRouteRequest) (rs model.RouteResult, err error) {
	log := logger.WithCtx(ctx, "RouteService.OptimizeRoute")

	if len(req.Stops) == 0 || len(req.Stops) > maxWaypoints+1 {
		log.WithField("stops", len(req.Stops)).Error("error_400: stop count out of range")
		return rs, badRequest(fmt.Sprintf("stops must contain between 1 and %d points", maxWaypoints+1))
	}

	stops := make([]model.LatLng, 0, len(req.Stops))
	for i := range req.Stops {
		stops = append(stops, s.Sanitize(ctx, &req.Stops[i]))
	}

	rs, err = s.Directions(ctx, geo.DirectionsRequest{
		Origin:      s.Sanitize(ctx, req.Origin),
		Destination: stops[len(stops)-1],
		Waypoints:   stops[:len(stops)-1],
		Optimize:    true,
	})
	if err != nil {
		return rs, noRoute()
	}
	return rs, nil
}

func (s *RouteService) Geocode(ctx context.Context, address string) (rs []model.GeocodeResult, err error) {
	address = strings.TrimSpace(address)
	if address == "" {
		return nil, badRequest("address is required")
	}
	rs, err = s.provider.Geocode(ctx, address)
	if err != nil {
		return nil, geocodeError(ctx, err)
	}
	return rs, nil
}

func (s *RouteService) ReverseGeocode(ctx context.Context, p model.LatLng) (rs []model.GeocodeResult, err error) {
	if !p.Valid() {
		return nil, badRequest(utils.MESS_INVALID_COORDINATE)
	}
	rs, err = s.provider.ReverseGeocode(ctx, p)
	if err != nil {
		return nil, geocodeError(ctx, err)
	}
	return rs, nil
}

// geocodeError maps provider failures to HTTP errors.
func geocodeError(ctx context.Context, err error) error {
	if err == nil {
		return nil
	}
	log := logger.WithCtx(ctx, "geocodeError")
	if errors.Is(err, geo.ErrNoResult) {
		log.WithError(err).Error("error_404: geocoding returned nothing")
		return ginext.NewError(http.StatusNotFound, utils.MessageError()[http.StatusNotFound])
	}
	log.WithError(err).Error("error_503: geo provider failure")
	return ginext.NewError(http.StatusServiceUnavailable, utils.MessageError()[http.StatusServiceUnavailable])
}

func (s *RouteService) CacheStats() model.CacheStatsResponse {
	return model.CacheStatsResponse{
		Hits:    s.stats.Hits(),
		Misses:  s.stats.Misses(),
		HitRate: s.stats.HitRate(),
		Size:    s.cache.Len(),
	}
}
