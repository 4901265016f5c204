package service

import (
	"context"
	"encoding/json"
	"errors"
	"math"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"logiroute/ms-delivery/pkg/geo"
	"logiroute/ms-delivery/pkg/mocks"
	"logiroute/ms-delivery/pkg/model"
)

var defaultPos = model.LatLng{Lat: 4.6097, Lng: -74.0817}

func routeConfig() RouteConfig {
	return RouteConfig{DefaultPosition: defaultPos, CacheSize: 16, CacheTTL: time.Minute}
}

func leg(distance, duration float64) model.RouteLeg {
	return model.RouteLeg{
		Distance: model.TextValue{Value: distance},
		Duration: model.TextValue{Value: duration},
	}
}

func twoRoutes() []model.GoogleRoute {
	return []model.GoogleRoute{
		{Summary: "first", Legs: []model.RouteLeg{leg(1200, 300), leg(800, 200)}},
		{Summary: "second", Legs: []model.RouteLeg{leg(100, 10)}},
	}
}

func TestRouteService_CalculateRoute(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	current := model.LatLng{Lat: 4.65, Lng: -74.06}
	pickup := model.LatLng{Lat: 4.66, Lng: -74.05}
	delivery := model.LatLng{Lat: 4.70, Lng: -74.04}

	p := mocks.NewMockProvider(ctrl)
	p.EXPECT().Directions(gomock.Any(), geo.DirectionsRequest{
		Origin:      current,
		Destination: delivery,
		Waypoints:   []model.LatLng{pickup},
	}).Return(twoRoutes(), nil).Times(1)

	svc := NewRouteService(p, routeConfig())
	req := model.RouteRequest{CurrentPosition: &current, Pickup: &pickup, Delivery: &delivery}

	got, err := svc.CalculateRoute(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, "first", got.Route.Summary)
	assert.Equal(t, float64(2000), got.Distance)
	assert.Equal(t, float64(500), got.Duration)

	// second call is served from cache
	again, err := svc.CalculateRoute(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, got, again)

	stats := svc.CacheStats()
	assert.Equal(t, uint64(1), stats.Hits)
	assert.Equal(t, uint64(1), stats.Misses)
	assert.InDelta(t, 0.5, stats.HitRate, 1e-9)
	assert.Equal(t, 1, stats.Size)
}

func TestRouteService_InvalidCoordinatesUseDefault(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	delivery := model.LatLng{Lat: 4.70, Lng: -74.04}
	p := mocks.NewMockProvider(ctrl)
	p.EXPECT().Directions(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, req geo.DirectionsRequest) ([]model.GoogleRoute, error) {
			assert.Equal(t, defaultPos, req.Origin)
			assert.Equal(t, []model.LatLng{defaultPos}, req.Waypoints)
			assert.Equal(t, delivery, req.Destination)
			return twoRoutes(), nil
		})

	_, err := NewRouteService(p, routeConfig()).CalculateRoute(context.Background(), model.RouteRequest{
		CurrentPosition: &model.LatLng{Lat: 123, Lng: 0},
		Pickup:          &model.LatLng{Lat: math.NaN(), Lng: 0},
		Delivery:        &delivery,
	})
	require.NoError(t, err)
}

func TestRouteService_MissingCoordinatesUseDefault(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	delivery := model.LatLng{Lat: 4.70, Lng: -74.04}
	p := mocks.NewMockProvider(ctrl)
	p.EXPECT().Directions(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, req geo.DirectionsRequest) ([]model.GoogleRoute, error) {
			// an omitted origin must not become (0,0)
			assert.Equal(t, defaultPos, req.Origin)
			assert.Equal(t, []model.LatLng{defaultPos}, req.Waypoints)
			assert.Equal(t, delivery, req.Destination)
			return twoRoutes(), nil
		})

	var req model.RouteRequest
	require.NoError(t, json.Unmarshal([]byte(`{"delivery":{"lat":4.70,"lng":-74.04}}`), &req))
	_, err := NewRouteService(p, routeConfig()).CalculateRoute(context.Background(), req)
	require.NoError(t, err)
}

func TestRouteService_NoRoute(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	tests := []struct {
		name   string
		routes []model.GoogleRoute
		err    error
	}{
		{name: "provider error", err: errors.New("timeout")},
		{name: "zero results", err: geo.ErrNoRoute},
		{name: "empty list", routes: []model.GoogleRoute{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := mocks.NewMockProvider(ctrl)
			p.EXPECT().Directions(gomock.Any(), gomock.Any()).Return(tt.routes, tt.err).Times(2)
			svc := NewRouteService(p, routeConfig())

			_, err := svc.Directions(context.Background(), geo.DirectionsRequest{Origin: defaultPos, Destination: defaultPos})
			assert.ErrorIs(t, err, geo.ErrNoRoute)

			_, err = svc.CalculateRoute(context.Background(), model.RouteRequest{})
			require.Error(t, err)
			assert.Contains(t, err.Error(), "no route available")
			assert.Equal(t, 0, svc.CacheStats().Size)
		})
	}
}

func TestRouteService_OptimizeRoute(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	stops := []model.LatLng{{Lat: 4.61, Lng: -74.07}, {Lat: 4.62, Lng: -74.06}, {Lat: 4.63, Lng: -74.05}}
	routes := twoRoutes()
	routes[0].WaypointOrder = []int{1, 0}

	p := mocks.NewMockProvider(ctrl)
	p.EXPECT().Directions(gomock.Any(), geo.DirectionsRequest{
		Origin:      defaultPos,
		Destination: stops[2],
		Waypoints:   stops[:2],
		Optimize:    true,
	}).Return(routes, nil)

	svc := NewRouteService(p, routeConfig())
	got, err := svc.OptimizeRoute(context.Background(), model.OptimizeRouteRequest{Origin: &defaultPos, Stops: stops})
	require.NoError(t, err)
	assert.Equal(t, []int{1, 0}, got.WaypointOrder)
	assert.Equal(t, float64(2000), got.Distance)

	_, err = svc.OptimizeRoute(context.Background(), model.OptimizeRouteRequest{Origin: &defaultPos})
	assert.Error(t, err)
}

func TestRouteService_Geocode(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	p := mocks.NewMockProvider(ctrl)
	p.EXPECT().Geocode(gomock.Any(), "Carrera 7").Return([]model.GeocodeResult{{PlaceID: "p1"}}, nil)
	p.EXPECT().Geocode(gomock.Any(), "nowhere").Return(nil, geo.ErrNoResult)
	p.EXPECT().ReverseGeocode(gomock.Any(), defaultPos).Return(nil, errors.New("quota"))
	svc := NewRouteService(p, routeConfig())

	got, err := svc.Geocode(context.Background(), " Carrera 7 ")
	require.NoError(t, err)
	assert.Equal(t, "p1", got[0].PlaceID)

	_, err = svc.Geocode(context.Background(), "nowhere")
	assert.Error(t, err)
	_, err = svc.Geocode(context.Background(), "  ")
	assert.Error(t, err)
	_, err = svc.ReverseGeocode(context.Background(), defaultPos)
	assert.Error(t, err)
	_, err = svc.ReverseGeocode(context.Background(), model.LatLng{Lat: 100})
	assert.Error(t, err)
}
