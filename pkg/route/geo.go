package route

import (
	"strings"

	"gitlab.com/goxp/cloud0/ginext"
	"gitlab.com/goxp/cloud0/logger"

	"logiroute/ms-delivery/conf"
	"logiroute/ms-delivery/pkg/geo"
	"logiroute/ms-delivery/pkg/handlers"
	"logiroute/ms-delivery/pkg/model"
	service2 "logiroute/ms-delivery/pkg/service"
	"logiroute/ms-delivery/pkg/store"
)

// newTrackingStore picks the backend named by TRACKING_STORE.
func newTrackingStore(cfg conf.AppConfig) store.TrackingStore {
	if strings.EqualFold(cfg.TrackingStore, "redis") {
		return store.NewRedisStore(store.NewRedisClient(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB), cfg.TrackingRetention)
	}
	return store.NewMemoryStore()
}

func NewGeoService() *Service {
	s := newService("MS Geo", "v1.0")
	log := logger.Tag("route.NewGeoService")

	provider := geo.NewGoogleClient(s.cfg.GeoProviderURL, s.cfg.GeoProviderAPIKey, s.cfg.GeoProviderTimeout)
	routeService := service2.NewRouteService(provider, service2.RouteConfig{
		DefaultPosition: model.LatLng{Lat: s.cfg.DefaultLat, Lng: s.cfg.DefaultLng},
		CacheSize:       s.cfg.RouteCacheSize,
		CacheTTL:        s.cfg.RouteCacheTTL,
	})

	trackingStore := newTrackingStore(s.cfg)
	sweeper := store.NewSweeper(trackingStore, s.cfg.TrackingRetention)
	if err := sweeper.Start(s.cfg.TrackingSweepSpec); err != nil {
		log.WithError(err).Error("tracking sweeper not started")
	} else {
		s.onClose(sweeper.Stop)
	}

	orderClient := service2.NewOrderClient(s.cfg.OrderServiceURL, s.cfg.GatewayTimeout)
	trackingService := service2.NewTrackingService(routeService, trackingStore, orderClient, s.cfg.RouteRecalcDebounce)
	s.onClose(trackingService.Close)

	geoHandle := handlers.NewGeoHandlers(routeService)
	trackingHandle := handlers.NewTrackingHandlers(trackingService)

	geoApi := s.Router.Group("/geo")
	geoApi.POST("/route", ginext.WrapHandler(geoHandle.CalculateRoute))
	geoApi.POST("/route/optimize", ginext.WrapHandler(geoHandle.OptimizeRoute))
	geoApi.GET("/geocode", ginext.WrapHandler(geoHandle.Geocode))
	geoApi.GET("/reverse-geocode", ginext.WrapHandler(geoHandle.ReverseGeocode))
	geoApi.GET("/cache/stats", ginext.WrapHandler(geoHandle.CacheStats))

	trackingApi := s.Router.Group("/tracking")
	trackingApi.POST("/start", ginext.WrapHandler(trackingHandle.StartTracking))
	trackingApi.GET("", ginext.WrapHandler(trackingHandle.ListTracking))
	trackingApi.GET("/:orderId/:deliveryPersonId", ginext.WrapHandler(trackingHandle.GetTracking))
	trackingApi.PUT("/:orderId/:deliveryPersonId/position", ginext.WrapHandler(trackingHandle.UpdatePosition))
	trackingApi.PUT("/:orderId/:deliveryPersonId/status", ginext.WrapHandler(trackingHandle.UpdateStatus))
	trackingApi.POST("/:orderId/:deliveryPersonId/recalculate", ginext.WrapHandler(trackingHandle.RequestRecalculation))
	trackingApi.DELETE("/:orderId/:deliveryPersonId", ginext.WrapHandler(trackingHandle.DeleteTracking))

	return s
}
