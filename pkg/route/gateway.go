package route

import (
	"context"
	"time"

	"logiroute/ms-delivery/pkg/gateway"
	"logiroute/ms-delivery/pkg/middleware"
)

func NewGatewayService() *Service {
	s := newService("Gateway", "v1.0")

	limiter := middleware.NewRateLimiter(s.cfg.RateLimitRPS, s.cfg.RateLimitBurst)
	ctx, cancel := context.WithCancel(context.Background())
	limiter.StartCleanup(ctx, 5*time.Minute)
	s.onClose(cancel)

	proxy := gateway.NewProxy(map[string]string{
		"/auth":     s.cfg.AuthServiceURL,
		"/users":    s.cfg.UserServiceURL,
		"/orders":   s.cfg.OrderServiceURL,
		"/geo":      s.cfg.GeoServiceURL,
		"/tracking": s.cfg.GeoServiceURL,
	}, s.cfg.GatewayTimeout)

	s.Router.Use(middleware.GatewayAuth(s.cfg.JWTSecret))
	s.Router.Use(limiter.Handler())
	s.Router.NoRoute(proxy.Handle)

	return s
}
