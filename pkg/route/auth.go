package route

import (
	"gitlab.com/goxp/cloud0/ginext"

	"logiroute/ms-delivery/pkg/handlers"
	service2 "logiroute/ms-delivery/pkg/service"
)

func NewAuthService() *Service {
	s := newService("MS Auth", "v1.0")
	repoPG := newRepo(s.database())

	authService := service2.NewAuthService(repoPG)
	authHandle := handlers.NewAuthHandlers(authService)

	authApi := s.Router.Group("/auth")
	authApi.POST("/register", ginext.WrapHandler(authHandle.Register))
	authApi.POST("/login", ginext.WrapHandler(authHandle.Login))
	authApi.POST("/refresh", ginext.WrapHandler(authHandle.Refresh))
	authApi.POST("/logout", ginext.WrapHandler(authHandle.Logout))
	authApi.GET("/profile", ginext.WrapHandler(authHandle.Profile))

	return s
}
