package route

import (
	"gitlab.com/goxp/cloud0/ginext"

	"logiroute/ms-delivery/pkg/handlers"
	service2 "logiroute/ms-delivery/pkg/service"
)

func NewUserService() *Service {
	s := newService("MS User", "v1.0")
	repoPG := newRepo(s.database())

	userService := service2.NewUserService(repoPG)
	userHandle := handlers.NewUserHandlers(userService)

	userApi := s.Router.Group("/users")
	userApi.GET("", ginext.WrapHandler(userHandle.GetListUser))
	userApi.POST("", ginext.WrapHandler(userHandle.CreateUser))
	userApi.GET("/me", ginext.WrapHandler(userHandle.GetMe))
	userApi.GET("/:id", ginext.WrapHandler(userHandle.GetOneUser))
	userApi.PUT("/:id", ginext.WrapHandler(userHandle.UpdateUser))
	userApi.PUT("/:id/role", ginext.WrapHandler(userHandle.UpdateRole))
	userApi.DELETE("/:id", ginext.WrapHandler(userHandle.DeleteUser))

	return s
}
