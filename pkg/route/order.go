package route

import (
	"gitlab.com/goxp/cloud0/ginext"
	"gitlab.com/goxp/cloud0/logger"

	"logiroute/ms-delivery/pkg/events"
	"logiroute/ms-delivery/pkg/handlers"
	service2 "logiroute/ms-delivery/pkg/service"
)

func NewOrderService() *Service {
	s := newService("MS Order", "v1.0")
	repoPG := newRepo(s.database())

	publisher := events.New(s.cfg.KafkaBroker, s.cfg.KafkaOrderTopic)
	s.onClose(func() {
		if err := publisher.Close(); err != nil {
			logger.Tag("route.NewOrderService").WithError(err).Error("close event publisher")
		}
	})

	orderService := service2.NewOrderService(repoPG, publisher)
	orderHandle := handlers.NewOrderHandlers(orderService)

	orderApi := s.Router.Group("/orders")
	orderApi.POST("", ginext.WrapHandler(orderHandle.CreateOrder))
	orderApi.GET("", ginext.WrapHandler(orderHandle.GetListOrder))
	orderApi.GET("/stats", ginext.WrapHandler(orderHandle.GetStats))
	orderApi.GET("/export", orderHandle.ExportOrders)
	orderApi.GET("/:id", ginext.WrapHandler(orderHandle.GetOneOrder))
	orderApi.GET("/:id/history", ginext.WrapHandler(orderHandle.GetOrderHistory))
	orderApi.PUT("/:id", ginext.WrapHandler(orderHandle.UpdateOrder))
	orderApi.PUT("/:id/status", ginext.WrapHandler(orderHandle.UpdateStatus))
	orderApi.PUT("/:id/assign", ginext.WrapHandler(orderHandle.AssignOrder))

	return s
}
