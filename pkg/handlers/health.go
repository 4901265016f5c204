package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"logiroute/ms-delivery/pkg/model"
)

type HealthHandler struct {
	service     string
	environment string
}

func NewHealthHandler(service, environment string) *HealthHandler {
	return &HealthHandler{service: service, environment: environment}
}

func (h *HealthHandler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, model.HealthResponse{
		Status:      "ok",
		Timestamp:   time.Now().UTC(),
		Service:     h.service,
		Environment: h.environment,
	})
}
