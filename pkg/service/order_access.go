package service

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sendgrid/rest"
	"gitlab.com/goxp/cloud0/ginext"
	"gitlab.com/goxp/cloud0/logger"

	"logiroute/ms-delivery/pkg/model"
	"logiroute/ms-delivery/pkg/utils"
)

// OrderAccess answers whether a caller may see an order.
type OrderAccess interface {
	CanView(ctx context.Context, caller model.Caller, orderID uuid.UUID) error
}

// OrderClient asks ms-order for the order as the caller; ms-order applies its own visibility rules.
type OrderClient struct {
	baseURL string
	client  *rest.Client
}

func NewOrderClient(baseURL string, timeout time.Duration) OrderAccess {
	return &OrderClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &rest.Client{HTTPClient: &http.Client{Timeout: timeout}},
	}
}

func (c *OrderClient) CanView(ctx context.Context, caller model.Caller, orderID uuid.UUID) error {
	log := logger.WithCtx(ctx, "OrderClient.CanView").WithField("order_id", orderID)

	resp, err := c.client.SendWithContext(ctx, rest.Request{
		Method:  rest.Get,
		BaseURL: c.baseURL + "/orders/" + orderID.String(),
		Headers: map[string]string{
			utils.HeaderUserID:   caller.ID.String(),
			utils.HeaderUserRole: string(caller.Role),
		},
	})
	if err != nil {
		log.WithError(err).Error("error_503: order service unreachable")
		return ginext.NewError(http.StatusServiceUnavailable, utils.MessageError()[http.StatusServiceUnavailable])
	}
	switch resp.StatusCode {
	case http.StatusOK:
		return nil
	case http.StatusForbidden, http.StatusNotFound:
		return forbidden()
	}
	log.WithField("status", resp.StatusCode).Error("error_503: order service answered unexpectedly")
	return ginext.NewError(http.StatusServiceUnavailable, utils.MessageError()[http.StatusServiceUnavailable])
}
