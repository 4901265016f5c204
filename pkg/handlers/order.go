package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gitlab.com/goxp/cloud0/ginext"
	"gitlab.com/goxp/cloud0/logger"

	"logiroute/ms-delivery/pkg/model"
	"logiroute/ms-delivery/pkg/service"
	"logiroute/ms-delivery/pkg/utils"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

type OrderHandlers struct {
	service service.OrderServiceInterface
}

func NewOrderHandlers(service service.OrderServiceInterface) *OrderHandlers {
	return &OrderHandlers{service: service}
}

func (h *OrderHandlers) CreateOrder(r *ginext.Request) (*ginext.Response, error) {
	log := logger.WithCtx(r.GinCtx, "OrderHandlers.CreateOrder")

	caller, err := currentCaller(r)
	if err != nil {
		return nil, err
	}

	req := model.OrderBody{}
	if err = bindValid(r.GinCtx, r, &req); err != nil {
		return nil, err
	}

	rs, err := h.service.CreateOrder(r.Context(), caller, req)
	if err != nil {
		return nil, err
	}
	log.WithField("order_id", rs.ID).Info("order created")

	return ginext.NewResponseData(http.StatusCreated, rs), nil
}

// orderParam binds list filters, uuid filters are parsed by hand.
func orderParam(r *ginext.Request) (req model.OrderParam, err error) {
	if err = bindValid(r.GinCtx, r, &req); err != nil {
		return req, err
	}
	if req.MerchantID, err = uuidQuery(r, "merchant_id"); err != nil {
		return req, err
	}
	if req.DeliveryPersonID, err = uuidQuery(r, "delivery_person_id"); err != nil {
		return req, err
	}
	return req, nil
}

func (h *OrderHandlers) GetListOrder(r *ginext.Request) (*ginext.Response, error) {
	caller, err := currentCaller(r)
	if err != nil {
		return nil, err
	}
	req, err := orderParam(r)
	if err != nil {
		return nil, err
	}

	rs, err := h.service.GetListOrder(r.Context(), caller, req)
	if err != nil {
		return nil, err
	}

	return &ginext.Response{
		Code: http.StatusOK,
		GeneralBody: &ginext.GeneralBody{
			Data: rs.Data,
			Meta: rs.Meta,
		},
	}, nil
}

func (h *OrderHandlers) GetOneOrder(r *ginext.Request) (*ginext.Response, error) {
	caller, err := currentCaller(r)
	if err != nil {
		return nil, err
	}
	id, err := uuidParam(r, "id")
	if err != nil {
		return nil, err
	}

	rs, err := h.service.GetOneOrder(r.Context(), caller, id)
	if err != nil {
		return nil, err
	}
	return ok(rs), nil
}

func (h *OrderHandlers) GetOrderHistory(r *ginext.Request) (*ginext.Response, error) {
	caller, err := currentCaller(r)
	if err != nil {
		return nil, err
	}
	id, err := uuidParam(r, "id")
	if err != nil {
		return nil, err
	}

	rs, err := h.service.GetOrderHistory(r.Context(), caller, id)
	if err != nil {
		return nil, err
	}
	return ok(rs), nil
}

func (h *OrderHandlers) UpdateOrder(r *ginext.Request) (*ginext.Response, error) {
	caller, err := currentCaller(r)
	if err != nil {
		return nil, err
	}
	id, err := uuidParam(r, "id")
	if err != nil {
		return nil, err
	}

	req := model.OrderBody{}
	if err = bindValid(r.GinCtx, r, &req); err != nil {
		return nil, err
	}

	rs, err := h.service.UpdateOrder(r.Context(), caller, id, req)
	if err != nil {
		return nil, err
	}
	return ok(rs), nil
}

func (h *OrderHandlers) UpdateStatus(r *ginext.Request) (*ginext.Response, error) {
	log := logger.WithCtx(r.GinCtx, "OrderHandlers.UpdateStatus")

	caller, err := currentCaller(r)
	if err != nil {
		return nil, err
	}
	id, err := uuidParam(r, "id")
	if err != nil {
		return nil, err
	}

	req := model.OrderStatusBody{}
	if err = bindValid(r.GinCtx, r, &req); err != nil {
		return nil, err
	}

	rs, err := h.service.UpdateStatus(r.Context(), caller, id, req)
	if err != nil {
		return nil, err
	}
	log.WithField("order_id", rs.ID).WithField("status", rs.Status).Info("order status changed")
	return ok(rs), nil
}

func (h *OrderHandlers) AssignOrder(r *ginext.Request) (*ginext.Response, error) {
	caller, err := currentCaller(r)
	if err != nil {
		return nil, err
	}
	id, err := uuidParam(r, "id")
	if err != nil {
		return nil, err
	}

	req := model.AssignOrderBody{}
	if err = bindValid(r.GinCtx, r, &req); err != nil {
		return nil, err
	}

	rs, err := h.service.AssignOrder(r.Context(), caller, id, req)
	if err != nil {
		return nil, err
	}
	return ok(rs), nil
}

func (h *OrderHandlers) GetStats(r *ginext.Request) (*ginext.Response, error) {
	caller, err := currentCaller(r)
	if err != nil {
		return nil, err
	}

	rs, err := h.service.GetStats(r.Context(), caller)
	if err != nil {
		return nil, err
	}
	return ok(rs), nil
}

// ExportOrders streams the caller's orders as an xlsx attachment.
func (h *OrderHandlers) ExportOrders(c *gin.Context) {
	log := logger.WithCtx(c, "OrderHandlers.ExportOrders")
	r := &ginext.Request{GinCtx: c}

	caller, err := currentCaller(r)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"message": utils.MessageError()[http.StatusUnauthorized]})
		return
	}
	req, err := orderParam(r)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}

	buf, err := h.service.ExportOrders(c.Request.Context(), caller, req)
	if err != nil {
		log.WithError(err).Error("error_500: cannot export orders")
		c.JSON(http.StatusInternalServerError, gin.H{"message": utils.MessageError()[http.StatusInternalServerError]})
		return
	}

	filename := "orders_" + time.Now().Format("20060102_150405") + ".xlsx"
	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Data(http.StatusOK, xlsxContentType, buf.Bytes())
}
