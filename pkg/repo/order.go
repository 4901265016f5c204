package repo

import (
	"context"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"gitlab.com/goxp/cloud0/ginext"
	"gitlab.com/goxp/cloud0/logger"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"logiroute/ms-delivery/pkg/model"
	"logiroute/ms-delivery/pkg/utils"
)

func (r *RepoPG) CreateOrder(ctx context.Context, order *model.Order, tx *gorm.DB) error {
	log := logger.WithCtx(ctx, "RepoPG.CreateOrder")

	var cancel context.CancelFunc
	if tx == nil {
		tx, cancel = r.DBWithTimeout(ctx)
		defer cancel()
	}

	if err := tx.Omit(clause.Associations).Create(order).Error; err != nil {
		log.WithError(err).Error("error_500: create order in CreateOrder - RepoPG")
		return ginext.NewError(http.StatusInternalServerError, utils.MessageError()[http.StatusInternalServerError])
	}

	return nil
}

func (r *RepoPG) GetOneOrder(ctx context.Context, id uuid.UUID, tx *gorm.DB) (rs model.Order, err error) {
	log := logger.WithCtx(ctx, "RepoPG.GetOneOrder")

	var cancel context.CancelFunc
	if tx == nil {
		tx, cancel = r.DBWithTimeout(ctx)
		defer cancel()
	}

	if err = tx.Model(&model.Order{}).Where("id = ?", id).
		Preload("Merchant").
		Preload("DeliveryPerson").
		First(&rs).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			log.WithError(err).Error("error_404: record not found in GetOneOrder - RepoPG")
			return rs, ginext.NewError(http.StatusNotFound, utils.MessageError()[http.StatusNotFound])
		}
		log.WithError(err).Error("error_500: get one order in GetOneOrder - RepoPG")
		return rs, ginext.NewError(http.StatusInternalServerError, utils.MessageError()[http.StatusInternalServerError])
	}

	return rs, nil
}

// scopeOrder restricts the query to what the caller is allowed to see, then applies filters.
func scopeOrder(tx *gorm.DB, req model.OrderParam, caller model.Caller) *gorm.DB {
	switch caller.Role {
	case model.RoleMerchant:
		tx = tx.Where("merchant_id = ?", caller.ID)
	case model.RoleDeliveryPerson:
		if req.Available {
			tx = tx.Where("delivery_person_id IS NULL AND status = ?", model.OrderStatusPending)
		} else {
			tx = tx.Where("delivery_person_id = ?", caller.ID)
		}
	default:
		if req.MerchantID != nil {
			tx = tx.Where("merchant_id = ?", *req.MerchantID)
		}
		if req.DeliveryPersonID != nil {
			tx = tx.Where("delivery_person_id = ?", *req.DeliveryPersonID)
		}
		if req.Available {
			tx = tx.Where("delivery_person_id IS NULL")
		}
	}

	if req.Status != "" {
		tx = tx.Where("status = ?", req.Status)
	}
	if req.Priority != "" {
		tx = tx.Where("priority = ?", req.Priority)
	}
	if req.DateFrom != nil {
		tx = tx.Where("created_at >= ?", *req.DateFrom)
	}
	if req.DateTo != nil {
		tx = tx.Where("created_at <= ?", *req.DateTo)
	}
	if req.Search != "" {
		search := "%" + strings.ToLower(req.Search) + "%"
		tx = tx.Where("(lower(customer_name) LIKE ? OR customer_phone LIKE ? OR lower(delivery_address) LIKE ?)",
			search, search, search)
	}
	return tx
}

func orderSort(sort string) string {
	switch sort {
	case "created_at":
		return "created_at ASC"
	case "scheduled_at":
		return "scheduled_at ASC"
	case "-scheduled_at":
		return "scheduled_at DESC"
	case "priority":
		// urgent first
		return "CASE priority WHEN 'urgent' THEN 0 WHEN 'high' THEN 1 WHEN 'normal' THEN 2 ELSE 3 END, created_at DESC"
	default:
		return "created_at DESC"
	}
}

func (r *RepoPG) GetListOrder(ctx context.Context, req model.OrderParam, caller model.Caller, tx *gorm.DB) (rs model.ListOrderResponse, err error) {
	log := logger.WithCtx(ctx, "RepoPG.GetListOrder")

	var cancel context.CancelFunc
	if tx == nil {
		tx, cancel = r.DBWithTimeout(ctx)
		defer cancel()
	}

	page := r.GetPage(req.Page)
	pageSize := r.GetPageSize(req.PageSize)

	tx = scopeOrder(tx.Model(&model.Order{}), req, caller).Session(&gorm.Session{})

	var total int64
	if err = tx.Count(&total).Error; err != nil {
		log.WithError(err).Error("error_500: count order in GetListOrder - RepoPG")
		return rs, ginext.NewError(http.StatusInternalServerError, utils.MessageError()[http.StatusInternalServerError])
	}

	if err = tx.Order(orderSort(req.Sort)).
		Limit(pageSize).
		Offset(r.GetOffset(page, pageSize)).
		Find(&rs.Data).Error; err != nil {
		log.WithError(err).Error("error_500: get list order in GetListOrder - RepoPG")
		return rs, ginext.NewError(http.StatusInternalServerError, utils.MessageError()[http.StatusInternalServerError])
	}

	if rs.Meta, err = r.GetPaginationInfo("", tx, int(total), page, pageSize); err != nil {
		return rs, err
	}

	return rs, nil
}

func (r *RepoPG) GetAllOrderForExport(ctx context.Context, req model.OrderParam, caller model.Caller, tx *gorm.DB) (orders []model.Order, err error) {
	log := logger.WithCtx(ctx, "RepoPG.GetAllOrderForExport")

	var cancel context.CancelFunc
	if tx == nil {
		tx, cancel = r.DBWithTimeout(ctx)
		defer cancel()
	}

	if err = scopeOrder(tx.Model(&model.Order{}), req, caller).
		Order(orderSort(req.Sort)).
		Limit(maxPageSize * 10).
		Find(&orders).Error; err != nil {
		log.WithError(err).Error("error_500: get orders in GetAllOrderForExport - RepoPG")
		return nil, ginext.NewError(http.StatusInternalServerError, utils.MessageError()[http.StatusInternalServerError])
	}
	return orders, nil
}

func (r *RepoPG) CountOrderByStatus(ctx context.Context, caller model.Caller, status model.OrderStatus, tx *gorm.DB) (count int64, err error) {
	var cancel context.CancelFunc
	if tx == nil {
		tx, cancel = r.DBWithTimeout(ctx)
		defer cancel()
	}

	err = scopeOrder(tx.Model(&model.Order{}), model.OrderParam{Status: string(status)}, caller).
		Count(&count).Error
	return count, err
}

// UpdateOrder writes every column of order, but only while its status is still
// from. A concurrent status change makes it fail with 409.
func (r *RepoPG) UpdateOrder(ctx context.Context, order *model.Order, from model.OrderStatus, tx *gorm.DB) error {
	log := logger.WithCtx(ctx, "RepoPG.UpdateOrder")

	var cancel context.CancelFunc
	if tx == nil {
		tx, cancel = r.DBWithTimeout(ctx)
		defer cancel()
	}

	res := tx.Model(order).Select("*").Omit(clause.Associations).
		Where("status = ?", from).
		Updates(order)
	if res.Error != nil {
		log.WithError(res.Error).Error("error_500: update order in UpdateOrder - RepoPG")
		return ginext.NewError(http.StatusInternalServerError, utils.MessageError()[http.StatusInternalServerError])
	}
	if res.RowsAffected == 0 {
		log.WithField("order_id", order.ID).WithField("from", from).Error("error_409: order changed by another request")
		return ginext.NewError(http.StatusConflict, utils.MESS_ORDER_CHANGED)
	}
	return nil
}
