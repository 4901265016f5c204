package repo

import (
	"context"
	"net/http"

	"github.com/google/uuid"
	"gitlab.com/goxp/cloud0/ginext"
	"gitlab.com/goxp/cloud0/logger"
	"gorm.io/gorm"

	"logiroute/ms-delivery/pkg/model"
	"logiroute/ms-delivery/pkg/utils"
)

func (r *RepoPG) LogHistory(ctx context.Context, history *model.OrderHistory, tx *gorm.DB) error {
	var cancel context.CancelFunc
	if tx == nil {
		tx, cancel = r.DBWithTimeout(ctx)
		defer cancel()
	}

	return tx.Create(history).Error
}

func (r *RepoPG) GetOrderHistory(ctx context.Context, orderID uuid.UUID, tx *gorm.DB) (rs []model.OrderHistory, err error) {
	log := logger.WithCtx(ctx, "RepoPG.GetOrderHistory")
	var cancel context.CancelFunc
	if tx == nil {
		tx, cancel = r.DBWithTimeout(ctx)
		defer cancel()
	}

	if err = tx.Where("order_id = ?", orderID).Order("created_at ASC").Find(&rs).Error; err != nil {
		log.WithError(err).Error("error_500: get order history in GetOrderHistory - RepoPG")
		return nil, ginext.NewError(http.StatusInternalServerError, utils.MessageError()[http.StatusInternalServerError])
	}
	return rs, nil
}
