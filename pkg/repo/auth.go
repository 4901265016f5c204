package repo

import (
	"context"
	"net/http"
	"time"

	"github.com/google/uuid"
	"gitlab.com/goxp/cloud0/ginext"
	"gitlab.com/goxp/cloud0/logger"
	"gorm.io/gorm"

	"logiroute/ms-delivery/pkg/model"
	"logiroute/ms-delivery/pkg/utils"
)

func (r *RepoPG) DeleteRefreshToken(ctx context.Context, userID uuid.UUID, tx *gorm.DB) error {
	log := logger.WithCtx(ctx, "RepoPG.DeleteRefreshToken")
	var cancel context.CancelFunc
	if tx == nil {
		tx, cancel = r.DBWithTimeout(ctx)
		defer cancel()
	}

	// refresh tokens are rotated, never kept around after logout
	if err := tx.Unscoped().Where("user_id = ?", userID).Delete(&model.RefreshToken{}).Error; err != nil {
		log.WithError(err).Error("error_500 when call func DeleteRefreshToken")
		return ginext.NewError(http.StatusInternalServerError, utils.MessageError()[http.StatusInternalServerError])
	}

	return nil
}

func (r *RepoPG) CreateRefreshToken(ctx context.Context, req *model.RefreshToken, tx *gorm.DB) error {
	log := logger.WithCtx(ctx, "RepoPG.CreateRefreshToken")
	var cancel context.CancelFunc
	if tx == nil {
		tx, cancel = r.DBWithTimeout(ctx)
		defer cancel()
	}

	if err := tx.Create(req).Error; err != nil {
		log.WithError(err).Error("error_500 when call func CreateRefreshToken")
		return ginext.NewError(http.StatusInternalServerError, utils.MessageError()[http.StatusInternalServerError])
	}

	return nil
}

func (r *RepoPG) GetRefreshTokenBySign(ctx context.Context, sign string, tx *gorm.DB) (rs model.RefreshToken, err error) {
	log := logger.WithCtx(ctx, "RepoPG.GetRefreshTokenBySign")
	var cancel context.CancelFunc
	if tx == nil {
		tx, cancel = r.DBWithTimeout(ctx)
		defer cancel()
	}

	if err = tx.Where("sign = ? AND expired_at > ?", sign, time.Now()).First(&rs).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			log.WithError(err).Error("error_401: refresh token not found or expired")
			return rs, ginext.NewError(http.StatusUnauthorized, utils.MessageError()[http.StatusUnauthorized])
		}
		log.WithError(err).Error("error_500: get refresh token in GetRefreshTokenBySign - RepoPG")
		return rs, ginext.NewError(http.StatusInternalServerError, utils.MessageError()[http.StatusInternalServerError])
	}
	return rs, nil
}
