package repo

import (
	"context"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"gitlab.com/goxp/cloud0/ginext"
	"gitlab.com/goxp/cloud0/logger"
	"gorm.io/gorm"

	"logiroute/ms-delivery/pkg/model"
	"logiroute/ms-delivery/pkg/utils"
)

func (r *RepoPG) CreateUser(ctx context.Context, user *model.User, tx *gorm.DB) error {
	log := logger.WithCtx(ctx, "RepoPG.CreateUser")
	var cancel context.CancelFunc
	if tx == nil {
		tx, cancel = r.DBWithTimeout(ctx)
		defer cancel()
	}

	if err := tx.Create(user).Error; err != nil {
		log.WithError(err).Error("error_500: create user in CreateUser - RepoPG")
		return ginext.NewError(http.StatusInternalServerError, utils.MessageError()[http.StatusInternalServerError])
	}
	return nil
}

// GetOneUserByEmail returns gorm.ErrRecordNotFound untouched so callers can tell a free email apart.
func (r *RepoPG) GetOneUserByEmail(ctx context.Context, email string, tx *gorm.DB) (rs model.User, err error) {
	var cancel context.CancelFunc
	if tx == nil {
		tx, cancel = r.DBWithTimeout(ctx)
		defer cancel()
	}

	err = tx.Where("lower(email) = ?", strings.ToLower(email)).First(&rs).Error
	return rs, err
}

func (r *RepoPG) GetOneUserByID(ctx context.Context, id uuid.UUID, tx *gorm.DB) (rs model.User, err error) {
	log := logger.WithCtx(ctx, "RepoPG.GetOneUserByID")
	var cancel context.CancelFunc
	if tx == nil {
		tx, cancel = r.DBWithTimeout(ctx)
		defer cancel()
	}

	if err = tx.Where("id = ?", id).First(&rs).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			log.WithError(err).Error("error_404: record not found in GetOneUserByID - RepoPG")
			return rs, ginext.NewError(http.StatusNotFound, utils.MessageError()[http.StatusNotFound])
		}
		log.WithError(err).Error("error_500: get user in GetOneUserByID - RepoPG")
		return rs, ginext.NewError(http.StatusInternalServerError, utils.MessageError()[http.StatusInternalServerError])
	}
	return rs, nil
}

func (r *RepoPG) GetListUser(ctx context.Context, req model.UserParam, tx *gorm.DB) (rs model.ListUserResponse, err error) {
	log := logger.WithCtx(ctx, "RepoPG.GetListUser")
	var cancel context.CancelFunc
	if tx == nil {
		tx, cancel = r.DBWithTimeout(ctx)
		defer cancel()
	}

	page := r.GetPage(req.Page)
	pageSize := r.GetPageSize(req.PageSize)

	tx = tx.Model(&model.User{})
	if req.Role != "" {
		tx = tx.Where("role = ?", req.Role)
	}
	if req.Search != "" {
		search := "%" + strings.ToLower(req.Search) + "%"
		tx = tx.Where("(lower(name) LIKE ? OR lower(email) LIKE ?)", search, search)
	}
	tx = tx.Session(&gorm.Session{})

	var total int64
	if err = tx.Count(&total).Error; err != nil {
		log.WithError(err).Error("error_500: count user in GetListUser - RepoPG")
		return rs, ginext.NewError(http.StatusInternalServerError, utils.MessageError()[http.StatusInternalServerError])
	}
	if err = tx.Order("created_at DESC").Limit(pageSize).Offset(r.GetOffset(page, pageSize)).Find(&rs.Data).Error; err != nil {
		log.WithError(err).Error("error_500: get list user in GetListUser - RepoPG")
		return rs, ginext.NewError(http.StatusInternalServerError, utils.MessageError()[http.StatusInternalServerError])
	}

	if rs.Meta, err = r.GetPaginationInfo("", tx, int(total), page, pageSize); err != nil {
		return rs, err
	}
	return rs, nil
}

func (r *RepoPG) UpdateUser(ctx context.Context, user *model.User, tx *gorm.DB) error {
	log := logger.WithCtx(ctx, "RepoPG.UpdateUser")
	var cancel context.CancelFunc
	if tx == nil {
		tx, cancel = r.DBWithTimeout(ctx)
		defer cancel()
	}

	if err := tx.Save(user).Error; err != nil {
		log.WithError(err).Error("error_500: update user in UpdateUser - RepoPG")
		return ginext.NewError(http.StatusInternalServerError, utils.MessageError()[http.StatusInternalServerError])
	}
	return nil
}

func (r *RepoPG) DeleteUser(ctx context.Context, id uuid.UUID, tx *gorm.DB) error {
	log := logger.WithCtx(ctx, "RepoPG.DeleteUser")
	var cancel context.CancelFunc
	if tx == nil {
		tx, cancel = r.DBWithTimeout(ctx)
		defer cancel()
	}

	res := tx.Where("id = ?", id).Delete(&model.User{})
	if res.Error != nil {
		log.WithError(res.Error).Error("error_500: delete user in DeleteUser - RepoPG")
		return ginext.NewError(http.StatusInternalServerError, utils.MessageError()[http.StatusInternalServerError])
	}
	if res.RowsAffected == 0 {
		return ginext.NewError(http.StatusNotFound, utils.MessageError()[http.StatusNotFound])
	}
	return nil
}
