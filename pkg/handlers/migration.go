package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gitlab.com/goxp/cloud0/logger"
	"gorm.io/gorm"

	"logiroute/ms-delivery/pkg/repo"
)

type MigrationHandler struct {
	db *gorm.DB
}

func NewMigrationHandler(db *gorm.DB) *MigrationHandler {
	return &MigrationHandler{db: db}
}

func (h *MigrationHandler) Migrate(ctx *gin.Context) {
	log := logger.WithCtx(ctx, "MigrationHandler.Migrate")

	if err := repo.Migrate(h.db); err != nil {
		log.WithError(err).Error("error_500: migrate failed")
		_ = ctx.Error(err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"message": err.Error()})
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"message": "migrated"})
}
