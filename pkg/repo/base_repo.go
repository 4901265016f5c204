package repo

import (
	"context"
	"math"
	"time"

	"github.com/google/uuid"
	"gitlab.com/goxp/cloud0/ginext"
	"gorm.io/gorm"

	"logiroute/ms-delivery/pkg/model"
)

const (
	generalQueryTimeout = 60 * time.Second
	defaultPageSize     = 30
	maxPageSize         = 1000
)

//go:generate mockgen -destination=../mocks/mock_repo.go -package=mocks logiroute/ms-delivery/pkg/repo PGInterface

func NewPGRepo(db *gorm.DB) PGInterface {
	return &RepoPG{DB: db}
}

type PGInterface interface {
	// DB
	DBWithTimeout(ctx context.Context) (*gorm.DB, context.CancelFunc)
	Transaction(ctx context.Context, f func(rp PGInterface) error) error

	// user
	CreateUser(ctx context.Context, user *model.User, tx *gorm.DB) error
	GetOneUserByEmail(ctx context.Context, email string, tx *gorm.DB) (model.User, error)
	GetOneUserByID(ctx context.Context, id uuid.UUID, tx *gorm.DB) (model.User, error)
	GetListUser(ctx context.Context, req model.UserParam, tx *gorm.DB) (model.ListUserResponse, error)
	UpdateUser(ctx context.Context, user *model.User, tx *gorm.DB) error
	DeleteUser(ctx context.Context, id uuid.UUID, tx *gorm.DB) error

	// refresh token
	CreateRefreshToken(ctx context.Context, req *model.RefreshToken, tx *gorm.DB) error
	GetRefreshTokenBySign(ctx context.Context, sign string, tx *gorm.DB) (model.RefreshToken, error)
	DeleteRefreshToken(ctx context.Context, userID uuid.UUID, tx *gorm.DB) error

	// order
	CreateOrder(ctx context.Context, order *model.Order, tx *gorm.DB) error
	GetOneOrder(ctx context.Context, id uuid.UUID, tx *gorm.DB) (model.Order, error)
	GetListOrder(ctx context.Context, req model.OrderParam, caller model.Caller, tx *gorm.DB) (model.ListOrderResponse, error)
	GetAllOrderForExport(ctx context.Context, req model.OrderParam, caller model.Caller, tx *gorm.DB) ([]model.Order, error)
	CountOrderByStatus(ctx context.Context, caller model.Caller, status model.OrderStatus, tx *gorm.DB) (int64, error)
	UpdateOrder(ctx context.Context, order *model.Order, from model.OrderStatus, tx *gorm.DB) error

	// history
	LogHistory(ctx context.Context, history *model.OrderHistory, tx *gorm.DB) error
	GetOrderHistory(ctx context.Context, orderID uuid.UUID, tx *gorm.DB) ([]model.OrderHistory, error)
}

type RepoPG struct {
	DB    *gorm.DB
	debug bool
}

func (r *RepoPG) GetRepo() *gorm.DB {
	return r.DB
}

func (r *RepoPG) DBWithTimeout(ctx context.Context) (*gorm.DB, context.CancelFunc) {
	ctx, cancel := context.WithTimeout(ctx, generalQueryTimeout)
	return r.DB.WithContext(ctx), cancel
}

// Transaction runs f against a repo bound to a single DB transaction.
func (r *RepoPG) Transaction(ctx context.Context, f func(rp PGInterface) error) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return f(&RepoPG{DB: tx, debug: r.debug})
	})
}

func (r *RepoPG) GetPage(page int) int {
	if page <= 0 {
		return 1
	}
	return page
}

func (r *RepoPG) GetOffset(page int, pageSize int) int {
	return (page - 1) * pageSize
}

func (r *RepoPG) GetPageSize(pageSize int) int {
	if pageSize <= 0 {
		return defaultPageSize
	}
	if pageSize > maxPageSize {
		return maxPageSize
	}
	return pageSize
}

func (r *RepoPG) GetTotalPages(totalRows, pageSize int) int {
	return int(math.Ceil(float64(totalRows) / float64(pageSize)))
}

func (r *RepoPG) GetPaginationInfo(query string, tx *gorm.DB, totalRow, page, pageSize int) (rs ginext.BodyMeta, err error) {
	tm := struct {
		Count int `json:"count"`
	}{}
	if query != "" {
		if err = tx.Raw(query).Scan(&tm).Error; err != nil {
			return nil, err
		}
		totalRow = tm.Count
	}

	return ginext.BodyMeta{
		"page":        page,
		"page_size":   pageSize,
		"total_pages": r.GetTotalPages(totalRow, pageSize),
		"total_rows":  totalRow,
	}, nil
}
