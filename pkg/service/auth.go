package service

import (
	"context"
	"net/http"
	"time"

	"github.com/google/uuid"
	"gitlab.com/goxp/cloud0/ginext"
	"gitlab.com/goxp/cloud0/logger"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"logiroute/ms-delivery/conf"
	"logiroute/ms-delivery/pkg/model"
	"logiroute/ms-delivery/pkg/repo"
	"logiroute/ms-delivery/pkg/utils"
	"logiroute/ms-delivery/pkg/valid"
)

// selfRegisterRoles are the roles anyone may pick when signing up.
var selfRegisterRoles = []model.Role{model.RoleMerchant, model.RoleDeliveryPerson}

type AuthService struct {
	repo repo.PGInterface
}

func NewAuthService(repo repo.PGInterface) AuthServiceInterface {
	return &AuthService{repo: repo}
}

type AuthServiceInterface interface {
	Register(ctx context.Context, req model.CreateUserReq) (rs model.User, err error)
	Login(ctx context.Context, req model.LoginRequest) (rs model.LoginResponse, err error)
	Refresh(ctx context.Context, req model.RefreshRequest) (rs model.LoginResponse, err error)
	Logout(ctx context.Context, userID uuid.UUID) error
	Profile(ctx context.Context, userID uuid.UUID) (rs model.User, err error)
}

func (s *AuthService) Register(ctx context.Context, req model.CreateUserReq) (rs model.User, err error) {
	log := logger.WithCtx(ctx, "AuthService.Register")

	role := model.RoleMerchant
	if r := valid.String(req.Role); r != "" {
		role = model.Role(r)
		allowed := false
		for _, v := range selfRegisterRoles {
			if v == role {
				allowed = true
			}
		}
		if !allowed {
			log.WithField("role", r).Error("error_400: role not allowed for self registration")
			return rs, ginext.NewError(http.StatusBadRequest, "Role is not allowed for registration")
		}
	}

	return createUser(ctx, s.repo, req, role, uuid.Nil)
}

func (s *AuthService) Login(ctx context.Context, req model.LoginRequest) (rs model.LoginResponse, err error) {
	log := logger.WithCtx(ctx, "AuthService.Login")

	user, err := s.repo.GetOneUserByEmail(ctx, valid.String(req.Email), nil)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			log.Error("error_401: account not found in Login - AuthService")
			return rs, ginext.NewError(http.StatusUnauthorized, "account or password incorrect")
		}
		log.WithError(err).Error("error_500: get user in Login - AuthService")
		return rs, ginext.NewError(http.StatusInternalServerError, utils.MessageError()[http.StatusInternalServerError])
	}

	if err = bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(valid.String(req.Password))); err != nil {
		log.Error("error_401: password incorrect in Login - AuthService")
		return rs, ginext.NewError(http.StatusUnauthorized, "account or password incorrect")
	}

	return s.issueTokens(ctx, user)
}

func (s *AuthService) Refresh(ctx context.Context, req model.RefreshRequest) (rs model.LoginResponse, err error) {
	log := logger.WithCtx(ctx, "AuthService.Refresh")
	unauthorized := ginext.NewError(http.StatusUnauthorized, utils.MessageError()[http.StatusUnauthorized])

	claims, err := utils.ParseRefreshToken(valid.String(req.RefreshToken), conf.LoadEnv().JWTSecret)
	if err != nil {
		log.WithError(err).Error("error_401: invalid refresh token")
		return rs, unauthorized
	}

	stored, err := s.repo.GetRefreshTokenBySign(ctx, utils.TokenSign(valid.String(req.RefreshToken)), nil)
	if err != nil {
		return rs, err
	}
	if stored.UserID.String() != claims.Subject {
		log.WithField("user_id", stored.UserID).Error("error_401: refresh token subject mismatch")
		return rs, unauthorized
	}

	user, err := s.repo.GetOneUserByID(ctx, stored.UserID, nil)
	if err != nil {
		log.WithError(err).Error("error_401: user of refresh token is gone")
		return rs, unauthorized
	}

	return s.issueTokens(ctx, user)
}

func (s *AuthService) Logout(ctx context.Context, userID uuid.UUID) error {
	return s.repo.DeleteRefreshToken(ctx, userID, nil)
}

func (s *AuthService) Profile(ctx context.Context, userID uuid.UUID) (rs model.User, err error) {
	return s.repo.GetOneUserByID(ctx, userID, nil)
}

// issueTokens signs a new access token and rotates the stored refresh token.
func (s *AuthService) issueTokens(ctx context.Context, user model.User) (rs model.LoginResponse, err error) {
	log := logger.WithCtx(ctx, "AuthService.issueTokens")
	cfg := conf.LoadEnv()

	accessTTL := time.Duration(cfg.AccessTokenTTLMinutes) * time.Minute
	token, expiresAt, err := utils.CreateAccessToken(user, cfg.JWTSecret, accessTTL)
	if err != nil {
		log.WithError(err).Error("error_500: sign access token")
		return rs, ginext.NewError(http.StatusInternalServerError, utils.MessageError()[http.StatusInternalServerError])
	}

	refreshTTL := time.Duration(cfg.RefreshTokenTTLInDays) * 24 * time.Hour
	refresh, sign, expiredAt, err := utils.CreateRefreshToken(user.ID, cfg.JWTSecret, refreshTTL)
	if err != nil {
		log.WithError(err).Error("error_500: sign refresh token")
		return rs, ginext.NewError(http.StatusInternalServerError, utils.MessageError()[http.StatusInternalServerError])
	}

	err = s.repo.Transaction(ctx, func(rp repo.PGInterface) error {
		if err := rp.DeleteRefreshToken(ctx, user.ID, nil); err != nil {
			return err
		}
		return rp.CreateRefreshToken(ctx, &model.RefreshToken{
			UserID:    user.ID,
			Sign:      sign,
			ExpiredAt: expiredAt,
		}, nil)
	})
	if err != nil {
		return rs, err
	}

	return model.LoginResponse{
		Token:        token,
		RefreshToken: refresh,
		ExpiresIn:    expiresAt - time.Now().Unix(),
		User:         user,
	}, nil
}
