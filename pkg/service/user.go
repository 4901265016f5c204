package service

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"gitlab.com/goxp/cloud0/ginext"
	"gitlab.com/goxp/cloud0/logger"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"logiroute/ms-delivery/pkg/model"
	"logiroute/ms-delivery/pkg/repo"
	"logiroute/ms-delivery/pkg/utils"
	"logiroute/ms-delivery/pkg/valid"
)

type UserService struct {
	repo repo.PGInterface
}

func NewUserService(repo repo.PGInterface) UserInterface {
	return &UserService{repo: repo}
}

type UserInterface interface {
	GetListUser(ctx context.Context, caller model.Caller, req model.UserParam) (rs model.ListUserResponse, err error)
	GetOneUser(ctx context.Context, caller model.Caller, id uuid.UUID) (rs model.User, err error)
	CreateUser(ctx context.Context, caller model.Caller, req model.CreateUserReq) (rs model.User, err error)
	UpdateUser(ctx context.Context, caller model.Caller, req model.UpdateUserReq) (rs model.User, err error)
	UpdateRole(ctx context.Context, caller model.Caller, req model.UpdateRoleReq) (rs model.User, err error)
	DeleteUser(ctx context.Context, caller model.Caller, id uuid.UUID) error
}

func forbidden() error {
	return ginext.NewError(http.StatusForbidden, utils.MessageError()[http.StatusForbidden])
}

// createUser validates and stores a new account with the given role.
func createUser(ctx context.Context, r repo.PGInterface, req model.CreateUserReq, role model.Role, creator uuid.UUID) (rs model.User, err error) {
	log := logger.WithCtx(ctx, "createUser")

	name := strings.TrimSpace(valid.String(req.Name))
	if name == "" {
		log.Error("error_400: name is empty")
		return rs, ginext.NewError(http.StatusBadRequest, "Name is required")
	}

	email := strings.ToLower(strings.TrimSpace(valid.String(req.Email)))
	if ok := utils.ValidateEmail(email); !ok {
		log.Error("error_400: Email invalid")
		return rs, ginext.NewError(http.StatusBadRequest, "Email invalid")
	}

	if err = checkEmailFree(ctx, r, email, uuid.Nil); err != nil {
		return rs, err
	}

	if err = utils.VerifyPassword(valid.String(req.Password)); err != nil {
		log.Error("error_400: Password invalid in createUser")
		return rs, ginext.NewError(http.StatusBadRequest, fmt.Sprintf("Password invalid: %v", err.Error()))
	}

	hashPass, err := bcrypt.GenerateFromPassword([]byte(valid.String(req.Password)), bcrypt.DefaultCost)
	if err != nil {
		log.WithError(err).Error("error_500: cannot hash password")
		return rs, ginext.NewError(http.StatusInternalServerError, "Cannot encode password")
	}

	rs = model.User{
		Name:     name,
		Email:    email,
		Password: string(hashPass),
		Role:     role,
	}
	rs.CreatorID = creator
	if err = r.CreateUser(ctx, &rs, nil); err != nil {
		return rs, err
	}
	return rs, nil
}

// checkEmailFree fails with 409 when another account (not self) owns email.
func checkEmailFree(ctx context.Context, r repo.PGInterface, email string, self uuid.UUID) error {
	log := logger.WithCtx(ctx, "checkEmailFree")

	user, err := r.GetOneUserByEmail(ctx, email, nil)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil
		}
		log.WithError(err).Error("error_500: get user by email")
		return ginext.NewError(http.StatusInternalServerError, utils.MessageError()[http.StatusInternalServerError])
	}
	if user.ID != self {
		log.Error("error_409: This account has been existed")
		return ginext.NewError(http.StatusConflict, "This account has been existed")
	}
	return nil
}

func (s *UserService) GetListUser(ctx context.Context, caller model.Caller, req model.UserParam) (rs model.ListUserResponse, err error) {
	log := logger.WithCtx(ctx, "UserService.GetListUser")

	if req.Role != "" && !model.IsValidRole(req.Role) {
		log.WithField("role", req.Role).Error("error_400: invalid role filter")
		return rs, ginext.NewError(http.StatusBadRequest, "Invalid role")
	}

	// merchants need the list of couriers to assign their orders
	if !caller.Role.IsStaff() && !(caller.Role == model.RoleMerchant && req.Role == string(model.RoleDeliveryPerson)) {
		return rs, utils.CheckPermission(ctx, caller, uuid.Nil, model.RoleAdmin, model.RoleLogisticsTechnician)
	}

	return s.repo.GetListUser(ctx, req, nil)
}

func (s *UserService) GetOneUser(ctx context.Context, caller model.Caller, id uuid.UUID) (rs model.User, err error) {
	if err = utils.CheckPermission(ctx, caller, id, model.RoleAdmin, model.RoleLogisticsTechnician); err != nil {
		return rs, err
	}
	return s.repo.GetOneUserByID(ctx, id, nil)
}

func (s *UserService) CreateUser(ctx context.Context, caller model.Caller, req model.CreateUserReq) (rs model.User, err error) {
	log := logger.WithCtx(ctx, "UserService.CreateUser")

	if err = utils.CheckPermission(ctx, caller, uuid.Nil, model.RoleAdmin); err != nil {
		return rs, err
	}

	role := model.RoleMerchant
	if r := valid.String(req.Role); r != "" {
		if !model.IsValidRole(r) {
			log.WithField("role", r).Error("error_400: invalid role")
			return rs, ginext.NewError(http.StatusBadRequest, "Invalid role")
		}
		role = model.Role(r)
	}

	return createUser(ctx, s.repo, req, role, caller.ID)
}

func (s *UserService) UpdateUser(ctx context.Context, caller model.Caller, req model.UpdateUserReq) (rs model.User, err error) {
	log := logger.WithCtx(ctx, "UserService.UpdateUser")

	if err = utils.CheckPermission(ctx, caller, req.ID, model.RoleAdmin); err != nil {
		return rs, err
	}

	rs, err = s.repo.GetOneUserByID(ctx, req.ID, nil)
	if err != nil {
		return rs, err
	}

	if req.Role != nil && model.Role(*req.Role) != rs.Role {
		if caller.Role != model.RoleAdmin {
			log.WithField("user_id", caller.ID).Error("error_403: role change by non admin")
			return rs, forbidden()
		}
		if err = checkRoleChange(ctx, caller, rs.ID, *req.Role); err != nil {
			return rs, err
		}
		rs.Role = model.Role(*req.Role)
	}

	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			return rs, ginext.NewError(http.StatusBadRequest, "Name is required")
		}
		rs.Name = name
	}

	if req.Email != nil {
		email := strings.ToLower(strings.TrimSpace(*req.Email))
		if !utils.ValidateEmail(email) {
			log.Error("error_400: Email invalid")
			return rs, ginext.NewError(http.StatusBadRequest, "Email invalid")
		}
		if email != rs.Email {
			if err = checkEmailFree(ctx, s.repo, email, rs.ID); err != nil {
				return rs, err
			}
			rs.Email = email
		}
	}

	if req.Password != nil {
		if err = utils.VerifyPassword(*req.Password); err != nil {
			return rs, ginext.NewError(http.StatusBadRequest, fmt.Sprintf("Password invalid: %v", err.Error()))
		}
		hashPass, err := bcrypt.GenerateFromPassword([]byte(*req.Password), bcrypt.DefaultCost)
		if err != nil {
			log.WithError(err).Error("error_500: cannot hash password")
			return rs, ginext.NewError(http.StatusInternalServerError, "Cannot encode password")
		}
		rs.Password = string(hashPass)
	}

	rs.UpdaterID = caller.ID
	if err = s.repo.UpdateUser(ctx, &rs, nil); err != nil {
		return rs, err
	}
	return rs, nil
}

func checkRoleChange(ctx context.Context, caller model.Caller, target uuid.UUID, role string) error {
	log := logger.WithCtx(ctx, "checkRoleChange")

	if !model.IsValidRole(role) {
		log.WithField("role", role).Error("error_400: invalid role")
		return ginext.NewError(http.StatusBadRequest, "Invalid role")
	}
	if caller.ID == target && model.Role(role) != model.RoleAdmin {
		log.WithField("user_id", caller.ID).Error("error_400: admin cannot demote itself")
		return ginext.NewError(http.StatusBadRequest, "Admins cannot change their own role")
	}
	return nil
}

func (s *UserService) UpdateRole(ctx context.Context, caller model.Caller, req model.UpdateRoleReq) (rs model.User, err error) {
	if err = utils.CheckPermission(ctx, caller, uuid.Nil, model.RoleAdmin); err != nil {
		return rs, err
	}
	if err = checkRoleChange(ctx, caller, req.ID, valid.String(req.Role)); err != nil {
		return rs, err
	}

	rs, err = s.repo.GetOneUserByID(ctx, req.ID, nil)
	if err != nil {
		return rs, err
	}
	rs.Role = model.Role(valid.String(req.Role))
	rs.UpdaterID = caller.ID
	if err = s.repo.UpdateUser(ctx, &rs, nil); err != nil {
		return rs, err
	}
	return rs, nil
}

func (s *UserService) DeleteUser(ctx context.Context, caller model.Caller, id uuid.UUID) error {
	log := logger.WithCtx(ctx, "UserService.DeleteUser")

	if err := utils.CheckPermission(ctx, caller, uuid.Nil, model.RoleAdmin); err != nil {
		return err
	}
	if caller.ID == id {
		log.Error("error_400: admin cannot delete itself")
		return ginext.NewError(http.StatusBadRequest, "Admins cannot delete their own account")
	}
	return s.repo.DeleteUser(ctx, id, nil)
}
