package handlers

import (
	"net/http"

	"gitlab.com/goxp/cloud0/ginext"
	"gitlab.com/goxp/cloud0/logger"

	"logiroute/ms-delivery/pkg/model"
	"logiroute/ms-delivery/pkg/service"
)

type AuthHandlers struct {
	service service.AuthServiceInterface
}

func NewAuthHandlers(service service.AuthServiceInterface) *AuthHandlers {
	return &AuthHandlers{service: service}
}

func (h *AuthHandlers) Register(r *ginext.Request) (*ginext.Response, error) {
	log := logger.WithCtx(r.GinCtx, "AuthHandlers.Register")

	req := model.CreateUserReq{}
	if err := bindValid(r.GinCtx, r, &req); err != nil {
		return nil, err
	}

	rs, err := h.service.Register(r.Context(), req)
	if err != nil {
		return nil, err
	}
	log.WithField("user_id", rs.ID).Info("user registered")

	return ginext.NewResponseData(http.StatusCreated, rs), nil
}

func (h *AuthHandlers) Login(r *ginext.Request) (*ginext.Response, error) {
	req := model.LoginRequest{}
	if err := bindValid(r.GinCtx, r, &req); err != nil {
		return nil, err
	}

	rs, err := h.service.Login(r.Context(), req)
	if err != nil {
		return nil, err
	}
	return ok(rs), nil
}

func (h *AuthHandlers) Refresh(r *ginext.Request) (*ginext.Response, error) {
	req := model.RefreshRequest{}
	if err := bindValid(r.GinCtx, r, &req); err != nil {
		return nil, err
	}

	rs, err := h.service.Refresh(r.Context(), req)
	if err != nil {
		return nil, err
	}
	return ok(rs), nil
}

func (h *AuthHandlers) Logout(r *ginext.Request) (*ginext.Response, error) {
	caller, err := currentCaller(r)
	if err != nil {
		return nil, err
	}

	if err = h.service.Logout(r.Context(), caller.ID); err != nil {
		return nil, err
	}
	return ok("logged out"), nil
}

func (h *AuthHandlers) Profile(r *ginext.Request) (*ginext.Response, error) {
	caller, err := currentCaller(r)
	if err != nil {
		return nil, err
	}

	rs, err := h.service.Profile(r.Context(), caller.ID)
	if err != nil {
		return nil, err
	}
	return ok(rs), nil
}
