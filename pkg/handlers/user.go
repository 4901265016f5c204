package handlers

import (
	"net/http"

	"gitlab.com/goxp/cloud0/ginext"
	"gitlab.com/goxp/cloud0/logger"

	"logiroute/ms-delivery/pkg/model"
	"logiroute/ms-delivery/pkg/service"
)

type UserHandlers struct {
	service service.UserInterface
}

func NewUserHandlers(service service.UserInterface) *UserHandlers {
	return &UserHandlers{service: service}
}

func (h *UserHandlers) GetListUser(r *ginext.Request) (*ginext.Response, error) {
	caller, err := currentCaller(r)
	if err != nil {
		return nil, err
	}

	req := model.UserParam{}
	if err = bindValid(r.GinCtx, r, &req); err != nil {
		return nil, err
	}

	rs, err := h.service.GetListUser(r.Context(), caller, req)
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

func (h *UserHandlers) GetMe(r *ginext.Request) (*ginext.Response, error) {
	caller, err := currentCaller(r)
	if err != nil {
		return nil, err
	}

	rs, err := h.service.GetOneUser(r.Context(), caller, caller.ID)
	if err != nil {
		return nil, err
	}
	return ok(rs), nil
}

func (h *UserHandlers) GetOneUser(r *ginext.Request) (*ginext.Response, error) {
	caller, err := currentCaller(r)
	if err != nil {
		return nil, err
	}
	id, err := uuidParam(r, "id")
	if err != nil {
		return nil, err
	}

	rs, err := h.service.GetOneUser(r.Context(), caller, id)
	if err != nil {
		return nil, err
	}
	return ok(rs), nil
}

// CreateUser lets an admin open an account with any role.
func (h *UserHandlers) CreateUser(r *ginext.Request) (*ginext.Response, error) {
	log := logger.WithCtx(r.GinCtx, "UserHandlers.CreateUser")

	caller, err := currentCaller(r)
	if err != nil {
		return nil, err
	}

	req := model.CreateUserReq{}
	if err = bindValid(r.GinCtx, r, &req); err != nil {
		return nil, err
	}

	rs, err := h.service.CreateUser(r.Context(), caller, req)
	if err != nil {
		return nil, err
	}
	log.WithField("user_id", rs.ID).WithField("role", rs.Role).Info("user created")

	return ginext.NewResponseData(http.StatusCreated, rs), nil
}

func (h *UserHandlers) UpdateUser(r *ginext.Request) (*ginext.Response, error) {
	caller, err := currentCaller(r)
	if err != nil {
		return nil, err
	}
	id, err := uuidParam(r, "id")
	if err != nil {
		return nil, err
	}

	req := model.UpdateUserReq{}
	if err = bindValid(r.GinCtx, r, &req); err != nil {
		return nil, err
	}
	req.ID = id

	rs, err := h.service.UpdateUser(r.Context(), caller, req)
	if err != nil {
		return nil, err
	}
	return ok(rs), nil
}

func (h *UserHandlers) UpdateRole(r *ginext.Request) (*ginext.Response, error) {
	caller, err := currentCaller(r)
	if err != nil {
		return nil, err
	}
	id, err := uuidParam(r, "id")
	if err != nil {
		return nil, err
	}

	req := model.UpdateRoleReq{}
	if err = bindValid(r.GinCtx, r, &req); err != nil {
		return nil, err
	}
	req.ID = id

	rs, err := h.service.UpdateRole(r.Context(), caller, req)
	if err != nil {
		return nil, err
	}
	return ok(rs), nil
}

func (h *UserHandlers) DeleteUser(r *ginext.Request) (*ginext.Response, error) {
	caller, err := currentCaller(r)
	if err != nil {
		return nil, err
	}
	id, err := uuidParam(r, "id")
	if err != nil {
		return nil, err
	}

	if err = h.service.DeleteUser(r.Context(), caller, id); err != nil {
		return nil, err
	}
	return ok(id), nil
}
