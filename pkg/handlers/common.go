package handlers

import (
	"context"
	"net/http"
	"reflect"

	"github.com/google/uuid"
	"github.com/praslar/lib/common"
	"gitlab.com/goxp/cloud0/ginext"
	"gitlab.com/goxp/cloud0/logger"

	"logiroute/ms-delivery/pkg/model"
	"logiroute/ms-delivery/pkg/utils"
)

// currentCaller reads the identity the gateway forwarded.
func currentCaller(r *ginext.Request) (model.Caller, error) {
	caller, err := utils.CurrentCaller(r.GinCtx.Request)
	if err != nil {
		logger.WithCtx(r.GinCtx, "currentCaller").WithError(err).Error("error_401: missing or invalid identity headers")
		return caller, ginext.NewError(http.StatusUnauthorized, utils.MessageError()[http.StatusUnauthorized])
	}
	return caller, nil
}

// bindValid binds body or query into req and checks `valid:"Required"` fields.
func bindValid(ctx context.Context, r *ginext.Request, req interface{}) error {
	log := logger.WithCtx(ctx, "bindValid")
	if err := r.GinCtx.ShouldBind(req); err != nil {
		log.WithError(err).Error("error_400: cannot bind request")
		return ginext.NewError(http.StatusBadRequest, "Invalid input: "+err.Error())
	}
	if err := common.CheckRequireValid(reflect.Indirect(reflect.ValueOf(req)).Interface()); err != nil {
		log.WithError(err).Error("error_400: Invalid input")
		return ginext.NewError(http.StatusBadRequest, "Invalid input: "+err.Error())
	}
	return nil
}

func uuidParam(r *ginext.Request, name string) (uuid.UUID, error) {
	id, err := uuid.Parse(r.GinCtx.Param(name))
	if err != nil {
		logger.WithCtx(r.GinCtx, "uuidParam").WithError(err).Errorf("error_400: invalid %s", name)
		return uuid.Nil, ginext.NewError(http.StatusBadRequest, "invalid "+name)
	}
	return id, nil
}

// uuidQuery parses an optional uuid query parameter.
func uuidQuery(r *ginext.Request, name string) (*uuid.UUID, error) {
	raw := r.GinCtx.Query(name)
	if raw == "" {
		return nil, nil
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		logger.WithCtx(r.GinCtx, "uuidQuery").WithError(err).Errorf("error_400: invalid %s", name)
		return nil, ginext.NewError(http.StatusBadRequest, "invalid "+name)
	}
	return &id, nil
}

func ok(data interface{}) *ginext.Response {
	return &ginext.Response{
		Code: http.StatusOK,
		GeneralBody: &ginext.GeneralBody{
			Data: data,
		},
	}
}
