package utils

import (
	"context"
	"net/http"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gitlab.com/goxp/cloud0/ginext"

	"logiroute/ms-delivery/pkg/model"
)

// CheckPermission passes when the caller owns the resource or holds one of roles.
func CheckPermission(ctx context.Context, caller model.Caller, ownerID uuid.UUID, roles ...model.Role) (err error) {
	if ownerID != uuid.Nil && caller.ID == ownerID {
		return nil
	}
	if HasRole(caller, roles...) {
		return nil
	}

	logrus.WithContext(ctx).
		WithField("user_id", caller.ID).
		WithField("role", caller.Role).
		WithField("owner_id", ownerID).
		Warn("error_403: permission denied")
	return ginext.NewError(http.StatusForbidden, MessageError()[http.StatusForbidden])
}

func HasRole(caller model.Caller, roles ...model.Role) bool {
	for _, r := range roles {
		if caller.Role == r {
			return true
		}
	}
	return false
}
