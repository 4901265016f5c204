package store

import (
	"context"
	"errors"
	"time"

	"logiroute/ms-delivery/pkg/model"
)

var ErrNotFound = errors.New("tracking record not found")

// TrackingStore holds the latest snapshot per (order, delivery person).
// Writes overwrite in place and the last write wins.
type TrackingStore interface {
	Save(ctx context.Context, t model.DeliveryTracking) error
	Get(ctx context.Context, key model.TrackingKey) (model.DeliveryTracking, error)
	List(ctx context.Context, filter model.TrackingFilter) ([]model.DeliveryTracking, error)
	Delete(ctx context.Context, key model.TrackingKey) error
	// DeleteOlderThan removes records not updated since before and returns how many went.
	DeleteOlderThan(ctx context.Context, before time.Time) (int, error)
}

func matches(t model.DeliveryTracking, filter model.TrackingFilter) bool {
	if filter.OrderID != nil && t.OrderID != *filter.OrderID {
		return false
	}
	if filter.DeliveryPersonID != nil && t.DeliveryPersonID != *filter.DeliveryPersonID {
		return false
	}
	return true
}
