package model

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsValidRole(t *testing.T) {
	for _, r := range Roles {
		assert.True(t, IsValidRole(string(r)), r)
	}
	for _, r := range []string{"", "Admin", "ADMIN", "driver", "super_admin", "merchant ", "customer"} {
		assert.False(t, IsValidRole(r), r)
	}
}

func TestOrderStatus_CanTransition(t *testing.T) {
	tests := []struct {
		from OrderStatus
		to   OrderStatus
		want bool
	}{
		{OrderStatusPending, OrderStatusAccepted, true},
		{OrderStatusAccepted, OrderStatusInTransit, true},
		{OrderStatusInTransit, OrderStatusDelivered, true},
		{OrderStatusPending, OrderStatusCancelled, true},
		{OrderStatusAccepted, OrderStatusCancelled, true},
		{OrderStatusInTransit, OrderStatusCancelled, true},

		{OrderStatusPending, OrderStatusInTransit, false},
		{OrderStatusPending, OrderStatusDelivered, false},
		{OrderStatusInTransit, OrderStatusAccepted, false},
		{OrderStatusAccepted, OrderStatusPending, false},
		{OrderStatusPending, OrderStatusPending, false},
		{OrderStatusDelivered, OrderStatusCancelled, false},
		{OrderStatusCancelled, OrderStatusPending, false},
		{OrderStatusDelivered, OrderStatusInTransit, false},
	}
	for _, tt := range tests {
		t.Run(string(tt.from)+"->"+string(tt.to), func(t *testing.T) {
			assert.Equal(t, tt.want, tt.from.CanTransition(tt.to))
		})
	}
}

func TestIsValidPriority(t *testing.T) {
	assert.True(t, IsValidPriority("urgent"))
	assert.True(t, IsValidPriority("normal"))
	assert.False(t, IsValidPriority(""))
	assert.False(t, IsValidPriority("critical"))
}

func TestTrackingStatus_CanAdvance(t *testing.T) {
	assert.True(t, TrackingEnRouteToPickup.CanAdvance(TrackingAtPickup))
	assert.True(t, TrackingAtPickup.CanAdvance(TrackingEnRouteToDelivery))
	assert.True(t, TrackingAtDelivery.CanAdvance(TrackingDelivered))

	assert.False(t, TrackingPickedUp.CanAdvance(TrackingAtPickup))
	assert.False(t, TrackingDelivered.CanAdvance(TrackingDelivered))
	assert.False(t, TrackingEnRouteToPickup.CanAdvance(TrackingStatus("lost")))
	assert.False(t, TrackingStatus("lost").CanAdvance(TrackingDelivered))

	assert.True(t, TrackingAtPickup.HeadingToPickup())
	assert.False(t, TrackingPickedUp.HeadingToPickup())
}

func TestLatLng_Valid(t *testing.T) {
	tests := []struct {
		name string
		p    LatLng
		want bool
	}{
		{"origin", LatLng{0, 0}, true},
		{"corners", LatLng{-90, 180}, true},
		{"bogota", LatLng{4.6097, -74.0817}, true},
		{"lat out of range", LatLng{90.0001, 0}, false},
		{"lng out of range", LatLng{0, -180.5}, false},
		{"nan", LatLng{math.NaN(), 0}, false},
		{"inf", LatLng{0, math.Inf(1)}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.p.Valid())
		})
	}
}
