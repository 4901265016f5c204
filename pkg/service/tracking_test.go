package service

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"logiroute/ms-delivery/pkg/geo"
	"logiroute/ms-delivery/pkg/mocks"
	"logiroute/ms-delivery/pkg/model"
	"logiroute/ms-delivery/pkg/store"
)

var (
	pickupPos   = model.LatLng{Lat: 4.66, Lng: -74.05}
	deliveryPos = model.LatLng{Lat: 4.70, Lng: -74.04}
)

func newTrackingService(p geo.Provider, debounce time.Duration) (*TrackingService, *store.MemoryStore) {
	st := store.NewMemoryStore()
	svc := NewTrackingService(NewRouteService(p, RouteConfig{DefaultPosition: defaultPos, CacheSize: 16}), st, nil, debounce).(*TrackingService)
	return svc, st
}

// ownedOrders stands in for ms-order: a merchant sees only the orders listed for them.
type ownedOrders map[uuid.UUID]uuid.UUID

func (o ownedOrders) CanView(_ context.Context, caller model.Caller, orderID uuid.UUID) error {
	if o[orderID] != caller.ID {
		return forbidden()
	}
	return nil
}

func startReq(orderID uuid.UUID) model.StartTrackingRequest {
	return model.StartTrackingRequest{
		OrderID:         &orderID,
		CurrentPosition: &defaultPos,
		Pickup:          &pickupPos,
		Delivery:        &deliveryPos,
	}
}

func TestTrackingService_StartTracking(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	courier := caller(model.RoleDeliveryPerson)

	t.Run("with route", func(t *testing.T) {
		p := mocks.NewMockProvider(ctrl)
		p.EXPECT().Directions(gomock.Any(), gomock.Any()).Return(twoRoutes(), nil)
		svc, st := newTrackingService(p, time.Hour)
		defer svc.Close()

		rs, err := svc.StartTracking(context.Background(), courier, startReq(uuid.New()))
		require.NoError(t, err)
		assert.True(t, rs.RouteOK)
		assert.Equal(t, model.TrackingEnRouteToPickup, rs.Tracking.Status)
		assert.Equal(t, courier.ID, rs.Tracking.DeliveryPersonID)
		assert.Equal(t, float64(2000), rs.Tracking.DistanceRemaining)
		require.NotNil(t, rs.Tracking.Route)
		require.NotNil(t, rs.Tracking.ETA)
		assert.Equal(t, 1, st.Len())
	})

	t.Run("without route still registers", func(t *testing.T) {
		p := mocks.NewMockProvider(ctrl)
		p.EXPECT().Directions(gomock.Any(), gomock.Any()).Return(nil, errors.New("provider down"))
		svc, st := newTrackingService(p, time.Hour)
		defer svc.Close()

		rs, err := svc.StartTracking(context.Background(), courier, startReq(uuid.New()))
		require.NoError(t, err)
		assert.False(t, rs.RouteOK)
		assert.Equal(t, "no route available", rs.Message)
		assert.Nil(t, rs.Tracking.Route)
		assert.Greater(t, rs.Tracking.DistanceRemaining, float64(0))
		assert.Equal(t, 1, st.Len())
	})

	t.Run("invalid position falls back to default", func(t *testing.T) {
		p := mocks.NewMockProvider(ctrl)
		p.EXPECT().Directions(gomock.Any(), gomock.Any()).Return(twoRoutes(), nil)
		svc, _ := newTrackingService(p, time.Hour)
		defer svc.Close()

		req := startReq(uuid.New())
		req.CurrentPosition = &model.LatLng{Lat: -200, Lng: 500}
		rs, err := svc.StartTracking(context.Background(), courier, req)
		require.NoError(t, err)
		assert.Equal(t, defaultPos, rs.Tracking.CurrentPosition)
	})

	t.Run("omitted position falls back to default", func(t *testing.T) {
		p := mocks.NewMockProvider(ctrl)
		p.EXPECT().Directions(gomock.Any(), gomock.Any()).Return(twoRoutes(), nil)
		svc, _ := newTrackingService(p, time.Hour)
		defer svc.Close()

		req := startReq(uuid.New())
		req.CurrentPosition = nil
		rs, err := svc.StartTracking(context.Background(), courier, req)
		require.NoError(t, err)
		assert.Equal(t, defaultPos, rs.Tracking.CurrentPosition)
	})

	t.Run("courier cannot start for someone else", func(t *testing.T) {
		svc, _ := newTrackingService(mocks.NewMockProvider(ctrl), time.Hour)
		defer svc.Close()

		req := startReq(uuid.New())
		other := uuid.New()
		req.DeliveryPersonID = &other
		_, err := svc.StartTracking(context.Background(), courier, req)
		assert.Error(t, err)
	})

	t.Run("staff must name the courier", func(t *testing.T) {
		svc, _ := newTrackingService(mocks.NewMockProvider(ctrl), time.Hour)
		defer svc.Close()

		_, err := svc.StartTracking(context.Background(), caller(model.RoleAdmin), startReq(uuid.New()))
		assert.Error(t, err)
	})
}

func TestTrackingService_PositionAndStatus(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	courier := caller(model.RoleDeliveryPerson)

	p := mocks.NewMockProvider(ctrl)
	p.EXPECT().Directions(gomock.Any(), gomock.Any()).Return(twoRoutes(), nil)
	svc, _ := newTrackingService(p, time.Hour)
	defer svc.Close()

	rs, err := svc.StartTracking(context.Background(), courier, startReq(uuid.New()))
	require.NoError(t, err)
	key := rs.Tracking.Key()

	// position overwrite
	got, err := svc.UpdatePosition(context.Background(), courier, key, model.PositionUpdateRequest{Position: &pickupPos})
	require.NoError(t, err)
	assert.Equal(t, pickupPos, got.CurrentPosition)
	assert.InDelta(t, geo.HaversineMeters(pickupPos, deliveryPos), got.DistanceRemaining, 1e-6)

	_, err = svc.UpdatePosition(context.Background(), courier, key, model.PositionUpdateRequest{Position: &model.LatLng{Lat: 91}})
	assert.Error(t, err)

	_, err = svc.UpdatePosition(context.Background(), courier, key, model.PositionUpdateRequest{})
	assert.Error(t, err, "a missing position is not (0,0)")

	_, err = svc.UpdatePosition(context.Background(), caller(model.RoleDeliveryPerson), key, model.PositionUpdateRequest{Position: &pickupPos})
	assert.Error(t, err, "only the owner may write")

	steps := []struct {
		status  string
		wantErr bool
	}{
		{status: "at_pickup"},
		{status: "en_route_to_pickup", wantErr: true},
		{status: "en_route_to_delivery"},
		{status: "picked_up", wantErr: true},
		{status: "delivered"},
		{status: "at_delivery", wantErr: true},
		{status: "teleported", wantErr: true},
	}
	for _, step := range steps {
		got, err := svc.UpdateStatus(context.Background(), courier, key, model.TrackingStatusRequest{Status: strPtr(step.status)})
		if step.wantErr {
			assert.Error(t, err, step.status)
			continue
		}
		require.NoError(t, err, step.status)
		assert.Equal(t, model.TrackingStatus(step.status), got.Status)
	}

	final, err := svc.GetTracking(context.Background(), courier, key)
	require.NoError(t, err)
	assert.Equal(t, model.TrackingDelivered, final.Status)
	assert.Equal(t, float64(0), final.DistanceRemaining)
}

func TestTrackingService_RecalculationIsDebounced(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	courier := caller(model.RoleDeliveryPerson)

	var calls int32
	p := mocks.NewMockProvider(ctrl)
	p.EXPECT().Directions(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, req geo.DirectionsRequest) ([]model.GoogleRoute, error) {
			atomic.AddInt32(&calls, 1)
			return []model.GoogleRoute{{Summary: geo.FormatLatLng(req.Origin), Legs: []model.RouteLeg{leg(500, 60)}}}, nil
		}).AnyTimes()

	svc, st := newTrackingService(p, 30*time.Millisecond)
	defer svc.Close()

	rs, err := svc.StartTracking(context.Background(), courier, startReq(uuid.New()))
	require.NoError(t, err)
	require.Equal(t, int32(1), atomic.LoadInt32(&calls))
	key := rs.Tracking.Key()

	moved := model.LatLng{Lat: 4.655, Lng: -74.055}
	_, err = svc.UpdatePosition(context.Background(), courier, key, model.PositionUpdateRequest{Position: &moved})
	require.NoError(t, err)

	for i := 0; i < 5; i++ {
		require.NoError(t, svc.RequestRecalculation(context.Background(), courier, key))
	}

	assert.Eventually(t, func() bool { return atomic.LoadInt32(&calls) == 2 }, time.Second, 5*time.Millisecond)
	time.Sleep(60 * time.Millisecond)
	assert.Equal(t, int32(2), atomic.LoadInt32(&calls), "burst collapses into one provider call")

	assert.Eventually(t, func() bool {
		got, err := st.Get(context.Background(), key)
		return err == nil && got.Route != nil && got.Route.Summary == geo.FormatLatLng(moved)
	}, time.Second, 5*time.Millisecond)

	missing := model.TrackingKey{OrderID: uuid.New(), DeliveryPersonID: courier.ID}
	assert.Error(t, svc.RequestRecalculation(context.Background(), courier, missing))
}

func TestTrackingService_ListAndDelete(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	courier := caller(model.RoleDeliveryPerson)
	otherCourier := caller(model.RoleDeliveryPerson)
	admin := caller(model.RoleAdmin)

	p := mocks.NewMockProvider(ctrl)
	p.EXPECT().Directions(gomock.Any(), gomock.Any()).Return(twoRoutes(), nil).AnyTimes()
	svc, _ := newTrackingService(p, time.Hour)
	defer svc.Close()

	orderID := uuid.New()
	mine, err := svc.StartTracking(context.Background(), courier, startReq(orderID))
	require.NoError(t, err)
	_, err = svc.StartTracking(context.Background(), otherCourier, startReq(uuid.New()))
	require.NoError(t, err)

	all, err := svc.ListTracking(context.Background(), admin, model.TrackingFilter{})
	require.NoError(t, err)
	assert.Len(t, all, 2)

	own, err := svc.ListTracking(context.Background(), courier, model.TrackingFilter{})
	require.NoError(t, err)
	require.Len(t, own, 1)
	assert.Equal(t, courier.ID, own[0].DeliveryPersonID)

	shop := caller(model.RoleMerchant)
	_, err = svc.ListTracking(context.Background(), shop, model.TrackingFilter{OrderID: &orderID})
	assert.Error(t, err, "merchants are denied without an order lookup")

	svc.orders = ownedOrders{orderID: shop.ID}
	byOrder, err := svc.ListTracking(context.Background(), shop, model.TrackingFilter{OrderID: &orderID})
	require.NoError(t, err)
	assert.Len(t, byOrder, 1)

	_, err = svc.ListTracking(context.Background(), caller(model.RoleMerchant), model.TrackingFilter{OrderID: &orderID})
	assert.Error(t, err, "another merchant's order")

	got, err := svc.GetTracking(context.Background(), shop, mine.Tracking.Key())
	require.NoError(t, err)
	assert.Equal(t, orderID, got.OrderID)
	_, err = svc.GetTracking(context.Background(), caller(model.RoleMerchant), mine.Tracking.Key())
	assert.Error(t, err)

	_, err = svc.ListTracking(context.Background(), caller(model.RoleMerchant), model.TrackingFilter{})
	assert.Error(t, err)

	assert.Error(t, svc.DeleteTracking(context.Background(), otherCourier, mine.Tracking.Key()))
	require.NoError(t, svc.DeleteTracking(context.Background(), courier, mine.Tracking.Key()))
	_, err = svc.GetTracking(context.Background(), admin, mine.Tracking.Key())
	assert.Error(t, err)
}
