package store

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"logiroute/ms-delivery/pkg/model"
)

func newTracking(orderID, dpID uuid.UUID, updated time.Time) model.DeliveryTracking {
	return model.DeliveryTracking{
		OrderID:          orderID,
		DeliveryPersonID: dpID,
		CurrentPosition:  model.LatLng{Lat: 4.6, Lng: -74.08},
		Status:           model.TrackingEnRouteToPickup,
		StartedAt:        updated,
		UpdatedAt:        updated,
	}
}

func TestMemoryStore_SaveGetOverwrite(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()
	orderID, dpID := uuid.New(), uuid.New()
	now := time.Now()

	tr := newTracking(orderID, dpID, now)
	require.NoError(t, s.Save(ctx, tr))

	tr.CurrentPosition = model.LatLng{Lat: 4.7, Lng: -74.1}
	tr.Status = model.TrackingAtPickup
	require.NoError(t, s.Save(ctx, tr))

	got, err := s.Get(ctx, tr.Key())
	require.NoError(t, err)
	assert.Equal(t, model.TrackingAtPickup, got.Status)
	assert.Equal(t, 4.7, got.CurrentPosition.Lat)
	assert.Equal(t, 1, s.Len())

	_, err = s.Get(ctx, model.TrackingKey{OrderID: orderID, DeliveryPersonID: uuid.New()})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMemoryStore_List(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()
	orderA, orderB := uuid.New(), uuid.New()
	dp1, dp2 := uuid.New(), uuid.New()
	now := time.Now()

	require.NoError(t, s.Save(ctx, newTracking(orderA, dp1, now.Add(-time.Minute))))
	require.NoError(t, s.Save(ctx, newTracking(orderA, dp2, now)))
	require.NoError(t, s.Save(ctx, newTracking(orderB, dp1, now.Add(-2*time.Minute))))

	tests := []struct {
		name   string
		filter model.TrackingFilter
		want   int
	}{
		{name: "all", filter: model.TrackingFilter{}, want: 3},
		{name: "by order", filter: model.TrackingFilter{OrderID: &orderA}, want: 2},
		{name: "by delivery person", filter: model.TrackingFilter{DeliveryPersonID: &dp1}, want: 2},
		{name: "by both", filter: model.TrackingFilter{OrderID: &orderB, DeliveryPersonID: &dp1}, want: 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := s.List(ctx, tt.filter)
			require.NoError(t, err)
			assert.Len(t, got, tt.want)
		})
	}

	all, _ := s.List(ctx, model.TrackingFilter{})
	assert.Equal(t, dp2, all[0].DeliveryPersonID, "most recently updated first")
}

func TestMemoryStore_Delete(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()
	tr := newTracking(uuid.New(), uuid.New(), time.Now())
	require.NoError(t, s.Save(ctx, tr))

	require.NoError(t, s.Delete(ctx, tr.Key()))
	assert.ErrorIs(t, s.Delete(ctx, tr.Key()), ErrNotFound)
}

func TestMemoryStore_ConcurrentWrites(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()
	orderID, dpID := uuid.New(), uuid.New()

	var wg sync.WaitGroup
	for i := 0; i < 100; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			tr := newTracking(orderID, dpID, time.Now())
			tr.CurrentPosition.Lat = float64(i) / 100
			_ = s.Save(ctx, tr)
			_, _ = s.Get(ctx, tr.Key())
		}(i)
	}
	wg.Wait()
	assert.Equal(t, 1, s.Len())
}

func TestSweeper_Sweep(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()
	now := time.Now()
	fresh := newTracking(uuid.New(), uuid.New(), now.Add(-time.Minute))
	stale := newTracking(uuid.New(), uuid.New(), now.Add(-2*time.Hour))
	require.NoError(t, s.Save(ctx, fresh))
	require.NoError(t, s.Save(ctx, stale))

	sw := NewSweeper(s, time.Hour)
	sw.now = func() time.Time { return now }

	assert.Equal(t, 1, sw.Sweep(ctx))
	_, err := s.Get(ctx, stale.Key())
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = s.Get(ctx, fresh.Key())
	assert.NoError(t, err)
}

func TestSweeper_StartInvalidSpec(t *testing.T) {
	sw := NewSweeper(NewMemoryStore(), time.Hour)
	assert.Error(t, sw.Start("not a spec"))

	require.NoError(t, sw.Start("@every 1h"))
	sw.Stop()
}

func TestRedisKeys(t *testing.T) {
	orderID, dpID := uuid.New(), uuid.New()
	key := model.TrackingKey{OrderID: orderID, DeliveryPersonID: dpID}
	assert.Equal(t, "tracking:"+orderID.String()+":"+dpID.String(), redisKey(key))

	assert.Equal(t, "tracking:*:*", scanPattern(model.TrackingFilter{}))
	assert.Equal(t, "tracking:"+orderID.String()+":*", scanPattern(model.TrackingFilter{OrderID: &orderID}))
	assert.Equal(t, "tracking:*:"+dpID.String(), scanPattern(model.TrackingFilter{DeliveryPersonID: &dpID}))
}
