package store

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"

	"logiroute/ms-delivery/pkg/metrics"
	"logiroute/ms-delivery/pkg/model"
)

// Sweeper periodically drops tracking records older than the retention window.
type Sweeper struct {
	store     TrackingStore
	retention time.Duration
	cron      *cron.Cron
	now       func() time.Time
}

func NewSweeper(store TrackingStore, retention time.Duration) *Sweeper {
	return &Sweeper{
		store:     store,
		retention: retention,
		cron:      cron.New(),
		now:       time.Now,
	}
}

// Start schedules the sweep with a cron spec such as "@every 10m".
func (s *Sweeper) Start(spec string) error {
	if _, err := s.cron.AddFunc(spec, func() { s.Sweep(context.Background()) }); err != nil {
		return err
	}
	s.cron.Start()
	return nil
}

func (s *Sweeper) Stop() {
	<-s.cron.Stop().Done()
}

func (s *Sweeper) Sweep(ctx context.Context) int {
	log := logrus.WithContext(ctx).WithField("func", "Sweeper.Sweep")

	n, err := s.store.DeleteOlderThan(ctx, s.now().Add(-s.retention))
	if err != nil {
		log.WithError(err).Error("error_500: sweep tracking store")
		return 0
	}
	if n > 0 {
		log.WithField("removed", n).Info("swept stale tracking records")
	}
	if list, err := s.store.List(ctx, model.TrackingFilter{}); err == nil {
		metrics.SetActiveTrackings(len(list))
	}
	return n
}
