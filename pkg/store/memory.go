package store

import (
	"context"
	"sort"
	"sync"
	"time"

	"logiroute/ms-delivery/pkg/model"
)

type MemoryStore struct {
	mu      sync.RWMutex
	records map[model.TrackingKey]model.DeliveryTracking
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{records: make(map[model.TrackingKey]model.DeliveryTracking)}
}

func (s *MemoryStore) Save(_ context.Context, t model.DeliveryTracking) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records[t.Key()] = t
	return nil
}

func (s *MemoryStore) Get(_ context.Context, key model.TrackingKey) (model.DeliveryTracking, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	t, ok := s.records[key]
	if !ok {
		return model.DeliveryTracking{}, ErrNotFound
	}
	return t, nil
}

func (s *MemoryStore) List(_ context.Context, filter model.TrackingFilter) ([]model.DeliveryTracking, error) {
	s.mu.RLock()
	res := make([]model.DeliveryTracking, 0, len(s.records))
	for _, t := range s.records {
		if matches(t, filter) {
			res = append(res, t)
		}
	}
	s.mu.RUnlock()

	sort.Slice(res, func(i, j int) bool {
		return res[i].UpdatedAt.After(res[j].UpdatedAt)
	})
	return res, nil
}

func (s *MemoryStore) Delete(_ context.Context, key model.TrackingKey) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.records[key]; !ok {
		return ErrNotFound
	}
	delete(s.records, key)
	return nil
}

func (s *MemoryStore) DeleteOlderThan(_ context.Context, before time.Time) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for k, t := range s.records {
		if t.UpdatedAt.Before(before) {
			delete(s.records, k)
			n++
		}
	}
	return n, nil
}

func (s *MemoryStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.records)
}
