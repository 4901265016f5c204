package store

import (
	"context"
	"encoding/json"
	"sort"
	"time"

	"github.com/go-redis/redis/v8"

	"logiroute/ms-delivery/pkg/model"
)

const (
	keyPrefix = "tracking:"
	scanBatch = 200
)

// RedisStore keeps one JSON value per key. Records also expire through the
// redis TTL set on every write.
type RedisStore struct {
	client redis.UniversalClient
	ttl    time.Duration
}

func NewRedisStore(client redis.UniversalClient, ttl time.Duration) *RedisStore {
	return &RedisStore{client: client, ttl: ttl}
}

func NewRedisClient(addr, password string, db int) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
}

func redisKey(key model.TrackingKey) string {
	return keyPrefix + key.OrderID.String() + ":" + key.DeliveryPersonID.String()
}

// scanPattern narrows the SCAN when the filter pins the order.
func scanPattern(filter model.TrackingFilter) string {
	order, dp := "*", "*"
	if filter.OrderID != nil {
		order = filter.OrderID.String()
	}
	if filter.DeliveryPersonID != nil {
		dp = filter.DeliveryPersonID.String()
	}
	return keyPrefix + order + ":" + dp
}

func (s *RedisStore) Save(ctx context.Context, t model.DeliveryTracking) error {
	b, err := json.Marshal(t)
	if err != nil {
		return err
	}
	return s.client.Set(ctx, redisKey(t.Key()), b, s.ttl).Err()
}

func (s *RedisStore) Get(ctx context.Context, key model.TrackingKey) (model.DeliveryTracking, error) {
	b, err := s.client.Get(ctx, redisKey(key)).Bytes()
	if err == redis.Nil {
		return model.DeliveryTracking{}, ErrNotFound
	}
	if err != nil {
		return model.DeliveryTracking{}, err
	}
	var t model.DeliveryTracking
	if err := json.Unmarshal(b, &t); err != nil {
		return model.DeliveryTracking{}, err
	}
	return t, nil
}

func (s *RedisStore) keys(ctx context.Context, pattern string) ([]string, error) {
	var (
		cursor uint64
		res    []string
	)
	for {
		batch, next, err := s.client.Scan(ctx, cursor, pattern, scanBatch).Result()
		if err != nil {
			return nil, err
		}
		res = append(res, batch...)
		cursor = next
		if cursor == 0 {
			return res, nil
		}
	}
}

func (s *RedisStore) List(ctx context.Context, filter model.TrackingFilter) ([]model.DeliveryTracking, error) {
	keys, err := s.keys(ctx, scanPattern(filter))
	if err != nil {
		return nil, err
	}
	res := make([]model.DeliveryTracking, 0, len(keys))
	if len(keys) == 0 {
		return res, nil
	}

	values, err := s.client.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, err
	}
	for _, v := range values {
		// expired between SCAN and MGET
		str, ok := v.(string)
		if !ok {
			continue
		}
		var t model.DeliveryTracking
		if err := json.Unmarshal([]byte(str), &t); err != nil {
			return nil, err
		}
		if matches(t, filter) {
			res = append(res, t)
		}
	}
	sort.Slice(res, func(i, j int) bool {
		return res[i].UpdatedAt.After(res[j].UpdatedAt)
	})
	return res, nil
}

func (s *RedisStore) Delete(ctx context.Context, key model.TrackingKey) error {
	n, err := s.client.Del(ctx, redisKey(key)).Result()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *RedisStore) DeleteOlderThan(ctx context.Context, before time.Time) (int, error) {
	list, err := s.List(ctx, model.TrackingFilter{})
	if err != nil {
		return 0, err
	}
	var stale []string
	for _, t := range list {
		if t.UpdatedAt.Before(before) {
			stale = append(stale, redisKey(t.Key()))
		}
	}
	if len(stale) == 0 {
		return 0, nil
	}
	n, err := s.client.Del(ctx, stale...).Result()
	return int(n), err
}
