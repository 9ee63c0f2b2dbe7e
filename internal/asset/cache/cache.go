// Package cache decorates the asset store with a Redis read-through cache.
// Registration checks from the licensing gate are the hot read path; cache
// failures degrade to store reads and never fail the call.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"tokenbound/internal/asset"
	"tokenbound/pkg/domain"
)

const keyPrefix = "asset:"

// Store decorates an asset.Store with cached lookups.
type Store struct {
	next   asset.Store
	client *redis.Client
	ttl    time.Duration
	logger *slog.Logger
}

// New wraps next with a Redis cache. ttl bounds how long a cached record may
// be served; records are immutable once registered, so the TTL only limits
// memory, not staleness.
func New(next asset.Store, client *redis.Client, ttl time.Duration, logger *slog.Logger) *Store {
	return &Store{next: next, client: client, ttl: ttl, logger: logger}
}

// cachedRecord is the serialized cache entry. Address fields use their text
// form via the domain marshalers.
type cachedRecord struct {
	Key          string         `json:"key"`
	AccountID    domain.Address `json:"account_id"`
	Name         string         `json:"name"`
	URI          string         `json:"uri"`
	RegisteredAt time.Time      `json:"registered_at"`
	Registered   bool           `json:"registered"`
}

func (s *Store) CreateIfAbsent(ctx context.Context, record asset.Record) (asset.Record, bool, error) {
	stored, created, err := s.next.CreateIfAbsent(ctx, record)
	if err != nil {
		return asset.Record{}, false, err
	}
	s.save(ctx, stored)
	return stored, created, nil
}

func (s *Store) Find(ctx context.Context, key domain.Key) (asset.Record, error) {
	if record, ok := s.load(ctx, keyPrefix+key.String()); ok {
		return record, nil
	}
	record, err := s.next.Find(ctx, key)
	if err != nil {
		return asset.Record{}, err
	}
	s.save(ctx, record)
	return record, nil
}

func (s *Store) FindByAccount(ctx context.Context, accountID domain.Address) (asset.Record, error) {
	if record, ok := s.load(ctx, keyPrefix+accountID.String()); ok {
		return record, nil
	}
	record, err := s.next.FindByAccount(ctx, accountID)
	if err != nil {
		return asset.Record{}, err
	}
	s.save(ctx, record)
	return record, nil
}

func (s *Store) load(ctx context.Context, cacheKey string) (asset.Record, bool) {
	payload, err := s.client.Get(ctx, cacheKey).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			s.logger.WarnContext(ctx, "asset cache read failed", "cache_key", cacheKey, "error", err)
		}
		return asset.Record{}, false
	}
	var cached cachedRecord
	if err := json.Unmarshal(payload, &cached); err != nil {
		return asset.Record{}, false
	}
	key, err := domain.ParseKey(cached.Key)
	if err != nil {
		return asset.Record{}, false
	}
	return asset.Record{
		Key:          key,
		AccountID:    cached.AccountID,
		Name:         cached.Name,
		URI:          cached.URI,
		RegisteredAt: cached.RegisteredAt,
		Registered:   cached.Registered,
	}, true
}

func (s *Store) save(ctx context.Context, record asset.Record) {
	payload, err := json.Marshal(cachedRecord{
		Key:          record.Key.String(),
		AccountID:    record.AccountID,
		Name:         record.Name,
		URI:          record.URI,
		RegisteredAt: record.RegisteredAt,
		Registered:   record.Registered,
	})
	if err != nil {
		return
	}
	pipe := s.client.Pipeline()
	pipe.Set(ctx, keyPrefix+record.Key.String(), payload, s.ttl)
	pipe.Set(ctx, keyPrefix+record.AccountID.String(), payload, s.ttl)
	if _, err := pipe.Exec(ctx); err != nil {
		s.logger.WarnContext(ctx, "asset cache write failed", "key", record.Key.String(), "error", err)
	}
}
