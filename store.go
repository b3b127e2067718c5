// Copyright (c) 2026 Nlaak Studios (https://nlaak.com)
// Author: Andrew Donelson (https://www.linkedin.com/in/andrew-donelson/)
//
// store.go — Store[T], a keyspace-scoped typed view over a caller-supplied
// go-redis client. Every value goes through a Bridge[T]; an absent key is
// reported as ErrMiss, corrupt or unexpected replies keep their category.

package rediscodec

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/AndrewDonelson/rediscodec/internal/clock"
	"github.com/AndrewDonelson/rediscodec/internal/metrics"
	"github.com/redis/go-redis/v9"
	"go.opentelemetry.io/otel/metric"
)

// Re-export types so callers only import this package.
type (
	MetricsRecorder = metrics.MetricsRecorder
	Clock           = clock.Clock
)

// NewOTelRecorder returns a MetricsRecorder that reports through meter.
func NewOTelRecorder(meter metric.Meter) (MetricsRecorder, error) {
	r, err := metrics.NewOTel(meter)
	if err != nil {
		return nil, err
	}
	return r, nil
}

// StoreConfig configures a Store.
type StoreConfig struct {
	// Keyspace names the kind of value stored; it is part of every key.
	Keyspace string
	// KeyPrefix, when set, is prepended to every key (e.g. an app name).
	KeyPrefix string
	// DefaultTTL applies when Set is called with ttl == 0. Zero means no expiry.
	DefaultTTL time.Duration

	// Optional overrideable components
	Codec   Codec
	Logger  Logger
	Metrics MetricsRecorder
	Clock   Clock
}

func (c *StoreConfig) defaults() {
	if c.Logger == nil {
		c.Logger = noopLogger{}
	}
	if c.Metrics == nil {
		c.Metrics = metrics.Noop{}
	}
	if c.Clock == nil {
		c.Clock = clock.Real{}
	}
}

func (c *StoreConfig) validate() error {
	if c.Keyspace == "" {
		return fmt.Errorf("%w: keyspace is required", ErrInvalidConfig)
	}
	if c.DefaultTTL < 0 {
		return fmt.Errorf("%w: default TTL must not be negative", ErrInvalidConfig)
	}
	return nil
}

// setArgsPool pools the []any slice used to build SET command arguments.
var setArgsPool = sync.Pool{
	New: func() any {
		s := make([]any, 0, 6) // "set", key, value, "ex"/"px", ttl, (spare)
		return &s
	},
}

// Store reads and writes values of T under one keyspace.
type Store[T any] struct {
	client redis.UniversalClient
	bridge *Bridge[T]
	cfg    StoreConfig
	base   string
	hits   atomic.Int64
	misses atomic.Int64
}

// NewStore creates a Store over client.
func NewStore[T any](client redis.UniversalClient, cfg StoreConfig) (*Store[T], error) {
	if client == nil {
		return nil, fmt.Errorf("%w: client is required", ErrInvalidConfig)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	cfg.defaults()

	var opts []Option
	if cfg.Codec != nil {
		opts = append(opts, WithCodec(cfg.Codec))
	}
	base := cfg.Keyspace + ":"
	if cfg.KeyPrefix != "" {
		base = cfg.KeyPrefix + ":" + base
	}
	return &Store[T]{
		client: client,
		bridge: New[T](opts...),
		cfg:    cfg,
		base:   base,
	}, nil
}

// Bridge returns the bridge the store converts values with.
func (s *Store[T]) Bridge() *Bridge[T] { return s.bridge }

// Key returns the Redis key for id.
func (s *Store[T]) Key(id string) string {
	return s.base + id
}

func (s *Store[T]) observe(op string) func() {
	start := s.cfg.Clock.Now()
	return func() {
		s.cfg.Metrics.RecordLatency(op, clock.Since(s.cfg.Clock, start))
	}
}

func (s *Store[T]) fail(op, key string, err error) error {
	if cat, ok := CategoryOf(err); ok {
		s.cfg.Metrics.RecordError(op, cat.String())
		s.cfg.Logger.Warn("rediscodec: unusable value", "op", op, "key", key, "category", cat.String(), "err", err)
		return err
	}
	s.cfg.Metrics.RecordError(op, "client")
	s.cfg.Logger.Error("rediscodec: redis command failed", "op", op, "key", key, "err", err)
	return fmt.Errorf("rediscodec %s %s: %w", op, key, err)
}

// set sends a SET command using a pooled args slice.
//   - ttl < 1s  → PX (millisecond precision, at least 1ms)
//   - ttl >= 1s → EX (second precision)
//   - ttl == redis.KeepTTL → KEEPTTL
//   - ttl <= 0 (other) → no expiry argument
func (s *Store[T]) set(ctx context.Context, key string, payload []any, ttl time.Duration) error {
	ap := setArgsPool.Get().(*[]any)
	args := append((*ap)[:0], "set", key)
	args = append(args, payload...)
	switch {
	case ttl > 0 && ttl < time.Second:
		args = append(args, "px", max(ttl.Milliseconds(), 1))
	case ttl > 0:
		args = append(args, "ex", int64(ttl.Seconds()))
	case ttl == redis.KeepTTL:
		args = append(args, "keepttl")
	}
	err := s.client.Do(ctx, args...).Err()
	for i := range args {
		args[i] = nil
	}
	*ap = args[:0]
	setArgsPool.Put(ap)
	return err
}

func (s *Store[T]) ttl(ttl time.Duration) time.Duration {
	if ttl == 0 {
		return s.cfg.DefaultTTL
	}
	return ttl
}

// Set stores v under id. A zero ttl uses the configured default.
func (s *Store[T]) Set(ctx context.Context, id string, v T, ttl time.Duration) error {
	defer s.observe("set")()
	k := s.Key(id)
	payload, err := s.bridge.ToStoreArgs(v)
	if err != nil {
		return s.fail("set", k, err)
	}
	if err := s.set(ctx, k, payload, s.ttl(ttl)); err != nil {
		return s.fail("set", k, err)
	}
	return nil
}

// Get loads the value stored under id.
// Returns ErrMiss when the key is absent; caller must check errors.Is(err, ErrMiss).
func (s *Store[T]) Get(ctx context.Context, id string) (T, error) {
	defer s.observe("get")()
	k := s.Key(id)
	v, err := s.bridge.FromCmd(s.client.Get(ctx, k))
	if err != nil {
		var zero T
		if IsNil(err) {
			s.misses.Add(1)
			s.cfg.Metrics.RecordMiss(s.cfg.Keyspace)
			return zero, ErrMiss
		}
		return zero, s.fail("get", k, err)
	}
	s.hits.Add(1)
	s.cfg.Metrics.RecordHit(s.cfg.Keyspace)
	return v, nil
}

// Exists checks whether id is present.
func (s *Store[T]) Exists(ctx context.Context, id string) (bool, error) {
	k := s.Key(id)
	n, err := s.client.Exists(ctx, k).Result()
	if err != nil {
		return false, s.fail("exists", k, err)
	}
	return n > 0, nil
}

// Delete removes id. Deleting an absent key is not an error.
func (s *Store[T]) Delete(ctx context.Context, id string) error {
	k := s.Key(id)
	if err := s.client.Del(ctx, k).Err(); err != nil && !errors.Is(err, redis.Nil) {
		return s.fail("delete", k, err)
	}
	return nil
}

// KV is an id/value pair for batch writes.
type KV[T any] struct {
	ID    string
	Value T
}

// SetMany writes all kvs in one pipeline round-trip. Nothing is sent if any
// value fails to encode.
func (s *Store[T]) SetMany(ctx context.Context, kvs []KV[T], ttl time.Duration) error {
	defer s.observe("set-many")()
	payloads := make([][]byte, len(kvs))
	for i, kv := range kvs {
		b, err := s.bridge.Encode(kv.Value)
		if err != nil {
			return s.fail("set-many", s.Key(kv.ID), err)
		}
		payloads[i] = b
	}
	ttl = s.ttl(ttl)
	if ttl < 0 && ttl != redis.KeepTTL {
		ttl = 0
	}
	pipe := s.client.Pipeline()
	for i, kv := range kvs {
		pipe.Set(ctx, s.Key(kv.ID), payloads[i], ttl)
	}
	if _, err := pipe.Exec(ctx); err != nil {
		return s.fail("set-many", s.base+"*", err)
	}
	return nil
}

// GetMany loads ids in one pipeline round-trip. Absent ids are left out of
// the result; any other failure aborts the whole call.
func (s *Store[T]) GetMany(ctx context.Context, ids []string) (map[string]T, error) {
	defer s.observe("get-many")()
	pipe := s.client.Pipeline()
	cmds := make([]*redis.StringCmd, len(ids))
	for i, id := range ids {
		cmds[i] = pipe.Get(ctx, s.Key(id))
	}
	// Per-command errors (redis.Nil included) are inspected below.
	_, _ = pipe.Exec(ctx)

	result := make(map[string]T, len(ids))
	for i, cmd := range cmds {
		v, err := s.bridge.FromCmd(cmd)
		if err != nil {
			if IsNil(err) {
				s.misses.Add(1)
				s.cfg.Metrics.RecordMiss(s.cfg.Keyspace)
				continue
			}
			return nil, s.fail("get-many", s.Key(ids[i]), err)
		}
		s.hits.Add(1)
		s.cfg.Metrics.RecordHit(s.cfg.Keyspace)
		result[ids[i]] = v
	}
	return result, nil
}

// Stats holds hit and miss counts.
type Stats struct {
	Hits   int64
	Misses int64
}

// Stats returns current statistics.
func (s *Store[T]) Stats() Stats {
	return Stats{Hits: s.hits.Load(), Misses: s.misses.Load()}
}
