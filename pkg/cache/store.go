package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/Sternrassler/instagram-api-client/pkg/apierr"
	"github.com/Sternrassler/instagram-api-client/pkg/logging"
)

// DefaultTTL is the expiration applied on every write.
const DefaultTTL = 3600 * time.Second

var (
	// ErrCacheMiss indicates the requested key was not found in cache
	ErrCacheMiss = errors.New("cache miss")

	// ErrCorruptEntry indicates a stored record could not be decoded
	ErrCorruptEntry = errors.New("corrupt cache entry")
)

// Store is the Redis-backed cache. List categories are Redis lists appended
// with RPUSH; the scalar category is a plain string value. Every write resets
// the key's TTL; reads never touch it.
type Store struct {
	redis  *redis.Client
	ttl    time.Duration
	logger zerolog.Logger
}

// NewStore creates a cache store. A non-positive ttl selects DefaultTTL.
func NewStore(redisClient *redis.Client, ttl time.Duration) *Store {
	if redisClient == nil {
		panic("redis client cannot be nil")
	}
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Store{
		redis:  redisClient,
		ttl:    ttl,
		logger: logging.NewLogger("cache"),
	}
}

// TTL returns the expiration applied on writes.
func (s *Store) TTL() time.Duration {
	return s.ttl
}

// Range returns every raw entry of a list key in insertion order.
// Returns ErrCacheMiss if the key doesn't exist.
func (s *Store) Range(ctx context.Context, key Key) ([][]byte, error) {
	values, err := s.redis.LRange(ctx, key.String(), 0, -1).Result()
	if err != nil {
		CacheErrors.WithLabelValues("range").Inc()
		return nil, apierr.CacheBackend("cache range", fmt.Errorf("redis lrange %s: %w", key, err))
	}

	// Redis never keeps empty lists, so an empty range means the key is absent.
	if len(values) == 0 {
		CacheMisses.WithLabelValues(string(key.Category)).Inc()
		return nil, ErrCacheMiss
	}

	CacheHits.WithLabelValues(string(key.Category)).Inc()
	entries := make([][]byte, len(values))
	for i, v := range values {
		entries[i] = []byte(v)
	}
	return entries, nil
}

// Append pushes data to the tail of a list key and resets the key's TTL.
// Both commands run in one MULTI/EXEC transaction.
func (s *Store) Append(ctx context.Context, key Key, data []byte) error {
	cacheKey := key.String()

	_, err := s.redis.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.RPush(ctx, cacheKey, data)
		pipe.Expire(ctx, cacheKey, s.ttl)
		return nil
	})
	if err != nil {
		CacheErrors.WithLabelValues("append").Inc()
		return apierr.CacheBackend("cache append", fmt.Errorf("redis rpush %s: %w", cacheKey, err))
	}

	CacheWrites.WithLabelValues(string(key.Category)).Inc()
	CacheBytesWritten.WithLabelValues(string(key.Category)).Add(float64(len(data)))
	return nil
}

// Get returns the raw value of a scalar key.
// Returns ErrCacheMiss if the key doesn't exist.
func (s *Store) Get(ctx context.Context, key Key) ([]byte, error) {
	data, err := s.redis.Get(ctx, key.String()).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			CacheMisses.WithLabelValues(string(key.Category)).Inc()
			return nil, ErrCacheMiss
		}
		CacheErrors.WithLabelValues("get").Inc()
		return nil, apierr.CacheBackend("cache get", fmt.Errorf("redis get %s: %w", key, err))
	}

	CacheHits.WithLabelValues(string(key.Category)).Inc()
	return data, nil
}

// Set stores the value of a scalar key with the store's TTL.
func (s *Store) Set(ctx context.Context, key Key, data []byte) error {
	if err := s.redis.Set(ctx, key.String(), data, s.ttl).Err(); err != nil {
		CacheErrors.WithLabelValues("set").Inc()
		return apierr.CacheBackend("cache set", fmt.Errorf("redis set %s: %w", key, err))
	}

	CacheWrites.WithLabelValues(string(key.Category)).Inc()
	CacheBytesWritten.WithLabelValues(string(key.Category)).Add(float64(len(data)))
	return nil
}

func (s *Store) corrupt(op string, key Key, err error) error {
	CacheErrors.WithLabelValues("decode").Inc()
	s.logger.Error().Err(err).Str("key", key.String()).Msg("Stored record cannot be decoded")
	return apierr.CacheBackend(op, fmt.Errorf("%w: %s: %v", ErrCorruptEntry, key, err))
}
