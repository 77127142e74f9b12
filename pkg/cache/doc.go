// Package cache provides the Redis-backed result cache of the Instagram API
// client.
//
// Each result category has its own key namespace:
//
//	account_info:<handle>   string, one encoded AccountInfo
//	posts:<handle>          list, one encoded Post per entry
//	followers:<handle>      list, one encoded Follower per entry
//	comments:<media id>     list, one encoded Comment per entry
//	likes:<media id>        list, one encoded LikeUser per entry
//
// List keys are append-only. Each append runs RPUSH and EXPIRE in a single
// MULTI/EXEC so an item is never stored without a refreshed TTL. Any list key
// holding at least one entry is treated as the complete result for its
// identifier; only TTL expiry evicts it.
//
// # Basic Usage
//
//	redisClient := redis.NewClient(&redis.Options{Addr: "localhost:6379"})
//	store := cache.NewStore(redisClient, cache.DefaultTTL)
//
//	posts := cache.NewList[schema.Post](store, cache.CategoryPosts)
//	if err := posts.Append(ctx, "instagram", post); err != nil {
//		return err
//	}
//
//	cached, found, err := posts.Get(ctx, "instagram")
//	if err != nil {
//		return err
//	}
//	if !found {
//		// never cached, or expired
//	}
//
// Records are encoded with msgpack using their json field names.
//
// # Errors
//
// Backend failures are returned as apierr.KindCacheBackend and are never
// retried. A stored record that cannot be decoded is also a cache backend
// error, wrapping ErrCorruptEntry.
//
// # Metrics
//
//   - instagram_cache_hits_total{category}
//   - instagram_cache_misses_total{category}
//   - instagram_cache_writes_total{category}
//   - instagram_cache_written_bytes_total{category}
//   - instagram_cache_errors_total{operation}
package cache
