package cache

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// CacheHits tracks cache hits by category
	CacheHits = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "instagram_cache_hits_total",
			Help: "Total number of Instagram cache hits",
		},
		[]string{"category"},
	)

	// CacheMisses tracks cache misses by category
	CacheMisses = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "instagram_cache_misses_total",
			Help: "Total number of Instagram cache misses",
		},
		[]string{"category"},
	)

	// CacheWrites tracks records written (list appends and scalar sets)
	CacheWrites = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "instagram_cache_writes_total",
			Help: "Total number of records written to the Instagram cache",
		},
		[]string{"category"},
	)

	// CacheBytesWritten tracks serialized bytes written by category
	CacheBytesWritten = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "instagram_cache_written_bytes_total",
			Help: "Total serialized bytes written to the Instagram cache",
		},
		[]string{"category"},
	)

	// CacheErrors tracks cache operation errors
	CacheErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "instagram_cache_errors_total",
			Help: "Total number of cache operation errors",
		},
		[]string{"operation"}, // "range", "append", "get", "set", "decode"
	)
)
