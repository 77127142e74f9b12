// Package metrics exposes the Prometheus metrics of the Instagram client.
// All metrics are defined in their respective packages (cache, client,
// pagination) via promauto and land in the default registry.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Registry is the default Prometheus registry used by the client.
// All metrics are automatically registered via promauto in their respective packages.
var Registry = prometheus.DefaultRegisterer

// Handler serves the default registry in the Prometheus text format.
func Handler() http.Handler {
	return promhttp.Handler()
}

// Metrics Documentation
//
// Cache Metrics (pkg/cache):
//   - instagram_cache_hits_total{category} (Counter): Cache hits by category
//   - instagram_cache_misses_total{category} (Counter): Cache misses by category
//   - instagram_cache_writes_total{category} (Counter): Records written by category
//   - instagram_cache_written_bytes_total{category} (Counter): Serialized bytes written
//   - instagram_cache_errors_total{operation} (Counter): Cache backend and decode errors
//
// Request Metrics (pkg/client):
//   - instagram_requests_total{endpoint, status} (Counter): Upstream requests by path and HTTP status
//   - instagram_request_duration_seconds{endpoint} (Histogram): Upstream request duration
//   - instagram_errors_total{class} (Counter): Errors by class (client, server, network, timeout, decoding, fail_status)
//
// Pagination Metrics (pkg/pagination):
//   - instagram_pages_fetched_total{category} (Counter): Upstream pages fetched
//   - instagram_stream_items_total{category, source} (Counter): Records delivered, source is cache or upstream
//   - instagram_stream_aborts_total{category} (Counter): Streams ended by an error
//
// Example Prometheus Queries:
//
//   # Cache Hit Rate
//   sum(rate(instagram_cache_hits_total[5m])) /
//   (sum(rate(instagram_cache_hits_total[5m])) + sum(rate(instagram_cache_misses_total[5m])))
//
//   # Pages per fetch
//   rate(instagram_pages_fetched_total[5m]) / rate(instagram_cache_misses_total[5m])
//
//   # Upstream failure rate
//   rate(instagram_errors_total[5m])
//
//   # P95 Request Latency
//   histogram_quantile(0.95, rate(instagram_request_duration_seconds_bucket[5m]))
