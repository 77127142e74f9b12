package pagination

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	pagesFetched = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "instagram_pages_fetched_total",
		Help: "Total upstream pages fetched by category",
	}, []string{"category"})

	streamItems = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "instagram_stream_items_total",
		Help: "Records delivered by streams, by category and source",
	}, []string{"category", "source"}) // source: "cache", "upstream"

	streamAborts = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "instagram_stream_aborts_total",
		Help: "Streams ended by an error, by category",
	}, []string{"category"})
)
