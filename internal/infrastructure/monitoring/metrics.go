// Package monitoring provides Prometheus metrics for the generation
// pipeline and webhook integrations.
package monitoring

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the application's Prometheus collectors
type Metrics struct {
	GenerationsTotal   *prometheus.CounterVec
	GenerationFailures *prometheus.CounterVec
	ImageFallbacks     prometheus.Counter
	VideoModelRetries  prometheus.Counter
	WebhookFailures    *prometheus.CounterVec
	ImportedPosts      prometheus.Counter
	GenerationDuration *prometheus.HistogramVec
}

// NewMetrics registers and returns the application metrics
func NewMetrics(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)

	return &Metrics{
		GenerationsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "receitario_generations_total",
			Help: "AI generation calls by operation and outcome",
		}, []string{"operation", "outcome"}),

		GenerationFailures: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "receitario_generation_failures_total",
			Help: "Surfaced AI generation failures by operation",
		}, []string{"operation"}),

		ImageFallbacks: factory.NewCounter(prometheus.CounterOpts{
			Name: "receitario_image_fallbacks_total",
			Help: "Image generations that fell back to the stock photo",
		}),

		VideoModelRetries: factory.NewCounter(prometheus.CounterOpts{
			Name: "receitario_video_model_retries_total",
			Help: "Video jobs retried on the fallback model",
		}),

		WebhookFailures: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "receitario_webhook_failures_total",
			Help: "Outbound webhook failures by integration",
		}, []string{"webhook"}),

		ImportedPosts: factory.NewCounter(prometheus.CounterOpts{
			Name: "receitario_imported_posts_total",
			Help: "WordPress posts converted into recipes",
		}),

		GenerationDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "receitario_generation_duration_seconds",
			Help:    "AI generation latency by operation",
			Buckets: prometheus.ExponentialBuckets(0.5, 2, 10),
		}, []string{"operation"}),
	}
}
