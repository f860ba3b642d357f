package server

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Download and render outcomes used as the result label.
const (
	resultOK              = "ok"
	resultUnauthenticated = "unauthenticated"
	resultForbidden       = "forbidden"
	resultBadRequest      = "bad_request"
	resultNotFound        = "not_found"
	resultError           = "error"
)

// Metrics holds the server's Prometheus metrics, registered on their own
// registry so each server exposes only its own series.
type Metrics struct {
	Registry *prometheus.Registry

	// Downloads counts download requests by result.
	Downloads *prometheus.CounterVec

	// DownloadBytes counts bytes streamed to clients.
	DownloadBytes prometheus.Counter

	// DownloadDuration observes download handling time in seconds.
	DownloadDuration prometheus.Histogram

	// Renders counts JATS renders by result.
	Renders *prometheus.CounterVec

	// RenderDuration observes render time in seconds.
	RenderDuration prometheus.Histogram
}

// NewMetrics creates the metrics on a new registry that also carries the
// Go runtime and process collectors.
func NewMetrics() *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	factory := promauto.With(reg)

	return &Metrics{
		Registry: reg,
		Downloads: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "jatstemplate",
			Subsystem: "download",
			Name:      "requests_total",
			Help:      "Download requests by result.",
		}, []string{"result"}),
		DownloadBytes: factory.NewCounter(prometheus.CounterOpts{
			Namespace: "jatstemplate",
			Subsystem: "download",
			Name:      "bytes_total",
			Help:      "Bytes streamed by the download endpoint.",
		}),
		DownloadDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: "jatstemplate",
			Subsystem: "download",
			Name:      "duration_seconds",
			Help:      "Download handling time in seconds.",
			Buckets:   prometheus.DefBuckets,
		}),
		Renders: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "jatstemplate",
			Subsystem: "render",
			Name:      "requests_total",
			Help:      "JATS renders by result.",
		}, []string{"result"}),
		RenderDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: "jatstemplate",
			Subsystem: "render",
			Name:      "duration_seconds",
			Help:      "JATS render time in seconds.",
			Buckets:   prometheus.DefBuckets,
		}),
	}
}

func (m *Metrics) observeDownload(result string, bytes int64, d time.Duration) {
	m.Downloads.WithLabelValues(result).Inc()
	if bytes > 0 {
		m.DownloadBytes.Add(float64(bytes))
	}
	m.DownloadDuration.Observe(d.Seconds())
}

func (m *Metrics) observeRender(result string, d time.Duration) {
	m.Renders.WithLabelValues(result).Inc()
	m.RenderDuration.Observe(d.Seconds())
}
