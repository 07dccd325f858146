package www

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/angas/solarsavings-go/savings"
)

type metrics struct {
	requestsTotal    *prometheus.CounterVec
	datasetReloads   prometheus.Counter
	datasetIntervals prometheus.Gauge
	missingPrices    prometheus.Gauge
	downloadsTotal   *prometheus.CounterVec
}

func newMetrics() *metrics {
	return &metrics{
		requestsTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: "solarsavings",
			Name:      "http_requests_total",
			Help:      "Number of HTTP requests served, by path.",
		}, []string{"path"}),
		datasetReloads: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: "solarsavings",
			Name:      "dataset_reloads_total",
			Help:      "Number of times the dataset has been reloaded from source data.",
		}),
		datasetIntervals: promauto.NewGauge(prometheus.GaugeOpts{
			Namespace: "solarsavings",
			Name:      "dataset_intervals",
			Help:      "Number of metering intervals in the loaded dataset.",
		}),
		missingPrices: promauto.NewGauge(prometheus.GaugeOpts{
			Namespace: "solarsavings",
			Name:      "dataset_missing_prices",
			Help:      "Number of loaded intervals without a matching price band.",
		}),
		downloadsTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: "solarsavings",
			Name:      "report_downloads_total",
			Help:      "Number of report downloads served, by format.",
		}, []string{"format"}),
	}
}

func (m *metrics) observeDataset(d *savings.Dataset) {
	m.datasetReloads.Inc()
	m.datasetIntervals.Set(float64(d.Len()))
	m.missingPrices.Set(float64(d.MissingPriceCount()))
}

func (m *metrics) instrument(path string, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		m.requestsTotal.WithLabelValues(path).Inc()
		next(w, r)
	}
}

func metricsHandler() http.Handler {
	return promhttp.Handler()
}
