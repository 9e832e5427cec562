package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	HTTPRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "http_requests_total", Help: "HTTP requests by path and status"},
		[]string{"path", "status"},
	)
	HTTPRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{Name: "http_request_duration_seconds", Help: "HTTP request latency", Buckets: prometheus.DefBuckets},
		[]string{"path"},
	)
	LedgerCallDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{Name: "ledger_call_duration_seconds", Help: "Ledger contract call latency", Buckets: prometheus.DefBuckets},
		[]string{"method"},
	)
	LedgerErrorsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "ledger_errors_total", Help: "Ledger call failures by method"},
		[]string{"method"},
	)
	LedgerRetriesTotal = prometheus.NewCounter(
		prometheus.CounterOpts{Name: "ledger_retries_total", Help: "Ledger call retry attempts"},
	)
)

// Init builds the service's own registry so the exposition contains only
// collectors registered here plus the standard Go/process ones.
func Init() *prometheus.Registry {
	reg := prometheus.NewRegistry()
	toRegister := []prometheus.Collector{
		HTTPRequestsTotal, HTTPRequestDuration,
		LedgerCallDuration, LedgerErrorsTotal, LedgerRetriesTotal,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	}
	for _, c := range toRegister {
		_ = reg.Register(c)
	}
	return reg
}

// Handler returns the exposition handler for the given registry.
func Handler(reg *prometheus.Registry) http.Handler {
	return promhttp.HandlerFor(reg, promhttp.HandlerOpts{})
}
