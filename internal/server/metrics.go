package server

import (
	"net/http"
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Collector holds the Prometheus metrics of the API server and the sheets
// gateway. It satisfies sheets.MetricsRecorder so the gateway can be pointed
// at it directly.
type Collector struct {
	httpRequests *prometheus.CounterVec
	sheetsCalls  *prometheus.CounterVec
}

// NewCollector registers the metrics on the given registry.
func NewCollector(reg prometheus.Registerer) *Collector {
	c := &Collector{
		httpRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "joyintra_http_requests_total",
			Help: "API requests by method, route, and status code.",
		}, []string{"method", "route", "status"}),
		sheetsCalls: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "joyintra_sheets_calls_total",
			Help: "Upstream Sheets API calls by operation and result.",
		}, []string{"op", "result"}),
	}
	reg.MustRegister(c.httpRequests, c.sheetsCalls)
	return c
}

// RecordHTTPRequest counts one served request.
func (c *Collector) RecordHTTPRequest(method, route string, status int) {
	c.httpRequests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
}

// RecordSheetsCall counts one upstream Sheets API call.
func (c *Collector) RecordSheetsCall(op string, err error) {
	result := "ok"
	if err != nil {
		result = "error"
	}
	c.sheetsCalls.WithLabelValues(op, result).Inc()
}

// MetricsHandler returns the Prometheus scrape handler for the registry.
func MetricsHandler(gatherer prometheus.Gatherer) http.Handler {
	return promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})
}
