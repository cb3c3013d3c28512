package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const (
	PathFast   = "fast"
	PathHashed = "hashed"
)

var (
	ContainerNamesDerived = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "jobname_container_names_derived_total",
		Help: "Total number of container names derived, by digest algorithm and path (fast or hashed)",
	}, []string{"algorithm", "path"})
	ContainerNameErrors = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "jobname_container_name_errors_total",
		Help: "Total number of rejected derivation requests",
	}, []string{"reason"})
	ContainerNamesValidated = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "jobname_container_names_validated_total",
		Help: "Total number of container names checked against the naming rules",
	}, []string{"result"})
	APIRequestDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "jobname_api_request_duration_seconds",
		Help:    "Latency of HTTP API requests",
		Buckets: prometheus.DefBuckets,
	}, []string{"route", "status"})
)

func init() {
	prometheus.MustRegister(ContainerNamesDerived)
	prometheus.MustRegister(ContainerNameErrors)
	prometheus.MustRegister(ContainerNamesValidated)
	prometheus.MustRegister(APIRequestDuration)
}

// ObserveDerivation counts one derivation.
func ObserveDerivation(algorithm string, hashed bool) {
	path := PathFast
	if hashed {
		path = PathHashed
	}
	ContainerNamesDerived.WithLabelValues(algorithm, path).Inc()
}

// ObserveValidation counts one validated name.
func ObserveValidation(valid bool) {
	result := "valid"
	if !valid {
		result = "invalid"
	}
	ContainerNamesValidated.WithLabelValues(result).Inc()
}

// MetricsHandler returns an http.Handler exposing Prometheus metrics.
func MetricsHandler() http.Handler {
	return promhttp.Handler()
}
