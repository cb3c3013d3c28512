package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"
)

func TestObserveDerivation(t *testing.T) {
	ContainerNamesDerived.Reset()
	defer ContainerNamesDerived.Reset()

	ObserveDerivation("sha1", false)
	ObserveDerivation("sha1", true)
	ObserveDerivation("sha1", true)

	require.Equal(t, 1.0, testutil.ToFloat64(ContainerNamesDerived.WithLabelValues("sha1", PathFast)))
	require.Equal(t, 2.0, testutil.ToFloat64(ContainerNamesDerived.WithLabelValues("sha1", PathHashed)))
}

func TestObserveValidation(t *testing.T) {
	ContainerNamesValidated.Reset()
	defer ContainerNamesValidated.Reset()

	ObserveValidation(true)
	ObserveValidation(false)

	require.Equal(t, 1.0, testutil.ToFloat64(ContainerNamesValidated.WithLabelValues("valid")))
	require.Equal(t, 1.0, testutil.ToFloat64(ContainerNamesValidated.WithLabelValues("invalid")))
}

func TestMetricsHandlerExposesCounters(t *testing.T) {
	ContainerNameErrors.WithLabelValues("empty_job_id").Inc()

	w := httptest.NewRecorder()
	MetricsHandler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, w.Code)
	require.Contains(t, w.Body.String(), "jobname_container_name_errors_total")
}
