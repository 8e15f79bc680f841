package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewUsesIndependentRegistries(t *testing.T) {
	a := New()
	b := New()

	a.EstimatesTotal.WithLabelValues("estimate", "kitchen-remodel", "success").Inc()

	assert.Equal(t, 1.0, testutil.ToFloat64(a.EstimatesTotal.WithLabelValues("estimate", "kitchen-remodel", "success")))
	assert.Equal(t, 0.0, testutil.ToFloat64(b.EstimatesTotal.WithLabelValues("estimate", "kitchen-remodel", "success")))
}

func TestHandlerExposesCollectors(t *testing.T) {
	m := New()
	m.ExpensesCreated.Inc()

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "buildaide_expenses_created_total 1")
}
