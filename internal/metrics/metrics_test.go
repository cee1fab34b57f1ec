package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestCountersAreExposed(t *testing.T) {
	before := testutil.ToFloat64(AdminLogins.WithLabelValues(OutcomeRejected))
	AdminLogins.WithLabelValues(OutcomeRejected).Inc()
	assert.Equal(t, before+1, testutil.ToFloat64(AdminLogins.WithLabelValues(OutcomeRejected)))

	IntakeSubmissions.WithLabelValues("booking", OutcomeOK).Inc()

	rec := httptest.NewRecorder()
	Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "admin_logins_total")
	assert.Contains(t, rec.Body.String(), `intake_submissions_total{kind="booking",outcome="ok"}`)
}
