package metrics

import (
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestService(t *testing.T) {
	reg := prometheus.NewRegistry()
	s := NewService(reg)

	s.IncScansRun()
	s.IncScansRun()
	s.AddCounterWrites(3, 5)
	s.IncCommandsHandled("scan")
	s.IncNotifFailed("slack")

	assert.Equal(t, 2.0, testutil.ToFloat64(s.ScansRun))
	assert.Equal(t, 3.0, testutil.ToFloat64(s.CounterWrites.WithLabelValues("inserted")))
	assert.Equal(t, 5.0, testutil.ToFloat64(s.CounterWrites.WithLabelValues("updated")))
	assert.Equal(t, 1.0, testutil.ToFloat64(s.CommandsHandled.WithLabelValues("scan")))
	assert.Equal(t, 1.0, testutil.ToFloat64(s.NotifFailed.WithLabelValues("slack")))

	rr := httptest.NewRecorder()
	NewMetricsHandler(reg).ServeHTTP(rr, httptest.NewRequest("GET", "/metrics", nil))
	require.Equal(t, 200, rr.Code)
	assert.Contains(t, rr.Body.String(), "riverwatch_scans_total 2")
}
