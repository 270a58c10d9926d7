package metrics

import (
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestMetrics_RecordBookingOutcome(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewWithRegisterer("salon-booking", reg)

	m.RecordBookingOutcome("created")
	m.RecordBookingOutcome("conflict")
	m.RecordBookingOutcome("conflict")

	assert.Equal(t, 1.0, testutil.ToFloat64(m.bookingOutcomes.WithLabelValues("salon-booking", "created")))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.bookingOutcomes.WithLabelValues("salon-booking", "conflict")))
}

func TestMetrics_RecordDBQuery(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewWithRegisterer("salon-booking", reg)

	m.RecordDBQuery("query", nil, 3*time.Millisecond)
	m.RecordDBQuery("exec", errors.New("boom"), time.Millisecond)

	assert.Equal(t, 1.0, testutil.ToFloat64(m.dbQueriesTotal.WithLabelValues("salon-booking", "query", "ok")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.dbQueriesTotal.WithLabelValues("salon-booking", "exec", "error")))
}

func TestMetrics_RecordHTTPRequest(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewWithRegisterer("salon-booking", reg)

	m.RecordHTTPRequest("GET", "/api/v1/appointments/slots", 200, 10*time.Millisecond)

	assert.Equal(t, 1.0, testutil.ToFloat64(
		m.httpRequestsTotal.WithLabelValues("salon-booking", "GET", "/api/v1/appointments/slots", "200")))
}
