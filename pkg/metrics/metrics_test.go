package metrics

import (
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestMetrics_SlotClaims(t *testing.T) {
	m := NewWithRegistry("carwash-test", prometheus.NewRegistry())

	m.ObserveSlotClaim(ClaimOutcomeWon, 5*time.Millisecond)
	m.ObserveSlotClaim(ClaimOutcomeConflict, time.Millisecond)
	m.ObserveSlotClaim(ClaimOutcomeConflict, time.Millisecond)

	assert.Equal(t, 1.0, testutil.ToFloat64(m.slotClaimsTotal.WithLabelValues("carwash-test", ClaimOutcomeWon)))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.slotClaimsTotal.WithLabelValues("carwash-test", ClaimOutcomeConflict)))
}

func TestMetrics_HTTPAndDB(t *testing.T) {
	m := NewWithRegistry("carwash-test", prometheus.NewRegistry())

	m.ObserveHTTPRequest("GET", "/api/v1/services", 200, 10*time.Millisecond)
	m.ObserveDBQuery("query", time.Millisecond, nil)
	m.ObserveDBQuery("exec", time.Millisecond, errors.New("boom"))
	m.SetDBConnections(5, 2, 3)

	assert.Equal(t, 1.0, testutil.ToFloat64(m.httpRequestsTotal.WithLabelValues("carwash-test", "GET", "/api/v1/services", "200")))
	assert.Equal(t, 0.0, testutil.ToFloat64(m.dbQueryErrors.WithLabelValues("carwash-test", "query")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.dbQueryErrors.WithLabelValues("carwash-test", "exec")))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.dbConnections.WithLabelValues("carwash-test", "in_use")))
	assert.Equal(t, "carwash-test", m.ServiceName())
}
