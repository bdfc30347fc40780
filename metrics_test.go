package consultqueue

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetrics_QueueActivity(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewMetrics(reg)
	q := NewConsultQueue(WithMetrics(m))

	mustRegister(t, q, "a", 10)
	mustRegister(t, q, "b", 20)
	mustRegister(t, q, "c", 30)
	_, err := q.RegisterPatient("", 40)
	require.Error(t, err)

	assert.Equal(t, float64(3), testutil.ToFloat64(m.Registered))
	assert.Equal(t, float64(1), testutil.ToFloat64(m.Rejected))
	assert.Equal(t, float64(3), testutil.ToFloat64(m.Waiting))

	_, ok := q.NextPatient()
	require.True(t, ok)
	assert.Equal(t, float64(1), testutil.ToFloat64(m.Consulted))
	assert.Equal(t, float64(2), testutil.ToFloat64(m.Waiting))

	// empty-queue calls are not consultations
	q.NextPatient()
	q.NextPatient()
	q.NextPatient()
	assert.Equal(t, float64(3), testutil.ToFloat64(m.Consulted))
	assert.Equal(t, float64(0), testutil.ToFloat64(m.Waiting))

	q.SnapshotDescending()
	count, err := testutil.GatherAndCount(reg, "consultq_queue_snapshot_duration_seconds")
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestMetrics_NilIsNoop(t *testing.T) {
	var m *Metrics
	assert.NotPanics(t, func() {
		m.observeRegistered(1)
		m.observeRejected()
		m.observeConsulted(0)
		m.observeSnapshot(0)
	})
}

func TestMetrics_UnregisteredCollectors(t *testing.T) {
	m := NewMetrics(nil)
	m.observeRegistered(4)
	assert.Equal(t, float64(4), testutil.ToFloat64(m.Waiting))
}
