package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPrometheusRecorder(t *testing.T) {
	reg := prometheus.NewRegistry()
	rec, err := NewPrometheusRecorder(reg)
	require.NoError(t, err)

	labels := map[string]string{LabelEnvironment: "sandbox"}
	rec.IncCounter(PaymentSucceeded, labels)
	rec.IncCounter(PaymentSucceeded, labels)
	rec.IncCounter(ValidationFailed, nil)
	rec.ObserveLatency("process_payment", 150*time.Millisecond, labels)

	assert.Equal(t, 2.0, testutil.ToFloat64(rec.counters.WithLabelValues(PaymentSucceeded, "sandbox")))
	assert.Equal(t, 1.0, testutil.ToFloat64(rec.counters.WithLabelValues(ValidationFailed, "")))
	assert.Equal(t, 1, testutil.CollectAndCount(rec.histogram))
}

func TestPrometheusRecorderDuplicateRegistration(t *testing.T) {
	reg := prometheus.NewRegistry()
	_, err := NewPrometheusRecorder(reg)
	require.NoError(t, err)

	_, err = NewPrometheusRecorder(reg)
	assert.Error(t, err)
}

var (
	_ Recorder = NoopRecorder{}
	_ Recorder = (*PrometheusRecorder)(nil)
)
