package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestWizardMetricsObserve(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewWizardMetrics(reg)

	m.ObserveSessionStarted()
	m.ObserveSessionStarted()
	m.ObserveSessionEnded("expired")
	m.ObserveSessionRestored()
	m.ObserveIntent("continue", "ok")
	m.ObserveStepTransition("Dates", "Villa")
	m.ObserveSubmission()
	m.ObserveConfirmation(1.5)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.sessionsStarted))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.activeSessions))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.intents.WithLabelValues("continue", "ok")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.confirmations))
}

func TestWizardMetricsNilSafe(t *testing.T) {
	var m *WizardMetrics
	m.ObserveSessionStarted()
	m.ObserveSessionEnded("ended")
	m.ObserveSessionRestored()
	m.ObserveIntent("back", "ok")
	m.ObserveStepTransition("Villa", "Dates")
	m.ObserveSubmission()
	m.ObserveConfirmation(0.1)
}
