package metrics

import "github.com/prometheus/client_golang/prometheus"

// WizardMetrics exposes counters/histograms for booking wizard sessions.
type WizardMetrics struct {
	sessionsStarted   prometheus.Counter
	sessionsEnded     *prometheus.CounterVec
	activeSessions    prometheus.Gauge
	intents           *prometheus.CounterVec
	stepTransitions   *prometheus.CounterVec
	submissions       prometheus.Counter
	confirmations     prometheus.Counter
	submissionLatency prometheus.Histogram
}

func NewWizardMetrics(reg prometheus.Registerer) *WizardMetrics {
	m := &WizardMetrics{
		sessionsStarted: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "resort",
			Subsystem: "booking",
			Name:      "sessions_started_total",
			Help:      "Total booking wizard sessions started",
		}),
		sessionsEnded: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "resort",
			Subsystem: "booking",
			Name:      "sessions_ended_total",
			Help:      "Total booking wizard sessions ended",
		}, []string{"reason"}),
		activeSessions: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "resort",
			Subsystem: "booking",
			Name:      "active_sessions",
			Help:      "Booking wizard sessions held in memory",
		}),
		intents: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "resort",
			Subsystem: "booking",
			Name:      "intents_total",
			Help:      "Wizard intents by type and outcome",
		}, []string{"intent", "outcome"}),
		stepTransitions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "resort",
			Subsystem: "booking",
			Name:      "step_transitions_total",
			Help:      "Wizard step changes",
		}, []string{"from", "to"}),
		submissions: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "resort",
			Subsystem: "booking",
			Name:      "submissions_total",
			Help:      "Bookings submitted for confirmation",
		}),
		confirmations: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "resort",
			Subsystem: "booking",
			Name:      "confirmations_total",
			Help:      "Bookings confirmed",
		}),
		submissionLatency: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "resort",
			Subsystem: "booking",
			Name:      "submission_latency_seconds",
			Help:      "Time from submit to confirmation",
			Buckets:   prometheus.DefBuckets,
		}),
	}
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	reg.MustRegister(
		m.sessionsStarted,
		m.sessionsEnded,
		m.activeSessions,
		m.intents,
		m.stepTransitions,
		m.submissions,
		m.confirmations,
		m.submissionLatency,
	)
	return m
}

func (m *WizardMetrics) ObserveSessionStarted() {
	if m == nil {
		return
	}
	m.sessionsStarted.Inc()
	m.activeSessions.Inc()
}

// ObserveSessionRestored counts a session rehydrated from a snapshot as active
// without counting it as a new start.
func (m *WizardMetrics) ObserveSessionRestored() {
	if m == nil {
		return
	}
	m.activeSessions.Inc()
}

func (m *WizardMetrics) ObserveSessionEnded(reason string) {
	if m == nil {
		return
	}
	m.sessionsEnded.WithLabelValues(reason).Inc()
	m.activeSessions.Dec()
}

func (m *WizardMetrics) ObserveIntent(intent, outcome string) {
	if m == nil {
		return
	}
	m.intents.WithLabelValues(intent, outcome).Inc()
}

func (m *WizardMetrics) ObserveStepTransition(from, to string) {
	if m == nil {
		return
	}
	m.stepTransitions.WithLabelValues(from, to).Inc()
}

func (m *WizardMetrics) ObserveSubmission() {
	if m == nil {
		return
	}
	m.submissions.Inc()
}

func (m *WizardMetrics) ObserveConfirmation(seconds float64) {
	if m == nil {
		return
	}
	m.confirmations.Inc()
	m.submissionLatency.Observe(seconds)
}
