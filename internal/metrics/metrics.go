package metrics

import "github.com/prometheus/client_golang/prometheus"

const (
	OutcomeBlocked   = "blocked"
	OutcomeSubmitted = "submitted"
	OutcomeFailed    = "failed"
	OutcomeRejected  = "rejected"
)

// BookingMetrics exposes counters/histograms for booking sessions.
type BookingMetrics struct {
	sessionsOpened   prometheus.Counter
	submissions      *prometheus.CounterVec
	submitLatency    prometheus.Histogram
	availabilityHits *prometheus.CounterVec
}

func NewBookingMetrics(reg prometheus.Registerer) *BookingMetrics {
	m := &BookingMetrics{
		sessionsOpened: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "pestbooking",
			Subsystem: "session",
			Name:      "opened_total",
			Help:      "Total booking sessions opened",
		}),
		submissions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "pestbooking",
			Subsystem: "session",
			Name:      "submissions_total",
			Help:      "Submit attempts by outcome",
		}, []string{"outcome", "pack"}),
		submitLatency: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "pestbooking",
			Subsystem: "session",
			Name:      "submission_latency_seconds",
			Help:      "Latency of the submission boundary call",
			Buckets:   prometheus.DefBuckets,
		}),
		availabilityHits: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "pestbooking",
			Subsystem: "availability",
			Name:      "week_lookups_total",
			Help:      "Week availability lookups by cache result",
		}, []string{"cache"}),
	}
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	reg.MustRegister(m.sessionsOpened, m.submissions, m.submitLatency, m.availabilityHits)
	return m
}

func (m *BookingMetrics) SessionOpened() {
	if m == nil {
		return
	}
	m.sessionsOpened.Inc()
}

func (m *BookingMetrics) ObserveSubmission(outcome, pack string) {
	if m == nil {
		return
	}
	m.submissions.WithLabelValues(outcome, pack).Inc()
}

func (m *BookingMetrics) ObserveSubmitLatency(seconds float64) {
	if m == nil {
		return
	}
	m.submitLatency.Observe(seconds)
}

func (m *BookingMetrics) ObserveWeekLookup(cacheHit bool) {
	if m == nil {
		return
	}
	label := "miss"
	if cacheHit {
		label = "hit"
	}
	m.availabilityHits.WithLabelValues(label).Inc()
}
