package metrics

import "github.com/prometheus/client_golang/prometheus"

// DecoyMetrics exposes counters/histograms for reply orchestration and case reporting.
// All methods are safe on a nil receiver.
type DecoyMetrics struct {
	repliesTotal  *prometheus.CounterVec
	replyLatency  *prometheus.HistogramVec
	reportsTotal  *prometheus.CounterVec
	verdictsTotal *prometheus.CounterVec
	poolRejected  prometheus.Counter
}

func NewDecoyMetrics(reg prometheus.Registerer) *DecoyMetrics {
	m := &DecoyMetrics{
		repliesTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "honeypot",
			Subsystem: "reply",
			Name:      "total",
			Help:      "Replies sent to the counterpart by provenance",
		}, []string{"provenance"}),
		replyLatency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "honeypot",
			Subsystem: "reply",
			Name:      "latency_seconds",
			Help:      "Time to produce a reply, including the completion race",
			Buckets:   []float64{.005, .05, .25, .5, 1, 2, 3, 4, 5, 8},
		}, []string{"provenance"}),
		reportsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "honeypot",
			Subsystem: "report",
			Name:      "total",
			Help:      "Case report dispatch outcomes",
		}, []string{"outcome"}),
		verdictsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "honeypot",
			Subsystem: "intel",
			Name:      "verdicts_total",
			Help:      "Extraction verdicts per turn",
		}, []string{"critical"}),
		poolRejected: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "honeypot",
			Subsystem: "completion",
			Name:      "pool_rejected_total",
			Help:      "Completion jobs that could not be queued before the reply deadline",
		}),
	}
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	reg.MustRegister(m.repliesTotal, m.replyLatency, m.reportsTotal, m.verdictsTotal, m.poolRejected)
	return m
}

func (m *DecoyMetrics) ObserveReply(provenance string, seconds float64) {
	if m == nil {
		return
	}
	m.repliesTotal.WithLabelValues(provenance).Inc()
	m.replyLatency.WithLabelValues(provenance).Observe(seconds)
}

func (m *DecoyMetrics) ObserveReport(outcome string) {
	if m == nil {
		return
	}
	m.reportsTotal.WithLabelValues(outcome).Inc()
}

func (m *DecoyMetrics) ObserveVerdict(critical bool) {
	if m == nil {
		return
	}
	label := "false"
	if critical {
		label = "true"
	}
	m.verdictsTotal.WithLabelValues(label).Inc()
}

func (m *DecoyMetrics) ObservePoolRejected() {
	if m == nil {
		return
	}
	m.poolRejected.Inc()
}
