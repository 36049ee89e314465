package metrics

import (
	"sync"

	"github.com/Moaila/tdma/types"
	"github.com/prometheus/client_golang/prometheus"
)

// PrometheusCollector implements types.MetricsCollector backed by Prometheus.
type PrometheusCollector struct {
	reg       prometheus.Registerer
	namespace string
	once      sync.Once

	stateTransitions *prometheus.CounterVec
	roundDuration    prometheus.Histogram
	roundsToSuccess  prometheus.Histogram
	successes        prometheus.Counter
	decisionLatency  *prometheus.HistogramVec
	proposalOutcomes *prometheus.CounterVec
	conflicts        prometheus.Counter
	conflictsPerRnd  prometheus.Histogram
	utilization      prometheus.Gauge
	shortfalls       *prometheus.CounterVec
}

// Compile-time assertion that PrometheusCollector implements MetricsCollector.
var _ types.MetricsCollector = (*PrometheusCollector)(nil)

// NewPrometheus creates a new Prometheus-backed metrics collector.
//
// Parameters:
//   - reg: Prometheus registerer interface (uses prometheus.DefaultRegisterer if nil)
//   - namespace: Prometheus metrics namespace (defaults to "tdma" if empty)
//
// Returns:
//   - *PrometheusCollector: A MetricsCollector implementation using Prometheus
func NewPrometheus(reg prometheus.Registerer, namespace string) *PrometheusCollector {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	if namespace == "" {
		namespace = "tdma"
	}

	return &PrometheusCollector{reg: reg, namespace: namespace}
}

func (p *PrometheusCollector) ensureRegistered() {
	p.once.Do(func() {
		p.stateTransitions = prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: p.namespace,
			Subsystem: "coordinator",
			Name:      "state_transitions_total",
			Help:      "Total coordinator state transitions by from/to state.",
		}, []string{"from", "to"})

		p.roundDuration = prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: p.namespace,
			Subsystem: "coordinator",
			Name:      "round_duration_seconds",
			Help:      "Wall-clock duration of one full allocation round.",
			Buckets:   []float64{0.01, 0.05, 0.25, 1, 2.5, 5, 10, 30, 60},
		})

		p.roundsToSuccess = prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: p.namespace,
			Subsystem: "coordinator",
			Name:      "rounds_to_success",
			Help:      "Rounds elapsed between consecutive perfect allocations.",
			Buckets:   []float64{1, 2, 3, 5, 8, 13, 21, 34, 55, 100, 200},
		})

		p.successes = prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: p.namespace,
			Subsystem: "coordinator",
			Name:      "successes_total",
			Help:      "Total perfect rounds (full utilization, zero raw conflicts).",
		})

		p.decisionLatency = prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: p.namespace,
			Subsystem: "negotiation",
			Name:      "decision_latency_seconds",
			Help:      "Latency of decision source queries by station and result.",
			Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
		}, []string{"station", "result"})

		p.proposalOutcomes = prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: p.namespace,
			Subsystem: "negotiation",
			Name:      "proposal_outcomes_total",
			Help:      "Raw proposal handling outcomes by station (parsed/repaired/fallback/degenerate).",
		}, []string{"station", "outcome"})

		p.conflicts = prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: p.namespace,
			Subsystem: "allocation",
			Name:      "conflicts_total",
			Help:      "Total contested slots across all rounds' raw proposals.",
		})

		p.conflictsPerRnd = prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: p.namespace,
			Subsystem: "allocation",
			Name:      "conflicts_per_round",
			Help:      "Contested slots in one round's raw proposals.",
			Buckets:   []float64{0, 1, 2, 3, 5, 8, 13, 21},
		})

		p.utilization = prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: p.namespace,
			Subsystem: "allocation",
			Name:      "utilization_rate",
			Help:      "Utilization rate of the latest round's final allocation.",
		})

		p.shortfalls = prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: p.namespace,
			Subsystem: "allocation",
			Name:      "shortfall_slots_total",
			Help:      "Slots denied to stations due to domain exhaustion.",
		}, []string{"station"})

		p.reg.MustRegister(
			p.stateTransitions,
			p.roundDuration,
			p.roundsToSuccess,
			p.successes,
			p.decisionLatency,
			p.proposalOutcomes,
			p.conflicts,
			p.conflictsPerRnd,
			p.utilization,
			p.shortfalls,
		)
	})
}

// CoordinatorMetrics implementation

// RecordStateTransition counts a coordinator state transition.
func (p *PrometheusCollector) RecordStateTransition(from, to types.State, _ float64) {
	p.ensureRegistered()
	p.stateTransitions.WithLabelValues(from.String(), to.String()).Inc()
}

// RecordRoundDuration observes one round's wall-clock duration.
func (p *PrometheusCollector) RecordRoundDuration(duration float64) {
	p.ensureRegistered()
	p.roundDuration.Observe(duration)
}

// RecordSuccess counts a perfect round and observes the rounds it took.
func (p *PrometheusCollector) RecordSuccess(rounds int) {
	p.ensureRegistered()
	p.successes.Inc()
	p.roundsToSuccess.Observe(float64(rounds))
}

// NegotiationMetrics implementation

// RecordDecisionLatency observes one decision source query.
func (p *PrometheusCollector) RecordDecisionLatency(station string, duration float64, success bool) {
	p.ensureRegistered()
	result := "ok"
	if !success {
		result = "error"
	}
	p.decisionLatency.WithLabelValues(station, result).Observe(duration)
}

// RecordProposalOutcome counts how a raw proposal was handled.
func (p *PrometheusCollector) RecordProposalOutcome(station, outcome string) {
	p.ensureRegistered()
	p.proposalOutcomes.WithLabelValues(station, outcome).Inc()
}

// AllocationMetrics implementation

// RecordConflicts counts the round's contested slots.
func (p *PrometheusCollector) RecordConflicts(count int) {
	p.ensureRegistered()
	p.conflicts.Add(float64(count))
	p.conflictsPerRnd.Observe(float64(count))
}

// RecordUtilization sets the latest round's utilization rate.
func (p *PrometheusCollector) RecordUtilization(rate float64) {
	p.ensureRegistered()
	p.utilization.Set(rate)
}

// RecordShortfall counts slots a station was denied.
func (p *PrometheusCollector) RecordShortfall(station string, missing int) {
	p.ensureRegistered()
	p.shortfalls.WithLabelValues(station).Add(float64(missing))
}
