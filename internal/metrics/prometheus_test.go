package metrics

import (
	"testing"

	"github.com/Moaila/tdma/types"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"
)

func TestPrometheusCollector(t *testing.T) {
	reg := prometheus.NewPedanticRegistry()
	collector := NewPrometheus(reg, "test")

	t.Run("counters and gauges record values", func(t *testing.T) {
		collector.RecordStateTransition(types.StateIdle, types.StateDemandGenerated, 0.1)
		collector.RecordStateTransition(types.StateIdle, types.StateDemandGenerated, 0.2)
		collector.RecordUtilization(0.8)
		collector.RecordConflicts(3)
		collector.RecordShortfall("AP2", 2)
		collector.RecordProposalOutcome("AP1", "parsed")
		collector.RecordProposalOutcome("AP1", "fallback")

		transitions := collector.stateTransitions.WithLabelValues("Idle", "DemandGenerated")
		require.InDelta(t, 2.0, testutil.ToFloat64(transitions), 1e-9)

		require.InDelta(t, 0.8, testutil.ToFloat64(collector.utilization), 1e-9)
		require.InDelta(t, 3.0, testutil.ToFloat64(collector.conflicts), 1e-9)
		require.InDelta(t, 2.0, testutil.ToFloat64(collector.shortfalls.WithLabelValues("AP2")), 1e-9)
		require.InDelta(t, 1.0, testutil.ToFloat64(collector.proposalOutcomes.WithLabelValues("AP1", "fallback")), 1e-9)
	})

	t.Run("histograms observe", func(t *testing.T) {
		collector.RecordRoundDuration(0.5)
		collector.RecordSuccess(4)
		collector.RecordDecisionLatency("AP1", 0.25, true)
		collector.RecordDecisionLatency("AP1", 1.5, false)

		require.InDelta(t, 1.0, testutil.ToFloat64(collector.successes), 1e-9)

		count, err := testutil.GatherAndCount(reg,
			"test_coordinator_round_duration_seconds",
			"test_coordinator_rounds_to_success",
			"test_negotiation_decision_latency_seconds",
		)
		require.NoError(t, err)
		require.Positive(t, count)
	})

	t.Run("registration happens once", func(t *testing.T) {
		// A second collector on the same registry would panic inside
		// MustRegister if ensureRegistered ran more than once per instance.
		require.NotPanics(t, func() {
			collector.RecordUtilization(0.9)
			collector.RecordUtilization(1.0)
		})
	})
}

func TestNopMetrics(t *testing.T) {
	nop := NewNop()

	require.NotPanics(t, func() {
		nop.RecordStateTransition(types.StateIdle, types.StateTerminated, 0)
		nop.RecordRoundDuration(1)
		nop.RecordSuccess(1)
		nop.RecordDecisionLatency("AP1", 0.1, true)
		nop.RecordProposalOutcome("AP1", "parsed")
		nop.RecordConflicts(1)
		nop.RecordUtilization(0.5)
		nop.RecordShortfall("AP1", 1)
	})
}
