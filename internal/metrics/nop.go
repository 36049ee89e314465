// Package metrics provides MetricsCollector implementations.
package metrics

import "github.com/Moaila/tdma/types"

// NopMetrics implements a no-op metrics collector.
//
// All metrics are discarded. Useful for testing or when external
// metrics collection is used.
type NopMetrics struct{}

// Compile-time assertion that NopMetrics implements MetricsCollector.
var _ types.MetricsCollector = (*NopMetrics)(nil)

// NewNop creates a new no-op metrics collector.
//
// Returns:
//   - *NopMetrics: A new no-op metrics collector instance
func NewNop() *NopMetrics {
	return &NopMetrics{}
}

// CoordinatorMetrics implementation

// RecordStateTransition discards the state transition metric.
func (n *NopMetrics) RecordStateTransition(_ /* from */, _ /* to */ types.State, _ /* duration */ float64) {
	// No-op
}

// RecordRoundDuration discards the round duration metric.
func (n *NopMetrics) RecordRoundDuration(_ /* duration */ float64) {
	// No-op
}

// RecordSuccess discards the success metric.
func (n *NopMetrics) RecordSuccess(_ /* rounds */ int) {
	// No-op
}

// NegotiationMetrics implementation

// RecordDecisionLatency discards the decision latency metric.
func (n *NopMetrics) RecordDecisionLatency(_ /* station */ string, _ /* duration */ float64, _ /* success */ bool) {
	// No-op
}

// RecordProposalOutcome discards the proposal outcome metric.
func (n *NopMetrics) RecordProposalOutcome(_ /* station */, _ /* outcome */ string) {
	// No-op
}

// AllocationMetrics implementation

// RecordConflicts discards the conflict count metric.
func (n *NopMetrics) RecordConflicts(_ /* count */ int) {
	// No-op
}

// RecordUtilization discards the utilization metric.
func (n *NopMetrics) RecordUtilization(_ /* rate */ float64) {
	// No-op
}

// RecordShortfall discards the shortfall metric.
func (n *NopMetrics) RecordShortfall(_ /* station */ string, _ /* missing */ int) {
	// No-op
}
