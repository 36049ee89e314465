package tdma

import "github.com/Moaila/tdma/types"

// Re-export types from the types subpackage.
//
// This file provides a stable public API for the library's core types and
// interfaces. It uses type aliases to re-export definitions from the `types`
// subpackage, which contains the actual implementations.
//
// This pattern solves the "import cycle" problem by allowing internal
// packages to depend on `types` without depending on the root `tdma`
// package, while still providing a convenient `tdma.State`, `tdma.Demand`,
// etc. for users.
type (
	State           = types.State
	Slot            = types.Slot
	Demand          = types.Demand
	Proposal        = types.Proposal
	Allocation      = types.Allocation
	ValidatedSet    = types.ValidatedSet
	Feedback        = types.Feedback
	HeatCount       = types.HeatCount
	RoundResult     = types.RoundResult
	SuccessRecord   = types.SuccessRecord
	DecisionRequest = types.DecisionRequest
)

// Re-export interfaces from the types subpackage for convenience.
type (
	DecisionSource    = types.DecisionSource
	RecordStore       = types.RecordStore
	ReplacementPicker = types.ReplacementPicker
	OrderPolicy       = types.OrderPolicy
	HeatReader        = types.HeatReader
	MetricsCollector  = types.MetricsCollector
	Logger            = types.Logger
	Hooks             = types.Hooks
)

// Re-export State constants from the types subpackage.
const (
	StateIdle            = types.StateIdle
	StateDemandGenerated = types.StateDemandGenerated
	StateNegotiating     = types.StateNegotiating
	StateResolved        = types.StateResolved
	StateRecorded        = types.StateRecorded
	StateTerminated      = types.StateTerminated
)

// RecordTimestampLayout is the timestamp format used in success records.
const RecordTimestampLayout = types.RecordTimestampLayout
