package types

// HeatCount pairs a slot with its cumulative usage count. Feedback carries
// the full heat ranking sorted by ascending heat so decision sources can
// bias toward cool slots.
type HeatCount struct {
	Slot Slot `json:"slot"`
	Heat int  `json:"heat"`
}

// Feedback is the derived, read-only picture of one round: which slots were
// contested before resolution, which went unused, and how much of the domain
// the final allocation covers.
//
// Feedback is computed by the resource pool from the round's raw proposals
// and final allocation; it never aliases pool internals.
type Feedback struct {
	// ConflictSlots lists slots requested by two or more stations in the raw
	// proposals, sorted ascending.
	ConflictSlots []Slot `json:"conflictSlots"`

	// ConflictDetails maps each contested slot to the stations that
	// requested it.
	ConflictDetails map[Slot][]string `json:"conflictDetails,omitempty"`

	// IdleSlots lists slots that appear in no station's raw proposal,
	// sorted ascending.
	IdleSlots []Slot `json:"idleSlots"`

	// UsedCount is the number of distinct slots in the final allocation.
	UsedCount int `json:"usedCount"`

	// UtilizationRate is UsedCount divided by the domain size, in [0, 1].
	UtilizationRate float64 `json:"utilizationRate"`

	// HeatRanking is the pool's cumulative usage ranking, coolest first,
	// ties broken by ascending slot index.
	HeatRanking []HeatCount `json:"heatRanking"`
}

// ConflictCount returns the number of contested slots in the raw proposals.
func (f *Feedback) ConflictCount() int {
	return len(f.ConflictSlots)
}
