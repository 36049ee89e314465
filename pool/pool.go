package pool

import (
	"sort"

	"github.com/Moaila/tdma/types"
	"github.com/puzpuzpuz/xsync/v4"
)

// Pool is the round-spanning slot resource pool.
//
// It owns the domain of slot indices together with two monotonically
// non-decreasing counters: a heat map (how often each slot has been used by
// any station across all rounds) and a conflict history (how often each slot
// was contested by two or more stations in a round's raw proposals).
//
// The coordinator is the only writer; counters are backed by concurrent maps
// so that heat snapshots and coolest-slot queries remain safe when station
// queries are issued in parallel. Pool methods never mutate caller-provided
// collections.
type Pool struct {
	numSlots  int
	heat      *xsync.Map[types.Slot, int]
	conflicts *xsync.Map[types.Slot, int]
}

// Compile-time assertion that Pool implements HeatReader.
var _ types.HeatReader = (*Pool)(nil)

// New creates a resource pool over the slot domain [0, numSlots).
//
// Parameters:
//   - numSlots: Size of the slot domain (must be >= 1, validated by the caller)
//
// Returns:
//   - *Pool: Initialized pool with all counters at zero
func New(numSlots int) *Pool {
	return &Pool{
		numSlots:  numSlots,
		heat:      xsync.NewMap[types.Slot, int](),
		conflicts: xsync.NewMap[types.Slot, int](),
	}
}

// NumSlots returns the size of the slot domain.
func (p *Pool) NumSlots() int {
	return p.numSlots
}

// Heat returns the cumulative usage count for the slot (0 if never used).
func (p *Pool) Heat(slot types.Slot) int {
	h, _ := p.heat.Load(slot)
	return h
}

// Conflicts returns the number of rounds in which the slot was contested.
func (p *Pool) Conflicts(slot types.Slot) int {
	c, _ := p.conflicts.Load(slot)
	return c
}

// CoolestSlots returns up to n slots not in excluding, ordered by ascending
// heat with ties broken by ascending slot index.
//
// If fewer than n unexcluded slots exist, all of them are returned; the
// caller must handle the shortfall.
//
// Parameters:
//   - n: Maximum number of slots to return
//   - excluding: Slots to skip (may be nil)
//
// Returns:
//   - []types.Slot: Coolest candidate slots, possibly fewer than n
func (p *Pool) CoolestSlots(n int, excluding []types.Slot) []types.Slot {
	if n <= 0 {
		return nil
	}

	skip := make(map[types.Slot]struct{}, len(excluding))
	for _, s := range excluding {
		skip[s] = struct{}{}
	}

	candidates := make([]types.Slot, 0, p.numSlots)
	for i := range p.numSlots {
		s := types.Slot(i)
		if _, ok := skip[s]; ok {
			continue
		}
		candidates = append(candidates, s)
	}

	// Stable ordering: heat ascending, slot index breaks ties.
	sort.SliceStable(candidates, func(i, j int) bool {
		hi, hj := p.Heat(candidates[i]), p.Heat(candidates[j])
		if hi != hj {
			return hi < hj
		}

		return candidates[i] < candidates[j]
	})

	if len(candidates) > n {
		candidates = candidates[:n]
	}

	return candidates
}

// RecordUsage increments heat by one for every (station, slot) pair in the
// final allocation.
//
// Conflict resolution guarantees pairwise-disjoint allocations, so each slot
// is incremented at most once per round in practice.
//
// Parameters:
//   - allocation: The round's final allocation
func (p *Pool) RecordUsage(allocation types.Allocation) {
	for _, slots := range allocation {
		for _, s := range slots {
			if !p.inDomain(s) {
				continue
			}
			p.heat.Compute(s, func(old int, _ bool) (int, xsync.ComputeOp) {
				return old + 1, xsync.UpdateOp
			})
		}
	}
}

// RecordConflicts increments the conflict history by one for every slot
// appearing in more than one station's raw, pre-resolution proposal.
//
// Parameters:
//   - raw: The round's raw proposals
func (p *Pool) RecordConflicts(raw types.Proposal) {
	for _, s := range p.contestedSlots(raw) {
		p.conflicts.Compute(s, func(old int, _ bool) (int, xsync.ComputeOp) {
			return old + 1, xsync.UpdateOp
		})
	}
}

// Feedback computes the round's derived conflict/utilization picture from
// the raw proposals and the final allocation.
//
// Parameters:
//   - raw: The round's raw proposals (pre-resolution)
//   - final: The round's final allocation (post-resolution)
//
// Returns:
//   - types.Feedback: Detached snapshot; safe for callers to retain
func (p *Pool) Feedback(raw types.Proposal, final types.Allocation) types.Feedback {
	users := p.slotUsers(raw)

	conflictSlots := make([]types.Slot, 0)
	details := make(map[types.Slot][]string)
	for s, stations := range users {
		if len(stations) > 1 {
			conflictSlots = append(conflictSlots, s)
			sort.Strings(stations)
			details[s] = stations
		}
	}
	sort.Slice(conflictSlots, func(i, j int) bool { return conflictSlots[i] < conflictSlots[j] })

	idle := make([]types.Slot, 0)
	for i := range p.numSlots {
		s := types.Slot(i)
		if _, proposed := users[s]; !proposed {
			idle = append(idle, s)
		}
	}

	used := len(final.UsedSlots())

	return types.Feedback{
		ConflictSlots:   conflictSlots,
		ConflictDetails: details,
		IdleSlots:       idle,
		UsedCount:       used,
		UtilizationRate: float64(used) / float64(p.numSlots),
		HeatRanking:     p.HeatRanking(),
	}
}

// HeatRanking returns the full heat ranking, coolest first, ties broken by
// ascending slot index.
func (p *Pool) HeatRanking() []types.HeatCount {
	ranking := make([]types.HeatCount, 0, p.numSlots)
	for i := range p.numSlots {
		s := types.Slot(i)
		ranking = append(ranking, types.HeatCount{Slot: s, Heat: p.Heat(s)})
	}
	sort.SliceStable(ranking, func(i, j int) bool {
		if ranking[i].Heat != ranking[j].Heat {
			return ranking[i].Heat < ranking[j].Heat
		}

		return ranking[i].Slot < ranking[j].Slot
	})

	return ranking
}

// ConflictHistory returns a snapshot of the conflict counters for slots that
// have ever been contested.
func (p *Pool) ConflictHistory() map[types.Slot]int {
	out := make(map[types.Slot]int)
	p.conflicts.Range(func(s types.Slot, c int) bool {
		out[s] = c
		return true
	})

	return out
}

// contestedSlots returns slots requested by two or more stations, sorted.
func (p *Pool) contestedSlots(raw types.Proposal) []types.Slot {
	users := p.slotUsers(raw)

	out := make([]types.Slot, 0)
	for s, stations := range users {
		if len(stations) > 1 {
			out = append(out, s)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })

	return out
}

// slotUsers maps each in-domain proposed slot to the stations requesting it.
// A station requesting a slot twice counts once.
func (p *Pool) slotUsers(raw types.Proposal) map[types.Slot][]string {
	users := make(map[types.Slot][]string)
	for station, slots := range raw {
		seen := make(map[types.Slot]struct{}, len(slots))
		for _, s := range slots {
			if !p.inDomain(s) {
				continue
			}
			if _, dup := seen[s]; dup {
				continue
			}
			seen[s] = struct{}{}
			users[s] = append(users[s], station)
		}
	}

	return users
}

func (p *Pool) inDomain(s types.Slot) bool {
	return s >= 0 && int(s) < p.numSlots
}
