package demand

import (
	"fmt"
	"math"
	"math/rand/v2"

	"github.com/Moaila/tdma/types"
)

const (
	defaultBaseMin = 1
	defaultBaseMax = 4
)

// Planner derives per-station slot entitlements for a round, subject to the
// pool's total capacity.
type Planner struct {
	numSlots int
	baseMin  int
	baseMax  int
	rng      *rand.Rand
}

// Option configures a Planner.
type Option func(*Planner)

// WithRand sets the random source used for base draws and drift correction.
//
// Inject a seeded source for deterministic tests; the default source is
// seeded from the process-wide generator.
//
// Parameters:
//   - rng: Random source
//
// Returns:
//   - Option: Functional option for New
func WithRand(rng *rand.Rand) Option {
	return func(p *Planner) {
		p.rng = rng
	}
}

// WithBaseRange sets the inclusive range of the per-station base draw.
//
// The defaults (1-4) match the demand dynamics the system was tuned with.
//
// Parameters:
//   - minBase: Smallest base value (>= 1)
//   - maxBase: Largest base value (>= minBase)
//
// Returns:
//   - Option: Functional option for New
func WithBaseRange(minBase, maxBase int) Option {
	return func(p *Planner) {
		p.baseMin = minBase
		p.baseMax = maxBase
	}
}

// New creates a demand planner for the given slot domain size.
//
// Parameters:
//   - numSlots: Size of the slot domain
//   - opts: Optional configuration (WithRand, WithBaseRange)
//
// Returns:
//   - *Planner: Initialized planner
func New(numSlots int, opts ...Option) *Planner {
	p := &Planner{
		numSlots: numSlots,
		baseMin:  defaultBaseMin,
		baseMax:  defaultBaseMax,
	}
	for _, opt := range opts {
		opt(p)
	}
	if p.rng == nil {
		p.rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}

	return p
}

// Generate produces a demand table for the given stations.
//
// The algorithm draws a random base value per station, then reconciles the
// total against the slot domain: a surplus domain is distributed
// proportionally to base weights with a rounding-drift correction pass, an
// oversubscribed draw is scaled down proportionally (floor, minimum 1) with
// the same correction. Post-condition: every value >= 1 and the values sum
// exactly to numSlots.
//
// Parameters:
//   - stations: Station identifiers, in canonical order
//
// Returns:
//   - types.Demand: Entitlement table satisfying the post-condition
//   - error: When stations is empty or there are more stations than slots
//     (the per-station minimum of 1 would be unsatisfiable - a configuration
//     error, rejected before any round runs)
func (p *Planner) Generate(stations []string) (types.Demand, error) {
	numStations := len(stations)
	if numStations == 0 {
		return nil, fmt.Errorf("%w: no stations", types.ErrInvalidConfig)
	}
	if numStations > p.numSlots {
		return nil, fmt.Errorf("%w: %d stations, %d slots", types.ErrTooManyStations, numStations, p.numSlots)
	}

	base := make([]int, numStations)
	total := 0
	for i := range base {
		base[i] = p.baseMin + p.rng.IntN(p.baseMax-p.baseMin+1)
		total += base[i]
	}

	var final []int
	if total <= p.numSlots {
		final = p.distributeSurplus(base, total)
	} else {
		final = p.scaleDown(base, total)
	}

	out := make(types.Demand, numStations)
	for i, station := range stations {
		out[station] = final[i]
	}

	return out, nil
}

// distributeSurplus spreads the unclaimed remainder proportionally to each
// station's base weight, then corrects rounding drift one unit at a time.
func (p *Planner) distributeSurplus(base []int, total int) []int {
	remainder := p.numSlots - total

	additions := make([]int, len(base))
	sum := 0
	for i, b := range base {
		additions[i] = int(math.Round(float64(remainder) * float64(b) / float64(total)))
		sum += additions[i]
	}

	for sum != remainder {
		idx := p.rng.IntN(len(base))
		if sum < remainder {
			additions[idx]++
			sum++
		} else if additions[idx] > 0 {
			additions[idx]--
			sum--
		}
	}

	final := make([]int, len(base))
	for i := range base {
		final[i] = base[i] + additions[i]
	}

	return final
}

// scaleDown shrinks an oversubscribed draw proportionally (minimum 1), then
// corrects drift one unit at a time without violating the minimum.
func (p *Planner) scaleDown(base []int, total int) []int {
	scaled := make([]int, len(base))
	sum := 0
	for i, b := range base {
		scaled[i] = max(1, int(math.Round(float64(b)*float64(p.numSlots)/float64(total))))
		sum += scaled[i]
	}

	for sum != p.numSlots {
		idx := p.rng.IntN(len(base))
		if sum < p.numSlots {
			scaled[idx]++
			sum++
		} else if scaled[idx] > 1 {
			scaled[idx]--
			sum--
		}
	}

	return scaled
}
