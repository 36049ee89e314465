package tdma

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"slices"
	"sync"
	"sync/atomic"
	"time"

	"github.com/Moaila/tdma/demand"
	"github.com/Moaila/tdma/internal/logger"
	"github.com/Moaila/tdma/internal/metrics"
	"github.com/Moaila/tdma/internal/respparse"
	"github.com/Moaila/tdma/internal/seed"
	"github.com/Moaila/tdma/pool"
	"github.com/Moaila/tdma/record"
	"github.com/Moaila/tdma/resolve"
	"github.com/Moaila/tdma/strategy"
	"github.com/Moaila/tdma/types"
	"github.com/Moaila/tdma/validate"
)

// Coordinator drives slot negotiation rounds between stations and an
// external decision source.
//
// Each round the Coordinator:
//   - Generates or reuses a demand table summing to the slot domain
//   - Queries the decision source once per station, in policy order,
//     giving later stations the earlier stations' provisional claims
//   - Repairs each reply into a valid candidate set
//   - Resolves conflicts into a pairwise-disjoint allocation
//   - Evaluates feedback and persists a record on a perfect round
//
// Thread Safety:
//   - All public methods are safe for concurrent use
//   - Rounds are serialized; concurrent RunRound calls queue
//   - State transitions are atomic
//
// Lifecycle:
//   - Create with NewCoordinator()
//   - Call Run() to execute up to MaxRounds rounds, or RunRound() to step
//   - Use hooks to react to round results and successes
//   - Terminate() halts the run loop between rounds
type Coordinator struct {
	cfg    Config
	source DecisionSource

	// Optional dependencies
	picker  ReplacementPicker
	order   OrderPolicy
	store   RecordStore
	hooks   *Hooks
	metrics MetricsCollector
	logger  Logger

	// Internal components
	pool      *pool.Pool
	planner   *demand.Planner
	validator *validate.Validator
	resolver  *resolve.Resolver

	stations []string

	// State management
	state   atomic.Int32 // State
	started atomic.Bool

	// Round bookkeeping, guarded by mu
	mu             sync.RWMutex
	demandTable    types.Demand
	round          int
	sinceSuccess   int
	roundsOnDemand int
	lastResult     *types.RoundResult
	history        []types.RoundResult
	stateSince     time.Time

	// Serializes rounds
	runMu sync.Mutex

	// Lifecycle management
	ctx    context.Context
	cancel context.CancelFunc
}

// NewCoordinator creates a new Coordinator instance with the provided
// configuration.
//
// Returns a concrete *Coordinator struct following the "accept interfaces,
// return structs" principle. Consumers can define their own interfaces for
// testing if needed.
//
// Parameters:
//   - cfg: Runtime configuration
//   - src: Decision source queried once per station per round
//   - opts: Optional configuration (hooks, metrics, logger, record store,
//     replacement picker, order policy, seed)
//
// Returns:
//   - *Coordinator: Initialized coordinator instance
//   - error: Validation error if configuration is invalid
//
// Example:
//
//	cfg := tdma.Config{NumSlots: 10, NumStations: 3}
//	src := source.NewOpenAI(source.OpenAIConfig{APIKey: key, Model: model})
//	coord, err := tdma.NewCoordinator(&cfg, src,
//	    tdma.WithRecordStore(record.NewFS("success_records.json")),
//	)
func NewCoordinator(cfg *Config, src DecisionSource, opts ...Option) (*Coordinator, error) {
	if cfg == nil {
		return nil, ErrInvalidConfig
	}
	if src == nil {
		return nil, ErrDecisionSourceRequired
	}

	// Fill in missing configuration values with defaults
	SetDefaults(cfg)

	// Validate configuration
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	// Apply options
	options := &coordinatorOptions{}
	for _, opt := range opts {
		opt(options)
	}

	// Provide safe defaults for optional dependencies to avoid nil checks everywhere
	metricsCollector := options.metrics
	if metricsCollector == nil {
		metricsCollector = metrics.NewNop()
	}

	loggerInstance := options.logger
	if loggerInstance == nil {
		loggerInstance = logger.NewNop()
	}

	// Validate with warnings after logger is available
	cfg.ValidateWithWarnings(loggerInstance)

	hooksInstance := options.hooks
	if hooksInstance == nil {
		hooksInstance = &Hooks{}
	}

	store := options.store
	if store == nil {
		store = record.NewMemory()
	}

	picker := options.picker
	if picker == nil {
		picker = strategy.NewCoolest()
	}

	order := options.order
	if order == nil {
		order = strategy.NewFixedOrder()
	}

	rootSeed := options.seed
	if !options.seeded {
		if cfg.RunID != "" {
			rootSeed = seed.ForRun(cfg.RunID)
		} else {
			rootSeed = uint64(time.Now().UnixNano()) //nolint:gosec // non-cryptographic seed
		}
	}

	slotPool := pool.New(cfg.NumSlots)

	c := &Coordinator{
		cfg:      *cfg,
		source:   src,
		picker:   picker,
		order:    order,
		store:    store,
		hooks:    hooksInstance,
		metrics:  metricsCollector,
		logger:   loggerInstance,
		pool:     slotPool,
		stations: cfg.StationNames(),
		planner: demand.New(cfg.NumSlots,
			demand.WithRand(rand.New(rand.NewPCG(rootSeed, seed.ForRound(rootSeed, 1))))),
		validator: validate.New(cfg.NumSlots, slotPool,
			validate.WithRand(rand.New(rand.NewPCG(rootSeed, seed.ForRound(rootSeed, 2))))),
		resolver: resolve.New(cfg.NumSlots, picker),
	}

	// Initialize state
	c.state.Store(int32(StateIdle))
	c.stateSince = time.Now()

	return c, nil
}

// Run executes negotiation rounds until a cancellation or MaxRounds.
//
// Blocks until done; the coordinator transitions to StateTerminated on
// return and cannot be restarted. Cancellation is cooperative: an
// in-flight round completes (sources degrade to fallbacks) and the loop
// exits before the next round.
//
// Parameters:
//   - ctx: Context for cancellation
//
// Returns:
//   - error: Context error on cancellation, ErrAlreadyStarted on re-entry
func (c *Coordinator) Run(ctx context.Context) error {
	if !c.started.CompareAndSwap(false, true) {
		return ErrAlreadyStarted
	}
	if c.State() == StateTerminated {
		return ErrTerminated
	}

	c.mu.Lock()
	c.ctx, c.cancel = context.WithCancel(ctx)
	runCtx := c.ctx
	c.mu.Unlock()

	defer c.Terminate()

	// Load prior records so the run continues the historical collection.
	if records, err := c.store.Load(runCtx); err != nil {
		c.logger.Warn("failed to load success records", "error", err)
	} else {
		c.logger.Info("loaded success records", "count", len(records))
	}

	for i := 0; i < c.cfg.MaxRounds; i++ {
		if err := runCtx.Err(); err != nil {
			return err
		}

		if _, err := c.RunRound(runCtx); err != nil {
			return err
		}
	}

	c.logger.Info("round limit reached", "rounds", c.cfg.MaxRounds)

	return nil
}

// RunRound executes exactly one negotiation round.
//
// Useful for step-wise drivers and tests; Run() calls this in a loop.
// Concurrent calls are serialized.
//
// Parameters:
//   - ctx: Context bounding the round's decision source queries
//
// Returns:
//   - *RoundResult: The completed round's result
//   - error: ErrTerminated after termination, or a demand generation error
func (c *Coordinator) RunRound(ctx context.Context) (*types.RoundResult, error) {
	c.runMu.Lock()
	defer c.runMu.Unlock()

	if c.State() == StateTerminated {
		return nil, ErrTerminated
	}

	roundStart := time.Now()

	c.mu.Lock()
	c.round++
	round := c.round
	refresh := c.demandTable == nil ||
		(c.cfg.DemandRefreshRounds > 0 && c.roundsOnDemand >= c.cfg.DemandRefreshRounds)
	c.mu.Unlock()

	if refresh {
		table, err := c.planner.Generate(c.stations)
		if err != nil {
			return nil, fmt.Errorf("failed to generate demand: %w", err)
		}

		c.mu.Lock()
		c.demandTable = table
		c.roundsOnDemand = 0
		c.mu.Unlock()

		c.transitionState(c.State(), StateDemandGenerated)
		c.logger.Info("demand generated", "round", round, "demand", table)
	}

	c.transitionState(c.State(), StateNegotiating)

	dem := c.CurrentDemand()
	raw, validated, candidates := c.negotiate(ctx, round, dem)

	result := c.resolver.Resolve(candidates, c.pool)
	c.pool.RecordConflicts(raw)
	c.pool.RecordUsage(result.Allocation)
	feedback := c.pool.Feedback(raw, result.Allocation)

	c.transitionState(StateNegotiating, StateResolved)

	c.metrics.RecordConflicts(feedback.ConflictCount())
	c.metrics.RecordUtilization(feedback.UtilizationRate)
	for station, missing := range result.Shortfall {
		c.metrics.RecordShortfall(station, missing)
	}

	success := feedback.ConflictCount() == 0 && feedback.UtilizationRate == 1.0

	c.mu.Lock()
	c.sinceSuccess++
	c.roundsOnDemand++
	rounds := c.sinceSuccess
	c.mu.Unlock()

	roundResult := &types.RoundResult{
		Round:      round,
		Demand:     dem,
		Raw:        raw,
		Validated:  validated,
		Allocation: result.Allocation,
		Shortfall:  result.Shortfall,
		Feedback:   feedback,
		Success:    success,
	}

	if success {
		c.recordSuccess(ctx, round, rounds, dem, result.Allocation)
	} else {
		c.logger.Debug("round imperfect",
			"round", round,
			"conflicts", feedback.ConflictCount(),
			"utilization", feedback.UtilizationRate,
		)
	}

	c.transitionState(StateResolved, StateRecorded)

	c.mu.Lock()
	c.lastResult = roundResult
	c.history = append(c.history, *roundResult)
	if len(c.history) > c.cfg.HistorySize {
		c.history = c.history[len(c.history)-c.cfg.HistorySize:]
	}
	c.mu.Unlock()

	if c.hooks.OnRoundCompleted != nil {
		go func() {
			if err := c.hooks.OnRoundCompleted(c.hookCtx(), roundResult); err != nil {
				c.logger.Error("round completed hook error", "round", round, "error", err)
			}
		}()
	}

	c.metrics.RecordRoundDuration(time.Since(roundStart).Seconds())

	return roundResult, nil
}

// negotiate queries each station in policy order and validates the replies.
//
// Later stations see the slots already claimed by earlier stations plus a
// feedback snapshot of the proposals gathered so far.
func (c *Coordinator) negotiate(ctx context.Context, round int, dem types.Demand) (types.Proposal, map[string]types.ValidatedSet, []resolve.Candidate) {
	order := c.order.Order(round, c.stations)

	raw := make(types.Proposal, len(order))
	validated := make(map[string]types.ValidatedSet, len(order))
	candidates := make([]resolve.Candidate, 0, len(order))

	var prevAlloc types.Allocation
	if last := c.LastResult(); last != nil {
		prevAlloc = last.Allocation
	}

	var claimed []types.Slot

	for i, station := range order {
		req := types.DecisionRequest{
			Station:         station,
			Round:           round,
			NumSlots:        c.cfg.NumSlots,
			Expected:        dem[station],
			Demand:          dem.Clone(),
			ClaimedSlots:    slices.Clone(claimed),
			ConflictHistory: c.pool.ConflictHistory(),
		}
		if round > 1 || i > 0 {
			snapshot := c.pool.Feedback(raw, prevAlloc)
			req.Feedback = &snapshot
		}

		slots, err := c.queryStation(ctx, req)
		if err != nil {
			c.logger.Warn("decision degraded to fallback",
				"station", station,
				"round", round,
				"error", err,
			)
			c.fireError(err)

			slots = nil
		} else {
			raw[station] = slots
		}

		set := c.validator.Validate(slots, dem[station])
		c.metrics.RecordProposalOutcome(station, proposalOutcome(slots, set))

		validated[station] = set
		candidates = append(candidates, resolve.Candidate{Station: station, Set: set})
		claimed = mergeClaimed(claimed, set.Slots)
	}

	return raw, validated, candidates
}

// queryStation performs one bounded decision source query and parses the
// reply into a raw slot list.
func (c *Coordinator) queryStation(ctx context.Context, req types.DecisionRequest) ([]types.Slot, error) {
	queryCtx, cancel := context.WithTimeout(ctx, c.cfg.DecisionTimeout)
	defer cancel()

	started := time.Now()
	reply, err := c.source.Decide(queryCtx, req)
	elapsed := time.Since(started).Seconds()

	if err != nil {
		c.metrics.RecordDecisionLatency(req.Station, elapsed, false)

		if errors.Is(err, context.DeadlineExceeded) {
			return nil, fmt.Errorf("%w: %s after %v", ErrDecisionTimeout, req.Station, c.cfg.DecisionTimeout)
		}

		return nil, fmt.Errorf("decision source failed for %s: %w", req.Station, err)
	}

	c.metrics.RecordDecisionLatency(req.Station, elapsed, true)

	return respparse.ExtractSlots(reply)
}

// recordSuccess persists a perfect round and resets the success counters.
//
// Persistence failures are surfaced through the logger and OnError hook but
// never stop the round loop.
func (c *Coordinator) recordSuccess(ctx context.Context, round, rounds int, dem types.Demand, alloc types.Allocation) {
	rec := types.SuccessRecord{
		Demand:     dem.Clone(),
		Allocation: alloc.Clone(),
		Rounds:     rounds,
		Timestamp:  time.Now().Format(types.RecordTimestampLayout),
	}

	if err := c.store.Append(ctx, rec); err != nil {
		werr := fmt.Errorf("%w: %w", ErrRecordStoreFailed, err)
		c.logger.Error("failed to persist success record", "round", round, "error", err)
		c.fireError(werr)
	}

	c.metrics.RecordSuccess(rounds)
	c.logger.Info("perfect allocation", "round", round, "rounds_to_success", rounds)

	// Success resets the counter and retires the demand table; the next
	// round starts a fresh scenario.
	c.mu.Lock()
	c.sinceSuccess = 0
	c.demandTable = nil
	c.mu.Unlock()

	if c.hooks.OnSuccess != nil {
		go func() {
			if err := c.hooks.OnSuccess(c.hookCtx(), rec); err != nil {
				c.logger.Error("success hook error", "round", round, "error", err)
			}
		}()
	}
}

// Terminate halts the coordinator.
//
// An in-flight round completes; Run exits before starting the next one.
// Safe to call multiple times. Accumulated pool state and history remain
// readable after termination.
func (c *Coordinator) Terminate() {
	c.mu.Lock()
	if c.cancel != nil {
		c.cancel()
	}
	c.mu.Unlock()

	if c.State() != StateTerminated {
		c.transitionState(c.State(), StateTerminated)
	}
}

// State returns the current coordinator state.
//
// Returns:
//   - State: Current state
func (c *Coordinator) State() State {
	return State(c.state.Load())
}

// CurrentDemand returns a copy of the demand table in force (nil before
// the first round).
func (c *Coordinator) CurrentDemand() Demand {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return c.demandTable.Clone()
}

// LastResult returns the most recent round's result (nil before the first
// round completes).
func (c *Coordinator) LastResult() *RoundResult {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if c.lastResult == nil {
		return nil
	}

	result := *c.lastResult

	return &result
}

// History returns a copy of the retained round results, oldest first.
// The retained window is bounded by Config.HistorySize.
func (c *Coordinator) History() []RoundResult {
	c.mu.RLock()
	defer c.mu.RUnlock()

	out := make([]RoundResult, len(c.history))
	copy(out, c.history)

	return out
}

// Rounds returns the total number of rounds run so far.
func (c *Coordinator) Rounds() int {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return c.round
}

// RoundsSinceSuccess returns the number of rounds since the last perfect
// allocation (or since the run started).
func (c *Coordinator) RoundsSinceSuccess() int {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return c.sinceSuccess
}

// Stations returns the canonical station list.
func (c *Coordinator) Stations() []string {
	return slices.Clone(c.stations)
}

// Pool returns the coordinator's resource pool for heat and conflict
// inspection. Callers must treat it as read-only.
func (c *Coordinator) Pool() *pool.Pool {
	return c.pool
}

// Records returns all persisted success records.
//
// Parameters:
//   - ctx: Context for cancellation and timeout
//
// Returns:
//   - []SuccessRecord: Records in append order
//   - error: Record store read failure
func (c *Coordinator) Records(ctx context.Context) ([]SuccessRecord, error) {
	return c.store.Load(ctx)
}

// WaitState waits for the coordinator to reach the expected state within
// the timeout period.
//
// The method returns a read-only channel that receives exactly one value:
//   - nil if the expected state is reached within the timeout
//   - context.DeadlineExceeded if the timeout expires first
//
// The channel is closed after sending the result, allowing safe use in
// select statements.
//
// Parameters:
//   - expectedState: The state to wait for
//   - timeout: Maximum duration to wait for the state
//
// Returns:
//   - <-chan error: A channel that receives the result
//
// Example:
//
//	go coord.Run(ctx)
//	if err := <-coord.WaitState(tdma.StateNegotiating, 5*time.Second); err != nil {
//	    log.Printf("never started negotiating: %v", err)
//	}
func (c *Coordinator) WaitState(expectedState State, timeout time.Duration) <-chan error {
	ch := make(chan error, 1) // Buffered to prevent goroutine leak

	go func() {
		defer close(ch)

		if c.State() == expectedState {
			ch <- nil
			return
		}

		ticker := time.NewTicker(10 * time.Millisecond)
		defer ticker.Stop()

		timeoutTimer := time.NewTimer(timeout)
		defer timeoutTimer.Stop()

		for {
			select {
			case <-ticker.C:
				if c.State() == expectedState {
					ch <- nil
					return
				}
			case <-timeoutTimer.C:
				ch <- context.DeadlineExceeded
				return
			}
		}
	}()

	return ch
}

// transitionState transitions to a new state and triggers hooks.
func (c *Coordinator) transitionState(from, to State) {
	if from == to {
		return
	}

	if !c.isValidTransition(from, to) {
		c.logger.Error("invalid state transition attempted",
			"from", from.String(),
			"to", to.String(),
		)

		return
	}

	// CAS keeps Terminated sticky when Terminate races an in-flight round.
	if !c.state.CompareAndSwap(int32(from), int32(to)) { //nolint:gosec // State values are controlled enum
		return
	}

	c.mu.Lock()
	elapsed := time.Since(c.stateSince).Seconds()
	c.stateSince = time.Now()
	c.mu.Unlock()

	c.logger.Debug("state transition",
		"from", from.String(),
		"to", to.String(),
	)

	// Trigger state change hook in background to avoid blocking the round
	if c.hooks.OnStateChanged != nil {
		go func() {
			if err := c.hooks.OnStateChanged(c.hookCtx(), from, to); err != nil {
				c.logger.Error("state change hook error", "from", from, "to", to, "error", err)
			}
		}()
	}

	c.metrics.RecordStateTransition(from, to, elapsed)
}

// isValidTransition validates that a state transition is allowed.
//
// Returns:
//   - bool: true if transition is valid, false otherwise
func (c *Coordinator) isValidTransition(from, to State) bool {
	validTransitions := map[State][]State{
		StateIdle:            {StateDemandGenerated, StateTerminated},
		StateDemandGenerated: {StateNegotiating, StateTerminated},
		StateNegotiating:     {StateResolved, StateTerminated},
		StateResolved:        {StateRecorded, StateTerminated},
		StateRecorded:        {StateDemandGenerated, StateNegotiating, StateTerminated},
		StateTerminated:      {}, // Terminal state - no transitions allowed
	}

	allowedStates, exists := validTransitions[from]
	if !exists {
		return false
	}

	return slices.Contains(allowedStates, to)
}

// fireError reports a recoverable error through the OnError hook.
func (c *Coordinator) fireError(err error) {
	if c.hooks.OnError == nil {
		return
	}

	go func() {
		if hookErr := c.hooks.OnError(c.hookCtx(), err); hookErr != nil {
			c.logger.Error("error hook error", "error", hookErr)
		}
	}()
}

// hookCtx returns the run context for hooks, or a background context when
// rounds are driven step-wise without Run.
func (c *Coordinator) hookCtx() context.Context {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if c.ctx != nil {
		return c.ctx
	}

	return context.Background()
}

// proposalOutcome classifies how a raw reply was handled, for metrics.
func proposalOutcome(raw []types.Slot, set types.ValidatedSet) string {
	switch {
	case set.Degenerate:
		return "degenerate"
	case set.Fallback:
		return "fallback"
	}

	sorted := slices.Clone(raw)
	slices.Sort(sorted)

	if slices.Equal(sorted, set.Slots) {
		return "parsed"
	}

	return "repaired"
}

// mergeClaimed merges newly claimed slots into the sorted claimed list,
// dropping duplicates.
func mergeClaimed(claimed, added []types.Slot) []types.Slot {
	for _, s := range added {
		if !slices.Contains(claimed, s) {
			claimed = append(claimed, s)
		}
	}

	slices.Sort(claimed)

	return claimed
}
