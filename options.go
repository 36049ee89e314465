package tdma

// Option configures a Coordinator with optional dependencies.
type Option func(*coordinatorOptions)

// coordinatorOptions holds optional Coordinator configuration.
type coordinatorOptions struct {
	hooks   *Hooks
	metrics MetricsCollector
	logger  Logger
	store   RecordStore
	picker  ReplacementPicker
	order   OrderPolicy
	seed    uint64
	seeded  bool
}

// WithHooks sets lifecycle event hooks.
//
// Parameters:
//   - hooks: Hooks structure with callback functions
//
// Returns:
//   - Option: Functional option for NewCoordinator
//
// Example:
//
//	hooks := &tdma.Hooks{
//	    OnSuccess: func(ctx context.Context, rec tdma.SuccessRecord) error {
//	        return notify(rec)
//	    },
//	}
//	coord, err := tdma.NewCoordinator(&cfg, src, tdma.WithHooks(hooks))
func WithHooks(hooks *Hooks) Option {
	return func(o *coordinatorOptions) {
		o.hooks = hooks
	}
}

// WithMetrics sets a metrics collector.
//
// Parameters:
//   - metrics: MetricsCollector implementation
//
// Returns:
//   - Option: Functional option for NewCoordinator
//
// Example:
//
//	collector := metrics.NewPrometheus(nil, "tdma")
//	coord, err := tdma.NewCoordinator(&cfg, src, tdma.WithMetrics(collector))
func WithMetrics(metrics MetricsCollector) Option {
	return func(o *coordinatorOptions) {
		o.metrics = metrics
	}
}

// WithLogger sets a logger.
//
// Parameters:
//   - logger: Logger implementation (compatible with slog via the
//     internal adapter, or zap.SugaredLogger)
//
// Returns:
//   - Option: Functional option for NewCoordinator
func WithLogger(logger Logger) Option {
	return func(o *coordinatorOptions) {
		o.logger = logger
	}
}

// WithRecordStore sets the success record store.
//
// Without this option records are kept in memory only and lost when the
// process exits.
//
// Parameters:
//   - store: RecordStore implementation (record.FS, record.KV, ...)
//
// Returns:
//   - Option: Functional option for NewCoordinator
//
// Example:
//
//	store := record.NewFS("success_records.json")
//	coord, err := tdma.NewCoordinator(&cfg, src, tdma.WithRecordStore(store))
func WithRecordStore(store RecordStore) Option {
	return func(o *coordinatorOptions) {
		o.store = store
	}
}

// WithReplacementPicker sets the conflict replacement policy.
//
// The default is strategy.NewCoolest(), which deterministically picks the
// lowest-heat free slot.
//
// Parameters:
//   - picker: ReplacementPicker implementation
//
// Returns:
//   - Option: Functional option for NewCoordinator
func WithReplacementPicker(picker ReplacementPicker) Option {
	return func(o *coordinatorOptions) {
		o.picker = picker
	}
}

// WithOrderPolicy sets the station negotiation order policy.
//
// The default is strategy.NewFixedOrder(), which keeps the configured
// station order every round. Use strategy.NewRotatingOrder() to spread
// first-mover advantage across rounds.
//
// Parameters:
//   - order: OrderPolicy implementation
//
// Returns:
//   - Option: Functional option for NewCoordinator
func WithOrderPolicy(order OrderPolicy) Option {
	return func(o *coordinatorOptions) {
		o.order = order
	}
}

// WithSeed fixes the root random seed directly, overriding the seed
// derived from Config.RunID. Mainly useful in tests.
//
// Parameters:
//   - seed: Root seed for the deterministic random streams
//
// Returns:
//   - Option: Functional option for NewCoordinator
func WithSeed(seed uint64) Option {
	return func(o *coordinatorOptions) {
		o.seed = seed
		o.seeded = true
	}
}
