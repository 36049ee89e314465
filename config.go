package tdma

import (
	"fmt"
	"time"
)

// Config is the configuration for the Coordinator.
//
// All duration fields accept standard Go duration strings like "30s", "5m"
// when decoded from YAML.
type Config struct {
	// NumSlots is the size of the slot domain; slots are indexed
	// [0, NumSlots). Demand generation targets exactly this many slots.
	NumSlots int `yaml:"numSlots"`

	// Stations is the explicit station list. When empty, stations are
	// synthesized as <StationPrefix>1..<StationPrefix>NumStations.
	Stations []string `yaml:"stations"`

	// StationPrefix names synthesized stations (e.g. "AP" produces
	// "AP1", "AP2", ...). Ignored when Stations is set.
	StationPrefix string `yaml:"stationPrefix"`

	// NumStations is the number of synthesized stations. Ignored when
	// Stations is set.
	NumStations int `yaml:"numStations"`

	// MaxRounds bounds the run loop. Run returns after this many rounds
	// even if no perfect allocation was reached.
	MaxRounds int `yaml:"maxRounds"`

	// DemandRefreshRounds regenerates the demand table every N rounds
	// while no success occurs. 0 (the default) regenerates only after a
	// successful round.
	DemandRefreshRounds int `yaml:"demandRefreshRounds"`

	// DecisionTimeout bounds each decision source query. A query that
	// exceeds it degrades to the station's fallback selection.
	DecisionTimeout time.Duration `yaml:"decisionTimeout"`

	// HistorySize bounds the retained round results. Older rounds are
	// discarded first.
	HistorySize int `yaml:"historySize"`

	// RunID seeds the deterministic random streams for demand generation
	// and fallback selection. Runs sharing a RunID and scripted sources
	// reproduce exactly. Empty means a fresh seed per run.
	RunID string `yaml:"runId"`
}

// DefaultConfig returns a Config with sensible defaults.
//
// Returns:
//   - Config: Configuration with default values
func DefaultConfig() Config {
	return Config{
		NumSlots:        10,
		StationPrefix:   "AP",
		NumStations:     3,
		MaxRounds:       200,
		DecisionTimeout: 30 * time.Second,
		HistorySize:     50,
	}
}

// SetDefaults fills in missing configuration values with production defaults.
//
// Parameters:
//   - cfg: Config to apply defaults to (modified in place)
func SetDefaults(cfg *Config) {
	defaults := DefaultConfig()

	if cfg.NumSlots == 0 {
		cfg.NumSlots = defaults.NumSlots
	}
	if cfg.StationPrefix == "" {
		cfg.StationPrefix = defaults.StationPrefix
	}
	if len(cfg.Stations) == 0 && cfg.NumStations == 0 {
		cfg.NumStations = defaults.NumStations
	}
	if cfg.MaxRounds == 0 {
		cfg.MaxRounds = defaults.MaxRounds
	}
	if cfg.DecisionTimeout == 0 {
		cfg.DecisionTimeout = defaults.DecisionTimeout
	}
	if cfg.HistorySize == 0 {
		cfg.HistorySize = defaults.HistorySize
	}
	// Note: DemandRefreshRounds of 0 is valid (refresh after success only)
}

// StationNames returns the effective station list: the explicit Stations
// when set, otherwise <StationPrefix>1..<StationPrefix>NumStations.
//
// Returns:
//   - []string: Station names in canonical order
func (cfg *Config) StationNames() []string {
	if len(cfg.Stations) > 0 {
		out := make([]string, len(cfg.Stations))
		copy(out, cfg.Stations)

		return out
	}

	out := make([]string, cfg.NumStations)
	for i := range out {
		out[i] = fmt.Sprintf("%s%d", cfg.StationPrefix, i+1)
	}

	return out
}

// Validate checks configuration constraints and returns an error for
// invalid values.
//
// Hard validation rules:
//   - NumSlots > 0
//   - At least one station
//   - Station count <= NumSlots (per-station minimum demand of 1 must fit)
//   - Station names unique and non-empty
//   - MaxRounds > 0
//   - DecisionTimeout > 0
//   - DemandRefreshRounds >= 0
//
// Returns:
//   - error: Validation error with clear explanation, nil if valid
func (cfg *Config) Validate() error {
	if cfg.NumSlots <= 0 {
		return fmt.Errorf("%w: NumSlots must be > 0, got %d", ErrInvalidConfig, cfg.NumSlots)
	}

	stations := cfg.StationNames()
	if len(stations) == 0 {
		return fmt.Errorf("%w: at least one station is required", ErrInvalidConfig)
	}

	// The per-station minimum demand is 1 slot, so more stations than
	// slots can never be satisfied.
	if len(stations) > cfg.NumSlots {
		return fmt.Errorf("%w: %d stations for %d slots", ErrTooManyStations, len(stations), cfg.NumSlots)
	}

	seen := make(map[string]struct{}, len(stations))
	for _, station := range stations {
		if station == "" {
			return fmt.Errorf("%w: empty station name", ErrInvalidConfig)
		}
		if _, dup := seen[station]; dup {
			return fmt.Errorf("%w: duplicate station name %q", ErrInvalidConfig, station)
		}
		seen[station] = struct{}{}
	}

	if cfg.MaxRounds <= 0 {
		return fmt.Errorf("%w: MaxRounds must be > 0, got %d", ErrInvalidConfig, cfg.MaxRounds)
	}

	if cfg.DecisionTimeout <= 0 {
		return fmt.Errorf("%w: DecisionTimeout must be > 0, got %v", ErrInvalidConfig, cfg.DecisionTimeout)
	}

	if cfg.DemandRefreshRounds < 0 {
		return fmt.Errorf("%w: DemandRefreshRounds must be >= 0, got %d", ErrInvalidConfig, cfg.DemandRefreshRounds)
	}

	return nil
}

// ValidateWithWarnings checks configuration and logs warnings for
// non-recommended values.
//
// This is called after Validate() in NewCoordinator() to provide operator
// guidance.
//
// Parameters:
//   - logger: Logger instance for warning output
func (cfg *Config) ValidateWithWarnings(logger Logger) {
	// A domain barely larger than the station count forces near-degenerate
	// demand tables (everyone gets 1 slot).
	if cfg.NumSlots < 2*len(cfg.StationNames()) {
		logger.Warn(
			"slot domain is small relative to station count",
			"numSlots", cfg.NumSlots,
			"stations", len(cfg.StationNames()),
			"recommended", 2*len(cfg.StationNames()),
		)
	}

	if cfg.DecisionTimeout < time.Second {
		logger.Warn(
			"DecisionTimeout is very short, sources may never answer in time",
			"decisionTimeout", cfg.DecisionTimeout,
			"recommended", "1s or higher",
		)
	}
}

// TestConfig returns a configuration optimized for fast test execution.
//
// Test timings are much faster than production defaults to enable rapid
// iteration without sacrificing coverage. Use DefaultConfig() for
// production deployments.
//
// Returns:
//   - Config: Configuration with fast timings for tests
//
// Example:
//
//	cfg := tdma.TestConfig()
//	cfg.RunID = "test-run"
//	coord, err := tdma.NewCoordinator(&cfg, src)
func TestConfig() Config {
	cfg := DefaultConfig()

	cfg.MaxRounds = 10
	cfg.DecisionTimeout = 250 * time.Millisecond
	cfg.HistorySize = 10
	cfg.RunID = "test"

	return cfg
}
