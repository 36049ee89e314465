// Package tdma provides a Go library for TDMA-style slot allocation through
// iterative negotiation with external decision sources.
//
// A Coordinator divides a fixed domain of time slots among named stations.
// Each round it generates a demand table, asks a decision source (an LLM
// endpoint, a NATS responder, or scripted replies) for each station's slot
// picks, repairs the replies into valid candidate sets, and resolves
// collisions into a pairwise-disjoint allocation. Rounds that reach full
// utilization with zero conflicts are persisted as success records.
//
// # Quick Start
//
// Basic usage with default settings:
//
//	import "github.com/Moaila/tdma"
//
//	cfg := tdma.Config{
//	    NumSlots:    10,
//	    NumStations: 3,
//	}
//
//	src := source.NewOpenAI(source.OpenAIConfig{
//	    APIKey: os.Getenv("OPENAI_API_KEY"),
//	    Model:  "gpt-4o-mini",
//	})
//
//	coord, err := tdma.NewCoordinator(&cfg, src)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	if err := coord.Run(ctx); err != nil {
//	    log.Fatal(err)
//	}
//
// # Key Features
//
//   - Tolerant reply parsing: free-form source replies are repaired into
//     valid candidate sets; unusable replies degrade to heat-aware fallback
//     selection instead of failing the round
//   - Greedy conflict resolution: stations reserve slots sequentially with
//     pluggable replacement picking for collisions
//   - Heat tracking: cumulative slot usage biases fallback and replacement
//     choices toward cold slots
//   - Success records: perfect rounds persist to a file, a JetStream KV
//     bucket, or memory
//
// # Architecture
//
// The coordinator progresses through a state machine each round:
//
//	Idle → DemandGenerated → Negotiating → Resolved → Recorded
//
// After Recorded the loop re-enters Negotiating (same demand) or
// DemandGenerated (after a success or a configured refresh). Cancellation
// or the round limit leads to Terminated.
//
// # Advanced Usage
//
// Custom strategies with options:
//
//	coord, err := tdma.NewCoordinator(&cfg, src,
//	    tdma.WithOrderPolicy(strategy.NewRotatingOrder()),
//	    tdma.WithReplacementPicker(strategy.NewRandom()),
//	    tdma.WithRecordStore(record.NewFS("success_records.json")),
//	    tdma.WithHooks(&tdma.Hooks{
//	        OnSuccess: func(ctx context.Context, rec tdma.SuccessRecord) error {
//	            log.Printf("perfect allocation after %d rounds", rec.Rounds)
//	            return nil
//	        },
//	    }),
//	)
//
// See the examples/ directory for complete working examples.
package tdma
