package types

import "context"

// Hooks defines callbacks for Coordinator lifecycle events.
//
// All hooks are optional and called asynchronously in background goroutines
// to avoid blocking the round loop. Hooks receive the coordinator's lifecycle
// context which will be cancelled during shutdown.
//
// IMPORTANT: Hook execution behavior:
//   - Hooks run concurrently and may not complete before Stop() returns
//   - The context passed to hooks is cancelled when the coordinator stops
//   - Hook errors are logged but don't fail coordinator operations
//
// Best practices for hook implementation:
//   - Complete quickly (< 1 second recommended)
//   - Respect context cancellation
//   - Don't block on long I/O operations
//   - Make hooks idempotent (may be called multiple times)
//   - Handle errors gracefully (return error for logging)
type Hooks struct {
	// OnRoundCompleted is called after each round with the round's result.
	OnRoundCompleted func(ctx context.Context, result *RoundResult) error

	// OnStateChanged is called when the coordinator state transitions.
	OnStateChanged func(ctx context.Context, from, to State) error

	// OnSuccess is called when a round achieves a perfect allocation, after
	// the record has been handed to the record store.
	OnSuccess func(ctx context.Context, record SuccessRecord) error

	// OnError is called when a recoverable error occurs (decision source
	// failure, persistence failure).
	OnError func(ctx context.Context, err error) error
}
