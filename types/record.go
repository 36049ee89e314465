package types

import "context"

// RecordTimestampLayout is the timestamp format used in persisted success
// records, kept compatible with the historical record files.
const RecordTimestampLayout = "2006-01-02 15:04:05"

// SuccessRecord captures one perfect round: full utilization with zero raw
// conflicts. Records are append-only and persist across runs.
type SuccessRecord struct {
	// Demand is the demand table that was in force for the successful round.
	Demand Demand `json:"demand"`

	// Allocation is the final, pairwise-disjoint assignment.
	Allocation Allocation `json:"allocation"`

	// Rounds is the number of rounds taken since the previous success (or
	// since the run started) to reach this one.
	Rounds int `json:"rounds"`

	// Timestamp is the local wall-clock time of the success, formatted with
	// RecordTimestampLayout.
	Timestamp string `json:"timestamp"`
}

// RecordStore persists success records.
//
// Stores are ordered collections with no keys. The whole collection is
// loaded at startup and rewritten in full on each append; concurrent runs
// are last-writer-wins by design (single-process assumption).
//
// Implementations:
//   - record.FS: JSON file via the afs abstract file storage
//   - record.KV: NATS JetStream key-value bucket
//   - record.Memory: in-memory store for tests
type RecordStore interface {
	// Load returns all previously persisted records.
	//
	// A missing backing file/bucket is not an error; implementations return
	// an empty slice in that case.
	//
	// Parameters:
	//   - ctx: Context for cancellation and timeout
	//
	// Returns:
	//   - []SuccessRecord: Records in append order (possibly empty)
	//   - error: Read or decode failure
	Load(ctx context.Context) ([]SuccessRecord, error)

	// Append adds a record and rewrites the persisted collection.
	//
	// Parameters:
	//   - ctx: Context for cancellation and timeout
	//   - rec: Record to append
	//
	// Returns:
	//   - error: Write failure. The coordinator surfaces the error but the
	//     allocation loop continues; persistence is a side effect, not a
	//     dependency of subsequent rounds.
	Append(ctx context.Context, rec SuccessRecord) error
}
