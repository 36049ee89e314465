package record

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/Moaila/tdma/types"
	"github.com/nats-io/nats.go/jetstream"
)

// DefaultKVBucket is the bucket name used when none is given.
const DefaultKVBucket = "tdma-success-records"

// recordsKey is the single key holding the full record collection.
const recordsKey = "records"

// KV implements a record store backed by a NATS JetStream key-value bucket.
//
// The whole collection lives under one key as a JSON array, mirroring the
// file store's rewrite-on-append behavior. Suited to deployments that
// already run JetStream and want records to survive host churn.
type KV struct {
	kv jetstream.KeyValue

	mu      sync.Mutex
	records []types.SuccessRecord
	loaded  bool
}

var _ types.RecordStore = (*KV)(nil)

// NewKV creates a new JetStream-backed record store, creating the bucket
// if it does not exist yet.
//
// Parameters:
//   - ctx: Context for bucket creation
//   - js: JetStream context
//   - bucket: Bucket name (DefaultKVBucket if empty)
//
// Returns:
//   - *KV: Initialized store
//   - error: Bucket creation/open failure
//
// Example:
//
//	js, _ := jetstream.New(conn)
//	store, err := record.NewKV(ctx, js, "")
//	if err != nil { /* handle */ }
//	coord, err := tdma.NewCoordinator(&cfg, src, tdma.WithRecordStore(store))
func NewKV(ctx context.Context, js jetstream.JetStream, bucket string) (*KV, error) {
	if bucket == "" {
		bucket = DefaultKVBucket
	}

	kv, err := ensureBucket(ctx, js, jetstream.KeyValueConfig{
		Bucket:      bucket,
		Description: "tdma success records",
		History:     1,
	})
	if err != nil {
		return nil, err
	}

	return &KV{kv: kv}, nil
}

// Load returns all persisted records in append order.
//
// A missing key yields an empty slice, not an error.
func (s *KV) Load(ctx context.Context) ([]types.SuccessRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.ensureLoaded(ctx); err != nil {
		return nil, err
	}

	out := make([]types.SuccessRecord, len(s.records))
	copy(out, s.records)

	return out, nil
}

// Append adds a record and rewrites the bucket key with the full
// collection.
func (s *KV) Append(ctx context.Context, rec types.SuccessRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.ensureLoaded(ctx); err != nil {
		return err
	}

	s.records = append(s.records, rec)

	data, err := json.Marshal(s.records)
	if err != nil {
		return fmt.Errorf("failed to encode success records: %w", err)
	}

	if _, err := s.kv.Put(ctx, recordsKey, data); err != nil {
		s.records = s.records[:len(s.records)-1]
		return fmt.Errorf("failed to write success records to bucket: %w", err)
	}

	return nil
}

func (s *KV) ensureLoaded(ctx context.Context) error {
	if s.loaded {
		return nil
	}

	entry, err := s.kv.Get(ctx, recordsKey)
	if err != nil {
		if errors.Is(err, jetstream.ErrKeyNotFound) {
			s.loaded = true
			return nil
		}

		return fmt.Errorf("failed to read success records from bucket: %w", err)
	}

	if err := json.Unmarshal(entry.Value(), &s.records); err != nil {
		return fmt.Errorf("failed to decode success records: %w", err)
	}

	s.loaded = true

	return nil
}

// ensureBucket creates or opens a KV bucket, retrying with backoff to
// absorb the create/open race when several processes start at once.
func ensureBucket(ctx context.Context, js jetstream.JetStream, config jetstream.KeyValueConfig) (jetstream.KeyValue, error) {
	const maxAttempts = 3

	var lastErr error

	for attempt := 0; attempt < maxAttempts; attempt++ {
		kv, err := js.CreateKeyValue(ctx, config)
		if err == nil {
			return kv, nil
		}

		if errors.Is(err, jetstream.ErrBucketExists) {
			kv, err := js.KeyValue(ctx, config.Bucket)
			if err == nil {
				return kv, nil
			}

			lastErr = fmt.Errorf("bucket exists but failed to open: %w", err)
		} else {
			lastErr = err
		}

		if ctx.Err() != nil {
			return nil, fmt.Errorf("context cancelled during bucket creation: %w", ctx.Err())
		}

		if attempt < maxAttempts-1 {
			backoff := time.Duration(1<<uint(attempt)) * 10 * time.Millisecond //nolint:gosec // attempt is bounded, no overflow risk
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(backoff):
			}
		}
	}

	return nil, fmt.Errorf("failed to create/open KV bucket %s after %d attempts: %w",
		config.Bucket, maxAttempts, lastErr)
}
