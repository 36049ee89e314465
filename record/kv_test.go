package record

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/nats-io/nats.go/jetstream"
	"github.com/stretchr/testify/require"

	"github.com/Moaila/tdma/types"
)

// fakeJetStream implements just the bucket-management calls NewKV touches.
// The embedded interface panics on anything else, which is what we want.
type fakeJetStream struct {
	jetstream.JetStream

	createErrs []error // consumed per CreateKeyValue call; nil means success
	openErr    error

	createCalls   int
	openCalls     int
	createdConfig jetstream.KeyValueConfig
	kv            *fakeKeyValue
}

func (f *fakeJetStream) CreateKeyValue(_ context.Context, cfg jetstream.KeyValueConfig) (jetstream.KeyValue, error) {
	f.createCalls++
	f.createdConfig = cfg

	if len(f.createErrs) > 0 {
		err := f.createErrs[0]
		f.createErrs = f.createErrs[1:]
		if err != nil {
			return nil, err
		}
	}

	return f.kv, nil
}

func (f *fakeJetStream) KeyValue(_ context.Context, _ string) (jetstream.KeyValue, error) {
	f.openCalls++
	if f.openErr != nil {
		return nil, f.openErr
	}

	return f.kv, nil
}

// fakeKeyValue backs the records key with an in-memory map.
type fakeKeyValue struct {
	jetstream.KeyValue

	entries map[string][]byte
	getErr  error
	putErr  error

	putCalls int
}

func newFakeKeyValue() *fakeKeyValue {
	return &fakeKeyValue{entries: make(map[string][]byte)}
}

func (f *fakeKeyValue) Get(_ context.Context, key string) (jetstream.KeyValueEntry, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}

	value, ok := f.entries[key]
	if !ok {
		return nil, jetstream.ErrKeyNotFound
	}

	return &fakeEntry{value: value}, nil
}

func (f *fakeKeyValue) Put(_ context.Context, key string, value []byte) (uint64, error) {
	f.putCalls++
	if f.putErr != nil {
		return 0, f.putErr
	}

	f.entries[key] = value

	return uint64(f.putCalls), nil
}

type fakeEntry struct {
	jetstream.KeyValueEntry

	value []byte
}

func (e *fakeEntry) Value() []byte { return e.value }

func TestNewKV(t *testing.T) {
	ctx := context.Background()

	t.Run("creates bucket with defaults", func(t *testing.T) {
		js := &fakeJetStream{kv: newFakeKeyValue()}

		store, err := NewKV(ctx, js, "")
		require.NoError(t, err)
		require.NotNil(t, store)
		require.Equal(t, 1, js.createCalls)
		require.Equal(t, DefaultKVBucket, js.createdConfig.Bucket)
	})

	t.Run("opens bucket when it already exists", func(t *testing.T) {
		js := &fakeJetStream{
			kv:         newFakeKeyValue(),
			createErrs: []error{jetstream.ErrBucketExists},
		}

		store, err := NewKV(ctx, js, "existing")
		require.NoError(t, err)
		require.NotNil(t, store)
		require.Equal(t, 1, js.createCalls)
		require.Equal(t, 1, js.openCalls)
	})

	t.Run("recovers when create loses the race and open lags", func(t *testing.T) {
		// First attempt: bucket reported existing but not yet openable.
		// Second attempt: create succeeds.
		js := &fakeJetStream{
			kv:         newFakeKeyValue(),
			openErr:    errors.New("bucket not found"),
			createErrs: []error{jetstream.ErrBucketExists, nil},
		}

		store, err := NewKV(ctx, js, "racy")
		require.NoError(t, err)
		require.NotNil(t, store)
		require.Equal(t, 2, js.createCalls)
	})

	t.Run("gives up after retries are exhausted", func(t *testing.T) {
		persistent := errors.New("jetstream unavailable")
		js := &fakeJetStream{
			createErrs: []error{persistent, persistent, persistent},
		}

		store, err := NewKV(ctx, js, "doomed")
		require.Error(t, err)
		require.Nil(t, store)
		require.ErrorIs(t, err, persistent)
		require.Equal(t, 3, js.createCalls)
	})

	t.Run("stops when the context is cancelled", func(t *testing.T) {
		cancelled, cancel := context.WithCancel(context.Background())
		cancel()

		js := &fakeJetStream{
			createErrs: []error{errors.New("jetstream unavailable")},
		}

		store, err := NewKV(cancelled, js, "cancelled")
		require.Error(t, err)
		require.Nil(t, store)
		require.ErrorIs(t, err, context.Canceled)
		require.Equal(t, 1, js.createCalls)
	})
}

func TestKV_AppendAndLoad(t *testing.T) {
	ctx := context.Background()

	newStore := func(t *testing.T, kv *fakeKeyValue) *KV {
		t.Helper()
		js := &fakeJetStream{kv: kv}
		store, err := NewKV(ctx, js, "")
		require.NoError(t, err)

		return store
	}

	t.Run("missing key loads as empty", func(t *testing.T) {
		store := newStore(t, newFakeKeyValue())

		records, err := store.Load(ctx)
		require.NoError(t, err)
		require.Empty(t, records)
	})

	t.Run("append rewrites the full collection", func(t *testing.T) {
		kv := newFakeKeyValue()
		store := newStore(t, kv)

		first := types.SuccessRecord{Rounds: 3, Timestamp: "2026-08-29 10:00:00"}
		second := types.SuccessRecord{Rounds: 1, Timestamp: "2026-08-29 10:00:05"}
		require.NoError(t, store.Append(ctx, first))
		require.NoError(t, store.Append(ctx, second))

		var persisted []types.SuccessRecord
		require.NoError(t, json.Unmarshal(kv.entries[recordsKey], &persisted))
		require.Equal(t, []types.SuccessRecord{first, second}, persisted)

		records, err := store.Load(ctx)
		require.NoError(t, err)
		require.Equal(t, persisted, records)
	})

	t.Run("loads records persisted by an earlier run", func(t *testing.T) {
		prior := []types.SuccessRecord{{Rounds: 7, Timestamp: "2026-08-28 09:30:00"}}
		data, err := json.Marshal(prior)
		require.NoError(t, err)

		kv := newFakeKeyValue()
		kv.entries[recordsKey] = data
		store := newStore(t, kv)

		records, err := store.Load(ctx)
		require.NoError(t, err)
		require.Equal(t, prior, records)

		require.NoError(t, store.Append(ctx, types.SuccessRecord{Rounds: 2}))
		records, err = store.Load(ctx)
		require.NoError(t, err)
		require.Len(t, records, 2)
		require.Equal(t, prior[0], records[0])
	})

	t.Run("failed put rolls the record back", func(t *testing.T) {
		kv := newFakeKeyValue()
		store := newStore(t, kv)
		kv.putErr = errors.New("stream write failed")

		err := store.Append(ctx, types.SuccessRecord{Rounds: 4})
		require.Error(t, err)
		require.ErrorIs(t, err, kv.putErr)

		kv.putErr = nil
		records, err := store.Load(ctx)
		require.NoError(t, err)
		require.Empty(t, records, "failed append must not leave the record cached")
	})

	t.Run("corrupt payload surfaces a decode error", func(t *testing.T) {
		kv := newFakeKeyValue()
		kv.entries[recordsKey] = []byte("{not json")
		store := newStore(t, kv)

		_, err := store.Load(ctx)
		require.Error(t, err)
		require.Contains(t, err.Error(), "decode")
	})
}
