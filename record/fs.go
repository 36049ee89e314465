package record

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/Moaila/tdma/types"
	"github.com/viant/afs"
	"github.com/viant/afs/file"
)

// FS implements a record store backed by a single JSON file.
//
// The file holds the full record collection as a JSON array and is
// rewritten on each append, matching the historical success_records.json
// format. The location is an afs URL, so plain paths, mem:// and cloud
// object URLs all work.
type FS struct {
	location string
	fs       afs.Service

	mu      sync.Mutex
	records []types.SuccessRecord
	loaded  bool
}

var _ types.RecordStore = (*FS)(nil)

// NewFS creates a new file-backed record store.
//
// Parameters:
//   - location: afs URL of the record file, e.g. "success_records.json"
//     or "mem://localhost/records.json"
//
// Returns:
//   - *FS: Initialized store (the file is read lazily on first use)
func NewFS(location string) *FS {
	return &FS{location: location, fs: afs.New()}
}

// Load returns all persisted records in append order.
//
// A missing file yields an empty slice, not an error.
func (f *FS) Load(ctx context.Context) ([]types.SuccessRecord, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if err := f.ensureLoaded(ctx); err != nil {
		return nil, err
	}

	out := make([]types.SuccessRecord, len(f.records))
	copy(out, f.records)

	return out, nil
}

// Append adds a record and rewrites the file with the full collection.
func (f *FS) Append(ctx context.Context, rec types.SuccessRecord) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if err := f.ensureLoaded(ctx); err != nil {
		return err
	}

	f.records = append(f.records, rec)

	data, err := json.MarshalIndent(f.records, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode success records: %w", err)
	}

	if err := f.fs.Upload(ctx, f.location, file.DefaultFileOsMode, bytes.NewReader(data)); err != nil {
		f.records = f.records[:len(f.records)-1]
		return fmt.Errorf("failed to write success records to %s: %w", f.location, err)
	}

	return nil
}

func (f *FS) ensureLoaded(ctx context.Context) error {
	if f.loaded {
		return nil
	}

	exists, err := f.fs.Exists(ctx, f.location)
	if err != nil {
		return fmt.Errorf("failed to check success records at %s: %w", f.location, err)
	}

	if exists {
		data, err := f.fs.DownloadWithURL(ctx, f.location)
		if err != nil {
			return fmt.Errorf("failed to read success records from %s: %w", f.location, err)
		}

		if len(bytes.TrimSpace(data)) > 0 {
			if err := json.Unmarshal(data, &f.records); err != nil {
				return fmt.Errorf("failed to decode success records from %s: %w", f.location, err)
			}
		}
	}

	f.loaded = true

	return nil
}
