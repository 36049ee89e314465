// Package record provides RecordStore implementations for persisting
// success records across runs.
//
// A success record captures one perfect round (full utilization, zero raw
// conflicts). Stores load the full collection at startup and rewrite it on
// each append, preserving compatibility with the historical JSON file
// format.
//
// Three implementations are provided:
//
//   - FS: a JSON file addressed through the afs abstract file storage,
//     so local paths, mem:// and cloud URLs all work
//   - KV: a NATS JetStream key-value bucket, for deployments already
//     running JetStream
//   - Memory: an in-memory store for tests
package record
