// Package pool implements the slot resource pool.
//
// The pool owns the slot domain and its cumulative statistics: a heat map
// counting how often each slot has been assigned, and a conflict history
// counting how often each slot was contested in raw proposals. It answers
// "which slots are coolest" for heat-aware selection and produces the
// per-round feedback snapshot (conflict slots, idle slots, utilization).
package pool
