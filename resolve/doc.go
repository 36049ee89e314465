// Package resolve implements the sequential greedy conflict resolver that
// turns per-station candidate slot sets into a pairwise-disjoint allocation.
package resolve
