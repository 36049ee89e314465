// Package demand implements the per-round demand generation policy.
//
// The planner assigns every station a random base entitlement and reconciles
// the total against the slot domain so that each station gets at least one
// slot and the entitlements sum exactly to the domain size.
package demand
