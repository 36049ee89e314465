// Package strategy provides built-in replacement pickers and order policies.
//
// Replacement pickers choose substitute slots during conflict resolution:
//
//   - Coolest: deterministic lowest-heat, lowest-index selection (default)
//   - Random: uniform random selection, matching the original system
//
// Order policies decide the per-round station negotiation order:
//
//   - FixedOrder: canonical order every round (stable first-mover bias)
//   - RotatingOrder: rotates first-mover advantage across rounds
//
// Custom behavior can be implemented by satisfying the
// types.ReplacementPicker and types.OrderPolicy interfaces.
package strategy
