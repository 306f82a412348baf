// Package conv provides safe numeric type conversion utilities.
//
// These functions perform bounds checking to prevent integer overflow/underflow
// when converting between Go's platform-dependent int and fixed-width types.
//
// Use cases:
//   - Validating that a point count fits the tree's int32 arena indices
//
// For conversions that are provably safe by domain constraints (e.g., loop
// indices, values already checked against a coordinate ceiling), use direct
// type casts instead to avoid overhead.
package conv
