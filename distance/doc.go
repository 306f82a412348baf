// Package distance provides the squared Euclidean distance math used by the
// k-d tree, together with the unit-sphere embedding for longitude/latitude.
//
// All distances are squared: comparing squared values orders points exactly
// like comparing the distances themselves, without a square root.
//
// # Supported Domains
//
//   - int64: widened 32-bit integer coordinates (exact, overflow-free within
//     the tree's coordinate ceilings)
//   - float64: floating coordinates and sphere embeddings
//
// # Usage
//
//	d := distance.SquaredL2(a, b, 2)
//	v := distance.Embed(lon, lat)
//	bound := distance.ChordBound(maxAngleDegrees)
package distance
