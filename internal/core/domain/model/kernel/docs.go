// Package kernel provides the shared domain primitives of the parcel tracking system.
//
// The package includes:
//   - UUID: a validated identifier used by parcels, users and status log attributions
//   - Clock: the time source domain operations receive instead of calling time.Now
//
// Both types are immutable and safe for concurrent use.
package kernel
