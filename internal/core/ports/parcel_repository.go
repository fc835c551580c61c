// Package ports defines the interfaces the core depends on: repositories, the unit of
// work, the token service and the credential verifier.
package ports

import (
	"context"

	"parceltrack/internal/core/domain/model/kernel"
	"parceltrack/internal/core/domain/model/parcel"
)

// ParcelRepository persists parcel aggregates together with their status logs.
type ParcelRepository interface {
	// Add stores a new parcel and its first log entry. A duplicate tracking id fails with
	// a ConflictError naming trackingId.
	Add(ctx context.Context, aggregate *parcel.Parcel) error

	// Update writes the parcel fields and appends log entries not stored yet. The write is
	// guarded by the version the parcel was read at; a stale version fails with a
	// ConcurrentModificationError and leaves the stored parcel unchanged.
	Update(ctx context.Context, aggregate *parcel.Parcel) error

	// Get returns the parcel with its full log, or an ObjectNotFoundError.
	Get(ctx context.Context, id kernel.UUID) (*parcel.Parcel, error)

	// Delete removes the parcel and its log. A missing id fails with an ObjectNotFoundError.
	Delete(ctx context.Context, id kernel.UUID) error
}
