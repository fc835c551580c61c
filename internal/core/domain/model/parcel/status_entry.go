package parcel

import (
	"errors"
	"time"

	"parceltrack/internal/core/domain/model/kernel"
	"parceltrack/internal/pkg/errs"
)

// StatusEntry is one immutable record of the status log.
type StatusEntry struct {
	status    Status
	timestamp time.Time
	updatedBy *kernel.UUID
	location  string
	note      string
}

// NewStatusEntry builds a log entry. updatedBy may be nil for entries restored from records
// written without attribution; location and note are optional.
func NewStatusEntry(status Status, timestamp time.Time, updatedBy *kernel.UUID, location, note string) (StatusEntry, error) {
	var tsErr error
	if timestamp.IsZero() {
		tsErr = errs.NewValueIsRequiredError("timestamp")
	}

	var byErr error
	if updatedBy != nil {
		byErr = updatedBy.Validate()
	}

	if err := errors.Join(status.Validate(), tsErr, byErr); err != nil {
		return StatusEntry{}, err
	}

	return StatusEntry{
		status:    status,
		timestamp: timestamp,
		updatedBy: updatedBy,
		location:  location,
		note:      note,
	}, nil
}

func (e StatusEntry) Status() Status {
	return e.status
}

func (e StatusEntry) Timestamp() time.Time {
	return e.timestamp
}

// UpdatedBy returns the attributed identity, or nil when the entry has none.
func (e StatusEntry) UpdatedBy() *kernel.UUID {
	if e.updatedBy == nil {
		return nil
	}
	id := *e.updatedBy
	return &id
}

func (e StatusEntry) Location() string {
	return e.location
}

func (e StatusEntry) Note() string {
	return e.note
}
