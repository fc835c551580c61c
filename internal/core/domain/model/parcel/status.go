package parcel

import (
	"fmt"
	"strings"

	"parceltrack/internal/pkg/errs"
)

// Status represents the lifecycle state of a parcel.
//
// Every parcel starts in Requested. Administrators may move a parcel to any other
// status; the sender may cancel it while it has not left the pickup stage:
//
//	Requested ──┬──> Approved ──> Dispatched ──> In Transit ──> Delivered ──> Received
//	            │        │
//	            └────────┴──> Cancelled   (sender only)
//
// Returned and Blocked are reachable through an administrative update only.
// The display names ("In Transit") are the persisted and transported values.
type Status int

const (
	// Unknown (0) catches uninitialized Status values.
	Unknown Status = iota
	Requested
	Approved
	Dispatched
	InTransit
	Delivered
	Received
	Cancelled
	Returned
	Blocked
)

func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown:    "Unknown",
		Requested:  "Requested",
		Approved:   "Approved",
		Dispatched: "Dispatched",
		InTransit:  "In Transit",
		Delivered:  "Delivered",
		Received:   "Received",
		Cancelled:  "Cancelled",
		Returned:   "Returned",
		Blocked:    "Blocked",
	}
}

// AllStatuses returns every valid status in lifecycle order.
func AllStatuses() []Status {
	return []Status{Requested, Approved, Dispatched, InTransit, Delivered, Received, Cancelled, Returned, Blocked}
}

// ParseStatus accepts the display name ("In Transit") or the constant form ("IN_TRANSIT"),
// case-insensitively.
func ParseStatus(s string) (Status, error) {
	normalized := strings.ToLower(strings.ReplaceAll(strings.TrimSpace(s), "_", " "))
	for _, status := range AllStatuses() {
		if strings.ToLower(status.String()) == normalized {
			return status, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%q is not a valid status", s))
}

// Validate checks that s is one of the nine lifecycle states.
func (s Status) Validate() error {
	if s <= Unknown || s > Blocked {
		return errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

// String returns the display name, or "Unknown" for invalid values.
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "Unknown"
}

// CanBeCancelled reports whether a parcel in status s may still be cancelled by its sender.
// Cancellation is refused once the parcel has been dispatched or has reached an outcome.
func (s Status) CanBeCancelled() bool {
	switch s {
	case Requested, Approved:
		return true
	default:
		return false
	}
}

// Cancel transitions the status to Cancelled.
//
// Returns a PreconditionFailedError naming the current status when cancellation
// is no longer allowed.
func (s Status) Cancel() (Status, error) {
	if !s.CanBeCancelled() {
		return Unknown, errs.NewPreconditionFailedError("cancel parcel", s.String())
	}
	return Cancelled, nil
}

// validateFlags checks that the given flag values do not contradict s.
// A nil flag is not checked.
func (s Status) validateFlags(isBlocked, isCanceled, isDelivered *bool) error {
	check := func(name string, flag *bool, expected bool) error {
		if flag == nil || *flag == expected {
			return nil
		}
		return errs.NewValueIsInvalidErrorWithCause(name, fmt.Errorf("%t contradicts status %s", *flag, s))
	}

	delivered := s == Delivered || s == Received
	if err := check("isBlocked", isBlocked, s == Blocked); err != nil {
		return err
	}
	if err := check("isCanceled", isCanceled, s == Cancelled); err != nil {
		return err
	}
	return check("isDelivered", isDelivered, delivered)
}
