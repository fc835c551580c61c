package parcel

import (
	"errors"
	"fmt"
	"time"

	"parceltrack/internal/core/domain/model/kernel"
	"parceltrack/internal/pkg/errs"
)

// ErrParcelIsNotConstructed is returned when a Parcel was not created through NewParcel
// or RestoreParcel.
var ErrParcelIsNotConstructed = errors.New("Parcel must be created via NewParcel constructor")

// Attribution selects whose identity an administrative status change is recorded under.
type Attribution int

const (
	// AttributeToSender records every update-triggered entry under the parcel's sender.
	AttributeToSender Attribution = iota
	// AttributeToActor records the entry under the identity that performed the update.
	AttributeToActor
)

// ParseAttribution accepts "sender" or "actor". An empty string selects sender.
func ParseAttribution(s string) (Attribution, error) {
	switch s {
	case "", "sender":
		return AttributeToSender, nil
	case "actor":
		return AttributeToActor, nil
	default:
		return AttributeToSender, errs.NewValueIsInvalidErrorWithCause("attribution", fmt.Errorf("%q is neither sender nor actor", s))
	}
}

// Details are the shipping fields supplied at creation.
type Details struct {
	Weight          float64
	Fee             float64
	PickupAddress   string
	DeliveryAddress string
}

// Flags mirror outcomes recorded in the status log.
type Flags struct {
	IsBlocked   bool
	IsCanceled  bool
	IsDelivered bool
}

// Patch is an administrative update. Nil fields are left unchanged; Location and Note only
// apply to the log entry written when Status changes.
type Patch struct {
	Status          *Status
	Location        string
	Note            string
	Weight          *float64
	Fee             *float64
	PickupAddress   *string
	DeliveryAddress *string
	IsBlocked       *bool
	IsCanceled      *bool
	IsDelivered     *bool
}

// Parcel is the aggregate root for a shipment and its status log.
//
// Invariants:
//   - weight > 0, fee >= 0
//   - sender and receiver are set and differ; sender never changes
//   - the log is never empty, starts with Requested, and its last entry equals currentStatus
//   - the log is only ever appended to
type Parcel struct {
	id              kernel.UUID
	trackingID      TrackingID
	sender          kernel.UUID
	receiver        kernel.UUID
	weight          float64
	fee             float64
	pickupAddress   string
	deliveryAddress string
	currentStatus   Status
	statusLog       []StatusEntry
	flags           Flags

	// version is the optimistic-concurrency marker as read from the store.
	version   int64
	createdAt time.Time
	updatedAt time.Time

	isConstructed bool
}

// NewParcel creates a parcel in Requested with a single log entry attributed to the sender.
//
// Example:
//
//	p, err := parcel.NewParcel(kernel.NewUUID(), parcel.GenerateTrackingID(now), senderID, receiverID,
//	    parcel.Details{Weight: 5, Fee: 10, PickupAddress: "Dhaka", DeliveryAddress: "Khulna"}, now)
func NewParcel(
	id kernel.UUID,
	trackingID TrackingID,
	sender, receiver kernel.UUID,
	details Details,
	now time.Time,
) (*Parcel, error) {
	p := &Parcel{
		currentStatus: Requested,
		createdAt:     now,
		updatedAt:     now,
		isConstructed: true,
	}

	if err := errors.Join(
		p.setID(id),
		trackingID.Validate(),
		p.setParties(sender, receiver),
		p.setWeight(details.Weight),
		p.setFee(details.Fee),
	); err != nil {
		return nil, err
	}

	first, err := NewStatusEntry(Requested, now, &sender, "", "")
	if err != nil {
		return nil, err
	}

	p.trackingID = trackingID
	p.pickupAddress = details.PickupAddress
	p.deliveryAddress = details.DeliveryAddress
	p.statusLog = []StatusEntry{first}
	return p, nil
}

// RestoreParcel rebuilds a parcel from stored state and re-checks the log invariants.
func RestoreParcel(
	id kernel.UUID,
	trackingID TrackingID,
	sender, receiver kernel.UUID,
	details Details,
	currentStatus Status,
	statusLog []StatusEntry,
	flags Flags,
	version int64,
	createdAt, updatedAt time.Time,
) (*Parcel, error) {
	p := &Parcel{
		flags:         flags,
		version:       version,
		createdAt:     createdAt,
		updatedAt:     updatedAt,
		isConstructed: true,
	}

	if err := errors.Join(
		p.setID(id),
		trackingID.Validate(),
		p.setParties(sender, receiver),
		p.setWeight(details.Weight),
		p.setFee(details.Fee),
		currentStatus.Validate(),
	); err != nil {
		return nil, err
	}

	if len(statusLog) == 0 {
		return nil, errs.NewValueIsRequiredError("statusLog")
	}
	if statusLog[0].Status() != Requested {
		return nil, errs.NewValueIsInvalidErrorWithCause(
			"statusLog", fmt.Errorf("first entry is %s, expected %s", statusLog[0].Status(), Requested))
	}
	if last := statusLog[len(statusLog)-1].Status(); last != currentStatus {
		return nil, errs.NewValueIsInvalidErrorWithCause(
			"statusLog", fmt.Errorf("last entry is %s but current status is %s", last, currentStatus))
	}

	p.trackingID = trackingID
	p.pickupAddress = details.PickupAddress
	p.deliveryAddress = details.DeliveryAddress
	p.currentStatus = currentStatus
	p.statusLog = append([]StatusEntry(nil), statusLog...)
	return p, nil
}

// Validate ensures the Parcel was built through one of its constructors.
func (p *Parcel) Validate() error {
	if p == nil || !p.isConstructed {
		return ErrParcelIsNotConstructed
	}
	return nil
}

func (p *Parcel) ID() kernel.UUID {
	return p.id
}

func (p *Parcel) TrackingID() TrackingID {
	return p.trackingID
}

// Sender returns the identity that created the parcel.
func (p *Parcel) Sender() kernel.UUID {
	return p.sender
}

func (p *Parcel) Receiver() kernel.UUID {
	return p.receiver
}

func (p *Parcel) Details() Details {
	return Details{
		Weight:          p.weight,
		Fee:             p.fee,
		PickupAddress:   p.pickupAddress,
		DeliveryAddress: p.deliveryAddress,
	}
}

func (p *Parcel) CurrentStatus() Status {
	return p.currentStatus
}

// StatusLog returns a copy of the log, oldest first.
func (p *Parcel) StatusLog() []StatusEntry {
	return append([]StatusEntry(nil), p.statusLog...)
}

func (p *Parcel) Flags() Flags {
	return p.flags
}

// Version is the store revision this parcel was read at. Zero for a parcel not yet stored.
func (p *Parcel) Version() int64 {
	return p.version
}

func (p *Parcel) CreatedAt() time.Time {
	return p.createdAt
}

func (p *Parcel) UpdatedAt() time.Time {
	return p.updatedAt
}

// ApplyUpdate applies an administrative patch.
//
// A log entry is appended only when the patch sets a status different from the current
// one. The entry is attributed according to attribution. Flags are never derived
// from the status here, but a supplied flag must agree with the resulting status.
// The patch is validated in full before anything is changed.
func (p *Parcel) ApplyUpdate(patch Patch, actor kernel.UUID, attribution Attribution, now time.Time) error {
	next := p.currentStatus
	if patch.Status != nil {
		next = *patch.Status
	}

	var weightErr, feeErr error
	if patch.Weight != nil {
		weightErr = validateWeight(*patch.Weight)
	}
	if patch.Fee != nil {
		feeErr = validateFee(*patch.Fee)
	}

	if err := errors.Join(
		next.Validate(),
		actor.Validate(),
		weightErr,
		feeErr,
	); err != nil {
		return err
	}
	if err := next.validateFlags(patch.IsBlocked, patch.IsCanceled, patch.IsDelivered); err != nil {
		return err
	}

	if next != p.currentStatus {
		updatedBy := p.sender
		if attribution == AttributeToActor {
			updatedBy = actor
		}
		entry, err := NewStatusEntry(next, now, &updatedBy, patch.Location, patch.Note)
		if err != nil {
			return err
		}
		p.appendEntry(entry)
	}

	if patch.Weight != nil {
		p.weight = *patch.Weight
	}
	if patch.Fee != nil {
		p.fee = *patch.Fee
	}
	if patch.PickupAddress != nil {
		p.pickupAddress = *patch.PickupAddress
	}
	if patch.DeliveryAddress != nil {
		p.deliveryAddress = *patch.DeliveryAddress
	}
	if patch.IsBlocked != nil {
		p.flags.IsBlocked = *patch.IsBlocked
	}
	if patch.IsCanceled != nil {
		p.flags.IsCanceled = *patch.IsCanceled
	}
	if patch.IsDelivered != nil {
		p.flags.IsDelivered = *patch.IsDelivered
	}
	p.updatedAt = now
	return nil
}

// Cancel moves the parcel to Cancelled on behalf of its sender.
//
// Returns a ForbiddenError when caller is not the sender, and a
// PreconditionFailedError naming the current status when the parcel can no
// longer be cancelled.
func (p *Parcel) Cancel(caller kernel.UUID, now time.Time) error {
	if !p.sender.IsEqual(caller) {
		return errs.NewForbiddenError("cancel parcel", "only the sender can cancel a parcel")
	}

	next, err := p.currentStatus.Cancel()
	if err != nil {
		return err
	}

	sender := p.sender
	entry, err := NewStatusEntry(next, now, &sender, "", "")
	if err != nil {
		return err
	}

	p.appendEntry(entry)
	p.flags.IsCanceled = true
	p.updatedAt = now
	return nil
}

func (p *Parcel) appendEntry(entry StatusEntry) {
	p.statusLog = append(p.statusLog, entry)
	p.currentStatus = entry.Status()
}

func (p *Parcel) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	p.id = id
	return nil
}

func (p *Parcel) setParties(sender, receiver kernel.UUID) error {
	if err := errors.Join(sender.Validate(), receiver.Validate()); err != nil {
		return err
	}
	if sender.IsEqual(receiver) {
		return errs.NewValueIsInvalidErrorWithCause("receiver", errors.New("sender and receiver must differ"))
	}
	p.sender = sender
	p.receiver = receiver
	return nil
}

func (p *Parcel) setWeight(weight float64) error {
	if err := validateWeight(weight); err != nil {
		return err
	}
	p.weight = weight
	return nil
}

func (p *Parcel) setFee(fee float64) error {
	if err := validateFee(fee); err != nil {
		return err
	}
	p.fee = fee
	return nil
}

func validateWeight(weight float64) error {
	if weight <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("weight", fmt.Errorf("%v is not greater than 0", weight))
	}
	return nil
}

func validateFee(fee float64) error {
	if fee < 0 {
		return errs.NewValueIsInvalidErrorWithCause("fee", fmt.Errorf("%v is negative", fee))
	}
	return nil
}
