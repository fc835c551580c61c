// Package queries contains the read operations. Handlers read the store directly
// through gorm into read models; they never load aggregates.
package queries

import (
	"time"

	"parceltrack/internal/core/domain/model/identity"
	"parceltrack/internal/core/domain/model/kernel"
	"parceltrack/internal/core/domain/model/parcel"
	"parceltrack/internal/core/domain/model/user"
	"parceltrack/internal/core/domain/services"

	"github.com/google/uuid"
)

const (
	parcelsTable      = "parcels"
	statusEntryTable  = "parcel_status_entries"
	usersTable        = "users"
	parcelObjectName  = "parcel"
	defaultMaxPerPage = 100
)

// ParcelView is the parcel read model. In listings only the projected fields are set.
type ParcelView struct {
	ID              kernel.UUID
	TrackingID      string
	Sender          kernel.UUID
	Receiver        kernel.UUID
	Weight          float64
	Fee             float64
	PickupAddress   string
	DeliveryAddress string
	CurrentStatus   parcel.Status
	IsBlocked       bool
	IsCanceled      bool
	IsDelivered     bool
	CreatedAt       time.Time
	UpdatedAt       time.Time
	StatusLog       []StatusEntryView
}

// StatusEntryView is one status log entry. UpdatedBy is nil for unattributed entries.
type StatusEntryView struct {
	Status    parcel.Status
	Timestamp time.Time
	UpdatedBy *kernel.UUID
	Location  string
	Note      string
}

// UserView is the account read model. The password hash is never part of it.
type UserView struct {
	ID         kernel.UUID
	Name       string
	Email      string
	Phone      string
	Address    string
	Role       identity.Role
	Activity   user.Activity
	IsDeleted  bool
	IsVerified bool
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

type parcelRow struct {
	ID              uuid.UUID
	TrackingID      string
	SenderID        uuid.UUID
	ReceiverID      uuid.UUID
	Weight          float64
	Fee             float64
	PickupAddress   string
	DeliveryAddress string
	CurrentStatus   string
	IsBlocked       bool
	IsCanceled      bool
	IsDelivered     bool
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

func (r parcelRow) view() (ParcelView, error) {
	id, err := kernel.UUIDFromBytes(r.ID[:])
	if err != nil {
		return ParcelView{}, err
	}
	sender, err := optionalUUID(r.SenderID)
	if err != nil {
		return ParcelView{}, err
	}
	receiver, err := optionalUUID(r.ReceiverID)
	if err != nil {
		return ParcelView{}, err
	}

	status := parcel.Unknown
	if r.CurrentStatus != "" {
		if status, err = parcel.ParseStatus(r.CurrentStatus); err != nil {
			return ParcelView{}, err
		}
	}

	return ParcelView{
		ID:              id,
		TrackingID:      r.TrackingID,
		Sender:          sender,
		Receiver:        receiver,
		Weight:          r.Weight,
		Fee:             r.Fee,
		PickupAddress:   r.PickupAddress,
		DeliveryAddress: r.DeliveryAddress,
		CurrentStatus:   status,
		IsBlocked:       r.IsBlocked,
		IsCanceled:      r.IsCanceled,
		IsDelivered:     r.IsDelivered,
		CreatedAt:       r.CreatedAt,
		UpdatedAt:       r.UpdatedAt,
	}, nil
}

// target exposes the ownership fields of a fully loaded row to the access policy.
func (v ParcelView) target() services.Target {
	return services.Target{Sender: v.Sender, Receiver: v.Receiver, Status: v.CurrentStatus}
}

type statusEntryRow struct {
	Status    string
	Timestamp time.Time
	UpdatedBy *uuid.UUID
	Location  string
	Note      string
}

func (r statusEntryRow) view() (StatusEntryView, error) {
	status, err := parcel.ParseStatus(r.Status)
	if err != nil {
		return StatusEntryView{}, err
	}

	var by *kernel.UUID
	if r.UpdatedBy != nil {
		id, idErr := kernel.UUIDFromBytes((*r.UpdatedBy)[:])
		if idErr != nil {
			return StatusEntryView{}, idErr
		}
		by = &id
	}

	return StatusEntryView{
		Status:    status,
		Timestamp: r.Timestamp,
		UpdatedBy: by,
		Location:  r.Location,
		Note:      r.Note,
	}, nil
}

type userRow struct {
	ID         uuid.UUID
	Name       string
	Email      string
	Phone      string
	Address    string
	Role       string
	IsActive   string
	IsDeleted  bool
	IsVerified bool
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

func (r userRow) view() (UserView, error) {
	id, err := kernel.UUIDFromBytes(r.ID[:])
	if err != nil {
		return UserView{}, err
	}
	return UserView{
		ID:         id,
		Name:       r.Name,
		Email:      r.Email,
		Phone:      r.Phone,
		Address:    r.Address,
		Role:       identity.Role(r.Role),
		Activity:   user.Activity(r.IsActive),
		IsDeleted:  r.IsDeleted,
		IsVerified: r.IsVerified,
		CreatedAt:  r.CreatedAt,
		UpdatedAt:  r.UpdatedAt,
	}, nil
}

// optionalUUID maps a column left out of a projection to the zero kernel.UUID.
func optionalUUID(raw uuid.UUID) (kernel.UUID, error) {
	if raw == uuid.Nil {
		return kernel.UUID{}, nil
	}
	return kernel.UUIDFromBytes(raw[:])
}
