// Package parcelrepo persists parcel aggregates and their append-only status logs.
package parcelrepo

import (
	"time"

	"parceltrack/internal/core/domain/model/kernel"
	"parceltrack/internal/core/domain/model/parcel"

	"github.com/google/uuid"
)

// ParcelDTO is the parcels row. Version guards updates; the log lives in StatusEntryDTO rows.
type ParcelDTO struct {
	ID              uuid.UUID        `gorm:"type:uuid;primaryKey"`
	TrackingID      string           `gorm:"type:varchar(32);not null;uniqueIndex:idx_parcels_tracking_id"`
	SenderID        uuid.UUID        `gorm:"type:uuid;not null;index"`
	ReceiverID      uuid.UUID        `gorm:"type:uuid;not null;index"`
	Weight          float64          `gorm:"not null"`
	Fee             float64          `gorm:"not null"`
	PickupAddress   string           `gorm:"type:text;not null"`
	DeliveryAddress string           `gorm:"type:text;not null"`
	CurrentStatus   string           `gorm:"type:varchar(32);not null;index"`
	IsBlocked       bool             `gorm:"not null"`
	IsCanceled      bool             `gorm:"not null"`
	IsDelivered     bool             `gorm:"not null"`
	Version         int64            `gorm:"not null"`
	CreatedAt       time.Time        `gorm:"not null;index"`
	UpdatedAt       time.Time        `gorm:"not null"`
	StatusLog       []StatusEntryDTO `gorm:"foreignKey:ParcelID;constraint:OnDelete:CASCADE"`
}

func (ParcelDTO) TableName() string {
	return "parcels"
}

// StatusEntryDTO is one log row, keyed by its position in the log.
type StatusEntryDTO struct {
	ParcelID  uuid.UUID  `gorm:"type:uuid;primaryKey"`
	Seq       int        `gorm:"primaryKey;autoIncrement:false"`
	Status    string     `gorm:"type:varchar(32);not null"`
	Timestamp time.Time  `gorm:"not null"`
	UpdatedBy *uuid.UUID `gorm:"type:uuid"`
	Location  string     `gorm:"type:text;not null"`
	Note      string     `gorm:"type:text;not null"`
}

func (StatusEntryDTO) TableName() string {
	return "parcel_status_entries"
}

func fromDomain(p *parcel.Parcel) ParcelDTO {
	details := p.Details()
	flags := p.Flags()

	return ParcelDTO{
		ID:              p.ID().Bytes(),
		TrackingID:      p.TrackingID().String(),
		SenderID:        p.Sender().Bytes(),
		ReceiverID:      p.Receiver().Bytes(),
		Weight:          details.Weight,
		Fee:             details.Fee,
		PickupAddress:   details.PickupAddress,
		DeliveryAddress: details.DeliveryAddress,
		CurrentStatus:   p.CurrentStatus().String(),
		IsBlocked:       flags.IsBlocked,
		IsCanceled:      flags.IsCanceled,
		IsDelivered:     flags.IsDelivered,
		Version:         p.Version(),
		CreatedAt:       p.CreatedAt(),
		UpdatedAt:       p.UpdatedAt(),
		StatusLog:       entriesFromDomain(p.ID(), p.StatusLog()),
	}
}

func entriesFromDomain(parcelID kernel.UUID, log []parcel.StatusEntry) []StatusEntryDTO {
	entries := make([]StatusEntryDTO, 0, len(log))
	for seq, e := range log {
		var by *uuid.UUID
		if id := e.UpdatedBy(); id != nil {
			raw := id.Bytes()
			by = &raw
		}
		entries = append(entries, StatusEntryDTO{
			ParcelID:  parcelID.Bytes(),
			Seq:       seq,
			Status:    e.Status().String(),
			Timestamp: e.Timestamp(),
			UpdatedBy: by,
			Location:  e.Location(),
			Note:      e.Note(),
		})
	}
	return entries
}

func toDomain(dto ParcelDTO) (*parcel.Parcel, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	sender, err := kernel.UUIDFromBytes(dto.SenderID[:])
	if err != nil {
		return nil, err
	}
	receiver, err := kernel.UUIDFromBytes(dto.ReceiverID[:])
	if err != nil {
		return nil, err
	}
	trackingID, err := parcel.TrackingIDFromString(dto.TrackingID)
	if err != nil {
		return nil, err
	}
	status, err := parcel.ParseStatus(dto.CurrentStatus)
	if err != nil {
		return nil, err
	}

	log := make([]parcel.StatusEntry, 0, len(dto.StatusLog))
	for _, e := range dto.StatusLog {
		entry, entryErr := entryToDomain(e)
		if entryErr != nil {
			return nil, entryErr
		}
		log = append(log, entry)
	}

	return parcel.RestoreParcel(
		id,
		trackingID,
		sender,
		receiver,
		parcel.Details{
			Weight:          dto.Weight,
			Fee:             dto.Fee,
			PickupAddress:   dto.PickupAddress,
			DeliveryAddress: dto.DeliveryAddress,
		},
		status,
		log,
		parcel.Flags{IsBlocked: dto.IsBlocked, IsCanceled: dto.IsCanceled, IsDelivered: dto.IsDelivered},
		dto.Version,
		dto.CreatedAt,
		dto.UpdatedAt,
	)
}

func entryToDomain(dto StatusEntryDTO) (parcel.StatusEntry, error) {
	status, err := parcel.ParseStatus(dto.Status)
	if err != nil {
		return parcel.StatusEntry{}, err
	}

	var by *kernel.UUID
	if dto.UpdatedBy != nil {
		id, idErr := kernel.UUIDFromBytes((*dto.UpdatedBy)[:])
		if idErr != nil {
			return parcel.StatusEntry{}, idErr
		}
		by = &id
	}

	return parcel.NewStatusEntry(status, dto.Timestamp, by, dto.Location, dto.Note)
}
