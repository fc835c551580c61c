package parcelrepo

import (
	"context"

	"parceltrack/internal/adapters/out/postgres/pgerr"
	"parceltrack/internal/core/domain/model/kernel"
	"parceltrack/internal/core/domain/model/parcel"
	"parceltrack/internal/pkg/errs"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const objectName = "parcel"

var uniqueFields = pgerr.UniqueFields{
	"idx_parcels_tracking_id": "trackingId",
}

// GormParcelRepository implements ports.ParcelRepository using GORM.
type GormParcelRepository struct {
	db *gorm.DB
}

// NewGormParcelRepository creates a repository bound to db, which may be a transaction.
func NewGormParcelRepository(db *gorm.DB) *GormParcelRepository {
	return &GormParcelRepository{db: db}
}

// Add inserts the parcel row and its log entries.
func (r *GormParcelRepository) Add(ctx context.Context, aggregate *parcel.Parcel) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return pgerr.Translate("add parcel", err, objectName, aggregate.ID().String(), uniqueFields)
	}
	return nil
}

// Update writes the parcel row guarded by the version it was read at, then appends
// log entries the store does not have yet. Stored entries are never rewritten.
func (r *GormParcelRepository) Update(ctx context.Context, aggregate *parcel.Parcel) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	db := r.db.WithContext(ctx)
	dto := fromDomain(aggregate)

	result := db.Model(&ParcelDTO{}).
		Where("id = ? AND version = ?", dto.ID, dto.Version).
		Updates(map[string]any{
			"weight":           dto.Weight,
			"fee":              dto.Fee,
			"pickup_address":   dto.PickupAddress,
			"delivery_address": dto.DeliveryAddress,
			"current_status":   dto.CurrentStatus,
			"is_blocked":       dto.IsBlocked,
			"is_canceled":      dto.IsCanceled,
			"is_delivered":     dto.IsDelivered,
			"version":          dto.Version + 1,
			"updated_at":       dto.UpdatedAt,
		})
	if result.Error != nil {
		return pgerr.Translate("update parcel", result.Error, objectName, aggregate.ID().String(), uniqueFields)
	}

	if result.RowsAffected == 0 {
		return r.missingOrStale(ctx, aggregate)
	}

	if err := db.Clauses(clause.OnConflict{DoNothing: true}).Create(&dto.StatusLog).Error; err != nil {
		return pgerr.Translate("append status log", err, objectName, aggregate.ID().String(), uniqueFields)
	}
	return nil
}

func (r *GormParcelRepository) missingOrStale(ctx context.Context, aggregate *parcel.Parcel) error {
	var count int64
	if err := r.db.WithContext(ctx).Model(&ParcelDTO{}).Where("id = ?", aggregate.ID().Bytes()).Count(&count).Error; err != nil {
		return pgerr.Translate("update parcel", err, objectName, aggregate.ID().String(), uniqueFields)
	}
	if count == 0 {
		return errs.NewObjectNotFoundError(objectName, aggregate.ID().String())
	}
	return errs.NewConcurrentModificationError(objectName, aggregate.ID().String(), aggregate.Version())
}

// Get loads the parcel with its log in append order.
func (r *GormParcelRepository) Get(ctx context.Context, id kernel.UUID) (*parcel.Parcel, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto ParcelDTO
	err := r.db.WithContext(ctx).
		Preload("StatusLog", func(db *gorm.DB) *gorm.DB { return db.Order("seq") }).
		First(&dto, "id = ?", id.Bytes()).Error
	if err != nil {
		return nil, pgerr.Translate("get parcel", err, objectName, id.String(), uniqueFields)
	}

	return toDomain(dto)
}

// Delete removes the parcel; its log rows go with it through the cascading foreign key.
func (r *GormParcelRepository) Delete(ctx context.Context, id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}

	result := r.db.WithContext(ctx).Delete(&ParcelDTO{}, "id = ?", id.Bytes())
	if result.Error != nil {
		return pgerr.Translate("delete parcel", result.Error, objectName, id.String(), uniqueFields)
	}
	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError(objectName, id.String())
	}
	return nil
}
