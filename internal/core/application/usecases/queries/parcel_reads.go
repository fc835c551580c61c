package queries

import (
	"context"
	"database/sql"
	"errors"

	"parceltrack/internal/core/domain/model/kernel"
	"parceltrack/internal/pkg/errs"

	"gorm.io/gorm"
)

// snapshotRead lets a handler read a parcel and its log as of one point in time.
var snapshotRead = &sql.TxOptions{Isolation: sql.LevelRepeatableRead, ReadOnly: true}

func loadParcel(ctx context.Context, db *gorm.DB, id kernel.UUID) (ParcelView, error) {
	var row parcelRow
	err := db.WithContext(ctx).Table(parcelsTable).Where("id = ?", id.Bytes()).Take(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ParcelView{}, errs.NewObjectNotFoundError(parcelObjectName, id.String())
	}
	if err != nil {
		return ParcelView{}, errs.NewInternalError("read parcel", err)
	}
	return row.view()
}

func loadStatusLog(ctx context.Context, db *gorm.DB, id kernel.UUID) ([]StatusEntryView, error) {
	var rows []statusEntryRow
	err := db.WithContext(ctx).Table(statusEntryTable).
		Select("status", "timestamp", "updated_by", "location", "note").
		Where("parcel_id = ?", id.Bytes()).
		Order("seq").
		Find(&rows).Error
	if err != nil {
		return nil, errs.NewInternalError("read status log", err)
	}

	log := make([]StatusEntryView, 0, len(rows))
	for _, r := range rows {
		entry, viewErr := r.view()
		if viewErr != nil {
			return nil, viewErr
		}
		log = append(log, entry)
	}
	return log, nil
}
