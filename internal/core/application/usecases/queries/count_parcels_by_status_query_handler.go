package queries

import (
	"context"

	"parceltrack/internal/core/domain/model/parcel"
	"parceltrack/internal/pkg/errs"

	"gorm.io/gorm"
)

// StatusCount is the number of parcels currently in Status.
type StatusCount struct {
	Status parcel.Status
	Count  int64
}

type CountParcelsByStatusQueryHandler struct {
	db *gorm.DB
}

func NewCountParcelsByStatusQueryHandler(db *gorm.DB) CountParcelsByStatusQueryHandler {
	return CountParcelsByStatusQueryHandler{db: db}
}

// Handle returns one count per status in lifecycle order, zero counts included.
func (h CountParcelsByStatusQueryHandler) Handle(ctx context.Context, query CountParcelsByStatusQuery) ([]StatusCount, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT current_status, COUNT(*)
		FROM parcels
		GROUP BY current_status
	`).Rows()
	if err != nil {
		return nil, errs.NewInternalError("count parcels by status", err)
	}
	defer rows.Close()

	byStatus := make(map[parcel.Status]int64)
	for rows.Next() {
		var name string
		var count int64
		if err = rows.Scan(&name, &count); err != nil {
			return nil, errs.NewInternalError("count parcels by status", err)
		}
		status, parseErr := parcel.ParseStatus(name)
		if parseErr != nil {
			return nil, parseErr
		}
		byStatus[status] = count
	}
	if err = rows.Err(); err != nil {
		return nil, errs.NewInternalError("count parcels by status", err)
	}

	counts := make([]StatusCount, 0, len(parcel.AllStatuses()))
	for _, s := range parcel.AllStatuses() {
		counts = append(counts, StatusCount{Status: s, Count: byStatus[s]})
	}
	return counts, nil
}
