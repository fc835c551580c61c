package queries

import (
	"context"

	"parceltrack/internal/core/domain/services"

	"gorm.io/gorm"
)

// GetStatusLogQueryHandler returns the log in append order, oldest first.
type GetStatusLogQueryHandler struct {
	db     *gorm.DB
	policy services.AccessPolicy
}

func NewGetStatusLogQueryHandler(db *gorm.DB, policy services.AccessPolicy) GetStatusLogQueryHandler {
	return GetStatusLogQueryHandler{db: db, policy: policy}
}

func (h GetStatusLogQueryHandler) Handle(ctx context.Context, query GetStatusLogQuery) ([]StatusEntryView, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	view, err := loadParcel(ctx, h.db, query.ParcelID())
	if err != nil {
		return nil, err
	}

	if err = h.policy.Authorize(query.Caller(), services.ActionReadStatusLog, view.target()); err != nil {
		return nil, err
	}

	return loadStatusLog(ctx, h.db, query.ParcelID())
}
