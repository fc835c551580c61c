package queries

import (
	"context"
	"errors"

	"parceltrack/internal/core/domain/services"
	"parceltrack/internal/pkg/errs"

	"gorm.io/gorm"
)

// GetParcelQueryHandler resolves the parcel first and only then asks the access policy,
// so a missing parcel is NotFound for every caller and an existing one is Forbidden
// for callers that are neither sender, receiver nor administrator. The row and its log
// are read from one snapshot, so currentStatus always matches the last log entry.
type GetParcelQueryHandler struct {
	db     *gorm.DB
	policy services.AccessPolicy
}

func NewGetParcelQueryHandler(db *gorm.DB, policy services.AccessPolicy) GetParcelQueryHandler {
	return GetParcelQueryHandler{db: db, policy: policy}
}

func (h GetParcelQueryHandler) Handle(ctx context.Context, query GetParcelQuery) (ParcelView, error) {
	if err := query.Validate(); err != nil {
		return ParcelView{}, err
	}

	var view ParcelView
	err := h.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var err error
		if view, err = loadParcel(ctx, tx, query.ParcelID()); err != nil {
			return err
		}
		if err = h.policy.Authorize(query.Caller(), services.ActionReadParcel, view.target()); err != nil {
			return err
		}
		view.StatusLog, err = loadStatusLog(ctx, tx, query.ParcelID())
		return err
	}, snapshotRead)
	if err != nil {
		if errs.KindOf(err) == errs.KindInternal && !errors.Is(err, errs.ErrInternal) {
			return ParcelView{}, errs.NewInternalError("read parcel", err)
		}
		return ParcelView{}, err
	}
	return view, nil
}
