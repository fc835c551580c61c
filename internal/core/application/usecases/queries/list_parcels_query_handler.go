package queries

import (
	"context"

	"parceltrack/internal/core/domain/services"
	"parceltrack/internal/pkg/errs"

	"gorm.io/gorm"
)

// ListParcelsQueryHandler counts and pages through the scoped, filtered parcel set.
// Total counts the filtered set, so a page past the last one is empty, not an error.
type ListParcelsQueryHandler struct {
	db     *gorm.DB
	policy services.AccessPolicy
}

func NewListParcelsQueryHandler(db *gorm.DB, policy services.AccessPolicy) ListParcelsQueryHandler {
	return ListParcelsQueryHandler{db: db, policy: policy}
}

func (h ListParcelsQueryHandler) Handle(ctx context.Context, query ListParcelsQuery) (ListParcelsResponse, error) {
	if err := query.Validate(); err != nil {
		return ListParcelsResponse{}, err
	}

	action := services.ActionListAllParcels
	if query.Scope() == ScopeMine {
		action = services.ActionListMyParcels
	}
	if err := h.policy.Authorize(query.Caller(), action, services.Target{}); err != nil {
		return ListParcelsResponse{}, err
	}

	scoped := func() *gorm.DB {
		db := h.db.WithContext(ctx).Table(parcelsTable)
		if query.Scope() == ScopeMine {
			db = db.Where("sender_id = ?", query.Caller().SubjectID().Bytes())
		}
		return db
	}

	params := query.Params()

	var total int64
	if err := params.Filter(scoped()).Count(&total).Error; err != nil {
		return ListParcelsResponse{}, errs.NewInternalError("count parcels", err)
	}

	var rows []parcelRow
	if err := params.Paginate(scoped()).Find(&rows).Error; err != nil {
		return ListParcelsResponse{}, errs.NewInternalError("list parcels", err)
	}

	data := make([]ParcelView, 0, len(rows))
	for _, r := range rows {
		v, err := r.view()
		if err != nil {
			return ListParcelsResponse{}, err
		}
		data = append(data, v)
	}

	return ListParcelsResponse{Data: data, Meta: params.Meta(total), Fields: params.Fields()}, nil
}
