package queries

import (
	"context"

	"parceltrack/internal/core/domain/services"
	"parceltrack/internal/pkg/errs"

	"gorm.io/gorm"
)

type ListUsersQueryHandler struct {
	db     *gorm.DB
	policy services.AccessPolicy
}

func NewListUsersQueryHandler(db *gorm.DB, policy services.AccessPolicy) ListUsersQueryHandler {
	return ListUsersQueryHandler{db: db, policy: policy}
}

func (h ListUsersQueryHandler) Handle(ctx context.Context, query ListUsersQuery) (ListUsersResponse, error) {
	if err := query.Validate(); err != nil {
		return ListUsersResponse{}, err
	}

	if err := h.policy.Authorize(query.Caller(), services.ActionListUsers, services.Target{}); err != nil {
		return ListUsersResponse{}, err
	}

	params := query.Params()

	var total int64
	if err := params.Filter(h.db.WithContext(ctx).Table(usersTable)).Count(&total).Error; err != nil {
		return ListUsersResponse{}, errs.NewInternalError("count users", err)
	}

	var rows []userRow
	if err := params.Paginate(h.db.WithContext(ctx).Table(usersTable)).Find(&rows).Error; err != nil {
		return ListUsersResponse{}, errs.NewInternalError("list users", err)
	}

	data := make([]UserView, 0, len(rows))
	for _, r := range rows {
		v, err := r.view()
		if err != nil {
			return ListUsersResponse{}, err
		}
		data = append(data, v)
	}

	return ListUsersResponse{Data: data, Meta: params.Meta(total), Fields: params.Fields()}, nil
}
