package queries

import (
	"errors"
	"net/url"

	"parceltrack/internal/core/domain/model/identity"
	"parceltrack/internal/core/domain/model/user"
	"parceltrack/internal/pkg/guard"
	"parceltrack/internal/pkg/listing"
)

var ErrListUsersQueryIsNotConstructed = errors.New(
	"ListUsersQuery must be created via NewListUsersQuery constructor",
)

// UserListing is the allow-list of account listing parameters. The password hash
// is not a field, so it can be neither filtered nor selected.
var UserListing = listing.Schema{
	IDColumn: "id",
	Fields: []listing.Field{
		{Name: "id", Column: "id"},
		{Name: "name", Column: "name", Searchable: true, Sortable: true},
		{Name: "email", Column: "email", Filterable: true, Searchable: true, Sortable: true, Parse: parseEmailFilter},
		{Name: "phone", Column: "phone"},
		{Name: "address", Column: "address"},
		{Name: "role", Column: "role", Filterable: true, Sortable: true, Parse: parseRoleFilter},
		{Name: "isActive", Column: "is_active", Filterable: true, Parse: parseActivityFilter},
		{Name: "isDeleted", Column: "is_deleted", Kind: listing.Bool, Filterable: true},
		{Name: "isVerified", Column: "is_verified", Kind: listing.Bool, Filterable: true},
		{Name: "createdAt", Column: "created_at", Sortable: true},
		{Name: "updatedAt", Column: "updated_at", Sortable: true},
	},
	DefaultSort: "-createdAt",
	MaxLimit:    defaultMaxPerPage,
}

func parseEmailFilter(s string) (any, error) {
	return user.NormalizeEmail(s), nil
}

func parseRoleFilter(s string) (any, error) {
	r, err := identity.ParseRole(s)
	if err != nil {
		return nil, err
	}
	return r.String(), nil
}

func parseActivityFilter(s string) (any, error) {
	a, err := user.ParseActivity(s)
	if err != nil {
		return nil, err
	}
	return a.String(), nil
}

// ListUsersQuery pages through accounts. Administrators only.
type ListUsersQuery struct {
	caller identity.Identity
	params listing.Query

	guard guard.ConstructorGuard
}

func NewListUsersQuery(caller identity.Identity, values url.Values) (ListUsersQuery, error) {
	if err := caller.Validate(); err != nil {
		return ListUsersQuery{}, err
	}

	params, err := UserListing.Parse(values)
	if err != nil {
		return ListUsersQuery{}, err
	}

	return ListUsersQuery{caller: caller, params: params, guard: guard.NewConstructorGuard()}, nil
}

func (q ListUsersQuery) Validate() error {
	return q.guard.Validate(ErrListUsersQueryIsNotConstructed)
}

func (q ListUsersQuery) Caller() identity.Identity {
	return q.caller
}

func (q ListUsersQuery) Params() listing.Query {
	return q.params
}

type ListUsersResponse struct {
	Data   []UserView
	Meta   listing.Meta
	Fields []string
}
