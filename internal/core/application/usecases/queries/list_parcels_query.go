package queries

import (
	"errors"
	"fmt"
	"net/url"

	"parceltrack/internal/core/domain/model/identity"
	"parceltrack/internal/core/domain/model/kernel"
	"parceltrack/internal/core/domain/model/parcel"
	"parceltrack/internal/pkg/errs"
	"parceltrack/internal/pkg/guard"
	"parceltrack/internal/pkg/listing"
)

var ErrListParcelsQueryIsNotConstructed = errors.New(
	"ListParcelsQuery must be created via NewListParcelsQuery constructor",
)

// Scope selects which parcels a listing covers.
type Scope int

const (
	// ScopeAll lists every parcel and requires an administrator.
	ScopeAll Scope = iota + 1
	// ScopeMine lists the parcels the caller sent.
	ScopeMine
)

// ParcelListing is the allow-list of parcel listing parameters.
var ParcelListing = listing.Schema{
	IDColumn: "id",
	Fields: []listing.Field{
		{Name: "id", Column: "id"},
		{Name: "trackingId", Column: "tracking_id", Filterable: true, Searchable: true, Sortable: true},
		{Name: "sender", Column: "sender_id", Filterable: true, Parse: parseUUIDFilter},
		{Name: "receiver", Column: "receiver_id", Filterable: true, Parse: parseUUIDFilter},
		{Name: "weight", Column: "weight", Kind: listing.Number, Filterable: true, Sortable: true},
		{Name: "fee", Column: "fee", Kind: listing.Number, Filterable: true, Sortable: true},
		{Name: "pickupAddress", Column: "pickup_address"},
		{Name: "deliveryAddress", Column: "delivery_address"},
		{Name: "currentStatus", Column: "current_status", Filterable: true, Searchable: true, Sortable: true, Parse: parseStatusFilter},
		{Name: "isBlocked", Column: "is_blocked", Kind: listing.Bool, Filterable: true},
		{Name: "isCanceled", Column: "is_canceled", Kind: listing.Bool, Filterable: true},
		{Name: "isDelivered", Column: "is_delivered", Kind: listing.Bool, Filterable: true},
		{Name: "createdAt", Column: "created_at", Sortable: true},
		{Name: "updatedAt", Column: "updated_at", Sortable: true},
	},
	DefaultSort: "-createdAt",
	MaxLimit:    defaultMaxPerPage,
}

func parseUUIDFilter(s string) (any, error) {
	id, err := kernel.UUIDFromString(s)
	if err != nil {
		return nil, err
	}
	return id.Bytes(), nil
}

func parseStatusFilter(s string) (any, error) {
	status, err := parcel.ParseStatus(s)
	if err != nil {
		return nil, err
	}
	return status.String(), nil
}

// ListParcelsQuery pages through parcels. Parameters are validated against ParcelListing
// when the query is built.
type ListParcelsQuery struct {
	caller identity.Identity
	scope  Scope
	params listing.Query

	guard guard.ConstructorGuard
}

func NewListParcelsQuery(caller identity.Identity, scope Scope, values url.Values) (ListParcelsQuery, error) {
	if err := caller.Validate(); err != nil {
		return ListParcelsQuery{}, err
	}
	if scope != ScopeAll && scope != ScopeMine {
		return ListParcelsQuery{}, errs.NewValueIsInvalidErrorWithCause("scope", fmt.Errorf("unknown scope %d", scope))
	}

	params, err := ParcelListing.Parse(values)
	if err != nil {
		return ListParcelsQuery{}, err
	}

	return ListParcelsQuery{caller: caller, scope: scope, params: params, guard: guard.NewConstructorGuard()}, nil
}

func (q ListParcelsQuery) Validate() error {
	return q.guard.Validate(ErrListParcelsQueryIsNotConstructed)
}

func (q ListParcelsQuery) Caller() identity.Identity {
	return q.caller
}

func (q ListParcelsQuery) Scope() Scope {
	return q.scope
}

func (q ListParcelsQuery) Params() listing.Query {
	return q.params
}

// ListParcelsResponse is one page. Fields lists the projected field names, or is nil
// when every field was requested.
type ListParcelsResponse struct {
	Data   []ParcelView
	Meta   listing.Meta
	Fields []string
}
