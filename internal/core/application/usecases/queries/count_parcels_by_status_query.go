package queries

import (
	"errors"

	"parceltrack/internal/pkg/guard"
)

var ErrCountParcelsByStatusQueryIsNotConstructed = errors.New(
	"CountParcelsByStatusQuery must be created via NewCountParcelsByStatusQuery constructor",
)

// CountParcelsByStatusQuery is the read behind the status report job. It runs outside
// any request and carries no identity.
type CountParcelsByStatusQuery struct {
	guard guard.ConstructorGuard
}

func NewCountParcelsByStatusQuery() CountParcelsByStatusQuery {
	return CountParcelsByStatusQuery{guard: guard.NewConstructorGuard()}
}

func (q CountParcelsByStatusQuery) Validate() error {
	return q.guard.Validate(ErrCountParcelsByStatusQueryIsNotConstructed)
}
