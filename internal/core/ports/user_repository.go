package ports

import (
	"context"

	"parceltrack/internal/core/domain/model/kernel"
	"parceltrack/internal/core/domain/model/user"
)

// UserRepository persists accounts.
type UserRepository interface {
	// Add stores a new account. A duplicate email fails with a ConflictError naming email.
	Add(ctx context.Context, aggregate *user.User) error

	// Update persists changes to an existing account.
	Update(ctx context.Context, aggregate *user.User) error

	// Get returns the account or an ObjectNotFoundError.
	Get(ctx context.Context, id kernel.UUID) (*user.User, error)

	// GetByEmail looks up an account by its normalized email, or fails with an ObjectNotFoundError.
	GetByEmail(ctx context.Context, email string) (*user.User, error)
}
