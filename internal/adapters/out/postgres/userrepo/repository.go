package userrepo

import (
	"context"

	"parceltrack/internal/adapters/out/postgres/pgerr"
	"parceltrack/internal/core/domain/model/kernel"
	"parceltrack/internal/core/domain/model/user"
	"parceltrack/internal/pkg/errs"

	"gorm.io/gorm"
)

const objectName = "user"

var uniqueFields = pgerr.UniqueFields{
	"idx_users_email": "email",
}

// GormUserRepository implements ports.UserRepository using GORM.
type GormUserRepository struct {
	db *gorm.DB
}

// NewGormUserRepository creates a repository bound to db, which may be a transaction.
func NewGormUserRepository(db *gorm.DB) *GormUserRepository {
	return &GormUserRepository{db: db}
}

// Add inserts a new account. A taken email is a ConflictError naming email.
func (r *GormUserRepository) Add(ctx context.Context, aggregate *user.User) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return pgerr.Translate("add user", err, objectName, aggregate.ID().String(), uniqueFields)
	}
	return nil
}

// Update writes every mutable column. Email is not among them.
func (r *GormUserRepository) Update(ctx context.Context, aggregate *user.User) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	result := r.db.WithContext(ctx).Model(&UserDTO{}).
		Where("id = ?", dto.ID).
		Updates(map[string]any{
			"name":          dto.Name,
			"phone":         dto.Phone,
			"address":       dto.Address,
			"password_hash": dto.PasswordHash,
			"role":          dto.Role,
			"is_active":     dto.IsActive,
			"is_deleted":    dto.IsDeleted,
			"is_verified":   dto.IsVerified,
			"updated_at":    dto.UpdatedAt,
		})
	if result.Error != nil {
		return pgerr.Translate("update user", result.Error, objectName, aggregate.ID().String(), uniqueFields)
	}
	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError(objectName, aggregate.ID().String())
	}
	return nil
}

// Get retrieves an account by ID.
func (r *GormUserRepository) Get(ctx context.Context, id kernel.UUID) (*user.User, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto UserDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		return nil, pgerr.Translate("get user", err, objectName, id.String(), uniqueFields)
	}
	return toDomain(dto)
}

// GetByEmail retrieves an account by email. The lookup normalizes its argument.
func (r *GormUserRepository) GetByEmail(ctx context.Context, email string) (*user.User, error) {
	email = user.NormalizeEmail(email)
	if email == "" {
		return nil, errs.NewValueIsRequiredError("email")
	}

	var dto UserDTO
	if err := r.db.WithContext(ctx).First(&dto, "email = ?", email).Error; err != nil {
		return nil, pgerr.Translate("get user by email", err, objectName, email, uniqueFields)
	}
	return toDomain(dto)
}
