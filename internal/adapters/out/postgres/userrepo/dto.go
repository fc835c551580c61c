// Package userrepo persists user accounts.
package userrepo

import (
	"time"

	"parceltrack/internal/core/domain/model/identity"
	"parceltrack/internal/core/domain/model/kernel"
	"parceltrack/internal/core/domain/model/user"

	"github.com/google/uuid"
)

// UserDTO is the users row. Email is stored normalized and is unique.
type UserDTO struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name         string    `gorm:"type:varchar(255);not null"`
	Email        string    `gorm:"type:varchar(255);not null;uniqueIndex:idx_users_email"`
	Phone        string    `gorm:"type:varchar(32);not null"`
	Address      string    `gorm:"type:text;not null"`
	PasswordHash string    `gorm:"type:varchar(255);not null"`
	Role         string    `gorm:"type:varchar(16);not null;index"`
	IsActive     string    `gorm:"type:varchar(16);not null"`
	IsDeleted    bool      `gorm:"not null"`
	IsVerified   bool      `gorm:"not null"`
	CreatedAt    time.Time `gorm:"not null;index"`
	UpdatedAt    time.Time `gorm:"not null"`
}

func (UserDTO) TableName() string {
	return "users"
}

func fromDomain(u *user.User) UserDTO {
	profile := u.Profile()
	return UserDTO{
		ID:           u.ID().Bytes(),
		Name:         profile.Name,
		Email:        u.Email(),
		Phone:        profile.Phone,
		Address:      profile.Address,
		PasswordHash: u.PasswordHash(),
		Role:         u.Role().String(),
		IsActive:     u.Activity().String(),
		IsDeleted:    u.IsDeleted(),
		IsVerified:   u.IsVerified(),
		CreatedAt:    u.CreatedAt(),
		UpdatedAt:    u.UpdatedAt(),
	}
}

func toDomain(dto UserDTO) (*user.User, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	role, err := identity.ParseRole(dto.Role)
	if err != nil {
		return nil, err
	}
	activity, err := user.ParseActivity(dto.IsActive)
	if err != nil {
		return nil, err
	}

	return user.RestoreUser(
		id,
		user.Profile{Name: dto.Name, Email: dto.Email, Phone: dto.Phone, Address: dto.Address},
		dto.PasswordHash,
		role,
		activity,
		dto.IsDeleted,
		dto.IsVerified,
		dto.CreatedAt,
		dto.UpdatedAt,
	)
}
