package commands_test

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"parceltrack/internal/core/application/usecases/commands"
	"parceltrack/internal/core/domain/model/identity"
	"parceltrack/internal/core/domain/model/kernel"
	"parceltrack/internal/core/domain/model/parcel"
	"parceltrack/internal/core/domain/model/user"
	"parceltrack/internal/core/ports"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var fixedNow = time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func mustIdentity(t *testing.T, subject kernel.UUID, role identity.Role) identity.Identity {
	t.Helper()
	id, err := identity.NewIdentity(subject, role)
	require.NoError(t, err)
	return id
}

func mustParcel(t *testing.T, sender, receiver kernel.UUID) *parcel.Parcel {
	t.Helper()
	p, err := parcel.NewParcel(kernel.NewUUID(), parcel.GenerateTrackingID(fixedNow), sender, receiver,
		parcel.Details{Weight: 5, Fee: 10, PickupAddress: "12 Lake Road", DeliveryAddress: "7 Hill Street"}, fixedNow)
	require.NoError(t, err)
	return p
}

func mustUser(t *testing.T, role identity.Role) *user.User {
	t.Helper()
	u, err := user.NewUser(kernel.NewUUID(), user.Profile{Name: "Rahim", Email: "rahim@example.com"}, "stored-hash", role, fixedNow)
	require.NoError(t, err)
	return u
}

type MockParcelRepository struct{ mock.Mock }

func (m *MockParcelRepository) Add(ctx context.Context, p *parcel.Parcel) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}

func (m *MockParcelRepository) Update(ctx context.Context, p *parcel.Parcel) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}

func (m *MockParcelRepository) Get(ctx context.Context, id kernel.UUID) (*parcel.Parcel, error) {
	args := m.Called(ctx, id)
	p, _ := args.Get(0).(*parcel.Parcel)
	return p, args.Error(1)
}

func (m *MockParcelRepository) Delete(ctx context.Context, id kernel.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type MockUserRepository struct{ mock.Mock }

func (m *MockUserRepository) Add(ctx context.Context, u *user.User) error {
	args := m.Called(ctx, u)
	return args.Error(0)
}

func (m *MockUserRepository) Update(ctx context.Context, u *user.User) error {
	args := m.Called(ctx, u)
	return args.Error(0)
}

func (m *MockUserRepository) Get(ctx context.Context, id kernel.UUID) (*user.User, error) {
	args := m.Called(ctx, id)
	u, _ := args.Get(0).(*user.User)
	return u, args.Error(1)
}

func (m *MockUserRepository) GetByEmail(ctx context.Context, email string) (*user.User, error) {
	args := m.Called(ctx, email)
	u, _ := args.Get(0).(*user.User)
	return u, args.Error(1)
}

// MockUoW satisfies ParcelUoW, UserUoW and UoW.
type MockUoW struct{ mock.Mock }

func (m *MockUoW) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) ParcelRepository() ports.ParcelRepository {
	args := m.Called()
	return args.Get(0).(ports.ParcelRepository)
}

func (m *MockUoW) UserRepository() ports.UserRepository {
	args := m.Called()
	return args.Get(0).(ports.UserRepository)
}

type MockParcelUoWFactory struct{ mock.Mock }

func (m *MockParcelUoWFactory) Create() commands.ParcelUoW {
	args := m.Called()
	return args.Get(0).(commands.ParcelUoW)
}

type MockUserUoWFactory struct{ mock.Mock }

func (m *MockUserUoWFactory) Create() commands.UserUoW {
	args := m.Called()
	return args.Get(0).(commands.UserUoW)
}

type MockUoWFactory struct{ mock.Mock }

func (m *MockUoWFactory) Create() commands.UoW {
	args := m.Called()
	return args.Get(0).(commands.UoW)
}

type MockPasswordHasher struct{ mock.Mock }

func (m *MockPasswordHasher) Hash(secret string) (string, error) {
	args := m.Called(secret)
	return args.String(0), args.Error(1)
}

func (m *MockPasswordHasher) Verify(secret, digest string) bool {
	args := m.Called(secret, digest)
	return args.Bool(0)
}

type MockTokenService struct{ mock.Mock }

func (m *MockTokenService) Issue(id identity.Identity) (ports.TokenPair, error) {
	args := m.Called(id)
	return args.Get(0).(ports.TokenPair), args.Error(1)
}

func (m *MockTokenService) DecodeAccess(token string) (identity.Identity, error) {
	args := m.Called(token)
	return args.Get(0).(identity.Identity), args.Error(1)
}

func (m *MockTokenService) DecodeRefresh(token string) (identity.Identity, error) {
	args := m.Called(token)
	return args.Get(0).(identity.Identity), args.Error(1)
}

func (m *MockTokenService) Rotate(refreshToken string) (string, error) {
	args := m.Called(refreshToken)
	return args.String(0), args.Error(1)
}
