package ports

import "parceltrack/internal/core/domain/model/identity"

// PasswordHasher is the one-way credential verifier.
type PasswordHasher interface {
	Hash(secret string) (string, error)

	// Verify reports whether secret matches digest. A malformed digest never matches.
	Verify(secret, digest string) bool
}

// TokenPair is issued on login.
type TokenPair struct {
	AccessToken  string
	RefreshToken string
}

// TokenService issues and verifies signed, stateless tokens. Access and refresh tokens
// are signed with different secrets.
//
// Decode failures are TokenErrors: both malformed and expired tokens satisfy
// errors.Is(err, errs.ErrNotAuthenticated); errs.ErrTokenExpired tells them apart for logs.
type TokenService interface {
	Issue(id identity.Identity) (TokenPair, error)
	DecodeAccess(token string) (identity.Identity, error)
	DecodeRefresh(token string) (identity.Identity, error)

	// Rotate issues a new access token for the identity in a valid refresh token.
	Rotate(refreshToken string) (string, error)
}
