// Package jwttoken issues and verifies HS256 access and refresh tokens.
package jwttoken

import (
	"errors"
	"fmt"
	"time"

	"parceltrack/internal/core/domain/model/identity"
	"parceltrack/internal/core/domain/model/kernel"
	"parceltrack/internal/core/ports"
	"parceltrack/internal/pkg/errs"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

var _ ports.TokenService = (*Service)(nil)

// Config holds the signing material and lifetimes. Access and refresh secrets must differ.
type Config struct {
	AccessSecret  string
	AccessTTL     time.Duration
	RefreshSecret string
	RefreshTTL    time.Duration
	Issuer        string
}

func (c Config) Validate() error {
	if c.AccessSecret == "" {
		return errs.NewValueIsRequiredError("accessSecret")
	}
	if c.RefreshSecret == "" {
		return errs.NewValueIsRequiredError("refreshSecret")
	}
	if c.AccessSecret == c.RefreshSecret {
		return errs.NewValueIsInvalidErrorWithCause("refreshSecret", errors.New("must differ from the access secret"))
	}
	if c.AccessTTL <= 0 {
		return errs.NewValueIsOutOfRangeError("accessTTL", c.AccessTTL, "1ns", "-")
	}
	if c.RefreshTTL <= 0 {
		return errs.NewValueIsOutOfRangeError("refreshTTL", c.RefreshTTL, "1ns", "-")
	}
	return nil
}

type claims struct {
	jwt.RegisteredClaims
	Role string `json:"role"`
}

type signer struct {
	secret []byte
	ttl    time.Duration
}

type Service struct {
	access  signer
	refresh signer
	issuer  string
	clock   kernel.Clock
}

func NewService(cfg Config, clock kernel.Clock) (*Service, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &Service{
		access:  signer{secret: []byte(cfg.AccessSecret), ttl: cfg.AccessTTL},
		refresh: signer{secret: []byte(cfg.RefreshSecret), ttl: cfg.RefreshTTL},
		issuer:  cfg.Issuer,
		clock:   clock,
	}, nil
}

func (s *Service) Issue(id identity.Identity) (ports.TokenPair, error) {
	if err := id.Validate(); err != nil {
		return ports.TokenPair{}, err
	}
	access, err := s.sign(s.access, id)
	if err != nil {
		return ports.TokenPair{}, err
	}
	refresh, err := s.sign(s.refresh, id)
	if err != nil {
		return ports.TokenPair{}, err
	}
	return ports.TokenPair{AccessToken: access, RefreshToken: refresh}, nil
}

func (s *Service) DecodeAccess(token string) (identity.Identity, error) {
	return s.decode(s.access, token)
}

func (s *Service) DecodeRefresh(token string) (identity.Identity, error) {
	return s.decode(s.refresh, token)
}

// Rotate keeps the subject and role of the refresh token. The refresh token itself is
// not reissued and stays valid until its own expiry.
func (s *Service) Rotate(refreshToken string) (string, error) {
	id, err := s.DecodeRefresh(refreshToken)
	if err != nil {
		return "", err
	}
	return s.sign(s.access, id)
}

func (s *Service) sign(k signer, id identity.Identity) (string, error) {
	now := s.clock.Now()
	c := claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Subject:   id.SubjectID().String(),
			Issuer:    s.issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(k.ttl)),
		},
		Role: id.Role().String(),
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, c).SignedString(k.secret)
	if err != nil {
		return "", errs.NewInternalError("sign token", err)
	}
	return signed, nil
}

func (s *Service) decode(k signer, token string) (identity.Identity, error) {
	if token == "" {
		return identity.Identity{}, errs.NewTokenMalformedError(errors.New("token is empty"))
	}

	opts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(s.clock.Now),
		jwt.WithExpirationRequired(),
	}
	if s.issuer != "" {
		opts = append(opts, jwt.WithIssuer(s.issuer))
	}

	c := &claims{}
	_, err := jwt.ParseWithClaims(token, c, func(*jwt.Token) (any, error) {
		return k.secret, nil
	}, opts...)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return identity.Identity{}, errs.NewTokenExpiredError(err)
		}
		return identity.Identity{}, errs.NewTokenMalformedError(err)
	}

	subject, err := kernel.UUIDFromString(c.Subject)
	if err != nil {
		return identity.Identity{}, errs.NewTokenMalformedError(fmt.Errorf("subject: %w", err))
	}
	role, err := identity.ParseRole(c.Role)
	if err != nil {
		return identity.Identity{}, errs.NewTokenMalformedError(fmt.Errorf("role: %w", err))
	}
	id, err := identity.NewIdentity(subject, role)
	if err != nil {
		return identity.Identity{}, errs.NewTokenMalformedError(err)
	}
	return id, nil
}
