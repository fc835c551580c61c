package http

import (
	"log/slog"
	"strings"

	"parceltrack/internal/core/domain/model/identity"
	"parceltrack/internal/pkg/errs"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
)

const (
	identityKey       = "identity"
	accessTokenCookie = "accessToken"
	refreshCookie     = "refreshToken"
)

// AccessTokenDecoder is the part of the token service the auth middleware needs.
type AccessTokenDecoder interface {
	DecodeAccess(token string) (identity.Identity, error)
}

// Authenticate resolves the caller from the Authorization header, with or without the
// Bearer scheme, or from the accessToken cookie.
func Authenticate(tokens AccessTokenDecoder) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			token := accessToken(c)
			if token == "" {
				return errs.NewNotAuthenticatedError("no access token received")
			}
			id, err := tokens.DecodeAccess(token)
			if err != nil {
				return err
			}
			c.Set(identityKey, id)
			return next(c)
		}
	}
}

func accessToken(c echo.Context) string {
	if h := strings.TrimSpace(c.Request().Header.Get(echo.HeaderAuthorization)); h != "" {
		if scheme, rest, ok := strings.Cut(h, " "); ok && strings.EqualFold(scheme, "bearer") {
			return strings.TrimSpace(rest)
		}
		return h
	}
	if cookie, err := c.Cookie(accessTokenCookie); err == nil {
		return cookie.Value
	}
	return ""
}

// caller returns the identity set by Authenticate.
func caller(c echo.Context) (identity.Identity, error) {
	id, ok := c.Get(identityKey).(identity.Identity)
	if !ok {
		return identity.Identity{}, errs.NewNotAuthenticatedError("no access token received")
	}
	return id, nil
}

// RequestLogger writes one access log line per request through logger.
func RequestLogger(logger *slog.Logger) echo.MiddlewareFunc {
	logger = logger.With("component", "http")

	return middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogMethod:   true,
		LogURIPath:  true,
		LogStatus:   true,
		LogLatency:  true,
		LogError:    true,
		HandleError: true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			level := slog.LevelInfo
			attrs := []slog.Attr{
				slog.String("method", v.Method),
				slog.String("path", v.URIPath),
				slog.Int("status", v.Status),
				slog.Duration("latency", v.Latency),
			}
			if id, err := caller(c); err == nil {
				attrs = append(attrs, slog.String("subject", id.SubjectID().String()))
			}
			if v.Error != nil {
				attrs = append(attrs, slog.String("error", v.Error.Error()))
				if v.Status >= 500 {
					level = slog.LevelError
				}
			}
			logger.LogAttrs(c.Request().Context(), level, "request", attrs...)
			return nil
		},
	})
}
