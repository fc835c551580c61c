package http

import (
	"net/http"
	"time"

	"parceltrack/internal/core/application/usecases/commands"
	"parceltrack/internal/core/ports"

	"github.com/labstack/echo/v4"
)

// Login handles POST /api/v1/auth/login.
func (s *Server) Login(c echo.Context) error {
	var req loginRequest
	if err := s.validator.Bind(c, "LoginRequest", &req, false); err != nil {
		return err
	}

	cmd, err := commands.NewLoginCommand(req.Email, req.Password)
	if err != nil {
		return err
	}
	pair, err := s.handlers.Login.Handle(c.Request().Context(), cmd)
	if err != nil {
		return err
	}

	s.setAuthCookies(c, pair)
	return respond(c, http.StatusOK, "User logged in successfully", newTokenPairResponse(pair))
}

// RefreshToken handles POST /api/v1/auth/refresh-token. The token comes from the body
// or, failing that, from the refreshToken cookie.
func (s *Server) RefreshToken(c echo.Context) error {
	var req refreshTokenRequest
	if err := s.validator.Bind(c, "RefreshTokenRequest", &req, true); err != nil {
		return err
	}
	if req.RefreshToken == "" {
		if cookie, err := c.Cookie(refreshCookie); err == nil {
			req.RefreshToken = cookie.Value
		}
	}

	cmd, err := commands.NewRefreshTokenCommand(req.RefreshToken)
	if err != nil {
		return err
	}
	access, err := s.handlers.RefreshToken.Handle(c.Request().Context(), cmd)
	if err != nil {
		return err
	}

	s.setAuthCookies(c, ports.TokenPair{AccessToken: access})
	return respond(c, http.StatusOK, "New access token retrieved successfully", accessTokenResponse{AccessToken: access})
}

// Logout handles POST /api/v1/auth/logout. Tokens are stateless; only the cookies are cleared.
func (s *Server) Logout(c echo.Context) error {
	s.clearAuthCookies(c)
	return respond(c, http.StatusOK, "User logged out successfully", nil)
}

// ResetPassword handles POST /api/v1/auth/reset-password.
func (s *Server) ResetPassword(c echo.Context) error {
	id, err := caller(c)
	if err != nil {
		return err
	}
	var req resetPasswordRequest
	if err = s.validator.Bind(c, "ResetPasswordRequest", &req, false); err != nil {
		return err
	}

	cmd, err := commands.NewResetPasswordCommand(id, req.OldPassword, req.NewPassword)
	if err != nil {
		return err
	}
	if err = s.handlers.ResetPassword.Handle(c.Request().Context(), cmd); err != nil {
		return err
	}
	return respond(c, http.StatusOK, "Password changed successfully", nil)
}

func (s *Server) setAuthCookies(c echo.Context, pair ports.TokenPair) {
	if pair.AccessToken != "" {
		c.SetCookie(s.cookie(accessTokenCookie, pair.AccessToken, s.cfg.AccessTTL))
	}
	if pair.RefreshToken != "" {
		c.SetCookie(s.cookie(refreshCookie, pair.RefreshToken, s.cfg.RefreshTTL))
	}
}

func (s *Server) clearAuthCookies(c echo.Context) {
	for _, name := range []string{accessTokenCookie, refreshCookie} {
		cookie := s.cookie(name, "", 0)
		cookie.MaxAge = -1
		cookie.Expires = time.Unix(0, 0)
		c.SetCookie(cookie)
	}
}

func (s *Server) cookie(name, value string, ttl time.Duration) *http.Cookie {
	return &http.Cookie{
		Name:     name,
		Value:    value,
		Path:     "/",
		MaxAge:   int(ttl.Seconds()),
		HttpOnly: true,
		Secure:   s.cfg.CookieSecure,
		SameSite: http.SameSiteLaxMode,
	}
}
