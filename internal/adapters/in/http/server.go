// Package http exposes the use cases over a JSON API under /api/v1.
package http

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"parceltrack/api"
	"parceltrack/internal/core/application/usecases/commands"
	"parceltrack/internal/core/application/usecases/queries"
	"parceltrack/internal/core/ports"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
)

// CommandHandler runs a command that returns no result.
type CommandHandler[C any] interface {
	Handle(ctx context.Context, cmd C) error
}

// Handler runs a command or query that returns a result.
type Handler[In, Out any] interface {
	Handle(ctx context.Context, in In) (Out, error)
}

// Handlers groups the use cases the routes dispatch to.
type Handlers struct {
	Login         Handler[commands.LoginCommand, ports.TokenPair]
	RefreshToken  Handler[commands.RefreshTokenCommand, string]
	ResetPassword CommandHandler[commands.ResetPasswordCommand]
	RegisterUser  CommandHandler[commands.RegisterUserCommand]
	UpdateUser    CommandHandler[commands.UpdateUserCommand]
	ListUsers     Handler[queries.ListUsersQuery, queries.ListUsersResponse]

	CreateParcel CommandHandler[commands.CreateParcelCommand]
	UpdateParcel CommandHandler[commands.UpdateParcelCommand]
	CancelParcel CommandHandler[commands.CancelParcelCommand]
	DeleteParcel CommandHandler[commands.DeleteParcelCommand]
	GetParcel    Handler[queries.GetParcelQuery, queries.ParcelView]
	GetStatusLog Handler[queries.GetStatusLogQuery, []queries.StatusEntryView]
	ListParcels  Handler[queries.ListParcelsQuery, queries.ListParcelsResponse]
}

type Config struct {
	Development  bool
	CookieSecure bool
	AccessTTL    time.Duration
	RefreshTTL   time.Duration
}

// Server holds the route handlers.
type Server struct {
	handlers  Handlers
	tokens    AccessTokenDecoder
	validator *Validator
	cfg       Config
	logger    *slog.Logger
}

func NewServer(
	handlers Handlers,
	tokens AccessTokenDecoder,
	validator *Validator,
	cfg Config,
	logger *slog.Logger,
) *Server {
	return &Server{
		handlers:  handlers,
		tokens:    tokens,
		validator: validator,
		cfg:       cfg,
		logger:    logger.With("component", "http_server"),
	}
}

// NewEcho builds an echo instance with the middleware stack and all routes.
func NewEcho(s *Server) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.HTTPErrorHandler = NewErrorHandler(s.cfg.Development, s.logger)

	e.Use(middleware.Recover())
	e.Use(RequestLogger(s.logger))

	s.Register(e)
	return e
}

// Register mounts the routes on e.
func (s *Server) Register(e *echo.Echo) {
	e.GET("/health", func(c echo.Context) error {
		return c.String(http.StatusOK, "Healthy")
	})

	v1 := e.Group("/api/v1")
	v1.GET("/openapi.yaml", func(c echo.Context) error {
		return c.Blob(http.StatusOK, "application/yaml", api.OpenAPI)
	})

	authenticated := Authenticate(s.tokens)

	auth := v1.Group("/auth")
	auth.POST("/login", s.Login)
	auth.POST("/refresh-token", s.RefreshToken)
	auth.POST("/logout", s.Logout)
	auth.POST("/reset-password", s.ResetPassword, authenticated)

	users := v1.Group("/user")
	users.POST("/register", s.RegisterUser)
	users.GET("/all-users", s.ListUsers, authenticated)
	users.PATCH("/:userId", s.UpdateUser, authenticated)

	parcels := v1.Group("/parcels", authenticated)
	parcels.POST("/create", s.CreateParcel)
	parcels.GET("", s.ListAllParcels)
	parcels.GET("/me", s.ListMyParcels)
	parcels.GET("/:id", s.GetParcel)
	parcels.GET("/:id/status-log", s.GetStatusLog)
	parcels.PATCH("/:id", s.UpdateParcel)
	parcels.PATCH("/cancel/:id", s.CancelParcel)
	parcels.DELETE("/:id", s.DeleteParcel)
}
