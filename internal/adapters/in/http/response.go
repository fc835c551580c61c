package http

import (
	"parceltrack/internal/pkg/listing"

	"github.com/labstack/echo/v4"
)

// envelope is the shape of every response body.
type envelope struct {
	Success bool          `json:"success"`
	Message string        `json:"message"`
	Kind    string        `json:"kind,omitempty"`
	Error   string        `json:"error,omitempty"`
	Meta    *listing.Meta `json:"meta,omitempty"`
	Data    any           `json:"data"`
}

func respond(c echo.Context, status int, message string, data any) error {
	return c.JSON(status, envelope{Success: true, Message: message, Data: data})
}

func respondPage(c echo.Context, status int, message string, meta listing.Meta, data any) error {
	return c.JSON(status, envelope{Success: true, Message: message, Meta: &meta, Data: data})
}
