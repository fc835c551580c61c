package http

import (
	"errors"
	"log/slog"
	"net/http"

	"parceltrack/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

var statusByKind = map[errs.Kind]int{
	errs.KindNotAuthenticated: http.StatusUnauthorized,
	errs.KindForbidden:        http.StatusForbidden,
	errs.KindNotFound:         http.StatusNotFound,
	errs.KindInvalidInput:     http.StatusBadRequest,
	errs.KindConflict:         http.StatusConflict,
	errs.KindInternal:         http.StatusInternalServerError,
}

// NewErrorHandler maps error kinds to status codes. Internal failures are logged and
// answered with a generic message; the raw error text is only added in development.
func NewErrorHandler(development bool, logger *slog.Logger) echo.HTTPErrorHandler {
	logger = logger.With("component", "http_error_handler")

	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		status, body := translate(err)
		if status >= http.StatusInternalServerError {
			logger.ErrorContext(c.Request().Context(), "request failed",
				"method", c.Request().Method, "path", c.Path(), "error", err)
		}
		if development {
			body.Error = err.Error()
		}

		if c.Request().Method == http.MethodHead {
			err = c.NoContent(status)
		} else {
			err = c.JSON(status, body)
		}
		if err != nil {
			logger.ErrorContext(c.Request().Context(), "write error response", "error", err)
		}
	}
}

func translate(err error) (int, envelope) {
	var he *echo.HTTPError
	if errors.As(err, &he) {
		msg := http.StatusText(he.Code)
		if s, ok := he.Message.(string); ok {
			msg = s
		}
		return he.Code, envelope{Message: msg}
	}

	kind := errs.KindOf(err)
	status := statusByKind[kind]
	msg := err.Error()
	if kind == errs.KindInternal {
		msg = "something went wrong"
	}
	return status, envelope{Message: msg, Kind: kind.String()}
}
