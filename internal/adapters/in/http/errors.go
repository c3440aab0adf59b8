package http

import (
	"errors"
	"log/slog"
	"net/http"

	"restaurant/internal/core/domain/model/kitchen"
	"restaurant/internal/core/domain/model/menu"
	"restaurant/internal/core/domain/model/order"
	"restaurant/internal/generated/servers"
	"restaurant/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

// classify maps an error to its HTTP status and error kind. Unknown errors are
// internal and their message is not exposed.
func classify(err error) (int, servers.Error) {
	var httpErr *echo.HTTPError
	switch {
	case errors.Is(err, ErrForbidden):
		return http.StatusForbidden, servers.Error{Kind: servers.ErrorKindForbidden, Message: err.Error()}
	case errors.Is(err, errs.ErrObjectNotFound):
		return http.StatusNotFound, servers.Error{Kind: servers.ErrorKindNotFound, Message: err.Error()}
	case errors.Is(err, order.ErrInvalidTransition),
		errors.Is(err, kitchen.ErrTicketIsClosed):
		return http.StatusUnprocessableEntity, servers.Error{Kind: servers.ErrorKindInvalidTransition, Message: err.Error()}
	case errors.Is(err, errs.ErrConflict):
		return http.StatusConflict, servers.Error{Kind: servers.ErrorKindConflict, Message: err.Error()}
	case errors.Is(err, errs.ErrValueIsInvalid),
		errors.Is(err, errs.ErrValueIsRequired),
		errors.Is(err, errs.ErrValueIsOutOfRange),
		errors.Is(err, menu.ErrItemIsUnavailable):
		return http.StatusBadRequest, servers.Error{Kind: servers.ErrorKindValidation, Message: err.Error()}
	case errors.As(err, &httpErr):
		return httpErr.Code, servers.Error{Kind: kindForStatus(httpErr.Code), Message: httpMessage(httpErr)}
	default:
		return http.StatusInternalServerError, servers.Error{Kind: servers.ErrorKindInternal, Message: "internal error"}
	}
}

func kindForStatus(code int) servers.ErrorKind {
	switch code {
	case http.StatusNotFound:
		return servers.ErrorKindNotFound
	case http.StatusForbidden, http.StatusUnauthorized:
		return servers.ErrorKindForbidden
	case http.StatusConflict:
		return servers.ErrorKindConflict
	case http.StatusUnprocessableEntity:
		return servers.ErrorKindInvalidTransition
	default:
		if code >= http.StatusInternalServerError {
			return servers.ErrorKindInternal
		}
		return servers.ErrorKindValidation
	}
}

func httpMessage(err *echo.HTTPError) string {
	if msg, ok := err.Message.(string); ok {
		return msg
	}
	return http.StatusText(err.Code)
}

// ErrorHandler renders every error as {kind, message}.
func ErrorHandler(logger *slog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		status, body := classify(err)
		if status >= http.StatusInternalServerError {
			logger.ErrorContext(c.Request().Context(), "request failed",
				"method", c.Request().Method,
				"path", c.Path(),
				"error", err,
			)
		}

		if c.Request().Method == http.MethodHead {
			err = c.NoContent(status)
		} else {
			err = c.JSON(status, body)
		}
		if err != nil {
			logger.ErrorContext(c.Request().Context(), "failed to write error response", "error", err)
		}
	}
}
