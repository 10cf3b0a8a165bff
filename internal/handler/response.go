package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"
)

// Domain failures ride in a normal-status JSON body: clients of this API
// switch on the body shape, not the status code. Only transport-level
// errors (unknown routes, panics) get a non-200 status.

func errorMessage(c echo.Context, message string) error {
	return c.JSON(http.StatusOK, map[string]string{"error": message})
}

func errorBody(c echo.Context, err error) error {
	return c.JSON(http.StatusOK, map[string]string{"error": err.Error()})
}

func errorWithID(c echo.Context, message, id string) error {
	return c.JSON(http.StatusOK, map[string]string{"error": message, "id": id})
}

func resultWithID(c echo.Context, result, id string) error {
	return c.JSON(http.StatusOK, map[string]string{"result": result, "id": id})
}

// HTTPErrorHandler is the global error handler for echo. Handlers report
// domain failures themselves, so anything arriving here is echo's own
// routing errors or an unhandled failure.
func HTTPErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	code := http.StatusInternalServerError
	msg := http.StatusText(code)

	var echoErr *echo.HTTPError
	if errors.As(err, &echoErr) {
		code = echoErr.Code
		if s, ok := echoErr.Message.(string); ok && s != "" {
			msg = s
		} else {
			msg = http.StatusText(code)
		}
	} else {
		slog.Error("unhandled error", "error", err, "path", c.Request().URL.Path)
	}

	if jsonErr := c.JSON(code, map[string]string{"error": msg}); jsonErr != nil {
		slog.Error("failed to send error response", "error", jsonErr)
	}
}
