package echoapi

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
)

var errInvalidID = echo.NewHTTPError(http.StatusBadRequest, "invalid id")

// intParam parses a positive integer path parameter.
func intParam(ctx echo.Context, name string) (int, error) {
	v, err := strconv.Atoi(ctx.Param(name))
	if err != nil || v <= 0 {
		return 0, errInvalidID
	}
	return v, nil
}

// intQuery parses an optional integer query parameter; 0 means absent.
func intQuery(ctx echo.Context, name string) (int, error) {
	raw := ctx.QueryParam(name)
	if raw == "" {
		return 0, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, echo.NewHTTPError(http.StatusBadRequest, "invalid "+name)
	}
	return v, nil
}
