package api

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/markusressel/asus2go/internal/controller"
	"github.com/markusressel/asus2go/internal/ui"
)

// returnError maps an error of a controller to its http status
func returnError(c echo.Context, e error) error {
	status := http.StatusInternalServerError
	name := "Device Error"
	switch {
	case errors.Is(e, controller.ErrNotSupported):
		status = http.StatusNotImplemented
		name = "Not Supported"
	case errors.Is(e, controller.ErrInvalidValue):
		status = http.StatusBadRequest
		name = "Invalid Value"
	default:
		ui.Warning("%s %s failed: %v", c.Request().Method, c.Path(), e)
	}
	return c.JSONPretty(status, &Result{
		Name:    name,
		Message: e.Error(),
	}, indentationChar)
}

func returnBadRequest(c echo.Context, e error) error {
	return c.JSONPretty(http.StatusBadRequest, &Result{
		Name:    "Bad Request",
		Message: e.Error(),
	}, indentationChar)
}

func returnValue[T any](c echo.Context, value T, err error) error {
	if err != nil {
		return returnError(c, err)
	}
	return c.JSONPretty(http.StatusOK, Value[T]{Value: value}, indentationChar)
}

func returnResult(c echo.Context, err error) error {
	if err != nil {
		return returnError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

// getHandler serves the value returned by get
func getHandler[T any](get func() (T, error)) echo.HandlerFunc {
	return func(c echo.Context) error {
		value, err := get()
		return returnValue(c, value, err)
	}
}

// setHandler passes the value of the request body to set
func setHandler[T any](set func(T) error) echo.HandlerFunc {
	return func(c echo.Context) error {
		var body Value[T]
		if err := c.Bind(&body); err != nil {
			return returnBadRequest(c, err)
		}
		return returnResult(c, set(body.Value))
	}
}
