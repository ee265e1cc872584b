package api

import (
	"github.com/labstack/echo/v4"
	"github.com/markusressel/asus2go/internal/controller"
)

func registerLedEndpoints(rest *echo.Echo, c controller.KeyboardLedController) {
	group := rest.Group("/led")

	group.GET("/brightness/", getHandler(c.Brightness))
	group.PUT("/brightness/", setHandler(c.SetBrightness))
	group.PUT("/mode/", func(ctx echo.Context) error {
		var mode controller.KbdRgbMode
		if err := ctx.Bind(&mode); err != nil {
			return returnBadRequest(ctx, err)
		}
		return returnResult(ctx, c.SetRgbMode(mode))
	})
	group.PUT("/state/", func(ctx echo.Context) error {
		var state controller.KbdRgbState
		if err := ctx.Bind(&state); err != nil {
			return returnBadRequest(ctx, err)
		}
		return returnResult(ctx, c.SetRgbState(state))
	})
}
