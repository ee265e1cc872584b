package api

import (
	"github.com/labstack/echo/v4"
	"github.com/markusressel/asus2go/internal/controller"
	"github.com/markusressel/asus2go/internal/platform"
)

func registerGpuEndpoints(rest *echo.Echo, c controller.GpuController) {
	group := rest.Group("/gpu")

	group.GET("/mode/", getHandler(c.Mode))
	// responds with the mode read back from the hardware
	group.PUT("/mode/", func(ctx echo.Context) error {
		var body Value[platform.GpuMode]
		if err := ctx.Bind(&body); err != nil {
			return returnBadRequest(ctx, err)
		}
		mode, err := c.SetMode(body.Value)
		return returnValue(ctx, mode, err)
	})
	group.GET("/power/", getHandler(c.PowerStatus))
}
