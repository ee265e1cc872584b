package api

import (
	"github.com/labstack/echo/v4"
	"github.com/markusressel/asus2go/internal/controller"
)

func registerBiosEndpoints(rest *echo.Echo, c controller.BiosController) {
	group := rest.Group("/bios")

	group.GET("/post-sound/", getHandler(c.PostSound))
	group.PUT("/post-sound/", setHandler(c.SetPostSound))
	group.GET("/dedicated-gfx/", getHandler(c.DedicatedGfx))
	group.PUT("/dedicated-gfx/", setHandler(c.SetDedicatedGfx))
	group.GET("/panel-od/", getHandler(c.PanelOverdrive))
	group.PUT("/panel-od/", setHandler(c.SetPanelOverdrive))
}

func registerChargeEndpoints(rest *echo.Echo, c controller.ChargeController) {
	group := rest.Group("/charge")

	group.GET("/limit/", getHandler(c.ChargeLimit))
	group.PUT("/limit/", setHandler(c.SetChargeLimit))
}
