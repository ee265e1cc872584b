package api

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/markusressel/asus2go/internal/anime"
)

func registerAnimeEndpoints(rest *echo.Echo, engine AnimeEngine) {
	group := rest.Group("/anime")

	group.GET("/on/", getHandler(engine.OnOff))
	group.PUT("/on/", setHandler(engine.SetOnOff))
	group.GET("/boot/", getHandler(engine.BootOnOff))
	group.PUT("/boot/", setHandler(engine.SetBootOnOff))
	group.PUT("/direct/", setHandler(engine.WriteDirect))

	group.GET("/config/", func(ctx echo.Context) error {
		config, err := engine.Config()
		if err != nil {
			return returnError(ctx, err)
		}
		return ctx.JSONPretty(http.StatusOK, config, indentationChar)
	})
	group.PUT("/config/", func(ctx echo.Context) error {
		var config anime.Config
		if err := ctx.Bind(&config); err != nil {
			return returnBadRequest(ctx, err)
		}
		return returnResult(ctx, engine.SetConfig(config))
	})

	group.GET("/status/", func(ctx echo.Context) error {
		return ctx.JSONPretty(http.StatusOK, engine.Status(), indentationChar)
	})
	group.POST("/trigger/:"+urlParamEvent+"/", func(ctx echo.Context) error {
		event, err := anime.ParseEvent(ctx.Param(urlParamEvent))
		if err != nil {
			return returnBadRequest(ctx, err)
		}
		return returnResult(ctx, engine.Trigger(event))
	})
}
