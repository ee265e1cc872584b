package api

import (
	"github.com/labstack/echo/v4"
	"github.com/markusressel/asus2go/internal/controller"
	"github.com/markusressel/asus2go/internal/profiles"
)

func registerProfileEndpoints(rest *echo.Echo, c controller.ProfileController) {
	rest.GET("/profile/", getHandler(c.Profile))
	rest.PUT("/profile/", setHandler(c.SetProfile))
	rest.GET("/profiles/", getHandler(c.Profiles))
	rest.POST("/profile/next/", getHandler(c.NextProfile))

	group := rest.Group("/profile/:" + urlParamProfile + "/curves")
	group.GET("/", func(ctx echo.Context) error {
		profile, err := profiles.ParseProfile(ctx.Param(urlParamProfile))
		if err != nil {
			return returnBadRequest(ctx, err)
		}
		curves, err := c.FanCurves(profile)
		return returnValue(ctx, curves, err)
	})
	group.PUT("/", func(ctx echo.Context) error {
		profile, err := profiles.ParseProfile(ctx.Param(urlParamProfile))
		if err != nil {
			return returnBadRequest(ctx, err)
		}
		var curve profiles.CurveData
		if err := ctx.Bind(&curve); err != nil {
			return returnBadRequest(ctx, err)
		}
		return returnResult(ctx, c.SetFanCurve(profile, curve))
	})
	group.PUT("/enabled/", func(ctx echo.Context) error {
		profile, err := profiles.ParseProfile(ctx.Param(urlParamProfile))
		if err != nil {
			return returnBadRequest(ctx, err)
		}
		var body Value[bool]
		if err := ctx.Bind(&body); err != nil {
			return returnBadRequest(ctx, err)
		}
		return returnResult(ctx, c.SetFanCurvesEnabled(profile, body.Value))
	})
	group.DELETE("/", func(ctx echo.Context) error {
		profile, err := profiles.ParseProfile(ctx.Param(urlParamProfile))
		if err != nil {
			return returnBadRequest(ctx, err)
		}
		return returnResult(ctx, c.ResetFanCurves(profile))
	})
}
