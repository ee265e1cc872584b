package api

import (
	"net/http"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/markusressel/asus2go/internal/anime"
	"github.com/markusressel/asus2go/internal/capability"
	"github.com/markusressel/asus2go/internal/controller"
	"github.com/prometheus/client_golang/prometheus"
)

const (
	urlParamProfile = "profile"
	urlParamEvent   = "event"
	indentationChar = "  "
)

// AnimeEngine is the part of the anime engine exposed over the api
type AnimeEngine interface {
	OnOff() (bool, error)
	SetOnOff(on bool) error
	BootOnOff() (bool, error)
	SetBootOnOff(on bool) error
	WriteDirect(buffer []byte) error
	Config() (anime.Config, error)
	SetConfig(config anime.Config) error
	Trigger(event anime.Event) error
	Status() anime.Status
}

// Services are the daemon components served by the api
type Services struct {
	Supported capability.SupportedFunctions
	Profile   controller.ProfileController
	Led       controller.KeyboardLedController
	Gpu       controller.GpuController
	Bios      controller.BiosController
	Charge    controller.ChargeController
	Anime     AnimeEngine
	Notifier  *controller.Notifier

	// Registerer receives the request metrics, prometheus.DefaultRegisterer if nil
	Registerer prometheus.Registerer
}

type (
	Result struct {
		Name    string `json:"name"`
		Message string `json:"message"`
	}

	// Value wraps a single value of a request or response body
	Value[T any] struct {
		Value T `json:"value"`
	}
)

func CreateRestService(services Services) *echo.Echo {
	echoRest := echo.New()
	echoRest.HideBanner = true
	echoRest.HidePort = true

	// Root level middleware
	echoRest.Pre(middleware.AddTrailingSlash())

	echoRest.Use(middleware.Secure())
	echoRest.Use(middleware.Recover())
	echoRest.Use(echoprometheus.NewMiddlewareWithConfig(echoprometheus.MiddlewareConfig{
		Namespace:  "asus2go",
		Subsystem:  "api",
		Registerer: services.Registerer,
		Skipper: func(c echo.Context) bool {
			return c.Path() == "/events/"
		},
	}))

	echoRest.GET("/alive/", isAlive)
	echoRest.GET("/supported/", func(c echo.Context) error {
		return c.JSONPretty(http.StatusOK, services.Supported, indentationChar)
	})

	registerProfileEndpoints(echoRest, services.Profile)
	registerLedEndpoints(echoRest, services.Led)
	registerGpuEndpoints(echoRest, services.Gpu)
	registerAnimeEndpoints(echoRest, services.Anime)
	registerBiosEndpoints(echoRest, services.Bios)
	registerChargeEndpoints(echoRest, services.Charge)
	registerEventEndpoint(echoRest, services.Notifier)

	return echoRest
}

// returns an empty "ok" answer
func isAlive(c echo.Context) error {
	return c.NoContent(http.StatusOK)
}
