package daemon

import (
	"os"
	"path/filepath"

	"github.com/markusressel/asus2go/internal/anime"
	"github.com/markusressel/asus2go/internal/api"
	"github.com/markusressel/asus2go/internal/attr"
	"github.com/markusressel/asus2go/internal/capability"
	"github.com/markusressel/asus2go/internal/configstore"
	"github.com/markusressel/asus2go/internal/configuration"
	"github.com/markusressel/asus2go/internal/controller"
	"github.com/markusressel/asus2go/internal/persistence"
	"github.com/markusressel/asus2go/internal/statistics"
	"github.com/markusressel/asus2go/internal/ui"
)

const (
	animeConfigFile   = anime.ConfigFileName
	profileConfigFile = "profile.conf"
	ledConfigFile     = "led.conf"
)

// Daemon holds every controller of the running daemon
type Daemon struct {
	Supported capability.SupportedFunctions
	Services  api.Services
	Engine    *anime.Engine
	Notifier  *controller.Notifier
}

// Initialize discovers the hardware below the configured roots and creates all controllers
func Initialize(config configuration.Configuration) (*Daemon, error) {
	hw := capability.Discover(capability.Root{Sys: config.SysfsRoot, Dev: config.DevRoot})
	return initialize(config, hw)
}

func initialize(config configuration.Configuration, hw capability.Hardware) (*Daemon, error) {
	supported := hw.Supported()

	if err := os.MkdirAll(config.ConfigDir, 0755); err != nil {
		return nil, &StartupFatalError{Reason: "cannot create config directory " + config.ConfigDir, Err: err}
	}

	notifier := controller.NewNotifier()
	atomicWrites := config.ConfigStore.AtomicWrites

	var thermalPolicy, postSound, panelOd, chargeThreshold attr.Attribute
	var fanCurves controller.FanCurveAttributes
	var gpuAttrs controller.GpuAttributes
	if hw.Platform != nil {
		thermalPolicy = hw.Platform.ThrottleThermalPolicy
		panelOd = hw.Platform.PanelOd
		gpuAttrs.GpuMuxMode = hw.Platform.GpuMuxMode
		gpuAttrs.DgpuDisable = hw.Platform.DgpuDisable
		gpuAttrs.EgpuEnable = hw.Platform.EgpuEnable
	}
	if hw.DgpuPower != nil {
		gpuAttrs.RuntimeStatus = hw.DgpuPower.RuntimeStatus
	}
	if hw.FanCurves != nil {
		fanCurves = hw.FanCurves
	}
	if hw.EfiVars != nil {
		postSound = hw.EfiVars.PostSound
	}
	if hw.Battery != nil {
		chargeThreshold = hw.Battery.ChargeControlEndThreshold
	}

	profileController := controller.NewProfileController(
		supported,
		thermalPolicy,
		fanCurves,
		configstore.New[controller.ProfileConfig](
			filepath.Join(config.ConfigDir, profileConfigFile),
			configstore.WithDefault(controller.DefaultProfileConfig),
			configstore.WithAtomicWrites[controller.ProfileConfig](atomicWrites),
		),
		notifier,
		config.Profiles.Options(),
	)

	ledController := controller.NewKeyboardLedController(
		supported,
		hw.KeyboardLed,
		configstore.New[controller.LedConfig](
			filepath.Join(config.ConfigDir, ledConfigFile),
			configstore.WithDefault(controller.DefaultLedConfig),
			configstore.WithAtomicWrites[controller.LedConfig](atomicWrites),
		),
		notifier,
	)
	if err := ledController.Restore(); err != nil {
		ui.Warning("Could not restore keyboard LED state: %v", err)
	}

	gpuController := controller.NewGpuController(supported, gpuAttrs, notifier)
	biosController := controller.NewBiosController(supported, postSound, gpuController, panelOd, notifier)
	chargeController := controller.NewChargeController(supported, chargeThreshold, notifier)

	var cache anime.ActionCache
	pers := persistence.NewPersistence(config.DbPath)
	if err := pers.Init(); err != nil {
		ui.Warning("AniMe action cache disabled: %v", err)
	} else {
		cache = pers
	}

	var animeDevice attr.Attribute
	if hw.Anime != nil {
		animeDevice = hw.Anime.Node
	}
	engine := anime.NewEngine(
		supported,
		animeDevice,
		anime.NewConfigStore(filepath.Join(config.ConfigDir, animeConfigFile), atomicWrites),
		cache,
		notifier,
		config.Anime.TickRate,
	)

	return &Daemon{
		Supported: supported,
		Engine:    engine,
		Notifier:  notifier,
		Services: api.Services{
			Supported: supported,
			Profile:   profileController,
			Led:       ledController,
			Gpu:       gpuController,
			Bios:      biosController,
			Charge:    chargeController,
			Anime:     engine,
			Notifier:  notifier,
		},
	}, nil
}

// RegisterCollectors registers the prometheus collectors of all controllers
func (d *Daemon) RegisterCollectors() {
	statistics.Register(statistics.NewPlatformCollector(d.Services.Profile, d.Services.Led, d.Services.Gpu, d.Services.Charge))
	statistics.Register(statistics.NewNotifierCollector(d.Notifier))
	if d.Supported.Anime.Present {
		statistics.Register(statistics.NewAnimeCollector(d.Engine))
	}
}
