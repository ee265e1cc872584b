// Package capability probes which hardware features the running machine exposes.
package capability

import (
	"github.com/markusressel/asus2go/internal/platform"
	"github.com/markusressel/asus2go/internal/profiles"
	"github.com/markusressel/asus2go/internal/ui"
)

// Root contains the filesystem roots devices are discovered below
type Root struct {
	Sys string
	Dev string
}

var DefaultRoot = Root{Sys: "/sys", Dev: "/dev"}

type AnimeSupportedFunctions struct {
	Present   bool               `json:"present"`
	AnimeType platform.AnimeType `json:"anime_type"`
}

type KeyboardLedSupportedFunctions struct {
	BrightnessSet bool `json:"brightness_set"`
	RgbMode       bool `json:"rgb_mode"`
	RgbState      bool `json:"rgb_state"`
}

type PlatformProfileSupportedFunctions struct {
	ProfileSet  bool                  `json:"profile_set"`
	FanCurveSet bool                  `json:"fan_curve_set"`
	Fans        []profiles.FanCurvePU `json:"fans"`
}

type ChargeSupportedFunctions struct {
	ChargeLevelSet bool `json:"charge_level_set"`
}

type BiosSupportedFunctions struct {
	PostSound    bool `json:"post_sound"`
	DedicatedGfx bool `json:"dedicated_gfx"`
	PanelOd      bool `json:"panel_od"`
	GpuMux       bool `json:"gpu_mux"`
	DgpuDisable  bool `json:"dgpu_disable"`
	EgpuEnable   bool `json:"egpu_enable"`
	GpuPower     bool `json:"gpu_power"`
}

// SupportedFunctions is the snapshot of all features supported by this machine.
// It is computed once at startup and never modified afterwards.
type SupportedFunctions struct {
	Anime           AnimeSupportedFunctions           `json:"anime"`
	KeyboardLed     KeyboardLedSupportedFunctions     `json:"keyboard_led"`
	PlatformProfile PlatformProfileSupportedFunctions `json:"platform_profile"`
	Charge          ChargeSupportedFunctions          `json:"charge"`
	Bios            BiosSupportedFunctions            `json:"bios"`
}

// HasFan checks whether a custom curve can be set for the given fan
func (s SupportedFunctions) HasFan(fan profiles.FanCurvePU) bool {
	for _, f := range s.PlatformProfile.Fans {
		if f == fan {
			return true
		}
	}
	return false
}

// Hardware holds the devices found while probing, a field is nil if the device is absent
type Hardware struct {
	Platform    *platform.AsusPlatform
	KeyboardLed *platform.KeyboardLed
	FanCurves   *platform.FanCurveDevice
	Battery     *platform.Battery
	DgpuPower   *platform.DgpuPower
	EfiVars     *platform.EfiVars
	Anime       *platform.AnimeDevice
}

// Discover locates every known device below root.
// A device that cannot be found is logged and left nil, it never aborts discovery of the others.
func Discover(root Root) Hardware {
	var hw Hardware
	var err error

	if hw.Platform, err = platform.NewAsusPlatform(root.Sys); err != nil {
		ui.Debug("Platform features unavailable: %v", err)
	}
	if hw.KeyboardLed, err = platform.NewKeyboardLed(root.Sys); err != nil {
		ui.Debug("Keyboard LED features unavailable: %v", err)
	}
	if hw.FanCurves, err = platform.NewFanCurveDevice(root.Sys); err != nil {
		ui.Debug("Fan curve features unavailable: %v", err)
	}
	if hw.Battery, err = platform.NewBattery(root.Sys); err != nil {
		ui.Debug("Charge control unavailable: %v", err)
	}
	if hw.DgpuPower, err = platform.NewDgpuPower(root.Sys); err != nil {
		ui.Debug("dGPU power status unavailable: %v", err)
	}
	if hw.EfiVars, err = platform.NewEfiVars(root.Sys); err != nil {
		ui.Debug("EFI variables unavailable: %v", err)
	}
	if hw.Anime, err = platform.NewAnimeDevice(root.Sys, root.Dev); err != nil {
		ui.Debug("AniMe matrix unavailable: %v", err)
	}

	return hw
}

// Supported derives the feature snapshot from the discovered devices
func (hw Hardware) Supported() SupportedFunctions {
	var result SupportedFunctions

	if hw.Anime != nil {
		result.Anime.Present = true
		result.Anime.AnimeType = hw.Anime.Type()
	}

	if hw.KeyboardLed != nil {
		result.KeyboardLed.BrightnessSet = hw.KeyboardLed.Brightness.Exists()
		result.KeyboardLed.RgbMode = hw.KeyboardLed.RgbMode.Exists()
		result.KeyboardLed.RgbState = hw.KeyboardLed.RgbState.Exists()
	}

	if hw.Platform != nil {
		result.PlatformProfile.ProfileSet = hw.Platform.ThrottleThermalPolicy.Exists()
		result.Bios.DedicatedGfx = hw.Platform.GpuMuxMode.Exists()
		result.Bios.GpuMux = hw.Platform.GpuMuxMode.Exists()
		result.Bios.PanelOd = hw.Platform.PanelOd.Exists()
		result.Bios.DgpuDisable = hw.Platform.DgpuDisable.Exists()
		result.Bios.EgpuEnable = hw.Platform.EgpuEnable.Exists()
	}

	result.PlatformProfile.Fans = []profiles.FanCurvePU{}
	if hw.FanCurves != nil {
		for _, fan := range profiles.AllFans {
			if hw.FanCurves.HasFan(fan.PwmIndex()) {
				result.PlatformProfile.Fans = append(result.PlatformProfile.Fans, fan)
			}
		}
		result.PlatformProfile.FanCurveSet = len(result.PlatformProfile.Fans) > 0
	}

	result.Charge.ChargeLevelSet = hw.Battery != nil
	result.Bios.GpuPower = hw.DgpuPower != nil && hw.DgpuPower.RuntimeStatus.Exists()
	result.Bios.PostSound = hw.EfiVars != nil

	return result
}

// Probe discovers all devices below root and returns the supported feature snapshot
func Probe(root Root) SupportedFunctions {
	return Discover(root).Supported()
}
