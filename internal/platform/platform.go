// Package platform locates the ASUS specific devices of the running machine
// and exposes their attributes.
package platform

import (
	"path/filepath"

	"github.com/markusressel/asus2go/internal/attr"
	"github.com/markusressel/asus2go/internal/ui"
)

const (
	platformDriverName = "asus-nb-wmi"
	kbdBacklightName   = "asus::kbd_backlight"
)

// AsusPlatform gives access to the attributes of the asus-nb-wmi platform device:
//   - dgpu_disable
//   - egpu_enable
//   - panel_od
//   - gpu_mux_mode
//   - throttle_thermal_policy
//
// and the ACPI platform_profile.
type AsusPlatform struct {
	Path string

	DgpuDisable           attr.Attribute
	EgpuEnable            attr.Attribute
	PanelOd               attr.Attribute
	GpuMuxMode            attr.Attribute
	ThrottleThermalPolicy attr.Attribute
	PlatformProfile       attr.Attribute
}

func NewAsusPlatform(sysRoot string) (*AsusPlatform, error) {
	path, err := attr.FindDevice(sysRoot, "platform", platformDriverName)
	if err != nil {
		return nil, err
	}
	ui.Info("Found platform support at %s", path)
	acpiPath := filepath.Join(sysRoot, "firmware", "acpi")
	return &AsusPlatform{
		Path:                  path,
		DgpuDisable:           attr.NewFileAttribute(path, "dgpu_disable"),
		EgpuEnable:            attr.NewFileAttribute(path, "egpu_enable"),
		PanelOd:               attr.NewFileAttribute(path, "panel_od"),
		GpuMuxMode:            attr.NewFileAttribute(path, "gpu_mux_mode"),
		ThrottleThermalPolicy: attr.NewFileAttribute(path, "throttle_thermal_policy"),
		PlatformProfile:       attr.NewFileAttribute(acpiPath, "platform_profile"),
	}, nil
}

// KeyboardLed is the asus::kbd_backlight LED class device.
// kbd_rgb_mode and kbd_rgb_state can only be set, not read back.
type KeyboardLed struct {
	Path string

	Brightness attr.Attribute
	RgbMode    attr.Attribute
	RgbState   attr.Attribute
}

func NewKeyboardLed(sysRoot string) (*KeyboardLed, error) {
	path, err := attr.FindDevice(sysRoot, "leds", kbdBacklightName)
	if err != nil {
		return nil, err
	}
	ui.Info("Found keyboard LED controls at %s", path)
	return &KeyboardLed{
		Path:       path,
		Brightness: attr.NewFileAttribute(path, "brightness"),
		RgbMode:    attr.NewFileAttribute(path, "kbd_rgb_mode"),
		RgbState:   attr.NewFileAttribute(path, "kbd_rgb_state"),
	}, nil
}
