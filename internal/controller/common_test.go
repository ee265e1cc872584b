package controller

import (
	"fmt"
	"path/filepath"
	"testing"

	"github.com/markusressel/asus2go/internal/attr"
	"github.com/markusressel/asus2go/internal/capability"
	"github.com/markusressel/asus2go/internal/configstore"
	"github.com/markusressel/asus2go/internal/profiles"
	"github.com/markusressel/asus2go/internal/testingutils"
)

type mockFanCurves struct {
	attrs map[string]*testingutils.MockAttribute
}

func newMockFanCurves() *mockFanCurves {
	return &mockFanCurves{attrs: map[string]*testingutils.MockAttribute{}}
}

func (m *mockFanCurves) get(name string) *testingutils.MockAttribute {
	if a, ok := m.attrs[name]; ok {
		return a
	}
	a := testingutils.NewMockAttribute(name, "0")
	m.attrs[name] = a
	return a
}

func (m *mockFanCurves) Enable(pwmIndex int) attr.Attribute {
	return m.get(fmt.Sprintf("pwm%d_enable", pwmIndex))
}

func (m *mockFanCurves) PointTemp(pwmIndex int, point int) attr.Attribute {
	return m.get(fmt.Sprintf("pwm%d_auto_point%d_temp", pwmIndex, point))
}

func (m *mockFanCurves) PointPwm(pwmIndex int, point int) attr.Attribute {
	return m.get(fmt.Sprintf("pwm%d_auto_point%d_pwm", pwmIndex, point))
}

func (m *mockFanCurves) writeCount() int {
	count := 0
	for _, a := range m.attrs {
		count += a.WriteCount()
	}
	return count
}

func fullySupported() capability.SupportedFunctions {
	return capability.SupportedFunctions{
		Anime: capability.AnimeSupportedFunctions{Present: true},
		KeyboardLed: capability.KeyboardLedSupportedFunctions{
			BrightnessSet: true,
			RgbMode:       true,
			RgbState:      true,
		},
		PlatformProfile: capability.PlatformProfileSupportedFunctions{
			ProfileSet:  true,
			FanCurveSet: true,
			Fans:        []profiles.FanCurvePU{profiles.FanCPU, profiles.FanGPU},
		},
		Charge: capability.ChargeSupportedFunctions{ChargeLevelSet: true},
		Bios: capability.BiosSupportedFunctions{
			PostSound:    true,
			DedicatedGfx: true,
			PanelOd:      true,
			GpuMux:       true,
			DgpuDisable:  true,
			EgpuEnable:   true,
			GpuPower:     true,
		},
	}
}

func newStore[T any](t *testing.T, name string, defaultValue func() T) *configstore.Store[T] {
	return configstore.New[T](filepath.Join(t.TempDir(), name), configstore.WithDefault(defaultValue))
}
