package platform

import (
	"path/filepath"
	"testing"

	"github.com/markusressel/asus2go/internal/attr"
	"github.com/markusressel/asus2go/internal/testingutils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewAsusPlatform(t *testing.T) {
	// GIVEN
	sysRoot, _ := testingutils.CreateAsusSysfs(t)

	// WHEN
	p, err := NewAsusPlatform(sysRoot)

	// THEN
	require.NoError(t, err)
	assert.True(t, p.GpuMuxMode.Exists())
	assert.True(t, p.PlatformProfile.Exists())
	value, err := attr.ReadU8(p.PanelOd)
	assert.NoError(t, err)
	assert.Equal(t, uint8(1), value)
}

func TestNewAsusPlatform_Missing(t *testing.T) {
	// WHEN
	_, err := NewAsusPlatform(t.TempDir())

	// THEN
	assert.ErrorIs(t, err, attr.ErrDeviceNotFound)
}

func TestNewKeyboardLed(t *testing.T) {
	// GIVEN
	sysRoot, _ := testingutils.CreateAsusSysfs(t)

	// WHEN
	led, err := NewKeyboardLed(sysRoot)

	// THEN
	require.NoError(t, err)
	assert.True(t, led.RgbMode.Exists())
	assert.True(t, led.RgbState.Exists())
}

func TestNewFanCurveDevice(t *testing.T) {
	// GIVEN
	sysRoot, _ := testingutils.CreateAsusSysfs(t)

	// WHEN
	device, err := NewFanCurveDevice(sysRoot)

	// THEN
	require.NoError(t, err)
	assert.True(t, device.HasFan(1))
	assert.True(t, device.HasFan(2))
	assert.False(t, device.HasFan(3))
	assert.Equal(t, "pwm2_auto_point8_pwm", device.PointPwm(2, 8).Name())
}

func TestNewBatteryAndDgpuPower(t *testing.T) {
	// GIVEN
	sysRoot, _ := testingutils.CreateAsusSysfs(t)

	// WHEN
	battery, err := NewBattery(sysRoot)
	require.NoError(t, err)
	dgpu, err := NewDgpuPower(sysRoot)
	require.NoError(t, err)

	// THEN
	limit, err := attr.ReadU8(battery.ChargeControlEndThreshold)
	assert.NoError(t, err)
	assert.Equal(t, uint8(80), limit)
	assert.Equal(t, "0000:01:00.0", filepath.Base(dgpu.Path))
}

func TestEfiBool(t *testing.T) {
	// GIVEN
	sysRoot, _ := testingutils.CreateAsusSysfs(t)
	vars, err := NewEfiVars(sysRoot)
	require.NoError(t, err)

	// WHEN
	before, err := ReadEfiBool(vars.PostSound)
	require.NoError(t, err)
	err = WriteEfiBool(vars.PostSound, false)
	require.NoError(t, err)
	after, err := ReadEfiBool(vars.PostSound)
	require.NoError(t, err)

	// THEN
	assert.True(t, before)
	assert.False(t, after)
}

func TestNewAnimeDevice(t *testing.T) {
	// GIVEN
	sysRoot, devRoot := testingutils.CreateAsusSysfs(t)

	// WHEN
	device, err := NewAnimeDevice(sysRoot, devRoot)

	// THEN
	require.NoError(t, err)
	assert.Equal(t, "GA401QM", device.BoardName)
	assert.Equal(t, "hidraw2", device.Node.Name())
	assert.True(t, device.Node.Exists())
}

func TestAnimeTypeFromBoardName(t *testing.T) {
	assert.Equal(t, AnimeTypeGA401, AnimeTypeFromBoardName("GA401QM"))
	assert.Equal(t, AnimeTypeGA402, AnimeTypeFromBoardName("ga402rj"))
	assert.Equal(t, AnimeTypeUnknown, AnimeTypeFromBoardName("G513QY"))

	geometry := AnimeTypeGA401.Geometry()
	assert.Equal(t, geometry.Width*geometry.Height, AnimeTypeGA401.FrameLength())
	assert.GreaterOrEqual(t, AnimeTypeGA402.FrameLength(), 34*55)
	assert.Equal(t, AnimeTypeGA402, ParseAnimeType(AnimeTypeGA402.String()))
}
