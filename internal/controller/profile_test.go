package controller

import (
	"testing"

	"github.com/markusressel/asus2go/internal/capability"
	"github.com/markusressel/asus2go/internal/profiles"
	"github.com/markusressel/asus2go/internal/testingutils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newProfileController(t *testing.T, supported capability.SupportedFunctions, enabled ...profiles.Profile) (ProfileController, *testingutils.MockAttribute, *mockFanCurves) {
	policy := testingutils.NewMockAttribute("throttle_thermal_policy", "0\n")
	fanCurves := newMockFanCurves()
	store := newStore(t, "profile.conf", DefaultProfileConfig)
	c := NewProfileController(supported, policy, fanCurves, store, NewNotifier(), ProfileOptions{Enabled: enabled})
	return c, policy, fanCurves
}

func TestProfileController_SetProfile(t *testing.T) {
	// GIVEN
	c, policy, fanCurves := newProfileController(t, fullySupported())

	// WHEN
	err := c.SetProfile(profiles.ProfileQuiet)

	// THEN
	require.NoError(t, err)
	assert.Equal(t, "2", string(policy.LastWrite()))
	assert.Equal(t, 1, policy.WriteCount())
	assert.Equal(t, 0, fanCurves.writeCount())
	profile, err := c.Profile()
	assert.NoError(t, err)
	assert.Equal(t, profiles.ProfileQuiet, profile)
}

func TestProfileController_NextProfile(t *testing.T) {
	// GIVEN
	c, _, _ := newProfileController(t, fullySupported(), profiles.ProfileBalanced, profiles.ProfileQuiet)

	// WHEN
	first, err1 := c.NextProfile()
	second, err2 := c.NextProfile()

	// THEN
	assert.NoError(t, err1)
	assert.NoError(t, err2)
	assert.Equal(t, profiles.ProfileQuiet, first)
	assert.Equal(t, profiles.ProfileBalanced, second)
	list, err := c.Profiles()
	assert.NoError(t, err)
	assert.Equal(t, []profiles.Profile{profiles.ProfileBalanced, profiles.ProfileQuiet}, list)
}

func TestProfileController_NextProfile_CurrentNotInList(t *testing.T) {
	// GIVEN
	c, policy, _ := newProfileController(t, fullySupported(), profiles.ProfileQuiet, profiles.ProfilePerformance)

	// WHEN
	next, err := c.NextProfile()

	// THEN
	assert.NoError(t, err)
	assert.Equal(t, profiles.ProfileQuiet, next)
	assert.Equal(t, "2", string(policy.LastWrite()))
}

func TestProfileController_SetFanCurve_ActiveProfile(t *testing.T) {
	// GIVEN
	c, _, fanCurves := newProfileController(t, fullySupported())
	points, err := profiles.ParseCurvePoints("30c:10%,50c:40%,70c:80%")
	require.NoError(t, err)

	// WHEN
	err = c.SetFanCurve(profiles.ProfileBalanced, profiles.CurveData{Fan: profiles.FanGPU, Points: points, Enabled: true})

	// THEN
	require.NoError(t, err)
	assert.Equal(t, "1", string(fanCurves.get("pwm2_enable").LastWrite()))
	assert.Equal(t, "30", string(fanCurves.get("pwm2_auto_point1_temp").LastWrite()))
	assert.Equal(t, "26", string(fanCurves.get("pwm2_auto_point1_pwm").LastWrite()))
	assert.Equal(t, "204", string(fanCurves.get("pwm2_auto_point8_pwm").LastWrite()))
	assert.Equal(t, 0, fanCurves.get("pwm1_enable").WriteCount())

	curves, err := c.FanCurves(profiles.ProfileBalanced)
	assert.NoError(t, err)
	assert.Len(t, curves, 2)
	for _, curve := range curves {
		if curve.Fan == profiles.FanGPU {
			assert.Equal(t, "30c:10%,50c:40%,70c:80%", profiles.FormatCurvePoints(curve.Points))
			assert.True(t, curve.Enabled)
		}
	}
}

func TestProfileController_SetFanCurve_InactiveProfileIsOnlyStored(t *testing.T) {
	// GIVEN
	c, _, fanCurves := newProfileController(t, fullySupported())
	points, err := profiles.ParseCurvePoints("30c:10%,50c:40%")
	require.NoError(t, err)

	// WHEN
	err = c.SetFanCurve(profiles.ProfilePerformance, profiles.CurveData{Fan: profiles.FanCPU, Points: points, Enabled: true})

	// THEN
	require.NoError(t, err)
	assert.Equal(t, 0, fanCurves.writeCount())

	// WHEN
	err = c.SetProfile(profiles.ProfilePerformance)

	// THEN
	require.NoError(t, err)
	assert.Equal(t, "1", string(fanCurves.get("pwm1_enable").LastWrite()))
	assert.Equal(t, 0, fanCurves.get("pwm2_enable").WriteCount())
}

func TestProfileController_SetFanCurve_RejectsInvalidCurve(t *testing.T) {
	// GIVEN
	c, _, fanCurves := newProfileController(t, fullySupported())
	curve := profiles.CurveData{
		Fan:     profiles.FanCPU,
		Points:  []profiles.CurvePoint{{Temp: 50, Pwm: 10}, {Temp: 40, Pwm: 20}},
		Enabled: true,
	}

	// WHEN
	err := c.SetFanCurve(profiles.ProfileBalanced, curve)

	// THEN
	assert.ErrorIs(t, err, ErrInvalidValue)
	assert.ErrorIs(t, err, profiles.ErrInvalidCurve)
	assert.Equal(t, 0, fanCurves.writeCount())
	curves, err := c.FanCurves(profiles.ProfileBalanced)
	assert.NoError(t, err)
	for _, stored := range curves {
		assert.NoError(t, profiles.ValidatePoints(stored.Points))
	}
}

func TestProfileController_SetFanCurve_UnsupportedFan(t *testing.T) {
	// GIVEN
	c, _, fanCurves := newProfileController(t, fullySupported())
	points, _ := profiles.ParseCurvePoints("30c:10%")

	// WHEN
	err := c.SetFanCurve(profiles.ProfileBalanced, profiles.CurveData{Fan: profiles.FanMID, Points: points})

	// THEN
	assert.ErrorIs(t, err, ErrNotSupported)
	assert.Equal(t, 0, fanCurves.writeCount())
}

func TestProfileController_EnableAndReset(t *testing.T) {
	// GIVEN
	c, _, fanCurves := newProfileController(t, fullySupported())

	// WHEN
	err := c.SetFanCurvesEnabled(profiles.ProfileBalanced, true)

	// THEN
	require.NoError(t, err)
	assert.Equal(t, "1", string(fanCurves.get("pwm1_enable").LastWrite()))
	assert.Equal(t, "1", string(fanCurves.get("pwm2_enable").LastWrite()))

	// WHEN
	err = c.ResetFanCurves(profiles.ProfileBalanced)

	// THEN
	require.NoError(t, err)
	assert.Equal(t, "2", string(fanCurves.get("pwm1_enable").LastWrite()))
	assert.Equal(t, "2", string(fanCurves.get("pwm2_enable").LastWrite()))
	curves, err := c.FanCurves(profiles.ProfileBalanced)
	assert.NoError(t, err)
	for _, curve := range curves {
		assert.False(t, curve.Enabled)
	}
}

func TestProfileController_Unsupported(t *testing.T) {
	// GIVEN
	c, policy, fanCurves := newProfileController(t, capability.SupportedFunctions{})
	points, _ := profiles.ParseCurvePoints("30c:10%")

	// WHEN
	errs := []error{
		c.SetProfile(profiles.ProfileQuiet),
		c.SetFanCurve(profiles.ProfileBalanced, profiles.CurveData{Fan: profiles.FanCPU, Points: points}),
		c.SetFanCurvesEnabled(profiles.ProfileBalanced, true),
		c.ResetFanCurves(profiles.ProfileBalanced),
	}
	_, errNext := c.NextProfile()
	_, errGet := c.Profile()
	errs = append(errs, errNext, errGet)

	// THEN
	for _, err := range errs {
		assert.ErrorIs(t, err, ErrNotSupported)
	}
	assert.Equal(t, 0, policy.WriteCount())
	assert.Equal(t, 0, fanCurves.writeCount())
}

func TestProfileController_ConfiguredDefaultCurves(t *testing.T) {
	// GIVEN
	points, err := profiles.ParseCurvePoints("40c:20%,60c:50%,80c:100%")
	require.NoError(t, err)
	store := newStore(t, "profile.conf", DefaultProfileConfig)
	c := NewProfileController(
		fullySupported(),
		testingutils.NewMockAttribute("throttle_thermal_policy", "0\n"),
		newMockFanCurves(),
		store,
		NewNotifier(),
		ProfileOptions{DefaultCurves: map[profiles.Profile]map[profiles.FanCurvePU][]profiles.CurvePoint{
			profiles.ProfileQuiet: {profiles.FanGPU: points},
		}},
	)

	// WHEN
	require.NoError(t, c.ResetFanCurves(profiles.ProfileQuiet))
	curves, err := c.FanCurves(profiles.ProfileQuiet)

	// THEN
	require.NoError(t, err)
	for _, curve := range curves {
		if curve.Fan == profiles.FanGPU {
			assert.Equal(t, points, curve.Points)
		} else {
			assert.NotEqual(t, points, curve.Points)
		}
	}
}

func TestProfileController_SetFanCurvesEnabled_FailedWriteKeepsState(t *testing.T) {
	// GIVEN
	c, _, fanCurves := newProfileController(t, fullySupported())
	require.NoError(t, c.SetFanCurvesEnabled(profiles.ProfileBalanced, false))
	fanCurves.get("pwm2_enable").SetFailWrite(true)

	// WHEN
	err := c.SetFanCurvesEnabled(profiles.ProfileBalanced, true)

	// THEN
	assert.ErrorIs(t, err, testingutils.ErrMockWrite)
	assert.Equal(t, "2", string(fanCurves.get("pwm1_enable").LastWrite()))
	curves, err := c.FanCurves(profiles.ProfileBalanced)
	assert.NoError(t, err)
	assert.Len(t, curves, 2)
	for _, curve := range curves {
		assert.False(t, curve.Enabled, curve.Fan.String())
	}
}

func TestProfileController_SetFanCurve_DisableReleasesFan(t *testing.T) {
	// GIVEN
	c, _, fanCurves := newProfileController(t, fullySupported())
	points, err := profiles.ParseCurvePoints("30c:10%,50c:40%,70c:80%")
	require.NoError(t, err)
	require.NoError(t, c.SetFanCurve(profiles.ProfileBalanced, profiles.CurveData{Fan: profiles.FanCPU, Points: points, Enabled: true}))
	require.Equal(t, "1", string(fanCurves.get("pwm1_enable").LastWrite()))

	// WHEN
	err = c.SetFanCurve(profiles.ProfileBalanced, profiles.CurveData{Fan: profiles.FanCPU, Points: points, Enabled: false})

	// THEN
	require.NoError(t, err)
	assert.Equal(t, "2", string(fanCurves.get("pwm1_enable").LastWrite()))
	curves, err := c.FanCurves(profiles.ProfileBalanced)
	assert.NoError(t, err)
	for _, curve := range curves {
		if curve.Fan == profiles.FanCPU {
			assert.False(t, curve.Enabled)
		}
	}
}

func TestProfileController_Profile_ReadFailureReturnsLastKnown(t *testing.T) {
	// GIVEN
	c, policy, _ := newProfileController(t, fullySupported())
	require.NoError(t, c.SetProfile(profiles.ProfileQuiet))
	policy.SetFailRead(true)

	// WHEN
	profile, err := c.Profile()

	// THEN
	assert.NoError(t, err)
	assert.Equal(t, profiles.ProfileQuiet, profile)
}
