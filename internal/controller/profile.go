package controller

import (
	"fmt"
	"sync"

	"github.com/markusressel/asus2go/internal/attr"
	"github.com/markusressel/asus2go/internal/capability"
	"github.com/markusressel/asus2go/internal/configstore"
	"github.com/markusressel/asus2go/internal/profiles"
	"github.com/markusressel/asus2go/internal/ui"
	"github.com/qdm12/reprint"
	"golang.org/x/exp/slices"
)

// pwmN_enable values of the custom fan curve hwmon device
const (
	fanCurveEnabled  = 1
	fanCurveFirmware = 2
)

// FanCurveAttributes gives access to the hwmon attributes of the custom fan curves
type FanCurveAttributes interface {
	Enable(pwmIndex int) attr.Attribute
	PointTemp(pwmIndex int, point int) attr.Attribute
	PointPwm(pwmIndex int, point int) attr.Attribute
}

// ProfileConfig is the persisted state of profiles and their fan curves
type ProfileConfig struct {
	Active  profiles.Profile                         `json:"active_profile"`
	Enabled []profiles.Profile                       `json:"enabled_profiles"`
	Curves  map[profiles.Profile][]profiles.CurveData `json:"fan_curves"`
}

func DefaultProfileConfig() ProfileConfig {
	return ProfileConfig{
		Active:  profiles.ProfileBalanced,
		Enabled: append([]profiles.Profile{}, profiles.AllProfiles...),
		Curves:  map[profiles.Profile][]profiles.CurveData{},
	}
}

// ProfileOptions are the daemon configured overrides of the profile behaviour
type ProfileOptions struct {
	// Enabled overrides the persisted list of profiles to cycle through if it is not empty
	Enabled []profiles.Profile
	// DefaultCurves replaces the factory curve points of a fan in a profile
	DefaultCurves map[profiles.Profile]map[profiles.FanCurvePU][]profiles.CurvePoint
}

type ProfileController interface {
	Profile() (profiles.Profile, error)
	SetProfile(profile profiles.Profile) error
	// Profiles returns the profiles NextProfile cycles through
	Profiles() ([]profiles.Profile, error)
	NextProfile() (profiles.Profile, error)

	FanCurves(profile profiles.Profile) ([]profiles.CurveData, error)
	SetFanCurve(profile profiles.Profile, curve profiles.CurveData) error
	SetFanCurvesEnabled(profile profiles.Profile, enabled bool) error
	ResetFanCurves(profile profiles.Profile) error
}

type profileController struct {
	mu sync.Mutex

	supported     capability.PlatformProfileSupportedFunctions
	thermalPolicy attr.Attribute
	fanCurves     FanCurveAttributes
	store         *configstore.Store[ProfileConfig]
	notifier      *Notifier
	options       ProfileOptions

	config ProfileConfig
}

func NewProfileController(
	supported capability.SupportedFunctions,
	thermalPolicy attr.Attribute,
	fanCurves FanCurveAttributes,
	store *configstore.Store[ProfileConfig],
	notifier *Notifier,
	options ProfileOptions,
) ProfileController {
	config, err := store.Load()
	if err != nil {
		ui.Warning("Could not load profile config: %v", err)
	}
	if config.Curves == nil {
		config.Curves = map[profiles.Profile][]profiles.CurveData{}
	}
	if len(options.Enabled) > 0 {
		config.Enabled = options.Enabled
	}
	if len(config.Enabled) == 0 {
		config.Enabled = append([]profiles.Profile{}, profiles.AllProfiles...)
	}

	c := &profileController{
		supported:     supported.PlatformProfile,
		thermalPolicy: thermalPolicy,
		fanCurves:     fanCurves,
		store:         store,
		notifier:      notifier,
		options:       options,
		config:        config,
	}

	if c.supported.ProfileSet {
		if active, err := c.readProfile(); err == nil {
			c.config.Active = active
		}
	}
	return c
}

func (c *profileController) Profile() (profiles.Profile, error) {
	if err := requireCapability(c.supported.ProfileSet, "platform profile"); err != nil {
		return profiles.ProfileBalanced, err
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	profile, err := c.readProfile()
	if err != nil {
		ui.Debug("Could not read platform profile, using last known: %v", err)
	}
	return profile, nil
}

func (c *profileController) readProfile() (profiles.Profile, error) {
	value, err := attr.ReadU8(c.thermalPolicy)
	if err != nil {
		return c.config.Active, deviceError(c.thermalPolicy, err)
	}
	profile, err := profiles.FromThermalPolicy(value)
	if err != nil {
		return c.config.Active, deviceError(c.thermalPolicy, err)
	}
	return profile, nil
}

func (c *profileController) SetProfile(profile profiles.Profile) error {
	if err := requireCapability(c.supported.ProfileSet, "platform profile"); err != nil {
		return err
	}
	if !slices.Contains(profiles.AllProfiles, profile) {
		return validationError("profile", "unknown profile %d", profile)
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.setProfile(profile)
}

func (c *profileController) setProfile(profile profiles.Profile) error {
	if err := attr.WriteU8(c.thermalPolicy, profile.ThermalPolicy()); err != nil {
		return deviceError(c.thermalPolicy, err)
	}
	c.config.Active = profile
	c.persist()

	if c.supported.FanCurveSet {
		for _, curve := range c.curvesOf(profile) {
			if !curve.Enabled {
				continue
			}
			if err := c.applyCurve(curve); err != nil {
				ui.Warning("Could not apply %s fan curve of profile %s: %v", curve.Fan, profile, err)
			}
		}
	}

	c.notifier.Publish(NotifyProfile, profile)
	return nil
}

func (c *profileController) Profiles() ([]profiles.Profile, error) {
	if err := requireCapability(c.supported.ProfileSet, "platform profile"); err != nil {
		return nil, err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]profiles.Profile{}, c.config.Enabled...), nil
}

func (c *profileController) NextProfile() (profiles.Profile, error) {
	if err := requireCapability(c.supported.ProfileSet, "platform profile"); err != nil {
		return profiles.ProfileBalanced, err
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	current, err := c.readProfile()
	if err != nil {
		ui.Warning("Could not read current profile, using last known: %v", err)
	}
	next := c.config.Enabled[0]
	if index := slices.Index(c.config.Enabled, current); index >= 0 {
		next = c.config.Enabled[(index+1)%len(c.config.Enabled)]
	}
	if err := c.setProfile(next); err != nil {
		return current, err
	}
	return next, nil
}

func (c *profileController) FanCurves(profile profiles.Profile) ([]profiles.CurveData, error) {
	if err := requireCapability(c.supported.FanCurveSet, "fan curves"); err != nil {
		return nil, err
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	return reprint.This(c.curvesOf(profile)).([]profiles.CurveData), nil
}

func (c *profileController) SetFanCurve(profile profiles.Profile, curve profiles.CurveData) error {
	if err := requireCapability(c.supported.FanCurveSet && slices.Contains(c.supported.Fans, curve.Fan), fmt.Sprintf("%s fan curve", curve.Fan)); err != nil {
		return err
	}
	if err := profiles.ValidatePoints(curve.Points); err != nil {
		return &ValidationError{Field: "curve", Err: err}
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	if profile == c.config.Active {
		if err := c.switchCurve(curve); err != nil {
			return err
		}
	}

	curves := slices.Clone(c.curvesOf(profile))
	for i := range curves {
		if curves[i].Fan == curve.Fan {
			curves[i] = curve
		}
	}
	c.config.Curves[profile] = curves
	c.persist()
	c.notifier.Publish(NotifyProfile, profile)
	return nil
}

func (c *profileController) SetFanCurvesEnabled(profile profiles.Profile, enabled bool) error {
	if err := requireCapability(c.supported.FanCurveSet, "fan curves"); err != nil {
		return err
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	previous := c.curvesOf(profile)
	curves := slices.Clone(previous)
	for i := range curves {
		curves[i].Enabled = enabled
		if profile != c.config.Active {
			continue
		}
		if err := c.switchCurve(curves[i]); err != nil {
			c.restoreCurves(previous[:i])
			return err
		}
	}
	c.config.Curves[profile] = curves
	c.persist()
	c.notifier.Publish(NotifyProfile, profile)
	return nil
}

func (c *profileController) ResetFanCurves(profile profiles.Profile) error {
	if err := requireCapability(c.supported.FanCurveSet, "fan curves"); err != nil {
		return err
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	if profile == c.config.Active {
		for _, fan := range c.supported.Fans {
			if err := c.releaseCurve(fan); err != nil {
				return err
			}
		}
	}
	c.config.Curves[profile] = c.defaultCurves(profile)
	c.persist()
	c.notifier.Publish(NotifyProfile, profile)
	return nil
}

// curvesOf returns the stored curves of a profile, adding defaults for fans without a curve
func (c *profileController) curvesOf(profile profiles.Profile) []profiles.CurveData {
	curves := c.config.Curves[profile]
	for _, fallback := range c.defaultCurves(profile) {
		found := slices.ContainsFunc(curves, func(curve profiles.CurveData) bool {
			return curve.Fan == fallback.Fan
		})
		if !found {
			curves = append(curves, fallback)
		}
	}
	return curves
}

func (c *profileController) defaultCurves(profile profiles.Profile) []profiles.CurveData {
	curves := profiles.DefaultCurves(profile, c.supported.Fans)
	overrides := c.options.DefaultCurves[profile]
	for i, curve := range curves {
		if points, ok := overrides[curve.Fan]; ok {
			curves[i].Points = slices.Clone(points)
		}
	}
	return curves
}

// applyCurve writes all points of the curve and switches the fan to the custom curve
func (c *profileController) applyCurve(curve profiles.CurveData) error {
	pwmIndex := curve.Fan.PwmIndex()
	for i, point := range curve.HardwarePoints() {
		temp := c.fanCurves.PointTemp(pwmIndex, i+1)
		if err := attr.WriteU8(temp, point.Temp); err != nil {
			return deviceError(temp, err)
		}
		pwm := c.fanCurves.PointPwm(pwmIndex, i+1)
		if err := attr.WriteU8(pwm, point.Pwm); err != nil {
			return deviceError(pwm, err)
		}
	}
	enable := c.fanCurves.Enable(pwmIndex)
	if err := attr.WriteU8(enable, fanCurveEnabled); err != nil {
		return deviceError(enable, err)
	}
	return nil
}

// switchCurve applies the curve if it is enabled, otherwise the fan is handed back to the firmware
func (c *profileController) switchCurve(curve profiles.CurveData) error {
	if curve.Enabled {
		return c.applyCurve(curve)
	}
	return c.releaseCurve(curve.Fan)
}

// restoreCurves puts fans back into the state of the given curves after a failed change
func (c *profileController) restoreCurves(curves []profiles.CurveData) {
	for _, curve := range curves {
		if err := c.switchCurve(curve); err != nil {
			ui.Warning("Could not restore %s fan curve: %v", curve.Fan, err)
		}
	}
}

// releaseCurve hands control of the fan back to the firmware
func (c *profileController) releaseCurve(fan profiles.FanCurvePU) error {
	enable := c.fanCurves.Enable(fan.PwmIndex())
	if err := attr.WriteU8(enable, fanCurveFirmware); err != nil {
		return deviceError(enable, err)
	}
	return nil
}

func (c *profileController) persist() {
	if err := c.store.Write(c.config); err != nil {
		ui.Warning("Could not persist profile config: %v", err)
	}
}
