package profiles

import (
	"fmt"
	"strings"
)

// Profile is a named fan/thermal behaviour preset
type Profile int

const (
	ProfileBalanced Profile = iota
	ProfilePerformance
	ProfileQuiet
)

// AllProfiles lists every profile in hardware order
var AllProfiles = []Profile{ProfileBalanced, ProfilePerformance, ProfileQuiet}

func (p Profile) String() string {
	switch p {
	case ProfileBalanced:
		return "balanced"
	case ProfilePerformance:
		return "performance"
	case ProfileQuiet:
		return "quiet"
	}
	return fmt.Sprintf("unknown(%d)", int(p))
}

// PlatformProfileName returns the name used by the ACPI platform_profile attribute
func (p Profile) PlatformProfileName() string {
	if p == ProfileQuiet {
		return "quiet"
	}
	return p.String()
}

// ThermalPolicy returns the value of the throttle_thermal_policy attribute
func (p Profile) ThermalPolicy() uint8 {
	return uint8(p)
}

func FromThermalPolicy(value uint8) (Profile, error) {
	if int(value) >= len(AllProfiles) {
		return ProfileBalanced, fmt.Errorf("unknown throttle_thermal_policy value: %d", value)
	}
	return Profile(value), nil
}

func ParseProfile(text string) (Profile, error) {
	switch strings.ToLower(strings.TrimSpace(text)) {
	case "balanced", "normal":
		return ProfileBalanced, nil
	case "performance", "boost":
		return ProfilePerformance, nil
	case "quiet", "silent", "low-power":
		return ProfileQuiet, nil
	}
	return ProfileBalanced, fmt.Errorf("unknown profile: %s, must be one of: balanced, performance, quiet", text)
}

func (p Profile) MarshalText() ([]byte, error) {
	return []byte(p.String()), nil
}

func (p *Profile) UnmarshalText(text []byte) error {
	profile, err := ParseProfile(string(text))
	if err != nil {
		return err
	}
	*p = profile
	return nil
}

// FanCurvePU is the processing unit a fan is cooling
type FanCurvePU int

const (
	FanCPU FanCurvePU = iota
	FanGPU
	FanMID
)

var AllFans = []FanCurvePU{FanCPU, FanGPU, FanMID}

func (f FanCurvePU) String() string {
	switch f {
	case FanCPU:
		return "cpu"
	case FanGPU:
		return "gpu"
	case FanMID:
		return "mid"
	}
	return fmt.Sprintf("unknown(%d)", int(f))
}

// PwmIndex returns the index of the pwm channel of the fan curve hwmon device
func (f FanCurvePU) PwmIndex() int {
	return int(f) + 1
}

func ParseFanCurvePU(text string) (FanCurvePU, error) {
	switch strings.ToLower(strings.TrimSpace(text)) {
	case "cpu":
		return FanCPU, nil
	case "gpu":
		return FanGPU, nil
	case "mid":
		return FanMID, nil
	}
	return FanCPU, fmt.Errorf("unknown fan: %s, must be one of: cpu, gpu, mid", text)
}

func (f FanCurvePU) MarshalText() ([]byte, error) {
	return []byte(f.String()), nil
}

func (f *FanCurvePU) UnmarshalText(text []byte) error {
	fan, err := ParseFanCurvePU(string(text))
	if err != nil {
		return err
	}
	*f = fan
	return nil
}
