package configuration

import (
	"github.com/markusressel/asus2go/internal/controller"
	"github.com/markusressel/asus2go/internal/profiles"
)

// CurvePoints is a fan curve in its text form, e.g. "30c:10%,50c:40%,80c:100%"
type CurvePoints []profiles.CurvePoint

type ProfilesConfig struct {
	// Enabled limits the profiles NextProfile cycles through
	Enabled []profiles.Profile `json:"enabled"`
	// DefaultCurves replace the factory fan curves used when the curves of a profile are reset
	DefaultCurves map[profiles.Profile]map[profiles.FanCurvePU]CurvePoints `json:"defaultCurves"`
}

func (c ProfilesConfig) Options() controller.ProfileOptions {
	options := controller.ProfileOptions{
		Enabled:       c.Enabled,
		DefaultCurves: map[profiles.Profile]map[profiles.FanCurvePU][]profiles.CurvePoint{},
	}
	for profile, fans := range c.DefaultCurves {
		options.DefaultCurves[profile] = map[profiles.FanCurvePU][]profiles.CurvePoint{}
		for fan, points := range fans {
			options.DefaultCurves[profile][fan] = points
		}
	}
	return options
}
