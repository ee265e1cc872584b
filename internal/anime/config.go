package anime

import (
	"github.com/markusressel/asus2go/internal/configstore"
	"github.com/markusressel/asus2go/internal/ui"
	"github.com/markusressel/asus2go/internal/util"
)

const ConfigFileName = "anime.conf"

// Config holds the animation lists played on system events
type Config struct {
	System          []ActionLoader `json:"system"`
	Boot            []ActionLoader `json:"boot"`
	Wake            []ActionLoader `json:"wake"`
	Shutdown        []ActionLoader `json:"shutdown"`
	Brightness      float64        `json:"brightness"`
	AwakeEnabled    bool           `json:"awake_enabled"`
	BootAnimEnabled bool           `json:"boot_anim_enabled"`
}

// ConfigV352 predates the enable flags
type ConfigV352 struct {
	System     []ActionLoader `json:"system"`
	Boot       []ActionLoader `json:"boot"`
	Wake       []ActionLoader `json:"wake"`
	Shutdown   []ActionLoader `json:"shutdown"`
	Brightness float64        `json:"brightness"`
}

func (c ConfigV352) IntoCurrent() Config {
	return Config{
		System:          nonNil(c.System),
		Boot:            nonNil(c.Boot),
		Wake:            nonNil(c.Wake),
		Shutdown:        nonNil(c.Shutdown),
		Brightness:      1.0,
		AwakeEnabled:    true,
		BootAnimEnabled: true,
	}
}

// ConfigV341 allowed a single optional action per event
type ConfigV341 struct {
	System   *ActionLoader `json:"system,omitempty"`
	Boot     *ActionLoader `json:"boot,omitempty"`
	Suspend  *ActionLoader `json:"suspend,omitempty"`
	Shutdown *ActionLoader `json:"shutdown,omitempty"`
}

func (c ConfigV341) IntoCurrent() Config {
	single := func(action *ActionLoader) []ActionLoader {
		if action == nil {
			return []ActionLoader{}
		}
		return []ActionLoader{*action}
	}
	return Config{
		System:          single(c.System),
		Boot:            single(c.Boot),
		Wake:            single(c.Suspend),
		Shutdown:        single(c.Shutdown),
		Brightness:      1.0,
		AwakeEnabled:    true,
		BootAnimEnabled: true,
	}
}

const defaultAnimationDir = "/usr/share/asus2go/anime/custom"

func DefaultConfig() Config {
	showFor := Seconds(2)
	fade := NewFade(Seconds(2), &showFor, Seconds(2))
	sonicRun := ActionLoader{ImageAnimation: &ImageAction{
		File:       defaultAnimationDir + "/sonic-run.gif",
		Scale:      0.9,
		Angle:      0.65,
		Time:       fade,
		Brightness: 1.0,
	}}
	sonicWait := ActionLoader{ImageAnimation: &ImageAction{
		File:        defaultAnimationDir + "/sonic-wait.gif",
		Scale:       0.9,
		Angle:       0.0,
		Translation: Vec2{X: 3, Y: 2},
		Time:        Infinite(),
		Brightness:  1.0,
	}}
	return Config{
		System:          []ActionLoader{},
		Boot:            []ActionLoader{sonicRun},
		Wake:            []ActionLoader{sonicRun},
		Shutdown:        []ActionLoader{sonicWait},
		Brightness:      1.0,
		AwakeEnabled:    true,
		BootAnimEnabled: true,
	}
}

// NormalizeConfig clamps the brightness to [0, 1]
func NormalizeConfig(c *Config) {
	if c.Brightness < 0 || c.Brightness > 1 {
		ui.Warning("Clamped AniMe brightness to [0.0, 1.0], was %v", c.Brightness)
		c.Brightness = util.Clamp(c.Brightness, 0, 1)
	}
	c.System = nonNil(c.System)
	c.Boot = nonNil(c.Boot)
	c.Wake = nonNil(c.Wake)
	c.Shutdown = nonNil(c.Shutdown)
}

func NewConfigStore(path string, atomicWrites bool) *configstore.Store[Config] {
	return configstore.New[Config](
		path,
		configstore.WithDefault(DefaultConfig),
		configstore.WithMigrations(
			configstore.MigrateFrom("3.5.2", ConfigV352.IntoCurrent),
			configstore.MigrateFrom("3.4.1", ConfigV341.IntoCurrent),
		),
		configstore.WithNormalize(NormalizeConfig),
		configstore.WithAtomicWrites[Config](atomicWrites),
	)
}

func nonNil(actions []ActionLoader) []ActionLoader {
	if actions == nil {
		return []ActionLoader{}
	}
	return actions
}

// ExpandPaths resolves a leading "~" in the file of every action to the home directory of the current user
func (c *Config) ExpandPaths() error {
	for _, list := range [][]ActionLoader{c.System, c.Boot, c.Wake, c.Shutdown} {
		for i := range list {
			if err := list[i].expandPath(); err != nil {
				return err
			}
		}
	}
	return nil
}

func (a *ActionLoader) expandPath() error {
	switch {
	case a.AsusAnimation != nil:
		action := *a.AsusAnimation
		file, err := util.ExpandHomePath(action.File)
		if err != nil {
			return err
		}
		action.File = file
		a.AsusAnimation = &action
	case a.ImageAnimation != nil, a.Image != nil:
		target := &a.ImageAnimation
		if a.Image != nil {
			target = &a.Image
		}
		action := **target
		file, err := util.ExpandHomePath(action.File)
		if err != nil {
			return err
		}
		action.File = file
		*target = &action
	}
	return nil
}
