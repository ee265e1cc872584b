package controller

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"sync"

	"github.com/markusressel/asus2go/internal/attr"
	"github.com/markusressel/asus2go/internal/capability"
	"github.com/markusressel/asus2go/internal/configstore"
	"github.com/markusressel/asus2go/internal/platform"
	"github.com/markusressel/asus2go/internal/ui"
)

type KbdBrightness uint8

const (
	KbdBrightnessOff KbdBrightness = iota
	KbdBrightnessLow
	KbdBrightnessMed
	KbdBrightnessHigh
)

func (b KbdBrightness) String() string {
	switch b {
	case KbdBrightnessOff:
		return "off"
	case KbdBrightnessLow:
		return "low"
	case KbdBrightnessMed:
		return "med"
	case KbdBrightnessHigh:
		return "high"
	}
	return strconv.Itoa(int(b))
}

// ParseKbdBrightness accepts a level name or a raw value 0-3
func ParseKbdBrightness(text string) (KbdBrightness, error) {
	text = strings.ToLower(strings.TrimSpace(text))
	for _, b := range []KbdBrightness{KbdBrightnessOff, KbdBrightnessLow, KbdBrightnessMed, KbdBrightnessHigh} {
		if text == b.String() {
			return b, nil
		}
	}
	value, err := strconv.Atoi(text)
	if err != nil || value < 0 || value > int(KbdBrightnessHigh) {
		return KbdBrightnessOff, validationError("brightness", "%q must be one of off, low, med, high or 0-3", text)
	}
	return KbdBrightness(value), nil
}

// KbdRgbSpeed is the animation speed of a keyboard rgb mode
type KbdRgbSpeed uint8

const (
	KbdRgbSpeedSlow KbdRgbSpeed = 0xe1
	KbdRgbSpeedMed  KbdRgbSpeed = 0xeb
	KbdRgbSpeedFast KbdRgbSpeed = 0xf5
)

func ParseKbdRgbSpeed(text string) (KbdRgbSpeed, error) {
	switch strings.ToLower(strings.TrimSpace(text)) {
	case "slow":
		return KbdRgbSpeedSlow, nil
	case "med", "medium", "":
		return KbdRgbSpeedMed, nil
	case "fast":
		return KbdRgbSpeedFast, nil
	}
	return KbdRgbSpeedMed, validationError("speed", "%q must be one of slow, med, fast", text)
}

var kbdRgbModes = map[string]uint8{
	"static":  0,
	"breathe": 1,
	"cycle":   2,
	"strobe":  10,
}

func ParseKbdRgbModeName(text string) (uint8, error) {
	mode, ok := kbdRgbModes[strings.ToLower(strings.TrimSpace(text))]
	if !ok {
		return 0, validationError("mode", "unknown keyboard mode %q", text)
	}
	return mode, nil
}

type KbdRgbMode struct {
	Mode  uint8       `json:"mode"`
	Red   uint8       `json:"red"`
	Green uint8       `json:"green"`
	Blue  uint8       `json:"blue"`
	Speed KbdRgbSpeed `json:"speed"`
}

func (m KbdRgbMode) values() []uint8 {
	return []uint8{1, m.Mode, m.Red, m.Green, m.Blue, uint8(m.Speed)}
}

// KbdRgbState selects in which power states the keyboard backlight is lit
type KbdRgbState struct {
	Boot     bool `json:"boot"`
	Awake    bool `json:"awake"`
	Sleep    bool `json:"sleep"`
	Keyboard bool `json:"keyboard"`
}

func (s KbdRgbState) values() []uint8 {
	result := []uint8{1}
	for _, v := range []bool{s.Boot, s.Awake, s.Sleep, s.Keyboard} {
		if v {
			result = append(result, 1)
		} else {
			result = append(result, 0)
		}
	}
	return result
}

// LedConfig is the persisted state of the keyboard backlight
type LedConfig struct {
	Brightness KbdBrightness `json:"brightness"`
	RgbMode    *KbdRgbMode   `json:"rgb_mode,omitempty"`
	RgbState   *KbdRgbState  `json:"rgb_state,omitempty"`
}

func DefaultLedConfig() LedConfig {
	return LedConfig{Brightness: KbdBrightnessMed}
}

type KeyboardLedController interface {
	Brightness() (KbdBrightness, error)
	SetBrightness(level KbdBrightness) error
	SetRgbMode(mode KbdRgbMode) error
	SetRgbState(state KbdRgbState) error
	// Restore writes the persisted state back to the hardware
	Restore() error
}

type keyboardLedController struct {
	mu sync.Mutex

	supported capability.KeyboardLedSupportedFunctions
	led       *platform.KeyboardLed
	store     *configstore.Store[LedConfig]
	notifier  *Notifier

	config LedConfig
}

func NewKeyboardLedController(
	supported capability.SupportedFunctions,
	led *platform.KeyboardLed,
	store *configstore.Store[LedConfig],
	notifier *Notifier,
) KeyboardLedController {
	config, err := store.Load()
	if err != nil {
		ui.Warning("Could not load keyboard LED config: %v", err)
	}
	return &keyboardLedController{
		supported: supported.KeyboardLed,
		led:       led,
		store:     store,
		notifier:  notifier,
		config:    config,
	}
}

func (c *keyboardLedController) Brightness() (KbdBrightness, error) {
	if err := requireCapability(c.supported.BrightnessSet, "keyboard brightness"); err != nil {
		return KbdBrightnessOff, err
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	value, err := attr.ReadU8(c.led.Brightness)
	if err != nil {
		ui.Debug("Could not read keyboard brightness, using last known: %v", err)
		return c.config.Brightness, nil
	}
	return KbdBrightness(value), nil
}

func (c *keyboardLedController) SetBrightness(level KbdBrightness) error {
	if err := requireCapability(c.supported.BrightnessSet, "keyboard brightness"); err != nil {
		return err
	}
	if level > KbdBrightnessHigh {
		return validationError("brightness", "%d must be in range 0-3", level)
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := attr.WriteU8(c.led.Brightness, uint8(level)); err != nil {
		return deviceError(c.led.Brightness, err)
	}
	c.config.Brightness = level
	c.persist()
	c.notifier.Publish(NotifyLed, level)
	return nil
}

func (c *keyboardLedController) SetRgbMode(mode KbdRgbMode) error {
	if err := requireCapability(c.supported.RgbMode, "keyboard rgb mode"); err != nil {
		return err
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := attr.WriteU8Array(c.led.RgbMode, mode.values()); err != nil {
		return deviceError(c.led.RgbMode, err)
	}
	c.config.RgbMode = &mode
	c.persist()
	c.notifier.Publish(NotifyLed, mode)
	return nil
}

func (c *keyboardLedController) SetRgbState(state KbdRgbState) error {
	if err := requireCapability(c.supported.RgbState, "keyboard rgb state"); err != nil {
		return err
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := attr.WriteU8Array(c.led.RgbState, state.values()); err != nil {
		return deviceError(c.led.RgbState, err)
	}
	c.config.RgbState = &state
	c.persist()
	c.notifier.Publish(NotifyLed, state)
	return nil
}

func (c *keyboardLedController) Restore() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	var errs []error
	if c.supported.BrightnessSet {
		if err := attr.WriteU8(c.led.Brightness, uint8(c.config.Brightness)); err != nil {
			errs = append(errs, deviceError(c.led.Brightness, err))
		}
	}
	if c.supported.RgbMode && c.config.RgbMode != nil {
		if err := attr.WriteU8Array(c.led.RgbMode, c.config.RgbMode.values()); err != nil {
			errs = append(errs, deviceError(c.led.RgbMode, err))
		}
	}
	if c.supported.RgbState && c.config.RgbState != nil {
		if err := attr.WriteU8Array(c.led.RgbState, c.config.RgbState.values()); err != nil {
			errs = append(errs, deviceError(c.led.RgbState, err))
		}
	}
	if len(errs) > 0 {
		return fmt.Errorf("restoring keyboard LED state: %w", errors.Join(errs...))
	}
	return nil
}

func (c *keyboardLedController) persist() {
	if err := c.store.Write(c.config); err != nil {
		ui.Warning("Could not persist keyboard LED config: %v", err)
	}
}
