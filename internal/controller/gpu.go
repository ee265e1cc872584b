package controller

import (
	"strings"
	"sync"

	"github.com/markusressel/asus2go/internal/attr"
	"github.com/markusressel/asus2go/internal/capability"
	"github.com/markusressel/asus2go/internal/platform"
	"github.com/markusressel/asus2go/internal/ui"
)

type GpuPowerStatus string

const (
	GpuPowerActive    GpuPowerStatus = "active"
	GpuPowerSuspended GpuPowerStatus = "suspended"
	GpuPowerOff       GpuPowerStatus = "off"
	GpuPowerUnknown   GpuPowerStatus = "unknown"
)

// GpuAttributes are the attributes the gpu mode is derived from, absent ones are nil
type GpuAttributes struct {
	GpuMuxMode    attr.Attribute
	DgpuDisable   attr.Attribute
	EgpuEnable    attr.Attribute
	RuntimeStatus attr.Attribute
}

type GpuController interface {
	Mode() (platform.GpuMode, error)
	// SetMode writes the encodings of the given mode and returns the mode read back from the hardware.
	// Switching the mode disrupts the running display session, confirming that is up to the caller.
	SetMode(mode platform.GpuMode) (platform.GpuMode, error)
	PowerStatus() (GpuPowerStatus, error)
	// Dedicated reports whether the mux routes the display to the dGPU
	Dedicated() (bool, error)
	SetDedicated(enabled bool) error
}

type gpuController struct {
	mu sync.Mutex

	supported capability.BiosSupportedFunctions
	attrs     GpuAttributes
	notifier  *Notifier
}

func NewGpuController(supported capability.SupportedFunctions, attrs GpuAttributes, notifier *Notifier) GpuController {
	return &gpuController{
		supported: supported.Bios,
		attrs:     attrs,
		notifier:  notifier,
	}
}

func (c *gpuController) anySupported() bool {
	return c.supported.GpuMux || c.supported.DgpuDisable || c.supported.EgpuEnable
}

func (c *gpuController) Mode() (platform.GpuMode, error) {
	if err := requireCapability(c.anySupported(), "gpu mode"); err != nil {
		return platform.GpuModeNotSupported, err
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	mode, err := c.readMode()
	if err != nil {
		ui.Debug("Could not read gpu mode: %v", err)
		return platform.GpuModeError, nil
	}
	return mode, nil
}

func (c *gpuController) readMode() (platform.GpuMode, error) {
	var lastErr error
	read := func(supported bool, a attr.Attribute) *byte {
		if !supported {
			return nil
		}
		value, err := attr.ReadByte(a)
		if err != nil {
			lastErr = deviceError(a, err)
			return nil
		}
		return &value
	}

	mux := read(c.supported.GpuMux, c.attrs.GpuMuxMode)
	dgpu := read(c.supported.DgpuDisable, c.attrs.DgpuDisable)
	egpu := read(c.supported.EgpuEnable, c.attrs.EgpuEnable)

	if mux == nil && dgpu == nil && egpu == nil {
		return platform.GpuModeError, lastErr
	}
	return platform.ResolveGpuMode(mux, dgpu, egpu), nil
}

func (c *gpuController) SetMode(mode platform.GpuMode) (platform.GpuMode, error) {
	var supported bool
	switch mode {
	case platform.GpuModeDiscrete:
		supported = c.supported.GpuMux
	case platform.GpuModeIntegrated:
		supported = c.supported.DgpuDisable
	case platform.GpuModeEgpu:
		supported = c.supported.EgpuEnable
	case platform.GpuModeOptimus:
		supported = c.anySupported()
	default:
		return platform.GpuModeError, validationError("mode", "%s can not be set", mode)
	}
	if err := requireCapability(supported, "gpu mode "+mode.String()); err != nil {
		return platform.GpuModeNotSupported, err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	// eGPU and dGPU are disabled before a mux change, enabling happens last
	writes := []struct {
		supported bool
		attr      attr.Attribute
		value     byte
	}{
		{c.supported.EgpuEnable, c.attrs.EgpuEnable, mode.ToEgpuAttr()},
		{c.supported.DgpuDisable, c.attrs.DgpuDisable, mode.ToDgpuAttr()},
		{c.supported.GpuMux, c.attrs.GpuMuxMode, mode.ToMuxAttr()},
	}
	for _, w := range writes {
		if !w.supported {
			continue
		}
		if err := w.attr.Write([]byte{w.value}); err != nil {
			return platform.GpuModeError, deviceError(w.attr, err)
		}
	}

	result, err := c.readMode()
	if err != nil {
		ui.Warning("Could not read back gpu mode: %v", err)
		result = mode
	}
	if result != mode {
		ui.Info("GPU mode %s will be active after a reboot", mode)
	}
	c.notifier.Publish(NotifyGfx, result)
	return result, nil
}

func (c *gpuController) Dedicated() (bool, error) {
	if err := requireCapability(c.supported.GpuMux, "gpu mux"); err != nil {
		return false, err
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	value, err := attr.ReadByte(c.attrs.GpuMuxMode)
	if err != nil {
		ui.Debug("Could not read gpu mux mode: %v", err)
		return false, nil
	}
	return platform.FromMux(value) == platform.GpuModeDiscrete, nil
}

// SetDedicated only switches the mux, dGPU and eGPU are left as they are
func (c *gpuController) SetDedicated(enabled bool) error {
	if err := requireCapability(c.supported.GpuMux, "gpu mux"); err != nil {
		return err
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	mode := platform.GpuModeOptimus
	if enabled {
		mode = platform.GpuModeDiscrete
	}
	if err := c.attrs.GpuMuxMode.Write([]byte{mode.ToMuxAttr()}); err != nil {
		return deviceError(c.attrs.GpuMuxMode, err)
	}

	result, err := c.readMode()
	if err != nil {
		ui.Debug("Could not read back gpu mode: %v", err)
		result = mode
	}
	c.notifier.Publish(NotifyGfx, result)
	return nil
}

func (c *gpuController) PowerStatus() (GpuPowerStatus, error) {
	if err := requireCapability(c.supported.GpuPower, "gpu power status"); err != nil {
		return GpuPowerUnknown, err
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.supported.DgpuDisable {
		if value, err := attr.ReadByte(c.attrs.DgpuDisable); err == nil && value == '1' {
			return GpuPowerOff, nil
		}
	}

	data, err := c.attrs.RuntimeStatus.Read()
	if err != nil {
		ui.Debug("Could not read dGPU runtime status: %v", err)
		return GpuPowerUnknown, nil
	}
	switch strings.TrimSpace(string(data)) {
	case "active", "resuming":
		return GpuPowerActive, nil
	case "suspended", "suspending":
		return GpuPowerSuspended, nil
	}
	return GpuPowerUnknown, nil
}
