package controller

import (
	"sync"

	"github.com/markusressel/asus2go/internal/attr"
	"github.com/markusressel/asus2go/internal/capability"
	"github.com/markusressel/asus2go/internal/platform"
	"github.com/markusressel/asus2go/internal/ui"
)

// BiosSetting is the value of a NotifyBios notification
type BiosSetting struct {
	Name  string `json:"name"`
	Value bool   `json:"value"`
}

type BiosController interface {
	PostSound() (bool, error)
	SetPostSound(enabled bool) error
	DedicatedGfx() (bool, error)
	SetDedicatedGfx(enabled bool) error
	PanelOverdrive() (bool, error)
	SetPanelOverdrive(enabled bool) error
}

type biosController struct {
	mu sync.Mutex

	supported capability.BiosSupportedFunctions
	postSound attr.Attribute
	// gpu owns gpu_mux_mode, writes to it are serialized with gpu mode changes
	gpu      GpuController
	panelOd  attr.Attribute
	notifier *Notifier
}

func NewBiosController(
	supported capability.SupportedFunctions,
	postSound attr.Attribute,
	gpu GpuController,
	panelOd attr.Attribute,
	notifier *Notifier,
) BiosController {
	return &biosController{
		supported: supported.Bios,
		postSound: postSound,
		gpu:       gpu,
		panelOd:   panelOd,
		notifier:  notifier,
	}
}

func (c *biosController) PostSound() (bool, error) {
	if err := requireCapability(c.supported.PostSound, "post sound"); err != nil {
		return false, err
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	value, err := platform.ReadEfiBool(c.postSound)
	if err != nil {
		ui.Debug("Could not read %s: %v", c.postSound.Name(), err)
		return false, nil
	}
	return value, nil
}

func (c *biosController) SetPostSound(enabled bool) error {
	if err := requireCapability(c.supported.PostSound, "post sound"); err != nil {
		return err
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := platform.WriteEfiBool(c.postSound, enabled); err != nil {
		return deviceError(c.postSound, err)
	}
	c.notifier.Publish(NotifyBios, BiosSetting{Name: "post_sound", Value: enabled})
	return nil
}

// DedicatedGfx reports whether the mux routes the display to the dGPU
func (c *biosController) DedicatedGfx() (bool, error) {
	if err := requireCapability(c.supported.DedicatedGfx, "dedicated gfx"); err != nil {
		return false, err
	}
	return c.gpu.Dedicated()
}

func (c *biosController) SetDedicatedGfx(enabled bool) error {
	if err := requireCapability(c.supported.DedicatedGfx, "dedicated gfx"); err != nil {
		return err
	}
	if err := c.gpu.SetDedicated(enabled); err != nil {
		return err
	}
	c.notifier.Publish(NotifyBios, BiosSetting{Name: "dedicated_gfx", Value: enabled})
	return nil
}

func (c *biosController) PanelOverdrive() (bool, error) {
	if err := requireCapability(c.supported.PanelOd, "panel overdrive"); err != nil {
		return false, err
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	value, err := attr.ReadBool(c.panelOd)
	if err != nil {
		ui.Debug("Could not read %s: %v", c.panelOd.Name(), err)
		return false, nil
	}
	return value, nil
}

func (c *biosController) SetPanelOverdrive(enabled bool) error {
	if err := requireCapability(c.supported.PanelOd, "panel overdrive"); err != nil {
		return err
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := attr.WriteBool(c.panelOd, enabled); err != nil {
		return deviceError(c.panelOd, err)
	}
	c.notifier.Publish(NotifyBios, BiosSetting{Name: "panel_od", Value: enabled})
	return nil
}
