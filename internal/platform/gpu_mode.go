package platform

import (
	"fmt"
	"strings"
)

type GpuMode int

const (
	GpuModeDiscrete GpuMode = iota
	GpuModeOptimus
	GpuModeIntegrated
	GpuModeEgpu
	GpuModeError
	GpuModeNotSupported
)

// AllGpuModes are the modes a machine can be switched to
var AllGpuModes = []GpuMode{GpuModeDiscrete, GpuModeOptimus, GpuModeIntegrated, GpuModeEgpu}

var gpuModeNames = map[GpuMode]string{
	GpuModeDiscrete:     "discrete",
	GpuModeOptimus:      "optimus",
	GpuModeIntegrated:   "integrated",
	GpuModeEgpu:         "egpu",
	GpuModeError:        "error",
	GpuModeNotSupported: "notsupported",
}

func (m GpuMode) String() string {
	if name, ok := gpuModeNames[m]; ok {
		return name
	}
	return fmt.Sprintf("unknown(%d)", int(m))
}

func ParseGpuMode(text string) (GpuMode, error) {
	needle := strings.ToLower(strings.TrimSpace(text))
	for mode, name := range gpuModeNames {
		if name == needle {
			return mode, nil
		}
	}
	// aliases used by older clients
	switch needle {
	case "nvidia", "dedicated":
		return GpuModeDiscrete, nil
	case "hybrid":
		return GpuModeOptimus, nil
	}
	return GpuModeError, fmt.Errorf("unknown gpu mode: %s, must be one of: discrete, optimus, integrated, egpu", text)
}

func (m GpuMode) MarshalText() ([]byte, error) {
	return []byte(m.String()), nil
}

func (m *GpuMode) UnmarshalText(text []byte) error {
	mode, err := ParseGpuMode(string(text))
	if err != nil {
		return err
	}
	*m = mode
	return nil
}

// ToMuxAttr returns the value for the gpu_mux_mode attribute
func (m GpuMode) ToMuxAttr() byte {
	if m == GpuModeDiscrete {
		return '0'
	}
	return '1'
}

// ToDgpuAttr returns the value for the dgpu_disable attribute
func (m GpuMode) ToDgpuAttr() byte {
	if m == GpuModeIntegrated {
		return '1'
	}
	return '0'
}

// ToEgpuAttr returns the value for the egpu_enable attribute
func (m GpuMode) ToEgpuAttr() byte {
	if m == GpuModeEgpu {
		return '1'
	}
	return '0'
}

// FromMux decodes gpu_mux_mode. Anything but the discrete value reads as Optimus.
func FromMux(value byte) GpuMode {
	if value == '0' {
		return GpuModeDiscrete
	}
	return GpuModeOptimus
}

// FromDgpu decodes dgpu_disable. Anything but the disabled value reads as Optimus.
func FromDgpu(value byte) GpuMode {
	if value == '1' {
		return GpuModeIntegrated
	}
	return GpuModeOptimus
}

// FromEgpu decodes egpu_enable. Anything but the enabled value reads as Optimus.
// FromDgpu takes precedence if both are available and disagree.
func FromEgpu(value byte) GpuMode {
	if value == '1' {
		return GpuModeEgpu
	}
	return GpuModeOptimus
}

// ResolveGpuMode combines the decoded attribute values. A nil value means the
// attribute is not readable on this machine.
func ResolveGpuMode(mux *byte, dgpu *byte, egpu *byte) GpuMode {
	if mux == nil && dgpu == nil && egpu == nil {
		return GpuModeNotSupported
	}

	mode := GpuModeOptimus
	if mux != nil {
		mode = FromMux(*mux)
	}
	if dgpu != nil {
		dgpuMode := FromDgpu(*dgpu)
		if dgpuMode == GpuModeIntegrated {
			return GpuModeIntegrated
		}
	}
	if egpu != nil && mode != GpuModeDiscrete {
		if FromEgpu(*egpu) == GpuModeEgpu {
			return GpuModeEgpu
		}
	}
	return mode
}
