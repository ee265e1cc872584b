package platform

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFromMux_DiscreteRoundTrip(t *testing.T) {
	assert.Equal(t, GpuModeDiscrete, FromMux(GpuModeDiscrete.ToMuxAttr()))
}

func TestFromMux_CollapsesToOptimus(t *testing.T) {
	discrete := GpuModeDiscrete.ToMuxAttr()
	for x := 0; x <= 255; x++ {
		if byte(x) == discrete {
			continue
		}
		assert.Equal(t, GpuModeOptimus, FromMux(byte(x)), "value %d", x)
	}

	// the decode is not an inverse for the non-discrete modes
	for _, mode := range []GpuMode{GpuModeIntegrated, GpuModeEgpu, GpuModeError, GpuModeNotSupported} {
		assert.Equal(t, GpuModeOptimus, FromMux(mode.ToMuxAttr()))
	}
}

func TestFromDgpuAndEgpu(t *testing.T) {
	assert.Equal(t, GpuModeIntegrated, FromDgpu(GpuModeIntegrated.ToDgpuAttr()))
	assert.Equal(t, GpuModeOptimus, FromDgpu(GpuModeDiscrete.ToDgpuAttr()))
	assert.Equal(t, GpuModeEgpu, FromEgpu(GpuModeEgpu.ToEgpuAttr()))
	assert.Equal(t, GpuModeOptimus, FromEgpu(GpuModeIntegrated.ToEgpuAttr()))
	assert.Equal(t, GpuModeOptimus, FromEgpu('7'))
}

func TestResolveGpuMode(t *testing.T) {
	b := func(v byte) *byte { return &v }

	tests := []struct {
		name     string
		mux      *byte
		dgpu     *byte
		egpu     *byte
		expected GpuMode
	}{
		{"nothing readable", nil, nil, nil, GpuModeNotSupported},
		{"mux discrete", b('0'), b('0'), nil, GpuModeDiscrete},
		{"mux optimus", b('1'), b('0'), b('0'), GpuModeOptimus},
		{"dgpu disabled wins over mux", b('0'), b('1'), nil, GpuModeIntegrated},
		{"dgpu disabled without mux", nil, b('1'), nil, GpuModeIntegrated},
		{"egpu enabled", b('1'), b('0'), b('1'), GpuModeEgpu},
		{"dgpu disabled wins over egpu", nil, b('1'), b('1'), GpuModeIntegrated},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ResolveGpuMode(tt.mux, tt.dgpu, tt.egpu))
		})
	}
}

func TestParseGpuMode(t *testing.T) {
	mode, err := ParseGpuMode("Integrated")
	assert.NoError(t, err)
	assert.Equal(t, GpuModeIntegrated, mode)

	mode, err = ParseGpuMode("hybrid")
	assert.NoError(t, err)
	assert.Equal(t, GpuModeOptimus, mode)

	_, err = ParseGpuMode("vfio")
	assert.Error(t, err)
}
