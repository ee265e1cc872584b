package configuration

import (
	"testing"
	"time"

	"github.com/markusressel/asus2go/internal/profiles"
	"github.com/mitchellh/mapstructure"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decode(t *testing.T, input map[string]interface{}) (Configuration, error) {
	var result Configuration
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		DecodeHook:       decodeHooks(),
		WeaklyTypedInput: true,
		Result:           &result,
	})
	require.NoError(t, err)
	err = decoder.Decode(input)
	return result, err
}

func TestDefaultTrueBool_Get(t *testing.T) {
	tests := []struct {
		name     string
		input    DefaultTrueBool
		expected bool
	}{
		{
			name:     "Present and True returns True",
			input:    DefaultTrueBool{Optional: Optional[bool]{Value: true, Present: true}},
			expected: true,
		},
		{
			name:     "Present and False returns False",
			input:    DefaultTrueBool{Optional: Optional[bool]{Value: false, Present: true}},
			expected: false,
		},
		{
			name:     "Not Present returns True (Default)",
			input:    DefaultTrueBool{Optional: Optional[bool]{Value: false, Present: false}},
			expected: true,
		},
		{
			name: "Runtime Override wins over Missing",
			input: func() DefaultTrueBool {
				b := DefaultTrueBool{}
				b.SetOverride(false)
				return b
			}(),
			expected: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.input.Get())
		})
	}
}

func TestDecode_TypedValues(t *testing.T) {
	// GIVEN
	input := map[string]interface{}{
		"anime": map[string]interface{}{
			"tickrate": "40ms",
		},
		"notifications": map[string]interface{}{
			"enabled": false,
		},
		"profiles": map[string]interface{}{
			"enabled": []interface{}{"quiet", "performance"},
			"defaultcurves": map[string]interface{}{
				"quiet": map[string]interface{}{
					"cpu": "30c:10%,60c:40%,90c:100%",
				},
			},
		},
	}

	// WHEN
	config, err := decode(t, input)

	// THEN
	require.NoError(t, err)
	assert.Equal(t, 40*time.Millisecond, config.Anime.TickRate)
	assert.False(t, config.Notifications.Enabled.Get())
	assert.Equal(t, []profiles.Profile{profiles.ProfileQuiet, profiles.ProfilePerformance}, config.Profiles.Enabled)
	points := config.Profiles.DefaultCurves[profiles.ProfileQuiet][profiles.FanCPU]
	require.Len(t, points, 3)
	assert.Equal(t, uint8(60), points[1].Temp)

	options := config.Profiles.Options()
	assert.Equal(t, []profiles.CurvePoint(points), options.DefaultCurves[profiles.ProfileQuiet][profiles.FanCPU])
}

func TestDecode_MissingNotificationFlagDefaultsToTrue(t *testing.T) {
	// WHEN
	config, err := decode(t, map[string]interface{}{})

	// THEN
	require.NoError(t, err)
	assert.True(t, config.Notifications.Enabled.Get())
}

func TestDecode_InvalidProfile(t *testing.T) {
	// WHEN
	_, err := decode(t, map[string]interface{}{
		"profiles": map[string]interface{}{
			"enabled": []interface{}{"turbo"},
		},
	})

	// THEN
	assert.Error(t, err)
}

func TestDecode_InvalidCurve(t *testing.T) {
	// WHEN
	_, err := decode(t, map[string]interface{}{
		"profiles": map[string]interface{}{
			"defaultcurves": map[string]interface{}{
				"balanced": map[string]interface{}{"gpu": "hot:loud"},
			},
		},
	})

	// THEN
	assert.Error(t, err)
}
