package led

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseColor(t *testing.T) {
	// WHEN
	red, green, blue, err := parseColor("#ff8001")

	// THEN
	assert.NoError(t, err)
	assert.Equal(t, uint8(0xff), red)
	assert.Equal(t, uint8(0x80), green)
	assert.Equal(t, uint8(0x01), blue)
}

func TestParseColor_Invalid(t *testing.T) {
	for _, text := range []string{"", "fff", "gg0000", "ff000000"} {
		_, _, _, err := parseColor(text)
		assert.Error(t, err, text)
	}
}
