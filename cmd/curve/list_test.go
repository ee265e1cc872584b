package curve

import (
	"testing"

	"github.com/markusressel/asus2go/internal/profiles"
	"github.com/stretchr/testify/assert"
)

func TestPlotValues(t *testing.T) {
	// GIVEN
	points := []profiles.CurvePoint{
		{Temp: 30, Pwm: 0},
		{Temp: 80, Pwm: 255},
	}

	// WHEN
	values := plotValues(points)

	// THEN
	assert.Len(t, values, plotMaxTemp-plotMinTemp+1)
	// below the first point
	assert.Equal(t, 0.0, values[0])
	// halfway between both points
	assert.InDelta(t, 50.0, values[55-plotMinTemp], 0.001)
	// above the last point
	assert.Equal(t, 100.0, values[len(values)-1])
}
