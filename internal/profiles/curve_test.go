package profiles

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseCurvePoints_FormatRoundTrip(t *testing.T) {
	// GIVEN
	text := "30c:1%,49c:2%,59c:3%"

	// WHEN
	points, err := ParseCurvePoints(text)
	require.NoError(t, err)
	result := FormatCurvePoints(points)

	// THEN
	assert.Equal(t, text, result)
	assert.Len(t, points, 3)
	assert.Equal(t, uint8(30), points[0].Temp)
}

func TestParseCurvePoints_FullCurveRoundTrip(t *testing.T) {
	// GIVEN
	text := "30c:1%,49c:2%,59c:3%,69c:4%,79c:31%,89c:49%,99c:56%,109c:58%"

	// WHEN
	points, err := ParseCurvePoints(text)
	require.NoError(t, err)

	// THEN
	assert.Equal(t, text, FormatCurvePoints(points))
}

func TestParseCurvePoints_RawValues(t *testing.T) {
	// WHEN
	points, err := ParseCurvePoints("30c:0,60c:128,90c:255")

	// THEN
	require.NoError(t, err)
	assert.Equal(t, []CurvePoint{{30, 0}, {60, 128}, {90, 255}}, points)
	assert.Equal(t, "30c:0%,60c:50%,90c:100%", FormatCurvePoints(points))
}

func TestParseCurvePoints_Invalid(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"empty", ""},
		{"non increasing temperature", "30c:1%,30c:2%"},
		{"decreasing temperature", "50c:1%,40c:2%"},
		{"missing separator", "30c1%"},
		{"percent out of range", "30c:101%"},
		{"raw out of range", "30c:256"},
		{"bad temperature", "hotc:10%"},
		{"too many points", "1c:1%,2c:1%,3c:1%,4c:1%,5c:1%,6c:1%,7c:1%,8c:1%,9c:1%"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// WHEN
			points, err := ParseCurvePoints(tt.input)

			// THEN
			assert.ErrorIs(t, err, ErrInvalidCurve)
			assert.Nil(t, points)
		})
	}
}

func TestCurveData_HardwarePoints(t *testing.T) {
	// GIVEN
	points, err := ParseCurvePoints("30c:10%,60c:50%")
	require.NoError(t, err)
	curve := CurveData{Fan: FanCPU, Points: points}

	// WHEN
	result := curve.HardwarePoints()

	// THEN
	assert.Len(t, result, MaxCurvePoints)
	assert.NoError(t, ValidatePoints(result))
	assert.Equal(t, points[1].Pwm, result[7].Pwm)
}

func TestDefaultCurves(t *testing.T) {
	for _, profile := range AllProfiles {
		curves := DefaultCurves(profile, []FanCurvePU{FanCPU, FanGPU})
		assert.Len(t, curves, 2)
		for _, curve := range curves {
			assert.NoError(t, ValidatePoints(curve.Points))
		}
	}
}
