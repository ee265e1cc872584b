package util

import (
	"math"
	"sort"

	"golang.org/x/exp/constraints"
)

// Ratio calculates the ratio that target has in comparison to rangeMin and rangeMax
// Make sure that:
// rangeMin <= target <= rangeMax
// rangeMax - rangeMin != 0
func Ratio(target float64, rangeMin float64, rangeMax float64) float64 {
	return (target - rangeMin) / (rangeMax - rangeMin)
}

// Clamp limits value to [min, max]
func Clamp[T constraints.Ordered](value T, min T, max T) T {
	if value < min {
		return min
	}
	if value > max {
		return max
	}
	return value
}

// PercentToRaw maps a percentage [0..100] to the raw [0..255] range of a pwm value
func PercentToRaw(percent int) int {
	return int(math.Round(float64(percent) * 255 / 100))
}

// RawToPercent maps a raw pwm value [0..255] to a percentage [0..100]
func RawToPercent(raw int) int {
	return int(math.Round(float64(raw) * 100 / 255))
}

// InterpolateLinearly fills all integer x-values between start and stop
// with the linear interpolation of the given steps
func InterpolateLinearly(steps map[int]float64, start int, stop int) map[int]float64 {
	interpolated := map[int]float64{}
	for i := start; i <= stop; i++ {
		interpolated[i] = CalculateInterpolatedCurveValue(steps, float64(i))
	}
	return interpolated
}

// CalculateInterpolatedCurveValue creates a linear function from the given map of x-values -> y-values
// and returns the y-value for the given input
func CalculateInterpolatedCurveValue(steps map[int]float64, input float64) float64 {
	if len(steps) == 0 {
		return 0
	}
	xValues := make([]int, 0, len(steps))
	for x := range steps {
		xValues = append(xValues, x)
	}
	sort.Ints(xValues)

	if input <= float64(xValues[0]) {
		return steps[xValues[0]]
	}

	for i := 0; i < len(xValues)-1; i++ {
		currentX := xValues[i]
		nextX := xValues[i+1]
		if input >= float64(nextX) {
			continue
		}
		currentY := steps[currentX]
		nextY := steps[nextX]
		ratio := Ratio(input, float64(currentX), float64(nextX))
		return currentY + ratio*(nextY-currentY)
	}

	// input is above (or equal to) the largest given step
	return steps[xValues[len(xValues)-1]]
}
