package profiles

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/markusressel/asus2go/internal/util"
)

const MaxCurvePoints = 8

var ErrInvalidCurve = errors.New("invalid fan curve")

// CurvePoint is a single (temperature, pwm) point of a fan curve
type CurvePoint struct {
	// Temp in degree celsius
	Temp uint8 `json:"temp"`
	// Pwm in the raw [0..255] range
	Pwm uint8 `json:"pwm"`
}

// CurveData is the fan curve of a single fan
type CurveData struct {
	Fan     FanCurvePU   `json:"fan"`
	Points  []CurvePoint `json:"points"`
	Enabled bool         `json:"enabled"`
}

// ParseCurvePoints parses the compact text form "30c:1%,49c:2%,59c:3%".
// If the '%' suffix is omitted the value is taken as raw pwm in the range 0-255.
func ParseCurvePoints(text string) ([]CurvePoint, error) {
	text = strings.ToLower(strings.TrimSpace(text))
	if len(text) == 0 {
		return nil, fmt.Errorf("%w: no points given", ErrInvalidCurve)
	}

	var points []CurvePoint
	for i, part := range strings.Split(text, ",") {
		tempText, valueText, found := strings.Cut(strings.TrimSpace(part), ":")
		if !found {
			return nil, fmt.Errorf("%w: point %d (%q) must have the form <temp>c:<value>[%%]", ErrInvalidCurve, i+1, part)
		}

		temp, err := strconv.Atoi(strings.TrimSuffix(tempText, "c"))
		if err != nil || temp < 0 || temp > 255 {
			return nil, fmt.Errorf("%w: point %d has invalid temperature %q", ErrInvalidCurve, i+1, tempText)
		}

		var pwm int
		if strings.HasSuffix(valueText, "%") {
			percent, err := strconv.Atoi(strings.TrimSuffix(valueText, "%"))
			if err != nil || percent < 0 || percent > 100 {
				return nil, fmt.Errorf("%w: point %d has invalid percentage %q, must be in [0..100]", ErrInvalidCurve, i+1, valueText)
			}
			pwm = util.PercentToRaw(percent)
		} else {
			pwm, err = strconv.Atoi(valueText)
			if err != nil || pwm < 0 || pwm > 255 {
				return nil, fmt.Errorf("%w: point %d has invalid pwm value %q, must be in [0..255]", ErrInvalidCurve, i+1, valueText)
			}
		}

		points = append(points, CurvePoint{Temp: uint8(temp), Pwm: uint8(pwm)})
	}

	if err := ValidatePoints(points); err != nil {
		return nil, err
	}
	return points, nil
}

// FormatCurvePoints renders points in the compact text form using percentages
func FormatCurvePoints(points []CurvePoint) string {
	parts := make([]string, len(points))
	for i, point := range points {
		parts[i] = fmt.Sprintf("%dc:%d%%", point.Temp, util.RawToPercent(int(point.Pwm)))
	}
	return strings.Join(parts, ",")
}

// ValidatePoints checks that there are 1..MaxCurvePoints points with strictly increasing temperatures
func ValidatePoints(points []CurvePoint) error {
	if len(points) == 0 {
		return fmt.Errorf("%w: no points given", ErrInvalidCurve)
	}
	if len(points) > MaxCurvePoints {
		return fmt.Errorf("%w: %d points given, at most %d are supported", ErrInvalidCurve, len(points), MaxCurvePoints)
	}
	for i := 1; i < len(points); i++ {
		if points[i].Temp <= points[i-1].Temp {
			return fmt.Errorf("%w: temperature of point %d (%dc) must be greater than that of point %d (%dc)",
				ErrInvalidCurve, i+1, points[i].Temp, i, points[i-1].Temp)
		}
	}
	return nil
}

func (c CurveData) String() string {
	return fmt.Sprintf("%s: %s (enabled: %v)", c.Fan, FormatCurvePoints(c.Points), c.Enabled)
}

// HardwarePoints expands the curve to exactly MaxCurvePoints points as required by the firmware.
// Missing trailing points repeat the last point with an increasing temperature.
func (c CurveData) HardwarePoints() []CurvePoint {
	result := make([]CurvePoint, 0, MaxCurvePoints)
	result = append(result, c.Points...)
	for len(result) < MaxCurvePoints {
		last := result[len(result)-1]
		temp := last.Temp
		if temp < 255 {
			temp++
		}
		result = append(result, CurvePoint{Temp: temp, Pwm: last.Pwm})
	}
	return result
}

// DefaultCurves returns the factory curves for a profile
func DefaultCurves(profile Profile, fans []FanCurvePU) []CurveData {
	var text string
	switch profile {
	case ProfilePerformance:
		text = "30c:24%,40c:32%,50c:40%,60c:52%,70c:64%,80c:76%,90c:88%,100c:100%"
	case ProfileQuiet:
		text = "30c:0%,40c:4%,50c:8%,60c:16%,70c:28%,80c:40%,90c:56%,100c:72%"
	default:
		text = "30c:8%,40c:16%,50c:24%,60c:36%,70c:48%,80c:60%,90c:76%,100c:92%"
	}
	points, _ := ParseCurvePoints(text)

	result := make([]CurveData, 0, len(fans))
	for _, fan := range fans {
		result = append(result, CurveData{
			Fan:     fan,
			Points:  append([]CurvePoint{}, points...),
			Enabled: false,
		})
	}
	return result
}
