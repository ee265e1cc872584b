package platform

import (
	"fmt"
	"path/filepath"
	"regexp"

	"github.com/markusressel/asus2go/internal/attr"
	"github.com/markusressel/asus2go/internal/util"
)

const (
	fanCurveHwmonName = "asus_custom_fan_curve"
	// FanCurvePoints is the number of points of a hardware fan curve
	FanCurvePoints = 8
)

// FanCurveDevice is the hwmon device exposing the custom fan curves,
// with one pwmN_auto_pointM_{temp,pwm} pair per point and fan.
type FanCurveDevice struct {
	Path string
}

func NewFanCurveDevice(sysRoot string) (*FanCurveDevice, error) {
	for _, path := range attr.FindDevices(sysRoot, "hwmon", regexp.MustCompile(`^hwmon\d+$`)) {
		name, err := util.ReadTrimmedFile(filepath.Join(path, "name"))
		if err != nil {
			continue
		}
		if name == fanCurveHwmonName {
			return &FanCurveDevice{Path: path}, nil
		}
	}
	return nil, fmt.Errorf("%w: hwmon/%s", attr.ErrDeviceNotFound, fanCurveHwmonName)
}

// HasFan checks whether a curve for the given pwm index (1 = cpu, 2 = gpu, 3 = mid) exists
func (d *FanCurveDevice) HasFan(pwmIndex int) bool {
	return d.Enable(pwmIndex).Exists() && d.PointTemp(pwmIndex, 1).Exists()
}

func (d *FanCurveDevice) Enable(pwmIndex int) attr.Attribute {
	return attr.NewFileAttribute(d.Path, fmt.Sprintf("pwm%d_enable", pwmIndex))
}

// PointTemp returns the temperature attribute of the given point, points start at 1
func (d *FanCurveDevice) PointTemp(pwmIndex int, point int) attr.Attribute {
	return attr.NewFileAttribute(d.Path, fmt.Sprintf("pwm%d_auto_point%d_temp", pwmIndex, point))
}

// PointPwm returns the pwm attribute of the given point, points start at 1
func (d *FanCurveDevice) PointPwm(pwmIndex int, point int) attr.Attribute {
	return attr.NewFileAttribute(d.Path, fmt.Sprintf("pwm%d_auto_point%d_pwm", pwmIndex, point))
}
