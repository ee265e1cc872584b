package statistics

import (
	"github.com/markusressel/asus2go/internal/controller"
	"github.com/markusressel/asus2go/internal/platform"
	"github.com/markusressel/asus2go/internal/profiles"
	"github.com/prometheus/client_golang/prometheus"
)

const platformSubsystem = "platform"

// PlatformCollector exports the current hardware state. Controllers may be nil,
// values that cannot be read are left out.
type PlatformCollector struct {
	profile controller.ProfileController
	led     controller.KeyboardLedController
	gpu     controller.GpuController
	charge  controller.ChargeController

	activeProfile *prometheus.Desc
	ledBrightness *prometheus.Desc
	gpuMode       *prometheus.Desc
	chargeLimit   *prometheus.Desc
}

func NewPlatformCollector(
	profile controller.ProfileController,
	led controller.KeyboardLedController,
	gpu controller.GpuController,
	charge controller.ChargeController,
) *PlatformCollector {
	return &PlatformCollector{
		profile: profile,
		led:     led,
		gpu:     gpu,
		charge:  charge,
		activeProfile: prometheus.NewDesc(prometheus.BuildFQName(namespace, platformSubsystem, "profile_active"),
			"Whether the platform profile is the active one",
			[]string{"profile"}, nil,
		),
		ledBrightness: prometheus.NewDesc(prometheus.BuildFQName(namespace, platformSubsystem, "keyboard_brightness"),
			"Current keyboard backlight brightness level",
			[]string{}, nil,
		),
		gpuMode: prometheus.NewDesc(prometheus.BuildFQName(namespace, platformSubsystem, "gpu_mode"),
			"Whether the graphics mode is the current one",
			[]string{"mode"}, nil,
		),
		chargeLimit: prometheus.NewDesc(prometheus.BuildFQName(namespace, platformSubsystem, "charge_limit_percent"),
			"Current battery charge limit",
			[]string{}, nil,
		),
	}
}

func (collector *PlatformCollector) Describe(ch chan<- *prometheus.Desc) {
	ch <- collector.activeProfile
	ch <- collector.ledBrightness
	ch <- collector.gpuMode
	ch <- collector.chargeLimit
}

// Collect implements required collect function for all prometheus collectors
func (collector *PlatformCollector) Collect(ch chan<- prometheus.Metric) {
	if collector.profile != nil {
		if active, err := collector.profile.Profile(); err == nil {
			for _, profile := range profiles.AllProfiles {
				ch <- prometheus.MustNewConstMetric(collector.activeProfile, prometheus.GaugeValue, boolToFloat(profile == active), profile.String())
			}
		}
	}
	if collector.led != nil {
		if brightness, err := collector.led.Brightness(); err == nil {
			ch <- prometheus.MustNewConstMetric(collector.ledBrightness, prometheus.GaugeValue, float64(brightness))
		}
	}
	if collector.gpu != nil {
		if current, err := collector.gpu.Mode(); err == nil {
			for _, mode := range platform.AllGpuModes {
				ch <- prometheus.MustNewConstMetric(collector.gpuMode, prometheus.GaugeValue, boolToFloat(mode == current), mode.String())
			}
		}
	}
	if collector.charge != nil {
		if limit, err := collector.charge.ChargeLimit(); err == nil {
			ch <- prometheus.MustNewConstMetric(collector.chargeLimit, prometheus.GaugeValue, float64(limit))
		}
	}
}
