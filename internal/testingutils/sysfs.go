package testingutils

import (
	"os"
	"path/filepath"
	"testing"
)

// CreateFiles creates the given files (relative path -> content) below root
func CreateFiles(t *testing.T, root string, files map[string]string) {
	t.Helper()
	for path, content := range files {
		fullPath := filepath.Join(root, path)
		if err := os.MkdirAll(filepath.Dir(fullPath), 0755); err != nil {
			t.Fatalf("mkdir %s: %v", fullPath, err)
		}
		if err := os.WriteFile(fullPath, []byte(content), 0644); err != nil {
			t.Fatalf("write %s: %v", fullPath, err)
		}
	}
}

// CreateAsusSysfs builds a synthetic /sys and /dev tree of a fully featured machine
// and returns (sysRoot, devRoot)
func CreateAsusSysfs(t *testing.T) (string, string) {
	t.Helper()
	root := t.TempDir()
	sysRoot := filepath.Join(root, "sys")
	devRoot := filepath.Join(root, "dev")

	CreateFiles(t, sysRoot, map[string]string{
		"bus/platform/devices/asus-nb-wmi/dgpu_disable":            "0\n",
		"bus/platform/devices/asus-nb-wmi/egpu_enable":             "0\n",
		"bus/platform/devices/asus-nb-wmi/panel_od":                "1\n",
		"bus/platform/devices/asus-nb-wmi/gpu_mux_mode":            "1\n",
		"bus/platform/devices/asus-nb-wmi/throttle_thermal_policy": "0\n",
		"firmware/acpi/platform_profile":                           "balanced\n",
		"class/leds/asus::kbd_backlight/brightness":                "2\n",
		"class/leds/asus::kbd_backlight/kbd_rgb_mode":              "",
		"class/leds/asus::kbd_backlight/kbd_rgb_state":             "",
		"class/hwmon/hwmon3/name":                                  "asus_custom_fan_curve\n",
		"class/power_supply/BAT0/charge_control_end_threshold":     "80\n",
		"class/power_supply/AC0/online":                            "1\n",
		"bus/pci/devices/0000:01:00.0/class":                       "0x030200\n",
		"bus/pci/devices/0000:01:00.0/vendor":                      "0x10de\n",
		"bus/pci/devices/0000:01:00.0/power/runtime_status":        "suspended\n",
		"bus/pci/devices/0000:00:02.0/class":                       "0x030000\n",
		"bus/pci/devices/0000:00:02.0/vendor":                      "0x8086\n",
		"firmware/efi/efivars/AsusPostLogoSound-607005d5-3f75-4b2d-9cf4-c3a8e4e8b0d2": "\x07\x00\x00\x00\x01",
		"class/hidraw/hidraw2/device/uevent":                       "DRIVER=hid-asus\nHID_ID=0003:00000B05:00001866\n",
		"class/dmi/id/board_name":                                  "GA401QM\n",
	})

	files := map[string]string{}
	for pwm := 1; pwm <= 2; pwm++ {
		files[filepath.Join("class/hwmon/hwmon3", pwmName(pwm, "enable"))] = "0\n"
		for point := 1; point <= 8; point++ {
			files[filepath.Join("class/hwmon/hwmon3", pointName(pwm, point, "temp"))] = "0\n"
			files[filepath.Join("class/hwmon/hwmon3", pointName(pwm, point, "pwm"))] = "0\n"
		}
	}
	CreateFiles(t, sysRoot, files)
	CreateFiles(t, devRoot, map[string]string{"hidraw2": ""})

	return sysRoot, devRoot
}

func pwmName(pwm int, suffix string) string {
	return "pwm" + string(rune('0'+pwm)) + "_" + suffix
}

func pointName(pwm int, point int, suffix string) string {
	return "pwm" + string(rune('0'+pwm)) + "_auto_point" + string(rune('0'+point)) + "_" + suffix
}
