package cmd

import (
	"fmt"
	"strings"

	"github.com/markusressel/asus2go/cmd/global"
	"github.com/markusressel/asus2go/internal/capability"
	"github.com/markusressel/asus2go/internal/configuration"
	"github.com/markusressel/asus2go/internal/ui"
	"github.com/spf13/cobra"
)

var detectCmd = &cobra.Command{
	Use:   "detect",
	Short: "Detect devices",
	Long:  `Probes the platform devices and prints the supported features as a list`,
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		configuration.ReadConfigFile()
		config := configuration.CurrentConfig

		hw := capability.Discover(capability.Root{Sys: config.SysfsRoot, Dev: config.DevRoot})
		supported := hw.Supported()

		ui.Printfln("> Devices")
		global.PrintTable([]string{"Device", "Path"}, deviceRows(hw))

		ui.Printfln("> Features")
		global.PrintTable([]string{"Feature", "Supported"}, featureRows(supported))
	},
}

func deviceRows(hw capability.Hardware) [][]string {
	path := func(found bool, path string) string {
		if !found {
			return "N/A"
		}
		return path
	}
	rows := [][]string{
		{"Platform", path(hw.Platform != nil, platformPath(hw))},
		{"Keyboard LED", path(hw.KeyboardLed != nil, keyboardPath(hw))},
		{"Battery", path(hw.Battery != nil, batteryPath(hw))},
		{"dGPU", path(hw.DgpuPower != nil, dgpuPath(hw))},
	}
	anime := "N/A"
	if hw.Anime != nil {
		anime = fmt.Sprintf("%s (%s)", hw.Anime.Node.Name(), hw.Anime.Type())
	}
	return append(rows, []string{"AniMe matrix", anime})
}

func platformPath(hw capability.Hardware) string {
	if hw.Platform == nil {
		return ""
	}
	return hw.Platform.Path
}

func keyboardPath(hw capability.Hardware) string {
	if hw.KeyboardLed == nil {
		return ""
	}
	return hw.KeyboardLed.Path
}

func batteryPath(hw capability.Hardware) string {
	if hw.Battery == nil {
		return ""
	}
	return hw.Battery.Path
}

func dgpuPath(hw capability.Hardware) string {
	if hw.DgpuPower == nil {
		return ""
	}
	return hw.DgpuPower.Path
}

func featureRows(s capability.SupportedFunctions) [][]string {
	fans := make([]string, 0, len(s.PlatformProfile.Fans))
	for _, fan := range s.PlatformProfile.Fans {
		fans = append(fans, fan.String())
	}
	return [][]string{
		{"Platform profile", yesNo(s.PlatformProfile.ProfileSet)},
		{"Fan curves", fmt.Sprintf("%s %s", yesNo(s.PlatformProfile.FanCurveSet), strings.Join(fans, ","))},
		{"Keyboard brightness", yesNo(s.KeyboardLed.BrightnessSet)},
		{"Keyboard RGB mode", yesNo(s.KeyboardLed.RgbMode)},
		{"Keyboard RGB state", yesNo(s.KeyboardLed.RgbState)},
		{"Charge limit", yesNo(s.Charge.ChargeLevelSet)},
		{"POST sound", yesNo(s.Bios.PostSound)},
		{"Dedicated graphics", yesNo(s.Bios.DedicatedGfx)},
		{"Panel overdrive", yesNo(s.Bios.PanelOd)},
		{"GPU mux", yesNo(s.Bios.GpuMux)},
		{"dGPU disable", yesNo(s.Bios.DgpuDisable)},
		{"eGPU enable", yesNo(s.Bios.EgpuEnable)},
		{"dGPU power status", yesNo(s.Bios.GpuPower)},
		{"AniMe matrix", yesNo(s.Anime.Present)},
	}
}

func yesNo(value bool) string {
	if value {
		return "yes"
	}
	return "no"
}

func init() {
	rootCmd.AddCommand(detectCmd)
}
