package led

import (
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/markusressel/asus2go/cmd/global"
	"github.com/markusressel/asus2go/internal/controller"
	"github.com/markusressel/asus2go/internal/ui"
	"github.com/spf13/cobra"
)

var Command = &cobra.Command{
	Use:              "led",
	Short:            "Keyboard backlight related commands",
	TraverseChildren: true,
}

var brightnessCmd = &cobra.Command{
	Use:   "brightness [off|low|med|high]",
	Short: "Get/Set the keyboard backlight brightness",
	Args:  cobra.RangeArgs(0, 1),
	RunE: func(cmd *cobra.Command, args []string) error {
		c := global.Client()
		if len(args) == 0 {
			level, err := c.LedBrightness()
			if err != nil {
				return err
			}
			ui.Printfln("%s", level)
			return nil
		}
		level, err := controller.ParseKbdBrightness(args[0])
		if err != nil {
			return err
		}
		return c.SetLedBrightness(level)
	},
}

var (
	modeColor string
	modeSpeed string
)

var modeCmd = &cobra.Command{
	Use:   "mode <name>",
	Short: "Set the keyboard RGB mode, e.g. mode static --color ff0000",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		mode, err := controller.ParseKbdRgbModeName(args[0])
		if err != nil {
			return err
		}
		red, green, blue, err := parseColor(modeColor)
		if err != nil {
			return err
		}
		speed, err := controller.ParseKbdRgbSpeed(modeSpeed)
		if err != nil {
			return err
		}
		return global.Client().SetRgbMode(controller.KbdRgbMode{
			Mode:  mode,
			Red:   red,
			Green: green,
			Blue:  blue,
			Speed: speed,
		})
	},
}

// parseColor parses a hex color like "ff8800" or "#ff8800"
func parseColor(text string) (uint8, uint8, uint8, error) {
	data, err := hex.DecodeString(strings.TrimPrefix(text, "#"))
	if err != nil || len(data) != 3 {
		return 0, 0, 0, fmt.Errorf("invalid color %q, expected 6 hex digits like ff8800", text)
	}
	return data[0], data[1], data[2], nil
}

var state controller.KbdRgbState

var stateCmd = &cobra.Command{
	Use:   "state",
	Short: "Select in which power states the keyboard backlight is lit",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return global.Client().SetRgbState(state)
	},
}

func init() {
	modeCmd.Flags().StringVar(&modeColor, "color", "ffffff", "Color as hex value")
	modeCmd.Flags().StringVar(&modeSpeed, "speed", "med", "Animation speed (slow, med, fast)")

	stateCmd.Flags().BoolVar(&state.Boot, "boot", true, "Lit while booting")
	stateCmd.Flags().BoolVar(&state.Awake, "awake", true, "Lit while awake")
	stateCmd.Flags().BoolVar(&state.Sleep, "sleep", true, "Lit while sleeping")
	stateCmd.Flags().BoolVar(&state.Keyboard, "keyboard", true, "Keyboard lighting enabled")

	Command.AddCommand(brightnessCmd)
	Command.AddCommand(modeCmd)
	Command.AddCommand(stateCmd)
}
