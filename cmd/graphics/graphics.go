package graphics

import (
	"fmt"
	"strings"

	"github.com/markusressel/asus2go/cmd/global"
	"github.com/markusressel/asus2go/internal/platform"
	"github.com/markusressel/asus2go/internal/ui"
	"github.com/spf13/cobra"
)

var force bool

var Command = &cobra.Command{
	Use:   "graphics",
	Short: "Get/Set the graphics mode",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		mode, err := global.Client().GpuMode()
		if err != nil {
			return err
		}
		ui.Printfln("%s", mode)
		return nil
	},
}

var setCmd = &cobra.Command{
	Use:   "set <mode>",
	Short: "Switch the graphics mode (" + modeNames() + ")",
	Long: `Switches the graphics mode. Changing the mode disrupts the running
display session and may require a reboot, use --force to skip the confirmation.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		mode, err := platform.ParseGpuMode(args[0])
		if err != nil {
			return err
		}
		c := global.Client()
		current, err := c.GpuMode()
		if err != nil {
			return err
		}
		if current == mode {
			ui.Info("Graphics mode is already %s", mode)
			return nil
		}
		if !force && !ui.Confirm(fmt.Sprintf("Switch graphics mode from %s to %s? Your session will be interrupted.", current, mode)) {
			ui.Warning("Aborted")
			return nil
		}
		result, err := c.SetGpuMode(mode)
		if err != nil {
			return err
		}
		if result != mode {
			ui.Warning("Hardware reports %s after switching to %s, a reboot may be required", result, mode)
			return nil
		}
		ui.Success("Graphics mode switched to %s, log out or reboot to apply", result)
		return nil
	},
}

var powerCmd = &cobra.Command{
	Use:   "power",
	Short: "Print the runtime power status of the discrete gpu",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		status, err := global.Client().GpuPower()
		if err != nil {
			return err
		}
		ui.Printfln("%s", status)
		return nil
	},
}

func modeNames() string {
	var names []string
	for _, mode := range platform.AllGpuModes {
		names = append(names, mode.String())
	}
	return strings.Join(names, ", ")
}

func init() {
	setCmd.Flags().BoolVarP(&force, "force", "f", false, "Do not ask for confirmation")

	Command.AddCommand(setCmd)
	Command.AddCommand(powerCmd)
}
