package bios

import (
	"github.com/markusressel/asus2go/cmd/global"
	"github.com/markusressel/asus2go/internal/client"
	"github.com/markusressel/asus2go/internal/ui"
	"github.com/spf13/cobra"
)

var Command = &cobra.Command{
	Use:              "bios",
	Short:            "Firmware setting related commands",
	TraverseChildren: true,
}

// settingCommand creates a command printing or setting a boolean firmware setting
func settingCommand(use string, short string, get func(*client.Client) (bool, error), set func(*client.Client, bool) error) *cobra.Command {
	return &cobra.Command{
		Use:   use + " [on|off]",
		Short: short,
		Args:  cobra.RangeArgs(0, 1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c := global.Client()
			if len(args) == 0 {
				value, err := get(c)
				if err != nil {
					return err
				}
				if value {
					ui.Printfln("on")
				} else {
					ui.Printfln("off")
				}
				return nil
			}
			value, ok := global.ParseBool(args[0])
			if !ok {
				return cmd.Usage()
			}
			return set(c, value)
		},
	}
}

func init() {
	Command.AddCommand(settingCommand("post-sound", "Get/Set the POST boot sound",
		(*client.Client).PostSound, (*client.Client).SetPostSound))
	Command.AddCommand(settingCommand("dedicated-gfx", "Get/Set the MUX switch to the discrete gpu, applied on reboot",
		(*client.Client).DedicatedGfx, (*client.Client).SetDedicatedGfx))
	Command.AddCommand(settingCommand("panel-od", "Get/Set the panel overdrive",
		(*client.Client).PanelOverdrive, (*client.Client).SetPanelOverdrive))
}
