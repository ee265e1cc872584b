package curve

import (
	"github.com/markusressel/asus2go/cmd/global"
	"github.com/markusressel/asus2go/internal/profiles"
	"github.com/spf13/cobra"
)

var setCmd = &cobra.Command{
	Use:   "set <fan> <points>",
	Short: "Set the fan curve of a fan, e.g. set cpu 30c:1%,49c:2%,59c:3%,69c:60%",
	Long: `Sets and enables the fan curve of a fan for the selected profile.
Points are given as <temp>c:<value>, the value is a percentage when suffixed with '%'
and a raw pwm value in [0..255] otherwise.`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		profile, err := selectedProfile()
		if err != nil {
			return err
		}
		fan, err := profiles.ParseFanCurvePU(args[0])
		if err != nil {
			return err
		}
		points, err := profiles.ParseCurvePoints(args[1])
		if err != nil {
			return err
		}
		return global.Client().SetFanCurve(profile, profiles.CurveData{
			Fan:     fan,
			Points:  points,
			Enabled: true,
		})
	},
}

var enableCmd = &cobra.Command{
	Use:   "enable <on|off>",
	Short: "Enable or disable the custom fan curves of the selected profile",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		profile, err := selectedProfile()
		if err != nil {
			return err
		}
		enabled, ok := global.ParseBool(args[0])
		if !ok {
			return cmd.Usage()
		}
		return global.Client().SetFanCurvesEnabled(profile, enabled)
	},
}

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Reset the fan curves of the selected profile to their defaults",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		profile, err := selectedProfile()
		if err != nil {
			return err
		}
		return global.Client().ResetFanCurves(profile)
	},
}

func init() {
	Command.AddCommand(setCmd)
	Command.AddCommand(enableCmd)
	Command.AddCommand(resetCmd)
}
