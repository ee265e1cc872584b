package curve

import (
	"github.com/guptarohit/asciigraph"
	"github.com/markusressel/asus2go/cmd/global"
	"github.com/markusressel/asus2go/internal/profiles"
	"github.com/markusressel/asus2go/internal/ui"
	"github.com/markusressel/asus2go/internal/util"
	"github.com/spf13/cobra"
)

const (
	plotMinTemp = 20
	plotMaxTemp = 110
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "Print the fan curves of a profile to console",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		profile, err := selectedProfile()
		if err != nil {
			return err
		}
		curves, err := global.Client().FanCurves(profile)
		if err != nil {
			return err
		}

		for idx, curve := range curves {
			if idx > 0 {
				ui.Printfln("")
				ui.Printfln("")
			}

			global.PrintTable([]string{"Fan", "Enabled", "Points"}, [][]string{
				{curve.Fan.String(), yesNo(curve.Enabled), profiles.FormatCurvePoints(curve.Points)},
			})

			values := plotValues(curve.Points)
			caption := "PWM % / Temperature (20c - 110c)"
			graph := asciigraph.Plot(values, asciigraph.Height(15), asciigraph.Width(100), asciigraph.Caption(caption))
			ui.Printfln(graph)
		}
		return nil
	},
}

// plotValues interpolates the duty cycle in percent for every degree of the plotted range
func plotValues(points []profiles.CurvePoint) []float64 {
	steps := map[int]float64{}
	for _, point := range points {
		steps[int(point.Temp)] = float64(util.RawToPercent(int(point.Pwm)))
	}
	interpolated := util.InterpolateLinearly(steps, plotMinTemp, plotMaxTemp)

	values := make([]float64, 0, len(interpolated))
	for temp := plotMinTemp; temp <= plotMaxTemp; temp++ {
		values = append(values, interpolated[temp])
	}
	return values
}

func yesNo(value bool) string {
	if value {
		return "yes"
	}
	return "no"
}

func init() {
	Command.AddCommand(listCmd)
}
