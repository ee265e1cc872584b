package anime

import (
	"strconv"

	"github.com/markusressel/asus2go/cmd/global"
	"github.com/markusressel/asus2go/internal/anime"
	"github.com/markusressel/asus2go/internal/ui"
	"github.com/spf13/cobra"
)

var Command = &cobra.Command{
	Use:              "anime",
	Short:            "AniMe matrix related commands",
	TraverseChildren: true,
}

// toggleCommand creates a command printing or setting a boolean switch of the matrix
func toggleCommand(use string, short string, get func() (bool, error), set func(bool) error) *cobra.Command {
	return &cobra.Command{
		Use:   use + " [on|off]",
		Short: short,
		Args:  cobra.RangeArgs(0, 1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				value, err := get()
				if err != nil {
					return err
				}
				ui.Printfln("%s", onOff(value))
				return nil
			}
			value, ok := global.ParseBool(args[0])
			if !ok {
				return cmd.Usage()
			}
			return set(value)
		},
	}
}

func onOff(value bool) string {
	if value {
		return "on"
	}
	return "off"
}

var triggerCmd = &cobra.Command{
	Use:       "trigger <system|boot|wake|shutdown>",
	Short:     "Start playing the animation list of an event",
	Args:      cobra.ExactArgs(1),
	ValidArgs: []string{"system", "boot", "wake", "shutdown"},
	RunE: func(cmd *cobra.Command, args []string) error {
		event, err := anime.ParseEvent(args[0])
		if err != nil {
			return err
		}
		return global.Client().AnimeTrigger(event)
	},
}

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Print what the matrix is currently playing",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		status, err := global.Client().AnimeStatus()
		if err != nil {
			return err
		}
		rows := [][]string{{"State", string(status.State)}}
		if status.State != anime.StateIdle {
			rows = append(rows,
				[]string{"Event", status.Event.String()},
				[]string{"Action", strconv.Itoa(status.Index)},
				[]string{"Elapsed", status.Elapsed.String()},
			)
		}
		global.PrintTable([]string{"", ""}, rows)
		return nil
	},
}

var onCmd = toggleCommand("on", "Get/Set whether the matrix shows animations while awake",
	func() (bool, error) { return global.Client().AnimeOn() },
	func(on bool) error { return global.Client().SetAnimeOn(on) },
)

var bootCmd = toggleCommand("boot", "Get/Set whether the boot and shutdown animations are played",
	func() (bool, error) { return global.Client().AnimeBootOn() },
	func(on bool) error { return global.Client().SetAnimeBootOn(on) },
)

func init() {
	Command.AddCommand(onCmd)
	Command.AddCommand(bootCmd)
	Command.AddCommand(triggerCmd)
	Command.AddCommand(statusCmd)
}
