package profile

import (
	"github.com/markusressel/asus2go/cmd/global"
	"github.com/markusressel/asus2go/internal/profiles"
	"github.com/markusressel/asus2go/internal/ui"
	"github.com/spf13/cobra"
)

var Command = &cobra.Command{
	Use:   "profile",
	Short: "Get/Set the active platform profile",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		profile, err := global.Client().Profile()
		if err != nil {
			return err
		}
		ui.Printfln("%s", profile)
		return nil
	},
}

var setCmd = &cobra.Command{
	Use:       "set <profile>",
	Short:     "Activate the given profile",
	Args:      cobra.ExactArgs(1),
	ValidArgs: profileNames(),
	RunE: func(cmd *cobra.Command, args []string) error {
		profile, err := profiles.ParseProfile(args[0])
		if err != nil {
			return err
		}
		return global.Client().SetProfile(profile)
	},
}

var nextCmd = &cobra.Command{
	Use:   "next",
	Short: "Switch to the next enabled profile",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		profile, err := global.Client().NextProfile()
		if err != nil {
			return err
		}
		ui.Printfln("%s", profile)
		return nil
	},
}

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List the profiles supported by this machine",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		c := global.Client()
		active, err := c.Profile()
		if err != nil {
			return err
		}
		available, err := c.Profiles()
		if err != nil {
			return err
		}
		var rows [][]string
		for _, profile := range available {
			marker := ""
			if profile == active {
				marker = "*"
			}
			rows = append(rows, []string{profile.String(), marker})
		}
		global.PrintTable([]string{"Profile", "Active"}, rows)
		return nil
	},
}

func profileNames() []string {
	var names []string
	for _, profile := range profiles.AllProfiles {
		names = append(names, profile.String())
	}
	return names
}

func init() {
	Command.AddCommand(setCmd)
	Command.AddCommand(nextCmd)
	Command.AddCommand(listCmd)
}
