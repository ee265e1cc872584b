package curve

import (
	"github.com/markusressel/asus2go/internal/profiles"
	"github.com/spf13/cobra"
)

var profileName string

var Command = &cobra.Command{
	Use:              "fan-curve",
	Short:            "Fan curve related commands",
	TraverseChildren: true,
}

func init() {
	Command.PersistentFlags().StringVarP(
		&profileName,
		"profile", "p",
		"",
		"Profile the fan curves belong to (balanced, performance, quiet)",
	)
	_ = Command.MarkPersistentFlagRequired("profile")
}

func selectedProfile() (profiles.Profile, error) {
	return profiles.ParseProfile(profileName)
}
