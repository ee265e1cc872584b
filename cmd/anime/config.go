package anime

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/markusressel/asus2go/cmd/global"
	"github.com/markusressel/asus2go/internal/anime"
	"github.com/markusressel/asus2go/internal/configstore"
	"github.com/markusressel/asus2go/internal/ui"
	"github.com/spf13/cobra"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Print the animation config of the daemon",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		config, err := global.Client().AnimeConfig()
		if err != nil {
			return err
		}
		data, err := json.MarshalIndent(config, "", "  ")
		if err != nil {
			return err
		}
		fmt.Println(string(data))
		return nil
	},
}

var applyCmd = &cobra.Command{
	Use:   "apply <file>",
	Short: "Replace the animation config with the content of a file",
	Long: `Reads an animation config (comments are allowed) and sends it to the daemon.
The daemon rejects the config if any of its actions cannot be loaded.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		data, err := os.ReadFile(args[0])
		if err != nil {
			return err
		}
		var config anime.Config
		if err := configstore.DecodeStrict(data, &config); err != nil {
			return fmt.Errorf("invalid animation config %s: %w", args[0], err)
		}
		// the daemon resolves files as root
		if err := config.ExpandPaths(); err != nil {
			return err
		}
		if err := global.Client().SetAnimeConfig(config); err != nil {
			return err
		}
		ui.Success("Animation config applied")
		return nil
	},
}

var directCmd = &cobra.Command{
	Use:   "direct <file>",
	Short: "Write a raw frame buffer file to the matrix",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		data, err := os.ReadFile(args[0])
		if err != nil {
			return err
		}
		return global.Client().AnimeWriteDirect(data)
	},
}

func init() {
	configCmd.AddCommand(applyCmd)
	Command.AddCommand(configCmd)
	Command.AddCommand(directCmd)
}
