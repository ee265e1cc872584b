package cmd

import (
	"fmt"
	"os"

	"github.com/markusressel/asus2go/cmd/anime"
	"github.com/markusressel/asus2go/cmd/bios"
	"github.com/markusressel/asus2go/cmd/config"
	"github.com/markusressel/asus2go/cmd/curve"
	"github.com/markusressel/asus2go/cmd/global"
	"github.com/markusressel/asus2go/cmd/graphics"
	"github.com/markusressel/asus2go/cmd/led"
	"github.com/markusressel/asus2go/cmd/profile"
	"github.com/markusressel/asus2go/internal/configuration"
	"github.com/markusressel/asus2go/internal/daemon"
	"github.com/markusressel/asus2go/internal/ui"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "asus2go",
	Short: "A daemon to control the platform features of ASUS laptops.",
	Long: `asus2go is a daemon that controls profiles, fan curves, keyboard lighting,
graphics modes, firmware toggles and the AniMe matrix of ASUS laptops.`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		setupUi()
	},
	// this is the default command to run when no subcommand is specified
	Run: func(cmd *cobra.Command, args []string) {
		printHeader()
		configuration.ReadConfigFile()
		daemon.RunDaemon()
	},
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&global.CfgFile, "config", "c", "", "config file (default is $HOME/asus2go.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&global.NoColor, "no-color", "", false, "Disable all terminal output coloration")
	rootCmd.PersistentFlags().BoolVarP(&global.NoStyle, "no-style", "", false, "Disable all terminal output styling")
	rootCmd.PersistentFlags().BoolVarP(&global.Verbose, "verbose", "v", false, "More verbose output")

	rootCmd.AddCommand(config.Command)

	rootCmd.AddCommand(profile.Command)
	rootCmd.AddCommand(curve.Command)
	rootCmd.AddCommand(led.Command)
	rootCmd.AddCommand(graphics.Command)
	rootCmd.AddCommand(anime.Command)
	rootCmd.AddCommand(bios.Command)
	rootCmd.AddCommand(bios.ChargeCommand)
}

func setupUi() {
	ui.SetDebugEnabled(global.Verbose)

	if global.NoColor {
		pterm.DisableColor()
	}
	if global.NoStyle {
		pterm.DisableStyling()
	}
}

// Print a large text with the LetterStyle from the standard theme.
func printHeader() {
	err := pterm.DefaultBigText.WithLetters(
		pterm.NewLettersFromStringWithStyle("asus", pterm.NewStyle(pterm.FgLightRed)),
		pterm.NewLettersFromStringWithStyle("2", pterm.NewStyle(pterm.FgWhite)),
		pterm.NewLettersFromStringWithStyle("go", pterm.NewStyle(pterm.FgLightRed)),
	).Render()
	if err != nil {
		fmt.Println("asus2go")
	}
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	cobra.OnInitialize(func() {
		configuration.InitConfig(global.CfgFile)
	})

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
