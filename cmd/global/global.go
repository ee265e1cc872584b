package global

import (
	"bytes"

	"github.com/markusressel/asus2go/internal/client"
	"github.com/markusressel/asus2go/internal/configuration"
	"github.com/markusressel/asus2go/internal/ui"
	"github.com/mgutz/ansi"
	"github.com/tomlazar/table"
)

var (
	CfgFile string
	NoColor bool
	NoStyle bool
	Verbose bool
)

// Client reads the configuration and returns a client for the api socket of the daemon
func Client() *client.Client {
	configuration.ReadConfigFile()
	return client.New(configuration.CurrentConfig.Api.Socket)
}

// PrintTable prints rows with the default table style
func PrintTable(headers []string, rows [][]string) {
	tab := table.Table{
		Headers: headers,
		Rows:    rows,
	}
	var buf bytes.Buffer
	err := tab.WriteTable(&buf, &table.Config{
		ShowIndex:       false,
		Color:           !NoColor,
		AlternateColors: true,
		TitleColorCode:  ansi.ColorCode("white+buf"),
		AltColorCodes: []string{
			ansi.ColorCode("white"),
			ansi.ColorCode("white:236"),
		},
	})
	if err != nil {
		ui.Error("Could not render table: %v", err)
		return
	}
	ui.Printfln(buf.String())
}

// ParseBool accepts on/off in addition to the usual true/false spellings
func ParseBool(text string) (bool, bool) {
	switch text {
	case "on", "true", "1", "yes", "enable", "enabled":
		return true, true
	case "off", "false", "0", "no", "disable", "disabled":
		return false, true
	}
	return false, false
}
