package bios

import (
	"strconv"

	"github.com/markusressel/asus2go/cmd/global"
	"github.com/markusressel/asus2go/internal/ui"
	"github.com/spf13/cobra"
)

var ChargeCommand = &cobra.Command{
	Use:   "charge [limit]",
	Short: "Get/Set the battery charge limit in percent ([20..100])",
	Args:  cobra.RangeArgs(0, 1),
	RunE: func(cmd *cobra.Command, args []string) error {
		c := global.Client()
		if len(args) == 0 {
			limit, err := c.ChargeLimit()
			if err != nil {
				return err
			}
			ui.Printfln("%d", limit)
			return nil
		}
		limit, err := strconv.ParseUint(args[0], 10, 8)
		if err != nil {
			return err
		}
		return c.SetChargeLimit(uint8(limit))
	},
}
