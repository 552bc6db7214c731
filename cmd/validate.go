package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/papapumpkin/bazi/internal/config"
	"github.com/papapumpkin/bazi/internal/ganzhi"
	"github.com/papapumpkin/bazi/internal/ui"
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Check the configuration and the built-in symbol tables",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		printer := ui.New()
		ok := true

		cfg, err := config.Load()
		if err != nil {
			printer.Error(err.Error())
			ok = false
		} else {
			printer.Info(fmt.Sprintf("✓ config ok (sect %d, horizon %d, zone %s)", cfg.Sect, cfg.HorizonAge, cfg.Timezone))
		}

		tablesErr := ganzhi.CheckTables()
		printer.TablesResult(tablesErr)
		if tablesErr != nil {
			ok = false
		}

		if !ok {
			return errors.New("validation failed")
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(validateCmd)
}
