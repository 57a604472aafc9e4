package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var unitsCmd = &cobra.Command{
	Use:   "units",
	Short: "List the units available in the bank",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		engine, err := buildEngine(cmd, cfg)
		if err != nil {
			return err
		}

		units := engine.AvailableUnits()
		if len(units) == 0 {
			fmt.Println("No units found.")
			return nil
		}
		for _, u := range units {
			fmt.Println(u)
		}
		return nil
	},
}
