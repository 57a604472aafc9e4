package cmd

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/papergen/internal/export"
	"github.com/abhisek/papergen/internal/marks"
	"github.com/abhisek/papergen/internal/tui"
)

var paperCmd = &cobra.Command{
	Use:   "paper",
	Short: "Generate a marks-based question paper",
	Long: `Draw questions from the chosen units until the total marks are met,
using the standard short/long distribution unless --distribution overrides
it. With --interactive the units and marks are picked in a terminal UI.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		engine, err := buildEngine(cmd, cfg)
		if err != nil {
			return err
		}

		units, _ := cmd.Flags().GetStringSlice("units")
		totalMarks, _ := cmd.Flags().GetInt("marks")

		if interactive, _ := cmd.Flags().GetBool("interactive"); interactive {
			sel, err := tui.Run(engine.AvailableUnits())
			if err != nil {
				return err
			}
			if !sel.Accepted {
				fmt.Println("Cancelled.")
				return nil
			}
			units = sel.Units
			totalMarks = sel.TotalMarks
		}

		if len(units) == 0 {
			units = engine.AvailableUnits()
		}
		if totalMarks <= 0 {
			return fmt.Errorf("total marks must be positive (use --marks or --interactive)")
		}

		dist, err := parseDistribution(cmd)
		if err != nil {
			return err
		}

		res, err := engine.SelectByUnitsAndMarks(units, totalMarks, dist)
		if err != nil {
			return err
		}
		printWarnings(res.Warnings)

		if out, _ := cmd.Flags().GetString("out"); out != "" {
			if err := export.Export(out, res, cfg.Layout); err != nil {
				return err
			}
			fmt.Printf("Wrote paper (%d questions, %d marks) to %s\n",
				len(res.Questions), res.AchievedMarks, out)
			return nil
		}

		printResultSummary(res)
		fmt.Println()
		printQuestionTable(res.Questions)
		return nil
	},
}

// parseDistribution reads --distribution entries like "2=10,16=4" into
// a mark-value to count map.
func parseDistribution(cmd *cobra.Command) (marks.Distribution, error) {
	raw, _ := cmd.Flags().GetString("distribution")
	if raw == "" {
		return nil, nil
	}
	dist := marks.Distribution{}
	for _, part := range strings.Split(raw, ",") {
		kv := strings.SplitN(strings.TrimSpace(part), "=", 2)
		if len(kv) != 2 {
			return nil, fmt.Errorf("invalid distribution entry %q (want value=count)", part)
		}
		value, err := strconv.Atoi(kv[0])
		if err != nil || value <= 0 {
			return nil, fmt.Errorf("invalid mark value %q", kv[0])
		}
		count, err := strconv.Atoi(kv[1])
		if err != nil || count < 0 {
			return nil, fmt.Errorf("invalid count %q", kv[1])
		}
		dist[value] = count
	}
	return dist, nil
}

func init() {
	paperCmd.Flags().StringSlice("units", nil, "Units to draw from (default: all)")
	paperCmd.Flags().Int("marks", 0, "Total marks for the paper")
	paperCmd.Flags().String("distribution", "", "Explicit draw counts, e.g. 2=10,16=4")
	paperCmd.Flags().BoolP("interactive", "i", false, "Pick units and marks in a terminal UI")
	paperCmd.Flags().StringP("out", "o", "", "Write the paper to a file (csv, xlsx, pdf, docx)")
}
