package cmd

import (
	"fmt"
	"sort"
	"strings"

	"github.com/spf13/cobra"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show question bank statistics",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		engine, err := buildEngine(cmd, cfg)
		if err != nil {
			return err
		}

		s := engine.Statistics()
		fmt.Printf("Questions: %d\n", s.Total)
		fmt.Printf("Text length: min %d, max %d, avg %.1f\n\n",
			s.Length.Min, s.Length.Max, s.Length.Avg)

		printCountTable("Topics", s.Topics)

		diffs := map[string]int{}
		for d, n := range s.Difficulties {
			diffs[string(d)] = n
		}
		printCountTable("Difficulties", diffs)

		types := map[string]int{}
		for t, n := range s.Types {
			types[string(t)] = n
		}
		printCountTable("Types", types)
		return nil
	},
}

func printCountTable(title string, counts map[string]int) {
	fmt.Println(title)
	fmt.Println(strings.Repeat("─", 32))
	keys := make([]string, 0, len(counts))
	for k := range counts {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		fmt.Printf("%-24s  %5d\n", k, counts[k])
	}
	fmt.Println()
}
