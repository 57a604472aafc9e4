package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/papergen/internal/bank"
	"github.com/abhisek/papergen/internal/criteria"
	"github.com/abhisek/papergen/internal/export"
	"github.com/abhisek/papergen/internal/selection"
)

var generateCmd = &cobra.Command{
	Use:   "generate [criteria]",
	Short: "Select questions by criteria",
	Long: `Select questions from the bank by topic, difficulty, type, keywords
and length. Criteria may come from a compact "topic:math,count:10" argument,
a named config template, flags, or any mix (flags win over the argument,
which wins over the template).`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		engine, err := buildEngine(cmd, cfg)
		if err != nil {
			return err
		}

		raw := map[string]any{}
		if name, _ := cmd.Flags().GetString("template"); name != "" {
			tmpl, ok := cfg.Templates[name]
			if !ok {
				return fmt.Errorf("template %q not found in config", name)
			}
			for k, v := range tmpl {
				raw[k] = v
			}
		}
		if len(args) == 1 {
			for k, v := range criteria.StringMap(args[0]) {
				raw[k] = v
			}
		}
		collectCriteriaFlags(cmd, raw)

		res, err := engine.Select(raw)
		if err != nil {
			return err
		}
		printWarnings(res.Warnings)

		if out, _ := cmd.Flags().GetString("out"); out != "" {
			if err := export.Export(out, res, cfg.Layout); err != nil {
				return err
			}
			fmt.Printf("Wrote %d questions to %s\n", len(res.Questions), out)
			return nil
		}

		printQuestionTable(res.Questions)
		return nil
	},
}

// collectCriteriaFlags copies only the flags the user actually set, so
// template values survive unless overridden.
func collectCriteriaFlags(cmd *cobra.Command, raw map[string]any) {
	stringFlags := map[string]string{
		"topic":      "topic",
		"difficulty": "difficulty",
		"type":       "type",
		"keywords":   "keywords",
		"exclude":    "exclude_keywords",
		"contains":   "text_contains",
		"like":       "reference_text",
	}
	for flag, key := range stringFlags {
		if cmd.Flags().Changed(flag) {
			v, _ := cmd.Flags().GetString(flag)
			raw[key] = v
		}
	}
	intFlags := map[string]string{
		"count":      "count",
		"min-length": "min_length",
		"max-length": "max_length",
	}
	for flag, key := range intFlags {
		if cmd.Flags().Changed(flag) {
			v, _ := cmd.Flags().GetInt(flag)
			raw[key] = v
		}
	}
	if cmd.Flags().Changed("diversity") {
		v, _ := cmd.Flags().GetBool("diversity")
		raw["diversity"] = v
	}
}

func printQuestionTable(qs []bank.Question) {
	if len(qs) == 0 {
		fmt.Println("No questions selected.")
		return
	}
	fmt.Printf("%-10s  %-14s  %-8s  %-10s  %5s  %s\n",
		"ID", "Topic", "Level", "Type", "Marks", "Question")
	fmt.Println(strings.Repeat("─", 100))
	for _, q := range qs {
		fmt.Printf("%-10s  %-14s  %-8s  %-10s  %5d  %s\n",
			truncate(q.ID, 10),
			truncate(q.Topic, 14),
			q.Difficulty,
			truncate(string(q.Type), 10),
			q.Marks,
			truncate(q.Text, 48),
		)
	}
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max]
}

func printResultSummary(res selection.Result) {
	fmt.Printf("Target marks:   %d\n", res.TargetMarks)
	fmt.Printf("Achieved marks: %d\n", res.AchievedMarks)
	if len(res.UnitsCovered) > 0 {
		fmt.Printf("Units:          %s\n", strings.Join(res.UnitsCovered, ", "))
	}
	for value, count := range res.Drawn {
		fmt.Printf("Drawn:          %d x %d-mark\n", count, value)
	}
	if res.ChoiceOptions > 1 {
		fmt.Printf("Choices:        %d options per long-answer question\n", res.ChoiceOptions)
	}
}

func init() {
	generateCmd.Flags().String("topic", "", "Comma-separated topics to match")
	generateCmd.Flags().String("difficulty", "", "Comma-separated difficulties (easy, medium, hard, expert)")
	generateCmd.Flags().String("type", "", "Comma-separated question types")
	generateCmd.Flags().String("keywords", "", "Keywords the question must mention (any of)")
	generateCmd.Flags().String("exclude", "", "Keywords that disqualify a question")
	generateCmd.Flags().String("contains", "", "Regex or substring the question text must contain")
	generateCmd.Flags().String("like", "", "Reference text for semantic similarity scoring")
	generateCmd.Flags().Int("count", 0, "Number of questions to select (default 20)")
	generateCmd.Flags().Int("min-length", 0, "Minimum question text length")
	generateCmd.Flags().Int("max-length", 0, "Maximum question text length")
	generateCmd.Flags().Bool("diversity", false, "Spread selection across topics, difficulties and types")
	generateCmd.Flags().String("template", "", "Criteria template name from the config file")
	generateCmd.Flags().StringP("out", "o", "", "Write the selection to a file (csv, xlsx, pdf, docx)")
}
