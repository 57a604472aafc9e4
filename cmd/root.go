package cmd

import (
	"context"
	"fmt"
	"math/rand"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/abhisek/papergen/internal/bank"
	"github.com/abhisek/papergen/internal/classify"
	"github.com/abhisek/papergen/internal/config"
	"github.com/abhisek/papergen/internal/parse"
	"github.com/abhisek/papergen/internal/selection"
	"github.com/abhisek/papergen/internal/store"
)

var rootCmd = &cobra.Command{
	Use:   "papergen",
	Short: "Question paper generator",
	Long:  "Papergen selects questions from a bank by criteria or marks distribution and renders exam papers.",
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().String("config", "", "Path to papergen.yaml config file")
	rootCmd.PersistentFlags().String("bank", "", "Question bank file (csv, json, xlsx, txt, pdf, docx)")
	rootCmd.PersistentFlags().String("from-store", "", "Load a saved bank by name instead of a file")
	rootCmd.PersistentFlags().String("db", "", "Path to SQLite bank store (overrides PAPERGEN_DB env var)")
	rootCmd.PersistentFlags().Int64("seed", 0, "Random seed for reproducible draws (0 = time-based)")

	rootCmd.AddCommand(generateCmd)
	rootCmd.AddCommand(paperCmd)
	rootCmd.AddCommand(unitsCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(importCmd)
	rootCmd.AddCommand(banksCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(versionCmd)
}

// loadConfig reads --config when given, otherwise ./papergen.yaml when
// present, otherwise the built-in defaults.
func loadConfig(cmd *cobra.Command) (config.Config, error) {
	if path, _ := cmd.Flags().GetString("config"); path != "" {
		return config.Load(path)
	}
	if _, err := os.Stat("papergen.yaml"); err == nil {
		return config.Load("papergen.yaml")
	}
	return config.Default(), nil
}

// resolveDBPath returns the store path using --db flag (highest
// priority), then the config file, then PAPERGEN_DB / the XDG default.
func resolveDBPath(cmd *cobra.Command, cfg config.Config) (string, error) {
	if p, _ := cmd.Flags().GetString("db"); p != "" {
		return p, store.EnsureDir(p)
	}
	if cfg.StorePath != "" {
		return cfg.StorePath, store.EnsureDir(cfg.StorePath)
	}
	return store.DefaultDBPath()
}

// loadQuestions resolves the bank source: --bank file, --from-store
// name, or the config's bank file.
func loadQuestions(cmd *cobra.Command, cfg config.Config) ([]bank.Question, error) {
	if path, _ := cmd.Flags().GetString("bank"); path != "" {
		return parse.Parse(path)
	}
	if name, _ := cmd.Flags().GetString("from-store"); name != "" {
		dbPath, err := resolveDBPath(cmd, cfg)
		if err != nil {
			return nil, fmt.Errorf("resolve store path: %w", err)
		}
		s, err := store.Open(dbPath)
		if err != nil {
			return nil, fmt.Errorf("open store: %w", err)
		}
		defer s.Close()
		return s.LoadBank(cmd.Context(), name)
	}
	if cfg.Bank != "" {
		return parse.Parse(cfg.Bank)
	}
	return nil, fmt.Errorf("no question bank: pass --bank, --from-store, or set bank in the config file")
}

// newClassifier builds the label backfill per the config. The keyword
// classifier is trained on whatever labels the parsed bank carries. An
// unconfigured LLM provider degrades to the keyword classifier with a
// note on stderr.
func newClassifier(cfg config.Config, qs []bank.Question) classify.Classifier {
	keyword := func() classify.Classifier {
		kw := classify.NewKeyword()
		kw.Train(qs)
		return kw
	}

	switch cfg.Classifier.Provider {
	case "llm":
		llm, err := classify.NewLLM(classify.LLMConfig{
			APIKey:  os.Getenv(cfg.Classifier.APIKeyEnv),
			BaseURL: cfg.Classifier.BaseURL,
			Model:   cfg.Classifier.Model,
		})
		if err != nil {
			fmt.Fprintln(os.Stderr, "LLM classifier not configured:", err)
			fmt.Fprintln(os.Stderr, "Falling back to the keyword classifier.")
			return keyword()
		}
		return classify.WithRetry(llm, classify.DefaultRetryConfig())
	case "none":
		return nil
	default:
		return keyword()
	}
}

// buildEngine loads the bank source into a fresh engine.
func buildEngine(cmd *cobra.Command, cfg config.Config) (*selection.Engine, error) {
	qs, err := loadQuestions(cmd, cfg)
	if err != nil {
		return nil, err
	}

	var rng *rand.Rand
	if seed, _ := cmd.Flags().GetInt64("seed"); seed != 0 {
		rng = rand.New(rand.NewSource(seed))
	} else {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}

	engine := selection.NewEngine(bank.New(), newClassifier(cfg, qs), rng)
	n, err := engine.Load(context.Background(), qs)
	if err != nil {
		return nil, fmt.Errorf("load bank: %w", err)
	}
	if n == 0 {
		return nil, fmt.Errorf("bank is empty after loading")
	}
	return engine, nil
}

// printWarnings writes recoverable notes to stderr so stdout stays
// parseable.
func printWarnings(warnings []string) {
	for _, w := range warnings {
		fmt.Fprintln(os.Stderr, "warning:", w)
	}
}
