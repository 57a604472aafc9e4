package cmd

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/papergen/internal/store"
)

var importCmd = &cobra.Command{
	Use:   "import <file>",
	Short: "Parse a bank file and save it to the store",
	Long: `Parse a question bank file, backfill missing labels through the
configured classifier, and save the result as a named bank in the SQLite
store for later use with --from-store.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}

		// Route the file through the engine so labels are classified
		// and defaults applied before the bank is persisted.
		if err := cmd.Flags().Set("bank", args[0]); err != nil {
			return err
		}
		engine, err := buildEngine(cmd, cfg)
		if err != nil {
			return err
		}

		name, _ := cmd.Flags().GetString("name")
		if name == "" {
			base := filepath.Base(args[0])
			name = strings.TrimSuffix(base, filepath.Ext(base))
		}

		dbPath, err := resolveDBPath(cmd, cfg)
		if err != nil {
			return fmt.Errorf("resolve store path: %w", err)
		}
		s, err := store.Open(dbPath)
		if err != nil {
			return fmt.Errorf("open store: %w", err)
		}
		defer s.Close()

		qs := engine.Bank().Questions()
		if err := s.SaveBank(cmd.Context(), name, qs); err != nil {
			return err
		}
		fmt.Printf("Imported %d questions as bank %q\n", len(qs), name)
		return nil
	},
}

var banksCmd = &cobra.Command{
	Use:   "banks",
	Short: "List banks saved in the store",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		dbPath, err := resolveDBPath(cmd, cfg)
		if err != nil {
			return fmt.Errorf("resolve store path: %w", err)
		}
		s, err := store.Open(dbPath)
		if err != nil {
			return fmt.Errorf("open store: %w", err)
		}
		defer s.Close()

		infos, err := s.ListBanks(cmd.Context())
		if err != nil {
			return err
		}
		if len(infos) == 0 {
			fmt.Println("No banks stored.")
			return nil
		}
		fmt.Printf("%-24s  %9s  %s\n", "Name", "Questions", "Updated")
		fmt.Println(strings.Repeat("─", 56))
		for _, info := range infos {
			fmt.Printf("%-24s  %9d  %s\n",
				info.Name, info.Questions, info.UpdatedAt.Local().Format("2006-01-02 15:04:05"))
		}
		return nil
	},
}

func init() {
	importCmd.Flags().String("name", "", "Bank name in the store (default: file name without extension)")
}
