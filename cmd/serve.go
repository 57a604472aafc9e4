package cmd

import (
	"log"
	"net/http"

	"github.com/spf13/cobra"

	"github.com/abhisek/papergen/internal/api"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the selection API over HTTP",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		engine, err := buildEngine(cmd, cfg)
		if err != nil {
			return err
		}

		addr, _ := cmd.Flags().GetString("addr")
		if addr == "" {
			addr = cfg.Server.Addr
		}

		srv := api.NewServer(engine, cfg.Layout)
		log.Printf("papergen listening on %s (%d questions loaded)", addr, engine.Bank().Len())
		return http.ListenAndServe(addr, srv.Router())
	},
}

func init() {
	serveCmd.Flags().String("addr", "", "Listen address (default from config, :8080)")
}
