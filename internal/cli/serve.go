package cli

import (
	"github.com/spf13/cobra"
	"github.com/sprite-ai/consentlens/internal/api"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the consent analysis service",
	Long: `Start an HTTP server that analyzes consent agreements with the built-in
engine. Set server.llm.model in the config (and its API key in the
environment) to summarize with an LLM; keyword matching is used otherwise.

Endpoints:
  GET  /health           Health check
  POST /analyze-consent  Analyze an agreement`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringP("addr", "a", "", "address to listen on (default from config, 127.0.0.1:8000)")
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	logger := newLogger(cfg.Logging, cmd.ErrOrStderr())

	addr, _ := cmd.Flags().GetString("addr")
	if addr == "" {
		addr = cfg.Server.Addr
	}

	srv := api.New(addr, newEngine(cfg, logger), logger)
	return srv.ListenAndServe(cmd.Context())
}
