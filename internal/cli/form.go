package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/sprite-ai/consentlens/internal/form"
	"github.com/sprite-ai/consentlens/internal/tui"
)

var formCmd = &cobra.Command{
	Use:   "form",
	Short: "Open the interactive consent form",
	Long: `Open an interactive form: paste the agreement, tick the permissions the
app requests, and press ctrl+s to analyze.

Examples:
  consentlens form
  consentlens form --offline                 # analyze locally, no service
  consentlens form --print-result > out.txt  # keep the last result`,
	Args: cobra.NoArgs,
	RunE: runForm,
}

func init() {
	addFormFlags(formCmd)
}

func addFormFlags(cmd *cobra.Command) {
	cmd.Flags().String("app-name", "", "app name sent with the request")
	cmd.Flags().Bool("offline", false, "analyze with the built-in engine instead of the service")
	cmd.Flags().Bool("print-result", false, "print the last result after the form closes")
}

func runForm(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	logger, closeLog, err := newFileLogger(cfg.Logging)
	if err != nil {
		return err
	}
	defer closeLog()

	offline, _ := cmd.Flags().GetBool("offline")
	appName, _ := cmd.Flags().GetString("app-name")
	if appName == "" {
		appName = cfg.Service.AppName
	}

	logger.Info("starting form", "service", cfg.Service.URL, "offline", offline)

	state, err := tui.Run(cmd.Context(), tui.Options{
		Analyzer:    newAnalyzer(cfg, offline, logger),
		AppName:     appName,
		Permissions: cfg.Permissions,
		Timeout:     cfg.Service.Timeout,
		Logger:      logger,
	})
	if err != nil {
		return fmt.Errorf("running form: %w", err)
	}

	if printResult, _ := cmd.Flags().GetBool("print-result"); printResult && state.Status() == form.StatusCompleted {
		return writeText(cmd.OutOrStdout(), state.Result())
	}
	return nil
}
