// Package cli wires the consentlens commands.
package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/sprite-ai/consentlens/internal/config"
)

const defaultConfigPath = "consentlens.yaml"

var rootCmd = &cobra.Command{
	Use:   "consentlens",
	Short: "See what a consent agreement actually asks of you",
	Long: `consentlens sends a privacy policy or consent agreement, together with
the permissions an app requests, to a consent analysis service and shows a
plain-English summary with a risk assessment.

Run without a subcommand to open the interactive form.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runForm,
}

func init() {
	rootCmd.PersistentFlags().StringP("config", "c", "", "path to config file (default ./"+defaultConfigPath+")")
	rootCmd.PersistentFlags().String("log-level", "", "log level: debug, info, warn, error")
	rootCmd.PersistentFlags().String("service-url", "", "analysis service base URL")
	addFormFlags(rootCmd)

	rootCmd.AddCommand(formCmd, analyzeCmd, serveCmd, versionCmd)
}

// exitError carries a process exit code without an error message.
type exitError struct {
	code int
}

func (e *exitError) Error() string {
	return fmt.Sprintf("exit status %d", e.code)
}

// Execute runs the root command.
func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	err := rootCmd.ExecuteContext(ctx)
	var ee *exitError
	if err != nil && !errors.As(err, &ee) {
		fmt.Fprintln(os.Stderr, "Error:", err)
	}
	return err
}

// ExitCode maps an error returned by Execute to a process exit code.
func ExitCode(err error) int {
	if err == nil {
		return 0
	}
	var ee *exitError
	if errors.As(err, &ee) {
		return ee.code
	}
	return 1
}

// loadConfig reads the config file named by --config and applies flag
// overrides.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	path, _ := cmd.Flags().GetString("config")
	if path == "" {
		path = defaultConfigPath
	}

	cfg, err := config.Load(path)
	if err != nil {
		return nil, fmt.Errorf("loading config %s: %w", path, err)
	}

	if v, _ := cmd.Flags().GetString("service-url"); v != "" {
		cfg.Service.URL = strings.TrimSpace(v)
	}
	if v, _ := cmd.Flags().GetString("log-level"); v != "" {
		cfg.Logging.Level = v
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}
