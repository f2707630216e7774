package cli

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/sprite-ai/consentlens/internal/form"
	"github.com/sprite-ai/consentlens/internal/model"
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "Analyze an agreement and print a report (non-interactive)",
	Long: `Send an agreement and its permissions to the analysis service and print
the result. Useful for scripts and CI.

Exit codes:
  0 - low risk
  1 - medium risk, or the analysis failed
  2 - high risk

Examples:
  consentlens analyze -p policy.txt -P location -P contacts
  cat policy.txt | consentlens analyze -p - --format json
  consentlens analyze --text "We share data with partners." --offline`,
	Args: cobra.NoArgs,
	RunE: runAnalyze,
}

func init() {
	analyzeCmd.Flags().StringP("policy-file", "p", "", "file with the agreement text, or - for stdin")
	analyzeCmd.Flags().String("text", "", "agreement text (instead of --policy-file)")
	analyzeCmd.Flags().StringSliceP("permission", "P", nil, "requested permission id (repeatable)")
	analyzeCmd.Flags().String("app-name", "", "app name sent with the request")
	analyzeCmd.Flags().StringP("format", "f", "text", "output format: text, json, markdown")
	analyzeCmd.Flags().Bool("offline", false, "analyze with the built-in engine instead of the service")
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	logger := newLogger(cfg.Logging, cmd.ErrOrStderr())

	format, _ := cmd.Flags().GetString("format")
	render, ok := renderers[format]
	if !ok {
		return fmt.Errorf("unknown format %q (want text, json or markdown)", format)
	}

	policy, err := readPolicy(cmd)
	if err != nil {
		return err
	}

	s := form.New().SetPolicyText(policy)
	perms, _ := cmd.Flags().GetStringSlice("permission")
	for _, p := range perms {
		if p = strings.TrimSpace(p); p != "" && !s.HasPermission(p) {
			s = s.TogglePermission(p)
		}
	}

	appName, _ := cmd.Flags().GetString("app-name")
	if appName == "" {
		appName = cfg.Service.AppName
	}

	s, req, ok := s.BeginSubmit(appName)
	if !ok {
		return errors.New("no agreement text: use --policy-file or --text")
	}

	offline, _ := cmd.Flags().GetBool("offline")
	s = s.Complete(form.Execute(cmd.Context(), newAnalyzer(cfg, offline, logger), s.Seq(), req))
	if s.Status() == form.StatusFailed {
		return fmt.Errorf("analysis failed: %w", s.Err())
	}

	result := s.Result()
	if err := render(cmd.OutOrStdout(), result); err != nil {
		return err
	}

	switch result.Level() {
	case model.RiskHigh:
		return &exitError{code: 2}
	case model.RiskMedium:
		return &exitError{code: 1}
	}
	return nil
}

func readPolicy(cmd *cobra.Command) (string, error) {
	text, _ := cmd.Flags().GetString("text")
	path, _ := cmd.Flags().GetString("policy-file")

	switch {
	case text != "" && path != "":
		return "", errors.New("use either --text or --policy-file, not both")
	case text != "":
		return text, nil
	case path == "-":
		data, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return "", fmt.Errorf("reading stdin: %w", err)
		}
		return string(data), nil
	case path != "":
		data, err := os.ReadFile(path)
		if err != nil {
			return "", fmt.Errorf("reading policy: %w", err)
		}
		return string(data), nil
	}
	return "", nil
}
