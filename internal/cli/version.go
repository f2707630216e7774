package cli

import (
	"fmt"
	"runtime"
	"runtime/debug"

	"github.com/spf13/cobra"
)

// Set via ldflags at build time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		v := buildVersion()
		if short, _ := cmd.Flags().GetBool("short"); short {
			_, err := fmt.Fprintln(cmd.OutOrStdout(), v)
			return err
		}
		_, err := fmt.Fprintf(cmd.OutOrStdout(), "consentlens %s (commit %s, built %s, %s)\n",
			v, commit, date, runtime.Version())
		return err
	},
}

func init() {
	versionCmd.Flags().Bool("short", false, "print only the version")
}

// buildVersion prefers the ldflags version, then the module version from
// `go install`.
func buildVersion() string {
	if version != "dev" {
		return version
	}
	if info, ok := debug.ReadBuildInfo(); ok {
		if v := info.Main.Version; v != "" && v != "(devel)" {
			return v
		}
	}
	return version
}
