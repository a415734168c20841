package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var verbose bool

// errRunIssues marks a run that completed but found problems: directive
// resolution failures, a --check difference, or no input patterns. It
// maps to exit status 1; anything else non-nil is fatal and maps to 2.
var errRunIssues = errors.New("run completed with issues")

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "embedsync",
	Short: "Keep embedded code blocks in sync with their source",
	Long: `embedsync scans documents for embed markers that reference named
declarations in source files and rewrites each marker body with the
declaration's current source text.

Markers look like:

  <!-- ts-embed: ../src/service.ts#UserService -->
  <!-- /ts-embed -->`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the root command and exits with 0 on success, 1 when at
// least one directive failed (or --check found a difference, or no
// input patterns were supplied), and 2 on fatal failures.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		if errors.Is(err, errRunIssues) {
			os.Exit(1)
		}
		fmt.Fprintln(os.Stderr, "embedsync:", err)
		os.Exit(2)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
	viper.BindPFlag("verbose", rootCmd.PersistentFlags().Lookup("verbose"))
}
