// Package cli wires the extraction pipeline into the presupuestos
// command tree.
package cli

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/obras-dev/presupuestos/internal/common"
)

var (
	cfgFile string
	logFile string
	quiet   bool
	verbose bool
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "presupuestos",
	Short: "Extract and analyze construction budget PDFs",
	Long: `presupuestos reads a construction/engineering budget rendered as PDF
text, reconciles the measurements section against the budget table, and
writes two artifacts: an XLSX workbook with the reconciled line items
and a JSON document with the entity analysis (materials, standards,
technical alerts).`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (YAML; built-in defaults apply when omitted)")
	rootCmd.PersistentFlags().StringVar(&logFile, "log-file", "", "also write run logs to this file")
	rootCmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "disable progress bars and console logs")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "log at debug level")
}

// newRunLogger builds the logger shared by all subcommands from the
// persistent flags. The cleanup closes the log file, if any.
func newRunLogger() (*slog.Logger, func(), error) {
	return common.NewLogger(common.LoggerOptions{
		LogFile: logFile,
		Quiet:   quiet,
		Debug:   verbose,
	})
}
