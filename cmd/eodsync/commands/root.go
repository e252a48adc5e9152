package commands

import (
	"github.com/spf13/cobra"
)

var (
	// Global flags
	configFile string
	verbose    bool
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "eodsync",
	Short: "EOD price import and reconciliation engine",
	Long: `eodsync imports end-of-day vendor price data into the local database.

Symbols are resolved against the exchange registry (composite first,
then constituents, then dated catch-all listings), new bars are filtered
incrementally, and dividends and splits are derived from the vendor's
adjustment columns.

Usage:
  go run ./cmd/eodsync [command]

Examples:
  go run ./cmd/eodsync import
  go run ./cmd/eodsync seed-registry "NYSE"
  go run ./cmd/eodsync status
  go run ./cmd/eodsync api
  go run ./cmd/eodsync scheduler`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	// Global flags
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "config file (default is .env)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
}
