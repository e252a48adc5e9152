package commands

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/quantline/eodsync/internal/external/quandl"
	"github.com/quantline/eodsync/internal/importer"
)

// importCmd represents the import command
var importCmd = &cobra.Command{
	Use:   "import",
	Short: "Run one EOD import",
	Long: `Downloads the vendor's bulk EOD file and imports it.

Each symbol is resolved against the exchange registry, bars newer than
the latest stored bar are persisted, and dividends and splits are
derived from the vendor's adjustment columns. The run report is saved
and printed when the run finishes.

Example:
  go run ./cmd/eodsync import
  go run ./cmd/eodsync import --file /tmp/eod_bulk.zip`,
	RunE: runImport,
}

var (
	importFile string
)

func init() {
	rootCmd.AddCommand(importCmd)

	// Flags
	importCmd.Flags().StringVar(&importFile, "file", "", "import a local bulk zip instead of downloading")
}

func runImport(cmd *cobra.Command, args []string) error {
	fmt.Println("=== eodsync Import ===")

	p, err := initPipeline()
	if err != nil {
		return err
	}
	defer p.Close()

	ctx := context.Background()

	var feed importer.Feed
	if importFile != "" {
		fmt.Printf("Source: %s\n", importFile)
		feed = quandl.NewBulkFeed(importFile, p.log)
	} else {
		fmt.Println("Source: vendor bulk download")
		bulkFeed, dir, err := p.vendor.Fetch(ctx)
		if err != nil {
			return fmt.Errorf("fetch bulk feed: %w", err)
		}
		defer os.RemoveAll(dir)
		feed = bulkFeed
	}

	report, runErr := p.importer.Run(ctx, feed)

	// The report covers everything committed before a failure, so it
	// is saved and printed even when the run aborted.
	if err := p.runs.Save(ctx, report); err != nil {
		p.log.WithError(err).Error("Failed to save run report")
	}
	printRunReport(report)

	if runErr != nil {
		return fmt.Errorf("import run: %w", runErr)
	}

	fmt.Println("\n✅ Import completed")
	return nil
}
