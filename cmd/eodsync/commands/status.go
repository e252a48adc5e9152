package commands

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

// statusCmd represents the status command
var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the latest import run",
	Long: `Prints the report of the most recent import run.

Example:
  go run ./cmd/eodsync status`,
	RunE: runStatus,
}

func init() {
	rootCmd.AddCommand(statusCmd)
}

func runStatus(cmd *cobra.Command, args []string) error {
	p, err := initPipeline()
	if err != nil {
		return err
	}
	defer p.Close()

	report, err := p.runs.GetLatest(context.Background())
	if err != nil {
		return fmt.Errorf("load latest run: %w", err)
	}
	if report == nil {
		fmt.Println("No import runs recorded yet")
		return nil
	}

	printRunReport(report)
	return nil
}
