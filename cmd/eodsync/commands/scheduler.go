package commands

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/quantline/eodsync/internal/scheduler"
	"github.com/quantline/eodsync/internal/scheduler/jobs"
)

// schedulerCmd represents the scheduler command
var schedulerCmd = &cobra.Command{
	Use:   "scheduler",
	Short: "Start the import scheduler",
	Long: `Starts the scheduler daemon and registers the nightly EOD import.

Registered jobs:
- eod_import: vendor bulk download and import (IMPORT_SCHEDULE,
  default weekdays 22:00)

The scheduler runs until interrupted with Ctrl+C.

Example:
  go run ./cmd/eodsync scheduler`,
	RunE: runScheduler,
}

func init() {
	rootCmd.AddCommand(schedulerCmd)
}

func runScheduler(cmd *cobra.Command, args []string) error {
	fmt.Println("=== eodsync Scheduler ===")

	p, err := initPipeline()
	if err != nil {
		return fmt.Errorf("init scheduler: %w", err)
	}
	defer p.Close()

	sched := scheduler.New(p.log)

	importJob := jobs.NewEodImportJob(p.vendor, p.importer, p.runs, p.cfg, p.log)
	if err := sched.AddJob(importJob); err != nil {
		return fmt.Errorf("register %s: %w", importJob.Name(), err)
	}

	sched.Start()

	fmt.Println("\n✅ Scheduler started successfully")
	fmt.Printf("\nRegistered jobs:\n  - %s (%s)\n", importJob.Name(), importJob.Schedule())
	fmt.Println("\nPress Ctrl+C to stop")

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	fmt.Println("\nShutting down scheduler...")
	sched.Stop()
	fmt.Println("Scheduler stopped")

	return nil
}
