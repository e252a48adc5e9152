package jobs

import (
	"context"
	"fmt"
	"os"

	"github.com/quantline/eodsync/internal/external/quandl"
	"github.com/quantline/eodsync/internal/importer"
	"github.com/quantline/eodsync/pkg/config"
	"github.com/quantline/eodsync/pkg/logger"
)

// EodImportJob downloads the vendor's bulk EOD file and runs the
// importer against it on the configured schedule.
type EodImportJob struct {
	vendor   *quandl.Client
	importer *importer.Importer
	runs     *importer.RunRepository
	config   *config.Config
	logger   *logger.Logger
}

// NewEodImportJob creates the nightly import job.
func NewEodImportJob(
	vendor *quandl.Client,
	imp *importer.Importer,
	runs *importer.RunRepository,
	cfg *config.Config,
	log *logger.Logger,
) *EodImportJob {
	return &EodImportJob{
		vendor:   vendor,
		importer: imp,
		runs:     runs,
		config:   cfg,
		logger:   log,
	}
}

// Name returns the job name.
func (j *EodImportJob) Name() string {
	return "eod_import"
}

// Schedule returns the cron schedule from config.
func (j *EodImportJob) Schedule() string {
	return j.config.Import.Schedule
}

// Run downloads the bulk file, imports it, and records the run report.
func (j *EodImportJob) Run(ctx context.Context) error {
	j.logger.Info("Starting scheduled EOD import")

	feed, dir, err := j.vendor.Fetch(ctx)
	if err != nil {
		return fmt.Errorf("fetch bulk feed: %w", err)
	}
	defer os.RemoveAll(dir)

	report, runErr := j.importer.Run(ctx, feed)

	// Record the report even for an aborted run: the partial progress
	// is what the operator needs to see.
	if report != nil {
		if err := j.runs.Save(ctx, report); err != nil {
			j.logger.WithError(err).Error("Failed to save run report")
		}
	}

	if runErr != nil {
		return fmt.Errorf("import run: %w", runErr)
	}
	return nil
}
