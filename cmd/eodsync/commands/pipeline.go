package commands

import (
	"fmt"

	"github.com/quantline/eodsync/internal/external/quandl"
	"github.com/quantline/eodsync/internal/importer"
	"github.com/quantline/eodsync/internal/marketdata"
	"github.com/quantline/eodsync/internal/registry"
	"github.com/quantline/eodsync/pkg/config"
	"github.com/quantline/eodsync/pkg/database"
	"github.com/quantline/eodsync/pkg/logger"
)

// pipeline bundles the fully wired import dependencies shared by the
// import, status and scheduler commands.
type pipeline struct {
	cfg      *config.Config
	log      *logger.Logger
	db       *database.DB
	registry *registry.Store
	vendor   *quandl.Client
	importer *importer.Importer
	runs     *importer.RunRepository
}

func initPipeline() (*pipeline, error) {
	// 1. Load config
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	// 2. Initialize logger
	log := logger.New(cfg)

	// 3. Connect to database
	db, err := database.New(cfg)
	if err != nil {
		return nil, fmt.Errorf("connect to database: %w", err)
	}

	// 4. Create vendor client
	vendorClient := quandl.NewClient(cfg.Vendor, log)

	// 5. Create repositories
	registryStore := registry.NewStore(db.Pool)
	barRepo := marketdata.NewRepository(db.Pool)
	runRepo := importer.NewRunRepository(db.Pool)

	// 6. Create importer
	imp := importer.New(registryStore, registryStore, barRepo, log)

	return &pipeline{
		cfg:      cfg,
		log:      log,
		db:       db,
		registry: registryStore,
		vendor:   vendorClient,
		importer: imp,
		runs:     runRepo,
	}, nil
}

func (p *pipeline) Close() {
	p.db.Close()
}
