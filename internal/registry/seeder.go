package registry

import (
	"context"
	"fmt"

	"github.com/quantline/eodsync/internal/external/eoddata"
	"github.com/quantline/eodsync/pkg/logger"
)

// Seeder populates the securities registry from an exchange's listing
// directory. Seeding runs between imports, never during one: a run's
// resolution context is a snapshot and must stay consistent.
type Seeder struct {
	store     *Store
	directory *eoddata.Client
	logger    *logger.Logger
}

// NewSeeder creates a Seeder.
func NewSeeder(store *Store, directory *eoddata.Client, log *logger.Logger) *Seeder {
	return &Seeder{
		store:     store,
		directory: directory,
		logger:    log.WithField("module", "seeder"),
	}
}

// Seed fetches the directory for directoryCode and upserts every
// listing as a security of the exchange labelled exchangeLabel.
// Returns the number of listings processed.
func (s *Seeder) Seed(ctx context.Context, exchangeLabel, directoryCode string) (int, error) {
	exchange, err := s.store.FindExchangeByLabel(ctx, exchangeLabel)
	if err != nil {
		return 0, fmt.Errorf("find exchange %q: %w", exchangeLabel, err)
	}
	if exchange == nil {
		return 0, fmt.Errorf("exchange %q not found", exchangeLabel)
	}

	listings, err := s.directory.FetchListings(ctx, directoryCode)
	if err != nil {
		return 0, fmt.Errorf("fetch listings for %q: %w", directoryCode, err)
	}

	for _, listing := range listings {
		if err := s.store.UpsertSecurity(ctx, listing.Symbol, listing.Name, exchange.ID); err != nil {
			return 0, err
		}
	}

	s.logger.WithFields(map[string]interface{}{
		"exchange": exchangeLabel,
		"count":    len(listings),
	}).Info("Seeded securities registry")

	return len(listings), nil
}
