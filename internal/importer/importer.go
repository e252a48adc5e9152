package importer

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/quantline/eodsync/internal/contracts"
	"github.com/quantline/eodsync/internal/marketdata"
	"github.com/quantline/eodsync/internal/registry"
	"github.com/quantline/eodsync/pkg/logger"
)

// Feed yields the vendor's per-symbol bar sequences. Implemented by the
// vendor bulk client and by in-memory fixtures in tests.
type Feed interface {
	// Each invokes fn once per symbol with that symbol's date-ordered
	// bars. Returning an error from fn aborts iteration.
	Each(ctx context.Context, fn func(symbol string, bars []contracts.VendorBar) error) error
}

// Importer drives one sequential pass over the vendor feed: resolve
// each symbol against the registry, filter to bars not yet stored, then
// derive and persist bars with their corporate actions.
type Importer struct {
	exchanges  contracts.ExchangeStore
	securities contracts.SecurityStore
	bars       contracts.BarStore
	logger     *logger.Logger
}

// New creates an Importer.
func New(
	exchanges contracts.ExchangeStore,
	securities contracts.SecurityStore,
	bars contracts.BarStore,
	log *logger.Logger,
) *Importer {
	return &Importer{
		exchanges:  exchanges,
		securities: securities,
		bars:       bars,
		logger:     log.WithField("module", "importer"),
	}
}

// Run imports the whole feed. Resolution failures are per-symbol and
// non-fatal; persistence failures abort the run with the partial report
// returned alongside the error. Bars committed before an abort stay
// committed and the next run resumes incrementally.
func (i *Importer) Run(ctx context.Context, feed Feed) (*Report, error) {
	report := NewReport()

	// The exchange classification is loaded once and held for the
	// whole run, so every symbol resolves against the same snapshot.
	rctx, err := registry.LoadResolutionContext(ctx, i.exchanges)
	if err != nil {
		return report, fmt.Errorf("load resolution context: %w", err)
	}
	resolver := registry.NewResolver(i.securities, rctx)

	i.logger.WithFields(map[string]interface{}{
		"run_id":       report.ID,
		"constituents": len(rctx.Constituents),
		"catch_all":    len(rctx.CatchAll),
	}).Info("Starting EOD import")

	err = feed.Each(ctx, func(symbol string, bars []contracts.VendorBar) error {
		return i.importSymbol(ctx, resolver, report, symbol, bars)
	})
	report.FinishedAt = time.Now().UTC()
	if err != nil {
		return report, err
	}

	i.logger.WithFields(map[string]interface{}{
		"run_id":            report.ID,
		"securities":        len(report.Imported),
		"bars":              report.TotalBars(),
		"unmatched":         len(report.Unmatched),
		"derivation_faults": report.DerivationFaults,
		"duration":          report.FinishedAt.Sub(report.StartedAt),
	}).Info("EOD import completed")

	return report, nil
}

func (i *Importer) importSymbol(
	ctx context.Context,
	resolver *registry.Resolver,
	report *Report,
	symbol string,
	bars []contracts.VendorBar,
) error {
	if len(bars) == 0 {
		i.logger.WithField("symbol", symbol).Debug("Symbol has no bars, skipping")
		return nil
	}

	// Catch-all listings are time-bounded, so the lookup is anchored
	// at the date of the first incoming bar.
	referenceDate := bars[0].Date

	security, err := resolver.Resolve(ctx, symbol, referenceDate)
	if err != nil {
		if isResolutionFailure(err) {
			report.Unmatched = append(report.Unmatched, UnmatchedSymbol{
				Symbol:        symbol,
				ReferenceDate: referenceDate,
				Reason:        err.Error(),
			})
			i.logger.WithFields(map[string]interface{}{
				"symbol": symbol,
				"reason": err.Error(),
			}).Warn("Symbol not resolved, skipping")
			return nil
		}
		return fmt.Errorf("resolve %q: %w", symbol, err)
	}

	latest, err := i.bars.LatestBarDate(ctx, security.ID)
	if err != nil {
		return fmt.Errorf("latest bar date for %q: %w", symbol, err)
	}

	eligible := marketdata.Plan(latest, bars)

	imported := 0
	for _, bar := range eligible {
		derivation := marketdata.Derive(security.ID, bar)
		if derivation.Fault != nil {
			report.DerivationFaults++
			i.logger.WithFields(map[string]interface{}{
				"symbol": symbol,
				"date":   bar.Date.Format("2006-01-02"),
			}).Warn(derivation.Fault.Error())
		}

		if err := i.bars.SaveBarWithActions(ctx, derivation.Bar, derivation.Actions); err != nil {
			return fmt.Errorf("persist bar for %q on %s: %w",
				symbol, bar.Date.Format("2006-01-02"), err)
		}
		imported++
	}

	report.Imported = append(report.Imported, SecurityImport{
		SecurityID:   security.ID,
		Symbol:       symbol,
		BarsImported: imported,
	})

	i.logger.WithFields(map[string]interface{}{
		"symbol":   symbol,
		"incoming": len(bars),
		"imported": imported,
	}).Info("Imported EOD bars")

	return nil
}

// isResolutionFailure reports whether the error is a per-symbol
// resolution outcome rather than an infrastructure fault.
func isResolutionFailure(err error) bool {
	var notFound *contracts.SymbolNotFoundError
	var ambiguous *contracts.AmbiguousListingError
	return errors.As(err, &notFound) || errors.As(err, &ambiguous)
}
