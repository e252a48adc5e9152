package registry

import (
	"context"
	"fmt"
	"time"

	"github.com/quantline/eodsync/internal/contracts"
)

// Resolver maps a vendor ticker symbol to exactly one security in the
// local registry. Resolution is strictly tiered: the composite exchange
// first, then the constituent exchanges, then the time-bounded catch-all
// pool. Each tier short-circuits as soon as it yields candidates.
type Resolver struct {
	store contracts.SecurityStore
	rctx  *ResolutionContext
}

// NewResolver creates a resolver bound to one run's exchange
// classification.
func NewResolver(store contracts.SecurityStore, rctx *ResolutionContext) *Resolver {
	return &Resolver{store: store, rctx: rctx}
}

// Resolve returns the single security matching the symbol, or a
// *contracts.SymbolNotFoundError / *contracts.AmbiguousListingError.
// The reference date only matters for the catch-all tier, where listings
// are valid for a bounded window.
func (r *Resolver) Resolve(ctx context.Context, symbol string, referenceDate time.Time) (*contracts.Security, error) {
	// Tier 1: composite. A composite listing is unambiguous and always
	// preferred over any regional venue.
	sec, err := r.store.FindByExchange(ctx, symbol, r.rctx.Composite.ID)
	if err != nil {
		return nil, fmt.Errorf("composite lookup for %q: %w", symbol, err)
	}
	if sec != nil {
		return sec, nil
	}

	// Tier 2: constituent exchanges.
	candidates, err := r.store.FindByExchanges(ctx, symbol, r.rctx.ConstituentIDs())
	if err != nil {
		return nil, fmt.Errorf("constituent lookup for %q: %w", symbol, err)
	}
	switch len(candidates) {
	case 0:
		// fall through to the catch-all tier
	case 1:
		return &candidates[0], nil
	default:
		// No venue preference policy exists; report rather than guess.
		return nil, &contracts.AmbiguousListingError{
			Symbol:        symbol,
			ReferenceDate: referenceDate,
			Exchanges:     r.exchangeLabels(candidates),
		}
	}

	// Tier 3: catch-all, scoped to listings valid on the reference date.
	candidates, err = r.store.FindInWindow(ctx, symbol, r.rctx.CatchAllIDs(), referenceDate)
	if err != nil {
		return nil, fmt.Errorf("catch-all lookup for %q: %w", symbol, err)
	}
	switch len(candidates) {
	case 0:
		return nil, &contracts.SymbolNotFoundError{Symbol: symbol, ReferenceDate: referenceDate}
	case 1:
		return &candidates[0], nil
	default:
		// Overlapping validity windows for the same symbol: a
		// data-quality fault in the registry.
		return nil, &contracts.AmbiguousListingError{
			Symbol:        symbol,
			ReferenceDate: referenceDate,
			Exchanges:     r.exchangeLabels(candidates),
		}
	}
}

func (r *Resolver) exchangeLabels(securities []contracts.Security) []string {
	labels := make([]string, len(securities))
	for i, sec := range securities {
		labels[i] = r.rctx.Label(sec.ExchangeID)
	}
	return labels
}
