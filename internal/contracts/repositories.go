package contracts

import (
	"context"
	"time"
)

// ExchangeStore reads exchange reference data.
type ExchangeStore interface {
	// ListExchanges returns all exchanges. Loaded once per import run;
	// the classification must not be refreshed mid-run.
	ListExchanges(ctx context.Context) ([]Exchange, error)
}

// SecurityStore reads the local securities registry.
type SecurityStore interface {
	// FindByExchange looks up a security by symbol on one exchange.
	// Returns nil when absent.
	FindByExchange(ctx context.Context, symbol string, exchangeID int64) (*Security, error)

	// FindByExchanges looks up all securities matching the symbol on
	// any of the given exchanges.
	FindByExchanges(ctx context.Context, symbol string, exchangeIDs []int64) ([]Security, error)

	// FindInWindow looks up securities matching the symbol on any of
	// the given exchanges whose validity window contains the date
	// (inclusive bounds).
	FindInWindow(ctx context.Context, symbol string, exchangeIDs []int64, date time.Time) ([]Security, error)
}

// BarStore persists price bars and their derived corporate actions.
type BarStore interface {
	// LatestBarDate returns the date of the most recent stored bar for
	// the security, or nil when no bars are stored.
	LatestBarDate(ctx context.Context, securityID int64) (*time.Time, error)

	// SaveBarWithActions writes one bar and its derived actions as a
	// single unit. A bar must never be committed without its actions,
	// otherwise a later incremental run would skip the bar and the
	// actions would be lost for good.
	SaveBarWithActions(ctx context.Context, bar EodBar, actions []CorporateAction) error
}
