package registry

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/quantline/eodsync/internal/contracts"
)

// Store implements contracts.ExchangeStore and contracts.SecurityStore
// on PostgreSQL.
type Store struct {
	pool *pgxpool.Pool
}

// NewStore creates a new registry store.
func NewStore(pool *pgxpool.Pool) *Store {
	return &Store{pool: pool}
}

// ListExchanges returns all exchanges.
func (s *Store) ListExchanges(ctx context.Context) ([]contracts.Exchange, error) {
	query := `
		SELECT id, label, role
		FROM exchanges
		ORDER BY id
	`

	rows, err := s.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("query exchanges: %w", err)
	}
	defer rows.Close()

	var exchanges []contracts.Exchange
	for rows.Next() {
		var ex contracts.Exchange
		if err := rows.Scan(&ex.ID, &ex.Label, &ex.Role); err != nil {
			return nil, fmt.Errorf("scan exchange: %w", err)
		}
		exchanges = append(exchanges, ex)
	}
	return exchanges, rows.Err()
}

// FindByExchange looks up a security by symbol on one exchange. Returns
// nil when no row matches.
func (s *Store) FindByExchange(ctx context.Context, symbol string, exchangeID int64) (*contracts.Security, error) {
	query := `
		SELECT id, symbol, name, exchange_id, start_date, end_date
		FROM securities
		WHERE symbol = $1 AND exchange_id = $2
	`

	var sec contracts.Security
	err := s.pool.QueryRow(ctx, query, symbol, exchangeID).Scan(
		&sec.ID, &sec.Symbol, &sec.Name, &sec.ExchangeID, &sec.StartDate, &sec.EndDate,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("query security: %w", err)
	}
	return &sec, nil
}

// FindByExchanges looks up all securities matching the symbol on any of
// the given exchanges.
func (s *Store) FindByExchanges(ctx context.Context, symbol string, exchangeIDs []int64) ([]contracts.Security, error) {
	if len(exchangeIDs) == 0 {
		return nil, nil
	}

	query := `
		SELECT id, symbol, name, exchange_id, start_date, end_date
		FROM securities
		WHERE symbol = $1 AND exchange_id = ANY($2)
		ORDER BY exchange_id
	`

	return s.querySecurities(ctx, query, symbol, exchangeIDs)
}

// FindInWindow looks up securities matching the symbol on any of the
// given exchanges whose validity window contains the date. Both bounds
// are inclusive.
func (s *Store) FindInWindow(ctx context.Context, symbol string, exchangeIDs []int64, date time.Time) ([]contracts.Security, error) {
	if len(exchangeIDs) == 0 {
		return nil, nil
	}

	query := `
		SELECT id, symbol, name, exchange_id, start_date, end_date
		FROM securities
		WHERE symbol = $1 AND exchange_id = ANY($2)
		  AND start_date <= $3 AND end_date >= $3
		ORDER BY exchange_id
	`

	return s.querySecurities(ctx, query, symbol, exchangeIDs, date)
}

func (s *Store) querySecurities(ctx context.Context, query string, args ...interface{}) ([]contracts.Security, error) {
	rows, err := s.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query securities: %w", err)
	}
	defer rows.Close()

	var securities []contracts.Security
	for rows.Next() {
		var sec contracts.Security
		if err := rows.Scan(&sec.ID, &sec.Symbol, &sec.Name, &sec.ExchangeID, &sec.StartDate, &sec.EndDate); err != nil {
			return nil, fmt.Errorf("scan security: %w", err)
		}
		securities = append(securities, sec)
	}
	return securities, rows.Err()
}

// UpsertSecurity inserts a security or refreshes its name. Used by the
// registry seeding command, never during an import run.
func (s *Store) UpsertSecurity(ctx context.Context, symbol, name string, exchangeID int64) error {
	query := `
		INSERT INTO securities (symbol, name, exchange_id)
		VALUES ($1, $2, $3)
		ON CONFLICT (symbol, exchange_id) DO UPDATE SET
			name = EXCLUDED.name
	`

	if _, err := s.pool.Exec(ctx, query, symbol, name, exchangeID); err != nil {
		return fmt.Errorf("upsert security %q: %w", symbol, err)
	}
	return nil
}

// FindExchangeByLabel returns the exchange with the given label, or nil.
func (s *Store) FindExchangeByLabel(ctx context.Context, label string) (*contracts.Exchange, error) {
	query := `
		SELECT id, label, role
		FROM exchanges
		WHERE label = $1
	`

	var ex contracts.Exchange
	err := s.pool.QueryRow(ctx, query, label).Scan(&ex.ID, &ex.Label, &ex.Role)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("query exchange: %w", err)
	}
	return &ex, nil
}
