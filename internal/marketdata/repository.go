package marketdata

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/quantline/eodsync/internal/contracts"
)

// Repository implements contracts.BarStore on PostgreSQL.
type Repository struct {
	pool *pgxpool.Pool
}

// NewRepository creates a new bar repository.
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

// LatestBarDate returns the date of the most recent stored bar for the
// security, or nil when the security has no bars.
func (r *Repository) LatestBarDate(ctx context.Context, securityID int64) (*time.Time, error) {
	query := `
		SELECT date
		FROM eod_bars
		WHERE security_id = $1
		ORDER BY date DESC
		LIMIT 1
	`

	var date time.Time
	err := r.pool.QueryRow(ctx, query, securityID).Scan(&date)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("query latest bar date: %w", err)
	}
	return &date, nil
}

// SaveBarWithActions writes one bar and its derived corporate actions
// in a single transaction. Committing the bar without its actions would
// leave them lost for good: the next incremental run skips the bar and
// never re-derives.
func (r *Repository) SaveBarWithActions(ctx context.Context, bar contracts.EodBar, actions []contracts.CorporateAction) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	if err := insertBar(ctx, tx, bar); err != nil {
		return err
	}

	for _, action := range actions {
		if err := insertAction(ctx, tx, action); err != nil {
			return err
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit bar %s: %w", bar.Date.Format("2006-01-02"), err)
	}
	return nil
}

func insertBar(ctx context.Context, tx pgx.Tx, bar contracts.EodBar) error {
	query := `
		INSERT INTO eod_bars (security_id, date, open, high, low, close, volume)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	_, err := tx.Exec(ctx, query,
		bar.SecurityID, bar.Date, bar.Open, bar.High, bar.Low, bar.Close, bar.Volume,
	)
	if err != nil {
		return fmt.Errorf("insert bar (security %d, %s): %w",
			bar.SecurityID, bar.Date.Format("2006-01-02"), err)
	}
	return nil
}

func insertAction(ctx context.Context, tx pgx.Tx, action contracts.CorporateAction) error {
	query := `
		INSERT INTO corporate_actions
			(security_id, type, ex_date, ratio, dividend_amount, dividend_currency, declared_date)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	switch a := action.(type) {
	case contracts.Split:
		_, err := tx.Exec(ctx, query,
			a.SecurityID, contracts.ActionTypeSplit, a.ExDate, a.Ratio, nil, nil, nil,
		)
		if err != nil {
			return fmt.Errorf("insert split (security %d, %s): %w",
				a.SecurityID, a.ExDate.Format("2006-01-02"), err)
		}
	case contracts.CashDividend:
		_, err := tx.Exec(ctx, query,
			a.SecurityID, contracts.ActionTypeCashDividend, a.ExDate, a.AdjustmentRatio,
			a.Amount, a.Currency, a.DeclaredOn,
		)
		if err != nil {
			return fmt.Errorf("insert cash dividend (security %d, %s): %w",
				a.SecurityID, a.ExDate.Format("2006-01-02"), err)
		}
	default:
		return fmt.Errorf("unknown corporate action type %q", action.Type())
	}
	return nil
}
