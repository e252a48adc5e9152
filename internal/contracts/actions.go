package contracts

import "time"

// ActionType tags a corporate action variant.
type ActionType string

const (
	ActionTypeSplit        ActionType = "split"
	ActionTypeCashDividend ActionType = "cash_dividend"
)

// CorporateAction is the closed set of corporate action variants. The
// two implementations are Split and CashDividend.
type CorporateAction interface {
	Type() ActionType
	Security() int64
	EffectiveOn() time.Time
}

// Split records a share split with ex-date on that day. Ratio is the
// number of new shares per old share, exactly as supplied by the vendor.
type Split struct {
	SecurityID int64
	ExDate     time.Time
	Ratio      float64
}

func (s Split) Type() ActionType       { return ActionTypeSplit }
func (s Split) Security() int64        { return s.SecurityID }
func (s Split) EffectiveOn() time.Time { return s.ExDate }

// CashDividend records a cash dividend with ex-date on that day.
// AdjustmentRatio is (close + dividend) / close. Amount, Currency and
// DeclaredOn exist in the persistence schema but the vendor feed does
// not supply them, so they stay nil.
type CashDividend struct {
	SecurityID      int64
	ExDate          time.Time
	AdjustmentRatio float64
	Amount          *float64
	Currency        *string
	DeclaredOn      *time.Time
}

func (d CashDividend) Type() ActionType       { return ActionTypeCashDividend }
func (d CashDividend) Security() int64        { return d.SecurityID }
func (d CashDividend) EffectiveOn() time.Time { return d.ExDate }
