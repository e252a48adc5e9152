package contracts

import "time"

// ExchangeRole classifies an exchange for security resolution.
type ExchangeRole string

const (
	// RoleComposite is the single national-market umbrella venue,
	// always preferred during resolution.
	RoleComposite ExchangeRole = "composite"

	// RoleConstituent is a regional venue considered only when no
	// composite listing exists.
	RoleConstituent ExchangeRole = "constituent"

	// RoleCatchAll is a venue of last resort whose listings carry a
	// validity window, allowing symbol reuse across non-overlapping
	// historical periods.
	RoleCatchAll ExchangeRole = "catch_all"
)

// Exchange is immutable reference data describing a listing venue.
type Exchange struct {
	ID    int64
	Label string
	Role  ExchangeRole
}

// Security identifies one listed instrument. StartDate/EndDate are set
// only for catch-all listings, where the same symbol may be reused over
// time by different issuers.
type Security struct {
	ID         int64
	Symbol     string
	Name       string
	ExchangeID int64
	StartDate  *time.Time
	EndDate    *time.Time
}

// ListedOn reports whether the security's validity window contains the
// given date. Both bounds are inclusive; a security without a window is
// listed on every date.
func (s *Security) ListedOn(date time.Time) bool {
	if s.StartDate != nil && date.Before(*s.StartDate) {
		return false
	}
	if s.EndDate != nil && date.After(*s.EndDate) {
		return false
	}
	return true
}

// VendorBar is one daily record from the vendor feed. The adjusted
// fields are parsed so a malformed file fails loudly, but nothing
// downstream reads them: only unadjusted prices are persisted.
type VendorBar struct {
	Date                  time.Time
	UnadjustedOpen        float64
	UnadjustedHigh        float64
	UnadjustedLow         float64
	UnadjustedClose       float64
	UnadjustedVolume      float64
	Dividend              float64
	SplitAdjustmentFactor float64
	AdjustedOpen          float64
	AdjustedHigh          float64
	AdjustedLow           float64
	AdjustedClose         float64
	AdjustedVolume        float64
}

// EodBar is one stored daily price bar, unique per (security, date).
// Rows are append-only: never updated or deleted.
type EodBar struct {
	SecurityID int64
	Date       time.Time
	Open       float64
	High       float64
	Low        float64
	Close      float64
	Volume     float64
}
