package contracts

import (
	"fmt"
	"strings"
	"time"
)

// SymbolNotFoundError reports a symbol with no matching security in any
// resolution tier. Non-fatal: the importer skips the symbol.
type SymbolNotFoundError struct {
	Symbol        string
	ReferenceDate time.Time
}

func (e *SymbolNotFoundError) Error() string {
	return fmt.Sprintf("security symbol %q not found in any exchange (reference date %s)",
		e.Symbol, e.ReferenceDate.Format("2006-01-02"))
}

// AmbiguousListingError reports a symbol matching two or more securities
// within one resolution tier. No venue preference exists, so the symbol
// is skipped rather than silently picking one.
type AmbiguousListingError struct {
	Symbol        string
	ReferenceDate time.Time
	Exchanges     []string
}

func (e *AmbiguousListingError) Error() string {
	return fmt.Sprintf("symbol %q is listed on multiple exchanges: %s",
		e.Symbol, strings.Join(e.Exchanges, ", "))
}

// DerivationError reports a numeric fault while deriving a corporate
// action from a bar. The offending action is skipped; the bar itself is
// still imported.
type DerivationError struct {
	SecurityID int64
	Date       time.Time
	Reason     string
}

func (e *DerivationError) Error() string {
	return fmt.Sprintf("corporate action derivation failed for security %d on %s: %s",
		e.SecurityID, e.Date.Format("2006-01-02"), e.Reason)
}
