package marketdata

import (
	"time"

	"github.com/quantline/eodsync/internal/contracts"
)

// Plan computes the subset of incoming bars not yet stored for a
// security. latest is the date of the most recent stored bar, or nil
// when the security has no bars yet.
//
// The comparison is strict: a bar dated exactly on latest is treated as
// already present and dropped. The incoming sequence is assumed to be
// date-ordered; Plan only filters, it never re-sorts or validates gaps.
func Plan(latest *time.Time, incoming []contracts.VendorBar) []contracts.VendorBar {
	if latest == nil {
		return incoming
	}

	eligible := make([]contracts.VendorBar, 0, len(incoming))
	for _, bar := range incoming {
		if bar.Date.After(*latest) {
			eligible = append(eligible, bar)
		}
	}
	return eligible
}
