package marketdata

import (
	"github.com/quantline/eodsync/internal/contracts"
)

// Derivation is the persistable output for one vendor bar: the
// unadjusted price bar, any corporate actions inferred from the bar's
// adjustment fields, and any non-fatal derivation fault.
type Derivation struct {
	Bar     contracts.EodBar
	Actions []contracts.CorporateAction

	// Fault is set when a dividend ratio could not be computed (zero
	// close price). The bar and any split are still persisted; only
	// the dividend action is skipped.
	Fault *contracts.DerivationError
}

// Derive maps one vendor bar to its persistable outputs. The dividend
// and split checks are independent; both can fire for the same bar.
//
// The feed encodes "no dividend" as 0.0 and "no split" as a factor of
// exactly 1.0, so those sentinels are compared exactly.
func Derive(securityID int64, bar contracts.VendorBar) Derivation {
	d := Derivation{
		Bar: contracts.EodBar{
			SecurityID: securityID,
			Date:       bar.Date,
			Open:       bar.UnadjustedOpen,
			High:       bar.UnadjustedHigh,
			Low:        bar.UnadjustedLow,
			Close:      bar.UnadjustedClose,
			Volume:     bar.UnadjustedVolume,
		},
	}

	if bar.Dividend != 0.0 {
		if bar.UnadjustedClose == 0.0 {
			// A ratio of (close + dividend) / close is undefined;
			// never let an Inf/NaN ratio reach storage.
			d.Fault = &contracts.DerivationError{
				SecurityID: securityID,
				Date:       bar.Date,
				Reason:     "dividend with zero close price",
			}
		} else {
			// Adjustment ratio per the vendor's methodology:
			// (close price + dividend amount) / close price.
			d.Actions = append(d.Actions, contracts.CashDividend{
				SecurityID:      securityID,
				ExDate:          bar.Date,
				AdjustmentRatio: (bar.UnadjustedClose + bar.Dividend) / bar.UnadjustedClose,
			})
		}
	}

	if bar.SplitAdjustmentFactor != 1.0 {
		// The factor is the ratio of new shares to old shares with
		// ex-date on this day; stored exactly as supplied.
		d.Actions = append(d.Actions, contracts.Split{
			SecurityID: securityID,
			ExDate:     bar.Date,
			Ratio:      bar.SplitAdjustmentFactor,
		})
	}

	return d
}
