package marketdata

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quantline/eodsync/internal/contracts"
)

func TestDeriveBarIsUnadjusted(t *testing.T) {
	bar := contracts.VendorBar{
		Date:                  date(2020, 3, 10),
		UnadjustedOpen:        100.0,
		UnadjustedHigh:        105.0,
		UnadjustedLow:         99.0,
		UnadjustedClose:       104.0,
		UnadjustedVolume:      1_000_000,
		SplitAdjustmentFactor: 1.0,
		// Adjusted fields deliberately different: they must never be
		// what gets persisted.
		AdjustedOpen:   50.0,
		AdjustedHigh:   52.5,
		AdjustedLow:    49.5,
		AdjustedClose:  52.0,
		AdjustedVolume: 2_000_000,
	}

	d := Derive(7, bar)

	assert.Equal(t, contracts.EodBar{
		SecurityID: 7,
		Date:       date(2020, 3, 10),
		Open:       100.0,
		High:       105.0,
		Low:        99.0,
		Close:      104.0,
		Volume:     1_000_000,
	}, d.Bar)
	assert.Empty(t, d.Actions)
	assert.Nil(t, d.Fault)
}

func TestDeriveDividend(t *testing.T) {
	bar := contracts.VendorBar{
		Date:                  date(2020, 3, 10),
		UnadjustedClose:       100.0,
		Dividend:              2.0,
		SplitAdjustmentFactor: 1.0,
	}

	d := Derive(7, bar)

	require.Len(t, d.Actions, 1)
	div, ok := d.Actions[0].(contracts.CashDividend)
	require.True(t, ok)

	assert.Equal(t, int64(7), div.SecurityID)
	assert.Equal(t, date(2020, 3, 10), div.ExDate)
	assert.InDelta(t, 1.02, div.AdjustmentRatio, 1e-12)

	// Fields the vendor does not supply stay unset.
	assert.Nil(t, div.Amount)
	assert.Nil(t, div.Currency)
	assert.Nil(t, div.DeclaredOn)
}

func TestDeriveNoDividendWhenZero(t *testing.T) {
	bar := contracts.VendorBar{
		Date:                  date(2020, 3, 10),
		UnadjustedClose:       100.0,
		Dividend:              0.0,
		SplitAdjustmentFactor: 1.0,
	}

	d := Derive(7, bar)
	assert.Empty(t, d.Actions)
}

func TestDeriveSplit(t *testing.T) {
	bar := contracts.VendorBar{
		Date:                  date(2020, 3, 10),
		UnadjustedClose:       100.0,
		SplitAdjustmentFactor: 2.0,
	}

	d := Derive(7, bar)

	require.Len(t, d.Actions, 1)
	split, ok := d.Actions[0].(contracts.Split)
	require.True(t, ok)

	assert.Equal(t, 2.0, split.Ratio)
	assert.Equal(t, date(2020, 3, 10), split.ExDate)
}

func TestDeriveNoSplitWhenFactorIsOne(t *testing.T) {
	bar := contracts.VendorBar{
		Date:                  date(2020, 3, 10),
		UnadjustedClose:       100.0,
		SplitAdjustmentFactor: 1.0,
	}

	d := Derive(7, bar)
	assert.Empty(t, d.Actions)
}

func TestDeriveDividendAndSplitIndependent(t *testing.T) {
	bar := contracts.VendorBar{
		Date:                  date(2020, 3, 10),
		UnadjustedClose:       50.0,
		Dividend:              1.0,
		SplitAdjustmentFactor: 3.0,
	}

	d := Derive(7, bar)
	require.Len(t, d.Actions, 2)

	var dividends, splits int
	for _, action := range d.Actions {
		switch action.Type() {
		case contracts.ActionTypeCashDividend:
			dividends++
		case contracts.ActionTypeSplit:
			splits++
		}
	}
	assert.Equal(t, 1, dividends)
	assert.Equal(t, 1, splits)
}

func TestDeriveZeroCloseDividendFault(t *testing.T) {
	bar := contracts.VendorBar{
		Date:                  date(2020, 3, 10),
		UnadjustedClose:       0.0,
		Dividend:              2.0,
		SplitAdjustmentFactor: 2.0,
	}

	d := Derive(7, bar)

	// The dividend is skipped, the fault surfaced, and the split is
	// unaffected.
	require.NotNil(t, d.Fault)
	assert.Equal(t, int64(7), d.Fault.SecurityID)

	require.Len(t, d.Actions, 1)
	assert.Equal(t, contracts.ActionTypeSplit, d.Actions[0].Type())

	// The zero-close bar itself is still importable.
	assert.Equal(t, 0.0, d.Bar.Close)
}
