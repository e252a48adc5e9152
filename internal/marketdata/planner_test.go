package marketdata

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/quantline/eodsync/internal/contracts"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func barsOn(dates ...time.Time) []contracts.VendorBar {
	bars := make([]contracts.VendorBar, len(dates))
	for i, d := range dates {
		bars[i] = contracts.VendorBar{Date: d, SplitAdjustmentFactor: 1.0}
	}
	return bars
}

func barDates(bars []contracts.VendorBar) []time.Time {
	dates := make([]time.Time, len(bars))
	for i, b := range bars {
		dates[i] = b.Date
	}
	return dates
}

func TestPlanNoStoredBars(t *testing.T) {
	incoming := barsOn(date(2020, 3, 9), date(2020, 3, 10), date(2020, 3, 11))

	eligible := Plan(nil, incoming)
	assert.Equal(t, incoming, eligible)
}

func TestPlanStrictDateFilter(t *testing.T) {
	latest := date(2020, 3, 10)
	incoming := barsOn(date(2020, 3, 9), date(2020, 3, 10), date(2020, 3, 11))

	eligible := Plan(&latest, incoming)

	// The bar dated exactly on the latest stored date is dropped.
	assert.Equal(t, []time.Time{date(2020, 3, 11)}, barDates(eligible))
}

func TestPlanIdempotent(t *testing.T) {
	latest := date(2020, 3, 10)
	incoming := barsOn(date(2020, 3, 10), date(2020, 3, 11), date(2020, 3, 12))

	first := Plan(&latest, incoming)
	second := Plan(&latest, incoming)

	assert.Equal(t, first, second)
	assert.Len(t, first, 2)
}

func TestPlanAllStored(t *testing.T) {
	latest := date(2020, 3, 12)
	incoming := barsOn(date(2020, 3, 10), date(2020, 3, 11), date(2020, 3, 12))

	eligible := Plan(&latest, incoming)
	assert.Empty(t, eligible)
}

func TestPlanPreservesOrderAndGaps(t *testing.T) {
	// Gaps and ordering pass through unchanged; Plan only filters.
	latest := date(2020, 3, 1)
	incoming := barsOn(date(2020, 3, 2), date(2020, 3, 9), date(2020, 3, 3))

	eligible := Plan(&latest, incoming)
	assert.Equal(t, []time.Time{date(2020, 3, 2), date(2020, 3, 9), date(2020, 3, 3)}, barDates(eligible))
}
