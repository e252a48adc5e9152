package quandl

import (
	"fmt"
	"strconv"
	"time"

	"github.com/quantline/eodsync/internal/contracts"
)

// The bulk CSV layout:
// Symbol,Date,Open,High,Low,Close,Volume,Dividend,Split,
// Adj_Open,Adj_High,Adj_Low,Adj_Close,Adj_Volume
const columnCount = 14

// isHeader reports whether the record is the file's header row.
func isHeader(record []string) bool {
	return len(record) > 0 && record[0] == "Symbol"
}

// parseRow converts one CSV record to its symbol and vendor bar. All
// columns are parsed, including the adjusted ones nothing downstream
// reads, so a malformed file fails here instead of importing garbage.
func parseRow(record []string) (string, contracts.VendorBar, error) {
	var bar contracts.VendorBar

	if len(record) != columnCount {
		return "", bar, fmt.Errorf("expected %d columns, got %d", columnCount, len(record))
	}

	symbol := record[0]
	if symbol == "" {
		return "", bar, fmt.Errorf("empty symbol")
	}

	date, err := time.Parse("2006-01-02", record[1])
	if err != nil {
		return "", bar, fmt.Errorf("parse date %q: %w", record[1], err)
	}
	bar.Date = date

	fields := []struct {
		name string
		dst  *float64
	}{
		{"open", &bar.UnadjustedOpen},
		{"high", &bar.UnadjustedHigh},
		{"low", &bar.UnadjustedLow},
		{"close", &bar.UnadjustedClose},
		{"volume", &bar.UnadjustedVolume},
		{"dividend", &bar.Dividend},
		{"split", &bar.SplitAdjustmentFactor},
		{"adj_open", &bar.AdjustedOpen},
		{"adj_high", &bar.AdjustedHigh},
		{"adj_low", &bar.AdjustedLow},
		{"adj_close", &bar.AdjustedClose},
		{"adj_volume", &bar.AdjustedVolume},
	}

	for i, f := range fields {
		value, err := strconv.ParseFloat(record[i+2], 64)
		if err != nil {
			return "", bar, fmt.Errorf("parse %s %q: %w", f.name, record[i+2], err)
		}
		*f.dst = value
	}

	return symbol, bar, nil
}
