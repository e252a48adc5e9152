package quandl

import (
	"archive/zip"
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"github.com/quantline/eodsync/internal/contracts"
	"github.com/quantline/eodsync/pkg/logger"
)

// BulkFeed streams the downloaded bulk zip as per-symbol bar sequences.
// The file is sorted by symbol then date, so rows for one symbol are
// consecutive and grouping needs no buffering beyond a single symbol.
// Implements importer.Feed.
type BulkFeed struct {
	path   string
	logger *logger.Logger
}

// NewBulkFeed creates a feed over a downloaded bulk zip file.
func NewBulkFeed(path string, log *logger.Logger) *BulkFeed {
	return &BulkFeed{path: path, logger: log}
}

// Each streams the zip's CSV and invokes fn once per symbol with that
// symbol's date-ordered bars.
func (f *BulkFeed) Each(ctx context.Context, fn func(symbol string, bars []contracts.VendorBar) error) error {
	zr, err := zip.OpenReader(f.path)
	if err != nil {
		return fmt.Errorf("open %s: %w", f.path, err)
	}
	defer zr.Close()

	entry, err := findCSVEntry(zr)
	if err != nil {
		return err
	}

	rc, err := entry.Open()
	if err != nil {
		return fmt.Errorf("open zip entry %s: %w", entry.Name, err)
	}
	defer rc.Close()

	return f.stream(ctx, rc, fn)
}

// findCSVEntry locates the CSV inside the archive. The vendor ships a
// single-file zip, but be tolerant about its name.
func findCSVEntry(zr *zip.ReadCloser) (*zip.File, error) {
	for _, file := range zr.File {
		if strings.HasSuffix(strings.ToLower(file.Name), ".csv") {
			return file, nil
		}
	}
	if len(zr.File) == 1 {
		return zr.File[0], nil
	}
	return nil, fmt.Errorf("no CSV entry found in bulk archive")
}

func (f *BulkFeed) stream(ctx context.Context, r io.Reader, fn func(string, []contracts.VendorBar) error) error {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1 // length checked in parseRow

	var (
		currentSymbol string
		currentBars   []contracts.VendorBar
		line          int
	)

	flush := func() error {
		if currentSymbol == "" {
			return nil
		}
		if err := fn(currentSymbol, currentBars); err != nil {
			return err
		}
		currentSymbol = ""
		currentBars = nil
		return nil
	}

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		record, err := reader.Read()
		if err == io.EOF {
			return flush()
		}
		if err != nil {
			return fmt.Errorf("read bulk CSV line %d: %w", line+1, err)
		}
		line++

		if line == 1 && isHeader(record) {
			continue
		}

		symbol, bar, err := parseRow(record)
		if err != nil {
			return fmt.Errorf("parse bulk CSV line %d: %w", line, err)
		}

		if symbol != currentSymbol {
			if err := flush(); err != nil {
				return err
			}
			currentSymbol = symbol
		}
		currentBars = append(currentBars, bar)
	}
}
