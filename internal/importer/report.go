package importer

import (
	"time"

	"github.com/google/uuid"
)

// SecurityImport summarizes the import outcome for one resolved symbol.
type SecurityImport struct {
	SecurityID   int64  `json:"security_id"`
	Symbol       string `json:"symbol"`
	BarsImported int    `json:"bars_imported"`
}

// UnmatchedSymbol records a symbol that failed resolution, with the
// reason and the reference date used for the lookup.
type UnmatchedSymbol struct {
	Symbol        string    `json:"symbol"`
	ReferenceDate time.Time `json:"reference_date"`
	Reason        string    `json:"reason"`
}

// Report is the operator-facing result of one import run.
type Report struct {
	ID               uuid.UUID         `json:"id"`
	StartedAt        time.Time         `json:"started_at"`
	FinishedAt       time.Time         `json:"finished_at"`
	Imported         []SecurityImport  `json:"imported"`
	Unmatched        []UnmatchedSymbol `json:"unmatched"`
	DerivationFaults int               `json:"derivation_faults"`
}

// NewReport creates an empty report for a run starting now.
func NewReport() *Report {
	return &Report{
		ID:        uuid.New(),
		StartedAt: time.Now().UTC(),
	}
}

// TotalBars returns the total number of bars imported across all
// securities.
func (r *Report) TotalBars() int {
	total := 0
	for _, imp := range r.Imported {
		total += imp.BarsImported
	}
	return total
}
