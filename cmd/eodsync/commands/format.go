package commands

import (
	"fmt"

	"github.com/quantline/eodsync/internal/importer"
)

const separator = "───────────────────────────────────────────────────────────"

// printRunReport prints an import run report in the shared CLI format.
func printRunReport(report *importer.Report) {
	fmt.Println()
	fmt.Println("═══════════════════════════════════════════════════════════")
	fmt.Println("  EOD Import Run")
	fmt.Println(separator)
	fmt.Printf("  Run ID    : %s\n", report.ID)
	fmt.Printf("  Started   : %s\n", report.StartedAt.Format("2006-01-02 15:04:05"))
	fmt.Printf("  Finished  : %s\n", report.FinishedAt.Format("2006-01-02 15:04:05"))
	fmt.Printf("  Duration  : %.1fs\n", report.FinishedAt.Sub(report.StartedAt).Seconds())
	fmt.Println(separator)
	fmt.Printf("  Securities: %d\n", len(report.Imported))
	fmt.Printf("  Bars      : %d\n", report.TotalBars())
	fmt.Printf("  Unmatched : %d\n", len(report.Unmatched))
	fmt.Printf("  Faults    : %d\n", report.DerivationFaults)

	if len(report.Unmatched) > 0 {
		fmt.Println(separator)
		fmt.Println("  Unmatched symbols:")
		for _, u := range report.Unmatched {
			fmt.Printf("    - %-10s %s (%s)\n", u.Symbol, u.Reason, u.ReferenceDate.Format("2006-01-02"))
		}
	}

	fmt.Println("═══════════════════════════════════════════════════════════")
}
