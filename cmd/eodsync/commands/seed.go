package commands

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/quantline/eodsync/internal/external/eoddata"
	"github.com/quantline/eodsync/internal/registry"
)

// seedCmd represents the seed-registry command
var seedCmd = &cobra.Command{
	Use:   "seed-registry [exchange] [directory-code]",
	Short: "Seed the security registry from the listing directory",
	Long: `Fetches the public listing directory for an exchange and upserts
every listing as a security of that exchange.

The exchange must already exist in the registry. The directory code
defaults to the exchange label when omitted.

Example:
  go run ./cmd/eodsync seed-registry "NYSE"
  go run ./cmd/eodsync seed-registry "US Catch-All" AMEX`,
	Args: cobra.RangeArgs(1, 2),
	RunE: runSeedRegistry,
}

func init() {
	rootCmd.AddCommand(seedCmd)
}

func runSeedRegistry(cmd *cobra.Command, args []string) error {
	exchangeLabel := args[0]
	directoryCode := exchangeLabel
	if len(args) == 2 {
		directoryCode = args[1]
	}

	fmt.Println("=== eodsync Registry Seeder ===")
	fmt.Printf("Exchange : %s\n", exchangeLabel)
	fmt.Printf("Directory: %s\n\n", directoryCode)

	p, err := initPipeline()
	if err != nil {
		return err
	}
	defer p.Close()

	directory := eoddata.NewClient(p.cfg.Directory, p.log)
	seeder := registry.NewSeeder(p.registry, directory, p.log)

	count, err := seeder.Seed(context.Background(), exchangeLabel, directoryCode)
	if err != nil {
		return fmt.Errorf("seed registry: %w", err)
	}

	fmt.Printf("✅ Seeded %d listings into %s\n", count, exchangeLabel)
	return nil
}
