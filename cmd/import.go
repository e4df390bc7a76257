package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"
	"github.com/rs/zerolog"

	"github.com/coinledger/coinledger"
	"github.com/coinledger/coinledger/coingecko"
)

type importCmd struct {
	enrich bool
}

func (*importCmd) Name() string     { return "import" }
func (*importCmd) Synopsis() string { return "import transactions from a generic CSV file" }
func (*importCmd) Usage() string {
	return `cpl import [-enrich] <file.csv>

  Imports transactions from a CSV file with at least the columns
  asset_symbol, tx_type, amount and timestamp. Duplicate rows are skipped.
  See 'cpl topic import-formats' for the full schema.
`
}

func (c *importCmd) SetFlags(f *flag.FlagSet) {
	f.BoolVar(&c.enrich, "enrich", false, "backfill missing EUR/USD values from the price oracle")
}

func (c *importCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "Error: expected exactly one file argument")
		return subcommands.ExitUsageError
	}

	file, err := os.Open(f.Arg(0))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening file: %v\n", err)
		return subcommands.ExitFailure
	}
	defer file.Close()

	p, err := OpenProfile()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading profile: %v\n", err)
		return subcommands.ExitFailure
	}

	batch, parseErrs, err := coinledger.ImportCSV(file)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error importing file: %v\n", err)
		return subcommands.ExitFailure
	}

	log := Logger()
	result := coinledger.Commit(ctx, p.Ledger, batch, parseErrs, coinledger.ImportOptions{
		Oracle: oracle(c.enrich, p.Config, &log),
		Logger: &log,
	})
	reportResult(result)
	return SaveProfile(p)
}

// oracle returns the configured price oracle, or nil when enrichment is
// off (flag not given or disabled in the profile settings).
func oracle(enrich bool, cfg coinledger.Config, log *zerolog.Logger) coinledger.PriceOracle {
	if !enrich || !cfg.FetchPrices {
		return nil
	}
	key := cfg.PriceAPIKey
	if key == "" {
		key = os.Getenv("COINGECKO_API_KEY")
	}
	return coingecko.New(key, log)
}
