package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"

	"github.com/coinledger/coinledger"
	"github.com/coinledger/coinledger/binance"
)

type importBinanceCmd struct {
	enrich bool
}

func (*importBinanceCmd) Name() string     { return "import-binance" }
func (*importBinanceCmd) Synopsis() string { return "import a Binance XLSX trade history export" }
func (*importBinanceCmd) Usage() string {
	return `cpl import-binance [-enrich] <file.xlsx>

  Imports the trade history spreadsheet exported from the Binance web UI.
  The spreadsheet must carry the original ten columns unchanged.
`
}

func (c *importBinanceCmd) SetFlags(f *flag.FlagSet) {
	f.BoolVar(&c.enrich, "enrich", false, "backfill missing EUR/USD values from the price oracle")
}

func (c *importBinanceCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
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

	batch, parseErrs, err := binance.Import(file, coinledger.DefaultCatalog())
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
