package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"

	"github.com/coinledger/coinledger"
	"github.com/coinledger/coinledger/bitpanda"
)

type importBitpandaCmd struct {
	enrich bool
}

func (*importBitpandaCmd) Name() string     { return "import-bitpanda" }
func (*importBitpandaCmd) Synopsis() string { return "import a Bitpanda CSV transaction export" }
func (*importBitpandaCmd) Usage() string {
	return `cpl import-bitpanda [-enrich] <file.csv>

  Imports the transaction history exported from Bitpanda. Matched
  deposit/withdrawal pairs are merged into single internal transfers.
`
}

func (c *importBitpandaCmd) SetFlags(f *flag.FlagSet) {
	f.BoolVar(&c.enrich, "enrich", false, "backfill missing EUR/USD values from the price oracle")
}

func (c *importBitpandaCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
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

	batch, parseErrs, err := bitpanda.Import(file)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error importing file: %v\n", err)
		return subcommands.ExitFailure
	}

	log := Logger()
	result := coinledger.Commit(ctx, p.Ledger, batch, parseErrs, coinledger.ImportOptions{
		MergeTransfers: true,
		Oracle:         oracle(c.enrich, p.Config, &log),
		Logger:         &log,
	})
	reportResult(result)
	return SaveProfile(p)
}
