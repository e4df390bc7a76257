package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"

	"github.com/coinledger/coinledger"
)

type exportCmd struct {
	out string
}

func (*exportCmd) Name() string     { return "export" }
func (*exportCmd) Synopsis() string { return "export the ledger as a generic CSV file" }
func (*exportCmd) Usage() string {
	return `cpl export [-o <file.csv>]

  Writes the full ledger in the generic CSV schema, suitable for backups
  and re-import. Defaults to stdout.
`
}

func (c *exportCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.out, "o", "", "Output file (default: stdout)")
}

func (c *exportCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	p, err := OpenProfile()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading profile: %v\n", err)
		return subcommands.ExitFailure
	}

	out := os.Stdout
	if c.out != "" {
		out, err = os.Create(c.out)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error creating file: %v\n", err)
			return subcommands.ExitFailure
		}
		defer out.Close()
	}

	if err := coinledger.ExportCSV(out, p.Ledger); err != nil {
		fmt.Fprintf(os.Stderr, "Error exporting: %v\n", err)
		return subcommands.ExitFailure
	}
	if c.out != "" {
		fmt.Printf("Exported %d transactions to %s\n", p.Ledger.Len(), c.out)
	}
	return subcommands.ExitSuccess
}
