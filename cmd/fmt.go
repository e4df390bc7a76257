package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"
)

type fmtCmd struct{}

func (*fmtCmd) Name() string     { return "fmt" }
func (*fmtCmd) Synopsis() string { return "rewrite the ledger file in canonical form" }
func (*fmtCmd) Usage() string {
	return `cpl fmt

  Reloads the ledger, sorts it chronologically, repairs the link graph
  and writes it back. Useful after editing the file by hand.
`
}

func (c *fmtCmd) SetFlags(f *flag.FlagSet) {}

func (c *fmtCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	p, err := OpenProfile()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading profile: %v\n", err)
		return subcommands.ExitFailure
	}
	// loading already sorted and normalized; saving writes the canonical form
	if status := SaveProfile(p); status != subcommands.ExitSuccess {
		return status
	}
	fmt.Printf("Rewrote %s (%d transactions)\n", p.LedgerPath(), p.Ledger.Len())
	return subcommands.ExitSuccess
}
