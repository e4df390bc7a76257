package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strconv"

	"github.com/google/subcommands"
)

type linkCmd struct{}

func (*linkCmd) Name() string     { return "link" }
func (*linkCmd) Synopsis() string { return "link two transactions as predecessor and successor" }
func (*linkCmd) Usage() string {
	return `cpl link <prev id> <next id>

  Connects two transactions into a bidirectional pair. A conflicting
  older link on either side is displaced. See 'cpl topic linked-transactions'.
`
}

func (c *linkCmd) SetFlags(f *flag.FlagSet) {}

func (c *linkCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 2 {
		fmt.Fprintln(os.Stderr, "Error: expected two transaction ids")
		return subcommands.ExitUsageError
	}
	prev, err1 := strconv.ParseInt(f.Arg(0), 10, 64)
	next, err2 := strconv.ParseInt(f.Arg(1), 10, 64)
	if err1 != nil || err2 != nil {
		fmt.Fprintln(os.Stderr, "Error: ids must be integers")
		return subcommands.ExitUsageError
	}

	p, err := OpenProfile()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading profile: %v\n", err)
		return subcommands.ExitFailure
	}
	if err := p.Ledger.Link(prev, next); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	fmt.Printf("Linked %d -> %d\n", prev, next)
	return SaveProfile(p)
}
