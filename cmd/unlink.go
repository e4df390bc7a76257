package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strconv"

	"github.com/google/subcommands"
)

type unlinkCmd struct{}

func (*unlinkCmd) Name() string     { return "unlink" }
func (*unlinkCmd) Synopsis() string { return "disconnect a transaction from its linked partners" }
func (*unlinkCmd) Usage() string {
	return `cpl unlink <id>

  Clears both link pointers of one transaction. The partners' pointers
  back at it are cleared as well.
`
}

func (c *unlinkCmd) SetFlags(f *flag.FlagSet) {}

func (c *unlinkCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "Error: expected exactly one transaction id")
		return subcommands.ExitUsageError
	}
	id, err := strconv.ParseInt(f.Arg(0), 10, 64)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: invalid id %q\n", f.Arg(0))
		return subcommands.ExitUsageError
	}

	p, err := OpenProfile()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading profile: %v\n", err)
		return subcommands.ExitFailure
	}
	if err := p.Ledger.Unlink(id); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	fmt.Printf("Unlinked transaction %d\n", id)
	return SaveProfile(p)
}
