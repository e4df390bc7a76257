package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/google/subcommands"

	"github.com/coinledger/coinledger"
	"github.com/coinledger/coinledger/renderer"
)

type expiringCmd struct {
	window int
}

func (*expiringCmd) Name() string     { return "expiring" }
func (*expiringCmd) Synopsis() string { return "list holdings whose tax holding period ends soon" }
func (*expiringCmd) Usage() string {
	return `cpl expiring [-w <days>]

  Lists the acquisitions whose configured holding period ends within the
  look-ahead window, soonest first. See 'cpl topic holding-period'.
`
}

func (c *expiringCmd) SetFlags(f *flag.FlagSet) {
	f.IntVar(&c.window, "w", 0, "Look-ahead window in days (default: profile setting)")
}

func (c *expiringCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	p, err := OpenProfile()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading profile: %v\n", err)
		return subcommands.ExitFailure
	}

	cfg := p.Config
	if c.window > 0 {
		cfg.UpcomingWindowDays = c.window
	}

	items := coinledger.ComputeExpiring(p.Ledger.Transactions(), cfg, time.Now().UTC())

	var md strings.Builder
	renderer.Expiring(&md, items)
	printMarkdown(md.String())
	return subcommands.ExitSuccess
}
