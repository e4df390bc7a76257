package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/google/subcommands"

	"github.com/coinledger/coinledger"
	"github.com/coinledger/coinledger/renderer"
)

type holdingsCmd struct {
	currency string
}

func (*holdingsCmd) Name() string     { return "holdings" }
func (*holdingsCmd) Synopsis() string { return "display current portfolio holdings" }
func (*holdingsCmd) Usage() string {
	return `cpl holdings [-c <currency>]

  Displays the current per-asset positions derived from the ledger.
`
}

func (c *holdingsCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.currency, "c", "", "Reporting currency (EUR or USD, default: profile setting)")
}

func (c *holdingsCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	p, err := OpenProfile()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading profile: %v\n", err)
		return subcommands.ExitFailure
	}

	base := p.Config.BaseCurrency
	if c.currency != "" {
		base = strings.ToUpper(c.currency)
	}

	items := coinledger.ComputeHoldings(p.Ledger.Transactions())

	var md strings.Builder
	renderer.Holdings(&md, items, base)
	printMarkdown(md.String())
	return subcommands.ExitSuccess
}
