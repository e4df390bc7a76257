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

type txCmd struct {
	asset string
}

func (*txCmd) Name() string     { return "tx" }
func (*txCmd) Synopsis() string { return "display the transaction list" }
func (*txCmd) Usage() string {
	return `cpl tx [-a <asset>]

  Displays the ledger in chronological order, with link markers and
  explorer links for known external transaction ids.
`
}

func (c *txCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.asset, "a", "", "Only show transactions of this asset")
}

func (c *txCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	p, err := OpenProfile()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading profile: %v\n", err)
		return subcommands.ExitFailure
	}

	txs := p.Ledger.Transactions()
	if c.asset != "" {
		want := strings.ToUpper(strings.TrimSpace(c.asset))
		filtered := txs[:0]
		for _, tx := range txs {
			if tx.Asset == want {
				filtered = append(filtered, tx)
			}
		}
		txs = filtered
	}

	var md strings.Builder
	renderer.Transactions(&md, txs, coinledger.DefaultCatalog())
	printMarkdown(md.String())
	return subcommands.ExitSuccess
}
