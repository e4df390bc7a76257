package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/google/subcommands"

	"github.com/coinledger/coinledger"
)

type recordCmd struct {
	asset    string
	txType   string
	amount   string
	price    string
	currency string
	date     string
	note     string
	txID     string
}

func (*recordCmd) Name() string     { return "record" }
func (*recordCmd) Synopsis() string { return "record a transaction by hand" }
func (*recordCmd) Usage() string {
	return `cpl record -a <asset> -t <type> -q <amount> [-p <price>] [-c <currency>] [-d <timestamp>] [-n <note>] [-id <external id>]

  Appends one manually entered transaction to the ledger.
`
}

func (c *recordCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.asset, "a", "", "Asset symbol (e.g. BTC)")
	f.StringVar(&c.txType, "t", "BUY", "Transaction type (BUY, SELL, TRANSFER_IN, TRANSFER_OUT, TRANSFER_INTERNAL, STAKING_REWARD, AIRDROP, REWARD)")
	f.StringVar(&c.amount, "q", "", "Quantity, always positive")
	f.StringVar(&c.price, "p", "", "Unit price in fiat")
	f.StringVar(&c.currency, "c", "EUR", "Fiat currency of the price")
	f.StringVar(&c.date, "d", "", "Timestamp (ISO-8601, default: now)")
	f.StringVar(&c.note, "n", "", "Free-text note")
	f.StringVar(&c.txID, "id", "", "External transaction id")
}

func (c *recordCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	txType, err := coinledger.ParseTxType(c.txType)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitUsageError
	}
	amount, err := coinledger.ParseAmount(c.amount)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitUsageError
	}

	ts := time.Now().UTC()
	if c.date != "" {
		ts, err = coinledger.ParseTimestamp(c.date)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return subcommands.ExitUsageError
		}
	}

	tx := coinledger.Transaction{
		Asset:        c.asset,
		Type:         txType,
		Amount:       amount.Abs(),
		FiatCurrency: c.currency,
		Timestamp:    ts,
		Source:       "manual",
		Note:         c.note,
		TxID:         c.txID,
	}
	if c.price != "" {
		price, err := coinledger.ParseAmount(c.price)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return subcommands.ExitUsageError
		}
		tx.PriceFiat = &price
		value := price.Mul(tx.Amount)
		tx.FiatValue = &value
	}

	p, err := OpenProfile()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading profile: %v\n", err)
		return subcommands.ExitFailure
	}

	ids, err := p.Ledger.Append(tx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	fmt.Printf("Recorded transaction %d\n", ids[0])
	return SaveProfile(p)
}
