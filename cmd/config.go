package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/google/subcommands"
)

type configCmd struct {
	holdingDays int
	windowDays  int
	currency    string
	fetch       string
	apiKey      string
}

func (*configCmd) Name() string     { return "config" }
func (*configCmd) Synopsis() string { return "show or change the profile settings" }
func (*configCmd) Usage() string {
	return `cpl config [-holding-days <n>] [-window-days <n>] [-currency <EUR|USD>] [-fetch-prices <on|off>] [-api-key <key>]

  Without flags, prints the current settings. With flags, updates them.
`
}

func (c *configCmd) SetFlags(f *flag.FlagSet) {
	f.IntVar(&c.holdingDays, "holding-days", -1, "Tax holding period in days (0 disables tracking)")
	f.IntVar(&c.windowDays, "window-days", -1, "Look-ahead window of the expiring report, in days")
	f.StringVar(&c.currency, "currency", "", "Base reporting currency (EUR or USD)")
	f.StringVar(&c.fetch, "fetch-prices", "", "Enable or disable price enrichment (on or off)")
	f.StringVar(&c.apiKey, "api-key", "", "CoinGecko API key")
}

func (c *configCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	p, err := OpenProfile()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading profile: %v\n", err)
		return subcommands.ExitFailure
	}

	changed := false
	if c.holdingDays >= 0 {
		p.Config.HoldingPeriodDays = c.holdingDays
		changed = true
	}
	if c.windowDays >= 0 {
		p.Config.UpcomingWindowDays = c.windowDays
		changed = true
	}
	if c.currency != "" {
		p.Config.BaseCurrency = strings.ToUpper(c.currency)
		changed = true
	}
	if c.fetch != "" {
		switch strings.ToLower(c.fetch) {
		case "on", "true":
			p.Config.FetchPrices = true
		case "off", "false":
			p.Config.FetchPrices = false
		default:
			fmt.Fprintf(os.Stderr, "Error: -fetch-prices must be on or off, got %q\n", c.fetch)
			return subcommands.ExitUsageError
		}
		changed = true
	}
	if c.apiKey != "" {
		p.Config.PriceAPIKey = c.apiKey
		changed = true
	}

	if changed {
		if err := p.Config.Validate(); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return subcommands.ExitUsageError
		}
		if status := SaveProfile(p); status != subcommands.ExitSuccess {
			return status
		}
	}

	fmt.Printf("profile:                      %s\n", p.Name)
	fmt.Printf("holding_period_days:          %d\n", p.Config.HoldingPeriodDays)
	fmt.Printf("upcoming_holding_window_days: %d\n", p.Config.UpcomingWindowDays)
	fmt.Printf("base_currency:                %s\n", p.Config.BaseCurrency)
	fmt.Printf("fetch_prices:                 %t\n", p.Config.FetchPrices)
	fmt.Printf("price_api_key:                %s\n", maskKey(p.Config.PriceAPIKey))
	return subcommands.ExitSuccess
}

func maskKey(key string) string {
	if key == "" {
		return "(not set)"
	}
	if len(key) <= 4 {
		return "****"
	}
	return "****" + key[len(key)-4:]
}
