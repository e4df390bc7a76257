// Package coingecko resolves historical asset prices against the CoinGecko
// public API. Responses are cached on disk so repeated imports of the same
// period do not burn through the rate limit.
package coingecko

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/PaesslerAG/jsonpath"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/coinledger/coinledger"
)

const baseURL = "https://api.coingecko.com/api/v3"

// coinIDs maps ticker symbols to CoinGecko coin ids for the assets of the
// built-in catalog.
var coinIDs = map[string]string{
	"BTC":   "bitcoin",
	"ETH":   "ethereum",
	"ADA":   "cardano",
	"SOL":   "solana",
	"DOT":   "polkadot",
	"XRP":   "ripple",
	"LTC":   "litecoin",
	"BNB":   "binancecoin",
	"MATIC": "matic-network",
	"AVAX":  "avalanche-2",
	"LINK":  "chainlink",
	"DOGE":  "dogecoin",
	"ATOM":  "cosmos",
	"XLM":   "stellar",
	"ALGO":  "algorand",
	"XTZ":   "tezos",
	"IOTA":  "iota",
	"MIOTA": "iota",
	"UNI":   "uniswap",
	"AAVE":  "aave",
	"USDT":  "tether",
	"USDC":  "usd-coin",
}

// Client implements the price oracle against CoinGecko.
type Client struct {
	http   *http.Client
	apiKey string
	log    zerolog.Logger
}

// New builds a client. The api key is optional (the public tier works
// without one, with a tighter rate limit).
func New(apiKey string, log *zerolog.Logger) *Client {
	l := zerolog.Nop()
	if log != nil {
		l = *log
	}
	cacheDir := filepath.Join(os.TempDir(), "coinledger", "coingecko")
	if dir, err := os.UserCacheDir(); err == nil {
		cacheDir = filepath.Join(dir, "coinledger", "coingecko")
	}
	return &Client{
		http: &http.Client{
			Transport: newDiskCache(cacheDir),
			Timeout:   30 * time.Second,
		},
		apiKey: apiKey,
		log:    l,
	}
}

// HistoricalPrice returns the EUR and USD price of one asset unit on the
// day of t. It wraps coinledger.ErrPriceUnavailable for unknown assets,
// missing market data and rate-limit rejections.
func (c *Client) HistoricalPrice(ctx context.Context, symbol string, t time.Time) (coinledger.PricePoint, error) {
	id, ok := coinIDs[strings.ToUpper(strings.TrimSpace(symbol))]
	if !ok {
		return coinledger.PricePoint{}, fmt.Errorf("no CoinGecko id for %q: %w", symbol, coinledger.ErrPriceUnavailable)
	}

	url := fmt.Sprintf("%s/coins/%s/history?date=%s&localization=false",
		baseURL, id, t.UTC().Format("02-01-2006"))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return coinledger.PricePoint{}, err
	}
	req.Header.Set("Accept", "application/json")
	if c.apiKey != "" {
		req.Header.Set("x-cg-demo-api-key", c.apiKey)
	}

	c.log.Debug().Str("coin", id).Time("at", t).Msg("fetching historical price")
	resp, err := c.http.Do(req)
	if err != nil {
		return coinledger.PricePoint{}, fmt.Errorf("price request failed: %w", err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
	case http.StatusTooManyRequests:
		return coinledger.PricePoint{}, fmt.Errorf("rate limited by CoinGecko: %w", coinledger.ErrPriceUnavailable)
	default:
		return coinledger.PricePoint{}, fmt.Errorf("CoinGecko returned %s: %w", resp.Status, coinledger.ErrPriceUnavailable)
	}

	var doc interface{}
	if err := json.NewDecoder(resp.Body).Decode(&doc); err != nil {
		return coinledger.PricePoint{}, fmt.Errorf("could not decode price response: %w", err)
	}

	eur, err := priceAt(doc, "$.market_data.current_price.eur")
	if err != nil {
		return coinledger.PricePoint{}, err
	}
	usd, err := priceAt(doc, "$.market_data.current_price.usd")
	if err != nil {
		return coinledger.PricePoint{}, err
	}
	return coinledger.PricePoint{EUR: eur, USD: usd}, nil
}

func priceAt(doc interface{}, path string) (decimal.Decimal, error) {
	v, err := jsonpath.Get(path, doc)
	if err != nil {
		return decimal.Decimal{}, fmt.Errorf("no market data in response: %w", coinledger.ErrPriceUnavailable)
	}
	f, ok := v.(float64)
	if !ok {
		return decimal.Decimal{}, fmt.Errorf("unexpected price value %v: %w", v, coinledger.ErrPriceUnavailable)
	}
	return decimal.NewFromFloat(f), nil
}
