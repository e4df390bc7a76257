package coinledger

import (
	"math"
	"sort"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// fiatSymbols are excluded from holdings; fiat balances are not portfolio
// positions.
var fiatSymbols = map[string]bool{
	"EUR": true, "USD": true, "CHF": true, "GBP": true,
	"JPY": true, "AUD": true, "CAD": true, "CNY": true,
}

// IsFiat reports whether the symbol is a known fiat currency ticker.
func IsFiat(symbol string) bool {
	return fiatSymbols[strings.ToUpper(strings.TrimSpace(symbol))]
}

// holdingsTolerance absorbs decimal dust left over from offsetting
// acquisitions and disposals.
var holdingsTolerance = decimal.New(1, -12)

// HoldingsItem is a derived, non-persisted portfolio position. The value
// fields are filled by a price oracle, when one is available.
type HoldingsItem struct {
	Asset    string
	Total    decimal.Decimal
	ValueEUR *decimal.Decimal
	ValueUSD *decimal.Decimal
}

// ComputeHoldings aggregates the signed per-asset quantities of the given
// transactions into current positions. Internal transfers do not change
// quantity and are skipped; fiat symbols and positions at or below the
// dust tolerance are dropped. Results are sorted by symbol.
func ComputeHoldings(txs []Transaction) []HoldingsItem {
	totals := make(map[string]decimal.Decimal)
	for _, tx := range txs {
		sign := tx.Type.Sign()
		if sign == 0 {
			continue
		}
		symbol := strings.ToUpper(tx.Asset)
		delta := tx.Amount
		if sign < 0 {
			delta = delta.Neg()
		}
		totals[symbol] = totals[symbol].Add(delta)
	}

	items := make([]HoldingsItem, 0, len(totals))
	for symbol, total := range totals {
		if IsFiat(symbol) || total.Cmp(holdingsTolerance) <= 0 {
			continue
		}
		items = append(items, HoldingsItem{Asset: symbol, Total: total})
	}
	sort.Slice(items, func(i, j int) bool { return items[i].Asset < items[j].Asset })
	return items
}

// ExpiringHolding is an acquisition whose tax holding period ends within
// the configured look-ahead window.
type ExpiringHolding struct {
	TxID          int64
	Asset         string
	Amount        decimal.Decimal
	Acquired      time.Time
	PeriodEnd     time.Time
	DaysRemaining int
}

// ComputeExpiring lists the acquisition transactions whose holding period
// ends between now and now plus the configured look-ahead window, soonest
// first. It returns nil when holding-period tracking is disabled.
func ComputeExpiring(txs []Transaction, cfg Config, now time.Time) []ExpiringHolding {
	if cfg.HoldingPeriodDays <= 0 {
		return nil
	}
	var items []ExpiringHolding
	for _, tx := range txs {
		if !tx.Type.IsAcquisition() || IsFiat(tx.Asset) {
			continue
		}
		end := tx.Timestamp.Add(time.Duration(cfg.HoldingPeriodDays) * 24 * time.Hour)
		remaining := int(math.Round(end.Sub(now).Hours() / 24))
		if remaining < 0 || remaining > cfg.UpcomingWindowDays {
			continue
		}
		items = append(items, ExpiringHolding{
			TxID:          tx.ID,
			Asset:         strings.ToUpper(tx.Asset),
			Amount:        tx.Amount,
			Acquired:      tx.Timestamp,
			PeriodEnd:     end,
			DaysRemaining: remaining,
		})
	}
	sort.SliceStable(items, func(i, j int) bool {
		if items[i].DaysRemaining != items[j].DaysRemaining {
			return items[i].DaysRemaining < items[j].DaysRemaining
		}
		return items[i].PeriodEnd.Before(items[j].PeriodEnd)
	})
	return items
}
