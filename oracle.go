package coinledger

import (
	"context"
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

// ErrPriceUnavailable is returned by a PriceOracle when no price exists for
// the requested asset and instant.
var ErrPriceUnavailable = errors.New("price unavailable")

// PricePoint is a historical price of one asset unit in both base fiats.
type PricePoint struct {
	EUR decimal.Decimal
	USD decimal.Decimal
}

// PriceOracle resolves historical prices. Implementations may be
// rate-limited or fail; callers treat lookups as best-effort and must not
// let a failure abort a ledger mutation.
type PriceOracle interface {
	HistoricalPrice(ctx context.Context, symbol string, t time.Time) (PricePoint, error)
}
