package binance

import (
	"strings"

	"github.com/coinledger/coinledger"
)

// ClassifyType maps the free-text Type cell of a trade export onto a
// ledger transaction type. Trade exports only carry the two trade sides,
// so anything not recognized as a sell is treated as a buy. That default
// is permissive on purpose: an unanticipated type string imports as a BUY
// instead of being dropped.
func ClassifyType(s string) coinledger.TxType {
	if strings.Contains(strings.ToUpper(s), "SELL") {
		return coinledger.TypeSell
	}
	return coinledger.TypeBuy
}
