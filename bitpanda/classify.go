package bitpanda

import (
	"strings"

	"github.com/coinledger/coinledger"
)

// ClassifyType maps Bitpanda's free-text transaction type plus the In/Out
// direction onto a ledger type. The rules are checked in priority order;
// anything unrecognized imports as a BUY.
func ClassifyType(txType, direction string) coinledger.TxType {
	t := strings.ToLower(strings.TrimSpace(txType))
	incoming := isIncoming(direction)

	switch {
	case strings.Contains(t, "staking") || strings.Contains(t, "reward"):
		return coinledger.TypeStakingReward
	case strings.Contains(t, "airdrop"):
		return coinledger.TypeAirdrop
	case strings.Contains(t, "deposit"):
		return coinledger.TypeTransferIn
	case strings.Contains(t, "transfer"):
		if incoming {
			return coinledger.TypeTransferIn
		}
		return coinledger.TypeTransferOut
	case strings.Contains(t, "withdrawal"):
		return coinledger.TypeTransferOut
	case strings.Contains(t, "sell"):
		return coinledger.TypeSell
	case strings.Contains(t, "buy"):
		return coinledger.TypeBuy
	case strings.Contains(t, "trade"):
		if incoming {
			return coinledger.TypeBuy
		}
		return coinledger.TypeSell
	default:
		return coinledger.TypeBuy
	}
}

func isIncoming(direction string) bool {
	d := strings.ToLower(strings.TrimSpace(direction))
	return d == "in" || d == "incoming"
}
