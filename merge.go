package coinledger

import (
	"fmt"
	"sort"
	"strings"
	"unicode"
)

// transferMergeWindow is the maximum time between the two legs of an
// internal move for them to be considered the same movement.
const transferMergeWindow = 60 // seconds

// MergeInternalTransfers collapses matched TRANSFER_IN/TRANSFER_OUT pairs
// of one import batch into single TRANSFER_INTERNAL records. Exchanges
// record an internal move such as a stake or unstake as two separate legs;
// a pair matches when both legs share asset and amount, have opposite
// directions, and lie within 60 seconds of each other.
//
// Pairing is greedy: legs are grouped by (asset, amount), sorted by time,
// and each unconsumed leg takes the nearest later opposite leg inside the
// window. Unmatched legs and non-transfer rows pass through unchanged. The
// operation is batch-scoped and never looks at previously stored records.
func MergeInternalTransfers(batch []Transaction) []Transaction {
	type leg struct {
		idx int
		tx  Transaction
	}
	groups := make(map[string][]leg)
	for i, tx := range batch {
		if tx.Type != TypeTransferIn && tx.Type != TypeTransferOut {
			continue
		}
		key := strings.ToUpper(tx.Asset) + "|" + tx.Amount.Abs().String()
		groups[key] = append(groups[key], leg{idx: i, tx: tx})
	}

	consumed := make(map[int]bool)
	merged := make(map[int]Transaction) // keyed by the earlier leg's index

	for _, legs := range groups {
		sort.SliceStable(legs, func(i, j int) bool {
			return legs[i].tx.Timestamp.Before(legs[j].tx.Timestamp)
		})
		for i := 0; i < len(legs); i++ {
			if consumed[legs[i].idx] {
				continue
			}
			a := legs[i]
			for j := i + 1; j < len(legs); j++ {
				if consumed[legs[j].idx] {
					continue
				}
				b := legs[j]
				if b.tx.Type == a.tx.Type {
					continue
				}
				if b.tx.Timestamp.Sub(a.tx.Timestamp).Seconds() > transferMergeWindow {
					break // legs are time-sorted, no later one can match
				}
				consumed[a.idx] = true
				consumed[b.idx] = true
				merged[a.idx] = mergeLegs(a.tx, b.tx)
				break
			}
		}
	}

	out := make([]Transaction, 0, len(batch))
	for i, tx := range batch {
		if m, ok := merged[i]; ok {
			out = append(out, m)
			continue
		}
		if consumed[i] {
			continue
		}
		out = append(out, tx)
	}
	return out
}

// mergeLegs builds the merged record from two matched legs. The OUT leg is
// the base record; a is the earlier leg and determines the direction shown
// in the generic note.
func mergeLegs(a, b Transaction) Transaction {
	out := a
	if b.Type == TypeTransferOut {
		out = b
	}
	out.Type = TypeTransferInternal
	out.Amount = out.Amount.Abs()
	out.TxID = ""
	out.Note = mergeNote(a, b, out.Amount.String(), strings.ToUpper(out.Asset))
	return out
}

func mergeNote(a, b Transaction, amount, symbol string) string {
	combined := strings.ToLower(a.Note + " " + b.Note)
	var note string
	switch {
	case strings.Contains(combined, "unstake"):
		note = fmt.Sprintf("unstaked %s %s", amount, symbol)
	case strings.Contains(combined, "stake"):
		note = fmt.Sprintf("staked %s %s", amount, symbol)
	default:
		dir := "OUT"
		if a.Type == TypeTransferIn {
			dir = "IN"
		}
		note = fmt.Sprintf("internal transfer %s %s %s", dir, amount, symbol)
	}
	return capitalize(note)
}

func capitalize(s string) string {
	runes := []rune(s)
	if len(runes) == 0 {
		return s
	}
	runes[0] = unicode.ToUpper(runes[0])
	return string(runes)
}
