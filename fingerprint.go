package coinledger

import (
	"strings"
	"time"
)

// Fingerprint returns the deduplication key for a transaction. When an
// external reference id is present it alone identifies the transaction;
// otherwise the key is built from the identifying fields.
//
// The fallback key includes the free-text source and note fields: two
// otherwise identical records differing only in note text are not
// considered duplicates, and an exact coincidental match across all fields
// is. That trade-off is deliberate; there is no stronger identity to key on.
func Fingerprint(t Transaction) string {
	if id := strings.TrimSpace(t.TxID); id != "" {
		return "id:" + id
	}
	price := ""
	if t.PriceFiat != nil {
		price = t.PriceFiat.String()
	}
	return strings.Join([]string{
		strings.ToUpper(t.Asset),
		strings.ToUpper(string(t.Type)),
		t.Amount.String(),
		price,
		strings.ToUpper(t.FiatCurrency),
		t.Timestamp.UTC().Format(time.RFC3339),
		t.Source,
		t.Note,
	}, "|")
}

// DedupIndex tracks the fingerprints of all known transactions. It is
// seeded from the full ledger before a batch import begins and updated as
// rows are accepted, so two identical rows within the same file are also
// deduplicated (the first wins).
type DedupIndex struct {
	seen map[string]bool
}

// NewDedupIndex builds an index seeded with every transaction of the ledger.
func NewDedupIndex(l *Ledger) *DedupIndex {
	d := &DedupIndex{seen: make(map[string]bool, l.Len())}
	for _, tx := range l.transactions {
		d.seen[Fingerprint(tx)] = true
	}
	return d
}

// Accept reports whether the transaction is new, and records it if so.
func (d *DedupIndex) Accept(t Transaction) bool {
	fp := Fingerprint(t)
	if d.seen[fp] {
		return false
	}
	d.seen[fp] = true
	return true
}
