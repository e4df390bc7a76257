package coinledger

import (
	"fmt"
	"sort"
)

// Ledger holds the ordered transaction set for one profile.
//
// Transactions are kept sorted by timestamp (stable, so insertion order is
// preserved among equal instants). Every structural mutation re-runs
// Normalize over the whole set, because an edit can displace link pointers
// on records that were not touched directly.
type Ledger struct {
	transactions []Transaction
	lastID       int64
}

// NewLedger returns an empty ledger.
func NewLedger() *Ledger { return &Ledger{} }

// Len returns the number of transactions in the ledger.
func (l *Ledger) Len() int { return len(l.transactions) }

// LastID returns the id allocation high-water mark.
func (l *Ledger) LastID() int64 { return l.lastID }

// SetLastID raises the id allocation mark. It never lowers it, so ids stay
// unique even when the persisted mark lags behind the stored transactions.
func (l *Ledger) SetLastID(id int64) {
	if id > l.lastID {
		l.lastID = id
	}
}

// Get returns the transaction with the given id.
func (l *Ledger) Get(id int64) (Transaction, bool) {
	for i := range l.transactions {
		if l.transactions[i].ID == id {
			return l.transactions[i], true
		}
	}
	return Transaction{}, false
}

// Transactions returns a copy of the transaction set in chronological order.
func (l *Ledger) Transactions() []Transaction {
	out := make([]Transaction, len(l.transactions))
	copy(out, l.transactions)
	return out
}

func (l *Ledger) sort() {
	sort.SliceStable(l.transactions, func(i, j int) bool {
		a, b := l.transactions[i], l.transactions[j]
		if !a.Timestamp.Equal(b.Timestamp) {
			return a.Timestamp.Before(b.Timestamp)
		}
		return a.ID < b.ID
	})
}

// Append validates the given transactions, assigns fresh ids, inserts them
// in timestamp order and normalizes the link graph. It returns the assigned
// ids, in the order the transactions were given. Invalid transactions are
// rejected as a whole: either all are appended or none.
func (l *Ledger) Append(txs ...Transaction) ([]int64, error) {
	fixed := make([]Transaction, 0, len(txs))
	for _, tx := range txs {
		f, err := tx.Validate()
		if err != nil {
			return nil, fmt.Errorf("invalid transaction: %w", err)
		}
		fixed = append(fixed, f)
	}
	ids := make([]int64, 0, len(fixed))
	for i := range fixed {
		l.lastID++
		fixed[i].ID = l.lastID
		ids = append(ids, l.lastID)
	}
	l.transactions = append(l.transactions, fixed...)
	l.sort()
	Normalize(l.transactions)
	return ids, nil
}

// Update replaces the transaction carrying tx.ID.
func (l *Ledger) Update(tx Transaction) error {
	fixed, err := tx.Validate()
	if err != nil {
		return fmt.Errorf("invalid transaction: %w", err)
	}
	for i := range l.transactions {
		if l.transactions[i].ID == fixed.ID {
			l.transactions[i] = fixed
			l.sort()
			Normalize(l.transactions)
			return nil
		}
	}
	return fmt.Errorf("no transaction with id %d", tx.ID)
}

// Delete removes the transaction with the given id. Links pointing at the
// removed record become dangling and are cleared by normalization.
func (l *Ledger) Delete(id int64) error {
	for i := range l.transactions {
		if l.transactions[i].ID == id {
			l.transactions = append(l.transactions[:i], l.transactions[i+1:]...)
			Normalize(l.transactions)
			return nil
		}
	}
	return fmt.Errorf("no transaction with id %d", id)
}

// Link connects prev to next as a bidirectional pair. Any previous link on
// the affected sides is displaced by normalization.
func (l *Ledger) Link(prevID, nextID int64) error {
	if prevID == nextID {
		return fmt.Errorf("cannot link transaction %d to itself", prevID)
	}
	var prev, next *Transaction
	for i := range l.transactions {
		switch l.transactions[i].ID {
		case prevID:
			prev = &l.transactions[i]
		case nextID:
			next = &l.transactions[i]
		}
	}
	if prev == nil {
		return fmt.Errorf("no transaction with id %d", prevID)
	}
	if next == nil {
		return fmt.Errorf("no transaction with id %d", nextID)
	}
	prev.LinkedNext = Ref(nextID)
	next.LinkedPrev = Ref(prevID)
	Normalize(l.transactions)
	return nil
}

// Unlink clears both link pointers of the given transaction. The partners'
// now-unreciprocated pointers are cleared by normalization.
func (l *Ledger) Unlink(id int64) error {
	for i := range l.transactions {
		if l.transactions[i].ID == id {
			l.transactions[i].LinkedPrev = nil
			l.transactions[i].LinkedNext = nil
			Normalize(l.transactions)
			return nil
		}
	}
	return fmt.Errorf("no transaction with id %d", id)
}

// ReplaceAll swaps in a whole new transaction set, typically on load. The
// set is sorted and normalized defensively, and the id mark is raised to
// the highest id seen.
func (l *Ledger) ReplaceAll(txs []Transaction) {
	l.transactions = txs
	for i := range txs {
		l.SetLastID(txs[i].ID)
	}
	l.sort()
	Normalize(l.transactions)
}
