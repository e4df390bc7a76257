package coinledger

import "sort"

// Normalize repairs the bidirectional prev/next link graph across the whole
// transaction set, in place. It reports whether anything was changed.
//
// The repair is idempotent and order-independent: the outcome depends only on
// the ids and link values present, not on the slice order. It runs in four
// passes over an id-indexed view:
//
//  1. sanitize: drop non-positive, dangling and self references
//  2. propagate forward: make the referenced partner point back, displacing
//     a stale back-pointer only if it still pointed at the partner
//  3. enforce symmetry: drop any reference the partner does not reciprocate
//  4. degenerate-pair guard: a node whose prev and next are the same partner
//     is unlinked on both sides
//
// Corrupted links are never surfaced as errors; they are repaired silently.
func Normalize(txs []Transaction) bool {
	byID := make(map[int64]*Transaction, len(txs))
	ids := make([]int64, 0, len(txs))
	for i := range txs {
		t := &txs[i]
		if t.ID <= 0 {
			continue
		}
		if _, dup := byID[t.ID]; dup {
			continue
		}
		byID[t.ID] = t
		ids = append(ids, t.ID)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	changed := false

	// pass 1: sanitize
	for i := range txs {
		t := &txs[i]
		if t.LinkedPrev != nil {
			if p := *t.LinkedPrev; p <= 0 || p == t.ID || byID[p] == nil {
				t.LinkedPrev = nil
				changed = true
			}
		}
		if t.LinkedNext != nil {
			if n := *t.LinkedNext; n <= 0 || n == t.ID || byID[n] == nil {
				t.LinkedNext = nil
				changed = true
			}
		}
	}

	// pass 2: propagate forward
	for _, id := range ids {
		a := byID[id]
		if a.LinkedPrev != nil {
			p := byID[*a.LinkedPrev]
			if p.LinkedNext == nil || *p.LinkedNext != a.ID {
				if p.LinkedNext != nil {
					// displace, but only clear the old target's back-pointer
					// if it still points back at p
					if d := byID[*p.LinkedNext]; d.LinkedPrev != nil && *d.LinkedPrev == p.ID {
						d.LinkedPrev = nil
					}
				}
				p.LinkedNext = Ref(a.ID)
				changed = true
			}
		}
		if a.LinkedNext != nil {
			n := byID[*a.LinkedNext]
			if n.LinkedPrev == nil || *n.LinkedPrev != a.ID {
				if n.LinkedPrev != nil {
					if d := byID[*n.LinkedPrev]; d.LinkedNext != nil && *d.LinkedNext == n.ID {
						d.LinkedNext = nil
					}
				}
				n.LinkedPrev = Ref(a.ID)
				changed = true
			}
		}
	}

	// pass 3: enforce symmetry
	for _, id := range ids {
		a := byID[id]
		if a.LinkedPrev != nil {
			p := byID[*a.LinkedPrev]
			if p.LinkedNext == nil || *p.LinkedNext != a.ID {
				a.LinkedPrev = nil
				changed = true
			}
		}
		if a.LinkedNext != nil {
			n := byID[*a.LinkedNext]
			if n.LinkedPrev == nil || *n.LinkedPrev != a.ID {
				a.LinkedNext = nil
				changed = true
			}
		}
	}

	// pass 4: degenerate-pair guard
	for _, id := range ids {
		a := byID[id]
		if a.LinkedPrev == nil || a.LinkedNext == nil || *a.LinkedPrev != *a.LinkedNext {
			continue
		}
		b := byID[*a.LinkedPrev]
		if b.LinkedPrev != nil && *b.LinkedPrev == a.ID {
			b.LinkedPrev = nil
		}
		if b.LinkedNext != nil && *b.LinkedNext == a.ID {
			b.LinkedNext = nil
		}
		a.LinkedPrev, a.LinkedNext = nil, nil
		changed = true
	}

	return changed
}
