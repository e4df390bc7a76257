package coinledger

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

func linkTx(id int64, prev, next *int64) Transaction {
	return Transaction{
		ID:         id,
		Asset:      "BTC",
		Type:       TypeBuy,
		Amount:     decimal.NewFromInt(1),
		Timestamp:  time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC).Add(time.Duration(id) * time.Hour),
		LinkedPrev: prev,
		LinkedNext: next,
	}
}

func TestNormalize(t *testing.T) {
	tests := []struct {
		name string
		in   []Transaction
		want map[int64][2]*int64 // id -> {prev, next}
	}{
		{
			name: "valid pair is untouched",
			in: []Transaction{
				linkTx(1, nil, Ref(2)),
				linkTx(2, Ref(1), nil),
			},
			want: map[int64][2]*int64{1: {nil, Ref(2)}, 2: {Ref(1), nil}},
		},
		{
			name: "self reference is cleared",
			in: []Transaction{
				linkTx(1, Ref(1), Ref(1)),
			},
			want: map[int64][2]*int64{1: {nil, nil}},
		},
		{
			name: "dangling reference is cleared",
			in: []Transaction{
				linkTx(1, Ref(99), Ref(42)),
			},
			want: map[int64][2]*int64{1: {nil, nil}},
		},
		{
			name: "non-positive reference is cleared",
			in: []Transaction{
				linkTx(1, Ref(-3), Ref(0)),
				linkTx(2, nil, nil),
			},
			want: map[int64][2]*int64{1: {nil, nil}, 2: {nil, nil}},
		},
		{
			name: "one-sided prev is propagated to the partner",
			in: []Transaction{
				linkTx(1, nil, nil),
				linkTx(2, Ref(1), nil),
			},
			want: map[int64][2]*int64{1: {nil, Ref(2)}, 2: {Ref(1), nil}},
		},
		{
			name: "one-sided next is propagated to the partner",
			in: []Transaction{
				linkTx(1, nil, Ref(2)),
				linkTx(2, nil, nil),
			},
			want: map[int64][2]*int64{1: {nil, Ref(2)}, 2: {Ref(1), nil}},
		},
		{
			name: "new link displaces the older one",
			// 1 and 2 are a pair; 3 claims 1 as its prev, so 2 loses
			// its back-pointer and 1 follows the newer claim
			in: []Transaction{
				linkTx(1, nil, Ref(2)),
				linkTx(2, Ref(1), nil),
				linkTx(3, Ref(1), nil),
			},
			want: map[int64][2]*int64{1: {nil, Ref(3)}, 2: {nil, nil}, 3: {Ref(1), nil}},
		},
		{
			name: "degenerate two-node cycle is fully unlinked",
			in: []Transaction{
				linkTx(1, Ref(2), Ref(2)),
				linkTx(2, Ref(1), Ref(1)),
			},
			want: map[int64][2]*int64{1: {nil, nil}, 2: {nil, nil}},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			Normalize(tc.in)
			byID := make(map[int64]Transaction)
			for _, tx := range tc.in {
				byID[tx.ID] = tx
			}
			for id, want := range tc.want {
				got := byID[id]
				if !refEqual(got.LinkedPrev, want[0]) {
					t.Errorf("tx %d: prev = %v, want %v", id, fmtRef(got.LinkedPrev), fmtRef(want[0]))
				}
				if !refEqual(got.LinkedNext, want[1]) {
					t.Errorf("tx %d: next = %v, want %v", id, fmtRef(got.LinkedNext), fmtRef(want[1]))
				}
			}
		})
	}
}

func fmtRef(r *int64) interface{} {
	if r == nil {
		return "<nil>"
	}
	return *r
}

func TestNormalizeIdempotent(t *testing.T) {
	// adversarial tangle: self refs, dangling refs, asymmetric claims
	sets := [][]Transaction{
		{
			linkTx(1, Ref(1), Ref(2)),
			linkTx(2, Ref(9), Ref(3)),
			linkTx(3, Ref(2), Ref(2)),
			linkTx(4, Ref(2), nil),
		},
		{
			linkTx(10, Ref(30), Ref(20)),
			linkTx(20, Ref(30), Ref(30)),
			linkTx(30, nil, Ref(10)),
		},
	}
	for i, txs := range sets {
		Normalize(txs)
		snapshot := make([]Transaction, len(txs))
		copy(snapshot, txs)
		if changed := Normalize(txs); changed {
			t.Errorf("set %d: second Normalize reported changes", i)
		}
		for j := range txs {
			if !txs[j].Equal(snapshot[j]) {
				t.Errorf("set %d: tx %d changed on second pass", i, txs[j].ID)
			}
		}
	}
}

func TestNormalizeSymmetryInvariant(t *testing.T) {
	txs := []Transaction{
		linkTx(1, Ref(3), Ref(2)),
		linkTx(2, nil, Ref(3)),
		linkTx(3, Ref(2), Ref(1)),
		linkTx(4, Ref(4), Ref(99)),
	}
	Normalize(txs)

	byID := make(map[int64]Transaction)
	for _, tx := range txs {
		byID[tx.ID] = tx
	}
	for _, tx := range txs {
		if tx.LinkedPrev != nil {
			p := byID[*tx.LinkedPrev]
			if p.LinkedNext == nil || *p.LinkedNext != tx.ID {
				t.Errorf("tx %d: prev %d does not point back", tx.ID, *tx.LinkedPrev)
			}
		}
		if tx.LinkedNext != nil {
			n := byID[*tx.LinkedNext]
			if n.LinkedPrev == nil || *n.LinkedPrev != tx.ID {
				t.Errorf("tx %d: next %d does not point back", tx.ID, *tx.LinkedNext)
			}
		}
		if tx.LinkedPrev != nil && tx.LinkedNext != nil && *tx.LinkedPrev == *tx.LinkedNext {
			t.Errorf("tx %d: degenerate pair with %d survived", tx.ID, *tx.LinkedPrev)
		}
	}
}
