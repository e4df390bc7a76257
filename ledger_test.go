package coinledger

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

func testTx(asset string, typ TxType, amount string, ts string) Transaction {
	d, err := decimal.NewFromString(amount)
	if err != nil {
		panic(err)
	}
	when, err := time.Parse(time.RFC3339, ts)
	if err != nil {
		panic(err)
	}
	return Transaction{Asset: asset, Type: typ, Amount: d, Timestamp: when}
}

func TestLedgerAppendAssignsMonotonicIDs(t *testing.T) {
	l := NewLedger()
	ids, err := l.Append(
		testTx("BTC", TypeBuy, "1", "2023-01-02T00:00:00Z"),
		testTx("ETH", TypeBuy, "2", "2023-01-01T00:00:00Z"),
	)
	if err != nil {
		t.Fatal(err)
	}
	if len(ids) != 2 || ids[0] != 1 || ids[1] != 2 {
		t.Fatalf("ids = %v, want [1 2]", ids)
	}

	// appended out of order, stored chronologically
	txs := l.Transactions()
	if txs[0].Asset != "ETH" || txs[1].Asset != "BTC" {
		t.Errorf("order = %s, %s; want ETH, BTC", txs[0].Asset, txs[1].Asset)
	}

	if err := l.Delete(2); err != nil {
		t.Fatal(err)
	}
	ids, err = l.Append(testTx("ADA", TypeBuy, "3", "2023-01-03T00:00:00Z"))
	if err != nil {
		t.Fatal(err)
	}
	if ids[0] != 3 {
		t.Errorf("id after delete = %d, want 3 (ids are never reused)", ids[0])
	}
}

func TestLedgerAppendRejectsInvalid(t *testing.T) {
	l := NewLedger()
	_, err := l.Append(
		testTx("BTC", TypeBuy, "1", "2023-01-01T00:00:00Z"),
		testTx("", TypeBuy, "1", "2023-01-01T00:00:00Z"),
	)
	if err == nil {
		t.Fatal("expected an error for the blank asset")
	}
	if l.Len() != 0 {
		t.Errorf("ledger has %d transactions, want 0 (append is all or nothing)", l.Len())
	}
}

func TestLedgerLinkUnlink(t *testing.T) {
	l := NewLedger()
	if _, err := l.Append(
		testTx("BTC", TypeSell, "1", "2023-01-01T00:00:00Z"),
		testTx("ETH", TypeBuy, "10", "2023-01-02T00:00:00Z"),
		testTx("ADA", TypeBuy, "10", "2023-01-03T00:00:00Z"),
	); err != nil {
		t.Fatal(err)
	}

	if err := l.Link(1, 2); err != nil {
		t.Fatal(err)
	}
	a, _ := l.Get(1)
	b, _ := l.Get(2)
	if a.LinkedNext == nil || *a.LinkedNext != 2 || b.LinkedPrev == nil || *b.LinkedPrev != 1 {
		t.Fatal("link 1->2 not established on both sides")
	}

	// linking 1 to 3 displaces 2
	if err := l.Link(1, 3); err != nil {
		t.Fatal(err)
	}
	b, _ = l.Get(2)
	c, _ := l.Get(3)
	if b.LinkedPrev != nil {
		t.Error("transaction 2 still has a predecessor after displacement")
	}
	if c.LinkedPrev == nil || *c.LinkedPrev != 1 {
		t.Error("link 1->3 not established")
	}

	if err := l.Link(1, 1); err == nil {
		t.Error("self link was accepted")
	}

	if err := l.Unlink(1); err != nil {
		t.Fatal(err)
	}
	c, _ = l.Get(3)
	if c.LinkedPrev != nil {
		t.Error("partner pointer survived unlink")
	}
}

func TestLedgerDeleteClearsLinks(t *testing.T) {
	l := NewLedger()
	if _, err := l.Append(
		testTx("BTC", TypeSell, "1", "2023-01-01T00:00:00Z"),
		testTx("ETH", TypeBuy, "10", "2023-01-02T00:00:00Z"),
	); err != nil {
		t.Fatal(err)
	}
	if err := l.Link(1, 2); err != nil {
		t.Fatal(err)
	}
	if err := l.Delete(2); err != nil {
		t.Fatal(err)
	}
	a, _ := l.Get(1)
	if a.LinkedNext != nil {
		t.Error("dangling link survived the delete")
	}
	if err := l.Delete(2); err == nil {
		t.Error("deleting twice should fail")
	}
}
