package coinledger

import (
	"strings"
	"testing"
)

func TestImportCSV(t *testing.T) {
	t.Run("minimal file", func(t *testing.T) {
		in := "asset_symbol,tx_type,amount,timestamp\nBTC,BUY,1.5,2023-01-01T00:00:00Z\n"
		txs, errs, err := ImportCSV(strings.NewReader(in))
		if err != nil {
			t.Fatal(err)
		}
		if len(errs) != 0 {
			t.Fatalf("errs = %v, want none", errs)
		}
		if len(txs) != 1 {
			t.Fatalf("got %d transactions, want 1", len(txs))
		}
		tx := txs[0]
		if tx.Asset != "BTC" || tx.Type != TypeBuy || tx.Amount.String() != "1.5" {
			t.Errorf("got %s %s %s", tx.Asset, tx.Type, tx.Amount)
		}
		if tx.FiatCurrency != "EUR" {
			t.Errorf("fiat currency = %q, want the EUR default", tx.FiatCurrency)
		}
		if tx.Source != "" {
			t.Errorf("source = %q, want empty when the column is absent", tx.Source)
		}
	})

	t.Run("semicolon delimiter and european amounts", func(t *testing.T) {
		in := "asset_symbol;tx_type;amount;timestamp;price_fiat\nETH;BUY;1.234,56;2023-01-01T00:00:00Z;1.500,00\n"
		txs, errs, err := ImportCSV(strings.NewReader(in))
		if err != nil {
			t.Fatal(err)
		}
		if len(errs) != 0 {
			t.Fatalf("errs = %v, want none", errs)
		}
		if txs[0].Amount.String() != "1234.56" {
			t.Errorf("amount = %s, want 1234.56", txs[0].Amount)
		}
		if txs[0].PriceFiat == nil || txs[0].PriceFiat.String() != "1500" {
			t.Errorf("price = %v, want 1500", txs[0].PriceFiat)
		}
	})

	t.Run("missing required columns abort", func(t *testing.T) {
		in := "asset_symbol,amount\nBTC,1\n"
		txs, _, err := ImportCSV(strings.NewReader(in))
		if err == nil {
			t.Fatal("expected a file-level error")
		}
		if len(txs) != 0 {
			t.Errorf("got %d transactions, want 0", len(txs))
		}
		if !strings.Contains(err.Error(), "tx_type") || !strings.Contains(err.Error(), "timestamp") {
			t.Errorf("error %q should name the missing columns", err)
		}
	})

	t.Run("empty file aborts", func(t *testing.T) {
		if _, _, err := ImportCSV(strings.NewReader("\n\n")); err == nil {
			t.Fatal("expected a file-level error")
		}
	})

	t.Run("bad rows are isolated", func(t *testing.T) {
		in := "asset_symbol,tx_type,amount,timestamp\n" +
			"BTC,BUY,not-a-number,2023-01-01T00:00:00Z\n" +
			"ETH,HODL,1,2023-01-01T00:00:00Z\n" +
			"ADA,BUY,2,2023-01-01T00:00:00Z\n"
		txs, errs, err := ImportCSV(strings.NewReader(in))
		if err != nil {
			t.Fatal(err)
		}
		if len(txs) != 1 || txs[0].Asset != "ADA" {
			t.Fatalf("got %+v, want only the ADA row", txs)
		}
		if len(errs) != 2 {
			t.Errorf("errs = %v, want 2 entries", errs)
		}
	})

	t.Run("newer schema warns but imports", func(t *testing.T) {
		in := "asset_symbol,tx_type,amount,timestamp,csv_schema_version\n" +
			"BTC,BUY,1,2023-01-01T00:00:00Z,99\n"
		txs, errs, err := ImportCSV(strings.NewReader(in))
		if err != nil {
			t.Fatal(err)
		}
		if len(txs) != 1 {
			t.Fatalf("got %d transactions, want 1", len(txs))
		}
		if len(errs) != 1 || !strings.Contains(errs[0], "schema version") {
			t.Errorf("errs = %v, want one schema warning", errs)
		}
	})

	t.Run("quoted fields with embedded delimiter and newline", func(t *testing.T) {
		in := "asset_symbol,tx_type,amount,timestamp,note\n" +
			"BTC,BUY,1,2023-01-01T00:00:00Z,\"hello,\nworld\"\n"
		txs, errs, err := ImportCSV(strings.NewReader(in))
		if err != nil {
			t.Fatal(err)
		}
		if len(errs) != 0 {
			t.Fatalf("errs = %v, want none", errs)
		}
		if want := "hello, world"; txs[0].Note != want {
			t.Errorf("note = %q, want %q", txs[0].Note, want)
		}
	})
}

func TestExportCSVRoundTrip(t *testing.T) {
	l := NewLedger()
	rich := testTx("BTC", TypeBuy, "1.5", "2023-01-01T00:00:00Z")
	rich.PriceFiat = Dec("20000")
	rich.FiatValue = Dec("30000")
	rich.FiatCurrency = "EUR"
	rich.Note = `with "quotes", and comma`
	rich.TxID = "abc123"
	rich.Source = "manual"
	if _, err := l.Append(
		rich,
		testTx("ETH", TypeSell, "2", "2023-06-01T00:00:00Z"),
	); err != nil {
		t.Fatal(err)
	}

	var buf strings.Builder
	if err := ExportCSV(&buf, l); err != nil {
		t.Fatal(err)
	}

	txs, errs, err := ImportCSV(strings.NewReader(buf.String()))
	if err != nil {
		t.Fatal(err)
	}
	if len(errs) != 0 {
		t.Fatalf("errs = %v, want none", errs)
	}
	if len(txs) != l.Len() {
		t.Fatalf("round trip lost rows: got %d, want %d", len(txs), l.Len())
	}
	orig := l.Transactions()
	for i, tx := range txs {
		want := orig[i]
		if tx.Asset != want.Asset || tx.Type != want.Type || !tx.Amount.Equal(want.Amount) ||
			!tx.Timestamp.Equal(want.Timestamp) || tx.Source != want.Source ||
			tx.Note != want.Note || tx.TxID != want.TxID {
			t.Errorf("row %d: got %+v, want %+v", i, tx, want)
		}
	}
}
