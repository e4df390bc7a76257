package coinledger

import (
	"testing"
	"time"
)

func TestComputeHoldings(t *testing.T) {
	txs := []Transaction{
		testTx("BTC", TypeBuy, "1.5", "2023-01-01T00:00:00Z"),
		testTx("BTC", TypeSell, "0.5", "2023-02-01T00:00:00Z"),
		testTx("ETH", TypeStakingReward, "0.1", "2023-02-01T00:00:00Z"),
		testTx("ETH", TypeTransferInternal, "5", "2023-02-02T00:00:00Z"), // no quantity impact
		testTx("EUR", TypeTransferIn, "1000", "2023-01-01T00:00:00Z"),    // fiat, excluded
		testTx("ADA", TypeBuy, "10", "2023-01-01T00:00:00Z"),
		testTx("ADA", TypeTransferOut, "10", "2023-03-01T00:00:00Z"), // nets to zero
	}

	got := ComputeHoldings(txs)
	want := []struct {
		asset string
		total string
	}{
		{"BTC", "1"},
		{"ETH", "0.1"},
	}
	if len(got) != len(want) {
		t.Fatalf("got %d items, want %d: %+v", len(got), len(want), got)
	}
	for i, w := range want {
		if got[i].Asset != w.asset || got[i].Total.String() != w.total {
			t.Errorf("item %d = %s %s, want %s %s", i, got[i].Asset, got[i].Total, w.asset, w.total)
		}
	}
}

func TestComputeHoldingsScenario(t *testing.T) {
	txs := []Transaction{testTx("BTC", TypeBuy, "1.5", "2023-01-01T00:00:00Z")}
	got := ComputeHoldings(txs)
	if len(got) != 1 || got[0].Asset != "BTC" || got[0].Total.String() != "1.5" {
		t.Fatalf("got %+v, want one BTC position of 1.5", got)
	}
}

func TestComputeHoldingsFiatAlwaysExcluded(t *testing.T) {
	for _, symbol := range []string{"EUR", "USD", "CHF", "GBP", "JPY", "AUD", "CAD", "CNY"} {
		txs := []Transaction{testTx(symbol, TypeBuy, "100000", "2023-01-01T00:00:00Z")}
		if got := ComputeHoldings(txs); len(got) != 0 {
			t.Errorf("%s: got %+v, want no items", symbol, got)
		}
	}
}

func TestComputeExpiring(t *testing.T) {
	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	cfg := Config{HoldingPeriodDays: 365, UpcomingWindowDays: 30, BaseCurrency: "EUR"}

	at := func(daysAgo int) string {
		return now.AddDate(0, 0, -daysAgo).Format(time.RFC3339)
	}

	t.Run("window filtering", func(t *testing.T) {
		txs := []Transaction{
			testTx("BTC", TypeBuy, "1", at(350)), // 15 days remaining
			testTx("ETH", TypeBuy, "1", at(366)), // already expired
			testTx("ADA", TypeBuy, "1", at(100)), // far in the future
			testTx("SOL", TypeSell, "1", at(350)),
			testTx("EUR", TypeBuy, "1", at(350)),
		}
		got := ComputeExpiring(txs, cfg, now)
		if len(got) != 1 {
			t.Fatalf("got %d items, want 1: %+v", len(got), got)
		}
		if got[0].Asset != "BTC" || got[0].DaysRemaining != 15 {
			t.Errorf("got %s with %d days, want BTC with 15", got[0].Asset, got[0].DaysRemaining)
		}
	})

	t.Run("sorted soonest first", func(t *testing.T) {
		txs := []Transaction{
			testTx("BTC", TypeBuy, "1", at(350)),           // 15 days
			testTx("ETH", TypeStakingReward, "1", at(360)), // 5 days
			testTx("ADA", TypeAirdrop, "1", at(340)),       // 25 days
		}
		got := ComputeExpiring(txs, cfg, now)
		if len(got) != 3 {
			t.Fatalf("got %d items, want 3", len(got))
		}
		for i, want := range []string{"ETH", "BTC", "ADA"} {
			if got[i].Asset != want {
				t.Errorf("item %d = %s, want %s", i, got[i].Asset, want)
			}
		}
	})

	t.Run("disabled when the period is zero", func(t *testing.T) {
		txs := []Transaction{testTx("BTC", TypeBuy, "1", at(350))}
		disabled := cfg
		disabled.HoldingPeriodDays = 0
		if got := ComputeExpiring(txs, disabled, now); got != nil {
			t.Errorf("got %+v, want nil", got)
		}
	})
}
