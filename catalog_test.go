package coinledger

import "testing"

func TestCatalogLookup(t *testing.T) {
	c := DefaultCatalog()
	if _, ok := c.Lookup("btc"); !ok {
		t.Error("lookup should be case-insensitive")
	}
	if _, ok := c.Lookup(" ETH "); !ok {
		t.Error("lookup should trim whitespace")
	}
	if _, ok := c.Lookup("NOPE"); ok {
		t.Error("unknown symbol resolved")
	}
}

func TestExplorerLink(t *testing.T) {
	c := DefaultCatalog()
	tests := []struct {
		symbol, txID, want string
	}{
		{"ETH", "0xabc", "https://etherscan.io/tx/0xabc"},
		{"ETH", "", ""},
		{"USDT", "abc", ""}, // known asset, no explorer template
		{"NOPE", "abc", ""}, // unknown asset
	}
	for _, tc := range tests {
		if got := ExplorerLink(c, tc.symbol, tc.txID); got != tc.want {
			t.Errorf("ExplorerLink(%q, %q) = %q, want %q", tc.symbol, tc.txID, got, tc.want)
		}
	}
}
