package coinledger

import "strings"

// Asset describes an importable asset. ExplorerURL, when present, is a
// format string with one %s placeholder for the external transaction id.
type Asset struct {
	Symbol      string
	Name        string
	ExplorerURL string
}

// AssetCatalog resolves ticker symbols to known assets. Implementations
// must be pure and synchronous; parsers call Lookup on every row.
type AssetCatalog interface {
	Lookup(symbol string) (Asset, bool)
}

// StaticCatalog is an in-memory AssetCatalog keyed by uppercase symbol.
type StaticCatalog map[string]Asset

func (c StaticCatalog) Lookup(symbol string) (Asset, bool) {
	a, ok := c[strings.ToUpper(strings.TrimSpace(symbol))]
	return a, ok
}

// DefaultCatalog returns the built-in asset catalog.
func DefaultCatalog() StaticCatalog {
	assets := []Asset{
		{Symbol: "BTC", Name: "Bitcoin", ExplorerURL: "https://www.blockchain.com/explorer/transactions/btc/%s"},
		{Symbol: "ETH", Name: "Ethereum", ExplorerURL: "https://etherscan.io/tx/%s"},
		{Symbol: "ADA", Name: "Cardano", ExplorerURL: "https://cardanoscan.io/transaction/%s"},
		{Symbol: "SOL", Name: "Solana", ExplorerURL: "https://solscan.io/tx/%s"},
		{Symbol: "DOT", Name: "Polkadot", ExplorerURL: "https://polkadot.subscan.io/extrinsic/%s"},
		{Symbol: "XRP", Name: "XRP", ExplorerURL: "https://xrpscan.com/tx/%s"},
		{Symbol: "LTC", Name: "Litecoin", ExplorerURL: "https://blockchair.com/litecoin/transaction/%s"},
		{Symbol: "BNB", Name: "BNB", ExplorerURL: "https://bscscan.com/tx/%s"},
		{Symbol: "MATIC", Name: "Polygon", ExplorerURL: "https://polygonscan.com/tx/%s"},
		{Symbol: "AVAX", Name: "Avalanche", ExplorerURL: "https://snowtrace.io/tx/%s"},
		{Symbol: "LINK", Name: "Chainlink", ExplorerURL: "https://etherscan.io/tx/%s"},
		{Symbol: "DOGE", Name: "Dogecoin", ExplorerURL: "https://blockchair.com/dogecoin/transaction/%s"},
		{Symbol: "ATOM", Name: "Cosmos", ExplorerURL: "https://www.mintscan.io/cosmos/txs/%s"},
		{Symbol: "XLM", Name: "Stellar", ExplorerURL: "https://stellar.expert/explorer/public/tx/%s"},
		{Symbol: "ALGO", Name: "Algorand", ExplorerURL: "https://allo.info/tx/%s"},
		{Symbol: "XTZ", Name: "Tezos", ExplorerURL: "https://tzstats.com/%s"},
		{Symbol: "IOTA", Name: "IOTA", ExplorerURL: "https://explorer.iota.org/mainnet/transaction/%s"},
		{Symbol: "MIOTA", Name: "IOTA (legacy ticker)"},
		{Symbol: "UNI", Name: "Uniswap", ExplorerURL: "https://etherscan.io/tx/%s"},
		{Symbol: "AAVE", Name: "Aave", ExplorerURL: "https://etherscan.io/tx/%s"},
		{Symbol: "USDT", Name: "Tether"},
		{Symbol: "USDC", Name: "USD Coin"},
		{Symbol: "EUR", Name: "Euro"},
		{Symbol: "USD", Name: "US Dollar"},
		{Symbol: "CHF", Name: "Swiss Franc"},
		{Symbol: "GBP", Name: "Pound Sterling"},
	}
	c := make(StaticCatalog, len(assets))
	for _, a := range assets {
		c[a.Symbol] = a
	}
	return c
}

// ExplorerLink builds the explorer URL for an external transaction id, or
// "" when the catalog has no template for the asset.
func ExplorerLink(c AssetCatalog, symbol, txID string) string {
	txID = strings.TrimSpace(txID)
	if txID == "" || c == nil {
		return ""
	}
	a, ok := c.Lookup(symbol)
	if !ok || a.ExplorerURL == "" {
		return ""
	}
	return strings.Replace(a.ExplorerURL, "%s", txID, 1)
}
