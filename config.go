package coinledger

import "fmt"

// Config holds the per-profile settings persisted next to the ledger file.
// LastID is the id allocation high-water mark: ids are monotonically
// assigned and never reused, even after deletions.
type Config struct {
	HoldingPeriodDays  int    `json:"holding_period_days"`
	UpcomingWindowDays int    `json:"upcoming_holding_window_days"`
	BaseCurrency       string `json:"base_currency"`
	FetchPrices        bool   `json:"fetch_prices"`
	PriceAPIKey        string `json:"price_api_key,omitempty"`
	LastID             int64  `json:"last_id"`
}

// DefaultConfig returns the settings a fresh profile starts with.
func DefaultConfig() Config {
	return Config{
		HoldingPeriodDays:  365,
		UpcomingWindowDays: 30,
		BaseCurrency:       "EUR",
	}
}

// Validate checks the configuration bounds.
func (c Config) Validate() error {
	if c.HoldingPeriodDays < 0 {
		return fmt.Errorf("holding_period_days must be >= 0, got %d", c.HoldingPeriodDays)
	}
	if c.UpcomingWindowDays <= 0 {
		return fmt.Errorf("upcoming_holding_window_days must be > 0, got %d", c.UpcomingWindowDays)
	}
	switch c.BaseCurrency {
	case "EUR", "USD":
	default:
		return fmt.Errorf("base_currency must be EUR or USD, got %q", c.BaseCurrency)
	}
	return nil
}
