package coinledger

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// TxType is a typed string for identifying transaction kinds.
type TxType string

// Transaction types recorded in the ledger.
const (
	TypeBuy              TxType = "BUY"
	TypeSell             TxType = "SELL"
	TypeTransferIn       TxType = "TRANSFER_IN"
	TypeTransferOut      TxType = "TRANSFER_OUT"
	TypeTransferInternal TxType = "TRANSFER_INTERNAL"
	TypeStakingReward    TxType = "STAKING_REWARD"
	TypeAirdrop          TxType = "AIRDROP"
	TypeReward           TxType = "REWARD"
)

// ParseTxType parses a string into a TxType.
func ParseTxType(s string) (TxType, error) {
	t := TxType(strings.ToUpper(strings.TrimSpace(s)))
	switch t {
	case TypeBuy, TypeSell, TypeTransferIn, TypeTransferOut,
		TypeTransferInternal, TypeStakingReward, TypeAirdrop, TypeReward:
		return t, nil
	}
	return "", fmt.Errorf("unknown transaction type: %q", s)
}

// Sign returns the direction the amount contributes to holdings:
// -1 for disposals, +1 for acquisitions, 0 for internal moves.
func (t TxType) Sign() int {
	switch t {
	case TypeSell, TypeTransferOut:
		return -1
	case TypeTransferInternal:
		return 0
	default:
		return 1
	}
}

// IsAcquisition reports whether the type starts a tax-relevant holding period.
func (t TxType) IsAcquisition() bool {
	switch t {
	case TypeBuy, TypeAirdrop, TypeReward, TypeStakingReward:
		return true
	}
	return false
}

// Transaction is the atomic ledger entry. The amount is always stored
// positive; its direction is implied by Type.
type Transaction struct {
	ID           int64
	Asset        string
	Type         TxType
	Amount       decimal.Decimal
	PriceFiat    *decimal.Decimal
	FiatCurrency string
	FiatValue    *decimal.Decimal
	ValueEUR     *decimal.Decimal
	ValueUSD     *decimal.Decimal
	Timestamp    time.Time
	Source       string
	Note         string
	TxID         string
	LinkedPrev   *int64 // id of the previous linked transaction, if any
	LinkedNext   *int64 // id of the next linked transaction, if any
}

// When returns the instant of the transaction.
func (t Transaction) When() time.Time { return t.Timestamp }

// Fiat returns the transaction's fiat value as Money. The zero Money is
// returned when no fiat value was recorded.
func (t Transaction) Fiat() Money {
	if t.FiatValue == nil {
		return Money{}
	}
	cur := t.FiatCurrency
	if cur == "" {
		cur = "EUR"
	}
	return M(*t.FiatValue, cur)
}

// Validate checks the transaction's fields and applies quick fixes
// (uppercasing the asset, defaulting the fiat currency). It returns the
// fixed transaction or an error detailing the first validation failure.
func (t Transaction) Validate() (Transaction, error) {
	t.Asset = strings.ToUpper(strings.TrimSpace(t.Asset))
	if t.Asset == "" {
		return t, errors.New("asset symbol is missing")
	}
	if _, err := ParseTxType(string(t.Type)); err != nil {
		return t, err
	}
	if !t.Amount.IsPositive() {
		return t, fmt.Errorf("amount must be positive, got %s", t.Amount)
	}
	if t.Timestamp.IsZero() {
		return t, errors.New("timestamp is missing")
	}
	t.Timestamp = t.Timestamp.UTC()
	if t.FiatCurrency == "" && (t.PriceFiat != nil || t.FiatValue != nil) {
		t.FiatCurrency = "EUR"
	}
	t.FiatCurrency = strings.ToUpper(t.FiatCurrency)
	return t, nil
}

// Equal reports whether two transactions carry the same values, link
// pointers included.
func (t Transaction) Equal(o Transaction) bool {
	return t.ID == o.ID &&
		t.Asset == o.Asset &&
		t.Type == o.Type &&
		t.Amount.Equal(o.Amount) &&
		decEqual(t.PriceFiat, o.PriceFiat) &&
		t.FiatCurrency == o.FiatCurrency &&
		decEqual(t.FiatValue, o.FiatValue) &&
		decEqual(t.ValueEUR, o.ValueEUR) &&
		decEqual(t.ValueUSD, o.ValueUSD) &&
		t.Timestamp.Equal(o.Timestamp) &&
		t.Source == o.Source &&
		t.Note == o.Note &&
		t.TxID == o.TxID &&
		refEqual(t.LinkedPrev, o.LinkedPrev) &&
		refEqual(t.LinkedNext, o.LinkedNext)
}

func decEqual(a, b *decimal.Decimal) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return a.Equal(*b)
}

func refEqual(a, b *int64) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}

// Dec is a convenient factory for an optional decimal field.
func Dec(s string) *decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(fmt.Sprintf("invalid decimal literal %q: %v", s, err))
	}
	return &d
}

// Ref is a convenient factory for an optional id reference.
func Ref(id int64) *int64 { return &id }
