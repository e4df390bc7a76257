package coinledger

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/shopspring/decimal"
)

func init() {
	decimal.MarshalJSONWithoutQuotes = true
}

// MarshalJSON implements the json.Marshaler interface for Transaction.
// Field order is fixed so the JSONL file stays diff-friendly.
func (t Transaction) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.Append("id", t.ID)
	w.Append("asset_symbol", t.Asset)
	w.Append("tx_type", t.Type)
	w.Append("amount", t.Amount)
	w.Optional("price_fiat", t.PriceFiat)
	w.Optional("fiat_currency", t.FiatCurrency)
	w.Optional("fiat_value", t.FiatValue)
	w.Optional("value_eur", t.ValueEUR)
	w.Optional("value_usd", t.ValueUSD)
	w.Append("timestamp", t.Timestamp.UTC().Format(time.RFC3339))
	w.Optional("source", t.Source)
	w.Optional("note", t.Note)
	w.Optional("tx_id", t.TxID)
	w.Optional("linked_tx_prev_id", t.LinkedPrev)
	w.Optional("linked_tx_next_id", t.LinkedNext)
	return w.MarshalJSON()
}

// jsonTransaction mirrors the persisted shape of a Transaction.
type jsonTransaction struct {
	ID           int64            `json:"id"`
	Asset        string           `json:"asset_symbol"`
	Type         TxType           `json:"tx_type"`
	Amount       decimal.Decimal  `json:"amount"`
	PriceFiat    *decimal.Decimal `json:"price_fiat"`
	FiatCurrency string           `json:"fiat_currency"`
	FiatValue    *decimal.Decimal `json:"fiat_value"`
	ValueEUR     *decimal.Decimal `json:"value_eur"`
	ValueUSD     *decimal.Decimal `json:"value_usd"`
	Timestamp    time.Time        `json:"timestamp"`
	Source       string           `json:"source"`
	Note         string           `json:"note"`
	TxID         string           `json:"tx_id"`
	LinkedPrev   *int64           `json:"linked_tx_prev_id"`
	LinkedNext   *int64           `json:"linked_tx_next_id"`
}

// UnmarshalJSON implements the json.Unmarshaler interface for Transaction.
func (t *Transaction) UnmarshalJSON(data []byte) error {
	var temp jsonTransaction
	if err := json.Unmarshal(data, &temp); err != nil {
		return err
	}
	*t = Transaction{
		ID:           temp.ID,
		Asset:        temp.Asset,
		Type:         temp.Type,
		Amount:       temp.Amount,
		PriceFiat:    temp.PriceFiat,
		FiatCurrency: temp.FiatCurrency,
		FiatValue:    temp.FiatValue,
		ValueEUR:     temp.ValueEUR,
		ValueUSD:     temp.ValueUSD,
		Timestamp:    temp.Timestamp.UTC(),
		Source:       temp.Source,
		Note:         temp.Note,
		TxID:         temp.TxID,
		LinkedPrev:   temp.LinkedPrev,
		LinkedNext:   temp.LinkedNext,
	}
	return nil
}

// DecodeLedger decodes transactions from a stream of JSONL data, one
// transaction per line, and returns a sorted, normalized Ledger.
func DecodeLedger(r io.Reader) (*Ledger, error) {
	ledger := NewLedger()
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	var txs []Transaction
	for scanner.Scan() {
		lineBytes := scanner.Bytes()
		if len(lineBytes) == 0 {
			continue // Skip empty lines
		}
		var tx Transaction
		if err := json.Unmarshal(lineBytes, &tx); err != nil {
			return nil, fmt.Errorf("could not decode transaction line %q: %w", string(lineBytes), err)
		}
		txs = append(txs, tx)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error reading from input: %w", err)
	}

	ledger.ReplaceAll(txs)
	return ledger, nil
}

// EncodeTransaction marshals a single transaction to JSON and writes it to
// the writer, followed by a newline, in JSONL format.
func EncodeTransaction(w io.Writer, tx Transaction) error {
	data, err := json.Marshal(tx)
	if err != nil {
		return fmt.Errorf("failed to marshal transaction %d: %w", tx.ID, err)
	}
	if _, err := w.Write(append(data, '\n')); err != nil {
		return fmt.Errorf("failed to write transaction %d: %w", tx.ID, err)
	}
	return nil
}

// EncodeLedger persists the ledger to an io.Writer in JSONL format, one
// transaction per line in chronological order.
func EncodeLedger(w io.Writer, ledger *Ledger) error {
	for _, tx := range ledger.transactions {
		if err := EncodeTransaction(w, tx); err != nil {
			return err
		}
	}
	return nil
}

// DecodeConfig reads a profile configuration. Missing fields keep their
// defaults.
func DecodeConfig(r io.Reader) (Config, error) {
	cfg := DefaultConfig()
	if err := json.NewDecoder(r).Decode(&cfg); err != nil {
		return cfg, fmt.Errorf("could not decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// EncodeConfig writes a profile configuration as indented JSON.
func EncodeConfig(w io.Writer, cfg Config) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(cfg); err != nil {
		return fmt.Errorf("could not encode config: %w", err)
	}
	return nil
}
