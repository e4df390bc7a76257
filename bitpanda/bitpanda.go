// Package bitpanda imports the CSV transaction history exported from
// Bitpanda.
package bitpanda

import (
	"fmt"
	"io"
	"sort"
	"strings"
	"time"

	"github.com/coinledger/coinledger"
)

// Source tags every transaction produced by this importer.
const Source = "bitpanda"

// requiredColumns are the named columns a Bitpanda export must carry,
// matched case-insensitively.
var requiredColumns = []string{
	"transaction id", "timestamp", "transaction type", "in/out",
	"amount fiat", "fiat", "amount asset", "asset", "asset market price",
}

// miotaCutover is the instant IOTA replaced the MIOTA ticker. Rows at or
// after it are rewritten to the successor symbol.
var miotaCutover = time.Date(2023, 10, 4, 0, 0, 0, 0, time.UTC)

// Import parses a Bitpanda CSV export into candidate transactions.
//
// The header line is not assumed to be the first line: Bitpanda prepends a
// preamble, so the header is located by searching for a line carrying both
// "Transaction ID" and "Timestamp". Rows failing to parse yield one error
// line each and are skipped; the returned error is non-nil only for
// file-level failures (no header found, required columns missing).
func Import(r io.Reader) ([]coinledger.Transaction, []string, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, nil, fmt.Errorf("could not read file: %w", err)
	}
	lines := strings.Split(strings.ReplaceAll(string(raw), "\r\n", "\n"), "\n")

	headerIdx := -1
	for i, line := range lines {
		if strings.Contains(line, "Transaction ID") && strings.Contains(line, "Timestamp") {
			headerIdx = i
			break
		}
	}
	if headerIdx < 0 {
		return nil, nil, fmt.Errorf("could not locate the header line; is this a Bitpanda export?")
	}

	cols := make(map[string]int)
	for i, name := range coinledger.SplitCSVRecord(lines[headerIdx], ',') {
		cols[strings.ToLower(strings.TrimSpace(name))] = i
	}
	var missing []string
	for _, name := range requiredColumns {
		if _, ok := cols[name]; !ok {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		return nil, nil, fmt.Errorf("missing required columns: %s", strings.Join(missing, ", "))
	}

	field := func(record []string, name string) string {
		i, ok := cols[name]
		if !ok || i >= len(record) {
			return ""
		}
		return strings.TrimSpace(record[i])
	}

	// pre-scan: a transaction id spanning several rows is a multi-leg
	// trade the flat row model cannot fully represent
	idCount := make(map[string]int)
	for _, line := range lines[headerIdx+1:] {
		if strings.TrimSpace(line) == "" {
			continue
		}
		if id := field(coinledger.SplitCSVRecord(line, ','), "transaction id"); id != "" {
			idCount[id]++
		}
	}

	var errs []string
	var multiLeg []string
	for id, n := range idCount {
		if n > 1 {
			multiLeg = append(multiLeg, fmt.Sprintf("warning: transaction %s spans %d rows; importing each row separately", id, n))
		}
	}
	sort.Strings(multiLeg)
	errs = append(errs, multiLeg...)

	var txs []coinledger.Transaction
	for off, line := range lines[headerIdx+1:] {
		if strings.TrimSpace(line) == "" {
			continue
		}
		tx, err := parseRow(coinledger.SplitCSVRecord(line, ','), field)
		if err != nil {
			errs = append(errs, fmt.Sprintf("line %d: %v", headerIdx+off+2, err))
			continue
		}
		txs = append(txs, tx)
	}
	return txs, errs, nil
}

func parseRow(record []string, field func([]string, string) string) (coinledger.Transaction, error) {
	ts, err := coinledger.ParseTimestamp(field(record, "timestamp"))
	if err != nil {
		return coinledger.Transaction{}, err
	}

	asset := strings.ToUpper(field(record, "asset"))
	if asset == "MIOTA" && !ts.Before(miotaCutover) {
		asset = "IOTA"
	}

	amount, err := coinledger.ParseAmount(field(record, "amount asset"))
	if err != nil {
		return coinledger.Transaction{}, fmt.Errorf("amount asset: %w", err)
	}
	amount = amount.Abs()

	txType := ClassifyType(field(record, "transaction type"), field(record, "in/out"))

	tx := coinledger.Transaction{
		Asset:     asset,
		Type:      txType,
		Amount:    amount,
		Timestamp: ts,
		Source:    Source,
		Note:      field(record, "transaction type"),
	}
	if cur := field(record, "fiat"); cur != "" {
		tx.FiatCurrency = strings.ToUpper(cur)
	}

	// price falls back from the fiat/asset ratio to the market price cell
	if fiat, err := coinledger.ParseAmount(field(record, "amount fiat")); err == nil && !amount.IsZero() {
		fiat = fiat.Abs()
		tx.FiatValue = &fiat
		price := fiat.Div(amount)
		tx.PriceFiat = &price
	} else if price, err := coinledger.ParseAmount(field(record, "asset market price")); err == nil {
		tx.PriceFiat = &price
	}

	// only transfer legs keep the external id: trade legs share one id
	// across unrelated rows, which would defeat id-based deduplication
	switch txType {
	case coinledger.TypeTransferIn, coinledger.TypeTransferOut:
		tx.TxID = field(record, "transaction id")
	}

	return tx.Validate()
}
