package coinledger

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// CSVSchemaVersion is the generic CSV schema this version understands.
// Files declaring a higher version still import, with a warning.
const CSVSchemaVersion = 1

// csvRequired are the columns a generic CSV file must carry.
var csvRequired = []string{"asset_symbol", "tx_type", "amount", "timestamp"}

// ImportCSV parses a generic CSV export into candidate transactions.
//
// The delimiter is ';' when the header line contains ';' and no unquoted
// ',', else ','. Rows failing to parse yield one error line each and are
// skipped; the returned error is non-nil only for file-level failures
// (empty file, missing required columns), in which case nothing is
// imported. A csv_schema_version column is read from the first data row
// only and produces a single non-fatal warning when newer than supported.
func ImportCSV(r io.Reader) ([]Transaction, []string, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, nil, fmt.Errorf("could not read file: %w", err)
	}
	data := normalizeQuotedNewlines(strings.ReplaceAll(string(raw), "\r\n", "\n"))
	lines := strings.Split(data, "\n")

	headerIdx := -1
	for i, line := range lines {
		if strings.TrimSpace(line) != "" {
			headerIdx = i
			break
		}
	}
	if headerIdx < 0 {
		return nil, nil, fmt.Errorf("file is empty")
	}

	header := lines[headerIdx]
	delim := ','
	if strings.ContainsRune(header, ';') && !containsTopLevel(header, ',') {
		delim = ';'
	}

	cols := make(map[string]int)
	for i, name := range SplitCSVRecord(header, delim) {
		cols[strings.ToLower(strings.TrimSpace(name))] = i
	}
	var missing []string
	for _, name := range csvRequired {
		if _, ok := cols[name]; !ok {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		return nil, nil, fmt.Errorf("missing required columns: %s", strings.Join(missing, ", "))
	}

	// SplitCSVRecord already trims unquoted fields; quoted padding is data
	field := func(record []string, name string) string {
		i, ok := cols[name]
		if !ok || i >= len(record) {
			return ""
		}
		return record[i]
	}

	var txs []Transaction
	var errs []string
	versionChecked := false
	for lineNo := headerIdx + 1; lineNo < len(lines); lineNo++ {
		line := lines[lineNo]
		if strings.TrimSpace(line) == "" {
			continue
		}
		record := SplitCSVRecord(line, delim)

		if !versionChecked {
			versionChecked = true
			if v := field(record, "csv_schema_version"); v != "" {
				if n, err := strconv.Atoi(v); err == nil && n > CSVSchemaVersion {
					errs = append(errs, fmt.Sprintf(
						"warning: file declares schema version %d, newer than supported version %d; importing anyway", n, CSVSchemaVersion))
				}
			}
		}

		tx, err := parseCSVRow(record, field)
		if err != nil {
			errs = append(errs, fmt.Sprintf("line %d: %v", lineNo+1, err))
			continue
		}
		txs = append(txs, tx)
	}
	return txs, errs, nil
}

func parseCSVRow(record []string, field func([]string, string) string) (Transaction, error) {
	txType, err := ParseTxType(field(record, "tx_type"))
	if err != nil {
		return Transaction{}, err
	}
	amount, err := ParseAmount(field(record, "amount"))
	if err != nil {
		return Transaction{}, err
	}
	ts, err := ParseTimestamp(field(record, "timestamp"))
	if err != nil {
		return Transaction{}, err
	}

	tx := Transaction{
		Asset:     field(record, "asset_symbol"),
		Type:      txType,
		Amount:    amount.Abs(),
		Timestamp: ts,
		Source:    field(record, "source"),
		Note:      field(record, "note"),
		TxID:      field(record, "tx_id"),
	}
	if cur := field(record, "fiat_currency"); cur != "" {
		tx.FiatCurrency = strings.ToUpper(cur)
	} else {
		tx.FiatCurrency = "EUR"
	}
	if v := field(record, "price_fiat"); v != "" {
		d, err := ParseAmount(v)
		if err != nil {
			return Transaction{}, fmt.Errorf("price_fiat: %w", err)
		}
		tx.PriceFiat = &d
	}
	if v := field(record, "fiat_value"); v != "" {
		d, err := ParseAmount(v)
		if err != nil {
			return Transaction{}, fmt.Errorf("fiat_value: %w", err)
		}
		tx.FiatValue = &d
	}
	if v := field(record, "value_eur"); v != "" {
		d, err := ParseAmount(v)
		if err != nil {
			return Transaction{}, fmt.Errorf("value_eur: %w", err)
		}
		tx.ValueEUR = &d
	}
	if v := field(record, "value_usd"); v != "" {
		d, err := ParseAmount(v)
		if err != nil {
			return Transaction{}, fmt.Errorf("value_usd: %w", err)
		}
		tx.ValueUSD = &d
	}
	return tx.Validate()
}

// csvExportColumns is the header written by ExportCSV, chosen so the file
// round-trips through ImportCSV.
var csvExportColumns = []string{
	"csv_schema_version", "asset_symbol", "tx_type", "amount",
	"price_fiat", "fiat_currency", "fiat_value", "value_eur", "value_usd",
	"timestamp", "source", "note", "tx_id",
}

// ExportCSV writes the ledger as a generic CSV file suitable for backups
// and re-import.
func ExportCSV(w io.Writer, ledger *Ledger) error {
	if _, err := fmt.Fprintln(w, strings.Join(csvExportColumns, ",")); err != nil {
		return fmt.Errorf("could not write header: %w", err)
	}
	for _, tx := range ledger.Transactions() {
		record := []string{
			strconv.Itoa(CSVSchemaVersion),
			tx.Asset,
			string(tx.Type),
			tx.Amount.String(),
			optDecimal(tx.PriceFiat),
			tx.FiatCurrency,
			optDecimal(tx.FiatValue),
			optDecimal(tx.ValueEUR),
			optDecimal(tx.ValueUSD),
			tx.Timestamp.UTC().Format(time.RFC3339),
			tx.Source,
			tx.Note,
			tx.TxID,
		}
		for i, f := range record {
			record[i] = csvQuote(f)
		}
		if _, err := fmt.Fprintln(w, strings.Join(record, ",")); err != nil {
			return fmt.Errorf("could not write transaction %d: %w", tx.ID, err)
		}
	}
	return nil
}

func optDecimal(d *decimal.Decimal) string {
	if d == nil {
		return ""
	}
	return d.String()
}

func csvQuote(field string) string {
	if !strings.ContainsAny(field, ",;\"\n") {
		return field
	}
	return `"` + strings.ReplaceAll(field, `"`, `""`) + `"`
}
