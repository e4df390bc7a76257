// Package binance imports trade history spreadsheets exported from the
// Binance web UI.
package binance

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/coinledger/coinledger"
)

// Source tags every transaction produced by this importer.
const Source = "binance"

// expectedHeaders is the exact ordered header row of a Binance trade
// export. Any deviation aborts the import: a changed layout means the
// column semantics can no longer be trusted.
var expectedHeaders = []string{
	"Date(UTC)", "Pair", "Base Asset", "Quote Asset", "Type",
	"Price", "Amount", "Total", "Fee", "Fee Coin",
}

// Import parses a Binance XLSX trade export into candidate transactions.
// Rows are isolated: a bad row yields one error line and is skipped. The
// returned error is non-nil only for file-level failures (unreadable
// workbook, empty sheet, unexpected header row).
func Import(r io.Reader, catalog coinledger.AssetCatalog) ([]coinledger.Transaction, []string, error) {
	wb, err := excelize.OpenReader(r)
	if err != nil {
		return nil, nil, fmt.Errorf("could not open spreadsheet: %w", err)
	}
	defer wb.Close()

	sheet := wb.GetSheetName(0)
	if sheet == "" {
		return nil, nil, fmt.Errorf("spreadsheet has no sheets")
	}
	rows, err := wb.GetRows(sheet)
	if err != nil {
		return nil, nil, fmt.Errorf("could not read sheet %q: %w", sheet, err)
	}
	if len(rows) == 0 {
		return nil, nil, fmt.Errorf("sheet %q is empty", sheet)
	}

	if err := checkHeader(rows[0]); err != nil {
		return nil, nil, err
	}

	var txs []coinledger.Transaction
	var errs []string
	for i, row := range rows[1:] {
		if isBlank(row) {
			continue
		}
		tx, err := parseRow(row, catalog)
		if err != nil {
			errs = append(errs, fmt.Sprintf("row %d: %v", i+2, err))
			continue
		}
		txs = append(txs, tx)
	}
	return txs, errs, nil
}

func checkHeader(header []string) error {
	if len(header) < len(expectedHeaders) {
		return fmt.Errorf("unexpected header: got %d columns, want %d", len(header), len(expectedHeaders))
	}
	for i, want := range expectedHeaders {
		if got := strings.TrimSpace(header[i]); got != want {
			return fmt.Errorf("unexpected header: column %d is %q, want %q", i+1, got, want)
		}
	}
	return nil
}

func isBlank(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}

func cell(row []string, i int) string {
	if i >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[i])
}

func parseRow(row []string, catalog coinledger.AssetCatalog) (coinledger.Transaction, error) {
	ts, err := parseDate(cell(row, 0))
	if err != nil {
		return coinledger.Transaction{}, err
	}

	base := strings.ToUpper(cell(row, 2))
	if _, ok := catalog.Lookup(base); !ok {
		return coinledger.Transaction{}, fmt.Errorf("unsupported asset %q", base)
	}
	quote := strings.ToUpper(cell(row, 3))

	amount, err := coinledger.ParseAmount(cell(row, 6))
	if err != nil {
		return coinledger.Transaction{}, fmt.Errorf("amount: %w", err)
	}
	amount = amount.Abs()

	tx := coinledger.Transaction{
		Asset:        base,
		Type:         ClassifyType(cell(row, 4)),
		Amount:       amount,
		FiatCurrency: quote,
		Timestamp:    ts,
		Source:       Source,
	}

	if total, err := coinledger.ParseAmount(cell(row, 7)); err == nil {
		total = total.Abs()
		tx.FiatValue = &total
	}
	if price, err := coinledger.ParseAmount(cell(row, 5)); err == nil && !price.IsZero() {
		tx.PriceFiat = &price
	} else if tx.FiatValue != nil && !amount.IsZero() {
		// derive the unit price from the total when the price cell is
		// missing or unusable
		derived := tx.FiatValue.Div(amount)
		tx.PriceFiat = &derived
	}

	return tx.Validate()
}

// parseDate parses the Date(UTC) cell. Binance writes a bare local-looking
// instant that is in fact UTC.
func parseDate(s string) (time.Time, error) {
	t, err := time.Parse("2006-01-02 15:04:05", s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q", s)
	}
	return t.UTC(), nil
}
