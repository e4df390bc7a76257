// Package renderer turns ledger data into markdown reports.
package renderer

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/coinledger/coinledger"
)

// table accumulates rows and renders a markdown table with right-aligned
// numeric columns.
type table struct {
	headers []string
	numeric []bool
	rows    [][]string
}

func newTable(headers []string, numeric []bool) *table {
	return &table{headers: headers, numeric: numeric}
}

func (t *table) row(cells ...string) { t.rows = append(t.rows, cells) }

func (t *table) write(w io.Writer) {
	fmt.Fprintf(w, "| %s |\n", strings.Join(t.headers, " | "))
	seps := make([]string, len(t.headers))
	for i := range seps {
		if i < len(t.numeric) && t.numeric[i] {
			seps[i] = "---:"
		} else {
			seps[i] = "---"
		}
	}
	fmt.Fprintf(w, "|%s|\n", strings.Join(seps, "|"))
	for _, row := range t.rows {
		fmt.Fprintf(w, "| %s |\n", strings.Join(row, " | "))
	}
}

// Holdings renders the current portfolio positions.
func Holdings(w io.Writer, items []coinledger.HoldingsItem, base string) {
	fmt.Fprintf(w, "# Holdings\n\n")
	if len(items) == 0 {
		fmt.Fprintln(w, "No holdings.")
		return
	}
	t := newTable(
		[]string{"Asset", "Amount", "Value " + base},
		[]bool{false, true, true},
	)
	for _, item := range items {
		value := ""
		switch {
		case base == "USD" && item.ValueUSD != nil:
			value = coinledger.M(*item.ValueUSD, "USD").String()
		case base == "EUR" && item.ValueEUR != nil:
			value = coinledger.M(*item.ValueEUR, "EUR").String()
		}
		t.row(item.Asset, item.Total.String(), value)
	}
	t.write(w)
}

// Expiring renders the holdings whose tax holding period ends soon.
func Expiring(w io.Writer, items []coinledger.ExpiringHolding) {
	fmt.Fprintf(w, "# Expiring holding periods\n\n")
	if len(items) == 0 {
		fmt.Fprintln(w, "No holding period ends within the configured window.")
		return
	}
	t := newTable(
		[]string{"Asset", "Amount", "Acquired", "Period ends", "Days left"},
		[]bool{false, true, false, false, true},
	)
	for _, item := range items {
		t.row(
			item.Asset,
			item.Amount.String(),
			item.Acquired.Format("2006-01-02"),
			item.PeriodEnd.Format("2006-01-02"),
			fmt.Sprintf("%d", item.DaysRemaining),
		)
	}
	t.write(w)
}

// Transactions renders the transaction list. External ids resolve to
// explorer links when the catalog knows the asset.
func Transactions(w io.Writer, txs []coinledger.Transaction, catalog coinledger.AssetCatalog) {
	fmt.Fprintf(w, "# Transactions\n\n")
	if len(txs) == 0 {
		fmt.Fprintln(w, "The ledger is empty.")
		return
	}
	t := newTable(
		[]string{"ID", "Date", "Type", "Amount", "Asset", "Value", "Links", "Note"},
		[]bool{true, false, false, true, false, true, false, false},
	)
	for _, tx := range txs {
		t.row(
			fmt.Sprintf("%d", tx.ID),
			tx.Timestamp.UTC().Format(time.RFC3339),
			string(tx.Type),
			tx.Amount.String(),
			tx.Asset,
			fiatCell(tx),
			linkCell(tx),
			noteCell(tx, catalog),
		)
	}
	t.write(w)
}

func fiatCell(tx coinledger.Transaction) string {
	m := tx.Fiat()
	if m.IsZero() {
		return ""
	}
	return m.String()
}

func linkCell(tx coinledger.Transaction) string {
	var parts []string
	if tx.LinkedPrev != nil {
		parts = append(parts, fmt.Sprintf("←%d", *tx.LinkedPrev))
	}
	if tx.LinkedNext != nil {
		parts = append(parts, fmt.Sprintf("→%d", *tx.LinkedNext))
	}
	return strings.Join(parts, " ")
}

func noteCell(tx coinledger.Transaction, catalog coinledger.AssetCatalog) string {
	note := tx.Note
	if url := coinledger.ExplorerLink(catalog, tx.Asset, tx.TxID); url != "" {
		link := fmt.Sprintf("[%s](%s)", shortID(tx.TxID), url)
		if note != "" {
			return note + " " + link
		}
		return link
	}
	return note
}

func shortID(txID string) string {
	if len(txID) > 12 {
		return txID[:12] + "…"
	}
	return txID
}
