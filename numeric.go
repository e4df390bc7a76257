package coinledger

import (
	"fmt"
	"strings"
	"time"
	"unicode"

	"github.com/shopspring/decimal"
)

// ParseAmount parses a numeric string regardless of its locale convention.
// When both ',' and '.' appear, the right-most of the two is the decimal
// separator and the other is stripped as a thousands separator. A lone ','
// is treated as the decimal separator.
//
//	"1.234,56" -> 1234.56
//	"1,234.56" -> 1234.56
//	"0,5"      -> 0.5
func ParseAmount(s string) (decimal.Decimal, error) {
	cleaned := strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, s)
	if cleaned == "" {
		return decimal.Decimal{}, fmt.Errorf("empty amount")
	}

	lastComma := strings.LastIndex(cleaned, ",")
	lastDot := strings.LastIndex(cleaned, ".")
	switch {
	case lastComma >= 0 && lastDot >= 0:
		if lastComma > lastDot {
			cleaned = strings.ReplaceAll(cleaned, ".", "")
			cleaned = strings.Replace(cleaned, ",", ".", 1)
		} else {
			cleaned = strings.ReplaceAll(cleaned, ",", "")
		}
	case lastComma >= 0:
		// lone comma is a decimal separator; any earlier ones are
		// thousands separators
		cleaned = strings.ReplaceAll(cleaned[:lastComma], ",", "") + "." + cleaned[lastComma+1:]
	}

	d, err := decimal.NewFromString(cleaned)
	if err != nil {
		return decimal.Decimal{}, fmt.Errorf("invalid amount %q: %w", s, err)
	}
	return d, nil
}

// timestampLayouts are the accepted forms, tried in order. Layouts without
// a zone are interpreted as UTC.
var timestampLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// ParseTimestamp parses an ISO-8601-like instant. Ill-formed values are
// rejected here, at the boundary, so they are never stored.
func ParseTimestamp(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid timestamp %q", s)
}

// SplitCSVRecord splits one CSV line on the given delimiter, honoring
// double-quoted fields with doubled quotes as literal quote characters.
// Unquoted fields are trimmed; whitespace inside quotes is data and is
// kept as written.
func SplitCSVRecord(line string, delim rune) []string {
	var fields []string
	var field strings.Builder
	inQuotes := false
	quoted := false
	closedAt := 0
	flush := func() {
		s := field.String()
		switch {
		case quoted && !inQuotes:
			// drop anything trailing the closing quote, such as
			// stray spaces before the delimiter
			s = s[:closedAt]
		case !quoted:
			s = strings.TrimSpace(s)
		}
		fields = append(fields, s)
		field.Reset()
		quoted = false
		closedAt = 0
	}
	runes := []rune(line)
	for i := 0; i < len(runes); i++ {
		r := runes[i]
		switch {
		case r == '"':
			if inQuotes && i+1 < len(runes) && runes[i+1] == '"' {
				field.WriteRune('"')
				i++
			} else if inQuotes {
				inQuotes = false
				closedAt = field.Len()
			} else {
				inQuotes = true
				quoted = true
				if strings.TrimSpace(field.String()) == "" {
					field.Reset()
				}
			}
		case r == delim && !inQuotes:
			flush()
		default:
			field.WriteRune(r)
		}
	}
	flush()
	return fields
}

// containsTopLevel reports whether the rune occurs in the line outside of
// double-quoted sections.
func containsTopLevel(line string, target rune) bool {
	inQuotes := false
	for _, r := range line {
		switch {
		case r == '"':
			inQuotes = !inQuotes
		case r == target && !inQuotes:
			return true
		}
	}
	return false
}

// normalizeQuotedNewlines replaces newlines occurring inside double-quoted
// fields with spaces, so the data can safely be split into lines afterwards.
func normalizeQuotedNewlines(data string) string {
	var out strings.Builder
	out.Grow(len(data))
	inQuotes := false
	for _, r := range data {
		switch {
		case r == '"':
			inQuotes = !inQuotes
			out.WriteRune(r)
		case (r == '\n' || r == '\r') && inQuotes:
			out.WriteRune(' ')
		default:
			out.WriteRune(r)
		}
	}
	return out.String()
}
