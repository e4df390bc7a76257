package coinledger

import (
	"reflect"
	"testing"
)

func TestParseAmount(t *testing.T) {
	tests := []struct {
		in      string
		want    string
		wantErr bool
	}{
		{in: "1.234,56", want: "1234.56"},
		{in: "1,234.56", want: "1234.56"},
		{in: "1.234.567,89", want: "1234567.89"},
		{in: "1,234,567.89", want: "1234567.89"},
		{in: "0,5", want: "0.5"},
		{in: "0.5", want: "0.5"},
		{in: "1234", want: "1234"},
		{in: " 42 ", want: "42"},
		{in: "-1.234,5", want: "-1234.5"},
		{in: "", wantErr: true},
		{in: "abc", wantErr: true},
		{in: "1.2.3,4,5", wantErr: true},
	}
	for _, tc := range tests {
		t.Run(tc.in, func(t *testing.T) {
			got, err := ParseAmount(tc.in)
			if tc.wantErr {
				if err == nil {
					t.Fatalf("ParseAmount(%q) = %s, want error", tc.in, got)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseAmount(%q): %v", tc.in, err)
			}
			if got.String() != tc.want {
				t.Errorf("ParseAmount(%q) = %s, want %s", tc.in, got, tc.want)
			}
		})
	}
}

func TestParseTimestamp(t *testing.T) {
	tests := []struct {
		in      string
		want    string
		wantErr bool
	}{
		{in: "2023-01-01T00:00:00Z", want: "2023-01-01T00:00:00Z"},
		{in: "2023-01-01T12:00:00+02:00", want: "2023-01-01T10:00:00Z"},
		{in: "2023-01-01T12:30:00", want: "2023-01-01T12:30:00Z"},
		{in: "2023-01-01 12:30:00", want: "2023-01-01T12:30:00Z"},
		{in: "2023-01-01", want: "2023-01-01T00:00:00Z"},
		{in: "01/02/2023", wantErr: true},
		{in: "", wantErr: true},
	}
	for _, tc := range tests {
		got, err := ParseTimestamp(tc.in)
		if tc.wantErr {
			if err == nil {
				t.Errorf("ParseTimestamp(%q) = %v, want error", tc.in, got)
			}
			continue
		}
		if err != nil {
			t.Errorf("ParseTimestamp(%q): %v", tc.in, err)
			continue
		}
		if got.Format("2006-01-02T15:04:05Z07:00") != tc.want {
			t.Errorf("ParseTimestamp(%q) = %v, want %s", tc.in, got, tc.want)
		}
	}
}

func TestSplitCSVRecord(t *testing.T) {
	tests := []struct {
		in    string
		delim rune
		want  []string
	}{
		{in: "a,b,c", delim: ',', want: []string{"a", "b", "c"}},
		{in: `a,"b,c",d`, delim: ',', want: []string{"a", "b,c", "d"}},
		{in: `a,"say ""hi""",c`, delim: ',', want: []string{"a", `say "hi"`, "c"}},
		{in: "a;b;c", delim: ';', want: []string{"a", "b", "c"}},
		{in: "a, b ,c", delim: ',', want: []string{"a", "b", "c"}},
		{in: `a," padded note ",c`, delim: ',', want: []string{"a", " padded note ", "c"}},
		{in: `a, " b " ,c`, delim: ',', want: []string{"a", " b ", "c"}},
		{in: "a,,c", delim: ',', want: []string{"a", "", "c"}},
	}
	for _, tc := range tests {
		if got := SplitCSVRecord(tc.in, tc.delim); !reflect.DeepEqual(got, tc.want) {
			t.Errorf("SplitCSVRecord(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}
