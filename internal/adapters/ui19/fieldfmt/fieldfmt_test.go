package fieldfmt_test

import (
	"encoding/csv"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/csg33k/ui19-exporter/internal/adapters/ui19/fieldfmt"
)

func TestDates(t *testing.T) {
	d := time.Date(2026, time.January, 5, 13, 45, 0, 0, time.UTC)
	tests := []struct {
		name string
		fn   func(time.Time) string
		want string
	}{
		{"iso", fieldfmt.DateISO, "2026-01-05"},
		{"dmy", fieldfmt.DateDMY, "05/01/2026"},
		{"mdy", fieldfmt.DateMDY, "01/05/2026"},
		{"compact", fieldfmt.DateCompact, "20260105"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.fn(d); got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestCurrency2dp(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"0", "0.00"},
		{"12500.5", "12500.50"},
		{"1234567.891", "1234567.89"},
		{"0.005", "0.01"},
		{"-42", "-42.00"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			if got := fieldfmt.Currency2dp(decimal.RequireFromString(tt.in)); got != tt.want {
				t.Errorf("Currency2dp(%s) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestInteger(t *testing.T) {
	tests := map[string]string{
		"160":   "160",
		"22.5":  "23",
		"22.49": "22",
		"0":     "0",
	}
	for in, want := range tests {
		if got := fieldfmt.Integer(decimal.RequireFromString(in)); got != want {
			t.Errorf("Integer(%s) = %q, want %q", in, got, want)
		}
	}
}

func TestPadOrTruncate(t *testing.T) {
	tests := []struct {
		name  string
		text  string
		width int
		align fieldfmt.Align
		pad   rune
		want  string
	}{
		{"left pads right", "Li", 5, fieldfmt.AlignLeft, ' ', "Li   "},
		{"right pads left", "42", 5, fieldfmt.AlignRight, ' ', "   42"},
		{"zero fill", "7", 6, fieldfmt.AlignRight, '0', "000007"},
		{"exact", "ABCDE", 5, fieldfmt.AlignLeft, ' ', "ABCDE"},
		{"truncates left aligned", "Van der Merwe-Botha", 16, fieldfmt.AlignLeft, ' ', "Van der Merwe-Bo"},
		{"truncates right aligned keeps head", "123456789", 4, fieldfmt.AlignRight, ' ', "1234"},
		{"zero width", "abc", 0, fieldfmt.AlignLeft, ' ', ""},
		{"negative width", "abc", -3, fieldfmt.AlignLeft, ' ', ""},
		{"empty", "", 3, fieldfmt.AlignLeft, ' ', "   "},
		{"counts runes", "Müller", 8, fieldfmt.AlignLeft, ' ', "Müller  "},
		{"truncates runes", "Ñandú-Pérez", 5, fieldfmt.AlignLeft, ' ', "Ñandú"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := fieldfmt.PadOrTruncate(tt.text, tt.width, tt.align, tt.pad)
			if got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestPad(t *testing.T) {
	if got := fieldfmt.Pad("X", 3, fieldfmt.AlignRight); got != "  X" {
		t.Errorf("got %q", got)
	}
}

func TestEscapeDelimited(t *testing.T) {
	tests := []struct {
		name  string
		text  string
		delim rune
		want  string
	}{
		{"plain", "Smith", ',', "Smith"},
		{"comma", "Smith, J", ',', `"Smith, J"`},
		{"comma under pipe", "Smith, J", '|', "Smith, J"},
		{"pipe", "A|B", '|', `"A|B"`},
		{"tab", "A\tB", '\t', "\"A\tB\""},
		{"quote", `O"Brien`, ',', `"O""Brien"`},
		{"newline", "a\nb", ',', "\"a\nb\""},
		{"carriage return", "a\rb", ',', "\"a\rb\""},
		{"apostrophe", "O'Brien", ',', "O'Brien"},
		{"empty", "", ',', ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := fieldfmt.EscapeDelimited(tt.text, tt.delim); got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

// Escaped values must come back unchanged through a standard CSV reader.
func TestEscapeDelimited_ReadBack(t *testing.T) {
	values := []string{`He said "hi", twice`, "plain", "", "multi\nline", "trailing,", "a,\"b\"\nc|d\te"}
	for _, delim := range []rune{',', '|', '\t'} {
		escaped := make([]string, len(values))
		for i, v := range values {
			escaped[i] = fieldfmt.EscapeDelimited(v, delim)
		}
		r := csv.NewReader(strings.NewReader(strings.Join(escaped, string(delim))))
		r.Comma = delim
		got, err := r.Read()
		if err != nil {
			t.Fatalf("delimiter %q: read: %v", delim, err)
		}
		if len(got) != len(values) {
			t.Fatalf("delimiter %q: got %d fields, want %d", delim, len(got), len(values))
		}
		for i := range values {
			if got[i] != values[i] {
				t.Errorf("delimiter %q field %d: got %q, want %q", delim, i, got[i], values[i])
			}
		}
	}
}
