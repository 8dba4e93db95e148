// Package fieldfmt holds the pure field transforms shared by every UI-19
// export layout: date notations, fixed-point money, fixed-width padding and
// delimited-field escaping. Nothing here keeps state.
package fieldfmt

import (
	"strings"
	"time"
	"unicode/utf8"

	"github.com/shopspring/decimal"
)

const (
	isoLayout     = "2006-01-02"
	dmyLayout     = "02/01/2006"
	mdyLayout     = "01/02/2006"
	compactLayout = "20060102"
)

// Callers render absent dates themselves (usually as ""); these never see one.

// DateISO renders YYYY-MM-DD.
func DateISO(t time.Time) string { return t.Format(isoLayout) }

// DateDMY renders DD/MM/YYYY.
func DateDMY(t time.Time) string { return t.Format(dmyLayout) }

// DateMDY renders MM/DD/YYYY.
func DateMDY(t time.Time) string { return t.Format(mdyLayout) }

// DateCompact renders YYYYMMDD, the ISO order without separators.
func DateCompact(t time.Time) string { return t.Format(compactLayout) }

// Currency2dp renders an amount with exactly two fractional digits, no
// grouping and no symbol. Negative input is not special-cased.
func Currency2dp(amount decimal.Decimal) string { return amount.StringFixed(2) }

// Integer renders a quantity rounded half away from zero to a whole number.
func Integer(v decimal.Decimal) string { return v.StringFixed(0) }

// Align selects which side of a fixed-width column the text sits on.
type Align int

const (
	AlignLeft  Align = iota // names, codes: padded on the right
	AlignRight              // numbers: padded on the left
)

// PadOrTruncate fits text into exactly width characters. Longer text is cut
// to width with no marker; shorter text is filled with pad on the side
// opposite the alignment. Widths are counted in runes. A negative width is
// treated as zero.
func PadOrTruncate(text string, width int, align Align, pad rune) string {
	if width <= 0 {
		return ""
	}
	n := utf8.RuneCountInString(text)
	if n > width {
		r := []rune(text)
		return string(r[:width])
	}
	fill := strings.Repeat(string(pad), width-n)
	if align == AlignRight {
		return fill + text
	}
	return text + fill
}

// Pad is PadOrTruncate with the usual space fill.
func Pad(text string, width int, align Align) string {
	return PadOrTruncate(text, width, align, ' ')
}

// EscapeDelimited quotes a value for a delimiter-separated line. A value
// holding the delimiter, a double quote or a line break is wrapped in double
// quotes with inner quotes doubled; anything else is returned unchanged.
func EscapeDelimited(text string, delimiter rune) string {
	if !strings.ContainsRune(text, delimiter) && !strings.ContainsAny(text, "\"\n\r") {
		return text
	}
	return `"` + strings.ReplaceAll(text, `"`, `""`) + `"`
}
