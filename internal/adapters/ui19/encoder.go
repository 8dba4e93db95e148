package ui19

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"unicode"

	"github.com/csg33k/ui19-exporter/internal/adapters/ui19/fieldfmt"
	"github.com/csg33k/ui19-exporter/internal/adapters/ui19/spec"
	"github.com/csg33k/ui19-exporter/internal/domain"
)

// ErrUnsupportedTarget is returned for any target outside domain.Targets.
var ErrUnsupportedTarget = errors.New("ui19: unsupported target system")

const lineSep = "\n"

// Encode renders r in the layout of target t. Lines are joined with "\n" and
// there is no trailing newline. The payload depends only on r and t.
func Encode(r *domain.Report, t domain.Target) (string, error) {
	s, ok := spec.For(t)
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrUnsupportedTarget, string(t))
	}
	return encode(r, s), nil
}

func EncodeSage(r *domain.Report) string       { return mustEncode(r, domain.TargetSage) }
func EncodePsiber(r *domain.Report) string     { return mustEncode(r, domain.TargetPsiber) }
func EncodeSARS(r *domain.Report) string       { return mustEncode(r, domain.TargetSARS) }
func EncodeXero(r *domain.Report) string       { return mustEncode(r, domain.TargetXero) }
func EncodeKerridge(r *domain.Report) string   { return mustEncode(r, domain.TargetKerridge) }
func EncodeAutomate(r *domain.Report) string   { return mustEncode(r, domain.TargetAutomate) }
func EncodeQuickBooks(r *domain.Report) string { return mustEncode(r, domain.TargetQuickBooks) }

func mustEncode(r *domain.Report, t domain.Target) string {
	s, ok := spec.For(t)
	if !ok {
		panic(fmt.Sprintf("ui19: no layout for %q: table bug", t))
	}
	return encode(r, s)
}

func encode(r *domain.Report, s spec.FormatSpec) string {
	requireUI19(r)
	switch s.Layout {
	case spec.Delimited:
		return encodeDelimited(r, s)
	case spec.FixedWidth:
		return encodeFixedWidth(r, s)
	case spec.Envelope:
		return encodeEnvelope(r, s)
	}
	panic(fmt.Sprintf("ui19: layout %s for %q has no encoder", s.Layout, s.Target))
}

// requireUI19 panics when handed any other report kind. Report selection
// happens upstream, so reaching this with the wrong kind is a caller bug.
func requireUI19(r *domain.Report) {
	if r == nil {
		panic("ui19: nil report")
	}
	if r.Kind != domain.KindUI19 {
		panic(fmt.Sprintf("ui19: cannot encode report of kind %q", r.Kind))
	}
}

// ---------------------------------------------------------------------------
// Layouts
// ---------------------------------------------------------------------------

func encodeDelimited(r *domain.Report, s spec.FormatSpec) string {
	lines := make([]string, 0, len(r.Employees)+1)
	if s.Header {
		lines = append(lines, joinEscaped(s.HeaderNames(), s.Delimiter))
	}
	for i := range r.Employees {
		lines = append(lines, delimitedRow(s, i+1, &r.Employees[i]))
	}
	return strings.Join(lines, lineSep)
}

func encodeEnvelope(r *domain.Report, s spec.FormatSpec) string {
	d := string(s.Delimiter)
	emp := r.Employer
	lines := make([]string, 0, len(r.Employees)+2)
	lines = append(lines, strings.Join([]string{
		"H",
		fieldfmt.EscapeDelimited(emp.UIFReference, s.Delimiter),
		fmt.Sprintf("%04d", emp.Period.Year),
		fmt.Sprintf("%02d", int(emp.Period.Month)),
	}, d))
	for i := range r.Employees {
		lines = append(lines, delimitedRow(s, i+1, &r.Employees[i]))
	}
	lines = append(lines, strings.Join([]string{"T", strconv.Itoa(len(r.Employees))}, d))
	return strings.Join(lines, lineSep)
}

func encodeFixedWidth(r *domain.Report, s spec.FormatSpec) string {
	lines := make([]string, 0, len(r.Employees))
	for i := range r.Employees {
		b := newFixedBuf(s.RecordLen)
		for _, c := range s.Columns {
			b.put(c, c.Value(i+1, &r.Employees[i]))
		}
		lines = append(lines, b.String())
	}
	return strings.Join(lines, lineSep)
}

func delimitedRow(s spec.FormatSpec, seq int, e *domain.EmployeeRecord) string {
	fields := make([]string, len(s.Columns))
	for i, c := range s.Columns {
		fields[i] = c.Value(seq, e)
	}
	return joinEscaped(fields, s.Delimiter)
}

func joinEscaped(fields []string, delim rune) string {
	out := make([]string, len(fields))
	for i, f := range fields {
		out[i] = fieldfmt.EscapeDelimited(f, delim)
	}
	return strings.Join(out, string(delim))
}

// ---------------------------------------------------------------------------
// Buffer
// ---------------------------------------------------------------------------

// fixedBuf is one fixed-width record, addressed in characters.
type fixedBuf struct{ data []rune }

func newFixedBuf(n int) *fixedBuf {
	d := make([]rune, n)
	for i := range d {
		d[i] = ' '
	}
	return &fixedBuf{data: d}
}

// put fits value into the column and writes it at the column's position.
// Control characters become spaces so a record stays on one line.
// Panics when the column lies outside the record, which is a table bug.
func (b *fixedBuf) put(c spec.Column, value string) {
	if c.Start < 1 || c.End > len(b.data) || c.End < c.Start {
		panic(fmt.Sprintf("ui19: column %q at %d-%d outside %d-char record", c.Name, c.Start, c.End, len(b.data)))
	}
	pad := c.Pad
	if pad == 0 {
		pad = ' '
	}
	value = strings.Map(func(r rune) rune {
		if unicode.IsControl(r) {
			return ' '
		}
		return r
	}, value)
	copy(b.data[c.Start-1:c.End], []rune(fieldfmt.PadOrTruncate(value, c.Len(), c.Align, pad)))
}

func (b *fixedBuf) String() string { return string(b.data) }
