// Package spec defines the per-target record layouts for UI-19 exports.
// Every supported target has exactly one FormatSpec; the table is built once
// at package initialisation and never modified afterwards.
package spec

import (
	"slices"
	"strconv"
	"time"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/csg33k/ui19-exporter/internal/adapters/ui19/fieldfmt"
	"github.com/csg33k/ui19-exporter/internal/domain"
)

// Layout is the structural family of a target's payload.
type Layout int

const (
	// Delimited is an optional header line plus one delimited row per employee.
	Delimited Layout = iota
	// FixedWidth concatenates padded columns with no separator and no header.
	FixedWidth
	// Envelope wraps delimited detail rows in H and T control records.
	Envelope
)

func (l Layout) String() string {
	switch l {
	case Delimited:
		return "delimited"
	case FixedWidth:
		return "fixed-width"
	case Envelope:
		return "envelope"
	}
	return "Layout(" + strconv.Itoa(int(l)) + ")"
}

// Accessor extracts one rendered field from an employee. seq is the 1-based
// position of the employee within this export only.
type Accessor func(seq int, e *domain.EmployeeRecord) string

// Column is one field of a target layout. Start/End are 1-based inclusive
// positions and are only meaningful for FixedWidth layouts.
type Column struct {
	Name        string
	Start       int
	End         int
	Align       fieldfmt.Align
	Pad         rune
	Value       Accessor
	Description string
}

func (c Column) Len() int { return c.End - c.Start + 1 }

type FormatSpec struct {
	Target    domain.Target
	Label     string
	Layout    Layout
	Delimiter rune // Delimited and Envelope only
	Header    bool // Delimited only
	RecordLen int  // FixedWidth only
	Columns   []Column
}

// HeaderNames returns the column names in declared order.
func (s FormatSpec) HeaderNames() []string {
	out := make([]string, len(s.Columns))
	for i, c := range s.Columns {
		out[i] = c.Name
	}
	return out
}

// For returns the layout for t. The bool is false for targets outside the
// closed set; there is no fallback layout.
func For(t domain.Target) (FormatSpec, bool) {
	s, ok := table[t]
	if !ok {
		return FormatSpec{}, false
	}
	return s.clone(), true
}

// All returns every layout in domain.Targets order.
func All() []FormatSpec {
	out := make([]FormatSpec, 0, len(table))
	for _, t := range domain.Targets() {
		out = append(out, table[t].clone())
	}
	return out
}

// clone copies s with its own Columns so callers never reach the table.
func (s *FormatSpec) clone() FormatSpec {
	c := *s
	c.Columns = slices.Clone(s.Columns)
	return c
}

var table = map[domain.Target]*FormatSpec{
	domain.TargetSage:       sage(),
	domain.TargetPsiber:     psiber(),
	domain.TargetSARS:       sars(),
	domain.TargetXero:       xero(),
	domain.TargetKerridge:   kerridge(),
	domain.TargetAutomate:   automate(),
	domain.TargetQuickBooks: quickbooks(),
}

func sage() *FormatSpec {
	return &FormatSpec{
		Target:    domain.TargetSage,
		Label:     "Sage Pastel Payroll",
		Layout:    Delimited,
		Delimiter: ',',
		Header:    true,
		Columns: []Column{
			{Name: "EmployeeCode", Value: employeeCode},
			{Name: "IDNumber", Value: idNumber},
			{Name: "Surname", Value: surname},
			{Name: "Initials", Value: initials},
			{Name: "CommencementDate", Value: commenced(fieldfmt.DateISO)},
			{Name: "TerminationDate", Value: terminated(fieldfmt.DateISO)},
			{Name: "TerminationReason", Value: terminationReason},
			{Name: "UIFContributor", Value: contributor},
			{Name: "NonContributorReason", Value: nonContributorReason},
			{Name: "GrossRemuneration", Value: gross},
		},
	}
}

// psiber imports headerless pipe files and wants whole hours.
func psiber() *FormatSpec {
	return &FormatSpec{
		Target:    domain.TargetPsiber,
		Label:     "Psiber Payroll",
		Layout:    Delimited,
		Delimiter: '|',
		Header:    false,
		Columns: []Column{
			{Name: "EmployeeNumber", Value: employeeCode},
			{Name: "IDNumber", Value: idNumber},
			{Name: "Surname", Value: surname},
			{Name: "Initials", Value: initials},
			{Name: "StartDate", Value: commenced(fieldfmt.DateDMY)},
			{Name: "EndDate", Value: terminated(fieldfmt.DateDMY)},
			{Name: "ReasonCode", Value: terminationReason},
			{Name: "Contributor", Value: contributor},
			{Name: "NonContributorCode", Value: nonContributorReason},
			{Name: "Remuneration", Value: gross},
			{Name: "Hours", Value: hoursWhole},
		},
	}
}

// sars describes only the D record; the H and T records are built by the
// envelope encoder from the employer header and the detail count.
func sars() *FormatSpec {
	return &FormatSpec{
		Target:    domain.TargetSARS,
		Label:     "SARS e@syFile UI-19",
		Layout:    Envelope,
		Delimiter: '|',
		Columns: []Column{
			{Name: "RecordType", Value: constant("D")},
			{Name: "IDNumber", Value: idNumber},
			{Name: "Surname", Value: upper(surname)},
			{Name: "Initials", Value: upper(initials)},
			{Name: "CommencementDate", Value: commenced(fieldfmt.DateISO)},
			{Name: "TerminationDate", Value: terminated(fieldfmt.DateISO)},
			{Name: "TerminationReason", Value: terminationReason},
			{Name: "Contributor", Value: contributor},
			{Name: "NonContributorReason", Value: nonContributorReason},
			{Name: "GrossRemuneration", Value: gross},
			{Name: "HoursWorked", Value: hours},
		},
	}
}

func xero() *FormatSpec {
	return &FormatSpec{
		Target:    domain.TargetXero,
		Label:     "Xero Payroll",
		Layout:    Delimited,
		Delimiter: ',',
		Header:    true,
		Columns: []Column{
			{Name: "EmployeeNumber", Value: employeeCode},
			{Name: "IDNumber", Value: idNumber},
			{Name: "LastName", Value: surname},
			{Name: "Initials", Value: initials},
			{Name: "StartDate", Value: commenced(fieldfmt.DateDMY)},
			{Name: "TerminationDate", Value: terminated(fieldfmt.DateDMY)},
			{Name: "TerminationReason", Value: terminationReason},
			{Name: "UIFContributor", Value: contributor},
			{Name: "NonContributorReason", Value: nonContributorReason},
			{Name: "GrossEarnings", Value: gross},
		},
	}
}

// kerridge is an 80-column card layout. Positions:
//
//	 1-  6  Sequence            (zero-filled, export order)
//	 7- 19  ID number
//	20- 35  Surname
//	36- 39  Initials
//	40- 47  Commencement        YYYYMMDD
//	48- 55  Termination         YYYYMMDD or blank
//	56- 57  Termination reason  right-aligned
//	58      Contributor         Y/N
//	59- 60  Non-contributor     right-aligned
//	61- 72  Gross remuneration  right-aligned, 2dp
//	73- 80  Hours worked        right-aligned, 2dp
func kerridge() *FormatSpec {
	return &FormatSpec{
		Target:    domain.TargetKerridge,
		Label:     "Kerridge Payroll (fixed width)",
		Layout:    FixedWidth,
		RecordLen: 80,
		Columns: []Column{
			{Name: "Sequence", Start: 1, End: 6, Align: fieldfmt.AlignRight, Pad: '0', Value: sequence, Description: "1-based position in this file"},
			{Name: "IDNumber", Start: 7, End: 19, Align: fieldfmt.AlignLeft, Pad: ' ', Value: idNumber},
			{Name: "Surname", Start: 20, End: 35, Align: fieldfmt.AlignLeft, Pad: ' ', Value: surname, Description: "Truncated when longer than 16"},
			{Name: "Initials", Start: 36, End: 39, Align: fieldfmt.AlignLeft, Pad: ' ', Value: initials},
			{Name: "CommencementDate", Start: 40, End: 47, Align: fieldfmt.AlignLeft, Pad: ' ', Value: commenced(fieldfmt.DateCompact)},
			{Name: "TerminationDate", Start: 48, End: 55, Align: fieldfmt.AlignLeft, Pad: ' ', Value: terminated(fieldfmt.DateCompact)},
			{Name: "TerminationReason", Start: 56, End: 57, Align: fieldfmt.AlignRight, Pad: ' ', Value: terminationReason},
			{Name: "Contributor", Start: 58, End: 58, Align: fieldfmt.AlignLeft, Pad: ' ', Value: contributor},
			{Name: "NonContributorReason", Start: 59, End: 60, Align: fieldfmt.AlignRight, Pad: ' ', Value: nonContributorReason},
			{Name: "GrossRemuneration", Start: 61, End: 72, Align: fieldfmt.AlignRight, Pad: ' ', Value: gross},
			{Name: "HoursWorked", Start: 73, End: 80, Align: fieldfmt.AlignRight, Pad: ' ', Value: hours},
		},
	}
}

func automate() *FormatSpec {
	return &FormatSpec{
		Target:    domain.TargetAutomate,
		Label:     "Automate Bureau (tab delimited)",
		Layout:    Delimited,
		Delimiter: '\t',
		Header:    true,
		Columns: []Column{
			{Name: "Employee Code", Value: employeeCode},
			{Name: "ID Number", Value: idNumber},
			{Name: "Surname", Value: surname},
			{Name: "Initials", Value: initials},
			{Name: "Date Engaged", Value: commenced(fieldfmt.DateDMY)},
			{Name: "Date Terminated", Value: terminated(fieldfmt.DateDMY)},
			{Name: "Termination Reason", Value: terminationReason},
			{Name: "UIF Contributor", Value: contributor},
			{Name: "Non-Contributor Reason", Value: nonContributorReason},
			{Name: "Remuneration", Value: gross},
			{Name: "Hours", Value: hours},
		},
	}
}

func quickbooks() *FormatSpec {
	return &FormatSpec{
		Target:    domain.TargetQuickBooks,
		Label:     "QuickBooks Payroll",
		Layout:    Delimited,
		Delimiter: ',',
		Header:    true,
		Columns: []Column{
			{Name: "Employee ID", Value: employeeCode},
			{Name: "National ID", Value: idNumber},
			{Name: "Last Name", Value: surname},
			{Name: "Initials", Value: initials},
			{Name: "Hire Date", Value: commenced(fieldfmt.DateMDY)},
			{Name: "Release Date", Value: terminated(fieldfmt.DateMDY)},
			{Name: "Release Reason", Value: terminationReason},
			{Name: "UIF Contributor", Value: contributor},
			{Name: "Exemption Reason", Value: nonContributorReason},
			{Name: "Gross Pay", Value: gross},
			{Name: "Hours Worked", Value: hours},
		},
	}
}

// ---------------------------------------------------------------------------
// Accessors
// ---------------------------------------------------------------------------

func employeeCode(_ int, e *domain.EmployeeRecord) string { return e.EmployeeID }
func idNumber(_ int, e *domain.EmployeeRecord) string     { return e.IDNumber }
func surname(_ int, e *domain.EmployeeRecord) string      { return e.Surname }
func initials(_ int, e *domain.EmployeeRecord) string     { return e.Initials }
func sequence(seq int, _ *domain.EmployeeRecord) string   { return strconv.Itoa(seq) }

func gross(_ int, e *domain.EmployeeRecord) string {
	return fieldfmt.Currency2dp(e.GrossRemuneration)
}

func hours(_ int, e *domain.EmployeeRecord) string {
	return fieldfmt.Currency2dp(e.HoursWorked)
}

func hoursWhole(_ int, e *domain.EmployeeRecord) string {
	return fieldfmt.Integer(e.HoursWorked)
}

func contributor(_ int, e *domain.EmployeeRecord) string {
	if e.IsContributor {
		return "Y"
	}
	return "N"
}

func terminationReason(_ int, e *domain.EmployeeRecord) string {
	if e.TerminationReason == nil {
		return ""
	}
	return strconv.Itoa(int(*e.TerminationReason))
}

func nonContributorReason(_ int, e *domain.EmployeeRecord) string {
	if e.NonContributorReason == nil {
		return ""
	}
	return strconv.Itoa(int(*e.NonContributorReason))
}

func commenced(format func(time.Time) string) Accessor {
	return func(_ int, e *domain.EmployeeRecord) string {
		return format(e.CommencementDate)
	}
}

func terminated(format func(time.Time) string) Accessor {
	return func(_ int, e *domain.EmployeeRecord) string {
		if e.TerminationDate == nil {
			return ""
		}
		return format(*e.TerminationDate)
	}
}

func constant(v string) Accessor {
	return func(int, *domain.EmployeeRecord) string { return v }
}

// upper wraps an accessor with locale-neutral upper-casing. A Caser is not
// safe for concurrent use, so one is made per call.
func upper(a Accessor) Accessor {
	return func(seq int, e *domain.EmployeeRecord) string {
		return cases.Upper(language.Und).String(a(seq, e))
	}
}
