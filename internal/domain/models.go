package domain

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// ReportKind identifies which statutory declaration a report carries.
type ReportKind string

// KindUI19 is the UIF employment/termination declaration. It is the only
// kind the export codec accepts.
const KindUI19 ReportKind = "UI-19"

// IDNumberLen is the length of a South African national identity number.
const IDNumberLen = 13

// Period is a reporting month.
type Period struct {
	Year  int
	Month time.Month
}

// Label renders the period for humans and filenames, e.g. "January 2026".
func (p Period) Label() string {
	return fmt.Sprintf("%s %d", p.Month, p.Year)
}

func (p Period) Valid() bool {
	return p.Year >= 1900 && p.Month >= time.January && p.Month <= time.December
}

// EmployerDeclaration holds the employer header of a UI-19 report.
type EmployerDeclaration struct {
	// LegalName is the tenant's registered name.
	LegalName string
	// UIFReference is the employer's UIF reference number, e.g. "U123456789".
	UIFReference string
	// PAYEReference is the SARS PAYE reference, e.g. "7123456789". Optional.
	PAYEReference string
	Period        Period
}

// TerminationReason is the UI-19 reason code for leaving employment.
type TerminationReason int

const (
	ReasonResigned TerminationReason = iota + 1
	ReasonDeceased
	ReasonRetired
	ReasonDismissed
	ReasonContractExpired
	ReasonRetrenched
	ReasonAbsconded
	ReasonBusinessClosed
	ReasonIllness
)

var terminationLabels = map[TerminationReason]string{
	ReasonResigned:        "Resigned",
	ReasonDeceased:        "Deceased",
	ReasonRetired:         "Retired",
	ReasonDismissed:       "Dismissed",
	ReasonContractExpired: "Contract expired",
	ReasonRetrenched:      "Retrenched",
	ReasonAbsconded:       "Absconded",
	ReasonBusinessClosed:  "Business closed",
	ReasonIllness:         "Illness / medically boarded",
}

func (r TerminationReason) String() string {
	if l, ok := terminationLabels[r]; ok {
		return l
	}
	return fmt.Sprintf("TerminationReason(%d)", int(r))
}

func (r TerminationReason) Valid() bool {
	_, ok := terminationLabels[r]
	return ok
}

// TerminationReasons returns every known reason code in ascending order.
func TerminationReasons() []TerminationReason {
	out := make([]TerminationReason, 0, len(terminationLabels))
	for r := ReasonResigned; r <= ReasonIllness; r++ {
		out = append(out, r)
	}
	return out
}

// NonContributorReason explains why an employee does not contribute to UIF.
type NonContributorReason int

const (
	NonContribUnderHours NonContributorReason = iota + 1 // fewer than 24 hours a month
	NonContribLearner
	NonContribPublicServant
	NonContribForeignContract
	NonContribCommissionOnly
)

var nonContribLabels = map[NonContributorReason]string{
	NonContribUnderHours:      "Works fewer than 24 hours per month",
	NonContribLearner:         "Learner (Skills Development Act)",
	NonContribPublicServant:   "Public servant",
	NonContribForeignContract: "Foreign national on contract",
	NonContribCommissionOnly:  "Earns commission only",
}

func (r NonContributorReason) String() string {
	if l, ok := nonContribLabels[r]; ok {
		return l
	}
	return fmt.Sprintf("NonContributorReason(%d)", int(r))
}

func (r NonContributorReason) Valid() bool {
	_, ok := nonContribLabels[r]
	return ok
}

// NonContributorReasons returns every known code in ascending order.
func NonContributorReasons() []NonContributorReason {
	out := make([]NonContributorReason, 0, len(nonContribLabels))
	for r := NonContribUnderHours; r <= NonContribCommissionOnly; r++ {
		out = append(out, r)
	}
	return out
}

// EmployeeRecord is one employee line of a UI-19 declaration.
// Dates carry no meaningful time-of-day; only the calendar date is used.
type EmployeeRecord struct {
	ID       int64 // storage row id
	ReportID int64

	// EmployeeID is the tenant's own employee code.
	EmployeeID           string
	IDNumber             string
	Surname              string
	Initials             string
	CommencementDate     time.Time
	TerminationDate      *time.Time
	TerminationReason    *TerminationReason
	NonContributorReason *NonContributorReason
	IsContributor        bool
	GrossRemuneration    decimal.Decimal
	HoursWorked          decimal.Decimal

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Terminated reports whether the employee left during the period.
func (e *EmployeeRecord) Terminated() bool { return e.TerminationDate != nil }

// Report is the canonical UI-19 report handed to the export codec.
// Employees keep the order supplied by the report pipeline.
type Report struct {
	ID          int64
	Kind        ReportKind
	Employer    EmployerDeclaration
	Employees   []EmployeeRecord
	Notes       string
	CreatedAt   time.Time
	GeneratedAt time.Time
}

// TotalRemuneration sums gross remuneration across all employees.
func (r *Report) TotalRemuneration() decimal.Decimal {
	total := decimal.Zero
	for i := range r.Employees {
		total = total.Add(r.Employees[i].GrossRemuneration)
	}
	return total
}

// ExportRecord is one row of the export audit log.
type ExportRecord struct {
	ID        string
	ReportID  int64
	Target    Target
	Filename  string
	Size      int
	CreatedAt time.Time
}
