package domain

import (
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

func validEmployee() EmployeeRecord {
	return EmployeeRecord{
		EmployeeID:        "E001",
		IDNumber:          "8001015009087",
		Surname:           "Mokoena",
		Initials:          "TS",
		CommencementDate:  time.Date(2020, time.March, 1, 0, 0, 0, 0, time.UTC),
		IsContributor:     true,
		GrossRemuneration: decimal.NewFromInt(15000),
		HoursWorked:       decimal.NewFromInt(160),
	}
}

func validReport() *Report {
	return &Report{
		Kind: KindUI19,
		Employer: EmployerDeclaration{
			LegalName:    "Acme",
			UIFReference: "U1234567",
			Period:       Period{Year: 2026, Month: time.January},
		},
		Employees: []EmployeeRecord{validEmployee()},
	}
}

func TestPeriodLabel(t *testing.T) {
	if got := (Period{Year: 2026, Month: time.January}).Label(); got != "January 2026" {
		t.Errorf("got %q", got)
	}
}

func TestReportValidate(t *testing.T) {
	if err := validReport().Validate(); err != nil {
		t.Fatalf("valid report rejected: %v", err)
	}

	tests := []struct {
		name   string
		mutate func(r *Report)
		want   string
	}{
		{"wrong kind", func(r *Report) { r.Kind = "UI-2.8" }, "kind"},
		{"no legal name", func(r *Report) { r.Employer.LegalName = " " }, "legal name"},
		{"no UIF reference", func(r *Report) { r.Employer.UIFReference = "" }, "UIF reference"},
		{"month 13", func(r *Report) { r.Employer.Period.Month = 13 }, "period"},
		{"bad employee", func(r *Report) { r.Employees[0].Surname = "" }, "employee 1 (E001)"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := validReport()
			tt.mutate(r)
			err := r.Validate()
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("error %q does not mention %q", err, tt.want)
			}
		})
	}
}

func TestEmployeeValidate(t *testing.T) {
	term := time.Date(2026, time.January, 31, 0, 0, 0, 0, time.UTC)
	early := time.Date(2019, time.January, 1, 0, 0, 0, 0, time.UTC)
	resigned := ReasonResigned
	bogus := TerminationReason(42)
	learner := NonContribLearner

	tests := []struct {
		name   string
		mutate func(e *EmployeeRecord)
		want   string
	}{
		{"short ID", func(e *EmployeeRecord) { e.IDNumber = "800101" }, "13 digits"},
		{"letters in ID", func(e *EmployeeRecord) { e.IDNumber = "80010150090AB" }, "13 digits"},
		{"no initials", func(e *EmployeeRecord) { e.Initials = "" }, "initials"},
		{"no commencement", func(e *EmployeeRecord) { e.CommencementDate = time.Time{} }, "commencement"},
		{"terminated before start", func(e *EmployeeRecord) { e.TerminationDate, e.TerminationReason = &early, &resigned }, "precedes"},
		{"date without reason", func(e *EmployeeRecord) { e.TerminationDate = &term }, "exactly when"},
		{"reason without date", func(e *EmployeeRecord) { e.TerminationReason = &resigned }, "exactly when"},
		{"unknown reason", func(e *EmployeeRecord) { e.TerminationDate, e.TerminationReason = &term, &bogus }, "unknown termination reason 42"},
		{"non-contributor without reason", func(e *EmployeeRecord) { e.IsContributor = false }, "non-contributor reason"},
		{"negative gross", func(e *EmployeeRecord) { e.GrossRemuneration = decimal.NewFromInt(-1) }, "gross"},
		{"negative hours", func(e *EmployeeRecord) { e.HoursWorked = decimal.NewFromInt(-1) }, "hours"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := validEmployee()
			tt.mutate(&e)
			err := e.Validate()
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("error %q does not mention %q", err, tt.want)
			}
		})
	}

	t.Run("terminated non-contributor", func(t *testing.T) {
		e := validEmployee()
		e.TerminationDate, e.TerminationReason = &term, &resigned
		e.IsContributor, e.NonContributorReason = false, &learner
		if err := e.Validate(); err != nil {
			t.Errorf("unexpected error: %v", err)
		}
	})
}

func TestReasonLabels(t *testing.T) {
	if len(TerminationReasons()) != 9 {
		t.Errorf("got %d termination reasons", len(TerminationReasons()))
	}
	if len(NonContributorReasons()) != 5 {
		t.Errorf("got %d non-contributor reasons", len(NonContributorReasons()))
	}
	if got := ReasonRetrenched.String(); got != "Retrenched" {
		t.Errorf("got %q", got)
	}
	if got := TerminationReason(0).String(); got != "TerminationReason(0)" {
		t.Errorf("got %q", got)
	}
}

func TestParseTarget(t *testing.T) {
	tests := []struct {
		in      string
		want    Target
		wantErr bool
	}{
		{"sage", TargetSage, false},
		{" QuickBooks ", TargetQuickBooks, false},
		{"SARS", TargetSARS, false},
		{"pastel", "", true},
		{"", "", true},
	}
	for _, tt := range tests {
		got, err := ParseTarget(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseTarget(%q) err = %v", tt.in, err)
		}
		if got != tt.want {
			t.Errorf("ParseTarget(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
	if len(Targets()) != 7 {
		t.Errorf("got %d targets, want 7", len(Targets()))
	}
}

func TestTotalRemuneration(t *testing.T) {
	r := validReport()
	second := validEmployee()
	second.GrossRemuneration = decimal.RequireFromString("0.10")
	r.Employees = append(r.Employees, second)
	if got := r.TotalRemuneration().StringFixed(2); got != "15000.10" {
		t.Errorf("got %s", got)
	}
}
