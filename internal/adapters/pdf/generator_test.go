package pdf

import (
	"bytes"
	"fmt"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/csg33k/ui19-exporter/internal/domain"
	"github.com/csg33k/ui19-exporter/internal/ports"
)

var _ ports.DeclarationRenderer = (*Renderer)(nil)

func reportWith(n int) *domain.Report {
	r := &domain.Report{
		Kind: domain.KindUI19,
		Employer: domain.EmployerDeclaration{
			LegalName:    "Acme (Pty) Ltd.",
			UIFReference: "U123456789",
			Period:       domain.Period{Year: 2026, Month: time.January},
		},
		GeneratedAt: time.Date(2026, time.February, 1, 8, 0, 0, 0, time.UTC),
	}
	reason := domain.ReasonDismissed
	term := time.Date(2026, time.January, 9, 0, 0, 0, 0, time.UTC)
	for i := 0; i < n; i++ {
		e := domain.EmployeeRecord{
			EmployeeID:        fmt.Sprintf("E%03d", i+1),
			IDNumber:          "8001015009087",
			Surname:           "Employee",
			Initials:          "A",
			CommencementDate:  time.Date(2020, time.May, 1, 0, 0, 0, 0, time.UTC),
			IsContributor:     i%3 != 0,
			GrossRemuneration: decimal.NewFromInt(int64(1000 * (i + 1))),
			HoursWorked:       decimal.NewFromInt(160),
		}
		if i%4 == 0 {
			e.TerminationDate, e.TerminationReason = &term, &reason
		}
		if !e.IsContributor {
			nc := domain.NonContribCommissionOnly
			e.NonContributorReason = &nc
		}
		r.Employees = append(r.Employees, e)
	}
	return r
}

func TestRender(t *testing.T) {
	tests := []struct {
		name      string
		employees int
	}{
		{"empty", 0},
		{"one page", 5},
		{"page breaks", 80},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			if err := New().Render(reportWith(tt.employees), &buf); err != nil {
				t.Fatalf("Render: %v", err)
			}
			if !bytes.HasPrefix(buf.Bytes(), []byte("%PDF-")) {
				t.Error("output is not a PDF")
			}
		})
	}
}

func TestLabels(t *testing.T) {
	reason := domain.ReasonRetired
	nc := domain.NonContribLearner
	tests := []struct {
		name string
		e    domain.EmployeeRecord
		fn   func(*domain.EmployeeRecord) string
		want string
	}{
		{"no reason", domain.EmployeeRecord{}, reasonLabel, ""},
		{"reason", domain.EmployeeRecord{TerminationReason: &reason}, reasonLabel, "3 Retired"},
		{"contributor", domain.EmployeeRecord{IsContributor: true}, contributorLabel, "Y"},
		{"non-contributor", domain.EmployeeRecord{NonContributorReason: &nc}, contributorLabel, "N (2)"},
		{"non-contributor no reason", domain.EmployeeRecord{}, contributorLabel, "N"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.fn(&tt.e); got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}
