package reportfile

import (
	"strings"
	"testing"
	"time"

	"github.com/csg33k/ui19-exporter/internal/domain"
)

func TestLoad(t *testing.T) {
	r, err := Load("testdata/january.yaml")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if r.Kind != domain.KindUI19 {
		t.Errorf("Kind = %q", r.Kind)
	}
	if got := r.Employer.Period.Label(); got != "January 2026" {
		t.Errorf("period = %q, want January 2026", got)
	}
	if len(r.Employees) != 2 {
		t.Fatalf("got %d employees, want 2", len(r.Employees))
	}

	first := r.Employees[0]
	if first.Surname != "Van der Merwe-Botha" {
		t.Errorf("surname = %q", first.Surname)
	}
	if first.TerminationDate == nil || !first.TerminationDate.Equal(time.Date(2026, 1, 15, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("termination date = %v", first.TerminationDate)
	}
	if first.TerminationReason == nil || *first.TerminationReason != domain.ReasonResigned {
		t.Errorf("termination reason = %v", first.TerminationReason)
	}
	if got := first.GrossRemuneration.StringFixed(2); got != "12500.50" {
		t.Errorf("gross = %s", got)
	}

	second := r.Employees[1]
	if second.IsContributor {
		t.Error("second employee should not be a contributor")
	}
	if second.NonContributorReason == nil || *second.NonContributorReason != domain.NonContribUnderHours {
		t.Errorf("non-contributor reason = %v", second.NonContributorReason)
	}
	if got := second.HoursWorked.StringFixed(2); got != "22.50" {
		t.Errorf("hours = %s", got)
	}
}

func TestReadRejects(t *testing.T) {
	tests := []struct {
		name string
		doc  string
		want string
	}{
		{
			name: "unknown key",
			doc:  "employer:\n  legal_name: A\n  colour: red\n",
			want: "colour",
		},
		{
			name: "bad date",
			doc: `employer: {legal_name: A, uif_reference: U1, year: 2026, month: 1}
employees:
  - {id_number: "8001015009087", surname: S, initials: I, commencement_date: 15/01/2026}
`,
			want: "commencement_date",
		},
		{
			name: "bad amount",
			doc: `employer: {legal_name: A, uif_reference: U1, year: 2026, month: 1}
employees:
  - {id_number: "8001015009087", surname: S, initials: I, commencement_date: 2026-01-01, gross_remuneration: lots}
`,
			want: "gross_remuneration",
		},
		{
			name: "invalid period",
			doc:  "employer: {legal_name: A, uif_reference: U1, year: 2026, month: 13}\n",
			want: "period",
		},
		{
			name: "wrong kind",
			doc:  "kind: UI-2.7\nemployer: {legal_name: A, uif_reference: U1, year: 2026, month: 1}\n",
			want: "kind",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Read(strings.NewReader(tt.doc))
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("error %q does not mention %q", err, tt.want)
			}
		})
	}
}
