// Package reportfile loads UI-19 reports from YAML files, the input format
// of the ui19 command.
package reportfile

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"

	"github.com/csg33k/ui19-exporter/internal/domain"
)

const dateLayout = "2006-01-02"

type document struct {
	Kind      string     `yaml:"kind"`
	Notes     string     `yaml:"notes"`
	Employer  employer   `yaml:"employer"`
	Employees []employee `yaml:"employees"`
}

type employer struct {
	LegalName     string `yaml:"legal_name"`
	UIFReference  string `yaml:"uif_reference"`
	PAYEReference string `yaml:"paye_reference"`
	Year          int    `yaml:"year"`
	Month         int    `yaml:"month"`
}

type employee struct {
	Code                 string `yaml:"employee_code"`
	IDNumber             string `yaml:"id_number"`
	Surname              string `yaml:"surname"`
	Initials             string `yaml:"initials"`
	CommencementDate     string `yaml:"commencement_date"`
	TerminationDate      string `yaml:"termination_date"`
	TerminationReason    *int   `yaml:"termination_reason"`
	Contributor          *bool  `yaml:"contributor"`
	NonContributorReason *int   `yaml:"non_contributor_reason"`
	Gross                string `yaml:"gross_remuneration"`
	Hours                string `yaml:"hours_worked"`
}

// Load reads and validates the report at path.
func Load(path string) (*domain.Report, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	r, err := Read(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return r, nil
}

// Read decodes one report document. Unknown keys are rejected. A missing
// kind defaults to UI-19 and a missing contributor flag defaults to true.
func Read(rd io.Reader) (*domain.Report, error) {
	raw, err := io.ReadAll(rd)
	if err != nil {
		return nil, err
	}
	dec := yaml.NewDecoder(bytes.NewReader(raw))
	dec.KnownFields(true)

	var doc document
	if err := dec.Decode(&doc); err != nil {
		return nil, fmt.Errorf("decode report: %w", err)
	}

	r := &domain.Report{
		Kind:  domain.ReportKind(doc.Kind),
		Notes: doc.Notes,
		Employer: domain.EmployerDeclaration{
			LegalName:     strings.TrimSpace(doc.Employer.LegalName),
			UIFReference:  strings.TrimSpace(doc.Employer.UIFReference),
			PAYEReference: strings.TrimSpace(doc.Employer.PAYEReference),
			Period:        domain.Period{Year: doc.Employer.Year, Month: time.Month(doc.Employer.Month)},
		},
		GeneratedAt: time.Now(),
	}
	if r.Kind == "" {
		r.Kind = domain.KindUI19
	}

	r.Employees = make([]domain.EmployeeRecord, 0, len(doc.Employees))
	for i, in := range doc.Employees {
		e, err := in.record()
		if err != nil {
			return nil, fmt.Errorf("employee %d: %w", i+1, err)
		}
		r.Employees = append(r.Employees, e)
	}

	if err := r.Validate(); err != nil {
		return nil, err
	}
	return r, nil
}

func (in employee) record() (domain.EmployeeRecord, error) {
	e := domain.EmployeeRecord{
		EmployeeID:    strings.TrimSpace(in.Code),
		IDNumber:      strings.TrimSpace(in.IDNumber),
		Surname:       strings.TrimSpace(in.Surname),
		Initials:      strings.TrimSpace(in.Initials),
		IsContributor: in.Contributor == nil || *in.Contributor,
	}

	var err error
	if e.CommencementDate, err = time.Parse(dateLayout, in.CommencementDate); err != nil {
		return e, fmt.Errorf("commencement_date: %w", err)
	}
	if in.TerminationDate != "" {
		t, err := time.Parse(dateLayout, in.TerminationDate)
		if err != nil {
			return e, fmt.Errorf("termination_date: %w", err)
		}
		e.TerminationDate = &t
	}
	if in.TerminationReason != nil {
		r := domain.TerminationReason(*in.TerminationReason)
		e.TerminationReason = &r
	}
	if in.NonContributorReason != nil {
		r := domain.NonContributorReason(*in.NonContributorReason)
		e.NonContributorReason = &r
	}
	if e.GrossRemuneration, err = amount(in.Gross); err != nil {
		return e, fmt.Errorf("gross_remuneration: %w", err)
	}
	if e.HoursWorked, err = amount(in.Hours); err != nil {
		return e, fmt.Errorf("hours_worked: %w", err)
	}
	return e, nil
}

func amount(s string) (decimal.Decimal, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return decimal.Zero, nil
	}
	return decimal.NewFromString(s)
}
