package domain

import (
	"errors"
	"fmt"
	"strings"
)

// Validate checks the UI-19 invariants. It belongs to the ingest side
// (forms, report files); the export codec trusts its input and never calls it.
func (r *Report) Validate() error {
	var errs []error
	if r.Kind != KindUI19 {
		errs = append(errs, fmt.Errorf("report kind %q is not %s", r.Kind, KindUI19))
	}
	if strings.TrimSpace(r.Employer.LegalName) == "" {
		errs = append(errs, errors.New("employer legal name is required"))
	}
	if strings.TrimSpace(r.Employer.UIFReference) == "" {
		errs = append(errs, errors.New("employer UIF reference is required"))
	}
	if !r.Employer.Period.Valid() {
		errs = append(errs, fmt.Errorf("invalid reporting period %d-%02d", r.Employer.Period.Year, r.Employer.Period.Month))
	}
	for i := range r.Employees {
		if err := r.Employees[i].Validate(); err != nil {
			errs = append(errs, fmt.Errorf("employee %d (%s): %w", i+1, r.Employees[i].EmployeeID, err))
		}
	}
	return errors.Join(errs...)
}

// Validate checks the per-employee invariants.
func (e *EmployeeRecord) Validate() error {
	var errs []error
	if len(e.IDNumber) != IDNumberLen || strings.Trim(e.IDNumber, "0123456789") != "" {
		errs = append(errs, fmt.Errorf("ID number must be %d digits", IDNumberLen))
	}
	if strings.TrimSpace(e.Surname) == "" {
		errs = append(errs, errors.New("surname is required"))
	}
	if strings.TrimSpace(e.Initials) == "" {
		errs = append(errs, errors.New("initials are required"))
	}
	if e.CommencementDate.IsZero() {
		errs = append(errs, errors.New("commencement date is required"))
	}
	if e.TerminationDate != nil && e.TerminationDate.Before(e.CommencementDate) {
		errs = append(errs, errors.New("termination date precedes commencement date"))
	}
	if (e.TerminationDate != nil) != (e.TerminationReason != nil) {
		errs = append(errs, errors.New("termination reason must be given exactly when a termination date is"))
	}
	if e.TerminationReason != nil && !e.TerminationReason.Valid() {
		errs = append(errs, fmt.Errorf("unknown termination reason %d", int(*e.TerminationReason)))
	}
	if !e.IsContributor && e.NonContributorReason == nil {
		errs = append(errs, errors.New("non-contributors need a non-contributor reason"))
	}
	if e.NonContributorReason != nil && !e.NonContributorReason.Valid() {
		errs = append(errs, fmt.Errorf("unknown non-contributor reason %d", int(*e.NonContributorReason)))
	}
	if e.GrossRemuneration.IsNegative() {
		errs = append(errs, errors.New("gross remuneration is negative"))
	}
	if e.HoursWorked.IsNegative() {
		errs = append(errs, errors.New("hours worked is negative"))
	}
	return errors.Join(errs...)
}
