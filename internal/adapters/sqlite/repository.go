package sqlite

import (
	"context"
	"database/sql"
	_ "embed"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"
	"github.com/shopspring/decimal"

	"github.com/csg33k/ui19-exporter/internal/domain"
	"github.com/csg33k/ui19-exporter/internal/ports"
)

//go:embed schema.sql
var schema string

const dateLayout = "2006-01-02"

type Repository struct {
	db *sql.DB
}

// New opens the SQLite database and applies the schema.
func New(dsn string) (*Repository, error) {
	sep := "?"
	if strings.Contains(dsn, "?") {
		sep = "&"
	}
	db, err := sql.Open("sqlite3", dsn+sep+"_foreign_keys=on")
	if err != nil {
		return nil, err
	}
	// One writer; also keeps :memory: databases on a single connection.
	db.SetMaxOpenConns(1)
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("apply schema: %w", err)
	}
	return &Repository{db: db}, nil
}

func (r *Repository) Close() error { return r.db.Close() }

// ── Reports ───────────────────────────────────────────────────────────────────

// CreateReport inserts the report header and any employees it already holds,
// in order.
func (r *Repository) CreateReport(ctx context.Context, rep *domain.Report) error {
	now := time.Now()
	rep.CreatedAt = now
	if rep.GeneratedAt.IsZero() {
		rep.GeneratedAt = now
	}
	if rep.Kind == "" {
		rep.Kind = domain.KindUI19
	}
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx, `
		INSERT INTO reports (
			kind, legal_name, uif_reference, paye_reference,
			period_year, period_month, notes, created_at, generated_at
		) VALUES (?,?,?,?,?,?,?,?,?)`,
		string(rep.Kind), rep.Employer.LegalName, rep.Employer.UIFReference, rep.Employer.PAYEReference,
		rep.Employer.Period.Year, int(rep.Employer.Period.Month), rep.Notes,
		rep.CreatedAt, rep.GeneratedAt,
	)
	if err != nil {
		return fmt.Errorf("insert report: %w", err)
	}
	id, _ := res.LastInsertId()
	rep.ID = id

	for i := range rep.Employees {
		if err := insertEmployee(ctx, tx, id, &rep.Employees[i]); err != nil {
			return err
		}
	}
	return tx.Commit()
}

func (r *Repository) GetReport(ctx context.Context, id int64) (*domain.Report, error) {
	rep := &domain.Report{}
	var kind string
	var month int
	err := r.db.QueryRowContext(ctx, `
		SELECT id, kind, legal_name, uif_reference, paye_reference,
		       period_year, period_month, notes, created_at, generated_at
		FROM reports WHERE id=?`, id).Scan(
		&rep.ID, &kind, &rep.Employer.LegalName, &rep.Employer.UIFReference, &rep.Employer.PAYEReference,
		&rep.Employer.Period.Year, &month, &rep.Notes, &rep.CreatedAt, &rep.GeneratedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("report %d: %w", id, ports.ErrNotFound)
	}
	if err != nil {
		return nil, err
	}
	rep.Kind = domain.ReportKind(kind)
	rep.Employer.Period.Month = time.Month(month)

	rows, err := r.db.QueryContext(ctx, `
		SELECT `+employeeColumns+`
		FROM employees WHERE report_id=? ORDER BY position, id`, id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	for rows.Next() {
		e, err := scanEmployee(rows)
		if err != nil {
			return nil, err
		}
		rep.Employees = append(rep.Employees, *e)
	}
	return rep, rows.Err()
}

// ListReports returns report headers only; Employees is left empty.
func (r *Repository) ListReports(ctx context.Context) ([]domain.Report, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, kind, legal_name, uif_reference, period_year, period_month, notes, created_at
		FROM reports ORDER BY created_at DESC, id DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var list []domain.Report
	for rows.Next() {
		var rep domain.Report
		var kind string
		var month int
		if err := rows.Scan(&rep.ID, &kind, &rep.Employer.LegalName, &rep.Employer.UIFReference,
			&rep.Employer.Period.Year, &month, &rep.Notes, &rep.CreatedAt); err != nil {
			return nil, err
		}
		rep.Kind = domain.ReportKind(kind)
		rep.Employer.Period.Month = time.Month(month)
		list = append(list, rep)
	}
	return list, rows.Err()
}

// UpdateReport rewrites the employer header. Employees are managed separately.
func (r *Repository) UpdateReport(ctx context.Context, rep *domain.Report) error {
	_, err := r.db.ExecContext(ctx, `
		UPDATE reports
		SET legal_name=?, uif_reference=?, paye_reference=?,
		    period_year=?, period_month=?, notes=?
		WHERE id=?`,
		rep.Employer.LegalName, rep.Employer.UIFReference, rep.Employer.PAYEReference,
		rep.Employer.Period.Year, int(rep.Employer.Period.Month), rep.Notes, rep.ID,
	)
	return err
}

func (r *Repository) DeleteReport(ctx context.Context, id int64) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM reports WHERE id=?`, id)
	return err
}

// ── Employees ─────────────────────────────────────────────────────────────────

const employeeColumns = `id, report_id, employee_code, id_number, surname, initials,
		       commencement_date, termination_date, termination_reason, non_contributor_reason,
		       is_contributor, gross_remuneration, hours_worked, created_at, updated_at`

// AddEmployee appends e after the report's current last employee.
func (r *Repository) AddEmployee(ctx context.Context, reportID int64, e *domain.EmployeeRecord) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()
	if err := insertEmployee(ctx, tx, reportID, e); err != nil {
		return err
	}
	return tx.Commit()
}

func insertEmployee(ctx context.Context, tx *sql.Tx, reportID int64, e *domain.EmployeeRecord) error {
	now := time.Now()
	e.ReportID = reportID
	e.CreatedAt = now
	e.UpdatedAt = now

	var pos int64
	if err := tx.QueryRowContext(ctx,
		`SELECT COALESCE(MAX(position), 0) + 1 FROM employees WHERE report_id=?`, reportID).Scan(&pos); err != nil {
		return err
	}
	res, err := tx.ExecContext(ctx, `
		INSERT INTO employees (
			report_id, position, employee_code, id_number, surname, initials,
			commencement_date, termination_date, termination_reason, non_contributor_reason,
			is_contributor, gross_remuneration, hours_worked, created_at, updated_at
		) VALUES (?,?,?,?,?,?,?,?,?,?,?,?,?,?,?)`,
		reportID, pos, e.EmployeeID, e.IDNumber, e.Surname, e.Initials,
		e.CommencementDate.Format(dateLayout), nullDate(e.TerminationDate),
		nullReason(e.TerminationReason), nullNonContrib(e.NonContributorReason),
		boolToInt(e.IsContributor), e.GrossRemuneration.String(), e.HoursWorked.String(),
		now, now,
	)
	if err != nil {
		return fmt.Errorf("insert employee %s: %w", e.EmployeeID, err)
	}
	id, _ := res.LastInsertId()
	e.ID = id
	return nil
}

func (r *Repository) GetEmployee(ctx context.Context, id int64) (*domain.EmployeeRecord, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+employeeColumns+` FROM employees WHERE id=?`, id)
	e, err := scanEmployee(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("employee %d: %w", id, ports.ErrNotFound)
	}
	return e, err
}

// UpdateEmployee rewrites every field except the employee's position.
func (r *Repository) UpdateEmployee(ctx context.Context, e *domain.EmployeeRecord) error {
	e.UpdatedAt = time.Now()
	_, err := r.db.ExecContext(ctx, `
		UPDATE employees
		SET employee_code=?, id_number=?, surname=?, initials=?,
		    commencement_date=?, termination_date=?, termination_reason=?, non_contributor_reason=?,
		    is_contributor=?, gross_remuneration=?, hours_worked=?, updated_at=?
		WHERE id=?`,
		e.EmployeeID, e.IDNumber, e.Surname, e.Initials,
		e.CommencementDate.Format(dateLayout), nullDate(e.TerminationDate),
		nullReason(e.TerminationReason), nullNonContrib(e.NonContributorReason),
		boolToInt(e.IsContributor), e.GrossRemuneration.String(), e.HoursWorked.String(),
		e.UpdatedAt, e.ID,
	)
	return err
}

func (r *Repository) DeleteEmployee(ctx context.Context, id int64) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM employees WHERE id=?`, id)
	return err
}

// ── Export log ────────────────────────────────────────────────────────────────

// RecordExport stores one audit row. ID and CreatedAt are filled when empty.
func (r *Repository) RecordExport(ctx context.Context, x *domain.ExportRecord) error {
	if x.ID == "" {
		x.ID = uuid.NewString()
	}
	if x.CreatedAt.IsZero() {
		x.CreatedAt = time.Now()
	}
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO exports (id, report_id, target, filename, size, created_at)
		VALUES (?,?,?,?,?,?)`,
		x.ID, x.ReportID, string(x.Target), x.Filename, x.Size, x.CreatedAt,
	)
	return err
}

func (r *Repository) ListExports(ctx context.Context, reportID int64) ([]domain.ExportRecord, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, report_id, target, filename, size, created_at
		FROM exports WHERE report_id=? ORDER BY created_at DESC`, reportID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var list []domain.ExportRecord
	for rows.Next() {
		var x domain.ExportRecord
		var target string
		if err := rows.Scan(&x.ID, &x.ReportID, &target, &x.Filename, &x.Size, &x.CreatedAt); err != nil {
			return nil, err
		}
		x.Target = domain.Target(target)
		list = append(list, x)
	}
	return list, rows.Err()
}

// ── Helpers ───────────────────────────────────────────────────────────────────

type scanner interface {
	Scan(dest ...any) error
}

func scanEmployee(s scanner) (*domain.EmployeeRecord, error) {
	e := &domain.EmployeeRecord{}
	var (
		commenced  string
		terminated sql.NullString
		reason     sql.NullInt64
		nonContrib sql.NullInt64
		contrib    int
		gross      string
		hours      string
	)
	if err := s.Scan(
		&e.ID, &e.ReportID, &e.EmployeeID, &e.IDNumber, &e.Surname, &e.Initials,
		&commenced, &terminated, &reason, &nonContrib,
		&contrib, &gross, &hours, &e.CreatedAt, &e.UpdatedAt,
	); err != nil {
		return nil, err
	}
	var err error
	if e.CommencementDate, err = time.Parse(dateLayout, commenced); err != nil {
		return nil, fmt.Errorf("employee %d commencement date: %w", e.ID, err)
	}
	if terminated.Valid {
		t, err := time.Parse(dateLayout, terminated.String)
		if err != nil {
			return nil, fmt.Errorf("employee %d termination date: %w", e.ID, err)
		}
		e.TerminationDate = &t
	}
	if reason.Valid {
		v := domain.TerminationReason(reason.Int64)
		e.TerminationReason = &v
	}
	if nonContrib.Valid {
		v := domain.NonContributorReason(nonContrib.Int64)
		e.NonContributorReason = &v
	}
	e.IsContributor = contrib == 1
	if e.GrossRemuneration, err = decimal.NewFromString(gross); err != nil {
		return nil, fmt.Errorf("employee %d gross remuneration: %w", e.ID, err)
	}
	if e.HoursWorked, err = decimal.NewFromString(hours); err != nil {
		return nil, fmt.Errorf("employee %d hours worked: %w", e.ID, err)
	}
	return e, nil
}

func nullDate(t *time.Time) sql.NullString {
	if t == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: t.Format(dateLayout), Valid: true}
}

func nullReason(r *domain.TerminationReason) sql.NullInt64 {
	if r == nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: int64(*r), Valid: true}
}

func nullNonContrib(r *domain.NonContributorReason) sql.NullInt64 {
	if r == nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: int64(*r), Valid: true}
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
