package ports

import (
	"context"
	"errors"
	"io"

	"github.com/csg33k/ui19-exporter/internal/domain"
)

// ErrNotFound is returned by repositories when a row does not exist.
var ErrNotFound = errors.New("not found")

// ReportRepository defines persistence operations.
type ReportRepository interface {
	CreateReport(ctx context.Context, r *domain.Report) error
	GetReport(ctx context.Context, id int64) (*domain.Report, error)
	ListReports(ctx context.Context) ([]domain.Report, error)
	UpdateReport(ctx context.Context, r *domain.Report) error
	DeleteReport(ctx context.Context, id int64) error

	AddEmployee(ctx context.Context, reportID int64, e *domain.EmployeeRecord) error
	GetEmployee(ctx context.Context, id int64) (*domain.EmployeeRecord, error)
	UpdateEmployee(ctx context.Context, e *domain.EmployeeRecord) error
	DeleteEmployee(ctx context.Context, id int64) error

	RecordExport(ctx context.Context, x *domain.ExportRecord) error
	ListExports(ctx context.Context, reportID int64) ([]domain.ExportRecord, error)
}

// ReportExporter defines the export codec port.
type ReportExporter interface {
	// Export encodes a UI-19 report for one target system. It performs no I/O.
	Export(r *domain.Report, t domain.Target) (*domain.ExportFile, error)

	// Targets returns the supported target systems in display order.
	Targets() []domain.TargetInfo
}

// DeclarationRenderer writes a human-readable copy of a report.
type DeclarationRenderer interface {
	Render(r *domain.Report, w io.Writer) error
}
