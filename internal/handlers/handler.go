package handlers

import (
	"bytes"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/a-h/templ"
	"github.com/shopspring/decimal"

	"github.com/csg33k/ui19-exporter/internal/domain"
	"github.com/csg33k/ui19-exporter/internal/ports"
	"github.com/csg33k/ui19-exporter/internal/templates"
)

const formDate = "2006-01-02"

// exportFailed is the only message users see when the codec fails.
const exportFailed = "failed to generate export"

type Handler struct {
	repo ports.ReportRepository
	exp  ports.ReportExporter
	pdf  ports.DeclarationRenderer
	log  *slog.Logger
}

func New(repo ports.ReportRepository, exp ports.ReportExporter, pdf ports.DeclarationRenderer, log *slog.Logger) *Handler {
	if log == nil {
		log = slog.Default()
	}
	return &Handler{repo: repo, exp: exp, pdf: pdf, log: log}
}

func (h *Handler) Routes() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /{$}", h.index)
	mux.HandleFunc("POST /reports", h.createReport)
	mux.HandleFunc("GET /reports/{id}", h.viewReport)
	mux.HandleFunc("PUT /reports/{id}", h.updateReport)
	mux.HandleFunc("DELETE /reports/{id}", h.deleteReport)
	mux.HandleFunc("POST /reports/{id}/employees", h.addEmployee)
	mux.HandleFunc("GET /employees/{id}/edit", h.editEmployeeForm)
	mux.HandleFunc("GET /employees/{id}/card", h.getEmployeeCard)
	mux.HandleFunc("PUT /employees/{id}", h.updateEmployee)
	mux.HandleFunc("DELETE /employees/{id}", h.deleteEmployee)
	mux.HandleFunc("GET /reports/{id}/export/{target}", h.exportFile)
	mux.HandleFunc("GET /reports/{id}/exports", h.exportLog)
	mux.HandleFunc("GET /reports/{id}/pdf", h.generatePDF)
	return mux
}

func (h *Handler) index(w http.ResponseWriter, r *http.Request) {
	reports, err := h.repo.ListReports(r.Context())
	if err != nil {
		h.fail(w, err)
		return
	}
	render(w, r, templates.Index(reports))
}

func (h *Handler) createReport(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	rep := &domain.Report{Kind: domain.KindUI19, GeneratedAt: time.Now()}
	if err := applyReportForm(r, rep); err != nil {
		renderStatus(w, r, http.StatusUnprocessableEntity, templates.ErrorBanner(err.Error()))
		return
	}
	if err := h.repo.CreateReport(r.Context(), rep); err != nil {
		h.fail(w, err)
		return
	}
	h.log.Info("report created", "report", rep.ID, "employer", rep.Employer.LegalName, "period", rep.Employer.Period.Label())
	w.Header().Set("HX-Redirect", fmt.Sprintf("/reports/%d", rep.ID))
	w.WriteHeader(http.StatusCreated)
}

func (h *Handler) viewReport(w http.ResponseWriter, r *http.Request) {
	rep, ok := h.loadReport(w, r)
	if !ok {
		return
	}
	exports, err := h.repo.ListExports(r.Context(), rep.ID)
	if err != nil {
		h.fail(w, err)
		return
	}
	render(w, r, templates.Detail(rep, h.exp.Targets(), exports))
}

// updateReport handles PUT /reports/{id}; employees are untouched.
func (h *Handler) updateReport(w http.ResponseWriter, r *http.Request) {
	rep, ok := h.loadReport(w, r)
	if !ok {
		return
	}
	if err := r.ParseForm(); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if err := applyReportForm(r, rep); err != nil {
		renderStatus(w, r, http.StatusUnprocessableEntity, templates.ErrorBanner(err.Error()))
		return
	}
	if err := h.repo.UpdateReport(r.Context(), rep); err != nil {
		h.fail(w, err)
		return
	}
	w.Header().Set("HX-Redirect", fmt.Sprintf("/reports/%d", rep.ID))
	w.WriteHeader(http.StatusOK)
}

func (h *Handler) deleteReport(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}
	if err := h.repo.DeleteReport(r.Context(), id); err != nil {
		h.fail(w, err)
		return
	}
	w.Header().Set("HX-Redirect", "/")
	w.WriteHeader(http.StatusOK)
}

func (h *Handler) addEmployee(w http.ResponseWriter, r *http.Request) {
	reportID, err := pathID(r, "id")
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}
	if err := r.ParseForm(); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	e, err := parseEmployeeForm(r)
	if err == nil {
		err = e.Validate()
	}
	if err != nil {
		renderStatus(w, r, http.StatusUnprocessableEntity, templates.ErrorBanner(err.Error()))
		return
	}
	if err := h.repo.AddEmployee(r.Context(), reportID, e); err != nil {
		h.fail(w, err)
		return
	}
	rep, err := h.repo.GetReport(r.Context(), reportID)
	if err != nil {
		h.fail(w, err)
		return
	}
	render(w, r, templates.EmployeeList(rep))
}

// editEmployeeForm renders the inline edit form for a single employee row.
func (h *Handler) editEmployeeForm(w http.ResponseWriter, r *http.Request) {
	e, ok := h.loadEmployee(w, r)
	if !ok {
		return
	}
	render(w, r, templates.EmployeeEditForm(e))
}

// getEmployeeCard renders the read-only row for a single employee (used by cancel).
func (h *Handler) getEmployeeCard(w http.ResponseWriter, r *http.Request) {
	e, ok := h.loadEmployee(w, r)
	if !ok {
		return
	}
	render(w, r, templates.EmployeeCard(*e))
}

// updateEmployee handles PUT /employees/{id} and renders the updated row.
func (h *Handler) updateEmployee(w http.ResponseWriter, r *http.Request) {
	existing, ok := h.loadEmployee(w, r)
	if !ok {
		return
	}
	if err := r.ParseForm(); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	e, err := parseEmployeeForm(r)
	if err == nil {
		err = e.Validate()
	}
	if err != nil {
		renderStatus(w, r, http.StatusUnprocessableEntity, templates.ErrorBanner(err.Error()))
		return
	}
	e.ID = existing.ID
	e.ReportID = existing.ReportID
	e.CreatedAt = existing.CreatedAt
	if err := h.repo.UpdateEmployee(r.Context(), e); err != nil {
		h.fail(w, err)
		return
	}
	render(w, r, templates.EmployeeCard(*e))
}

func (h *Handler) deleteEmployee(w http.ResponseWriter, r *http.Request) {
	empID, err := pathID(r, "id")
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}
	reportID, _ := strconv.ParseInt(r.URL.Query().Get("report"), 10, 64)

	if err := h.repo.DeleteEmployee(r.Context(), empID); err != nil {
		h.fail(w, err)
		return
	}
	if reportID > 0 {
		rep, err := h.repo.GetReport(r.Context(), reportID)
		if err != nil {
			h.fail(w, err)
			return
		}
		render(w, r, templates.EmployeeList(rep))
		return
	}
	w.WriteHeader(http.StatusOK)
}

// exportFile encodes the report for one target and offers it as a download.
// Codec failures, including a panic on a report of the wrong kind, reach the
// user only as a generic message.
func (h *Handler) exportFile(w http.ResponseWriter, r *http.Request) {
	target, err := domain.ParseTarget(r.PathValue("target"))
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	rep, ok := h.loadReport(w, r)
	if !ok {
		return
	}
	file, err := h.export(rep, target)
	if err != nil {
		h.log.Error("export failed", "report", rep.ID, "target", target, "err", err)
		http.Error(w, exportFailed, http.StatusInternalServerError)
		return
	}

	rec := &domain.ExportRecord{ReportID: rep.ID, Target: target, Filename: file.Filename, Size: len(file.Data)}
	if err := h.repo.RecordExport(r.Context(), rec); err != nil {
		h.log.Warn("export not recorded", "report", rep.ID, "target", target, "err", err)
	}
	h.log.Info("export generated", "report", rep.ID, "target", target, "file", file.Filename, "bytes", len(file.Data))

	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, file.Filename))
	w.Write(file.Data)
}

func (h *Handler) export(rep *domain.Report, t domain.Target) (file *domain.ExportFile, err error) {
	defer func() {
		if p := recover(); p != nil {
			err = fmt.Errorf("codec panic: %v", p)
		}
	}()
	return h.exp.Export(rep, t)
}

func (h *Handler) exportLog(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}
	exports, err := h.repo.ListExports(r.Context(), id)
	if err != nil {
		h.fail(w, err)
		return
	}
	render(w, r, templates.ExportLog(exports))
}

func (h *Handler) generatePDF(w http.ResponseWriter, r *http.Request) {
	rep, ok := h.loadReport(w, r)
	if !ok {
		return
	}
	var buf bytes.Buffer
	if err := h.pdf.Render(rep, &buf); err != nil {
		h.fail(w, err)
		return
	}
	filename := fmt.Sprintf("UI19_%s_%d%02d.pdf", rep.Employer.UIFReference, rep.Employer.Period.Year, int(rep.Employer.Period.Month))
	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
	w.Write(buf.Bytes())
}

// ── Loading ──────────────────────────────────────────────────────────────────

func (h *Handler) loadReport(w http.ResponseWriter, r *http.Request) (*domain.Report, bool) {
	id, err := pathID(r, "id")
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return nil, false
	}
	rep, err := h.repo.GetReport(r.Context(), id)
	if err != nil {
		h.fail(w, err)
		return nil, false
	}
	return rep, true
}

func (h *Handler) loadEmployee(w http.ResponseWriter, r *http.Request) (*domain.EmployeeRecord, bool) {
	id, err := pathID(r, "id")
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return nil, false
	}
	e, err := h.repo.GetEmployee(r.Context(), id)
	if err != nil {
		h.fail(w, err)
		return nil, false
	}
	return e, true
}

// fail maps repository errors to status codes.
func (h *Handler) fail(w http.ResponseWriter, err error) {
	if errors.Is(err, ports.ErrNotFound) {
		http.Error(w, err.Error(), http.StatusNotFound)
		return
	}
	h.log.Error("request failed", "err", err)
	http.Error(w, err.Error(), http.StatusInternalServerError)
}

// ── Forms ────────────────────────────────────────────────────────────────────

// applyReportForm copies the employer header fields onto rep.
func applyReportForm(r *http.Request, rep *domain.Report) error {
	year, err := strconv.Atoi(strings.TrimSpace(r.FormValue("period_year")))
	if err != nil {
		return fmt.Errorf("period year: %w", err)
	}
	month, err := strconv.Atoi(strings.TrimSpace(r.FormValue("period_month")))
	if err != nil {
		return fmt.Errorf("period month: %w", err)
	}
	rep.Employer = domain.EmployerDeclaration{
		LegalName:     strings.TrimSpace(r.FormValue("legal_name")),
		UIFReference:  strings.ToUpper(strings.TrimSpace(r.FormValue("uif_reference"))),
		PAYEReference: stripNonDigits(r.FormValue("paye_reference")),
		Period:        domain.Period{Year: year, Month: time.Month(month)},
	}
	rep.Notes = r.FormValue("notes")
	// Employees are validated as they are added.
	header := *rep
	header.Employees = nil
	return header.Validate()
}

// parseEmployeeForm reads an employee from an HTTP form. ID, ReportID and
// CreatedAt are left zero for the caller to fill in.
func parseEmployeeForm(r *http.Request) (*domain.EmployeeRecord, error) {
	e := &domain.EmployeeRecord{
		EmployeeID:    strings.TrimSpace(r.FormValue("employee_code")),
		IDNumber:      stripNonDigits(r.FormValue("id_number")),
		Surname:       strings.TrimSpace(r.FormValue("surname")),
		Initials:      strings.TrimSpace(r.FormValue("initials")),
		IsContributor: r.FormValue("is_contributor") == "1",
	}
	var err error
	if e.CommencementDate, err = time.Parse(formDate, r.FormValue("commencement_date")); err != nil {
		return nil, fmt.Errorf("commencement date: %w", err)
	}
	if v := r.FormValue("termination_date"); v != "" {
		t, err := time.Parse(formDate, v)
		if err != nil {
			return nil, fmt.Errorf("termination date: %w", err)
		}
		e.TerminationDate = &t
	}
	if v := r.FormValue("termination_reason"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return nil, fmt.Errorf("termination reason: %w", err)
		}
		reason := domain.TerminationReason(n)
		e.TerminationReason = &reason
	}
	if v := r.FormValue("non_contributor_reason"); v != "" && !e.IsContributor {
		n, err := strconv.Atoi(v)
		if err != nil {
			return nil, fmt.Errorf("non-contributor reason: %w", err)
		}
		reason := domain.NonContributorReason(n)
		e.NonContributorReason = &reason
	}
	if e.GrossRemuneration, err = parseAmount(r.FormValue("gross_remuneration")); err != nil {
		return nil, fmt.Errorf("gross remuneration: %w", err)
	}
	if e.HoursWorked, err = parseAmount(r.FormValue("hours_worked")); err != nil {
		return nil, fmt.Errorf("hours worked: %w", err)
	}
	return e, nil
}

// render writes a templ component to the response.
func render(w http.ResponseWriter, r *http.Request, c templ.Component) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := c.Render(r.Context(), w); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func renderStatus(w http.ResponseWriter, r *http.Request, status int, c templ.Component) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	c.Render(r.Context(), w)
}

func pathID(r *http.Request, key string) (int64, error) {
	return strconv.ParseInt(r.PathValue(key), 10, 64)
}

func stripNonDigits(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// parseAmount accepts "1234.5", "1 234.50" and "1,234.50"; blank is zero.
func parseAmount(s string) (decimal.Decimal, error) {
	s = strings.NewReplacer(" ", "", ",", "", "R", "").Replace(strings.TrimSpace(s))
	if s == "" {
		return decimal.Zero, nil
	}
	return decimal.NewFromString(s)
}
