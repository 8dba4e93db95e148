// Package pdf renders a human-readable copy of a UI-19 declaration.
// The employer header is repeated on every page; employees are listed in
// report order in a table that breaks across pages as needed.
package pdf

import (
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/go-pdf/fpdf"

	"github.com/csg33k/ui19-exporter/internal/domain"
)

const dateLayout = "2006-01-02"

// Renderer satisfies ports.DeclarationRenderer.
type Renderer struct{}

func New() *Renderer { return &Renderer{} }

type column struct {
	title string
	width float64 // share of the content width
	align string
	value func(i int, e *domain.EmployeeRecord) string
}

var columns = []column{
	{"#", 0.04, "R", func(i int, _ *domain.EmployeeRecord) string { return strconv.Itoa(i + 1) }},
	{"Code", 0.08, "L", func(_ int, e *domain.EmployeeRecord) string { return e.EmployeeID }},
	{"ID Number", 0.13, "L", func(_ int, e *domain.EmployeeRecord) string { return e.IDNumber }},
	{"Surname", 0.17, "L", func(_ int, e *domain.EmployeeRecord) string { return e.Surname }},
	{"Init.", 0.05, "L", func(_ int, e *domain.EmployeeRecord) string { return e.Initials }},
	{"Commenced", 0.09, "C", func(_ int, e *domain.EmployeeRecord) string { return e.CommencementDate.Format(dateLayout) }},
	{"Terminated", 0.09, "C", func(_ int, e *domain.EmployeeRecord) string { return optDate(e.TerminationDate) }},
	{"Reason", 0.12, "L", func(_ int, e *domain.EmployeeRecord) string { return reasonLabel(e) }},
	{"UIF", 0.05, "C", func(_ int, e *domain.EmployeeRecord) string { return contributorLabel(e) }},
	{"Remuneration", 0.11, "R", func(_ int, e *domain.EmployeeRecord) string { return "R " + e.GrossRemuneration.StringFixed(2) }},
	{"Hours", 0.07, "R", func(_ int, e *domain.EmployeeRecord) string { return e.HoursWorked.StringFixed(2) }},
}

// Render writes the declaration PDF to w.
func (g *Renderer) Render(r *domain.Report, w io.Writer) error {
	pdf := fpdf.New("L", "mm", "A4", "")
	pdf.SetMargins(12, 12, 12)
	pdf.SetAutoPageBreak(true, 16)
	pdf.AliasNbPages("{nb}")
	pdf.SetHeaderFunc(func() { drawHeader(pdf, r) })
	pdf.SetFooterFunc(func() { drawFooter(pdf, r) })

	pdf.AddPage()
	drawEmployeeTable(pdf, r)
	drawTotals(pdf, r)

	return pdf.Output(w)
}

func drawHeader(pdf *fpdf.Fpdf, r *domain.Report) {
	pageW, _ := pdf.GetPageSize()
	marginL, marginT, marginR, _ := pdf.GetMargins()
	contentW := pageW - marginL - marginR

	// ── Title bar ────────────────────────────────────────────────────────────
	pdf.SetFillColor(30, 30, 30)
	pdf.Rect(marginL, marginT, contentW, 10, "F")
	pdf.SetTextColor(255, 255, 255)
	pdf.SetFont("Helvetica", "B", 11)
	pdf.SetXY(marginL+2, marginT+1.5)
	pdf.CellFormat(contentW-40, 7, "UI-19  UIF EMPLOYER DECLARATION", "", 0, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 9)
	pdf.CellFormat(36, 7, "Page "+fmt.Sprint(pdf.PageNo())+" of {nb}", "", 1, "R", false, 0, "")
	pdf.SetTextColor(0, 0, 0)

	// ── Employer block ───────────────────────────────────────────────────────
	y := marginT + 13
	pdf.SetFillColor(240, 240, 240)
	pdf.SetFont("Helvetica", "B", 8)
	pdf.SetXY(marginL, y)
	pdf.CellFormat(contentW, 5.5, "EMPLOYER", "LRT", 1, "L", true, 0, "")
	y += 5.5

	half := contentW / 2
	pdf.SetFont("Helvetica", "", 9)
	pdf.SetXY(marginL, y)
	pdf.CellFormat(half, 6, "Employer: "+r.Employer.LegalName, "LB", 0, "L", false, 0, "")
	ref := "UIF Ref: " + r.Employer.UIFReference
	if r.Employer.PAYEReference != "" {
		ref += "   PAYE Ref: " + r.Employer.PAYEReference
	}
	ref += "   Period: " + r.Employer.Period.Label()
	pdf.CellFormat(half, 6, ref, "RB", 1, "R", false, 0, "")
	pdf.SetY(y + 10)
}

func drawEmployeeTable(pdf *fpdf.Fpdf, r *domain.Report) {
	pageW, _ := pdf.GetPageSize()
	marginL, _, marginR, _ := pdf.GetMargins()
	contentW := pageW - marginL - marginR

	header := func() {
		pdf.SetFillColor(30, 30, 30)
		pdf.SetTextColor(255, 255, 255)
		pdf.SetFont("Helvetica", "B", 8)
		pdf.SetX(marginL)
		for _, c := range columns {
			pdf.CellFormat(contentW*c.width, 7, c.title, "1", 0, "C", true, 0, "")
		}
		pdf.Ln(-1)
		pdf.SetTextColor(0, 0, 0)
	}
	header()

	_, pageH := pdf.GetPageSize()
	_, _, _, marginB := pdf.GetMargins()
	rowH := 6.0
	for i := range r.Employees {
		e := &r.Employees[i]
		if pdf.GetY()+rowH > pageH-marginB {
			pdf.AddPage()
			header()
		}
		if i%2 == 0 {
			pdf.SetFillColor(250, 250, 250)
		} else {
			pdf.SetFillColor(255, 255, 255)
		}
		if e.Terminated() {
			pdf.SetFont("Helvetica", "B", 8)
		} else {
			pdf.SetFont("Helvetica", "", 8)
		}
		pdf.SetX(marginL)
		for _, c := range columns {
			pdf.CellFormat(contentW*c.width, rowH, c.value(i, e), "1", 0, c.align, true, 0, "")
		}
		pdf.Ln(-1)
	}
}

func drawTotals(pdf *fpdf.Fpdf, r *domain.Report) {
	pageW, _ := pdf.GetPageSize()
	marginL, _, marginR, _ := pdf.GetMargins()
	contentW := pageW - marginL - marginR

	var terminated, contributors int
	for i := range r.Employees {
		if r.Employees[i].Terminated() {
			terminated++
		}
		if r.Employees[i].IsContributor {
			contributors++
		}
	}

	pdf.Ln(4)
	pdf.SetX(marginL)
	pdf.SetFillColor(240, 240, 240)
	pdf.SetFont("Helvetica", "B", 8.5)
	third := contentW / 3
	pdf.CellFormat(third, 6.5, fmt.Sprintf("Employees: %d", len(r.Employees)), "1", 0, "L", true, 0, "")
	pdf.CellFormat(third, 6.5, fmt.Sprintf("Terminated: %d   UIF contributors: %d", terminated, contributors), "1", 0, "C", true, 0, "")
	pdf.CellFormat(third, 6.5, "Total remuneration: R "+r.TotalRemuneration().StringFixed(2), "1", 1, "R", true, 0, "")
}

func drawFooter(pdf *fpdf.Fpdf, r *domain.Report) {
	pageW, _ := pdf.GetPageSize()
	marginL, _, marginR, _ := pdf.GetMargins()
	contentW := pageW - marginL - marginR

	pdf.SetY(-12)
	pdf.SetX(marginL)
	pdf.SetFont("Helvetica", "I", 7.5)
	pdf.SetTextColor(130, 130, 130)
	pdf.CellFormat(contentW/2, 5, "Generated by UI-19 Exporter "+r.GeneratedAt.Format("2006-01-02 15:04"), "", 0, "L", false, 0, "")
	pdf.CellFormat(contentW/2, 5, r.Employer.LegalName+" | UIF "+r.Employer.UIFReference+" | "+r.Employer.Period.Label(), "", 0, "R", false, 0, "")
	pdf.SetTextColor(0, 0, 0)
}

// ── Helpers ──────────────────────────────────────────────────────────────────

func optDate(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format(dateLayout)
}

func reasonLabel(e *domain.EmployeeRecord) string {
	if e.TerminationReason == nil {
		return ""
	}
	return fmt.Sprintf("%d %s", int(*e.TerminationReason), e.TerminationReason.String())
}

func contributorLabel(e *domain.EmployeeRecord) string {
	if e.IsContributor {
		return "Y"
	}
	if e.NonContributorReason != nil {
		return fmt.Sprintf("N (%d)", int(*e.NonContributorReason))
	}
	return "N"
}
