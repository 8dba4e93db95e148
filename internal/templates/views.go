// Package templates renders the HTML views. Views are html/template
// definitions exposed as templ components so handlers render everything
// through one templ.Component path.
package templates

import (
	"context"
	"html/template"
	"io"

	"github.com/a-h/templ"

	"github.com/csg33k/ui19-exporter/internal/domain"
)

type employeeRow struct {
	I int
	E domain.EmployeeRecord
}

type detailData struct {
	Report  *domain.Report
	Targets []domain.TargetInfo
	Exports []domain.ExportRecord
}

// Index renders the report list with the new-report form.
func Index(reports []domain.Report) templ.Component {
	return component("index", reports)
}

// Detail renders one report with its employees, export buttons and export log.
func Detail(r *domain.Report, targets []domain.TargetInfo, exports []domain.ExportRecord) templ.Component {
	return component("detail", detailData{Report: r, Targets: targets, Exports: exports})
}

// EmployeeList renders the employee table fragment swapped in by htmx.
func EmployeeList(r *domain.Report) templ.Component {
	return component("employee-list", r)
}

// EmployeeCard renders one read-only employee row.
func EmployeeCard(e domain.EmployeeRecord) templ.Component {
	return component("employee-card", e)
}

// EmployeeEditForm renders the inline edit form for one employee.
func EmployeeEditForm(e *domain.EmployeeRecord) templ.Component {
	return component("employee-form", e)
}

// ExportLog renders the export audit fragment.
func ExportLog(exports []domain.ExportRecord) templ.Component {
	return component("export-log", exports)
}

// ErrorBanner renders a short user-facing error fragment.
func ErrorBanner(msg string) templ.Component {
	return component("error", msg)
}

func component(name string, data any) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		return views.ExecuteTemplate(w, name, data)
	})
}

var views = template.Must(template.New("views").Funcs(template.FuncMap{
	"rand":        randDisplay,
	"itoa":        itoa,
	"date":        dateValue,
	"optDate":     optDateValue,
	"reasonVal":   reasonValue,
	"nonContVal":  nonContribValue,
	"reasons":     domain.TerminationReasons,
	"nonConts":    domain.NonContributorReasons,
	"kib":         kib,
	"seq":         func(i int) int { return i + 1 },
	"rowOf":       func(i int, e domain.EmployeeRecord) employeeRow { return employeeRow{I: i, E: e} },
	"newEmployee": func() domain.EmployeeRecord {
		return domain.EmployeeRecord{IsContributor: true}
	},
	"code": func(v any) int {
		switch c := v.(type) {
		case domain.TerminationReason:
			return int(c)
		case domain.NonContributorReason:
			return int(c)
		}
		return 0
	},
}).Parse(layout + indexViews + detailViews + employeeViews))

const layout = `
{{define "page-start"}}<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="UTF-8">
<meta name="viewport" content="width=device-width, initial-scale=1.0">
<title>UI-19 Exporter</title>
<script src="https://unpkg.com/htmx.org@1.9.12"></script>
<link href="https://fonts.googleapis.com/css2?family=IBM+Plex+Mono:wght@400;500;600&family=IBM+Plex+Sans:wght@300;400;500;600&display=swap" rel="stylesheet">
<style>
  :root{--ink:#0d1117;--paper:#f5f0e8;--ledger:#e8e0cc;--accent:#c0392b;--accent2:#2c6e49;--muted:#6b5e4e;--rule:#b8a898;}
  *{box-sizing:border-box;}
  body{background:var(--paper);color:var(--ink);font-family:'IBM Plex Sans',sans-serif;min-height:100vh;}
  .mono{font-family:'IBM Plex Mono',monospace;}
  .card{background:rgba(255,255,255,0.7);border:1px solid var(--ledger);border-left:4px solid var(--ink);}
  .field-label{font-family:'IBM Plex Mono',monospace;font-size:0.6rem;font-weight:600;letter-spacing:0.1em;text-transform:uppercase;color:var(--muted);display:block;margin-bottom:2px;}
  input,select,textarea{background:white;border:1px solid var(--rule);border-bottom:2px solid var(--ink);padding:6px 8px;font-family:'IBM Plex Mono',monospace;font-size:0.85rem;width:100%;outline:none;}
  input:focus,select:focus{border-bottom-color:var(--accent);}
  input[type=checkbox]{width:auto;}
  .btn{font-family:'IBM Plex Mono',monospace;font-weight:600;font-size:0.8rem;letter-spacing:0.08em;padding:8px 18px;border:2px solid var(--ink);cursor:pointer;text-transform:uppercase;}
  .btn-primary{background:var(--ink);color:white;}
  .btn-primary:hover{background:var(--accent);border-color:var(--accent);}
  .btn-danger{background:white;color:var(--accent);border-color:var(--accent);}
  .btn-success{background:var(--accent2);color:white;border-color:var(--accent2);}
  .section-header{font-family:'IBM Plex Mono',monospace;font-size:0.7rem;font-weight:600;letter-spacing:0.18em;text-transform:uppercase;color:var(--muted);border-bottom:1px solid var(--rule);padding-bottom:4px;margin-bottom:16px;}
  table.ledger{width:100%;border-collapse:collapse;font-size:0.8rem;}
  table.ledger th{font-family:'IBM Plex Mono',monospace;font-size:0.6rem;letter-spacing:0.1em;text-transform:uppercase;color:var(--muted);text-align:left;border-bottom:2px solid var(--ink);padding:4px;}
  table.ledger td{border-bottom:1px solid var(--ledger);padding:4px;}
  .error{border:2px solid var(--accent);color:var(--accent);padding:8px 12px;font-family:'IBM Plex Mono',monospace;font-size:0.8rem;}
</style>
</head>
<body>
<div style="max-width:1200px;margin:0 auto;padding:32px 24px;">
<div style="margin-bottom:32px;">
  <div class="mono" style="font-size:0.65rem;letter-spacing:0.2em;color:var(--muted);">UNEMPLOYMENT INSURANCE FUND · DEPARTMENT OF EMPLOYMENT AND LABOUR</div>
  <h1 class="mono" style="font-size:1.6rem;font-weight:600;margin:0;"><a href="/" style="color:inherit;text-decoration:none;">UI-19 Declaration Exporter</a></h1>
</div>
{{end}}

{{define "page-end"}}
</div>
</body>
</html>{{end}}

{{define "error"}}<div class="error">{{.}}</div>{{end}}
`

const indexViews = `
{{define "index"}}{{template "page-start"}}
<div style="display:grid;grid-template-columns:1fr 1fr;gap:32px;align-items:start;">
<div class="card" style="padding:24px;">
  <div class="section-header">New UI-19 Report</div>
  <form hx-post="/reports" hx-target="#form-error">
    <div style="display:grid;grid-template-columns:1fr 1fr;gap:12px;">
      <div style="grid-column:1/-1;">
        <label class="field-label">Employer legal name *</label>
        <input type="text" name="legal_name" required>
      </div>
      <div>
        <label class="field-label">UIF reference *</label>
        <input type="text" name="uif_reference" placeholder="U123456789" required class="mono">
      </div>
      <div>
        <label class="field-label">PAYE reference</label>
        <input type="text" name="paye_reference" placeholder="7123456789" class="mono">
      </div>
      <div>
        <label class="field-label">Period year *</label>
        <input type="number" name="period_year" min="1900" required>
      </div>
      <div>
        <label class="field-label">Period month *</label>
        <input type="number" name="period_month" min="1" max="12" required>
      </div>
      <div style="grid-column:1/-1;">
        <label class="field-label">Notes (internal)</label>
        <textarea name="notes" rows="2"></textarea>
      </div>
    </div>
    <div id="form-error" style="margin-top:12px;"></div>
    <div style="margin-top:16px;display:flex;justify-content:flex-end;">
      <button type="submit" class="btn btn-primary">CREATE REPORT →</button>
    </div>
  </form>
</div>
<div>
  <div class="section-header">Reports</div>
  {{if not .}}
  <div class="mono" style="font-size:0.8rem;color:var(--muted);padding:16px;text-align:center;">No reports yet.</div>
  {{else}}{{range .}}
  <div class="card" style="padding:14px 18px;margin-bottom:8px;display:flex;justify-content:space-between;align-items:center;">
    <div>
      <div class="mono" style="font-weight:600;font-size:0.9rem;">{{.Employer.LegalName}}</div>
      <div style="font-size:0.75rem;color:var(--muted);">UIF {{.Employer.UIFReference}} · {{.Employer.Period.Label}}</div>
      {{if .Notes}}<div style="font-size:0.72rem;color:var(--muted);font-style:italic;">{{.Notes}}</div>{{end}}
    </div>
    <a href="/reports/{{itoa .ID}}"><button class="btn btn-primary" style="padding:6px 14px;font-size:0.7rem;">OPEN →</button></a>
  </div>
  {{end}}{{end}}
</div>
</div>
{{template "page-end"}}{{end}}
`

const detailViews = `
{{define "detail"}}{{template "page-start"}}
{{with .Report}}
<div class="card" style="padding:20px;margin-bottom:24px;display:flex;justify-content:space-between;">
  <div>
    <div class="mono" style="font-size:1.1rem;font-weight:600;">{{.Employer.LegalName}}</div>
    <div style="font-size:0.8rem;color:var(--muted);">
      {{.Kind}} · UIF {{.Employer.UIFReference}}{{if .Employer.PAYEReference}} · PAYE {{.Employer.PAYEReference}}{{end}} · {{.Employer.Period.Label}}
    </div>
  </div>
  <div style="display:flex;gap:8px;">
    <a href="/reports/{{itoa .ID}}/pdf"><button class="btn btn-primary">PDF</button></a>
    <button class="btn btn-danger" hx-delete="/reports/{{itoa .ID}}" hx-confirm="Delete this report?">DELETE</button>
  </div>
</div>
{{end}}

<div class="section-header">Export</div>
<div style="display:flex;flex-wrap:wrap;gap:8px;margin-bottom:24px;">
  {{$id := .Report.ID}}
  {{range .Targets}}
  <a href="/reports/{{itoa $id}}/export/{{.Target}}" title="{{.Label}}"><button class="btn btn-success">{{.Target}}</button></a>
  {{end}}
</div>

<div class="section-header">Employees</div>
<div id="employee-list">{{template "employee-list" .Report}}</div>

<div class="card" style="padding:20px;margin-top:24px;">
  <div class="section-header">Add employee</div>
  <form hx-post="/reports/{{itoa .Report.ID}}/employees" hx-target="#employee-list">
    {{template "employee-fields" newEmployee}}
    <div style="margin-top:12px;display:flex;justify-content:flex-end;">
      <button type="submit" class="btn btn-primary">ADD →</button>
    </div>
  </form>
</div>

<div class="section-header" style="margin-top:24px;">Export log</div>
<div id="export-log" hx-get="/reports/{{itoa .Report.ID}}/exports" hx-trigger="load delay:2s">{{template "export-log" .Exports}}</div>
{{template "page-end"}}{{end}}

{{define "export-log"}}
{{if not .}}<div class="mono" style="font-size:0.75rem;color:var(--muted);">No exports yet.</div>
{{else}}
<table class="ledger">
  <tr><th>When</th><th>Target</th><th>File</th><th>Size</th></tr>
  {{range .}}<tr><td class="mono">{{.CreatedAt.Format "2006-01-02 15:04:05"}}</td><td>{{.Target}}</td><td class="mono">{{.Filename}}</td><td>{{kib .Size}}</td></tr>{{end}}
</table>
{{end}}
{{end}}
`

const employeeViews = `
{{define "employee-list"}}
{{if not .Employees}}<div class="mono" style="font-size:0.8rem;color:var(--muted);">No employees on this report.</div>
{{else}}
<table class="ledger">
  <tr><th>#</th><th>Code</th><th>ID number</th><th>Surname</th><th>Init.</th><th>Commenced</th><th>Terminated</th><th>Reason</th><th>UIF</th><th>Remuneration</th><th>Hours</th><th></th></tr>
  {{range $i, $e := .Employees}}{{template "employee-row" (rowOf $i $e)}}{{end}}
</table>
{{end}}
{{end}}

{{define "employee-row"}}
<tr id="employee-{{itoa .E.ID}}">
  <td>{{seq .I}}</td>
  {{template "employee-cells" .E}}
</tr>
{{end}}

{{define "employee-card"}}
<tr id="employee-{{itoa .ID}}"><td></td>{{template "employee-cells" .}}</tr>
{{end}}

{{define "employee-cells"}}
  <td class="mono">{{.EmployeeID}}</td>
  <td class="mono">{{.IDNumber}}</td>
  <td>{{.Surname}}</td>
  <td>{{.Initials}}</td>
  <td class="mono">{{date .CommencementDate}}</td>
  <td class="mono">{{optDate .TerminationDate}}</td>
  <td>{{if .TerminationReason}}{{.TerminationReason}}{{end}}</td>
  <td>{{if .IsContributor}}Y{{else}}N{{if .NonContributorReason}} ({{nonContVal .NonContributorReason}}){{end}}{{end}}</td>
  <td class="mono" style="text-align:right;">{{rand .GrossRemuneration}}</td>
  <td class="mono" style="text-align:right;">{{.HoursWorked.StringFixed 2}}</td>
  <td>
    <button class="btn btn-primary" style="padding:2px 8px;font-size:0.6rem;" hx-get="/employees/{{itoa .ID}}/edit" hx-target="#employee-{{itoa .ID}}" hx-swap="outerHTML">EDIT</button>
    <button class="btn btn-danger" style="padding:2px 8px;font-size:0.6rem;" hx-delete="/employees/{{itoa .ID}}?report={{itoa .ReportID}}" hx-target="#employee-list">✕</button>
  </td>
{{end}}

{{define "employee-form"}}
<tr id="employee-{{itoa .ID}}"><td colspan="12">
  <form hx-put="/employees/{{itoa .ID}}" hx-target="#employee-{{itoa .ID}}" hx-swap="outerHTML">
    {{template "employee-fields" .}}
    <div style="margin-top:8px;display:flex;gap:8px;justify-content:flex-end;">
      <button type="button" class="btn btn-danger" hx-get="/employees/{{itoa .ID}}/card" hx-target="#employee-{{itoa .ID}}" hx-swap="outerHTML">CANCEL</button>
      <button type="submit" class="btn btn-primary">SAVE</button>
    </div>
  </form>
</td></tr>
{{end}}

{{define "employee-fields"}}
<div style="display:grid;grid-template-columns:repeat(4,1fr);gap:10px;">
  <div><label class="field-label">Employee code *</label><input type="text" name="employee_code" value="{{.EmployeeID}}" required></div>
  <div><label class="field-label">ID number *</label><input type="text" name="id_number" value="{{.IDNumber}}" maxlength="13" required class="mono"></div>
  <div><label class="field-label">Surname *</label><input type="text" name="surname" value="{{.Surname}}" required></div>
  <div><label class="field-label">Initials *</label><input type="text" name="initials" value="{{.Initials}}" required></div>
  <div><label class="field-label">Commencement *</label><input type="date" name="commencement_date" value="{{date .CommencementDate}}" required></div>
  <div><label class="field-label">Termination</label><input type="date" name="termination_date" value="{{optDate .TerminationDate}}"></div>
  <div><label class="field-label">Termination reason</label>
    <select name="termination_reason">
      <option value="">—</option>
      {{$sel := reasonVal .TerminationReason}}
      {{range reasons}}<option value="{{code .}}" {{if eq (code .) $sel}}selected{{end}}>{{code .}} · {{.}}</option>{{end}}
    </select>
  </div>
  <div><label class="field-label">UIF contributor</label><input type="checkbox" name="is_contributor" value="1" {{if .IsContributor}}checked{{end}}></div>
  <div><label class="field-label">Non-contributor reason</label>
    <select name="non_contributor_reason">
      <option value="">—</option>
      {{$nsel := nonContVal .NonContributorReason}}
      {{range nonConts}}<option value="{{code .}}" {{if eq (code .) $nsel}}selected{{end}}>{{code .}} · {{.}}</option>{{end}}
    </select>
  </div>
  <div><label class="field-label">Gross remuneration *</label><input type="text" name="gross_remuneration" value="{{.GrossRemuneration.StringFixed 2}}" class="mono"></div>
  <div><label class="field-label">Hours worked *</label><input type="text" name="hours_worked" value="{{.HoursWorked.StringFixed 2}}" class="mono"></div>
</div>
{{end}}
`
