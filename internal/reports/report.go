package reports

import (
	"bufio"
	"encoding/json"
	"fmt"
	htmltemplate "html/template"
	"io"
	"os"
	"path/filepath"
	"strings"
	"text/template"
	"time"

	"github.com/tldr-it-stepankutaj/enigmakit/internal/batch"
	"github.com/tldr-it-stepankutaj/enigmakit/pkg/version"
)

// Report is a printable account of a batch run.
type Report struct {
	Title      string          `json:"title"`
	Summary    string          `json:"summary"`
	Job        string          `json:"job"`
	RunID      string          `json:"run_id"`
	Status     string          `json:"status"`
	Results    []*batch.Result `json:"results"`
	Statistics Statistics      `json:"statistics"`
	Metadata   Metadata        `json:"metadata"`
}

// Statistics contains report statistics.
type Statistics struct {
	TotalMessages    int            `json:"total_messages"`
	ResultsByStatus  map[string]int `json:"results_by_status"`
	LettersProcessed int            `json:"letters_processed"`
	RotorSteps       int            `json:"rotor_steps"`
	DoubleSteps      int            `json:"double_steps"`
	Duration         time.Duration  `json:"duration"`
}

// Metadata contains report metadata.
type Metadata struct {
	GeneratedAt   time.Time `json:"generated_at"`
	GeneratedBy   string    `json:"generated_by"`
	ToolVersion   string    `json:"tool_version"`
	WorkspacePath string    `json:"workspace_path,omitempty"`
	ReportFormat  string    `json:"report_format,omitempty"`
}

// Builder helps construct reports.
type Builder struct {
	report *Report
}

// NewBuilder creates a new report builder.
func NewBuilder() *Builder {
	return &Builder{
		report: &Report{
			Results: make([]*batch.Result, 0),
			Statistics: Statistics{
				ResultsByStatus: make(map[string]int),
			},
		},
	}
}

// SetTitle sets the report title.
func (b *Builder) SetTitle(title string) *Builder {
	b.report.Title = title
	return b
}

// SetSummary sets the summary paragraph.
func (b *Builder) SetSummary(summary string) *Builder {
	b.report.Summary = summary
	return b
}

// SetRun records which job and run the results belong to.
func (b *Builder) SetRun(job, runID, status string, d time.Duration) *Builder {
	b.report.Job = job
	b.report.RunID = runID
	b.report.Status = status
	b.report.Statistics.Duration = d
	return b
}

// AddResult adds one message result.
func (b *Builder) AddResult(r *batch.Result) *Builder {
	b.report.Results = append(b.report.Results, r)
	return b
}

// SetMetadata sets the report metadata.
func (b *Builder) SetMetadata(meta Metadata) *Builder {
	b.report.Metadata = meta
	return b
}

// Build finalizes and returns the report.
func (b *Builder) Build() *Report {
	st := &b.report.Statistics
	st.TotalMessages = len(b.report.Results)
	for _, r := range b.report.Results {
		st.ResultsByStatus[r.Status]++
		st.LettersProcessed += len(r.Output)
		st.RotorSteps += r.Steps
		st.DoubleSteps += r.DoubleSteps
	}

	if b.report.Title == "" {
		b.report.Title = fmt.Sprintf("Batch report: %s", b.report.Job)
	}
	if b.report.Summary == "" {
		b.report.Summary = generateSummary(b.report)
	}

	if b.report.Metadata.GeneratedAt.IsZero() {
		b.report.Metadata.GeneratedAt = time.Now()
	}
	if b.report.Metadata.GeneratedBy == "" {
		b.report.Metadata.GeneratedBy = "enigmakit"
	}
	if b.report.Metadata.ToolVersion == "" {
		b.report.Metadata.ToolVersion = version.Version
	}

	return b.report
}

// FromRun builds a report straight from a batch run.
func FromRun(run *batch.Run, meta Metadata) *Report {
	b := NewBuilder().
		SetRun(run.Job, run.ID, run.Status, run.Duration).
		SetMetadata(meta)
	for _, r := range run.Results {
		b.AddResult(r)
	}
	return b.Build()
}

func generateSummary(report *Report) string {
	var sb strings.Builder
	by := report.Statistics.ResultsByStatus

	sb.WriteString(fmt.Sprintf("The job ran %d messages, %d letters in total. ", report.Statistics.TotalMessages, report.Statistics.LettersProcessed))
	if by[batch.StatusPassed] == report.Statistics.TotalMessages {
		sb.WriteString("Every message produced the expected text.")
		return sb.String()
	}
	if n := by[batch.StatusFailed]; n > 0 {
		sb.WriteString(fmt.Sprintf("%d did not match the expected text. ", n))
	}
	if n := by[batch.StatusError]; n > 0 {
		sb.WriteString(fmt.Sprintf("%d could not be run because of a bad setup. ", n))
	}
	if n := by[batch.StatusSkipped]; n > 0 {
		sb.WriteString(fmt.Sprintf("%d were skipped after the run was cancelled. ", n))
	}
	return strings.TrimSpace(sb.String())
}

// Filename is the base name used when saving a report in the workspace.
func (r *Report) Filename(ext string) string {
	replacer := strings.NewReplacer(" ", "-", "/", "-", "\\", "-", ":", "-")
	return fmt.Sprintf("batch-%s-%s.%s", strings.ToLower(replacer.Replace(r.Job)), r.Metadata.GeneratedAt.Format("20060102-150405"), ext)
}

// Export writes the report in the format named by ext: json, md or html.
func (r *Report) Export(path string) error {
	switch strings.TrimPrefix(strings.ToLower(filepath.Ext(path)), ".") {
	case "json":
		return r.ExportJSON(path)
	case "md", "markdown":
		return r.ExportMarkdown(path)
	case "html", "htm":
		return r.ExportHTML(path)
	default:
		return fmt.Errorf("unsupported report format: %s", path)
	}
}

// ExportJSON exports the report as JSON.
func (r *Report) ExportJSON(path string) error {
	return writeFile(path, func(w io.Writer) error {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(r)
	})
}

var funcMap = template.FuncMap{
	"ToUpper": strings.ToUpper,
	"Join":    strings.Join,
	"Inc":     func(i int) int { return i + 1 },
}

// ExportMarkdown exports the report as Markdown.
func (r *Report) ExportMarkdown(path string) error {
	t, err := template.New("report").Funcs(funcMap).Parse(markdownTemplate)
	if err != nil {
		return fmt.Errorf("failed to parse template: %w", err)
	}
	return writeFile(path, func(w io.Writer) error { return t.Execute(w, r) })
}

// ExportHTML exports the report as HTML.
func (r *Report) ExportHTML(path string) error {
	t, err := htmltemplate.New("report").Funcs(htmltemplate.FuncMap(funcMap)).Parse(htmlTemplate)
	if err != nil {
		return fmt.Errorf("failed to parse template: %w", err)
	}
	return writeFile(path, func(w io.Writer) error { return t.Execute(w, r) })
}

func writeFile(path string, write func(io.Writer) error) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := bufio.NewWriter(f)
	if err := write(w); err != nil {
		return err
	}
	return w.Flush()
}

const markdownTemplate = `# {{ .Title }}

**Generated:** {{ .Metadata.GeneratedAt.Format "2006-01-02 15:04:05" }}
**Generated By:** {{ .Metadata.GeneratedBy }} {{ .Metadata.ToolVersion }}
**Run:** {{ .RunID }}
**Status:** {{ .Status | ToUpper }}

---

## Summary

{{ .Summary }}

---

## Statistics

| Metric | Value |
|--------|-------|
| Messages | {{ .Statistics.TotalMessages }} |
| Passed | {{ index .Statistics.ResultsByStatus "passed" }} |
| Failed | {{ index .Statistics.ResultsByStatus "failed" }} |
| Errors | {{ index .Statistics.ResultsByStatus "error" }} |
| Skipped | {{ index .Statistics.ResultsByStatus "skipped" }} |
| Letters | {{ .Statistics.LettersProcessed }} |
| Rotor steps | {{ .Statistics.RotorSteps }} |
| Double steps | {{ .Statistics.DoubleSteps }} |
| Duration | {{ .Statistics.Duration }} |

---

## Messages
{{ range $i, $r := .Results }}
### {{ Inc $i }}. {{ $r.ID }}{{ if $r.Name }}: {{ $r.Name }}{{ end }}

**Status:** {{ $r.Status | ToUpper }}
{{- if $r.Configuration.Rotors }}
**Rotors:** {{ Join $r.Configuration.Rotors " " }}  **Reflector:** {{ $r.Configuration.Reflector }}
**Plugs:** {{ Join $r.Configuration.Plugs " " }}
{{- end }}
**Start:** {{ $r.Start }}{{ if $r.End }}  **End:** {{ $r.End }}{{ end }}
{{ if $r.Error }}
**Error:** {{ $r.Error }}
{{ end }}
` + "```" + `
in:  {{ $r.Input }}
out: {{ $r.Output }}
{{- if $r.Expect }}
exp: {{ $r.Expect }}
{{- end }}
` + "```" + `
{{ end }}
---

*Report generated by enigmakit*
`

const htmlTemplate = `<!DOCTYPE html>
<html lang="en">
<head>
    <meta charset="UTF-8">
    <meta name="viewport" content="width=device-width, initial-scale=1.0">
    <title>{{ .Title }}</title>
    <style>
        :root {
            --passed: #28a745;
            --failed: #dc3545;
            --error: #fd7e14;
            --skipped: #6c757d;
        }
        body {
            font-family: -apple-system, BlinkMacSystemFont, 'Segoe UI', Roboto, Oxygen, Ubuntu, sans-serif;
            line-height: 1.6;
            color: #333;
            max-width: 1200px;
            margin: 0 auto;
            padding: 20px;
            background: #f5f5f5;
        }
        .container { background: white; padding: 40px; border-radius: 8px; box-shadow: 0 2px 4px rgba(0,0,0,0.1); }
        h1 { color: #2c3e50; border-bottom: 3px solid #3498db; padding-bottom: 10px; }
        h2 { color: #34495e; border-bottom: 1px solid #bdc3c7; padding-bottom: 5px; margin-top: 30px; }
        .meta { color: #7f8c8d; font-size: 0.9em; margin-bottom: 20px; }
        .summary { background: #ecf0f1; padding: 20px; border-radius: 5px; margin: 20px 0; }
        .stats { display: flex; gap: 20px; flex-wrap: wrap; margin: 20px 0; }
        .stat-card { background: white; border: 1px solid #ddd; border-radius: 5px; padding: 15px; min-width: 120px; text-align: center; }
        .stat-card.passed { border-left: 4px solid var(--passed); }
        .stat-card.failed { border-left: 4px solid var(--failed); }
        .stat-card.error { border-left: 4px solid var(--error); }
        .stat-card.skipped { border-left: 4px solid var(--skipped); }
        .stat-value { font-size: 2em; font-weight: bold; }
        .stat-label { color: #7f8c8d; font-size: 0.9em; }
        .message { border: 1px solid #ddd; border-radius: 5px; margin: 20px 0; overflow: hidden; }
        .message-header { padding: 10px 15px; display: flex; justify-content: space-between; color: white; }
        .message-header.passed { background: var(--passed); }
        .message-header.failed { background: var(--failed); }
        .message-header.error { background: var(--error); }
        .message-header.skipped { background: var(--skipped); }
        .message-body { padding: 15px; }
        .message-body pre { background: #2c3e50; color: #ecf0f1; padding: 15px; border-radius: 5px; overflow-x: auto; white-space: pre-wrap; word-break: break-all; }
        .footer { text-align: center; color: #7f8c8d; margin-top: 40px; padding-top: 20px; border-top: 1px solid #ddd; }
    </style>
</head>
<body>
<div class="container">
    <h1>{{ .Title }}</h1>
    <div class="meta">
        Generated {{ .Metadata.GeneratedAt.Format "2006-01-02 15:04:05" }} by {{ .Metadata.GeneratedBy }} {{ .Metadata.ToolVersion }}<br>
        Run {{ .RunID }}, status {{ .Status | ToUpper }}
    </div>

    <h2>Summary</h2>
    <div class="summary">{{ .Summary }}</div>

    <h2>Statistics</h2>
    <div class="stats">
        <div class="stat-card"><div class="stat-value">{{ .Statistics.TotalMessages }}</div><div class="stat-label">Messages</div></div>
        <div class="stat-card passed"><div class="stat-value">{{ index .Statistics.ResultsByStatus "passed" }}</div><div class="stat-label">Passed</div></div>
        <div class="stat-card failed"><div class="stat-value">{{ index .Statistics.ResultsByStatus "failed" }}</div><div class="stat-label">Failed</div></div>
        <div class="stat-card error"><div class="stat-value">{{ index .Statistics.ResultsByStatus "error" }}</div><div class="stat-label">Errors</div></div>
        <div class="stat-card skipped"><div class="stat-value">{{ index .Statistics.ResultsByStatus "skipped" }}</div><div class="stat-label">Skipped</div></div>
        <div class="stat-card"><div class="stat-value">{{ .Statistics.RotorSteps }}</div><div class="stat-label">Rotor steps</div></div>
    </div>

    <h2>Messages</h2>
    {{ range $i, $r := .Results }}
    <div class="message">
        <div class="message-header {{ $r.Status }}">
            <span>{{ Inc $i }}. {{ $r.ID }}{{ if $r.Name }}: {{ $r.Name }}{{ end }}</span>
            <span>{{ $r.Status | ToUpper }}</span>
        </div>
        <div class="message-body">
            {{ if $r.Configuration.Rotors }}<p>Rotors {{ Join $r.Configuration.Rotors " " }}, reflector {{ $r.Configuration.Reflector }}, plugs {{ Join $r.Configuration.Plugs " " }}</p>{{ end }}
            <p>Start {{ $r.Start }}{{ if $r.End }}, end {{ $r.End }}{{ end }}</p>
            {{ if $r.Error }}<p><strong>Error:</strong> {{ $r.Error }}</p>{{ end }}
            <pre>in:  {{ $r.Input }}
out: {{ $r.Output }}{{ if $r.Expect }}
exp: {{ $r.Expect }}{{ end }}</pre>
        </div>
    </div>
    {{ end }}

    <div class="footer">Report generated by enigmakit</div>
</div>
</body>
</html>
`
