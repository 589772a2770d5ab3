// Package templates holds the embedded text templates for bug report exports
// and generator prompts.
package templates

import (
	"embed"
	"fmt"
	"strings"
	"text/template"
)

//go:embed export/*.tmpl prompt/*.tmpl
var templateFiles embed.FS

var parsed = template.Must(
	template.New("").Funcs(TemplateFuncs()).ParseFS(templateFiles, "export/*.tmpl", "prompt/*.tmpl"),
)

// Template names.
const (
	BugReportText     = "bug_report.txt.tmpl"
	BugReportMarkdown = "bug_report.md.tmpl"
	ScenariosPrompt   = "scenarios_prompt.tmpl"
	BugReportPrompt   = "bug_report_prompt.tmpl"
)

// Render executes the named template with data.
func Render(name string, data any) (string, error) {
	var sb strings.Builder
	if err := parsed.ExecuteTemplate(&sb, name, data); err != nil {
		return "", fmt.Errorf("failed to render %s: %w", name, err)
	}
	return sb.String(), nil
}

// TemplateFuncs returns the function map available to every template.
func TemplateFuncs() template.FuncMap {
	return template.FuncMap{
		"upper":        strings.ToUpper,
		"date":         datePart,
		"yesNo":        yesNo,
		"severityIcon": severityIcon,
		"orDefault":    orDefault,
	}
}

// datePart returns the YYYY-MM-DD prefix of an RFC3339 timestamp.
func datePart(ts string) string {
	if len(ts) < 10 {
		return ts
	}
	return ts[:10]
}

func yesNo(b bool) string {
	if b {
		return "Yes"
	}
	return "No"
}

func severityIcon(severity string) string {
	switch severity {
	case "critical":
		return "🔴"
	case "high":
		return "🟠"
	case "medium":
		return "🟡"
	case "low":
		return "🟢"
	}
	return "⚪"
}

func orDefault(s, def string) string {
	if strings.TrimSpace(s) == "" {
		return def
	}
	return s
}
