// Package export renders bug reports as downloadable text and markdown documents.
package export

import (
	"fmt"

	"github.com/example/smartqa/internal/apperrors"
	"github.com/example/smartqa/internal/ports/primary"
	"github.com/example/smartqa/internal/templates"
)

// Supported export formats.
const (
	FormatText     = "txt"
	FormatMarkdown = "md"
)

// Text renders the plain text export.
func Text(bug *primary.BugReport) (string, error) {
	return templates.Render(templates.BugReportText, bug)
}

// Markdown renders the markdown export.
func Markdown(bug *primary.BugReport) (string, error) {
	return templates.Render(templates.BugReportMarkdown, bug)
}

// FileName returns bug_report_<id>.<format>.
func FileName(bugID, format string) string {
	return fmt.Sprintf("bug_report_%s.%s", bugID, format)
}

// Render renders bug in the given format ("txt" or "md").
func Render(bug *primary.BugReport, format string) (*primary.ExportedBugReport, error) {
	var (
		content     string
		contentType string
		err         error
	)
	switch format {
	case FormatText:
		content, err = Text(bug)
		contentType = "text/plain; charset=utf-8"
	case FormatMarkdown:
		content, err = Markdown(bug)
		contentType = "text/markdown; charset=utf-8"
	default:
		return nil, apperrors.Validation("unknown export format %q (valid: txt, md)", format)
	}
	if err != nil {
		return nil, err
	}
	return &primary.ExportedBugReport{
		FileName:    FileName(bug.ID, format),
		ContentType: contentType,
		Content:     content,
	}, nil
}
