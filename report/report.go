// Package report renders scan findings for human review. Findings are
// written as Markdown grouped by page; the HTML form is produced from the
// same Markdown via goldmark, suitable for embedding in review tooling.
package report

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/yuin/goldmark"

	"github.com/redactkit/redactkit/redact"
)

// maskText replaces all but the last four characters of a matched value so
// the report itself does not leak what it flags.
func maskText(s string) string {
	const keep = 4
	runes := []rune(s)
	if len(runes) <= keep {
		return strings.Repeat("*", len(runes))
	}
	return strings.Repeat("*", len(runes)-keep) + string(runes[len(runes)-keep:])
}

// WriteMarkdown renders candidates as a Markdown report. Candidates are
// expected in page order; matched values are masked.
func WriteMarkdown(w io.Writer, title string, cands []redact.Candidate) error {
	if _, err := fmt.Fprintf(w, "# %s\n\n", title); err != nil {
		return err
	}
	if len(cands) == 0 {
		_, err := io.WriteString(w, "No sensitive data detected.\n")
		return err
	}
	currentPage := -1
	for _, c := range cands {
		if c.PageNumber != currentPage {
			currentPage = c.PageNumber
			if _, err := fmt.Fprintf(w, "## Page %d\n\n", currentPage+1); err != nil {
				return err
			}
		}
		location := "no geometry"
		if len(c.Rects) > 0 {
			r := c.Rects[0]
			location = fmt.Sprintf("at (%.1f, %.1f) %.1f×%.1f pt", r.X, r.Y, r.W, r.H)
			if len(c.Rects) > 1 {
				location += fmt.Sprintf(" (+%d more)", len(c.Rects)-1)
			}
		}
		if _, err := fmt.Fprintf(w, "- **%s** `%s` %s\n", c.PatternID, maskText(c.Text), location); err != nil {
			return err
		}
	}
	_, err := io.WriteString(w, "\n")
	return err
}

// HTML renders the same report as HTML.
func HTML(title string, cands []redact.Candidate) ([]byte, error) {
	var md bytes.Buffer
	if err := WriteMarkdown(&md, title, cands); err != nil {
		return nil, err
	}
	var out bytes.Buffer
	if err := goldmark.Convert(md.Bytes(), &out); err != nil {
		return nil, fmt.Errorf("render report: %w", err)
	}
	return out.Bytes(), nil
}
