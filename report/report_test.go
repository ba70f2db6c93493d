package report

import (
	"bytes"
	"strings"
	"testing"

	"github.com/redactkit/redactkit/coords"
	"github.com/redactkit/redactkit/redact"
)

func sampleCandidates() []redact.Candidate {
	return []redact.Candidate{
		{
			PageNumber: 0,
			PatternID:  "ssn",
			Text:       "078-05-1120",
			Rects:      []coords.Rect{{X: 72, Y: 144.5, W: 66, H: 12}},
		},
		{
			PageNumber: 2,
			PatternID:  "email",
			Text:       "jane@example.com",
		},
	}
}

func TestWriteMarkdown(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteMarkdown(&buf, "Scan results", sampleCandidates()); err != nil {
		t.Fatalf("WriteMarkdown() error = %v", err)
	}
	out := buf.String()
	for _, want := range []string{"# Scan results", "## Page 1", "## Page 3", "ssn", "email", "no geometry"} {
		if !strings.Contains(out, want) {
			t.Fatalf("report missing %q:\n%s", want, out)
		}
	}
	if strings.Contains(out, "078-05-1120") {
		t.Fatal("report must not contain the unmasked value")
	}
	if !strings.Contains(out, "*******1120") {
		t.Fatalf("report missing masked value:\n%s", out)
	}
}

func TestWriteMarkdownEmpty(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteMarkdown(&buf, "Scan results", nil); err != nil {
		t.Fatalf("WriteMarkdown() error = %v", err)
	}
	if !strings.Contains(buf.String(), "No sensitive data detected.") {
		t.Fatalf("unexpected empty report: %s", buf.String())
	}
}

func TestHTML(t *testing.T) {
	out, err := HTML("Scan results", sampleCandidates())
	if err != nil {
		t.Fatalf("HTML() error = %v", err)
	}
	html := string(out)
	if !strings.Contains(html, "<h1>Scan results</h1>") {
		t.Fatalf("missing heading: %s", html)
	}
	if !strings.Contains(html, "<li>") {
		t.Fatalf("missing list items: %s", html)
	}
}

func TestMaskTextShortValues(t *testing.T) {
	if got := maskText("abc"); got != "***" {
		t.Fatalf("maskText(abc) = %q", got)
	}
	if got := maskText("abcdefgh"); got != "****efgh" {
		t.Fatalf("maskText(abcdefgh) = %q", got)
	}
}
