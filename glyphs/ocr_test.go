package glyphs

import (
	"math"
	"testing"

	"github.com/redactkit/redactkit/coords"
	"github.com/redactkit/redactkit/ocr"
)

func structuredResult() ocr.Result {
	return ocr.Result{
		PageNumber: 0,
		DPI:        300,
		PlainText:  "Account 078-05-1120",
		Blocks: []ocr.Block{{
			Paragraphs: []ocr.Paragraph{{
				Lines: []ocr.Line{{
					Text: "Account 078-05-1120",
					Words: []ocr.Word{
						{Text: "Account", Bounds: ocr.Region{X: 125, Y: 250, Width: 500, Height: 50}, Confidence: 0.96},
						{Text: "078-05-1120", Bounds: ocr.Region{X: 650, Y: 250, Width: 600, Height: 50}, Confidence: 0.88},
					},
				}},
			}},
		}},
	}
}

func TestClassifyOCR(t *testing.T) {
	if got := ClassifyOCR(structuredResult()).Kind; got != PayloadStructured {
		t.Fatalf("structured result classified as %v", got)
	}
	if got := ClassifyOCR(ocr.Result{PlainText: "flat text"}).Kind; got != PayloadFlatFallback {
		t.Fatalf("flat result classified as %v", got)
	}
}

func TestOCRAdapterStructured(t *testing.T) {
	runs := OCRAdapter{}.Runs(ClassifyOCR(structuredResult()))
	if len(runs) != 2 {
		t.Fatalf("expected 2 runs, got %d", len(runs))
	}
	r := runs[0]
	if r.Kind != SourceOCR || r.Text != "Account" {
		t.Fatalf("unexpected run: %+v", r)
	}
	// 500 px at 300 dpi is 120 points wide.
	if math.Abs(r.Bounds.W-120) > coords.Tolerance {
		t.Fatalf("width = %v, want 120", r.Bounds.W)
	}
	if math.Abs(r.Bounds.X-30) > coords.Tolerance || math.Abs(r.Bounds.Y-60) > coords.Tolerance {
		t.Fatalf("origin = (%v, %v), want (30, 60)", r.Bounds.X, r.Bounds.Y)
	}
	if !r.HasBounds() {
		t.Fatal("structured run must carry bounds")
	}
}

func TestOCRAdapterFlatFallback(t *testing.T) {
	runs := OCRAdapter{}.Runs(ClassifyOCR(ocr.Result{PlainText: "  lone page text  "}))
	if len(runs) != 1 {
		t.Fatalf("expected 1 run, got %d", len(runs))
	}
	if runs[0].Text != "lone page text" {
		t.Fatalf("unexpected text: %q", runs[0].Text)
	}
	if runs[0].HasBounds() {
		t.Fatal("fallback run must not carry bounds")
	}
}

func TestOCRAdapterEmptyResult(t *testing.T) {
	if runs := (OCRAdapter{}).Runs(ClassifyOCR(ocr.Result{})); len(runs) != 0 {
		t.Fatalf("expected no runs, got %d", len(runs))
	}
}

func TestOCRAdapterDefaultsDPI(t *testing.T) {
	res := structuredResult()
	res.DPI = 0
	runs := OCRAdapter{}.Runs(ClassifyOCR(res))
	if math.Abs(runs[0].Bounds.W-120) > coords.Tolerance {
		t.Fatalf("zero DPI should fall back to the 300 dpi reference, width = %v", runs[0].Bounds.W)
	}
}

func TestSourceKindString(t *testing.T) {
	if SourceNative.String() != "native" || SourceOCR.String() != "ocr" {
		t.Fatal("unexpected source kind names")
	}
	if SourceKind(99).String() != "unknown" {
		t.Fatal("unexpected name for unknown kind")
	}
}
