package redact

import (
	"testing"

	"github.com/redactkit/redactkit/coords"
	"github.com/redactkit/redactkit/glyphs"
	"github.com/redactkit/redactkit/index"
	"github.com/redactkit/redactkit/match"
)

func buildIndex(t *testing.T, runs []glyphs.Run) *index.PageTextIndex {
	t.Helper()
	idx, err := index.Build(0, runs)
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	return idx
}

func ocrWord(text string, x, y float64) glyphs.Run {
	return glyphs.Run{
		Text:   text,
		Bounds: coords.Rect{X: x, Y: y, W: float64(len(text)) * 6, H: 10},
		Kind:   glyphs.SourceOCR,
	}
}

func TestSameLineSpanYieldsOneRect(t *testing.T) {
	// "078-05" and "1120" as two words on one line; a match covering both
	// must produce a single rectangle.
	idx := buildIndex(t, []glyphs.Run{ocrWord("078-05", 10, 100), ocrWord("1120", 60, 100)})
	rects := Reconstructor{}.RectsFor(idx, 0, len(idx.Text))
	if len(rects) != 1 {
		t.Fatalf("expected 1 rect, got %d: %v", len(rects), rects)
	}
	want := coords.Rect{X: 10, Y: 100, W: 74, H: 10}
	if !rects[0].Equal(want) {
		t.Fatalf("rect = %+v, want %+v", rects[0], want)
	}
}

func TestLineBreakSpanYieldsTwoRects(t *testing.T) {
	idx := buildIndex(t, []glyphs.Run{ocrWord("start", 400, 100), ocrWord("finish", 10, 120)})
	rects := Reconstructor{}.RectsFor(idx, 0, len(idx.Text))
	if len(rects) != 2 {
		t.Fatalf("expected 2 rects, got %d: %v", len(rects), rects)
	}
	if rects[0].Y != 100 || rects[1].Y != 120 {
		t.Fatalf("unexpected rect order: %v", rects)
	}
}

func TestUnpositionedSpanYieldsNoRects(t *testing.T) {
	idx := buildIndex(t, []glyphs.Run{{Text: "flat fallback text", Kind: glyphs.SourceOCR}})
	if rects := (Reconstructor{}).RectsFor(idx, 0, len(idx.Text)); len(rects) != 0 {
		t.Fatalf("expected no rects, got %v", rects)
	}
}

func TestToleranceFraction(t *testing.T) {
	// 4 points of vertical offset on 10-point glyphs: inside the default
	// half-height tolerance, outside a tight one.
	runs := []glyphs.Run{ocrWord("aa", 10, 100), ocrWord("bb", 30, 104)}
	idx := buildIndex(t, runs)
	if rects := (Reconstructor{}).RectsFor(idx, 0, len(idx.Text)); len(rects) != 1 {
		t.Fatalf("default tolerance should merge, got %v", rects)
	}
	tight := Reconstructor{ToleranceFraction: 0.1}
	if rects := tight.RectsFor(idx, 0, len(idx.Text)); len(rects) != 2 {
		t.Fatalf("tight tolerance should split, got %v", rects)
	}
}

func TestRectsForBounds(t *testing.T) {
	idx := buildIndex(t, []glyphs.Run{ocrWord("word", 10, 10)})
	r := Reconstructor{}
	if got := r.RectsFor(idx, -1, 2); got != nil {
		t.Fatalf("negative start must yield nil, got %v", got)
	}
	if got := r.RectsFor(idx, 0, len(idx.Text)+1); got != nil {
		t.Fatalf("overlong span must yield nil, got %v", got)
	}
	if got := r.RectsFor(nil, 0, 1); got != nil {
		t.Fatalf("nil index must yield nil, got %v", got)
	}
}

func TestCandidates(t *testing.T) {
	idx := buildIndex(t, []glyphs.Run{ocrWord("078-05-1120", 10, 100)})
	spans := match.NewMatcher().Search(idx.Text, match.KindSSN)
	if len(spans) != 1 {
		t.Fatalf("expected 1 span, got %d", len(spans))
	}
	cands := Reconstructor{}.Candidates(idx, spans)
	if len(cands) != 1 {
		t.Fatalf("expected 1 candidate, got %d", len(cands))
	}
	c := cands[0]
	if c.PatternID != "ssn" || c.Text != "078-05-1120" || c.PageNumber != 0 {
		t.Fatalf("unexpected candidate: %+v", c)
	}
	if len(c.Rects) != 1 {
		t.Fatalf("expected 1 rect, got %v", c.Rects)
	}
}
