package glyphs

import (
	"unicode/utf8"

	"github.com/redactkit/redactkit/coords"
)

// NativeTextRun is one text item delivered by the document-render
// collaborator: a string positioned by an affine transform, with the total
// display width measured at the caller's base scale.
type NativeTextRun struct {
	// Text is the run content.
	Text string
	// Transform maps the run's local origin into page space in document
	// points. The translation components carry the run origin.
	Transform coords.Matrix
	// Width is the rendered width of the whole run in document points.
	Width float64
	// Height is the glyph height in document points.
	Height float64
	// Advances optionally carries one display width per rune of Text, in
	// document points. When present it takes priority over the average
	// width derived from Width.
	Advances []float64
	// FontData optionally carries the embedded TrueType font the run was
	// set in. When present and Advances is empty, per-glyph advances are
	// recovered by shaping Text against the font.
	FontData []byte
	// Origin declares the vertical-origin convention of the transform's
	// translation. Native extraction commonly reports the baseline.
	Origin coords.VerticalOrigin
}

// NativeAdapter decomposes native text runs into per-character glyph runs.
type NativeAdapter struct{}

// Runs converts the page's native text items, in the order supplied, into
// one glyph run per character. Character boxes are laid out along the run's
// baseline using the per-glyph advance array when one is available (supplied
// directly or recovered from the embedded font), and the run's average
// character width otherwise.
func (NativeAdapter) Runs(items []NativeTextRun) []Run {
	var out []Run
	for _, item := range items {
		out = append(out, decompose(item)...)
	}
	return out
}

func decompose(item NativeTextRun) []Run {
	n := utf8.RuneCountInString(item.Text)
	if n == 0 {
		return nil
	}
	advances := item.Advances
	if len(advances) != n && len(item.FontData) > 0 {
		if shaped, err := ShapeAdvances(item.Text, item.FontData, item.Height); err == nil && len(shaped) == n {
			advances = shaped
		}
	}
	if len(advances) != n {
		advances = uniformAdvances(n, item.Width)
	}

	runs := make([]Run, 0, n)
	var penX float64
	i := 0
	for _, r := range item.Text {
		w := advances[i]
		origin := item.Transform.Transform(coords.Point{X: penX, Y: 0})
		box := coords.NormalizeOrigin(coords.Rect{
			X: origin.X,
			Y: origin.Y,
			W: w,
			H: item.Height,
		}, item.Origin)
		runs = append(runs, Run{
			Text:       string(r),
			Bounds:     box,
			Kind:       SourceNative,
			Confidence: 1,
			Continues:  i > 0,
		})
		penX += w
		i++
	}
	return runs
}

func uniformAdvances(n int, total float64) []float64 {
	w := total / float64(n)
	adv := make([]float64, n)
	for i := range adv {
		adv[i] = w
	}
	return adv
}
