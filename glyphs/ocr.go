package glyphs

import (
	"strings"

	"github.com/redactkit/redactkit/coords"
	"github.com/redactkit/redactkit/ocr"
)

// OCRPayloadKind tags the two shapes an OCR result can take. The decision is
// made exactly once, at the adapter boundary, and recorded on the payload.
type OCRPayloadKind int

const (
	// PayloadStructured means the result carries block→paragraph→line→word
	// layout with word boxes.
	PayloadStructured OCRPayloadKind = iota
	// PayloadFlatFallback means only the page's linearized text is
	// available; runs produced from it carry no geometry.
	PayloadFlatFallback
)

// OCRPayload is an ocr.Result classified at the adapter boundary.
type OCRPayload struct {
	Kind   OCRPayloadKind
	Result ocr.Result
}

// ClassifyOCR inspects a recognition result and tags it as structured or
// flat-fallback.
func ClassifyOCR(res ocr.Result) OCRPayload {
	if res.HasStructure() {
		return OCRPayload{Kind: PayloadStructured, Result: res}
	}
	return OCRPayload{Kind: PayloadFlatFallback, Result: res}
}

// OCRAdapter converts recognition results into word-granular glyph runs.
// Word boxes arrive in raster pixels at the recognition DPI and leave in
// document points. Sub-word character positions are not reconstructed; every
// character of a word shares the word's box.
type OCRAdapter struct{}

// Runs converts a classified OCR payload into glyph runs in reading order
// (block, then paragraph, then line, then word). A flat-fallback payload
// yields a single unpositioned run holding the page text, or nothing when
// the page text is empty.
func (OCRAdapter) Runs(payload OCRPayload) []Run {
	if payload.Kind == PayloadFlatFallback {
		text := strings.TrimSpace(payload.Result.PlainText)
		if text == "" {
			return nil
		}
		return []Run{{Text: text, Kind: SourceOCR, Confidence: 0}}
	}

	t := coords.NewTransformer(float64(resultDPI(payload.Result)))
	var out []Run
	for _, word := range payload.Result.Words() {
		if word.Text == "" {
			continue
		}
		box := t.RectToPoints(coords.Rect{
			X: word.Bounds.X,
			Y: word.Bounds.Y,
			W: word.Bounds.Width,
			H: word.Bounds.Height,
		})
		out = append(out, Run{
			Text:       word.Text,
			Bounds:     box,
			Kind:       SourceOCR,
			Confidence: word.Confidence,
		})
	}
	return out
}

func resultDPI(res ocr.Result) int {
	if res.DPI > 0 {
		return res.DPI
	}
	return ocr.DefaultDPI
}
