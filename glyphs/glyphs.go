// Package glyphs defines the glyph-run model shared by both text sources and
// the adapters that produce runs from native document text and from OCR
// results. A glyph run is a contiguous span of text sharing one position; all
// run geometry is document-point space with a top-left, y-down origin.
package glyphs

import "github.com/redactkit/redactkit/coords"

// SourceKind identifies which extraction path produced a run.
type SourceKind int

const (
	// SourceNative marks runs decomposed from the document's own text.
	SourceNative SourceKind = iota
	// SourceOCR marks runs recognized from a page raster.
	SourceOCR
)

// String returns a printable name for the source kind.
func (k SourceKind) String() string {
	switch k {
	case SourceNative:
		return "native"
	case SourceOCR:
		return "ocr"
	default:
		return "unknown"
	}
}

// Run is one positioned text span. Native runs carry a single character each;
// OCR runs carry a whole word. A run produced from an unstructured fallback
// has an empty Bounds and is searchable but not addressable.
type Run struct {
	// Text is the run's content. Never empty.
	Text string
	// Bounds is the run's box in document points. The zero value means the
	// run has no positional data.
	Bounds coords.Rect
	// Kind records which source produced the run.
	Kind SourceKind
	// Confidence is the recognition confidence in [0, 1]. Always 1 for
	// native runs.
	Confidence float64
	// Continues marks a run that directly continues the previous run with
	// no word boundary between them. The native adapter sets it on every
	// character of a source item except the first, so indexing does not
	// inject separators inside a word.
	Continues bool
}

// HasBounds reports whether the run carries usable geometry.
func (r Run) HasBounds() bool { return !r.Bounds.IsEmpty() }
