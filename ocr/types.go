package ocr

import (
	"context"
	"errors"
)

// DefaultDPI is the reference sampling resolution for recognition input.
// 300 dpi balances recognition accuracy against rasterization cost.
const DefaultDPI = 300

// ErrEngineUnavailable reports that no usable recognition engine is
// configured or that the engine failed to initialize. Callers must not
// conflate it with an empty recognition result.
var ErrEngineUnavailable = errors.New("ocr: engine unavailable")

// ImageFormat identifies the content type of an OCR input image.
type ImageFormat string

const (
	ImageFormatPNG  ImageFormat = "image/png"
	ImageFormatJPEG ImageFormat = "image/jpeg"
	ImageFormatTIFF ImageFormat = "image/tiff"
)

// Region describes a rectangular area in pixel coordinates with the origin in
// the upper-left corner of the image.
type Region struct {
	X      float64
	Y      float64
	Width  float64
	Height float64
}

// IsEmpty reports whether the region has non-positive dimensions.
func (r Region) IsEmpty() bool { return r.Width <= 0 || r.Height <= 0 }

// Input encapsulates a single page image submitted for OCR.
type Input struct {
	// ID is an optional caller-provided identifier that is echoed back in the
	// corresponding Result.
	ID string
	// Image is the encoded image payload in the format specified by Format.
	Image []byte
	// Format declares the image content type (e.g., image/png).
	Format ImageFormat
	// PageNumber links the input back to the zero-based page it was
	// rasterized from.
	PageNumber int
	// DPI carries the effective dots-per-inch of the image. Zero means the
	// reference DefaultDPI.
	DPI int
	// Languages is a list of language hints (e.g., "eng", "deu") that
	// providers can use to select trained data.
	Languages []string
	// Region restricts recognition to a subsection of the image. Nil means
	// the full image is processed.
	Region *Region
	// Metadata passes engine-specific knobs (e.g., "tessedit_pageseg_mode")
	// without hard-coding them into the API surface.
	Metadata map[string]string
}

// EffectiveDPI returns the input DPI, defaulting to DefaultDPI.
func (in Input) EffectiveDPI() int {
	if in.DPI > 0 {
		return in.DPI
	}
	return DefaultDPI
}

// Word is a single recognized token with its pixel-space box.
type Word struct {
	Text       string
	Bounds     Region
	Confidence float64
}

// Line groups words that share a baseline.
type Line struct {
	Text       string
	Bounds     Region
	Words      []Word
	Confidence float64
}

// Paragraph groups consecutive lines of one logical paragraph.
type Paragraph struct {
	Bounds Region
	Lines  []Line
}

// Block aggregates paragraphs that form a logical page region (column,
// heading, caption).
type Block struct {
	Bounds     Region
	Paragraphs []Paragraph
}

// Result captures recognition output for a single page image.
//
// A structured result carries the full block→paragraph→line→word hierarchy.
// Engines that cannot produce layout return PlainText only; the adapter layer
// treats that as the flat fallback with no positional data.
type Result struct {
	// InputID mirrors the Input.ID that produced this result.
	InputID string
	// PageNumber mirrors Input.PageNumber.
	PageNumber int
	// DPI is the sampling resolution the boxes are expressed in.
	DPI int
	// PlainText contains the linearized recognized text.
	PlainText string
	// Blocks carries the structured layout. Empty means no structure is
	// available and PlainText is the only usable output.
	Blocks []Block
	// Language indicates the dominant language detected, if known.
	Language string
}

// HasStructure reports whether the result carries positional layout.
func (r Result) HasStructure() bool { return len(r.Blocks) > 0 }

// Words returns all recognized words in reading order.
func (r Result) Words() []Word {
	var words []Word
	for _, b := range r.Blocks {
		for _, p := range b.Paragraphs {
			for _, l := range p.Lines {
				words = append(words, l.Words...)
			}
		}
	}
	return words
}

// Engine is the simplest OCR provider contract: one image in, one result out.
type Engine interface {
	Name() string
	Recognize(ctx context.Context, input Input) (Result, error)
}

// BatchEngine handles multiple images in a single call, enabling providers
// that amortize setup costs or remote round-trips.
type BatchEngine interface {
	Engine
	RecognizeBatch(ctx context.Context, inputs []Input) ([]Result, error)
}
