// Package raster prepares page images for recognition. OCR accuracy depends
// on the sampling resolution of the input, so pages rasterized at an
// arbitrary scale are resampled to the reference recognition DPI before they
// are handed to an engine.
package raster

import (
	"bytes"
	"fmt"
	"image"
	"image/png"
	"math"

	"golang.org/x/image/draw"

	"github.com/redactkit/redactkit/coords"
	"github.com/redactkit/redactkit/ocr"
)

// PageImage is a rasterized page produced by the render collaborator.
type PageImage struct {
	// PageNumber is the zero-based page index.
	PageNumber int
	// Data is the encoded image payload.
	Data []byte
	// DPI is the resolution Data was sampled at. Zero means unknown, in
	// which case the image is assumed to already be at the target DPI.
	DPI int
}

// Prepare decodes a page image, resamples it to targetDPI when its source
// resolution differs, and returns an OCR input carrying the target DPI.
// CatmullRom interpolation keeps glyph edges usable for recognition.
func Prepare(page PageImage, targetDPI int, opts ...ocr.InputOption) (ocr.Input, error) {
	if targetDPI <= 0 {
		targetDPI = ocr.DefaultDPI
	}
	data := page.Data
	if page.DPI > 0 && page.DPI != targetDPI {
		scaled, err := Resample(page.Data, float64(targetDPI)/float64(page.DPI))
		if err != nil {
			return ocr.Input{}, fmt.Errorf("resample page %d: %w", page.PageNumber, err)
		}
		data = scaled
	}
	in := ocr.Input{
		ID:         fmt.Sprintf("page-%d", page.PageNumber),
		Image:      data,
		Format:     ocr.ImageFormatPNG,
		PageNumber: page.PageNumber,
		DPI:        targetDPI,
	}
	for _, opt := range opts {
		opt(&in)
	}
	return in, nil
}

// Resample decodes an image, scales both axes by factor, and re-encodes it
// as PNG. A factor of 1 returns the re-encoded image unchanged in size.
func Resample(data []byte, factor float64) ([]byte, error) {
	if factor <= 0 {
		return nil, fmt.Errorf("invalid scale factor %v", factor)
	}
	src, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decode image: %w", err)
	}
	b := src.Bounds()
	w := int(math.Round(float64(b.Dx()) * factor))
	h := int(math.Round(float64(b.Dy()) * factor))
	if w < 1 || h < 1 {
		return nil, fmt.Errorf("scale factor %v collapses image", factor)
	}
	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.CatmullRom.Scale(dst, dst.Bounds(), src, b, draw.Over, nil)
	var buf bytes.Buffer
	if err := png.Encode(&buf, dst); err != nil {
		return nil, fmt.Errorf("encode image: %w", err)
	}
	return buf.Bytes(), nil
}

// PageSizePoints returns the page dimensions in document points for an image
// sampled at dpi.
func PageSizePoints(width, height int, dpi float64) (float64, float64) {
	t := coords.NewTransformer(dpi)
	p := t.PixelsToPoints(coords.Point{X: float64(width), Y: float64(height)})
	return p.X, p.Y
}
