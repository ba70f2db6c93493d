package coords

// VerticalOrigin identifies the vertical-origin convention of a source
// coordinate. Native text runs commonly report a baseline origin while OCR
// boxes report the top-left corner; both are normalized to top-left before
// storage.
type VerticalOrigin int

const (
	// OriginTopLeft means the y coordinate marks the top edge, y-down.
	OriginTopLeft VerticalOrigin = iota
	// OriginBaseline means the y coordinate marks the text baseline.
	OriginBaseline
)

// Transformer converts between raster-pixel space at a known DPI,
// document-point space, and zoom-scaled display space. It is stateless and
// safe for concurrent use.
type Transformer struct {
	// DPI is the sampling resolution of raster inputs. Zero is treated as
	// PointsPerInch, making pixel and point space coincide.
	DPI float64
}

// NewTransformer returns a Transformer for raster inputs sampled at dpi.
func NewTransformer(dpi float64) Transformer { return Transformer{DPI: dpi} }

func (t Transformer) scale() float64 {
	if t.DPI <= 0 {
		return 1
	}
	return t.DPI / PointsPerInch
}

// PixelsToPoints converts a raster-pixel point to document points.
func (t Transformer) PixelsToPoints(p Point) Point {
	s := t.scale()
	return Point{X: p.X / s, Y: p.Y / s}
}

// PointsToPixels converts a document point to raster pixels.
func (t Transformer) PointsToPixels(p Point) Point {
	s := t.scale()
	return Point{X: p.X * s, Y: p.Y * s}
}

// RectToPoints converts a raster-pixel rectangle to document points.
func (t Transformer) RectToPoints(r Rect) Rect {
	s := t.scale()
	return Rect{X: r.X / s, Y: r.Y / s, W: r.W / s, H: r.H / s}
}

// ToDisplay converts a document point to display space at the given zoom.
func ToDisplay(p Point, zoom float64) Point {
	return Point{X: p.X * zoom, Y: p.Y * zoom}
}

// RectToDisplay converts a document-point rectangle to display space.
func RectToDisplay(r Rect, zoom float64) Rect {
	return Rect{X: r.X * zoom, Y: r.Y * zoom, W: r.W * zoom, H: r.H * zoom}
}

// NormalizeOrigin rewrites a rectangle whose y coordinate follows the given
// convention into the canonical top-left, y-down convention. For baseline
// rectangles the y coordinate marks the baseline and the glyph box extends
// upward by the ascent, approximated here by the full height.
func NormalizeOrigin(r Rect, origin VerticalOrigin) Rect {
	if origin == OriginBaseline {
		r.Y -= r.H
	}
	return r
}
