// Package ocr defines the contract between the indexing pipeline and
// third-party recognition engines (Tesseract or remote services). Engines
// return word-level boxes in raster-pixel space at the recognition DPI;
// conversion to document points happens downstream at the adapter boundary.
// The interfaces are intentionally small so engines can be backed by native
// libraries or remote APIs without leaking provider concerns into callers.
package ocr
