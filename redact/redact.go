// Package redact converts accepted match spans into redaction candidates:
// the matched text plus the document-point rectangles that cover it. The
// rectangles are what a redaction UI places opaque covers over; this package
// never draws.
package redact

import (
	"math"

	"github.com/redactkit/redactkit/coords"
	"github.com/redactkit/redactkit/index"
	"github.com/redactkit/redactkit/match"
)

// DefaultToleranceFraction is the same-line heuristic: a character extends
// the open rectangle when its vertical center lies within this fraction of
// its height from the open rectangle's vertical center.
const DefaultToleranceFraction = 0.5

// Candidate is one detected sensitive-data occurrence with its bounding
// geometry, prior to any obscuring action. Rects is empty when the match
// lies entirely in text with no positional data.
type Candidate struct {
	PageNumber int
	PatternID  string
	Text       string
	Rects      []coords.Rect
}

// Reconstructor rebuilds bounding rectangles for character spans.
type Reconstructor struct {
	// ToleranceFraction overrides the same-line tolerance. Zero means
	// DefaultToleranceFraction.
	ToleranceFraction float64
}

func (r Reconstructor) tolerance() float64 {
	if r.ToleranceFraction > 0 {
		return r.ToleranceFraction
	}
	return DefaultToleranceFraction
}

// RectsFor walks the char map over [start, end) and merges same-line
// characters into rectangles. Unpositioned slots (run separators and
// no-position fallback runs) contribute no geometry and do not split a line:
// a rectangle closes only when the next positioned character's vertical
// center falls outside the tolerance, so a match spanning two runs on one
// line yields a single rectangle while a line break or a large vertical jump
// between source runs yields one rectangle per line.
func (r Reconstructor) RectsFor(idx *index.PageTextIndex, start, end int) []coords.Rect {
	if idx == nil || start < 0 || end > len(idx.CharMap) || start >= end {
		return nil
	}
	tol := r.tolerance()
	var rects []coords.Rect
	var open coords.Rect
	haveOpen := false

	flush := func() {
		if haveOpen {
			rects = append(rects, open)
			haveOpen = false
		}
	}

	for i := start; i < end; i++ {
		c := idx.CharMap[i]
		if !c.Valid {
			continue
		}
		if haveOpen && math.Abs(c.Box.CenterY()-open.CenterY()) <= tol*c.Box.H {
			open = open.Union(c.Box)
			continue
		}
		flush()
		open = c.Box
		haveOpen = true
	}
	flush()
	return rects
}

// Candidates maps accepted spans from one page's search into redaction
// candidates carrying their reconstructed geometry.
func (r Reconstructor) Candidates(idx *index.PageTextIndex, spans []match.Span) []Candidate {
	if idx == nil || len(spans) == 0 {
		return nil
	}
	out := make([]Candidate, 0, len(spans))
	for _, s := range spans {
		out = append(out, Candidate{
			PageNumber: idx.PageNumber,
			PatternID:  s.PatternID,
			Text:       s.Text,
			Rects:      r.RectsFor(idx, s.Start, s.End),
		})
	}
	return out
}
