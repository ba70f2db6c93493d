// Package index builds and stores the per-page character-addressable text
// index. The builder flattens an ordered glyph-run list into one concatenated
// string plus a parallel position map with exactly one entry per byte of
// text, so match offsets produced by regexp scanning address geometry
// directly.
package index

import (
	"fmt"
	"strings"

	"github.com/redactkit/redactkit/coords"
	"github.com/redactkit/redactkit/glyphs"
)

// InternalError reports an internal-consistency violation in the indexer.
// It marks a bug in this library, never bad input; callers distinguish it
// from recoverable data errors with errors.As.
type InternalError struct {
	Msg string
}

func (e *InternalError) Error() string { return "index: internal error: " + e.Msg }

// PositionedChar is the position slot for one byte of indexed text: either a
// glyph box in document points, or an invalid slot for separators and
// characters with no known geometry.
type PositionedChar struct {
	Box   coords.Rect
	Valid bool
}

// PageTextIndex is the searchable, spatially addressable index of one page.
// It is immutable after Build; invalidation replaces the whole value.
type PageTextIndex struct {
	// PageNumber is the zero-based page index.
	PageNumber int
	// Text is the concatenated run text with single-space separators
	// between non-continuing runs.
	Text string
	// CharMap has exactly one entry per byte of Text.
	CharMap []PositionedChar
	// SourceKinds records which extraction paths contributed runs.
	SourceKinds []glyphs.SourceKind
}

// PositionOf returns the glyph box covering the byte at offset. The second
// return is false for separators, unpositioned runs, and out-of-range
// offsets.
func (p *PageTextIndex) PositionOf(offset int) (coords.Rect, bool) {
	if p == nil || offset < 0 || offset >= len(p.CharMap) {
		return coords.Rect{}, false
	}
	c := p.CharMap[offset]
	return c.Box, c.Valid
}

// Build flattens runs, in the order supplied, into a page index. The builder
// never re-sorts; reading order is the caller's responsibility. A separator
// (one space with an invalid position slot) is inserted between runs unless
// the following run is marked as a continuation. Word-granular runs repeat
// the word box across every byte of the word.
func Build(pageNumber int, runs []glyphs.Run) (*PageTextIndex, error) {
	var (
		text    strings.Builder
		charMap []PositionedChar
		kinds   []glyphs.SourceKind
		seen    = map[glyphs.SourceKind]bool{}
		wrote   bool
	)
	for _, run := range runs {
		if run.Text == "" {
			continue
		}
		if wrote && !run.Continues {
			text.WriteByte(' ')
			charMap = append(charMap, PositionedChar{})
		}
		slot := PositionedChar{Box: run.Bounds, Valid: run.HasBounds()}
		text.WriteString(run.Text)
		for i := 0; i < len(run.Text); i++ {
			charMap = append(charMap, slot)
		}
		if !seen[run.Kind] {
			seen[run.Kind] = true
			kinds = append(kinds, run.Kind)
		}
		wrote = true
	}

	idx := &PageTextIndex{
		PageNumber:  pageNumber,
		Text:        text.String(),
		CharMap:     charMap,
		SourceKinds: kinds,
	}
	if len(idx.Text) != len(idx.CharMap) {
		return nil, &InternalError{
			Msg: fmt.Sprintf("page %d: text length %d != char map length %d",
				pageNumber, len(idx.Text), len(idx.CharMap)),
		}
	}
	return idx, nil
}
