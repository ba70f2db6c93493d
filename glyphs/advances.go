package glyphs

import (
	"bytes"
	"errors"
	"sort"

	"github.com/go-text/typesetting/di"
	gofont "github.com/go-text/typesetting/font"
	"github.com/go-text/typesetting/language"
	"github.com/go-text/typesetting/shaping"
	"golang.org/x/image/math/fixed"
)

// ShapeAdvances recovers per-rune display widths by shaping text against an
// embedded TrueType font at the given size. Ligatures and other multi-rune
// clusters have their advance split evenly across the cluster's runes, so the
// result always has exactly one entry per rune of text.
func ShapeAdvances(text string, fontData []byte, size float64) ([]float64, error) {
	if len(fontData) == 0 {
		return nil, errors.New("no font data")
	}
	runes := []rune(text)
	if len(runes) == 0 {
		return nil, nil
	}
	face, err := gofont.ParseTTF(bytes.NewReader(fontData))
	if err != nil {
		return nil, err
	}

	shaper := &shaping.HarfbuzzShaper{}
	input := shaping.Input{
		Text:      runes,
		RunStart:  0,
		RunEnd:    len(runes),
		Direction: di.DirectionLTR,
		Face:      face,
		Size:      fixed.Int26_6(size * 64),
		Script:    language.Latin,
		Language:  language.DefaultLanguage(),
	}
	output := shaper.Shape(input)

	// Sum the shaped advances per cluster start index.
	clusterAdvance := make(map[int]float64, len(output.Glyphs))
	for _, g := range output.Glyphs {
		clusterAdvance[int(g.ClusterIndex)] += float64(g.XAdvance) / 64.0
	}

	advances := make([]float64, len(runes))
	starts := clusterStarts(clusterAdvance, len(runes))
	for i, start := range starts {
		end := len(runes)
		if i+1 < len(starts) {
			end = starts[i+1]
		}
		per := clusterAdvance[start] / float64(end-start)
		for j := start; j < end; j++ {
			advances[j] = per
		}
	}
	return advances, nil
}

func clusterStarts(clusters map[int]float64, n int) []int {
	starts := make([]int, 0, len(clusters))
	for idx := range clusters {
		if idx >= 0 && idx < n {
			starts = append(starts, idx)
		}
	}
	sort.Ints(starts)
	if len(starts) == 0 || starts[0] != 0 {
		starts = append([]int{0}, starts...)
	}
	return starts
}
