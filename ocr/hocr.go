package ocr

import (
	"fmt"
	"strconv"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// hOCR class names emitted by Tesseract.
const (
	hocrBlock = "ocr_carea"
	hocrPar   = "ocr_par"
	hocrLine  = "ocr_line"
	hocrWord  = "ocrx_word"
)

// ParseHOCR parses an hOCR document into the structured result hierarchy.
// Word boxes come from the bbox property and word confidence from x_wconf
// (0–100, normalized to 0–1). Elements without a parsable bbox are skipped.
func ParseHOCR(source string) ([]Block, error) {
	doc, err := html.Parse(strings.NewReader(source))
	if err != nil {
		return nil, fmt.Errorf("parse hocr: %w", err)
	}
	var blocks []Block
	walkHOCR(doc, func(n *html.Node) {
		if b, ok := parseBlock(n); ok {
			blocks = append(blocks, b)
		}
	})
	return blocks, nil
}

// walkHOCR visits every ocr_carea node in document order. Nested careas do
// not occur in Tesseract output, so traversal stops at a matched node.
func walkHOCR(n *html.Node, visit func(*html.Node)) {
	if n.Type == html.ElementNode && hasClass(n, hocrBlock) {
		visit(n)
		return
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		walkHOCR(c, visit)
	}
}

func parseBlock(n *html.Node) (Block, bool) {
	block := Block{Bounds: bboxOf(n)}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type != html.ElementNode {
			continue
		}
		if c.DataAtom == atom.P && hasClass(c, hocrPar) {
			if p, ok := parseParagraph(c); ok {
				block.Paragraphs = append(block.Paragraphs, p)
			}
		}
	}
	if len(block.Paragraphs) == 0 {
		return Block{}, false
	}
	return block, true
}

func parseParagraph(n *html.Node) (Paragraph, bool) {
	par := Paragraph{Bounds: bboxOf(n)}
	forEachElement(n, func(c *html.Node) {
		if hasClass(c, hocrLine) {
			if l, ok := parseLine(c); ok {
				par.Lines = append(par.Lines, l)
			}
		}
	})
	if len(par.Lines) == 0 {
		return Paragraph{}, false
	}
	return par, true
}

func parseLine(n *html.Node) (Line, bool) {
	line := Line{Bounds: bboxOf(n)}
	var texts []string
	var confSum float64
	forEachElement(n, func(c *html.Node) {
		if !hasClass(c, hocrWord) {
			return
		}
		text := strings.TrimSpace(textContent(c))
		if text == "" {
			return
		}
		w := Word{
			Text:       text,
			Bounds:     bboxOf(c),
			Confidence: wordConfidence(c),
		}
		line.Words = append(line.Words, w)
		texts = append(texts, text)
		confSum += w.Confidence
	})
	if len(line.Words) == 0 {
		return Line{}, false
	}
	line.Text = strings.Join(texts, " ")
	line.Confidence = confSum / float64(len(line.Words))
	return line, true
}

// forEachElement calls fn for every descendant element of n in document
// order, without descending below line or word spans: their children are
// consumed by the dedicated parse functions.
func forEachElement(n *html.Node, fn func(*html.Node)) {
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.ElementNode {
			fn(c)
			if hasClass(c, hocrLine) || hasClass(c, hocrWord) {
				continue
			}
		}
		forEachElement(c, fn)
	}
}

func hasClass(n *html.Node, class string) bool {
	for _, a := range n.Attr {
		if a.Key != "class" {
			continue
		}
		for _, c := range strings.Fields(a.Val) {
			if c == class {
				return true
			}
		}
	}
	return false
}

func attr(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}

// bboxOf extracts the "bbox x0 y0 x1 y1" property from an hOCR title
// attribute. A missing or malformed bbox yields the empty region.
func bboxOf(n *html.Node) Region {
	for _, prop := range strings.Split(attr(n, "title"), ";") {
		fields := strings.Fields(strings.TrimSpace(prop))
		if len(fields) != 5 || fields[0] != "bbox" {
			continue
		}
		vals := make([]float64, 4)
		ok := true
		for i, f := range fields[1:] {
			v, err := strconv.ParseFloat(f, 64)
			if err != nil {
				ok = false
				break
			}
			vals[i] = v
		}
		if !ok {
			continue
		}
		return Region{X: vals[0], Y: vals[1], Width: vals[2] - vals[0], Height: vals[3] - vals[1]}
	}
	return Region{}
}

func wordConfidence(n *html.Node) float64 {
	for _, prop := range strings.Split(attr(n, "title"), ";") {
		fields := strings.Fields(strings.TrimSpace(prop))
		if len(fields) == 2 && fields[0] == "x_wconf" {
			if v, err := strconv.ParseFloat(fields[1], 64); err == nil {
				return v / 100.0
			}
		}
	}
	return 0
}

func textContent(n *html.Node) string {
	if n.Type == html.TextNode {
		return n.Data
	}
	var sb strings.Builder
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		sb.WriteString(textContent(c))
	}
	return sb.String()
}
