// Package scan wires the extraction adapters, the character index, the
// pattern matcher, and the rectangle reconstructor into one document-scoped
// scanner. Index construction, search, and reconstruction are synchronous,
// pure operations over materialized input; the only suspension point is the
// OCR recognition call, awaited once per page in strict page order.
package scan

import (
	"context"
	"fmt"
	"regexp"
	"runtime"
	"sort"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/redactkit/redactkit/config"
	"github.com/redactkit/redactkit/glyphs"
	"github.com/redactkit/redactkit/index"
	"github.com/redactkit/redactkit/match"
	"github.com/redactkit/redactkit/observability"
	"github.com/redactkit/redactkit/ocr"
	"github.com/redactkit/redactkit/raster"
	"github.com/redactkit/redactkit/redact"
)

// Scanner owns the text index registry for one open document and exposes
// indexing, search, and candidate reconstruction over it.
type Scanner struct {
	registry *index.Registry
	matcher  *match.Matcher
	recon    redact.Reconstructor
	engine   ocr.Engine
	cfg      config.Config
	log      observability.Logger
	tracer   observability.Tracer
}

// Option configures a Scanner.
type Option func(*Scanner)

// WithEngine overrides the recognition engine. The default is the library
// default engine (Tesseract when the tesseract subpackage is imported).
func WithEngine(e ocr.Engine) Option {
	return func(s *Scanner) { s.engine = e }
}

// WithConfig applies loaded tunables.
func WithConfig(cfg config.Config) Option {
	return func(s *Scanner) { s.cfg = cfg }
}

// WithLogger attaches a logger.
func WithLogger(l observability.Logger) Option {
	return func(s *Scanner) { s.log = l }
}

// WithTracer attaches a tracer.
func WithTracer(t observability.Tracer) Option {
	return func(s *Scanner) { s.tracer = t }
}

// NewScanner creates a scanner with an empty registry. The registry lives
// until the document is closed; reload calls Reset, re-OCR of a single page
// calls Invalidate followed by a fresh indexing pass.
func NewScanner(opts ...Option) *Scanner {
	s := &Scanner{
		registry: index.NewRegistry(),
		engine:   ocr.DefaultEngine(),
		cfg:      config.Default(),
		log:      observability.NopLogger{},
		tracer:   observability.NopTracer(),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.matcher = match.NewMatcher(
		match.WithLogger(s.log),
		match.WithMaxCustomPatternLength(s.cfg.Match.MaxCustomPatternLength),
	)
	s.recon = redact.Reconstructor{ToleranceFraction: s.cfg.Redact.ToleranceFraction}
	return s
}

// Registry exposes the page index store, e.g. for find/highlight
// collaborators needing PageTextIndex.Text and PositionOf.
func (s *Scanner) Registry() *index.Registry { return s.registry }

// Index builds and installs the index for one page from prepared glyph
// runs, replacing any previous index for that page atomically.
func (s *Scanner) Index(pageNumber int, runs []glyphs.Run) error {
	start := time.Now()
	idx, err := index.Build(pageNumber, runs)
	if err != nil {
		return err
	}
	s.registry.Put(idx)
	s.log.Debug("page indexed",
		observability.Int("page", pageNumber),
		observability.Int("chars", len(idx.Text)),
		observability.Float64("seconds", time.Since(start).Seconds()))
	return nil
}

// IndexNative decomposes and indexes a page's native text runs.
func (s *Scanner) IndexNative(pageNumber int, items []glyphs.NativeTextRun) error {
	return s.Index(pageNumber, glyphs.NativeAdapter{}.Runs(items))
}

// IndexOCRResult classifies and indexes a recognition result that was
// obtained out of band.
func (s *Scanner) IndexOCRResult(res ocr.Result) error {
	return s.Index(res.PageNumber, glyphs.OCRAdapter{}.Runs(glyphs.ClassifyOCR(res)))
}

// Recognize runs the OCR pipeline over page images, strictly sequentially,
// and indexes each result. Cancellation is a cooperative check between
// pages: pages indexed before cancellation stay valid, later pages remain
// absent. A page whose recognition yields no usable text still gets an
// empty index so searches on it return zero matches rather than an error.
func (s *Scanner) Recognize(ctx context.Context, pages []raster.PageImage, opts ...ocr.InputOption) error {
	ctx, span := s.tracer.StartSpan(ctx, "scan.recognize")
	defer span.Finish()

	inputOpts := s.inputOptions(opts)
	for _, page := range pages {
		if err := ctx.Err(); err != nil {
			span.SetError(err)
			return err
		}
		if err := s.recognizePage(ctx, page, inputOpts); err != nil {
			span.SetError(err)
			return err
		}
	}
	return nil
}

func (s *Scanner) inputOptions(extra []ocr.InputOption) []ocr.InputOption {
	var opts []ocr.InputOption
	if len(s.cfg.OCR.Languages) > 0 {
		opts = append(opts, ocr.WithLanguages(s.cfg.OCR.Languages...))
	}
	if len(s.cfg.OCR.Variables) > 0 {
		opts = append(opts, ocr.WithMetadata(s.cfg.OCR.Variables))
	}
	return append(opts, extra...)
}

func (s *Scanner) recognizePage(ctx context.Context, page raster.PageImage, opts []ocr.InputOption) error {
	start := time.Now()
	in, err := raster.Prepare(page, s.cfg.OCR.DPI, opts...)
	if err != nil {
		return fmt.Errorf("prepare page %d: %w", page.PageNumber, err)
	}
	res, err := s.engine.Recognize(ctx, in)
	if err != nil {
		// Engine failures abort the pipeline; they are never folded into
		// an empty page index.
		return fmt.Errorf("recognize page %d: %w", page.PageNumber, err)
	}
	res.PageNumber = page.PageNumber
	if res.DPI == 0 {
		res.DPI = in.DPI
	}
	payload := glyphs.ClassifyOCR(res)
	runs := glyphs.OCRAdapter{}.Runs(payload)
	if err := s.Index(page.PageNumber, runs); err != nil {
		return err
	}
	s.log.Info("page recognized",
		observability.Int("page", page.PageNumber),
		observability.Int("words", len(runs)),
		observability.String("engine", s.engine.Name()),
		observability.Float64("seconds", time.Since(start).Seconds()))
	return nil
}

// SearchPage runs one built-in pattern over a page and reconstructs the
// geometry of every accepted match.
func (s *Scanner) SearchPage(pageNumber int, kind match.Kind) ([]redact.Candidate, error) {
	idx, err := s.registry.Get(pageNumber)
	if err != nil {
		return nil, err
	}
	return s.recon.Candidates(idx, s.matcher.Search(idx.Text, kind)), nil
}

// SearchPageAll runs every built-in pattern over a page.
func (s *Scanner) SearchPageAll(pageNumber int) ([]redact.Candidate, error) {
	idx, err := s.registry.Get(pageNumber)
	if err != nil {
		return nil, err
	}
	return s.recon.Candidates(idx, s.matcher.SearchAll(idx.Text)), nil
}

// SearchCustom runs a user-supplied pattern over a page.
func (s *Scanner) SearchCustom(ctx context.Context, pageNumber int, pattern match.CustomPattern) ([]redact.Candidate, error) {
	idx, err := s.registry.Get(pageNumber)
	if err != nil {
		return nil, err
	}
	return s.recon.Candidates(idx, s.matcher.SearchCustom(ctx, idx.Text, pattern)), nil
}

// SearchAll runs every built-in pattern over every indexed page. Pages are
// searched concurrently; search is pure over immutable indices, so the only
// coordination needed is collecting results. Candidates come back ordered by
// page, then by match offset within the page.
func (s *Scanner) SearchAll(ctx context.Context) ([]redact.Candidate, error) {
	pages := s.registry.Pages()
	perPage := make([][]redact.Candidate, len(pages))
	var mu sync.Mutex

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))
	for i, pageNumber := range pages {
		i, pageNumber := i, pageNumber
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			cands, err := s.SearchPageAll(pageNumber)
			if err != nil {
				return err
			}
			mu.Lock()
			perPage[i] = cands
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	var out []redact.Candidate
	for _, cands := range perPage {
		out = append(out, cands...)
	}
	return out, nil
}

// FindText is the plain substring search used by find/highlight
// collaborators. Matching is case-insensitive; spans come back in offset
// order. The query is matched as a quoted literal against the stored text so
// span offsets always address idx.Text, regardless of runes whose case pair
// has a different byte length.
func (s *Scanner) FindText(pageNumber int, query string) ([]match.Span, error) {
	idx, err := s.registry.Get(pageNumber)
	if err != nil {
		return nil, err
	}
	if query == "" {
		return nil, nil
	}
	re := regexp.MustCompile("(?i)" + regexp.QuoteMeta(query))
	var spans []match.Span
	for _, loc := range re.FindAllStringIndex(idx.Text, -1) {
		spans = append(spans, match.Span{
			PatternID: "find",
			Start:     loc[0],
			End:       loc[1],
			Text:      idx.Text[loc[0]:loc[1]],
		})
	}
	return spans, nil
}

// RectsForSpan reconstructs the rectangles covering an arbitrary character
// span, e.g. for rendering find highlights.
func (s *Scanner) RectsForSpan(pageNumber, start, end int) ([]redact.Candidate, error) {
	idx, err := s.registry.Get(pageNumber)
	if err != nil {
		return nil, err
	}
	if start < 0 || end > len(idx.Text) || start >= end {
		return nil, nil
	}
	span := match.Span{PatternID: "span", Start: start, End: end, Text: idx.Text[start:end]}
	return s.recon.Candidates(idx, []match.Span{span}), nil
}

// SortCandidates orders candidates by page, then by matched text. Used by
// reporting.
func SortCandidates(cands []redact.Candidate) {
	sort.SliceStable(cands, func(i, j int) bool {
		if cands[i].PageNumber != cands[j].PageNumber {
			return cands[i].PageNumber < cands[j].PageNumber
		}
		return cands[i].Text < cands[j].Text
	})
}
