// Package match scans indexed page text for sensitive-data patterns. Each
// built-in pattern pairs a compiled regular expression with a structural
// validator; matches that fail validation are silently dropped rather than
// surfaced as low-confidence results. Custom user patterns compile through an
// LRU cache and degrade to literal substring search on invalid syntax.
package match

import (
	"regexp"

	"github.com/redactkit/redactkit/observability"
)

// Kind identifies one of the built-in sensitive-data patterns.
type Kind int

const (
	KindSSN Kind = iota
	KindCreditCard
	KindEmail
	KindPhone
	KindDate
)

// Kinds lists every built-in pattern kind.
func Kinds() []Kind {
	return []Kind{KindSSN, KindCreditCard, KindEmail, KindPhone, KindDate}
}

// String returns the pattern identifier used in spans and reports.
func (k Kind) String() string {
	switch k {
	case KindSSN:
		return "ssn"
	case KindCreditCard:
		return "credit-card"
	case KindEmail:
		return "email"
	case KindPhone:
		return "phone"
	case KindDate:
		return "date"
	default:
		return "unknown"
	}
}

// Span is one accepted match: a half-open byte range into the searched text.
type Span struct {
	PatternID string
	Start     int
	End       int
	Text      string
}

// compiledPattern binds a regex to its validator. Built-ins are compiled once
// at matcher construction. standalone rejects matches immediately preceded by
// a digit; it replaces a leading \b for expressions that may start with a +
// after whitespace, where no word boundary exists.
type compiledPattern struct {
	id         string
	re         *regexp.Regexp
	validator  Validator
	standalone bool
}

// Pattern sources. Purely numeric patterns omit (?i); everything else
// matches case-insensitively.
var builtinSpecs = map[Kind]struct {
	expr       string
	validator  Validator
	standalone bool
}{
	KindSSN: {
		expr:      `\b\d{3}[-\s]?\d{2}[-\s]?\d{4}\b`,
		validator: ssnValidator{},
	},
	KindCreditCard: {
		expr:      `\b(?:\d{4}[-\s]?){3}\d{1,4}\b`,
		validator: luhnValidator{},
	},
	KindEmail: {
		expr:      `(?i)\b[a-z0-9._%+\-]+@[a-z0-9.\-]+\.[a-z]{2,}\b`,
		validator: nil,
	},
	KindPhone: {
		expr:       `(?:\+?1[-.\s]?)?\(?\d{3}\)?[-.\s]?\d{3}[-.\s]?\d{4}\b`,
		validator:  phoneValidator{},
		standalone: true,
	},
	KindDate: {
		expr: `(?i)\b(?:\d{1,2}/\d{1,2}/\d{4}|` +
			`(?:january|february|march|april|may|june|july|august|september|october|november|december)` +
			`\s+\d{1,2},\s*\d{4})\b`,
		validator: nil,
	},
}

// Matcher holds the compiled built-in patterns and the custom-pattern cache.
// It is safe for concurrent use; search does not mutate matcher state beyond
// the internal LRU.
type Matcher struct {
	builtins map[Kind]compiledPattern
	customs  *customCache
	maxLen   int
	log      observability.Logger
}

// Option configures a Matcher.
type Option func(*Matcher)

// WithLogger attaches a logger; the default is the nop logger.
func WithLogger(l observability.Logger) Option {
	return func(m *Matcher) { m.log = l }
}

// WithMaxCustomPatternLength bounds the length of accepted custom pattern
// expressions. Longer expressions are truncated before compilation.
func WithMaxCustomPatternLength(n int) Option {
	return func(m *Matcher) { m.maxLen = n }
}

// DefaultMaxCustomPatternLength bounds custom expressions unless overridden.
const DefaultMaxCustomPatternLength = 512

// NewMatcher compiles the built-in pattern table and returns a ready
// matcher. Built-in expressions are vetted constants; compilation failure is
// a programming error and panics.
func NewMatcher(opts ...Option) *Matcher {
	m := &Matcher{
		builtins: make(map[Kind]compiledPattern, len(builtinSpecs)),
		customs:  newCustomCache(),
		maxLen:   DefaultMaxCustomPatternLength,
		log:      observability.NopLogger{},
	}
	for kind, spec := range builtinSpecs {
		m.builtins[kind] = compiledPattern{
			id:         kind.String(),
			re:         regexp.MustCompile(spec.expr),
			validator:  spec.validator,
			standalone: spec.standalone,
		}
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Search scans text with one built-in pattern. Matching is global and
// non-overlapping; spans rejected by the pattern's validator are dropped.
func (m *Matcher) Search(text string, kind Kind) []Span {
	p, ok := m.builtins[kind]
	if !ok {
		return nil
	}
	return m.scan(text, p)
}

// SearchAll scans text with every built-in pattern in declaration order.
func (m *Matcher) SearchAll(text string) []Span {
	var spans []Span
	for _, kind := range Kinds() {
		spans = append(spans, m.Search(text, kind)...)
	}
	return spans
}

func (m *Matcher) scan(text string, p compiledPattern) []Span {
	locs := p.re.FindAllStringIndex(text, -1)
	if len(locs) == 0 {
		return nil
	}
	spans := make([]Span, 0, len(locs))
	rejected := 0
	for _, loc := range locs {
		if p.standalone && loc[0] > 0 && isDigit(text[loc[0]-1]) {
			rejected++
			continue
		}
		matched := text[loc[0]:loc[1]]
		if !accept(p.validator, matched) {
			rejected++
			continue
		}
		spans = append(spans, Span{
			PatternID: p.id,
			Start:     loc[0],
			End:       loc[1],
			Text:      matched,
		})
	}
	if rejected > 0 {
		m.log.Debug("matches rejected by validator",
			observability.String("pattern", p.id),
			observability.Int("rejected", rejected))
	}
	return spans
}

// accept runs a validator as a binary gate. A nil validator accepts
// everything; a panicking validator rejects the match instead of propagating.
func accept(v Validator, matched string) (ok bool) {
	if v == nil {
		return true
	}
	defer func() {
		if recover() != nil {
			ok = false
		}
	}()
	return v.Validate(matched)
}
