package match

import (
	"context"
	"regexp"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/redactkit/redactkit/observability"
)

// CustomPatternID is the span identifier for user-supplied patterns.
const CustomPatternID = "custom"

// customCacheSize bounds the number of compiled custom expressions kept hot.
const customCacheSize = 128

// CustomPattern is a user-supplied search pattern. Expr is a regular
// expression; if its syntax is invalid the pattern behaves as a literal
// substring search for the exact string supplied. Script optionally attaches
// a JavaScript predicate `validate(match)` run against every raw match.
type CustomPattern struct {
	Expr   string
	Script string
}

type customCache struct {
	cache *lru.Cache[string, *regexp.Regexp]
}

func newCustomCache() *customCache {
	// Cache construction only fails for a non-positive size.
	c, err := lru.New[string, *regexp.Regexp](customCacheSize)
	if err != nil {
		panic(err)
	}
	return &customCache{cache: c}
}

// compile returns the compiled form of expr, consulting the LRU first.
// Invalid syntax falls back to a quoted literal of the exact expression,
// matched case-insensitively like every non-numeric pattern.
func (c *customCache) compile(expr string) *regexp.Regexp {
	if re, ok := c.cache.Get(expr); ok {
		return re
	}
	re, err := regexp.Compile("(?i)" + expr)
	if err != nil {
		re = regexp.MustCompile("(?i)" + regexp.QuoteMeta(expr))
	}
	c.cache.Add(expr, re)
	return re
}

// SearchCustom scans text with a user-supplied pattern. Expressions longer
// than the configured maximum are truncated before compilation. When the
// pattern carries a script validator, matches the script rejects (or fails
// on) are dropped; the context bounds script execution.
func (m *Matcher) SearchCustom(ctx context.Context, text string, pattern CustomPattern) []Span {
	expr := pattern.Expr
	if expr == "" {
		return nil
	}
	if len(expr) > m.maxLen {
		expr = expr[:m.maxLen]
		m.log.Warn("custom pattern truncated",
			observability.Int("max", m.maxLen),
			observability.Int("len", len(pattern.Expr)))
	}
	p := compiledPattern{id: CustomPatternID, re: m.customs.compile(expr)}
	if pattern.Script != "" {
		p.validator = newScriptValidator(ctx, pattern.Script)
	}
	return m.scan(text, p)
}
