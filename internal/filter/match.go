// internal/filter/match.go
package filter

import (
	"regexp"
	"strings"
	"sync"

	"github.com/fedisieve/fedisieve/internal/types"
)

/*
 * Condition matching.
 *
 * Implements the three operators against already-normalized field text:
 *   - exact: string equality
 *   - substring: contiguous containment
 *   - word: whole-word occurrence, bounded by non-word characters
 *
 * Word characters are letters, numbers, combining marks, and connector
 * punctuation (\p{L}\p{N}\p{M}\p{Pc}); RE2 supports Unicode property
 * classes natively, so the ASCII [A-Za-z0-9_] degradation other runtimes
 * need never applies here. Patterns are literal text: QuoteMeta escapes
 * any regex metacharacters before the matcher is built, so rule authors
 * cannot inject regex fragments.
 *
 * Word matchers depend only on the pattern string, so compiled regexes
 * are cached process-wide. The cache is write-once per key: a duplicated
 * compile during a racing first use is wasted work, not a correctness
 * problem.
 *
 * Why function-based: three operators via switch is cleaner than three
 * interface implementations with minimal behavior variation.
 */

// wordBoundary matches any character that does not continue a word.
const wordBoundary = `[^\p{L}\p{N}\p{M}\p{Pc}]`

// wordRegexps caches compiled whole-word matchers keyed by pattern.
var wordRegexps sync.Map // string -> *regexp.Regexp

// wordRegexp returns the whole-word matcher for a literal pattern,
// compiling and caching it on first use. (?i) keeps word matching
// case-insensitive even for patterns authored with uppercase letters.
func wordRegexp(pattern string) *regexp.Regexp {
	if re, ok := wordRegexps.Load(pattern); ok {
		return re.(*regexp.Regexp)
	}
	re := regexp.MustCompile(
		`(?i)(?:\A|` + wordBoundary + `)` + regexp.QuoteMeta(pattern) + `(?:` + wordBoundary + `|\z)`,
	)
	actual, _ := wordRegexps.LoadOrStore(pattern, re)
	return actual.(*regexp.Regexp)
}

// matchCondition evaluates one condition against the normalized value of
// its field. Unknown operators never match; Compile rejects them before
// evaluation, so the default arm is unreachable in practice.
func matchCondition(c types.Condition, value string) bool {
	switch c.Op {
	case types.OpExact:
		return value == c.Pattern
	case types.OpSubstring:
		return strings.Contains(value, c.Pattern)
	case types.OpWord:
		return wordRegexp(c.Pattern).MatchString(value)
	default:
		return false
	}
}
