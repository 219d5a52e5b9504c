// internal/filter/normalize.go
package filter

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"github.com/fedisieve/fedisieve/internal/types"
)

/*
 * Text normalization.
 *
 * Field values pass through here exactly once per evaluation, before any
 * condition is matched. Steps, in order:
 *   1. lowercase
 *   2. NFKD compatibility decomposition (mode nfkc_casefold only)
 *   3. strip combining diacritical marks U+0300..U+036F (stripDiacritics)
 *
 * The pipeline is idempotent: normalizing already-normalized text is a
 * no-op, which the round-trip property tests rely on. Patterns are NOT
 * normalized anywhere; authors write them pre-folded.
 *
 * The body field is additionally capped at maxBodyChars runes before
 * normalization to bound match cost on pathological bodies.
 */

// combiningDiacritics covers the Combining Diacritical Marks block,
// U+0300..U+036F. Deliberately narrower than unicode.Mn: marks outside
// this block (e.g. Hebrew points) are left alone.
var combiningDiacritics = &unicode.RangeTable{
	R16: []unicode.Range16{{Lo: 0x0300, Hi: 0x036F, Stride: 1}},
}

// Normalizer applies one specification's normalization options. Stateless
// after construction and safe for concurrent use.
type Normalizer struct {
	mode         types.NormalizeMode
	strip        bool
	maxBodyChars int
}

// NewNormalizer builds a Normalizer from specification options.
func NewNormalizer(opts types.Options) *Normalizer {
	return &Normalizer{
		mode:         opts.Normalize,
		strip:        opts.StripDiacritics,
		maxBodyChars: opts.MaxBodyChars,
	}
}

// Normalize canonicalizes a single field value.
func (n *Normalizer) Normalize(s string) string {
	s = strings.ToLower(s)
	if n.mode == types.NormalizeNFKCCasefold {
		s = norm.NFKD.String(s)
	}
	if n.strip {
		// Transformers are stateful; build per call rather than sharing.
		out, _, err := transform.String(runes.Remove(runes.In(combiningDiacritics)), s)
		if err == nil {
			s = out
		}
	}
	return s
}

// Record normalizes all four fields of a record, capping the body first.
func (n *Normalizer) Record(v types.FieldValues) types.FieldValues {
	return types.FieldValues{
		Title:         n.Normalize(v.Title),
		Body:          n.Normalize(truncateRunes(v.Body, n.maxBodyChars)),
		CommunityName: n.Normalize(v.CommunityName),
		UserName:      n.Normalize(v.UserName),
	}
}

// truncateRunes cuts s after max runes without splitting a UTF-8 sequence.
func truncateRunes(s string, max int) string {
	if max < 0 || utf8.RuneCountInString(s) <= max {
		return s
	}
	count := 0
	for i := range s {
		if count == max {
			return s[:i]
		}
		count++
	}
	return s
}
