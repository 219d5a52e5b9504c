// internal/types/rules.go
package types

/*
 * Domain types for filter specifications.
 *
 * Provides Specification, Rule, Group, and Condition structures used by
 * internal/filter for compilation and evaluation. These types are
 * wire-format agnostic: JSON-to-types conversion happens at the document
 * decode boundary in internal/filter.
 *
 * Key types:
 *   - Specification: versioned document with normalization options and an
 *     ordered rule list (first match wins)
 *   - Rule: one filtering decision unit with an any/all matcher tree
 *   - Group: tagged conjunction/disjunction over Nodes
 *   - Condition: leaf predicate comparing one field against a literal
 *     pattern
 *
 * Node is a closed sum over Condition and Group. The explicit discriminant
 * (GroupKind plus the two concrete Node implementations) replaces the
 * property-presence sniffing the document format itself requires, so the
 * recursive evaluator can switch exhaustively.
 */

// Node is one member of a matcher tree: either a Condition leaf or a
// nested Group. The interface is sealed within this package.
type Node interface {
	node()
}

// Condition is a leaf predicate: does one field's normalized text relate
// to Pattern under Op. Pattern is matched as authored, never normalized,
// so document authors write patterns in lowercase, pre-folded form.
type Condition struct {
	Field   Field
	Op      Op
	Pattern string
}

func (Condition) node() {}

// Group combines an ordered list of nodes under one boolean connective.
// Nesting depth is unbounded; real documents stay at two or three levels.
type Group struct {
	Kind  GroupKind
	Nodes []Node
}

func (Group) node() {}

// Rule is one filtering decision unit. At least one of Any/All is non-nil
// in a valid rule; a non-nil group with zero nodes is legal and evaluates
// by the vacuous-truth rules. When both groups are present Any alone
// decides and All is ignored, mirroring the documented else-if priority of
// the original format.
type Rule struct {
	Name   string // optional label, no semantic effect
	Any    *Group // disjunction matcher, nil when absent from the document
	All    *Group // conjunction matcher, nil when absent from the document
	Action Action
}

// Matcher returns the group that decides this rule: Any when present,
// otherwise All. Nil only for rules that would fail validation.
func (r *Rule) Matcher() *Group {
	if r.Any != nil {
		return r.Any
	}
	return r.All
}

// Options is the normalization configuration of a specification, with
// every default already applied by the document decoder.
type Options struct {
	Normalize       NormalizeMode
	StripDiacritics bool
	MaxBodyChars    int
}

// DefaultOptions returns the options an absent or empty options object
// denotes: full normalization, diacritics stripped, default body cap.
func DefaultOptions() Options {
	return Options{
		Normalize:       NormalizeNFKCCasefold,
		StripDiacritics: true,
		MaxBodyChars:    DefaultMaxBodyChars,
	}
}

// Specification is a parsed filter document. Immutable once compiled;
// evaluation never mutates it and every evaluation against the same
// specification and field values yields the same verdict.
type Specification struct {
	SpecVersion string
	Options     Options
	Rules       []Rule
}
