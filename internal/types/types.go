// Package types provides domain models shared across fedisieve components.
//
// Zero-dependency design: types.go, rules.go and errors.go use only the
// standard library so the evaluator can be embedded without pulling in
// storage or CLI dependencies. ID utilities in ids.go import uuid but are
// isolated for selective inclusion.
//
// Separation from the wire format: JSON decoding of filter documents lives
// in internal/filter. This package contains hand-written types for the
// validated, compiled-against model only.
package types

// Field identifies one of the closed set of text sources a condition may
// inspect. String values double as the wire names in the JSON document
// format; ordinal encodings are deliberately avoided because they break
// across schema evolution.
type Field string

const (
	FieldTitle         Field = "title"
	FieldBody          Field = "body"
	FieldCommunityName Field = "community_name"
	FieldUserName      Field = "user_name"
)

// Fields lists every member of the closed field set in declaration order.
var Fields = []Field{FieldTitle, FieldBody, FieldCommunityName, FieldUserName}

// Op identifies a condition operator.
type Op string

const (
	OpExact     Op = "exact"
	OpSubstring Op = "substring"
	OpWord      Op = "word"
)

// NormalizeMode selects the text normalization applied to field values
// before matching.
type NormalizeMode string

const (
	// NormalizeNone lowercases only.
	NormalizeNone NormalizeMode = "none"

	// NormalizeNFKCCasefold lowercases, then applies Unicode compatibility
	// decomposition (NFKD). The wire name is historical; the decomposed
	// form is what diacritic stripping operates on.
	NormalizeNFKCCasefold NormalizeMode = "nfkc_casefold"
)

// Action is the consequence a matched rule requests. Open enum: unknown
// values are carried through for forward compatibility, but only
// ActionHide has defined meaning to callers today.
type Action string

// ActionHide hides the content item from the feed.
const ActionHide Action = "hide"

// GroupKind distinguishes conjunction from disjunction groups.
type GroupKind int

const (
	// GroupAll is a conjunction: every node must match. An empty GroupAll
	// is vacuously true.
	GroupAll GroupKind = iota

	// GroupAny is a disjunction: at least one node must match. An empty
	// GroupAny never matches.
	GroupAny
)

// FieldValues is the flat string record a content item is reduced to
// before evaluation. The engine knows nothing about posts, comments,
// communities or users; callers extract these four fields themselves.
// A missing field is simply the zero value: evaluation stays total.
type FieldValues struct {
	Title         string `json:"title"`
	Body          string `json:"body"`
	CommunityName string `json:"communityName"`
	UserName      string `json:"userName"`
}

// Get returns the raw value for a field. Unknown fields yield the empty
// string rather than an error so evaluation never fails mid-walk.
func (v FieldValues) Get(f Field) string {
	switch f {
	case FieldTitle:
		return v.Title
	case FieldBody:
		return v.Body
	case FieldCommunityName:
		return v.CommunityName
	case FieldUserName:
		return v.UserName
	default:
		return ""
	}
}

const (
	// SpecVersionPrefix is the fixed prefix every supported document
	// version starts with. The full accepted form is
	// "lemmy-filters/1.<minor>"; see filter.Compile.
	SpecVersionPrefix = "lemmy-filters/"

	// DefaultMaxBodyChars caps body text length (in runes) before
	// normalization when the document does not set options.maxBodyChars.
	// Bounds match cost on pathological bodies without affecting titles
	// or names.
	DefaultMaxBodyChars = 50000
)
