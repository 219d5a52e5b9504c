// internal/filter/compile.go
package filter

import (
	"fmt"
	"regexp"

	"github.com/fedisieve/fedisieve/internal/types"
)

/*
 * Specification compilation and validation.
 *
 * Compiles types.Specification to CompiledSpecification with a bound
 * normalizer and pre-built word matchers, or fails with a ValidationError
 * naming the offending document path.
 *
 * Why compile-time validation: a specification must be wholly valid
 * before it can enter the active set. Moving every structural check here
 * keeps evaluation total: Apply never errors, never panics, always
 * produces a verdict.
 *
 * Rule order is preserved exactly as authored. First match wins is part
 * of the document's semantics, so no cost-based reordering is possible.
 */

// specVersionRe accepts the supported document versions: major 1, any
// minor. A major bump is a semantics change and must be rejected.
var specVersionRe = regexp.MustCompile(`^` + regexp.QuoteMeta(types.SpecVersionPrefix) + `1\.[0-9]+$`)

// CompiledSpecification is a validated specification ready for
// evaluation. Immutable after Compile; safe for concurrent use.
type CompiledSpecification struct {
	// ID is the stored-specification identity, empty for built-in or
	// file-loaded documents.
	ID types.SpecID

	// Name labels the specification in verdicts (store name, file name,
	// or "builtin").
	Name string

	Spec *types.Specification
	norm *Normalizer
}

// Compile validates a parsed specification and prepares it for
// evaluation. All errors unwrap to the sentinel validation errors in
// internal/types.
func Compile(spec *types.Specification) (*CompiledSpecification, error) {
	if !specVersionRe.MatchString(spec.SpecVersion) {
		return nil, types.Invalid("specVersion", types.ErrBadSpecVersion)
	}

	switch spec.Options.Normalize {
	case types.NormalizeNone, types.NormalizeNFKCCasefold:
	default:
		return nil, types.Invalid("options.normalize", types.ErrBadNormalize)
	}
	if spec.Options.MaxBodyChars < 0 {
		return nil, types.Invalid("options.maxBodyChars", types.ErrBadBodyCap)
	}

	if len(spec.Rules) == 0 {
		return nil, types.Invalid("rules", types.ErrNoRules)
	}

	for i := range spec.Rules {
		rule := &spec.Rules[i]
		path := fmt.Sprintf("rules[%d]", i)

		if rule.Any == nil && rule.All == nil {
			return nil, types.Invalid(path, types.ErrRuleNoMatcher)
		}
		if rule.Any != nil {
			if err := validateGroup(rule.Any, path+".any"); err != nil {
				return nil, err
			}
		}
		if rule.All != nil {
			if err := validateGroup(rule.All, path+".all"); err != nil {
				return nil, err
			}
		}
	}

	return &CompiledSpecification{
		Spec: spec,
		norm: NewNormalizer(spec.Options),
	}, nil
}

// Load parses and compiles a JSON filter document in one step.
func Load(data []byte) (*CompiledSpecification, error) {
	spec, err := Parse(data)
	if err != nil {
		return nil, err
	}
	return Compile(spec)
}

// validateGroup checks every node of a matcher tree. Word matchers are
// compiled here so evaluation hits a warm cache.
func validateGroup(g *types.Group, path string) error {
	for i, node := range g.Nodes {
		nodePath := fmt.Sprintf("%s[%d]", path, i)
		switch n := node.(type) {
		case types.Condition:
			if err := validateCondition(n, nodePath); err != nil {
				return err
			}
		case types.Group:
			if err := validateGroup(&n, nodePath); err != nil {
				return err
			}
		}
	}
	return nil
}

func validateCondition(c types.Condition, path string) error {
	switch c.Field {
	case types.FieldTitle, types.FieldBody, types.FieldCommunityName, types.FieldUserName:
	default:
		return types.Invalid(path+".field", types.ErrBadField)
	}

	switch c.Op {
	case types.OpExact, types.OpSubstring, types.OpWord:
	default:
		return types.Invalid(path+".op", types.ErrBadOp)
	}

	if c.Pattern == "" {
		return types.Invalid(path+".pattern", types.ErrEmptyPattern)
	}

	// Pre-build word matchers so evaluation hits a warm cache.
	if c.Op == types.OpWord {
		wordRegexp(c.Pattern)
	}
	return nil
}
