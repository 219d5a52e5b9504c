// internal/filter/document.go
package filter

import (
	"encoding/json"
	"fmt"
	"math"

	"github.com/fedisieve/fedisieve/internal/types"
)

/*
 * Filter document decoding.
 *
 * Converts the JSON interchange format into types.Specification. The wire
 * format discriminates condition-vs-group entries by key presence ("any"/
 * "all" make an entry a nested group), so discrimination happens here, at
 * the decode boundary, and nowhere else: past this file the tree is a
 * tagged sum the evaluator can switch over exhaustively.
 *
 * Decoding is structural only. Value-level validation (version pattern,
 * field/op membership, pattern non-emptiness, rule matcher presence) is
 * Compile's job; the exceptions are term-shape ambiguity and
 * maxBodyChars integrality, which only exist at the wire level.
 *
 * Presence matters: a rule with "any": [] is valid and never matches,
 * while a rule without "any" falls back to "all". Pointer-typed document
 * fields keep absent and empty distinguishable.
 */

type specDoc struct {
	SpecVersion string      `json:"specVersion"`
	Options     *optionsDoc `json:"options"`
	Rules       []ruleDoc   `json:"rules"`
}

type optionsDoc struct {
	Normalize       *string  `json:"normalize"`
	StripDiacritics *bool    `json:"stripDiacritics"`
	MaxBodyChars    *float64 `json:"maxBodyChars"`
}

type ruleDoc struct {
	Name   string     `json:"name"`
	Any    *[]termDoc `json:"any"`
	All    *[]termDoc `json:"all"`
	Action string     `json:"action"`
}

// termDoc is one entry of an any/all list: either a condition (field, op,
// pattern) or a nested group carrying exactly one of any/all.
type termDoc struct {
	Field   *string    `json:"field"`
	Op      *string    `json:"op"`
	Pattern *string    `json:"pattern"`
	Any     *[]termDoc `json:"any"`
	All     *[]termDoc `json:"all"`
}

// Parse decodes a JSON filter document into a Specification with option
// defaults applied. The result still requires Compile before evaluation;
// all errors are ValidationErrors.
func Parse(data []byte) (*types.Specification, error) {
	var doc specDoc
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, types.Invalid("", fmt.Errorf("malformed JSON: %w", err))
	}

	opts, err := decodeOptions(doc.Options)
	if err != nil {
		return nil, err
	}

	spec := &types.Specification{
		SpecVersion: doc.SpecVersion,
		Options:     opts,
		Rules:       make([]types.Rule, 0, len(doc.Rules)),
	}

	for i, rd := range doc.Rules {
		rule, err := decodeRule(rd, fmt.Sprintf("rules[%d]", i))
		if err != nil {
			return nil, err
		}
		spec.Rules = append(spec.Rules, rule)
	}

	return spec, nil
}

func decodeOptions(od *optionsDoc) (types.Options, error) {
	opts := types.DefaultOptions()
	if od == nil {
		return opts, nil
	}
	if od.Normalize != nil {
		opts.Normalize = types.NormalizeMode(*od.Normalize)
	}
	if od.StripDiacritics != nil {
		opts.StripDiacritics = *od.StripDiacritics
	}
	if od.MaxBodyChars != nil {
		cap := *od.MaxBodyChars
		// JSON numbers arrive as float64; 12.5 is not a valid cap. The
		// upper bound keeps the int conversion exact on every platform;
		// no real body approaches 2^31 runes.
		if cap != math.Trunc(cap) || cap < 0 || cap > math.MaxInt32 {
			return opts, types.Invalid("options.maxBodyChars", types.ErrBadBodyCap)
		}
		opts.MaxBodyChars = int(cap)
	}
	return opts, nil
}

func decodeRule(rd ruleDoc, path string) (types.Rule, error) {
	rule := types.Rule{
		Name:   rd.Name,
		Action: types.Action(rd.Action),
	}
	if rule.Action == "" {
		rule.Action = types.ActionHide
	}

	if rd.Any != nil {
		g, err := decodeGroup(types.GroupAny, *rd.Any, path+".any")
		if err != nil {
			return rule, err
		}
		rule.Any = g
	}
	if rd.All != nil {
		g, err := decodeGroup(types.GroupAll, *rd.All, path+".all")
		if err != nil {
			return rule, err
		}
		rule.All = g
	}

	return rule, nil
}

func decodeGroup(kind types.GroupKind, terms []termDoc, path string) (*types.Group, error) {
	g := &types.Group{Kind: kind, Nodes: make([]types.Node, 0, len(terms))}
	for i, td := range terms {
		node, err := decodeTerm(td, fmt.Sprintf("%s[%d]", path, i))
		if err != nil {
			return nil, err
		}
		g.Nodes = append(g.Nodes, node)
	}
	return g, nil
}

func decodeTerm(td termDoc, path string) (types.Node, error) {
	isGroup := td.Any != nil || td.All != nil
	isCond := td.Field != nil || td.Op != nil || td.Pattern != nil

	switch {
	case isGroup && isCond:
		return nil, types.Invalid(path, types.ErrAmbiguousTerm)
	case td.Any != nil && td.All != nil:
		return nil, types.Invalid(path, types.ErrAmbiguousTerm)
	case td.Any != nil:
		g, err := decodeGroup(types.GroupAny, *td.Any, path+".any")
		if err != nil {
			return nil, err
		}
		return *g, nil
	case td.All != nil:
		g, err := decodeGroup(types.GroupAll, *td.All, path+".all")
		if err != nil {
			return nil, err
		}
		return *g, nil
	default:
		cond := types.Condition{}
		if td.Field != nil {
			cond.Field = types.Field(*td.Field)
		}
		if td.Op != nil {
			cond.Op = types.Op(*td.Op)
		}
		if td.Pattern != nil {
			cond.Pattern = *td.Pattern
		}
		return cond, nil
	}
}
