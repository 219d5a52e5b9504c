// internal/filter/evaluate.go
package filter

import (
	"github.com/fedisieve/fedisieve/internal/types"
)

/*
 * Specification evaluation.
 *
 * Evaluates a compiled specification against one field-value record:
 * normalize the four fields once, walk rules in declared order, return
 * the first rule whose matcher tree evaluates true, or nil.
 *
 * Tree semantics:
 *   - all: every node must match; an empty list is vacuously true
 *   - any: at least one node must match; an empty list never matches
 *   - a rule carrying both lists is decided by any alone
 *
 * Both connectives short-circuit. Conditions are side-effect free, so
 * early exit cannot change the verdict.
 *
 * Evaluation is total and pure: no errors, no I/O, no state between
 * calls. Recursion depth equals document nesting depth, which real
 * documents keep at two or three levels.
 */

// MatchResult describes the first rule a record matched.
type MatchResult struct {
	SpecID    types.SpecID
	SpecName  string
	RuleName  string
	RuleIndex int
	Action    types.Action
	Rule      *types.Rule
}

// Apply finds the first rule of this specification matching the record.
// Returns nil when no rule matches; "no match" is a verdict, not an error.
func (cs *CompiledSpecification) Apply(values types.FieldValues) *MatchResult {
	normalized := cs.norm.Record(values)

	for i := range cs.Spec.Rules {
		rule := &cs.Spec.Rules[i]
		if evalGroup(rule.Matcher(), normalized) {
			return &MatchResult{
				SpecID:    cs.ID,
				SpecName:  cs.Name,
				RuleName:  rule.Name,
				RuleIndex: i,
				Action:    rule.Action,
				Rule:      rule,
			}
		}
	}
	return nil
}

func evalGroup(g *types.Group, v types.FieldValues) bool {
	switch g.Kind {
	case types.GroupAny:
		for _, node := range g.Nodes {
			if evalNode(node, v) {
				return true
			}
		}
		return false
	default: // GroupAll
		for _, node := range g.Nodes {
			if !evalNode(node, v) {
				return false
			}
		}
		return true
	}
}

func evalNode(node types.Node, v types.FieldValues) bool {
	switch n := node.(type) {
	case types.Condition:
		return matchCondition(n, v.Get(n.Field))
	case types.Group:
		return evalGroup(&n, v)
	default:
		return false
	}
}
