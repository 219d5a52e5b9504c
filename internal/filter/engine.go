// internal/filter/engine.go
package filter

import (
	"sync/atomic"

	"github.com/fedisieve/fedisieve/internal/types"
)

/*
 * Multi-specification registry.
 *
 * Holds the active set of compiled specifications in caller-defined
 * priority order (built-in first, then user specifications in store
 * order) and returns the first verdict across the set.
 *
 * The set is read-mostly: loaded at startup, replaced only when the user
 * edits custom filters. Each evaluation must observe a consistent
 * snapshot, so updates swap the whole slice reference atomically and
 * never mutate in place. An explicit Engine value replaces the ambient
 * process-wide list the original application kept.
 */

// Engine evaluates records against an ordered set of specifications.
// Safe for concurrent use: Apply readers and Replace writers never block
// each other.
type Engine struct {
	specs atomic.Pointer[[]*CompiledSpecification]
}

// NewEngine creates a registry with an initial specification set.
func NewEngine(specs ...*CompiledSpecification) *Engine {
	e := &Engine{}
	e.Replace(specs)
	return e
}

// Replace atomically swaps the active specification set. The caller must
// not modify the slice afterwards.
func (e *Engine) Replace(specs []*CompiledSpecification) {
	e.specs.Store(&specs)
}

// Snapshot returns the specification set current evaluations see.
func (e *Engine) Snapshot() []*CompiledSpecification {
	return *e.specs.Load()
}

// Apply evaluates the record against every active specification in
// priority order and returns the first verdict, or nil when nothing
// matches anywhere.
func (e *Engine) Apply(values types.FieldValues) *MatchResult {
	for _, cs := range e.Snapshot() {
		if result := cs.Apply(values); result != nil {
			return result
		}
	}
	return nil
}
