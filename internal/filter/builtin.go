// internal/filter/builtin.go
package filter

import (
	_ "embed"
	"fmt"
)

// Embedded built-in specification, compiled at startup. Ships with the
// binary so a fresh install filters sensibly before any user document
// exists.
//
//go:embed assets/politics.json
var builtinPolitics []byte

// BuiltinName labels the built-in specification in verdicts.
const BuiltinName = "builtin"

// Builtin compiles the embedded default specification. An error here
// means the shipped asset is broken and the binary cannot be trusted;
// callers treat it as fatal.
func Builtin() (*CompiledSpecification, error) {
	cs, err := Load(builtinPolitics)
	if err != nil {
		return nil, fmt.Errorf("embedded builtin specification: %w", err)
	}
	cs.Name = BuiltinName
	return cs, nil
}
