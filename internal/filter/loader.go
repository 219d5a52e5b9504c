// internal/filter/loader.go
package filter

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

/*
 * Directory loader.
 *
 * Loads every *.json document under one directory into compiled
 * specifications, in lexical file-name order for deterministic priority.
 * Any invalid document fails the whole load: a partially valid set must
 * never become active, so there is no best-effort mode.
 */

// LoadDir compiles every .json specification file in dir. A missing
// directory yields an empty set, not an error, so the setting can stay
// unset. File names (without extension) become specification names.
func LoadDir(dir string) ([]*CompiledSpecification, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("read specification directory: %w", err)
	}

	var names []string
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".json") {
			continue
		}
		names = append(names, entry.Name())
	}
	sort.Strings(names)

	specs := make([]*CompiledSpecification, 0, len(names))
	for _, name := range names {
		path := filepath.Join(dir, name)
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", path, err)
		}
		cs, err := Load(data)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
		cs.Name = strings.TrimSuffix(name, ".json")
		specs = append(specs, cs)
	}

	return specs, nil
}
