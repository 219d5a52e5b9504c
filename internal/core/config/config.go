// Package config provides configuration management for fedisieve commands.
package config

import (
	"time"
)

// Config holds settings for the CLI and the specification store. The
// filter engine itself takes no configuration beyond what each document
// carries.
type Config struct {
	// DatabaseURL is the specification store connection URL
	// (sqlite://path or postgres://...). Required only by store-backed
	// commands.
	DatabaseURL string

	// SpecDir is an optional directory of *.json specification files
	// loaded after the built-in specification.
	SpecDir string

	// BuiltinEnabled controls whether the embedded default specification
	// joins the active set.
	BuiltinEnabled bool

	// QueryTimeout bounds individual store queries.
	QueryTimeout time.Duration
}

// Default returns configuration with default values.
func Default() *Config {
	return &Config{
		DatabaseURL:    "",
		SpecDir:        "",
		BuiltinEnabled: true,
		QueryTimeout:   5 * time.Second,
	}
}
