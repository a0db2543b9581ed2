// Package config provides configuration handling for tagdoc.
package config

import "tagdoc/internal/parser"

// DefaultExtension is the source file extension processed by default.
const DefaultExtension = ".java"

// DefaultOptions returns default run options.
func DefaultOptions() Options {
	return Options{
		Extension: DefaultExtension,
		Recursive: false,
		Locator:   parser.StrategyScanner,
	}
}
