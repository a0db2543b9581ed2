// Package parser locates the documentation header of the first top-level
// type declaration in a Java source file.
//
// Two strategies are provided. Scanner is a small lexer that understands
// comments, string literals and annotations; Regexp uses lazy pattern
// matching. Both satisfy Locator, so callers can swap them freely.
package parser

import (
	"fmt"

	"tagdoc/internal/model"
)

// Locator finds the documentation block bound to the first type declaration.
//
// Locate returns model.ErrNoDeclarationFound when the text declares no type
// and model.ErrMalformedBlock when a comment is never closed.
type Locator interface {
	Locate(text string) (model.LocateResult, error)
}

// Strategy names accepted by New.
const (
	StrategyScanner = "scanner"
	StrategyRegexp  = "regexp"
)

// New returns the Locator for the named strategy. An empty name selects the
// scanner.
func New(strategy string) (Locator, error) {
	switch strategy {
	case "", StrategyScanner:
		return Scanner{}, nil
	case StrategyRegexp:
		return Regexp{}, nil
	default:
		return nil, fmt.Errorf("unknown locator %q", strategy)
	}
}

// Locate runs the default strategy.
func Locate(text string) (model.LocateResult, error) {
	return Scanner{}.Locate(text)
}

// modifiers may appear between a header and its declaration keyword.
var modifiers = map[string]bool{
	"public":     true,
	"protected":  true,
	"private":    true,
	"abstract":   true,
	"static":     true,
	"final":      true,
	"sealed":     true,
	"non-sealed": true,
	"strictfp":   true,
}

// typeKeywords start a type declaration. "@interface" is handled separately.
var typeKeywords = map[string]bool{
	"class":     true,
	"interface": true,
	"enum":      true,
	"record":    true,
}
