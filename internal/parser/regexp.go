package parser

import (
	"regexp"
	"strings"

	"tagdoc/internal/model"
)

var (
	// declPattern matches a declaration run that starts a line: annotations,
	// modifiers, then the type keyword.
	declPattern = regexp.MustCompile(`(?m)^[ \t]*((?:@[\w$.]+(?:[ \t]*\([^)]*\))?\s+)*` +
		`(?:(?:public|protected|private|abstract|static|final|sealed|non-sealed|strictfp)\s+)*` +
		`(class|interface|enum|record|@interface)\b)`)

	// docPattern is lazy so each match stops at the nearest "*/".
	docPattern = regexp.MustCompile(`(?s)/\*\*.*?\*/`)

	// gapPattern accepts the text allowed between a header and its declaration.
	gapPattern = regexp.MustCompile(`^(?:\s|//[^\n]*|(?s:/\*.*?\*/))*$`)
)

// Regexp locates headers with regular expressions. Declarations are only
// recognised at the start of a line, and text inside comments or string
// literals is not excluded, so unusual layouts may bind differently than
// with Scanner.
type Regexp struct{}

// Locate implements Locator.
func (Regexp) Locate(text string) (model.LocateResult, error) {
	m := declPattern.FindStringSubmatchIndex(text)
	if m == nil {
		if unclosedComment(text) {
			return model.LocateResult{}, model.ErrMalformedBlock
		}
		return model.LocateResult{}, model.ErrNoDeclarationFound
	}
	anchor := m[2]
	result := model.LocateResult{
		Anchor:  model.Anchor(anchor),
		Keyword: text[m[4]:m[5]],
	}

	preamble := text[:anchor]
	if unclosedComment(preamble) {
		return model.LocateResult{}, model.ErrMalformedBlock
	}
	docs := docPattern.FindAllStringIndex(preamble, -1)
	if len(docs) == 0 {
		return result, nil
	}
	last := docs[len(docs)-1]
	if gapPattern.MatchString(preamble[last[1]:]) {
		result.Block = &model.DocBlock{
			Start: last[0],
			End:   last[1],
			Raw:   preamble[last[0]:last[1]],
		}
	}
	return result, nil
}

// unclosedComment reports whether the last "/*" in s has no closing "*/".
func unclosedComment(s string) bool {
	i := strings.LastIndex(s, "/*")
	return i >= 0 && !strings.Contains(s[i+2:], "*/")
}
