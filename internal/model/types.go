// Package model defines the values passed between the locator, the tag
// helpers and the rewriter.
package model

import "strings"

// DocBlock is a located /** ... */ block.
type DocBlock struct {
	Start int    // Offset of the opening "/**"
	End   int    // Offset just past the closing "*/"
	Raw   string // Block text including delimiters
}

// Anchor is the offset where the type declaration begins. When no DocBlock
// binds to the declaration, a new block is inserted here.
type Anchor int

// LocateResult is the outcome of locating the documentation header.
// Block is nil when the declaration has no header.
type LocateResult struct {
	Block   *DocBlock // Header bound to the declaration (nil if none)
	Anchor  Anchor    // Start of the declaration run
	Keyword string    // Declaration keyword (e.g., "class")
}

// Found reports whether a header was located.
func (r LocateResult) Found() bool {
	return r.Block != nil
}

// Tag is a marker tag to inject, e.g. {Name: "since", Value: "1.0"}.
type Tag struct {
	Name  string `yaml:"name" json:"name" toml:"name"`
	Value string `yaml:"value" json:"value" toml:"value"`
}

// Marker returns the sigil-prefixed form of the tag name ("@since").
func (t Tag) Marker() string {
	return "@" + t.Name
}

// Line returns the Javadoc line for the tag, without a line break.
func (t Tag) Line() string {
	return " * " + t.Marker() + " " + t.Value
}

// Status is the outcome of processing one file.
type Status string

const (
	StatusModified  Status = "modified"
	StatusUnchanged Status = "unchanged"
	StatusSkipped   Status = "skipped"
	StatusFailed    Status = "failed"
)

// DetectNewline returns the line break style of text: "\r\n" when the
// first line break is CRLF, "\n" otherwise.
func DetectNewline(text string) string {
	i := strings.IndexByte(text, '\n')
	if i > 0 && text[i-1] == '\r' {
		return "\r\n"
	}
	return "\n"
}
