// Package doctag inspects documentation blocks for marker tags and inserts
// the missing ones.
package doctag

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"tagdoc/internal/model"
)

// emptyBlock is synthesised when a declaration has no header.
const emptyBlock = "/***/"

var markerPattern = regexp.MustCompile(`^@[A-Za-z]+$`)

// ValidName reports whether name is a bare tag name ("since", not "@since").
func ValidName(name string) bool {
	return markerPattern.MatchString("@" + name)
}

// HasTag reports whether block already carries the marker tag (e.g. "@since").
// A nil block has no tags.
func HasTag(block *model.DocBlock, tag string) (bool, error) {
	if !markerPattern.MatchString(tag) {
		return false, fmt.Errorf("%w: %q", model.ErrInvalidTagFormat, tag)
	}
	if block == nil {
		return false, nil
	}
	raw := block.Raw
	for {
		i := strings.Index(raw, tag)
		if i < 0 {
			return false, nil
		}
		next := i + len(tag)
		if next >= len(raw) || !isLetter(raw[next]) {
			return true, nil
		}
		raw = raw[next:]
	}
}

// Missing returns the tags not yet present in block, preserving order. A tag
// with an invalid name is left out of the result and reported in the joined
// error; the remaining tags are still checked.
func Missing(block *model.DocBlock, tags []model.Tag) ([]model.Tag, error) {
	var missing []model.Tag
	var errs []error
	for _, t := range tags {
		has, err := HasTag(block, t.Marker())
		if err != nil {
			errs = append(errs, err)
			continue
		}
		if !has {
			missing = append(missing, t)
		}
	}
	return missing, errors.Join(errs...)
}

// Insert returns the block text with one line per tag inserted right after
// the opening delimiter, in the order given. A nil block is synthesised as an
// empty one. The boolean is false when tags is empty; the caller should then
// leave the file alone.
func Insert(block *model.DocBlock, tags []model.Tag, newline string) (string, bool) {
	if len(tags) == 0 {
		return "", false
	}
	if newline == "" {
		newline = "\n"
	}
	raw := emptyBlock
	if block != nil {
		raw = block.Raw
	}

	rest := strings.TrimLeft(raw[len("/**"):], " \t")
	switch {
	case strings.HasPrefix(rest, "\r\n"):
		rest = rest[2:]
	case strings.HasPrefix(rest, "\n"):
		rest = rest[1:]
	}

	var b strings.Builder
	b.WriteString("/**")
	for _, t := range tags {
		b.WriteString(newline)
		b.WriteString(t.Line())
	}
	b.WriteString(newline)
	b.WriteString(rest)
	return b.String(), true
}

func isLetter(c byte) bool {
	return ('a' <= c && c <= 'z') || ('A' <= c && c <= 'Z')
}
