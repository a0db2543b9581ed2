// Package rewrite splices a new documentation block into file text.
package rewrite

import (
	"fmt"

	"tagdoc/internal/model"
)

// Rewrite returns original with newRaw in place of block, or, when block is
// nil, with newRaw and a line break inserted at anchor. Text outside the
// replaced range is left byte for byte.
func Rewrite(original string, block *model.DocBlock, anchor model.Anchor, newRaw, newline string) (string, error) {
	if block != nil {
		if block.Start < 0 || block.Start > block.End || block.End > len(original) {
			return "", fmt.Errorf("%w: block [%d,%d) in %d bytes",
				model.ErrSpanOutOfRange, block.Start, block.End, len(original))
		}
		return original[:block.Start] + newRaw + original[block.End:], nil
	}

	at := int(anchor)
	if at < 0 || at > len(original) {
		return "", fmt.Errorf("%w: anchor %d in %d bytes", model.ErrSpanOutOfRange, at, len(original))
	}
	if newline == "" {
		newline = "\n"
	}
	return original[:at] + newRaw + newline + original[at:], nil
}
