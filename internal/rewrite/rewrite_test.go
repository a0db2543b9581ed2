package rewrite

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tagdoc/internal/model"
)

func TestRewriteReplacesBlock(t *testing.T) {
	original := "package x;\n/** Desc */\nclass Foo {}\n"
	start := strings.Index(original, "/**")
	end := start + len("/** Desc */")
	block := &model.DocBlock{Start: start, End: end, Raw: original[start:end]}

	got, err := Rewrite(original, block, model.Anchor(end+1), "/**\n * @since 1.0\nDesc */", "\n")
	require.NoError(t, err)
	assert.Equal(t, "package x;\n/**\n * @since 1.0\nDesc */\nclass Foo {}\n", got)

	// text outside the block is untouched
	assert.True(t, strings.HasPrefix(got, original[:start]))
	assert.True(t, strings.HasSuffix(got, original[end:]))
}

func TestRewriteInsertsAtAnchor(t *testing.T) {
	original := "package x;\nclass Foo"
	anchor := model.Anchor(strings.Index(original, "class"))

	got, err := Rewrite(original, nil, anchor, "/**\n * @author A\n*/", "\n")
	require.NoError(t, err)
	assert.Equal(t, "package x;\n/**\n * @author A\n*/\nclass Foo", got)
}

func TestRewriteUsesNewline(t *testing.T) {
	original := "package x;\r\nclass Foo"
	anchor := model.Anchor(strings.Index(original, "class"))

	got, err := Rewrite(original, nil, anchor, "/**\r\n * @author A\r\n*/", "\r\n")
	require.NoError(t, err)
	assert.Equal(t, "package x;\r\n/**\r\n * @author A\r\n*/\r\nclass Foo", got)
}

func TestRewriteDeterministic(t *testing.T) {
	original := "class Foo {}"
	a, err := Rewrite(original, nil, 0, "/***/", "\n")
	require.NoError(t, err)
	b, err := Rewrite(original, nil, 0, "/***/", "\n")
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

func TestRewriteOutOfRange(t *testing.T) {
	original := "class Foo {}"
	_, err := Rewrite(original, &model.DocBlock{Start: 5, End: 40}, 0, "x", "\n")
	assert.ErrorIs(t, err, model.ErrSpanOutOfRange)

	_, err = Rewrite(original, &model.DocBlock{Start: 6, End: 2}, 0, "x", "\n")
	assert.ErrorIs(t, err, model.ErrSpanOutOfRange)

	_, err = Rewrite(original, nil, 99, "x", "\n")
	assert.ErrorIs(t, err, model.ErrSpanOutOfRange)

	_, err = Rewrite(original, nil, -1, "x", "\n")
	assert.ErrorIs(t, err, model.ErrSpanOutOfRange)
}
