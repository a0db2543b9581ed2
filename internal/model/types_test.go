package model

import (
	"errors"
	"io/fs"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTagLine(t *testing.T) {
	tag := Tag{Name: "since", Value: "1.0"}
	assert.Equal(t, "@since", tag.Marker())
	assert.Equal(t, " * @since 1.0", tag.Line())
}

func TestDetectNewline(t *testing.T) {
	assert.Equal(t, "\n", DetectNewline("package x;\nclass Foo {}"))
	assert.Equal(t, "\r\n", DetectNewline("package x;\r\nclass Foo {}"))
	assert.Equal(t, "\n", DetectNewline("class Foo {}"))
	assert.Equal(t, "\n", DetectNewline("\nclass Foo {}"))
}

func TestIOErrorMatching(t *testing.T) {
	err := error(&IOError{Op: "read", Path: "Foo.java", Err: fs.ErrNotExist})
	assert.True(t, errors.Is(err, ErrIO))
	assert.True(t, errors.Is(err, fs.ErrNotExist))
	assert.False(t, errors.Is(err, ErrMalformedBlock))
	assert.Equal(t, "read Foo.java: file does not exist", err.Error())
}
