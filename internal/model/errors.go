package model

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidTagFormat is returned when a tag name is not "@" followed by letters.
	ErrInvalidTagFormat = errors.New("invalid tag format")
	// ErrNoDeclarationFound is returned when a file has no type declaration.
	ErrNoDeclarationFound = errors.New("no type declaration found")
	// ErrMalformedBlock is returned when a comment is opened but never closed.
	ErrMalformedBlock = errors.New("malformed documentation block")
	// ErrSpanOutOfRange is returned when a splice range does not fit the text.
	ErrSpanOutOfRange = errors.New("span out of range")
	// ErrIO matches every *IOError.
	ErrIO = errors.New("i/o failure")
)

// IOError records a failed read or write of a source file.
type IOError struct {
	Op   string // "read" or "write"
	Path string
	Err  error
}

func (e *IOError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
}

func (e *IOError) Unwrap() error { return e.Err }

// Is lets errors.Is(err, ErrIO) match any IOError.
func (e *IOError) Is(target error) bool {
	return target == ErrIO
}
