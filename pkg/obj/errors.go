package obj

import (
	"errors"
	"fmt"
)

// Parse errors.
var (
	ErrMalformedNumber = errors.New("malformed number")
	ErrTruncatedRecord = errors.New("record has fewer than three values")
	ErrDanglingFace    = errors.New("dangling face reference")
)

// IndexError reports a face index outside the vertex store.
type IndexError struct {
	Index       int // 0-based index
	VertexCount int // vertices declared so far
}

func (e *IndexError) Error() string {
	return fmt.Sprintf("vertex %d referenced but only %d declared", e.Index+1, e.VertexCount)
}

// Unwrap lets errors.Is match ErrDanglingFace.
func (e *IndexError) Unwrap() error {
	return ErrDanglingFace
}

// ParseError locates a parse failure in the input.
type ParseError struct {
	Line  int    // 1-based line number
	Token string // offending token, if any
	Err   error
}

func (e *ParseError) Error() string {
	if e.Token != "" {
		return fmt.Sprintf("line %d: %q: %v", e.Line, e.Token, e.Err)
	}
	return fmt.Sprintf("line %d: %v", e.Line, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}
