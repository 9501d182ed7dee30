/*
Copyright © 2025 Acronis International GmbH.

Released under MIT license.
*/

package foamdict

import (
	"errors"
	"fmt"
)

var (
	// ErrUnbalancedBlock is returned when a "{", "(" or "[" is not closed, or a closing one has no opening pair.
	ErrUnbalancedBlock = errors.New("unbalanced block")

	// ErrMissingTerminator is returned when an entry is not terminated with ";".
	ErrMissingTerminator = errors.New(`missing ";"`)

	// ErrUnterminatedString is returned when a quoted string has no closing quote.
	ErrUnterminatedString = errors.New("unterminated string")

	// ErrUnterminatedComment is returned when a block comment has no closing "*/".
	ErrUnterminatedComment = errors.New("unterminated comment")

	// ErrUnexpectedToken is returned when a token cannot start or continue an entry.
	ErrUnexpectedToken = errors.New("unexpected token")
)

var (
	// ErrReferenceNotFound is returned when a reference cannot be resolved in any enclosing scope.
	ErrReferenceNotFound = errors.New("reference not found")

	// ErrReferenceCycle is returned when an entry inherits from itself, directly or through other entries.
	ErrReferenceCycle = errors.New("reference cycle")

	// ErrNotDictionary is returned when a "$name;" entry names a primitive entry.
	ErrNotDictionary = errors.New("not a dictionary")

	// ErrNotPrimitive is returned when a dictionary is substituted into a value next to other tokens.
	ErrNotPrimitive = errors.New("not a primitive entry")
)

// Position is a location in the parsed text.
type Position struct {
	File   string
	Line   int
	Column int
}

// String returns "file:line:column", or "line:column" when the file name is unknown.
func (p Position) String() string {
	if p.File == "" {
		return fmt.Sprintf("%d:%d", p.Line, p.Column)
	}
	return fmt.Sprintf("%s:%d:%d", p.File, p.Line, p.Column)
}

// SyntaxError wraps any parsing error.
type SyntaxError struct {
	Pos Position
	Err error
}

// Error implements "error" interface.
func (e *SyntaxError) Error() string {
	return fmt.Sprintf("%s: %v", e.Pos, e.Err)
}

// Unwrap implements Wrapper interface.
func (e *SyntaxError) Unwrap() error {
	return e.Err
}

func syntaxErrorf(pos Position, sentinel error, format string, args ...any) error {
	if format == "" {
		return &SyntaxError{Pos: pos, Err: sentinel}
	}
	return &SyntaxError{Pos: pos, Err: fmt.Errorf("%w: "+format, append([]any{sentinel}, args...)...)}
}

// ReferenceError is returned when a "$name" reference cannot be resolved.
type ReferenceError struct {
	Name  string
	Scope Path
	Err   error
}

// Error implements "error" interface.
func (e *ReferenceError) Error() string {
	return fmt.Sprintf("resolve $%s in %s: %v", e.Name, e.Scope, e.Err)
}

// Unwrap implements Wrapper interface.
func (e *ReferenceError) Unwrap() error {
	return e.Err
}
