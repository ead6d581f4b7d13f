package formula

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidFormula is matched by every user-input rejection.
	ErrInvalidFormula = errors.New("invalid formula")

	// ErrInconsistent is matched when a validated formula references an
	// element its lookup cannot resolve. It indicates a bug, not bad input.
	ErrInconsistent = errors.New("formula inconsistent with element lookup")
)

// SyntaxError reports a character-level rule violation.
type SyntaxError struct {
	Pos     Position
	Message string
}

func (e *SyntaxError) Error() string {
	if !e.Pos.IsValid() {
		return fmt.Sprintf("syntax error: %s", e.Message)
	}
	return fmt.Sprintf("syntax error at column %d: %s", e.Pos.Column, e.Message)
}

// Is makes SyntaxError match ErrInvalidFormula.
func (e *SyntaxError) Is(target error) bool {
	return target == ErrInvalidFormula
}

// UnknownElementError reports a symbol missing from the element lookup.
type UnknownElementError struct {
	Pos    Position
	Symbol Symbol
}

func (e *UnknownElementError) Error() string {
	return fmt.Sprintf("unknown element %q at column %d", string(e.Symbol), e.Pos.Column)
}

// Is makes UnknownElementError match ErrInvalidFormula.
func (e *UnknownElementError) Is(target error) bool {
	return target == ErrInvalidFormula
}

// InconsistencyError reports an element of an already validated formula that
// the lookup cannot resolve.
type InconsistencyError struct {
	Symbol Symbol
}

func (e *InconsistencyError) Error() string {
	return fmt.Sprintf("%s: no element %q", ErrInconsistent.Error(), string(e.Symbol))
}

// Is makes InconsistencyError match ErrInconsistent.
func (e *InconsistencyError) Is(target error) bool {
	return target == ErrInconsistent
}

// Common error messages
const (
	ErrMsgEmpty           = "empty formula"
	ErrMsgIllegalChar     = "illegal character %q"
	ErrMsgLeadingChar     = "formula must start with an upper-case letter, got %q"
	ErrMsgLeadingZero     = "count %q has a leading zero"
	ErrMsgOrphanCount     = "count %q does not follow an element symbol"
	ErrMsgOrphanLower     = "lower-case %q does not follow an element symbol"
	ErrMsgCountOverflow   = "count %q exceeds %d"
	ErrMsgTotalOverflow   = "total count for %q exceeds %d"
	ErrMsgUnexpectedToken = "unexpected token %s"
)
