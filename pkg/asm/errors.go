package asm

import (
	"errors"
	"fmt"
)

// The following errors classify why a line could not be assembled.
var (
	// ErrUnknownMnemonic indicates that the mnemonic is not in any family table.
	ErrUnknownMnemonic = errors.New("asm: unknown mnemonic")

	// ErrUnknownRegister indicates that a register token is neither an
	// xN name nor an ABI alias.
	ErrUnknownRegister = errors.New("asm: unknown register")

	// ErrMalformedOffset indicates that a load/store operand does not
	// look like offset(base).
	ErrMalformedOffset = errors.New("asm: malformed offset")

	// ErrMalformedImmediate indicates a non-numeric immediate.
	ErrMalformedImmediate = errors.New("asm: malformed immediate")

	// ErrOperandCount indicates the wrong number of operands for the family.
	ErrOperandCount = errors.New("asm: wrong number of operands")
)

// LineError is an error that occurred while assembling a specific line.
type LineError struct {
	Lineno int    // 1-based line number in the input
	Text   string // the cleaned line
	Err    error  // wraps one of the Err* kinds above
}

// Error implements error.Error
func (le *LineError) Error() string {
	return fmt.Sprintf("line %d: %q: %s", le.Lineno, le.Text, le.Err.Error())
}

// Unwrap allows errors.Is to match the error kind.
func (le *LineError) Unwrap() error {
	return le.Err
}
