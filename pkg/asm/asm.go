// Package asm contains the RV32I assembler.
//
// The assembler reads one base instruction per line and emits one
// 32-bit word per line, in order. Branch and jump targets are literal
// byte offsets relative to the instruction; there are no labels,
// pseudo-instructions, or directives.
package asm

import (
	"context"
	"errors"
	"fmt"
	"io"
)

// Policy tells the assembler what to do after a line fails.
type Policy int

const (
	// PolicyAbort stops after emitting the first error.
	PolicyAbort = Policy(iota)

	// PolicyContinue emits the error and proceeds with the next line.
	PolicyContinue
)

// InstructionOrError contains either an assembled instruction
// or an error that occurred during the assemblation.
type InstructionOrError struct {
	Instruction Instruction
	Word        uint32
	Error       error
	Lineno      int
	Text        string
}

// Encode returns the word as a newline-terminated hex string or the error.
func (ioe InstructionOrError) Encode() (string, error) {
	if ioe.Error != nil {
		return "", ioe.Error
	}
	return FormatWord(ioe.Word) + "\n", nil
}

// FormatWord formats a word as eight lowercase hex digits.
func FormatWord(word uint32) string {
	return fmt.Sprintf("%08x", word)
}

// AssembleLine parses and encodes a single cleaned line. On failure the
// Error field contains a *LineError.
func AssembleLine(lineno int, text string) InstructionOrError {
	ioe := InstructionOrError{Lineno: lineno, Text: text}
	instr, err := ParseInstruction(lineno, text)
	if err != nil {
		ioe.Error = &LineError{Lineno: lineno, Text: text, Err: err}
		return ioe
	}
	ioe.Instruction = instr
	ioe.Word = instr.Encode()
	return ioe
}

// StartAssembler starts the assembler in a background goroutine and
// returns a sequence of InstructionOrError in input order. The channel
// is closed at the end of the input, after the first error when using
// PolicyAbort, or when ctx is done.
func StartAssembler(ctx context.Context, r io.Reader, policy Policy) <-chan InstructionOrError {
	out := make(chan InstructionOrError)
	go AssemblerAsync(ctx, r, policy, out)
	return out
}

// AssemblerAsync runs the assembler. It reads from the input reader
// and it writes InstructionOrError on the output channel.
func AssemblerAsync(ctx context.Context, r io.Reader, policy Policy, out chan<- InstructionOrError) {
	defer close(out)
	ctx, cancel := context.WithCancel(ctx)
	defer cancel() // stops the lexer if we bail early
	for line := range StartLexing(ctx, r) {
		ioe := InstructionOrError{Lineno: line.Lineno, Error: line.Err}
		if line.Err == nil {
			ioe = AssembleLine(line.Lineno, line.Text)
		}
		select {
		case out <- ioe:
		case <-ctx.Done():
			return
		}
		if line.Err != nil || (ioe.Error != nil && policy == PolicyAbort) {
			return
		}
	}
}

// AssembleLines assembles already cleaned lines, numbering them from one.
// With PolicyAbort it returns the words before the first failing line and
// its error. With PolicyContinue it returns the words of all the good
// lines and the errors of the others joined together.
func AssembleLines(lines []string, policy Policy) ([]uint32, error) {
	var (
		words []uint32
		errs  []error
	)
	for idx, text := range lines {
		ioe := AssembleLine(idx+1, text)
		if ioe.Error != nil {
			if policy == PolicyAbort {
				return words, ioe.Error
			}
			errs = append(errs, ioe.Error)
			continue
		}
		words = append(words, ioe.Word)
	}
	return words, errors.Join(errs...)
}
