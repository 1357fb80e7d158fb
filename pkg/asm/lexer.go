package asm

import (
	"bufio"
	"context"
	"errors"
	"io"
	"strings"
)

// Line is a cleaned input line, or an error that occurred reading
// the input. Lineno is 1-based and refers to the raw input.
type Line struct {
	Lineno int
	Text   string
	Err    error
}

// CleanLine removes the comment and the surrounding whitespace from a
// raw line. The result is empty for blank and comment-only lines.
func CleanLine(raw string) string {
	if index := strings.Index(raw, "#"); index >= 0 {
		raw = raw[:index]
	}
	return strings.TrimSpace(raw)
}

// StartLexing starts a goroutine reading r and returns the channel
// where cleaned, non-empty lines are posted. The channel is closed
// when the input is exhausted, after a read error, or when ctx is done.
func StartLexing(ctx context.Context, r io.Reader) <-chan Line {
	out := make(chan Line)
	go LexerAsync(ctx, r, out)
	return out
}

// LexerAsync is the body of StartLexing. Lines may be arbitrarily long.
func LexerAsync(ctx context.Context, r io.Reader, out chan<- Line) {
	defer close(out)
	reader := bufio.NewReader(r)
	var lineno int
	for {
		raw, err := reader.ReadString('\n')
		if raw != "" {
			lineno++
			if text := CleanLine(raw); text != "" {
				select {
				case out <- Line{Lineno: lineno, Text: text}:
				case <-ctx.Done():
					return
				}
			}
		}
		if errors.Is(err, io.EOF) {
			return
		}
		if err != nil {
			select {
			case out <- Line{Lineno: lineno + 1, Err: err}:
			case <-ctx.Done():
			}
			return
		}
	}
}
