package asm

import (
	"context"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestCleanLine(t *testing.T) {
	tests := map[string]string{
		"  addi x1, x0, 1  ":          "addi x1, x0, 1",
		"# a comment":                 "",
		"   ":                         "",
		"add x1, x2, x3 # trailing":   "add x1, x2, x3",
		"\tsw x5, 8(x2)#no space":     "sw x5, 8(x2)",
		"jal 16 # first # second one": "jal 16",
	}
	for input, want := range tests {
		if got := CleanLine(input); got != want {
			t.Fatalf("CleanLine(%q) = %q, want %q", input, got, want)
		}
	}
}

func TestStartLexing(t *testing.T) {
	input := strings.Join([]string{
		"# program",
		"",
		"addi x5, x0, 5",
		"   # indented comment",
		"add x1, x2, x3 # sum",
		"",
	}, "\n")
	var got []Line
	for line := range StartLexing(context.Background(), strings.NewReader(input)) {
		got = append(got, line)
	}
	want := []Line{
		{Lineno: 3, Text: "addi x5, x0, 5"},
		{Lineno: 5, Text: "add x1, x2, x3"},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatal(diff)
	}
}

func TestStartLexingCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	input := strings.Repeat("addi x1, x1, 1\n", 100)
	var count int
	for range StartLexing(ctx, strings.NewReader(input)) {
		count++
	}
	if count >= 100 {
		t.Fatalf("expected the lexer to stop early, got %d lines", count)
	}
}

func TestStartLexingLongLine(t *testing.T) {
	input := strings.Join([]string{
		"addi x1, x0, 1",
		"addi x2, x0, 2 #" + strings.Repeat("z", 70000),
		strings.Repeat(" ", 100000) + "addi x3, x0, 3",
		"addi x4, x0, 4\r",
		"addi x5, x0, 5",
	}, "\n")
	var got []Line
	for line := range StartLexing(context.Background(), strings.NewReader(input)) {
		got = append(got, line)
	}
	want := []Line{
		{Lineno: 1, Text: "addi x1, x0, 1"},
		{Lineno: 2, Text: "addi x2, x0, 2"},
		{Lineno: 3, Text: "addi x3, x0, 3"},
		{Lineno: 4, Text: "addi x4, x0, 4"},
		{Lineno: 5, Text: "addi x5, x0, 5"},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatal(diff)
	}
}
