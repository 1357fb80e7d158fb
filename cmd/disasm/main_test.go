package main

import (
	"bytes"
	"strings"
	"testing"
)

func runDisasm(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	cmd := newDisasmCommand()
	var stdout, stderr bytes.Buffer
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	if args == nil {
		args = []string{} // otherwise cobra parses os.Args
	}
	cmd.SetArgs(args)
	err := cmd.Execute()
	return stdout.String(), err
}

func TestDisasm(t *testing.T) {
	stdout, err := runDisasm(t, "00500293\n003100b3\n")
	if err != nil {
		t.Fatal(err)
	}
	want := "00500293  addi x5, x0, 5\n003100b3  add x1, x2, x3\n"
	if stdout != want {
		t.Fatalf("unexpected output %q", stdout)
	}
}

func TestDisasmVerbose(t *testing.T) {
	stdout, err := runDisasm(t, "00500293\n", "-v")
	if err != nil {
		t.Fatal(err)
	}
	want := "00500293  0b00000000010100000000001010010011  addi x5, x0, 5\n"
	if stdout != want {
		t.Fatalf("unexpected output %q", stdout)
	}
}

func TestDisasmBadInput(t *testing.T) {
	if _, err := runDisasm(t, "nothex\n"); err == nil {
		t.Fatal("expected an error")
	}
}
