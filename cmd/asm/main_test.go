package main

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const source = `# example
addi x5, x0, 5
add x1, x2, x3
sw x5, 8(x2)
jal x1, 16
`

const words = "00500293\n003100b3\n00512423\n010000ef\n"

func runAsm(t *testing.T, stdin string, args ...string) (string, string, error) {
	t.Helper()
	cmd := newAsmCommand()
	var stdout, stderr bytes.Buffer
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	if args == nil {
		args = []string{} // otherwise cobra parses os.Args
	}
	cmd.SetArgs(args)
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func TestAsmStdin(t *testing.T) {
	stdout, _, err := runAsm(t, source)
	if err != nil {
		t.Fatal(err)
	}
	if stdout != words {
		t.Fatalf("unexpected output %q", stdout)
	}
}

func TestAsmFileAndOutput(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "prog.s")
	output := filepath.Join(dir, "prog.hex")
	if err := os.WriteFile(input, []byte(source), 0o600); err != nil {
		t.Fatal(err)
	}
	stdout, _, err := runAsm(t, "", "-o", output, input)
	if err != nil {
		t.Fatal(err)
	}
	if stdout != words {
		t.Fatalf("unexpected stdout %q", stdout)
	}
	data, err := os.ReadFile(output)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != words {
		t.Fatalf("unexpected file content %q", data)
	}
}

func TestAsmAbortsOnError(t *testing.T) {
	output := filepath.Join(t.TempDir(), "prog.hex")
	stdout, stderr, err := runAsm(t, "addi x1, x0, 1\nfoobar rd, rs1, rs2\naddi x2, x0, 2\n", "-o", output)
	if err == nil {
		t.Fatal("expected an error")
	}
	if stdout != "00100093\n" {
		t.Fatalf("unexpected stdout %q", stdout)
	}
	if !strings.Contains(stderr, "unknown mnemonic") || !strings.Contains(stderr, "line=2") {
		t.Fatalf("unexpected stderr %q", stderr)
	}
	if _, err := os.Stat(output); !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("output should not be written: %v", err)
	}
}

func TestAsmKeepGoing(t *testing.T) {
	output := filepath.Join(t.TempDir(), "prog.hex")
	stdout, stderr, err := runAsm(t, "addi x1, x0, 1\nlw x1, 4[x2]\naddi x2, x0, 2\n", "--keep-going", "-o", output)
	if err == nil || !strings.Contains(err.Error(), "1 line(s) failed") {
		t.Fatalf("unexpected error %v", err)
	}
	if stdout != "00100093\n00200113\n" {
		t.Fatalf("unexpected stdout %q", stdout)
	}
	if !strings.Contains(stderr, "malformed offset") {
		t.Fatalf("unexpected stderr %q", stderr)
	}
	data, err := os.ReadFile(output)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != stdout {
		t.Fatalf("unexpected file content %q", data)
	}
}

func TestAsmKeepGoingFromEnvironment(t *testing.T) {
	t.Setenv("RV32ASM_KEEP_GOING", "true")
	stdout, _, err := runAsm(t, "bogus\naddi x2, x0, 2\n")
	if err == nil {
		t.Fatal("expected an error")
	}
	if stdout != "00200113\n" {
		t.Fatalf("unexpected stdout %q", stdout)
	}
}

func TestAsmListing(t *testing.T) {
	stdout, _, err := runAsm(t, source, "--listing")
	if err != nil {
		t.Fatal(err)
	}
	for _, want := range []string{"00500293", "addi x5, x0, 5", "jal x1, 16", "Disassembly"} {
		if !strings.Contains(stdout, want) {
			t.Fatalf("missing %q in:\n%s", want, stdout)
		}
	}
}

func TestAsmExpect(t *testing.T) {
	golden := filepath.Join(t.TempDir(), "golden.hex")
	if err := os.WriteFile(golden, []byte("0x00500293\n003100b3 # add\n00512423\n010000ef\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	if _, _, err := runAsm(t, source, "--expect", golden); err != nil {
		t.Fatal(err)
	}
	stdout, _, err := runAsm(t, strings.Replace(source, "x3", "x4", 1), "--expect", golden)
	if !errors.Is(err, errMismatch) {
		t.Fatalf("unexpected error %v", err)
	}
	if !strings.Contains(stdout, "-003100b3") || !strings.Contains(stdout, "+004100b3") {
		t.Fatalf("unexpected diff:\n%s", stdout)
	}
}

func TestAsmDump(t *testing.T) {
	_, stderr, err := runAsm(t, "sw x5, 8(x2)\n", "--dump", "--log-level", "debug")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(stderr, "InstructionS") || !strings.Contains(stderr, "RS2") {
		t.Fatalf("unexpected stderr %q", stderr)
	}
}

func TestAsmBadLogFormat(t *testing.T) {
	if _, _, err := runAsm(t, source, "--log-format", "xml"); err == nil {
		t.Fatal("expected an error")
	}
}
