// Package listing renders assembler output for humans: a table pairing
// each word with its source line, and line diffs against golden files.
package listing

import (
	"fmt"
	"io"
	"strconv"

	"github.com/olekukonko/tablewriter"

	"github.com/bassosimone/rv32asm/pkg/asm"
	"github.com/bassosimone/rv32asm/pkg/disasm"
)

// Listing accumulates assembler results and renders them as a table.
type Listing struct {
	table *tablewriter.Table
	rows  int
}

// New creates a listing that renders on w.
func New(w io.Writer) *Listing {
	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"Line", "Word", "Binary", "Source", "Disassembly"})
	table.SetAutoFormatHeaders(false)
	table.SetAutoWrapText(false)
	table.SetBorder(false)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
	return &Listing{table: table}
}

// Add appends a row. Failed lines show the error in place of the
// disassembly.
func (l *Listing) Add(ioe asm.InstructionOrError) {
	l.rows++
	lineno := strconv.Itoa(ioe.Lineno)
	if ioe.Error != nil {
		l.table.Append([]string{lineno, "-", "-", ioe.Text, "error: " + ioe.Error.Error()})
		return
	}
	l.table.Append([]string{
		lineno,
		asm.FormatWord(ioe.Word),
		fmt.Sprintf("0b%032b", ioe.Word),
		ioe.Text,
		disasm.Disassemble(ioe.Word),
	})
}

// Len returns the number of rows added so far.
func (l *Listing) Len() int {
	return l.rows
}

// Render writes the table.
func (l *Listing) Render() {
	l.table.Render()
}
