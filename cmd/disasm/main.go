package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/bassosimone/rv32asm/internal/env"
	"github.com/bassosimone/rv32asm/internal/logging"
	"github.com/bassosimone/rv32asm/pkg/disasm"
)

type disasmCommandParams struct {
	verbose   bool
	logLevel  string
	logFormat string
}

func newDisasmCommand() *cobra.Command {
	params := disasmCommandParams{}
	cmd := &cobra.Command{
		Use:   "disasm [flags] [file]",
		Short: "Disassemble hex words into RV32I source",
		Long: `Disassemble hex words into RV32I source.

The 'disasm' command reads one hex word per line, as written by 'asm', from
the given file or from stdin, and prints each word next to the instruction it
encodes. The printed instructions can be assembled again.

Flags may also be set through RV32ASM_DISASM_<FLAG> environment variables.`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		PreRunE: func(cmd *cobra.Command, args []string) error {
			return env.CheckEnvironmentVariables(cmd)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			logger, err := logging.New(params.logLevel, params.logFormat, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			in := cmd.InOrStdin()
			if len(args) > 0 {
				fp, err := os.Open(args[0])
				if err != nil {
					return err
				}
				defer fp.Close()
				in = fp
			}
			return disassemble(&params, logger, in, cmd.OutOrStdout())
		},
	}
	cmd.Flags().BoolVarP(&params.verbose, "verbose", "v", false, "also print each word in binary")
	logging.AddFlags(cmd, &params.logLevel, &params.logFormat)
	return cmd
}

func disassemble(params *disasmCommandParams, logger *logrus.Logger, in io.Reader, out io.Writer) error {
	words, err := disasm.LoadWords(in)
	if err != nil {
		return err
	}
	logger.WithField("words", len(words)).Debug("loaded")
	for _, word := range words {
		if params.verbose {
			fmt.Fprintf(out, "%08x  0b%032b  %s\n", word, word, disasm.Disassemble(word))
			continue
		}
		fmt.Fprintf(out, "%08x  %s\n", word, disasm.Disassemble(word))
	}
	return nil
}

func main() {
	if err := newDisasmCommand().ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, "disasm:", err)
		os.Exit(1)
	}
}
