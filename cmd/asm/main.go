package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/davecgh/go-spew/spew"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/bassosimone/rv32asm/internal/env"
	"github.com/bassosimone/rv32asm/internal/logging"
	"github.com/bassosimone/rv32asm/pkg/asm"
	"github.com/bassosimone/rv32asm/pkg/disasm"
	"github.com/bassosimone/rv32asm/pkg/listing"
)

type asmCommandParams struct {
	output    string
	keepGoing bool
	listing   bool
	expect    string
	dump      bool
	logLevel  string
	logFormat string
}

// errMismatch is returned when the output differs from --expect.
var errMismatch = errors.New("output does not match the expected words")

func newAsmCommand() *cobra.Command {
	params := asmCommandParams{}
	cmd := &cobra.Command{
		Use:   "asm [flags] [file]",
		Short: "Assemble RV32I source into hex words",
		Long: `Assemble RV32I source into hex words.

The 'asm' command reads one base instruction per line from the given file, or
from stdin when no file is provided, and prints one eight-digit hex word per
line. Text after '#' is a comment. Branch and jump targets are byte offsets
relative to the instruction.

If the '-o' option is supplied, the words are also written to that file.

If the '--listing' option is supplied, a table pairing each word with its
source line and disassembly is printed instead of the bare words.

If the '--expect' option is supplied, the words are compared against the given
hex file and a diff is printed when they differ.

Flags may also be set through RV32ASM_<FLAG> environment variables, for
example RV32ASM_KEEP_GOING=true.`,
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
			return assemble(cmd.Context(), &params, logger, in, cmd.OutOrStdout())
		},
	}
	cmd.Flags().StringVarP(&params.output, "output", "o", "", "write the words to this file")
	cmd.Flags().BoolVar(&params.keepGoing, "keep-going", false, "skip failing lines instead of stopping")
	cmd.Flags().BoolVar(&params.listing, "listing", false, "print a listing table instead of bare words")
	cmd.Flags().StringVar(&params.expect, "expect", "", "compare the words against this hex file")
	cmd.Flags().BoolVar(&params.dump, "dump", false, "log every parsed instruction at debug level")
	logging.AddFlags(cmd, &params.logLevel, &params.logFormat)
	return cmd
}

func assemble(ctx context.Context, params *asmCommandParams, logger *logrus.Logger, in io.Reader, out io.Writer) error {
	policy := asm.PolicyAbort
	if params.keepGoing {
		policy = asm.PolicyContinue
	}
	var table *listing.Listing
	if params.listing {
		table = listing.New(out)
	}
	var (
		words  []uint32
		failed int
	)
	for ioe := range asm.StartAssembler(ctx, in, policy) {
		fields := logrus.Fields{"line": ioe.Lineno, "text": ioe.Text}
		if params.dump && ioe.Instruction != nil {
			logger.WithFields(fields).Debug(spew.Sdump(ioe.Instruction))
		}
		if table != nil {
			table.Add(ioe)
		}
		encoded, err := ioe.Encode()
		if err != nil {
			failed++
			logger.WithFields(fields).Error(err)
			continue
		}
		words = append(words, ioe.Word)
		if table == nil {
			fmt.Fprint(out, encoded)
		}
	}
	if table != nil {
		table.Render()
	}
	logger.WithFields(logrus.Fields{"words": len(words), "failed": failed}).Debug("assembled")
	if params.output != "" && (failed == 0 || params.keepGoing) {
		if err := os.WriteFile(params.output, []byte(listing.Words(words)), 0o644); err != nil {
			return err
		}
	}
	if params.expect != "" {
		if err := compare(params.expect, words, out); err != nil {
			return err
		}
	}
	if failed > 0 {
		return fmt.Errorf("%d line(s) failed to assemble", failed)
	}
	return nil
}

func compare(filename string, words []uint32, out io.Writer) error {
	fp, err := os.Open(filename)
	if err != nil {
		return err
	}
	defer fp.Close()
	expected, err := disasm.LoadWords(fp)
	if err != nil {
		return err
	}
	if diff := listing.Diff(expected, words); diff != "" {
		fmt.Fprint(out, diff)
		return errMismatch
	}
	return nil
}

func main() {
	if err := newAsmCommand().ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, "asm:", err)
		os.Exit(1)
	}
}
