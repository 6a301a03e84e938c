package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/aledsdavies/shparse/pkgs/ast"
	"github.com/aledsdavies/shparse/pkgs/encoding"
	"github.com/aledsdavies/shparse/pkgs/errors"
	"github.com/aledsdavies/shparse/pkgs/formatter"
	"github.com/aledsdavies/shparse/pkgs/parser"
)

const treeFormat = "tree"

func formats() []string {
	return append([]string{treeFormat}, encoding.Formats()...)
}

func formatList() string {
	return strings.Join(formats(), ", ")
}

// checkFormat rejects unknown --output values before any input is read
func checkFormat(format string) error {
	known := formats()
	for _, f := range known {
		if f == format {
			return nil
		}
	}
	return errors.NewUnknownFormatError(format, known, encoding.SuggestFormat(format, known))
}

// parseFlags are the parse-only flags
type parseFlags struct {
	fingerprint  bool
	checkSchema  bool
	variableArgs bool
}

func newParseCmd(opts *options) *cobra.Command {
	flags := &parseFlags{}

	cmd := &cobra.Command{
		Use:   "parse [line...]",
		Short: "Parse command lines and print their pipelines",
		Long: `Parse the command line given as arguments, or every non-blank line of
--file or piped stdin, and print the result in the --output format.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := checkFormat(opts.output); err != nil {
				return err
			}
			lines, err := readLines(args, opts.file, cmd.InOrStdin())
			if err != nil {
				return err
			}
			r := newRenderer(opts, flags, cmd.OutOrStdout(), cmd.ErrOrStderr())
			for _, line := range lines {
				if err := r.render(line); err != nil {
					return err
				}
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&flags.fingerprint, "fingerprint", false, "Print the structural fingerprint of each line")
	cmd.Flags().BoolVar(&flags.checkSchema, "check-schema", false, "Validate each result against the JSON schema")
	cmd.Flags().BoolVar(&flags.variableArgs, "variables", false, "Report single variable arguments as variables")
	return cmd
}

// renderer parses one line at a time and writes it in the chosen format
type renderer struct {
	format      string
	useColor    bool
	flags       *parseFlags
	parserOpts  []parser.ParserOpt
	debug       bool
	out, errOut io.Writer
}

func newRenderer(opts *options, flags *parseFlags, out, errOut io.Writer) *renderer {
	parserOpts := opts.parserOpts(errOut)
	if flags.variableArgs {
		parserOpts = append(parserOpts, parser.WithVariableArgs())
	}
	return &renderer{
		format:     opts.output,
		useColor:   shouldUseColor(opts.noColor, out),
		flags:      flags,
		parserOpts: parserOpts,
		debug:      opts.debug,
		out:        out,
		errOut:     errOut,
	}
}

func (r *renderer) render(line string) error {
	report := parser.Inspect(line, r.parserOpts...)
	if r.debug && report.Telemetry != nil {
		t := report.Telemetry
		fmt.Fprintf(r.errOut, "tokens=%d pipelines=%d commands=%d lex=%v parse=%v\n",
			t.TokenCount, t.PipelineCount, t.CommandCount, t.LexTime, t.ParseTime)
	}

	if err := r.write(report.Parsed); err != nil {
		return err
	}

	if r.flags.checkSchema {
		if err := encoding.Validate(report.Parsed); err != nil {
			return fmt.Errorf("line %q: %w", line, err)
		}
	}
	if r.flags.fingerprint {
		sum, err := encoding.Fingerprint(report.Parsed)
		if err != nil {
			return errors.NewEncodeError("fingerprint", err)
		}
		fmt.Fprintf(r.out, "fingerprint: %s\n", sum)
	}
	return nil
}

func (r *renderer) write(pc *ast.ParsedCommand) error {
	if r.format == treeFormat {
		formatter.FormatTree(r.out, pc, r.useColor)
		return nil
	}
	return encoding.Encode(r.out, r.format, pc)
}
