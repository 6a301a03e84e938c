package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/aledsdavies/shparse/pkgs/formatter"
	"github.com/aledsdavies/shparse/pkgs/lexer"
)

func newTokensCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "tokens [line...]",
		Short: "Print the token stream of command lines",
		RunE: func(cmd *cobra.Command, args []string) error {
			lines, err := readLines(args, opts.file, cmd.InOrStdin())
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			useColor := shouldUseColor(opts.noColor, out)
			var lexOpts []lexer.LexerOpt
			if opts.debug {
				lexOpts = append(lexOpts, lexer.WithLogger(debugLogger(cmd.ErrOrStderr())))
			}

			for i, line := range lines {
				if len(lines) > 1 {
					if i > 0 {
						fmt.Fprintln(out)
					}
					fmt.Fprintf(out, "# %s\n", line)
				}
				lex := lexer.NewLexer(line, lexOpts...)
				formatter.FormatTokens(out, lex.Tokens(), useColor)
				if open := lex.OpenModes(); len(open) > 0 {
					fmt.Fprintf(cmd.ErrOrStderr(), "unterminated: %v\n", open)
				}
			}
			return nil
		},
	}
}
