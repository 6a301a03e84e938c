package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/aledsdavies/shparse/pkgs/parser"
)

// options are the persistent flags shared by every subcommand
type options struct {
	file    string
	output  string
	debug   bool
	noColor bool
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	opts := &options{}

	rootCmd := &cobra.Command{
		Use:           "shparse",
		Short:         "Tokenize and parse shell command lines into pipelines",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().StringVarP(&opts.file, "file", "f", "", "Read command lines from a file (- for stdin)")
	rootCmd.PersistentFlags().StringVarP(&opts.output, "output", "o", "tree", "Output format: "+formatList())
	rootCmd.PersistentFlags().BoolVar(&opts.debug, "debug", false, "Enable debug logging to stderr")
	rootCmd.PersistentFlags().BoolVar(&opts.noColor, "no-color", false, "Disable colored output")

	rootCmd.AddCommand(newParseCmd(opts), newTokensCmd(opts), newWatchCmd(opts))
	return rootCmd
}

// parserOpts builds the engine options implied by the global flags
func (o *options) parserOpts(stderr io.Writer) []parser.ParserOpt {
	if !o.debug {
		return nil
	}
	return []parser.ParserOpt{
		parser.WithLogger(debugLogger(stderr)),
		parser.WithTelemetryTiming(),
	}
}

// debugLogger mirrors the engine's stderr handler at Debug level
func debugLogger(w io.Writer) *slog.Logger {
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{
		Level: slog.LevelDebug,
		ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
			if a.Key == slog.TimeKey {
				return slog.Attr{}
			}
			return a
		},
	}))
}
