package main

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"

	"github.com/aledsdavies/shparse/pkgs/errors"
)

// readLines resolves the command lines to work on:
// 1. Positional args, joined into one line
// 2. Explicit stdin with -f -
// 3. A file given with -f
// 4. Piped stdin when nothing else is given
//
// Blank lines are skipped.
func readLines(args []string, file string, stdin io.Reader) ([]string, error) {
	if len(args) > 0 {
		return []string{strings.Join(args, " ")}, nil
	}

	reader, source, closeFunc, err := getInputReader(file, stdin)
	if err != nil {
		return nil, err
	}
	defer func() { _ = closeFunc() }()

	var lines []string
	scanner := bufio.NewScanner(reader)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		if line := scanner.Text(); strings.TrimSpace(line) != "" {
			lines = append(lines, line)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, errors.NewInputError(source, err)
	}
	return lines, nil
}

func getInputReader(file string, stdin io.Reader) (io.Reader, string, func() error, error) {
	noop := func() error { return nil }

	if file == "-" {
		return stdin, "stdin", noop, nil
	}

	if file == "" {
		if hasPipedInput(stdin) {
			return stdin, "stdin", noop, nil
		}
		return nil, "", nil, errors.NewInputError("stdin",
			fmt.Errorf("no command line given: pass it as arguments, with --file, or on stdin"))
	}

	f, err := os.Open(file)
	if err != nil {
		return nil, "", nil, errors.NewInputError(file, err)
	}
	return f, file, f.Close, nil
}

// hasPipedInput reports whether stdin carries data rather than a terminal.
// Readers that are not files (tests, embedding) always count as piped.
func hasPipedInput(stdin io.Reader) bool {
	f, ok := stdin.(*os.File)
	if !ok {
		return stdin != nil
	}
	return !term.IsTerminal(int(f.Fd()))
}

// shouldUseColor respects --no-color and NO_COLOR, then colors only
// terminals
func shouldUseColor(noColorFlag bool, out io.Writer) bool {
	if noColorFlag {
		return false
	}
	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	f, ok := out.(*os.File)
	if !ok {
		return false
	}
	return term.IsTerminal(int(f.Fd()))
}
