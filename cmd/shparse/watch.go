package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"

	"github.com/aledsdavies/shparse/pkgs/errors"
)

func newWatchCmd(opts *options) *cobra.Command {
	flags := &parseFlags{}

	cmd := &cobra.Command{
		Use:   "watch --file FILE",
		Short: "Re-parse a file every time it changes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if opts.file == "" || opts.file == "-" {
				return errors.NewWatchError("stdin", fmt.Errorf("watch needs a file given with --file"))
			}
			if err := checkFormat(opts.output); err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			logger := slog.New(slog.NewTextHandler(io.Discard, nil))
			if opts.debug {
				logger = debugLogger(cmd.ErrOrStderr())
			}

			r := newRenderer(opts, flags, cmd.OutOrStdout(), cmd.ErrOrStderr())
			render := func() error {
				lines, err := readLines(nil, opts.file, nil)
				if err != nil {
					return err
				}
				fmt.Fprintf(r.out, "== %s (%d lines)\n", opts.file, len(lines))
				for _, line := range lines {
					if err := r.render(line); err != nil {
						return err
					}
				}
				return nil
			}
			return watchFile(ctx, opts.file, render, logger)
		},
	}

	cmd.Flags().BoolVar(&flags.fingerprint, "fingerprint", false, "Print the structural fingerprint of each line")
	cmd.Flags().BoolVar(&flags.variableArgs, "variables", false, "Report single variable arguments as variables")
	return cmd
}

// watchFile calls render once, then again after every write to path, until
// ctx is done. The parent directory is watched so editors that replace the
// file on save are still seen. Render errors are logged, not fatal.
func watchFile(ctx context.Context, path string, render func() error, logger *slog.Logger) error {
	target, err := filepath.Abs(path)
	if err != nil {
		return errors.NewWatchError(path, err)
	}
	if _, err := os.Stat(target); err != nil {
		return errors.NewWatchError(path, err)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return errors.NewWatchError(path, err)
	}
	defer func() { _ = watcher.Close() }()

	if err := watcher.Add(filepath.Dir(target)); err != nil {
		return errors.NewWatchError(path, err)
	}

	if err := render(); err != nil {
		logger.Warn("render failed", "file", path, "error", err)
	}

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != target {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}
			logger.Debug("file changed", "file", path, "op", event.Op.String())
			if err := render(); err != nil {
				logger.Warn("render failed", "file", path, "error", err)
			}

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			return errors.NewWatchError(path, err)
		}
	}
}
