// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: cmd/cellkit-edit/main.go
// Summary: Terminal code editor built on cellkit.
// Usage: cellkit-edit [--config file] [--log file] [file]

package main

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/framegrace/cellkit/app"
	"github.com/framegrace/cellkit/apps/editor"
	"github.com/framegrace/cellkit/config"
	"github.com/framegrace/cellkit/host"
	"github.com/framegrace/cellkit/plugin"
	"github.com/gdamore/tcell/v2"
	"github.com/go-logr/logr"
	"github.com/go-logr/logr/funcr"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
	"golang.org/x/term"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var configPath, logPath string
	cmd := &cobra.Command{
		Use:          "cellkit-edit [file]",
		Short:        "Edit and run source files in the terminal",
		Args:         cobra.MaximumNArgs(1),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			file := ""
			if len(args) == 1 {
				file = args[0]
			}
			return run(cmd.Context(), configPath, logPath, file)
		},
	}
	cmd.Flags().StringVar(&configPath, "config", "", "config file, YAML or JSON (default: $XDG_CONFIG_HOME/cellkit/config.yaml)")
	cmd.Flags().StringVar(&logPath, "log", "", "debug log file (overrides log_file from the config)")
	return cmd
}

func run(ctx context.Context, configPath, logPath, file string) error {
	if !term.IsTerminal(int(os.Stdin.Fd())) || !term.IsTerminal(int(os.Stdout.Fd())) {
		return errors.New("cellkit-edit needs an interactive terminal")
	}
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, stop := signal.NotifyContext(ctx, syscall.SIGTERM, syscall.SIGHUP)
	defer stop()

	if configPath == "" {
		if p, err := config.DefaultPath(); err == nil {
			configPath = p
		}
	}
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	if logPath == "" {
		logPath = cfg.LogFile
	}
	log, closeLog, err := newLogger(logPath)
	if err != nil {
		return err
	}
	defer closeLog()

	root, name, err := resolveFile(file)
	if err != nil {
		return err
	}

	var store plugin.Store
	if db := cfg.ResolvePluginDB(); db != "" {
		s, err := plugin.OpenSQLiteStore(db)
		if err != nil {
			log.Error(err, "Plugin store unavailable, settings will not persist", "path", db)
		} else {
			defer s.Close()
			store = s
		}
	}

	ts, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("create screen: %w", err)
	}
	screen := host.NewTcellScreen(ts)
	if err := screen.Init(); err != nil {
		return err
	}

	a := app.New(screen, screen, app.WithLogger(log), app.WithTickInterval(cfg.TickInterval()))
	ed := editor.New(a, editor.Options{
		Config: cfg,
		Files:  editor.NewOSFiles(root),
		Loader: plugin.NewLoader(store, log.WithName("plugins")),
	})
	if name != "" {
		if _, err := os.Stat(filepath.Join(root, name)); errors.Is(err, fs.ErrNotExist) {
			ed.NewFile(name)
		} else {
			ed.Open(name)
		}
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error { return screen.Start(gctx) })
	g.Go(func() error {
		// Fini unblocks the poll loop so Start returns.
		defer screen.Fini()
		return a.Run(gctx, ed.RunConfig())
	})
	err = g.Wait()
	if errors.Is(err, context.Canceled) {
		err = nil
	}
	log.Info("Exited", "err", err)
	return err
}

// resolveFile splits the file argument into the editor's root directory
// and a name relative to it. Without a file the root is the working
// directory.
func resolveFile(file string) (string, string, error) {
	if file == "" {
		wd, err := os.Getwd()
		return wd, "", err
	}
	abs, err := filepath.Abs(file)
	if err != nil {
		return "", "", err
	}
	return filepath.Dir(abs), filepath.Base(abs), nil
}

func newLogger(path string) (logr.Logger, func(), error) {
	if path == "" {
		return logr.Discard(), func() {}, nil
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return logr.Discard(), func() {}, fmt.Errorf("open log: %w", err)
	}
	log := funcr.New(func(prefix, args string) {
		fmt.Fprintf(f, "%s %s %s\n", time.Now().Format("15:04:05.000"), prefix, args)
	}, funcr.Options{Verbosity: 1})
	return log, func() { f.Close() }, nil
}
