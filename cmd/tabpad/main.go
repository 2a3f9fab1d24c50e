package main

import (
	"context"
	"fmt"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"pkt.systems/pslog"

	"github.com/tabpad/tabpad-cli/cmd/commands"
	"github.com/tabpad/tabpad-cli/internal/cli"
	"github.com/tabpad/tabpad-cli/internal/logx"
	"github.com/tabpad/tabpad-cli/pkg/files"
	"github.com/tabpad/tabpad-cli/pkg/tui"
	"github.com/tabpad/tabpad-cli/pkg/watcher"
)

// Version is set during build with -ldflags
var version = "dev"

// watchDebounce groups the burst of events a single save produces.
const watchDebounce = 200 * time.Millisecond

func main() {
	logger := pslog.LoggerFromEnv(
		pslog.WithEnvWriter(os.Stderr),
		pslog.WithEnvOptions(pslog.Options{Mode: pslog.ModeConsole, MinLevel: pslog.ErrorLevel}),
	)
	ctx := pslog.ContextWithLogger(context.Background(), logger)

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "tabpad [files...]",
		Short: "Multi-tab plain text editor for the terminal",
		Long: `Tabpad is a plain text editor with tabs, multiple windows, find and replace
and a session that brings back your open files and unsaved text on the next start.`,
		SilenceErrors: true,
		SilenceUsage:  true,
		RunE:          runEditor,
	}

	root.Flags().Bool("no-restore", false, "Start without restoring the last session")
	root.Flags().String("log-file", "", "Write structured logs to this file")
	root.Flags().Bool("ignore-case", false, "Search case-insensitively by default")

	commands.AddGlobalFlags(root)
	commands.AddCommands(root)
	root.AddCommand(newVersionCmd())
	return root
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version number of Tabpad",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "Tabpad version %s\n", version)
		},
	}
}

func runEditor(cmd *cobra.Command, args []string) error {
	cctx, err := cli.NewCommandContext(cmd)
	if err != nil {
		return err
	}
	defer func() {
		if err := cctx.Close(); err != nil {
			cli.PrintError("state not saved: %v", err)
		}
	}()

	settings := cctx.Settings
	if ignore, _ := cmd.Flags().GetBool("ignore-case"); ignore {
		settings.Editor.CaseSensitive = false
	}
	noRestore, _ := cmd.Flags().GetBool("no-restore")

	// The TUI owns the terminal, so logs go to a file or nowhere.
	var logger pslog.Logger
	logFile, _ := cmd.Flags().GetString("log-file")
	if logFile == "" {
		logFile = settings.Log.File
	}
	if logFile != "" {
		path, err := files.ExpandPath(logFile)
		if err != nil {
			return err
		}
		l, closer, err := logx.OpenFile(path, settings.Log)
		if err != nil {
			return err
		}
		defer closer.Close()
		logger = l
	}
	cctx.Logger = logger

	paths := make([]string, 0, len(args))
	for _, arg := range args {
		path, err := files.ExpandPath(arg)
		if err != nil {
			return err
		}
		paths = append(paths, path)
	}

	kv, err := cctx.Store()
	if err != nil {
		return err
	}
	sessions, err := cctx.Sessions()
	if err != nil {
		return err
	}
	recent, err := cctx.Recent()
	if err != nil {
		return err
	}

	w, err := watcher.New(watchDebounce, logger)
	if err != nil {
		cli.PrintWarning("file watching disabled: %v", err)
		if logger != nil {
			logger.Warn("file watching disabled", "err", err)
		}
		w = nil
	} else {
		defer w.Close()
	}

	app := tui.NewApp(tui.Options{
		Fs:        cctx.Fs,
		Settings:  settings,
		Sessions:  sessions,
		Recent:    recent,
		State:     kv,
		StatePath: cctx.StatePath,
		Watcher:   w,
		Clipboard: tui.SystemClipboard(),
		Logger:    logger,
		Files:     paths,
		Restore:   settings.Session.Restore && !noRestore,
	})
	if logger != nil {
		logger.Info("tabpad started", "version", version, "files", len(paths))
	}

	p := tea.NewProgram(app, tea.WithAltScreen(), tea.WithContext(cmd.Context()))
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("failed to start the terminal user interface: %w", err)
	}
	return nil
}
