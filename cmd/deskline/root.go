package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/deskline/deskline/internal/config"
	"github.com/deskline/deskline/internal/ui"
)

// Build-time variables (set via ldflags)
var (
	version = "dev"
	commit  = "unknown"
)

var globalOpts struct {
	configPath string
	logFile    string
	verbose    bool
	noMouse    bool
}

var rootCmd = &cobra.Command{
	Use:   "deskline",
	Short: "Help desk ticket board for the terminal",
	Long: `deskline shows a ticket board with stacked dialogs.

Key bindings:
  j/k, ↑/↓    Navigate tickets
  enter       Open ticket details
  d           Close the selected ticket
  ?           Toggle the ticket tooltip
  /           Find a ticket
  esc         Close the frontmost dialog
  q           Quit`,
	Version:       fmt.Sprintf("%s (commit: %s)", version, commit),
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runBoard,
}

// Execute runs the root command and exits non-zero on error.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&globalOpts.configPath, "config", "",
		"Path to config file (TOML)")
	rootCmd.PersistentFlags().StringVar(&globalOpts.logFile, "log-file", "",
		"Write logs to this file (logging is off when empty)")
	rootCmd.PersistentFlags().BoolVarP(&globalOpts.verbose, "verbose", "v", false,
		"Log at debug level")
	rootCmd.Flags().BoolVar(&globalOpts.noMouse, "no-mouse", false,
		"Disable mouse support")
}

// newLogger returns a logger writing to path. The closer must be called on
// exit.
func newLogger(path string, verbose bool) (*slog.Logger, io.Closer, error) {
	if path == "" {
		return slog.New(slog.NewTextHandler(io.Discard, nil)), io.NopCloser(nil), nil
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("open log file: %w", err)
	}
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(f, &slog.HandlerOptions{Level: level})), f, nil
}

func runBoard(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(globalOpts.configPath)
	if err != nil {
		return err
	}

	logger, closer, err := newLogger(globalOpts.logFile, globalOpts.verbose)
	if err != nil {
		return err
	}
	defer closer.Close()

	logger.Info("starting deskline", "version", version, "config", globalOpts.configPath)

	opts := []tea.ProgramOption{tea.WithAltScreen()}
	if !globalOpts.noMouse {
		opts = append(opts, tea.WithMouseCellMotion())
	}
	p := tea.NewProgram(ui.New(cfg, ui.WithLogger(logger)), opts...)
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("run: %w", err)
	}
	return nil
}
