package main

import (
	"fmt"
	"log/slog"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/iw2rmb/marginalia"
)

var (
	configPath string
	logPath    string
	savePath   string
	verbose    bool
)

var rootCmd = &cobra.Command{
	Use:     "marginalia-demo",
	Short:   "Comment on text in the terminal",
	Version: marginalia.VersionTag(),
	Long: `marginalia-demo opens a text field with an attached comment sidebar.
Select text and press ctrl+k to comment on it; click a highlighted span to
focus its comment.`,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		logger, closeLog, err := openLogger()
		if err != nil {
			return err
		}
		defer closeLog()

		cfg, err := loadConfig(configPath)
		if err != nil {
			return err
		}
		m, err := newModel(cfg, logger, savePath)
		if err != nil {
			return err
		}
		p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseCellMotion())
		_, err = p.Run()
		return err
	},
}

// openLogger logs to a file; the terminal belongs to the program.
func openLogger() (*slog.Logger, func(), error) {
	if logPath == "" {
		return slog.New(slog.DiscardHandler), func() {}, nil
	}
	f, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("open log file: %w", err)
	}
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(f, &slog.HandlerOptions{Level: level}))
	return logger, func() { _ = f.Close() }, nil
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.Flags().StringVarP(&configPath, "config", "c", "", "YAML config file")
	rootCmd.Flags().StringVar(&logPath, "log-file", "", "write logs to this file")
	rootCmd.Flags().StringVar(&savePath, "save", "", "write the serialized content here after every change")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")
}
