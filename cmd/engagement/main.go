// Package main is the entry point for the engagement dashboard TUI.
// It loads configuration, starts the services and runs the Bubble Tea program.
package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/j-veylop/engagement-dashboard-tui/internal/app"
	"github.com/j-veylop/engagement-dashboard-tui/internal/clock"
	"github.com/j-veylop/engagement-dashboard-tui/internal/config"
	"github.com/j-veylop/engagement-dashboard-tui/internal/logger"
	"github.com/j-veylop/engagement-dashboard-tui/internal/services"
	"github.com/j-veylop/engagement-dashboard-tui/internal/ui/tabs/channels"
	"github.com/j-veylop/engagement-dashboard-tui/internal/ui/tabs/history"
	"github.com/j-veylop/engagement-dashboard-tui/internal/ui/tabs/info"
	"github.com/j-veylop/engagement-dashboard-tui/internal/version"
)

func main() {
	if len(os.Args) > 1 && (os.Args[1] == "-v" || os.Args[1] == "--version") {
		fmt.Println(version.Info())
		os.Exit(0)
	}

	if len(os.Args) > 1 && (os.Args[1] == "-h" || os.Args[1] == "--help") {
		printUsage()
		os.Exit(0)
	}

	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	// The TUI owns the terminal, so logs go to a file.
	closeLog, err := logger.Setup(cfg.LogPath, cfg.LogLevel)
	if err != nil {
		return fmt.Errorf("failed to open log file: %w", err)
	}
	defer func() { _ = closeLog() }()

	logger.Info("starting", "version", version.Info(), "server", cfg.ServerURL)
	if !cfg.HasCredentials() {
		logger.Warn("no USER_ID/AUTH_TOKEN configured, requests are sent unauthenticated")
	}

	svcManager, err := services.NewManager(cfg)
	if err != nil {
		return fmt.Errorf("failed to initialize services: %w", err)
	}
	defer func() {
		if closeErr := svcManager.Close(); closeErr != nil {
			fmt.Fprintf(os.Stderr, "Warning: error closing services: %v\n", closeErr)
		}
	}()

	model := app.NewModel(svcManager)
	model.SetTabs([]app.Tab{
		channels.New(svcManager.FetchChannels, svcManager.Translator(), clock.System{}),
		history.New(model.GetState(), svcManager.Translator()),
		info.New(model.GetState(), cfg, svcManager.Database(), svcManager.Translator()),
	})

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	p := tea.NewProgram(model, tea.WithAltScreen())

	go func() {
		<-sigChan
		p.Send(tea.Quit())
	}()

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("error running TUI: %w", err)
	}
	return nil
}

func printUsage() {
	fmt.Println(`Engagement Dashboard TUI - channel engagement statistics in the terminal

Usage:
  engagement [flags]

Flags:
  -h, --help      Show this help message
  -v, --version   Show version information

Keyboard Shortcuts:
  1-3             Switch between tabs (Channels, History, Info)
  Tab/Shift+Tab   Navigate between tabs
  f               Choose period (↑/↓ + Enter)
  t               Next period
  ←/→, p/n        Previous/next page
  +/-             Items per page (25, 50, 100)
  r               Refresh
  ?               Toggle help
  q, Ctrl+C       Quit

Environment Variables:
  SERVER_URL              Chat server base URL (required)
  USER_ID, AUTH_TOKEN     API credentials sent as X-User-Id / X-Auth-Token
  LOCALE                  Display locale (default: en)
  LOCALE_DIR              Directory with extra or override *.yaml catalogs
  DATABASE_PATH           SQLite fetch log path
  LOG_PATH, LOG_LEVEL     Log file and level (debug, info, warn, error)
  REQUEST_TIMEOUT         HTTP timeout (default: 30s)
  AUTO_REFRESH_INTERVAL   Re-query interval, 0 disables (default: 0)
  DESKTOP_NOTIFICATIONS   Notify on failed requests (default: false)

Configuration:
  The application looks for .env files in the current directory and in
  ~/.config/engagement-tui/.env`)
}
