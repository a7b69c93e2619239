// Package main is the entry point for the Prism TUI application.
// It initializes configuration, services, and runs the Bubble Tea program.
package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/prismlabs/prism-tui/internal/app"
	"github.com/prismlabs/prism-tui/internal/config"
	"github.com/prismlabs/prism-tui/internal/services"
	"github.com/prismlabs/prism-tui/internal/ui/tabs/account"
	"github.com/prismlabs/prism-tui/internal/ui/tabs/dashboard"
	"github.com/prismlabs/prism-tui/internal/ui/tabs/keys"
	"github.com/prismlabs/prism-tui/internal/ui/tabs/requests"
	"github.com/prismlabs/prism-tui/internal/version"
)

func main() {
	// Handle version flag
	if len(os.Args) > 1 && (os.Args[1] == "-v" || os.Args[1] == "--version") {
		fmt.Println(version.Info())
		os.Exit(0)
	}

	// Handle help flag
	if len(os.Args) > 1 && (os.Args[1] == "-h" || os.Args[1] == "--help") {
		printUsage()
		os.Exit(0)
	}

	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// run contains the main application logic, separated for cleaner error handling.
func run() error {
	// 1. Load configuration from .env files and environment variables
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	// 2. Initialize the service manager. This opens the credential store,
	// the snapshot cache, and the API client.
	svcManager, err := services.NewManager(cfg)
	if err != nil {
		return fmt.Errorf("failed to initialize services: %w", err)
	}

	defer func() {
		if closeErr := svcManager.Close(); closeErr != nil {
			fmt.Fprintf(os.Stderr, "Warning: error closing services: %v\n", closeErr)
		}
	}()

	// 3. Create the root Bubble Tea model
	model := app.NewModel(svcManager, cfg.RefreshInterval)

	// 4. Initialize tabs with shared state and services
	state := model.GetState()
	tabs := []app.Tab{
		dashboard.New(state),    // Tab 0: Dashboard - usage analytics
		keys.New(state),         // Tab 1: Keys - proxy key management
		requests.New(state),     // Tab 2: Requests - request log
		account.New(state, cfg), // Tab 3: Account - identity and config
	}
	model.SetTabs(tabs)

	// 5. Set up signal handling for graceful shutdown
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),       // Use alternate screen buffer (full terminal)
		tea.WithMouseCellMotion(), // Enable mouse support for selection
	)

	go func() {
		<-sigChan
		p.Send(tea.Quit())
	}()

	// This blocks until the user quits or an error occurs
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("error running TUI: %w", err)
	}

	return nil
}

// printUsage prints the command-line usage information.
func printUsage() {
	fmt.Println(`Prism TUI - usage analytics console for the Prism metering proxy

Usage:
  prism [flags]

Flags:
  -h, --help      Show this help message
  -v, --version   Show version information

Keyboard Shortcuts:
  1-4             Switch between tabs (Dashboard, Keys, Requests, Account)
  Tab/Shift+Tab   Navigate between tabs
  j/k, Up/Down    Navigate lists
  Enter           Select/confirm
  p / P           Cycle the dashboard period
  r               Refresh data
  ?               Toggle help
  q, Ctrl+C       Quit

Environment Variables:
  PRISM_BASE_URL            Prism backend API root
  PRISM_TOKEN_PATH          Session token file path
  PRISM_DB_PATH             SQLite snapshot cache path
  PRISM_BUDGET_CAP          Monthly budget cap in USD
  PRISM_SAVINGS_MULTIPLIER  Estimated-savings multiplier
  PRISM_REFRESH_INTERVAL    Dashboard refresh interval (default: 60s)

Configuration:
  The application looks for .env files in the following locations:
  - Current directory
  - ~/.config/prism-tui/.env
  - ~/.prism/.env`)
}
