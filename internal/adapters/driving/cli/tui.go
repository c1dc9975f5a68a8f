package cli

import (
	"fmt"
	"os"
	"runtime/debug"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/veldt-labs/rolodex-cli/internal/adapters/driving/tui"
	"github.com/veldt-labs/rolodex-cli/internal/core/domain"
	"github.com/veldt-labs/rolodex-cli/internal/core/ports/driving"
)

// TUIConfig holds configuration for the TUI command.
type TUIConfig struct {
	QuickSearch      driving.QuickSearch
	DirectoryService driving.DirectoryService
	SettingsService  driving.SettingsService
	Presenter        *tui.Presenter
	Keys             *tui.KeySource
}

// tuiConfig holds the current TUI configuration.
var tuiConfig *TUIConfig

// tuiCmd represents the tui command.
var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Launch the interactive terminal UI",
	Long: `Launch the interactive terminal user interface for Rolodex.

The TUI shows the full contact directory and a hotkey-triggered
quick-search overlay for jumping straight to a contact.

Controls:
  ctrl+k   - Open quick-search overlay
  ↑/k, ↓/j - Navigate
  Enter    - Select contact
  Esc      - Back / Dismiss overlay
  ctrl+r   - Refresh directory
  ?        - Toggle help
  q        - Quit`,
	RunE: runTUI,
}

// SetTUIConfig sets the configuration for the TUI command.
func SetTUIConfig(config *TUIConfig) {
	tuiConfig = config
}

func init() {
	rootCmd.AddCommand(tuiCmd)
}

func runTUI(cmd *cobra.Command, _ []string) error {
	// Add panic recovery to get stack traces
	defer func() {
		if r := recover(); r != nil {
			fmt.Fprintf(os.Stderr, "Panic in TUI: %v\n", r)
			fmt.Fprintf(os.Stderr, "Stack trace:\n%s\n", debug.Stack())
		}
	}()

	if !term.IsTerminal(int(os.Stdout.Fd())) {
		return fmt.Errorf("the TUI requires an interactive terminal")
	}

	if tuiConfig == nil {
		return fmt.Errorf("TUI not configured")
	}

	settings := domain.DefaultAppSettings()
	if tuiConfig.SettingsService != nil {
		loaded, err := tuiConfig.SettingsService.Get(cmd.Context())
		if err != nil {
			fmt.Fprintf(os.Stderr, "settings unreadable, using defaults: %v\n", err)
		} else {
			settings = loaded
		}
	}

	ports := tui.NewPorts(
		tuiConfig.QuickSearch,
		tuiConfig.DirectoryService,
		tuiConfig.SettingsService,
	)

	app, err := tui.NewApp(ports, tuiConfig.Presenter, tuiConfig.Keys, settings)
	if err != nil {
		return fmt.Errorf("failed to create TUI: %w", err)
	}

	app.WithContext(cmd.Context())

	if err := app.Run(); err != nil {
		return fmt.Errorf("TUI error: %w", err)
	}

	return nil
}
