// Package cli provides the command-line interface for rolodex.
package cli

import (
	"github.com/spf13/cobra"

	"github.com/veldt-labs/rolodex-cli/internal/core/ports/driving"
	"github.com/veldt-labs/rolodex-cli/internal/logger"
)

// version is set at build time via ldflags.
var version = "dev"

// Services injected by the composition root before Execute.
var (
	directoryService driving.DirectoryService
	settingsService  driving.SettingsService
)

var (
	verbose   bool
	configDir string
)

var rootCmd = &cobra.Command{
	Use:   "rolodex",
	Short: "Contact directory with hotkey quick-search",
	Long: `Rolodex keeps an in-memory directory of your contacts and lets you
find any of them in a handful of keystrokes.

Run without arguments to launch the interactive terminal UI; press
the quick-search hotkey (ctrl+k by default) to summon the typeahead
overlay from anywhere in the application.`,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		logger.SetVerbose(verbose)
	},
	RunE: runTUI,
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
	// The config flag is consumed by the composition root before cobra
	// parses it; registered here so it shows in help and passes
	// validation.
	rootCmd.PersistentFlags().StringVar(&configDir, "config", "", "config directory (default ~/.rolodex)")
}

// Services bundles everything the CLI commands depend on.
type Services struct {
	Directory driving.DirectoryService
	Settings  driving.SettingsService
}

// SetServices injects the core services. Must be called before Execute.
func SetServices(s Services) {
	directoryService = s.Directory
	settingsService = s.Settings
}

// SetVersion overrides the reported version string.
func SetVersion(v string) {
	if v != "" {
		version = v
	}
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
