package cli

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/veldt-labs/rolodex-cli/internal/core/domain"
)

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Manage application settings",
	Long: `View and configure quick-search behaviour and directory sources.

Use subcommands to change specific settings.`,
	RunE: runSettingsShow,
}

var settingsShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current settings",
	RunE:  runSettingsShow,
}

var settingsHotkeyCmd = &cobra.Command{
	Use:   "hotkey [combination]",
	Short: "Set the quick-search hotkey",
	Long: `Set the key combination that opens the quick-search overlay.

Combinations are written as modifier+key, for example:
  ctrl+k
  ctrl+shift+p
  alt+space`,
	Args: cobra.ExactArgs(1),
	RunE: runSettingsHotkey,
}

var settingsLimitCmd = &cobra.Command{
	Use:   "limit [count]",
	Short: "Set the maximum number of overlay results",
	Args:  cobra.ExactArgs(1),
	RunE:  runSettingsLimit,
}

var settingsDebounceCmd = &cobra.Command{
	Use:   "debounce [milliseconds]",
	Short: "Set the overlay keystroke debounce interval",
	Args:  cobra.ExactArgs(1),
	RunE:  runSettingsDebounce,
}

func init() {
	settingsCmd.AddCommand(settingsShowCmd)
	settingsCmd.AddCommand(settingsHotkeyCmd)
	settingsCmd.AddCommand(settingsLimitCmd)
	settingsCmd.AddCommand(settingsDebounceCmd)
	rootCmd.AddCommand(settingsCmd)
}

func runSettingsShow(cmd *cobra.Command, _ []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	settings, err := settingsService.Get(cmd.Context())
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}

	cmd.Println("Current Settings")
	cmd.Println("================")
	cmd.Println()

	cmd.Println("[Search]")
	cmd.Printf("  Hotkey: %s\n", settings.Search.Hotkey)
	cmd.Printf("  Max results: %d\n", settings.Search.MaxResults)
	cmd.Printf("  Overlay debounce: %s\n", settings.Search.OverlayDebounce)
	cmd.Printf("  Directory debounce: %s\n", settings.Search.DirectoryDebounce)
	cmd.Println()

	cmd.Println("[Directory]")
	if settings.Directory.ContactsFile != "" {
		cmd.Printf("  Contacts file: %s\n", settings.Directory.ContactsFile)
	}
	if settings.Directory.GitHubOrg != "" {
		cmd.Printf("  GitHub organisation: %s\n", settings.Directory.GitHubOrg)
		if settings.Directory.GitHubToken != "" {
			cmd.Printf("  GitHub token: %s\n", maskToken(settings.Directory.GitHubToken))
		} else {
			cmd.Printf("  GitHub token: (not set)\n")
		}
	}
	if settings.Directory.GoogleEnabled {
		cmd.Printf("  Google People: enabled\n")
	}
	if settings.Directory.ContactsFile == "" &&
		settings.Directory.GitHubOrg == "" &&
		!settings.Directory.GoogleEnabled {
		cmd.Println("  (no sources configured, using local database)")
	}

	return nil
}

func runSettingsHotkey(cmd *cobra.Command, args []string) error {
	hotkey, err := domain.ParseHotkey(args[0])
	if err != nil {
		return fmt.Errorf("invalid hotkey: %w", err)
	}
	if hotkey.Modifiers == domain.ModNone {
		return fmt.Errorf("hotkey %q needs a modifier, e.g. ctrl+%s", args[0], hotkey.Key)
	}

	return updateSettings(cmd, func(s *domain.AppSettings) {
		s.Search.Hotkey = hotkey.String()
	}, fmt.Sprintf("Quick-search hotkey set to %s", hotkey))
}

func runSettingsLimit(cmd *cobra.Command, args []string) error {
	limit, err := strconv.Atoi(args[0])
	if err != nil || limit <= 0 {
		return fmt.Errorf("limit must be a positive integer, got %q", args[0])
	}

	return updateSettings(cmd, func(s *domain.AppSettings) {
		s.Search.MaxResults = limit
	}, fmt.Sprintf("Maximum results set to %d", limit))
}

func runSettingsDebounce(cmd *cobra.Command, args []string) error {
	ms, err := strconv.Atoi(args[0])
	if err != nil || ms <= 0 {
		return fmt.Errorf("debounce must be a positive millisecond count, got %q", args[0])
	}

	return updateSettings(cmd, func(s *domain.AppSettings) {
		s.Search.OverlayDebounce = time.Duration(ms) * time.Millisecond
		if s.Search.DirectoryDebounce < s.Search.OverlayDebounce {
			s.Search.DirectoryDebounce = s.Search.OverlayDebounce
		}
	}, fmt.Sprintf("Overlay debounce set to %dms", ms))
}

// updateSettings applies a mutation to the current settings and
// persists the result.
func updateSettings(cmd *cobra.Command, mutate func(*domain.AppSettings), confirmation string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	settings, err := settingsService.Get(cmd.Context())
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}

	mutate(&settings)

	if err := settingsService.Update(cmd.Context(), settings); err != nil {
		return fmt.Errorf("failed to save settings: %w", err)
	}

	cmd.Println(confirmation)
	return nil
}

func maskToken(token string) string {
	if len(token) <= 8 {
		return "****"
	}
	return token[:4] + "..." + token[len(token)-4:]
}
