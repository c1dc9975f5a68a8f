package cli

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/veldt-labs/rolodex-cli/internal/core/domain"
)

func TestSettingsCmd_Use(t *testing.T) {
	assert.Equal(t, "settings", settingsCmd.Use)
}

func TestSettingsCmd_HasSubcommands(t *testing.T) {
	commands := settingsCmd.Commands()
	commandNames := make([]string, 0, len(commands))
	for _, cmd := range commands {
		commandNames = append(commandNames, cmd.Name())
	}

	assert.Contains(t, commandNames, "show")
	assert.Contains(t, commandNames, "hotkey")
	assert.Contains(t, commandNames, "limit")
	assert.Contains(t, commandNames, "debounce")
}

func TestSettingsShowCmd_DisplaysDefaults(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetArgs([]string{"settings", "show"})
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.Execute()

	require.NoError(t, err)
	assert.Contains(t, buf.String(), "Hotkey: ctrl+k")
	assert.Contains(t, buf.String(), "Max results: 10")
	assert.Contains(t, buf.String(), "no sources configured")
}

func TestSettingsShowCmd_MasksGitHubToken(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	settings := domain.DefaultAppSettings()
	settings.Directory.GitHubOrg = "veldt-labs"
	settings.Directory.GitHubToken = "ghp_superdupersecrettoken"
	settingsService = &mockSettings{settings: settings}

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetArgs([]string{"settings", "show"})
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.Execute()

	require.NoError(t, err)
	assert.Contains(t, buf.String(), "veldt-labs")
	assert.NotContains(t, buf.String(), "ghp_superdupersecrettoken")
	assert.Contains(t, buf.String(), "ghp_...oken")
}

func TestSettingsHotkeyCmd_UpdatesHotkey(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()
	mock := settingsService.(*mockSettings)

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetArgs([]string{"settings", "hotkey", "ctrl+shift+p"})
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.Execute()

	require.NoError(t, err)
	require.NotNil(t, mock.updated)
	assert.Equal(t, "ctrl+shift+p", mock.updated.Search.Hotkey)
}

func TestSettingsHotkeyCmd_RejectsBareKey(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()
	mock := settingsService.(*mockSettings)

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs([]string{"settings", "hotkey", "k"})
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.Execute()

	require.Error(t, err)
	assert.Contains(t, err.Error(), "needs a modifier")
	assert.Nil(t, mock.updated)
}

func TestSettingsHotkeyCmd_RejectsGarbage(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs([]string{"settings", "hotkey", "+++"})
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.Execute()

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "invalid hotkey")
}

func TestSettingsLimitCmd_UpdatesLimit(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()
	mock := settingsService.(*mockSettings)

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetArgs([]string{"settings", "limit", "25"})
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.Execute()

	require.NoError(t, err)
	require.NotNil(t, mock.updated)
	assert.Equal(t, 25, mock.updated.Search.MaxResults)
}

func TestSettingsLimitCmd_RejectsNonPositive(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs([]string{"settings", "limit", "0"})
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.Execute()

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "positive integer")
}

func TestSettingsDebounceCmd_UpdatesDebounce(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()
	mock := settingsService.(*mockSettings)

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetArgs([]string{"settings", "debounce", "200"})
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.Execute()

	require.NoError(t, err)
	require.NotNil(t, mock.updated)
	assert.Equal(t, 200*time.Millisecond, mock.updated.Search.OverlayDebounce)
}

func TestSettingsDebounceCmd_RaisesDirectoryDebounce(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()
	mock := settingsService.(*mockSettings)

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetArgs([]string{"settings", "debounce", "500"})
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.Execute()

	require.NoError(t, err)
	require.NotNil(t, mock.updated)
	assert.Equal(t, 500*time.Millisecond, mock.updated.Search.OverlayDebounce)
	assert.Equal(t, 500*time.Millisecond, mock.updated.Search.DirectoryDebounce,
		"directory debounce must not drop below the overlay debounce")
}

func TestSettingsCmd_ErrorsWithoutService(t *testing.T) {
	oldSettings := settingsService
	settingsService = nil
	defer func() { settingsService = oldSettings }()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs([]string{"settings", "show"})
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.Execute()

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "not configured")
}
