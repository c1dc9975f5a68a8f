package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTUICmd_Use(t *testing.T) {
	assert.Equal(t, "tui", tuiCmd.Use)
}

func TestTUICmd_Short(t *testing.T) {
	assert.Equal(t, "Launch the interactive terminal UI", tuiCmd.Short)
}

func TestTUICmd_LongMentionsControls(t *testing.T) {
	assert.Contains(t, tuiCmd.Long, "ctrl+k")
	assert.Contains(t, tuiCmd.Long, "quick-search")
}

func TestSetTUIConfig(t *testing.T) {
	old := tuiConfig
	defer func() { tuiConfig = old }()

	config := &TUIConfig{
		DirectoryService: &mockDirectory{},
	}
	SetTUIConfig(config)

	require.NotNil(t, tuiConfig)
	assert.Same(t, config, tuiConfig)
}

func TestRootCmd_DefaultsToTUI(t *testing.T) {
	// The bare command launches the TUI, same as the tui subcommand.
	assert.NotNil(t, rootCmd.RunE)
}
