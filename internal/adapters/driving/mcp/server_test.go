package mcp

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewServer(t *testing.T) {
	t.Run("creates server with valid ports", func(t *testing.T) {
		server, err := NewServer(&Ports{Directory: testDirectory()})

		require.NoError(t, err)
		require.NotNil(t, server)
	})

	t.Run("rejects missing directory service", func(t *testing.T) {
		_, err := NewServer(&Ports{})

		assert.ErrorIs(t, err, ErrMissingDirectoryService)
	})
}

func TestPorts_Validate(t *testing.T) {
	t.Run("directory is required", func(t *testing.T) {
		p := &Ports{}
		assert.ErrorIs(t, p.Validate(), ErrMissingDirectoryService)
	})

	t.Run("settings is optional", func(t *testing.T) {
		p := &Ports{Directory: testDirectory()}
		assert.NoError(t, p.Validate())
	})
}
