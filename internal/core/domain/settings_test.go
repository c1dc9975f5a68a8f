package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultAppSettings(t *testing.T) {
	s := DefaultAppSettings()

	require.NoError(t, s.Validate())
	assert.Equal(t, DefaultOverlayDebounce, s.Search.OverlayDebounce)
	assert.Equal(t, DefaultResultLimit, s.Search.MaxResults)
	// The overlay reacts faster than the full directory view.
	assert.Less(t, s.Search.OverlayDebounce, s.Search.DirectoryDebounce)
}

func TestAppSettings_Validate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*AppSettings)
	}{
		{
			name:   "zero overlay debounce",
			mutate: func(s *AppSettings) { s.Search.OverlayDebounce = 0 },
		},
		{
			name:   "directory debounce shorter than overlay",
			mutate: func(s *AppSettings) { s.Search.DirectoryDebounce = 10 * time.Millisecond },
		},
		{
			name:   "zero max results",
			mutate: func(s *AppSettings) { s.Search.MaxResults = 0 },
		},
		{
			name:   "bad hotkey",
			mutate: func(s *AppSettings) { s.Search.Hotkey = "hyper+k" },
		},
		{
			// A bare letter would fire on plain typing.
			name:   "hotkey without modifier",
			mutate: func(s *AppSettings) { s.Search.Hotkey = "k" },
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := DefaultAppSettings()
			tt.mutate(&s)

			err := s.Validate()

			assert.ErrorIs(t, err, ErrInvalidInput)
		})
	}
}
