package github

import (
	"testing"

	gh "github.com/google/go-github/v80/github"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/veldt-labs/rolodex-cli/internal/core/ports/driven"
)

func TestNewProvider(t *testing.T) {
	t.Run("creates provider with token", func(t *testing.T) {
		p := NewProvider("veldt-labs", "ghp_test")

		require.NotNil(t, p)
		assert.Equal(t, "veldt-labs", p.org)
	})

	t.Run("creates provider without token", func(t *testing.T) {
		p := NewProvider("veldt-labs", "")

		require.NotNil(t, p)
	})

	t.Run("implements DirectoryProvider interface", func(t *testing.T) {
		var _ driven.DirectoryProvider = NewProvider("veldt-labs", "")
	})
}

func TestMemberContact(t *testing.T) {
	t.Run("maps full profile", func(t *testing.T) {
		user := &gh.User{
			Login:     gh.Ptr("asmith"),
			Name:      gh.Ptr("Alice Smith"),
			Email:     gh.Ptr("alice@example.com"),
			Company:   gh.Ptr("Example Corp"),
			AvatarURL: gh.Ptr("https://avatars.example.com/asmith"),
		}

		contact := memberContact(user)

		assert.Equal(t, "github:asmith", contact.ID)
		assert.Equal(t, "Alice Smith", contact.Name)
		assert.Equal(t, []string{"alice@example.com"}, contact.Emails)
		assert.Equal(t, "Example Corp", contact.Organization)
		assert.Equal(t, "https://avatars.example.com/asmith", contact.PhotoURL)
	})

	t.Run("falls back to login when name is unset", func(t *testing.T) {
		user := &gh.User{Login: gh.Ptr("asmith")}

		contact := memberContact(user)

		assert.Equal(t, "asmith", contact.Name)
		assert.Empty(t, contact.Emails)
	})

	t.Run("omits empty email", func(t *testing.T) {
		user := &gh.User{
			Login: gh.Ptr("asmith"),
			Email: gh.Ptr(""),
		}

		contact := memberContact(user)

		assert.Nil(t, contact.Emails)
	})
}
