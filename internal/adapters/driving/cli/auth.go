package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/oauth2"
	googleauth "golang.org/x/oauth2/google"

	"github.com/veldt-labs/rolodex-cli/internal/adapters/driving/oauth"
)

const peopleReadonlyScope = "https://www.googleapis.com/auth/contacts.readonly"

// googleTokenPath is where the obtained token is persisted. Injected
// by the composition root.
var googleTokenPath string

// SetGoogleTokenPath sets the file the Google token is saved to.
func SetGoogleTokenPath(path string) {
	googleTokenPath = path
}

var authCmd = &cobra.Command{
	Use:   "auth",
	Short: "Authorise directory sources",
}

var authGoogleCmd = &cobra.Command{
	Use:   "google",
	Short: "Authorise the Google People source",
	Long: `Run the browser-based OAuth flow for Google contacts.

Requires an OAuth client of type "Desktop app":
  ROLODEX_GOOGLE_CLIENT_ID      (required)
  ROLODEX_GOOGLE_CLIENT_SECRET  (required for non-PKCE-only clients)

The obtained token is stored under the rolodex config directory and
the Google source is enabled in settings.`,
	RunE: runAuthGoogle,
}

func init() {
	authCmd.AddCommand(authGoogleCmd)
	rootCmd.AddCommand(authCmd)
}

func runAuthGoogle(cmd *cobra.Command, _ []string) error {
	clientID := os.Getenv("ROLODEX_GOOGLE_CLIENT_ID")
	if clientID == "" {
		return errors.New("ROLODEX_GOOGLE_CLIENT_ID is not set")
	}
	if googleTokenPath == "" {
		return errors.New("token path not configured")
	}

	state := oauth.GenerateState()
	verifier := oauth.GenerateCodeVerifier()

	server := oauth.NewCallbackServer(0, state)
	if err := server.Start(); err != nil {
		return fmt.Errorf("starting callback server: %w", err)
	}
	defer func() { _ = server.Stop() }()

	config := &oauth2.Config{
		ClientID:     clientID,
		ClientSecret: os.Getenv("ROLODEX_GOOGLE_CLIENT_SECRET"),
		Endpoint:     googleauth.Endpoint,
		RedirectURL:  server.RedirectURI(),
		Scopes:       []string{peopleReadonlyScope},
	}

	authURL := config.AuthCodeURL(state,
		oauth2.AccessTypeOffline,
		oauth2.SetAuthURLParam("code_challenge", oauth.GenerateCodeChallenge(verifier)),
		oauth2.SetAuthURLParam("code_challenge_method", "S256"),
	)

	cmd.Println("Opening your browser for Google authorisation...")
	cmd.Println()
	cmd.Println("If it does not open, visit:")
	cmd.Println("  " + authURL)

	if err := oauth.OpenBrowser(authURL); err != nil {
		cmd.PrintErrf("could not open browser: %v\n", err)
	}

	code, err := server.WaitForCode(5 * time.Minute)
	if err != nil {
		return fmt.Errorf("waiting for authorisation: %w", err)
	}

	token, err := config.Exchange(cmd.Context(), code,
		oauth2.SetAuthURLParam("code_verifier", verifier))
	if err != nil {
		return fmt.Errorf("exchanging authorisation code: %w", err)
	}

	if err := saveToken(googleTokenPath, token); err != nil {
		return fmt.Errorf("saving token: %w", err)
	}

	if settingsService != nil {
		settings, err := settingsService.Get(cmd.Context())
		if err == nil && !settings.Directory.GoogleEnabled {
			settings.Directory.GoogleEnabled = true
			if err := settingsService.Update(cmd.Context(), settings); err != nil {
				cmd.PrintErrf("could not enable google source in settings: %v\n", err)
			}
		}
	}

	cmd.Println()
	cmd.Println("Google authorisation complete. The People source is now enabled.")
	return nil
}

func saveToken(path string, token *oauth2.Token) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return err
	}
	data, err := json.Marshal(token)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o600)
}
