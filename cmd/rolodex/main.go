// Command rolodex is a contact directory with a hotkey-triggered
// quick-search overlay.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/oauth2"
	googleauth "golang.org/x/oauth2/google"

	"github.com/veldt-labs/rolodex-cli/internal/adapters/driven/config/file"
	filedir "github.com/veldt-labs/rolodex-cli/internal/adapters/driven/directory/file"
	"github.com/veldt-labs/rolodex-cli/internal/adapters/driven/directory/github"
	"github.com/veldt-labs/rolodex-cli/internal/adapters/driven/directory/google"
	"github.com/veldt-labs/rolodex-cli/internal/adapters/driven/directory/multi"
	"github.com/veldt-labs/rolodex-cli/internal/adapters/driven/storage/sqlite"
	"github.com/veldt-labs/rolodex-cli/internal/adapters/driving/cli"
	"github.com/veldt-labs/rolodex-cli/internal/adapters/driving/tui"
	"github.com/veldt-labs/rolodex-cli/internal/core/domain"
	"github.com/veldt-labs/rolodex-cli/internal/core/ports/driven"
	"github.com/veldt-labs/rolodex-cli/internal/core/services"
	"github.com/veldt-labs/rolodex-cli/internal/logger"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	configDir, err := resolveConfigDir()
	if err != nil {
		return fmt.Errorf("resolving config directory: %w", err)
	}

	configStore, err := file.NewConfigStore(configDir)
	if err != nil {
		return fmt.Errorf("opening config store: %w", err)
	}

	stopConfigWatch, err := configStore.Watch(func() {
		logger.Debug("config file changed on disk, reloaded")
	})
	if err != nil {
		logger.Warn("config watch unavailable: %v", err)
	} else {
		defer stopConfigWatch()
	}

	settingsService := services.NewSettingsService(configStore)

	settings, err := settingsService.Get(context.Background())
	if err != nil {
		logger.Warn("stored settings unreadable, using defaults: %v", err)
		settings = domain.DefaultAppSettings()
	}

	store, err := sqlite.NewStore(filepath.Join(configDir, "data"))
	if err != nil {
		return fmt.Errorf("opening contact database: %w", err)
	}
	defer store.Close()

	googleTokenPath := filepath.Join(configDir, "google_token.json")

	provider, stopProviderWatch := buildProvider(store, settings.Directory, googleTokenPath)
	if stopProviderWatch != nil {
		defer stopProviderWatch()
	}

	directoryService := services.NewDirectoryService(provider)

	presenter := tui.NewPresenter()
	keys := tui.NewKeySource()

	hotkey, err := domain.ParseHotkey(settings.Search.Hotkey)
	if err != nil {
		hotkey = domain.DefaultHotkey()
	}

	quickSearch := services.NewQuickSearchService(
		directoryService,
		presenter,
		presenter,
		services.QuickSearchConfig{
			Debounce:   settings.Search.OverlayDebounce,
			MaxResults: settings.Search.MaxResults,
			Hotkey:     hotkey,
		},
	).Attach(keys)
	defer quickSearch.Detach()

	cli.SetServices(cli.Services{
		Directory: directoryService,
		Settings:  settingsService,
	})
	cli.SetContactStore(store)
	cli.SetGoogleTokenPath(googleTokenPath)
	cli.SetTUIConfig(&cli.TUIConfig{
		QuickSearch:      quickSearch,
		DirectoryService: directoryService,
		SettingsService:  settingsService,
		Presenter:        presenter,
		Keys:             keys,
	})

	return cli.Execute()
}

// resolveConfigDir returns the rolodex config directory. The --config
// flag wins, then ROLODEX_CONFIG_DIR, then ~/.rolodex. The flag is
// read from os.Args directly because the services it configures must
// exist before cobra parses anything.
func resolveConfigDir() (string, error) {
	for i, arg := range os.Args {
		if arg == "--config" && i+1 < len(os.Args) {
			return os.Args[i+1], nil
		}
		if v, ok := strings.CutPrefix(arg, "--config="); ok {
			return v, nil
		}
	}
	if dir := os.Getenv("ROLODEX_CONFIG_DIR"); dir != "" {
		return dir, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".rolodex"), nil
}

// buildProvider assembles the directory provider chain from the
// configured sources. The local database is always included so
// imported contacts survive source outages; remote sources layer on
// top of it. Returns an optional stop function for file watching.
func buildProvider(store *sqlite.Store, cfg domain.DirectorySettings, googleTokenPath string) (driven.DirectoryProvider, func()) {
	providers := []driven.DirectoryProvider{store}
	var stop func()

	if cfg.ContactsFile != "" {
		fp := filedir.NewProvider(cfg.ContactsFile)
		if s, err := fp.Watch(); err != nil {
			logger.Warn("contacts file watch unavailable: %v", err)
		} else {
			stop = s
		}
		providers = append(providers, fp)
	}

	if cfg.GitHubOrg != "" {
		providers = append(providers, github.NewProvider(cfg.GitHubOrg, cfg.GitHubToken))
	}

	if cfg.GoogleEnabled {
		ts, err := googleTokenSource(googleTokenPath)
		if err != nil {
			logger.Warn("google source enabled but unusable, run 'rolodex auth google': %v", err)
		} else {
			providers = append(providers, google.NewProvider(ts))
		}
	}

	return multi.NewProvider(providers...), stop
}

// googleTokenSource builds a token source from the saved token file,
// refreshing through the configured OAuth client when possible.
func googleTokenSource(path string) (oauth2.TokenSource, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading token: %w", err)
	}

	var token oauth2.Token
	if err := json.Unmarshal(data, &token); err != nil {
		return nil, fmt.Errorf("parsing token: %w", err)
	}

	clientID := os.Getenv("ROLODEX_GOOGLE_CLIENT_ID")
	if clientID == "" {
		// No client to refresh with; works until the token expires.
		return oauth2.StaticTokenSource(&token), nil
	}

	config := &oauth2.Config{
		ClientID:     clientID,
		ClientSecret: os.Getenv("ROLODEX_GOOGLE_CLIENT_SECRET"),
		Endpoint:     googleauth.Endpoint,
	}
	return config.TokenSource(context.Background(), &token), nil
}
