// Package file provides a directory provider backed by a local JSON
// contacts file. The file is cached in memory and the cache is
// invalidated when the file changes on disk.
package file

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/fsnotify/fsnotify"

	"github.com/veldt-labs/rolodex-cli/internal/core/domain"
	"github.com/veldt-labs/rolodex-cli/internal/core/ports/driven"
	"github.com/veldt-labs/rolodex-cli/internal/logger"
)

// Ensure Provider implements the interface.
var _ driven.DirectoryProvider = (*Provider)(nil)

// contactRecord is the on-disk representation of a contact.
type contactRecord struct {
	ID           string   `json:"id"`
	Name         string   `json:"name"`
	Emails       []string `json:"emails,omitempty"`
	Organization string   `json:"organization,omitempty"`
	PhotoURL     string   `json:"photo_url,omitempty"`
}

// Provider reads contacts from a JSON file on disk.
type Provider struct {
	path string

	mu      sync.RWMutex
	cached  []domain.Contact
	loaded  bool
	watcher *fsnotify.Watcher
	done    chan struct{}
}

// NewProvider creates a provider for the given contacts file path.
func NewProvider(path string) *Provider {
	return &Provider{path: path}
}

// FetchAll returns the contacts from the file, using the in-memory
// cache unless forceRefresh is set or the cache has been invalidated.
func (p *Provider) FetchAll(_ context.Context, forceRefresh bool) ([]domain.Contact, error) {
	p.mu.RLock()
	if p.loaded && !forceRefresh {
		cached := p.cached
		p.mu.RUnlock()
		return cached, nil
	}
	p.mu.RUnlock()

	return p.reload()
}

// reload reads and parses the contacts file, replacing the cache.
func (p *Provider) reload() ([]domain.Contact, error) {
	data, err := os.ReadFile(p.path)
	if err != nil {
		return nil, fmt.Errorf("reading contacts file: %w", err)
	}

	var records []contactRecord
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("parsing contacts file: %w", err)
	}

	contacts := make([]domain.Contact, 0, len(records))
	for _, r := range records {
		if r.ID == "" || r.Name == "" {
			continue
		}
		contacts = append(contacts, domain.Contact{
			ID:           r.ID,
			Name:         r.Name,
			Emails:       r.Emails,
			Organization: r.Organization,
			PhotoURL:     r.PhotoURL,
		})
	}

	p.mu.Lock()
	p.cached = contacts
	p.loaded = true
	p.mu.Unlock()

	logger.Debug("file directory: loaded %d contacts from %s", len(contacts), p.path)
	return contacts, nil
}

// Watch starts watching the contacts file for changes. When the file
// is modified the cache is invalidated so the next fetch re-reads it.
// Returns a stop function.
func (p *Provider) Watch() (func(), error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("creating watcher: %w", err)
	}

	// Watch the containing directory since editors often replace
	// files rather than writing in place.
	dir := filepath.Dir(p.path)
	if err := watcher.Add(dir); err != nil {
		watcher.Close()
		return nil, fmt.Errorf("watching %s: %w", dir, err)
	}

	p.mu.Lock()
	p.watcher = watcher
	p.done = make(chan struct{})
	done := p.done
	p.mu.Unlock()

	go func() {
		for {
			select {
			case event, ok := <-watcher.Events:
				if !ok {
					return
				}
				if filepath.Clean(event.Name) != filepath.Clean(p.path) {
					continue
				}
				if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) != 0 {
					p.invalidate()
				}
			case _, ok := <-watcher.Errors:
				if !ok {
					return
				}
			case <-done:
				return
			}
		}
	}()

	stop := func() {
		p.mu.Lock()
		if p.done != nil {
			close(p.done)
			p.done = nil
		}
		if p.watcher != nil {
			p.watcher.Close()
			p.watcher = nil
		}
		p.mu.Unlock()
	}
	return stop, nil
}

// invalidate drops the cache so the next fetch re-reads the file.
func (p *Provider) invalidate() {
	p.mu.Lock()
	p.loaded = false
	p.cached = nil
	p.mu.Unlock()
	logger.Debug("file directory: %s changed, cache invalidated", p.path)
}
