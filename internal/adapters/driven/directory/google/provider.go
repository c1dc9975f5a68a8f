// Package google provides a directory provider backed by the Google
// People API. It lists the authenticated user's contacts.
package google

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"golang.org/x/oauth2"
	"golang.org/x/time/rate"
	"google.golang.org/api/option"
	"google.golang.org/api/people/v1"

	"github.com/veldt-labs/rolodex-cli/internal/core/domain"
	"github.com/veldt-labs/rolodex-cli/internal/core/ports/driven"
	"github.com/veldt-labs/rolodex-cli/internal/logger"
)

const (
	// personFields selects the profile fields fetched per connection.
	personFields = "names,emailAddresses,organizations,photos"

	// pageSize is the People API page size (max 1000).
	pageSize = 1000

	// requestsPerSecond throttles connection listing well below the
	// People API per-user quota.
	requestsPerSecond = 5.0

	// burstSize is the token bucket burst size.
	burstSize = 10
)

// Ensure Provider implements the interface.
var _ driven.DirectoryProvider = (*Provider)(nil)

// Provider lists the authenticated user's Google contacts.
type Provider struct {
	ts      oauth2.TokenSource
	limiter *rate.Limiter

	mu     sync.RWMutex
	svc    *people.Service
	cached []domain.Contact
	loaded bool
}

// NewProvider creates a provider using the given token source. The
// token must carry the contacts.readonly scope.
func NewProvider(ts oauth2.TokenSource) *Provider {
	return &Provider{
		ts:      ts,
		limiter: rate.NewLimiter(rate.Limit(requestsPerSecond), burstSize),
	}
}

// FetchAll returns the user's contacts, using the in-memory cache
// unless forceRefresh is set.
func (p *Provider) FetchAll(ctx context.Context, forceRefresh bool) ([]domain.Contact, error) {
	p.mu.RLock()
	if p.loaded && !forceRefresh {
		cached := p.cached
		p.mu.RUnlock()
		return cached, nil
	}
	p.mu.RUnlock()

	svc, err := p.service(ctx)
	if err != nil {
		return nil, err
	}

	var contacts []domain.Contact
	pageToken := ""
	for {
		if err := p.limiter.Wait(ctx); err != nil {
			return nil, fmt.Errorf("rate limit wait: %w", err)
		}

		call := svc.People.Connections.List("people/me").
			PersonFields(personFields).
			PageSize(pageSize).
			Context(ctx)
		if pageToken != "" {
			call = call.PageToken(pageToken)
		}

		resp, err := call.Do()
		if err != nil {
			return nil, fmt.Errorf("%w: listing connections: %v", domain.ErrDirectoryUnavailable, err)
		}

		for _, person := range resp.Connections {
			contact, ok := personContact(person)
			if !ok {
				continue
			}
			contacts = append(contacts, contact)
		}

		if resp.NextPageToken == "" {
			break
		}
		pageToken = resp.NextPageToken
	}

	p.mu.Lock()
	p.cached = contacts
	p.loaded = true
	p.mu.Unlock()

	logger.Debug("google directory: loaded %d contacts", len(contacts))
	return contacts, nil
}

// service initialises the People API client lazily.
func (p *Provider) service(ctx context.Context) (*people.Service, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.svc != nil {
		return p.svc, nil
	}

	svc, err := people.NewService(ctx, option.WithTokenSource(p.ts))
	if err != nil {
		return nil, fmt.Errorf("creating people service: %w", err)
	}
	p.svc = svc
	return svc, nil
}

// personContact maps a People API person to a contact. Persons with no
// usable display name are skipped.
func personContact(person *people.Person) (domain.Contact, bool) {
	if person == nil || person.ResourceName == "" {
		return domain.Contact{}, false
	}

	var name string
	for _, n := range person.Names {
		if n.DisplayName != "" {
			name = n.DisplayName
			break
		}
	}
	if name == "" {
		return domain.Contact{}, false
	}

	var emails []string
	for _, e := range person.EmailAddresses {
		if e.Value != "" {
			emails = append(emails, e.Value)
		}
	}

	var org string
	for _, o := range person.Organizations {
		if o.Name != "" {
			org = o.Name
			break
		}
	}

	var photoURL string
	for _, photo := range person.Photos {
		if photo.Url != "" {
			photoURL = photo.Url
			break
		}
	}

	// Resource names look like "people/c12345"; keep the stable part.
	id := "google:" + strings.TrimPrefix(person.ResourceName, "people/")

	return domain.Contact{
		ID:           id,
		Name:         name,
		Emails:       emails,
		Organization: org,
		PhotoURL:     photoURL,
	}, true
}
