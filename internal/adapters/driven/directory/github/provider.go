// Package github provides a directory provider backed by the members
// of a GitHub organisation.
package github

import (
	"context"
	"fmt"
	"net/http"
	"sync"
	"time"

	gh "github.com/google/go-github/v80/github"
	"golang.org/x/oauth2"
	"golang.org/x/time/rate"

	"github.com/veldt-labs/rolodex-cli/internal/core/domain"
	"github.com/veldt-labs/rolodex-cli/internal/core/ports/driven"
	"github.com/veldt-labs/rolodex-cli/internal/logger"
)

const (
	// DefaultTimeout is the default HTTP request timeout.
	DefaultTimeout = 30 * time.Second

	// ProactiveRate throttles profile hydration (~2 req/sec keeps a
	// full organisation listing well inside the 5000/hour quota).
	ProactiveRate = 2.0

	// ProactiveBurst is the token bucket burst size.
	ProactiveBurst = 5
)

// Ensure Provider implements the interface.
var _ driven.DirectoryProvider = (*Provider)(nil)

// Provider lists the members of a GitHub organisation as contacts.
// Member profiles are hydrated individually to pick up display names,
// public emails and company fields.
type Provider struct {
	gh      *gh.Client
	org     string
	limiter *rate.Limiter

	mu     sync.RWMutex
	cached []domain.Contact
	loaded bool
}

// NewProvider creates a provider for the given organisation. The token
// is a personal access token with read:org scope; it may be empty for
// public membership listings only.
func NewProvider(org, token string) *Provider {
	var hc *http.Client
	if token != "" {
		ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token})
		hc = oauth2.NewClient(context.Background(), ts)
	} else {
		hc = &http.Client{}
	}
	hc.Timeout = DefaultTimeout

	return &Provider{
		gh:      gh.NewClient(hc),
		org:     org,
		limiter: rate.NewLimiter(rate.Limit(ProactiveRate), ProactiveBurst),
	}
}

// FetchAll returns the organisation members as contacts, using the
// in-memory cache unless forceRefresh is set.
func (p *Provider) FetchAll(ctx context.Context, forceRefresh bool) ([]domain.Contact, error) {
	p.mu.RLock()
	if p.loaded && !forceRefresh {
		cached := p.cached
		p.mu.RUnlock()
		return cached, nil
	}
	p.mu.RUnlock()

	members, err := p.listMembers(ctx)
	if err != nil {
		return nil, err
	}

	contacts := make([]domain.Contact, 0, len(members))
	for _, member := range members {
		contact, err := p.hydrate(ctx, member)
		if err != nil {
			return nil, err
		}
		contacts = append(contacts, contact)
	}

	p.mu.Lock()
	p.cached = contacts
	p.loaded = true
	p.mu.Unlock()

	logger.Debug("github directory: loaded %d members from %s", len(contacts), p.org)
	return contacts, nil
}

// listMembers pages through the organisation member list.
func (p *Provider) listMembers(ctx context.Context) ([]*gh.User, error) {
	var members []*gh.User

	opts := &gh.ListMembersOptions{
		ListOptions: gh.ListOptions{PerPage: 100},
	}

	for {
		if err := p.limiter.Wait(ctx); err != nil {
			return nil, fmt.Errorf("rate limit wait: %w", err)
		}

		page, resp, err := p.gh.Organizations.ListMembers(ctx, p.org, opts)
		if err != nil {
			return nil, fmt.Errorf("%w: listing members of %s: %v", domain.ErrDirectoryUnavailable, p.org, err)
		}

		members = append(members, page...)

		if resp.NextPage == 0 {
			break
		}
		opts.Page = resp.NextPage
	}

	return members, nil
}

// hydrate fetches the full profile for a member. Listing only returns
// logins and avatars.
func (p *Provider) hydrate(ctx context.Context, member *gh.User) (domain.Contact, error) {
	login := member.GetLogin()

	if err := p.limiter.Wait(ctx); err != nil {
		return domain.Contact{}, fmt.Errorf("rate limit wait: %w", err)
	}

	user, _, err := p.gh.Users.Get(ctx, login)
	if err != nil {
		return domain.Contact{}, fmt.Errorf("%w: fetching profile %s: %v", domain.ErrDirectoryUnavailable, login, err)
	}

	return memberContact(user), nil
}

// memberContact maps a GitHub user profile to a contact. Users without
// a display name fall back to their login.
func memberContact(user *gh.User) domain.Contact {
	login := user.GetLogin()

	name := user.GetName()
	if name == "" {
		name = login
	}

	var emails []string
	if email := user.GetEmail(); email != "" {
		emails = []string{email}
	}

	return domain.Contact{
		ID:           "github:" + login,
		Name:         name,
		Emails:       emails,
		Organization: user.GetCompany(),
		PhotoURL:     user.GetAvatarURL(),
	}
}
