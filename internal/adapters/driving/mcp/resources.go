package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

const (
	// uriScheme is the custom URI scheme for rolodex resources.
	uriScheme = "rolodex://"
)

// registerResources registers all resource handlers with the MCP server.
func (s *Server) registerResources() {
	// Static resource for the whole directory.
	s.server.AddResource(&mcp.Resource{
		URI:         uriScheme + "contacts",
		Name:        "contacts",
		Description: "All contacts in the directory",
		MIMEType:    "application/json",
	}, s.handleContactsResource)

	// Template for a single contact.
	s.server.AddResourceTemplate(&mcp.ResourceTemplate{
		URITemplate: uriScheme + "contacts/{contactId}",
		Name:        "contact",
		Description: "A single contact by ID",
		MIMEType:    "application/json",
	}, s.handleContactResource)
}

// contactInfo is the wire representation of a contact resource.
type contactInfo struct {
	ID           string   `json:"id"`
	Name         string   `json:"name"`
	Emails       []string `json:"emails,omitempty"`
	Organization string   `json:"organization,omitempty"`
	PhotoURL     string   `json:"photo_url,omitempty"`
}

// handleContactsResource returns the full contact directory.
func (s *Server) handleContactsResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	contacts, err := s.ports.Directory.LoadOrRefresh(ctx, false)
	if err != nil {
		return nil, fmt.Errorf("loading directory: %w", err)
	}

	infos := make([]contactInfo, len(contacts))
	for i, c := range contacts {
		infos[i] = contactInfo{
			ID:           c.ID,
			Name:         c.Name,
			Emails:       c.Emails,
			Organization: c.Organization,
			PhotoURL:     c.PhotoURL,
		}
	}

	data, err := json.MarshalIndent(infos, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshalling contacts: %w", err)
	}

	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      req.Params.URI,
			MIMEType: "application/json",
			Text:     string(data),
		}},
	}, nil
}

// handleContactResource returns a single contact by ID.
func (s *Server) handleContactResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	contactID := extractContactID(req.Params.URI)
	if contactID == "" {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}

	contacts, err := s.ports.Directory.LoadOrRefresh(ctx, false)
	if err != nil {
		return nil, fmt.Errorf("loading directory: %w", err)
	}

	for _, c := range contacts {
		if c.ID != contactID {
			continue
		}

		data, err := json.MarshalIndent(contactInfo{
			ID:           c.ID,
			Name:         c.Name,
			Emails:       c.Emails,
			Organization: c.Organization,
			PhotoURL:     c.PhotoURL,
		}, "", "  ")
		if err != nil {
			return nil, fmt.Errorf("marshalling contact: %w", err)
		}

		return &mcp.ReadResourceResult{
			Contents: []*mcp.ResourceContents{{
				URI:      req.Params.URI,
				MIMEType: "application/json",
				Text:     string(data),
			}},
		}, nil
	}

	return nil, mcp.ResourceNotFoundError(req.Params.URI)
}

// extractContactID extracts the contact ID from a URI like rolodex://contacts/{contactId}.
func extractContactID(uri string) string {
	const prefix = uriScheme + "contacts/"

	if !strings.HasPrefix(uri, prefix) {
		return ""
	}

	return strings.TrimPrefix(uri, prefix)
}
