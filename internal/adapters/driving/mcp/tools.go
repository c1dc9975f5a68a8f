package mcp

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/veldt-labs/rolodex-cli/internal/core/domain"
)

// SearchContactsInput is the input schema for the search_contacts tool.
type SearchContactsInput struct {
	Query string `json:"query" jsonschema:"the name, email or organisation fragment to search for"`
	Limit int    `json:"limit,omitempty" jsonschema:"maximum number of results to return (default 10)"`
}

// SearchContactsOutput is the output schema for the search_contacts tool.
type SearchContactsOutput struct {
	Results []ContactMatchOutput `json:"results"`
	Count   int                  `json:"count"`
}

// ContactMatchOutput represents a single ranked contact match.
type ContactMatchOutput struct {
	ID           string   `json:"id"`
	Name         string   `json:"name"`
	Emails       []string `json:"emails,omitempty"`
	Organization string   `json:"organization,omitempty"`
	Score        int      `json:"score"`
	MatchedEmail string   `json:"matched_email,omitempty"`
}

// RefreshDirectoryInput is the input schema for the refresh_directory tool.
type RefreshDirectoryInput struct{}

// RefreshDirectoryOutput is the output schema for the refresh_directory tool.
type RefreshDirectoryOutput struct {
	Count int `json:"count"`
}

// registerTools registers all tool handlers with the MCP server.
func (s *Server) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "search_contacts",
		Description: "Search the contact directory by name, email or organisation",
	}, s.handleSearchContacts)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "refresh_directory",
		Description: "Re-fetch the contact directory from its providers",
	}, s.handleRefreshDirectory)
}

// handleSearchContacts handles the search_contacts tool invocation.
func (s *Server) handleSearchContacts(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input SearchContactsInput,
) (*mcp.CallToolResult, SearchContactsOutput, error) {
	limit := input.Limit
	if limit <= 0 {
		limit = domain.DefaultResultLimit
	}

	contacts, err := s.ports.Directory.LoadOrRefresh(ctx, false)
	if err != nil {
		return nil, SearchContactsOutput{}, err
	}

	matches := domain.RankContacts(contacts, input.Query, limit)

	output := SearchContactsOutput{
		Results: make([]ContactMatchOutput, len(matches)),
		Count:   len(matches),
	}

	for i := range matches {
		output.Results[i] = ContactMatchOutput{
			ID:           matches[i].Contact.ID,
			Name:         matches[i].Contact.Name,
			Emails:       matches[i].Contact.Emails,
			Organization: matches[i].Contact.Organization,
			Score:        matches[i].Score,
			MatchedEmail: matches[i].Detail.Email,
		}
	}

	return nil, output, nil
}

// handleRefreshDirectory handles the refresh_directory tool invocation.
func (s *Server) handleRefreshDirectory(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	_ RefreshDirectoryInput,
) (*mcp.CallToolResult, RefreshDirectoryOutput, error) {
	contacts, err := s.ports.Directory.LoadOrRefresh(ctx, true)
	if err != nil {
		return nil, RefreshDirectoryOutput{}, err
	}

	return nil, RefreshDirectoryOutput{Count: len(contacts)}, nil
}
