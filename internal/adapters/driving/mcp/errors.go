// Package mcp provides an MCP (Model Context Protocol) server adapter for rolodex.
// It enables AI assistants to search the local contact directory.
package mcp

import "errors"

// ErrMissingDirectoryService is returned when the directory service is not provided.
var ErrMissingDirectoryService = errors.New("mcp: directory service is required")
