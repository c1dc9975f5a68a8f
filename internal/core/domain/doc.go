// Package domain defines the core business entities for Rolodex.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - Contact: A directory record (identifier, name, emails, organisation)
//   - ScoredMatch: A contact paired with its relevance score for a query
//   - KeyEvent / Hotkey: Keyboard events and the overlay trigger combination
//   - AppSettings: Application configuration
//
// # Architectural Position
//
// Domain is at the centre of the hexagon. It may only import
// the Go standard library. All other packages depend on domain,
// never the reverse.
//
// # Import Rules
//
//   - Can Import: Standard library only
//   - Cannot Import: Any internal/ package, any external dependency
package domain
