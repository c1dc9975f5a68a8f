// Package driven defines the interfaces that core calls OUT to infrastructure.
//
// These are the "driven" or "secondary" ports in hexagonal architecture.
// Core services depend on these interfaces, and infrastructure adapters
// implement them.
//
// # Required Interfaces
//
//   - DirectoryProvider: Fetches the contact directory
//   - PresentationPort: The only UI-facing effects the search core performs
//   - KeyEventSource: Delivers keyboard events for the global hotkey
//   - DetailView: Best-effort handoff target for a committed contact
//   - ConfigStore: Application configuration
//
// # Import Rules
//
//   - Can Import: domain package only
//   - Cannot Import: Any adapter package
package driven
