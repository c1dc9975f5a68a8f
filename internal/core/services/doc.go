// Package services implements the driving port interfaces.
// Services contain the core business logic: the directory cache, the
// quick-search session controller and settings management. They
// orchestrate calls to driven ports (adapters) and hold no UI state.
package services
