// Package sqlite provides a SQLite-backed contact store. It persists
// imported contacts under the data directory and serves them as a
// directory provider for the search pipeline.
package sqlite
