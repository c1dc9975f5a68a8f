package sqlite

import (
	"context"
	"database/sql"
	"embed"
	"encoding/json"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/veldt-labs/rolodex-cli/internal/adapters/driven/storage/sqlite/migrations"
	"github.com/veldt-labs/rolodex-cli/internal/core/domain"
	"github.com/veldt-labs/rolodex-cli/internal/core/ports/driven"
)

// Ensure Store implements the interface.
var _ driven.DirectoryProvider = (*Store)(nil)

// Store is a SQLite-backed contact store. It acts as a directory
// provider for contacts imported into the local database.
type Store struct {
	db   *sql.DB
	path string
}

// NewStore creates a new SQLite store at the specified data directory.
// If dataDir is empty, defaults to ~/.rolodex/data/contacts.db.
func NewStore(dataDir string) (*Store, error) {
	if dataDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("getting home directory: %w", err)
		}
		dataDir = filepath.Join(home, ".rolodex", "data")
	}

	// Ensure directory exists
	if err := os.MkdirAll(dataDir, 0700); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}

	dbPath := filepath.Join(dataDir, "contacts.db")

	// Open database with WAL mode for better concurrency
	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	s := &Store{
		db:   db,
		path: dbPath,
	}

	// Run migrations
	if err := s.migrate(migrations.FS); err != nil {
		db.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}

	return s, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Path returns the database file path.
func (s *Store) Path() string {
	return s.path
}

// migrate runs all pending migrations.
func (s *Store) migrate(fsys embed.FS) error {
	// Ensure schema_migrations table exists
	_, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version INTEGER PRIMARY KEY,
			applied_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)
	`)
	if err != nil {
		return fmt.Errorf("creating schema_migrations table: %w", err)
	}

	// Get current version
	var currentVersion int
	row := s.db.QueryRow("SELECT COALESCE(MAX(version), 0) FROM schema_migrations")
	if err := row.Scan(&currentVersion); err != nil {
		return fmt.Errorf("getting current version: %w", err)
	}

	entries, err := fs.ReadDir(fsys, ".")
	if err != nil {
		return fmt.Errorf("reading migrations directory: %w", err)
	}

	var upFiles []string
	for _, entry := range entries {
		name := entry.Name()
		if strings.HasSuffix(name, ".up.sql") {
			upFiles = append(upFiles, name)
		}
	}
	sort.Strings(upFiles)

	for _, name := range upFiles {
		// Extract version number (e.g., "001_initial.up.sql" -> 1)
		var version int
		if _, err := fmt.Sscanf(name, "%d_", &version); err != nil {
			continue
		}

		if version <= currentVersion {
			continue
		}

		content, err := fs.ReadFile(fsys, name)
		if err != nil {
			return fmt.Errorf("reading migration %s: %w", name, err)
		}

		if _, err := s.db.Exec(string(content)); err != nil {
			return fmt.Errorf("executing migration %s: %w", name, err)
		}

		if _, err := s.db.Exec("INSERT INTO schema_migrations (version) VALUES (?)", version); err != nil {
			return fmt.Errorf("recording migration %s: %w", name, err)
		}
	}

	return nil
}

// FetchAll returns every stored contact ordered by name.
func (s *Store) FetchAll(ctx context.Context, _ bool) ([]domain.Contact, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, name, emails, organization, photo_url
		FROM contacts
		ORDER BY name COLLATE NOCASE, id
	`)
	if err != nil {
		return nil, fmt.Errorf("querying contacts: %w", err)
	}
	defer rows.Close()

	var contacts []domain.Contact //nolint:prealloc // size unknown from query
	for rows.Next() {
		contact, err := scanContact(rows)
		if err != nil {
			return nil, err
		}
		contacts = append(contacts, *contact)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating contacts: %w", err)
	}

	return contacts, nil
}

// Save stores or updates a contact.
func (s *Store) Save(ctx context.Context, contact domain.Contact) error {
	if contact.ID == "" || contact.Name == "" {
		return domain.ErrInvalidInput
	}

	emailsJSON, err := json.Marshal(contact.Emails)
	if err != nil {
		return fmt.Errorf("marshalling emails: %w", err)
	}

	now := time.Now().UTC()
	_, err = s.db.ExecContext(ctx, `
		INSERT INTO contacts (id, name, emails, organization, photo_url, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			name = excluded.name,
			emails = excluded.emails,
			organization = excluded.organization,
			photo_url = excluded.photo_url,
			updated_at = excluded.updated_at
	`, contact.ID, contact.Name, string(emailsJSON), contact.Organization, contact.PhotoURL, now, now)

	if err != nil {
		return fmt.Errorf("saving contact: %w", err)
	}
	return nil
}

// SaveAll stores or updates a batch of contacts in one transaction.
func (s *Store) SaveAll(ctx context.Context, contacts []domain.Contact) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO contacts (id, name, emails, organization, photo_url, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			name = excluded.name,
			emails = excluded.emails,
			organization = excluded.organization,
			photo_url = excluded.photo_url,
			updated_at = excluded.updated_at
	`)
	if err != nil {
		return fmt.Errorf("preparing statement: %w", err)
	}
	defer stmt.Close()

	now := time.Now().UTC()
	for _, contact := range contacts {
		if contact.ID == "" || contact.Name == "" {
			return domain.ErrInvalidInput
		}

		emailsJSON, err := json.Marshal(contact.Emails)
		if err != nil {
			return fmt.Errorf("marshalling emails: %w", err)
		}

		if _, err := stmt.ExecContext(ctx, contact.ID, contact.Name, string(emailsJSON),
			contact.Organization, contact.PhotoURL, now, now); err != nil {
			return fmt.Errorf("saving contact %s: %w", contact.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing transaction: %w", err)
	}
	return nil
}

// Get retrieves a contact by ID.
func (s *Store) Get(ctx context.Context, id string) (*domain.Contact, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, name, emails, organization, photo_url
		FROM contacts WHERE id = ?
	`, id)

	var contact domain.Contact
	var emailsJSON string
	if err := row.Scan(&contact.ID, &contact.Name, &emailsJSON,
		&contact.Organization, &contact.PhotoURL); err != nil {
		if err == sql.ErrNoRows {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("scanning contact: %w", err)
	}

	if err := json.Unmarshal([]byte(emailsJSON), &contact.Emails); err != nil {
		return nil, fmt.Errorf("unmarshalling emails: %w", err)
	}

	return &contact, nil
}

// Delete removes a contact.
func (s *Store) Delete(ctx context.Context, id string) error {
	_, err := s.db.ExecContext(ctx, "DELETE FROM contacts WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("deleting contact: %w", err)
	}
	return nil
}

// Count returns the number of stored contacts.
func (s *Store) Count(ctx context.Context) (int, error) {
	var count int
	err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM contacts").Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("counting contacts: %w", err)
	}
	return count, nil
}

// scanContact scans a contact from *sql.Rows.
func scanContact(rows *sql.Rows) (*domain.Contact, error) {
	var contact domain.Contact
	var emailsJSON string

	if err := rows.Scan(&contact.ID, &contact.Name, &emailsJSON,
		&contact.Organization, &contact.PhotoURL); err != nil {
		return nil, fmt.Errorf("scanning contact: %w", err)
	}

	if err := json.Unmarshal([]byte(emailsJSON), &contact.Emails); err != nil {
		return nil, fmt.Errorf("unmarshalling emails: %w", err)
	}

	return &contact, nil
}
