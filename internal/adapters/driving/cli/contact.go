package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/veldt-labs/rolodex-cli/internal/core/domain"
)

// ContactWriter persists contacts to the local database.
type ContactWriter interface {
	SaveAll(ctx context.Context, contacts []domain.Contact) error
	Count(ctx context.Context) (int, error)
}

// contactStore is injected by the composition root.
var contactStore ContactWriter

// SetContactStore injects the local contact database.
func SetContactStore(w ContactWriter) {
	contactStore = w
}

var contactCmd = &cobra.Command{
	Use:   "contact",
	Short: "Manage the contact directory",
}

var contactListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all contacts",
	RunE:  runContactList,
}

var contactShowCmd = &cobra.Command{
	Use:   "show [id]",
	Short: "Show a single contact",
	Args:  cobra.ExactArgs(1),
	RunE:  runContactShow,
}

var contactImportCmd = &cobra.Command{
	Use:   "import [file]",
	Short: "Import contacts from a JSON file",
	Long: `Import contacts into the local database from a JSON file.

The file must contain an array of contact records:
  [
    {
      "id": "c-1",
      "name": "Alice Smith",
      "emails": ["alice@example.com"],
      "organization": "Example Corp",
      "photo_url": ""
    }
  ]

Records without an id or name are skipped.`,
	Args: cobra.ExactArgs(1),
	RunE: runContactImport,
}

var contactRefreshCmd = &cobra.Command{
	Use:   "refresh",
	Short: "Refetch the directory from its sources",
	RunE:  runContactRefresh,
}

func init() {
	contactCmd.AddCommand(contactListCmd)
	contactCmd.AddCommand(contactShowCmd)
	contactCmd.AddCommand(contactImportCmd)
	contactCmd.AddCommand(contactRefreshCmd)
	rootCmd.AddCommand(contactCmd)
}

func runContactList(cmd *cobra.Command, _ []string) error {
	if directoryService == nil {
		return errors.New("directory service not configured")
	}

	contacts, err := directoryService.LoadOrRefresh(cmd.Context(), false)
	if err != nil {
		return fmt.Errorf("loading directory: %w", err)
	}

	if len(contacts) == 0 {
		cmd.Println("No contacts in the directory.")
		return nil
	}

	cmd.Printf("%d contacts:\n\n", len(contacts))
	for _, c := range contacts {
		printContact(cmd, c)
	}
	return nil
}

func runContactShow(cmd *cobra.Command, args []string) error {
	if directoryService == nil {
		return errors.New("directory service not configured")
	}

	contacts, err := directoryService.LoadOrRefresh(cmd.Context(), false)
	if err != nil {
		return fmt.Errorf("loading directory: %w", err)
	}

	for _, c := range contacts {
		if c.ID == args[0] {
			printContact(cmd, c)
			return nil
		}
	}

	return fmt.Errorf("no contact with id %q", args[0])
}

func runContactImport(cmd *cobra.Command, args []string) error {
	if contactStore == nil {
		return errors.New("contact database not configured")
	}

	data, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("reading %s: %w", args[0], err)
	}

	var records []struct {
		ID           string   `json:"id"`
		Name         string   `json:"name"`
		Emails       []string `json:"emails"`
		Organization string   `json:"organization"`
		PhotoURL     string   `json:"photo_url"`
	}
	if err := json.Unmarshal(data, &records); err != nil {
		return fmt.Errorf("parsing %s: %w", args[0], err)
	}

	contacts := make([]domain.Contact, 0, len(records))
	skipped := 0
	for _, r := range records {
		if r.ID == "" || r.Name == "" {
			skipped++
			continue
		}
		contacts = append(contacts, domain.Contact{
			ID:           r.ID,
			Name:         r.Name,
			Emails:       r.Emails,
			Organization: r.Organization,
			PhotoURL:     r.PhotoURL,
		})
	}

	if err := contactStore.SaveAll(cmd.Context(), contacts); err != nil {
		return fmt.Errorf("saving contacts: %w", err)
	}

	total, err := contactStore.Count(cmd.Context())
	if err != nil {
		return fmt.Errorf("counting contacts: %w", err)
	}

	cmd.Printf("Imported %d contacts", len(contacts))
	if skipped > 0 {
		cmd.Printf(" (%d skipped)", skipped)
	}
	cmd.Printf("; database now holds %d.\n", total)
	return nil
}

func runContactRefresh(cmd *cobra.Command, _ []string) error {
	if directoryService == nil {
		return errors.New("directory service not configured")
	}

	contacts, err := directoryService.LoadOrRefresh(cmd.Context(), true)
	if err != nil {
		return fmt.Errorf("refreshing directory: %w", err)
	}

	cmd.Printf("Directory refreshed: %d contacts.\n", len(contacts))
	return nil
}

func printContact(cmd *cobra.Command, c domain.Contact) {
	cmd.Printf("  %s  %s\n", c.ID, c.DisplayName())
	if len(c.Emails) > 0 {
		cmd.Printf("      %s\n", strings.Join(c.Emails, ", "))
	}
	if c.Organization != "" {
		cmd.Printf("      %s\n", c.Organization)
	}
	cmd.Println()
}
