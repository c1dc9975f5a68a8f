package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/veldt-labs/rolodex-cli/internal/core/domain"
)

var (
	searchLimit   int
	searchJSON    bool
	searchRefresh bool
)

var searchCmd = &cobra.Command{
	Use:   "search [query]",
	Short: "Search the contact directory",
	Long: `Ranks contacts against the query and prints the best matches.
Names, email addresses and organisations all contribute to the score;
name matches rank highest, then emails, then organisations.`,
	Args: cobra.ExactArgs(1),
	RunE: runSearch,
}

func init() {
	searchCmd.Flags().IntVarP(&searchLimit, "limit", "n", domain.DefaultResultLimit, "maximum number of results")
	searchCmd.Flags().BoolVar(&searchJSON, "json", false, "output results as JSON")
	searchCmd.Flags().BoolVar(&searchRefresh, "refresh", false, "refetch the directory before searching")
	rootCmd.AddCommand(searchCmd)
}

func runSearch(cmd *cobra.Command, args []string) error {
	query := args[0]

	if directoryService == nil {
		return errors.New("directory service not configured")
	}

	ctx := context.Background()

	contacts, err := directoryService.LoadOrRefresh(ctx, searchRefresh)
	if err != nil {
		return fmt.Errorf("loading directory: %w", err)
	}

	matches := domain.RankContacts(contacts, query, searchLimit)

	if searchJSON {
		return outputSearchJSON(cmd, matches)
	}

	return outputSearchTable(cmd, matches)
}

func outputSearchJSON(cmd *cobra.Command, matches []domain.ScoredMatch) error {
	data, err := json.MarshalIndent(matches, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal results: %w", err)
	}
	cmd.Println(string(data))
	return nil
}

func outputSearchTable(cmd *cobra.Command, matches []domain.ScoredMatch) error {
	if len(matches) == 0 {
		cmd.Println("No matching contacts.")
		return nil
	}

	cmd.Println("Matches:")
	cmd.Println()
	for i, m := range matches {
		cmd.Printf("  [%d] %s (%d)\n", i+1, m.Contact.DisplayName(), m.Score)
		if len(m.Contact.Emails) > 0 {
			cmd.Printf("      %s\n", strings.Join(m.Contact.Emails, ", "))
		}
		if m.Contact.Organization != "" {
			cmd.Printf("      %s\n", m.Contact.Organization)
		}
		cmd.Println()
	}

	return nil
}
