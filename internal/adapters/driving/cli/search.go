package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/docdeck/internal/core/domain"
)

var (
	searchLimit int
	searchJSON  bool
	searchAI    bool
)

var searchCmd = &cobra.Command{
	Use:   "search [query]",
	Short: "Search uploaded documents",
	Long: `Searches every paragraph of every document for the query terms and
returns the best matching snippets first.

With --ai, queries longer than three words are answered by the AI provider,
which judges relevance by meaning. Short queries and provider failures fall
back to keyword search.`,
	Args: cobra.ExactArgs(1),
	RunE: runSearch,
}

func init() {
	searchCmd.Flags().IntVarP(&searchLimit, "limit", "n", 10, "maximum number of results")
	searchCmd.Flags().BoolVar(&searchJSON, "json", false, "output results as JSON")
	searchCmd.Flags().BoolVar(&searchAI, "ai", false, "use AI-enhanced search")
	rootCmd.AddCommand(searchCmd)
}

func runSearch(cmd *cobra.Command, args []string) error {
	if searchService == nil {
		return notConfigured("search service")
	}

	query := args[0]
	ctx := cmd.Context()

	var (
		results []domain.SearchResult
		err     error
	)
	if searchAI {
		results, err = searchService.EnhancedSearch(ctx, query)
	} else {
		results, err = searchService.Search(ctx, query)
	}
	if err != nil {
		return fmt.Errorf("search failed: %w", err)
	}

	if searchLimit > 0 && len(results) > searchLimit {
		results = results[:searchLimit]
	}

	if searchJSON {
		return printJSON(cmd, results)
	}

	return outputSearchTable(cmd, results)
}

func outputSearchTable(cmd *cobra.Command, results []domain.SearchResult) error {
	if len(results) == 0 {
		cmd.Println("No results found.")
		return nil
	}

	cmd.Println("Results:")
	cmd.Println()
	for i := range results {
		// Format: [N] Name (type) score
		cmd.Printf("  [%d] %s (%s) %.2f\n", i+1, results[i].DocumentName,
			results[i].DocumentType, results[i].RelevanceScore)
		cmd.Printf("      ID: %s\n", results[i].DocumentID)
		if results[i].Snippet != "" {
			cmd.Printf("      %s\n", results[i].Snippet)
		}
		cmd.Println()
	}

	return nil
}
