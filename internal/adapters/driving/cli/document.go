package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/docdeck/internal/core/domain"
	"github.com/custodia-labs/docdeck/internal/core/ports/driving"
)

var documentCmd = &cobra.Command{
	Use:   "document",
	Short: "Manage uploaded documents",
	Long: `Upload, list, view and delete documents, and work with their
AI-derived summaries, insights and related documents.`,
}

var documentIngestCmd = &cobra.Command{
	Use:   "ingest [file...]",
	Short: "Upload documents",
	Long: `Extracts the text of each file and stores it as a new document.

Accepted types: pdf, doc, docx, ppt, pptx, txt.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runDocumentIngest,
}

var documentListCmd = &cobra.Command{
	Use:   "list",
	Short: "List documents",
	Args:  cobra.NoArgs,
	RunE:  runDocumentList,
}

var documentShowCmd = &cobra.Command{
	Use:   "show [doc-id]",
	Short: "Print document content",
	Args:  cobra.ExactArgs(1),
	RunE:  runDocumentShow,
}

var documentDeleteCmd = &cobra.Command{
	Use:   "delete [doc-id]",
	Short: "Delete a document and its summary",
	Args:  cobra.ExactArgs(1),
	RunE:  runDocumentDelete,
}

var documentSummaryCmd = &cobra.Command{
	Use:   "summary [doc-id]",
	Short: "Show or generate a document summary",
	Long: `Shows the stored summary of a document, generating one first when none
exists. Use --regenerate to replace the stored summary.`,
	Args: cobra.ExactArgs(1),
	RunE: runDocumentSummary,
}

var documentInsightsCmd = &cobra.Command{
	Use:   "insights [doc-id]",
	Short: "Extract key insights from a document",
	Args:  cobra.ExactArgs(1),
	RunE:  runDocumentInsights,
}

var documentRelatedCmd = &cobra.Command{
	Use:   "related [doc-id]",
	Short: "Find documents related to a document",
	Args:  cobra.ExactArgs(1),
	RunE:  runDocumentRelated,
}

var documentExportCmd = &cobra.Command{
	Use:   "export [doc-id]",
	Short: "Export the summary or insights as a text file",
	Args:  cobra.ExactArgs(1),
	RunE:  runDocumentExport,
}

var (
	ingestMIMEType    string
	showParagraphs    bool
	regenerateSummary bool
	documentJSON      bool
	exportKind        string
	exportDir         string
)

func init() {
	documentIngestCmd.Flags().StringVar(&ingestMIMEType, "mime", "", "declared content type (default: from extension)")
	documentListCmd.Flags().BoolVar(&documentJSON, "json", false, "output as JSON")
	documentShowCmd.Flags().BoolVarP(&showParagraphs, "paragraphs", "p", false, "show classified paragraphs")
	documentSummaryCmd.Flags().BoolVar(&regenerateSummary, "regenerate", false, "replace the stored summary")
	documentExportCmd.Flags().StringVarP(&exportKind, "kind", "k", "summary", "what to export: summary or insights")
	documentExportCmd.Flags().StringVarP(&exportDir, "output", "o", ".", "output directory")

	documentCmd.AddCommand(documentIngestCmd)
	documentCmd.AddCommand(documentListCmd)
	documentCmd.AddCommand(documentShowCmd)
	documentCmd.AddCommand(documentDeleteCmd)
	documentCmd.AddCommand(documentSummaryCmd)
	documentCmd.AddCommand(documentInsightsCmd)
	documentCmd.AddCommand(documentRelatedCmd)
	documentCmd.AddCommand(documentExportCmd)
	rootCmd.AddCommand(documentCmd)
}

func runDocumentIngest(cmd *cobra.Command, args []string) error {
	if documentService == nil {
		return notConfigured("document service")
	}

	var failed int
	for _, path := range args {
		data, err := os.ReadFile(path)
		if err != nil {
			cmd.PrintErrf("  %s: %v\n", path, err)
			failed++
			continue
		}

		doc, err := documentService.Ingest(cmd.Context(), driving.Upload{
			Name:     filepath.Base(path),
			MIMEType: ingestMIMEType,
			Data:     data,
		})
		if err != nil {
			cmd.PrintErrf("  %s: %v\n", path, err)
			failed++
			continue
		}
		cmd.Printf("Ingested %s (%s, %d characters) as %s\n", doc.Name, doc.FileType, len(doc.Content), doc.ID)
	}

	if failed > 0 {
		return fmt.Errorf("%d of %d files failed", failed, len(args))
	}
	return nil
}

func runDocumentList(cmd *cobra.Command, _ []string) error {
	if documentService == nil {
		return notConfigured("document service")
	}

	docs, err := documentService.List(cmd.Context())
	if err != nil {
		return fmt.Errorf("failed to list documents: %w", err)
	}

	if documentJSON {
		type docInfo struct {
			ID        string `json:"id"`
			Name      string `json:"name"`
			FileType  string `json:"fileType"`
			DateAdded string `json:"dateAdded"`
		}
		infos := make([]docInfo, len(docs))
		for i := range docs {
			infos[i] = docInfo{
				ID:        docs[i].ID,
				Name:      docs[i].Name,
				FileType:  docs[i].FileType.String(),
				DateAdded: docs[i].DateAdded.Format(dateLayout),
			}
		}
		return printJSON(cmd, infos)
	}

	if len(docs) == 0 {
		cmd.Println("No documents found.")
		return nil
	}

	cmd.Println("Documents:")
	cmd.Println()
	for i := range docs {
		cmd.Printf("  %s\n", docs[i].ID)
		cmd.Printf("    Name: %s\n", docs[i].Name)
		cmd.Printf("    Type: %s\n", docs[i].FileType)
		cmd.Printf("    Added: %s\n", docs[i].DateAdded.Local().Format(dateLayout))
		cmd.Println()
	}
	cmd.Printf("Total: %d documents\n", len(docs))
	return nil
}

func runDocumentShow(cmd *cobra.Command, args []string) error {
	if documentService == nil {
		return notConfigured("document service")
	}

	if !showParagraphs {
		doc, err := documentService.Get(cmd.Context(), args[0])
		if err != nil {
			return fmt.Errorf("failed to get document: %w", err)
		}
		cmd.Println(doc.Content)
		return nil
	}

	paragraphs, err := documentService.Paragraphs(cmd.Context(), args[0])
	if err != nil {
		return fmt.Errorf("failed to get paragraphs: %w", err)
	}
	for _, p := range paragraphs {
		if p.Kind == domain.ParagraphHeading {
			cmd.Printf("## %s\n\n", p.Text)
			continue
		}
		cmd.Printf("%s\n\n", p.Text)
	}
	return nil
}

func runDocumentDelete(cmd *cobra.Command, args []string) error {
	if documentService == nil {
		return notConfigured("document service")
	}

	if err := documentService.Delete(cmd.Context(), args[0]); err != nil {
		return fmt.Errorf("failed to delete document: %w", err)
	}
	cmd.Printf("Deleted document %s\n", args[0])
	return nil
}

func runDocumentSummary(cmd *cobra.Command, args []string) error {
	if documentService == nil {
		return notConfigured("document service")
	}
	ctx := cmd.Context()

	var (
		summary *domain.Summary
		err     error
	)
	if !regenerateSummary {
		summary, err = documentService.GetSummary(ctx, args[0])
	}
	if regenerateSummary || errors.Is(err, domain.ErrNotFound) {
		summary, err = documentService.GenerateSummary(ctx, args[0])
	}
	if err != nil {
		return fmt.Errorf("failed to summarise document: %w", err)
	}

	cmd.Println(summary.Content)
	cmd.Println()
	cmd.Printf("Generated: %s\n", summary.DateGenerated.Local().Format(dateLayout))
	return nil
}

func runDocumentInsights(cmd *cobra.Command, args []string) error {
	if documentService == nil {
		return notConfigured("document service")
	}

	insights, err := documentService.Insights(cmd.Context(), args[0])
	if err != nil {
		return fmt.Errorf("failed to get insights: %w", err)
	}

	cmd.Println("Key insights:")
	cmd.Println()
	for i, insight := range insights {
		cmd.Printf("  %d. %s\n", i+1, insight)
	}
	return nil
}

func runDocumentRelated(cmd *cobra.Command, args []string) error {
	if documentService == nil {
		return notConfigured("document service")
	}

	related, err := documentService.Related(cmd.Context(), args[0])
	if err != nil {
		return fmt.Errorf("failed to find related documents: %w", err)
	}

	if len(related) == 0 {
		cmd.Println("No related documents found.")
		return nil
	}

	cmd.Println("Related documents:")
	cmd.Println()
	for _, r := range related {
		cmd.Printf("  %s (%s) %.0f%%\n", r.Name, r.FileType, r.Similarity*100)
		cmd.Printf("    ID: %s\n", r.ID)
	}
	return nil
}

func runDocumentExport(cmd *cobra.Command, args []string) error {
	if documentService == nil {
		return notConfigured("document service")
	}
	ctx := cmd.Context()

	var (
		export *driving.TextExport
		err    error
	)
	switch exportKind {
	case "summary":
		export, err = documentService.ExportSummary(ctx, args[0])
	case "insights":
		export, err = documentService.ExportInsights(ctx, args[0], nil)
	default:
		return fmt.Errorf("%w: unknown export kind %q (use summary or insights)", domain.ErrInvalidInput, exportKind)
	}
	if err != nil {
		return fmt.Errorf("failed to export %s: %w", exportKind, err)
	}

	path := filepath.Join(exportDir, export.FileName)
	if err := os.WriteFile(path, []byte(export.Content), 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	cmd.Printf("Wrote %s\n", path)
	return nil
}

// dateLayout is how dates are printed.
const dateLayout = "2006-01-02 15:04"

func printJSON(cmd *cobra.Command, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal output: %w", err)
	}
	cmd.Println(string(data))
	return nil
}
