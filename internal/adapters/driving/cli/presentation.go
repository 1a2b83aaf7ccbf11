package cli

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/docdeck/internal/core/domain"
	"github.com/custodia-labs/docdeck/internal/core/ports/driving"
)

var presentationCmd = &cobra.Command{
	Use:     "presentation",
	Aliases: []string{"pres"},
	Short:   "Generate and manage slide presentations",
}

var presentationGenerateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate a presentation from text",
	Long: `Turns source text into a slide presentation using the AI provider.

The text comes from --text, from --file, from a stored document with
--document, or from standard input when none is given.

Themes: professional, creative, minimal, vibrant, or "ai" to let the
provider suggest one. Layouts: standard, modern, minimal (black on white).`,
	Args: cobra.NoArgs,
	RunE: runPresentationGenerate,
}

var presentationListCmd = &cobra.Command{
	Use:   "list",
	Short: "List presentations",
	Args:  cobra.NoArgs,
	RunE:  runPresentationList,
}

var presentationShowCmd = &cobra.Command{
	Use:   "show [presentation-id]",
	Short: "Preview a presentation in the terminal",
	Args:  cobra.ExactArgs(1),
	RunE:  runPresentationShow,
}

var presentationDeleteCmd = &cobra.Command{
	Use:   "delete [presentation-id]",
	Short: "Delete a presentation",
	Args:  cobra.ExactArgs(1),
	RunE:  runPresentationDelete,
}

var presentationExportCmd = &cobra.Command{
	Use:   "export [presentation-id]",
	Short: "Export a presentation as PDF",
	Long:  `Writes one landscape page per slide to <title>.pdf in the output directory.`,
	Args:  cobra.ExactArgs(1),
	RunE:  runPresentationExport,
}

var presentationThemesCmd = &cobra.Command{
	Use:   "themes",
	Short: "List available themes",
	Args:  cobra.NoArgs,
	RunE:  runPresentationThemes,
}

var (
	genTitle     string
	genText      string
	genFile      string
	genDocument  string
	genTheme     string
	genSlides    int
	genEnhance   bool
	genLayout    string
	presExportTo string
)

func init() {
	flags := presentationGenerateCmd.Flags()
	flags.StringVarP(&genTitle, "title", "t", "", "presentation title")
	flags.StringVar(&genText, "text", "", "source text")
	flags.StringVarP(&genFile, "file", "f", "", "read source text from a file")
	flags.StringVarP(&genDocument, "document", "d", "", "use the text of a stored document")
	flags.StringVar(&genTheme, "theme", "professional", "theme id, or ai")
	flags.IntVarP(&genSlides, "slides", "n", domain.DefaultSlideCount, "number of slides (1-10)")
	flags.BoolVar(&genEnhance, "enhance", false, "polish slides with a second AI pass")
	flags.StringVar(&genLayout, "layout", string(domain.LayoutStandard), "layout style: standard, modern or minimal")
	presentationGenerateCmd.MarkFlagsMutuallyExclusive("text", "file", "document")

	presentationExportCmd.Flags().StringVarP(&presExportTo, "output", "o", ".", "output directory")

	presentationCmd.AddCommand(presentationGenerateCmd)
	presentationCmd.AddCommand(presentationListCmd)
	presentationCmd.AddCommand(presentationShowCmd)
	presentationCmd.AddCommand(presentationDeleteCmd)
	presentationCmd.AddCommand(presentationExportCmd)
	presentationCmd.AddCommand(presentationThemesCmd)
	rootCmd.AddCommand(presentationCmd)
}

func runPresentationGenerate(cmd *cobra.Command, _ []string) error {
	if presentationService == nil {
		return notConfigured("presentation service")
	}

	text, title, err := generationSource(cmd)
	if err != nil {
		return err
	}

	p, err := presentationService.Generate(cmd.Context(), driving.GenerateRequest{
		Title:          title,
		Text:           text,
		ThemeChoice:    genTheme,
		NumSlides:      genSlides,
		UseEnhancement: genEnhance,
		LayoutStyle:    domain.LayoutStyle(genLayout),
	})
	if err != nil {
		return fmt.Errorf("failed to generate presentation: %w", err)
	}

	cmd.Printf("Created presentation %s\n\n", p.ID)
	cmd.Print(newSlidePreview(cmd.OutOrStdout()).Render(p))
	return nil
}

// generationSource returns the source text and title for generate.
// A stored document supplies its name as the default title.
func generationSource(cmd *cobra.Command) (text, title string, err error) {
	title = genTitle
	switch {
	case genText != "":
		text = genText
	case genFile != "":
		data, err := os.ReadFile(genFile)
		if err != nil {
			return "", "", fmt.Errorf("failed to read %s: %w", genFile, err)
		}
		text = string(data)
	case genDocument != "":
		if documentService == nil {
			return "", "", notConfigured("document service")
		}
		doc, err := documentService.Get(cmd.Context(), genDocument)
		if err != nil {
			return "", "", fmt.Errorf("failed to get document: %w", err)
		}
		text = doc.Content
		if title == "" {
			title = strings.TrimSuffix(doc.Name, filepath.Ext(doc.Name))
		}
	default:
		data, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return "", "", fmt.Errorf("failed to read stdin: %w", err)
		}
		text = string(data)
	}
	return text, title, nil
}

func runPresentationList(cmd *cobra.Command, _ []string) error {
	if presentationService == nil {
		return notConfigured("presentation service")
	}

	list, err := presentationService.List(cmd.Context())
	if err != nil {
		return fmt.Errorf("failed to list presentations: %w", err)
	}

	if len(list) == 0 {
		cmd.Println("No presentations found.")
		return nil
	}

	cmd.Println("Presentations:")
	cmd.Println()
	for i := range list {
		cmd.Printf("  %s\n", list[i].ID)
		cmd.Printf("    Title: %s\n", list[i].Title)
		cmd.Printf("    Slides: %d\n", len(list[i].Slides))
		cmd.Printf("    Theme: %s\n", list[i].Theme.Name)
		cmd.Printf("    Modified: %s\n", list[i].DateModified.Local().Format(dateLayout))
		cmd.Println()
	}
	cmd.Printf("Total: %d presentations\n", len(list))
	return nil
}

func runPresentationShow(cmd *cobra.Command, args []string) error {
	if presentationService == nil {
		return notConfigured("presentation service")
	}

	p, err := presentationService.Get(cmd.Context(), args[0])
	if err != nil {
		return fmt.Errorf("failed to get presentation: %w", err)
	}

	cmd.Print(newSlidePreview(cmd.OutOrStdout()).Render(p))
	return nil
}

func runPresentationDelete(cmd *cobra.Command, args []string) error {
	if presentationService == nil {
		return notConfigured("presentation service")
	}

	if err := presentationService.Delete(cmd.Context(), args[0]); err != nil {
		return fmt.Errorf("failed to delete presentation: %w", err)
	}
	cmd.Printf("Deleted presentation %s\n", args[0])
	return nil
}

func runPresentationExport(cmd *cobra.Command, args []string) (err error) {
	if presentationService == nil {
		return notConfigured("presentation service")
	}

	tmp, err := os.CreateTemp(presExportTo, ".docdeck-export-*.pdf")
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer func() {
		if err != nil {
			_ = os.Remove(tmp.Name())
		}
	}()

	name, err := presentationService.ExportPDF(cmd.Context(), args[0], tmp)
	if cerr := tmp.Close(); err == nil {
		err = cerr
	}
	if errors.Is(err, domain.ErrNotImplemented) {
		return errors.New("PDF export is not available in this build")
	}
	if err != nil {
		return fmt.Errorf("failed to export presentation: %w", err)
	}

	path := filepath.Join(presExportTo, name)
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	cmd.Printf("Wrote %s\n", path)
	return nil
}

func runPresentationThemes(cmd *cobra.Command, _ []string) error {
	if presentationService == nil {
		return notConfigured("presentation service")
	}

	cmd.Println("Themes:")
	cmd.Println()
	for _, t := range presentationService.Themes() {
		cmd.Printf("  %-14s %s (background %s, text %s, font %s)\n",
			t.ID, t.Name, t.BackgroundColor, t.TextColor, t.FontFamily)
	}
	cmd.Printf("  %-14s Let the AI provider suggest a theme\n", domain.ThemeChoiceAI)
	return nil
}
