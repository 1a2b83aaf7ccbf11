// Package cli provides the docdeck command-line interface.
package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/docdeck/internal/core/ports/driving"
	"github.com/custodia-labs/docdeck/internal/logger"
)

// version is set at build time via -ldflags.
var version = "dev"

// Services wired by bootstrap, or injected by tests through SetServices.
var (
	documentService     driving.DocumentService
	searchService       driving.SearchService
	presentationService driving.PresentationService
	settingsService     driving.SettingsService

	// app is non-nil when the services were built by bootstrap.
	app *App
)

var (
	verbose   bool
	configDir string
)

var rootCmd = &cobra.Command{
	Use:   "docdeck",
	Short: "Document assistant: search, summarise and turn text into slides",
	Long: `docdeck keeps a local library of uploaded documents (PDF, Word, PowerPoint,
plain text) and offers lexical search, AI summaries, insights, related
documents and slide presentation generation.

AI features use the configured text generation provider. Without one they
fall back to plain search and placeholder content.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
		logger.SetVerbose(verbose)
		if !needsServices(cmd) || servicesReady() {
			return nil
		}

		a, err := Bootstrap(cmd.Context(), configDir)
		if err != nil {
			return err
		}
		app = a
		SetServices(a.Services())
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
	rootCmd.PersistentFlags().StringVar(&configDir, "config-dir", "",
		"configuration and data directory (default ~/.docdeck)")
}

// ServiceSet groups the driving ports the commands run against.
type ServiceSet struct {
	Document     driving.DocumentService
	Search       driving.SearchService
	Presentation driving.PresentationService
	Settings     driving.SettingsService
}

// SetServices installs the services used by every command.
func SetServices(s ServiceSet) {
	documentService = s.Document
	searchService = s.Search
	presentationService = s.Presentation
	settingsService = s.Settings
}

// Execute runs the root command and releases bootstrapped resources.
func Execute() error {
	defer logger.Sync()
	err := rootCmd.Execute()
	if app != nil {
		if cerr := app.Close(); cerr != nil {
			logger.Warn("Shutdown: %v", cerr)
		}
		app = nil
	}
	return err
}

func servicesReady() bool {
	return documentService != nil && searchService != nil &&
		presentationService != nil && settingsService != nil
}

// needsServices reports whether cmd runs against the services.
func needsServices(cmd *cobra.Command) bool {
	for c := cmd; c != nil; c = c.Parent() {
		switch c.Name() {
		case versionCmd.Name(), "help", "completion", cobra.ShellCompRequestCmd:
			return false
		}
	}
	return cmd.Runnable()
}

var errNotConfigured = errors.New("service not configured")

func notConfigured(name string) error {
	return fmt.Errorf("%s %w", name, errNotConfigured)
}
