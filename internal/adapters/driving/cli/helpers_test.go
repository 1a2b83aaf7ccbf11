package cli

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/docdeck/internal/adapters/driven/extract"
	"github.com/custodia-labs/docdeck/internal/adapters/driven/ids"
	"github.com/custodia-labs/docdeck/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/docdeck/internal/adapters/driven/storage/records"
	"github.com/custodia-labs/docdeck/internal/core/domain"
	"github.com/custodia-labs/docdeck/internal/core/ports/driven"
	"github.com/custodia-labs/docdeck/internal/core/ports/driving"
	"github.com/custodia-labs/docdeck/internal/core/services"
)

// scriptedLLM answers each gateway capability with a fixed response,
// keyed on a phrase of the built-in prompt templates.
type scriptedLLM struct{}

func (scriptedLLM) Generate(_ context.Context, prompt string, _ driven.GenerateOptions) (string, error) {
	switch {
	case strings.Contains(prompt, "presentation slides"):
		return `[{"title":"Intro","content":"Hello there"},{"title":"Next Steps","content":"Ship it"}]`, nil
	case strings.Contains(prompt, "comprehensive summary"):
		return "  A short summary.  ", nil
	case strings.Contains(prompt, "key insights"):
		return `["Revenue grew","Costs fell"]`, nil
	case strings.Contains(prompt, "Source document"):
		return `[{"documentIndex":1,"similarityScore":0.9}]`, nil
	default:
		return "", errors.New("unexpected prompt")
	}
}

func (scriptedLLM) ModelName() string           { return "scripted" }
func (scriptedLLM) Ping(_ context.Context) error { return nil }
func (scriptedLLM) Close() error                 { return nil }

// testServices is the state behind setupTestServices.
type testServices struct {
	documents *services.DocumentService
	settings  *services.SettingsService
}

// setupTestServices installs real services over in-memory stores.
// The returned cleanup restores empty services and default flags.
func setupTestServices() (*testServices, func()) {
	store := records.New(memory.NewKVStore())
	seq := ids.NewSequence("id")
	gateway := services.NewGateway(scriptedLLM{}, nil, seq)

	ts := &testServices{
		documents: services.NewDocumentService(store, extract.NewDefaultRegistry(), gateway, seq),
		settings: services.NewSettingsService(memory.NewConfigStore(), nil,
			services.WithEnvLookup(func(string) string { return "" })),
	}
	SetServices(ServiceSet{
		Document:     ts.documents,
		Search:       services.NewSearchService(store, gateway),
		Presentation: services.NewPresentationService(store, gateway, seq),
		Settings:     ts.settings,
	})

	return ts, func() {
		SetServices(ServiceSet{})
		resetFlags(rootCmd)
	}
}

func resetFlags(c *cobra.Command) {
	c.Flags().VisitAll(func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	})
	for _, sub := range c.Commands() {
		resetFlags(sub)
	}
}

// execute runs the root command with args and returns combined output.
func execute(args ...string) (string, error) {
	return executeWithInput("", args...)
}

func executeWithInput(stdin string, args ...string) (string, error) {
	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetIn(strings.NewReader(stdin))
	rootCmd.SetArgs(args)
	defer rootCmd.SetArgs(nil)

	err := rootCmd.Execute()
	return buf.String(), err
}

func ingestText(t *testing.T, ts *testServices, name, content string) *domain.Document {
	t.Helper()
	doc, err := ts.documents.Ingest(context.Background(), driving.Upload{Name: name, Data: []byte(content)})
	require.NoError(t, err)
	return doc
}
