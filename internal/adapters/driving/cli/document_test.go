package cli

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDocumentCmd_HasSubcommands(t *testing.T) {
	names := make([]string, 0, len(documentCmd.Commands()))
	for _, c := range documentCmd.Commands() {
		names = append(names, c.Name())
	}

	assert.ElementsMatch(t,
		[]string{"ingest", "list", "show", "delete", "summary", "insights", "related", "export"}, names)
}

func TestDocumentIngestCmd(t *testing.T) {
	ts, cleanup := setupTestServices()
	defer cleanup()

	dir := t.TempDir()
	good := filepath.Join(dir, "notes.txt")
	require.NoError(t, os.WriteFile(good, []byte("Quarterly notes"), 0o600))
	bad := filepath.Join(dir, "photo.png")
	require.NoError(t, os.WriteFile(bad, []byte("png"), 0o600))

	out, err := execute("document", "ingest", good, bad)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "1 of 2 files failed")
	assert.Contains(t, out, "Ingested notes.txt (txt, 15 characters)")
	assert.Contains(t, out, "photo.png")

	docs, err := ts.documents.List(t.Context())
	require.NoError(t, err)
	assert.Len(t, docs, 1)
}

func TestDocumentIngestCmd_RequiresArgs(t *testing.T) {
	_, cleanup := setupTestServices()
	defer cleanup()

	_, err := execute("document", "ingest")

	assert.Error(t, err)
}

func TestDocumentListCmd(t *testing.T) {
	ts, cleanup := setupTestServices()
	defer cleanup()

	out, err := execute("document", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "No documents found.")

	doc := ingestText(t, ts, "a.txt", "alpha")
	out, err = execute("document", "list")
	require.NoError(t, err)
	assert.Contains(t, out, doc.ID)
	assert.Contains(t, out, "Name: a.txt")
	assert.Contains(t, out, "Total: 1 documents")
}

func TestDocumentListCmd_JSON(t *testing.T) {
	ts, cleanup := setupTestServices()
	defer cleanup()
	ingestText(t, ts, "a.txt", "alpha")

	out, err := execute("document", "list", "--json")

	require.NoError(t, err)
	assert.Contains(t, out, `"name": "a.txt"`)
	assert.Contains(t, out, `"fileType": "txt"`)
	assert.NotContains(t, out, "alpha")
}

func TestDocumentShowCmd(t *testing.T) {
	ts, cleanup := setupTestServices()
	defer cleanup()
	doc := ingestText(t, ts, "a.txt", "OVERVIEW\n\nBody text here.")

	out, err := execute("document", "show", doc.ID)
	require.NoError(t, err)
	assert.Contains(t, out, "Body text here.")

	out, err = execute("document", "show", "--paragraphs", doc.ID)
	require.NoError(t, err)
	assert.Contains(t, out, "## OVERVIEW")
}

func TestDocumentShowCmd_Unknown(t *testing.T) {
	_, cleanup := setupTestServices()
	defer cleanup()

	_, err := execute("document", "show", "missing")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to get document")
}

func TestDocumentDeleteCmd(t *testing.T) {
	ts, cleanup := setupTestServices()
	defer cleanup()
	doc := ingestText(t, ts, "a.txt", "alpha")

	out, err := execute("document", "delete", doc.ID)

	require.NoError(t, err)
	assert.Contains(t, out, "Deleted document "+doc.ID)
	docs, err := ts.documents.List(t.Context())
	require.NoError(t, err)
	assert.Empty(t, docs)
}

func TestDocumentSummaryCmd(t *testing.T) {
	ts, cleanup := setupTestServices()
	defer cleanup()
	doc := ingestText(t, ts, "a.txt", "alpha beta")

	out, err := execute("document", "summary", doc.ID)

	require.NoError(t, err)
	assert.Contains(t, out, "A short summary.")
	stored, err := ts.documents.GetSummary(t.Context(), doc.ID)
	require.NoError(t, err)
	assert.Equal(t, "A short summary.", stored.Content)
}

func TestDocumentInsightsCmd(t *testing.T) {
	ts, cleanup := setupTestServices()
	defer cleanup()
	doc := ingestText(t, ts, "a.txt", "alpha beta")

	out, err := execute("document", "insights", doc.ID)

	require.NoError(t, err)
	assert.Contains(t, out, "1. Revenue grew")
	assert.Contains(t, out, "2. Costs fell")
}

func TestDocumentRelatedCmd(t *testing.T) {
	ts, cleanup := setupTestServices()
	defer cleanup()
	doc := ingestText(t, ts, "a.txt", "alpha")
	other := ingestText(t, ts, "b.txt", "beta")

	out, err := execute("document", "related", doc.ID)

	require.NoError(t, err)
	assert.Contains(t, out, "b.txt (txt) 90%")
	assert.Contains(t, out, other.ID)
}

func TestDocumentExportCmd(t *testing.T) {
	ts, cleanup := setupTestServices()
	defer cleanup()
	doc := ingestText(t, ts, "report.txt", "alpha")
	dir := t.TempDir()

	_, err := execute("document", "export", doc.ID, "--kind", "insights", "-o", dir)
	require.NoError(t, err)

	data, err := os.ReadFile(filepath.Join(dir, "report.txt_insights.txt"))
	require.NoError(t, err)
	assert.Contains(t, string(data), "Revenue grew")
}

func TestDocumentExportCmd_UnknownKind(t *testing.T) {
	ts, cleanup := setupTestServices()
	defer cleanup()
	doc := ingestText(t, ts, "report.txt", "alpha")

	_, err := execute("document", "export", doc.ID, "--kind", "slides")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown export kind")
}
