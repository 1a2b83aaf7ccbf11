package records

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/custodia-labs/docdeck/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/docdeck/internal/core/domain"
	"github.com/custodia-labs/docdeck/internal/logger"
)

var (
	t0 = time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)
	t1 = time.Date(2024, 3, 2, 10, 30, 0, 0, time.UTC)
)

// fixedClock returns successive times from a list, repeating the last.
func fixedClock(times ...time.Time) func() time.Time {
	i := 0
	return func() time.Time {
		t := times[i]
		if i < len(times)-1 {
			i++
		}
		return t
	}
}

func newTestStore(now func() time.Time) (*Store, *memory.KVStore) {
	kv := memory.NewKVStore()
	return New(kv, WithClock(now)), kv
}

func testPresentation(id string) domain.Presentation {
	theme := domain.FallbackTheme()
	return domain.Presentation{
		ID:    id,
		Title: "Quarterly Review",
		Slides: []domain.Slide{
			{ID: "s1", Title: "Intro", Content: "Hello", BackgroundColor: theme.BackgroundColor, TextColor: theme.TextColor},
			{ID: "s2", Title: "Numbers", Content: "• up\n• down", ImageURL: "https://example.com/a.png"},
		},
		Theme:        theme,
		DateCreated:  t0,
		DateModified: t0,
	}
}

func TestSavePresentation_RoundTrip(t *testing.T) {
	ctx := context.Background()
	store, _ := newTestStore(fixedClock(t1))
	p := testPresentation("p1")

	saved, err := store.SavePresentation(ctx, p)
	require.NoError(t, err)
	assert.Equal(t, p, saved)

	got, err := store.GetPresentation(ctx, "p1")
	require.NoError(t, err)
	assert.Equal(t, p, *got)
}

func TestSavePresentation_ExistingKeepsCreatedAndAdvancesModified(t *testing.T) {
	ctx := context.Background()
	store, _ := newTestStore(fixedClock(t1))
	p := testPresentation("p1")
	_, err := store.SavePresentation(ctx, p)
	require.NoError(t, err)

	edited := p
	edited.Title = "Edited"
	edited.DateCreated = t1.Add(time.Hour)
	saved, err := store.SavePresentation(ctx, edited)
	require.NoError(t, err)

	assert.Equal(t, t0, saved.DateCreated)
	assert.Equal(t, t1, saved.DateModified)
	assert.False(t, saved.DateModified.Before(p.DateModified))

	all, err := store.ListPresentations(ctx)
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, "Edited", all[0].Title)
}

func TestSavePresentation_NewStampsZeroDates(t *testing.T) {
	store, _ := newTestStore(fixedClock(t1))
	p := testPresentation("p1")
	p.DateCreated = time.Time{}
	p.DateModified = time.Time{}

	saved, err := store.SavePresentation(context.Background(), p)

	require.NoError(t, err)
	assert.Equal(t, t1, saved.DateCreated)
	assert.Equal(t, t1, saved.DateModified)
}

func TestSaveSummary_ReplacesByDocument(t *testing.T) {
	ctx := context.Background()
	store, _ := newTestStore(fixedClock(t1))

	require.NoError(t, store.SaveSummary(ctx, domain.Summary{ID: "a", DocumentID: "d1", Content: "old", DateGenerated: t0}))
	require.NoError(t, store.SaveSummary(ctx, domain.Summary{ID: "b", DocumentID: "d1", Content: "new", DateGenerated: t1}))
	require.NoError(t, store.SaveSummary(ctx, domain.Summary{ID: "c", DocumentID: "d2", Content: "other", DateGenerated: t1}))

	got, err := store.GetSummaryByDocument(ctx, "d1")
	require.NoError(t, err)
	assert.Equal(t, "new", got.Content)
	assert.Equal(t, "b", got.ID)

	items, err := store.summaries.load(ctx)
	require.NoError(t, err)
	assert.Len(t, items, 2)
}

func TestDeleteDocument_CascadesToSummary(t *testing.T) {
	ctx := context.Background()
	store, _ := newTestStore(fixedClock(t1))

	require.NoError(t, store.SaveDocument(ctx, domain.Document{ID: "d1", Name: "a.pdf", FileType: domain.DocumentTypePDF, Content: "x", DateAdded: t0}))
	require.NoError(t, store.SaveDocument(ctx, domain.Document{ID: "d2", Name: "b.txt", FileType: domain.DocumentTypeTXT, Content: "y", DateAdded: t0}))
	require.NoError(t, store.SaveSummary(ctx, domain.Summary{ID: "s1", DocumentID: "d1", Content: "sum", DateGenerated: t0}))
	require.NoError(t, store.SaveSummary(ctx, domain.Summary{ID: "s2", DocumentID: "d2", Content: "sum", DateGenerated: t0}))

	require.NoError(t, store.DeleteDocument(ctx, "d1"))

	_, err := store.GetDocument(ctx, "d1")
	assert.ErrorIs(t, err, domain.ErrNotFound)
	_, err = store.GetSummaryByDocument(ctx, "d1")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = store.GetSummaryByDocument(ctx, "d2")
	assert.NoError(t, err)
	docs, err := store.ListDocuments(ctx)
	require.NoError(t, err)
	assert.Len(t, docs, 1)
}

func TestDelete_Missing(t *testing.T) {
	ctx := context.Background()
	store, _ := newTestStore(fixedClock(t1))

	assert.ErrorIs(t, store.DeleteDocument(ctx, "nope"), domain.ErrNotFound)
	assert.ErrorIs(t, store.DeletePresentation(ctx, "nope"), domain.ErrNotFound)

	_, err := store.GetPresentation(ctx, "nope")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestDeletePresentation(t *testing.T) {
	ctx := context.Background()
	store, _ := newTestStore(fixedClock(t1))
	_, err := store.SavePresentation(ctx, testPresentation("p1"))
	require.NoError(t, err)

	require.NoError(t, store.DeletePresentation(ctx, "p1"))

	all, err := store.ListPresentations(ctx)
	require.NoError(t, err)
	assert.Empty(t, all)
}

func TestList_EmptyStore(t *testing.T) {
	store, _ := newTestStore(fixedClock(t1))

	docs, err := store.ListDocuments(context.Background())

	require.NoError(t, err)
	assert.NotNil(t, docs)
	assert.Empty(t, docs)
}

func TestList_CorruptDataReadsEmptyAndWarns(t *testing.T) {
	ctx := context.Background()
	core, logs := observer.New(zapcore.WarnLevel)
	defer logger.SetCore(core)()

	store, kv := newTestStore(fixedClock(t1))
	require.NoError(t, kv.Set(ctx, KeyDocuments, []byte(`{not json`)))

	docs, err := store.ListDocuments(ctx)

	require.NoError(t, err)
	assert.Empty(t, docs)
	require.Equal(t, 1, logs.FilterMessageSnippet("stored pdf_documents is unreadable").Len())
}

func TestStoredLayout_IsPlainJSONArray(t *testing.T) {
	ctx := context.Background()
	store, kv := newTestStore(fixedClock(t1))
	require.NoError(t, store.SaveDocument(ctx, domain.Document{ID: "d1", Name: "a.txt", FileType: domain.DocumentTypeTXT, Content: "c", DateAdded: t0}))

	raw, err := kv.Get(ctx, KeyDocuments)
	require.NoError(t, err)
	assert.JSONEq(t, `[{"id":"d1","name":"a.txt","fileType":"txt","content":"c","dateAdded":"2024-03-01T09:00:00Z"}]`, string(raw))
}

type failingKV struct{ memory.KVStore }

func (f *failingKV) Get(context.Context, string) ([]byte, error) {
	return nil, errors.New("disk gone")
}

func TestList_BackendErrorPropagates(t *testing.T) {
	store := New(&failingKV{})

	_, err := store.ListDocuments(context.Background())

	assert.ErrorContains(t, err, "disk gone")
}
