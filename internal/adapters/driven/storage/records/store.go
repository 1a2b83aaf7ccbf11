// Package records implements driven.RecordStore over a driven.KeyValueStore.
//
// Documents, presentations and summaries are kept as three independent JSON
// arrays under fixed keys. Reads of corrupt data return an empty collection
// and log a warning instead of failing.
package records

import (
	"context"
	"time"

	"github.com/custodia-labs/docdeck/internal/core/domain"
	"github.com/custodia-labs/docdeck/internal/core/ports/driven"
)

// Collection keys.
const (
	KeyDocuments     = "pdf_documents"
	KeyPresentations = "slide_presentations"
	KeySummaries     = "document_summaries"
)

// Ensure Store implements the interface.
var _ driven.RecordStore = (*Store)(nil)

// Store persists records as JSON collections.
// Saves are read-modify-write and are not atomic across processes.
type Store struct {
	kv            driven.KeyValueStore
	now           func() time.Time
	documents     collection[domain.Document]
	presentations collection[domain.Presentation]
	summaries     collection[domain.Summary]
}

// Option configures a Store.
type Option func(*Store)

// WithClock overrides the time source used to stamp modifications.
func WithClock(now func() time.Time) Option {
	return func(s *Store) {
		s.now = now
	}
}

// New creates a record store over kv.
func New(kv driven.KeyValueStore, opts ...Option) *Store {
	s := &Store{
		kv:  kv,
		now: time.Now,
		documents: collection[domain.Document]{
			kv: kv, key: KeyDocuments,
			id: func(d domain.Document) string { return d.ID },
		},
		presentations: collection[domain.Presentation]{
			kv: kv, key: KeyPresentations,
			id: func(p domain.Presentation) string { return p.ID },
		},
		summaries: collection[domain.Summary]{
			kv: kv, key: KeySummaries,
			id: func(s domain.Summary) string { return s.DocumentID },
		},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Close releases the underlying key-value store.
func (s *Store) Close() error {
	return s.kv.Close()
}

// SaveDocument upserts a document by id.
func (s *Store) SaveDocument(ctx context.Context, doc domain.Document) error {
	_, err := s.documents.upsert(ctx, doc, nil)
	return err
}

// ListDocuments returns all documents.
func (s *Store) ListDocuments(ctx context.Context) ([]domain.Document, error) {
	return s.documents.load(ctx)
}

// GetDocument returns a document by id.
func (s *Store) GetDocument(ctx context.Context, id string) (*domain.Document, error) {
	doc, ok, err := s.documents.get(ctx, id)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &doc, nil
}

// DeleteDocument removes a document, then any summary of it.
func (s *Store) DeleteDocument(ctx context.Context, id string) error {
	removed, err := s.documents.remove(ctx, func(d domain.Document) bool { return d.ID == id })
	if err != nil {
		return err
	}
	if removed == 0 {
		return domain.ErrNotFound
	}

	_, err = s.summaries.remove(ctx, func(sum domain.Summary) bool { return sum.DocumentID == id })
	return err
}

// SavePresentation upserts a presentation.
// An existing record keeps its DateCreated and gets DateModified = now.
// A new record keeps the dates it was given; a zero DateModified is stamped.
func (s *Store) SavePresentation(ctx context.Context, p domain.Presentation) (domain.Presentation, error) {
	now := s.now().UTC()
	return s.presentations.upsert(ctx, p, func(existing *domain.Presentation, p domain.Presentation) domain.Presentation {
		if existing != nil {
			p.DateCreated = existing.DateCreated
			p.DateModified = now
			return p
		}
		if p.DateCreated.IsZero() {
			p.DateCreated = now
		}
		if p.DateModified.IsZero() {
			p.DateModified = now
		}
		return p
	})
}

// ListPresentations returns all presentations.
func (s *Store) ListPresentations(ctx context.Context) ([]domain.Presentation, error) {
	return s.presentations.load(ctx)
}

// GetPresentation returns a presentation by id.
func (s *Store) GetPresentation(ctx context.Context, id string) (*domain.Presentation, error) {
	p, ok, err := s.presentations.get(ctx, id)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &p, nil
}

// DeletePresentation removes a presentation.
func (s *Store) DeletePresentation(ctx context.Context, id string) error {
	removed, err := s.presentations.remove(ctx, func(p domain.Presentation) bool { return p.ID == id })
	if err != nil {
		return err
	}
	if removed == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// SaveSummary replaces the summary for the same document, or inserts it.
func (s *Store) SaveSummary(ctx context.Context, sum domain.Summary) error {
	_, err := s.summaries.upsert(ctx, sum, nil)
	return err
}

// GetSummaryByDocument returns the summary of a document.
func (s *Store) GetSummaryByDocument(ctx context.Context, documentID string) (*domain.Summary, error) {
	sum, ok, err := s.summaries.get(ctx, documentID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &sum, nil
}
