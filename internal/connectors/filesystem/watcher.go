package filesystem

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/fsnotify/fsnotify"

	"github.com/custodia-labs/docdeck/internal/core/domain"
	"github.com/custodia-labs/docdeck/internal/core/ports/driving"
	"github.com/custodia-labs/docdeck/internal/logger"
)

// StateFileName is the default name of the file, kept in the watched
// directory, that maps file names to the documents ingested from them.
const StateFileName = ".docdeck-watch.json"

// Watcher mirrors the files of one directory into the document store.
// Subdirectories are not followed.
type Watcher struct {
	root      string
	docs      driving.DocumentService
	statePath string

	mu      sync.Mutex
	tracked map[string]trackedFile // file base name -> ingested document
	fsw     *fsnotify.Watcher
	closed  bool

	// events receives a copy of every handled change; tests use it to
	// synchronise with the event loop.
	events chan<- Change
}

// trackedFile is the document ingested from one file and the digest of the
// content it was ingested from.
type trackedFile struct {
	DocumentID string `json:"documentId"`
	SHA256     string `json:"sha256"`
}

// ChangeType is the kind of change applied to a watched file.
type ChangeType string

// Change types.
const (
	ChangeIngested ChangeType = "ingested"
	ChangeRemoved  ChangeType = "removed"
	ChangeSkipped  ChangeType = "skipped"
)

// Change records what the watcher did with one file.
type Change struct {
	Type       ChangeType
	Path       string
	DocumentID string
}

// Option configures a Watcher.
type Option func(*Watcher)

// WithStateFile keeps the file-to-document mapping at path instead of
// root/StateFileName.
func WithStateFile(path string) Option {
	return func(w *Watcher) {
		w.statePath = path
	}
}

// New creates a watcher for root and loads the mapping saved by earlier runs.
// An unreadable state file is logged and treated as empty.
func New(root string, docs driving.DocumentService, opts ...Option) *Watcher {
	w := &Watcher{
		root:      root,
		docs:      docs,
		statePath: filepath.Join(root, StateFileName),
		tracked:   make(map[string]trackedFile),
	}
	for _, opt := range opts {
		opt(w)
	}
	if err := w.loadState(); err != nil {
		logger.Warn("Ignoring watch state %s: %v", w.statePath, err)
	}
	return w
}

// Notify sends every handled change to ch. Sends block, so ch must be drained.
func (w *Watcher) Notify(ch chan<- Change) {
	w.events = ch
}

// Root returns the watched directory.
func (w *Watcher) Root() string {
	return w.root
}

// Scan ingests every supported file already in the directory.
// Returns the number of documents ingested.
func (w *Watcher) Scan(ctx context.Context) (int, error) {
	if err := w.checkRoot(); err != nil {
		return 0, err
	}

	entries, err := os.ReadDir(w.root)
	if err != nil {
		return 0, fmt.Errorf("read %s: %w", w.root, err)
	}

	count := 0
	present := make(map[string]bool, len(entries))
	for _, entry := range entries {
		if err := ctx.Err(); err != nil {
			return count, err
		}
		if entry.IsDir() || isHidden(entry.Name()) {
			continue
		}
		present[entry.Name()] = true
		change, err := w.ingest(ctx, filepath.Join(w.root, entry.Name()))
		if err != nil {
			logger.Warn("Failed to ingest %s: %v", entry.Name(), err)
			continue
		}
		if change.Type == ChangeIngested {
			count++
		}
	}

	// Files deleted while no watcher was running.
	for _, name := range w.trackedNames() {
		if present[name] {
			continue
		}
		if _, err := w.remove(ctx, filepath.Join(w.root, name)); err != nil {
			logger.Warn("Failed to remove document of %s: %v", name, err)
		}
	}
	return count, nil
}

// Open starts receiving filesystem events for the directory. Events that
// arrive before Run are delivered once Run starts, so calling Open before
// Scan leaves no gap in which a new file goes unnoticed.
func (w *Watcher) Open() error {
	if err := w.checkRoot(); err != nil {
		return err
	}

	w.mu.Lock()
	defer w.mu.Unlock()
	if w.closed {
		return errors.New("watcher is closed")
	}
	if w.fsw != nil {
		return nil
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	if err := fsw.Add(w.root); err != nil {
		_ = fsw.Close()
		return fmt.Errorf("watch %s: %w", w.root, err)
	}
	w.fsw = fsw
	return nil
}

// Run watches the directory until ctx is cancelled or Close is called.
// It calls Open when that has not been done yet.
func (w *Watcher) Run(ctx context.Context) error {
	if err := w.Open(); err != nil {
		return err
	}
	w.mu.Lock()
	fsw := w.fsw
	w.mu.Unlock()

	logger.Debug("Watching %s", w.root)
	defer func() { _ = w.Close() }()

	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-fsw.Events:
			if !ok {
				return nil
			}
			w.handleEvent(ctx, ev)
		case err, ok := <-fsw.Errors:
			if !ok {
				return nil
			}
			logger.Warn("Watcher error: %v", err)
		}
	}
}

// Close stops the watcher.
func (w *Watcher) Close() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.closed = true
	if w.fsw == nil {
		return nil
	}
	err := w.fsw.Close()
	w.fsw = nil
	return err
}

func (w *Watcher) checkRoot() error {
	info, err := os.Stat(w.root)
	if err != nil {
		return fmt.Errorf("root path error: %w", err)
	}
	if !info.IsDir() {
		return fmt.Errorf("root path error: %s is not a directory", w.root)
	}
	return nil
}

func (w *Watcher) handleEvent(ctx context.Context, ev fsnotify.Event) {
	if isHidden(filepath.Base(ev.Name)) {
		return
	}

	var (
		change Change
		err    error
	)
	switch {
	case ev.Has(fsnotify.Remove), ev.Has(fsnotify.Rename):
		change, err = w.remove(ctx, ev.Name)
	case ev.Has(fsnotify.Create), ev.Has(fsnotify.Write):
		info, statErr := os.Stat(ev.Name)
		if statErr != nil || info.IsDir() {
			return
		}
		change, err = w.ingest(ctx, ev.Name)
	default:
		return
	}

	if err != nil {
		logger.Warn("Failed to handle %s: %v", filepath.Base(ev.Name), err)
		return
	}
	if w.events != nil {
		w.events <- change
	}
}

// ingest stores the file as a new document and then deletes the document
// previously ingested from the same file. Unchanged content whose document
// still exists is skipped. A failed ingest leaves the previous document.
func (w *Watcher) ingest(ctx context.Context, path string) (Change, error) {
	name := filepath.Base(path)
	if _, err := domain.ResolveDocumentType("", name); err != nil {
		return Change{Type: ChangeSkipped, Path: path}, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return Change{}, fmt.Errorf("read file: %w", err)
	}
	if len(data) == 0 {
		// Created but not yet written.
		return Change{Type: ChangeSkipped, Path: path}, nil
	}
	sum := sha256.Sum256(data)
	digest := hex.EncodeToString(sum[:])

	w.mu.Lock()
	prev, hadPrev := w.tracked[name]
	w.mu.Unlock()

	if hadPrev && prev.SHA256 == digest {
		_, err := w.docs.Get(ctx, prev.DocumentID)
		if err == nil {
			return Change{Type: ChangeSkipped, Path: path, DocumentID: prev.DocumentID}, nil
		}
		if !errors.Is(err, domain.ErrNotFound) {
			return Change{}, fmt.Errorf("get %s: %w", prev.DocumentID, err)
		}
	}

	doc, err := w.docs.Ingest(ctx, driving.Upload{Name: name, Data: data})
	if err != nil {
		return Change{}, err
	}

	w.mu.Lock()
	w.tracked[name] = trackedFile{DocumentID: doc.ID, SHA256: digest}
	w.saveStateLocked()
	w.mu.Unlock()

	if hadPrev && prev.DocumentID != doc.ID {
		if err := w.docs.Delete(ctx, prev.DocumentID); err != nil && !errors.Is(err, domain.ErrNotFound) {
			logger.Warn("Failed to delete previous document %s of %s: %v", prev.DocumentID, name, err)
		}
	}

	logger.Info("Ingested %s as %s", name, doc.ID)
	return Change{Type: ChangeIngested, Path: path, DocumentID: doc.ID}, nil
}

// remove deletes the document ingested from path, if any.
func (w *Watcher) remove(ctx context.Context, path string) (Change, error) {
	name := filepath.Base(path)

	w.mu.Lock()
	prev, ok := w.tracked[name]
	w.mu.Unlock()
	if !ok {
		return Change{Type: ChangeSkipped, Path: path}, nil
	}

	if err := w.docs.Delete(ctx, prev.DocumentID); err != nil && !errors.Is(err, domain.ErrNotFound) {
		return Change{}, fmt.Errorf("delete %s: %w", prev.DocumentID, err)
	}

	w.mu.Lock()
	if cur, ok := w.tracked[name]; ok && cur.DocumentID == prev.DocumentID {
		delete(w.tracked, name)
		w.saveStateLocked()
	}
	w.mu.Unlock()

	return Change{Type: ChangeRemoved, Path: path, DocumentID: prev.DocumentID}, nil
}

func (w *Watcher) trackedNames() []string {
	w.mu.Lock()
	defer w.mu.Unlock()
	names := make([]string, 0, len(w.tracked))
	for name := range w.tracked {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// loadState reads the mapping saved by an earlier run. A missing file is empty.
func (w *Watcher) loadState() error {
	data, err := os.ReadFile(w.statePath)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	if err != nil {
		return err
	}
	var tracked map[string]trackedFile
	if err := json.Unmarshal(data, &tracked); err != nil {
		return err
	}
	for name, t := range tracked {
		if t.DocumentID != "" {
			w.tracked[name] = t
		}
	}
	return nil
}

// saveStateLocked writes the mapping. Callers hold mu. Failures are logged;
// the next successful save catches up.
func (w *Watcher) saveStateLocked() {
	if err := w.writeState(); err != nil {
		logger.Warn("Failed to save watch state %s: %v", w.statePath, err)
	}
}

func (w *Watcher) writeState() error {
	data, err := json.MarshalIndent(w.tracked, "", "  ")
	if err != nil {
		return err
	}
	tmp, err := os.CreateTemp(filepath.Dir(w.statePath), ".docdeck-watch-*")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name()) //nolint:errcheck // gone after a successful rename

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), w.statePath)
}

func isHidden(name string) bool {
	return strings.HasPrefix(name, ".")
}
