package file

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/custodia-labs/docdeck/internal/core/ports/driven"
)

// Ensure PromptStore implements the interface.
var _ driven.PromptStore = (*PromptStore)(nil)

// PromptStore loads AI gateway prompts from user-editable files on disk.
// Prompts are loaded from a configurable directory with fallback to embedded defaults.
//
// The store uses lazy initialisation - files are only created when first accessed,
// not in the constructor. This makes testing easier and avoids unexpected I/O.
type PromptStore struct {
	mu        sync.RWMutex
	promptDir string
	cache     map[string]string
	initOnce  sync.Once
	initErr   error
}

// defaultPrompts contains embedded default prompts, one per gateway capability.
// These are used when user files don't exist and as the initial content for new files.
//
//nolint:lll // Prompt content is intentionally long and should not be wrapped.
var defaultPrompts = map[string]string{
	driven.PromptSlides: `Create %d presentation slides from the following text.
For each slide, provide a title and content in a concise, bullet-point format.
If possible, suggest an appropriate image description that would complement each slide.

Text: %s

Format your response as a JSON array with the following structure for each slide:
[
  {
    "title": "Slide Title",
    "content": "Bullet point content, formatted with line breaks",
    "imageDescription": "Description of an appropriate image for this slide"
  }
]`,

	driven.PromptTheme: `Suggest a color scheme and font for a presentation about "%s".
Return your response as a JSON object with these properties:
- backgroundColor: a hex code for slide background
- textColor: a hex code for text color
- fontFamily: a common font name like 'Arial', 'Roboto', 'Georgia', etc.
- name: a name for this theme`,

	driven.PromptSummary: `Provide a comprehensive summary of the following document.
Include the main topics, key points, and important conclusions.
Keep the summary concise but informative.

Document content:
%s`,

	driven.PromptRelated: `I have a document with the following content:
"%s"

I also have these other documents:
%s

Which of these other documents are most related to the first document?
Rate each on a scale of 0.0 to 1.0 where 1.0 means highly related and 0.0 means not related at all.

Return your response as a JSON array with this structure:
[
  {
    "documentIndex": 1,
    "similarityScore": 0.85,
    "reason": "Brief explanation of why these documents are related"
  }
]

documentIndex is the 1-based position in the list above.
Only include documents with similarity scores above 0.3.`,

	driven.PromptInsights: `Analyze the following document and provide 3-5 key insights or takeaways.
Each insight should be a concise, actionable piece of information that a reader would find valuable.

Document content:
%s

Format your response as a JSON array of strings, each containing one insight:
["Insight 1", "Insight 2", "Insight 3"]`,

	driven.PromptEnhance: `I have a presentation with the following slides about "%s":
%s

Suggest improvements for each slide to make them more engaging and professional.
For each slide, in the same order, provide:
1. An improved title (if needed)
2. Enhanced content (better phrasing, additional relevant points, etc.)
3. A suggestion for visual elements

Format your response as a JSON array with this structure:
[
  {
    "originalTitle": "Original Slide Title",
    "improvedTitle": "Improved Slide Title",
    "improvedContent": "Enhanced bullet point content",
    "visualSuggestion": "Suggestion for visual element or design"
  }
]`,

	driven.PromptSearch: `I'm searching for documents with this query: "%s"

I have these documents:
%s

Find the 5 most relevant snippets across all documents that answer my query.
For each result, include:
1. The document number
2. A relevant excerpt (maximum 200 characters)
3. A relevance score from 0.0 to 1.0

Return your response as a JSON array:
[
  {
    "documentIndex": 1,
    "snippet": "The relevant text from the document...",
    "relevanceScore": 0.92
  }
]`,
}

// DefaultPrompt returns the embedded default for a prompt name.
func DefaultPrompt(name string) (string, bool) {
	p, ok := defaultPrompts[name]
	return p, ok
}

// NewPromptStore creates a new file-based prompt store.
// If promptDir is empty, defaults to ~/.docdeck/prompts/.
//
// The constructor does not perform any I/O - directory creation and
// file writes happen lazily on first Load() call.
func NewPromptStore(promptDir string) (*PromptStore, error) {
	if promptDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("get home directory: %w", err)
		}
		promptDir = filepath.Join(home, ".docdeck", "prompts")
	}

	return &PromptStore{
		promptDir: promptDir,
		cache:     make(map[string]string),
	}, nil
}

// Load returns the prompt template for the given name.
// On first call, initialises the prompt directory and creates default files.
// Returns cached value if available, otherwise loads from file.
// Falls back to embedded default if file doesn't exist.
func (s *PromptStore) Load(name string) (string, error) {
	// Ensure directory and defaults exist (lazy init)
	s.initOnce.Do(s.initialise)
	if s.initErr != nil {
		// Fall back to embedded defaults if init failed
		if prompt, ok := defaultPrompts[name]; ok {
			return prompt, nil
		}
		return "", fmt.Errorf("prompt store init failed: %w", s.initErr)
	}

	// Check cache first (read lock)
	s.mu.RLock()
	if prompt, ok := s.cache[name]; ok {
		s.mu.RUnlock()
		return prompt, nil
	}
	s.mu.RUnlock()

	// Load from file (no lock held during I/O)
	prompt, err := s.loadFromFile(name)
	if err != nil {
		// Fall back to embedded default
		if defaultPrompt, ok := defaultPrompts[name]; ok {
			return defaultPrompt, nil
		}
		return "", fmt.Errorf("load prompt %q: %w", name, err)
	}

	// Cache the result (write lock)
	// Use double-check pattern to avoid overwriting concurrent loads
	s.mu.Lock()
	if _, ok := s.cache[name]; !ok {
		s.cache[name] = prompt
	} else {
		// Another goroutine loaded it first, use their value
		prompt = s.cache[name]
	}
	s.mu.Unlock()

	return prompt, nil
}

// Reload clears the prompt cache, forcing fresh loads from disk.
func (s *PromptStore) Reload() {
	s.mu.Lock()
	s.cache = make(map[string]string)
	s.mu.Unlock()
}

// Dir returns the prompt directory path.
func (s *PromptStore) Dir() string {
	return s.promptDir
}

// initialise creates the prompt directory and default files.
// Called once via sync.Once on first Load().
func (s *PromptStore) initialise() {
	// Create directory
	if err := os.MkdirAll(s.promptDir, 0700); err != nil {
		s.initErr = fmt.Errorf("create prompt directory: %w", err)
		return
	}

	// Create default prompt files (only if they don't exist)
	for name, content := range defaultPrompts {
		path := filepath.Join(s.promptDir, name+".txt")
		if _, err := os.Stat(path); os.IsNotExist(err) {
			if err := os.WriteFile(path, []byte(content), 0600); err != nil {
				s.initErr = fmt.Errorf("create default prompt %q: %w", name, err)
				return
			}
		}
	}

	// Create README
	if err := s.createReadme(); err != nil {
		s.initErr = err
	}
}

// loadFromFile reads a prompt from disk.
func (s *PromptStore) loadFromFile(name string) (string, error) {
	path := filepath.Join(s.promptDir, name+".txt")
	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(data)), nil
}

// createReadme writes a README file explaining the prompts directory.
func (s *PromptStore) createReadme() error {
	path := filepath.Join(s.promptDir, "README.md")
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		return nil // Already exists or stat error (ignore)
	}

	content := `# docdeck Prompts

This directory contains the prompts docdeck sends to the text generation
service. There is one file per capability:

- ` + "`slides.txt`" + ` - Generates slides from source text
- ` + "`theme.txt`" + ` - Suggests a colour theme for a topic
- ` + "`summary.txt`" + ` - Summarises a document
- ` + "`related.txt`" + ` - Rates how related other documents are
- ` + "`insights.txt`" + ` - Extracts key insights
- ` + "`enhance.txt`" + ` - Improves generated slides
- ` + "`search.txt`" + ` - Finds snippets answering a long query

## Customisation

Edit any file to customise generation. Changes take effect on the next command.
Every prompt must still ask for the same JSON shape, or responses will be rejected.

## Format Placeholders

Prompts use Go fmt placeholders, filled in order:
- ` + "`%s`" + ` - String (e.g., the query or content)
- ` + "`%d`" + ` - Integer (the slide count)

Ensure customised prompts keep the placeholders in the same order.
`
	return os.WriteFile(path, []byte(content), 0600)
}
