// Package session holds the per-document labeling state: cached analysis
// results, the recognized word stream, suggestion maps, and the values the
// user has confirmed so far. One session covers one source document.
package session

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/skriva/doclabel/pkg/docintel"
	"github.com/skriva/doclabel/pkg/fields"
	"github.com/skriva/doclabel/pkg/label"
)

// Session is the labeling state for one document. Analysis state is
// populated once, before the session is shared; the confirmed values map is
// the only state concurrent UI requests touch and is guarded by mu.
type Session struct {
	ID           string
	DocumentName string
	CreatedAt    time.Time

	engine        docintel.Engine
	layoutModel   string
	documentModel string
	defs          *fields.Set

	layoutResult   *docintel.AnalysisResult
	documentResult *docintel.AnalysisResult
	words          []docintel.RecognizedWord

	// documentSuggestions take priority over layoutSuggestions on lookup.
	documentSuggestions map[string]label.Suggestion
	layoutSuggestions   map[string]label.Suggestion

	mu     sync.Mutex
	values map[string]string
}

// New creates a session for one document. layoutModel produces the word
// stream, documentModel the suggestion fields.
func New(docName string, engine docintel.Engine, defs *fields.Set, layoutModel, documentModel string) *Session {
	return &Session{
		ID:            uuid.NewString(),
		DocumentName:  docName,
		CreatedAt:     time.Now(),
		engine:        engine,
		layoutModel:   layoutModel,
		documentModel: documentModel,
		defs:          defs,
		values:        make(map[string]string),
	}
}

// Fields returns the configured field definitions.
func (s *Session) Fields() *fields.Set {
	return s.defs
}

// Analyze runs both models against the document and caches the results.
// The layout run is required since labeling cannot proceed without a word
// stream; a failed document-model run degrades to labeling without
// suggestions.
func (s *Session) Analyze(ctx context.Context, document []byte) error {
	layoutResult, err := s.engine.Analyze(ctx, s.layoutModel, document)
	if err != nil {
		return fmt.Errorf("layout analysis: %w", err)
	}
	s.layoutResult = layoutResult
	s.words = layoutResult.Words()
	s.layoutSuggestions = label.BuildSuggestionMap(layoutResult)

	documentResult, err := s.engine.Analyze(ctx, s.documentModel, document)
	if err != nil {
		slog.Warn("document model analysis failed, continuing without suggestions",
			"model", s.documentModel, "error", err)
		s.documentResult = nil
		s.documentSuggestions = nil
		return nil
	}
	s.documentResult = documentResult
	s.documentSuggestions = label.BuildSuggestionMap(documentResult)
	return nil
}

// UseWords installs an externally produced word stream, for labeling against
// hOCR output without running analysis.
func (s *Session) UseWords(words []docintel.RecognizedWord) {
	s.words = words
}

// Invalidate drops all cached analysis state so the next Analyze starts
// fresh. Confirmed values survive.
func (s *Session) Invalidate() {
	s.layoutResult = nil
	s.documentResult = nil
	s.words = nil
	s.documentSuggestions = nil
	s.layoutSuggestions = nil
}

// Analyzed reports whether a word stream is available.
func (s *Session) Analyzed() bool {
	return s.words != nil
}

// Words returns the cached recognized word stream.
func (s *Session) Words() []docintel.RecognizedWord {
	return s.words
}

// LayoutResult returns the cached layout analysis, nil before Analyze.
func (s *Session) LayoutResult() *docintel.AnalysisResult {
	return s.layoutResult
}

// Suggest returns the best suggestion for a field key, preferring typed
// document-model output over generic layout detections.
func (s *Session) Suggest(fieldKey string) (label.Suggestion, bool) {
	return label.Resolve(fieldKey, s.documentSuggestions, s.layoutSuggestions)
}

// SetValue records the confirmed text for a field.
func (s *Session) SetValue(fieldKey, text string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.values[fieldKey] = text
}

// Values returns a copy of the confirmed values.
func (s *Session) Values() map[string]string {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make(map[string]string, len(s.values))
	for k, v := range s.values {
		out[k] = v
	}
	return out
}

// Prefill loads any existing label file for this document from dir and
// seeds values not yet confirmed in this session. An unreadable or invalid
// label file is logged and skipped.
func (s *Session) Prefill(dir string) {
	path := filepath.Join(dir, label.DocumentFileName(s.DocumentName))
	doc, err := label.LoadDocument(path)
	if err != nil {
		slog.Warn("ignoring existing label file", "path", path, "error", err)
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for key, text := range label.ExistingValues(doc) {
		if _, confirmed := s.values[key]; !confirmed {
			s.values[key] = text
		}
	}
}

// Save builds and persists both artifacts for this document into dir. The
// two writes are independent: a failure of one does not block the other, and
// both failures are reported together. The returned warnings describe fields
// saved without geometry.
func (s *Session) Save(dir string) ([]string, error) {
	doc, warnings := label.BuildDocument(s.defs, s.Values(), s.words)
	ref := label.BuildOCRReference(s.words)

	labelErr := label.SaveDocument(doc, filepath.Join(dir, label.DocumentFileName(s.DocumentName)))
	ocrErr := label.SaveOCRReference(ref, filepath.Join(dir, label.OCRFileName(s.DocumentName)))

	return warnings, errors.Join(labelErr, ocrErr)
}
