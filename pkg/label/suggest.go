package label

import (
	"github.com/skriva/doclabel/pkg/docintel"
)

// SuggestionSource tags where a suggested value came from.
type SuggestionSource string

const (
	// SourceDocumentField marks values extracted by a document model's typed
	// fields, the highest-trust source.
	SourceDocumentField SuggestionSource = "document"
	// SourceKeyValuePair marks values from generic key-value detection.
	SourceKeyValuePair SuggestionSource = "kvp"
)

// Suggestion is a prefill candidate for a field: the extracted text, the
// engine's confidence when it reported one, and the source the value came
// from for display.
type Suggestion struct {
	Text       string
	Confidence *float64
	Source     SuggestionSource
}

// BuildSuggestionMap reduces an analysis result to a normalized-key map of
// suggestions. Typed document-model fields are inserted first; generic
// key-value pairs are inserted only for keys not already claimed, so a typed
// field is never overridden by a generic detection sharing its normalized
// key. Entries with empty content or keys that normalize to nothing are
// skipped.
func BuildSuggestionMap(result *docintel.AnalysisResult) map[string]Suggestion {
	suggestions := make(map[string]Suggestion)
	if result == nil {
		return suggestions
	}

	for _, doc := range result.Documents {
		for name, field := range doc.Fields {
			key := NormalizeKey(name)
			if key == "" || field.Content == "" {
				continue
			}
			if _, exists := suggestions[key]; exists {
				continue
			}
			suggestions[key] = Suggestion{
				Text:       field.Content,
				Confidence: field.Confidence,
				Source:     SourceDocumentField,
			}
		}
	}

	for _, kvp := range result.KeyValuePairs {
		key := NormalizeKey(kvp.Key.Content)
		if key == "" || kvp.Value == nil || kvp.Value.Content == "" {
			continue
		}
		if _, exists := suggestions[key]; exists {
			continue
		}
		suggestions[key] = Suggestion{
			Text:       kvp.Value.Content,
			Confidence: kvp.Value.Confidence,
			Source:     SourceKeyValuePair,
		}
	}

	return suggestions
}

// Resolve looks up the best suggestion for a field key: the primary map is
// consulted first, the secondary map only as a fallback. The field key is
// normalized before lookup. The second return value is false when neither
// map has an entry.
func Resolve(fieldKey string, primary, secondary map[string]Suggestion) (Suggestion, bool) {
	key := NormalizeKey(fieldKey)
	if key == "" {
		return Suggestion{}, false
	}
	if s, ok := primary[key]; ok {
		return s, true
	}
	if s, ok := secondary[key]; ok {
		return s, true
	}
	return Suggestion{}, false
}
