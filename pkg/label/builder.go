package label

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/skriva/doclabel/pkg/docintel"
	"github.com/skriva/doclabel/pkg/fields"
	"github.com/skriva/doclabel/pkg/geometry"
)

// SchemaURI identifies the label file schema understood by the trainer.
const SchemaURI = "https://schema.cognitiveservices.azure.com/formrecognizer/2021-07-30/fields.json"

// Value is one labeled value: the confirmed text plus, when the word
// sequence was located, the page and flattened bounding polygon covering it.
// Page and Polygon are both absent on a text-only label.
type Value struct {
	Text    string    `json:"text"`
	Page    int       `json:"page,omitempty"`
	Polygon []float64 `json:"polygon,omitempty"`
}

// Record associates a field key with its labeled values. The value list
// holds at most one entry in this design; the list container exists for
// compatibility with multi-instance fields.
type Record struct {
	Label string  `json:"label"`
	Value []Value `json:"value"`
}

// TypeRef carries the field type in the label document's fields map.
type TypeRef struct {
	FieldType string `json:"fieldType"`
}

// Document is the persisted label file for one source document. Fields holds
// exactly the configured definitions at save time and Labels one record per
// field with non-blank text; both are regenerated in full on every save.
type Document struct {
	Schema string             `json:"$schema"`
	Fields map[string]TypeRef `json:"fields"`
	Labels []Record           `json:"labels"`
}

// OCRWord is one word of the persisted OCR reference snapshot.
type OCRWord struct {
	Text       string    `json:"text"`
	Polygon    []float64 `json:"polygon"`
	Confidence float64   `json:"confidence"`
	Page       int       `json:"page"`
}

// OCRReference is the flattened snapshot of all recognized words for a
// document, written alongside the label file for reproducibility.
type OCRReference struct {
	Words []OCRWord `json:"words"`
}

// BuildDocument assembles the label document for one source document.
//
// For every configured field whose final text is non-blank after trimming,
// the word stream is searched for an exact sequence match. A located field
// gets the page of the first matched word and the flattened bounding box of
// all matched word polygons; an unlocated field, or one whose matched words
// carry no usable geometry, is saved text-only. Fields left blank produce no
// record. Warnings describe every degrade in a form suitable for display.
func BuildDocument(defs *fields.Set, values map[string]string, words []docintel.RecognizedWord) (*Document, []string) {
	doc := &Document{
		Schema: SchemaURI,
		Fields: make(map[string]TypeRef),
		Labels: []Record{},
	}
	var warnings []string

	for _, def := range defs.List() {
		doc.Fields[def.Key] = TypeRef{FieldType: def.Type}

		text := strings.TrimSpace(values[def.Key])
		if text == "" {
			continue
		}

		value := Value{Text: text}
		if matched := LocateWordSequence(text, words); matched != nil {
			polygons := make([]geometry.Polygon, 0, len(matched))
			for _, w := range matched {
				polygons = append(polygons, w.Polygon)
			}
			if box, ok := geometry.BoundingBox(polygons...); ok {
				value.Page = matched[0].Page
				value.Polygon = box.Flatten()
			} else {
				warning := fmt.Sprintf("%s: matched words carry no usable geometry, saving text only", def.Key)
				slog.Warn("label saved without region", "field", def.Key, "reason", "degenerate geometry")
				warnings = append(warnings, warning)
			}
		} else {
			warning := fmt.Sprintf("%s: no exact match for %q in recognized words, saving text only", def.Key, text)
			slog.Warn("label saved without region", "field", def.Key, "text", text)
			warnings = append(warnings, warning)
		}

		doc.Labels = append(doc.Labels, Record{
			Label: def.Key,
			Value: []Value{value},
		})
	}

	return doc, warnings
}

// BuildOCRReference flattens the full word stream into the persisted OCR
// snapshot shape.
func BuildOCRReference(words []docintel.RecognizedWord) *OCRReference {
	ref := &OCRReference{Words: []OCRWord{}}
	for _, w := range words {
		ref.Words = append(ref.Words, OCRWord{
			Text:       w.Text,
			Polygon:    w.Polygon.Flatten(),
			Confidence: w.Confidence,
			Page:       w.Page,
		})
	}
	return ref
}
