package label

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
)

var unsafePathChars = regexp.MustCompile(`[\\/*?:"<>|]`)

// BaseName derives the artifact base name from a source document name:
// filesystem-hostile characters removed, extension dropped.
func BaseName(docName string) string {
	clean := unsafePathChars.ReplaceAllString(docName, "")
	return strings.TrimSuffix(clean, filepath.Ext(clean))
}

// DocumentFileName returns the label file name for a source document.
func DocumentFileName(docName string) string {
	return BaseName(docName) + ".labels.json"
}

// OCRFileName returns the OCR reference file name for a source document.
func OCRFileName(docName string) string {
	return BaseName(docName) + ".ocr.json"
}

// SaveDocument persists the label document, fully overwriting any previous
// label file at path.
func SaveDocument(doc *Document, path string) error {
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding label document: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing label document: %w", err)
	}
	return nil
}

// SaveOCRReference persists the OCR reference snapshot, fully overwriting
// any previous file at path.
func SaveOCRReference(ref *OCRReference, path string) error {
	data, err := json.MarshalIndent(ref, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding OCR reference: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing OCR reference: %w", err)
	}
	return nil
}

// LoadDocument reads an existing label file, validating it against the label
// schema first. A missing file returns nil with no error; an invalid file is
// an error so the caller can warn and proceed without prefills.
func LoadDocument(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("reading label document: %w", err)
	}

	if err := validateAgainstSchema(labelDocumentSchema(), data); err != nil {
		return nil, fmt.Errorf("label document %s: %w", path, err)
	}

	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parsing label document %s: %w", path, err)
	}
	return &doc, nil
}

// LoadOCRReference reads a persisted OCR reference snapshot. A missing file
// returns nil with no error.
func LoadOCRReference(path string) (*OCRReference, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("reading OCR reference: %w", err)
	}
	var ref OCRReference
	if err := json.Unmarshal(data, &ref); err != nil {
		return nil, fmt.Errorf("parsing OCR reference %s: %w", path, err)
	}
	return &ref, nil
}

// ExistingValues extracts the first value text per field key from a loaded
// label document, for prefilling the labeling form.
func ExistingValues(doc *Document) map[string]string {
	values := make(map[string]string)
	if doc == nil {
		return values
	}
	for _, record := range doc.Labels {
		if len(record.Value) > 0 {
			values[record.Label] = record.Value[0].Text
		}
	}
	return values
}
