package docintel

import (
	"github.com/skriva/doclabel/pkg/geometry"
)

// AnalysisResult is the normalized response of a document analysis call.
type AnalysisResult struct {
	ModelID       string           // Model that produced the result
	Content       string           // Full text content of the document
	Pages         []Page           // Pages with recognized words
	Documents     []DocumentResult // Classified documents with typed fields
	KeyValuePairs []KeyValuePair   // Generic detected key-value associations
	Tables        []Table          // Detected tables

	// Raw is the engine's unconverted response, kept for debugging dumps
	// via ToJSON. Nil for word streams that never went through an engine.
	Raw interface{}
}

// Page holds the recognized words of one page.
type Page struct {
	PageNumber int     // 1-based page number
	Width      float64 // Page width in Unit
	Height     float64 // Page height in Unit
	Unit       string  // Coordinate unit, e.g. "inch" or "pixel"
	Words      []Word  // Words in reading order
}

// Word is a recognized token on a page.
type Word struct {
	Content    string           // The recognized text
	Polygon    geometry.Polygon // Bounding polygon, typically 4 corners clockwise
	Confidence float64          // Recognition confidence (0-1)
}

// RecognizedWord is a word carrying its page number, the unit the locator
// and label builder operate on. Word streams are ordered by reading order
// within a page, pages ascending.
type RecognizedWord struct {
	Text       string
	Page       int
	Polygon    geometry.Polygon
	Confidence float64
}

// DocumentResult is one classified document instance with its typed fields.
type DocumentResult struct {
	DocType    string                    // Model-assigned document type
	Confidence float64                   // Classification confidence
	Fields     map[string]ExtractedField // Typed fields keyed by field name
}

// ValueKind enumerates the value types a document model can assign to a field.
type ValueKind string

const (
	KindString        ValueKind = "string"
	KindNumber        ValueKind = "number"
	KindInteger       ValueKind = "integer"
	KindDate          ValueKind = "date"
	KindTime          ValueKind = "time"
	KindPhoneNumber   ValueKind = "phoneNumber"
	KindCurrency      ValueKind = "currency"
	KindAddress       ValueKind = "address"
	KindBoolean       ValueKind = "boolean"
	KindSelectionMark ValueKind = "selectionMark"
	KindCountryRegion ValueKind = "countryRegion"
	KindSignature     ValueKind = "signature"
	KindArray         ValueKind = "array"
	KindObject        ValueKind = "object"
)

// CurrencyValue is the typed value of a currency field.
type CurrencyValue struct {
	Symbol string  // Currency symbol, may be empty
	Amount float64 // Monetary amount
}

// ExtractedField is a typed field extracted by a document model. The typed
// value slots are populated according to Kind; absence is an explicit nil,
// never an attribute-presence check.
type ExtractedField struct {
	Content    string         // Raw text content of the field
	Confidence *float64       // Extraction confidence, nil when the engine reported none
	Kind       ValueKind      // Value kind assigned by the model
	Number     *float64       // Set when Kind is number
	Integer    *int64         // Set when Kind is integer
	Currency   *CurrencyValue // Set when Kind is currency
}

// KVPContent is one side of a detected key-value pair.
type KVPContent struct {
	Content    string
	Confidence *float64 // nil when the engine reported none
}

// KeyValuePair is a generic label/value association detected in the document,
// independent of any document model schema. Value may be nil for keys
// detected without a value.
type KeyValuePair struct {
	Key   KVPContent
	Value *KVPContent
}

// BoundingRegion identifies where content appears: a page plus a polygon.
type BoundingRegion struct {
	PageNumber int
	Polygon    geometry.Polygon
}

// CellKind enumerates the roles a table cell can have.
type CellKind string

const (
	CellContent      CellKind = "content"
	CellColumnHeader CellKind = "columnHeader"
	CellRowHeader    CellKind = "rowHeader"
	// CellHeader is emitted by some models instead of columnHeader.
	CellHeader CellKind = "header"
)

// TableCell is one cell of a detected table.
type TableCell struct {
	RowIndex    int
	ColumnIndex int
	Kind        CellKind
	Content     string
}

// Table is a detected table with its cell grid.
type Table struct {
	RowCount        int
	ColumnCount     int
	Cells           []TableCell
	BoundingRegions []BoundingRegion
}
