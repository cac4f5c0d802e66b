package docintel

import (
	"reflect"
	"testing"

	"github.com/skriva/doclabel/pkg/geometry"
)

func TestWordsFlattensPagesInOrder(t *testing.T) {
	result := &AnalysisResult{
		Pages: []Page{
			{
				PageNumber: 2,
				Words: []Word{
					{Content: "second", Confidence: 0.9},
				},
			},
			{
				PageNumber: 1,
				Words: []Word{
					{Content: "first", Polygon: geometry.FromFlatCoords([]float64{0, 0, 1, 0, 1, 1, 0, 1}), Confidence: 0.8},
					{Content: "page", Confidence: 0.7},
				},
			},
		},
	}

	words := result.Words()
	if len(words) != 3 {
		t.Fatalf("Words() returned %d words, want 3", len(words))
	}

	wantOrder := []string{"first", "page", "second"}
	wantPages := []int{1, 1, 2}
	for i, w := range words {
		if w.Text != wantOrder[i] {
			t.Errorf("word %d = %q, want %q", i, w.Text, wantOrder[i])
		}
		if w.Page != wantPages[i] {
			t.Errorf("word %d page = %d, want %d", i, w.Page, wantPages[i])
		}
	}
	if len(words[0].Polygon) != 4 {
		t.Errorf("word polygon not carried through, got %v", words[0].Polygon)
	}
}

func TestWordsDefaultsMissingPageNumbers(t *testing.T) {
	result := &AnalysisResult{
		Pages: []Page{
			{Words: []Word{{Content: "only"}}},
		},
	}
	words := result.Words()
	if len(words) != 1 || words[0].Page != 1 {
		t.Errorf("Words() = %+v, want single word on page 1", words)
	}
}

func TestWordsNilResult(t *testing.T) {
	var result *AnalysisResult
	if got := result.Words(); got != nil {
		t.Errorf("Words() on nil result = %v, want nil", got)
	}
}

func TestFormatValue(t *testing.T) {
	num := 42.5
	integer := int64(7)
	conf := 0.93

	tests := []struct {
		name  string
		field ExtractedField
		want  string
	}{
		{
			name:  "plain string content",
			field: ExtractedField{Content: "ACME Corp", Kind: KindString},
			want:  "ACME Corp",
		},
		{
			name:  "empty content",
			field: ExtractedField{Kind: KindString},
			want:  "N/A",
		},
		{
			name: "currency with symbol",
			field: ExtractedField{
				Content:  "$500.00",
				Kind:     KindCurrency,
				Currency: &CurrencyValue{Symbol: "$", Amount: 500},
			},
			want: "$500.00",
		},
		{
			name:  "number",
			field: ExtractedField{Content: "42.50", Kind: KindNumber, Number: &num},
			want:  "42.5",
		},
		{
			name:  "integer",
			field: ExtractedField{Content: "7", Kind: KindInteger, Integer: &integer},
			want:  "7",
		},
		{
			name:  "currency without typed value falls back to content",
			field: ExtractedField{Content: "500 EUR", Kind: KindCurrency},
			want:  "500 EUR",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.field.FormatValue(); got != tt.want {
				t.Errorf("FormatValue() = %q, want %q", got, tt.want)
			}
		})
	}

	withConf := ExtractedField{Content: "INV-001", Kind: KindString, Confidence: &conf}
	if got := withConf.FormatValueWithConfidence(); got != "INV-001 (conf: 0.93)" {
		t.Errorf("FormatValueWithConfidence() = %q", got)
	}
	withoutConf := ExtractedField{Content: "INV-001", Kind: KindString}
	if got := withoutConf.FormatValueWithConfidence(); got != "INV-001" {
		t.Errorf("FormatValueWithConfidence() without confidence = %q", got)
	}
}

func TestTableGridWithHeaders(t *testing.T) {
	table := Table{
		RowCount:    3,
		ColumnCount: 2,
		Cells: []TableCell{
			{RowIndex: 0, ColumnIndex: 0, Kind: CellColumnHeader, Content: "Item"},
			{RowIndex: 0, ColumnIndex: 1, Kind: CellColumnHeader, Content: "Price"},
			{RowIndex: 1, ColumnIndex: 0, Kind: CellContent, Content: "Widget"},
			{RowIndex: 1, ColumnIndex: 1, Kind: CellContent, Content: "9.99"},
			{RowIndex: 2, ColumnIndex: 0, Kind: CellContent, Content: "Gadget"},
			{RowIndex: 2, ColumnIndex: 1, Kind: CellContent, Content: "19.99"},
		},
	}

	headers, rows := table.Grid()
	if !reflect.DeepEqual(headers, []string{"Item", "Price"}) {
		t.Errorf("headers = %v", headers)
	}
	wantRows := [][]string{{"Widget", "9.99"}, {"Gadget", "19.99"}}
	if !reflect.DeepEqual(rows, wantRows) {
		t.Errorf("rows = %v, want %v", rows, wantRows)
	}
}

func TestTableGridWithoutHeaders(t *testing.T) {
	table := Table{
		RowCount:    1,
		ColumnCount: 2,
		Cells: []TableCell{
			{RowIndex: 0, ColumnIndex: 0, Kind: CellContent, Content: "a"},
			{RowIndex: 0, ColumnIndex: 1, Kind: CellContent, Content: "b"},
		},
	}
	headers, rows := table.Grid()
	if headers != nil {
		t.Errorf("headers = %v, want nil", headers)
	}
	if len(rows) != 1 {
		t.Errorf("rows = %v, want one row", rows)
	}
}

func TestTableGridSkipsOutOfBoundsCells(t *testing.T) {
	table := Table{
		RowCount:    1,
		ColumnCount: 1,
		Cells: []TableCell{
			{RowIndex: 0, ColumnIndex: 0, Kind: CellContent, Content: "in"},
			{RowIndex: 5, ColumnIndex: 0, Kind: CellContent, Content: "out"},
		},
	}
	_, rows := table.Grid()
	if len(rows) != 1 || rows[0][0] != "in" {
		t.Errorf("rows = %v", rows)
	}
}
