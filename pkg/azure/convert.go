package azure

import (
	"github.com/skriva/doclabel/pkg/docintel"
	"github.com/skriva/doclabel/pkg/geometry"
)

// resultFromWire converts the analyze response body into the normalized
// AnalysisResult shape.
func resultFromWire(wire *analyzeResult) *docintel.AnalysisResult {
	result := &docintel.AnalysisResult{
		ModelID: wire.ModelID,
		Content: wire.Content,
		Raw:     wire,
	}

	for _, page := range wire.Pages {
		words := make([]docintel.Word, 0, len(page.Words))
		for _, w := range page.Words {
			words = append(words, docintel.Word{
				Content:    w.Content,
				Polygon:    geometry.FromFlatCoords(w.Polygon),
				Confidence: w.Confidence,
			})
		}
		result.Pages = append(result.Pages, docintel.Page{
			PageNumber: page.PageNumber,
			Width:      page.Width,
			Height:     page.Height,
			Unit:       page.Unit,
			Words:      words,
		})
	}

	for _, doc := range wire.Documents {
		fields := make(map[string]docintel.ExtractedField, len(doc.Fields))
		for name, f := range doc.Fields {
			fields[name] = fieldFromWire(f)
		}
		result.Documents = append(result.Documents, docintel.DocumentResult{
			DocType:    doc.DocType,
			Confidence: doc.Confidence,
			Fields:     fields,
		})
	}

	for _, kvp := range wire.KeyValuePairs {
		if kvp.Key == nil {
			continue
		}
		pair := docintel.KeyValuePair{
			Key: docintel.KVPContent{Content: kvp.Key.Content},
		}
		if kvp.Value != nil {
			pair.Value = &docintel.KVPContent{
				Content:    kvp.Value.Content,
				Confidence: kvp.Confidence,
			}
		}
		result.KeyValuePairs = append(result.KeyValuePairs, pair)
	}

	for _, table := range wire.Tables {
		cells := make([]docintel.TableCell, 0, len(table.Cells))
		for _, cell := range table.Cells {
			kind := docintel.CellKind(cell.Kind)
			if cell.Kind == "" {
				kind = docintel.CellContent
			}
			cells = append(cells, docintel.TableCell{
				RowIndex:    cell.RowIndex,
				ColumnIndex: cell.ColumnIndex,
				Kind:        kind,
				Content:     cell.Content,
			})
		}
		var regions []docintel.BoundingRegion
		for _, region := range table.BoundingRegions {
			regions = append(regions, docintel.BoundingRegion{
				PageNumber: region.PageNumber,
				Polygon:    geometry.FromFlatCoords(region.Polygon),
			})
		}
		result.Tables = append(result.Tables, docintel.Table{
			RowCount:        table.RowCount,
			ColumnCount:     table.ColumnCount,
			Cells:           cells,
			BoundingRegions: regions,
		})
	}

	return result
}

func fieldFromWire(f analyzeField) docintel.ExtractedField {
	field := docintel.ExtractedField{
		Content:    f.Content,
		Confidence: f.Confidence,
		Kind:       docintel.ValueKind(f.Type),
	}
	if field.Kind == "" {
		field.Kind = docintel.KindString
	}
	field.Number = f.ValueNumber
	field.Integer = f.ValueInteger
	if f.ValueCurrency != nil {
		field.Currency = &docintel.CurrencyValue{
			Symbol: f.ValueCurrency.CurrencySymbol,
			Amount: f.ValueCurrency.Amount,
		}
	}
	return field
}
