package gdocai

import (
	"strings"

	"cloud.google.com/go/documentai/apiv1/documentaipb"

	"github.com/skriva/doclabel/pkg/docintel"
	"github.com/skriva/doclabel/pkg/geometry"
)

// resultFromProto converts a Document AI response into the normalized
// analysis result shape.
func resultFromProto(doc *documentaipb.Document) *docintel.AnalysisResult {
	result := &docintel.AnalysisResult{}
	if doc == nil {
		return result
	}
	result.Content = doc.Text
	result.Raw = doc

	for i, page := range doc.Pages {
		result.Pages = append(result.Pages, pageFromProto(page, doc.Text, i+1))
		result.KeyValuePairs = append(result.KeyValuePairs, formFieldsFromProto(page, doc.Text)...)
	}

	if fields := fieldsFromEntities(doc.Entities); len(fields) > 0 {
		result.Documents = append(result.Documents, docintel.DocumentResult{
			DocType: "custom-extractor",
			Fields:  fields,
		})
	}

	return result
}

func pageFromProto(page *documentaipb.Document_Page, fullText string, pageNumber int) docintel.Page {
	p := docintel.Page{
		PageNumber: pageNumber,
		Unit:       "pixel",
	}
	if n := page.GetPageNumber(); n > 0 {
		p.PageNumber = int(n)
	}
	if dim := page.GetDimension(); dim != nil {
		p.Width = float64(dim.GetWidth())
		p.Height = float64(dim.GetHeight())
		if dim.GetUnit() != "" {
			p.Unit = dim.GetUnit()
		}
	}

	for _, token := range page.GetTokens() {
		text := tokenText(token, fullText)
		if text == "" {
			continue
		}
		p.Words = append(p.Words, docintel.Word{
			Content:    text,
			Polygon:    polygonFromLayout(token.GetLayout(), page.GetDimension()),
			Confidence: float64(token.GetLayout().GetConfidence()),
		})
	}

	return p
}

// tokenText extracts a token's text and strips the whitespace its detected
// break appends, the same cleanup the hOCR pipeline applies.
func tokenText(token *documentaipb.Document_Page_Token, fullText string) string {
	text := textFromLayout(token.GetLayout(), fullText)
	text = strings.ReplaceAll(text, "\n", " ")
	text = strings.ReplaceAll(text, "\r", "")
	if br := token.GetDetectedBreak(); br != nil &&
		br.GetType() != documentaipb.Document_Page_Token_DetectedBreak_TYPE_UNSPECIFIED {
		text = strings.TrimRight(text, " \t")
	}
	return strings.TrimSpace(text)
}

// polygonFromLayout scales normalized vertices (0-1) to the page's pixel
// dimensions. Falls back to absolute vertices when the layout carries those
// instead.
func polygonFromLayout(layout *documentaipb.Document_Page_Layout, dimension *documentaipb.Document_Page_Dimension) geometry.Polygon {
	poly := layout.GetBoundingPoly()
	if poly == nil {
		return nil
	}

	if normalized := poly.GetNormalizedVertices(); len(normalized) > 0 && dimension != nil {
		points := make([]geometry.Point, 0, len(normalized))
		for _, v := range normalized {
			points = append(points, geometry.Point{
				X: float64(v.GetX()) * float64(dimension.GetWidth()),
				Y: float64(v.GetY()) * float64(dimension.GetHeight()),
			})
		}
		return geometry.FromPoints(points)
	}

	vertices := poly.GetVertices()
	if len(vertices) == 0 {
		return nil
	}
	points := make([]geometry.Point, 0, len(vertices))
	for _, v := range vertices {
		points = append(points, geometry.Point{X: float64(v.GetX()), Y: float64(v.GetY())})
	}
	return geometry.FromPoints(points)
}

// formFieldsFromProto maps a page's detected form fields to generic
// key-value pairs. Keys are trimmed with any trailing colon removed.
func formFieldsFromProto(page *documentaipb.Document_Page, fullText string) []docintel.KeyValuePair {
	var pairs []docintel.KeyValuePair
	for _, field := range page.GetFormFields() {
		key := strings.TrimSpace(textFromLayout(field.GetFieldName(), fullText))
		key = strings.TrimSuffix(key, ":")
		if key == "" {
			continue
		}

		pair := docintel.KeyValuePair{
			Key: docintel.KVPContent{Content: key},
		}
		if value := strings.TrimSpace(textFromLayout(field.GetFieldValue(), fullText)); value != "" {
			confidence := float64(field.GetFieldValue().GetConfidence())
			pair.Value = &docintel.KVPContent{
				Content:    value,
				Confidence: &confidence,
			}
		}
		pairs = append(pairs, pair)
	}
	return pairs
}

// fieldsFromEntities flattens custom extractor entities into typed document
// fields. Nested properties are keyed as parent.child.
func fieldsFromEntities(entities []*documentaipb.Document_Entity) map[string]docintel.ExtractedField {
	fields := make(map[string]docintel.ExtractedField)
	for _, entity := range entities {
		addEntity(fields, "", entity)
	}
	return fields
}

func addEntity(fields map[string]docintel.ExtractedField, prefix string, entity *documentaipb.Document_Entity) {
	if entity.GetType() == "" {
		return
	}
	key := entity.GetType()
	if prefix != "" {
		key = prefix + "." + key
	}

	if text := entity.GetMentionText(); text != "" {
		confidence := float64(entity.GetConfidence())
		fields[key] = docintel.ExtractedField{
			Content:    text,
			Confidence: &confidence,
			Kind:       docintel.KindString,
		}
	}

	for _, prop := range entity.GetProperties() {
		addEntity(fields, key, prop)
	}
}

// textFromLayout extracts text from a layout's text anchor segments.
func textFromLayout(layout *documentaipb.Document_Page_Layout, fullText string) string {
	if layout == nil || layout.GetTextAnchor() == nil {
		return ""
	}
	runes := []rune(fullText)
	total := len(runes)
	var b strings.Builder
	for _, seg := range layout.GetTextAnchor().GetTextSegments() {
		start := int(seg.GetStartIndex())
		end := int(seg.GetEndIndex())
		if start < 0 {
			start = 0
		}
		if end > total {
			end = total
		}
		if start > end {
			start = end
		}
		b.WriteString(string(runes[start:end]))
	}
	return b.String()
}
