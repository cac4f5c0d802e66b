// Package preview renders audit PDFs of labeled documents: one page per
// source page with the recognized word boxes drawn faintly and each labeled
// field's bounding region highlighted with its field key, so the geometry
// can be checked by eye before the labels are used for training.
package preview

import (
	"bytes"
	"fmt"

	"codeberg.org/go-pdf/fpdf"
	"golang.org/x/text/encoding/charmap"

	"github.com/skriva/doclabel/pkg/label"
)

// US Letter fallback when a page carries no usable geometry.
const (
	fallbackWidth  = 612
	fallbackHeight = 792
)

// Render draws the preview PDF for one labeled document. Pages are sized to
// the extent of their content since the source image is not embedded.
func Render(doc *label.Document, ref *label.OCRReference, cfg Config) ([]byte, error) {
	if doc == nil {
		return nil, fmt.Errorf("no label document to render")
	}

	wordsByPage := make(map[int][]label.OCRWord)
	if ref != nil {
		for _, w := range ref.Words {
			wordsByPage[w.Page] = append(wordsByPage[w.Page], w)
		}
	}

	regionsByPage := make(map[int][]labeledRegion)
	for _, record := range doc.Labels {
		for _, value := range record.Value {
			if value.Page < 1 || len(value.Polygon) < 8 {
				continue
			}
			regionsByPage[value.Page] = append(regionsByPage[value.Page], labeledRegion{
				key:     record.Label,
				polygon: value.Polygon,
			})
		}
	}

	lastPage := 0
	for page := range wordsByPage {
		if page > lastPage {
			lastPage = page
		}
	}
	for page := range regionsByPage {
		if page > lastPage {
			lastPage = page
		}
	}
	if lastPage == 0 {
		return nil, fmt.Errorf("nothing to render: no located labels and no word geometry")
	}

	pdf := fpdf.New("P", "pt", "Letter", "")
	for page := 1; page <= lastPage; page++ {
		words := wordsByPage[page]
		regions := regionsByPage[page]

		w, h := pageExtent(words, regions)
		pdf.AddPageFormat("P", fpdf.SizeType{Wd: w, Ht: h})

		if cfg.DrawWords {
			drawWordBoxes(pdf, words, cfg.Font)
		}
		drawLabelLayer(pdf, regions, cfg, page)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("failed to generate preview PDF: %w", err)
	}
	return buf.Bytes(), nil
}

type labeledRegion struct {
	key     string
	polygon []float64
}

// pageExtent sizes the page to cover all content with a small margin.
func pageExtent(words []label.OCRWord, regions []labeledRegion) (float64, float64) {
	var maxX, maxY float64
	for _, w := range words {
		for i := 0; i+1 < len(w.Polygon); i += 2 {
			if w.Polygon[i] > maxX {
				maxX = w.Polygon[i]
			}
			if w.Polygon[i+1] > maxY {
				maxY = w.Polygon[i+1]
			}
		}
	}
	for _, r := range regions {
		for i := 0; i+1 < len(r.polygon); i += 2 {
			if r.polygon[i] > maxX {
				maxX = r.polygon[i]
			}
			if r.polygon[i+1] > maxY {
				maxY = r.polygon[i+1]
			}
		}
	}
	if maxX <= 0 || maxY <= 0 {
		return fallbackWidth, fallbackHeight
	}
	return maxX * 1.05, maxY * 1.05
}

// drawWordBoxes renders the recognized words in light gray for context.
func drawWordBoxes(pdf *fpdf.Fpdf, words []label.OCRWord, font FontConfig) {
	pdf.SetFont(font.Name, "", font.Size)
	pdf.SetDrawColor(200, 200, 200)
	pdf.SetTextColor(120, 120, 120)

	for _, w := range words {
		x1, y1, x2, y2, ok := rectFromPolygon(w.Polygon)
		if !ok {
			continue
		}
		pdf.Rect(x1, y1, x2-x1, y2-y1, "D")
		drawFittedText(pdf, w.Text, x1, y1, x2-x1, font)
	}
}

// drawLabelLayer highlights each labeled region in red with its field key,
// on a named layer so viewers can toggle it.
func drawLabelLayer(pdf *fpdf.Fpdf, regions []labeledRegion, cfg Config, pageNum int) {
	layer := pdf.AddLayer(fmt.Sprintf("%s (Page %d)", cfg.LayerName, pageNum), true)
	pdf.BeginLayer(layer)
	pdf.SetFont(cfg.Font.Name, cfg.Font.Style, cfg.Font.Size)
	pdf.SetDrawColor(220, 0, 0)
	pdf.SetTextColor(220, 0, 0)
	pdf.SetLineWidth(1)

	for _, region := range regions {
		x1, y1, x2, y2, ok := rectFromPolygon(region.polygon)
		if !ok {
			continue
		}
		pdf.Rect(x1, y1, x2-x1, y2-y1, "D")

		caption := encodeLatin1(region.key)
		captionY := y1 - 2
		if captionY < cfg.Font.Size {
			captionY = y2 + cfg.Font.Size
		}
		pdf.Text(x1, captionY, caption)
	}

	pdf.EndLayer()
}

// drawFittedText scales the font so the text spans the box width, the way
// OCR text layers are overlaid on scanned pages.
func drawFittedText(pdf *fpdf.Fpdf, text string, x, y, width float64, font FontConfig) {
	encoded := encodeLatin1(text)
	strWidth := pdf.GetStringWidth(encoded)
	if strWidth > 0 {
		pdf.SetFontSize(font.Size * width / strWidth)
	}
	fontSize, _ := pdf.GetFontSize()
	pdf.Text(x, y+fontSize*font.AscentRatio, encoded)
	pdf.SetFontSize(font.Size)
}

// encodeLatin1 converts text to ISO-8859-1 to avoid PDF encoding issues,
// falling back to the raw text when conversion fails.
func encodeLatin1(text string) string {
	latin1, err := charmap.ISO8859_1.NewEncoder().String(text)
	if err != nil {
		return text
	}
	return latin1
}

// rectFromPolygon reduces a flattened polygon to its axis-aligned bounds.
func rectFromPolygon(polygon []float64) (x1, y1, x2, y2 float64, ok bool) {
	if len(polygon) < 4 {
		return 0, 0, 0, 0, false
	}
	x1, y1 = polygon[0], polygon[1]
	x2, y2 = polygon[0], polygon[1]
	for i := 2; i+1 < len(polygon); i += 2 {
		x, y := polygon[i], polygon[i+1]
		if x < x1 {
			x1 = x
		}
		if x > x2 {
			x2 = x
		}
		if y < y1 {
			y1 = y
		}
		if y > y2 {
			y2 = y
		}
	}
	if x2 <= x1 || y2 <= y1 {
		return 0, 0, 0, 0, false
	}
	return x1, y1, x2, y2, true
}
