// Package hocr reads hOCR files into the recognized-word stream the labeling
// workflow consumes, so documents processed by external OCR engines can be
// labeled without re-running analysis.
package hocr

import (
	"github.com/skriva/doclabel/pkg/docintel"
	"github.com/skriva/doclabel/pkg/geometry"
)

// Document is a parsed hOCR file reduced to what labeling needs: per-page
// word streams with geometry.
type Document struct {
	Title    string
	Language string
	System   string // ocr-system metadata when present
	Pages    []Page
}

// Page is one ocr_page element with its words flattened out of the
// area/paragraph/line hierarchy.
type Page struct {
	ID         string
	PageNumber int
	ImageName  string
	BBox       BoundingBox
	Words      []Word
}

// Word is one ocrx_word element.
type Word struct {
	ID         string
	Text       string
	BBox       BoundingBox
	Confidence float64 // x_wconf, 0-100
}

// BoundingBox is an hOCR bbox: top-left and bottom-right pixel corners.
type BoundingBox struct {
	X1 float64
	Y1 float64
	X2 float64
	Y2 float64
}

// Polygon expands the box to four clockwise corners from the top-left.
func (b BoundingBox) Polygon() geometry.Polygon {
	return geometry.FromPoints([]geometry.Point{
		{X: b.X1, Y: b.Y1},
		{X: b.X2, Y: b.Y1},
		{X: b.X2, Y: b.Y2},
		{X: b.X1, Y: b.Y2},
	})
}

// Words flattens the document into the stream shape the locator consumes.
// Page numbers come from ppageno when the file carries it, falling back to
// document order. hOCR confidences are 0-100 and are scaled to 0-1.
func (d *Document) Words() []docintel.RecognizedWord {
	var words []docintel.RecognizedWord
	for i, page := range d.Pages {
		pageNumber := page.PageNumber
		if pageNumber < 1 {
			pageNumber = i + 1
		}
		for _, w := range page.Words {
			if w.Text == "" {
				continue
			}
			words = append(words, docintel.RecognizedWord{
				Text:       w.Text,
				Page:       pageNumber,
				Polygon:    w.BBox.Polygon(),
				Confidence: w.Confidence / 100,
			})
		}
	}
	return words
}
