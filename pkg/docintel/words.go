package docintel

import (
	"sort"
)

// Words flattens the recognized words of all pages into a single stream in
// document order: pages ascending, words in reading order within each page.
// This is the stream the word-sequence locator searches.
func (r *AnalysisResult) Words() []RecognizedWord {
	if r == nil {
		return nil
	}

	pages := make([]Page, len(r.Pages))
	copy(pages, r.Pages)
	sort.SliceStable(pages, func(i, j int) bool {
		return pages[i].PageNumber < pages[j].PageNumber
	})

	var words []RecognizedWord
	for i, page := range pages {
		pageNum := page.PageNumber
		if pageNum < 1 {
			pageNum = i + 1
		}
		for _, w := range page.Words {
			words = append(words, RecognizedWord{
				Text:       w.Content,
				Page:       pageNum,
				Polygon:    w.Polygon,
				Confidence: w.Confidence,
			})
		}
	}
	return words
}
