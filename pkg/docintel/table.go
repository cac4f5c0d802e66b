package docintel

import (
	"log/slog"
)

// Grid assembles the table cells into column headers and data rows.
//
// Cells whose kind is columnHeader (or the plain header kind some models
// emit) contribute to the header row, and any row containing a header cell is
// excluded from the data rows. When no header cells are present the headers
// come back empty and every row is a data row. Cells outside the declared
// table dimensions are skipped with a warning.
func (t Table) Grid() (headers []string, rows [][]string) {
	if t.RowCount <= 0 || t.ColumnCount <= 0 {
		return nil, nil
	}

	headers = make([]string, t.ColumnCount)
	grid := make([][]string, t.RowCount)
	for i := range grid {
		grid[i] = make([]string, t.ColumnCount)
	}

	hasHeaders := false
	headerRows := make(map[int]bool)

	for _, cell := range t.Cells {
		if cell.RowIndex < 0 || cell.RowIndex >= t.RowCount ||
			cell.ColumnIndex < 0 || cell.ColumnIndex >= t.ColumnCount {
			slog.Warn("skipping table cell outside declared bounds",
				"row", cell.RowIndex, "column", cell.ColumnIndex)
			continue
		}

		if cell.Kind == CellColumnHeader || cell.Kind == CellHeader {
			headers[cell.ColumnIndex] = cell.Content
			hasHeaders = true
			headerRows[cell.RowIndex] = true
		}

		grid[cell.RowIndex][cell.ColumnIndex] = cell.Content
	}

	for rowIdx, row := range grid {
		if !headerRows[rowIdx] {
			rows = append(rows, row)
		}
	}

	if !hasHeaders {
		headers = nil
	}
	return headers, rows
}
