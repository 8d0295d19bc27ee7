// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package aggregate

import (
	"github.com/danielhkuo/quickly-tally/models"
	"github.com/danielhkuo/quickly-tally/normalize"
)

// Matrix counts selected cells of a 2D question. Cells outside the declared
// rows and columns are ignored. Percentages are relative to the row total,
// the number of selections made in that row.
func Matrix(values []normalize.Labeled[[]normalize.Cell], q models.Question) models.MatrixAggregate {
	var rows, cols []models.MatrixAxis
	if q.Matrix != nil {
		rows, cols = q.Matrix.Rows, q.Matrix.Columns
	}

	agg := models.MatrixAggregate{
		Rows:           nonNil(rows),
		Columns:        nonNil(cols),
		Counts:         make(map[string]map[string]int, len(rows)),
		Percentages:    make(map[string]map[string]int, len(rows)),
		Tooltips:       make(map[string]map[string]string, len(rows)),
		Totals:         make(map[string]int, len(rows)),
		TotalResponses: len(values),
	}
	for _, row := range rows {
		agg.Counts[row.ID] = make(map[string]int, len(cols))
		for _, col := range cols {
			agg.Counts[row.ID][col.ID] = 0
		}
		agg.Totals[row.ID] = 0
	}

	tips := labelLog[normalize.Cell]{}
	for _, v := range values {
		for _, cell := range v.Value {
			rowCounts, ok := agg.Counts[cell.Row]
			if !ok {
				continue
			}
			if _, ok := rowCounts[cell.Column]; !ok {
				continue
			}
			rowCounts[cell.Column]++
			agg.Totals[cell.Row]++
			tips.add(cell, v.Label)
		}
	}

	for _, row := range rows {
		agg.Percentages[row.ID] = make(map[string]int, len(cols))
		agg.Tooltips[row.ID] = make(map[string]string, len(cols))
		for _, col := range cols {
			agg.Percentages[row.ID][col.ID] = percent(agg.Counts[row.ID][col.ID], agg.Totals[row.ID])
			agg.Tooltips[row.ID][col.ID] = tips.tooltip(normalize.Cell{Row: row.ID, Column: col.ID})
		}
	}
	return agg
}

func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}
