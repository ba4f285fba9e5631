package analysis

import "calibra/domain/calibration"

// GroupExtractor partitions a sheet's data columns into replicate
// groups using the plate layout's fixed stride.
type GroupExtractor struct {
	layout calibration.Layout
}

// NewGroupExtractor creates a group extractor for the given layout.
func NewGroupExtractor(layout calibration.Layout) *GroupExtractor {
	return &GroupExtractor{layout: layout}
}

// Extract walks the non-time columns left to right in windows of the
// layout stride and keeps the first GroupSize columns of each window.
// A trailing window with fewer than GroupSize usable columns is
// silently dropped; that is the documented truncation rule, not an
// error. The group label comes from the header row of the window's
// first column.
func (g *GroupExtractor) Extract(sheet calibration.RawSheet) []calibration.ReplicateGroup {
	width := sheet.Width()
	var groups []calibration.ReplicateGroup
	for start := g.layout.FirstDataColumn; start < width; start += g.layout.Stride {
		end := start + g.layout.GroupSize
		if end > width {
			break
		}
		cols := make([]int, 0, g.layout.GroupSize)
		for c := start; c < end; c++ {
			cols = append(cols, c)
		}
		groups = append(groups, calibration.ReplicateGroup{
			Columns: cols,
			Label:   ParseLabel(sheet.Cell(g.layout.HeaderRow, cols[0])),
		})
	}
	return groups
}
