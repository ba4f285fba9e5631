package calibration

import "fmt"

// Layout describes where a plate sheet keeps its pieces: the header row
// carrying group labels, the time axis column, the body row range of
// the kinetic traces, and the fixed-stride replicate grouping of the
// data columns. All indices are 0-based; BodyEndRow is inclusive.
type Layout struct {
	HeaderRow       int `yaml:"header_row"`
	TimeColumn      int `yaml:"time_column"`
	FirstDataColumn int `yaml:"first_data_column"`
	GroupSize       int `yaml:"group_size"`
	Stride          int `yaml:"stride"`
	BodyStartRow    int `yaml:"body_start_row"`
	BodyEndRow      int `yaml:"body_end_row"`
}

// DefaultLayout returns the stock plate layout: 3 replicate columns
// plus one spacer per concentration, 30 time points in rows 3-32.
func DefaultLayout() Layout {
	return Layout{
		HeaderRow:       0,
		TimeColumn:      0,
		FirstDataColumn: 1,
		GroupSize:       3,
		Stride:          4,
		BodyStartRow:    3,
		BodyEndRow:      32,
	}
}

// BodyRows returns the number of time points in the trace body.
func (l Layout) BodyRows() int {
	return l.BodyEndRow - l.BodyStartRow + 1
}

// Validate rejects layouts that cannot describe a readable plate.
func (l Layout) Validate() error {
	switch {
	case l.GroupSize < 1:
		return fmt.Errorf("layout: group_size must be >= 1, got %d", l.GroupSize)
	case l.Stride < l.GroupSize:
		return fmt.Errorf("layout: stride %d is smaller than group_size %d", l.Stride, l.GroupSize)
	case l.FirstDataColumn < 0:
		return fmt.Errorf("layout: first_data_column must be >= 0, got %d", l.FirstDataColumn)
	case l.TimeColumn < 0:
		return fmt.Errorf("layout: time_column must be >= 0, got %d", l.TimeColumn)
	case l.HeaderRow < 0:
		return fmt.Errorf("layout: header_row must be >= 0, got %d", l.HeaderRow)
	case l.BodyStartRow <= l.HeaderRow:
		return fmt.Errorf("layout: body_start_row %d must come after header_row %d", l.BodyStartRow, l.HeaderRow)
	case l.BodyRows() < 2:
		return fmt.Errorf("layout: body rows %d-%d leave fewer than 2 time points", l.BodyStartRow, l.BodyEndRow)
	}
	return nil
}
