package calibration

import "testing"

func TestDefaultLayout_MatchesStockPlate(t *testing.T) {
	l := DefaultLayout()
	if err := l.Validate(); err != nil {
		t.Fatalf("default layout must validate, got %v", err)
	}
	if l.BodyRows() != 30 {
		t.Errorf("BodyRows = %d, want 30", l.BodyRows())
	}
	if l.FirstDataColumn != 1 || l.GroupSize != 3 || l.Stride != 4 {
		t.Errorf("unexpected grouping defaults: %+v", l)
	}
}

func TestLayout_ValidateRejectsImpossibleLayouts(t *testing.T) {
	cases := map[string]func(*Layout){
		"zero group size":          func(l *Layout) { l.GroupSize = 0 },
		"stride below group size":  func(l *Layout) { l.Stride = 2 },
		"negative data column":     func(l *Layout) { l.FirstDataColumn = -1 },
		"body before header":       func(l *Layout) { l.BodyStartRow = 0 },
		"single-point body":        func(l *Layout) { l.BodyEndRow = l.BodyStartRow },
		"negative time column":     func(l *Layout) { l.TimeColumn = -1 },
	}
	for name, mutate := range cases {
		l := DefaultLayout()
		mutate(&l)
		if err := l.Validate(); err == nil {
			t.Errorf("%s: expected a validation error", name)
		}
	}
}

func TestRawSheet_CellOutOfBoundsIsEmpty(t *testing.T) {
	s := RawSheet{Cells: [][]string{{"a", "b"}, {"c"}}}
	if s.Cell(0, 1) != "b" || s.Cell(1, 0) != "c" {
		t.Error("in-bounds cells misread")
	}
	for _, rc := range [][2]int{{1, 1}, {2, 0}, {-1, 0}, {0, -1}, {0, 5}} {
		if got := s.Cell(rc[0], rc[1]); got != "" {
			t.Errorf("Cell(%d, %d) = %q, want empty", rc[0], rc[1], got)
		}
	}
	if s.Width() != 2 {
		t.Errorf("Width = %d, want 2", s.Width())
	}
}

func TestParseUnit(t *testing.T) {
	if u, err := ParseUnit("millimolar"); err != nil || u.Symbol() != "mM" {
		t.Errorf("millimolar: got %v, %v", u, err)
	}
	if u, err := ParseUnit("micromolar"); err != nil || u.Symbol() != "µM" {
		t.Errorf("micromolar: got %v, %v", u, err)
	}
	if _, err := ParseUnit("nanomolar"); err == nil {
		t.Error("expected an error for an unsupported unit")
	}
}
