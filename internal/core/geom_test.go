package core

import "testing"

func TestRectContains(t *testing.T) {
	r := NewRect(10, 10, 20, 15)

	tests := []struct {
		name     string
		x, y     int
		expected bool
	}{
		{"inside", 15, 15, true},
		{"top-left corner", 10, 10, true},
		{"bottom-right edge (exclusive)", 30, 25, false},
		{"last cell", 29, 24, true},
		{"outside left", 5, 15, false},
		{"outside right", 35, 15, false},
		{"outside top", 15, 5, false},
		{"outside bottom", 15, 30, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			result := r.Contains(tc.x, tc.y)
			if result != tc.expected {
				t.Errorf("Contains(%d, %d) = %v, expected %v", tc.x, tc.y, result, tc.expected)
			}
		})
	}
}

func TestRectEdges(t *testing.T) {
	r := NewRect(5, 10, 20, 15)

	if r.Right() != 25 {
		t.Errorf("Right() = %d, expected 25", r.Right())
	}
	if r.Bottom() != 25 {
		t.Errorf("Bottom() = %d, expected 25", r.Bottom())
	}


	if got, want := r.Grow(1), NewRect(4, 9, 22, 17); got != want {
		t.Errorf("Grow(1) = %+v, expected %+v", got, want)
	}
	if got := r.Grow(1).Grow(-1); got != r {
		t.Errorf("Grow(-1) did not undo Grow(1): %+v", got)
	}
}

func TestCenteredRect(t *testing.T) {
	if got, want := CenteredRect(20, 5, 80, 24), NewRect(30, 9, 20, 5); got != want {
		t.Errorf("CenteredRect = %+v, expected %+v", got, want)
	}
	// Wider than the screen: left edge goes negative, the box stays centered.
	if got := CenteredRect(30, 3, 20, 3); got.X != -5 || got.Y != 0 {
		t.Errorf("oversized CenteredRect = %+v", got)
	}
}

func TestRectCellAt(t *testing.T) {
	// 3 columns x 2 rows of 4x2 character cells starting at (10, 5).
	board := NewRect(10, 5, 12, 4)

	tests := []struct {
		name     string
		x, y     int
		col, row int
		ok       bool
	}{
		{"first cell origin", 10, 5, 0, 0, true},
		{"first cell far corner", 13, 6, 0, 0, true},
		{"second column", 14, 5, 1, 0, true},
		{"last cell", 21, 8, 2, 1, true},
		{"left of board", 9, 5, 0, 0, false},
		{"below board", 10, 9, 0, 0, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			col, row, ok := board.CellAt(tc.x, tc.y, 4, 2)
			if ok != tc.ok {
				t.Fatalf("CellAt(%d, %d) ok = %v, expected %v", tc.x, tc.y, ok, tc.ok)
			}
			if ok && (col != tc.col || row != tc.row) {
				t.Errorf("CellAt(%d, %d) = (%d, %d), expected (%d, %d)", tc.x, tc.y, col, row, tc.col, tc.row)
			}
		})
	}

	if _, _, ok := board.CellAt(10, 5, 0, 2); ok {
		t.Error("CellAt with zero cell width should fail")
	}
}
