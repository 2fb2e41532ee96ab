package app

import "testing"

func TestCellAt(t *testing.T) {
	cases := []struct {
		px, py   int
		row, col int
		ok       bool
	}{
		{0, 0, 0, 0, true},
		{9, 9, 0, 0, true},
		{10, 0, 0, 1, true},
		{35, 27, 2, 3, true},
		{49, 49, 4, 4, true},
		{50, 0, 0, 0, false},
		{0, 50, 0, 0, false},
		{-1, 3, 0, 0, false},
	}
	for _, tc := range cases {
		row, col, ok := CellAt(tc.px, tc.py, 10, 5)
		if ok != tc.ok || (ok && (row != tc.row || col != tc.col)) {
			t.Fatalf("CellAt(%d,%d) = (%d,%d,%v), want (%d,%d,%v)", tc.px, tc.py, row, col, ok, tc.row, tc.col, tc.ok)
		}
	}
	if _, _, ok := CellAt(1, 1, 0, 5); ok {
		t.Fatal("zero scale should never map")
	}
}
