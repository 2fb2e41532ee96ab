package life

import (
	"fmt"
	"sort"
)

// Pattern is a set of live cells relative to a top-left origin.
type Pattern struct {
	Name  string
	Rows  int
	Cols  int
	Cells [][2]int // {row, col}
}

// ParsePattern builds a pattern from a plaintext layout where 'O' or '*'
// marks a live cell and '.' or ' ' a dead one.
func ParsePattern(name string, rows []string) (Pattern, error) {
	p := Pattern{Name: name, Rows: len(rows)}
	for r, line := range rows {
		if len(line) > p.Cols {
			p.Cols = len(line)
		}
		for c, ch := range line {
			switch ch {
			case 'O', '*':
				p.Cells = append(p.Cells, [2]int{r, c})
			case '.', ' ':
			default:
				return Pattern{}, fmt.Errorf("pattern %q: unexpected %q at row %d col %d", name, ch, r, c)
			}
		}
	}
	return p, nil
}

// Place stamps p onto the grid with its top-left corner at (row, col).
// Placement wraps around the edges; a pattern larger than the grid is
// rejected without modifying any cell.
func (g *Grid) Place(p Pattern, row, col int) error {
	if p.Rows > g.n || p.Cols > g.n {
		return &OutOfBoundsError{Row: row + p.Rows - 1, Col: col + p.Cols - 1, Size: g.n}
	}
	for _, rc := range p.Cells {
		x, y := g.cur.Wrap(col+rc[1], row+rc[0])
		g.cur.Cells()[g.cur.Index(x, y)] = uint8(Alive)
	}
	return nil
}

var builtins = map[string][]string{
	"block": {
		"OO",
		"OO",
	},
	"blinker": {
		"OOO",
	},
	"toad": {
		".OOO",
		"OOO.",
	},
	"beacon": {
		"OO..",
		"OO..",
		"..OO",
		"..OO",
	},
	"glider": {
		".O.",
		"..O",
		"OOO",
	},
	"lwss": {
		".O..O",
		"O....",
		"O...O",
		"OOOO.",
	},
	"rpentomino": {
		".OO",
		"OO.",
		".O.",
	},
}

// Lookup returns a built-in pattern by name.
func Lookup(name string) (Pattern, bool) {
	rows, ok := builtins[name]
	if !ok {
		return Pattern{}, false
	}
	p, err := ParsePattern(name, rows)
	if err != nil {
		return Pattern{}, false
	}
	return p, true
}

// Names lists the built-in patterns in sorted order.
func Names() []string {
	names := make([]string, 0, len(builtins))
	for name := range builtins {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
