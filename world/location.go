package world

import "fmt"

// Location is a (row, column) cell address. It is a value type and can be
// used directly as a map key.
type Location struct {
	Row, Col int
}

// Loc is shorthand for Location{Row: row, Col: col}.
func Loc(row, col int) Location {
	return Location{Row: row, Col: col}
}

func (l Location) String() string {
	return fmt.Sprintf("(%d,%d)", l.Row, l.Col)
}
