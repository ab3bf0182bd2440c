package models

import (
	"encoding/json"
	"strconv"
)

// CellKind tells which of the three shapes a spreadsheet cell holds.
type CellKind int

const (
	Absent CellKind = iota
	Text
	Number
)

// Cell is a single grid value: absent, text or number.
type Cell struct {
	Kind CellKind
	Str  string
	Num  float64
}

// Row is an ordered sequence of cells; the column index ties a cell to a field.
type Row []Cell

// Grid is the first sheet of an uploaded workbook, row by row.
type Grid []Row

func TextCell(s string) Cell {
	return Cell{Kind: Text, Str: s}
}

func NumberCell(f float64) Cell {
	return Cell{Kind: Number, Num: f}
}

func (c Cell) IsAbsent() bool { return c.Kind == Absent }
func (c Cell) IsText() bool   { return c.Kind == Text }
func (c Cell) IsNumber() bool { return c.Kind == Number }

// String renders the cell the way it shows up in validation messages.
// Absent cells render as "null".
func (c Cell) String() string {
	switch c.Kind {
	case Text:
		return c.Str
	case Number:
		return strconv.FormatFloat(c.Num, 'f', -1, 64)
	default:
		return "null"
	}
}

// Value returns nil, a string or a float64.
func (c Cell) Value() any {
	switch c.Kind {
	case Text:
		return c.Str
	case Number:
		return c.Num
	default:
		return nil
	}
}

func (c Cell) MarshalJSON() ([]byte, error) {
	return json.Marshal(c.Value())
}

// Width returns the length of the longest row.
func (g Grid) Width() int {
	width := 0
	for _, row := range g {
		if len(row) > width {
			width = len(row)
		}
	}
	return width
}

// Normalize pads every row with absent cells up to the grid width so that
// short rows and trailing empty cells look the same.
func (g Grid) Normalize() Grid {
	width := g.Width()
	out := make(Grid, len(g))
	for i, row := range g {
		padded := make(Row, width)
		copy(padded, row)
		out[i] = padded
	}
	return out
}

// Full reports whether the row has at least one cell and no absent ones.
func (r Row) Full() bool {
	if len(r) == 0 {
		return false
	}
	for _, c := range r {
		if c.IsAbsent() {
			return false
		}
	}
	return true
}

// At returns the cell at index i, or an absent cell when i is out of range.
func (r Row) At(i int) Cell {
	if i < 0 || i >= len(r) {
		return Cell{}
	}
	return r[i]
}

// Index returns the position of the first text cell equal to label, or -1.
func (r Row) Index(label string) int {
	for i, c := range r {
		if c.IsText() && c.Str == label {
			return i
		}
	}
	return -1
}

// Compact returns the row without its absent cells.
func (r Row) Compact() Row {
	out := make(Row, 0, len(r))
	for _, c := range r {
		if !c.IsAbsent() {
			out = append(out, c)
		}
	}
	return out
}
