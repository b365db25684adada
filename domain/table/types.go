package table

import (
	"math"
	"strconv"
)

// CellKind classifies a spreadsheet cell value
type CellKind int

const (
	CellAbsent CellKind = iota
	CellString
	CellNumber
)

// Cell is a single typed value read from the source table
type Cell struct {
	Kind CellKind
	Str  string
	Num  float64
}

// Absent returns the null cell
func Absent() Cell {
	return Cell{Kind: CellAbsent}
}

// String returns a text cell
func String(s string) Cell {
	return Cell{Kind: CellString, Str: s}
}

// Number returns a numeric cell. NaN is treated as absent.
func Number(f float64) Cell {
	if math.IsNaN(f) {
		return Absent()
	}
	return Cell{Kind: CellNumber, Num: f}
}

// IsAbsent reports whether the cell holds no value
func (c Cell) IsAbsent() bool {
	return c.Kind == CellAbsent
}

// maxExactInt bounds the integers a float64 holds exactly
const maxExactInt = 1 << 53

// Key returns the form the value takes as a hierarchy key.
// Integral numbers drop the fractional part so 2020.0 and 2020 collapse, and -0 reads as 0.
func (c Cell) Key() string {
	switch c.Kind {
	case CellString:
		return c.Str
	case CellNumber:
		v := c.Num
		if v == 0 {
			v = 0
		}
		if v == math.Trunc(v) && math.Abs(v) <= maxExactInt {
			return strconv.FormatFloat(v, 'f', 0, 64)
		}
		return strconv.FormatFloat(v, 'g', -1, 64)
	default:
		return ""
	}
}

// Row maps column names to cell values
type Row map[string]Cell

// Get returns the cell for column, or an absent cell when the row lacks it
func (r Row) Get(column string) Cell {
	if cell, ok := r[column]; ok {
		return cell
	}
	return Absent()
}

// Table is an ordered sequence of rows sharing a fixed, ordered set of columns
type Table struct {
	Columns []string
	Rows    []Row
}

// New creates an empty table with the given column order
func New(columns ...string) *Table {
	return &Table{Columns: columns}
}

// Append adds a row to the end of the table
func (t *Table) Append(row Row) {
	t.Rows = append(t.Rows, row)
}

// Len returns the number of data rows
func (t *Table) Len() int {
	if t == nil {
		return 0
	}
	return len(t.Rows)
}
