package hierarchy

import (
	"hierview/domain/table"
)

// Build folds every row of t into a path from the root. Columns are visited in
// declared order; an absent cell skips that column and the row continues with the
// next one. Rows sharing a prefix of values share the nodes for that prefix, and
// duplicate rows collapse into a single path.
func Build(t *table.Table) *Node {
	root := New()
	if t == nil {
		return root
	}

	for _, row := range t.Rows {
		Insert(root, t.Columns, row)
	}
	return root
}

// Insert adds one row's path below root and returns the node the path ends on
func Insert(root *Node, columns []string, row table.Row) *Node {
	cursor := root
	for _, column := range columns {
		cell := row.Get(column)
		if cell.IsAbsent() {
			continue
		}
		cursor = cursor.GetOrCreate(cell.Key())
	}
	return cursor
}
