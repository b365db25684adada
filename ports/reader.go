package ports

import (
	"context"

	"hierview/domain/hierarchy"
	"hierview/domain/table"
)

// TableReader loads the source table once at startup
type TableReader interface {
	ReadTable(ctx context.Context) (*table.Table, error)
}

// DocumentStore persists the built hierarchy and loads it back on demand
type DocumentStore interface {
	Write(ctx context.Context, root *hierarchy.Node) error
	Read(ctx context.Context) (*hierarchy.Node, error)
}
