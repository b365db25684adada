package app

import (
	"context"
	"encoding/json"
	"time"

	"hierview/domain/core"
	"hierview/domain/hierarchy"
	"hierview/internal"
	"hierview/internal/errors"
	"hierview/ports"
)

// HierarchyService runs the startup pipeline: read the table, fold it into a
// hierarchy and write the cached document. The table is not retained afterwards.
type HierarchyService struct {
	reader ports.TableReader
	store  ports.DocumentStore
	logger *internal.Logger
}

// BuildResult describes one completed pipeline run
type BuildResult struct {
	Rows        int               `json:"rows"`
	Columns     []string          `json:"columns"`
	Summary     hierarchy.Summary `json:"summary"`
	Fingerprint core.Hash         `json:"fingerprint"`
	RuntimeMs   int64             `json:"runtime_ms"`
}

// NewHierarchyService creates a new hierarchy service
func NewHierarchyService(reader ports.TableReader, store ports.DocumentStore, logger *internal.Logger) *HierarchyService {
	if logger == nil {
		logger = internal.NewDefaultLogger()
	}
	return &HierarchyService{
		reader: reader,
		store:  store,
		logger: logger.With("build"),
	}
}

// Build reads, folds and caches. Any failure is fatal for startup and nothing is
// served from a partially built document.
func (s *HierarchyService) Build(ctx context.Context) (*BuildResult, error) {
	start := time.Now()

	tbl, err := s.reader.ReadTable(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to load source table")
	}

	root := hierarchy.Build(tbl)

	if err := s.store.Write(ctx, root); err != nil {
		return nil, errors.Wrap(err, "failed to write hierarchy cache")
	}

	document, err := json.Marshal(root)
	if err != nil {
		return nil, errors.Wrap(err, "failed to fingerprint hierarchy")
	}

	result := &BuildResult{
		Rows:        tbl.Len(),
		Columns:     tbl.Columns,
		Summary:     hierarchy.Summarize(root),
		Fingerprint: core.NewHash(document),
		RuntimeMs:   time.Since(start).Milliseconds(),
	}

	s.logger.Infow("Hierarchy built",
		"rows", result.Rows,
		"columns", len(result.Columns),
		"nodes", result.Summary.Nodes,
		"leaves", result.Summary.Leaves,
		"depth", result.Summary.MaxDepth,
		"fingerprint", result.Fingerprint.Short(),
		"runtime_ms", result.RuntimeMs,
	)
	return result, nil
}
