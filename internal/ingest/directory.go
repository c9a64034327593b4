// Package ingest discovers input documents on disk.
package ingest

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/research-tools/paperinator/constants"
)

// Document is one discovered input file, immutable for the run.
type Document struct {
	Path     string
	Filename string
}

type DirStats struct {
	Scanned uint32
	Matched uint32
	Skipped uint32
}

// DiscoverDirectory enumerates root once (non-recursive), filters by the
// supported extension set (case-insensitive) and skips hidden files.
// Results are sorted by filename so output row order is deterministic
// regardless of the platform's directory enumeration order.
func DiscoverDirectory(root string) ([]Document, DirStats, error) {
	if strings.TrimSpace(root) == "" {
		return nil, DirStats{}, errors.New("input directory is required")
	}

	entries, err := os.ReadDir(root)
	if err != nil {
		return nil, DirStats{}, fmt.Errorf("read input dir: %w", err)
	}

	var docs []Document
	var stats DirStats
	for _, e := range entries {
		stats.Scanned++
		if e.IsDir() || isHidden(e.Name()) {
			stats.Skipped++
			continue
		}
		if !constants.IsSupportedExt(filepath.Ext(e.Name())) {
			stats.Skipped++
			continue
		}
		stats.Matched++
		docs = append(docs, Document{
			Path:     filepath.Join(root, e.Name()),
			Filename: e.Name(),
		})
	}

	sort.Slice(docs, func(i, j int) bool { return docs[i].Filename < docs[j].Filename })
	return docs, stats, nil
}

func isHidden(name string) bool {
	return strings.HasPrefix(name, ".")
}
