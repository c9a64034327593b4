// Package cache persists one JSON artifact per processed document.
// An artifact's existence is authoritative proof the document was already
// processed; deleting the file is the only supported invalidation.
package cache

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"unicode"

	"github.com/research-tools/paperinator/internal/llm"
)

type Cache struct {
	dir    string
	logger *slog.Logger
}

// New opens (creating if needed) the artifact directory.
func New(dir string, logger *slog.Logger) (*Cache, error) {
	if logger == nil {
		logger = slog.Default()
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create cache dir: %w", err)
	}
	return &Cache{dir: dir, logger: logger}, nil
}

// Key derives the stable, filesystem-safe cache key for a document filename:
// extension stripped, '-'/'_'/whitespace-separated tokens collapsed into a
// camelCase identifier. "My Paper.pdf", "my_paper.PDF" and "my-paper.pdf"
// all map to "myPaper".
func Key(filename string) string {
	base := filepath.Base(filename)
	stem := strings.TrimSuffix(base, filepath.Ext(base))
	stem = strings.NewReplacer("-", " ", "_", " ").Replace(stem)
	tokens := strings.Fields(stem)
	if len(tokens) == 0 {
		return ""
	}
	var b strings.Builder
	b.WriteString(strings.ToLower(tokens[0]))
	for _, t := range tokens[1:] {
		b.WriteString(titleToken(t))
	}
	return b.String()
}

func titleToken(s string) string {
	r := []rune(strings.ToLower(s))
	if len(r) == 0 {
		return s
	}
	r[0] = unicode.ToUpper(r[0])
	return string(r)
}

func (c *Cache) path(key string) string {
	return filepath.Join(c.dir, key+".json")
}

// Has reports whether a complete artifact exists for key.
func (c *Cache) Has(key string) bool {
	st, err := os.Stat(c.path(key))
	return err == nil && !st.IsDir()
}

// Load reads the artifact for key back into a record.
func (c *Cache) Load(key string) (llm.Record, error) {
	b, err := os.ReadFile(c.path(key))
	if err != nil {
		return llm.Record{}, fmt.Errorf("read cache artifact: %w", err)
	}
	var rec llm.Record
	if err := json.Unmarshal(b, &rec); err != nil {
		return llm.Record{}, fmt.Errorf("decode cache artifact %s: %w", key, err)
	}
	return rec, nil
}

// Store writes the record as <key>.json. The write goes to a temp file in the
// same directory first and is renamed into place, so a crash mid-write can
// never leave a partial artifact that Has reports as present.
func (c *Cache) Store(key string, rec llm.Record) error {
	tmp, err := os.CreateTemp(c.dir, key+".tmp-*")
	if err != nil {
		return fmt.Errorf("create temp artifact: %w", err)
	}
	tmpName := tmp.Name()

	enc := json.NewEncoder(tmp)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(rec); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
		return fmt.Errorf("encode cache artifact: %w", err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("close temp artifact: %w", err)
	}
	if err := os.Rename(tmpName, c.path(key)); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("publish cache artifact: %w", err)
	}
	c.logger.Debug("cache.store.ok", "key", key)
	return nil
}
