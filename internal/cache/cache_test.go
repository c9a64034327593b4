package cache

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/research-tools/paperinator/internal/llm"
)

func TestKey_Derivation(t *testing.T) {
	tests := []struct {
		name     string
		filename string
		want     string
	}{
		{"spaces", "My Paper.pdf", "myPaper"},
		{"underscores and uppercase ext", "my_paper.PDF", "myPaper"},
		{"dashes", "my-paper.pdf", "myPaper"},
		{"trailing number", "my paper 2.pdf", "myPaper2"},
		{"single token", "paper.pdf", "paper"},
		{"mixed separators", "deep-learning_survey 2021.pdf", "deepLearningSurvey2021"},
		{"uppercase tokens", "BERT Analysis.pdf", "bertAnalysis"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Key(tt.filename))
		})
	}
}

func TestKey_CollidesOnEquivalentNames(t *testing.T) {
	assert.Equal(t, Key("My Paper.pdf"), Key("my-paper.PDF"))
	assert.NotEqual(t, Key("my paper.pdf"), Key("my paper 2.pdf"))
}

func TestCache_RoundTrip(t *testing.T) {
	c, err := New(t.TempDir(), nil)
	require.NoError(t, err)

	var rec llm.Record
	require.NoError(t, json.Unmarshal([]byte(`{
		"title": "Attention Is All You Need",
		"authors": ["Vaswani", "Shazeer"],
		"publication_year": 2017,
		"research_questions": ["Can attention replace recurrence?"],
		"venue": "NeurIPS"
	}`), &rec))
	rec.Annotate("filename", "attention.pdf")

	key := Key("attention.pdf")
	require.False(t, c.Has(key))
	require.NoError(t, c.Store(key, rec))
	require.True(t, c.Has(key))

	got, err := c.Load(key)
	require.NoError(t, err)
	assert.Equal(t, rec.Fields(), got.Fields())
}

func TestCache_StoreLeavesNoTempFiles(t *testing.T) {
	dir := t.TempDir()
	c, err := New(dir, nil)
	require.NoError(t, err)

	var rec llm.Record
	require.NoError(t, json.Unmarshal([]byte(`{"title":"T"}`), &rec))
	require.NoError(t, c.Store("paper", rec))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "paper.json", entries[0].Name())
}

func TestCache_ArtifactIsIndentedUTF8(t *testing.T) {
	dir := t.TempDir()
	c, err := New(dir, nil)
	require.NoError(t, err)

	var rec llm.Record
	require.NoError(t, json.Unmarshal([]byte(`{"title":"Étude sur les cafés <html>"}`), &rec))
	require.NoError(t, c.Store("etude", rec))

	b, err := os.ReadFile(filepath.Join(dir, "etude.json"))
	require.NoError(t, err)
	body := string(b)
	assert.Contains(t, body, "\n  \"title\"", "artifact should be human-readable indented")
	assert.Contains(t, body, "Étude", "non-ASCII must not be escaped")
	assert.Contains(t, body, "<html>", "html must not be escaped")
	assert.False(t, strings.Contains(body, `\u`), "no unicode escapes expected")
}

func TestCache_HasIgnoresDirectories(t *testing.T) {
	dir := t.TempDir()
	c, err := New(dir, nil)
	require.NoError(t, err)

	require.NoError(t, os.Mkdir(filepath.Join(dir, "weird.json"), 0o755))
	assert.False(t, c.Has("weird"))
}
