package export

import (
	"encoding/csv"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/research-tools/paperinator/internal/table"
)

func sampleTable() table.Table {
	return table.Table{
		Columns: []string{"title", "authors", "research_question_1", "filename"},
		Rows: []map[string]any{
			{
				"title":               "X",
				"authors":             []string{"A", "B"},
				"research_question_1": "Q1",
				"filename":            "paper.pdf",
			},
			{
				"title":               "Y",
				"authors":             nil,
				"research_question_1": nil,
				"filename":            "other.pdf",
			},
		},
	}
}

func TestWriteCSV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "output.csv")
	s := NewService(nil)
	require.NoError(t, s.WriteCSV(path, sampleTable()))

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	rows, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 3)

	assert.Equal(t, []string{"title", "authors", "research_question_1", "filename"}, rows[0])
	assert.Equal(t, []string{"X", `["A","B"]`, "Q1", "paper.pdf"}, rows[1])
	assert.Equal(t, []string{"Y", "", "", "other.pdf"}, rows[2], "absence marker renders as empty cell")
}

func TestWriteJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "output.json")
	s := NewService(nil)
	require.NoError(t, s.WriteJSON(path, sampleTable()))

	b, err := os.ReadFile(path)
	require.NoError(t, err)

	var rows []map[string]any
	require.NoError(t, json.Unmarshal(b, &rows))
	require.Len(t, rows, 2)

	assert.Equal(t, "X", rows[0]["title"])
	assert.Equal(t, []any{"A", "B"}, rows[0]["authors"])

	// absent cells are explicit nulls, not omitted keys
	v, ok := rows[1]["research_question_1"]
	assert.True(t, ok)
	assert.Nil(t, v)
}

func TestWriteJSON_PreservesUnicode(t *testing.T) {
	path := filepath.Join(t.TempDir(), "output.json")
	tbl := table.Table{
		Columns: []string{"title"},
		Rows:    []map[string]any{{"title": "Étude <b>"}},
	}
	require.NoError(t, NewService(nil).WriteJSON(path, tbl))

	b, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(b), "Étude <b>")
}

func TestWriteXLSX(t *testing.T) {
	path := filepath.Join(t.TempDir(), "output.xlsx")
	s := NewService(nil)
	require.NoError(t, s.WriteXLSX(path, sampleTable()))

	st, err := os.Stat(path)
	require.NoError(t, err)
	assert.Greater(t, st.Size(), int64(0))
}

func TestCellString(t *testing.T) {
	assert.Equal(t, "", cellString(nil))
	assert.Equal(t, "plain", cellString("plain"))
	assert.Equal(t, `["a","b"]`, cellString([]string{"a", "b"}))
}
