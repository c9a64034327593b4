package table

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/research-tools/paperinator/internal/llm"
)

func mustRecord(t *testing.T, raw string) llm.Record {
	t.Helper()
	var rec llm.Record
	require.NoError(t, json.Unmarshal([]byte(raw), &rec))
	return rec
}

func TestBuild_ExpandsResearchQuestions(t *testing.T) {
	records := []llm.Record{
		mustRecord(t, `{"research_questions": ["q1", "q2"]}`),
		mustRecord(t, `{"research_questions": ["q1"]}`),
		mustRecord(t, `{}`),
	}

	tbl := Build(records)

	assert.Contains(t, tbl.Columns, "research_question_1")
	assert.Contains(t, tbl.Columns, "research_question_2")
	assert.NotContains(t, tbl.Columns, "research_question_3")
	assert.NotContains(t, tbl.Columns, "research_questions", "original field is removed after expansion")

	require.Len(t, tbl.Rows, 3)
	assert.Equal(t, "q1", tbl.Rows[0]["research_question_1"])
	assert.Equal(t, "q2", tbl.Rows[0]["research_question_2"])
	assert.Equal(t, "q1", tbl.Rows[1]["research_question_1"])
	assert.Nil(t, tbl.Rows[1]["research_question_2"], "short lists are right-padded")
	assert.Nil(t, tbl.Rows[2]["research_question_1"])
	assert.Nil(t, tbl.Rows[2]["research_question_2"])
}

func TestBuild_ScalarResearchQuestions(t *testing.T) {
	records := []llm.Record{
		mustRecord(t, `{"research_questions": "single question text"}`),
		mustRecord(t, `{"research_questions": ["a", "b"]}`),
	}

	tbl := Build(records)

	assert.Equal(t, "single question text", tbl.Rows[0]["research_question_1"])
	assert.Nil(t, tbl.Rows[0]["research_question_2"])
	assert.Equal(t, "a", tbl.Rows[1]["research_question_1"])
	assert.Equal(t, "b", tbl.Rows[1]["research_question_2"])
}

func TestBuild_NoResearchQuestionsAnywhere(t *testing.T) {
	records := []llm.Record{
		mustRecord(t, `{"title": "A"}`),
		mustRecord(t, `{"title": "B"}`),
	}

	tbl := Build(records)

	for _, col := range tbl.Columns {
		assert.NotContains(t, col, "research_question")
	}
}

func TestBuild_RowsAreRectangular(t *testing.T) {
	records := []llm.Record{
		mustRecord(t, `{"title": "A", "keywords": ["k"]}`),
		mustRecord(t, `{"abstract": "..."}`),
	}

	tbl := Build(records)

	for _, row := range tbl.Rows {
		assert.Len(t, row, len(tbl.Columns), "every row carries every column")
		for _, col := range tbl.Columns {
			_, ok := row[col]
			assert.True(t, ok, "missing column %q", col)
		}
	}
	assert.Nil(t, tbl.Rows[0]["abstract"])
	assert.Nil(t, tbl.Rows[1]["title"])
}

func TestBuild_OtherListsStayAsCells(t *testing.T) {
	records := []llm.Record{
		mustRecord(t, `{"authors": ["A", "B"], "keywords": ["x"], "research_questions": ["q"]}`),
	}

	tbl := Build(records)

	assert.Equal(t, []string{"A", "B"}, tbl.Rows[0]["authors"])
	assert.Equal(t, []string{"x"}, tbl.Rows[0]["keywords"])
	assert.NotContains(t, tbl.Columns, "authors_1", "only research_questions is expanded")
}

func TestBuild_PreservesInputOrder(t *testing.T) {
	records := []llm.Record{
		mustRecord(t, `{"title": "second"}`),
		mustRecord(t, `{"title": "first"}`),
	}

	tbl := Build(records)
	assert.Equal(t, "second", tbl.Rows[0]["title"])
	assert.Equal(t, "first", tbl.Rows[1]["title"])
}

func TestBuild_ColumnOrderAndFilenameLast(t *testing.T) {
	rec := mustRecord(t, `{"title": "T", "research_questions": ["q"], "venue": "X"}`)
	rec.Annotate(FilenameColumn, "t.pdf")

	tbl := Build([]llm.Record{rec})

	require.NotEmpty(t, tbl.Columns)
	assert.Equal(t, "title", tbl.Columns[0])
	assert.Equal(t, FilenameColumn, tbl.Columns[len(tbl.Columns)-1])
	assert.Equal(t, "t.pdf", tbl.Rows[0][FilenameColumn])
}

func TestBuild_EmptyInput(t *testing.T) {
	tbl := Build(nil)
	assert.Empty(t, tbl.Columns)
	assert.Empty(t, tbl.Rows)
}
