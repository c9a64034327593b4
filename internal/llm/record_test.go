package llm

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecord_UnmarshalKnownFields(t *testing.T) {
	var rec Record
	require.NoError(t, json.Unmarshal([]byte(`{
		"title": "A Study",
		"authors": ["Ada Lovelace", "Alan Turing"],
		"publication_year": "1950",
		"keywords": ["computing"],
		"research_questions": ["Q1", "Q2"],
		"conclusion": "It computes."
	}`), &rec))

	assert.Equal(t, FlexString("A Study"), rec.Title)
	assert.Equal(t, FlexStrings{"Ada Lovelace", "Alan Turing"}, rec.Authors)
	assert.Equal(t, FlexString("1950"), rec.PublicationYear)
	assert.Equal(t, FlexStrings{"Q1", "Q2"}, rec.ResearchQuestions)
	assert.Empty(t, rec.Extra)
	assert.False(t, rec.IsEmpty())
}

func TestRecord_UnmarshalNumericYear(t *testing.T) {
	var rec Record
	require.NoError(t, json.Unmarshal([]byte(`{"publication_year": 2021}`), &rec))
	assert.Equal(t, FlexString("2021"), rec.PublicationYear)
}

func TestRecord_UnmarshalScalarResearchQuestions(t *testing.T) {
	var rec Record
	require.NoError(t, json.Unmarshal([]byte(`{"research_questions": "single question text"}`), &rec))
	assert.Equal(t, FlexStrings{"single question text"}, rec.ResearchQuestions)
}

func TestRecord_UnexpectedKeysLandInExtra(t *testing.T) {
	var rec Record
	require.NoError(t, json.Unmarshal([]byte(`{
		"title": "T",
		"venue": "ICML",
		"citation_count": 42
	}`), &rec))

	assert.Equal(t, "ICML", rec.Extra["venue"])
	assert.Equal(t, float64(42), rec.Extra["citation_count"])
	_, hasTitle := rec.Extra["title"]
	assert.False(t, hasTitle, "known fields must not duplicate into Extra")
}

func TestRecord_MarshalIncludesExtra(t *testing.T) {
	var rec Record
	require.NoError(t, json.Unmarshal([]byte(`{"title":"T"}`), &rec))
	rec.Annotate("filename", "t.pdf")

	b, err := json.Marshal(rec)
	require.NoError(t, err)

	var m map[string]any
	require.NoError(t, json.Unmarshal(b, &m))
	assert.Equal(t, "T", m["title"])
	assert.Equal(t, "t.pdf", m["filename"])
}

func TestRecord_MarshalEmptyWithAnnotation(t *testing.T) {
	var rec Record
	rec.Annotate("filename", "broken.pdf")

	b, err := json.Marshal(rec)
	require.NoError(t, err)
	assert.JSONEq(t, `{"filename":"broken.pdf"}`, string(b))
}

func TestRecord_RoundTrip(t *testing.T) {
	var rec Record
	require.NoError(t, json.Unmarshal([]byte(`{
		"title": "T",
		"main_findings": ["f1", "f2"],
		"venue": "arXiv"
	}`), &rec))

	b, err := json.Marshal(rec)
	require.NoError(t, err)

	var back Record
	require.NoError(t, json.Unmarshal(b, &back))
	assert.Equal(t, rec.Fields(), back.Fields())
}

func TestRecord_IsEmpty(t *testing.T) {
	assert.True(t, Record{}.IsEmpty())

	var withExtra Record
	withExtra.Annotate("filename", "x.pdf")
	assert.False(t, withExtra.IsEmpty())
}

func TestFlexStrings_NumericElements(t *testing.T) {
	var f FlexStrings
	require.NoError(t, json.Unmarshal([]byte(`["a", 3, "b"]`), &f))
	assert.Equal(t, FlexStrings{"a", "3", "b"}, f)
}
