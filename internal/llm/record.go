package llm

import (
	"encoding/json"
	"fmt"
)

// FlexString is a scalar field that tolerates the model answering with a
// number (publication years in particular come back as bare integers).
type FlexString string

func (f *FlexString) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err == nil {
		*f = FlexString(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err == nil {
		*f = FlexString(n.String())
		return nil
	}
	var v any
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}
	if v == nil {
		*f = ""
		return nil
	}
	*f = FlexString(fmt.Sprintf("%v", v))
	return nil
}

// FlexStrings is a list field that tolerates a single scalar where a list was
// expected. A scalar decodes as a one-element list.
type FlexStrings []string

func (f *FlexStrings) UnmarshalJSON(b []byte) error {
	var ss []string
	if err := json.Unmarshal(b, &ss); err == nil {
		*f = ss
		return nil
	}
	var vs []any
	if err := json.Unmarshal(b, &vs); err == nil {
		out := make([]string, 0, len(vs))
		for _, v := range vs {
			out = append(out, anyToString(v))
		}
		*f = out
		return nil
	}
	var v any
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}
	if v == nil {
		*f = nil
		return nil
	}
	*f = FlexStrings{anyToString(v)}
	return nil
}

func anyToString(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case float64:
		n, _ := json.Marshal(t)
		return string(n)
	default:
		return fmt.Sprintf("%v", t)
	}
}

// Record is the structured answer for one document. Known fields carry the
// fixed extraction schema; Extra carries the filename annotation plus any
// unexpected keys the model returned. The zero value is the empty record.
type Record struct {
	Title             FlexString     `json:"title,omitempty"`
	Authors           FlexStrings    `json:"authors,omitempty"`
	PublicationYear   FlexString     `json:"publication_year,omitempty"`
	Abstract          FlexString     `json:"abstract,omitempty"`
	Summary           FlexString     `json:"summary,omitempty"`
	Keywords          FlexStrings    `json:"keywords,omitempty"`
	ResearchQuestions FlexStrings    `json:"research_questions,omitempty"`
	ChallengesAndGaps FlexStrings    `json:"challenges_and_gaps,omitempty"`
	Novelties         FlexStrings    `json:"novelties,omitempty"`
	MainFindings      FlexStrings    `json:"main_findings,omitempty"`
	Contributions     FlexStrings    `json:"contributions,omitempty"`
	Limitations       FlexStrings    `json:"limitations,omitempty"`
	FutureWork        FlexStrings    `json:"future_work,omitempty"`
	Recommendations   FlexStrings    `json:"recommendations,omitempty"`
	Conclusion        FlexString     `json:"conclusion,omitempty"`
	Extra             map[string]any `json:"-"`
}

// FieldOrder is the canonical column order of the known schema fields,
// matching the extraction prompt.
var FieldOrder = []string{
	"title",
	"authors",
	"publication_year",
	"abstract",
	"summary",
	"keywords",
	"research_questions",
	"challenges_and_gaps",
	"novelties",
	"main_findings",
	"contributions",
	"limitations",
	"future_work",
	"recommendations",
	"conclusion",
}

var knownFields = func() map[string]struct{} {
	m := make(map[string]struct{}, len(FieldOrder))
	for _, k := range FieldOrder {
		m[k] = struct{}{}
	}
	return m
}()

func (r *Record) UnmarshalJSON(b []byte) error {
	type alias Record
	var a alias
	if err := json.Unmarshal(b, &a); err != nil {
		return err
	}
	var m map[string]json.RawMessage
	if err := json.Unmarshal(b, &m); err != nil {
		return err
	}
	for k, raw := range m {
		if _, ok := knownFields[k]; ok {
			continue
		}
		var v any
		if err := json.Unmarshal(raw, &v); err != nil {
			continue
		}
		if a.Extra == nil {
			a.Extra = make(map[string]any)
		}
		a.Extra[k] = v
	}
	*r = Record(a)
	return nil
}

func (r Record) MarshalJSON() ([]byte, error) {
	type alias Record
	b, err := json.Marshal(alias(r))
	if err != nil {
		return nil, err
	}
	if len(r.Extra) == 0 {
		return b, nil
	}
	eb, err := json.Marshal(r.Extra)
	if err != nil {
		return nil, err
	}
	if string(b) == "{}" {
		return eb, nil
	}
	// splice the extra keys into the object
	out := append(b[:len(b)-1], ',')
	return append(out, eb[1:]...), nil
}

// Annotate sets a key in the Extra map, allocating it if needed.
func (r *Record) Annotate(key string, v any) {
	if r.Extra == nil {
		r.Extra = make(map[string]any)
	}
	r.Extra[key] = v
}

// IsEmpty reports whether no field of the record (including extras) is set.
func (r Record) IsEmpty() bool {
	return r.Title == "" &&
		len(r.Authors) == 0 &&
		r.PublicationYear == "" &&
		r.Abstract == "" &&
		r.Summary == "" &&
		len(r.Keywords) == 0 &&
		len(r.ResearchQuestions) == 0 &&
		len(r.ChallengesAndGaps) == 0 &&
		len(r.Novelties) == 0 &&
		len(r.MainFindings) == 0 &&
		len(r.Contributions) == 0 &&
		len(r.Limitations) == 0 &&
		len(r.FutureWork) == 0 &&
		len(r.Recommendations) == 0 &&
		r.Conclusion == "" &&
		len(r.Extra) == 0
}

// Fields returns the record as a field-name -> value map. List fields come
// out as []string, scalar fields as string; absent fields are omitted.
// Extras (filename included) are copied through as-is.
func (r Record) Fields() map[string]any {
	m := make(map[string]any, len(FieldOrder)+len(r.Extra))
	putStr := func(k string, v FlexString) {
		if v != "" {
			m[k] = string(v)
		}
	}
	putList := func(k string, v FlexStrings) {
		if len(v) > 0 {
			m[k] = []string(v)
		}
	}
	putStr("title", r.Title)
	putList("authors", r.Authors)
	putStr("publication_year", r.PublicationYear)
	putStr("abstract", r.Abstract)
	putStr("summary", r.Summary)
	putList("keywords", r.Keywords)
	putList("research_questions", r.ResearchQuestions)
	putList("challenges_and_gaps", r.ChallengesAndGaps)
	putList("novelties", r.Novelties)
	putList("main_findings", r.MainFindings)
	putList("contributions", r.Contributions)
	putList("limitations", r.Limitations)
	putList("future_work", r.FutureWork)
	putList("recommendations", r.Recommendations)
	putStr("conclusion", r.Conclusion)
	for k, v := range r.Extra {
		m[k] = v
	}
	return m
}
