// Package table flattens extracted records into a single rectangular table.
package table

import (
	"fmt"
	"sort"

	"github.com/research-tools/paperinator/internal/llm"
)

// FilenameColumn is the orchestrator's per-document annotation; it is always
// emitted as the last column.
const FilenameColumn = "filename"

const researchQuestions = "research_questions"

// Table is the final rectangular dataset. Every row carries every column;
// a nil value is the explicit absence marker.
type Table struct {
	Columns []string
	Rows    []map[string]any
}

// Build flattens records (in input order) into a rectangular table.
//
// The research_questions list is expanded into research_question_1..N columns,
// N being the maximum list length observed across all records; shorter lists
// are right-padded with the absence marker and the original field is dropped.
// All other list fields stay as single cells holding the ordered sequence —
// the expansion asymmetry is a fixed decision for this dataset.
func Build(records []llm.Record) Table {
	// first pass: widest research_questions list wins
	maxQ := 0
	for _, rec := range records {
		if n := len(rec.ResearchQuestions); n > maxQ {
			maxQ = n
		}
	}

	qCols := make([]string, maxQ)
	for i := range qCols {
		qCols[i] = fmt.Sprintf("research_question_%d", i+1)
	}

	// second pass: expand per record and collect the column universe
	flat := make([]map[string]any, 0, len(records))
	present := make(map[string]struct{})
	for _, rec := range records {
		f := rec.Fields()
		qs, _ := f[researchQuestions].([]string)
		delete(f, researchQuestions)
		for i, col := range qCols {
			if i < len(qs) {
				f[col] = qs[i]
			} else {
				f[col] = nil
			}
		}
		for k := range f {
			present[k] = struct{}{}
		}
		flat = append(flat, f)
	}

	columns := orderColumns(present, qCols)

	// rectangularize: every row gets every column, nil marking absence
	rows := make([]map[string]any, 0, len(flat))
	for _, f := range flat {
		row := make(map[string]any, len(columns))
		for _, col := range columns {
			if v, ok := f[col]; ok {
				row[col] = v
			} else {
				row[col] = nil
			}
		}
		rows = append(rows, row)
	}

	return Table{Columns: columns, Rows: rows}
}

// orderColumns fixes the column order: known schema fields in prompt order
// (expansion columns in place of research_questions), then any extra keys
// sorted, with filename last.
func orderColumns(present map[string]struct{}, qCols []string) []string {
	columns := make([]string, 0, len(present))
	seen := make(map[string]struct{}, len(present))
	take := func(col string) {
		if _, ok := present[col]; !ok {
			return
		}
		if _, dup := seen[col]; dup {
			return
		}
		seen[col] = struct{}{}
		columns = append(columns, col)
	}

	for _, k := range llm.FieldOrder {
		if k == researchQuestions {
			for _, qc := range qCols {
				take(qc)
			}
			continue
		}
		take(k)
	}

	var extras []string
	for k := range present {
		if _, ok := seen[k]; !ok && k != FilenameColumn {
			extras = append(extras, k)
		}
	}
	sort.Strings(extras)
	for _, k := range extras {
		take(k)
	}
	take(FilenameColumn)
	return columns
}
