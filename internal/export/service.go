// Package export serializes the flattened table to CSV, JSON and XLSX.
package export

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/research-tools/paperinator/internal/table"
)

type Service struct {
	logger *slog.Logger
}

func NewService(logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{logger: logger}
}

// cellString renders a table value into a single delimited-text cell.
// The absence marker renders empty; list cells keep their JSON form so the
// ordered sequence survives the flat format.
func cellString(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	default:
		b, err := json.Marshal(t)
		if err != nil {
			return fmt.Sprintf("%v", t)
		}
		return string(b)
	}
}

// WriteCSV writes the table as a header row plus one row per record.
func (s *Service) WriteCSV(path string, t table.Table) error {
	start := time.Now()

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create csv: %w", err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil {
			s.logger.Warn("csv close error", "path", path, "error", cerr)
		}
	}()

	w := csv.NewWriter(f)
	if err := w.Write(t.Columns); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}
	row := make([]string, len(t.Columns))
	for _, r := range t.Rows {
		for i, col := range t.Columns {
			row[i] = cellString(r[col])
		}
		if err := w.Write(row); err != nil {
			return fmt.Errorf("write csv row: %w", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("flush csv: %w", err)
	}

	s.logger.Info("export.csv.ok",
		"path", path,
		"rows", len(t.Rows),
		"columns", len(t.Columns),
		"elapsed_ms", time.Since(start).Milliseconds(),
	)
	return nil
}

// WriteJSON writes the table as a JSON array of row objects, keys in column
// order, absent cells as explicit nulls, non-ASCII preserved.
func (s *Service) WriteJSON(path string, t table.Table) error {
	start := time.Now()

	var buf bytes.Buffer
	buf.WriteString("[")
	for i, r := range t.Rows {
		if i > 0 {
			buf.WriteString(",")
		}
		buf.WriteString("\n  {")
		for j, col := range t.Columns {
			if j > 0 {
				buf.WriteString(",")
			}
			buf.WriteString("\n    ")
			if err := writeJSONField(&buf, col, r[col]); err != nil {
				return err
			}
		}
		buf.WriteString("\n  }")
	}
	buf.WriteString("\n]\n")

	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("write json: %w", err)
	}

	s.logger.Info("export.json.ok",
		"path", path,
		"rows", len(t.Rows),
		"elapsed_ms", time.Since(start).Milliseconds(),
	)
	return nil
}

func writeJSONField(buf *bytes.Buffer, key string, v any) error {
	kb, err := json.Marshal(key)
	if err != nil {
		return fmt.Errorf("marshal json key: %w", err)
	}
	buf.Write(kb)
	buf.WriteString(": ")

	enc := json.NewEncoder(buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("marshal json cell %q: %w", key, err)
	}
	// Encode appends a newline; the layout above adds its own
	buf.Truncate(buf.Len() - 1)
	return nil
}

// WriteXLSX writes the table as a single-sheet workbook.
func (s *Service) WriteXLSX(path string, t table.Table) error {
	start := time.Now()

	f := excelize.NewFile()
	const sheet = "Papers"
	if index, _ := f.GetSheetIndex(sheet); index == -1 {
		if _, err := f.NewSheet(sheet); err != nil {
			return err
		}
	}
	activeIndex, _ := f.GetSheetIndex(sheet)
	f.SetActiveSheet(activeIndex)
	if defIdx, _ := f.GetSheetIndex("Sheet1"); defIdx != -1 && sheet != "Sheet1" {
		_ = f.DeleteSheet("Sheet1")
	}

	for i, col := range t.Columns {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		_ = f.SetCellValue(sheet, cell, col)
	}

	for ri, r := range t.Rows {
		for ci, col := range t.Columns {
			v := r[col]
			if v == nil {
				continue
			}
			cell, _ := excelize.CoordinatesToCellName(ci+1, ri+2)
			_ = f.SetCellValue(sheet, cell, cellString(v))
		}
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("xlsx write: %w", err)
	}

	s.logger.Info("export.xlsx.ok",
		"path", path,
		"rows", len(t.Rows),
		"elapsed_ms", time.Since(start).Milliseconds(),
	)
	return nil
}
