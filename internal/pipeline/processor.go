// Package pipeline drives discovery results through OCR, extraction and the
// result cache, one document at a time.
package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/research-tools/paperinator/constants"
	"github.com/research-tools/paperinator/internal/cache"
	"github.com/research-tools/paperinator/internal/ingest"
	"github.com/research-tools/paperinator/internal/joblog"
	"github.com/research-tools/paperinator/internal/llm"
	"github.com/research-tools/paperinator/internal/ocr"
	"github.com/research-tools/paperinator/internal/table"
)

// TextExtractor is the OCR contract the pipeline depends on.
type TextExtractor interface {
	Extract(ctx context.Context, path string) (ocr.ExtractionResult, error)
}

// ResultCache is the per-document artifact store contract.
type ResultCache interface {
	Has(key string) bool
	Load(key string) (llm.Record, error)
	Store(key string, rec llm.Record) error
}

// Processor coordinates cache lookup, OCR and LLM extraction per document.
// Processing is strictly sequential, in the order documents are given.
type Processor struct {
	logger    *slog.Logger
	ocr       TextExtractor
	extractor llm.FieldExtractor
	cache     ResultCache
	ledger    *joblog.Ledger // nil disables the run ledger
}

func NewProcessor(ocrx TextExtractor, extractor llm.FieldExtractor, rc ResultCache, ledger *joblog.Ledger, logger *slog.Logger) *Processor {
	if logger == nil {
		logger = slog.Default()
	}
	return &Processor{
		logger:    logger,
		ocr:       ocrx,
		extractor: extractor,
		cache:     rc,
		ledger:    ledger,
	}
}

// Run processes each document in turn and returns the accumulated records.
// A failure on one document is logged and skipped; it never aborts the batch.
func (p *Processor) Run(ctx context.Context, docs []ingest.Document) []llm.Record {
	runID := uuid.New().String()
	total := len(docs)
	p.logger.Info("pipeline.run.start", "run_id", runID, "files", total)

	records := make([]llm.Record, 0, total)
	for i, doc := range docs {
		p.logger.Info("pipeline.file.start",
			"run_id", runID,
			"progress", fmt.Sprintf("%d/%d", i+1, total),
			"filename", doc.Filename,
		)
		if rec, ok := p.processDocument(ctx, runID, doc); ok {
			records = append(records, rec)
		}
	}

	p.logger.Info("pipeline.run.done", "run_id", runID, "files", total, "records", len(records))
	return records
}

func (p *Processor) processDocument(ctx context.Context, runID string, doc ingest.Document) (llm.Record, bool) {
	start := time.Now()
	key := cache.Key(doc.Filename)

	if p.cache.Has(key) {
		rec, err := p.cache.Load(key)
		if err == nil {
			p.logger.Info("pipeline.file.cache_hit", "run_id", runID, "filename", doc.Filename, "key", key)
			p.ledger.Record(ctx, joblog.Entry{
				RunID: runID, Filename: doc.Filename, CacheKey: key,
				Status: constants.JobStatusCacheHit, Duration: time.Since(start),
			})
			return rec, true
		}
		// unreadable artifact: recompute rather than fail the document
		p.logger.Warn("pipeline.file.cache_unreadable", "run_id", runID, "filename", doc.Filename, "key", key, "error", err)
	}

	ocrRes, err := p.ocr.Extract(ctx, doc.Path)
	if err != nil {
		p.logger.Error("pipeline.file.ocr_failed",
			"run_id", runID, "filename", doc.Filename, "error", err,
			"elapsed_ms", time.Since(start).Milliseconds(),
		)
		p.ledger.Record(ctx, joblog.Entry{
			RunID: runID, Filename: doc.Filename, CacheKey: key,
			Status: constants.JobStatusFailed, Duration: time.Since(start), Error: err.Error(),
		})
		return llm.Record{}, false
	}
	p.logger.Debug("pipeline.file.ocr_ok",
		"run_id", runID, "filename", doc.Filename,
		"method", ocrRes.Method, "pages", ocrRes.Pages, "text_len", len(ocrRes.Text),
	)

	rec := p.extractor.Extract(ctx, ocrRes.Text)
	empty := rec.IsEmpty()
	rec.Annotate(table.FilenameColumn, doc.Filename)

	if empty {
		// no artifact: the document is naturally retried on the next run
		p.logger.Warn("pipeline.file.no_fields", "run_id", runID, "filename", doc.Filename)
		p.ledger.Record(ctx, joblog.Entry{
			RunID: runID, Filename: doc.Filename, CacheKey: key,
			Status: constants.JobStatusNoFields, Method: ocrRes.Method, Pages: ocrRes.Pages,
			Duration: time.Since(start),
		})
		return rec, true
	}

	if err := p.cache.Store(key, rec); err != nil {
		// keep the record in memory; only the resumability is lost
		p.logger.Warn("pipeline.file.cache_store_failed", "run_id", runID, "filename", doc.Filename, "error", err)
	}

	p.logger.Info("pipeline.file.cached",
		"run_id", runID, "filename", doc.Filename, "key", key,
		"elapsed_ms", time.Since(start).Milliseconds(),
	)
	p.ledger.Record(ctx, joblog.Entry{
		RunID: runID, Filename: doc.Filename, CacheKey: key,
		Status: constants.JobStatusCached, Method: ocrRes.Method, Pages: ocrRes.Pages,
		Duration: time.Since(start),
	})
	return rec, true
}
