package llm

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/google/uuid"
)

// Client drives a provider backend with the fixed extraction prompt and
// parses the answer into a Record. A failed backend call or unparseable
// answer yields the empty Record and a log line; callers never see an error.
// No retries: a missing cache artifact means the document is retried on the
// next run anyway.
type Client struct {
	backend     Backend
	temperature float32
	schema      map[string]any
	logger      *slog.Logger
}

func NewClient(backend Backend, temperature float32, logger *slog.Logger) *Client {
	if logger == nil {
		logger = slog.Default()
	}
	return &Client{
		backend:     backend,
		temperature: temperature,
		schema:      BuildPaperJSONSchema(),
		logger:      logger,
	}
}

// Extract implements FieldExtractor.
func (c *Client) Extract(ctx context.Context, text string) Record {
	rid := uuid.New().String()
	start := time.Now()

	c.logger.Info("llm.extract.start",
		"req_id", rid,
		"backend", c.backend.Name(),
		"text_len", len(text),
	)

	raw, err := c.backend.Complete(ctx, Request{
		System:      SystemPrompt,
		User:        BuildUserPrompt(text),
		Temperature: c.temperature,
	})
	if err != nil {
		c.logger.Error("llm.extract.backend_error",
			"req_id", rid, "backend", c.backend.Name(), "error", err,
			"elapsed_ms", time.Since(start).Milliseconds(),
		)
		return Record{}
	}

	content := ExtractJSONObject(raw)

	var rec Record
	if err := json.Unmarshal(content, &rec); err != nil {
		c.logger.Error("llm.extract.parse_error",
			"req_id", rid, "error", err,
			"answer_len", len(raw),
			"elapsed_ms", time.Since(start).Milliseconds(),
		)
		return Record{}
	}

	// advisory only: keep the record even when it strays from the schema
	if err := ValidateJSONAgainstSchema(c.schema, content); err != nil {
		c.logger.Warn("llm.extract.schema_mismatch", "req_id", rid, "error", err)
	}

	c.logger.Info("llm.extract.ok",
		"req_id", rid,
		"title", string(rec.Title),
		"authors", len(rec.Authors),
		"research_questions", len(rec.ResearchQuestions),
		"elapsed_ms", time.Since(start).Milliseconds(),
	)
	return rec
}
