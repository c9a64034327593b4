package llm

import "context"

// Request is a single completion request to a provider backend.
type Request struct {
	System      string
	User        string
	Temperature float32
}

// Backend is the capability "turn text plus a fixed instruction into raw
// answer text". One implementation per LLM provider; the JSON parsing and
// empty-record-on-failure policy live in Client, outside the backends.
type Backend interface {
	Name() string
	Complete(ctx context.Context, req Request) (string, error)
}

// FieldExtractor is the interface the pipeline depends on.
type FieldExtractor interface {
	Extract(ctx context.Context, text string) Record
}
