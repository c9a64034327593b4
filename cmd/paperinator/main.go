package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"

	"github.com/research-tools/paperinator/internal/cache"
	"github.com/research-tools/paperinator/internal/common"
	"github.com/research-tools/paperinator/internal/export"
	"github.com/research-tools/paperinator/internal/ingest"
	"github.com/research-tools/paperinator/internal/joblog"
	"github.com/research-tools/paperinator/internal/llm"
	"github.com/research-tools/paperinator/internal/llm/providers"
	"github.com/research-tools/paperinator/internal/ocr"
	"github.com/research-tools/paperinator/internal/pipeline"
	"github.com/research-tools/paperinator/internal/table"
)

// printError prints an error message to stderr, falling back to stdout if stderr fails
func printError(format string, args ...interface{}) {
	if _, err := fmt.Fprintf(os.Stderr, format, args...); err != nil {
		fmt.Printf(format, args...)
	}
}

func main() {
	// Parse CLI flags
	var (
		in       = flag.String("in", "", "input directory of papers, PDF or images (overrides INPUT_DIR)")
		out      = flag.String("out", "", "output directory (overrides OUTPUT_DIR)")
		provider = flag.String("provider", "", "LLM provider: openai | anthropic | ollama (overrides LLM_PROVIDER)")
		model    = flag.String("model", "", "model identifier (overrides LLM_MODEL)")
		debug    = flag.Bool("debug", false, "enable debug logging")
	)
	flag.Parse()

	// .env is optional; real environment wins
	_ = godotenv.Load()

	// Setup logger
	level := slog.LevelInfo
	if *debug {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)

	// Load configuration and apply flag overrides
	cfg := common.LoadConfig()
	if *in != "" {
		cfg.Input.Dir = *in
	}
	if *out != "" {
		cfg.Output.Dir = *out
	}
	if *provider != "" {
		cfg.LLM.Provider = *provider
		cfg.LLM.APIKey = common.ProviderAPIKey(*provider)
	}
	if *model != "" {
		cfg.LLM.Model = *model
	}

	if err := cfg.Validate(); err != nil {
		printError("Error: %v\n", err)
		os.Exit(1)
	}

	cacheDir := filepath.Join(cfg.Output.Dir, "json")
	if err := os.MkdirAll(cacheDir, 0o755); err != nil {
		printError("Error: create output dirs: %v\n", err)
		os.Exit(1)
	}

	ctx := context.Background()

	// LLM backend is selected at startup; unsupported providers die here
	backend, err := providers.New(cfg.LLM, logger)
	if err != nil {
		printError("Error: %v\n", err)
		os.Exit(1)
	}
	extractor := llm.NewClient(backend, cfg.LLM.Temperature, logger)

	textExtractor := ocr.NewExtractor(ocr.Config{
		Pdftotext:     cfg.OCR.Pdftotext,
		Pdftoppm:      cfg.OCR.Pdftoppm,
		Tesseract:     cfg.OCR.Tesseract,
		TesseractLang: cfg.OCR.TesseractLang,
		TessdataDir:   cfg.OCR.TessdataDir,
		DPI:           cfg.OCR.DPI,
		MaxPages:      cfg.OCR.MaxPages,
	}, logger)

	resultCache, err := cache.New(cacheDir, logger)
	if err != nil {
		printError("Error: open result cache: %v\n", err)
		os.Exit(1)
	}

	// Run ledger is best-effort diagnostics; a failed open disables it
	var ledger *joblog.Ledger
	if cfg.Output.LedgerEnable {
		ledgerPath := cfg.Output.LedgerPath
		if ledgerPath == "" {
			ledgerPath = filepath.Join(cfg.Output.Dir, "jobs.db")
		}
		ledger, err = joblog.Open(ctx, ledgerPath, logger)
		if err != nil {
			logger.Warn("run ledger disabled", "path", ledgerPath, "error", err)
			ledger = nil
		} else {
			defer func() {
				if cerr := ledger.Close(); cerr != nil {
					logger.Warn("ledger close error", "error", cerr)
				}
			}()
		}
	}

	docs, stats, err := ingest.DiscoverDirectory(cfg.Input.Dir)
	if err != nil {
		printError("Error: %v\n", err)
		os.Exit(1)
	}
	logger.Info("discovery.done",
		"dir", cfg.Input.Dir,
		"scanned", stats.Scanned,
		"matched", stats.Matched,
		"skipped", stats.Skipped,
	)

	processor := pipeline.NewProcessor(textExtractor, extractor, resultCache, ledger, logger)
	records := processor.Run(ctx, docs)

	tbl := table.Build(records)
	exp := export.NewService(logger)

	base := filepath.Join(cfg.Output.Dir, cfg.Output.TableBase)
	if !cfg.Output.DisableCSV {
		if err := exp.WriteCSV(base+".csv", tbl); err != nil {
			printError("Error: %v\n", err)
			os.Exit(1)
		}
	}
	if !cfg.Output.DisableJSON {
		if err := exp.WriteJSON(base+".json", tbl); err != nil {
			printError("Error: %v\n", err)
			os.Exit(1)
		}
	}
	if !cfg.Output.DisableXLSX {
		if err := exp.WriteXLSX(base+".xlsx", tbl); err != nil {
			printError("Error: %v\n", err)
			os.Exit(1)
		}
	}

	logger.Info("run.done",
		"files", len(docs),
		"records", len(records),
		"columns", len(tbl.Columns),
		"output", cfg.Output.Dir,
	)
}
