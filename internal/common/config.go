package common

import (
	"os"
	"strconv"
	"time"
)

// Supported LLM providers.
const (
	ProviderOpenAI    = "openai"
	ProviderAnthropic = "anthropic"
	ProviderOllama    = "ollama"
)

// Config holds all application configuration
type Config struct {
	Input  InputConfig
	Output OutputConfig
	OCR    OCRConfig
	LLM    LLMConfig
}

// InputConfig holds input discovery configuration
type InputConfig struct {
	Dir string
}

// OutputConfig holds output directory layout configuration
type OutputConfig struct {
	Dir          string // root output dir; cache artifacts live under <Dir>/json
	LedgerPath   string // sqlite run ledger; empty disables the ledger
	TableBase    string // base name for the flattened table files
	DisableXLSX  bool
	DisableJSON  bool
	DisableCSV   bool
	LedgerEnable bool
}

// OCRConfig holds OCR-related configuration
type OCRConfig struct {
	Pdftotext     string
	Pdftoppm      string
	Tesseract     string
	TesseractLang string
	TessdataDir   string
	DPI           int
	MaxPages      int
}

// LLMConfig holds LLM-related configuration
type LLMConfig struct {
	Provider    string
	Model       string
	APIKey      string
	BaseURL     string
	Temperature float32
	Timeout     time.Duration
}

// LoadConfig loads configuration from environment variables
func LoadConfig() *Config {
	provider := getEnv("LLM_PROVIDER", ProviderOpenAI)
	return &Config{
		Input: InputConfig{
			Dir: getEnv("INPUT_DIR", "in"),
		},
		Output: OutputConfig{
			Dir:          getEnv("OUTPUT_DIR", "out"),
			LedgerPath:   getEnv("LEDGER_PATH", ""),
			TableBase:    getEnv("TABLE_BASENAME", "output"),
			LedgerEnable: getEnvAsBool("LEDGER_ENABLED", true),
		},
		OCR: OCRConfig{
			Pdftotext:     getEnv("PDFTOTEXT_BIN", "pdftotext"),
			Pdftoppm:      getEnv("PDFTOPPM_BIN", "pdftoppm"),
			Tesseract:     getEnv("TESSERACT_BIN", "tesseract"),
			TesseractLang: getEnv("TESSERACT_LANG", "eng"),
			TessdataDir:   getEnv("TESSDATA_PREFIX", ""),
			DPI:           getEnvAsInt("OCR_DPI", 300),
			MaxPages:      getEnvAsInt("OCR_MAX_PAGES", 0),
		},
		LLM: LLMConfig{
			Provider:    provider,
			Model:       getEnv("LLM_MODEL", ""),
			APIKey:      ProviderAPIKey(provider),
			BaseURL:     getEnv("LLM_BASE_URL", ""),
			Temperature: getEnvAsFloat32("LLM_TEMPERATURE", 0.0),
			Timeout:     getEnvAsDuration("LLM_TIMEOUT", 120*time.Second),
		},
	}
}

// ProviderAPIKey picks the credential env var for the selected provider.
// Ollama is local and needs none.
func ProviderAPIKey(provider string) string {
	switch provider {
	case ProviderOpenAI:
		return os.Getenv("OPENAI_API_KEY")
	case ProviderAnthropic:
		return os.Getenv("ANTHROPIC_API_KEY")
	default:
		return ""
	}
}

// Helper functions for environment variable parsing
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return defaultValue
}

func getEnvAsFloat32(key string, defaultValue float32) float32 {
	if value := os.Getenv(key); value != "" {
		if floatVal, err := strconv.ParseFloat(value, 32); err == nil {
			return float32(floatVal)
		}
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}

// Validate validates the loaded configuration. Unsupported providers and
// missing credentials are rejected here, before any document is touched.
func (c *Config) Validate() error {
	if c.Input.Dir == "" {
		return NewConfigError("INPUT_DIR is required")
	}
	if c.Output.Dir == "" {
		return NewConfigError("OUTPUT_DIR is required")
	}
	switch c.LLM.Provider {
	case ProviderOpenAI:
		if c.LLM.APIKey == "" {
			return NewConfigError("OPENAI_API_KEY is required for provider 'openai'")
		}
	case ProviderAnthropic:
		if c.LLM.APIKey == "" {
			return NewConfigError("ANTHROPIC_API_KEY is required for provider 'anthropic'")
		}
	case ProviderOllama:
		// local daemon, no credential
	default:
		return NewConfigError("unsupported LLM_PROVIDER: " + c.LLM.Provider)
	}
	return nil
}
