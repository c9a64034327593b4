package common

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validConfig() *Config {
	cfg := LoadConfig()
	cfg.LLM.Provider = ProviderOpenAI
	cfg.LLM.APIKey = "sk-test"
	return cfg
}

func TestValidate_OK(t *testing.T) {
	assert.NoError(t, validConfig().Validate())
}

func TestValidate_UnsupportedProvider(t *testing.T) {
	cfg := validConfig()
	cfg.LLM.Provider = "palm"

	err := cfg.Validate()
	require.Error(t, err)

	var appErr *AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "CONFIG_ERROR", appErr.Code)
	assert.Contains(t, err.Error(), "palm")
}

func TestValidate_MissingCredential(t *testing.T) {
	cfg := validConfig()
	cfg.LLM.APIKey = ""
	assert.Error(t, cfg.Validate())

	cfg.LLM.Provider = ProviderAnthropic
	assert.Error(t, cfg.Validate())

	// ollama is local and needs no credential
	cfg.LLM.Provider = ProviderOllama
	assert.NoError(t, cfg.Validate())
}
