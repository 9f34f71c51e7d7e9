package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Chdir(t.TempDir())
	for _, k := range []string{"PORT", "GEMINI_API_KEY", "GEMINI_MODEL", "MODEL_TIMEOUT", "MAX_DOCUMENT_BYTES",
		"DOCUMENT_ROOT", "PDF_FALLBACK_PDFTOTEXT", "FALLBACK_PAD_SLIDES", "DECKGEN_API_KEY", "LLM_STATS_WINDOW"} {
		t.Setenv(k, "")
	}

	cfg := Load()

	assert.Equal(t, "8001", cfg.Port)
	assert.False(t, cfg.HasModel())
	assert.Equal(t, "gemini-2.5-flash", cfg.GeminiModel)
	assert.Equal(t, 60*time.Second, cfg.ModelTimeout)
	assert.Equal(t, int64(52428800), cfg.MaxDocumentBytes)
	assert.True(t, cfg.PDFFallbackPdftotext)
	assert.True(t, cfg.FallbackPadSlides)
	assert.Equal(t, time.Hour, cfg.LLMStatsWindow)
	assert.NoError(t, cfg.Validate())
}

func TestLoad_FromEnvironment(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("PORT", "9000")
	t.Setenv("GEMINI_API_KEY", "k")
	t.Setenv("MODEL_TIMEOUT", "5s")
	t.Setenv("MAX_DOCUMENT_BYTES", "-1")
	t.Setenv("FALLBACK_PAD_SLIDES", "false")
	t.Setenv("LLM_STATS_WINDOW", "garbage")

	cfg := Load()

	assert.Equal(t, "9000", cfg.Port)
	assert.True(t, cfg.HasModel())
	assert.Equal(t, 5*time.Second, cfg.ModelTimeout)
	assert.Equal(t, int64(52428800), cfg.MaxDocumentBytes)
	assert.False(t, cfg.FallbackPadSlides)
	assert.Equal(t, time.Hour, cfg.LLMStatsWindow)
}

func TestLoad_DotEnv(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("GEMINI_MODEL=gemini-2.5-pro\nPORT=7000\n"), 0o600))
	t.Setenv("GEMINI_MODEL", "")
	t.Setenv("PORT", "7100")
	os.Unsetenv("GEMINI_MODEL")

	cfg := Load()

	assert.Equal(t, "gemini-2.5-pro", cfg.GeminiModel)
	assert.Equal(t, "7100", cfg.Port, "environment wins over .env")
}

func TestValidate(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "f")
	require.NoError(t, os.WriteFile(file, nil, 0o600))

	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{"minimal", Config{Port: "8001"}, false},
		{"bad port", Config{Port: "http"}, true},
		{"port out of range", Config{Port: "70000"}, true},
		{"key without model", Config{Port: "8001", GeminiAPIKey: "k"}, true},
		{"document root", Config{Port: "8001", DocumentRoot: dir}, false},
		{"missing root", Config{Port: "8001", DocumentRoot: filepath.Join(dir, "nope")}, true},
		{"root is file", Config{Port: "8001", DocumentRoot: file}, true},
		{"relative root", Config{Port: "8001", DocumentRoot: "docs"}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestLoad_MaxDocumentBytes(t *testing.T) {
	t.Chdir(t.TempDir())
	for in, want := range map[string]int64{"1024": 1024, "lots": 52428800, "0": 52428800} {
		t.Setenv("MAX_DOCUMENT_BYTES", in)
		assert.Equal(t, want, Load().MaxDocumentBytes, in)
	}
}
