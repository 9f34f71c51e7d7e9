package parser

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
)

// Extractor reads a document from disk and returns its text. It never fails:
// every problem is logged and degrades to the empty string.
type Extractor struct {
	MaxBytes             int64 // 0 disables the limit
	PDFFallbackPdftotext bool
	Log                  *slog.Logger
}

func NewExtractor(maxBytes int64, pdfFallback bool, log *slog.Logger) *Extractor {
	return &Extractor{
		MaxBytes:             maxBytes,
		PDFFallbackPdftotext: pdfFallback,
		Log:                  log,
	}
}

// Extract returns the document text, or "" when the path is empty, missing,
// unreadable, unsupported or fails to decode.
func (e *Extractor) Extract(path string) string {
	if strings.TrimSpace(path) == "" {
		return ""
	}
	text, err := e.extract(path)
	if err != nil {
		e.Log.Warn("document extraction failed",
			"path", path,
			"ext", strings.ToLower(filepath.Ext(path)),
			"error", err,
		)
		return ""
	}
	return text
}

func (e *Extractor) extract(path string) (string, error) {
	p, err := ForFile(path, e.PDFFallbackPdftotext)
	if err != nil {
		return "", err
	}

	f, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("open document: %w", err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return "", fmt.Errorf("stat document: %w", err)
	}
	if info.IsDir() {
		return "", fmt.Errorf("document path is a directory")
	}
	if e.MaxBytes > 0 && info.Size() > e.MaxBytes {
		return "", fmt.Errorf("document exceeds max size (%d > %d bytes)", info.Size(), e.MaxBytes)
	}

	return p.Parse(f, info.Size())
}
