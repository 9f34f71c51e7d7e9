package parser

import (
	"fmt"
	"io"
	"os/exec"
	"strings"

	pdflib "github.com/ledongthuc/pdf"
)

// PDFParser handles PDF files. It tries the Go library first,
// then falls back to pdftotext if enabled and installed.
type PDFParser struct {
	FallbackPdftotext bool
}

func (p *PDFParser) Parse(r io.ReaderAt, size int64) (string, error) {
	pages, err := extractPDFPages(r, size)
	if err != nil && p.FallbackPdftotext {
		pages, err = extractPdftotext(io.NewSectionReader(r, 0, size))
	}
	if err != nil {
		return "", fmt.Errorf("extract pdf text: %w", err)
	}

	var kept []string
	for _, page := range pages {
		if page = strings.TrimSpace(page); page != "" {
			kept = append(kept, page)
		}
	}
	return strings.Join(kept, "\n"), nil
}

func extractPDFPages(r io.ReaderAt, size int64) (pages []string, err error) {
	// The PDF library panics on some malformed inputs.
	defer func() {
		if rec := recover(); rec != nil {
			pages, err = nil, fmt.Errorf("read pdf: %v", rec)
		}
	}()

	reader, err := pdflib.NewReader(r, size)
	if err != nil {
		return nil, err
	}

	numPages := reader.NumPage()
	pages = make([]string, 0, numPages)
	for i := 1; i <= numPages; i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		// Scanned or image-only pages may come back empty or garbled.
		text, err := page.GetPlainText(nil)
		if err != nil {
			continue
		}
		pages = append(pages, text)
	}
	return pages, nil
}

func extractPdftotext(r io.Reader) ([]string, error) {
	cmd := exec.Command("pdftotext", "-layout", "-", "-")
	cmd.Stdin = r
	out, err := cmd.Output()
	if err != nil {
		return nil, fmt.Errorf("pdftotext: %w", err)
	}
	// pdftotext separates pages with a form feed.
	return strings.Split(string(out), "\f"), nil
}
