// Package export renders generated artifacts as Markdown, HTML and DOCX.
package export

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/fumiama/go-docx"
	"github.com/yuin/goldmark"

	"github.com/dgallion1/deckgen/internal/artifact"
)

// Format is an export output format.
type Format string

const (
	FormatMarkdown Format = "md"
	FormatHTML     Format = "html"
	FormatDOCX     Format = "docx"
)

// ContentType returns the MIME type for f.
func (f Format) ContentType() string {
	switch f {
	case FormatHTML:
		return "text/html; charset=utf-8"
	case FormatDOCX:
		return "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
	default:
		return "text/markdown; charset=utf-8"
	}
}

// ParseFormat accepts md, markdown, html and docx.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "md", "markdown":
		return FormatMarkdown, nil
	case "html":
		return FormatHTML, nil
	case "docx":
		return FormatDOCX, nil
	}
	return "", fmt.Errorf("unsupported export format %q", s)
}

// Markdown renders a deck with one second-level heading per slide.
func Markdown(deck artifact.SlideDeck) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "# %s\n", deck.Title)
	for _, s := range deck.Slides {
		fmt.Fprintf(&sb, "\n## %s\n\n", s.Title)
		for _, p := range s.Points {
			fmt.Fprintf(&sb, "- %s\n", p)
		}
		if s.Infographic != "" {
			fmt.Fprintf(&sb, "\n*Infographic: %s*\n", s.Infographic)
		}
	}
	return sb.String()
}

// MindMapMarkdown renders the map as a nested bullet outline under the root
// heading. Nodes keep their input order among siblings.
func MindMapMarkdown(mm artifact.MindMap) string {
	children := make(map[string][]artifact.Node)
	for _, n := range mm.Nodes {
		children[n.Parent] = append(children[n.Parent], n)
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "# %s\n\n", mm.Root)
	var walk func(parent string, depth int)
	walk = func(parent string, depth int) {
		for _, n := range children[parent] {
			fmt.Fprintf(&sb, "%s- %s\n", strings.Repeat("  ", depth), n.Label)
			walk(n.ID, depth+1)
		}
	}
	walk(artifact.RootMarker, 0)
	return sb.String()
}

// HTML converts Markdown to an HTML fragment.
func HTML(md string) ([]byte, error) {
	var buf bytes.Buffer
	if err := goldmark.Convert([]byte(md), &buf); err != nil {
		return nil, fmt.Errorf("render html: %w", err)
	}
	return buf.Bytes(), nil
}

// DOCX writes deck as a Word document: a title paragraph, then per slide a
// bold heading, one paragraph per point and an italic infographic line.
func DOCX(w io.Writer, deck artifact.SlideDeck) error {
	doc := docx.New().WithDefaultTheme()

	doc.AddParagraph().AddText(deck.Title).Bold().Size("44")
	for _, s := range deck.Slides {
		doc.AddParagraph()
		doc.AddParagraph().AddText(s.Title).Bold().Size("32")
		for _, p := range s.Points {
			doc.AddParagraph().AddText("• " + p)
		}
		if s.Infographic != "" {
			doc.AddParagraph().AddText("Infographic: " + s.Infographic).Italic()
		}
	}

	if _, err := doc.WriteTo(w); err != nil {
		return fmt.Errorf("write docx: %w", err)
	}
	return nil
}
