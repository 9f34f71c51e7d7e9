package parser

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dgallion1/deckgen/internal/parser/parsertest"
)

func parseTextAs(t *testing.T, p Parser, input string) (string, error) {
	t.Helper()
	r := strings.NewReader(input)
	return p.Parse(r, int64(r.Len()))
}

func TestPDFParser_PagesJoinedByNewline(t *testing.T) {
	data := parsertest.PDF("Hazard identification", "Risk controls")
	r := bytes.NewReader(data)

	text, err := (&PDFParser{}).Parse(r, int64(len(data)))
	require.NoError(t, err)
	assert.Equal(t, "Hazard identification\nRisk controls", text)
}

func TestPDFParser_SkipsBlankPages(t *testing.T) {
	data := parsertest.PDF("First", " ", "Third")
	r := bytes.NewReader(data)

	text, err := (&PDFParser{}).Parse(r, int64(len(data)))
	require.NoError(t, err)
	assert.Equal(t, "First\nThird", text)
}

func TestPDFParser_Garbage(t *testing.T) {
	text, err := parseTextAs(t, &PDFParser{}, "%PDF-1.4 truncated")
	assert.Error(t, err)
	assert.Empty(t, text)
}
