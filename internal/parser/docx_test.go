package parser

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dgallion1/deckgen/internal/parser/parsertest"
)

func TestDOCXParser_ParagraphsInOrder(t *testing.T) {
	path := parsertest.WriteDOCX(t, t.TempDir(), "unit.docx", "Work Health and Safety", "Identify hazards", "Control risks")

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()
	info, err := f.Stat()
	require.NoError(t, err)

	text, err := (&DOCXParser{}).Parse(f, info.Size())
	require.NoError(t, err)
	assert.Equal(t, "Work Health and Safety\nIdentify hazards\nControl risks", text)
}

func TestDOCXParser_NotADocx(t *testing.T) {
	text, err := parseTextAs(t, &DOCXParser{}, "plain text, not a zip archive")
	assert.Error(t, err)
	assert.Empty(t, text)
}
