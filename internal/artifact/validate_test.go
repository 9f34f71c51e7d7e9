package artifact

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decodeJSON(t *testing.T, s string) any {
	t.Helper()
	var v any
	require.NoError(t, json.Unmarshal([]byte(s), &v))
	return v
}

func TestDecodeSlideDeck_Valid(t *testing.T) {
	v := decodeJSON(t, `{
		"title": "Safety",
		"slides": [
			{"title": " Hazards ", "points": ["a", " ", "b", "c", "d", "e"], "infographic": "icon grid"}
		]
	}`)

	deck, err := DecodeSlideDeck(v)
	require.NoError(t, err)
	assert.Equal(t, "Safety", deck.Title)
	require.Len(t, deck.Slides, 1)
	assert.Equal(t, "Hazards", deck.Slides[0].Title)
	assert.Equal(t, []string{"a", "b", "c", "d"}, deck.Slides[0].Points)
}

func TestDecodeSlideDeck_SchemaMismatch(t *testing.T) {
	cases := map[string]string{
		"array instead of object": `[{"title": "x"}]`,
		"wrong key":               `{"name": "x", "pages": []}`,
		"points as string":        `{"title": "x", "slides": [{"title": "a", "points": "b"}]}`,
		"no slides":               `{"title": "x", "slides": []}`,
		"empty slide title":       `{"title": "x", "slides": [{"title": "", "points": ["p"]}]}`,
		"blank points":            `{"title": "x", "slides": [{"title": "a", "points": ["  "]}]}`,
		"mind map shape":          `{"root": "x", "nodes": [{"id": "1", "label": "a", "parent": "root"}]}`,
	}
	for name, raw := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := DecodeSlideDeck(decodeJSON(t, raw))
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrSchema)
		})
	}
}

func TestDecodeMindMap_Valid(t *testing.T) {
	v := decodeJSON(t, `{
		"root": "Safety",
		"nodes": [
			{"id": "1", "label": "Hazard Identification", "parent": "root"},
			{"id": "1.1", "label": "Site Walkthrough", "parent": "1"},
			{"id": "2", "label": "Controls", "parent": "root"}
		]
	}`)

	mm, err := DecodeMindMap(v)
	require.NoError(t, err)
	assert.Equal(t, "Safety", mm.Root)
	assert.Len(t, mm.Nodes, 3)
}

func TestDecodeMindMap_RejectsForwardAndUnknownParents(t *testing.T) {
	cases := map[string]string{
		"forward reference": `{"root": "r", "nodes": [
			{"id": "1.1", "label": "child", "parent": "1"},
			{"id": "1", "label": "parent", "parent": "root"}]}`,
		"self reference": `{"root": "r", "nodes": [{"id": "1", "label": "a", "parent": "1"}]}`,
		"unknown parent": `{"root": "r", "nodes": [{"id": "1", "label": "a", "parent": "9"}]}`,
		"duplicate id": `{"root": "r", "nodes": [
			{"id": "1", "label": "a", "parent": "root"},
			{"id": "1", "label": "b", "parent": "root"}]}`,
		"empty root":    `{"root": "", "nodes": [{"id": "1", "label": "a", "parent": "root"}]}`,
		"numeric id":    `{"root": "r", "nodes": [{"id": 1, "label": "a", "parent": "root"}]}`,
		"missing label": `{"root": "r", "nodes": [{"id": "1", "parent": "root"}]}`,
		"no nodes":      `{"root": "r", "nodes": []}`,
	}
	for name, raw := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := DecodeMindMap(decodeJSON(t, raw))
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrSchema)
		})
	}
}

func TestNewSlidesRequest_Defaults(t *testing.T) {
	req := NewSlidesRequest("  ", "", 0, "")
	assert.Equal(t, KindSlides, req.Kind)
	assert.Equal(t, DefaultSlidesTopic, req.Topic)
	assert.Equal(t, DefaultSlideCount, req.SlideCount)
	assert.Equal(t, DefaultTheme, req.Theme)

	req = NewSlidesRequest("Safety", " /tmp/a.pdf ", 500, "dark")
	assert.Equal(t, "/tmp/a.pdf", req.DocumentPath)
	assert.Equal(t, MaxSlideCount, req.SlideCount)
	assert.Equal(t, "dark", req.Theme)
}

func TestNewMindMapRequest_Defaults(t *testing.T) {
	req := NewMindMapRequest("", "")
	assert.Equal(t, KindMindMap, req.Kind)
	assert.Equal(t, DefaultMindMapTopic, req.Topic)
	assert.Zero(t, req.SlideCount)
}
