package llm

import (
	"fmt"
	"strings"

	"github.com/dgallion1/deckgen/internal/artifact"
)

// Source text budgets, in characters. The cut is a hard token-budget control.
const (
	SlidesTextBudget  = 8000
	MindMapTextBudget = 5000
)

const slidesInstructions = `You are an expert educational content developer.
Create a slide-deck outline for the topic %q using the source document below.

Requirements:
- Produce exactly %d slides.
- Each slide has a short, specific "title".
- Each slide has 3-4 "points": concise bullet points drawn from the document.
- Each slide has an "infographic": a one-sentence suggestion for a supporting visual.
- The deck "title" names the presentation.

Output JSON structure:
{
  "title": "Presentation title",
  "slides": [
    {
      "title": "Slide title",
      "points": ["Point 1", "Point 2", "Point 3"],
      "infographic": "Visual suggestion"
    }
  ]
}`

const mindMapInstructions = `You are an expert at organising knowledge.
Create a hierarchical mind map for the topic %q using the source document below.

Requirements:
- The "root" is the central topic.
- Include 5-8 top-level concepts, each with "parent": %q.
- Give each top-level concept 2-4 child nodes whose "parent" is that concept's id.
- Ids are hierarchical strings: "1", "2" for top-level concepts, "1.1", "1.2" for their children.
- Every "label" is 2-5 words.
- A node may only reference a parent that appears before it in the list.

Output JSON structure:
{
  "root": "Central topic",
  "nodes": [
    {"id": "1", "label": "Main concept", "parent": %q},
    {"id": "1.1", "label": "Supporting idea", "parent": "1"}
  ]
}`

const jsonOnly = "Respond with ONLY valid JSON, no other text, no explanation, no markdown."

// BuildPrompt creates the generation prompt for the requested artifact kind.
// slideCount is ignored for mind maps.
func BuildPrompt(kind artifact.Kind, topic, text string, slideCount int) string {
	var sb strings.Builder
	switch kind {
	case artifact.KindMindMap:
		sb.WriteString(fmt.Sprintf(mindMapInstructions, topic, artifact.RootMarker, artifact.RootMarker))
		text = Truncate(text, MindMapTextBudget)
	default:
		sb.WriteString(fmt.Sprintf(slidesInstructions, topic, slideCount))
		text = Truncate(text, SlidesTextBudget)
	}
	sb.WriteString("\n\n---\n")
	sb.WriteString("Source document:\n")
	sb.WriteString(text)
	sb.WriteString("\n---\n\n")
	sb.WriteString(jsonOnly)
	return sb.String()
}

// Truncate cuts s to at most n characters without splitting a UTF-8 sequence.
func Truncate(s string, n int) string {
	if n <= 0 {
		return ""
	}
	if len(s) <= n {
		return s
	}
	count := 0
	for i := range s {
		if count == n {
			return s[:i]
		}
		count++
	}
	return s
}

// EstimateTokens approximates the token count of text at ~1.33 tokens per
// word. It is used for logging only.
func EstimateTokens(text string) int {
	words := len(strings.Fields(text))
	if words == 0 {
		return 0
	}
	return max(1, int(float64(words)*1.33))
}
