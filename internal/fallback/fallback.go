// Package fallback builds artifacts deterministically, without a model.
// Its output is used whenever the model path is unavailable or fails.
package fallback

import (
	"fmt"
	"strings"

	"github.com/dgallion1/deckgen/internal/artifact"
)

// linesPerSlide is the pool stride. Each slide's group of lines supplies its
// title (the first line) and its three points.
const linesPerSlide = 3

// Slides builds a deck of up to n slides. With text, slide titles and points
// come from the document's non-blank lines; a sparse document yields fewer
// slides unless pad is set, in which case topic slides fill the remainder.
// Without text the deck has exactly n topic slides.
func Slides(topic, text string, n int, pad bool) artifact.SlideDeck {
	if n < 1 {
		n = 1
	}
	deck := artifact.SlideDeck{Title: topic + " Presentation"}

	lines := contentLines(text)
	if len(lines) == 0 {
		for i := 1; i <= n; i++ {
			deck.Slides = append(deck.Slides, topicSlide(topic, i))
		}
		return deck
	}

	pool := lines[:min(len(lines), n*linesPerSlide)]
	count := min(n, len(pool)/linesPerSlide)
	for i := 1; i <= count; i++ {
		deck.Slides = append(deck.Slides, documentSlide(pool, i))
	}
	if pad {
		for i := count + 1; i <= n; i++ {
			deck.Slides = append(deck.Slides, topicSlide(topic, i))
		}
	}
	return deck
}

// MindMap returns the fixed three-concept map for topic. Document content
// does not vary it.
func MindMap(topic string) artifact.MindMap {
	return artifact.MindMap{
		Root: topic,
		Nodes: []artifact.Node{
			{ID: "1", Label: "Core Concepts", Parent: artifact.RootMarker},
			{ID: "2", Label: "Key Details", Parent: artifact.RootMarker},
			{ID: "3", Label: "Practical Applications", Parent: artifact.RootMarker},
		},
	}
}

func contentLines(text string) []string {
	var lines []string
	for _, line := range strings.Split(text, "\n") {
		if line = strings.TrimSpace(line); line != "" {
			lines = append(lines, line)
		}
	}
	return lines
}

func documentSlide(pool []string, i int) artifact.Slide {
	offset := (i - 1) * linesPerSlide
	title := fmt.Sprintf("Section %d", i)
	if offset < len(pool) {
		title = pool[offset]
	}

	points := placeholderPoints(i)
	for j := range points {
		if k := offset + j; k < len(pool) {
			points[j] = pool[k]
		}
	}
	return artifact.Slide{
		Title:       fmt.Sprintf("Slide %d: %s", i, title),
		Points:      points,
		Infographic: infographic(i),
	}
}

func topicSlide(topic string, i int) artifact.Slide {
	return artifact.Slide{
		Title:       fmt.Sprintf("Slide %d: %s", i, topic),
		Points:      placeholderPoints(i),
		Infographic: infographic(i),
	}
}

func placeholderPoints(i int) []string {
	return []string{
		fmt.Sprintf("Key concept %d.1", i),
		fmt.Sprintf("Important detail %d.2", i),
		fmt.Sprintf("Practical application %d.3", i),
	}
}

func infographic(i int) string {
	return fmt.Sprintf("Visual summary of the ideas on slide %d", i)
}
