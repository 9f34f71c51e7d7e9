// Package artifact defines the generated outputs and the request that produces them.
package artifact

import "strings"

// Kind selects which artifact a request produces.
type Kind string

const (
	KindSlides  Kind = "slides"
	KindMindMap Kind = "mindmap"
)

// RootMarker is the parent value of top-level mind map nodes.
const RootMarker = "root"

const (
	DefaultSlidesTopic  = "Presentation"
	DefaultMindMapTopic = "Mindmap"
	DefaultTheme        = "modern"
	DefaultSlideCount   = 10
	MaxSlideCount       = 50
)

// Request is a single generation request. Build it with NewSlidesRequest or
// NewMindMapRequest so the defaults are applied.
type Request struct {
	Kind         Kind
	Topic        string
	DocumentPath string // empty when no document was supplied
	SlideCount   int    // ignored for mind maps
	Theme        string // accepted, not used by generation
}

func NewSlidesRequest(topic, documentPath string, slideCount int, theme string) Request {
	topic = strings.TrimSpace(topic)
	if topic == "" {
		topic = DefaultSlidesTopic
	}
	if slideCount < 1 {
		slideCount = DefaultSlideCount
	}
	if slideCount > MaxSlideCount {
		slideCount = MaxSlideCount
	}
	if strings.TrimSpace(theme) == "" {
		theme = DefaultTheme
	}
	return Request{
		Kind:         KindSlides,
		Topic:        topic,
		DocumentPath: strings.TrimSpace(documentPath),
		SlideCount:   slideCount,
		Theme:        theme,
	}
}

func NewMindMapRequest(topic, documentPath string) Request {
	topic = strings.TrimSpace(topic)
	if topic == "" {
		topic = DefaultMindMapTopic
	}
	return Request{
		Kind:         KindMindMap,
		Topic:        topic,
		DocumentPath: strings.TrimSpace(documentPath),
	}
}

// SlideDeck is a presentation outline.
type SlideDeck struct {
	Title  string  `json:"title"`
	Slides []Slide `json:"slides"`
}

// Slide is one outline entry. Points holds 3-4 bullets by contract.
type Slide struct {
	Title       string   `json:"title"`
	Points      []string `json:"points"`
	Infographic string   `json:"infographic"`
}

// MindMap is a root concept plus parent-linked nodes.
type MindMap struct {
	Root  string `json:"root"`
	Nodes []Node `json:"nodes"`
}

// Node is a mind map entry. ID is hierarchical ("1", "1.1"); Parent is
// RootMarker or the ID of an earlier node.
type Node struct {
	ID     string `json:"id"`
	Label  string `json:"label"`
	Parent string `json:"parent"`
}
