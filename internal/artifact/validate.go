package artifact

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// ErrSchema is wrapped by every decode or validation failure.
var ErrSchema = errors.New("artifact schema mismatch")

// MaxPoints is the upper bound on bullets kept per slide.
const MaxPoints = 4

// DecodeSlideDeck projects a generic JSON value into a SlideDeck and validates it.
func DecodeSlideDeck(v any) (SlideDeck, error) {
	var deck SlideDeck
	if err := project(v, &deck); err != nil {
		return SlideDeck{}, err
	}
	if err := deck.Validate(); err != nil {
		return SlideDeck{}, err
	}
	return deck, nil
}

// DecodeMindMap projects a generic JSON value into a MindMap and validates it.
func DecodeMindMap(v any) (MindMap, error) {
	var mm MindMap
	if err := project(v, &mm); err != nil {
		return MindMap{}, err
	}
	if err := mm.Validate(); err != nil {
		return MindMap{}, err
	}
	return mm, nil
}

func project(v any, dst any) error {
	if _, ok := v.(map[string]any); !ok {
		return fmt.Errorf("%w: expected object, got %T", ErrSchema, v)
	}
	b, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrSchema, err)
	}
	// Round-tripping through the typed struct rejects wrong field types,
	// e.g. "points" given as a string.
	if err := json.Unmarshal(b, dst); err != nil {
		return fmt.Errorf("%w: %v", ErrSchema, err)
	}
	return nil
}

// Validate checks the deck invariants. Whitespace is trimmed and points past
// MaxPoints are dropped.
func (d *SlideDeck) Validate() error {
	d.Title = strings.TrimSpace(d.Title)
	if d.Title == "" {
		return fmt.Errorf("%w: deck title is empty", ErrSchema)
	}
	if len(d.Slides) == 0 {
		return fmt.Errorf("%w: deck has no slides", ErrSchema)
	}
	for i := range d.Slides {
		s := &d.Slides[i]
		s.Title = strings.TrimSpace(s.Title)
		if s.Title == "" {
			return fmt.Errorf("%w: slide %d has no title", ErrSchema, i+1)
		}
		points := s.Points[:0]
		for _, p := range s.Points {
			if p = strings.TrimSpace(p); p != "" {
				points = append(points, p)
			}
		}
		if len(points) == 0 {
			return fmt.Errorf("%w: slide %d has no points", ErrSchema, i+1)
		}
		if len(points) > MaxPoints {
			points = points[:MaxPoints]
		}
		s.Points = points
		s.Infographic = strings.TrimSpace(s.Infographic)
	}
	return nil
}

// Validate checks that every node parent is the root marker or an earlier id.
func (m *MindMap) Validate() error {
	m.Root = strings.TrimSpace(m.Root)
	if m.Root == "" {
		return fmt.Errorf("%w: mind map root is empty", ErrSchema)
	}
	if len(m.Nodes) == 0 {
		return fmt.Errorf("%w: mind map has no nodes", ErrSchema)
	}
	seen := make(map[string]bool, len(m.Nodes))
	for i := range m.Nodes {
		n := &m.Nodes[i]
		n.ID = strings.TrimSpace(n.ID)
		n.Label = strings.TrimSpace(n.Label)
		n.Parent = strings.TrimSpace(n.Parent)
		if n.ID == "" || n.ID == RootMarker {
			return fmt.Errorf("%w: node %d has invalid id %q", ErrSchema, i+1, n.ID)
		}
		if seen[n.ID] {
			return fmt.Errorf("%w: duplicate node id %q", ErrSchema, n.ID)
		}
		if n.Label == "" {
			return fmt.Errorf("%w: node %q has no label", ErrSchema, n.ID)
		}
		if n.Parent != RootMarker && !seen[n.Parent] {
			return fmt.Errorf("%w: node %q references unknown or later parent %q", ErrSchema, n.ID, n.Parent)
		}
		seen[n.ID] = true
	}
	return nil
}
