package api

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"net/http"
	"path/filepath"
	"strconv"

	"github.com/dgallion1/deckgen/internal/artifact"
)

// Tool names accepted by the tool-call endpoint.
const (
	ToolGenerateSlides  = "generate_slides"
	ToolGenerateMindMap = "generate_mindmap"
)

// ToolCall is the body of POST /.
type ToolCall struct {
	Tool      string        `json:"tool"`
	Arguments ToolArguments `json:"arguments"`
}

// ToolArguments carries the generation arguments. Absent keys take the
// request defaults.
type ToolArguments struct {
	Topic        string     `json:"topic,omitempty"`
	DocumentPath *string    `json:"document_path"`
	SlideCount   SlideCount `json:"slide_count,omitempty"`
	Theme        string     `json:"theme,omitempty"`
}

// SlideCount accepts a JSON number or a numeric string. Zero means unset.
type SlideCount int

func (c *SlideCount) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if bytes.Equal(b, []byte("null")) {
		*c = 0
		return nil
	}
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		b = []byte(s)
	}
	f, err := strconv.ParseFloat(string(b), 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) || f != math.Trunc(f) {
		return fmt.Errorf("slide_count must be an integer, got %s", b)
	}
	if f > math.MaxInt32 {
		f = math.MaxInt32
	}
	*c = SlideCount(f)
	return nil
}

func (s *Server) handleToolCall(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)

	var call ToolCall
	if err := json.NewDecoder(r.Body).Decode(&call); err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			jsonError(w, "request body too large", http.StatusRequestEntityTooLarge)
			return
		}
		jsonError(w, "invalid request body: "+err.Error(), http.StatusBadRequest)
		return
	}

	args := call.Arguments
	path := s.resolveDocumentPath(args.documentPath())

	switch call.Tool {
	case ToolGenerateSlides:
		req := artifact.NewSlidesRequest(args.Topic, path, int(args.SlideCount), args.Theme)
		writeJSON(w, http.StatusOK, s.orchestrator.GenerateSlides(r.Context(), req))
	case ToolGenerateMindMap:
		req := artifact.NewMindMapRequest(args.Topic, path)
		writeJSON(w, http.StatusOK, s.orchestrator.GenerateMindMap(r.Context(), req))
	default:
		jsonError(w, fmt.Sprintf("Tool '%s' not found", call.Tool), http.StatusNotFound)
	}
}

func (a ToolArguments) documentPath() string {
	if a.DocumentPath == nil {
		return ""
	}
	return *a.DocumentPath
}

// resolveDocumentPath confines document paths to DOCUMENT_ROOT when one is
// configured. Paths outside the root resolve to "" and the request proceeds
// as if no document was supplied.
func (s *Server) resolveDocumentPath(p string) string {
	root := s.cfg.DocumentRoot
	if p == "" || root == "" {
		return p
	}
	rel := p
	if filepath.IsAbs(p) {
		var err error
		if rel, err = filepath.Rel(root, p); err != nil {
			rel = ""
		}
	}
	if rel == "" || !filepath.IsLocal(rel) {
		s.log.Warn("document path outside document root", "document_path", p, "root", root)
		return ""
	}
	return filepath.Join(root, rel)
}
