package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"regexp"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/dgallion1/deckgen/internal/artifact"
	"github.com/dgallion1/deckgen/internal/export"
)

type exportRequest struct {
	Slides  *artifact.SlideDeck `json:"slides"`
	MindMap *artifact.MindMap   `json:"mindmap"`
}

func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	format, err := export.ParseFormat(chi.URLParam(r, "format"))
	if err != nil {
		jsonError(w, err.Error(), http.StatusNotFound)
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	var req exportRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		jsonError(w, "invalid request body: "+err.Error(), http.StatusBadRequest)
		return
	}

	var (
		title string
		md    string
		body  bytes.Buffer
	)
	switch {
	case req.Slides != nil:
		if err := req.Slides.Validate(); err != nil {
			jsonError(w, err.Error(), http.StatusBadRequest)
			return
		}
		title = req.Slides.Title
		if format == export.FormatDOCX {
			if err := export.DOCX(&body, *req.Slides); err != nil {
				s.log.Error("docx export failed", "error", err)
				jsonError(w, "export failed", http.StatusInternalServerError)
				return
			}
		}
		md = export.Markdown(*req.Slides)
	case req.MindMap != nil:
		if format == export.FormatDOCX {
			jsonError(w, "mind maps export as md or html", http.StatusBadRequest)
			return
		}
		if err := req.MindMap.Validate(); err != nil {
			jsonError(w, err.Error(), http.StatusBadRequest)
			return
		}
		title = req.MindMap.Root
		md = export.MindMapMarkdown(*req.MindMap)
	default:
		jsonError(w, `body must contain "slides" or "mindmap"`, http.StatusBadRequest)
		return
	}

	switch format {
	case export.FormatMarkdown:
		body.WriteString(md)
	case export.FormatHTML:
		out, err := export.HTML(md)
		if err != nil {
			s.log.Error("html export failed", "error", err)
			jsonError(w, "export failed", http.StatusInternalServerError)
			return
		}
		body.Write(out)
	}

	w.Header().Set("Content-Type", format.ContentType())
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s.%s"`, exportFilename(title), format))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(body.Bytes())
}

var unsafeFilenameChars = regexp.MustCompile(`[^A-Za-z0-9._-]+`)

func exportFilename(title string) string {
	name := strings.Trim(unsafeFilenameChars.ReplaceAllString(title, "_"), "._")
	if name == "" {
		name = "export"
	}
	return name
}
