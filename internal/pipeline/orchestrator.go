// Package pipeline sequences extraction, model generation and fallback for a
// single request.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"github.com/dgallion1/deckgen/internal/artifact"
	"github.com/dgallion1/deckgen/internal/fallback"
	"github.com/dgallion1/deckgen/internal/llm"
	"github.com/dgallion1/deckgen/internal/parser"
)

// Model is the generative model capability. A nil Model means no credential
// is configured and every request takes the fallback path.
type Model interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// Path records which branch produced an artifact. It is logged only.
type Path string

const (
	PathModel    Path = "model"
	PathFallback Path = "fallback"
)

var errNoContent = errors.New("no document content")

// Options are per-process generation policies.
type Options struct {
	// PadFallbackSlides fills a document-derived fallback deck with topic
	// slides until the requested count is reached.
	PadFallbackSlides bool
}

// Orchestrator runs the generation pipeline. It holds no per-request state and
// is safe for concurrent use.
type Orchestrator struct {
	model     Model
	extractor *parser.Extractor
	opts      Options
	log       *slog.Logger
	newID     func() string
}

func NewOrchestrator(model Model, extractor *parser.Extractor, opts Options, log *slog.Logger) *Orchestrator {
	return &Orchestrator{
		model:     model,
		extractor: extractor,
		opts:      opts,
		log:       log,
		newID:     uuid.NewString,
	}
}

// HasModel reports whether a model is configured.
func (o *Orchestrator) HasModel() bool {
	return o.model != nil
}

// Generate dispatches on req.Kind. The result is an artifact.SlideDeck or an
// artifact.MindMap.
func (o *Orchestrator) Generate(ctx context.Context, req artifact.Request) any {
	if req.Kind == artifact.KindMindMap {
		return o.GenerateMindMap(ctx, req)
	}
	return o.GenerateSlides(ctx, req)
}

// GenerateSlides always returns a deck: the model's when it succeeds, the
// fallback's otherwise.
func (o *Orchestrator) GenerateSlides(ctx context.Context, req artifact.Request) artifact.SlideDeck {
	log := o.requestLogger(artifact.KindSlides, req)
	text := o.extract(log, req)

	deck, err := o.modelSlides(ctx, log, req, text)
	if err == nil {
		log.Info("generation complete", "path", PathModel, "slides", len(deck.Slides))
		return deck
	}

	deck = fallback.Slides(req.Topic, text, req.SlideCount, o.opts.PadFallbackSlides)
	logFallback(log, err, "slides", len(deck.Slides))
	return deck
}

// GenerateMindMap always returns a mind map: the model's when it succeeds,
// the fallback's otherwise.
func (o *Orchestrator) GenerateMindMap(ctx context.Context, req artifact.Request) artifact.MindMap {
	log := o.requestLogger(artifact.KindMindMap, req)
	text := o.extract(log, req)

	mm, err := o.modelMindMap(ctx, log, req, text)
	if err == nil {
		log.Info("generation complete", "path", PathModel, "nodes", len(mm.Nodes))
		return mm
	}

	mm = fallback.MindMap(req.Topic)
	logFallback(log, err, "nodes", len(mm.Nodes))
	return mm
}

func (o *Orchestrator) requestLogger(kind artifact.Kind, req artifact.Request) *slog.Logger {
	return o.log.With("generation_id", o.newID(), "kind", kind, "topic", req.Topic)
}

func (o *Orchestrator) extract(log *slog.Logger, req artifact.Request) string {
	text := o.extractor.Extract(req.DocumentPath)
	if req.DocumentPath != "" {
		log.Info("document extracted", "document_path", req.DocumentPath, "chars", len(text))
	}
	return text
}

func (o *Orchestrator) modelSlides(ctx context.Context, log *slog.Logger, req artifact.Request, text string) (artifact.SlideDeck, error) {
	v, raw, err := o.generateJSON(ctx, log, artifact.KindSlides, req, text)
	if err != nil {
		return artifact.SlideDeck{}, err
	}
	deck, err := artifact.DecodeSlideDeck(v)
	if err != nil {
		return artifact.SlideDeck{}, &llm.ParseError{Raw: raw, Err: err}
	}
	return deck, nil
}

func (o *Orchestrator) modelMindMap(ctx context.Context, log *slog.Logger, req artifact.Request, text string) (artifact.MindMap, error) {
	v, raw, err := o.generateJSON(ctx, log, artifact.KindMindMap, req, text)
	if err != nil {
		return artifact.MindMap{}, err
	}
	mm, err := artifact.DecodeMindMap(v)
	if err != nil {
		return artifact.MindMap{}, &llm.ParseError{Raw: raw, Err: err}
	}
	return mm, nil
}

// generateJSON runs prompt building, one model call and normalization. It
// returns the parsed value and the raw model text.
func (o *Orchestrator) generateJSON(ctx context.Context, log *slog.Logger, kind artifact.Kind, req artifact.Request, text string) (v any, raw string, err error) {
	if o.model == nil {
		return nil, "", &llm.ModelError{Op: "generate", Err: llm.ErrNoCredential}
	}
	if strings.TrimSpace(text) == "" {
		return nil, "", errNoContent
	}

	defer func() {
		if rec := recover(); rec != nil {
			v, err = nil, &llm.ModelError{Op: "generate", Err: fmt.Errorf("panic: %v", rec)}
		}
	}()

	prompt := llm.BuildPrompt(kind, req.Topic, text, req.SlideCount)
	log.Debug("calling model", "prompt_chars", len(prompt), "prompt_tokens_est", llm.EstimateTokens(prompt))
	raw, err = o.model.Generate(ctx, prompt)
	if err != nil {
		var merr *llm.ModelError
		if !errors.As(err, &merr) {
			err = &llm.ModelError{Op: "generate", Err: err}
		}
		return nil, raw, err
	}
	v, err = llm.Normalize(raw)
	return v, raw, err
}

func logFallback(log *slog.Logger, err error, countKey string, count int) {
	reason := fallbackReason(err)
	attrs := []any{"path", PathFallback, "reason", reason, countKey, count}
	switch reason {
	case "no_credential", "no_content":
		log.Info("generation complete", attrs...)
	default:
		log.Warn("generation complete", append(attrs, "error", err)...)
	}
}

func fallbackReason(err error) string {
	var merr *llm.ModelError
	var perr *llm.ParseError
	switch {
	case errors.Is(err, llm.ErrNoCredential):
		return "no_credential"
	case errors.Is(err, errNoContent):
		return "no_content"
	case errors.Is(err, artifact.ErrSchema):
		return "schema_mismatch"
	case errors.As(err, &perr):
		return "invalid_json"
	case errors.As(err, &merr) && merr.IsTimeout():
		return "timeout"
	default:
		return "model_error"
	}
}
