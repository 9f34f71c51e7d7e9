package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/dgallion1/deckgen/internal/artifact"
	"github.com/dgallion1/deckgen/internal/config"
	"github.com/dgallion1/deckgen/internal/export"
	"github.com/dgallion1/deckgen/internal/llm"
	"github.com/dgallion1/deckgen/internal/parser"
	"github.com/dgallion1/deckgen/internal/pipeline"
)

var slidesCmd = &cobra.Command{
	Use:   "slides [document]",
	Short: "Generate a slide-deck outline",
	Long: `Slides generates a slide-deck outline for --topic, grounded in the optional
document. Output is JSON unless --format selects md, html or docx.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runSlides,
}

var mindmapCmd = &cobra.Command{
	Use:   "mindmap [document]",
	Short: "Generate a hierarchical mind map",
	Long: `Mindmap generates a mind map for --topic, grounded in the optional document.
Output is JSON unless --format selects md or html.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runMindMap,
}

func init() {
	for _, c := range []*cobra.Command{slidesCmd, mindmapCmd} {
		c.Flags().String("topic", "", "topic of the generated artifact")
		c.Flags().String("format", "json", "output format: json, md, html (slides also docx)")
		c.Flags().StringP("output", "o", "", "write to file instead of stdout")
		c.Flags().String("gemini-api-key", "", "Gemini API key (default $GEMINI_API_KEY)")
		c.Flags().String("gemini-model", "", "Gemini model name")
		c.Flags().Duration("model-timeout", 0, "model call timeout (default 60s)")
	}
	slidesCmd.Flags().Int("count", artifact.DefaultSlideCount, "number of slides")
	slidesCmd.Flags().String("theme", artifact.DefaultTheme, "presentation theme")
	slidesCmd.Flags().Bool("pad-slides", true, "pad short fallback decks with topic slides")

	rootCmd.AddCommand(slidesCmd)
	rootCmd.AddCommand(mindmapCmd)
}

// bindGenerateFlags binds the model flags of the running command so flags,
// DECKGEN_* variables and the config file resolve through one viper key.
func bindGenerateFlags(cmd *cobra.Command) {
	for _, name := range []string{"gemini-api-key", "gemini-model", "model-timeout", "pad-slides"} {
		if f := cmd.Flags().Lookup(name); f != nil {
			_ = viper.BindPFlag(name, f)
		}
	}
}

func newOrchestrator(ctx context.Context, cfg config.Config) (*pipeline.Orchestrator, error) {
	log := newLogger()
	extractor := parser.NewExtractor(cfg.MaxDocumentBytes, cfg.PDFFallbackPdftotext, log)

	var model pipeline.Model
	if cfg.HasModel() {
		gemini, err := llm.NewGeminiClient(ctx, cfg.GeminiAPIKey, cfg.GeminiModel, cfg.ModelTimeout, nil)
		if err != nil {
			return nil, err
		}
		model = gemini
	}
	return pipeline.NewOrchestrator(model, extractor, pipeline.Options{PadFallbackSlides: cfg.FallbackPadSlides}, log), nil
}

func runSlides(cmd *cobra.Command, args []string) error {
	bindGenerateFlags(cmd)
	format, _ := cmd.Flags().GetString("format")
	if format != "json" {
		if _, err := export.ParseFormat(format); err != nil {
			return err
		}
	}

	orch, err := newOrchestrator(cmd.Context(), loadConfig())
	if err != nil {
		return err
	}
	topic, _ := cmd.Flags().GetString("topic")
	count, _ := cmd.Flags().GetInt("count")
	theme, _ := cmd.Flags().GetString("theme")

	deck := orch.GenerateSlides(cmd.Context(), artifact.NewSlidesRequest(topic, documentArg(cmd, args), count, theme))
	return writeOutput(cmd, func(w io.Writer) error { return renderSlides(w, deck, format) })
}

func runMindMap(cmd *cobra.Command, args []string) error {
	bindGenerateFlags(cmd)
	format, _ := cmd.Flags().GetString("format")
	if f, err := export.ParseFormat(format); format != "json" && (err != nil || f == export.FormatDOCX) {
		return fmt.Errorf("unsupported mind map format %q: use json, md or html", format)
	}

	orch, err := newOrchestrator(cmd.Context(), loadConfig())
	if err != nil {
		return err
	}
	topic, _ := cmd.Flags().GetString("topic")

	mm := orch.GenerateMindMap(cmd.Context(), artifact.NewMindMapRequest(topic, documentArg(cmd, args)))
	return writeOutput(cmd, func(w io.Writer) error { return renderMindMap(w, mm, format) })
}

func documentArg(cmd *cobra.Command, args []string) string {
	if len(args) == 0 {
		return ""
	}
	if !parser.IsSupportedExtension(args[0]) {
		fmt.Fprintf(cmd.ErrOrStderr(), "warning: %s is not a supported document type, generating from the topic alone\n", args[0])
	}
	return args[0]
}

func writeOutput(cmd *cobra.Command, render func(io.Writer) error) error {
	path, _ := cmd.Flags().GetString("output")
	if path == "" {
		return render(cmd.OutOrStdout())
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := render(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func renderSlides(w io.Writer, deck artifact.SlideDeck, format string) error {
	switch format {
	case "json":
		return writeIndentedJSON(w, deck)
	case "docx":
		return export.DOCX(w, deck)
	}
	return renderMarkdown(w, export.Markdown(deck), format)
}

func renderMindMap(w io.Writer, mm artifact.MindMap, format string) error {
	if format == "json" {
		return writeIndentedJSON(w, mm)
	}
	return renderMarkdown(w, export.MindMapMarkdown(mm), format)
}

func renderMarkdown(w io.Writer, md, format string) error {
	f, err := export.ParseFormat(format)
	if err != nil {
		return err
	}
	if f == export.FormatHTML {
		out, err := export.HTML(md)
		if err != nil {
			return err
		}
		_, err = w.Write(out)
		return err
	}
	_, err = io.WriteString(w, md)
	return err
}

func writeIndentedJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
