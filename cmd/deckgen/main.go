// Package main is the entry point for the deckgen CLI.
package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/dgallion1/deckgen/internal/config"
)

// version is set at build time via ldflags.
var version = "dev"

var rootCmd = &cobra.Command{
	Use:   "deckgen",
	Short: "Generate slide-deck outlines and mind maps from documents",
	Long: `deckgen turns a topic and an optional document (.docx, .pdf, .txt, .md)
into a slide-deck outline or a hierarchical mind map. Generation uses Gemini
when GEMINI_API_KEY is configured and a deterministic fallback otherwise.

The slides and mindmap subcommands run the pipeline locally; check probes a
running deckgen server.`,
	SilenceUsage: true,
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./deckgen.yaml or ~/.config/deckgen/deckgen.yaml)")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "log pipeline decisions to stderr")
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("deckgen")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "deckgen"))
		}
	}

	_ = viper.BindPFlag("verbose", rootCmd.PersistentFlags().Lookup("verbose"))
	viper.SetEnvPrefix("DECKGEN")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

// loadConfig starts from the process environment (and .env) and applies any
// values set through flags, DECKGEN_* variables or the config file.
func loadConfig() config.Config {
	cfg := config.Load()
	if viper.IsSet("gemini-api-key") {
		cfg.GeminiAPIKey = viper.GetString("gemini-api-key")
	}
	if viper.IsSet("gemini-model") {
		cfg.GeminiModel = viper.GetString("gemini-model")
	}
	if viper.IsSet("model-timeout") {
		if d := viper.GetDuration("model-timeout"); d > 0 {
			cfg.ModelTimeout = d
		}
	}
	if viper.IsSet("pad-slides") {
		cfg.FallbackPadSlides = viper.GetBool("pad-slides")
	}
	return cfg
}

func newLogger() *slog.Logger {
	if viper.GetBool("verbose") {
		return slog.New(slog.NewTextHandler(os.Stderr, nil))
	}
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
