// Package commands implements the utterbank command tree.
//
// Every command loads the corpus through [openLibrary]: configuration file
// first, then flag overrides, then a full metadata load into an immutable
// index. One-shot commands query that index and exit; the repl command
// additionally starts the optional corpus watcher and metrics listener for
// its longer lifetime.
package commands

import (
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/utterbank/utterbank/internal/audio"
	"github.com/utterbank/utterbank/internal/config"
	"github.com/utterbank/utterbank/internal/library"
	"github.com/utterbank/utterbank/internal/loader"
	"github.com/utterbank/utterbank/pkg/match"
)

var (
	// Global flags
	configPath   string
	metadataPath string
	audioDir     string
	lenient      bool
	verbose      bool
)

var rootCmd = &cobra.Command{
	Use:   "utterbank",
	Short: "Find, play, and dissect recorded utterances",
	Long: `utterbank - query a corpus of pre-recorded spoken phrases.

Each corpus entry carries the spoken text, a phoneme transcription, and
audio metadata. Free-text queries are answered by a four-stage cascade
(exact, substring, word overlap, phonetic) that always returns the single
best recording; the analyzer breaks any transcription into word segments,
stress marks, and phone frequencies.

The corpus location comes from a YAML config file (--config, default
utterbank.yaml) or directly from --metadata / --audio-dir flags.

Examples:
  # One-shot matching against a metadata file
  utterbank match --metadata corpus.jsonl "is miami the capital of florida"

  # Multi-result search and category listing
  utterbank search "capital" --metadata corpus.jsonl
  utterbank list questions --metadata corpus.jsonl

  # Phonetic breakdown of one utterance
  utterbank analyze questions_0001 --metadata corpus.jsonl

  # Interactive loop with playback
  utterbank repl --config utterbank.yaml`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "utterbank.yaml", "path to the YAML configuration file")
	rootCmd.PersistentFlags().StringVar(&metadataPath, "metadata", "", "corpus metadata file, JSON lines or array (overrides config)")
	rootCmd.PersistentFlags().StringVar(&audioDir, "audio-dir", "", "audio asset directory (overrides config)")
	rootCmd.PersistentFlags().BoolVar(&lenient, "lenient", false, "run broken metadata records through a JSON repair pass")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output (debug logging)")
}

// env is the assembled application state shared by command implementations.
type env struct {
	cfg    *config.Config
	lib    *library.Library
	player *audio.Player
}

// loadConfig assembles the effective configuration: the YAML file when
// present, overridden by any explicitly set corpus flags, validated as a
// whole. A missing config file is tolerated as long as --metadata stands in
// for it.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg, err := config.ParseFile(configPath)
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			return nil, err
		}
		if metadataPath == "" {
			return nil, fmt.Errorf("config file %q not found and no --metadata given — copy configs/example.yaml to get started", configPath)
		}
		cfg = &config.Config{}
	}

	flags := cmd.Flags()
	if flags.Changed("metadata") {
		cfg.Corpus.MetadataPath = metadataPath
	}
	if flags.Changed("audio-dir") {
		cfg.Corpus.AudioDir = audioDir
	}
	if flags.Changed("lenient") {
		cfg.Corpus.Lenient = lenient
	}
	if flags.Changed("limit") {
		cfg.Match.SearchLimit = searchLimit
	}
	if verbose {
		cfg.Logging.Level = config.LogDebug
	}

	if err := config.Validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// openLibrary loads the configuration, installs the logger, and returns the
// library with its corpus fully loaded.
func openLibrary(cmd *cobra.Command) (*env, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, err
	}
	slog.SetDefault(newLogger(cfg.Logging.Level))
	return buildEnv(cmd, cfg)
}

// buildEnv assembles the library and audio player for cfg and performs the
// initial corpus load.
func buildEnv(cmd *cobra.Command, cfg *config.Config) (*env, error) {
	lib := library.New(
		cfg.Corpus.MetadataPath,
		loader.New(loader.WithLenient(cfg.Corpus.Lenient)),
		match.New(match.WithSearchLimit(cfg.Match.SearchLimit)),
		nil,
	)
	if err := lib.Reload(cmd.Context()); err != nil {
		return nil, err
	}
	return &env{cfg: cfg, lib: lib, player: audio.New(cfg.Corpus.AudioDir)}, nil
}

// newLogger builds the process-wide text logger at the configured level.
func newLogger(level config.LogLevel) *slog.Logger {
	var lvl slog.Level
	switch level {
	case config.LogDebug:
		lvl = slog.LevelDebug
	case config.LogWarn:
		lvl = slog.LevelWarn
	case config.LogError:
		lvl = slog.LevelError
	default:
		lvl = slog.LevelInfo
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: lvl}))
}
