package config

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"gopkg.in/yaml.v3"
)

// Load reads the YAML configuration file at path and returns a validated
// [Config]. It is a convenience wrapper around [ParseFile] and [Validate].
func Load(path string) (*Config, error) {
	cfg, err := ParseFile(path)
	if err != nil {
		return nil, err
	}
	if err := Validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadFromReader decodes a YAML config from r and validates the result.
// Useful in tests where configs are constructed from string literals.
func LoadFromReader(r io.Reader) (*Config, error) {
	cfg, err := Parse(r)
	if err != nil {
		return nil, err
	}
	if err := Validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// ParseFile decodes the YAML config file at path without validating it.
func ParseFile(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("config: open %q: %w", path, err)
	}
	defer f.Close()

	cfg, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("config: parse %q: %w", path, err)
	}
	return cfg, nil
}

// Parse decodes a YAML config from r without validating it. Callers that
// overlay values from another source (CLI flags) validate the merged result
// instead.
func Parse(r io.Reader) (*Config, error) {
	cfg := &Config{}
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil {
		return nil, fmt.Errorf("config: decode yaml: %w", err)
	}
	return cfg, nil
}

// Validate checks that cfg contains a coherent set of values.
// It returns a joined error listing all validation failures found.
func Validate(cfg *Config) error {
	var errs []error

	// Corpus
	if cfg.Corpus.MetadataPath == "" {
		errs = append(errs, errors.New("corpus.metadata_path is required"))
	}
	if cfg.Corpus.WatchIntervalSeconds < 0 {
		errs = append(errs, fmt.Errorf("corpus.watch_interval_seconds %d is negative", cfg.Corpus.WatchIntervalSeconds))
	}
	if cfg.Corpus.AudioDir == "" {
		slog.Warn("config: corpus.audio_dir is empty; playback will not find any assets")
	}

	// Match
	if cfg.Match.SearchLimit < 0 {
		errs = append(errs, fmt.Errorf("match.search_limit %d is negative; use 0 for unlimited", cfg.Match.SearchLimit))
	}

	// Logging
	if cfg.Logging.Level != "" && !cfg.Logging.Level.IsValid() {
		errs = append(errs, fmt.Errorf("logging.level %q is invalid; valid values: debug, info, warn, error", cfg.Logging.Level))
	}

	return errors.Join(errs...)
}
