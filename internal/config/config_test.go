package config_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/utterbank/utterbank/internal/config"
)

func TestLoadFromReader_Full(t *testing.T) {
	t.Parallel()
	yaml := `
corpus:
  metadata_path: data/metadata.jsonl
  audio_dir: data/audio
  lenient: true
  watch: true
  watch_interval_seconds: 2
match:
  search_limit: 10
logging:
  level: debug
metrics:
  listen_addr: "127.0.0.1:9464"
`
	cfg, err := config.LoadFromReader(strings.NewReader(yaml))
	if err != nil {
		t.Fatalf("LoadFromReader: unexpected error: %v", err)
	}

	if cfg.Corpus.MetadataPath != "data/metadata.jsonl" || cfg.Corpus.AudioDir != "data/audio" {
		t.Errorf("corpus paths = %+v", cfg.Corpus)
	}
	if !cfg.Corpus.Lenient || !cfg.Corpus.Watch {
		t.Errorf("corpus flags = %+v, want lenient and watch enabled", cfg.Corpus)
	}
	if got := cfg.Corpus.WatchInterval(); got != 2*time.Second {
		t.Errorf("WatchInterval() = %v, want 2s", got)
	}
	if cfg.Match.SearchLimit != 10 {
		t.Errorf("match.search_limit = %d, want 10", cfg.Match.SearchLimit)
	}
	if cfg.Logging.Level != config.LogDebug {
		t.Errorf("logging.level = %q, want debug", cfg.Logging.Level)
	}
	if cfg.Metrics.ListenAddr != "127.0.0.1:9464" {
		t.Errorf("metrics.listen_addr = %q", cfg.Metrics.ListenAddr)
	}
}

func TestLoadFromReader_UnknownField(t *testing.T) {
	t.Parallel()
	yaml := `
corpus:
  metadata_path: data/metadata.jsonl
  audio_path: typo
`
	_, err := config.LoadFromReader(strings.NewReader(yaml))
	if err == nil {
		t.Fatal("expected error for unknown field, got nil")
	}
}

func TestParse_SkipsValidation(t *testing.T) {
	t.Parallel()
	yaml := `
logging:
  level: debug
`
	// No metadata_path: Parse must still succeed so a caller can overlay
	// flag values before validating.
	cfg, err := config.Parse(strings.NewReader(yaml))
	if err != nil {
		t.Fatalf("Parse: unexpected error: %v", err)
	}
	if cfg.Logging.Level != config.LogDebug {
		t.Errorf("logging.level = %q, want debug", cfg.Logging.Level)
	}
	if err := config.Validate(cfg); err == nil {
		t.Error("Validate should still reject the incomplete config")
	}
}

func TestValidate_MissingMetadataPath(t *testing.T) {
	t.Parallel()
	yaml := `
corpus:
  audio_dir: data/audio
`
	_, err := config.LoadFromReader(strings.NewReader(yaml))
	if err == nil {
		t.Fatal("expected error for missing metadata_path, got nil")
	}
	if !strings.Contains(err.Error(), "metadata_path") {
		t.Errorf("error should mention metadata_path, got: %v", err)
	}
}

func TestValidate_JoinsAllFailures(t *testing.T) {
	t.Parallel()
	yaml := `
corpus:
  audio_dir: data/audio
  watch_interval_seconds: -1
match:
  search_limit: -5
logging:
  level: loud
`
	_, err := config.LoadFromReader(strings.NewReader(yaml))
	if err == nil {
		t.Fatal("expected error, got nil")
	}
	for _, want := range []string{"metadata_path", "watch_interval_seconds", "search_limit", "logging.level"} {
		if !strings.Contains(err.Error(), want) {
			t.Errorf("error should mention %s, got: %v", want, err)
		}
	}
}

func TestLogLevel_IsValid(t *testing.T) {
	t.Parallel()

	for _, l := range []config.LogLevel{config.LogDebug, config.LogInfo, config.LogWarn, config.LogError} {
		if !l.IsValid() {
			t.Errorf("LogLevel(%q).IsValid() = false, want true", l)
		}
	}
	if config.LogLevel("loud").IsValid() {
		t.Error(`LogLevel("loud").IsValid() = true, want false`)
	}
}

func TestLoad_File(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "utterbank.yaml")
	yaml := `
corpus:
  metadata_path: data/metadata.jsonl
  audio_dir: data/audio
`
	if err := os.WriteFile(path, []byte(yaml), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}

	cfg, err := config.Load(path)
	if err != nil {
		t.Fatalf("Load: unexpected error: %v", err)
	}
	if cfg.Corpus.MetadataPath != "data/metadata.jsonl" {
		t.Errorf("metadata_path = %q", cfg.Corpus.MetadataPath)
	}

	if _, err := config.Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("expected error for missing config file, got nil")
	}
}
