// Package config provides the configuration schema and loader for the
// utterbank corpus tools.
package config

import "time"

// LogLevel controls log verbosity for the utterbank CLI.
type LogLevel string

const (
	LogDebug LogLevel = "debug"
	LogInfo  LogLevel = "info"
	LogWarn  LogLevel = "warn"
	LogError LogLevel = "error"
)

// IsValid reports whether l is a recognised log level.
func (l LogLevel) IsValid() bool {
	switch l {
	case LogDebug, LogInfo, LogWarn, LogError:
		return true
	}
	return false
}

// Config is the root configuration structure for utterbank.
// It is typically loaded from a YAML file using [Load] or [LoadFromReader].
type Config struct {
	Corpus  CorpusConfig  `yaml:"corpus"`
	Match   MatchConfig   `yaml:"match"`
	Logging LoggingConfig `yaml:"logging"`
	Metrics MetricsConfig `yaml:"metrics"`
}

// CorpusConfig locates the utterance corpus on disk and controls how it is
// loaded.
type CorpusConfig struct {
	// MetadataPath is the utterance metadata file, either newline-delimited
	// JSON or a single JSON array.
	MetadataPath string `yaml:"metadata_path"`

	// AudioDir holds the audio assets, one file per utterance id.
	AudioDir string `yaml:"audio_dir"`

	// Lenient runs broken metadata through a JSON repair pass before
	// rejecting it.
	Lenient bool `yaml:"lenient"`

	// Watch re-reads the metadata file when it changes on disk and swaps in
	// a freshly built index.
	Watch bool `yaml:"watch"`

	// WatchIntervalSeconds is the polling interval for Watch.
	// Zero means the watcher's default.
	WatchIntervalSeconds int `yaml:"watch_interval_seconds"`
}

// WatchInterval returns the polling interval as a [time.Duration], or zero
// when unset.
func (c CorpusConfig) WatchInterval() time.Duration {
	if c.WatchIntervalSeconds <= 0 {
		return 0
	}
	return time.Duration(c.WatchIntervalSeconds) * time.Second
}

// MatchConfig tunes the matching engine.
type MatchConfig struct {
	// SearchLimit caps how many results a search returns.
	// Zero or negative means unlimited.
	SearchLimit int `yaml:"search_limit"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	// Level controls verbosity.
	Level LogLevel `yaml:"level"`
}

// MetricsConfig controls the optional local metrics endpoint.
type MetricsConfig struct {
	// ListenAddr serves Prometheus metrics and a health probe when non-empty
	// (e.g. "127.0.0.1:9464"). Empty disables the listener.
	ListenAddr string `yaml:"listen_addr"`
}
