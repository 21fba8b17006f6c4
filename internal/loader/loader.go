// Package loader reads utterance metadata into [corpus.Sample] values.
//
// The on-disk format is newline-delimited JSON, one record per line, with
// blank lines ignored. A whole-file JSON array is accepted as well; the two
// are told apart by the first non-space byte. Records that fail to parse,
// miss required fields, carry a non-positive duration, or repeat an earlier
// utterance id are dropped with a warning, so downstream indexing only ever
// sees clean samples. Lenient mode additionally runs unparseable payloads
// through a JSON repair pass before rejecting them.
package loader

import (
	"bufio"
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/kaptinlin/jsonrepair"

	"github.com/utterbank/utterbank/pkg/corpus"
)

// record is the wire shape of one metadata entry.
type record struct {
	UtteranceName string  `json:"utterance_name"`
	Words         string  `json:"words"`
	Transcription string  `json:"transcription"`
	PhoneSequence string  `json:"phone_sequence"`
	ScriptTitle   string  `json:"script_title"`
	Duration      float64 `json:"sentence_estimated_duration"`
	Locale        string  `json:"locale"`
	SentenceIdx   int     `json:"sentence_idx"`
	ParagraphIdx  int     `json:"paragraph_idx"`
}

// validate checks the invariants every admitted sample must satisfy.
func (r record) validate() error {
	var errs []error
	if r.UtteranceName == "" {
		errs = append(errs, errors.New("utterance_name is required"))
	}
	if r.Words == "" {
		errs = append(errs, errors.New("words is required"))
	}
	if r.Transcription == "" {
		errs = append(errs, errors.New("transcription is required"))
	}
	if r.Duration <= 0 {
		errs = append(errs, fmt.Errorf("sentence_estimated_duration %v is not positive", r.Duration))
	}
	return errors.Join(errs...)
}

func (r record) sample() corpus.Sample {
	return corpus.Sample{
		ID:              r.UtteranceName,
		Text:            r.Words,
		Transcription:   r.Transcription,
		PhoneSequence:   r.PhoneSequence,
		Category:        r.ScriptTitle,
		DurationSeconds: r.Duration,
		Locale:          r.Locale,
		SentenceIdx:     r.SentenceIdx,
		ParagraphIdx:    r.ParagraphIdx,
	}
}

// Option is a functional option for configuring a [Loader].
type Option func(*Loader)

// WithLenient toggles the JSON repair pass for payloads that fail to parse.
// Default: off.
func WithLenient(lenient bool) Option {
	return func(l *Loader) {
		l.lenient = lenient
	}
}

// Loader decodes metadata files. The zero value is usable; [New] applies
// options on top of it.
type Loader struct {
	lenient bool
}

// New returns a [Loader] configured with the supplied options.
func New(opts ...Option) *Loader {
	l := &Loader{}
	for _, o := range opts {
		o(l)
	}
	return l
}

// Load reads and decodes the metadata file at path.
func (l *Loader) Load(path string) ([]corpus.Sample, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("loader: open %q: %w", path, err)
	}
	defer f.Close()

	samples, err := l.LoadFromReader(f)
	if err != nil {
		return nil, fmt.Errorf("loader: parse %q: %w", path, err)
	}
	return samples, nil
}

// LoadFromReader decodes metadata from r. Useful in tests where fixtures are
// built from string literals.
func (l *Loader) LoadFromReader(r io.Reader) ([]corpus.Sample, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("loader: read metadata: %w", err)
	}
	if trimmed := bytes.TrimSpace(data); len(trimmed) > 0 && trimmed[0] == '[' {
		return l.fromArray(trimmed)
	}
	return l.fromLines(data)
}

func (l *Loader) fromArray(data []byte) ([]corpus.Sample, error) {
	var recs []record
	if err := l.unmarshal(data, &recs); err != nil {
		return nil, fmt.Errorf("loader: decode metadata array: %w", err)
	}
	return l.admit(recs), nil
}

func (l *Loader) fromLines(data []byte) ([]corpus.Sample, error) {
	var recs []record
	sc := bufio.NewScanner(bytes.NewReader(data))
	// Transcription-heavy lines outgrow the default token size.
	sc.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)
	for line := 1; sc.Scan(); line++ {
		text := bytes.TrimSpace(sc.Bytes())
		if len(text) == 0 {
			continue
		}
		var rec record
		if err := l.unmarshal(text, &rec); err != nil {
			slog.Warn("loader: skipping unparseable metadata line", "line", line, "err", err)
			continue
		}
		recs = append(recs, rec)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("loader: scan metadata lines: %w", err)
	}
	return l.admit(recs), nil
}

// unmarshal decodes data into v. In lenient mode a syntax error triggers one
// repair attempt before the payload is given up on.
func (l *Loader) unmarshal(data []byte, v any) error {
	err := json.Unmarshal(data, v)
	if err == nil {
		return nil
	}
	var syn *json.SyntaxError
	if !l.lenient || !errors.As(err, &syn) {
		return err
	}
	fixed, repairErr := jsonrepair.JSONRepair(string(data))
	if repairErr != nil {
		return err
	}
	return json.Unmarshal([]byte(fixed), v)
}

// admit filters decoded records down to valid, unique samples, preserving
// their order.
func (l *Loader) admit(recs []record) []corpus.Sample {
	samples := make([]corpus.Sample, 0, len(recs))
	seen := make(map[string]int, len(recs))
	for i, rec := range recs {
		if err := rec.validate(); err != nil {
			slog.Warn("loader: skipping invalid metadata record", "record", i, "id", rec.UtteranceName, "err", err)
			continue
		}
		if first, ok := seen[rec.UtteranceName]; ok {
			slog.Warn("loader: skipping duplicate utterance id", "record", i, "id", rec.UtteranceName, "first_seen", first)
			continue
		}
		seen[rec.UtteranceName] = i
		samples = append(samples, rec.sample())
	}
	return samples
}
