// Package audio resolves utterance ids to audio assets on disk and plays
// them through external tools.
//
// The corpus ships one recording per utterance, named `<id>.caf` in the
// audio directory. [Player.Resolve] maps an id to the first asset present
// among the configured extensions; [Player.Play] hands the file to ffplay,
// converting CAF containers to a temporary WAV via ffmpeg first. Both tools
// are located once at construction; a missing tool degrades to
// [ErrPlayerUnavailable] at play time instead of failing construction, so
// the rest of the application works on machines without them.
//
// The package only ever plays pre-recorded corpus assets. It never
// synthesizes speech.
package audio

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
)

// ErrAssetNotFound is returned when no audio file exists for an utterance id.
var ErrAssetNotFound = errors.New("audio: asset not found")

// ErrPlayerUnavailable is returned when a required external tool (ffplay,
// and ffmpeg for CAF input) is not installed.
var ErrPlayerUnavailable = errors.New("audio: playback tool unavailable")

// defaultExtensions is the asset lookup order. The corpus records are CAF;
// the rest covers converted copies a user may have produced.
var defaultExtensions = []string{".caf", ".wav", ".aiff", ".mp3"}

// Option is a functional option for configuring a [Player].
type Option func(*Player)

// WithExtensions replaces the asset extension lookup order. Entries must
// include the leading dot. An empty list is ignored.
func WithExtensions(exts ...string) Option {
	return func(p *Player) {
		if len(exts) > 0 {
			p.exts = exts
		}
	}
}

// WithTools overrides the probed ffmpeg and ffplay executables. Empty values
// keep the probed defaults. Useful for unusual installs and for tests.
func WithTools(ffmpeg, ffplay string) Option {
	return func(p *Player) {
		if ffmpeg != "" {
			p.ffmpeg = ffmpeg
		}
		if ffplay != "" {
			p.ffplay = ffplay
		}
	}
}

// Player finds and plays corpus audio assets. All methods are safe for
// concurrent use — the Player is read-only after construction.
type Player struct {
	dir    string
	exts   []string
	ffmpeg string
	ffplay string
}

// New creates a [Player] over the audio asset directory. The external tools
// are looked up on PATH here, once; their absence is not an error until a
// playback actually needs them.
func New(dir string, opts ...Option) *Player {
	p := &Player{dir: dir, exts: defaultExtensions}
	if path, err := exec.LookPath("ffmpeg"); err == nil {
		p.ffmpeg = path
	}
	if path, err := exec.LookPath("ffplay"); err == nil {
		p.ffplay = path
	}
	for _, o := range opts {
		o(p)
	}
	return p
}

// Available reports whether playback can work at all (ffplay is present).
func (p *Player) Available() bool {
	return p.ffplay != ""
}

// Resolve returns the path of the audio asset for id, trying each configured
// extension in order. Returns [ErrAssetNotFound] when no candidate exists.
func (p *Player) Resolve(id string) (string, error) {
	for _, ext := range p.exts {
		path := filepath.Join(p.dir, id+ext)
		if info, err := os.Stat(path); err == nil && !info.IsDir() {
			return path, nil
		}
	}
	return "", fmt.Errorf("%w: %s in %s", ErrAssetNotFound, id, p.dir)
}

// Play resolves the asset for id and plays it, blocking until playback ends
// or ctx is cancelled. CAF files are converted to a temporary WAV through
// ffmpeg first, because ffplay handles the raw container poorly; the WAV is
// removed afterwards.
func (p *Player) Play(ctx context.Context, id string) error {
	path, err := p.Resolve(id)
	if err != nil {
		return err
	}
	if p.ffplay == "" {
		return fmt.Errorf("%w: ffplay not found on PATH", ErrPlayerUnavailable)
	}

	if strings.EqualFold(filepath.Ext(path), ".caf") {
		if p.ffmpeg == "" {
			return fmt.Errorf("%w: ffmpeg not found on PATH (required for CAF input)", ErrPlayerUnavailable)
		}
		wav, err := p.convert(ctx, path)
		if err != nil {
			return err
		}
		defer os.Remove(wav)
		path = wav
	}

	slog.Debug("audio: playing asset", "id", id, "path", path)
	cmd := exec.CommandContext(ctx, p.ffplay, "-nodisp", "-autoexit", "-loglevel", "error", path)
	if out, err := cmd.CombinedOutput(); err != nil {
		return fmt.Errorf("audio: ffplay %q: %w: %s", path, err, strings.TrimSpace(string(out)))
	}
	return nil
}

// convert transcodes src into a fresh temporary WAV file and returns its
// path. The caller owns the file and removes it when done.
func (p *Player) convert(ctx context.Context, src string) (string, error) {
	tmp, err := os.CreateTemp("", "utterbank-*.wav")
	if err != nil {
		return "", fmt.Errorf("audio: create temp wav: %w", err)
	}
	tmp.Close()

	cmd := exec.CommandContext(ctx, p.ffmpeg, "-i", src, "-y", "-loglevel", "error", tmp.Name())
	if out, err := cmd.CombinedOutput(); err != nil {
		os.Remove(tmp.Name())
		return "", fmt.Errorf("audio: ffmpeg convert %q: %w: %s", src, err, strings.TrimSpace(string(out)))
	}
	return tmp.Name(), nil
}
