package commands

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/spf13/cobra"

	"github.com/utterbank/utterbank/cmd/utterbank/internal/build"
	"github.com/utterbank/utterbank/internal/health"
	"github.com/utterbank/utterbank/internal/library"
	"github.com/utterbank/utterbank/internal/observe"
	"github.com/utterbank/utterbank/pkg/corpus"
)

// Listing caps for the interactive session. The one-shot commands print
// everything; the REPL truncates instead of flooding the terminal.
const (
	replSearchCap = 10
	replListCap   = 15
)

var replCmd = &cobra.Command{
	Use:   "repl",
	Short: "Interactive command loop",
	Long: `Start an interactive session over the loaded corpus.

Free text finds the closest match and offers to play it; the named
commands mirror the one-shot CLI commands. The session is the only
long-lived mode, so this is also where the corpus watcher and the
metrics listener run when the configuration enables them.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		slog.SetDefault(newLogger(cfg.Logging.Level))
		ctx := cmd.Context()

		// The meter provider must exist before the library creates its
		// instruments, or they bind to the no-op global provider.
		if cfg.Metrics.ListenAddr != "" {
			shutdown, err := observe.InitProvider(ctx, observe.ProviderConfig{ServiceVersion: build.Version})
			if err != nil {
				return err
			}
			defer shutdown(context.Background())
		}

		e, err := buildEnv(cmd, cfg)
		if err != nil {
			return err
		}

		if cfg.Metrics.ListenAddr != "" {
			probe := health.New(build.Version, health.Checker{Name: "corpus", Check: e.lib.Ready})
			ln, err := observe.NewListener(cfg.Metrics.ListenAddr, observe.DefaultMetrics(), probe.Register)
			if err != nil {
				return err
			}
			defer ln.Shutdown(context.Background())
		}

		if cfg.Corpus.Watch {
			var opts []library.WatcherOption
			if d := cfg.Corpus.WatchInterval(); d > 0 {
				opts = append(opts, library.WithInterval(d))
			}
			w, err := library.NewWatcher(e.lib, opts...)
			if err != nil {
				return err
			}
			defer w.Stop()
		}

		return runREPL(ctx, e, cmd.InOrStdin(), cmd.OutOrStdout())
	},
}

func init() {
	rootCmd.AddCommand(replCmd)
}

// replHelp lists the interactive commands, shown at startup and on "help".
const replHelp = `Commands:
  <free text>       find the closest match and offer to play it
  search <query>    list matching samples
  play <id>         play one sample by id
  analyze <id>      break a sample's transcription down
  list <category>   list the samples of one category
  stats             show corpus statistics
  help              show this list
  quit              exit`

// runREPL drives the interactive loop: a corpus report, then one command per
// line until EOF or "quit". Command failures are reported inline and never
// end the session.
func runREPL(ctx context.Context, e *env, in io.Reader, out io.Writer) error {
	rule := ui.Muted.Render(strings.Repeat("─", 60))
	fmt.Fprint(out, renderReport(e.lib.Stats(ctx), e.lib.Categories(ctx), e.lib.Samples(ctx)))
	fmt.Fprintf(out, "\n%s\n%s\n%s\n", rule, ui.Title.Render("INTERACTIVE MODE"), rule)
	fmt.Fprintln(out, replHelp)

	sc := bufio.NewScanner(in)
	for {
		fmt.Fprint(out, "\n> ")
		if !sc.Scan() {
			fmt.Fprintln(out)
			return sc.Err()
		}
		line := strings.TrimSpace(sc.Text())
		if line == "" {
			continue
		}

		name, rest, _ := strings.Cut(line, " ")
		rest = strings.TrimSpace(rest)
		switch strings.ToLower(name) {
		case "quit", "exit":
			fmt.Fprintln(out, "Goodbye!")
			return nil
		case "help":
			fmt.Fprintln(out, replHelp)
		case "stats":
			fmt.Fprint(out, renderStats(e.lib.Stats(ctx), e.lib.Categories(ctx)))
		case "search":
			e.replSearch(ctx, out, rest)
		case "play":
			e.replPlay(ctx, out, rest)
		case "analyze":
			e.replAnalyze(ctx, out, rest)
		case "list":
			e.replList(ctx, out, rest)
		default:
			e.replMatch(ctx, sc, out, line)
		}
	}
}

// replMatch handles free text: best match, then a play confirmation read
// from the same input stream.
func (e *env) replMatch(ctx context.Context, sc *bufio.Scanner, out io.Writer, query string) {
	r, s, err := e.lib.Best(ctx, query)
	if err != nil {
		fmt.Fprintln(out, ui.Warn.Render("No close match found. Try a different phrase."))
		return
	}
	fmt.Fprint(out, renderMatch(r, s))

	fmt.Fprint(out, "\nPlay this sample? (y/n): ")
	if !sc.Scan() {
		return
	}
	if strings.EqualFold(strings.TrimSpace(sc.Text()), "y") {
		if err := e.player.Play(ctx, s.ID); err != nil {
			fmt.Fprintln(out, ui.Warn.Render(err.Error()))
		}
	}
}

func (e *env) replSearch(ctx context.Context, out io.Writer, query string) {
	if query == "" {
		fmt.Fprintln(out, ui.Warn.Render("usage: search <query>"))
		return
	}
	hits := e.lib.Search(ctx, query)
	fmt.Fprintf(out, "Found %d matches:\n", len(hits))
	for i, s := range hits {
		if i == replSearchCap {
			fmt.Fprintf(out, "  %s\n", ui.Muted.Render(fmt.Sprintf("… and %d more", len(hits)-replSearchCap)))
			break
		}
		fmt.Fprintln(out, sampleRow(s))
	}
}

func (e *env) replPlay(ctx context.Context, out io.Writer, id string) {
	if id == "" {
		fmt.Fprintln(out, ui.Warn.Render("usage: play <id>"))
		return
	}
	s, err := e.lib.Sample(ctx, id)
	if err != nil {
		fmt.Fprintln(out, ui.Warn.Render(e.replLookupError(ctx, err, id).Error()))
		return
	}
	fmt.Fprintf(out, "Playing: %s\n", s.Text)
	fmt.Fprintf(out, "Phonemes: %s\n", s.PhoneSequence)
	fmt.Fprintf(out, "Duration: %.2fs\n", s.DurationSeconds)
	if err := e.player.Play(ctx, id); err != nil {
		fmt.Fprintln(out, ui.Warn.Render(err.Error()))
	}
}

func (e *env) replAnalyze(ctx context.Context, out io.Writer, id string) {
	if id == "" {
		fmt.Fprintln(out, ui.Warn.Render("usage: analyze <id>"))
		return
	}
	report, s, err := e.lib.Analyze(ctx, id)
	if err != nil {
		fmt.Fprintln(out, ui.Warn.Render(e.replLookupError(ctx, err, id).Error()))
		return
	}
	fmt.Fprint(out, renderAnalysis(s, report))
}

func (e *env) replList(ctx context.Context, out io.Writer, category string) {
	if category == "" {
		fmt.Fprintln(out, ui.Warn.Render("usage: list <category>"))
		return
	}
	samples, err := e.lib.Category(ctx, category)
	if err != nil {
		if errors.Is(err, corpus.ErrUnknownCategory) {
			err = withSuggestion(corpus.ErrUnknownCategory, category, e.lib.Categories(ctx))
		}
		fmt.Fprintln(out, ui.Warn.Render(err.Error()))
		return
	}
	fmt.Fprintf(out, "%d samples in %q:\n", len(samples), category)
	for i, s := range samples {
		if i == replListCap {
			fmt.Fprintf(out, "  %s\n", ui.Muted.Render(fmt.Sprintf("… and %d more", len(samples)-replListCap)))
			break
		}
		fmt.Fprintln(out, sampleRow(s))
	}
}

// replLookupError attaches an id suggestion to unknown-sample errors and
// passes every other error through.
func (e *env) replLookupError(ctx context.Context, err error, id string) error {
	if errors.Is(err, corpus.ErrUnknownSample) {
		return withSuggestion(corpus.ErrUnknownSample, id, sampleIDs(ctx, e))
	}
	return err
}
