package tailer

import (
	"context"
	"errors"
	"io"
	"time"

	"github.com/benbjohnson/clock"
	"go.uber.org/zap"

	"github.com/vburojevic/sandtail/internal/pool"
)

var (
	// ErrNoFiles means target-file resolution produced an empty set before
	// the first pass.
	ErrNoFiles = errors.New("no files to read")
	// ErrEmptyFileSet means every file became unreachable while tailing.
	ErrEmptyFileSet = errors.New("no files left to read")
)

// DefaultInterval is the pause between follow passes.
const DefaultInterval = 1 * time.Second

// Options configures an Engine. Zero values fall back to the defaults.
type Options struct {
	// Lines is the initial tail depth per file.
	Lines int
	// Follow keeps polling for new data after the initial tail.
	Follow bool
	// Interval is the pause between follow passes.
	Interval time.Duration
	// Width bounds the worker pool shared by every pass.
	Width int
	// Clock drives the follow pauses; tests install a mock.
	Clock clock.Clock
}

// Engine reads the tails of many remote files in parallel and prints them
// header-grouped. Reads run through a bounded worker pool; results are
// drained and printed on the calling goroutine in completion order. A file
// whose read fails is evicted from the active set and reported, without
// aborting the pass.
type Engine struct {
	files    []Source
	printer  *Printer
	log      *zap.SugaredLogger
	lines    int
	follow   bool
	interval time.Duration
	width    int
	clk      clock.Clock
}

// NewEngine creates an engine tailing files, printing to w.
func NewEngine(files []Source, w io.Writer, log *zap.SugaredLogger, opts Options) *Engine {
	if opts.Lines <= 0 {
		opts.Lines = 10
	}
	if opts.Interval <= 0 {
		opts.Interval = DefaultInterval
	}
	if opts.Width <= 0 {
		opts.Width = pool.DefaultWidth
	}
	if opts.Clock == nil {
		opts.Clock = clock.New()
	}
	return &Engine{
		files:    files,
		printer:  NewPrinter(w),
		log:      log,
		lines:    opts.Lines,
		follow:   opts.Follow,
		interval: opts.Interval,
		width:    opts.Width,
		clk:      opts.Clock,
	}
}

// Run performs the initial tail pass and, when following, read-rest passes
// on a fixed interval until ctx is cancelled or the active set empties. It
// returns ErrNoFiles when there is nothing to read up front and
// ErrEmptyFileSet when every file has been evicted after a later pass.
func (e *Engine) Run(ctx context.Context) error {
	if len(e.files) == 0 {
		return ErrNoFiles
	}

	e.pass(ctx, func(f Source) ([]string, error) {
		return LastLines(ctx, f, e.lines)
	})

	for e.follow {
		if len(e.files) == 0 {
			return ErrEmptyFileSet
		}
		select {
		case <-ctx.Done():
			return nil
		case <-e.clk.After(e.interval):
		}
		e.pass(ctx, func(f Source) ([]string, error) {
			return ReadRest(ctx, f)
		})
	}
	return nil
}

// ActiveFiles returns the files still in the working set.
func (e *Engine) ActiveFiles() []Source {
	return e.files
}

// pass applies fn to every active file through the worker pool, printing
// results as they complete and evicting files whose read failed.
func (e *Engine) pass(ctx context.Context, fn func(Source) ([]string, error)) {
	evicted := map[Source]bool{}

	for r := range pool.Map(ctx, e.width, e.files, fn) {
		if r.Err != nil {
			e.log.Warnw("error reading file, dropping it",
				"file", r.Key.String(),
				"error", r.Err)
			evicted[r.Key] = true
			continue
		}
		e.printer.Print(r.Key.String(), r.Value)
	}

	if len(evicted) == 0 {
		return
	}
	kept := e.files[:0]
	for _, f := range e.files {
		if !evicted[f] {
			kept = append(kept, f)
		}
	}
	e.files = kept
}
