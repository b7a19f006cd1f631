package scanner

import (
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"github.com/mattn/go-isatty"
)

// ProgressTracker reports per-stage progress of a run. The pipeline
// itself is sequential; the tracker's ticker goroutine only renders
// state and owns none of it.
type ProgressTracker struct {
	out    io.Writer
	tty    bool
	ticker *time.Ticker
	done   chan bool

	mu        sync.Mutex
	stage     string
	processed int
	failed    int
	total     int
	dirty     bool
	rendered  bool
}

// NewProgressTracker starts a tracker writing to out. On a terminal it
// rewrites a single line; otherwise it prints a plain line whenever
// the counts moved since the last tick.
func NewProgressTracker(out io.Writer) *ProgressTracker {
	tracker := &ProgressTracker{
		out:    out,
		tty:    isTerminal(out),
		ticker: time.NewTicker(500 * time.Millisecond),
		done:   make(chan bool),
	}

	go tracker.displayProgress()

	return tracker
}

func isTerminal(out io.Writer) bool {
	file, ok := out.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(file.Fd()) || isatty.IsCygwinTerminal(file.Fd())
}

// StartStage begins a new named stage of total items, finishing the
// previous stage's line first.
func (p *ProgressTracker) StartStage(name string, total int) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.finishLineLocked()
	p.stage = name
	p.total = total
	p.processed = 0
	p.failed = 0
	p.dirty = true
}

// Advance records one processed item in the current stage.
func (p *ProgressTracker) Advance(failed bool) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.processed++
	if failed {
		p.failed++
	}
	p.dirty = true
}

// displayProgress renders periodically until Stop.
func (p *ProgressTracker) displayProgress() {
	for {
		select {
		case <-p.done:
			return
		case <-p.ticker.C:
			p.mu.Lock()
			p.renderLocked()
			p.mu.Unlock()
		}
	}
}

func (p *ProgressTracker) renderLocked() {
	if !p.dirty || p.stage == "" {
		return
	}

	line := fmt.Sprintf("%s: %d/%d", p.stage, p.processed, p.total)
	if p.failed > 0 {
		line += fmt.Sprintf(" (failed: %d)", p.failed)
	}

	if p.tty {
		fmt.Fprintf(p.out, "\r%-60s", line)
		p.rendered = true
	} else {
		fmt.Fprintln(p.out, line)
	}
	p.dirty = false
}

// finishLineLocked terminates a rewritten line so the next output
// starts on its own row.
func (p *ProgressTracker) finishLineLocked() {
	if p.tty && p.rendered {
		fmt.Fprintln(p.out)
		p.rendered = false
	}
}

// Stop renders the final counts and ends the display goroutine.
func (p *ProgressTracker) Stop() {
	p.ticker.Stop()
	p.done <- true

	p.mu.Lock()
	defer p.mu.Unlock()
	p.renderLocked()
	p.finishLineLocked()
}
