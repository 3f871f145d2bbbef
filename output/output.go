// Package output prints the human readable progress of the command line
// tools. Diagnostics go through logr instead.
package output

import (
	"context"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/gosuri/uiprogress"
)

// Prefix starts every status line.
const Prefix = "[ISM43362]"

var (
	mu           sync.Mutex
	outputWriter io.Writer = io.Discard
)

// SetWriter allows the consumer of this package to
// choose where this package writes output.
//
// Default is to discard all output
func SetWriter(w io.Writer) {
	if w == nil {
		w = io.Discard
	}
	mu.Lock()
	defer mu.Unlock()
	outputWriter = w
}

func writer() io.Writer {
	mu.Lock()
	defer mu.Unlock()
	return outputWriter
}

// Println calls fmt.Fprintln() with the configured writer
func Println(a ...any) {
	fmt.Fprintln(writer(), a...)
}

// Printf calls fmt.Fprintf() with the configured writer
func Printf(f string, a ...any) {
	fmt.Fprintf(writer(), f, a...)
}

// Status prints one "[ISM43362] label: value" line, labels right aligned
// to width.
func Status(width int, label string, value any) {
	Printf("%s %*s: %v\n", Prefix, width, label, value)
}

// Countdown shows a progress bar filling up over d in steps increments. It
// returns early with the context error if ctx is done.
func Countdown(ctx context.Context, d time.Duration, steps int) error {
	if d <= 0 {
		return nil
	}
	if steps <= 0 {
		steps = 1
	}
	progress := uiprogress.New()
	progress.SetOut(writer())
	progress.Start()
	defer progress.Stop()

	bar := progress.AddBar(steps)
	bar.PrependElapsed()
	bar.AppendCompleted()

	interval := d / time.Duration(steps)
	if interval <= 0 {
		interval = d
	}
	tick := time.NewTicker(interval)
	defer tick.Stop()
	for i := 0; i < steps; i++ {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-tick.C:
			bar.Incr()
		}
	}
	return nil
}
