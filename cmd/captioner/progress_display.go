package main

import (
	"io"
	"math"
	"os"
	"time"

	"github.com/jedib0t/go-pretty/v6/progress"
	"github.com/mattn/go-isatty"

	"captioner/internal/render"
)

// newProgressDisplay returns a progress callback plus a finish function. On
// a terminal the callback drives a live bar; elsewhere both are no-ops and
// the sampled log lines are the only progress trail.
func newProgressDisplay(w io.Writer) (func(render.Progress), func(success bool)) {
	if !isTerminal(w) {
		return func(render.Progress) {}, func(bool) {}
	}

	pw := progress.NewWriter()
	pw.SetOutputWriter(w)
	pw.SetTrackerLength(30)
	pw.SetMessageWidth(12)
	pw.SetUpdateFrequency(200 * time.Millisecond)
	pw.SetStyle(progress.StyleDefault)

	tracker := &progress.Tracker{Message: "Encoding", Total: 100}
	pw.AppendTracker(tracker)
	go pw.Render()

	onProgress := func(p render.Progress) {
		if p.Fraction < 0 {
			return
		}
		value := int64(math.Round(p.Fraction * 100))
		if value > 100 {
			value = 100
		}
		tracker.SetValue(value)
	}
	finish := func(success bool) {
		if success {
			tracker.MarkAsDone()
		} else {
			tracker.MarkAsErrored()
		}
		for pw.IsRenderInProgress() {
			if pw.LengthActive() == 0 {
				pw.Stop()
			}
			time.Sleep(10 * time.Millisecond)
		}
	}
	return onProgress, finish
}

func isTerminal(writer io.Writer) bool {
	file, ok := writer.(*os.File)
	if !ok {
		return false
	}
	fd := file.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}
