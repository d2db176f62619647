package ui

import (
	"fmt"
	"io"
	"time"

	"github.com/schollz/progressbar/v3"
)

// ProgressBar wraps the progressbar library to show row-by-row progress of
// bulk commands. A nil *ProgressBar is valid and does nothing.
type ProgressBar struct {
	bar   *progressbar.ProgressBar
	total int64
}

// NewProgressBarWithWriter creates a progress bar that writes to a specific writer
func NewProgressBarWithWriter(total int64, description string, writer io.Writer) *ProgressBar {
	bar := progressbar.NewOptions64(
		total,
		progressbar.OptionSetDescription(description),
		progressbar.OptionShowCount(),
		progressbar.OptionSetWidth(40),
		progressbar.OptionThrottle(100*time.Millisecond),
		progressbar.OptionShowIts(),
		progressbar.OptionSetItsString("rows"),
		progressbar.OptionSetWriter(writer),
		progressbar.OptionSetRenderBlankState(true),
		progressbar.OptionClearOnFinish(),
		progressbar.OptionEnableColorCodes(false),
	)

	return &ProgressBar{
		bar:   bar,
		total: total,
	}
}

// Add increments the progress bar by the given amount
func (p *ProgressBar) Add(amount int64) error {
	if p == nil {
		return nil
	}
	return p.bar.Add64(amount)
}

// Finish completes the progress bar
func (p *ProgressBar) Finish() error {
	if p == nil {
		return nil
	}
	return p.bar.Finish()
}

// Spinner reports the start and end of an operation with unknown duration
type Spinner struct {
	w           io.Writer
	description string
	startTime   time.Time
	active      bool
}

// NewSpinner creates a spinner writing to w
func NewSpinner(w io.Writer, description string) *Spinner {
	return &Spinner{
		w:           w,
		description: description,
	}
}

// Start begins the operation
func (s *Spinner) Start() {
	if s == nil {
		return
	}
	s.active = true
	s.startTime = time.Now()
	fmt.Fprintf(s.w, "%s...\n", s.description)
}

// Stop ends the operation
func (s *Spinner) Stop(success bool) {
	if s == nil || !s.active {
		return
	}
	s.active = false
	elapsed := time.Since(s.startTime)

	if success {
		fmt.Fprintf(s.w, "%s %s (completed in %v)\n", GlyphOK, s.description, elapsed.Round(time.Millisecond))
	} else {
		fmt.Fprintf(s.w, "%s %s (failed after %v)\n", GlyphKO, s.description, elapsed.Round(time.Millisecond))
	}
}
