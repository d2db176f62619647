// Package commands implements the ucli command handlers. Each handler is a
// straight sequence of API calls guarded by operator prompts.
package commands

import (
	"io"

	"github.com/opendatateam/ucli/internal/lib"
	"github.com/opendatateam/ucli/internal/services"
	"github.com/opendatateam/ucli/internal/ui"
)

// Env carries the collaborators shared by every command handler
type Env struct {
	API    *services.Client
	Prompt *ui.Prompter
	Out    *ui.Printer
	Logger *lib.Logger

	// ShowProgress renders progress bars on ProgressOut for bulk loops.
	// Per-row confirmations are then logged at debug level.
	ShowProgress bool
	ProgressOut  io.Writer
}

func (e *Env) progressBar(total int, description string) *ui.ProgressBar {
	if !e.ShowProgress || e.ProgressOut == nil {
		return nil
	}
	return ui.NewProgressBarWithWriter(int64(total), description, e.ProgressOut)
}

func (e *Env) spinner(description string) *ui.Spinner {
	if !e.ShowProgress || e.ProgressOut == nil {
		return nil
	}
	return ui.NewSpinner(e.ProgressOut, description)
}

// rowInfof logs a per-row success line, demoted to debug while a progress bar is shown
func (e *Env) rowInfof(format string, args ...interface{}) {
	if e.ShowProgress {
		e.Logger.Debugf(format, args...)
		return
	}
	e.Logger.Infof(format, args...)
}
