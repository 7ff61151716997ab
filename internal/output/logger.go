// Copyright 2026 CodeIntel Authors
//
// SPDX-License-Identifier: Apache-2.0

package output

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/schollz/progressbar/v3"
)

// Logger provides leveled, TTY-aware logging to stderr, with an optional
// progress bar for long build passes.
type Logger struct {
	verbosity    VerbosityLevel
	writer       io.Writer
	startTime    time.Time
	isTTY        bool
	progressBar  *progressbar.ProgressBar
	showProgress bool
}

// NewLogger creates a logger writing to stderr, keeping stdout free for
// SARIF/JSON results.
func NewLogger(verbosity VerbosityLevel) *Logger {
	return NewLoggerWithWriter(verbosity, os.Stderr)
}

// NewLoggerWithWriter creates a logger over an arbitrary writer, mainly
// for tests.
func NewLoggerWithWriter(verbosity VerbosityLevel, w io.Writer) *Logger {
	isTTY := IsTTY(w)
	return &Logger{
		verbosity:    verbosity,
		writer:       w,
		startTime:    time.Now(),
		isTTY:        isTTY,
		showProgress: isTTY,
	}
}

// Progress logs a high-level step ("Discovering files...").
func (l *Logger) Progress(format string, args ...interface{}) {
	if l.verbosity >= VerbosityVerbose {
		fmt.Fprintf(l.writer, format+"\n", args...)
	}
}

// Statistic logs a count or metric ("1,204 symbols parsed").
func (l *Logger) Statistic(format string, args ...interface{}) {
	if l.verbosity >= VerbosityVerbose {
		fmt.Fprintf(l.writer, format+"\n", args...)
	}
}

// Debug logs with an elapsed-time prefix, debug verbosity only.
func (l *Logger) Debug(format string, args ...interface{}) {
	if l.verbosity >= VerbosityDebug {
		fmt.Fprintf(l.writer, "[%s] %s\n", formatDuration(time.Since(l.startTime)), fmt.Sprintf(format, args...))
	}
}

// Warning always prints, even at quiet verbosity.
func (l *Logger) Warning(format string, args ...interface{}) {
	fmt.Fprintf(l.writer, "warning: %s\n", fmt.Sprintf(format, args...))
}

// Error always prints, even at quiet verbosity.
func (l *Logger) Error(format string, args ...interface{}) {
	fmt.Fprintf(l.writer, "error: %s\n", fmt.Sprintf(format, args...))
}

// IsTTY reports whether the logger's writer is an interactive terminal.
func (l *Logger) IsTTY() bool { return l.isTTY }

// GetWriter returns the underlying writer (used by PrintBanner).
func (l *Logger) GetWriter() io.Writer { return l.writer }

// Verbosity returns the configured level.
func (l *Logger) Verbosity() VerbosityLevel { return l.verbosity }

// StartProgress begins a spinner (total < 0) or percentage bar (total >= 0)
// for the current build step. Falls back to a single Progress line when
// output isn't an interactive TTY.
func (l *Logger) StartProgress(description string, total int) {
	if !l.showProgress || !l.isTTY {
		l.Progress("%s...", description)
		return
	}
	if l.progressBar != nil {
		_ = l.progressBar.Finish()
	}
	opts := []progressbar.Option{
		progressbar.OptionSetDescription(description),
		progressbar.OptionSetWriter(l.writer),
		progressbar.OptionSetWidth(40),
		progressbar.OptionThrottle(65 * time.Millisecond),
		progressbar.OptionOnCompletion(func() { fmt.Fprintln(l.writer) }),
	}
	if total < 0 {
		opts = append(opts, progressbar.OptionSpinnerType(14))
		l.progressBar = progressbar.NewOptions(-1, opts...)
		return
	}
	opts = append(opts, progressbar.OptionShowCount(), progressbar.OptionSetRenderBlankState(true))
	l.progressBar = progressbar.NewOptions(total, opts...)
}

// UpdateProgress advances the active progress bar by delta.
func (l *Logger) UpdateProgress(delta int) {
	if !l.showProgress || !l.isTTY || l.progressBar == nil {
		return
	}
	_ = l.progressBar.Add(delta)
}

// FinishProgress completes and clears the active progress bar.
func (l *Logger) FinishProgress() {
	if !l.showProgress || !l.isTTY || l.progressBar == nil {
		return
	}
	_ = l.progressBar.Finish()
	l.progressBar = nil
}

func formatDuration(d time.Duration) string {
	minutes := int(d.Minutes())
	seconds := int(d.Seconds()) % 60
	millis := int(d.Milliseconds()) % 1000
	return fmt.Sprintf("%02d:%02d.%03d", minutes, seconds, millis)
}
