/*******************************************************************************
*
* Copyright 2024 Holo Corelib Authors
*
* This file is part of holo-corelib.
*
* holo-corelib is free software: you can redistribute it and/or modify it under the
* terms of the GNU General Public License as published by the Free Software
* Foundation, either version 3 of the License, or (at your option) any later
* version.
*
* holo-corelib is distributed in the hope that it will be useful, but WITHOUT ANY
* WARRANTY; without even the implied warranty of MERCHANTABILITY or FITNESS FOR
* A PARTICULAR PURPOSE. See the GNU General Public License for more details.
*
* You should have received a copy of the GNU General Public License along with
* holo-corelib. If not, see <http://www.gnu.org/licenses/>.
*
*******************************************************************************/

// Package diag defines a sink that the JSON scanner and parser report
// through on syntax errors. The binary codec and the codec engines do not
// use a Sink: their short reads and codec errors are only returned as errs
// errors. The core only ever consumes a Sink; nothing in this module
// requires one to be installed, and a nil Sink silently drops every message.
package diag

import (
	"fmt"
	"log/slog"

	"github.com/holocm/holo-corelib/fileloc"
)

// Severity classifies a Message by how serious it is.
type Severity int

const (
	Error Severity = iota
	Warning
	Info
	Failure
	Debug
)

// String renders the severity the way log output expects to see it.
func (s Severity) String() string {
	switch s {
	case Error:
		return "error"
	case Warning:
		return "warning"
	case Info:
		return "info"
	case Failure:
		return "failure"
	case Debug:
		return "debug"
	default:
		return "unknown"
	}
}

// Message is one diagnostic record: a source location (if any), a severity,
// a short machine-matchable label, and a human-readable body.
type Message struct {
	SrcFile string
	SrcLine int
	Loc     *fileloc.Region // nil if the diagnostic isn't tied to a source position
	Sev     Severity
	Label   string
	Body    string
}

// String renders a Message as "label: body (at location)".
func (m Message) String() string {
	if m.Loc != nil {
		return fmt.Sprintf("%s: %s (%s)", m.Label, m.Body, m.Loc)
	}
	return fmt.Sprintf("%s: %s", m.Label, m.Body)
}

// Sink receives diagnostic messages. Every call site must tolerate a nil
// Sink: nothing in this module requires one to be installed.
type Sink interface {
	Emit(Message)
}

// Emit sends msg to sink if sink is non-nil, silently dropping it otherwise.
func Emit(sink Sink, msg Message) {
	if sink == nil {
		return
	}
	sink.Emit(msg)
}

// CollectorSink appends every message it receives, which is what tests and
// short-lived tools want.
type CollectorSink struct {
	Messages []Message
}

// Emit appends msg to the collector.
func (c *CollectorSink) Emit(msg Message) {
	c.Messages = append(c.Messages, msg)
}

// Errors extracts the Error/Failure-severity messages as a []error: callers
// that only care about failure often want a plain error slice rather than
// the full Message structs.
func (c *CollectorSink) Errors() []error {
	var errs []error
	for _, m := range c.Messages {
		if m.Sev == Error || m.Sev == Failure {
			errs = append(errs, fmt.Errorf("%s", m.String()))
		}
	}
	return errs
}

// SlogSink adapts Sink onto log/slog, so callers that already use structured
// logging can route diagnostics through their existing logger instead of
// hand-rolling a logging framework.
type SlogSink struct {
	Logger *slog.Logger
}

// NewSlogSink wraps logger (or slog.Default() if nil) as a Sink.
func NewSlogSink(logger *slog.Logger) *SlogSink {
	if logger == nil {
		logger = slog.Default()
	}
	return &SlogSink{Logger: logger}
}

// Emit logs msg at the slog level matching its Severity.
func (s *SlogSink) Emit(msg Message) {
	attrs := []any{slog.String("label", msg.Label)}
	if msg.Loc != nil {
		attrs = append(attrs, slog.String("loc", msg.Loc.String()))
	}
	if msg.SrcFile != "" {
		attrs = append(attrs, slog.String("src_file", msg.SrcFile), slog.Int("src_line", msg.SrcLine))
	}
	switch msg.Sev {
	case Error, Failure:
		s.Logger.Error(msg.Body, attrs...)
	case Warning:
		s.Logger.Warn(msg.Body, attrs...)
	case Debug:
		s.Logger.Debug(msg.Body, attrs...)
	default:
		s.Logger.Info(msg.Body, attrs...)
	}
}
