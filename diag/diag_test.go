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

package diag

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEmitToNilSinkIsNoOp(t *testing.T) {
	assert.NotPanics(t, func() {
		Emit(nil, Message{Sev: Error, Label: "X", Body: "boom"})
	})
}

func TestCollectorSinkAppendsEveryMessage(t *testing.T) {
	var c CollectorSink
	Emit(&c, Message{Sev: Warning, Label: "W1", Body: "first"})
	Emit(&c, Message{Sev: Error, Label: "E1", Body: "second"})
	require.Len(t, c.Messages, 2)
	assert.Equal(t, "W1", c.Messages[0].Label)
}

func TestCollectorSinkErrorsExtractsOnlyFailuresAndErrors(t *testing.T) {
	var c CollectorSink
	c.Emit(Message{Sev: Info, Label: "I", Body: "fyi"})
	c.Emit(Message{Sev: Error, Label: "E", Body: "bad"})
	c.Emit(Message{Sev: Failure, Label: "F", Body: "worse"})

	errs := c.Errors()
	require.Len(t, errs, 2)
	assert.Contains(t, errs[0].Error(), "bad")
	assert.Contains(t, errs[1].Error(), "worse")
}

func TestMessageStringWithoutLocation(t *testing.T) {
	m := Message{Sev: Error, Label: "PARSE_ERROR", Body: "unexpected token"}
	assert.Equal(t, "PARSE_ERROR: unexpected token", m.String())
}

func TestSlogSinkDispatchesBySeverity(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	sink := NewSlogSink(logger)

	sink.Emit(Message{Sev: Error, Label: "E", Body: "failed"})
	sink.Emit(Message{Sev: Debug, Label: "D", Body: "detail"})

	out := buf.String()
	assert.Contains(t, out, "level=ERROR")
	assert.Contains(t, out, "level=DEBUG")
}
