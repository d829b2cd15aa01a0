// Copyright (c) 2026 The Decred developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package ottery

import (
	"testing"

	"github.com/decred/slog"
)

type testLog struct {
	*testing.T
}

func (t *testLog) Write(b []byte) (int, error) {
	t.Logf("%s", b)
	return len(b), nil
}

// useTestLogger routes package logging to the test log for the duration of
// the test.  Tests using it must not be run in parallel.
func useTestLogger(t *testing.T) {
	backend := slog.NewBackend(&testLog{T: t})
	l := backend.Logger("OTTR")
	l.SetLevel(slog.LevelTrace)
	UseLogger(l)
	t.Cleanup(func() {
		UseLogger(slog.Disabled)
	})
}
