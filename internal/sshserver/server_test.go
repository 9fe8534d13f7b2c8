// SPDX-License-Identifier: MPL-2.0

package sshserver

import (
	"context"
	"errors"
	"strings"
	"testing"

	"refbook/internal/config"
	"refbook/internal/render"
	"refbook/pkg/catalog"
	"refbook/pkg/sheet"
)

const fixture = `# Git

## Undoing Changes

` + "```bash\ngit checkout -- .\n```\n" + `
## Branching

` + "```bash\ngit switch -c topic\n```\n"

func newTestServer(t *testing.T, cfg Config) *Server {
	t.Helper()

	s, err := sheet.Parse([]byte(fixture))
	if err != nil {
		t.Fatalf("failed to parse fixture: %v", err)
	}
	cat := catalog.New(s)

	renderer, err := render.New(render.Options{Theme: config.ThemeNoTTY, Width: 80})
	if err != nil {
		t.Fatalf("failed to create renderer: %v", err)
	}

	return New(cfg, cat, renderer)
}

func TestStateString(t *testing.T) {
	cases := map[State]string{
		StateCreated:  "created",
		StateStarting: "starting",
		StateRunning:  "running",
		StateStopping: "stopping",
		StateStopped:  "stopped",
		StateFailed:   "failed",
		State(42):     "unknown",
	}
	for state, want := range cases {
		if got := state.String(); got != want {
			t.Errorf("State(%d).String() = %q, want %q", state, got, want)
		}
	}
}

func TestStateIsTerminal(t *testing.T) {
	if !StateStopped.IsTerminal() || !StateFailed.IsTerminal() {
		t.Error("StateStopped and StateFailed must be terminal")
	}
	if StateRunning.IsTerminal() || StateCreated.IsTerminal() {
		t.Error("StateRunning and StateCreated must not be terminal")
	}
}

func TestRespondIndex(t *testing.T) {
	srv := newTestServer(t, DefaultConfig())

	out, err := srv.respond("")
	if err != nil {
		t.Fatalf("respond() error = %v", err)
	}
	if !strings.Contains(out, "undoing-changes") {
		t.Errorf("index output missing anchor: %q", out)
	}
	if !strings.Contains(out, "Branching") {
		t.Errorf("index output missing topic title: %q", out)
	}
}

func TestRespondTopic(t *testing.T) {
	srv := newTestServer(t, DefaultConfig())

	out, err := srv.respond("undoing-changes")
	if err != nil {
		t.Fatalf("respond() error = %v", err)
	}
	if !strings.Contains(out, "git checkout -- .") {
		t.Errorf("topic output missing snippet: %q", out)
	}
}

func TestRespondUnknownTopic(t *testing.T) {
	srv := newTestServer(t, DefaultConfig())

	_, err := srv.respond("no-such-topic")
	if !errors.Is(err, catalog.ErrTopicNotFound) {
		t.Errorf("respond() error = %v, want ErrTopicNotFound", err)
	}
}

func TestStartAndStop(t *testing.T) {
	srv := newTestServer(t, DefaultConfig())

	if err := srv.Start(context.Background()); err != nil {
		t.Fatalf("Start() error = %v", err)
	}
	if !srv.IsRunning() {
		t.Errorf("IsRunning() = false after Start, state = %s", srv.State())
	}
	if srv.Port() == 0 {
		t.Error("Port() = 0 after Start, want auto-selected port")
	}

	if err := srv.Stop(); err != nil {
		t.Errorf("Stop() error = %v", err)
	}
	if srv.State() != StateStopped {
		t.Errorf("State() = %s after Stop, want stopped", srv.State())
	}

	// Stop is idempotent.
	if err := srv.Stop(); err != nil {
		t.Errorf("second Stop() error = %v", err)
	}
}

func TestStartCancelledContext(t *testing.T) {
	srv := newTestServer(t, DefaultConfig())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if err := srv.Start(ctx); err == nil {
		t.Fatal("Start() = nil with cancelled context, want error")
	}
	if srv.State() != StateFailed {
		t.Errorf("State() = %s, want failed", srv.State())
	}
}

func TestStartTwice(t *testing.T) {
	srv := newTestServer(t, DefaultConfig())

	if err := srv.Start(context.Background()); err != nil {
		t.Fatalf("Start() error = %v", err)
	}
	t.Cleanup(func() { _ = srv.Stop() })

	if err := srv.Start(context.Background()); err == nil {
		t.Error("second Start() = nil, want error for non-created state")
	}
}

func TestStopNeverStarted(t *testing.T) {
	srv := newTestServer(t, DefaultConfig())

	if err := srv.Stop(); err != nil {
		t.Errorf("Stop() on never-started server = %v, want nil", err)
	}
	if srv.State() != StateStopped {
		t.Errorf("State() = %s, want stopped", srv.State())
	}
}
