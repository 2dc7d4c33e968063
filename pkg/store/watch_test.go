package store

import (
	"context"
	"testing"
	"time"

	"tableflip.dev/subviews/pkg/trace"
)

type testConfig struct {
	path string
}

func (t testConfig) BasePath() string   { return t.path }
func (t testConfig) LayoutPath() string { return "" }
func (t testConfig) Detach() bool       { return true }
func (t testConfig) File() string       { return "" }

func newTrace(root string, at time.Time) *trace.Trace {
	rec := &trace.Recorder{}
	rec.Record(trace.PhaseDestroy, root)
	rec.Record(trace.PhaseDetach, root)
	return trace.New(root, "", true, rec, at)
}

func TestPersistenceWatchEmitsTraceChanges(t *testing.T) {
	base := t.TempDir()
	p, err := Load(testConfig{path: base})
	if err != nil {
		t.Fatalf("load persistence: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	ch, err := p.Watch(ctx)
	if err != nil {
		t.Fatalf("watch: %v", err)
	}

	// Allow watcher goroutine to subscribe to directories before storing.
	time.Sleep(50 * time.Millisecond)

	tr := newTrace("first", time.Now())
	if err := p.Store(tr); err != nil {
		t.Fatalf("store trace: %v", err)
	}

	deadline := time.After(2 * time.Second)
	for {
		select {
		case evt := <-ch:
			if evt.Type == EventInvalidated {
				return
			}
			if evt.Type == EventTraceStored {
				if evt.ID != tr.ID {
					t.Fatalf("expected trace %q, got %q", tr.ID, evt.ID)
				}
				return
			}
		case <-deadline:
			t.Fatal("timed out waiting for trace event")
		}
	}
}

func TestWatchClosesOnCancel(t *testing.T) {
	p, err := Load(testConfig{path: t.TempDir()})
	if err != nil {
		t.Fatalf("load persistence: %v", err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	ch, err := p.Watch(ctx)
	if err != nil {
		t.Fatalf("watch: %v", err)
	}
	cancel()

	deadline := time.After(2 * time.Second)
	for {
		select {
		case _, ok := <-ch:
			if !ok {
				return
			}
		case <-deadline:
			t.Fatal("channel not closed after cancel")
		}
	}
}

func TestIDForPath(t *testing.T) {
	p := &persistence{basePath: "/data"}
	tests := map[string]string{
		"/data/2026/10/18/abc123": "abc123",
		"/data/2026/10":           "",
		"/data":                   "",
		"/elsewhere/2026/10/18/x": "",
	}
	for path, want := range tests {
		if got := p.idForPath(path); got != want {
			t.Errorf("idForPath(%q) = %q, want %q", path, got, want)
		}
	}
}
