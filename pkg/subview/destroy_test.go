package subview

import (
	"errors"
	"strconv"
	"testing"

	"github.com/google/go-cmp/cmp"
)

var chain = []string{"second", "third", "fourth", "fifth", "sixt"}

// buildChain registers first→second→…→sixt, each owning only the next.
func buildChain(t *testing.T, log *journal) *probe {
	t.Helper()
	first := &probe{opts: probeOptions{Key: "first", Log: log}}
	var owner Component = first
	for _, name := range chain {
		owner = mustAdd(t, owner, name, log)
	}
	return first
}

func TestDestroyOrdering(t *testing.T) {
	tests := []struct {
		name    string
		destroy func(first *probe) error
	}{{
		name:    "destroy all",
		destroy: func(first *probe) error { return first.Subviews().DestroyAll() },
	}, {
		name:    "destroy one",
		destroy: func(first *probe) error { return first.Subviews().Destroy("second") },
	}, {
		name:    "destroy subtree",
		destroy: func(first *probe) error { return DestroySubtree(first) },
	}}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			log := &journal{}
			first := buildChain(t, log)

			if err := tt.destroy(first); err != nil {
				t.Fatal(err)
			}

			if diff := cmp.Diff(chain, log.destroyed); diff != "" {
				t.Errorf("onDestroy order mismatch (-want +got):\n%s", diff)
			}
			want := []string{"sixt", "fifth", "fourth", "third", "second"}
			if diff := cmp.Diff(want, log.removed); diff != "" {
				t.Errorf("detach order mismatch (-want +got):\n%s", diff)
			}
			if first.Subviews().Len() != 0 {
				t.Errorf("first still owns %v", first.Subviews().Names())
			}
		})
	}
}

func TestDestroyKeepInHost(t *testing.T) {
	log := &journal{}
	first := buildChain(t, log)

	if err := first.Subviews().Destroy("second", KeepInHost()); err != nil {
		t.Fatal(err)
	}

	if len(log.removed) != 0 {
		t.Fatalf("expected no detachment, got %v", log.removed)
	}
	if diff := cmp.Diff(chain, log.destroyed); diff != "" {
		t.Errorf("onDestroy order mismatch (-want +got):\n%s", diff)
	}
	want := []string{"sixt", "fifth", "fourth", "third", "second"}
	if diff := cmp.Diff(want, log.released); diff != "" {
		t.Errorf("listener release mismatch (-want +got):\n%s", diff)
	}
	if first.Subviews().Has("second") {
		t.Fatal("second still registered")
	}
}

func TestDestroyDetachSkipsStopListening(t *testing.T) {
	log := &journal{}
	first := buildChain(t, log)

	if err := first.Subviews().DestroyAll(WithDetach(true)); err != nil {
		t.Fatal(err)
	}
	if len(log.released) != 0 {
		t.Fatalf("StopListening called alongside Remove: %v", log.released)
	}
}

func TestBeforeEachChildDestroy(t *testing.T) {
	log := &journal{}
	first := buildChain(t, log)

	var events []string
	before := func(c Component) error {
		p := c.(*probe)
		log.before = append(log.before, p.opts.Key)
		events = append(events, "before:"+p.opts.Key)
		return nil
	}
	for _, name := range chain {
		name := name
		p := lookup(t, first, name)
		p.opts.OnDestroy = func(*probe) error {
			events = append(events, "destroy:"+name)
			return nil
		}
	}

	if err := first.Subviews().DestroyAll(BeforeEach(before)); err != nil {
		t.Fatal(err)
	}

	if diff := cmp.Diff(chain, log.before); diff != "" {
		t.Errorf("before order mismatch (-want +got):\n%s", diff)
	}
	var want []string
	for _, name := range chain {
		want = append(want, "before:"+name, "destroy:"+name)
	}
	if diff := cmp.Diff(want, events); diff != "" {
		t.Errorf("interleaving mismatch (-want +got):\n%s", diff)
	}
}

func TestDestroySingleSkipsBeforeEachForTarget(t *testing.T) {
	log := &journal{}
	first := buildChain(t, log)

	var seen []string
	err := first.Subviews().Destroy("second", BeforeEach(func(c Component) error {
		seen = append(seen, c.(*probe).opts.Key)
		return nil
	}))
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(chain[1:], seen); diff != "" {
		t.Errorf("before mismatch (-want +got):\n%s", diff)
	}
}

func TestOptionsAreNotPersisted(t *testing.T) {
	log := &journal{}
	base := &probe{opts: probeOptions{Key: "base", Log: log}}
	mustAdd(t, base, "a", log)
	mustAdd(t, base, "b", log)

	if err := base.Subviews().Destroy("a", KeepInHost()); err != nil {
		t.Fatal(err)
	}
	if err := base.Subviews().Destroy("b"); err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff([]string{"b"}, log.removed); diff != "" {
		t.Errorf("removed mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"a"}, log.released); diff != "" {
		t.Errorf("released mismatch (-want +got):\n%s", diff)
	}
}

func TestWithOptionsNormalizesNilCallback(t *testing.T) {
	log := &journal{}
	base := &probe{opts: probeOptions{Key: "base", Log: log}}
	mustAdd(t, base, "a", log)

	err := base.Subviews().DestroyAll(WithOptions(DestroyOptions{DetachFromHost: false}))
	if err != nil {
		t.Fatal(err)
	}
	if len(log.removed) != 0 || len(log.released) != 1 {
		t.Fatalf("removed=%v released=%v", log.removed, log.released)
	}
}

func TestSiblingDestroyedByHookIsSkipped(t *testing.T) {
	log := &journal{}
	base := &probe{opts: probeOptions{Key: "base", Log: log}}
	a := mustAdd(t, base, "a", log)
	mustAdd(t, base, "b", log)
	mustAdd(t, base, "c", log)

	a.opts.OnDestroy = func(*probe) error {
		return base.Subviews().Destroy("b")
	}

	if err := base.Subviews().DestroyAll(); err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff([]string{"a", "b", "c"}, log.destroyed); diff != "" {
		t.Errorf("destroyed mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"b", "a", "c"}, log.removed); diff != "" {
		t.Errorf("removed mismatch (-want +got):\n%s", diff)
	}
	if base.Subviews().Len() != 0 {
		t.Fatalf("left over: %v", base.Subviews().Names())
	}
}

func TestDestroyedComponentGetsNoMoreHooks(t *testing.T) {
	log := &journal{}
	base := &probe{opts: probeOptions{Key: "base", Log: log}}
	mustAdd(t, base, "a", log)
	mustAdd(t, base, "b", log)

	if err := base.Subviews().Destroy("a"); err != nil {
		t.Fatal(err)
	}
	if err := base.Subviews().DestroyAll(); err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff([]string{"a", "b"}, log.destroyed); diff != "" {
		t.Errorf("destroyed mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"a", "b"}, log.offs); diff != "" {
		t.Errorf("off mismatch (-want +got):\n%s", diff)
	}
}

func TestDestroyingComponentIsNotFound(t *testing.T) {
	log := &journal{}
	base := &probe{opts: probeOptions{Key: "base", Log: log}}
	a := mustAdd(t, base, "a", log)

	var inner error
	a.opts.OnDestroy = func(*probe) error {
		inner = base.Subviews().Destroy("a")
		return nil
	}
	if err := base.Subviews().Destroy("a"); err != nil {
		t.Fatal(err)
	}
	if !errors.Is(inner, ErrNotFound) {
		t.Fatalf("re-entrant destroy: expected ErrNotFound, got %v", inner)
	}
	if diff := cmp.Diff([]string{"a"}, log.destroyed); diff != "" {
		t.Errorf("destroyed mismatch (-want +got):\n%s", diff)
	}
}

func TestHookErrorAbortsPass(t *testing.T) {
	log := &journal{}
	first := buildChain(t, log)
	boom := errors.New("boom")

	fourth := lookup(t, first, "fourth")
	fourth.opts.OnDestroy = func(*probe) error { return boom }

	err := first.Subviews().DestroyAll()
	if err != boom {
		t.Fatalf("expected hook error unchanged, got %v", err)
	}
	if diff := cmp.Diff([]string{"second", "third", "fourth"}, log.destroyed); diff != "" {
		t.Errorf("destroyed mismatch (-want +got):\n%s", diff)
	}
	if len(log.removed) != 0 {
		t.Fatalf("nothing should be detached, got %v", log.removed)
	}
	if !first.Subviews().Has("second") {
		t.Fatal("second should stay registered after an aborted pass")
	}

	// The aborted components are live again and can be retried.
	fourth.opts.OnDestroy = nil
	log.destroyed = nil
	if err := first.Subviews().DestroyAll(); err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(chain, log.destroyed); diff != "" {
		t.Errorf("retry mismatch (-want +got):\n%s", diff)
	}
}

func TestBeforeEachErrorLeavesFinishedSiblingsDestroyed(t *testing.T) {
	log := &journal{}
	base := &probe{opts: probeOptions{Key: "base", Log: log}}
	mustAdd(t, base, "a", log)
	mustAdd(t, base, "b", log)
	stop := errors.New("stop")

	err := base.Subviews().DestroyAll(BeforeEach(func(c Component) error {
		if c.(*probe).opts.Key == "b" {
			return stop
		}
		return nil
	}))
	if !errors.Is(err, stop) {
		t.Fatalf("expected stop, got %v", err)
	}
	if diff := cmp.Diff([]string{"b"}, base.Subviews().Names()); diff != "" {
		t.Errorf("names mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"a"}, log.destroyed); diff != "" {
		t.Errorf("destroyed mismatch (-want +got):\n%s", diff)
	}
}

func TestDeepTreeDoesNotRecurse(t *testing.T) {
	const depth = 100000
	log := &journal{}
	root := &probe{opts: probeOptions{Key: "root", Log: log}}
	var owner Component = root
	for i := 0; i < depth; i++ {
		owner = mustAdd(t, owner, strconv.Itoa(i), log)
	}

	if err := root.Subviews().DestroyAll(); err != nil {
		t.Fatal(err)
	}
	if len(log.destroyed) != depth || len(log.removed) != depth {
		t.Fatalf("destroyed=%d removed=%d", len(log.destroyed), len(log.removed))
	}
	if log.destroyed[0] != "0" || log.removed[0] != strconv.Itoa(depth-1) {
		t.Fatalf("unexpected order: first destroy %s, first detach %s", log.destroyed[0], log.removed[0])
	}
}

func lookup(t *testing.T, root Component, name string) *probe {
	t.Helper()
	var found *probe
	var walk func(c Component)
	walk = func(c Component) {
		c.Subviews().Each(func(n string, child Component) bool {
			if n == name {
				found = child.(*probe)
				return false
			}
			walk(child)
			return found == nil
		})
	}
	walk(root)
	if found == nil {
		t.Fatalf("component %q not found", name)
	}
	return found
}
