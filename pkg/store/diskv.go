package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/peterbourgon/diskv/v3"

	"tableflip.dev/subviews/pkg/trace"
)

var (
	// ErrTraceNotFound is returned when no stored trace matches an id.
	ErrTraceNotFound = errors.New("store: trace not found")
	// ErrAmbiguousID is returned when an id prefix matches several traces.
	ErrAmbiguousID = errors.New("store: ambiguous trace id")
)

// Persistence defines the persistence contract for teardown traces.
type Persistence interface {
	Store(t *trace.Trace) error
	// Get returns the trace whose id equals or uniquely starts with id.
	Get(ctx context.Context, id string) (*trace.Trace, error)
	// List returns every stored trace, newest first.
	List(ctx context.Context) []*trace.Trace
	Delete(ctx context.Context, id string) error
	Watch(ctx context.Context) (<-chan Event, error)
}

// Load creates a Persistence backed by diskv using the provided config.
func Load(cfg Config) (Persistence, error) {
	if cfg == nil {
		var err error
		cfg, err = LoadConfig()
		if err != nil {
			return nil, err
		}
	}

	basePath := cfg.BasePath()
	if basePath == "" {
		return nil, errors.New("store: base path unknown")
	}
	return &persistence{d: diskv.New(diskv.Options{
		BasePath:          basePath,
		AdvancedTransform: keyToPathTransform,
		InverseTransform:  pathToKeyTransform,
		CacheSizeMax:      1024 * 1024, // 1MB
	}), basePath: basePath}, nil
}

type persistence struct {
	d        *diskv.Diskv
	basePath string
}

func (p *persistence) read(key string) (*trace.Trace, error) {
	val, err := p.d.Read(key)
	if err != nil {
		return nil, err
	}
	t := &trace.Trace{}
	if err := json.Unmarshal(val, t); err != nil {
		return nil, err
	}
	if t.ID == "" {
		t.ID = keyToPathTransform(key).FileName
	}
	return t, nil
}

func (p *persistence) Store(t *trace.Trace) error {
	if t == nil || t.ID == "" {
		return errors.New("store: trace id required")
	}
	data, err := json.Marshal(t)
	if err != nil {
		return fmt.Errorf("store: encoding trace %s: %w", t.ID, err)
	}
	if err := p.d.Write(toKey(t), data); err != nil {
		return fmt.Errorf("store: writing trace %s: %w", t.ID, err)
	}
	return nil
}

func (p *persistence) List(ctx context.Context) []*trace.Trace {
	all := make([]*trace.Trace, 0)
	for key := range p.d.Keys(ctx.Done()) {
		t, err := p.read(key)
		if err != nil {
			fmt.Fprintf(os.Stderr, "%s: %s\n", key, err)
			continue
		}
		all = append(all, t)
	}
	sortTraces(all)
	return all
}

func (p *persistence) Get(ctx context.Context, id string) (*trace.Trace, error) {
	key, err := p.find(ctx, id)
	if err != nil {
		return nil, err
	}
	t, err := p.read(key)
	if err != nil {
		return nil, fmt.Errorf("store: reading trace %s: %w", id, err)
	}
	return t, nil
}

func (p *persistence) Delete(ctx context.Context, id string) error {
	key, err := p.find(ctx, id)
	if err != nil {
		return err
	}
	if err := p.d.Erase(key); err != nil {
		return fmt.Errorf("store: erasing trace %s: %w", id, err)
	}
	return nil
}

// find resolves a full id or a unique id prefix to a diskv key.
func (p *persistence) find(ctx context.Context, id string) (string, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return "", ErrTraceNotFound
	}
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	var matches []string
	for key := range p.d.Keys(ctx.Done()) {
		name := keyToPathTransform(key).FileName
		if name == id {
			return key, nil
		}
		if strings.HasPrefix(name, id) {
			matches = append(matches, key)
		}
	}
	switch len(matches) {
	case 0:
		return "", fmt.Errorf("%w: %s", ErrTraceNotFound, id)
	case 1:
		return matches[0], nil
	default:
		return "", fmt.Errorf("%w: %s matches %d traces", ErrAmbiguousID, id, len(matches))
	}
}

const layoutISO = "2006-01-02"

func sortTraces(traces []*trace.Trace) {
	sort.SliceStable(traces, func(i, j int) bool {
		lt, rt := traces[i].Created, traces[j].Created
		if lt.Equal(rt) {
			return traces[i].ID < traces[j].ID
		}
		return lt.After(rt)
	})
}

func keyToPathTransform(s string) *diskv.PathKey {
	parts := strings.Split(s, "-")
	return &diskv.PathKey{
		Path:     parts[:len(parts)-1],
		FileName: parts[len(parts)-1],
	}
}

func pathToKeyTransform(pathKey *diskv.PathKey) string {
	return fmt.Sprintf("%s-%s", strings.Join(pathKey.Path, "-"), pathKey.FileName)
}

// toKey makes `yyyy-mm-dd-id`, filing traces in one directory per day.
func toKey(t *trace.Trace) string {
	return fmt.Sprintf("%s-%s", t.Created.UTC().Format(layoutISO), t.ID)
}
