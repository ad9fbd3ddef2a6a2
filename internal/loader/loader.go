// Package loader runs asset loads off the render thread.
//
// A load reads the asset, normalizes it and resolves every primitive to a region. Only the
// most recent load is ever published: starting a new load cancels the previous one and
// any result it still produces is dropped. Cancelling the caller's context instead fails the
// load. Updates signals each snapshot change; the render loop checks it once per frame and
// then reads Snapshot.
package loader

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"brain-atlas/internal/asset"
	"brain-atlas/internal/catalog"
	"brain-atlas/internal/resolver"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Status is the lifecycle of the current load.
type Status int

const (
	StatusIdle Status = iota
	StatusLoading
	StatusReady
	StatusFailed
)

func (s Status) String() string {
	switch s {
	case StatusIdle:
		return "idle"
	case StatusLoading:
		return "loading"
	case StatusReady:
		return "ready"
	case StatusFailed:
		return "failed"
	}
	return fmt.Sprintf("status(%d)", int(s))
}

// Snapshot is the published state of the most recent load. Model and Assignments are set
// only when Status is StatusReady; Err only when StatusFailed.
type Snapshot struct {
	Status      Status
	LoadID      string
	Source      string
	Model       *asset.Model
	Assignments []resolver.Assignment
	Err         error
	Elapsed     time.Duration
}

// Defaults returns the per-primitive region ids of a ready snapshot, by primitive index.
func (s Snapshot) Defaults() []string {
	if s.Model == nil {
		return nil
	}
	out := make([]string, len(s.Model.Primitives))
	for i, p := range s.Model.Primitives {
		out[i] = p.RegionID()
	}
	return out
}

// ReadFunc loads a raw asset from path.
type ReadFunc func(path string) (*asset.RawAsset, error)

// Options configure a Loader.
type Options struct {
	Catalog            *catalog.Catalog
	CharacteristicSize float64
	MatchThreshold     float64
	Logger             *zap.Logger
	// Read defaults to asset.LoadFile.
	Read ReadFunc
}

// Loader owns the current load and its published snapshot.
type Loader struct {
	opts Options
	log  *zap.Logger

	mu      sync.Mutex
	gen     uint64
	cancel  context.CancelFunc
	snap    Snapshot
	closed  bool
	done    chan struct{}
	updates chan struct{}

	wg sync.WaitGroup
}

// New returns an idle loader.
func New(opts Options) *Loader {
	if opts.Catalog == nil {
		opts.Catalog = catalog.Default()
	}
	if opts.Read == nil {
		opts.Read = asset.LoadFile
	}
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}
	return &Loader{
		opts:    opts,
		log:     log,
		done:    make(chan struct{}),
		updates: make(chan struct{}, 1),
	}
}

// ErrClosed is reported by Load after Close.
var ErrClosed = errors.New("loader closed")

// Load starts loading path and returns the new load id. Any in-flight load is cancelled
// and its result discarded. The snapshot switches to StatusLoading immediately.
func (l *Loader) Load(ctx context.Context, path string) (string, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.closed {
		return "", ErrClosed
	}
	if l.cancel != nil {
		l.cancel()
	}
	l.gen++
	gen := l.gen
	lctx, cancel := context.WithCancel(ctx)
	l.cancel = cancel
	id := uuid.NewString()
	l.snap = Snapshot{Status: StatusLoading, LoadID: id, Source: path}
	l.signal()

	// A caller cancelling ctx while the read is still blocked must not leave the load
	// stuck in StatusLoading.
	stop := context.AfterFunc(lctx, func() {
		l.mu.Lock()
		defer l.mu.Unlock()
		if !l.current(gen) || l.snap.Status != StatusLoading {
			return
		}
		l.snap = Snapshot{Status: StatusFailed, LoadID: id, Source: path, Err: fmt.Errorf("%s: %w", path, lctx.Err())}
		l.signal()
		l.log.Warn("asset load cancelled", zap.String("load_id", id), zap.String("source", path))
	})

	l.wg.Add(1)
	go func() {
		defer l.wg.Done()
		defer cancel()
		defer stop()
		l.run(lctx, gen, id, path)
	}()
	return id, nil
}

// current reports whether gen is the newest load of an open loader. Callers hold l.mu.
func (l *Loader) current(gen uint64) bool {
	return gen == l.gen && !l.closed
}

func (l *Loader) run(ctx context.Context, gen uint64, id, path string) {
	start := time.Now()
	log := l.log.With(zap.String("load_id", id), zap.String("source", path))
	log.Info("asset load started")

	snap := Snapshot{LoadID: id, Source: path}
	model, assignments, err := l.build(ctx, path, log)
	snap.Elapsed = time.Since(start)
	if err == nil && ctx.Err() != nil {
		err = fmt.Errorf("%s: %w", path, ctx.Err())
	}
	if err != nil {
		snap.Status = StatusFailed
		snap.Err = err
	} else {
		snap.Status = StatusReady
		snap.Model = model
		snap.Assignments = assignments
	}

	l.mu.Lock()
	// A failure already published for this id came from the caller cancelling ctx.
	publish := l.current(gen) && !(l.snap.LoadID == id && l.snap.Status == StatusFailed)
	if publish {
		l.snap = snap
		l.signal()
	}
	l.mu.Unlock()

	switch {
	case !publish:
		log.Debug("discarding stale asset load")
	case err != nil:
		log.Error("asset load failed", zap.Error(err))
	default:
		s := resolver.Summarize(assignments)
		log.Info("asset load finished",
			zap.Int("primitives", len(model.Primitives)),
			zap.Float64("scale", model.Transform.Scale),
			zap.Int("by_name", s.Name),
			zap.Int("by_anchor", s.Spatial),
			zap.Int("by_fallback", s.Fallback),
			zap.Duration("elapsed", snap.Elapsed),
		)
	}
}

func (l *Loader) build(ctx context.Context, path string, log *zap.Logger) (*asset.Model, []resolver.Assignment, error) {
	raw, err := l.opts.Read(path)
	if err != nil {
		return nil, nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, nil, err
	}
	model, err := asset.Normalize(raw, l.opts.CharacteristicSize)
	if err != nil {
		return nil, nil, fmt.Errorf("%s: %w", path, err)
	}
	if model.Degenerate {
		log.Warn("degenerate asset bounds, using scale 1")
	}
	if err := ctx.Err(); err != nil {
		return nil, nil, err
	}
	assignments, err := resolver.ResolveAll(model.Primitives, l.opts.Catalog, resolver.Options{
		MatchThreshold: l.opts.MatchThreshold,
		Logger:         log,
	})
	if err != nil {
		return nil, nil, err
	}
	return model, assignments, nil
}

// signal wakes an Updates reader without blocking. Callers hold l.mu.
func (l *Loader) signal() {
	select {
	case l.updates <- struct{}{}:
	default:
	}
}

// Snapshot returns the current published state.
func (l *Loader) Snapshot() Snapshot {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.snap
}

// Updates receives a value (coalesced) whenever the snapshot changes.
func (l *Loader) Updates() <-chan struct{} {
	return l.updates
}

// Close cancels any in-flight load, stops watchers and waits for them to exit.
func (l *Loader) Close() error {
	l.mu.Lock()
	if l.closed {
		l.mu.Unlock()
		return nil
	}
	l.closed = true
	if l.cancel != nil {
		l.cancel()
	}
	close(l.done)
	l.mu.Unlock()
	l.wg.Wait()
	return nil
}
