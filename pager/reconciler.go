package pager

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/ghie29/avmango/catalog"
	"github.com/ghie29/avmango/log"
	"github.com/samber/lo"
	"github.com/samber/mo"
)

var (
	// ErrSuperseded is returned when a later Load or Goto replaced the one in flight.
	ErrSuperseded = errors.New("superseded by a newer navigation")
	// ErrOutOfRange is returned by Goto for pages outside [1, TotalUIPages]. The state is untouched.
	ErrOutOfRange = errors.New("page out of range")
	// ErrNotLoaded is returned by Goto before any successful Load.
	ErrNotLoaded = errors.New("no category loaded")
)

// Lister is the part of a source the reconciler needs.
type Lister interface {
	Slug() string
	ListPage(ctx context.Context, page int) (*catalog.Page, error)
}

// View is a snapshot of what a UI page shows.
type View struct {
	Category string          `json:"category"`
	Cursor   Cursor          `json:"cursor"`
	Items    []catalog.Video `json:"items"`
}

// Reconciler holds the pagination state of one view.
//
// Each Load starts a new epoch; prefetches carry the epoch they were issued under
// and are dropped when it has moved on. Each navigation bumps nav, so a slow
// synchronous fetch cannot overwrite a newer one.
type Reconciler struct {
	mu sync.Mutex

	src    Lister
	state  State
	loaded bool

	epoch    uint64
	nav      uint64
	inflight map[int]chan struct{}

	bg     context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// NewReconciler returns an empty reconciler.
func NewReconciler() *Reconciler {
	return &Reconciler{inflight: make(map[int]chan struct{})}
}

// Load resets the view to UI page 1 of src and prefetches source page 2.
func (r *Reconciler) Load(ctx context.Context, src Lister) (View, error) {
	r.mu.Lock()
	r.epoch++
	r.nav++
	epoch, nav := r.epoch, r.nav

	if r.cancel != nil {
		r.cancel()
	}
	r.bg, r.cancel = context.WithCancel(context.Background())
	r.src = src
	r.loaded = false
	r.state = State{}
	r.inflight = make(map[int]chan struct{})
	r.mu.Unlock()

	state, err := begin(ctx, src)

	r.mu.Lock()
	defer r.mu.Unlock()

	if r.epoch != epoch || r.nav != nav {
		return View{}, ErrSuperseded
	}
	if err != nil {
		return View{}, fmt.Errorf("load %s: %w", src.Slug(), err)
	}

	r.state = state
	r.loaded = true
	r.prefetchLocked()

	log.WithField("category", src.Slug()).Debugf(
		"loaded: %d source pages of %d, %d ui pages",
		r.state.SourceTotalPages, r.state.SourcePageSize, r.state.TotalUIPages,
	)

	return r.viewLocked(), nil
}

// begin fetches page 1 and, for sources with pages smaller than a UI page,
// whatever else the first window spans.
func begin(ctx context.Context, src Lister) (State, error) {
	first, err := src.ListPage(ctx, 1)
	if err != nil {
		return State{}, err
	}

	state := Begin(first)
	action := Plan(state, 1)
	if len(action.Missing) == 0 {
		return state, nil
	}

	fetched, err := fetchAll(ctx, src, action.Missing)
	if err != nil {
		return State{}, err
	}
	return Apply(state, action, fetched...), nil
}

func fetchAll(ctx context.Context, src Lister, pages []int) ([]*catalog.Page, error) {
	fetched := make([]*catalog.Page, 0, len(pages))
	for _, n := range pages {
		p, err := src.ListPage(ctx, n)
		if err != nil {
			return nil, fmt.Errorf("%s page %d: %w", src.Slug(), n, err)
		}
		fetched = append(fetched, withNumber(p, n))
	}
	return fetched, nil
}

// Goto moves to UI page target. A page that is already being prefetched is
// awaited rather than fetched a second time.
func (r *Reconciler) Goto(ctx context.Context, target int) (View, error) {
	r.mu.Lock()

	if !r.loaded {
		r.mu.Unlock()
		return View{}, ErrNotLoaded
	}

	action := Plan(r.state, target)
	switch action.Step {
	case Reject:
		v := r.viewLocked()
		r.mu.Unlock()
		return v, ErrOutOfRange
	case Slice, Swap:
		r.nav++
		r.state = Apply(r.state, action)
		r.prefetchLocked()
		v := r.viewLocked()
		r.mu.Unlock()
		return v, nil
	}

	r.nav++
	epoch, nav, src := r.epoch, r.nav, r.src

	if done, ok := r.pendingLocked(action.Missing); ok {
		r.mu.Unlock()

		select {
		case <-done:
		case <-ctx.Done():
			return View{}, ctx.Err()
		}

		r.mu.Lock()
		superseded := r.epoch != epoch || r.nav != nav
		r.mu.Unlock()
		if superseded {
			return View{}, ErrSuperseded
		}
		return r.Goto(ctx, target)
	}
	r.mu.Unlock()

	fetched, err := fetchAll(ctx, src, action.Missing)
	if err != nil {
		return View{}, err
	}

	r.mu.Lock()
	if r.epoch != epoch || r.nav != nav {
		r.mu.Unlock()
		return View{}, ErrSuperseded
	}

	r.state = Apply(r.state, action, fetched...)
	r.prefetchLocked()

	// the last page can shrink the estimate below target
	if r.state.UIPage > r.state.TotalUIPages {
		last := r.state.TotalUIPages
		r.mu.Unlock()
		return r.Goto(ctx, last)
	}

	v := r.viewLocked()
	r.mu.Unlock()
	return v, nil
}

// View returns the current snapshot.
func (r *Reconciler) View() (View, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.viewLocked(), r.loaded
}

// Category returns the slug of the loaded source.
func (r *Reconciler) Category() mo.Option[string] {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.src == nil || !r.loaded {
		return mo.None[string]()
	}
	return mo.Some(r.src.Slug())
}

// State returns a copy of the internal state.
func (r *Reconciler) State() State {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.state
}

// Wait blocks until every prefetch issued so far has settled.
func (r *Reconciler) Wait() {
	r.wg.Wait()
}

// Close abandons in-flight prefetches. Their results are discarded.
func (r *Reconciler) Close() {
	r.mu.Lock()
	r.epoch++
	r.nav++
	r.loaded = false
	if r.cancel != nil {
		r.cancel()
		r.cancel = nil
	}
	r.mu.Unlock()
}

func (r *Reconciler) viewLocked() View {
	v := View{Cursor: r.state.Cursor, Items: Window(r.state)}
	if r.src != nil {
		v.Category = r.src.Slug()
	}
	return v
}

// pendingLocked returns the settle signal of the first of pages with a prefetch in flight.
func (r *Reconciler) pendingLocked(pages []int) (<-chan struct{}, bool) {
	for _, n := range pages {
		if done, ok := r.inflight[n]; ok {
			return done, true
		}
	}
	return nil, false
}

// prefetchLocked starts a background fetch of the page after the current one.
func (r *Reconciler) prefetchLocked() {
	page, ok := Wants(r.state)
	if !ok {
		return
	}
	if _, busy := r.inflight[page]; busy {
		return
	}

	done := make(chan struct{})
	r.inflight[page] = done
	epoch, src, ctx := r.epoch, r.src, r.bg

	r.wg.Add(1)
	go func() {
		defer r.wg.Done()
		defer close(done)

		p, err := src.ListPage(ctx, page)

		r.mu.Lock()
		defer r.mu.Unlock()

		if r.epoch != epoch {
			return
		}
		delete(r.inflight, page)

		if err != nil {
			log.WithField("category", src.Slug()).Warnf("prefetch of page %d failed: %v", page, err)
			return
		}

		if want, ok := Wants(r.state); !ok || want != page {
			log.WithField("category", src.Slug()).Debugf("dropping stale prefetch of page %d", page)
			return
		}

		r.state.Prefetch = mo.Some(withNumber(p, page))
		log.WithField("category", src.Slug()).Debugf("prefetched page %d (%s)", page, lo.Ternary(p.Empty(), "empty", "ok"))
	}()
}
