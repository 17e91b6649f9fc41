package pager

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/ghie29/avmango/catalog"
	"github.com/ghie29/avmango/util"
)

// fakeSource serves total records in pages of size. Pages can be gated or failed.
type fakeSource struct {
	slug  string
	size  int
	total int
	pages int

	mu    sync.Mutex
	calls map[int]int
	gates map[int]chan struct{}
	fail  map[int]error
}

func newFake(slug string, size, total int) *fakeSource {
	return &fakeSource{
		slug:  slug,
		size:  size,
		total: total,
		pages: util.CeilDiv(total, util.Max(size, 1)),
		calls: make(map[int]int),
		gates: make(map[int]chan struct{}),
		fail:  make(map[int]error),
	}
}

func (f *fakeSource) Slug() string { return f.slug }

func (f *fakeSource) ListPage(ctx context.Context, page int) (*catalog.Page, error) {
	f.mu.Lock()
	f.calls[page]++
	gate, err := f.gates[page], f.fail[page]
	f.mu.Unlock()

	if gate != nil {
		select {
		case <-gate:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}

	if err != nil {
		return nil, err
	}

	var items []catalog.Video
	for i := (page - 1) * f.size; i < util.Min(page*f.size, f.total); i++ {
		items = append(items, catalog.Video{ID: f.id(i), Title: fmt.Sprintf("Video %d", i)})
	}

	return &catalog.Page{Number: page, Items: items, TotalPages: f.pages, PageSize: f.size}, nil
}

func (f *fakeSource) id(i int) string {
	return fmt.Sprintf("%s-%d", f.slug, i)
}

func (f *fakeSource) all() []string {
	ids := make([]string, f.total)
	for i := range ids {
		ids[i] = f.id(i)
	}
	return ids
}

func (f *fakeSource) gate(page int) chan struct{} {
	f.mu.Lock()
	defer f.mu.Unlock()
	ch := make(chan struct{})
	f.gates[page] = ch
	return ch
}

func (f *fakeSource) failPage(page int, err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err == nil {
		delete(f.fail, page)
		return
	}
	f.fail[page] = err
}

func (f *fakeSource) count(page int) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls[page]
}

func eventually(cond func() bool) bool {
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return true
		}
		time.Sleep(time.Millisecond)
	}
	return false
}
