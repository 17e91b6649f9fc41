// Package catalogtest provides an in-memory catalog.Source for tests.
package catalogtest

import (
	"context"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/ghie29/avmango/catalog"
	"github.com/samber/lo"
)

// Source serves a fixed listing from memory.
type Source struct {
	Name   string
	Of     catalog.Kind
	Videos []catalog.Video

	// Fail makes every call fail with a SourceUnavailable wrapping it.
	Fail error
	// RelatedFail only breaks Related.
	RelatedFail error
	// Delay is slept before answering Lookup.
	Delay time.Duration

	mu        sync.Mutex
	playables map[string]*catalog.Playable
	calls     map[string]int
}

var _ catalog.Source = (*Source)(nil)

// New creates a source whose listing is videos. Every video can be looked up by its id.
func New(name string, kind catalog.Kind, videos ...catalog.Video) *Source {
	s := &Source{
		Name:      name,
		Of:        kind,
		Videos:    videos,
		playables: make(map[string]*catalog.Playable),
		calls:     make(map[string]int),
	}

	for _, v := range videos {
		s.playables[v.ID] = &catalog.Playable{
			Video:    v,
			VideoURL: "https://media.example/" + name + "/" + v.ID,
			Media:    catalog.MediaDirect,
		}
	}
	return s
}

// Alias makes alt resolve to the record with id.
func (s *Source) Alias(alt, id string) *Source {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.playables[alt] = s.playables[id]
	return s
}

// Calls reports how many times op was invoked.
func (s *Source) Calls(op string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls[op]
}

func (s *Source) hit(op string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls[op]++
	return catalog.Unavailable(s.Name, s.Fail)
}

func (s *Source) Slug() string       { return s.Name }
func (s *Source) Label() string      { return s.Name }
func (s *Source) Kind() catalog.Kind { return s.Of }

func (s *Source) ListPage(_ context.Context, page int) (*catalog.Page, error) {
	if err := s.hit("list"); err != nil {
		return nil, err
	}
	if page > 1 {
		return &catalog.Page{Number: page, TotalPages: 1, PageSize: len(s.Videos)}, nil
	}
	return &catalog.Page{Number: 1, Items: s.Videos, TotalPages: 1, PageSize: len(s.Videos)}, nil
}

func (s *Source) Lookup(ctx context.Context, id string) (*catalog.Playable, error) {
	if s.Delay > 0 {
		select {
		case <-time.After(s.Delay):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}

	if err := s.hit("lookup"); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.playables[id]
	if !ok {
		return nil, catalog.ErrNotFound
	}

	cp := *p
	cp.Kind = s.Of
	cp.Category = s.Name
	return &cp, nil
}

func (s *Source) Search(_ context.Context, term string) ([]catalog.Video, error) {
	if err := s.hit("search"); err != nil {
		return nil, err
	}

	needle := strings.ToLower(strings.TrimSpace(term))
	return lo.Filter(s.Videos, func(v catalog.Video, _ int) bool {
		return needle != "" && strings.Contains(strings.ToLower(v.Title), needle)
	}), nil
}

func (s *Source) Related(_ context.Context, current *catalog.Playable, limit int) ([]catalog.Video, error) {
	if err := s.hit("related"); err != nil {
		return nil, err
	}
	if s.RelatedFail != nil {
		return nil, catalog.Unavailable(s.Name, s.RelatedFail)
	}

	related := lo.Filter(s.Videos, func(v catalog.Video, _ int) bool {
		return current == nil || v.ID != current.ID
	})
	return lo.Slice(related, 0, limit), nil
}

// Videos builds n videos with ids prefix-0 .. prefix-(n-1).
func Videos(prefix string, n int) []catalog.Video {
	return lo.Times(n, func(i int) catalog.Video {
		return catalog.Video{
			ID:    prefix + "-" + strconv.Itoa(i),
			Title: prefix + " video " + strconv.Itoa(i),
			Views: "0",
		}
	})
}
