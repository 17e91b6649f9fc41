// Package bulk adapts categories of the third-party catalog API to the catalog source contract.
package bulk

import (
	"context"
	"strings"

	"github.com/ghie29/avmango/catalog"
	"github.com/ghie29/avmango/category"
	"github.com/samber/lo"
)

// Source serves one bulk category.
type Source struct {
	client *Client
	desc   category.Bulk
}

var _ catalog.Source = (*Source)(nil)

// New binds a bulk category to a client.
func New(client *Client, desc category.Bulk) *Source {
	return &Source{client: client, desc: desc}
}

func (s *Source) Slug() string       { return s.desc.Name() }
func (s *Source) Label() string      { return s.desc.Title() }
func (s *Source) Kind() catalog.Kind { return catalog.KindBulk }

// Ads returns the banners configured for this category, if it shows any.
func (s *Source) Ads() []category.Ad {
	if !s.desc.ShowAd {
		return nil
	}
	return s.desc.Ads
}

// FetchPage loads one native page and returns the raw response.
func (s *Source) FetchPage(ctx context.Context, page int) (*Response, error) {
	if page < 1 {
		page = 1
	}

	rawURL, err := s.desc.PageURL(page)
	if err != nil {
		return nil, s.unavailable(err)
	}

	resp, err := s.client.Fetch(ctx, rawURL)
	if err != nil {
		return nil, s.unavailable(err)
	}
	return resp, nil
}

func (s *Source) ListPage(ctx context.Context, page int) (*catalog.Page, error) {
	resp, err := s.FetchPage(ctx, page)
	if err != nil {
		return nil, err
	}

	return &catalog.Page{
		Number:     lo.Ternary(page < 1, 1, page),
		Items:      lo.Map(resp.Items, func(it item, _ int) catalog.Video { return it.video() }),
		TotalPages: resp.TotalPages,
		PageSize:   s.client.pageSizeOf(resp),
	}, nil
}

// Lookup probes the first page for an entry matching id, slug or movie code.
func (s *Source) Lookup(ctx context.Context, id string) (*catalog.Playable, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, catalog.ErrNotFound
	}

	resp, err := s.FetchPage(ctx, 1)
	if err != nil {
		return nil, err
	}

	found, ok := lo.Find(resp.Items, func(it item) bool { return it.matches(id) })
	if !ok {
		return nil, catalog.ErrNotFound
	}

	return found.playable(s.Slug()), nil
}

// Search asks the endpoint for term and keeps titles containing it.
func (s *Source) Search(ctx context.Context, term string) ([]catalog.Video, error) {
	term = strings.TrimSpace(term)
	if term == "" {
		return []catalog.Video{}, nil
	}

	rawURL, err := s.desc.SearchURL(term)
	if err != nil {
		return nil, s.unavailable(err)
	}

	resp, err := s.client.Fetch(ctx, rawURL)
	if err != nil {
		return nil, s.unavailable(err)
	}

	needle := strings.ToLower(term)
	return lo.FilterMap(resp.Items, func(it item, _ int) (catalog.Video, bool) {
		v := it.video()
		return v, strings.Contains(strings.ToLower(v.Title), needle)
	}), nil
}

// Related lists entries of the first page other than current.
func (s *Source) Related(ctx context.Context, current *catalog.Playable, limit int) ([]catalog.Video, error) {
	if limit <= 0 {
		return []catalog.Video{}, nil
	}

	page, err := s.ListPage(ctx, 1)
	if err != nil {
		return nil, err
	}

	related := lo.Filter(page.Items, func(v catalog.Video, _ int) bool {
		return current == nil || v.ID != current.ID
	})
	return lo.Slice(related, 0, limit), nil
}

// Walk visits every page of the category in order, pausing between pages.
// A failing first page aborts the walk; later failures are logged and skipped.
func (s *Source) Walk(ctx context.Context, visit func(*catalog.Page) error) error {
	if err := s.client.Wait(ctx); err != nil {
		return err
	}

	first, err := s.ListPage(ctx, 1)
	if err != nil {
		return err
	}
	if err := visit(first); err != nil {
		return err
	}

	for page := 2; page <= first.TotalPages; page++ {
		if err := s.client.Wait(ctx); err != nil {
			return err
		}

		p, err := s.ListPage(ctx, page)
		if err != nil {
			logPageError(s.Slug(), page, err)
			continue
		}

		if err := visit(p); err != nil {
			return err
		}
	}

	return nil
}

func (s *Source) unavailable(err error) error {
	return catalog.Unavailable(s.Slug(), err)
}
