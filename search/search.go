// Package search merges title matches from every source into one tagged result list.
package search

import (
	"context"
	"errors"
	"strings"

	"github.com/ghie29/avmango/catalog"
	"github.com/ghie29/avmango/log"
	"github.com/samber/lo"
	"golang.org/x/sync/errgroup"
)

// Aggregator fans a term out to every source.
type Aggregator struct {
	sources []catalog.Source
	history func(term string) error
}

// Option customizes an Aggregator.
type Option func(*Aggregator)

// WithHistory records every searched term through record.
func WithHistory(record func(term string) error) Option {
	return func(a *Aggregator) {
		a.history = record
	}
}

// New creates an aggregator. Results are concatenated structured sources first,
// then bulk sources, each group in the given order.
func New(structured, bulk []catalog.Source, opts ...Option) *Aggregator {
	a := &Aggregator{sources: append(append([]catalog.Source{}, structured...), bulk...)}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Search returns every title match tagged with its source. An empty term yields nothing.
// A failing source is skipped; only when all of them fail is an error returned.
func (a *Aggregator) Search(ctx context.Context, term string) ([]catalog.Tagged, error) {
	term = strings.TrimSpace(term)
	if term == "" || len(a.sources) == 0 {
		return []catalog.Tagged{}, nil
	}

	if a.history != nil {
		if err := a.history(term); err != nil {
			log.Warnf("remember search term: %v", err)
		}
	}

	found := make([][]catalog.Video, len(a.sources))
	errs := make([]error, len(a.sources))

	var g errgroup.Group
	for i, src := range a.sources {
		g.Go(func() error {
			found[i], errs[i] = src.Search(ctx, term)
			return nil
		})
	}
	_ = g.Wait()

	var (
		results  = make([]catalog.Tagged, 0)
		failures []error
	)

	for i, src := range a.sources {
		if errs[i] != nil {
			log.WithField("category", src.Slug()).Warnf("search %q failed: %v", term, errs[i])
			failures = append(failures, errs[i])
			continue
		}

		for _, v := range found[i] {
			results = append(results, catalog.Tagged{Source: src.Slug(), Video: v})
		}
	}

	if len(failures) == len(a.sources) {
		return nil, catalog.Unavailable("", errors.Join(failures...))
	}

	return lo.UniqBy(results, catalog.Tagged.Key), nil
}
