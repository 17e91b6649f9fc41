// Package playback locates a video across every source and gathers related videos for it.
package playback

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/ghie29/avmango/catalog"
	"github.com/ghie29/avmango/constant"
	"github.com/ghie29/avmango/log"
	"github.com/ghie29/avmango/util"
	"golang.org/x/sync/errgroup"
)

// Result is a resolved video and its related videos.
type Result struct {
	Video   *catalog.Playable `json:"video"`
	Related []catalog.Video   `json:"related"`
}

// Resolver probes bulk categories first, then structured boards, each in configuration order.
type Resolver struct {
	bulk       []catalog.Source
	structured []catalog.Source
	related    int
}

// New creates a resolver. relatedLimit is clamped to the supported bounds.
func New(bulk, structured []catalog.Source, relatedLimit int) *Resolver {
	return &Resolver{
		bulk:       bulk,
		structured: structured,
		related:    util.Clamp(relatedLimit, constant.RelatedMin, constant.RelatedMax),
	}
}

// RelatedLimit is the effective cap on related videos.
func (r *Resolver) RelatedLimit() int {
	return r.related
}

// Resolve finds id and its related videos.
func (r *Resolver) Resolve(ctx context.Context, id string) (*Result, error) {
	video, src, err := r.Locate(ctx, id)
	if err != nil {
		return nil, err
	}

	return &Result{
		Video:   video,
		Related: r.Related(ctx, src, video),
	}, nil
}

type probe struct {
	video *catalog.Playable
	err   error
}

// Locate returns the first source holding id and the record it holds.
//
// Bulk probes run concurrently but the winner is picked by configuration order.
// With no match, the error is NotFound when every source answered and
// SourceUnavailable when any of them failed.
func (r *Resolver) Locate(ctx context.Context, id string) (*catalog.Playable, catalog.Source, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, nil, fmt.Errorf("empty video id: %w", catalog.ErrNotFound)
	}

	probes := make([]probe, len(r.bulk))

	var g errgroup.Group
	for i, src := range r.bulk {
		g.Go(func() error {
			v, err := src.Lookup(ctx, id)
			probes[i] = probe{video: v, err: err}
			return nil
		})
	}
	_ = g.Wait()

	var failures []error
	for i, p := range probes {
		if p.err == nil {
			return p.video, r.bulk[i], nil
		}
		if !catalog.IsNotFound(p.err) {
			log.WithField("category", r.bulk[i].Slug()).Warnf("probe for %q failed: %v", id, p.err)
			failures = append(failures, p.err)
		}
	}

	for _, src := range r.structured {
		v, err := src.Lookup(ctx, id)
		switch {
		case err == nil:
			return v, src, nil
		case catalog.IsNotFound(err):
		default:
			log.WithField("category", src.Slug()).Warnf("lookup for %q failed: %v", id, err)
			failures = append(failures, err)
		}
	}

	if len(failures) > 0 {
		return nil, nil, catalog.Unavailable("", errors.Join(failures...))
	}

	return nil, nil, fmt.Errorf("video %q: %w", id, catalog.ErrNotFound)
}

// Related asks src for videos near current. Failures yield an empty list.
func (r *Resolver) Related(ctx context.Context, src catalog.Source, current *catalog.Playable) []catalog.Video {
	if src == nil {
		return []catalog.Video{}
	}

	related, err := src.Related(ctx, current, r.related)
	if err != nil {
		log.WithField("category", src.Slug()).Warnf("related videos unavailable: %v", err)
		return []catalog.Video{}
	}

	if len(related) > r.related {
		related = related[:r.related]
	}
	if related == nil {
		related = []catalog.Video{}
	}
	return related
}
