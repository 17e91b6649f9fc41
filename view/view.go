// Package view defines the JSON documents served over HTTP and printed by the CLI.
package view

import (
	"encoding/json"
	"io"

	"github.com/ghie29/avmango/catalog"
	"github.com/ghie29/avmango/category"
	"github.com/ghie29/avmango/pager"
	"github.com/ghie29/avmango/playback"
	"github.com/samber/lo"
)

// Category describes one navigable category.
type Category struct {
	Slug  string       `json:"slug" jsonschema:"description=Route segment of the category."`
	Label string       `json:"label"`
	Kind  catalog.Kind `json:"kind" jsonschema:"enum=structured,enum=bulk"`
}

// Home is the landing listing.
type Home struct {
	Videos []catalog.Video `json:"videos"`
}

// Listing is one UI page of a category.
type Listing struct {
	Category Category        `json:"category"`
	Cursor   pager.Cursor    `json:"cursor"`
	Items    []catalog.Video `json:"items"`
	Links    []pager.Link    `json:"links"`
	Ads      []category.Ad   `json:"ads,omitempty"`
	// View identifies the pagination session to reuse on the next request.
	View string `json:"view,omitempty" jsonschema:"description=Opaque token scoping pagination state to one browsing session."`
}

// Video is the playback page.
type Video struct {
	Video   *catalog.Playable `json:"video"`
	Related []catalog.Video   `json:"related"`
}

// Search is a merged result list.
type Search struct {
	Term    string           `json:"term"`
	Results []catalog.Tagged `json:"results"`
}

// Categories is the navigation list.
type Categories struct {
	Categories []Category `json:"categories"`
}

// Suggestions lists remembered terms for a prefix.
type Suggestions struct {
	Prefix      string   `json:"prefix"`
	Suggestions []string `json:"suggestions"`
}

// Error kinds.
const (
	KindNotFound          = "not_found"
	KindSourceUnavailable = "source_unavailable"
	KindBadRequest        = "bad_request"
)

// Error is the body of every failed request.
type Error struct {
	Error string `json:"error"`
	Kind  string `json:"kind" jsonschema:"enum=not_found,enum=source_unavailable,enum=bad_request"`
}

// NewCategory describes c.
func NewCategory(c category.Descriptor) Category {
	return Category{Slug: c.Name(), Label: c.Title(), Kind: c.Kind()}
}

// NewCategories describes every category in order.
func NewCategories(all []*category.Category) *Categories {
	return &Categories{
		Categories: lo.Map(all, func(c *category.Category, _ int) Category {
			return NewCategory(c.Descriptor)
		}),
	}
}

// NewListing builds a category page from a reconciler snapshot.
func NewListing(c *category.Category, v pager.View, token string) *Listing {
	l := &Listing{
		Category: NewCategory(c.Descriptor),
		Cursor:   v.Cursor,
		Items:    orEmpty(v.Items),
		Links:    pager.PageLinks(v.Cursor.UIPage, v.Cursor.TotalUIPages),
		View:     token,
	}

	if b, ok := c.Descriptor.(category.Bulk); ok && b.ShowAd {
		l.Ads = b.Ads
	}

	return l
}

// NewVideo wraps a playback result.
func NewVideo(r *playback.Result) *Video {
	return &Video{Video: r.Video, Related: orEmpty(r.Related)}
}

// NewSearch wraps search results.
func NewSearch(term string, results []catalog.Tagged) *Search {
	if results == nil {
		results = []catalog.Tagged{}
	}
	return &Search{Term: term, Results: results}
}

// NewError classifies err.
func NewError(err error) *Error {
	kind := KindBadRequest
	switch {
	case catalog.IsNotFound(err):
		kind = KindNotFound
	case catalog.IsUnavailable(err):
		kind = KindSourceUnavailable
	}
	return &Error{Error: err.Error(), Kind: kind}
}

// Write encodes v as indented JSON.
func Write(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func orEmpty(videos []catalog.Video) []catalog.Video {
	if videos == nil {
		return []catalog.Video{}
	}
	return videos
}
