// Package category holds the static category descriptors and binds them to source adapters.
package category

import (
	"fmt"
	"net/url"
	"strconv"

	"github.com/ghie29/avmango/catalog"
	"github.com/ghie29/avmango/util"
)

// Descriptor is one of Structured or Bulk.
type Descriptor interface {
	// Name is the route slug.
	Name() string
	// Title is the human label.
	Title() string
	Kind() catalog.Kind
}

// Ad is a banner shown on a bulk category listing.
type Ad struct {
	Image string `json:"image"`
	Link  string `json:"link"`
}

// Structured is a board on the relational backend.
type Structured struct {
	Slug  string
	Label string
}

func (s Structured) Name() string      { return s.Slug }
func (s Structured) Kind() catalog.Kind { return catalog.KindStructured }

func (s Structured) Title() string {
	if s.Label != "" {
		return s.Label
	}
	return util.DisplayName(s.Slug)
}

// Bulk is a category of the bulk catalog API.
type Bulk struct {
	Slug        string
	Label       string
	EndpointURL string
	ShowAd      bool
	Ads         []Ad
}

func (b Bulk) Name() string      { return b.Slug }
func (b Bulk) Kind() catalog.Kind { return catalog.KindBulk }

func (b Bulk) Title() string {
	if b.Label != "" {
		return b.Label
	}
	return util.DisplayName(b.Slug)
}

// PageURL appends the page parameter to the endpoint.
func (b Bulk) PageURL(page int) (string, error) {
	return withQuery(b.EndpointURL, "page", strconv.Itoa(page))
}

// SearchURL appends the keyword parameter to the endpoint.
func (b Bulk) SearchURL(term string) (string, error) {
	return withQuery(b.EndpointURL, "wd", term)
}

func withQuery(endpoint, k, v string) (string, error) {
	u, err := url.Parse(endpoint)
	if err != nil {
		return "", fmt.Errorf("endpoint %q: %w", endpoint, err)
	}

	q := u.Query()
	q.Set(k, v)
	u.RawQuery = q.Encode()
	return u.String(), nil
}

// BulkEndpoint builds the detail listing URL for a bulk type id.
func BulkEndpoint(base string, typeID int) string {
	return fmt.Sprintf("%s?ac=detail&t=%d", base, typeID)
}

var promo = []Ad{
	{Image: "https://ggonggane.com/storage/banner-image/20241018-1729178186610724.jpg", Link: "https://t.me/csghie29"},
	{Image: "https://ggonggane.com/storage/banner-image/20241018-1729178186610724.jpg", Link: "https://t.me/csghie29"},
	{Image: "https://ggonggane.com/storage/banner-image/20250530-1748596600489363.jpg", Link: "https://t.me/csghie29"},
	{Image: "https://ggonggane.com/storage/banner-image/20250530-1748596600489363.jpg", Link: "https://t.me/csghie29"},
}

// Builtins returns the category list in navigation order.
func Builtins(board, bulkBase string) []Descriptor {
	bulk := func(slug, label string, t int) Bulk {
		return Bulk{Slug: slug, Label: label, EndpointURL: BulkEndpoint(bulkBase, t)}
	}

	censored := bulk("censored", "Censored", 1)
	censored.ShowAd = true
	censored.Ads = promo

	return []Descriptor{
		Structured{Slug: board, Label: util.DisplayName(board)},
		censored,
		bulk("uncensored", "Uncensored", 2),
		bulk("uncensored-leaked", "Uncensored Leaked", 3),
		bulk("amateur", "Amateur", 4),
		bulk("chinese-av", "Chinese AV", 5),
		bulk("english-subtitle", "English Subtitle", 7),
	}
}
