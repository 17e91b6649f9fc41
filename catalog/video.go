// Package catalog defines the normalized records every source produces and the contract sources implement.
package catalog

import (
	"fmt"
	"strings"
)

// Kind tags which family of source a record came from.
type Kind string

const (
	KindStructured Kind = "structured"
	KindBulk       Kind = "bulk"
)

// MediaKind tells a player how to treat Playable.VideoURL.
type MediaKind string

const (
	MediaDirect MediaKind = "direct"
	MediaHLS    MediaKind = "hls"
	MediaEmbed  MediaKind = "embed"
	// MediaNone marks a record whose media could not be resolved.
	MediaNone MediaKind = ""
)

// Video is the card-level record shown in every listing.
type Video struct {
	// ID is route safe. Sources prefer a slug or code over an opaque id.
	ID        string `json:"id" jsonschema:"description=Route-safe identifier"`
	Title     string `json:"title"`
	Thumbnail string `json:"thumbnail"`
	Views     string `json:"views"`
}

// Playable is a resolved video with everything needed to play and describe it.
type Playable struct {
	Video

	VideoURL string    `json:"video_url"`
	Media    MediaKind `json:"media" jsonschema:"enum=direct,enum=hls,enum=embed,enum="`
	Kind     Kind      `json:"kind" jsonschema:"enum=structured,enum=bulk"`
	Category string    `json:"category"`

	OriginName  string   `json:"origin_name,omitempty"`
	Description string   `json:"description"`
	Code        string   `json:"code"`
	Actors      []string `json:"actors,omitempty"`
	Directors   []string `json:"directors,omitempty"`
	Genres      []string `json:"genres,omitempty"`
	Country     string   `json:"country,omitempty"`
	Year        string   `json:"year,omitempty"`
	Quality     string   `json:"quality,omitempty"`
	Status      string   `json:"status,omitempty"`
	ServerName  string   `json:"server_name,omitempty"`
}

// Playable reports whether a media URL was resolved.
func (p *Playable) Playable() bool {
	return p.VideoURL != "" && p.Media != MediaNone
}

func (p *Playable) String() string {
	return fmt.Sprintf("%s [%s/%s]", p.Title, p.Kind, p.Category)
}

// Page is one native page of a source.
type Page struct {
	Number     int     `json:"page"`
	Items      []Video `json:"items"`
	TotalPages int     `json:"total_pages"`
	// PageSize is the native page size the source reports or implies.
	PageSize int `json:"page_size"`
}

// Empty reports whether the page holds no records.
func (p *Page) Empty() bool {
	return len(p.Items) == 0
}

// Tagged is a search hit carrying the slug of the source it came from.
type Tagged struct {
	Source string `json:"source"`
	Video
}

// Key is unique across sources even when ids collide.
func (t Tagged) Key() string {
	return t.Source + "-" + t.ID
}

// DetectMedia classifies a stream URL that is not an embed.
func DetectMedia(rawURL string) MediaKind {
	if rawURL == "" {
		return MediaNone
	}

	path := rawURL
	if i := strings.IndexAny(path, "?#"); i >= 0 {
		path = path[:i]
	}

	if strings.HasSuffix(strings.ToLower(path), ".m3u8") {
		return MediaHLS
	}
	return MediaDirect
}
