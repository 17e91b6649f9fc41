package catalog

import "context"

// Source is the capability contract shared by structured and bulk adapters.
type Source interface {
	// Slug is the category slug the source serves.
	Slug() string
	Label() string
	Kind() Kind

	// ListPage returns a native source page, 1-indexed.
	ListPage(ctx context.Context, page int) (*Page, error)

	// Lookup finds a record by any identifier the source knows about.
	// Returns ErrNotFound when the source answered but had no match.
	Lookup(ctx context.Context, id string) (*Playable, error)

	// Search does a case-insensitive substring match on titles.
	Search(ctx context.Context, term string) ([]Video, error)

	// Related lists up to limit other records near current.
	Related(ctx context.Context, current *Playable, limit int) ([]Video, error)
}
