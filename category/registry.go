package category

import (
	"fmt"

	"github.com/ghie29/avmango/catalog"
	"github.com/samber/lo"
	"golang.org/x/exp/slices"
)

// Category is a descriptor bound to the adapter serving it.
type Category struct {
	Descriptor
	Source catalog.Source
}

// Factory creates adapters for each descriptor variant.
type Factory struct {
	Structured func(Structured) (catalog.Source, error)
	Bulk       func(Bulk) (catalog.Source, error)
}

// Registry is the immutable slug to category mapping, in configuration order.
type Registry struct {
	ordered []*Category
	bySlug  map[string]*Category
}

// NewRegistry binds every descriptor through factory. Duplicate slugs are rejected.
func NewRegistry(descriptors []Descriptor, factory Factory) (*Registry, error) {
	r := &Registry{bySlug: make(map[string]*Category, len(descriptors))}

	for _, d := range descriptors {
		if d.Name() == "" {
			return nil, fmt.Errorf("category with empty slug")
		}
		if _, ok := r.bySlug[d.Name()]; ok {
			return nil, fmt.Errorf("duplicate category slug %q", d.Name())
		}

		var (
			src catalog.Source
			err error
		)

		switch d := d.(type) {
		case Structured:
			if factory.Structured == nil {
				return nil, fmt.Errorf("no structured adapter for %q", d.Slug)
			}
			src, err = factory.Structured(d)
		case Bulk:
			if factory.Bulk == nil {
				return nil, fmt.Errorf("no bulk adapter for %q", d.Slug)
			}
			src, err = factory.Bulk(d)
		default:
			err = fmt.Errorf("unknown descriptor %T", d)
		}

		if err != nil {
			return nil, fmt.Errorf("category %s: %w", d.Name(), err)
		}

		c := &Category{Descriptor: d, Source: src}
		r.ordered = append(r.ordered, c)
		r.bySlug[d.Name()] = c
	}

	return r, nil
}

// Get looks up a category by slug.
func (r *Registry) Get(slug string) (*Category, bool) {
	c, ok := r.bySlug[slug]
	return c, ok
}

// All returns every category in configuration order.
func (r *Registry) All() []*Category {
	return slices.Clone(r.ordered)
}

// OfKind returns categories of one kind in configuration order.
func (r *Registry) OfKind(kind catalog.Kind) []*Category {
	return lo.Filter(r.ordered, func(c *Category, _ int) bool {
		return c.Kind() == kind
	})
}

// Sources returns the adapters of the given kind in configuration order.
func (r *Registry) Sources(kind catalog.Kind) []catalog.Source {
	return lo.Map(r.OfKind(kind), func(c *Category, _ int) catalog.Source {
		return c.Source
	})
}

// Home returns the first structured source, the one the home listing draws from.
func (r *Registry) Home() (catalog.Source, bool) {
	structured := r.Sources(catalog.KindStructured)
	if len(structured) == 0 {
		return nil, false
	}
	return structured[0], true
}
