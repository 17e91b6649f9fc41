package category

import (
	"context"
	"errors"
	"net/url"
	"testing"

	"github.com/ghie29/avmango/catalog"
	. "github.com/smartystreets/goconvey/convey"
)

type stubSource struct {
	slug string
	kind catalog.Kind
}

func (s *stubSource) Slug() string       { return s.slug }
func (s *stubSource) Label() string      { return s.slug }
func (s *stubSource) Kind() catalog.Kind { return s.kind }
func (s *stubSource) ListPage(context.Context, int) (*catalog.Page, error) {
	return &catalog.Page{Number: 1}, nil
}
func (s *stubSource) Lookup(context.Context, string) (*catalog.Playable, error) {
	return nil, catalog.ErrNotFound
}
func (s *stubSource) Search(context.Context, string) ([]catalog.Video, error) { return nil, nil }
func (s *stubSource) Related(context.Context, *catalog.Playable, int) ([]catalog.Video, error) {
	return nil, nil
}

var stubFactory = Factory{
	Structured: func(d Structured) (catalog.Source, error) {
		return &stubSource{slug: d.Slug, kind: catalog.KindStructured}, nil
	},
	Bulk: func(d Bulk) (catalog.Source, error) {
		return &stubSource{slug: d.Slug, kind: catalog.KindBulk}, nil
	},
}

func TestBuiltins(t *testing.T) {
	Convey("Given the builtin categories", t, func() {
		descs := Builtins("korean", "https://api.example/vod")

		Convey("The board comes first and is structured", func() {
			So(descs[0].Name(), ShouldEqual, "korean")
			So(descs[0].Kind(), ShouldEqual, catalog.KindStructured)
			So(descs[0].Title(), ShouldEqual, "Korean")
		})

		Convey("Bulk endpoints carry the type id", func() {
			censored := descs[1].(Bulk)
			So(censored.EndpointURL, ShouldEqual, "https://api.example/vod?ac=detail&t=1")
			So(censored.ShowAd, ShouldBeTrue)
			So(censored.Ads, ShouldHaveLength, 4)

			english := descs[len(descs)-1].(Bulk)
			So(english.Name(), ShouldEqual, "english-subtitle")
			So(english.EndpointURL, ShouldEndWith, "t=7")
		})

		Convey("Page and search URLs keep the endpoint query", func() {
			b := descs[2].(Bulk)
			raw, err := b.PageURL(3)
			So(err, ShouldBeNil)
			u, _ := url.Parse(raw)
			So(u.Query().Get("t"), ShouldEqual, "2")
			So(u.Query().Get("ac"), ShouldEqual, "detail")
			So(u.Query().Get("page"), ShouldEqual, "3")

			raw, err = b.SearchURL("big mango")
			So(err, ShouldBeNil)
			u, _ = url.Parse(raw)
			So(u.Query().Get("wd"), ShouldEqual, "big mango")
		})

		Convey("Labels fall back to the slug display name", func() {
			So(Bulk{Slug: "chinese-av"}.Title(), ShouldEqual, "Chinese Av")
		})
	})
}

func TestRegistry(t *testing.T) {
	Convey("Given a registry of builtins", t, func() {
		r, err := NewRegistry(Builtins("korean", "https://api.example/vod"), stubFactory)
		So(err, ShouldBeNil)

		Convey("Every slug resolves to one category", func() {
			c, ok := r.Get("uncensored-leaked")
			So(ok, ShouldBeTrue)
			So(c.Kind(), ShouldEqual, catalog.KindBulk)
			So(c.Source.Slug(), ShouldEqual, "uncensored-leaked")

			_, ok = r.Get("nope")
			So(ok, ShouldBeFalse)
		})

		Convey("Bulk sources keep configuration order", func() {
			slugs := []string{}
			for _, s := range r.Sources(catalog.KindBulk) {
				slugs = append(slugs, s.Slug())
			}
			So(slugs, ShouldResemble, []string{
				"censored", "uncensored", "uncensored-leaked", "amateur", "chinese-av", "english-subtitle",
			})
		})

		Convey("Home is the structured board", func() {
			home, ok := r.Home()
			So(ok, ShouldBeTrue)
			So(home.Slug(), ShouldEqual, "korean")
		})

		Convey("All returns a copy", func() {
			all := r.All()
			all[0] = nil
			So(r.All()[0], ShouldNotBeNil)
		})
	})

	Convey("Duplicate slugs are rejected", t, func() {
		_, err := NewRegistry([]Descriptor{Structured{Slug: "a"}, Bulk{Slug: "a"}}, stubFactory)
		So(err, ShouldNotBeNil)
	})

	Convey("Factory failures are reported with the slug", t, func() {
		_, err := NewRegistry([]Descriptor{Bulk{Slug: "x"}}, Factory{
			Bulk: func(Bulk) (catalog.Source, error) { return nil, errors.New("bad endpoint") },
		})
		So(err, ShouldNotBeNil)
		So(err.Error(), ShouldContainSubstring, "category x")
	})
}
