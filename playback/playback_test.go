package playback

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/ghie29/avmango/catalog"
	"github.com/ghie29/avmango/catalog/catalogtest"
	. "github.com/smartystreets/goconvey/convey"
)

func sources(s ...*catalogtest.Source) []catalog.Source {
	out := make([]catalog.Source, len(s))
	for i, src := range s {
		out[i] = src
	}
	return out
}

func TestLocate(t *testing.T) {
	ctx := context.Background()

	Convey("Given bulk categories and a structured board", t, func() {
		censored := catalogtest.New("censored", catalog.KindBulk,
			catalog.Video{ID: "42", Title: "Bulk answer"},
			catalog.Video{ID: "shared", Title: "Censored copy"},
		)
		amateur := catalogtest.New("amateur", catalog.KindBulk,
			catalog.Video{ID: "shared", Title: "Amateur copy"},
			catalog.Video{ID: "amateur-only", Title: "Amateur only"},
		)
		korean := catalogtest.New("korean", catalog.KindStructured,
			catalog.Video{ID: "42", Title: "Structured answer"},
			catalog.Video{ID: "kr-1", Title: "Korean one"},
		).Alias("KR-CODE-1", "kr-1")

		r := New(sources(censored, amateur), sources(korean), 8)

		Convey("A bulk match beats a structured one", func() {
			v, src, err := r.Locate(ctx, "42")
			So(err, ShouldBeNil)
			So(v.Title, ShouldEqual, "Bulk answer")
			So(v.Kind, ShouldEqual, catalog.KindBulk)
			So(src.Slug(), ShouldEqual, "censored")
		})

		Convey("Configuration order breaks ties, not arrival order", func() {
			censored.Delay = 30 * time.Millisecond
			v, _, err := r.Locate(ctx, "shared")
			So(err, ShouldBeNil)
			So(v.Category, ShouldEqual, "censored")
		})

		Convey("The structured board is probed when no bulk category matches", func() {
			v, src, err := r.Locate(ctx, "KR-CODE-1")
			So(err, ShouldBeNil)
			So(v.Kind, ShouldEqual, catalog.KindStructured)
			So(v.ID, ShouldEqual, "kr-1")
			So(src.Slug(), ShouldEqual, "korean")
		})

		Convey("No match with healthy sources is not found", func() {
			_, _, err := r.Locate(ctx, "does-not-exist-id")
			So(catalog.IsNotFound(err), ShouldBeTrue)
			So(catalog.IsUnavailable(err), ShouldBeFalse)
		})

		Convey("No match with a failing source is unavailable", func() {
			amateur.Fail = errors.New("502 bad gateway")
			_, _, err := r.Locate(ctx, "does-not-exist-id")
			So(catalog.IsUnavailable(err), ShouldBeTrue)
			So(catalog.IsNotFound(err), ShouldBeFalse)
		})

		Convey("A match still wins when another source fails", func() {
			censored.Fail = errors.New("timeout")
			v, _, err := r.Locate(ctx, "amateur-only")
			So(err, ShouldBeNil)
			So(v.Category, ShouldEqual, "amateur")

			v, _, err = r.Locate(ctx, "kr-1")
			So(err, ShouldBeNil)
			So(v.Category, ShouldEqual, "korean")
		})

		Convey("A blank id is not found without probing", func() {
			_, _, err := r.Locate(ctx, "  ")
			So(catalog.IsNotFound(err), ShouldBeTrue)
			So(censored.Calls("lookup"), ShouldEqual, 0)
		})
	})
}

func TestResolve(t *testing.T) {
	ctx := context.Background()

	Convey("Given a bulk category with many videos", t, func() {
		videos := catalogtest.Videos("censored", 30)
		censored := catalogtest.New("censored", catalog.KindBulk, videos...)

		Convey("Related videos exclude the current one and are capped", func() {
			res, err := New(sources(censored), nil, 10).Resolve(ctx, "censored-3")
			So(err, ShouldBeNil)
			So(res.Video.ID, ShouldEqual, "censored-3")
			So(res.Related, ShouldHaveLength, 10)
			for _, v := range res.Related {
				So(v.ID, ShouldNotEqual, "censored-3")
			}
		})

		Convey("The cap is clamped to 8..12", func() {
			So(New(nil, nil, 3).RelatedLimit(), ShouldEqual, 8)
			So(New(nil, nil, 50).RelatedLimit(), ShouldEqual, 12)

			res, err := New(sources(censored), nil, 50).Resolve(ctx, "censored-0")
			So(err, ShouldBeNil)
			So(res.Related, ShouldHaveLength, 12)
		})

		Convey("A related failure degrades to an empty list", func() {
			censored.RelatedFail = errors.New("boom")
			res, err := New(sources(censored), nil, 8).Resolve(ctx, "censored-1")
			So(err, ShouldBeNil)
			So(res.Video, ShouldNotBeNil)
			So(res.Related, ShouldNotBeNil)
			So(res.Related, ShouldBeEmpty)
		})

		Convey("Resolution errors propagate", func() {
			_, err := New(sources(censored), nil, 8).Resolve(ctx, "nope")
			So(catalog.IsNotFound(err), ShouldBeTrue)
		})
	})
}
