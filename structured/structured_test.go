package structured

import (
	"context"
	"database/sql"
	"testing"

	"github.com/ghie29/avmango/catalog"
	"github.com/ghie29/avmango/category"
	"github.com/ghie29/avmango/constant"
	"github.com/samber/lo"
	. "github.com/smartystreets/goconvey/convey"
)

func seed(ctx context.Context) *sql.DB {
	db := lo.Must(Open(ctx, DriverSQLite, ":memory:"))
	lo.Must0(Migrate(ctx, db))

	for _, stmt := range []string{
		`INSERT INTO boards (id, slug) VALUES (1, 'korean'), (2, 'other')`,
		`INSERT INTO videos (id, board_id, title, slug, code, thumbnail, views, video_url, hls_url, description, created_at) VALUES
			(1, 1, 'Mango Night', 'mango-night', 'KR-001', NULL, '120', 'https://cdn.example/1.mp4', NULL, NULL, '2024-01-01 00:00:00'),
			(2, 1, 'Summer Rain', NULL, 'KR-002', 'https://img.example/2.jpg', NULL, 'https://cdn.example/2.mp4', 'https://cdn.example/2/index.m3u8', 'Rainy day', '2024-02-01 00:00:00'),
			(3, 1, '100% Pure_Fun', NULL, NULL, NULL, '7', NULL, NULL, NULL, '2024-03-01 00:00:00'),
			(42, 1, NULL, NULL, NULL, NULL, NULL, NULL, NULL, NULL, '2023-12-01 00:00:00'),
			(10, 2, 'Mango Elsewhere', 'mango-elsewhere', NULL, NULL, NULL, NULL, NULL, NULL, '2024-05-01 00:00:00')`,
	} {
		lo.Must(db.ExecContext(ctx, stmt))
	}

	return db
}

func ids(videos []catalog.Video) []string {
	return lo.Map(videos, func(v catalog.Video, _ int) string { return v.ID })
}

func TestSource(t *testing.T) {
	ctx := context.Background()

	Convey("Given a seeded board", t, func() {
		db := seed(ctx)
		defer db.Close()
		src := New(db, DriverSQLite, category.Structured{Slug: "korean", Label: "Korean"})

		So(src.Kind(), ShouldEqual, catalog.KindStructured)
		So(src.Slug(), ShouldEqual, "korean")

		Convey("ListPage returns the whole board newest first", func() {
			page, err := src.ListPage(ctx, 1)
			So(err, ShouldBeNil)
			So(ids(page.Items), ShouldResemble, []string{"3", "KR-002", "mango-night", "42"})
			So(page.TotalPages, ShouldEqual, 1)
			So(page.PageSize, ShouldEqual, 4)

			Convey("Missing fields get placeholders", func() {
				last := page.Items[3]
				So(last.Title, ShouldEqual, constant.NoTitle)
				So(last.Thumbnail, ShouldEqual, constant.PlaceholderThumbnail)
				So(last.Views, ShouldEqual, constant.NoViews)
			})
		})

		Convey("Pages past the first are empty", func() {
			page, err := src.ListPage(ctx, 2)
			So(err, ShouldBeNil)
			So(page.Empty(), ShouldBeTrue)
		})

		Convey("Latest is capped", func() {
			latest, err := src.Latest(ctx, 2)
			So(err, ShouldBeNil)
			So(ids(latest), ShouldResemble, []string{"3", "KR-002"})
		})

		Convey("Lookup by row id", func() {
			p, err := src.Lookup(ctx, "1")
			So(err, ShouldBeNil)
			So(p.ID, ShouldEqual, "mango-night")
			So(p.Media, ShouldEqual, catalog.MediaDirect)
			So(p.VideoURL, ShouldEqual, "https://cdn.example/1.mp4")
			So(p.Code, ShouldEqual, "KR-001")
			So(p.Description, ShouldEqual, constant.NoDescription)
			So(p.Thumbnail, ShouldEqual, constant.PlaceholderPoster)
			So(p.Category, ShouldEqual, "korean")
		})

		Convey("Lookup by slug and by code resolve the same way", func() {
			bySlug, err := src.Lookup(ctx, "mango-night")
			So(err, ShouldBeNil)
			byCode, err := src.Lookup(ctx, "KR-001")
			So(err, ShouldBeNil)
			So(bySlug.ID, ShouldEqual, byCode.ID)
		})

		Convey("HLS is preferred over the direct file", func() {
			p, err := src.Lookup(ctx, "KR-002")
			So(err, ShouldBeNil)
			So(p.Media, ShouldEqual, catalog.MediaHLS)
			So(p.VideoURL, ShouldEqual, "https://cdn.example/2/index.m3u8")
		})

		Convey("A record without media is unresolvable", func() {
			p, err := src.Lookup(ctx, "3")
			So(err, ShouldBeNil)
			So(p.Playable(), ShouldBeFalse)
		})

		Convey("Rows of other boards are not found", func() {
			_, err := src.Lookup(ctx, "mango-elsewhere")
			So(catalog.IsNotFound(err), ShouldBeTrue)
			_, err = src.Lookup(ctx, "does-not-exist-id")
			So(catalog.IsNotFound(err), ShouldBeTrue)
		})

		Convey("Search is case-insensitive and board scoped", func() {
			found, err := src.Search(ctx, "MANGO")
			So(err, ShouldBeNil)
			So(ids(found), ShouldResemble, []string{"mango-night"})
		})

		Convey("Search treats LIKE metacharacters literally", func() {
			found, err := src.Search(ctx, "%")
			So(err, ShouldBeNil)
			So(ids(found), ShouldResemble, []string{"3"})

			found, err = src.Search(ctx, "_")
			So(err, ShouldBeNil)
			So(ids(found), ShouldResemble, []string{"3"})
		})

		Convey("Empty search returns nothing", func() {
			found, err := src.Search(ctx, "  ")
			So(err, ShouldBeNil)
			So(found, ShouldBeEmpty)
		})

		Convey("Related excludes the current video", func() {
			current, err := src.Lookup(ctx, "mango-night")
			So(err, ShouldBeNil)
			related, err := src.Related(ctx, current, 8)
			So(err, ShouldBeNil)
			So(related, ShouldHaveLength, 3)
			So(ids(related), ShouldNotContain, "mango-night")
		})

		Convey("Related honors the limit", func() {
			related, err := src.Related(ctx, nil, 2)
			So(err, ShouldBeNil)
			So(related, ShouldHaveLength, 2)
		})

		Convey("A missing board is reported as unavailable", func() {
			missing := New(db, DriverSQLite, category.Structured{Slug: "nope"})
			_, err := missing.ListPage(ctx, 1)
			So(catalog.IsUnavailable(err), ShouldBeTrue)
		})
	})
}

func TestOpen(t *testing.T) {
	ctx := context.Background()

	Convey("Open validates its inputs", t, func() {
		_, err := Open(ctx, "mysql", "x")
		So(err, ShouldNotBeNil)
		_, err = Open(ctx, DriverSQLite, "")
		So(err, ShouldNotBeNil)
	})

	Convey("Migrate is idempotent", t, func() {
		db := lo.Must(Open(ctx, DriverSQLite, ":memory:"))
		defer db.Close()
		So(Migrate(ctx, db), ShouldBeNil)
		So(Migrate(ctx, db), ShouldBeNil)
	})
}

func TestPlaceholders(t *testing.T) {
	Convey("Placeholders follow the driver bind style", t, func() {
		q := `SELECT 1 FROM videos WHERE board_id = ? AND slug = ?`
		board := category.Structured{Slug: "korean"}
		So(New(nil, DriverSQLite, board).q(q), ShouldEqual, q)
		So(New(nil, DriverPostgres, board).q(q), ShouldEqual, `SELECT 1 FROM videos WHERE board_id = $1 AND slug = $2`)
	})

	Convey("escapeLike", t, func() {
		So(escapeLike(`50%_off\`), ShouldEqual, `50\%\_off\\`)
	})
}
