package render

import (
	"strings"
	"testing"

	"github.com/ghie29/avmango/catalog"
	"github.com/ghie29/avmango/pager"
	. "github.com/smartystreets/goconvey/convey"
)

func videos(n int) []catalog.Video {
	out := make([]catalog.Video, n)
	for i := range out {
		out[i] = catalog.Video{ID: "id" + string(rune('a'+i)), Title: "Title " + string(rune('A'+i)), Views: "10"}
	}
	return out
}

func TestCard(t *testing.T) {
	Convey("Given a video with a long title", t, func() {
		v := catalog.Video{ID: "abc", Title: strings.Repeat("long title ", 10), Views: "42"}

		Convey("The card truncates it and shows the views", func() {
			out := Card(v)
			So(out, ShouldContainSubstring, "…")
			So(out, ShouldContainSubstring, "42 views")
			So(out, ShouldContainSubstring, "abc")
		})
	})
}

func TestGrid(t *testing.T) {
	Convey("Given five videos", t, func() {
		items := videos(5)

		Convey("Every card is drawn", func() {
			out := Grid(items, 100)
			So(strings.Count(out, "╭"), ShouldEqual, 5)
			for _, v := range items {
				So(out, ShouldContainSubstring, v.Title)
			}
		})

		Convey("A narrow terminal still gets one column", func() {
			out := Grid(items, 10)
			So(strings.Count(out, "╭"), ShouldEqual, 5)
		})
	})

	Convey("An empty listing says so", t, func() {
		So(Grid(nil, 80), ShouldContainSubstring, "No videos found")
		So(Tagged(nil, 80), ShouldContainSubstring, "No videos found")
	})
}

func TestTagged(t *testing.T) {
	Convey("Search results carry their source", t, func() {
		out := Tagged([]catalog.Tagged{
			{Source: "korean", Video: catalog.Video{ID: "1", Title: "First"}},
			{Source: "censored", Video: catalog.Video{ID: "2", Title: "Second"}},
		}, 80)

		lines := strings.Split(out, "\n")
		So(lines, ShouldHaveLength, 2)
		So(lines[0], ShouldContainSubstring, "korean")
		So(lines[1], ShouldContainSubstring, "Second")
	})
}

func TestPagination(t *testing.T) {
	Convey("Given a cursor deep into a long listing", t, func() {
		out := Pagination(pager.Cursor{UIPage: 10, TotalUIPages: 42, Exact: true})

		So(out, ShouldContainSubstring, "‹ Prev")
		So(out, ShouldContainSubstring, "Next ›")
		So(out, ShouldContainSubstring, "…")
		So(out, ShouldContainSubstring, "page 10 of 42")
	})

	Convey("An estimated total is marked", t, func() {
		out := Pagination(pager.Cursor{UIPage: 1, TotalUIPages: 3})
		So(out, ShouldContainSubstring, "of ~3")
	})
}

func TestPlayable(t *testing.T) {
	Convey("Given a resolved video", t, func() {
		p := &catalog.Playable{
			Video:       catalog.Video{ID: "abc-123", Title: "Some video", Views: "7"},
			VideoURL:    "https://cdn.example/abc.m3u8",
			Media:       catalog.MediaHLS,
			Code:        "ABC-123",
			Actors:      []string{"One", "Two"},
			Description: strings.Repeat("word ", 40),
		}

		Convey("Its details are listed", func() {
			out := Playable(p, 60)
			So(out, ShouldContainSubstring, "Some video")
			So(out, ShouldContainSubstring, "ABC-123")
			So(out, ShouldContainSubstring, "One, Two")
			So(out, ShouldContainSubstring, p.VideoURL)
			So(out, ShouldNotContainSubstring, "Directors")
		})

		Convey("Without a media URL it is flagged", func() {
			p.VideoURL = ""
			p.Media = catalog.MediaNone
			So(Playable(p, 60), ShouldContainSubstring, "unresolvable")
		})
	})
}
