package open

import (
	"testing"

	"github.com/ghie29/avmango/catalog"
	. "github.com/smartystreets/goconvey/convey"
)

func TestFor(t *testing.T) {
	Convey("Given resolved videos of each media kind", t, func() {
		playable := func(url string, media catalog.MediaKind) *catalog.Playable {
			return &catalog.Playable{VideoURL: url, Media: media}
		}

		Convey("Direct files go to the player", func() {
			target, err := For(playable("https://cdn.example/a.mp4", catalog.MediaDirect), "mpv")
			So(err, ShouldBeNil)
			So(target, ShouldResemble, Target{URL: "https://cdn.example/a.mp4", App: "mpv"})
		})

		Convey("HLS playlists go to the player", func() {
			target, err := For(playable("https://cdn.example/a.m3u8", catalog.MediaHLS), "vlc")
			So(err, ShouldBeNil)
			So(target.App, ShouldEqual, "vlc")
		})

		Convey("Embed pages open in the browser", func() {
			target, err := For(playable("https://embed.example/a", catalog.MediaEmbed), "mpv")
			So(err, ShouldBeNil)
			So(target.App, ShouldBeEmpty)
			So(target.URL, ShouldEqual, "https://embed.example/a")
		})

		Convey("Videos without media cannot be played", func() {
			_, err := For(playable("", catalog.MediaNone), "mpv")
			So(err, ShouldEqual, ErrUnplayable)

			_, err = For(nil, "mpv")
			So(err, ShouldEqual, ErrUnplayable)
		})
	})
}
