package bulk

import (
	"strings"

	"github.com/ghie29/avmango/catalog"
	"github.com/ghie29/avmango/constant"
	"github.com/ghie29/avmango/util"
)

func (it *item) routeID() string {
	return util.FirstNonEmpty(string(it.Slug), string(it.ID))
}

func (it *item) title() string {
	return util.FirstNonEmpty(string(it.Title), string(it.Name), string(it.OriginName), constant.NoTitle)
}

// matches reports whether id names this entry by id, slug or movie code.
func (it *item) matches(id string) bool {
	for _, candidate := range []flexString{it.ID, it.Slug, it.MovieCode} {
		if candidate != "" && string(candidate) == id {
			return true
		}
	}
	return false
}

func (it *item) video() catalog.Video {
	return catalog.Video{
		ID:        it.routeID(),
		Title:     it.title(),
		Thumbnail: util.FirstNonEmpty(string(it.PosterURL), string(it.ThumbURL), constant.PlaceholderThumbnail),
		Views:     util.FirstNonEmpty(string(it.VodPlay), string(it.VodHits), constant.NoViews),
	}
}

// media picks the embed link of the primary server, then its HLS link, then any generic video field.
func (it *item) media() (string, catalog.MediaKind) {
	if s, ok := it.Episodes.primary(); ok {
		if s.LinkEmbed != "" {
			return string(s.LinkEmbed), catalog.MediaEmbed
		}
		if s.LinkM3U8 != "" {
			return string(s.LinkM3U8), catalog.MediaHLS
		}
	}

	if u := util.FirstNonEmpty(string(it.VideoURL), string(it.VodPlayURL)); u != "" {
		return u, catalog.DetectMedia(u)
	}

	return "", catalog.MediaNone
}

func (it *item) playable(categorySlug string) *catalog.Playable {
	v := it.video()
	v.Thumbnail = util.FirstNonEmpty(string(it.PosterURL), string(it.ThumbURL), constant.PlaceholderPoster)

	videoURL, media := it.media()

	return &catalog.Playable{
		Video:       v,
		VideoURL:    videoURL,
		Media:       media,
		Kind:        catalog.KindBulk,
		Category:    categorySlug,
		OriginName:  string(it.OriginName),
		Description: util.FirstNonEmpty(string(it.Description), string(it.Content), constant.NoDescription),
		Code:        util.FirstNonEmpty(string(it.MovieCode), string(it.Slug), string(it.ID)),
		Actors:      it.Actor,
		Directors:   it.Director,
		Genres:      it.Category,
		Country:     strings.Join(it.Country, ", "),
		Year:        string(it.Year),
		Quality:     string(it.Quality),
		Status:      string(it.Status),
		ServerName:  string(it.Episodes.ServerName),
	}
}
