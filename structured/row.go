package structured

import (
	"database/sql"

	"github.com/ghie29/avmango/catalog"
	"github.com/ghie29/avmango/constant"
	"github.com/ghie29/avmango/util"
)

type row struct {
	id          string
	title       sql.NullString
	slug        sql.NullString
	code        sql.NullString
	thumbnail   sql.NullString
	views       sql.NullString
	videoURL    sql.NullString
	hlsURL      sql.NullString
	description sql.NullString
}

// routeID prefers the slug, then the code, then the row id.
func (r row) routeID() string {
	return util.FirstNonEmpty(r.slug.String, r.code.String, r.id)
}

func (r row) video() catalog.Video {
	return catalog.Video{
		ID:        r.routeID(),
		Title:     util.FirstNonEmpty(r.title.String, constant.NoTitle),
		Thumbnail: util.FirstNonEmpty(r.thumbnail.String, constant.PlaceholderThumbnail),
		Views:     util.FirstNonEmpty(r.views.String, constant.NoViews),
	}
}

func (r row) playable() *catalog.Playable {
	v := r.video()
	v.Thumbnail = util.FirstNonEmpty(r.thumbnail.String, constant.PlaceholderPoster)

	p := &catalog.Playable{
		Video:       v,
		Kind:        catalog.KindStructured,
		Description: util.FirstNonEmpty(r.description.String, constant.NoDescription),
		Code:        util.FirstNonEmpty(r.code.String, r.slug.String, r.id),
	}

	switch {
	case r.hlsURL.String != "":
		p.VideoURL = r.hlsURL.String
		p.Media = catalog.MediaHLS
	case r.videoURL.String != "":
		p.VideoURL = r.videoURL.String
		p.Media = catalog.DetectMedia(r.videoURL.String)
	}

	return p
}
