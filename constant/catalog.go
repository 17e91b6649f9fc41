package constant

import "time"

// UIPageSize is the number of video cards shown on one UI page, independent of any source page size.
const UIPageSize = 24

// BulkSourcePageSize is the nominal number of items the bulk catalog API returns per page.
const BulkSourcePageSize = 1000

// BulkPageDelay is the courtesy pause between consecutive pages when walking a whole bulk listing.
const BulkPageDelay = 300 * time.Millisecond

// Related video bounds for the playback page.
const (
	RelatedMin = 8
	RelatedMax = 12
)

// HomeLimit is the number of structured videos shown on the home view.
const HomeLimit = 8

// MaxViews bounds the category view sessions a server keeps.
const MaxViews = 256

// Fallback values used when a source omits a field.
const (
	PlaceholderThumbnail = "https://via.placeholder.com/320x180"
	PlaceholderPoster    = "https://via.placeholder.com/640x360"
	NoTitle              = "No Title"
	NoDescription        = "No description available."
	NoViews              = "0"
)
