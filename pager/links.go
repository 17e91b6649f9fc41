package pager

import "github.com/ghie29/avmango/util"

// Link is one entry of a pagination bar. Ellipsis entries carry no page.
type Link struct {
	Page     int  `json:"page,omitempty"`
	Ellipsis bool `json:"ellipsis,omitempty"`
	Current  bool `json:"current,omitempty"`
}

const linkDelta = 2

// PageLinks lists every page when there are at most 7, otherwise the first,
// the last and two either side of current, with ellipses over the gaps.
func PageLinks(current, total int) []Link {
	if total < 1 {
		return []Link{}
	}

	page := func(n int) Link {
		return Link{Page: n, Current: n == current}
	}

	var links []Link
	if total <= 7 {
		for i := 1; i <= total; i++ {
			links = append(links, page(i))
		}
		return links
	}

	left := util.Max(2, current-linkDelta)
	right := util.Min(total-1, current+linkDelta)

	links = append(links, page(1))
	if left > 2 {
		links = append(links, Link{Ellipsis: true})
	}
	for i := left; i <= right; i++ {
		links = append(links, page(i))
	}
	if right < total-1 {
		links = append(links, Link{Ellipsis: true})
	}
	links = append(links, page(total))

	return links
}
