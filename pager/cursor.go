// Package pager presents fixed 24-item UI pages over sources with arbitrary native page sizes.
//
// The math lives in pure functions over State. Reconciler drives them against a live source
// and runs the speculative prefetch of the following source page.
package pager

import (
	"maps"

	"github.com/ghie29/avmango/catalog"
	"github.com/ghie29/avmango/constant"
	"github.com/ghie29/avmango/util"
	"github.com/samber/mo"
)

// Cursor is the position of a view within a category.
type Cursor struct {
	UIPage           int `json:"ui_page"`
	UIPageSize       int `json:"ui_page_size"`
	SourcePage       int `json:"source_page"`
	SourcePageSize   int `json:"source_page_size"`
	SourceTotalPages int `json:"source_total_pages"`
	TotalUIPages     int `json:"total_ui_pages"`
	// Exact is set once the last source page has been seen and TotalUIPages counts real records.
	Exact bool `json:"exact"`
}

// State is the cursor plus the source pages held for it.
type State struct {
	Cursor
	// Resident holds the current source page and, when the window needs it, its predecessors.
	Resident map[int]*catalog.Page
	// Prefetch holds the page after SourcePage once it has arrived.
	Prefetch mo.Option[*catalog.Page]
}

// SourcePageFor maps a UI page to the source page holding its last record.
func SourcePageFor(ui, pageSize, totalPages int) int {
	if pageSize <= 0 {
		return 1
	}
	sp := util.CeilDiv(util.Max(ui, 1)*constant.UIPageSize, pageSize)
	return util.Clamp(sp, 1, util.Max(1, totalPages))
}

// headPageFor maps a UI page to the source page holding its first record.
func headPageFor(ui, pageSize, totalPages int) int {
	if pageSize <= 0 {
		return 1
	}
	hp := (util.Max(ui, 1)-1)*constant.UIPageSize/pageSize + 1
	return util.Clamp(hp, 1, util.Max(1, totalPages))
}

// TotalUIPages estimates the UI page count from the source page count. Never less than 1.
func TotalUIPages(totalSourcePages, pageSize int) int {
	records := util.Max(totalSourcePages, 0) * util.Max(pageSize, 0)
	return util.Max(1, util.CeilDiv(records, constant.UIPageSize))
}

// Begin builds the state for UI page 1 from the first source page.
func Begin(first *catalog.Page) State {
	total := first.TotalPages
	if total <= 0 && !first.Empty() {
		total = 1
	}

	size := first.PageSize
	if size <= 0 {
		size = len(first.Items)
	}

	s := State{
		Cursor: Cursor{
			UIPage:           1,
			UIPageSize:       constant.UIPageSize,
			SourcePage:       1,
			SourcePageSize:   size,
			SourceTotalPages: total,
			TotalUIPages:     TotalUIPages(total, size),
		},
		Resident: map[int]*catalog.Page{1: withNumber(first, 1)},
		Prefetch: mo.None[*catalog.Page](),
	}

	s.refine()
	return s
}

func withNumber(p *catalog.Page, n int) *catalog.Page {
	if p.Number == n {
		return p
	}
	cp := *p
	cp.Number = n
	return &cp
}

// refine replaces the estimate with the real count once the last source page is resident.
func (s *State) refine() {
	if s.SourceTotalPages <= 0 {
		s.TotalUIPages = 1
		s.Exact = true
		return
	}

	last, ok := s.Resident[s.SourceTotalPages]
	if !ok {
		return
	}

	count := (s.SourceTotalPages-1)*s.SourcePageSize + len(last.Items)
	s.TotalUIPages = util.Max(1, util.CeilDiv(count, constant.UIPageSize))
	s.Exact = true
}

// Window returns the records of the current UI page: global indices [(ui-1)*24, ui*24).
func Window(s State) []catalog.Video {
	out := make([]catalog.Video, 0, constant.UIPageSize)
	if s.SourcePageSize <= 0 {
		return out
	}

	start := (s.UIPage - 1) * constant.UIPageSize
	end := start + constant.UIPageSize
	head := headPageFor(s.UIPage, s.SourcePageSize, s.SourceTotalPages)

	for n := head; n <= s.SourcePage; n++ {
		p, ok := s.Resident[n]
		if !ok {
			continue
		}

		base := (n - 1) * s.SourcePageSize
		limit := len(p.Items)
		if n != s.SourceTotalPages {
			// records past the native size would collide with the next page
			limit = util.Min(limit, s.SourcePageSize)
		}

		from, to := util.Max(start-base, 0), util.Min(end-base, limit)
		if from < to {
			out = append(out, p.Items[from:to]...)
		}
	}

	return out
}

// Step is the kind of transition a navigation needs.
type Step int

const (
	// Reject leaves the state alone: the target is out of range.
	Reject Step = iota
	// Slice only moves the window; every page it needs is resident.
	Slice
	// Swap promotes the prefetched next page without I/O.
	Swap
	// Fetch loads the missing pages synchronously.
	Fetch
)

func (s Step) String() string {
	switch s {
	case Reject:
		return "reject"
	case Slice:
		return "slice"
	case Swap:
		return "swap"
	case Fetch:
		return "fetch"
	default:
		return "unknown"
	}
}

// Action is a planned navigation.
type Action struct {
	Step       Step
	UIPage     int
	SourcePage int
	HeadPage   int
	// Missing lists the source pages the window needs that are not resident.
	Missing []int
}

// Plan decides how to reach target from s.
func Plan(s State, target int) Action {
	if target < 1 || target > s.TotalUIPages {
		return Action{Step: Reject}
	}

	a := Action{
		UIPage:     target,
		SourcePage: SourcePageFor(target, s.SourcePageSize, s.SourceTotalPages),
		HeadPage:   headPageFor(target, s.SourcePageSize, s.SourceTotalPages),
	}

	for n := a.HeadPage; n <= a.SourcePage; n++ {
		if _, ok := s.Resident[n]; !ok {
			a.Missing = append(a.Missing, n)
		}
	}

	switch {
	case len(a.Missing) == 0:
		a.Step = Slice
	case a.SourcePage == s.SourcePage+1 && len(a.Missing) == 1 && a.Missing[0] == a.SourcePage && prefetched(s, a.SourcePage):
		a.Step = Swap
	default:
		a.Step = Fetch
	}

	return a
}

func prefetched(s State, page int) bool {
	p, ok := s.Prefetch.Get()
	return ok && p.Number == page
}

// Apply performs a planned action. fetched carries the pages a Fetch loaded.
// The input state is not modified.
func Apply(s State, a Action, fetched ...*catalog.Page) State {
	if a.Step == Reject {
		return s
	}

	resident := maps.Clone(s.Resident)
	if resident == nil {
		resident = make(map[int]*catalog.Page)
	}

	prefetch := s.Prefetch
	switch a.Step {
	case Swap:
		p := prefetch.MustGet()
		resident[p.Number] = p
		prefetch = mo.None[*catalog.Page]()
	case Fetch:
		for _, p := range fetched {
			resident[p.Number] = p
		}
		prefetch = mo.None[*catalog.Page]()
	}

	next := State{Cursor: s.Cursor, Prefetch: prefetch}
	next.UIPage = a.UIPage
	next.SourcePage = a.SourcePage
	next.Resident = make(map[int]*catalog.Page, 2)

	keepFrom := util.Min(a.HeadPage, a.SourcePage-1)
	for n, p := range resident {
		switch {
		case n >= keepFrom && n <= a.SourcePage:
			next.Resident[n] = p
		case n == a.SourcePage+1 && !prefetched(next, n):
			// stepping back keeps the page ahead as if it had been prefetched
			next.Prefetch = mo.Some(p)
		}
	}

	if p, ok := next.Prefetch.Get(); ok && p.Number != next.SourcePage+1 {
		next.Prefetch = mo.None[*catalog.Page]()
	}

	next.refine()
	return next
}

// Wants reports the source page worth prefetching, if any.
func Wants(s State) (int, bool) {
	n := s.SourcePage + 1
	if n > s.SourceTotalPages {
		return 0, false
	}
	if _, ok := s.Resident[n]; ok {
		return 0, false
	}
	if prefetched(s, n) {
		return 0, false
	}
	return n, true
}
