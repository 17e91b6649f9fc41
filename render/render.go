// Package render draws listings and playback details for the terminal.
package render

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/ghie29/avmango/catalog"
	"github.com/ghie29/avmango/color"
	"github.com/ghie29/avmango/icon"
	"github.com/ghie29/avmango/pager"
	"github.com/ghie29/avmango/style"
	"github.com/ghie29/avmango/util"
	"github.com/muesli/reflow/truncate"
	"github.com/muesli/reflow/wrap"
)

const (
	cardWidth    = 28
	defaultWidth = 100
	ellipsis     = "…"
)

// Width returns the terminal width, or a sane default when stdout is not a terminal.
func Width() int {
	w, _, err := util.TerminalSize()
	if err != nil || w <= 0 {
		return defaultWidth
	}
	return w
}

// Card renders one video.
func Card(v catalog.Video) string {
	inner := cardWidth - 4

	title := style.Bold(truncate.StringWithTail(v.Title, uint(inner), ellipsis))
	views := style.Faint(fmt.Sprintf("%s %s views", icon.Get(icon.Eye), v.Views))
	id := style.Fg(color.Gray)(truncate.StringWithTail(v.ID, uint(inner), ellipsis))

	return style.Card(cardWidth).Render(lipgloss.JoinVertical(lipgloss.Left, title, views, id))
}

// Grid lays cards out in as many columns as fit in width.
func Grid(videos []catalog.Video, width int) string {
	if len(videos) == 0 {
		return style.Faint("No videos found.")
	}

	columns := util.Max(1, width/(cardWidth+2))

	var rows []string
	for start := 0; start < len(videos); start += columns {
		end := util.Min(start+columns, len(videos))

		cards := make([]string, 0, end-start)
		for _, v := range videos[start:end] {
			cards = append(cards, Card(v))
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, cards...))
	}

	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

// Tagged renders search results with their source.
func Tagged(results []catalog.Tagged, width int) string {
	if len(results) == 0 {
		return style.Faint("No videos found.")
	}

	var b strings.Builder
	for _, r := range results {
		tag := style.Tag(color.New("230"), color.Purple)(r.Source)
		line := fmt.Sprintf("%s %s %s", tag, r.Title, style.Faint(r.ID))
		b.WriteString(truncate.StringWithTail(line, uint(util.Max(width, 20)), ellipsis))
		b.WriteByte('\n')
	}
	return strings.TrimRight(b.String(), "\n")
}

// Pagination renders the pagination bar for a cursor.
func Pagination(c pager.Cursor) string {
	links := pager.PageLinks(c.UIPage, c.TotalUIPages)

	parts := make([]string, 0, len(links)+2)
	parts = append(parts, navLabel(c.UIPage > 1, "‹ Prev"))
	for _, l := range links {
		switch {
		case l.Ellipsis:
			parts = append(parts, ellipsis)
		case l.Current:
			parts = append(parts, style.Tag(color.Black, color.Yellow)(fmt.Sprint(l.Page)))
		default:
			parts = append(parts, fmt.Sprint(l.Page))
		}
	}
	parts = append(parts, navLabel(c.UIPage < c.TotalUIPages, "Next ›"))

	total := fmt.Sprint(c.TotalUIPages)
	if !c.Exact {
		total = "~" + total
	}

	return strings.Join(parts, " ") + style.Faint(fmt.Sprintf("  page %d of %s", c.UIPage, total))
}

func navLabel(enabled bool, label string) string {
	if enabled {
		return label
	}
	return style.Faint(label)
}

// Playable renders the details of a resolved video.
func Playable(p *catalog.Playable, width int) string {
	width = util.Max(width, 40)

	var b strings.Builder
	b.WriteString(style.Title(p.Title))
	b.WriteString("\n")
	if p.OriginName != "" {
		b.WriteString(style.Italic(p.OriginName) + "\n")
	}
	b.WriteString("\n")

	field := func(name, value string) {
		if value == "" {
			return
		}
		b.WriteString(fmt.Sprintf("%s %s\n", style.Faint(fmt.Sprintf("%-10s", name)), value))
	}

	field("Code", p.Code)
	field("Category", p.Category)
	field("Views", p.Views)
	field("Actors", strings.Join(p.Actors, ", "))
	field("Directors", strings.Join(p.Directors, ", "))
	field("Genres", strings.Join(p.Genres, ", "))
	field("Country", p.Country)
	field("Year", p.Year)
	field("Quality", p.Quality)
	field("Status", p.Status)
	field("Server", p.ServerName)

	if p.Playable() {
		field("Media", fmt.Sprintf("%s %s", icon.Get(icon.Play), p.Media))
		field("URL", p.VideoURL)
	} else {
		field("Media", style.Fg(color.Red)("unresolvable"))
	}

	b.WriteString("\n")
	b.WriteString(wrap.String(p.Description, width))

	return b.String()
}
