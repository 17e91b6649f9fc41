package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/ghie29/avmango/color"
	"github.com/ghie29/avmango/icon"
	"github.com/ghie29/avmango/render"
	"github.com/ghie29/avmango/style"
	"github.com/ghie29/avmango/util"
	"github.com/muesli/reflow/truncate"
	"github.com/muesli/reflow/wrap"
)

var (
	listExtraPaddingStyle = lipgloss.NewStyle().Padding(1, 2, 1, 0)
	paddingStyle          = lipgloss.NewStyle().Padding(1, 2)
)

func (b *statefulBubble) View() string {
	switch b.state {
	case loadingState:
		return b.viewLoading()
	case categoriesState:
		return listExtraPaddingStyle.Render(b.categoriesC.View())
	case listingState:
		return b.viewListing()
	case videoState:
		return b.viewVideo()
	case errorState:
		return b.viewError()
	default:
		return "Unknown state"
	}
}

func (b *statefulBubble) viewLoading() string {
	return b.renderLines(
		true,
		[]string{
			style.Title("Loading"),
			"",
			b.spinnerC.View() + " " + b.progressStatus,
		},
	)
}

func (b *statefulBubble) viewListing() string {
	footer := render.Pagination(b.cursor)
	if b.busy {
		footer += " " + b.spinnerC.View()
	}
	return listExtraPaddingStyle.Render(b.videosC.View() + "\n\n" + footer)
}

func (b *statefulBubble) viewVideo() string {
	if b.current == nil {
		return b.renderLines(true, []string{style.Faint("Nothing selected")})
	}

	status := b.progressStatus
	if b.busy {
		status = b.spinnerC.View() + " " + status
	} else if status != "" {
		status = icon.Get(icon.Play) + " " + style.Fg(color.Purple)(status)
	}

	lines := strings.Split(render.Playable(b.current, b.width), "\n")
	lines = append(lines, "", truncate.StringWithTail(status, uint(util.Max(b.width, 0)), "…"), "", b.relatedC.View())
	return b.renderLines(false, lines)
}

func (b *statefulBubble) viewError() string {
	errorStyle := lipgloss.NewStyle().Foreground(color.Red).Bold(true)
	errorMsg := wrap.String(errorStyle.Render(fmt.Sprint(b.lastError)), b.width)
	return b.renderLines(
		true,
		[]string{
			style.ErrorTitle("Error"),
			"",
			icon.Get(icon.Fail) + " Something went wrong:",
			"",
			errorMsg,
		},
	)
}

func (b *statefulBubble) renderLines(addHelp bool, lines []string) string {
	h := len(lines)
	l := strings.Join(lines, "\n")
	if addHelp {
		if b.height > h {
			l += strings.Repeat("\n", b.height-h)
		}
		l += b.helpC.View(b.keymap)
	}

	return paddingStyle.Render(l)
}
