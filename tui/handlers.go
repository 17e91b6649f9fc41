package tui

import (
	"errors"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/ghie29/avmango/catalog"
	"github.com/ghie29/avmango/category"
	"github.com/ghie29/avmango/pager"
	"github.com/ghie29/avmango/playback"
)

type (
	listingMsg pager.View
	videoMsg   *playback.Result
	playedMsg  struct{ err error }
)

// listed turns a reconciler answer into a message. Superseded answers carry nothing.
func listed(v pager.View, err error) tea.Msg {
	if errors.Is(err, pager.ErrSuperseded) {
		return nil
	}
	if err != nil {
		return err
	}
	return listingMsg(v)
}

func (b *statefulBubble) loadCategory(c *category.Category) tea.Cmd {
	ctx, rec := b.ctx, b.rec
	return func() tea.Msg {
		return listed(rec.Load(ctx, c.Source))
	}
}

func (b *statefulBubble) gotoPage(page int) tea.Cmd {
	ctx, rec := b.ctx, b.rec
	return func() tea.Msg {
		return listed(rec.Goto(ctx, page))
	}
}

func (b *statefulBubble) resolveVideo(id string) tea.Cmd {
	ctx, resolver := b.ctx, b.resolver
	return func() tea.Msg {
		res, err := resolver.Resolve(ctx, id)
		if err != nil {
			return err
		}
		return videoMsg(res)
	}
}

func (b *statefulBubble) playVideo(p *catalog.Playable) tea.Cmd {
	play := b.play
	return func() tea.Msg {
		return playedMsg{err: play(p)}
	}
}

// openCategory shows the loading screen and loads c from UI page 1.
func (b *statefulBubble) openCategory(c *category.Category) tea.Cmd {
	b.selectedCategory = c
	b.videosC.Title = c.Title()
	b.newState(loadingState)
	b.startLoading("Loading " + c.Title())
	return tea.Batch(b.spinnerC.Tick, b.loadCategory(c))
}

// turnPage keeps the listing on screen while the reconciler moves.
func (b *statefulBubble) turnPage(page int) tea.Cmd {
	if page < 1 || page > b.cursor.TotalUIPages || page == b.cursor.UIPage {
		return nil
	}
	b.startLoading("")
	return tea.Batch(b.spinnerC.Tick, b.gotoPage(page))
}

func (b *statefulBubble) openVideo(v catalog.Video) tea.Cmd {
	if b.state == listingState {
		b.newState(loadingState)
	}
	b.startLoading("Resolving " + v.Title)
	return tea.Batch(b.spinnerC.Tick, b.resolveVideo(v.ID))
}

func selected[T any](l list.Model) (T, bool) {
	var zero T
	item, ok := l.SelectedItem().(*listItem)
	if !ok {
		return zero, false
	}
	v, ok := item.internal.(T)
	return v, ok
}
