package tui

import (
	bubblesKey "github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/ghie29/avmango/catalog"
	"github.com/ghie29/avmango/category"
	"github.com/ghie29/avmango/log"
	"github.com/ghie29/avmango/util"
	"github.com/samber/lo"
)

func (b *statefulBubble) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case error:
		// the user walked away from whatever failed
		if !b.busy {
			log.Warnf("dropping late error: %v", msg)
			return b, nil
		}
		b.raiseError(msg)
		return b, nil
	case playedMsg:
		b.progressStatus = ""
		if msg.err != nil {
			b.raiseError(msg.err)
		}
		return b, nil
	case spinner.TickMsg:
		if !b.busy {
			return b, nil
		}
		var cmd tea.Cmd
		b.spinnerC, cmd = b.spinnerC.Update(msg)
		return b, cmd
	case tea.WindowSizeMsg:
		b.resize(msg.Width, msg.Height)
		return b, nil
	case tea.KeyMsg:
		if bubblesKey.Matches(msg, b.keymap.forceQuit) {
			return b, tea.Quit
		}

		if bubblesKey.Matches(msg, b.keymap.back) && b.state != categoriesState {
			b.stopLoading()
			b.previousState()
			return b, nil
		}

		if b.busy && b.state != errorState {
			return b, nil
		}
	}

	switch b.state {
	case loadingState:
		return b.updateLoading(msg)
	case categoriesState:
		return b.updateCategories(msg)
	case listingState:
		return b.updateListing(msg)
	case videoState:
		return b.updateVideo(msg)
	case errorState:
		return b.updateError(msg)
	}

	return b, nil
}

func (b *statefulBubble) updateLoading(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case listingMsg:
		b.showListing(msg)
		b.newState(listingState)
	case videoMsg:
		b.showVideo(msg)
		b.newState(videoState)
	}

	return b, nil
}

func (b *statefulBubble) updateCategories(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok && bubblesKey.Matches(msg, b.keymap.confirm) {
		if c, ok := selected[*category.Category](b.categoriesC); ok {
			return b, b.openCategory(c)
		}
		return b, nil
	}

	var cmd tea.Cmd
	b.categoriesC, cmd = b.categoriesC.Update(msg)
	return b, cmd
}

func (b *statefulBubble) updateListing(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case listingMsg:
		b.showListing(msg)
		return b, nil
	case tea.KeyMsg:
		switch {
		case bubblesKey.Matches(msg, b.keymap.nextPage):
			return b, b.turnPage(b.cursor.UIPage + 1)
		case bubblesKey.Matches(msg, b.keymap.prevPage):
			return b, b.turnPage(b.cursor.UIPage - 1)
		case bubblesKey.Matches(msg, b.keymap.confirm):
			if v, ok := selected[catalog.Video](b.videosC); ok {
				return b, b.openVideo(v)
			}
			return b, nil
		}
	}

	var cmd tea.Cmd
	b.videosC, cmd = b.videosC.Update(msg)
	return b, cmd
}

func (b *statefulBubble) updateVideo(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case videoMsg:
		b.showVideo(msg)
		return b, nil
	case tea.KeyMsg:
		switch {
		case bubblesKey.Matches(msg, b.keymap.play):
			if b.current == nil {
				return b, nil
			}
			b.progressStatus = "Playing " + b.current.Title
			return b, b.playVideo(b.current)
		case bubblesKey.Matches(msg, b.keymap.confirm):
			if v, ok := selected[catalog.Video](b.relatedC); ok {
				return b, b.openVideo(v)
			}
			return b, nil
		}
	}

	var cmd tea.Cmd
	b.relatedC, cmd = b.relatedC.Update(msg)
	return b, cmd
}

func (b *statefulBubble) updateError(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok && bubblesKey.Matches(msg, b.keymap.quit) {
		return b, tea.Quit
	}
	return b, nil
}

func (b *statefulBubble) showListing(v listingMsg) {
	b.stopLoading()
	b.cursor = v.Cursor
	b.videosC.SetItems(lo.Map(v.Items, func(video catalog.Video, _ int) list.Item {
		return &listItem{internal: video}
	}))
	b.videosC.ResetSelected()
	if b.selectedCategory != nil {
		b.videosC.Title = b.selectedCategory.Title()
	}
	log.Debugf("browse: page %d of %d", v.Cursor.UIPage, v.Cursor.TotalUIPages)
}

func (b *statefulBubble) showVideo(res videoMsg) {
	b.stopLoading()
	b.current = res.Video
	b.relatedC.SetItems(lo.Map(res.Related, func(video catalog.Video, _ int) list.Item {
		return &listItem{internal: video}
	}))
	b.relatedC.ResetSelected()
	b.relatedC.Title = "Related " + util.Quantify(len(res.Related), "video", "videos")
}
