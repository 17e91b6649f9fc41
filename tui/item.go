package tui

import (
	"fmt"

	"github.com/ghie29/avmango/catalog"
	"github.com/ghie29/avmango/category"
	"github.com/ghie29/avmango/icon"
	"github.com/ghie29/avmango/style"
)

// listItem adapts categories and videos to list.Item.
type listItem struct {
	internal any
}

func (t *listItem) Title() string {
	switch e := t.internal.(type) {
	case *category.Category:
		return icon.Get(icon.Folder) + " " + e.Title()
	case catalog.Video:
		return e.Title
	default:
		return t.FilterValue()
	}
}

func (t *listItem) Description() string {
	switch e := t.internal.(type) {
	case *category.Category:
		return style.Faint(string(e.Kind()))
	case catalog.Video:
		return style.Faint(fmt.Sprintf("%s %s  %s", icon.Get(icon.Eye), e.Views, e.ID))
	default:
		return ""
	}
}

func (t *listItem) FilterValue() string {
	switch e := t.internal.(type) {
	case *category.Category:
		return e.Name()
	case catalog.Video:
		return e.Title
	default:
		return ""
	}
}
