package tui

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/ghie29/avmango/catalog"
)

// Init opens the requested category, if any. Otherwise the category list is shown.
func (b *statefulBubble) Init() tea.Cmd {
	name := b.initial
	if name == "" {
		return nil
	}

	c, ok := b.registry.Get(name)
	if !ok {
		b.raiseError(fmt.Errorf("category %q: %w", name, catalog.ErrNotFound))
		return nil
	}

	return b.openCategory(c)
}
