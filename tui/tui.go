// Package tui is the interactive full-screen browser.
package tui

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/ghie29/avmango/catalog"
	"github.com/ghie29/avmango/category"
	"github.com/ghie29/avmango/playback"
)

// Options tune a browse session.
type Options struct {
	// Category opens its listing straight away when set.
	Category string
	// Play launches a resolved video. Defaults to open.Play.
	Play func(*catalog.Playable) error
}

// Run browses the registry's categories until the user quits.
func Run(ctx context.Context, registry *category.Registry, resolver *playback.Resolver, options *Options) error {
	bubble := newBubble(ctx, registry, resolver, options)
	defer bubble.rec.Close()

	_, err := tea.NewProgram(bubble, tea.WithAltScreen(), tea.WithContext(ctx)).Run()
	return err
}
