package tui

import (
	"context"
	"time"

	"github.com/charmbracelet/bubbles/help"
	bubblesKey "github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/lipgloss"
	"github.com/ghie29/avmango/catalog"
	"github.com/ghie29/avmango/category"
	"github.com/ghie29/avmango/color"
	"github.com/ghie29/avmango/open"
	"github.com/ghie29/avmango/pager"
	"github.com/ghie29/avmango/playback"
	"github.com/ghie29/avmango/util"
	"github.com/samber/lo"
)

// statefulBubble is the browse model: categories, a paged listing and a video view.
type statefulBubble struct {
	state         state
	statesHistory util.Stack[state]
	// busy drops input while a load, page move or resolve is in flight.
	busy bool

	keymap *statefulKeymap

	spinnerC    spinner.Model
	helpC       help.Model
	categoriesC list.Model
	videosC     list.Model
	relatedC    list.Model

	ctx      context.Context
	registry *category.Registry
	resolver *playback.Resolver
	rec      *pager.Reconciler
	play     func(*catalog.Playable) error
	initial  string

	selectedCategory *category.Category
	cursor           pager.Cursor
	current          *catalog.Playable

	progressStatus string
	lastError      error

	width, height int
}

func (b *statefulBubble) raiseError(err error) {
	b.lastError = err
	b.busy = false
	b.newState(errorState)
}

func (b *statefulBubble) setState(s state) {
	b.state = s
	b.keymap.setState(s)
}

// newState moves to s and remembers where it came from. The loading state is never remembered.
func (b *statefulBubble) newState(s state) {
	if b.state == s {
		return
	}

	if b.state != loadingState {
		b.statesHistory.Push(b.state)
	}

	b.setState(s)
}

func (b *statefulBubble) previousState() {
	if b.statesHistory.Len() > 0 {
		b.setState(b.statesHistory.Pop())
	}
}

func (b *statefulBubble) resize(width, height int) {
	x, y := paddingStyle.GetFrameSize()
	xx, yy := listExtraPaddingStyle.GetFrameSize()

	listWidth := width - xx
	listHeight := height - yy

	b.categoriesC.SetSize(listWidth, listHeight)
	b.categoriesC.Help.Width = listWidth

	// room for the pagination bar
	b.videosC.SetSize(listWidth, util.Max(listHeight-2, 0))
	b.videosC.Help.Width = listWidth

	b.relatedC.SetSize(listWidth, util.Max(listHeight/2, 0))
	b.relatedC.Help.Width = listWidth

	b.width = width - x
	b.height = height - y
	b.helpC.Width = listWidth
}

func (b *statefulBubble) startLoading(status string) {
	b.busy = true
	b.progressStatus = status
}

func (b *statefulBubble) stopLoading() {
	b.busy = false
	b.progressStatus = ""
}

func newBubble(ctx context.Context, registry *category.Registry, resolver *playback.Resolver, options *Options) *statefulBubble {
	bubble := &statefulBubble{
		statesHistory: util.Stack[state]{},
		keymap:        newStatefulKeymap(),
		ctx:           ctx,
		registry:      registry,
		resolver:      resolver,
		rec:           pager.NewReconciler(),
		play:          open.Play,
		initial:       options.Category,
	}
	if options.Play != nil {
		bubble.play = options.Play
	}

	makeList := func(title string, titleColor lipgloss.Color) list.Model {
		delegate := list.NewDefaultDelegate()
		delegate.Styles.SelectedTitle = lipgloss.NewStyle().
			Border(lipgloss.ThickBorder(), false, false, false, true).
			BorderForeground(color.Pink).
			Foreground(color.Pink).
			Padding(0, 0, 0, 1)
		delegate.Styles.SelectedDesc = delegate.Styles.SelectedTitle

		listC := list.New([]list.Item{}, delegate, 0, 0)
		listC.KeyMap = bubble.keymap.forList()
		listC.AdditionalShortHelpKeys = bubble.keymap.ShortHelp
		listC.AdditionalFullHelpKeys = func() []bubblesKey.Binding {
			return bubble.keymap.FullHelp()[0]
		}
		listC.Title = title
		listC.Styles.Title = lipgloss.NewStyle().Foreground(color.New("230")).Background(titleColor).Padding(0, 1)
		listC.Styles.NoItems = paddingStyle
		listC.StatusMessageLifetime = time.Second * 3
		listC.SetFilteringEnabled(false)
		listC.SetShowStatusBar(false)

		return listC
	}

	bubble.helpC = help.New()

	bubble.spinnerC = spinner.New()
	bubble.spinnerC.Spinner = spinner.Dot
	bubble.spinnerC.Style = lipgloss.NewStyle().Foreground(color.Pink)

	bubble.categoriesC = makeList("Categories", color.Purple)
	bubble.categoriesC.SetStatusBarItemName("category", "categories")
	bubble.categoriesC.SetItems(lo.Map(registry.All(), func(c *category.Category, _ int) list.Item {
		return &listItem{internal: c}
	}))

	bubble.videosC = makeList("Videos", color.Blue)
	bubble.videosC.SetStatusBarItemName("video", "videos")

	bubble.relatedC = makeList("Related", color.Cyan)
	bubble.relatedC.SetStatusBarItemName("video", "videos")

	bubble.setState(categoriesState)

	if w, h, err := util.TerminalSize(); err == nil {
		bubble.resize(w, h)
	}

	return bubble
}
