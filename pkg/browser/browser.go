package browser

import (
	"context"
	"fmt"

	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/filetug/dirnav/pkg/chroma2tcell"
	"github.com/filetug/dirnav/pkg/dirnav"
	"github.com/filetug/dirnav/pkg/dnsettings"
	"github.com/filetug/dirnav/pkg/files"
	"github.com/filetug/dirnav/pkg/logging"
	"github.com/filetug/dirnav/pkg/sneatv/crumbs"
	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"
	"github.com/rs/zerolog"
	"gopkg.in/yaml.v3"
)

// Navigator is what the browser needs from *dirnav.Navigator.
type Navigator interface {
	State() dirnav.State
	EnterEntry(ctx context.Context, generation uint64, index int) error
	GoUp(ctx context.Context)
	ClearError()
	Describe(ctx context.Context, path string) dirnav.EntryInfo
	ChildCount(ctx context.Context, path string) (int, error)
	Store() files.Store
}

var _ Navigator = (*dirnav.Navigator)(nil)

// view is a navigator snapshot plus everything stat-ed for display.
type view struct {
	state    dirnav.State
	entries  []dirnav.EntryInfo
	children map[string]int
}

// Browser shows a Navigator in a terminal. Navigator calls run on a single
// worker goroutine; their results are applied on the UI goroutine.
type Browser struct {
	*tview.Flex
	app      App
	nav      Navigator
	settings *dnsettings.Settings
	log      zerolog.Logger

	header    *tview.TextView
	crumbs    *crumbs.Breadcrumbs
	banner    *tview.TextView
	body      *tview.Flex
	table     *tview.Table
	inspector *tview.TextView
	menu      *menuBar

	dispatch func(j job)
	cancel   context.CancelFunc

	// Owned by the UI goroutine.
	view          view
	showInspector bool
}

type Option func(b *Browser)

func WithLogger(logger zerolog.Logger) Option {
	return func(b *Browser) {
		b.log = logger
	}
}

// NewBrowser builds the layout and queues the first refresh.
func NewBrowser(app App, nav Navigator, settings *dnsettings.Settings, o ...Option) *Browser {
	if settings == nil {
		settings = dnsettings.NewDefaultSettings()
	}
	b := &Browser{
		Flex:     tview.NewFlex().SetDirection(tview.FlexRow),
		app:      app,
		nav:      nav,
		settings: settings,
		log:      logging.GetLogger("browser"),
		cancel:   func() {},
	}
	for _, opt := range o {
		opt(b)
	}
	if b.dispatch == nil {
		ctx, cancel := context.WithCancel(context.Background())
		w := startWorker(ctx)
		b.cancel = cancel
		b.dispatch = func(j job) {
			if err := w.submit(j); err != nil {
				b.log.Warn().Err(err).Msg("browser closed, action dropped")
			}
		}
	}

	b.header = tview.NewTextView().SetDynamicColors(true).SetTextColor(Style.HeaderColor)

	b.crumbs = crumbs.NewBreadcrumbs(nil, crumbs.WithSeparator(" / "))

	b.banner = tview.NewTextView().SetDynamicColors(true).SetTextColor(Style.ErrorColor)
	b.banner.SetMouseCapture(func(action tview.MouseAction, event *tcell.EventMouse) (tview.MouseAction, *tcell.EventMouse) {
		if action == tview.MouseLeftClick {
			b.ClearError()
			return action, nil
		}
		return action, event
	})

	b.table = tview.NewTable().SetSelectable(true, false)
	b.table.SetSelectedFunc(func(row, _ int) {
		b.openRow(row)
	})
	b.table.SetInputCapture(b.tableInputCapture)

	b.inspector = tview.NewTextView().SetDynamicColors(true).SetWrap(false)
	b.inspector.SetBorder(true).SetTitle(" State ")

	b.body = tview.NewFlex().
		AddItem(b.table, 0, 2, true).
		AddItem(b.inspector, 0, 0, false)

	b.menu = newMenuBar(
		[]MenuItem{
			{Title: "Enter Open", HotKeys: []string{"Enter"}, Action: b.openSelected},
			{Title: "⌫ Up", HotKeys: []string{"⌫"}, Action: b.GoUp},
			{Title: "Esc Dismiss", HotKeys: []string{"Esc"}, Action: b.ClearError},
			{Title: "F2 State", HotKeys: []string{"F2"}, Action: b.ToggleInspector},
		},
		[]MenuItem{
			{Title: "Exit", HotKeys: []string{"x"}, Action: b.app.Stop},
		},
	)

	b.crumbs.SetNextFocusTarget(b.table)
	b.crumbs.SetPrevFocusTarget(b.table)

	b.AddItem(b.header, 1, 0, false).
		AddItem(b.crumbs, 1, 0, false).
		AddItem(b.banner, 0, 0, false).
		AddItem(b.body, 0, 1, true).
		AddItem(b.menu, 1, 0, false)
	b.SetInputCapture(b.globalInputCapture)

	b.Refresh()
	return b
}

func (b *Browser) App() App {
	return b.app
}

// Close stops the worker. Queued actions are dropped.
func (b *Browser) Close() {
	b.cancel()
}

// Refresh re-reads the navigator state without changing it.
func (b *Browser) Refresh() {
	b.perform("refresh", nil)
}

// Enter opens the entry at index of the listing currently on screen.
func (b *Browser) Enter(index int) {
	generation := b.view.state.Generation
	b.perform("enter", func(ctx context.Context) error {
		return b.nav.EnterEntry(ctx, generation, index)
	})
}

func (b *Browser) GoUp() {
	b.perform("up", func(ctx context.Context) error {
		b.nav.GoUp(ctx)
		return nil
	})
}

// GoUpTo pops until the stack is depth deep or a listing fails.
func (b *Browser) GoUpTo(depth int) {
	b.perform("up_to", func(ctx context.Context) error {
		for b.nav.State().Depth() > max(depth, 1) {
			b.nav.GoUp(ctx)
			if b.nav.State().HasError() {
				return nil
			}
		}
		return nil
	})
}

func (b *Browser) ClearError() {
	b.perform("clear_error", func(context.Context) error {
		b.nav.ClearError()
		return nil
	})
}

func (b *Browser) ToggleInspector() {
	b.showInspector = !b.showInspector
	if b.showInspector {
		b.body.ResizeItem(b.inspector, 0, 1)
	} else {
		b.body.ResizeItem(b.inspector, 0, 0)
	}
	b.renderInspector()
}

func (b *Browser) perform(name string, op func(ctx context.Context) error) {
	b.log.Debug().Str("action", name).Msg("navigation action queued")
	b.dispatch(func(ctx context.Context) {
		if op != nil {
			if err := op(ctx); err != nil {
				b.log.Warn().Err(err).Str("action", name).Msg("navigation action rejected")
			}
		}
		v := b.collect(ctx)
		b.app.QueueUpdateDraw(func() {
			b.apply(v)
		})
	})
}

// collect stats every listed entry. It runs on the worker.
func (b *Browser) collect(ctx context.Context) view {
	state := b.nav.State()
	v := view{
		state:   state,
		entries: make([]dirnav.EntryInfo, len(state.Entries)),
	}
	if b.settings.ShowChildCount {
		v.children = make(map[string]int)
	}
	for i, p := range state.Entries {
		v.entries[i] = b.nav.Describe(ctx, p)
		if v.children == nil || v.entries[i].Kind != dirnav.EntryDir {
			continue
		}
		if n, err := b.nav.ChildCount(ctx, p); err == nil {
			v.children[p] = n
		}
	}
	return v
}

func (b *Browser) apply(v view) {
	prev := b.view
	b.view = v

	current := v.state.Current()
	b.header.SetText(fmt.Sprintf("%s [::b]%s[::-]", tview.Escape(b.nav.Store().RootTitle()), tview.Escape(current)))

	b.crumbs.Clear()
	for i, p := range v.state.Stack {
		title := p
		if i > 0 {
			title = files.EntryName(p)
		}
		depth := i + 1
		b.crumbs.Push(crumbs.NewBreadcrumb(title, func() error {
			b.GoUpTo(depth)
			return nil
		}))
	}

	if v.state.HasError() {
		b.banner.SetText(fmt.Sprintf("✖ %s [gray](Esc to dismiss)[-]", tview.Escape(v.state.LastError)))
		b.ResizeItem(b.banner, 1, 0)
	} else {
		b.banner.SetText("")
		b.ResizeItem(b.banner, 0, 0)
	}

	b.table.SetContent(newEntryRows(v, b.openRow))
	b.table.Select(rowToSelect(prev, v, b.selectedRow()), 0)

	b.renderInspector()
	b.menu.Highlight()
}

func (b *Browser) selectedRow() int {
	row, _ := b.table.GetSelection()
	return row
}

// rowToSelect keeps the cursor on the same row within a directory and on the
// directory just left after going up.
func rowToSelect(prev, next view, row int) int {
	last := len(next.entries)
	switch {
	case prev.state.Current() == next.state.Current():
		return min(max(row, 0), last)
	case next.state.Depth() < prev.state.Depth():
		for i, p := range next.state.Entries {
			if p == prev.state.Current() {
				return i + 1
			}
		}
	default:
	}
	return min(1, last)
}

func (b *Browser) renderInspector() {
	if !b.showInspector {
		return
	}
	data, err := yaml.Marshal(b.view.state)
	if err != nil {
		b.inspector.SetText(tview.Escape(err.Error()))
		return
	}
	text, err := chroma2tcell.ColorizeYAML(string(data), b.settings.HighlightStyle, lexers.Get)
	if err != nil {
		b.log.Debug().Err(err).Msg("failed to colorize state")
		text = tview.Escape(string(data))
	}
	b.inspector.SetText(text)
	b.inspector.ScrollToBeginning()
}

func (b *Browser) openRow(row int) {
	if row <= 0 {
		b.GoUp()
		return
	}
	b.Enter(row - 1)
}

func (b *Browser) openSelected() {
	b.openRow(b.selectedRow())
}

func (b *Browser) tableInputCapture(event *tcell.EventKey) *tcell.EventKey {
	switch event.Key() {
	case tcell.KeyBackspace, tcell.KeyBackspace2, tcell.KeyLeft:
		b.GoUp()
		return nil
	case tcell.KeyRight:
		if row := b.selectedRow(); row > 0 {
			b.openRow(row)
		}
		return nil
	case tcell.KeyTab:
		b.app.SetFocus(b.crumbs)
		return nil
	default:
		return event
	}
}

func (b *Browser) globalInputCapture(event *tcell.EventKey) *tcell.EventKey {
	switch event.Key() {
	case tcell.KeyEsc:
		b.ClearError()
		return nil
	case tcell.KeyF2:
		b.ToggleInspector()
		return nil
	case tcell.KeyRune:
		if event.Modifiers()&tcell.ModAlt != 0 && (event.Rune() == 'x' || event.Rune() == 'X') {
			b.app.Stop()
			return nil
		}
	default:
	}
	return event
}

// SetupApp makes a Browser the root of app.
func SetupApp(app *tview.Application, nav Navigator, settings *dnsettings.Settings, o ...Option) *Browser {
	if settings == nil {
		settings = dnsettings.NewDefaultSettings()
	}
	proxy := NewApp(app)
	proxy.EnableMouse(settings.Mouse)
	b := NewBrowser(proxy, nav, settings, o...)
	proxy.SetRoot(b, true)
	proxy.SetFocus(b.table)
	return b
}
