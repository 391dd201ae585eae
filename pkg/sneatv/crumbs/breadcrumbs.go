package crumbs

import (
	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"
)

// Breadcrumbs renders a single line of clickable items, e.g. the path from a session root to the current directory.
type Breadcrumbs struct {
	*tview.Box
	items             []Breadcrumb
	separator         string
	separatorStartIdx int
	selectedItemIndex int
	nextFocusTarget   tview.Primitive
	prevFocusTarget   tview.Primitive
	selectedColor     tcell.Color
	separatorColor    tcell.Color
}

func NewBreadcrumbs(home Breadcrumb, o ...func(bc *Breadcrumbs)) *Breadcrumbs {
	b := &Breadcrumbs{
		Box:            tview.NewBox(),
		separator:      " > ",
		selectedColor:  tcell.ColorYellow,
		separatorColor: tcell.ColorGray,
	}
	for _, opt := range o {
		opt(b)
	}
	if home != nil {
		b.items = append(b.items, home)
	}
	return b
}

func (b *Breadcrumbs) Push(bc Breadcrumb) {
	b.items = append(b.items, bc)
	b.selectedItemIndex = len(b.items) - 1
}

// Clear removes all items including the home one.
func (b *Breadcrumbs) Clear() {
	b.items = nil
	b.selectedItemIndex = 0
}

func (b *Breadcrumbs) Items() []Breadcrumb {
	return append([]Breadcrumb(nil), b.items...)
}

// GoHome runs the action of the first item.
func (b *Breadcrumbs) GoHome() error {
	if len(b.items) == 0 {
		return nil
	}
	b.selectedItemIndex = 0
	return b.items[0].Action()
}

func (b *Breadcrumbs) SetNextFocusTarget(p tview.Primitive) {
	b.nextFocusTarget = p
}

func (b *Breadcrumbs) SetPrevFocusTarget(p tview.Primitive) {
	b.prevFocusTarget = p
}

func (b *Breadcrumbs) SelectedIndex() int {
	return b.selectedItemIndex
}

func (b *Breadcrumbs) IsLastItemSelected() bool {
	return len(b.items) > 0 && b.selectedItemIndex == len(b.items)-1
}

// Focus preselects the parent of the last item, which is the usual target when moving up.
func (b *Breadcrumbs) Focus(delegate func(p tview.Primitive)) {
	if b.selectedItemIndex < 0 || b.selectedItemIndex >= len(b.items)-1 {
		b.selectedItemIndex = max(len(b.items)-2, 0)
	}
	b.Box.Focus(delegate)
}

func (b *Breadcrumbs) Blur() {
	b.selectedItemIndex = max(len(b.items)-1, 0)
	b.Box.Blur()
}

type crumbSpan struct {
	index int // -1 for a separator
	x     int
	width int
	text  string
}

func (b *Breadcrumbs) layout(x, maxX int) (spans []crumbSpan) {
	for i, item := range b.items {
		if i > 0 {
			sep := " "
			if i > b.separatorStartIdx {
				sep = b.separator
			}
			w := tview.TaggedStringWidth(tview.Escape(sep))
			spans = append(spans, crumbSpan{index: -1, x: x, width: w, text: sep})
			x += w
		}
		if x >= maxX {
			break
		}
		title := item.GetTitle()
		w := tview.TaggedStringWidth(tview.Escape(title))
		spans = append(spans, crumbSpan{index: i, x: x, width: min(w, maxX-x), text: title})
		x += w
	}
	return spans
}

func (b *Breadcrumbs) Draw(screen tcell.Screen) {
	b.DrawForSubclass(screen, b)
	x, y, width, height := b.GetInnerRect()
	if width <= 0 || height <= 0 {
		return
	}
	maxX := x + width
	hasFocus := b.HasFocus()
	for _, span := range b.layout(x, maxX) {
		if span.x >= maxX {
			break
		}
		color := b.separatorColor
		if span.index >= 0 {
			color = b.items[span.index].GetColor()
			if color == tcell.ColorDefault {
				color = tview.Styles.PrimaryTextColor
			}
			if hasFocus && span.index == b.selectedItemIndex {
				color = b.selectedColor
			}
		}
		tview.Print(screen, tview.Escape(span.text), span.x, y, maxX-span.x, tview.AlignLeft, color)
	}
}

func (b *Breadcrumbs) InputHandler() func(event *tcell.EventKey, setFocus func(p tview.Primitive)) {
	return b.WrapInputHandler(func(event *tcell.EventKey, setFocus func(p tview.Primitive)) {
		switch event.Key() {
		case tcell.KeyLeft:
			if b.selectedItemIndex > 0 {
				b.selectedItemIndex--
			}
		case tcell.KeyRight:
			if b.selectedItemIndex < len(b.items)-1 {
				b.selectedItemIndex++
			}
		case tcell.KeyEnter:
			if b.selectedItemIndex >= 0 && b.selectedItemIndex < len(b.items) {
				_ = b.items[b.selectedItemIndex].Action()
			}
		case tcell.KeyTab, tcell.KeyDown:
			if b.nextFocusTarget != nil {
				setFocus(b.nextFocusTarget)
			}
		case tcell.KeyBacktab, tcell.KeyUp:
			if b.prevFocusTarget != nil {
				setFocus(b.prevFocusTarget)
			}
		default:
		}
	})
}

// MouseHandler selects the item under the cursor and runs its action on click.
func (b *Breadcrumbs) MouseHandler() func(action tview.MouseAction, event *tcell.EventMouse, setFocus func(p tview.Primitive)) (consumed bool, capture tview.Primitive) {
	return b.WrapMouseHandler(func(action tview.MouseAction, event *tcell.EventMouse, setFocus func(p tview.Primitive)) (consumed bool, capture tview.Primitive) {
		mx, my := event.Position()
		if !b.InRect(mx, my) {
			return false, nil
		}
		if action != tview.MouseLeftDown && action != tview.MouseLeftClick {
			return false, nil
		}
		x, _, width, _ := b.GetInnerRect()
		for _, span := range b.layout(x, x+width) {
			if span.index < 0 || mx < span.x || mx >= span.x+span.width {
				continue
			}
			b.selectedItemIndex = span.index
			if action == tview.MouseLeftClick {
				_ = b.items[span.index].Action()
			}
			break
		}
		return true, nil
	})
}
