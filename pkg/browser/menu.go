package browser

import (
	"fmt"
	"strings"

	"github.com/rivo/tview"
)

type MenuItem struct {
	Title   string
	HotKeys []string
	Action  func()
}

// menuBar is the bottom line of hotkey hints. Each item is a clickable region named after its first hotkey.
type menuBar struct {
	*tview.TextView
	keyItems []MenuItem
	altItems []MenuItem
}

func newMenuBar(keyItems, altItems []MenuItem) *menuBar {
	m := &menuBar{
		TextView: tview.NewTextView().
			SetDynamicColors(true).
			SetRegions(true).
			SetTextColor(Style.MenuTextColor),
		keyItems: keyItems,
		altItems: altItems,
	}
	m.SetHighlightedFunc(m.highlighted)
	m.render()
	return m
}

func (m *menuBar) render() {
	var sb strings.Builder
	sb.WriteString(renderMenuItems(m.keyItems))
	if len(m.altItems) > 0 {
		sb.WriteString(" | [DarkGray]Alt[-]+: ")
		sb.WriteString(renderMenuItems(m.altItems))
	}
	m.SetText(sb.String())
}

func renderMenuItems(items []MenuItem) string {
	const separator = "┊"
	titles := make([]string, 0, len(items))
	for _, mi := range items {
		title := tview.Escape(mi.Title)
		for _, key := range mi.HotKeys {
			hotkeyText := fmt.Sprintf("[#%06x]%s[-]", Style.HotkeyColor.Hex(), key)
			title = strings.Replace(title, key, hotkeyText, 1)
		}
		titles = append(titles, fmt.Sprintf(`["%s"]%s[""]`, mi.HotKeys[0], title))
	}
	return strings.Join(titles, separator)
}

func (m *menuBar) highlighted(added, _, _ []string) {
	if len(added) == 0 {
		return
	}
	region := added[0]
	for _, items := range [][]MenuItem{m.keyItems, m.altItems} {
		for _, mi := range items {
			if mi.HotKeys[0] == region && mi.Action != nil {
				mi.Action()
				return
			}
		}
	}
}
