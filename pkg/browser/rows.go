package browser

import (
	"fmt"
	"time"

	"github.com/filetug/dirnav/pkg/dirnav"
	"github.com/filetug/dirnav/pkg/fsutils"
	"github.com/rivo/tview"
)

const (
	nameColIndex = iota
	detailsColIndex
	modifiedColIndex
	columnCount
)

const (
	dirEmoji     = "📁"
	fileEmoji    = "📄"
	unknownEmoji = "❔"
)

var timeNow = time.Now

var _ tview.TableContent = (*entryRows)(nil)

// entryRows shows a listing with a leading parent row, so entry i is at row i+1.
type entryRows struct {
	tview.TableContentReadOnly
	atRoot   bool
	entries  []dirnav.EntryInfo
	children map[string]int
	open     func(row int)
}

func newEntryRows(v view, open func(row int)) *entryRows {
	return &entryRows{
		atRoot:   v.state.Depth() <= 1,
		entries:  v.entries,
		children: v.children,
		open:     open,
	}
}

func (r *entryRows) GetRowCount() int {
	return len(r.entries) + 1
}

func (r *entryRows) GetColumnCount() int {
	return columnCount
}

func (r *entryRows) GetCell(row, col int) *tview.TableCell {
	if row < 0 || row > len(r.entries) || col < 0 || col >= columnCount {
		return nil
	}
	var cell *tview.TableCell
	if row == 0 {
		cell = r.parentCell(col)
	} else {
		cell = r.entryCell(r.entries[row-1], col)
	}
	if r.open != nil {
		cell.Clicked = func() bool {
			r.open(row)
			return false
		}
	}
	return cell
}

func (r *entryRows) entryCell(entry dirnav.EntryInfo, col int) *tview.TableCell {
	var cell *tview.TableCell
	switch col {
	case nameColIndex:
		cell = tview.NewTableCell(entryIcon(entry.Kind) + tview.Escape(entry.Name))
		cell.SetExpansion(1)
	case detailsColIndex:
		cell = tview.NewTableCell(r.details(entry))
		cell.SetAlign(tview.AlignRight)
	case modifiedColIndex:
		cell = tview.NewTableCell(modifiedText(entry.ModTime))
	}

	switch entry.Kind {
	case dirnav.EntryDir:
		cell.SetTextColor(Style.DirectoryColor)
	case dirnav.EntryFile:
		cell.SetTextColor(GetColorByFileExt(entry.Name))
	default:
		cell.SetTextColor(Style.UnknownColor)
	}
	return cell.SetReference(entry.Path)
}

func (r *entryRows) parentCell(col int) *tview.TableCell {
	if col != nameColIndex {
		return tview.NewTableCell("")
	}
	text := ".."
	if r.atRoot {
		text = "."
	}
	return tview.NewTableCell(text).SetExpansion(1).SetTextColor(Style.DirectoryColor)
}

func (r *entryRows) details(entry dirnav.EntryInfo) string {
	switch entry.Kind {
	case dirnav.EntryFile:
		return fsutils.GetSizeShortText(entry.Size)
	case dirnav.EntryDir:
		if n, ok := r.children[entry.Path]; ok {
			return fmt.Sprintf("%d items", n)
		}
	default:
	}
	return ""
}

func entryIcon(kind dirnav.EntryKind) string {
	switch kind {
	case dirnav.EntryDir:
		return dirEmoji
	case dirnav.EntryFile:
		return fileEmoji
	default:
		return unknownEmoji
	}
}

// modifiedText shows the time of day for the last 24 hours and the date otherwise.
func modifiedText(modTime time.Time) string {
	if modTime.IsZero() {
		return ""
	}
	if modTime.After(timeNow().Add(-24 * time.Hour)) {
		return modTime.Format("15:04:05")
	}
	return modTime.Format("2006-01-02")
}
