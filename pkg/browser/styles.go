package browser

import (
	"path/filepath"
	"strings"

	"github.com/gdamore/tcell/v2"
)

type Styles struct {
	HotkeyColor    tcell.Color
	MenuTextColor  tcell.Color
	HeaderColor    tcell.Color
	ErrorColor     tcell.Color
	UnknownColor   tcell.Color
	DirectoryColor tcell.Color
	DetailsColor   tcell.Color
}

var Style = Styles{
	HotkeyColor:    tcell.ColorWhite,
	MenuTextColor:  tcell.ColorSlateGray,
	HeaderColor:    tcell.ColorCornflowerBlue,
	ErrorColor:     tcell.ColorOrangeRed,
	UnknownColor:   tcell.ColorGray,
	DirectoryColor: tcell.ColorWhiteSmoke,
	DetailsColor:   tcell.ColorDarkGray,
}

var fileColors = map[string]tcell.Color{
	"go":   tcell.ColorAqua,
	"c":    tcell.ColorDodgerBlue,
	"h":    tcell.ColorDodgerBlue,
	"js":   tcell.ColorYellow,
	"ts":   tcell.ColorDeepSkyBlue,
	"html": tcell.ColorOrangeRed,
	"css":  tcell.ColorViolet,
	"json": tcell.ColorGold,
	"yaml": tcell.ColorLightYellow,
	"yml":  tcell.ColorLightYellow,
	"md":   tcell.ColorBisque,
	"py":   tcell.ColorLightGreen,
	"rs":   tcell.ColorOrange,
	"sh":   tcell.ColorGreen,
	"txt":  tcell.ColorWhite,
	"csv":  tcell.ColorLightGreen,
	"png":  tcell.ColorMediumPurple,
	"jpg":  tcell.ColorMediumPurple,
	"gif":  tcell.ColorMediumPurple,
	"mp4":  tcell.ColorLightSalmon,
	"log":  tcell.ColorRosyBrown,
	"exe":  tcell.ColorRed,
}

// GetColorByFileExt picks a colour by extension, case-insensitively.
func GetColorByFileExt(name string) tcell.Color {
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(name), "."))
	if color, ok := fileColors[ext]; ok {
		return color
	}
	return tcell.ColorWhiteSmoke
}
