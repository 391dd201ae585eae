package chroma2tcell

import (
	"strings"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"
	"github.com/rivo/tview"
)

var getStyle = styles.Get

var getFallbackStyle = func() *chroma.Style {
	return styles.Fallback
}

// Colorize turns text into tview colour-tagged text. Token values are escaped,
// so square brackets in paths are not taken for tags.
func Colorize(text, styleName string, lexer chroma.Lexer) (string, error) {
	iterator, err := lexer.Tokenise(nil, text)
	if err != nil {
		return "", err
	}

	style := getStyle(styleName)
	if style == nil {
		style = getFallbackStyle()
	}

	var sb strings.Builder
	for _, token := range iterator.Tokens() {
		value := tview.Escape(token.Value)
		color := style.Get(token.Type)
		if color.IsZero() {
			sb.WriteString(value)
			continue
		}

		// Map Chroma color to tview [color] tag
		// simple approximation: use hex
		colorText := color.Colour.String()
		sb.WriteString("[" + colorText + "]")
		sb.WriteString(value)
		sb.WriteString("[-]")
	}

	return sb.String(), nil
}

func ColorizeYAML(yamlStr, styleName string, getLexer func(string) chroma.Lexer) (string, error) {
	lexer := getLexer("yaml")
	if lexer == nil {
		lexer = lexers.Fallback
	}
	if styleName == "" {
		styleName = "dracula"
	}
	return Colorize(yamlStr, styleName, lexer)
}
