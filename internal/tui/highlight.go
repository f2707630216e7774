package tui

import (
	"encoding/json"
	"strings"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"
	"github.com/charmbracelet/lipgloss"
)

// token is a syntax-highlighted chunk of text.
type token struct {
	Text  string
	Color string // hex color, empty for default
}

// highlightJSON marshals v as indented JSON and returns one token slice per
// output line.
func highlightJSON(v any) [][]token {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return [][]token{{{Text: err.Error()}}}
	}
	source := string(data)

	lexer := lexers.Get("json")
	if lexer == nil {
		return plainLines(source)
	}
	lexer = chroma.Coalesce(lexer)

	iterator, err := lexer.Tokenise(nil, source)
	if err != nil {
		return plainLines(source)
	}

	style := styles.Get("dracula")
	if style == nil {
		style = styles.Fallback
	}

	var result [][]token
	var current []token
	for _, t := range iterator.Tokens() {
		// Split tokens that span multiple lines
		parts := strings.Split(t.Value, "\n")
		for i, part := range parts {
			if i > 0 {
				result = append(result, current)
				current = nil
			}
			if part != "" {
				current = append(current, token{Text: part, Color: tokenColor(style, t.Type)})
			}
		}
	}
	if len(current) > 0 {
		result = append(result, current)
	}
	return result
}

func plainLines(source string) [][]token {
	lines := strings.Split(source, "\n")
	result := make([][]token, len(lines))
	for i, line := range lines {
		result[i] = []token{{Text: line}}
	}
	return result
}

func tokenColor(style *chroma.Style, tt chroma.TokenType) string {
	entry := style.Get(tt)
	if entry.Colour.IsSet() {
		return entry.Colour.String()
	}
	return ""
}

// renderTokens joins highlighted lines into a styled block.
func renderTokens(lines [][]token) string {
	var b strings.Builder
	for i, line := range lines {
		for _, t := range line {
			if t.Color == "" {
				b.WriteString(t.Text)
				continue
			}
			b.WriteString(lipgloss.NewStyle().Foreground(lipgloss.Color(t.Color)).Render(t.Text))
		}
		if i < len(lines)-1 {
			b.WriteByte('\n')
		}
	}
	return b.String()
}
