package study

import (
	"strings"

	"charm.land/lipgloss/v2"
	"golang.org/x/net/html"

	"github.com/senseilabs/sensei/internal/ui/theme"
)

var (
	headingStyle = lipgloss.NewStyle().Foreground(theme.Primary).Bold(true)
	emphStyle    = lipgloss.NewStyle().Foreground(theme.Text).Bold(true)
	codeStyle    = lipgloss.NewStyle().Foreground(theme.Accent)
)

// renderHTML flattens generated HTML into styled terminal text. Unknown
// tags contribute only their text content, so malformed markup degrades
// to plain prose instead of failing.
func renderHTML(src string) string {
	tok := html.NewTokenizer(strings.NewReader(src))

	var b strings.Builder
	var styleStack []lipgloss.Style
	inPre := false

	for {
		tt := tok.Next()
		if tt == html.ErrorToken {
			break
		}

		switch tt {
		case html.StartTagToken:
			name, _ := tok.TagName()
			switch string(name) {
			case "p":
				ensureBlankLine(&b)
			case "br":
				b.WriteString("\n")
			case "h1", "h2", "h3", "h4":
				ensureBlankLine(&b)
				styleStack = append(styleStack, headingStyle)
			case "li":
				ensureNewline(&b)
				b.WriteString("  • ")
			case "strong", "b", "em", "i":
				styleStack = append(styleStack, emphStyle)
			case "code":
				styleStack = append(styleStack, codeStyle)
			case "pre":
				ensureBlankLine(&b)
				inPre = true
			case "ul", "ol":
				ensureNewline(&b)
			}

		case html.EndTagToken:
			name, _ := tok.TagName()
			switch string(name) {
			case "h1", "h2", "h3", "h4", "strong", "b", "em", "i", "code":
				if len(styleStack) > 0 {
					styleStack = styleStack[:len(styleStack)-1]
				}
			case "pre":
				inPre = false
				ensureNewline(&b)
			case "p", "ul", "ol":
				ensureNewline(&b)
			}

		case html.TextToken:
			text := string(tok.Text())
			if !inPre {
				text = collapseSpace(text)
			}
			if text == "" {
				continue
			}
			if len(styleStack) > 0 {
				text = styleStack[len(styleStack)-1].Render(text)
			}
			b.WriteString(text)
		}
	}

	return strings.TrimSpace(b.String())
}

// collapseSpace folds runs of whitespace into single spaces, dropping
// text that is whitespace only.
func collapseSpace(s string) string {
	fields := strings.Fields(s)
	if len(fields) == 0 {
		return ""
	}
	out := strings.Join(fields, " ")
	if strings.HasPrefix(s, " ") || strings.HasPrefix(s, "\n") || strings.HasPrefix(s, "\t") {
		out = " " + out
	}
	if strings.HasSuffix(s, " ") || strings.HasSuffix(s, "\n") || strings.HasSuffix(s, "\t") {
		out += " "
	}
	return out
}

func ensureNewline(b *strings.Builder) {
	s := b.String()
	if s != "" && !strings.HasSuffix(s, "\n") {
		b.WriteString("\n")
	}
}

func ensureBlankLine(b *strings.Builder) {
	s := b.String()
	if s == "" {
		return
	}
	if !strings.HasSuffix(s, "\n\n") {
		if strings.HasSuffix(s, "\n") {
			b.WriteString("\n")
		} else {
			b.WriteString("\n\n")
		}
	}
}
