package views

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/charmbracelet/bubbles/key"

	"braindump/internal/adapters/tui/styles"
	"braindump/internal/domain"
)

// RenderKeyHelp formats a key binding as help text (key + description)
func RenderKeyHelp(b key.Binding) string {
	help := b.Help()
	return fmt.Sprintf("%s %s",
		styles.HelpKey.Render(help.Key),
		styles.HelpDesc.Render(help.Desc),
	)
}

// RenderHelpLine renders multiple key bindings as a help line separated by bullets
func RenderHelpLine(bindings ...key.Binding) string {
	var parts []string
	for _, b := range bindings {
		parts = append(parts, RenderKeyHelp(b))
	}
	return strings.Join(parts, styles.HelpSeparator.String())
}

// RenderMessage renders a message with appropriate styling based on isError
func RenderMessage(message string, isError bool) string {
	if message == "" {
		return ""
	}
	if isError {
		return styles.ErrorMsg.Render(message)
	}
	return styles.Success.Render(message)
}

// RenderCategory renders a fixed-width colored category badge
func RenderCategory(c domain.Category) string {
	return styles.Badge.Foreground(styles.CategoryColor(c)).Render(c.Label())
}

// RenderStar renders the star column
func RenderStar(starred bool) string {
	if starred {
		return styles.Star.Render(styles.StarMark)
	}
	return styles.MutedText.Render(styles.StarBlank)
}

// RenderStats renders the board header counters
func RenderStats(s domain.Stats) string {
	parts := []string{
		fmt.Sprintf("%d total", s.Total),
		styles.Star.Render(fmt.Sprintf("%s %d", styles.StarMark, s.Starred)),
	}
	for _, c := range domain.Categories {
		parts = append(parts, renderCount(c, s.ForCategory(c)))
	}
	return strings.Join(parts, styles.HelpSeparator.String())
}

func renderCount(c domain.Category, n int) string {
	return styles.MutedText.Render(fmt.Sprintf("%s ", strings.ToLower(c.Label()))) +
		styles.Badge.UnsetWidth().Foreground(styles.CategoryColor(c)).Render(fmt.Sprint(n))
}

// RenderTabs renders the filter selectors with their counts, highlighting active
func RenderTabs(active domain.Filter, s domain.Stats) string {
	var parts []string
	for _, f := range domain.Filters {
		label := fmt.Sprintf("%s %d", FilterLabel(f), s.ForFilter(f))
		if f == active {
			parts = append(parts, styles.TabActive.Render(label))
		} else {
			parts = append(parts, styles.Tab.Render(label))
		}
	}
	return strings.Join(parts, "")
}

// FilterLabel returns the tab title for a filter
func FilterLabel(f domain.Filter) string {
	switch f {
	case domain.FilterAll:
		return "All"
	case domain.FilterStarred:
		return "Starred"
	}
	if c, ok := f.Category(); ok {
		return c.Label()
	}
	return f.String()
}

// Highlight marks every case-insensitive occurrence of query in text
func Highlight(text, query string) string {
	query = strings.TrimSpace(query)
	if query == "" {
		return text
	}

	lowerText := strings.ToLower(text)
	lowerQuery := strings.ToLower(query)
	// Lowercasing can change byte lengths; only highlight when offsets line up
	if len(lowerText) != len(text) || len(lowerQuery) != len(query) {
		return text
	}

	var b strings.Builder
	for {
		i := strings.Index(lowerText, lowerQuery)
		if i < 0 {
			b.WriteString(text)
			return b.String()
		}
		b.WriteString(text[:i])
		b.WriteString(styles.SearchMatch.Render(text[i : i+len(query)]))
		text = text[i+len(query):]
		lowerText = lowerText[i+len(query):]
	}
}

// Truncate shortens s to at most width runes, flattening newlines
func Truncate(s string, width int) string {
	s = strings.Join(strings.Fields(s), " ")
	if width <= 0 || utf8.RuneCountInString(s) <= width {
		return s
	}
	if width == 1 {
		return "…"
	}
	runes := []rune(s)
	return string(runes[:width-1]) + "…"
}

// ViewBuilder helps construct view output with consistent formatting
type ViewBuilder struct {
	b strings.Builder
}

// NewViewBuilder creates a new view builder
func NewViewBuilder() *ViewBuilder {
	return &ViewBuilder{}
}

// Title adds a title section
func (v *ViewBuilder) Title(title string) *ViewBuilder {
	v.b.WriteString(styles.Title.Render(title))
	v.b.WriteString("\n")
	return v
}

// Subtitle adds a subtitle section
func (v *ViewBuilder) Subtitle(subtitle string) *ViewBuilder {
	v.b.WriteString(styles.Subtitle.Render(subtitle))
	v.b.WriteString("\n\n")
	return v
}

// Line adds a line of text
func (v *ViewBuilder) Line(text string) *ViewBuilder {
	v.b.WriteString(text)
	v.b.WriteString("\n")
	return v
}

// BlankLine adds a blank line
func (v *ViewBuilder) BlankLine() *ViewBuilder {
	v.b.WriteString("\n")
	return v
}

// Muted adds muted text followed by a newline
func (v *ViewBuilder) Muted(text string) *ViewBuilder {
	v.b.WriteString(styles.MutedText.Render(text))
	v.b.WriteString("\n")
	return v
}

// Message adds a message if non-empty, with appropriate error/success styling
func (v *ViewBuilder) Message(message string, isError bool) *ViewBuilder {
	if message == "" {
		return v
	}
	v.b.WriteString(RenderMessage(message, isError))
	v.b.WriteString("\n\n")
	return v
}

// Help adds a help line with key bindings
func (v *ViewBuilder) Help(bindings ...key.Binding) *ViewBuilder {
	v.b.WriteString(RenderHelpLine(bindings...))
	return v
}

// String returns the built view string wrapped in the app style
func (v *ViewBuilder) String() string {
	return styles.App.Render(v.b.String())
}
