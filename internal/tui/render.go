package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	domexh "github.com/kailas-cloud/museum-search/internal/domain/exhibition"
	"github.com/kailas-cloud/museum-search/internal/domain/search/result"
)

var (
	headingStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("13"))
	nameStyle    = lipgloss.NewStyle().Bold(true)
	urlStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("12")).Underline(true)
	labelStyle   = lipgloss.NewStyle().Italic(true).Foreground(lipgloss.Color("8"))
)

// RenderExhibits renders search hits as a numbered list: name and link,
// authors when known, then the truncated description.
func RenderExhibits(results []result.Result) string {
	var b strings.Builder
	b.WriteString(headingStyle.Render(fmt.Sprintf("Топ-%d экспоната:", len(results))))
	b.WriteString("\n")
	if len(results) == 0 {
		b.WriteString("  ничего не найдено\n")
		return b.String()
	}
	for i := range results {
		r := &results[i]
		fmt.Fprintf(&b, "%d. %s\n", i+1, nameStyle.Render(r.Name()))
		if r.URL() != "" {
			fmt.Fprintf(&b, "   %s\n", urlStyle.Render(r.URL()))
		}
		if len(r.Authors()) > 0 {
			fmt.Fprintf(&b, "   %s %s\n", labelStyle.Render("Авторы:"), strings.Join(r.Authors(), ", "))
		}
		if r.Description() != "" {
			fmt.Fprintf(&b, "   %s...\n", r.Description())
		}
		b.WriteString("\n")
	}
	return b.String()
}

// RenderExhibitions renders groups as "<exhibition>, <collection>" lines.
func RenderExhibitions(groups []domexh.Group, display func(domexh.Group) string) string {
	var b strings.Builder
	b.WriteString(headingStyle.Render(fmt.Sprintf("Топ-%d выставки:", len(groups))))
	b.WriteString("\n")
	for _, g := range groups {
		fmt.Fprintf(&b, "• %s (%d)\n", display(g), g.Count())
	}
	return b.String()
}
