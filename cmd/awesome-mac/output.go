package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/goliatone/go-awesome-mac/internal/catalog"
	"github.com/goliatone/go-awesome-mac/internal/pipeline"
	"github.com/goliatone/go-awesome-mac/internal/query"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("39"))

	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240"))

	successStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("42"))

	warnStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("214"))

	badgeStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("81"))

	boxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("39")).
			Padding(0, 1)
)

// renderReport prints one summary box per locale build.
func renderReport(w io.Writer, report *pipeline.Report) {
	if report == nil {
		return
	}
	for _, build := range report.Builds {
		lines := []string{titleStyle.Render(build.Locale) + " " + dimStyle.Render(build.Path)}
		if build.Result != nil {
			counts := query.New(build.Result).Counts()
			lines = append(lines, fmt.Sprintf("%d categories, %d subcategories, %d apps",
				counts.Categories, counts.Subcategories, counts.Apps))
		}
		if build.Source == pipeline.SourceCache {
			lines = append(lines, warnStyle.Render("served from cache: "+errorText(build.Err)))
		}
		if n := len(build.Diagnostics); n > 0 {
			lines = append(lines, warnStyle.Render(fmt.Sprintf("%d diagnostics", n)))
		}
		if build.DataFile != "" {
			lines = append(lines, successStyle.Render("wrote ")+build.DataFile)
		}
		fmt.Fprintln(w, boxStyle.Render(strings.Join(lines, "\n")))

		if build.Diff != nil && !build.Diff.Empty() {
			fmt.Fprintf(w, "%s +%d -%d ~%d\n", titleStyle.Render("diff"),
				len(build.Diff.Added), len(build.Diff.Removed), len(build.Diff.Changed))
			fmt.Fprint(w, build.Diff.Unified)
		}
	}
}

// renderMatches prints one line per search hit.
func renderMatches(w io.Writer, matches []query.Match) {
	if len(matches) == 0 {
		fmt.Fprintln(w, dimStyle.Render("no matching apps"))
		return
	}
	for _, match := range matches {
		app := match.App
		line := titleStyle.Render(app.Name) + " " + dimStyle.Render(app.Slug)
		if badges := appBadges(app); badges != "" {
			line += " " + badgeStyle.Render(badges)
		}
		fmt.Fprintln(w, line)
		if app.Description != "" {
			fmt.Fprintln(w, "  "+app.Description)
		}
		fmt.Fprintln(w, "  "+dimStyle.Render(app.URL))
	}
}

func appBadges(app *catalog.App) string {
	var badges []string
	if app.IsFree {
		badges = append(badges, "free")
	}
	if app.IsOpenSource {
		badges = append(badges, "oss")
	}
	if app.IsAppStore {
		badges = append(badges, "app-store")
	}
	if app.HasAwesomeList {
		badges = append(badges, "awesome-list")
	}
	if len(badges) == 0 {
		return ""
	}
	return "[" + strings.Join(badges, " ") + "]"
}

func errorText(err error) string {
	if err == nil {
		return "unknown error"
	}
	return err.Error()
}
