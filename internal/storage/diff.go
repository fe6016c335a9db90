package storage

import (
	"fmt"
	"strings"

	difflib "github.com/pmezard/go-difflib/difflib"

	"github.com/goliatone/go-awesome-mac/internal/catalog"
)

// Diff compares the apps of two catalogs by slug.
type Diff struct {
	Added   []string
	Removed []string
	Changed []string
	// Unified is a unified diff of one line per app, empty when nothing changed.
	Unified string
}

// Empty reports whether the catalogs hold the same apps.
func (d Diff) Empty() bool {
	return len(d.Added) == 0 && len(d.Removed) == 0 && len(d.Changed) == 0
}

// Compare diffs prev against next. Either side may be nil.
func Compare(fromLabel string, prev *catalog.Result, toLabel string, next *catalog.Result) Diff {
	before := appLines(prev)
	after := appLines(next)

	var d Diff
	for _, slug := range after.order {
		old, ok := before.lines[slug]
		switch {
		case !ok:
			d.Added = append(d.Added, slug)
		case old != after.lines[slug]:
			d.Changed = append(d.Changed, slug)
		}
	}
	for _, slug := range before.order {
		if _, ok := after.lines[slug]; !ok {
			d.Removed = append(d.Removed, slug)
		}
	}
	if d.Empty() {
		return d
	}

	unified, err := difflib.GetUnifiedDiffString(difflib.UnifiedDiff{
		A:        before.ordered(),
		B:        after.ordered(),
		FromFile: fromLabel,
		ToFile:   toLabel,
		Context:  1,
	})
	if err == nil {
		d.Unified = unified
	}
	return d
}

type lineSet struct {
	order []string
	lines map[string]string
}

func (s lineSet) ordered() []string {
	out := make([]string, 0, len(s.order))
	for _, slug := range s.order {
		out = append(out, s.lines[slug])
	}
	return out
}

func appLines(result *catalog.Result) lineSet {
	set := lineSet{lines: map[string]string{}}
	if result == nil {
		return set
	}
	for _, app := range result.Apps {
		set.order = append(set.order, app.Slug)
		set.lines[app.Slug] = appLine(app)
	}
	return set
}

func appLine(app *catalog.App) string {
	var flags []string
	if app.IsFree {
		flags = append(flags, "free")
	}
	if app.IsOpenSource {
		flags = append(flags, "oss")
	}
	if app.IsAppStore {
		flags = append(flags, "appstore")
	}
	if app.HasAwesomeList {
		flags = append(flags, "awesome")
	}
	line := fmt.Sprintf("%s/%s %s", app.CategoryID, app.Slug, app.URL)
	if len(flags) > 0 {
		line += " [" + strings.Join(flags, ",") + "]"
	}
	if app.Description != "" {
		line += " " + app.Description
	}
	return line + "\n"
}
