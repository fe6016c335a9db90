// Package query answers lookups over a parsed catalog: key lookups, apps per
// category, attribute filters and fuzzy search.
package query

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/lithammer/fuzzysearch/fuzzy"

	"github.com/goliatone/go-awesome-mac/internal/catalog"
)

// ErrCategoryNotFound is returned when a category key is unknown.
var ErrCategoryNotFound = errors.New("query: category not found")

// Catalog wraps a read-only parse result.
type Catalog struct {
	result *catalog.Result
}

// New wraps result. A nil result behaves as an empty catalog.
func New(result *catalog.Result) *Catalog {
	if result == nil {
		result = &catalog.Result{}
	}
	return &Catalog{result: result}
}

// Result returns the wrapped parse result.
func (c *Catalog) Result() *catalog.Result {
	return c.result
}

// Category looks up a category or subcategory by slug or id.
func (c *Catalog) Category(key string) (*catalog.Category, bool) {
	return c.result.Category(strings.TrimSpace(key))
}

// App looks up an app by slug or id.
func (c *Catalog) App(key string) (*catalog.App, bool) {
	return c.result.App(strings.TrimSpace(key))
}

// AppsInCategory returns the apps of a category followed by the apps of its
// subcategories, in document order.
func (c *Catalog) AppsInCategory(key string) ([]*catalog.App, error) {
	category, ok := c.Category(key)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrCategoryNotFound, key)
	}
	apps := append([]*catalog.App{}, category.Apps...)
	for _, sub := range category.Subcategories {
		apps = append(apps, sub.Apps...)
	}
	return apps, nil
}

// Filter selects apps by attribute. Zero fields do not constrain.
type Filter struct {
	Category    string
	Free        bool
	OpenSource  bool
	AppStore    bool
	AwesomeList bool
}

// Empty reports whether the filter selects every app.
func (f Filter) Empty() bool {
	return f == Filter{}
}

func (f Filter) match(app *catalog.App, categories map[string]struct{}) bool {
	switch {
	case f.Free && !app.IsFree:
		return false
	case f.OpenSource && !app.IsOpenSource:
		return false
	case f.AppStore && !app.IsAppStore:
		return false
	case f.AwesomeList && !app.HasAwesomeList:
		return false
	}
	if categories != nil {
		_, ok := categories[app.CategoryID]
		return ok
	}
	return true
}

// Filter returns the apps matching f in document order.
func (c *Catalog) Filter(f Filter) ([]*catalog.App, error) {
	scope, err := c.scope(f.Category)
	if err != nil {
		return nil, err
	}
	var out []*catalog.App
	for _, app := range c.result.Apps {
		if f.match(app, scope) {
			out = append(out, app)
		}
	}
	return out, nil
}

// scope returns the ids of a category and its subcategories, or nil when key is blank.
func (c *Catalog) scope(key string) (map[string]struct{}, error) {
	if strings.TrimSpace(key) == "" {
		return nil, nil
	}
	category, ok := c.Category(key)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrCategoryNotFound, key)
	}
	ids := map[string]struct{}{category.ID: {}}
	for _, sub := range category.Subcategories {
		ids[sub.ID] = struct{}{}
	}
	return ids, nil
}

// Counts summarises a catalog.
type Counts struct {
	Categories    int `json:"categories"`
	Subcategories int `json:"subcategories"`
	Apps          int `json:"apps"`
	Free          int `json:"free"`
	OpenSource    int `json:"openSource"`
	AppStore      int `json:"appStore"`
	AwesomeList   int `json:"awesomeList"`
}

// Counts totals categories and apps per attribute.
func (c *Catalog) Counts() Counts {
	var counts Counts
	c.result.Walk(func(category *catalog.Category) bool {
		if category.IsSubcategory() {
			counts.Subcategories++
		} else {
			counts.Categories++
		}
		return true
	})
	for _, app := range c.result.Apps {
		counts.Apps++
		if app.IsFree {
			counts.Free++
		}
		if app.IsOpenSource {
			counts.OpenSource++
		}
		if app.IsAppStore {
			counts.AppStore++
		}
		if app.HasAwesomeList {
			counts.AwesomeList++
		}
	}
	return counts
}

// Match is one search hit. Distance is the fuzzy edit distance of the
// matched field; Field names which field matched.
type Match struct {
	App      *catalog.App
	Field    string
	Distance int
}

// Match fields in ranking order.
const (
	FieldName        = "name"
	FieldSlug        = "slug"
	FieldDescription = "description"
)

var fieldRank = map[string]int{FieldName: 0, FieldSlug: 1, FieldDescription: 2}

// SearchOptions bounds a search.
type SearchOptions struct {
	Filter Filter
	// Limit caps the number of matches; zero returns all.
	Limit int
}

// Search fuzzy matches term against app names, slugs and descriptions,
// ignoring case. Matches are ranked by field, then by distance, then by
// document order. A blank term returns every filtered app.
func (c *Catalog) Search(term string, opts SearchOptions) ([]Match, error) {
	apps, err := c.Filter(opts.Filter)
	if err != nil {
		return nil, err
	}
	term = strings.TrimSpace(term)

	matches := make([]Match, 0, len(apps))
	for _, app := range apps {
		if term == "" {
			matches = append(matches, Match{App: app, Field: FieldName})
			continue
		}
		if m, ok := matchApp(term, app); ok {
			matches = append(matches, m)
		}
	}

	sort.SliceStable(matches, func(i, j int) bool {
		a, b := matches[i], matches[j]
		if fieldRank[a.Field] != fieldRank[b.Field] {
			return fieldRank[a.Field] < fieldRank[b.Field]
		}
		return a.Distance < b.Distance
	})

	if opts.Limit > 0 && len(matches) > opts.Limit {
		matches = matches[:opts.Limit]
	}
	return matches, nil
}

func matchApp(term string, app *catalog.App) (Match, bool) {
	if d := fuzzy.RankMatchFold(term, app.Name); d >= 0 {
		return Match{App: app, Field: FieldName, Distance: d}, true
	}
	if d := fuzzy.RankMatchFold(term, app.Slug); d >= 0 {
		return Match{App: app, Field: FieldSlug, Distance: d}, true
	}
	if app.Description != "" && strings.Contains(strings.ToLower(app.Description), strings.ToLower(term)) {
		return Match{App: app, Field: FieldDescription, Distance: len(app.Description) - len(term)}, true
	}
	return Match{}, false
}
