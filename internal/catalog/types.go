package catalog

import "github.com/goliatone/go-awesome-mac/pkg/ast"

// Mark and Icon alias the list item annotation types.
type (
	Mark = ast.Mark
	Icon = ast.Icon
)

// Depths of the two structural heading levels.
const (
	CategoryDepth    = 2
	SubcategoryDepth = 3
)

// Category is a top-level section (depth 2) or a subcategory (depth 3).
// Subcategories carry the owning category id in ParentID.
type Category struct {
	ID            string      `json:"id"`
	Name          string      `json:"name"`
	Slug          string      `json:"slug"`
	Depth         int         `json:"depth"`
	Description   string      `json:"description,omitempty"`
	ParentID      string      `json:"parentId,omitempty"`
	Subcategories []*Category `json:"subcategories"`
	Apps          []*App      `json:"apps"`
}

// IsSubcategory reports whether the category is nested under another one.
func (c *Category) IsSubcategory() bool {
	return c != nil && c.ParentID != ""
}

// App is a single catalog entry extracted from a list item.
type App struct {
	ID             string `json:"id"`
	Name           string `json:"name"`
	Slug           string `json:"slug"`
	URL            string `json:"url"`
	Description    string `json:"description,omitempty"`
	CategoryID     string `json:"categoryId"`
	IsFree         bool   `json:"isFree"`
	IsOpenSource   bool   `json:"isOpenSource"`
	IsAppStore     bool   `json:"isAppStore"`
	HasAwesomeList bool   `json:"hasAwesomeList"`
	OSSURL         string `json:"ossUrl,omitempty"`
}

// Result is the catalog produced by one parse invocation. It is never exposed
// before it is complete and must be treated as read-only afterwards, which
// makes it safe to share between goroutines without locking.
type Result struct {
	// Categories lists top-level categories in document order.
	Categories []*Category `json:"categories"`
	// Apps lists every extracted app in document order.
	Apps []*App `json:"apps"`
	// CategoryMap indexes categories and subcategories by slug and id.
	CategoryMap map[string]*Category `json:"-"`
	// AppMap indexes apps by slug and id.
	AppMap map[string]*App `json:"-"`
	// Diagnostics records the nodes dropped while parsing.
	Diagnostics []Diagnostic `json:"-"`
}

// Category looks up a category or subcategory by slug or id.
func (r *Result) Category(key string) (*Category, bool) {
	if r == nil {
		return nil, false
	}
	c, ok := r.CategoryMap[key]
	return c, ok
}

// App looks up an app by slug or id.
func (r *Result) App(key string) (*App, bool) {
	if r == nil {
		return nil, false
	}
	a, ok := r.AppMap[key]
	return a, ok
}

// Walk visits every category in document order, parents before their
// subcategories. Returning false stops the walk.
func (r *Result) Walk(fn func(*Category) bool) {
	if r == nil || fn == nil {
		return
	}
	var visit func([]*Category) bool
	visit = func(list []*Category) bool {
		for _, c := range list {
			if !fn(c) {
				return false
			}
			if !visit(c.Subcategories) {
				return false
			}
		}
		return true
	}
	visit(r.Categories)
}
