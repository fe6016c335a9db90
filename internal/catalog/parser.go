// Package catalog turns the node sequence of an awesome list document into a
// normalized catalog of categories and apps with lookup indices.
//
// Parsing is a single synchronous pass. Heading depth drives a two slot
// context (current category, current subcategory); lists found while a
// context is active become apps of the innermost category.
package catalog

import (
	"strings"

	"github.com/goliatone/go-awesome-mac/internal/logging"
	"github.com/goliatone/go-awesome-mac/pkg/ast"
	"github.com/goliatone/go-awesome-mac/pkg/interfaces"
)

// Option configures a parse invocation.
type Option func(*parser)

// WithLogger routes recovered diagnostics to logger.
func WithLogger(logger interfaces.Logger) Option {
	return func(p *parser) {
		if logger != nil {
			p.logger = logger
		}
	}
}

// Parse builds the catalog for one document. Recovered per-node problems are
// returned in Result.Diagnostics; structural problems (orphan content,
// duplicate index keys) abort the parse and return a nil Result.
func Parse(nodes []ast.Node, opts ...Option) (*Result, error) {
	p := &parser{
		logger: logging.NoOp(),
		slugs:  newRegistry(),
	}
	for _, opt := range opts {
		opt(p)
	}

	for i, node := range nodes {
		p.index = i
		if err := p.visit(node); err != nil {
			return nil, err
		}
	}

	result, err := Assemble(p.categories, p.apps)
	if err != nil {
		return nil, err
	}
	result.Diagnostics = p.diagnostics

	p.logger.Debug("catalog.parse.completed",
		"categories", len(p.categories),
		"apps", len(p.apps),
		"diagnostics", len(p.diagnostics),
	)
	return result, nil
}

type parser struct {
	logger interfaces.Logger
	slugs  *registry

	categories  []*Category
	apps        []*App
	diagnostics []Diagnostic

	currentCategory    *Category
	currentSubcategory *Category
	// skipping is set between a malformed category heading and the next
	// valid one. Content in that span has no enclosing category and is
	// dropped with a diagnostic instead of failing the parse.
	skipping bool
	// describable is the category created by the previous node, if any. Only
	// the node directly after a heading may carry its description.
	describable *Category

	index int
}

func (p *parser) visit(node ast.Node) error {
	describable := p.describable
	p.describable = nil

	switch n := node.(type) {
	case *ast.Heading:
		return p.heading(n)
	case *ast.Paragraph:
		if describable != nil {
			describable.Description = descriptionFrom(n)
		}
	case *ast.List:
		return p.list(n)
	case *ast.ListItem:
		return p.item(n)
	case *ast.Emphasis, *ast.Text, *ast.Link:
		// incidental inline content between sections
	}
	return nil
}

// owner returns the innermost active category.
func (p *parser) owner() *Category {
	if p.currentSubcategory != nil {
		return p.currentSubcategory
	}
	return p.currentCategory
}

func (p *parser) record(code Code, name string, err error) {
	p.diagnostics = append(p.diagnostics, Diagnostic{Code: code, Index: p.index, Name: name, Err: err})
	p.logger.Warn("catalog.parse.diagnostic", "code", string(code), "index", p.index, "name", name, "error", err)
}

func (p *parser) heading(h *ast.Heading) error {
	switch h.Depth {
	case CategoryDepth:
		p.currentSubcategory = nil
		name := headingText(h)
		s := slugFor(name, "category")
		if name == "" || s == "" {
			p.currentCategory = nil
			p.skipping = true
			p.record(CodeMalformedHeading, "", &MalformedHeadingError{Index: p.index, Depth: h.Depth})
			return nil
		}
		p.skipping = false
		category := &Category{
			ID:            s,
			Name:          name,
			Slug:          s,
			Depth:         CategoryDepth,
			Subcategories: []*Category{},
			Apps:          []*App{},
		}
		p.categories = append(p.categories, category)
		p.currentCategory = category
		p.describable = category

	case SubcategoryDepth:
		name := headingText(h)
		if p.currentCategory == nil {
			orphan := &OrphanItemError{Index: p.index, Name: name, Subcategory: true}
			if !p.skipping {
				return orphan
			}
			p.record(CodeOrphanItem, name, orphan)
			return nil
		}
		own := slugFor(name, "section")
		if name == "" || own == "" {
			p.currentSubcategory = nil
			p.record(CodeMalformedHeading, "", &MalformedHeadingError{Index: p.index, Depth: h.Depth})
			return nil
		}
		parent := p.currentCategory
		id := parent.Slug + "-" + own
		sub := &Category{
			ID:            id,
			Name:          name,
			Slug:          id,
			Depth:         SubcategoryDepth,
			ParentID:      parent.ID,
			Subcategories: []*Category{},
			Apps:          []*App{},
		}
		parent.Subcategories = append(parent.Subcategories, sub)
		p.currentSubcategory = sub
		p.describable = sub
	}
	return nil
}

func headingText(h *ast.Heading) string {
	return strings.Join(strings.Fields(ast.PlainText(h.Children)), " ")
}

// descriptionFrom returns the emphasis text of a paragraph whose first
// non-blank child is an emphasis node.
func descriptionFrom(p *ast.Paragraph) string {
	for _, child := range p.Children {
		switch c := child.(type) {
		case *ast.Text:
			if strings.TrimSpace(c.Value) == "" {
				continue
			}
			return ""
		case *ast.Emphasis:
			return strings.TrimSpace(ast.PlainText(c.Children))
		default:
			return ""
		}
	}
	return ""
}
