package markdown

import (
	"bytes"
	"strings"

	"github.com/yuin/goldmark"
	gast "github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	extast "github.com/yuin/goldmark/extension/ast"
	"github.com/yuin/goldmark/text"

	"github.com/goliatone/go-awesome-mac/pkg/ast"
	"github.com/goliatone/go-awesome-mac/pkg/interfaces"
)

// TokenizerOptions configures the goldmark tokenizer.
type TokenizerOptions struct {
	// SkipSections lists depth 2 headings whose content is dropped, such as
	// the table of contents. Matching ignores case.
	SkipSections []string
}

// GoldmarkTokenizer implements interfaces.Tokenizer. It holds no per-call
// state and can be shared.
type GoldmarkTokenizer struct {
	engine goldmark.Markdown
	skip   map[string]struct{}
}

var _ interfaces.Tokenizer = (*GoldmarkTokenizer)(nil)

// NewGoldmarkTokenizer builds a tokenizer with GFM enabled so that
// strikethrough list items can be recognised as deleted.
func NewGoldmarkTokenizer(opts TokenizerOptions) *GoldmarkTokenizer {
	skip := make(map[string]struct{}, len(opts.SkipSections))
	for _, name := range opts.SkipSections {
		if key := sectionKey(name); key != "" {
			skip[key] = struct{}{}
		}
	}
	return &GoldmarkTokenizer{
		engine: goldmark.New(goldmark.WithExtensions(extension.GFM)),
		skip:   skip,
	}
}

// Tokenize parses source and returns its top-level nodes in document order.
func (t *GoldmarkTokenizer) Tokenize(source []byte) ([]ast.Node, error) {
	doc := t.engine.Parser().Parse(text.NewReader(source))
	conv := converter{source: source}

	var nodes []ast.Node
	skipping := false
	for child := doc.FirstChild(); child != nil; child = child.NextSibling() {
		if h, ok := child.(*gast.Heading); ok && h.Level <= 2 {
			_, skipping = t.skip[sectionKey(conv.plain(h))]
			if skipping {
				continue
			}
		}
		if skipping {
			continue
		}
		if node := conv.block(child); node != nil {
			nodes = append(nodes, node)
		}
	}
	return nodes, nil
}

func sectionKey(name string) string {
	return strings.ToLower(strings.Join(strings.Fields(name), " "))
}

type converter struct {
	source []byte
}

func (c converter) block(n gast.Node) ast.Node {
	switch v := n.(type) {
	case *gast.Heading:
		return &ast.Heading{Depth: v.Level, Children: c.inlines(v)}
	case *gast.Paragraph, *gast.TextBlock:
		return &ast.Paragraph{Children: c.inlines(v)}
	case *gast.List:
		return c.list(v)
	default:
		return nil
	}
}

func (c converter) list(l *gast.List) *ast.List {
	out := &ast.List{Ordered: l.IsOrdered()}
	for child := l.FirstChild(); child != nil; child = child.NextSibling() {
		if item, ok := child.(*gast.ListItem); ok {
			out.Children = append(out.Children, c.item(item))
		}
	}
	return out
}

func (c converter) item(li *gast.ListItem) *ast.ListItem {
	out := &ast.ListItem{}
	var mark ast.Mark
	first := true
	for child := li.FirstChild(); child != nil; child = child.NextSibling() {
		switch v := child.(type) {
		case *gast.Paragraph, *gast.TextBlock:
			if first {
				mark.Icons = c.icons(v)
				mark.Delete = struck(v)
				first = false
			}
			out.Children = append(out.Children, &ast.Paragraph{Children: c.inlines(v)})
		case *gast.List:
			out.Children = append(out.Children, c.list(v))
		}
	}
	if len(mark.Icons) > 0 || mark.Delete {
		out.Mark = &mark
	}
	return out
}

// inlines converts the inline children of n. Icon images, alone or wrapped
// in a link, are left out: they surface as mark icons instead.
func (c converter) inlines(n gast.Node) []ast.Node {
	var out []ast.Node
	for child := n.FirstChild(); child != nil; child = child.NextSibling() {
		out = append(out, c.inline(child)...)
	}
	return out
}

func (c converter) inline(n gast.Node) []ast.Node {
	switch v := n.(type) {
	case *gast.Text:
		value := string(v.Segment.Value(c.source))
		if v.SoftLineBreak() || v.HardLineBreak() {
			value += " "
		}
		return []ast.Node{&ast.Text{Value: value}}
	case *gast.String:
		return []ast.Node{&ast.Text{Value: string(v.Value)}}
	case *gast.CodeSpan:
		return []ast.Node{&ast.Text{Value: c.plain(v)}}
	case *gast.Emphasis:
		if v.Level == 1 {
			return []ast.Node{&ast.Emphasis{Children: c.inlines(v)}}
		}
		return c.inlines(v)
	case *gast.Link:
		if iconImage(v) != nil {
			return nil
		}
		return []ast.Node{&ast.Link{
			URL:      string(v.Destination),
			Title:    string(v.Title),
			Children: c.inlines(v),
		}}
	case *gast.AutoLink:
		return []ast.Node{&ast.Link{
			URL:      string(v.URL(c.source)),
			Children: []ast.Node{&ast.Text{Value: string(v.Label(c.source))}},
		}}
	case *gast.Image, *gast.RawHTML:
		return nil
	case *extast.Strikethrough:
		return c.inlines(v)
	default:
		return c.inlines(v)
	}
}

// plain returns the literal text below n.
func (c converter) plain(n gast.Node) string {
	var buf bytes.Buffer
	_ = gast.Walk(n, func(node gast.Node, entering bool) (gast.WalkStatus, error) {
		if !entering {
			return gast.WalkContinue, nil
		}
		switch v := node.(type) {
		case *gast.Text:
			buf.Write(v.Segment.Value(c.source))
			if v.SoftLineBreak() {
				buf.WriteByte(' ')
			}
		case *gast.String:
			buf.Write(v.Value)
		}
		return gast.WalkContinue, nil
	})
	return strings.TrimSpace(buf.String())
}

// struck reports whether the first link of a list item paragraph is inside a
// strikethrough span.
func struck(n gast.Node) bool {
	deleted := false
	_ = gast.Walk(n, func(node gast.Node, entering bool) (gast.WalkStatus, error) {
		if !entering {
			return gast.WalkContinue, nil
		}
		link, ok := node.(*gast.Link)
		if !ok || iconImage(link) != nil {
			return gast.WalkContinue, nil
		}
		for p := link.Parent(); p != nil && p != n; p = p.Parent() {
			if _, ok := p.(*extast.Strikethrough); ok {
				deleted = true
			}
		}
		return gast.WalkStop, nil
	})
	return deleted
}
