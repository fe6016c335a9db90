package catalog

import (
	"net/url"
	"strings"

	"github.com/goliatone/go-awesome-mac/pkg/ast"
)

type attribute uint8

const (
	attrUnknown attribute = iota
	attrFree
	attrOpenSource
	attrAppStore
	attrAwesomeList
)

var iconAttributes = map[string]attribute{
	"free":               attrFree,
	"freeware":           attrFree,
	"oss":                attrOpenSource,
	"opensource":         attrOpenSource,
	"opensourcesoftware": attrOpenSource,
	"appstore":           attrAppStore,
	"awesome":            attrAwesomeList,
	"awesomelist":        attrAwesomeList,
}

// classifyIcon maps an icon type tag onto a known attribute. Case, spaces,
// hyphens and underscores are ignored so "App-Store" and "appstore" match.
func classifyIcon(kind string) attribute {
	var b strings.Builder
	for _, r := range strings.ToLower(kind) {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		}
	}
	return iconAttributes[b.String()]
}

func (p *parser) list(l *ast.List) error {
	for _, child := range l.Children {
		item, ok := child.(*ast.ListItem)
		if !ok {
			continue
		}
		if err := p.item(item); err != nil {
			return err
		}
	}
	return nil
}

func (p *parser) item(item *ast.ListItem) error {
	mark := item.Mark
	if mark != nil && mark.Delete {
		return nil
	}

	inline, nested := splitItem(item.Children)
	link := firstLink(inline)

	owner := p.owner()
	if owner == nil {
		orphan := &OrphanItemError{Index: p.index, Name: itemName(mark, link, "")}
		if !p.skipping {
			return orphan
		}
		p.record(CodeOrphanItem, orphan.Name, orphan)
		for _, l := range nested {
			if err := p.list(l); err != nil {
				return err
			}
		}
		return nil
	}

	rawURL := ""
	if mark != nil {
		rawURL = strings.TrimSpace(mark.URL)
	}
	if rawURL == "" && link != nil {
		rawURL = strings.TrimSpace(link.URL)
	}

	name := itemName(mark, link, rawURL)
	switch {
	case rawURL == "":
		p.record(CodeMissingURL, name, &MissingURLError{Index: p.index, Name: name})
	case name == "":
		p.record(CodeMissingName, "", &MissingNameError{Index: p.index, URL: rawURL})
	default:
		p.addApp(owner, name, rawURL, inline, link, mark)
	}

	for _, l := range nested {
		if err := p.list(l); err != nil {
			return err
		}
	}
	return nil
}

func (p *parser) addApp(owner *Category, name, rawURL string, inline []ast.Node, link *ast.Link, mark *Mark) {
	s := p.slugs.claim(appSlugFor(name, rawURL))
	app := &App{
		ID:          s,
		Name:        name,
		Slug:        s,
		URL:         rawURL,
		Description: itemDescription(inline, link),
		CategoryID:  owner.ID,
	}
	if mark != nil {
		applyIcons(app, mark.Icons)
	}
	owner.Apps = append(owner.Apps, app)
	p.apps = append(p.apps, app)
}

func applyIcons(app *App, icons []ast.Icon) {
	for _, icon := range icons {
		switch classifyIcon(icon.Type) {
		case attrFree:
			app.IsFree = true
		case attrOpenSource:
			app.IsOpenSource = true
			if u := strings.TrimSpace(icon.URL); u != "" {
				app.OSSURL = u
			}
		case attrAppStore:
			app.IsAppStore = true
		case attrAwesomeList:
			app.HasAwesomeList = true
		}
	}
}

// itemName prefers the mark title, then the link text, then the url host.
func itemName(mark *Mark, link *ast.Link, rawURL string) string {
	if mark != nil {
		if title := strings.TrimSpace(mark.Title); title != "" {
			return title
		}
	}
	if link != nil {
		if text := strings.Join(strings.Fields(ast.PlainText(link.Children)), " "); text != "" {
			return text
		}
	}
	if rawURL == "" {
		return ""
	}
	u, err := url.Parse(rawURL)
	if err != nil {
		return ""
	}
	return strings.TrimPrefix(u.Hostname(), "www.")
}

// splitItem flattens paragraphs into one inline sequence and sets nested
// lists apart.
func splitItem(children []ast.Node) ([]ast.Node, []*ast.List) {
	var inline []ast.Node
	var nested []*ast.List
	for _, child := range children {
		switch c := child.(type) {
		case *ast.Paragraph:
			inline = append(inline, c.Children...)
		case *ast.List:
			nested = append(nested, c)
		case *ast.Heading, *ast.ListItem:
			// not inline content
		default:
			inline = append(inline, c)
		}
	}
	return inline, nested
}

func firstLink(nodes []ast.Node) *ast.Link {
	for _, n := range nodes {
		if link, ok := n.(*ast.Link); ok {
			return link
		}
		if link := firstLink(ast.Children(n)); link != nil {
			return link
		}
	}
	return nil
}

const descriptionSeparators = "-–—:"

// itemDescription joins the text that follows the link. Without a link the
// whole inline text is used.
func itemDescription(inline []ast.Node, link *ast.Link) string {
	start := 0
	if link != nil {
		for i, n := range inline {
			if n == ast.Node(link) || firstLink(ast.Children(n)) == link {
				start = i + 1
				break
			}
		}
	}
	text := strings.Join(strings.Fields(ast.PlainText(inline[start:])), " ")
	return strings.TrimLeft(text, descriptionSeparators+" ")
}
