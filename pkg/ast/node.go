// Package ast defines the read-only document tree consumed by the catalog
// parser. Nodes form a closed set: every implementation lives in this package
// and callers discriminate kinds through a type switch.
package ast

// Kind identifies the variant carried by a Node.
type Kind string

const (
	KindHeading   Kind = "heading"
	KindParagraph Kind = "paragraph"
	KindEmphasis  Kind = "emphasis"
	KindText      Kind = "text"
	KindList      Kind = "list"
	KindListItem  Kind = "listItem"
	KindLink      Kind = "link"
)

// Node is the sealed sum type over the supported markdown constructs.
type Node interface {
	Kind() Kind
	sealed()
}

// Heading is a section title. Only depths 2 and 3 are structural.
type Heading struct {
	Depth    int
	Children []Node
}

// Paragraph groups inline content.
type Paragraph struct {
	Children []Node
}

// Emphasis wraps inline content rendered in italics.
type Emphasis struct {
	Children []Node
}

// Text is a leaf holding literal text.
type Text struct {
	Value string
}

// List holds list items in source order.
type List struct {
	Ordered  bool
	Children []Node
}

// ListItem is a single entry of a List. Mark carries structured metadata
// extracted alongside the item content, when present.
type ListItem struct {
	Children []Node
	Mark     *Mark
}

// Link is an inline hyperlink.
type Link struct {
	URL      string
	Title    string
	Children []Node
}

// Mark annotates a list item with its canonical title, url and attribute icons.
type Mark struct {
	Title  string `json:"title,omitempty"`
	URL    string `json:"url,omitempty"`
	Icons  []Icon `json:"icons,omitempty"`
	Delete bool   `json:"delete,omitempty"`
}

// Icon is a single attribute marker such as "freeware" or "oss".
type Icon struct {
	Type string `json:"type"`
	URL  string `json:"url,omitempty"`
}

func (*Heading) Kind() Kind   { return KindHeading }
func (*Paragraph) Kind() Kind { return KindParagraph }
func (*Emphasis) Kind() Kind  { return KindEmphasis }
func (*Text) Kind() Kind      { return KindText }
func (*List) Kind() Kind      { return KindList }
func (*ListItem) Kind() Kind  { return KindListItem }
func (*Link) Kind() Kind      { return KindLink }

func (*Heading) sealed()   {}
func (*Paragraph) sealed() {}
func (*Emphasis) sealed()  {}
func (*Text) sealed()      {}
func (*List) sealed()      {}
func (*ListItem) sealed()  {}
func (*Link) sealed()      {}

// Children returns the child nodes of any container kind. Leaves return nil.
func Children(n Node) []Node {
	switch v := n.(type) {
	case *Heading:
		return v.Children
	case *Paragraph:
		return v.Children
	case *Emphasis:
		return v.Children
	case *List:
		return v.Children
	case *ListItem:
		return v.Children
	case *Link:
		return v.Children
	default:
		return nil
	}
}

// PlainText concatenates the literal text reachable from the supplied nodes.
func PlainText(nodes []Node) string {
	var out []byte
	var walk func([]Node)
	walk = func(list []Node) {
		for _, n := range list {
			if t, ok := n.(*Text); ok {
				out = append(out, t.Value...)
				continue
			}
			walk(Children(n))
		}
	}
	walk(nodes)
	return string(out)
}
