package ast

import (
	"encoding/json"
	"errors"
	"fmt"
)

// ErrInvalidDocument is returned when the JSON payload is not a node sequence
// or a root node carrying children.
var ErrInvalidDocument = errors.New("ast: invalid document")

type rawNode struct {
	Type     string            `json:"type"`
	Depth    int               `json:"depth,omitempty"`
	Ordered  bool              `json:"ordered,omitempty"`
	URL      string            `json:"url,omitempty"`
	Title    *string           `json:"title,omitempty"`
	Value    *string           `json:"value,omitempty"`
	Mark     *Mark             `json:"mark,omitempty"`
	Children []json.RawMessage `json:"children,omitempty"`
}

// Decode reads an mdast style JSON payload. It accepts either a top-level
// array of nodes or a single root object whose children form the sequence.
// Unsupported node types are inlined: their literal value becomes a Text node
// and their children are spliced into the parent.
func Decode(data []byte) ([]Node, error) {
	var list []json.RawMessage
	if err := json.Unmarshal(data, &list); err == nil {
		return decodeAll(list)
	}

	var root rawNode
	if err := json.Unmarshal(data, &root); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidDocument, err)
	}
	if root.Type != "" && root.Type != "root" {
		return nil, fmt.Errorf("%w: unexpected root type %q", ErrInvalidDocument, root.Type)
	}
	return decodeAll(root.Children)
}

func decodeAll(items []json.RawMessage) ([]Node, error) {
	nodes := make([]Node, 0, len(items))
	for i, item := range items {
		decoded, err := decodeOne(item)
		if err != nil {
			return nil, fmt.Errorf("node %d: %w", i, err)
		}
		nodes = append(nodes, decoded...)
	}
	return nodes, nil
}

func decodeOne(data json.RawMessage) ([]Node, error) {
	var raw rawNode
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidDocument, err)
	}
	children, err := decodeAll(raw.Children)
	if err != nil {
		return nil, err
	}

	switch Kind(raw.Type) {
	case KindHeading:
		return []Node{&Heading{Depth: raw.Depth, Children: children}}, nil
	case KindParagraph:
		return []Node{&Paragraph{Children: children}}, nil
	case KindEmphasis:
		return []Node{&Emphasis{Children: children}}, nil
	case KindText:
		return []Node{&Text{Value: deref(raw.Value)}}, nil
	case KindList:
		return []Node{&List{Ordered: raw.Ordered, Children: children}}, nil
	case KindListItem:
		return []Node{&ListItem{Children: children, Mark: raw.Mark}}, nil
	case KindLink:
		return []Node{&Link{URL: raw.URL, Title: deref(raw.Title), Children: children}}, nil
	case "":
		return nil, fmt.Errorf("%w: node type missing", ErrInvalidDocument)
	}

	if raw.Value != nil {
		return []Node{&Text{Value: *raw.Value}}, nil
	}
	return children, nil
}

func deref(value *string) string {
	if value == nil {
		return ""
	}
	return *value
}
