package markdown

import (
	"path"
	"strings"

	gast "github.com/yuin/goldmark/ast"

	"github.com/goliatone/go-awesome-mac/pkg/ast"
)

// Icon types emitted on list item marks.
const (
	IconFreeware    = "freeware"
	IconOpenSource  = "oss"
	IconAppStore    = "appstore"
	IconAwesomeList = "awesome-list"
)

// icons collects the attribute icons of a list item paragraph. A bare image
// yields an icon without url; an image wrapped in a link carries the link
// destination, e.g. the repository of an open source app.
func (c converter) icons(n gast.Node) []ast.Icon {
	var icons []ast.Icon
	_ = gast.Walk(n, func(node gast.Node, entering bool) (gast.WalkStatus, error) {
		if !entering {
			return gast.WalkContinue, nil
		}
		switch v := node.(type) {
		case *gast.Link:
			if img := iconImage(v); img != nil {
				icons = append(icons, ast.Icon{
					Type: iconType(c.plain(img), string(img.Destination)),
					URL:  string(v.Destination),
				})
				return gast.WalkSkipChildren, nil
			}
		case *gast.Image:
			icons = append(icons, ast.Icon{Type: iconType(c.plain(v), string(v.Destination))})
			return gast.WalkSkipChildren, nil
		}
		return gast.WalkContinue, nil
	})
	return icons
}

// iconImage returns the image when it is the only meaningful child of link.
func iconImage(link *gast.Link) *gast.Image {
	var img *gast.Image
	for child := link.FirstChild(); child != nil; child = child.NextSibling() {
		switch v := child.(type) {
		case *gast.Image:
			if img != nil {
				return nil
			}
			img = v
		case *gast.Text:
			if v.Segment.Len() > 0 && !v.SoftLineBreak() {
				return nil
			}
		default:
			return nil
		}
	}
	return img
}

var iconKeywords = []struct {
	keyword string
	kind    string
}{
	{"opensource", IconOpenSource},
	{"开源", IconOpenSource},
	{"freeware", IconFreeware},
	{"免费", IconFreeware},
	{"appstore", IconAppStore},
	{"awesome", IconAwesomeList},
}

var iconNames = map[string]string{
	"oss":  IconOpenSource,
	"free": IconFreeware,
}

// iconType classifies an icon from its alt text, falling back to the image
// file name (icons/oss.png, icons/app-store.png). Unrecognised icons keep a
// normalised form of their alt text so downstream consumers can still see them.
func iconType(alt, destination string) string {
	base := path.Base(destination)
	base = strings.TrimSuffix(base, path.Ext(base))
	for _, candidate := range []string{alt, base} {
		key := compactKey(candidate)
		if kind, ok := iconNames[key]; ok {
			return kind
		}
		for _, kw := range iconKeywords {
			if strings.Contains(key, kw.keyword) {
				return kw.kind
			}
		}
	}
	if key := compactKey(alt); key != "" {
		return key
	}
	return "unknown"
}

func compactKey(value string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(value) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9', r > 0x7f:
			b.WriteRune(r)
		}
	}
	return b.String()
}
