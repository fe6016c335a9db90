package catalog

import (
	"context"

	"github.com/goliatone/go-awesome-mac/internal/logging"
	"github.com/goliatone/go-awesome-mac/pkg/ast"
	"github.com/goliatone/go-awesome-mac/pkg/interfaces"
)

func heading(depth int, text string) *ast.Heading {
	return &ast.Heading{Depth: depth, Children: []ast.Node{&ast.Text{Value: text}}}
}

func emphasisParagraph(text string) *ast.Paragraph {
	return &ast.Paragraph{Children: []ast.Node{
		&ast.Emphasis{Children: []ast.Node{&ast.Text{Value: text}}},
	}}
}

func linkItem(name, url, description string, mark *ast.Mark) *ast.ListItem {
	children := []ast.Node{
		&ast.Link{URL: url, Children: []ast.Node{&ast.Text{Value: name}}},
	}
	if description != "" {
		children = append(children, &ast.Text{Value: description})
	}
	return &ast.ListItem{
		Children: []ast.Node{&ast.Paragraph{Children: children}},
		Mark:     mark,
	}
}

func list(items ...*ast.ListItem) *ast.List {
	nodes := make([]ast.Node, len(items))
	for i, item := range items {
		nodes[i] = item
	}
	return &ast.List{Children: nodes}
}

func noopLogger() interfaces.Logger {
	return logging.NoOp()
}

type recordingLogger struct {
	warns int
}

func (r *recordingLogger) Trace(string, ...any) {}
func (r *recordingLogger) Debug(string, ...any) {}
func (r *recordingLogger) Info(string, ...any)  {}
func (r *recordingLogger) Warn(string, ...any)  { r.warns++ }
func (r *recordingLogger) Error(string, ...any) {}
func (r *recordingLogger) Fatal(string, ...any) {}

func (r *recordingLogger) WithContext(context.Context) interfaces.Logger { return r }
