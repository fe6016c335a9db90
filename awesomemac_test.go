package awesomemac_test

import (
	"errors"
	"testing"

	awesomemac "github.com/goliatone/go-awesome-mac"
	"github.com/goliatone/go-awesome-mac/pkg/testsupport"
)

func TestParseMarkdownBuildsCatalog(t *testing.T) {
	result, err := awesomemac.ParseMarkdown(testsupport.SampleReadme(), awesomemac.Options{})
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if len(result.Categories) != 2 || len(result.Apps) != 8 {
		t.Fatalf("expected 2 categories and 8 apps, got %d and %d", len(result.Categories), len(result.Apps))
	}
	atom, ok := awesomemac.Query(result).App("atom")
	if !ok {
		t.Fatal("expected atom to be indexed")
	}
	if !atom.IsFree || !atom.IsOpenSource {
		t.Fatalf("unexpected atom marks %+v", atom)
	}
}

func TestParseDecodedAST(t *testing.T) {
	doc := []byte(`{"type":"root","children":[
		{"type":"heading","depth":2,"children":[{"type":"text","value":"Utilities"}]},
		{"type":"list","children":[{"type":"listItem","children":[{"type":"paragraph","children":[
			{"type":"link","url":"https://example.com/tool","children":[{"type":"text","value":"Tool"}]},
			{"type":"text","value":" - Does things."}
		]}]}]}
	]}`)
	nodes, err := awesomemac.DecodeAST(doc)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	result, err := awesomemac.Parse(nodes)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	app, ok := result.AppMap["tool"]
	if !ok || app.CategoryID != "utilities" {
		t.Fatalf("expected tool in utilities, got %+v", result.Apps)
	}
}

func TestParseOrphanSubcategory(t *testing.T) {
	_, err := awesomemac.ParseMarkdown([]byte("### Lonely\n\n* [App](https://example.com)\n"), awesomemac.Options{})
	if !errors.Is(err, awesomemac.ErrOrphanSubcategory) {
		t.Fatalf("expected ErrOrphanSubcategory, got %v", err)
	}
	if !errors.Is(err, awesomemac.ErrOrphanItem) {
		t.Fatalf("expected ErrOrphanItem in chain, got %v", err)
	}
}
