package markdown

import (
	"context"
	"strings"
	"testing"
	"testing/fstest"
)

func testFS() fstest.MapFS {
	return fstest.MapFS{
		"README.md":       {Data: []byte("## Tools\n")},
		"README-zh.md":    {Data: []byte("## 工具\n")},
		"README-ja.md":    {Data: []byte("---\nlocale: ja-JP\ntitle: Awesome Mac JP\n---\n## Tools\n")},
		"docs/notes.md":   {Data: []byte("notes")},
		"ko/README.md":    {Data: []byte("## 도구\n")},
		"icons/README.md": {Data: []byte("---\nlocale: icons\n---\n")},
	}
}

func TestLoaderDetectsLocales(t *testing.T) {
	loader := NewLoader(testFS(), LoaderConfig{DefaultLocale: "en"})

	docs, err := loader.Load(context.Background())
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	var locales []string
	for _, doc := range docs {
		locales = append(locales, doc.Locale)
		if len(doc.Checksum) == 0 {
			t.Fatalf("expected checksum for %s", doc.Path)
		}
	}
	if got := strings.Join(locales, ","); got != "en,ja-JP,zh" {
		t.Fatalf("unexpected locales %s", got)
	}

	ja := docs[1]
	if ja.Title != "Awesome Mac JP" {
		t.Fatalf("expected frontmatter title, got %q", ja.Title)
	}
	if strings.Contains(string(ja.Body), "locale:") {
		t.Fatalf("expected frontmatter stripped from body, got %q", ja.Body)
	}
}

func TestLoaderRecursiveAndFiltered(t *testing.T) {
	loader := NewLoader(testFS(), LoaderConfig{Recursive: true, Locales: []string{"ko", "en"}})

	docs, err := loader.Load(context.Background())
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(docs) != 2 || docs[0].Locale != "en" || docs[1].Locale != "ko" {
		t.Fatalf("unexpected documents %#v", docs)
	}
}

func TestLoaderLocalePatternWins(t *testing.T) {
	loader := NewLoader(testFS(), LoaderConfig{LocalePatterns: map[string]string{"zh-CN": "README-zh.md"}})

	doc, err := loader.LoadFile("README-zh.md")
	if err != nil {
		t.Fatalf("LoadFile: %v", err)
	}
	if doc.Locale != "zh-CN" {
		t.Fatalf("expected pattern locale, got %s", doc.Locale)
	}
}

func TestLoaderRejectsDuplicateLocale(t *testing.T) {
	fsys := fstest.MapFS{
		"README-zh.md": {Data: []byte("a")},
		"README_zh.md": {Data: []byte("b")},
	}
	if _, err := NewLoader(fsys, LoaderConfig{}).Load(context.Background()); err == nil {
		t.Fatal("expected duplicate locale error")
	}
}

func TestLoaderHonoursCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := NewLoader(testFS(), LoaderConfig{}).Load(ctx); err == nil {
		t.Fatal("expected context error")
	}
}
