package storage

import (
	"testing"
	"time"

	"github.com/goliatone/go-awesome-mac/internal/catalog"
	"github.com/goliatone/go-awesome-mac/pkg/testsupport"
)

var generatedAt = time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

func sampleCatalog(t *testing.T) *catalog.Result {
	t.Helper()
	result, err := testsupport.SampleCatalog()
	if err != nil {
		t.Fatalf("SampleCatalog: %v", err)
	}
	return result
}

func app(slug, url string) *catalog.App {
	return &catalog.App{ID: slug, Name: slug, Slug: slug, URL: url, CategoryID: "editors"}
}

func editorsCatalog(t *testing.T, apps ...*catalog.App) *catalog.Result {
	t.Helper()
	editors := &catalog.Category{
		ID:            "editors",
		Name:          "Editors",
		Slug:          "editors",
		Depth:         catalog.CategoryDepth,
		Subcategories: []*catalog.Category{},
		Apps:          apps,
	}
	result, err := catalog.Assemble([]*catalog.Category{editors}, apps)
	if err != nil {
		t.Fatalf("Assemble: %v", err)
	}
	return result
}

func snapshotOf(t *testing.T, locale string, result *catalog.Result) Snapshot {
	t.Helper()
	snapshot, err := NewSnapshot(locale, result, []byte{0xab, 0xcd}, generatedAt)
	if err != nil {
		t.Fatalf("NewSnapshot: %v", err)
	}
	return snapshot
}
