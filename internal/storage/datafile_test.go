package storage

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/goliatone/go-awesome-mac/internal/catalog"
	"github.com/goliatone/go-awesome-mac/internal/validation"
)

func TestDataFileRoundTripRelinksApps(t *testing.T) {
	result := sampleCatalog(t)

	data, err := EncodeDataFile(NewDataFile("en", result, generatedAt), true)
	if err != nil {
		t.Fatalf("EncodeDataFile: %v", err)
	}
	df, decoded, err := DecodeDataFile(data)
	if err != nil {
		t.Fatalf("DecodeDataFile: %v", err)
	}
	if df.Locale != "en" || !df.GeneratedAt.Equal(generatedAt) {
		t.Fatalf("unexpected header %s %s", df.Locale, df.GeneratedAt)
	}
	if len(decoded.Apps) != len(result.Apps) || len(decoded.Categories) != len(result.Categories) {
		t.Fatalf("expected %d apps and %d categories, got %d and %d",
			len(result.Apps), len(result.Categories), len(decoded.Apps), len(decoded.Categories))
	}

	editors, ok := decoded.Category("development-tools-text-editors")
	if !ok {
		t.Fatal("expected subcategory in rebuilt map")
	}
	atom, ok := decoded.App("atom")
	if !ok {
		t.Fatal("expected app in rebuilt map")
	}
	if editors.Apps[0] != atom {
		t.Fatal("expected category apps to share the flat list instances")
	}
	if !atom.IsOpenSource || atom.OSSURL != "https://github.com/atom/atom" {
		t.Fatalf("unexpected decoded app %#v", atom)
	}
}

func TestDecodeDataFileRejectsUnknownCategoryApp(t *testing.T) {
	result := editorsCatalog(t, app("atom", "https://atom.io"))
	df := NewDataFile("en", result, generatedAt)
	df.Apps = []*catalog.App{}

	data, err := EncodeDataFile(df, false)
	if err != nil {
		t.Fatalf("EncodeDataFile: %v", err)
	}
	if _, _, err := DecodeDataFile(data); !errors.Is(err, ErrDataFileInconsistent) {
		t.Fatalf("expected ErrDataFileInconsistent, got %v", err)
	}
}

func TestDecodeDataFileValidatesSchema(t *testing.T) {
	_, _, err := DecodeDataFile([]byte(`{"locale": "", "generatedAt": "x", "categories": [], "apps": []}`))
	if !errors.Is(err, validation.ErrSchemaValidation) {
		t.Fatalf("expected ErrSchemaValidation, got %v", err)
	}
}

func TestWriteAndReadDataFile(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "data")
	result := sampleCatalog(t)

	path, err := WriteDataFile(dir, NewDataFile("zh", result, generatedAt), true)
	if err != nil {
		t.Fatalf("WriteDataFile: %v", err)
	}
	if path != filepath.Join(dir, "zh.json") {
		t.Fatalf("unexpected path %s", path)
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if !strings.Contains(string(raw), "\n  \"locale\": \"zh\"") {
		t.Fatalf("expected indented output, got %s", raw[:40])
	}

	_, decoded, err := ReadDataFile(path)
	if err != nil {
		t.Fatalf("ReadDataFile: %v", err)
	}
	if _, ok := decoded.App("github-desktop"); !ok {
		t.Fatal("expected app after reading data file")
	}

	if _, err := WriteDataFile(dir, NewDataFile(" ", result, generatedAt), false); !errors.Is(err, ErrLocaleRequired) {
		t.Fatalf("expected ErrLocaleRequired, got %v", err)
	}
}
