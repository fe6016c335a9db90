package storage

import (
	"strings"
	"testing"
)

func TestCompareDetectsChanges(t *testing.T) {
	prev := editorsCatalog(t, app("atom", "https://atom.io"), app("brackets", "http://brackets.io"))
	changed := app("atom", "https://atom-editor.cc")
	next := editorsCatalog(t, changed, app("zed", "https://zed.dev"))

	d := Compare("en@old", prev, "en@new", next)
	if d.Empty() {
		t.Fatal("expected changes")
	}
	if strings.Join(d.Added, ",") != "zed" || strings.Join(d.Removed, ",") != "brackets" || strings.Join(d.Changed, ",") != "atom" {
		t.Fatalf("unexpected diff %+v", d)
	}
	for _, want := range []string{"--- en@old", "+++ en@new", "-editors/brackets http://brackets.io", "+editors/zed https://zed.dev"} {
		if !strings.Contains(d.Unified, want) {
			t.Fatalf("expected %q in unified diff:\n%s", want, d.Unified)
		}
	}
}

func TestCompareIdenticalAndNil(t *testing.T) {
	result := sampleCatalog(t)
	if d := Compare("a", result, "b", sampleCatalog(t)); !d.Empty() || d.Unified != "" {
		t.Fatalf("expected empty diff, got %+v", d)
	}

	d := Compare("none", nil, "en", result)
	if len(d.Added) != 8 || len(d.Removed) != 0 {
		t.Fatalf("expected every app added, got %+v", d)
	}
}
