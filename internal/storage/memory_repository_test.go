package storage

import (
	"context"
	"errors"
	"testing"
)

func TestMemoryRepository_SaveLatestListDelete(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryRepository()

	if _, err := repo.Latest(ctx, "en"); !errors.Is(err, ErrSnapshotNotFound) {
		t.Fatalf("expected ErrSnapshotNotFound, got %v", err)
	}

	first, err := repo.Save(ctx, snapshotOf(t, "en", sampleCatalog(t)))
	if err != nil {
		t.Fatalf("Save: %v", err)
	}
	if first.Apps != 8 || first.Categories != 4 || first.Checksum != "abcd" {
		t.Fatalf("unexpected snapshot %+v", first)
	}

	second, err := repo.Save(ctx, snapshotOf(t, "en", editorsCatalog(t, app("atom", "https://atom.io"))))
	if err != nil {
		t.Fatalf("Save: %v", err)
	}
	if !second.CreatedAt.Equal(first.CreatedAt) {
		t.Fatal("expected created timestamp to survive updates")
	}

	if _, err := repo.Save(ctx, snapshotOf(t, "zh", sampleCatalog(t))); err != nil {
		t.Fatalf("Save zh: %v", err)
	}
	list, err := repo.List(ctx)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(list) != 2 || list[0].Locale != "en" || list[1].Locale != "zh" {
		t.Fatalf("unexpected list %+v", list)
	}

	latest, err := repo.Latest(ctx, "en")
	if err != nil {
		t.Fatalf("Latest: %v", err)
	}
	result, err := latest.Catalog()
	if err != nil {
		t.Fatalf("Catalog: %v", err)
	}
	if len(result.Apps) != 1 {
		t.Fatalf("expected replaced snapshot, got %d apps", len(result.Apps))
	}

	if err := repo.Delete(ctx, "en"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if err := repo.Delete(ctx, "en"); !errors.Is(err, ErrSnapshotNotFound) {
		t.Fatalf("expected ErrSnapshotNotFound, got %v", err)
	}
}

func TestMemoryRepository_RejectsInvalidSnapshots(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryRepository()

	if _, err := repo.Save(ctx, Snapshot{}); !errors.Is(err, ErrLocaleRequired) {
		t.Fatalf("expected ErrLocaleRequired, got %v", err)
	}
	if _, err := repo.Save(ctx, Snapshot{Locale: "en", Data: []byte("{}")}); err == nil {
		t.Fatal("expected invalid data to be rejected")
	}
}
