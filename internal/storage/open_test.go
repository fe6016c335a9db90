package storage

import (
	"context"
	"errors"
	"testing"

	"github.com/goliatone/go-awesome-mac/internal/runtimeconfig"
)

func TestOpenMemory(t *testing.T) {
	repo, closeFn, err := Open(context.Background(), runtimeconfig.StorageConfig{}, nil)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer closeFn()
	if _, ok := repo.(*MemoryRepository); !ok {
		t.Fatalf("expected memory repository, got %T", repo)
	}
}

func TestOpenSQLite(t *testing.T) {
	cfg := runtimeconfig.StorageConfig{Driver: "sqlite", DSN: "file:storage_open?mode=memory&cache=shared"}
	repo, closeFn, err := Open(context.Background(), cfg, nil)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer closeFn()
	if _, err := repo.Save(context.Background(), snapshotOf(t, "en", sampleCatalog(t))); err != nil {
		t.Fatalf("Save: %v", err)
	}
}

func TestOpenUnknownDriver(t *testing.T) {
	if _, _, err := Open(context.Background(), runtimeconfig.StorageConfig{Driver: "mongo"}, nil); !errors.Is(err, runtimeconfig.ErrStorageDriverUnknown) {
		t.Fatalf("expected ErrStorageDriverUnknown, got %v", err)
	}
}
