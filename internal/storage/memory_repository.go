package storage

import (
	"context"
	"sort"
	"sync"
	"time"
)

// MemoryRepository stores snapshots in-memory for tests and one-shot builds.
type MemoryRepository struct {
	mu        sync.RWMutex
	snapshots map[string]Snapshot
	now       func() time.Time
}

var _ Repository = (*MemoryRepository)(nil)

// NewMemoryRepository constructs an empty in-memory repository.
func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{
		snapshots: make(map[string]Snapshot),
		now:       func() time.Time { return time.Now().UTC() },
	}
}

// Save stores snapshot as the latest of its locale.
func (r *MemoryRepository) Save(_ context.Context, snapshot Snapshot) (*Snapshot, error) {
	locale, err := normalizeLocale(snapshot.Locale)
	if err != nil {
		return nil, err
	}
	if _, err := snapshot.Catalog(); err != nil {
		return nil, err
	}
	snapshot.Locale = locale
	stored := cloneSnapshot(snapshot)
	now := r.now()

	r.mu.Lock()
	existing, exists := r.snapshots[locale]
	if exists {
		stored.CreatedAt = existing.CreatedAt
	} else {
		stored.CreatedAt = now
	}
	stored.UpdatedAt = now
	r.snapshots[locale] = stored
	r.mu.Unlock()

	out := cloneSnapshot(stored)
	return &out, nil
}

// Latest returns the snapshot of locale.
func (r *MemoryRepository) Latest(_ context.Context, locale string) (*Snapshot, error) {
	key, err := normalizeLocale(locale)
	if err != nil {
		return nil, err
	}
	r.mu.RLock()
	snapshot, ok := r.snapshots[key]
	r.mu.RUnlock()
	if !ok {
		return nil, ErrSnapshotNotFound
	}
	out := cloneSnapshot(snapshot)
	return &out, nil
}

// List returns every snapshot ordered by locale.
func (r *MemoryRepository) List(context.Context) ([]Snapshot, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]Snapshot, 0, len(r.snapshots))
	for _, snapshot := range r.snapshots {
		out = append(out, cloneSnapshot(snapshot))
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].Locale < out[j].Locale
	})
	return out, nil
}

// Delete removes the snapshot of locale.
func (r *MemoryRepository) Delete(_ context.Context, locale string) error {
	key, err := normalizeLocale(locale)
	if err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.snapshots[key]; !ok {
		return ErrSnapshotNotFound
	}
	delete(r.snapshots, key)
	return nil
}
