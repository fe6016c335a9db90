// Package storage persists parsed catalogs: JSON data files on disk and a
// snapshot repository that keeps the latest catalog of each locale.
package storage

import (
	"context"
	"encoding/hex"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/goliatone/go-awesome-mac/internal/catalog"
	"github.com/goliatone/go-awesome-mac/internal/identity"
)

// ErrSnapshotNotFound indicates that no snapshot exists for a locale.
var ErrSnapshotNotFound = errors.New("storage: snapshot not found")

// ErrLocaleRequired indicates that snapshot operations require a locale.
var ErrLocaleRequired = errors.New("storage: locale is required")

// Repository stores one catalog snapshot per locale.
type Repository interface {
	Save(ctx context.Context, snapshot Snapshot) (*Snapshot, error)
	Latest(ctx context.Context, locale string) (*Snapshot, error)
	List(ctx context.Context) ([]Snapshot, error)
	Delete(ctx context.Context, locale string) error
}

// Snapshot is the persisted catalog of one locale. Data holds the encoded
// data file.
type Snapshot struct {
	ID          uuid.UUID
	Locale      string
	Checksum    string
	GeneratedAt time.Time
	Categories  int
	Apps        int
	Data        []byte
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// NewSnapshot encodes result as the snapshot of locale. checksum identifies
// the source document the catalog was parsed from.
func NewSnapshot(locale string, result *catalog.Result, checksum []byte, generatedAt time.Time) (Snapshot, error) {
	locale = strings.TrimSpace(locale)
	if locale == "" {
		return Snapshot{}, ErrLocaleRequired
	}
	data, err := EncodeDataFile(NewDataFile(locale, result, generatedAt), false)
	if err != nil {
		return Snapshot{}, err
	}
	snapshot := Snapshot{
		ID:          identity.SnapshotUUID(locale),
		Locale:      locale,
		Checksum:    hex.EncodeToString(checksum),
		GeneratedAt: generatedAt.UTC(),
		Data:        data,
	}
	if result != nil {
		result.Walk(func(*catalog.Category) bool {
			snapshot.Categories++
			return true
		})
		snapshot.Apps = len(result.Apps)
	}
	return snapshot, nil
}

// Catalog decodes the snapshot data back into a catalog with rebuilt maps.
func (s Snapshot) Catalog() (*catalog.Result, error) {
	_, result, err := DecodeDataFile(s.Data)
	return result, err
}

func cloneSnapshot(s Snapshot) Snapshot {
	cloned := s
	if s.Data != nil {
		cloned.Data = append([]byte(nil), s.Data...)
	}
	return cloned
}

func normalizeLocale(locale string) (string, error) {
	trimmed := strings.TrimSpace(locale)
	if trimmed == "" {
		return "", ErrLocaleRequired
	}
	return trimmed, nil
}
