package storage

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"

	"github.com/goliatone/go-awesome-mac/internal/catalog"
	"github.com/goliatone/go-awesome-mac/internal/identity"
)

var errNoDatabase = errors.New("storage: bun repository requires a database")

// insertBatchSize keeps bulk inserts below the sqlite bound parameter limit.
const insertBatchSize = 500

// BunRepository persists snapshots using a Bun-backed database. Besides the
// encoded snapshot it keeps one row per app so catalogs can be queried in SQL.
type BunRepository struct {
	db  *bun.DB
	now func() time.Time
}

var _ Repository = (*BunRepository)(nil)

// NewBunRepository constructs a Bun-backed repository.
func NewBunRepository(db *bun.DB) *BunRepository {
	return &BunRepository{
		db:  db,
		now: func() time.Time { return time.Now().UTC() },
	}
}

// Migrate creates the snapshot tables when missing.
func (r *BunRepository) Migrate(ctx context.Context) error {
	if r.db == nil {
		return errNoDatabase
	}
	for _, model := range []any{(*snapshotModel)(nil), (*AppRecord)(nil)} {
		if _, err := r.db.NewCreateTable().Model(model).IfNotExists().Exec(ctx); err != nil {
			return err
		}
	}
	_, err := r.db.NewCreateIndex().
		Model((*AppRecord)(nil)).
		Index("catalog_apps_snapshot_idx").
		Column("snapshot_id", "position").
		IfNotExists().
		Exec(ctx)
	return err
}

// Save stores snapshot as the latest of its locale and replaces its app rows.
func (r *BunRepository) Save(ctx context.Context, snapshot Snapshot) (*Snapshot, error) {
	if r.db == nil {
		return nil, errNoDatabase
	}
	locale, err := normalizeLocale(snapshot.Locale)
	if err != nil {
		return nil, err
	}
	result, err := snapshot.Catalog()
	if err != nil {
		return nil, err
	}
	snapshot.Locale = locale
	snapshot.ID = identity.SnapshotUUID(locale)

	err = r.db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		var existing snapshotModel
		err := tx.NewSelect().Model(&existing).Where("locale = ?", locale).Scan(ctx)
		created := false
		if err != nil {
			if !errors.Is(err, sql.ErrNoRows) {
				return err
			}
			created = true
		}

		model := modelFromSnapshot(snapshot)
		now := r.now()
		model.UpdatedAt = now
		if created {
			model.CreatedAt = now
			if _, err := tx.NewInsert().Model(&model).Exec(ctx); err != nil {
				return err
			}
		} else {
			model.CreatedAt = existing.CreatedAt
			if _, err := tx.NewUpdate().
				Model(&model).
				Column("checksum", "generated_at", "category_count", "app_count", "data", "updated_at").
				WherePK().
				Exec(ctx); err != nil {
				return err
			}
		}

		if _, err := tx.NewDelete().Model((*AppRecord)(nil)).Where("snapshot_id = ?", model.ID).Exec(ctx); err != nil {
			return err
		}
		rows := appRecords(model.ID, result)
		for start := 0; start < len(rows); start += insertBatchSize {
			batch := rows[start:min(start+insertBatchSize, len(rows))]
			if _, err := tx.NewInsert().Model(&batch).Exec(ctx); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return r.Latest(ctx, locale)
}

// Latest returns the snapshot of locale.
func (r *BunRepository) Latest(ctx context.Context, locale string) (*Snapshot, error) {
	if r.db == nil {
		return nil, errNoDatabase
	}
	key, err := normalizeLocale(locale)
	if err != nil {
		return nil, err
	}
	var model snapshotModel
	if err := r.db.NewSelect().Model(&model).Where("locale = ?", key).Scan(ctx); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrSnapshotNotFound
		}
		return nil, err
	}
	snapshot := modelToSnapshot(&model)
	return &snapshot, nil
}

// List returns every snapshot ordered by locale.
func (r *BunRepository) List(ctx context.Context) ([]Snapshot, error) {
	if r.db == nil {
		return nil, errNoDatabase
	}
	var models []snapshotModel
	if err := r.db.NewSelect().Model(&models).Order("locale ASC").Scan(ctx); err != nil {
		return nil, err
	}
	out := make([]Snapshot, len(models))
	for i := range models {
		out[i] = modelToSnapshot(&models[i])
	}
	return out, nil
}

// Delete removes the snapshot of locale and its app rows.
func (r *BunRepository) Delete(ctx context.Context, locale string) error {
	if r.db == nil {
		return errNoDatabase
	}
	snapshot, err := r.Latest(ctx, locale)
	if err != nil {
		return err
	}
	return r.db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		if _, err := tx.NewDelete().Model((*AppRecord)(nil)).Where("snapshot_id = ?", snapshot.ID).Exec(ctx); err != nil {
			return err
		}
		_, err := tx.NewDelete().Model((*snapshotModel)(nil)).Where("id = ?", snapshot.ID).Exec(ctx)
		return err
	})
}

// Apps returns the app rows of locale in document order.
func (r *BunRepository) Apps(ctx context.Context, locale string) ([]AppRecord, error) {
	snapshot, err := r.Latest(ctx, locale)
	if err != nil {
		return nil, err
	}
	var rows []AppRecord
	if err := r.db.NewSelect().
		Model(&rows).
		Where("snapshot_id = ?", snapshot.ID).
		Order("position ASC").
		Scan(ctx); err != nil {
		return nil, err
	}
	return rows, nil
}

type snapshotModel struct {
	bun.BaseModel `bun:"table:catalog_snapshots"`

	ID            uuid.UUID `bun:"id,pk,type:uuid"`
	Locale        string    `bun:"locale,notnull,unique"`
	Checksum      string    `bun:"checksum"`
	GeneratedAt   time.Time `bun:"generated_at"`
	CategoryCount int       `bun:"category_count"`
	AppCount      int       `bun:"app_count"`
	Data          string    `bun:"data,type:text"`
	CreatedAt     time.Time `bun:"created_at"`
	UpdatedAt     time.Time `bun:"updated_at"`
}

// AppRecord is the relational row of one app within a snapshot.
type AppRecord struct {
	bun.BaseModel `bun:"table:catalog_apps"`

	ID             uuid.UUID `bun:"id,pk,type:uuid"`
	SnapshotID     uuid.UUID `bun:"snapshot_id,type:uuid,notnull"`
	Position       int       `bun:"position"`
	Slug           string    `bun:"slug,notnull"`
	Name           string    `bun:"name,notnull"`
	URL            string    `bun:"url"`
	Description    string    `bun:"description"`
	CategoryID     string    `bun:"category_id"`
	IsFree         bool      `bun:"is_free"`
	IsOpenSource   bool      `bun:"is_open_source"`
	IsAppStore     bool      `bun:"is_app_store"`
	HasAwesomeList bool      `bun:"has_awesome_list"`
	OSSURL         string    `bun:"oss_url"`
}

func appRecords(snapshotID uuid.UUID, result *catalog.Result) []AppRecord {
	if result == nil {
		return nil
	}
	rows := make([]AppRecord, 0, len(result.Apps))
	for i, app := range result.Apps {
		rows = append(rows, AppRecord{
			ID:             identity.AppUUID(snapshotID, app.ID),
			SnapshotID:     snapshotID,
			Position:       i,
			Slug:           app.Slug,
			Name:           app.Name,
			URL:            app.URL,
			Description:    app.Description,
			CategoryID:     app.CategoryID,
			IsFree:         app.IsFree,
			IsOpenSource:   app.IsOpenSource,
			IsAppStore:     app.IsAppStore,
			HasAwesomeList: app.HasAwesomeList,
			OSSURL:         app.OSSURL,
		})
	}
	return rows
}

func modelFromSnapshot(snapshot Snapshot) snapshotModel {
	return snapshotModel{
		ID:            snapshot.ID,
		Locale:        snapshot.Locale,
		Checksum:      snapshot.Checksum,
		GeneratedAt:   snapshot.GeneratedAt.UTC(),
		CategoryCount: snapshot.Categories,
		AppCount:      snapshot.Apps,
		Data:          string(snapshot.Data),
	}
}

func modelToSnapshot(model *snapshotModel) Snapshot {
	if model == nil {
		return Snapshot{}
	}
	return Snapshot{
		ID:          model.ID,
		Locale:      model.Locale,
		Checksum:    model.Checksum,
		GeneratedAt: model.GeneratedAt.UTC(),
		Categories:  model.CategoryCount,
		Apps:        model.AppCount,
		Data:        []byte(model.Data),
		CreatedAt:   model.CreatedAt,
		UpdatedAt:   model.UpdatedAt,
	}
}
