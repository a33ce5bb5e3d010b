package database

import (
	"context"
	"database/sql"
	"fmt"

	"polyglot/internal/domain"
	"polyglot/internal/domain/entities"
	"polyglot/internal/domain/valueobject"
	"polyglot/internal/ports/output"
)

const (
	selectBundles = `SELECT b.id, b.language, b.country, b.variant, b.last_updated, m.message_key, m.text
FROM message_bundles b
LEFT JOIN bundle_messages m ON m.bundle_id = b.id`

	existsBundle = `SELECT EXISTS (SELECT 1 FROM message_bundles WHERE id = $1)`

	upsertBundle = `INSERT INTO message_bundles (id, language, country, variant, last_updated)
VALUES ($1, $2, $3, $4, $5)
ON CONFLICT (id) DO UPDATE SET
	language = EXCLUDED.language,
	country = EXCLUDED.country,
	variant = EXCLUDED.variant,
	last_updated = EXCLUDED.last_updated`

	deleteMessages = `DELETE FROM bundle_messages WHERE bundle_id = $1`
	insertMessage  = `INSERT INTO bundle_messages (bundle_id, message_key, text) VALUES ($1, $2, $3)`
	deleteBundle   = `DELETE FROM message_bundles WHERE id = $1`
)

var _ output.MessageBundleRepository = (*BundleRepository)(nil)

type BundleRepository struct {
	db *sql.DB
}

func NewBundleRepository(db *sql.DB) *BundleRepository {
	return &BundleRepository{db: db}
}

func (r *BundleRepository) FindByID(ctx context.Context, id entities.BundleID) (*entities.MessageBundle, error) {
	bundles, err := r.query(ctx, selectBundles+" WHERE b.id = $1 ORDER BY b.id, m.message_key", id.String())
	if err != nil {
		return nil, fmt.Errorf("get bundle by id: %w", err)
	}
	if len(bundles) == 0 {
		return nil, fmt.Errorf("%w: %s", domain.ErrBundleNotFound, id)
	}
	return &bundles[0], nil
}

func (r *BundleRepository) FindByLocale(ctx context.Context, locale valueobject.Locale) (*entities.MessageBundle, error) {
	return r.FindByID(ctx, entities.BundleIDFromLocale(locale))
}

func (r *BundleRepository) FindByLanguage(ctx context.Context, language string) ([]entities.MessageBundle, error) {
	bundles, err := r.query(ctx, selectBundles+" WHERE b.language = lower($1) ORDER BY b.id, m.message_key", language)
	if err != nil {
		return nil, fmt.Errorf("list bundles by language: %w", err)
	}
	return bundles, nil
}

func (r *BundleRepository) FindAll(ctx context.Context) ([]entities.MessageBundle, error) {
	bundles, err := r.query(ctx, selectBundles+" ORDER BY b.id, m.message_key")
	if err != nil {
		return nil, fmt.Errorf("list bundles: %w", err)
	}
	return bundles, nil
}

func (r *BundleRepository) ExistsByLocale(ctx context.Context, locale valueobject.Locale) (bool, error) {
	var exists bool
	if err := r.db.QueryRowContext(ctx, existsBundle, entities.BundleIDFromLocale(locale).String()).Scan(&exists); err != nil {
		return false, fmt.Errorf("bundle exists: %w", err)
	}
	return exists, nil
}

// Save replaces the stored bundle and all of its messages in one transaction.
func (r *BundleRepository) Save(ctx context.Context, bundle entities.MessageBundle) error {
	if _, err := entities.NewBundleID(bundle.ID.String()); err != nil {
		return err
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin save bundle: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	id := bundle.ID.String()
	if _, err := tx.ExecContext(ctx, upsertBundle,
		id, bundle.Locale.Language, bundle.Locale.Country, bundle.Locale.Variant, bundle.LastUpdated,
	); err != nil {
		return fmt.Errorf("upsert bundle %s: %w", id, err)
	}
	if _, err := tx.ExecContext(ctx, deleteMessages, id); err != nil {
		return fmt.Errorf("clear bundle messages %s: %w", id, err)
	}
	for _, key := range bundle.Keys() {
		text, _ := bundle.Message(key)
		if _, err := tx.ExecContext(ctx, insertMessage, id, key.String(), text); err != nil {
			return fmt.Errorf("insert message %s/%s: %w", id, key, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit save bundle %s: %w", id, err)
	}
	return nil
}

func (r *BundleRepository) DeleteByID(ctx context.Context, id entities.BundleID) (bool, error) {
	res, err := r.db.ExecContext(ctx, deleteBundle, id.String())
	if err != nil {
		return false, fmt.Errorf("delete bundle: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("delete bundle: %w", err)
	}
	return n > 0, nil
}

func (r *BundleRepository) query(ctx context.Context, query string, args ...any) ([]entities.MessageBundle, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	return scanBundles(rows)
}
