package database

import (
	"database/sql"
	"fmt"
	"time"

	"polyglot/internal/domain/entities"
	"polyglot/internal/domain/valueobject"
)

// bundleRow is one row of the bundles/messages left join. A bundle without
// messages yields a single row with NULL message columns.
type bundleRow struct {
	ID          string
	Language    string
	Country     string
	Variant     string
	LastUpdated time.Time
	MessageKey  sql.NullString
	Text        sql.NullString
}

type bundleAcc struct {
	row      bundleRow
	messages map[valueobject.MessageKey]string
}

// scanBundles folds joined rows into bundles, keeping the order in which
// bundle ids first appear.
func scanBundles(rows *sql.Rows) ([]entities.MessageBundle, error) {
	defer rows.Close()

	var order []string
	acc := make(map[string]*bundleAcc)
	for rows.Next() {
		var r bundleRow
		if err := rows.Scan(&r.ID, &r.Language, &r.Country, &r.Variant, &r.LastUpdated, &r.MessageKey, &r.Text); err != nil {
			return nil, fmt.Errorf("scan bundle row: %w", err)
		}
		a, ok := acc[r.ID]
		if !ok {
			a = &bundleAcc{row: r, messages: make(map[valueobject.MessageKey]string)}
			acc[r.ID] = a
			order = append(order, r.ID)
		}
		if !r.MessageKey.Valid {
			continue
		}
		key, err := valueobject.NewMessageKey(r.MessageKey.String)
		if err != nil {
			return nil, fmt.Errorf("bundle %s: %w", r.ID, err)
		}
		a.messages[key] = r.Text.String
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate bundle rows: %w", err)
	}

	out := make([]entities.MessageBundle, 0, len(order))
	for _, id := range order {
		a := acc[id]
		out = append(out, bundleToDomain(a.row, a.messages))
	}
	return out, nil
}

func bundleToDomain(r bundleRow, messages map[valueobject.MessageKey]string) entities.MessageBundle {
	return entities.RestoreMessageBundle(
		entities.BundleID(r.ID),
		valueobject.Of(r.Language, r.Country, r.Variant),
		messages,
		r.LastUpdated.UTC(),
	)
}
