package output

import (
	"context"

	"polyglot/internal/domain/entities"
	"polyglot/internal/domain/valueobject"
)

// MessageBundleRepository supplies message bundles. Lookups of an absent
// bundle return domain.ErrBundleNotFound.
type MessageBundleRepository interface {
	FindByID(ctx context.Context, id entities.BundleID) (*entities.MessageBundle, error)
	FindByLocale(ctx context.Context, locale valueobject.Locale) (*entities.MessageBundle, error)
	FindByLanguage(ctx context.Context, language string) ([]entities.MessageBundle, error)
	FindAll(ctx context.Context) ([]entities.MessageBundle, error)
	ExistsByLocale(ctx context.Context, locale valueobject.Locale) (bool, error)
	Save(ctx context.Context, bundle entities.MessageBundle) error
	DeleteByID(ctx context.Context, id entities.BundleID) (bool, error)
}
