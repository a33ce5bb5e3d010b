package i18n

import (
	"context"
	"embed"
	"fmt"
	"io/fs"
	"log/slog"
	"slices"
	"strings"
	"sync"

	"polyglot/internal/domain"
	"polyglot/internal/domain/entities"
	"polyglot/internal/domain/valueobject"
	"polyglot/internal/ports/output"
)

const (
	yamlPrefix = "messages_"
	tomlPrefix = "active."
)

//go:embed locales/*
var localeFS embed.FS

// Embedded returns the bundles shipped with the binary.
func Embedded() fs.FS {
	sub, err := fs.Sub(localeFS, "locales")
	if err != nil {
		panic("i18n: embedded locales: " + err.Error())
	}
	return sub
}

// Ensure FileRepository implements the output.MessageBundleRepository port.
var _ output.MessageBundleRepository = (*FileRepository)(nil)

// FileRepository serves bundles read once from the top level of a file tree:
// messages_<locale>.yaml files and go-i18n active.<locale>.toml files.
// Saved and deleted bundles only live in memory.
type FileRepository struct {
	mu      sync.RWMutex
	bundles map[entities.BundleID]entities.MessageBundle
}

// NewFileRepository loads every recognised bundle file found in fsys.
// Two files for the same locale are rejected.
func NewFileRepository(fsys fs.FS, logger *slog.Logger) (*FileRepository, error) {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	entries, err := fs.ReadDir(fsys, ".")
	if err != nil {
		return nil, fmt.Errorf("read bundle dir: %w", err)
	}

	r := &FileRepository{bundles: make(map[entities.BundleID]entities.MessageBundle)}
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		locale, ok := localeFromFileName(e.Name())
		if !ok {
			logger.Debug("skipping file", "file", e.Name())
			continue
		}

		var b entities.MessageBundle
		if strings.HasSuffix(e.Name(), ".toml") {
			b, err = LoadMessageFile(fsys, e.Name())
		} else {
			var data []byte
			data, err = fs.ReadFile(fsys, e.Name())
			if err == nil {
				b, err = ParseYAMLBundle(locale, data)
			}
		}
		if err != nil {
			return nil, err
		}
		if _, dup := r.bundles[b.ID]; dup {
			return nil, fmt.Errorf("%w: %s (%s)", domain.ErrDuplicateBundle, b.Locale, e.Name())
		}
		r.bundles[b.ID] = b
		logger.Info("bundle loaded", "locale", b.Locale.String(), "messages", b.Len(), "file", e.Name())
	}
	return r, nil
}

func (r *FileRepository) FindByID(_ context.Context, id entities.BundleID) (*entities.MessageBundle, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	b, ok := r.bundles[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrBundleNotFound, id)
	}
	return &b, nil
}

func (r *FileRepository) FindByLocale(ctx context.Context, locale valueobject.Locale) (*entities.MessageBundle, error) {
	return r.FindByID(ctx, entities.BundleIDFromLocale(locale))
}

func (r *FileRepository) FindByLanguage(_ context.Context, language string) ([]entities.MessageBundle, error) {
	language = strings.ToLower(language)

	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []entities.MessageBundle
	for _, b := range r.bundles {
		if b.Locale.Language == language {
			out = append(out, b)
		}
	}
	sortBundles(out)
	return out, nil
}

func (r *FileRepository) FindAll(_ context.Context) ([]entities.MessageBundle, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]entities.MessageBundle, 0, len(r.bundles))
	for _, b := range r.bundles {
		out = append(out, b)
	}
	sortBundles(out)
	return out, nil
}

func (r *FileRepository) ExistsByLocale(_ context.Context, locale valueobject.Locale) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	_, ok := r.bundles[entities.BundleIDFromLocale(locale)]
	return ok, nil
}

func (r *FileRepository) Save(_ context.Context, bundle entities.MessageBundle) error {
	if _, err := entities.NewBundleID(bundle.ID.String()); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.bundles[bundle.ID] = bundle
	return nil
}

func (r *FileRepository) DeleteByID(_ context.Context, id entities.BundleID) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.bundles[id]; !ok {
		return false, nil
	}
	delete(r.bundles, id)
	return true, nil
}

func sortBundles(bundles []entities.MessageBundle) {
	slices.SortFunc(bundles, func(a, b entities.MessageBundle) int {
		return strings.Compare(a.ID.String(), b.ID.String())
	})
}
