package application

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"sync"

	"polyglot/internal/domain"
	"polyglot/internal/domain/entities"
	"polyglot/internal/domain/valueobject"
)

type fakeRepo struct {
	mu      sync.Mutex
	bundles []entities.MessageBundle
	err     error
	saveErr error
	saved   []entities.BundleID
}

func newFakeRepo(bundles ...entities.MessageBundle) *fakeRepo {
	return &fakeRepo{bundles: bundles}
}

func (r *fakeRepo) FindByID(_ context.Context, id entities.BundleID) (*entities.MessageBundle, error) {
	if r.err != nil {
		return nil, r.err
	}
	for _, b := range r.bundles {
		if b.ID == id {
			return &b, nil
		}
	}
	return nil, fmt.Errorf("%w: %s", domain.ErrBundleNotFound, id)
}

func (r *fakeRepo) FindByLocale(ctx context.Context, locale valueobject.Locale) (*entities.MessageBundle, error) {
	return r.FindByID(ctx, entities.BundleIDFromLocale(locale))
}

func (r *fakeRepo) FindByLanguage(_ context.Context, language string) ([]entities.MessageBundle, error) {
	var out []entities.MessageBundle
	for _, b := range r.bundles {
		if b.Locale.Language == strings.ToLower(language) {
			out = append(out, b)
		}
	}
	return out, r.err
}

func (r *fakeRepo) FindAll(context.Context) ([]entities.MessageBundle, error) {
	if r.err != nil {
		return nil, r.err
	}
	return slices.Clone(r.bundles), nil
}

func (r *fakeRepo) ExistsByLocale(ctx context.Context, locale valueobject.Locale) (bool, error) {
	_, err := r.FindByLocale(ctx, locale)
	return err == nil, nil
}

func (r *fakeRepo) Save(_ context.Context, b entities.MessageBundle) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.saveErr != nil {
		return r.saveErr
	}
	r.saved = append(r.saved, b.ID)
	r.bundles = append(r.bundles, b)
	return nil
}

func (r *fakeRepo) DeleteByID(_ context.Context, id entities.BundleID) (bool, error) {
	for i, b := range r.bundles {
		if b.ID == id {
			r.bundles = slices.Delete(r.bundles, i, i+1)
			return true, nil
		}
	}
	return false, nil
}

type recordingMetrics struct {
	mu      sync.Mutex
	tiers   []string
	missing map[string]int
}

func (m *recordingMetrics) ObserveResolution(tier string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.tiers = append(m.tiers, tier)
}

func (m *recordingMetrics) ObserveMissingTranslations(locale string, n int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.missing == nil {
		m.missing = make(map[string]int)
	}
	m.missing[locale] = n
}
