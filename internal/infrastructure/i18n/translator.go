package i18n

import (
	"context"
	"fmt"
	"log/slog"

	"polyglot/internal/domain/entities"
	"polyglot/internal/domain/service"
	"polyglot/internal/domain/valueobject"
	"polyglot/internal/ports/output"
)

// Ensure Translator implements the output.T port.
var _ output.T = (*Translator)(nil)

// Translator is a thin string-in, string-out wrapper around a bundle
// repository and the resolution engine.
type Translator struct {
	repo     output.MessageBundleRepository
	resolver service.MessageResolutionService
	logger   *slog.Logger
}

func NewTranslator(repo output.MessageBundleRepository, logger *slog.Logger) *Translator {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Translator{
		repo:     repo,
		resolver: service.NewMessageResolutionService(),
		logger:   logger,
	}
}

// T renders key for locale. An unparsable locale is treated as English;
// a key that resolves nowhere is returned as is.
func (t *Translator) T(locale, key string, data map[string]any) string {
	if key == "" {
		return ""
	}
	k, err := valueobject.NewMessageKey(key)
	if err != nil {
		return key
	}
	loc, err := valueobject.ParseLocale(locale)
	if err != nil {
		loc = valueobject.English
	}

	all, err := t.repo.FindAll(context.Background())
	if err != nil {
		t.logger.Error("i18n: list bundles failed", "key", key, "error", err)
		return key
	}
	bundles, err := entities.IndexByLocale(all)
	if err != nil {
		t.logger.Error("i18n: index bundles failed", "error", err)
		return key
	}

	msg, ok := t.resolver.ResolveMessage(k, loc, bundles)
	if !ok {
		t.logger.Debug("i18n: no message", "key", key, "locale", loc.String())
		return key
	}
	if len(data) == 0 {
		return msg.Resolve()
	}
	params := make(map[string]string, len(data))
	for name, v := range data {
		params[name] = fmt.Sprint(v)
	}
	return msg.WithParameters(params).Resolve()
}
