package application

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"golang.org/x/text/language"

	"polyglot/internal/domain"
	"polyglot/internal/domain/entities"
	"polyglot/internal/domain/service"
	"polyglot/internal/domain/valueobject"
	"polyglot/internal/ports/input"
	"polyglot/internal/ports/output"
)

var (
	_ input.MessageUseCase     = (*MessageService)(nil)
	_ input.BundleAuditUseCase = (*MessageService)(nil)
)

type MessageService struct {
	bundleRepo output.MessageBundleRepository
	resolver   service.MessageResolutionService
	metrics    output.ResolutionMetrics
	logger     *slog.Logger
}

// NewMessageService wires the bundle supplier and the resolution engine.
// metrics and logger may be nil.
func NewMessageService(
	bundleRepo output.MessageBundleRepository,
	resolver service.MessageResolutionService,
	metrics output.ResolutionMetrics,
	logger *slog.Logger,
) *MessageService {
	if metrics == nil {
		metrics = noopMetrics{}
	}
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &MessageService{
		bundleRepo: bundleRepo,
		resolver:   resolver,
		metrics:    metrics,
		logger:     logger,
	}
}

func (s *MessageService) GetMessage(ctx context.Context, key valueobject.MessageKey, locale valueobject.Locale) (valueobject.Message, error) {
	bundles, err := s.snapshot(ctx)
	if err != nil {
		return valueobject.Message{}, err
	}
	r := s.resolver.Resolve(key, locale, bundles)
	s.metrics.ObserveResolution(string(r.Tier))
	if !r.Found {
		s.logger.DebugContext(ctx, "message not found", "key", key.String(), "locale", locale.String())
		return valueobject.Message{}, fmt.Errorf("%w: %s for %s", domain.ErrMessageNotFound, key, locale)
	}
	if r.Tier != service.TierExact {
		s.logger.DebugContext(ctx, "message resolved by fallback",
			"key", key.String(), "requested", locale.String(), "resolved", r.Message.Locale.String(), "tier", string(r.Tier))
	}
	return r.Message, nil
}

func (s *MessageService) GetMessageWithParams(
	ctx context.Context,
	key valueobject.MessageKey,
	params map[string]string,
	locale valueobject.Locale,
) (valueobject.Message, error) {
	msg, err := s.GetMessage(ctx, key, locale)
	if err != nil {
		return valueobject.Message{}, err
	}
	return msg.WithParameters(params), nil
}

func (s *MessageService) GetGreeting(ctx context.Context, name string, locale valueobject.Locale) (valueobject.Message, error) {
	return s.GetMessageWithParams(ctx, valueobject.KeyGreeting, map[string]string{"name": name}, locale)
}

func (s *MessageService) GetWelcomeMessage(ctx context.Context, locale valueobject.Locale) (valueobject.Message, error) {
	return s.GetMessage(ctx, valueobject.KeyWelcome, locale)
}

// GetUserMessage resolves "user.<action>".
func (s *MessageService) GetUserMessage(ctx context.Context, action string, locale valueobject.Locale) (valueobject.Message, error) {
	key, err := childKey("user", action)
	if err != nil {
		return valueobject.Message{}, err
	}
	return s.GetMessage(ctx, key, locale)
}

// GetErrorMessage resolves "error.<category>.<kind>".
func (s *MessageService) GetErrorMessage(ctx context.Context, category, kind string, locale valueobject.Locale) (valueobject.Message, error) {
	key, err := childKey("error", category, kind)
	if err != nil {
		return valueobject.Message{}, err
	}
	return s.GetMessage(ctx, key, locale)
}

// GetSuccessMessage resolves "success.<kind>".
func (s *MessageService) GetSuccessMessage(ctx context.Context, kind string, locale valueobject.Locale) (valueobject.Message, error) {
	key, err := childKey("success", kind)
	if err != nil {
		return valueobject.Message{}, err
	}
	return s.GetMessage(ctx, key, locale)
}

// GetAllMessages returns the bundle of locale, else the English bundle, else
// an empty mapping under locale. The returned locale names the bundle used.
func (s *MessageService) GetAllMessages(
	ctx context.Context,
	locale valueobject.Locale,
) (valueobject.Locale, map[valueobject.MessageKey]string, error) {
	for _, candidate := range []valueobject.Locale{locale, valueobject.English} {
		b, err := s.bundleRepo.FindByLocale(ctx, candidate)
		if errors.Is(err, domain.ErrBundleNotFound) {
			continue
		}
		if err != nil {
			s.logger.ErrorContext(ctx, "find bundle failed", "locale", candidate.String(), "error", err)
			return locale, nil, fmt.Errorf("find bundle %s: %w", candidate, err)
		}
		return b.Locale, b.Messages(), nil
	}
	return locale, map[valueobject.MessageKey]string{}, nil
}

// DetectLocale picks the best locale currently served for an Accept-Language
// header. English wins when the header is empty, malformed or unmatched.
func (s *MessageService) DetectLocale(ctx context.Context, acceptLanguage string) valueobject.Locale {
	if strings.TrimSpace(acceptLanguage) == "" {
		return valueobject.English
	}
	tags, _, err := language.ParseAcceptLanguage(acceptLanguage)
	if err != nil || len(tags) == 0 {
		s.logger.DebugContext(ctx, "unparsable Accept-Language", "header", acceptLanguage, "error", err)
		return valueobject.English
	}

	supported := []valueobject.Locale{valueobject.English}
	bundles, err := s.bundleRepo.FindAll(ctx)
	if err != nil {
		s.logger.ErrorContext(ctx, "list bundles failed", "error", err)
	}
	for _, b := range bundles {
		if b.Locale != valueobject.English {
			supported = append(supported, b.Locale)
		}
	}
	supportedTags := make([]language.Tag, len(supported))
	for i, l := range supported {
		supportedTags[i] = l.Tag()
	}

	_, idx, confidence := language.NewMatcher(supportedTags).Match(tags...)
	if confidence == language.No || idx < 0 || idx >= len(supported) {
		return valueobject.English
	}
	return supported[idx]
}

func (s *MessageService) ValidateBundles(ctx context.Context) (service.ValidationResult, error) {
	bundles, err := s.snapshot(ctx)
	if err != nil {
		return service.ValidationResult{}, err
	}
	return s.resolver.ValidateBundles(bundles), nil
}

func (s *MessageService) FindMissingTranslations(ctx context.Context) (map[valueobject.Locale][]valueobject.MessageKey, error) {
	bundles, err := s.snapshot(ctx)
	if err != nil {
		return nil, err
	}
	missing := s.resolver.FindMissingTranslations(bundles)
	for locale := range bundles {
		s.metrics.ObserveMissingTranslations(locale.String(), len(missing[locale]))
	}
	return missing, nil
}

func (s *MessageService) snapshot(ctx context.Context) (map[valueobject.Locale]entities.MessageBundle, error) {
	all, err := s.bundleRepo.FindAll(ctx)
	if err != nil {
		s.logger.ErrorContext(ctx, "list bundles failed", "error", err)
		return nil, fmt.Errorf("list bundles: %w", err)
	}
	return entities.IndexByLocale(all)
}

func childKey(parent string, parts ...string) (valueobject.MessageKey, error) {
	segments := []string{parent}
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" {
			return valueobject.MessageKey{}, domain.ErrBlankMessageKey
		}
		segments = append(segments, p)
	}
	return valueobject.NewMessageKey(strings.Join(segments, "."))
}

type noopMetrics struct{}

func (noopMetrics) ObserveResolution(string)              {}
func (noopMetrics) ObserveMissingTranslations(string, int) {}
