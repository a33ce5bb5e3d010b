package input

import (
	"context"

	"polyglot/internal/domain/service"
	"polyglot/internal/domain/valueobject"
)

type MessageUseCase interface {
	GetMessage(ctx context.Context, key valueobject.MessageKey, locale valueobject.Locale) (valueobject.Message, error)
	GetMessageWithParams(ctx context.Context, key valueobject.MessageKey, params map[string]string, locale valueobject.Locale) (valueobject.Message, error)
	GetGreeting(ctx context.Context, name string, locale valueobject.Locale) (valueobject.Message, error)
	GetWelcomeMessage(ctx context.Context, locale valueobject.Locale) (valueobject.Message, error)
	GetUserMessage(ctx context.Context, action string, locale valueobject.Locale) (valueobject.Message, error)
	GetErrorMessage(ctx context.Context, category, kind string, locale valueobject.Locale) (valueobject.Message, error)
	GetSuccessMessage(ctx context.Context, kind string, locale valueobject.Locale) (valueobject.Message, error)
	GetAllMessages(ctx context.Context, locale valueobject.Locale) (valueobject.Locale, map[valueobject.MessageKey]string, error)
	DetectLocale(ctx context.Context, acceptLanguage string) valueobject.Locale
}

type BundleAuditUseCase interface {
	ValidateBundles(ctx context.Context) (service.ValidationResult, error)
	FindMissingTranslations(ctx context.Context) (map[valueobject.Locale][]valueobject.MessageKey, error)
}
