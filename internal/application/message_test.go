package application

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"polyglot/internal/domain"
	"polyglot/internal/domain/entities"
	"polyglot/internal/domain/service"
	"polyglot/internal/domain/valueobject"
)

func completeMessages(prefix string) map[valueobject.MessageKey]string {
	out := make(map[valueobject.MessageKey]string)
	for _, k := range valueobject.RequiredKeys() {
		out[k] = prefix + " " + k.String()
	}
	return out
}

func newTestService(repo *fakeRepo) (*MessageService, *recordingMetrics) {
	m := &recordingMetrics{}
	return NewMessageService(repo, service.NewMessageResolutionService(), m, nil), m
}

func defaultBundles() []entities.MessageBundle {
	en := completeMessages("en")
	en[valueobject.KeyGreeting] = "Hello, {name}!"
	es := completeMessages("es")
	es[valueobject.KeyGreeting] = "¡Hola, {name}!"
	delete(es, valueobject.KeyErrorServerForbidden)
	fr := completeMessages("fr")
	return []entities.MessageBundle{
		entities.NewMessageBundle(valueobject.English, en),
		entities.NewMessageBundle(valueobject.Spanish, es),
		entities.NewMessageBundle(valueobject.French, fr),
	}
}

func TestGetMessage(t *testing.T) {
	ctx := context.Background()
	svc, m := newTestService(newFakeRepo(defaultBundles()...))

	msg, err := svc.GetMessage(ctx, valueobject.KeyWelcome, valueobject.French)
	require.NoError(t, err)
	assert.Equal(t, "fr welcome", msg.Text)
	assert.Equal(t, valueobject.French, msg.Locale)

	msg, err = svc.GetMessage(ctx, valueobject.KeyWelcome, valueobject.Of("es", "MX", ""))
	require.NoError(t, err)
	assert.Equal(t, "es welcome", msg.Text)
	assert.Equal(t, valueobject.Spanish, msg.Locale)

	msg, err = svc.GetMessage(ctx, valueobject.KeyErrorServerForbidden, valueobject.Spanish)
	require.NoError(t, err)
	assert.Equal(t, "en error.server.forbidden", msg.Text)
	assert.Equal(t, valueobject.English, msg.Locale)

	_, err = svc.GetMessage(ctx, valueobject.MustMessageKey("promo.banner"), valueobject.French)
	assert.ErrorIs(t, err, domain.ErrMessageNotFound)
	assert.Equal(t, "message_not_found", domain.Code(err))

	assert.Equal(t, []string{"exact", "language", "default", "none"}, m.tiers)
}

func TestGetMessageRepositoryFailures(t *testing.T) {
	ctx := context.Background()

	t.Run("list error is wrapped", func(t *testing.T) {
		repo := newFakeRepo()
		repo.err = errors.New("connection refused")
		svc, _ := newTestService(repo)

		_, err := svc.GetMessage(ctx, valueobject.KeyWelcome, valueobject.English)
		require.Error(t, err)
		assert.ErrorIs(t, err, repo.err)
		assert.Contains(t, err.Error(), "list bundles")
	})

	t.Run("duplicate locale", func(t *testing.T) {
		dup := entities.NewMessageBundle(valueobject.English, nil)
		svc, _ := newTestService(newFakeRepo(dup, dup))

		_, err := svc.GetMessage(ctx, valueobject.KeyWelcome, valueobject.English)
		assert.ErrorIs(t, err, domain.ErrDuplicateBundle)
	})
}

func TestGreetingAndParameters(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(newFakeRepo(defaultBundles()...))

	msg, err := svc.GetGreeting(ctx, "Ada", valueobject.Spanish)
	require.NoError(t, err)
	assert.Equal(t, "¡Hola, Ada!", msg.Resolve())
	assert.Equal(t, map[string]string{"name": "Ada"}, msg.Parameters)

	msg, err = svc.GetGreeting(ctx, "Grace", valueobject.French)
	require.NoError(t, err)
	assert.Equal(t, "fr greeting", msg.Resolve())
	assert.Equal(t, valueobject.French, msg.Locale)

	noFrenchGreeting := defaultBundles()
	noFrenchGreeting[2] = noFrenchGreeting[2].RemoveMessage(valueobject.KeyGreeting)
	fallback, _ := newTestService(newFakeRepo(noFrenchGreeting...))
	msg, err = fallback.GetGreeting(ctx, "Grace", valueobject.French)
	require.NoError(t, err)
	assert.Equal(t, "Hello, Grace!", msg.Resolve())
	assert.Equal(t, valueobject.English, msg.Locale)

	msg, err = svc.GetMessageWithParams(ctx, valueobject.KeyGreeting, map[string]string{"other": "x"}, valueobject.English)
	require.NoError(t, err)
	assert.Equal(t, "Hello, {name}!", msg.Resolve())

	msg, err = svc.GetWelcomeMessage(ctx, valueobject.Of("fr", "BE", ""))
	require.NoError(t, err)
	assert.Equal(t, "fr welcome", msg.Text)
}

func TestCategoryShortcuts(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(newFakeRepo(defaultBundles()...))

	msg, err := svc.GetUserMessage(ctx, "created", valueobject.French)
	require.NoError(t, err)
	assert.Equal(t, valueobject.KeyUserCreated, msg.Key)

	msg, err = svc.GetErrorMessage(ctx, "validation", "invalid_email", valueobject.Spanish)
	require.NoError(t, err)
	assert.Equal(t, valueobject.KeyErrorValidationInvalidEmail, msg.Key)
	assert.Equal(t, "es error.validation.invalid_email", msg.Text)

	msg, err = svc.GetSuccessMessage(ctx, "data_saved", valueobject.English)
	require.NoError(t, err)
	assert.Equal(t, valueobject.KeySuccessDataSaved, msg.Key)

	_, err = svc.GetUserMessage(ctx, "promoted", valueobject.English)
	assert.ErrorIs(t, err, domain.ErrMessageNotFound)

	_, err = svc.GetErrorMessage(ctx, "server", "  ", valueobject.English)
	assert.ErrorIs(t, err, domain.ErrBlankMessageKey)

	_, err = svc.GetSuccessMessage(ctx, "", valueobject.English)
	assert.ErrorIs(t, err, domain.ErrBlankMessageKey)
}

func TestGetAllMessages(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(newFakeRepo(defaultBundles()...))

	locale, msgs, err := svc.GetAllMessages(ctx, valueobject.Spanish)
	require.NoError(t, err)
	assert.Equal(t, valueobject.Spanish, locale)
	assert.Len(t, msgs, 17)

	locale, msgs, err = svc.GetAllMessages(ctx, valueobject.Of("de", "", ""))
	require.NoError(t, err)
	assert.Equal(t, valueobject.English, locale)
	assert.Len(t, msgs, 18)

	msgs[valueobject.KeyWelcome] = "mutated"
	_, again, err := svc.GetAllMessages(ctx, valueobject.English)
	require.NoError(t, err)
	assert.Equal(t, "en welcome", again[valueobject.KeyWelcome])

	empty, _ := newTestService(newFakeRepo())
	locale, msgs, err = empty.GetAllMessages(ctx, valueobject.French)
	require.NoError(t, err)
	assert.Equal(t, valueobject.French, locale)
	assert.Empty(t, msgs)
	assert.NotNil(t, msgs)
}

func TestDetectLocale(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(newFakeRepo(defaultBundles()...))

	tests := []struct {
		header string
		want   valueobject.Locale
	}{
		{header: "", want: valueobject.English},
		{header: "   ", want: valueobject.English},
		{header: "fr-CH, fr;q=0.9, en;q=0.8", want: valueobject.French},
		{header: "es-MX", want: valueobject.Spanish},
		{header: "de;q=0.9, es;q=0.5", want: valueobject.Spanish},
		{header: "ja-JP", want: valueobject.English},
		{header: "en;q=abc", want: valueobject.English},
	}
	for _, tt := range tests {
		t.Run(tt.header, func(t *testing.T) {
			assert.Equal(t, tt.want, svc.DetectLocale(ctx, tt.header))
		})
	}
}

func TestAudit(t *testing.T) {
	ctx := context.Background()
	svc, m := newTestService(newFakeRepo(defaultBundles()...))

	res, err := svc.ValidateBundles(ctx)
	require.NoError(t, err)
	assert.False(t, res.Valid)
	assert.Equal(t, []string{"Bundle for locale es is missing keys: error.server.forbidden"}, res.Errors)

	missing, err := svc.FindMissingTranslations(ctx)
	require.NoError(t, err)
	assert.Equal(t, map[valueobject.Locale][]valueobject.MessageKey{
		valueobject.Spanish: {valueobject.KeyErrorServerForbidden},
	}, missing)
	assert.Equal(t, map[string]int{"en": 0, "es": 1, "fr": 0}, m.missing)
}

func TestNewMessageServiceDefaults(t *testing.T) {
	svc := NewMessageService(newFakeRepo(defaultBundles()...), service.NewMessageResolutionService(), nil, nil)
	_, err := svc.GetWelcomeMessage(context.Background(), valueobject.English)
	assert.NoError(t, err)
}
