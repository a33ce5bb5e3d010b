package service_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

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

func index(t *testing.T, bundles ...entities.MessageBundle) map[valueobject.Locale]entities.MessageBundle {
	t.Helper()
	idx, err := entities.IndexByLocale(bundles)
	require.NoError(t, err)
	return idx
}

func TestResolveMessage(t *testing.T) {
	svc := service.NewMessageResolutionService()
	enUS := valueobject.Of("en", "US", "")
	frCA := valueobject.Of("fr", "CA", "")

	en := entities.NewMessageBundle(valueobject.English, map[valueobject.MessageKey]string{
		valueobject.KeyWelcome:  "Welcome!",
		valueobject.KeyGreeting: "Hello, {name}!",
	})
	fr := entities.NewMessageBundle(valueobject.French, map[valueobject.MessageKey]string{
		valueobject.KeyWelcome: "Bienvenue !",
	})
	frCABundle := entities.NewMessageBundle(frCA, map[valueobject.MessageKey]string{
		valueobject.KeyWelcome: "Bienvenue, chum !",
	})
	bundles := index(t, en, fr, frCABundle)

	tests := []struct {
		name       string
		key        valueobject.MessageKey
		locale     valueobject.Locale
		wantText   string
		wantLocale valueobject.Locale
		wantTier   service.FallbackTier
	}{
		{
			name:       "exact match",
			key:        valueobject.KeyWelcome,
			locale:     frCA,
			wantText:   "Bienvenue, chum !",
			wantLocale: frCA,
			wantTier:   service.TierExact,
		},
		{
			name:       "language-only fallback tags the stripped locale",
			key:        valueobject.KeyWelcome,
			locale:     valueobject.Of("fr", "FR", ""),
			wantText:   "Bienvenue !",
			wantLocale: valueobject.French,
			wantTier:   service.TierLanguage,
		},
		{
			name:       "en_US falls back to en",
			key:        valueobject.KeyGreeting,
			locale:     enUS,
			wantText:   "Hello, {name}!",
			wantLocale: valueobject.English,
			wantTier:   service.TierLanguage,
		},
		{
			name:       "french falls back to english",
			key:        valueobject.KeyGreeting,
			locale:     valueobject.French,
			wantText:   "Hello, {name}!",
			wantLocale: valueobject.English,
			wantTier:   service.TierDefault,
		},
		{
			name:       "unknown locale falls back to english",
			key:        valueobject.KeyWelcome,
			locale:     valueobject.Of("de", "AT", ""),
			wantText:   "Welcome!",
			wantLocale: valueobject.English,
			wantTier:   service.TierDefault,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			msg, ok := svc.ResolveMessage(tt.key, tt.locale, bundles)
			require.True(t, ok)
			assert.Equal(t, tt.key, msg.Key)
			assert.Equal(t, tt.wantText, msg.Text)
			assert.Equal(t, tt.wantLocale, msg.Locale)

			r := svc.Resolve(tt.key, tt.locale, bundles)
			assert.Equal(t, tt.wantTier, r.Tier)
			assert.Equal(t, msg, r.Message)
		})
	}

	t.Run("every key of the exact bundle resolves unchanged", func(t *testing.T) {
		es := entities.NewMessageBundle(valueobject.Spanish, completeMessages("es"))
		idx := index(t, en, es)
		for _, key := range es.Keys() {
			msg, ok := svc.ResolveMessage(key, valueobject.Spanish, idx)
			require.True(t, ok, key.String())
			want, _ := es.Message(key)
			assert.Equal(t, want, msg.Text)
			assert.Equal(t, valueobject.Spanish, msg.Locale)
		}
	})

	t.Run("not found anywhere", func(t *testing.T) {
		_, ok := svc.ResolveMessage(valueobject.KeyUserDeleted, frCA, bundles)
		assert.False(t, ok)
		assert.Equal(t, service.TierNone, svc.Resolve(valueobject.KeyUserDeleted, frCA, bundles).Tier)
	})

	t.Run("no variant or country-only tiers", func(t *testing.T) {
		withVariant := valueobject.Of("fr", "CA", "x")
		b := index(t, frCABundle)
		_, ok := svc.ResolveMessage(valueobject.KeyWelcome, withVariant, b)
		assert.False(t, ok)
	})

	t.Run("language-only target skips the language tier", func(t *testing.T) {
		r := svc.Resolve(valueobject.KeyGreeting, valueobject.Spanish, bundles)
		assert.Equal(t, service.TierDefault, r.Tier)
	})

	t.Run("empty bundle set", func(t *testing.T) {
		_, ok := svc.ResolveMessage(valueobject.KeyWelcome, valueobject.English, nil)
		assert.False(t, ok)
	})

	t.Run("resolved greeting binds parameters", func(t *testing.T) {
		msg, ok := svc.ResolveMessage(valueobject.KeyGreeting, enUS, bundles)
		require.True(t, ok)
		assert.Equal(t, "Hello, Ada!", msg.WithParameter("name", "Ada").Resolve())
	})
}

func TestValidateBundles(t *testing.T) {
	svc := service.NewMessageResolutionService()

	t.Run("complete bundles are valid", func(t *testing.T) {
		res := svc.ValidateBundles(index(t,
			entities.NewMessageBundle(valueobject.English, completeMessages("en")),
			entities.NewMessageBundle(valueobject.French, completeMessages("fr")),
		))
		assert.True(t, res.Valid)
		assert.Empty(t, res.Errors)
	})

	t.Run("spanish bundle missing forbidden", func(t *testing.T) {
		es := entities.NewMessageBundle(valueobject.Spanish, completeMessages("es")).
			RemoveMessage(valueobject.KeyErrorServerForbidden)
		res := svc.ValidateBundles(index(t,
			entities.NewMessageBundle(valueobject.English, completeMessages("en")),
			es,
		))
		assert.False(t, res.Valid)
		require.Len(t, res.Errors, 1)
		assert.Equal(t, "Bundle for locale es is missing keys: error.server.forbidden", res.Errors[0])
	})

	t.Run("one entry per offending locale in locale order", func(t *testing.T) {
		fr := entities.NewMessageBundle(valueobject.French, completeMessages("fr")).
			RemoveMessage(valueobject.KeyWelcome).
			RemoveMessage(valueobject.KeySuccessDataDeleted)
		de := entities.NewMessageBundle(valueobject.Of("de", "", ""), nil)
		res := svc.ValidateBundles(index(t, fr, de))
		assert.False(t, res.Valid)
		require.Len(t, res.Errors, 2)
		assert.Contains(t, res.Errors[0], "locale de is missing keys: welcome, greeting,")
		assert.Equal(t, "Bundle for locale fr is missing keys: welcome, success.data_deleted", res.Errors[1])
	})

	t.Run("ad-hoc keys are ignored", func(t *testing.T) {
		en := entities.NewMessageBundle(valueobject.English, completeMessages("en")).
			AddMessage(valueobject.MustMessageKey("custom.banner"), "Banner")
		assert.True(t, svc.ValidateBundles(index(t, en)).Valid)
	})
}

func TestFindMissingTranslations(t *testing.T) {
	svc := service.NewMessageResolutionService()

	enMessages := completeMessages("en")
	extraA := valueobject.MustMessageKey("promo.banner")
	extraB := valueobject.MustMessageKey("promo.footer")
	enMessages[extraA] = "Banner"
	enMessages[extraB] = "Footer"
	en := entities.NewMessageBundle(valueobject.English, enMessages)
	require.Equal(t, 20, en.Len())

	fr := entities.NewMessageBundle(valueobject.French, completeMessages("fr"))
	require.Equal(t, 18, fr.Len())

	missing := svc.FindMissingTranslations(index(t, en, fr))
	require.Len(t, missing, 1)
	assert.Equal(t, []valueobject.MessageKey{extraA, extraB}, missing[valueobject.French])
	_, hasEnglish := missing[valueobject.English]
	assert.False(t, hasEnglish)

	t.Run("gaps on both sides", func(t *testing.T) {
		es := entities.NewMessageBundle(valueobject.Spanish, map[valueobject.MessageKey]string{
			valueobject.KeyWelcome: "¡Bienvenido!",
		})
		it := entities.NewMessageBundle(valueobject.Of("it", "", ""), map[valueobject.MessageKey]string{
			valueobject.KeyGreeting: "Ciao, {name}!",
		})
		missing := svc.FindMissingTranslations(index(t, es, it))
		assert.Equal(t, []valueobject.MessageKey{valueobject.KeyGreeting}, missing[valueobject.Spanish])
		assert.Equal(t, []valueobject.MessageKey{valueobject.KeyWelcome}, missing[valueobject.Of("it", "", "")])
	})

	t.Run("no bundles", func(t *testing.T) {
		assert.Empty(t, svc.FindMissingTranslations(nil))
	})
}

func TestResolutionServiceIsSafeForConcurrentUse(t *testing.T) {
	svc := service.NewMessageResolutionService()
	bundles := index(t, entities.NewMessageBundle(valueobject.English, completeMessages("en")))

	done := make(chan string, 16)
	for range 16 {
		go func() {
			msg, _ := svc.ResolveMessage(valueobject.KeyWelcome, valueobject.Of("en", "GB", ""), bundles)
			done <- msg.Text
		}()
	}
	for range 16 {
		assert.Equal(t, "en welcome", <-done)
	}
}
