package i18n

import (
	"fmt"
	"io/fs"
	"strings"

	"github.com/nicksnyder/go-i18n/v2/i18n"
	"github.com/pelletier/go-toml/v2"
	"golang.org/x/text/language"

	"polyglot/internal/domain/entities"
	"polyglot/internal/domain/valueobject"
)

// LoadMessageFile reads a go-i18n message file (e.g. active.de.toml) and
// turns its "other" forms into a bundle. The locale comes from the file name.
func LoadMessageFile(fsys fs.FS, path string) (entities.MessageBundle, error) {
	bundle := i18n.NewBundle(language.English)
	bundle.RegisterUnmarshalFunc("toml", toml.Unmarshal)

	mf, err := bundle.LoadMessageFileFS(fsys, path)
	if err != nil {
		return entities.MessageBundle{}, fmt.Errorf("load message file %s: %w", path, err)
	}

	locale, err := valueobject.ParseLocale(mf.Tag.String())
	if err != nil {
		return entities.MessageBundle{}, fmt.Errorf("message file %s: %w", path, err)
	}

	messages := make(map[valueobject.MessageKey]string, len(mf.Messages))
	for _, m := range mf.Messages {
		key, err := valueobject.NewMessageKey(m.ID)
		if err != nil {
			return entities.MessageBundle{}, fmt.Errorf("message file %s: %w", path, err)
		}
		text := m.Other
		if text == "" {
			text = m.One
		}
		messages[key] = text
	}
	return entities.NewMessageBundle(locale, messages), nil
}

// localeFromFileName extracts "en_US" from "messages_en_US.yaml" or "active.en-US.toml".
func localeFromFileName(name string) (valueobject.Locale, bool) {
	var stem string
	switch {
	case strings.HasPrefix(name, yamlPrefix) && (strings.HasSuffix(name, ".yaml") || strings.HasSuffix(name, ".yml")):
		stem = strings.TrimPrefix(name, yamlPrefix)
		stem = strings.TrimSuffix(strings.TrimSuffix(stem, ".yaml"), ".yml")
	case strings.HasPrefix(name, tomlPrefix) && strings.HasSuffix(name, ".toml"):
		stem = strings.TrimSuffix(strings.TrimPrefix(name, tomlPrefix), ".toml")
	default:
		return valueobject.Locale{}, false
	}
	locale, err := valueobject.ParseLocale(stem)
	if err != nil {
		return valueobject.Locale{}, false
	}
	return locale, true
}
