package i18n

import (
	"errors"
	"fmt"

	"gopkg.in/yaml.v3"

	"polyglot/internal/domain/entities"
	"polyglot/internal/domain/valueobject"
)

// ErrAmbiguousKey reports a dotted key spelled both flat and nested in one file.
var ErrAmbiguousKey = errors.New("ambiguous message key")

// ParseYAMLBundle decodes a messages_<locale>.yaml document. Nested mappings
// are flattened into dotted keys:
//
//	error:
//	  server:
//	    forbidden: Access denied
//
// becomes "error.server.forbidden".
func ParseYAMLBundle(locale valueobject.Locale, data []byte) (entities.MessageBundle, error) {
	var doc map[string]any
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return entities.MessageBundle{}, fmt.Errorf("decode yaml bundle %s: %w", locale, err)
	}

	flat := make(map[string]string)
	if err := flatten(doc, "", flat); err != nil {
		return entities.MessageBundle{}, fmt.Errorf("yaml bundle %s: %w", locale, err)
	}

	messages := make(map[valueobject.MessageKey]string, len(flat))
	for k, v := range flat {
		key, err := valueobject.NewMessageKey(k)
		if err != nil {
			return entities.MessageBundle{}, fmt.Errorf("yaml bundle %s: %w", locale, err)
		}
		messages[key] = v
	}
	return entities.NewMessageBundle(locale, messages), nil
}

// flatten writes the leaves of data into out under dotted keys. A dotted
// key reached twice, as in "a.b: x" next to "a: {b: y}", is an error.
func flatten(data map[string]any, prefix string, out map[string]string) error {
	for k, v := range data {
		full := k
		if prefix != "" {
			full = prefix + "." + k
		}
		var err error
		switch val := v.(type) {
		case map[string]any:
			err = flatten(val, full, out)
		case map[any]any:
			nested := make(map[string]any, len(val))
			for nk, nv := range val {
				nested[fmt.Sprint(nk)] = nv
			}
			err = flatten(nested, full, out)
		default:
			err = setLeaf(out, full, v)
		}
		if err != nil {
			return err
		}
	}
	return nil
}

func setLeaf(out map[string]string, key string, v any) error {
	if _, dup := out[key]; dup {
		return fmt.Errorf("%w: key %q defined more than once", ErrAmbiguousKey, key)
	}
	switch val := v.(type) {
	case string:
		out[key] = val
	case nil:
		out[key] = ""
	default:
		out[key] = fmt.Sprintf("%v", val)
	}
	return nil
}
