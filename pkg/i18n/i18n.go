// Package i18n provides the text lookup used to resolve label keys and
// prefixed values into display text.
package i18n

import (
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"github.com/go-playground/locales"
	"github.com/go-playground/locales/en"
	"github.com/go-playground/locales/it"
	ut "github.com/go-playground/universal-translator"
	toml "github.com/pelletier/go-toml/v2"
	"github.com/spf13/afero"
	"github.com/spf13/cast"
	"gopkg.in/yaml.v3"

	"github.com/arthur-debert/tabexport/pkg/errors"
)

// Resolver resolves a key into text.
type Resolver interface {
	Resolve(key string) (string, error)
}

// ResolverFunc adapts a function to Resolver.
type ResolverFunc func(key string) (string, error)

// Resolve calls f.
func (f ResolverFunc) Resolve(key string) (string, error) {
	return f(key)
}

// Messages is an in-memory Resolver.
type Messages map[string]string

// Resolve returns the message for key.
func (m Messages) Resolve(key string) (string, error) {
	text, ok := m[key]
	if !ok {
		return "", errors.Newf(errors.ErrNotFound, "no message for key %q", key).WithDetail("key", key)
	}
	return text, nil
}

// DefaultLocale is used when no locale is requested.
const DefaultLocale = "en"

var supported = map[string]func() locales.Translator{
	"en": en.New,
	"it": it.New,
}

// Locales returns the supported locale names.
func Locales() []string {
	names := make([]string, 0, len(supported))
	for name := range supported {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Catalog is a Resolver backed by a universal translator.
type Catalog struct {
	locale string
	trans  ut.Translator
}

// NewCatalog creates an empty catalog for locale.
func NewCatalog(locale string) (*Catalog, error) {
	if locale == "" {
		locale = DefaultLocale
	}
	newLocale, ok := supported[locale]
	if !ok {
		return nil, errors.Newf(errors.ErrConfigValid, "unsupported locale %q", locale).
			WithDetail("supported", Locales())
	}

	fallback := en.New()
	uni := ut.New(fallback, newLocale())
	trans, found := uni.GetTranslator(locale)
	if !found {
		return nil, errors.Newf(errors.ErrInternal, "translator for %q was not registered", locale)
	}
	return &Catalog{locale: locale, trans: trans}, nil
}

// Locale returns the catalog locale.
func (c *Catalog) Locale() string {
	return c.locale
}

// Add sets the text of key, replacing any previous one.
func (c *Catalog) Add(key, text string) error {
	if err := c.trans.Add(key, text, true); err != nil {
		return errors.Wrapf(err, errors.ErrConfigParse, "cannot add message %q", key)
	}
	return nil
}

// AddAll adds every message of m.
func (c *Catalog) AddAll(m map[string]string) error {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		if err := c.Add(k, m[k]); err != nil {
			return err
		}
	}
	return nil
}

// Resolve returns the text of key.
func (c *Catalog) Resolve(key string) (string, error) {
	text, err := c.trans.T(key)
	if err != nil {
		return "", errors.Wrapf(err, errors.ErrNotFound, "no message for key %q", key).
			WithDetail("key", key).
			WithDetail("locale", c.locale)
	}
	return text, nil
}

// LoadFile reads a TOML or YAML message file into a new catalog.
func LoadFile(fs afero.Fs, path, locale string) (*Catalog, error) {
	data, err := afero.ReadFile(fs, path)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrConfigLoad, "cannot read messages from %s", path)
	}
	messages, err := Parse(data, strings.TrimPrefix(filepath.Ext(path), "."))
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrConfigParse, "cannot parse messages from %s", path)
	}

	catalog, err := NewCatalog(locale)
	if err != nil {
		return nil, err
	}
	if err := catalog.AddAll(messages); err != nil {
		return nil, err
	}
	return catalog, nil
}

// Parse decodes a message document ("toml", "yaml" or "yml") into flat
// keys: nested tables are joined with ".".
func Parse(data []byte, format string) (map[string]string, error) {
	raw := map[string]any{}
	switch strings.ToLower(format) {
	case "toml":
		if err := toml.Unmarshal(data, &raw); err != nil {
			return nil, err
		}
	case "yaml", "yml":
		if err := yaml.Unmarshal(data, &raw); err != nil {
			return nil, err
		}
	default:
		return nil, errors.Newf(errors.ErrInvalidInput, "unsupported message format %q", format)
	}

	out := make(map[string]string)
	if err := flatten("", raw, out); err != nil {
		return nil, err
	}
	return out, nil
}

func flatten(prefix string, value any, out map[string]string) error {
	switch v := value.(type) {
	case map[string]any:
		for k, child := range v {
			if err := flatten(join(prefix, k), child, out); err != nil {
				return err
			}
		}
	case map[any]any:
		for k, child := range v {
			key, err := cast.ToStringE(k)
			if err != nil {
				return fmt.Errorf("key %v under %q: %w", k, prefix, err)
			}
			if err := flatten(join(prefix, key), child, out); err != nil {
				return err
			}
		}
	default:
		text, err := cast.ToStringE(v)
		if err != nil {
			return fmt.Errorf("message %q: %w", prefix, err)
		}
		out[prefix] = text
	}
	return nil
}

func join(prefix, key string) string {
	if prefix == "" {
		return key
	}
	return prefix + "." + key
}
