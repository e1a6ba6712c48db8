package demo

import (
	"embed"
	"path"

	"github.com/spf13/afero"
	"gopkg.in/yaml.v3"

	"github.com/arthur-debert/tabexport/pkg/errors"
	"github.com/arthur-debert/tabexport/pkg/i18n"
)

//go:embed data
var data embed.FS

type book struct {
	Orders []Order `yaml:"orders"`
}

// Parse decodes an order book document.
func Parse(content []byte) ([]Order, error) {
	var b book
	if err := yaml.Unmarshal(content, &b); err != nil {
		return nil, errors.Wrap(err, errors.ErrInvalidInput, "cannot parse order book")
	}
	return b.Orders, nil
}

// Load reads an order book from fs.
func Load(fs afero.Fs, name string) ([]Order, error) {
	content, err := afero.ReadFile(fs, name)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrNotFound, "cannot read order book %s", name).
			WithDetail("path", name)
	}
	orders, err := Parse(content)
	if err != nil {
		return nil, errors.Annotate(err, map[string]interface{}{"path": name})
	}
	return orders, nil
}

// Sample returns the built-in order book.
func Sample() []Order {
	content, err := data.ReadFile("data/orders.yaml")
	if err != nil {
		panic(err)
	}
	orders, err := Parse(content)
	if err != nil {
		panic(err)
	}
	return orders
}

// Messages returns the built-in labels for locale.
func Messages(locale string) (*i18n.Catalog, error) {
	catalog, err := i18n.NewCatalog(locale)
	if err != nil {
		return nil, err
	}
	content, err := data.ReadFile(path.Join("data", "messages_"+catalog.Locale()+".toml"))
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrNotFound, "no built-in messages for locale %s", locale)
	}
	messages, err := i18n.Parse(content, "toml")
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigParse, "cannot parse built-in messages")
	}
	if err := catalog.AddAll(messages); err != nil {
		return nil, err
	}
	return catalog, nil
}
