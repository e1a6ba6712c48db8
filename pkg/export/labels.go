package export

import (
	"github.com/arthur-debert/tabexport/pkg/bean"
	"github.com/arthur-debert/tabexport/pkg/header"
)

type labeler struct {
	e *Exporter
}

// TypeLabel resolves the type label key, falling back to the humanized
// type name.
func (l labeler) TypeLabel(h *header.Header) (string, error) {
	tm, err := l.e.registry.Type(h.Type)
	if err != nil {
		return "", err
	}
	if key := tm.LabelKey(); key != "" {
		return l.e.resolve(key)
	}
	return bean.Humanize(h.Type.Name()), nil
}

// ColumnLabel resolves the overriding label key, then the label key of the
// property's own field, falling back to the humanized property name.
func (l labeler) ColumnLabel(ph *header.PropertyHeader) (string, error) {
	if ph.Override != nil && ph.Override.LabelKey != "" {
		return l.e.resolve(ph.Override.LabelKey)
	}
	fm, err := l.e.registry.Field(ph.Property.Field)
	if err != nil {
		return "", err
	}
	if key := fm.LabelKey(); key != "" {
		return l.e.resolve(key)
	}
	return bean.Humanize(ph.Property.Name), nil
}
