package meta

import (
	"reflect"

	"github.com/arthur-debert/tabexport/pkg/errors"
)

var (
	exportableType   = reflect.TypeOf((*Exportable)(nil)).Elem()
	unexportableType = reflect.TypeOf((*Unexportable)(nil)).Elem()
)

// TypeMeta is the resolved, immutable metadata of one type.
type TypeMeta struct {
	Type         reflect.Type
	Element      *Element
	Unexportable bool
}

// IsUnexportable reports whether the type carries the unexportable marker.
func (m *TypeMeta) IsUnexportable() bool {
	return m.Unexportable
}

// Mode returns the export mode; false when the type declares no Element.
func (m *TypeMeta) Mode() (Mode, bool) {
	if m.Element == nil {
		return 0, false
	}
	return m.Element.Mode, true
}

// SubProperties returns the Element's property list, nil if none.
func (m *TypeMeta) SubProperties() []Property {
	if m.Element == nil || len(m.Element.Properties) == 0 {
		return nil
	}
	return m.Element.Properties
}

// PropertyNames returns the non-empty names of the Element's property
// list, or nil when the type does not restrict its properties.
func (m *TypeMeta) PropertyNames() []string {
	var names []string
	for _, p := range m.SubProperties() {
		if p.Name != "" {
			names = append(names, p.Name)
		}
	}
	return names
}

// LabelKey returns the Element label key.
func (m *TypeMeta) LabelKey() string {
	if m.Element == nil {
		return ""
	}
	return m.Element.LabelKey
}

// PrefixKey returns the prefix of the first Element property matching name.
func (m *TypeMeta) PrefixKey(name string) string {
	return match(m.SubProperties(), name).PrefixKey
}

// Format returns the format of the first Element property matching name.
func (m *TypeMeta) Format(name string) string {
	return match(m.SubProperties(), name).Format
}

type fieldEntry struct {
	field *Field
	err   error
}

type typeEntry struct {
	meta *TypeMeta
	err  error
}

// Registry resolves and caches metadata per type and per field tag.
// It is not safe for concurrent use.
type Registry struct {
	declared     map[reflect.Type]Element
	unexportable map[reflect.Type]bool
	types        map[reflect.Type]typeEntry
	fields       map[reflect.StructTag]fieldEntry
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		declared:     make(map[reflect.Type]Element),
		unexportable: make(map[reflect.Type]bool),
		types:        make(map[reflect.Type]typeEntry),
		fields:       make(map[reflect.StructTag]fieldEntry),
	}
}

// Register declares the Element of t. A registered Element takes
// precedence over one declared by t itself.
func (r *Registry) Register(t reflect.Type, e Element) error {
	if err := validate(t, e); err != nil {
		return err
	}
	r.declared[t] = e
	delete(r.types, t)
	return nil
}

// MarkUnexportable marks t as never exported.
func (r *Registry) MarkUnexportable(t reflect.Type) {
	r.unexportable[t] = true
	delete(r.types, t)
}

// Type returns the metadata of t.
func (r *Registry) Type(t reflect.Type) (*TypeMeta, error) {
	if entry, ok := r.types[t]; ok {
		return entry.meta, entry.err
	}
	m, err := r.resolve(t)
	r.types[t] = typeEntry{meta: m, err: err}
	return m, err
}

func (r *Registry) resolve(t reflect.Type) (*TypeMeta, error) {
	m := &TypeMeta{
		Type:         t,
		Unexportable: r.unexportable[t] || implements(t, unexportableType),
	}

	if e, ok := r.declared[t]; ok {
		m.Element = &e
		return m, nil
	}

	var declarer Exportable
	switch {
	case t.Implements(exportableType):
		declarer, _ = reflect.Zero(t).Interface().(Exportable)
	case t.Kind() != reflect.Pointer && reflect.PointerTo(t).Implements(exportableType):
		declarer, _ = reflect.New(t).Interface().(Exportable)
	}
	if declarer == nil {
		return m, nil
	}

	e, err := declareElement(declarer)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrElementInvalid, "ExportElement of %s failed", t)
	}
	if err := validate(t, e); err != nil {
		return nil, err
	}
	m.Element = &e
	return m, nil
}

// declareElement calls ExportElement, which may panic on a zero pointer.
func declareElement(d Exportable) (e Element, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			err = errors.Newf(errors.ErrInternal, "panic: %v", rec)
		}
	}()
	return d.ExportElement(), nil
}

// Field returns the parsed tag metadata of sf.
func (r *Registry) Field(sf reflect.StructField) (*Field, error) {
	entry, ok := r.fields[sf.Tag]
	if !ok {
		f, err := ParseField(sf.Tag)
		entry = fieldEntry{field: f, err: err}
		r.fields[sf.Tag] = entry
	}
	if entry.err != nil {
		return nil, errors.Wrapf(entry.err, errors.ErrTagInvalid, "invalid export tag on field %s", sf.Name).
			WithDetail("field", sf.Name)
	}
	return entry.field, nil
}

func implements(t, iface reflect.Type) bool {
	if t.Implements(iface) {
		return true
	}
	return t.Kind() != reflect.Pointer && reflect.PointerTo(t).Implements(iface)
}

func validate(t reflect.Type, e Element) error {
	if !e.Mode.Valid() {
		return errors.Newf(errors.ErrElementInvalid, "invalid export mode %d", int(e.Mode)).
			WithDetail("type", t.String())
	}
	return nil
}
