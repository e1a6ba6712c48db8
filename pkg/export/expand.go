package export

import (
	"fmt"
	"reflect"
	"sort"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/arthur-debert/tabexport/pkg/bean"
	"github.com/arthur-debert/tabexport/pkg/errors"
	"github.com/arthur-debert/tabexport/pkg/meta"
)

const (
	idProperty = "id"
	// maxIndirections bounds the pointer, interface and proxy chain
	// followed to reach a struct.
	maxIndirections = 64
)

var proxyType = reflect.TypeOf((*Proxy)(nil)).Elem()

// ordered is a property with its field metadata, in export order.
type ordered struct {
	prop  *bean.Property
	field *meta.Field
}

// object is one struct being expanded on the current row.
type object struct {
	row        int
	tm         *meta.TypeMeta
	info       *bean.Info
	value      reflect.Value
	occurrence int
	restrict   []string
	queue      []reflect.Value
}

// expand writes the properties of v and returns col advanced by the number
// of cells written. Each value lands on the column bound to its slot, so
// rows of different shapes stay aligned with the headers. Composite
// properties are expanded after the object's own properties so an object's
// columns stay adjacent.
func (e *Exporter) expand(row, col int, v reflect.Value) (int, error) {
	v, err := e.deref(v)
	if err != nil || !v.IsValid() || v.Kind() != reflect.Struct {
		return col, err
	}

	t := v.Type()
	tm, err := e.registry.Type(t)
	if err != nil {
		return col, err
	}
	if tm.IsUnexportable() {
		e.logger.Trace().Str("type", t.String()).Msg("Skipping unexportable type")
		return col, nil
	}
	mode, ok := tm.Mode()
	if !ok || mode == meta.Ignore {
		e.logger.Trace().Str("type", t.String()).Msg("Skipping type without export metadata")
		return col, nil
	}

	target := v
	if mode == meta.ExportSuperclassOnly {
		sf, ok := bean.Superclass(t)
		if !ok {
			return col, nil
		}
		target, err = e.deref(v.Field(sf.Index[0]))
		if err != nil || !target.IsValid() {
			return col, err
		}
	}

	info, err := e.beans.Introspect(target.Type())
	if err != nil {
		return col, err
	}
	props, err := e.order(info)
	if err != nil {
		return col, err
	}

	e.expanded[identityOf(v)] = true
	o := &object{
		row:        row,
		tm:         tm,
		info:       info,
		value:      target,
		occurrence: e.occurrences[info.Type],
		restrict:   tm.PropertyNames(),
	}
	e.occurrences[info.Type]++

	if id, ok := info.Property(idProperty); ok {
		fm, err := e.registry.Field(id.Field)
		if err != nil {
			return col, err
		}
		if !fm.IsUnexportable() {
			if col, err = e.writeProperty(o, col, id, fm); err != nil {
				return col, err
			}
		}
	}

	for _, op := range props {
		if op.prop.Name == idProperty || !o.allows(op.prop) || op.field.IsUnexportable() || e.isExcluded(op.prop) {
			continue
		}
		if col, err = e.writeProperty(o, col, op.prop, op.field); err != nil {
			return col, err
		}
	}

	for _, q := range o.queue {
		q, err := e.deref(q)
		if err != nil {
			return col, err
		}
		if !q.IsValid() {
			continue
		}
		if e.expanded[identityOf(q)] {
			e.logger.Trace().Str("type", q.Type().String()).Msg("Skipping object already on this row")
			continue
		}
		if col, err = e.expand(row, col, q); err != nil {
			return col, err
		}
	}
	return col, nil
}

// writeProperty writes a scalar property, writes the declared
// sub-properties of a composite one, or queues it for expansion.
func (e *Exporter) writeProperty(o *object, col int, p *bean.Property, fm *meta.Field) (int, error) {
	v, err := p.Get(o.value)
	if err != nil {
		return col, err
	}

	if p.IsPrimitive() {
		ph := e.model.Register(o.info.Type, p.Name, o.occurrence, p, nil)
		prefix := o.tm.PrefixKey(p.Name)
		if prefix == "" {
			prefix = fm.PrefixKey(p.Name)
		}
		format := o.tm.Format(p.Name)
		if format == "" {
			format = fm.Format(p.Name)
		}
		if err := e.write(o.row, ph.Column, prefix, format, p.Kind, v); err != nil {
			return col, errors.Annotate(err, map[string]interface{}{
				"type":     o.info.Type.String(),
				"property": p.Name,
			})
		}
		return col + 1, nil
	}

	subs := named(fm.SubProperties())
	if len(subs) == 0 {
		o.queue = append(o.queue, v)
		return col, nil
	}

	sort.SliceStable(subs, func(i, j int) bool { return subs[i].Pos() < subs[j].Pos() })

	parent, err := e.deref(v)
	if err != nil {
		return col, err
	}
	for i := range subs {
		sub := &subs[i]
		sp, sv, err := e.subProperty(p, parent, sub.Name)
		if err != nil {
			return col, err
		}
		if !isScalar(sv) {
			o.queue = append(o.queue, sv)
			continue
		}
		ph := e.model.Register(o.info.Type, p.Name+"."+sub.Name, o.occurrence, sp, sub)
		if err := e.write(o.row, ph.Column, fm.PrefixKey(sub.Name), fm.Format(sub.Name), sp.Kind, sv); err != nil {
			return col, errors.Annotate(err, map[string]interface{}{
				"type":     o.info.Type.String(),
				"property": p.Name + "." + sub.Name,
			})
		}
		col++
	}
	return col, nil
}

// subProperty resolves name on the value of composite property p. The
// dynamic type is used when parent is set; a nil parent of unknown type
// yields a synthetic property.
func (e *Exporter) subProperty(p *bean.Property, parent reflect.Value, name string) (*bean.Property, reflect.Value, error) {
	var t reflect.Type
	if parent.IsValid() {
		t = parent.Type()
	} else {
		t = staticStruct(p.Type)
	}
	if t == nil {
		return &bean.Property{Name: name, Kind: bean.Composite}, reflect.Value{}, nil
	}
	if t.Kind() != reflect.Struct {
		return nil, reflect.Value{}, errors.Newf(errors.ErrReflect, "cannot read %s of %s value", name, t).
			WithDetail("type", t.String()).
			WithDetail("property", p.Name)
	}

	info, err := e.beans.Introspect(t)
	if err != nil {
		return nil, reflect.Value{}, err
	}
	sp, ok := info.Property(name)
	if !ok {
		return nil, reflect.Value{}, errors.Newf(errors.ErrTagInvalid, "%s has no property %q", t, name).
			WithDetail("type", t.String()).
			WithDetail("property", p.Name)
	}
	if !parent.IsValid() {
		return sp, reflect.Value{}, nil
	}
	sv, err := sp.Get(parent)
	return sp, sv, err
}

// staticStruct returns the struct type behind t, or nil when the concrete
// type is only known at run time.
func staticStruct(t reflect.Type) reflect.Type {
	for t.Kind() == reflect.Pointer {
		if t.Implements(proxyType) {
			return nil
		}
		t = t.Elem()
	}
	if t.Kind() == reflect.Interface || t.Implements(proxyType) || reflect.PointerTo(t).Implements(proxyType) {
		return nil
	}
	return t
}

func (e *Exporter) write(row, col int, prefix, format string, kind bean.Kind, v reflect.Value) error {
	if err := checkFormat(format, kind); err != nil {
		return err
	}

	value := bean.Scalar(v)
	switch {
	case value == nil:
	case prefix != "":
		text, err := e.resolve(prefix + fmt.Sprint(value))
		if err != nil {
			return err
		}
		value = text
	case format != "":
		value = applyFormat(format, value)
	}

	if err := e.sink.WriteValue(row, col, value); err != nil {
		return errors.Wrapf(err, errors.ErrSinkWrite, "cannot write cell %d,%d", row, col).
			WithDetail("row", row).
			WithDetail("column", col)
	}
	return nil
}

// applyFormat renders value with format: a layout for times, a fmt format
// with one verb otherwise. Decimals go through float64 for floating point
// verbs and through their string form for the others.
func applyFormat(format string, value any) string {
	switch v := value.(type) {
	case time.Time:
		return v.Format(format)
	case decimal.Decimal:
		if floatVerb(format) {
			return fmt.Sprintf(format, v.InexactFloat64())
		}
		return fmt.Sprintf(format, v.String())
	}
	return fmt.Sprintf(format, value)
}

// floatVerb reports whether the last verb of format is e, f or g.
func floatVerb(format string) bool {
	i := strings.LastIndexByte(format, '%')
	if i < 0 {
		return false
	}
	rest := strings.TrimLeft(format[i+1:], "+-# 0123456789.")
	return rest != "" && strings.ContainsRune("eEfFgG", rune(rest[0]))
}

// formatSamples holds one value of each scalar kind in the form write
// hands to applyFormat.
var formatSamples = map[bean.Kind]any{
	bean.Integral: int64(0),
	bean.Floating: float64(0),
	bean.Decimal:  decimal.Zero,
	bean.Boolean:  false,
	bean.Text:     "",
}

// checkFormat rejects a format that cannot render values of kind, such as
// a time layout on a text field or a format with more than one verb. Any
// layout is accepted for times.
func checkFormat(format string, kind bean.Kind) error {
	sample, ok := formatSamples[kind]
	if format == "" || !ok {
		return nil
	}
	if out := applyFormat(format, sample); strings.Contains(out, "%!") {
		return errors.Newf(errors.ErrTagInvalid, "format %q cannot render %s values", format, kind).
			WithDetail("format", format)
	}
	return nil
}

// deref follows interfaces, proxies and pointers to the value behind v. It
// returns an invalid Value for nil. Struct values are made addressable so
// their identity can be tracked.
func (e *Exporter) deref(v reflect.Value) (reflect.Value, error) {
	for i := 0; i < maxIndirections; i++ {
		if !v.IsValid() {
			return v, nil
		}
		switch {
		case v.Kind() == reflect.Interface:
			if v.IsNil() {
				return reflect.Value{}, nil
			}
			v = v.Elem()
		case v.Type().Implements(proxyType) && v.CanInterface():
			if v.Kind() == reflect.Pointer && v.IsNil() {
				return reflect.Value{}, nil
			}
			target, err := v.Interface().(Proxy).Unproxy()
			if err != nil {
				return reflect.Value{}, errors.Wrapf(err, errors.ErrReflect, "cannot load %s", v.Type()).
					WithDetail("type", v.Type().String())
			}
			v = reflect.ValueOf(target)
		case v.Kind() != reflect.Pointer && v.CanAddr() && v.CanInterface() && v.Addr().Type().Implements(proxyType):
			v = v.Addr()
		case v.Kind() == reflect.Pointer:
			if v.IsNil() {
				return reflect.Value{}, nil
			}
			v = v.Elem()
		default:
			if v.Kind() == reflect.Struct && !v.CanAddr() && v.CanInterface() {
				c := reflect.New(v.Type()).Elem()
				c.Set(v)
				v = c
			}
			return v, nil
		}
	}
	return reflect.Value{}, errors.Newf(errors.ErrReflect, "more than %d indirections reaching %s", maxIndirections, v.Type()).
		WithDetail("type", v.Type().String())
}

func (e *Exporter) order(info *bean.Info) ([]ordered, error) {
	if props, ok := e.ordered[info.Type]; ok {
		return props, nil
	}
	props := make([]ordered, 0, len(info.Properties))
	for _, p := range info.Properties {
		fm, err := e.registry.Field(p.Field)
		if err != nil {
			return nil, errors.Annotate(err, map[string]interface{}{"type": info.Type.String()})
		}
		props = append(props, ordered{prop: p, field: fm})
	}
	sort.SliceStable(props, func(i, j int) bool {
		return props[i].field.Position() < props[j].field.Position()
	})
	e.ordered[info.Type] = props
	return props, nil
}

// named copies the declarations naming a sub-property. An unnamed
// declaration on a composite field only positions or labels it.
func named(props []meta.Property) []meta.Property {
	var out []meta.Property
	for _, p := range props {
		if p.Name != "" {
			out = append(out, p)
		}
	}
	return out
}

func (o *object) allows(p *bean.Property) bool {
	if len(o.restrict) == 0 {
		return true
	}
	for _, n := range o.restrict {
		if n == p.Name || n == p.Field.Name {
			return true
		}
	}
	return false
}

func identityOf(v reflect.Value) identity {
	id := identity{typ: v.Type()}
	if v.CanAddr() {
		id.addr = v.Addr().Pointer()
	}
	return id
}

func isScalar(v reflect.Value) bool {
	for v.IsValid() && (v.Kind() == reflect.Interface || v.Kind() == reflect.Pointer) {
		if v.IsNil() {
			return true
		}
		if v.Kind() == reflect.Pointer {
			break
		}
		v = v.Elem()
	}
	if !v.IsValid() {
		return true
	}
	return bean.IsPrimitive(v.Type())
}
