// Package bean enumerates the readable properties of struct types and
// classifies them as scalar or composite.
package bean

import (
	"fmt"
	"reflect"
	"strings"
	"unicode"

	"github.com/arthur-debert/tabexport/pkg/errors"
)

// Property is one readable attribute of a struct type.
type Property struct {
	// Name is the property name: the Go field name with its leading
	// capitals lowered, "ID" -> "id", "CreatedAt" -> "createdAt".
	Name string
	// Field is the struct field; Field.Index is the full path from the
	// introspected type, through embedded structs.
	Field reflect.StructField
	Type  reflect.Type
	Kind  Kind
}

// IsPrimitive reports whether the property is written as a single cell.
func (p *Property) IsPrimitive() bool {
	return p.Kind != Composite
}

// Get reads the property from owner, a value of the introspected type. A
// nil embedded pointer on the path yields an invalid Value and no error.
func (p *Property) Get(owner reflect.Value) (v reflect.Value, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			err = errors.Newf(errors.ErrReflect, "cannot read property %s: %v", p.Name, rec).
				WithDetail("type", owner.Type().String()).
				WithDetail("property", p.Name)
		}
	}()

	v = owner
	for i, idx := range p.Field.Index {
		if i > 0 && v.Kind() == reflect.Pointer {
			if v.IsNil() {
				return reflect.Value{}, nil
			}
			v = v.Elem()
		}
		v = v.Field(idx)
	}
	return v, nil
}

// Info lists the readable properties of a struct type in declaration order.
type Info struct {
	Type       reflect.Type
	Properties []*Property
	byName     map[string]*Property
}

// Property finds a property by property name or Go field name.
func (i *Info) Property(name string) (*Property, bool) {
	p, ok := i.byName[name]
	return p, ok
}

// Introspector builds and caches Info per type. It is not safe for
// concurrent use.
type Introspector struct {
	cache map[reflect.Type]*Info
}

// NewIntrospector creates an empty introspector.
func NewIntrospector() *Introspector {
	return &Introspector{cache: make(map[reflect.Type]*Info)}
}

// Introspect returns the readable properties of t, which must be a struct.
// Exported fields are readable, including fields promoted from embedded
// structs; the embedded structs themselves, channels and funcs are not.
func (in *Introspector) Introspect(t reflect.Type) (*Info, error) {
	if info, ok := in.cache[t]; ok {
		return info, nil
	}
	if t.Kind() != reflect.Struct {
		return nil, errors.Newf(errors.ErrInvalidInput, "cannot introspect %s: not a struct", t)
	}

	info := &Info{Type: t, byName: make(map[string]*Property)}
	for _, sf := range reflect.VisibleFields(t) {
		if !readable(sf) {
			continue
		}
		p := &Property{
			Name:  PropertyName(sf.Name),
			Field: sf,
			Type:  sf.Type,
			Kind:  Classify(sf.Type),
		}
		info.Properties = append(info.Properties, p)
		info.byName[p.Name] = p
		if _, taken := info.byName[sf.Name]; !taken {
			info.byName[sf.Name] = p
		}
	}

	in.cache[t] = info
	return info, nil
}

func readable(sf reflect.StructField) bool {
	if !sf.IsExported() {
		return false
	}
	t := sf.Type
	if sf.Anonymous {
		for t.Kind() == reflect.Pointer {
			t = t.Elem()
		}
		if t.Kind() == reflect.Struct {
			return false
		}
	}
	switch t.Kind() {
	case reflect.Chan, reflect.Func, reflect.UnsafePointer:
		return false
	}
	return true
}

// Superclass returns the first embedded struct field of t, the Go
// counterpart of an immediate superclass.
func Superclass(t reflect.Type) (reflect.StructField, bool) {
	if t.Kind() != reflect.Struct {
		return reflect.StructField{}, false
	}
	for i := 0; i < t.NumField(); i++ {
		sf := t.Field(i)
		if !sf.Anonymous {
			continue
		}
		ft := sf.Type
		if ft.Kind() == reflect.Pointer {
			ft = ft.Elem()
		}
		if ft.Kind() == reflect.Struct {
			return sf, true
		}
	}
	return reflect.StructField{}, false
}

// PropertyName converts a Go field name into a property name.
func PropertyName(field string) string {
	runes := []rune(field)
	n := 0
	for n < len(runes) && unicode.IsUpper(runes[n]) {
		n++
	}
	switch {
	case n == 0:
		return field
	case n > 1 && n < len(runes):
		// keep the capital that starts the next word: URLPath -> urlPath
		n--
	}
	for i := 0; i < n; i++ {
		runes[i] = unicode.ToLower(runes[i])
	}
	return string(runes)
}

// Humanize turns a property or type name into a label:
// "createdAt" -> "Created At", "OrderLine" -> "Order Line".
func Humanize(name string) string {
	runes := []rune(name)
	var b strings.Builder
	for i, r := range runes {
		if i == 0 {
			b.WriteRune(unicode.ToUpper(r))
			continue
		}
		if unicode.IsUpper(r) {
			prev := runes[i-1]
			nextLower := i+1 < len(runes) && unicode.IsLower(runes[i+1])
			if !unicode.IsUpper(prev) || nextLower {
				b.WriteRune(' ')
			}
		}
		b.WriteRune(r)
	}
	return b.String()
}

// String implements fmt.Stringer for debug logging.
func (p *Property) String() string {
	return fmt.Sprintf("%s(%s)", p.Name, p.Kind)
}
