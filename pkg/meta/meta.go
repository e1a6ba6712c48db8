package meta

import (
	"fmt"
	"math"
)

// Mode tells the traversal engine how to export an object of a type.
type Mode int

const (
	// ExportAsWhole exports the properties of the type itself.
	ExportAsWhole Mode = iota
	// Ignore exports nothing; the object contributes no columns.
	Ignore
	// ExportSuperclassOnly exports only the properties of the first
	// embedded struct of the type.
	ExportSuperclassOnly
)

func (m Mode) String() string {
	switch m {
	case ExportAsWhole:
		return "export-as-whole"
	case Ignore:
		return "ignore"
	case ExportSuperclassOnly:
		return "export-superclass-only"
	}
	return fmt.Sprintf("Mode(%d)", int(m))
}

// Valid reports whether m is one of the declared modes.
func (m Mode) Valid() bool {
	return m >= ExportAsWhole && m <= ExportSuperclassOnly
}

// MaxPosition is the position of every property without an explicit one.
const MaxPosition = math.MaxInt

// Property describes one exported property: either a sub-property named on
// a field or on a type, or the field itself when Name is empty.
type Property struct {
	// Name of the property to export from the value; empty matches any
	// property when looking up prefix keys and formats.
	Name string
	// PrefixKey is prepended to a scalar value to build a text lookup key.
	PrefixKey string
	// Position orders properties ascending; nil sorts last.
	Position *int
	// LabelKey is resolved through the text lookup for the column header.
	LabelKey string
	// Format is a time layout for time values or a fmt format with a single
	// verb for others. A format that cannot render the property's kind fails
	// the export with ErrTagInvalid.
	Format string
}

// At returns a pointer to pos, for use in Property.Position.
func At(pos int) *int {
	return &pos
}

// Pos returns the declared position or MaxPosition.
func (p Property) Pos() int {
	if p.Position == nil {
		return MaxPosition
	}
	return *p.Position
}

// PropertySet is the multi-property declaration of a field.
type PropertySet struct {
	Properties []Property
	LabelKey   string
	Position   *int
}

// Element is the type-level export declaration.
type Element struct {
	Mode Mode
	// Properties restricts the exported properties to the named ones and
	// carries their prefix keys. Entries with an empty name only carry a
	// prefix key.
	Properties []Property
	LabelKey   string
}

// Exportable is implemented by types that declare their own Element.
// ExportElement is called on the zero value of the type.
type Exportable interface {
	ExportElement() Element
}

// Unexportable marks a type whose values are never exported.
type Unexportable interface {
	Unexportable()
}

// Field is the parsed metadata of one struct field.
type Field struct {
	Unexportable bool
	Single       *Property
	Set          *PropertySet
}

// IsUnexportable reports whether the field carries the unexportable marker.
func (f *Field) IsUnexportable() bool {
	return f.Unexportable
}

// SubProperties returns the declared sub-properties, the list form winning
// over the single form, or nil when the field declares none.
func (f *Field) SubProperties() []Property {
	if f.Set != nil {
		return f.Set.Properties
	}
	if f.Single != nil {
		return []Property{*f.Single}
	}
	return nil
}

// LabelKey returns the list label if set, else the single label.
func (f *Field) LabelKey() string {
	if f.Set != nil && f.Set.LabelKey != "" {
		return f.Set.LabelKey
	}
	if f.Single != nil {
		return f.Single.LabelKey
	}
	return ""
}

// Position returns the single position, else the list position, else
// MaxPosition.
func (f *Field) Position() int {
	if f.Single != nil && f.Single.Position != nil {
		return *f.Single.Position
	}
	if f.Set != nil && f.Set.Position != nil {
		return *f.Set.Position
	}
	return MaxPosition
}

// PrefixKey returns the prefix of the first declared sub-property matching
// name, an unnamed one matching any name.
func (f *Field) PrefixKey(name string) string {
	return match(f.SubProperties(), name).PrefixKey
}

// Format returns the format of the first declared sub-property matching name.
func (f *Field) Format(name string) string {
	return match(f.SubProperties(), name).Format
}

func match(props []Property, name string) Property {
	for _, p := range props {
		if p.Name == "" || p.Name == name {
			return p
		}
	}
	return Property{}
}
