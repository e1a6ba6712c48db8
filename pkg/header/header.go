// Package header accumulates the columns contributed by each exported type
// during one export run.
//
// A column slot is identified by its owner type, a key (the property name,
// or "field.sub" for a column declared on a referencing field) and the
// occurrence of the owner type within a row, so that two distinct values of
// the same type in one row get separate columns. Slots are bound to a
// column index the first time they are seen and keep it for the whole run.
package header

import (
	"reflect"
	"sort"

	"github.com/arthur-debert/tabexport/pkg/bean"
	"github.com/arthur-debert/tabexport/pkg/meta"
)

// PropertyHeader is one column.
type PropertyHeader struct {
	Owner      *Header
	Key        string
	Occurrence int
	Column     int
	Property   *bean.Property
	// Override is the declaration on the referencing field that supplies
	// the label, prefix and position of this column, nil if none.
	Override *meta.Property
}

// IsOverridden reports whether the column is declared by a referencing field.
func (p *PropertyHeader) IsOverridden() bool {
	return p.Override != nil
}

// Header is the column block of one owner type.
type Header struct {
	Type       reflect.Type
	Properties []*PropertyHeader
}

// IsFor reports whether the header belongs to t.
func (h *Header) IsFor(t reflect.Type) bool {
	return h.Type == t
}

type slot struct {
	owner      reflect.Type
	key        string
	occurrence int
}

// Model is the column model of one export run.
type Model struct {
	headers []*Header
	byType  map[reflect.Type]*Header
	slots   map[slot]*PropertyHeader
	width   int
}

// NewModel creates an empty model.
func NewModel() *Model {
	m := &Model{}
	m.Reset()
	return m
}

// Reset discards every header.
func (m *Model) Reset() {
	m.headers = nil
	m.byType = make(map[reflect.Type]*Header)
	m.slots = make(map[slot]*PropertyHeader)
	m.width = 0
}

// Register returns the column bound to (owner, key, occurrence), binding it
// to the next free column on first sight. The first registration wins: a
// later call with a different property or override returns the existing
// column unchanged.
func (m *Model) Register(owner reflect.Type, key string, occurrence int, prop *bean.Property, override *meta.Property) *PropertyHeader {
	s := slot{owner: owner, key: key, occurrence: occurrence}
	if ph, ok := m.slots[s]; ok {
		return ph
	}

	h, ok := m.byType[owner]
	if !ok {
		h = &Header{Type: owner}
		m.byType[owner] = h
		m.headers = append(m.headers, h)
	}

	ph := &PropertyHeader{
		Owner:      h,
		Key:        key,
		Occurrence: occurrence,
		Column:     m.width,
		Property:   prop,
		Override:   override,
	}
	m.width++
	h.Properties = append(h.Properties, ph)
	m.slots[s] = ph
	return ph
}

// Headers returns the headers in first-seen order.
func (m *Model) Headers() []*Header {
	return m.headers
}

// Header returns the header of t.
func (m *Model) Header(t reflect.Type) (*Header, bool) {
	h, ok := m.byType[t]
	return h, ok
}

// Width returns the number of bound columns.
func (m *Model) Width() int {
	return m.width
}

// Columns returns every column of headers ordered by column index.
func Columns(headers []*Header) []*PropertyHeader {
	var cols []*PropertyHeader
	for _, h := range headers {
		cols = append(cols, h.Properties...)
	}
	sort.SliceStable(cols, func(i, j int) bool { return cols[i].Column < cols[j].Column })
	return cols
}

// Span is a run of adjacent columns, Start to End inclusive, owned by the
// same header.
type Span struct {
	Header *Header
	Start  int
	End    int
}

// Spans groups the columns of headers into runs of adjacent columns with
// the same owner and occurrence, in column order.
func Spans(headers []*Header) []Span {
	var spans []Span
	var last *PropertyHeader
	for _, ph := range Columns(headers) {
		if last != nil && last.Owner == ph.Owner && last.Occurrence == ph.Occurrence && last.Column+1 == ph.Column {
			spans[len(spans)-1].End = ph.Column
		} else {
			spans = append(spans, Span{Header: ph.Owner, Start: ph.Column, End: ph.Column})
		}
		last = ph
	}
	return spans
}

// Labeler resolves header labels for sinks.
type Labeler interface {
	// TypeLabel labels the block of a header.
	TypeLabel(h *Header) (string, error)
	// ColumnLabel labels one column.
	ColumnLabel(ph *PropertyHeader) (string, error)
}
