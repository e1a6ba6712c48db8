// Test Type: Unit Test
// Description: Tests for column registration and layout

package header_test

import (
	"reflect"
	"testing"

	"github.com/arthur-debert/tabexport/pkg/bean"
	"github.com/arthur-debert/tabexport/pkg/header"
	"github.com/arthur-debert/tabexport/pkg/meta"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type order struct{}
type address struct{}

var (
	orderType   = reflect.TypeOf(order{})
	addressType = reflect.TypeOf(address{})
)

func prop(name string) *bean.Property {
	return &bean.Property{Name: name, Kind: bean.Text}
}

func TestRegisterIsIdempotent(t *testing.T) {
	m := header.NewModel()

	id := m.Register(orderType, "id", 0, prop("id"), nil)
	name := m.Register(orderType, "name", 0, prop("name"), nil)
	again := m.Register(orderType, "id", 0, prop("other"), &meta.Property{LabelKey: "ignored"})

	assert.Same(t, id, again)
	assert.Equal(t, "id", again.Property.Name, "first registration wins")
	assert.False(t, again.IsOverridden())
	assert.Equal(t, 0, id.Column)
	assert.Equal(t, 1, name.Column)
	assert.Equal(t, 2, m.Width())

	require.Len(t, m.Headers(), 1)
	assert.True(t, m.Headers()[0].IsFor(orderType))
	assert.Len(t, m.Headers()[0].Properties, 2)
}

func TestRegisterBindsColumnsInFirstSeenOrder(t *testing.T) {
	m := header.NewModel()

	m.Register(orderType, "id", 0, prop("id"), nil)
	m.Register(addressType, "city", 0, prop("city"), nil)
	m.Register(orderType, "shipping.zip", 0, prop("zip"), &meta.Property{Name: "zip"})
	second := m.Register(addressType, "city", 1, prop("city"), nil)

	assert.Equal(t, 3, second.Column)
	require.Len(t, m.Headers(), 2)
	assert.True(t, m.Headers()[0].IsFor(orderType))
	assert.True(t, m.Headers()[1].IsFor(addressType))

	h, ok := m.Header(addressType)
	require.True(t, ok)
	assert.Len(t, h.Properties, 2)

	var cols []string
	for _, ph := range header.Columns(m.Headers()) {
		cols = append(cols, ph.Key)
	}
	assert.Equal(t, []string{"id", "city", "shipping.zip", "city"}, cols)
}

func TestSpans(t *testing.T) {
	m := header.NewModel()
	m.Register(orderType, "id", 0, prop("id"), nil)
	m.Register(orderType, "name", 0, prop("name"), nil)
	m.Register(addressType, "city", 0, prop("city"), nil)
	m.Register(addressType, "zip", 0, prop("zip"), nil)
	m.Register(addressType, "city", 1, prop("city"), nil)
	m.Register(orderType, "note", 0, prop("note"), nil)

	spans := header.Spans(m.Headers())
	require.Len(t, spans, 4)
	assert.Equal(t, header.Span{Header: m.Headers()[0], Start: 0, End: 1}, spans[0])
	assert.Equal(t, header.Span{Header: m.Headers()[1], Start: 2, End: 3}, spans[1])
	assert.Equal(t, header.Span{Header: m.Headers()[1], Start: 4, End: 4}, spans[2])
	assert.Equal(t, header.Span{Header: m.Headers()[0], Start: 5, End: 5}, spans[3])
}

func TestReset(t *testing.T) {
	m := header.NewModel()
	m.Register(orderType, "id", 0, prop("id"), nil)
	m.Reset()

	assert.Empty(t, m.Headers())
	assert.Equal(t, 0, m.Width())
	ph := m.Register(orderType, "id", 0, prop("id"), nil)
	assert.Equal(t, 0, ph.Column)
}
