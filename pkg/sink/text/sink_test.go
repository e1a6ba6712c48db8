// Test Type: Integration Test
// Description: Tests for delimited text rendering of exports

package text_test

import (
	"bytes"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arthur-debert/tabexport/pkg/export"
	"github.com/arthur-debert/tabexport/pkg/i18n"
	"github.com/arthur-debert/tabexport/pkg/meta"
	"github.com/arthur-debert/tabexport/pkg/sink/text"
)

type Item struct {
	ID      int
	Name    string `export:",label=item.name"`
	Price   decimal.Decimal
	Active  bool
	Weight  *float64
	Created time.Time
	Version int
}

func (Item) ExportElement() meta.Element { return meta.Element{} }

func TestSinkWriteValue(t *testing.T) {
	weight := 1.25
	tests := []struct {
		name  string
		value any
		want  string
	}{
		{name: "nil", value: nil, want: ""},
		{name: "integer", value: int64(42), want: `"42"`},
		{name: "unsigned", value: uint64(7), want: `"7"`},
		{name: "float", value: weight, want: `"1.25"`},
		{name: "decimal", value: decimal.RequireFromString("10.50"), want: `"10.5"`},
		{name: "bool", value: true, want: `"true"`},
		{name: "time", value: time.Date(2024, 3, 9, 8, 5, 0, 0, time.UTC), want: `"09/03/2024 08:05"`},
		{name: "enclosure_doubled", value: `say "hi"`, want: `"say ""hi"""`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := text.New(text.DefaultOptions())
			require.NoError(t, s.Init(false))
			require.NoError(t, s.WriteValue(0, 0, tt.value))
			assert.Equal(t, tt.want, s.Grid().Get(0, 0))
		})
	}
}

func TestSinkExport(t *testing.T) {
	opts := text.DefaultOptions()
	opts.Exclude = []string{"version"}
	catalog, err := i18n.NewCatalog("en")
	require.NoError(t, err)
	require.NoError(t, catalog.Add("item.name", "Item name"))

	items := []Item{
		{ID: 1, Name: "Pen", Price: decimal.RequireFromString("1.5"), Active: true, Created: time.Date(2024, 1, 2, 3, 4, 0, 0, time.UTC), Version: 3},
		{ID: 2, Name: "Ink"},
	}

	var buf bytes.Buffer
	e := export.New(text.New(opts), export.WithResolver(catalog))
	require.NoError(t, e.Run(&buf, items))

	want := "Id;Item name;Price;Active;Weight;Created\n" +
		`"1";"Pen";"1.5";"true";;"02/01/2024 03:04"` + "\n" +
		`"2";"Ink";"0";"false";;"01/01/0001 00:00"` + "\n"
	assert.Equal(t, want, buf.String())
}

func TestSinkExportCustomOptions(t *testing.T) {
	opts := text.Options{Separator: ",", DateFormat: time.RFC3339, LineEnd: "\r\n"}

	var buf bytes.Buffer
	e := export.New(text.New(opts), export.WithHeader(false), export.WithExcluded("created", "price", "active", "weight"))
	require.NoError(t, e.Run(&buf, []Item{{ID: 1, Name: "Pen", Version: 2}}))

	assert.Equal(t, "1,Pen,2\r\n", buf.String())
}

func TestSinkEmptyExport(t *testing.T) {
	var buf bytes.Buffer
	e := export.New(text.New(text.DefaultOptions()))
	require.NoError(t, e.Run(&buf, []Item{}))
	assert.Empty(t, buf.String())
}
