// Test Type: Integration Test
// Description: Tests for workbook rendering of exports

package xlsx_test

import (
	"bytes"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/arthur-debert/tabexport/pkg/errors"
	"github.com/arthur-debert/tabexport/pkg/export"
	"github.com/arthur-debert/tabexport/pkg/i18n"
	"github.com/arthur-debert/tabexport/pkg/meta"
	"github.com/arthur-debert/tabexport/pkg/sink/xlsx"
)

type Owner struct {
	ID   int
	Name string
}

func (Owner) ExportElement() meta.Element { return meta.Element{LabelKey: "owner"} }

type Account struct {
	ID      int
	Balance decimal.Decimal
	Rate    float64
	Open    bool
	Opened  time.Time
	Owner   *Owner
	Version int
}

func (Account) ExportElement() meta.Element { return meta.Element{} }

func export2xlsx(t *testing.T, opts xlsx.Options, items any, eopts ...export.Option) *excelize.File {
	t.Helper()

	sink := xlsx.New(opts)
	defer func() { _ = sink.Close() }()

	var buf bytes.Buffer
	require.NoError(t, export.New(sink, eopts...).Run(&buf, items))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	t.Cleanup(func() { _ = f.Close() })
	return f
}

func TestSinkWorkbook(t *testing.T) {
	opts := xlsx.DefaultOptions()
	opts.Exclude = []string{"version"}
	messages := i18n.Messages{"owner": "Owner"}

	f := export2xlsx(t, opts, []Account{{
		ID:      1,
		Balance: decimal.RequireFromString("1234.5"),
		Rate:    0.25,
		Open:    true,
		Opened:  time.Date(2024, 5, 6, 7, 8, 0, 0, time.UTC),
		Owner:   &Owner{ID: 2, Name: "Ada"},
		Version: 9,
	}}, export.WithResolver(messages))

	assert.Equal(t, []string{"export"}, f.GetSheetList())

	rows, err := f.GetRows("export", excelize.Options{RawCellValue: true})
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, []string{"Account", "", "", "", "", "Owner"}, rows[0])
	assert.Equal(t, []string{"Id", "Balance", "Rate", "Open", "Opened", "Id", "Name"}, rows[1])
	assert.Equal(t, "1", rows[2][0])
	assert.Equal(t, "1234.5", rows[2][1])
	assert.Equal(t, "0.25", rows[2][2])
	assert.Equal(t, "1", rows[2][3])
	assert.Equal(t, "2", rows[2][5])
	assert.Equal(t, "Ada", rows[2][6])

	typ, err := f.GetCellType("export", "D3")
	require.NoError(t, err)
	assert.Equal(t, excelize.CellTypeBool, typ)
	open, err := f.GetCellValue("export", "D3")
	require.NoError(t, err)
	assert.Equal(t, "TRUE", open)

	merged, err := f.GetMergeCells("export")
	require.NoError(t, err)
	require.Len(t, merged, 2)
	assert.Equal(t, "A1", merged[0].GetStartAxis())
	assert.Equal(t, "E1", merged[0].GetEndAxis())
	assert.Equal(t, "F1", merged[1].GetStartAxis())
	assert.Equal(t, "G1", merged[1].GetEndAxis())
}

func TestSinkNumberFormats(t *testing.T) {
	f := export2xlsx(t, xlsx.DefaultOptions(), []Account{{ID: 1, Opened: time.Date(2024, 5, 6, 7, 8, 0, 0, time.UTC)}},
		export.WithExcluded("owner", "version"))

	tests := []struct {
		cell   string
		format string
	}{
		{cell: "A3", format: "0"},
		{cell: "B3", format: "#,##0.0000"},
		{cell: "C3", format: "0.00"},
		{cell: "E3", format: "dd/mm/yyyy hh:mm"},
	}
	for _, tt := range tests {
		t.Run(tt.cell, func(t *testing.T) {
			id, err := f.GetCellStyle("export", tt.cell)
			require.NoError(t, err)
			style, err := f.GetStyle(id)
			require.NoError(t, err)
			assert.Equal(t, tt.format, numberFormat(style))
		})
	}
}

func TestSinkWithoutHeader(t *testing.T) {
	f := export2xlsx(t, xlsx.Options{Sheet: "data", DateFormat: "yyyy-mm-dd"}, []Owner{{ID: 1, Name: "a"}, {ID: 2, Name: "b"}},
		export.WithHeader(false))

	rows, err := f.GetRows("data")
	require.NoError(t, err)
	assert.Equal(t, [][]string{{"1", "a"}, {"2", "b"}}, rows)

	merged, err := f.GetMergeCells("data")
	require.NoError(t, err)
	assert.Empty(t, merged)
}

func TestSinkSingleColumnBlockNotMerged(t *testing.T) {
	type Solo struct{ Value int }
	reg := meta.NewRegistry()
	require.NoError(t, reg.Register(reflectType[Solo](), meta.Element{}))

	f := export2xlsx(t, xlsx.DefaultOptions(), []Solo{{Value: 3}}, export.WithRegistry(reg))

	merged, err := f.GetMergeCells("export")
	require.NoError(t, err)
	assert.Empty(t, merged)
	v, err := f.GetCellValue("export", "A1")
	require.NoError(t, err)
	assert.Equal(t, "Solo", v)
}

func TestSinkUseBeforeInit(t *testing.T) {
	s := xlsx.New(xlsx.DefaultOptions())

	err := s.WriteValue(0, 0, "x")
	assert.True(t, errors.IsErrorCode(err, errors.ErrSinkState))
	_, err = s.WriteTo(&bytes.Buffer{})
	assert.True(t, errors.IsErrorCode(err, errors.ErrSinkState))
	assert.NoError(t, s.Close())
}
