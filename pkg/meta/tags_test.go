// Test Type: Unit Test
// Description: Tests for export struct tag parsing

package meta_test

import (
	"reflect"
	"testing"

	"github.com/arthur-debert/tabexport/pkg/errors"
	"github.com/arthur-debert/tabexport/pkg/meta"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseField(t *testing.T) {
	tests := []struct {
		name     string
		tag      reflect.StructTag
		validate func(t *testing.T, f *meta.Field)
	}{
		{
			name: "no_tags",
			tag:  `json:"name"`,
			validate: func(t *testing.T, f *meta.Field) {
				assert.False(t, f.IsUnexportable())
				assert.Nil(t, f.SubProperties())
				assert.Equal(t, meta.MaxPosition, f.Position())
				assert.Empty(t, f.LabelKey())
			},
		},
		{
			name: "unexportable",
			tag:  `export:"-"`,
			validate: func(t *testing.T, f *meta.Field) {
				assert.True(t, f.IsUnexportable())
			},
		},
		{
			name: "single_scalar_options",
			tag:  `export:",position=2,prefix=order.status.,label=order.status,format=%03d"`,
			validate: func(t *testing.T, f *meta.Field) {
				require.NotNil(t, f.Single)
				assert.Equal(t, "", f.Single.Name)
				assert.Equal(t, 2, f.Position())
				assert.Equal(t, "order.status.", f.PrefixKey("status"))
				assert.Equal(t, "order.status", f.LabelKey())
				assert.Equal(t, "%03d", f.Format("status"))
			},
		},
		{
			name: "single_named_sub_property",
			tag:  `export:"name,pos=1"`,
			validate: func(t *testing.T, f *meta.Field) {
				subs := f.SubProperties()
				require.Len(t, subs, 1)
				assert.Equal(t, "name", subs[0].Name)
				assert.Equal(t, 1, subs[0].Pos())
				assert.Empty(t, f.PrefixKey("other"))
			},
		},
		{
			name: "property_list",
			tag:  `exportprops:"city,position=0,label=addr.city; zip,position=1" exportset:"label=addr,position=4"`,
			validate: func(t *testing.T, f *meta.Field) {
				subs := f.SubProperties()
				require.Len(t, subs, 2)
				assert.Equal(t, "city", subs[0].Name)
				assert.Equal(t, "addr.city", subs[0].LabelKey)
				assert.Equal(t, "zip", subs[1].Name)
				assert.Equal(t, 1, subs[1].Pos())
				assert.Equal(t, "addr", f.LabelKey())
				assert.Equal(t, 4, f.Position())
			},
		},
		{
			name: "list_wins_over_single_for_sub_properties",
			tag:  `export:"name,label=single,position=3" exportprops:"city;zip" exportset:"label=multi,position=9"`,
			validate: func(t *testing.T, f *meta.Field) {
				subs := f.SubProperties()
				require.Len(t, subs, 2)
				assert.Equal(t, "city", subs[0].Name)
				// list label wins, single position wins
				assert.Equal(t, "multi", f.LabelKey())
				assert.Equal(t, 3, f.Position())
			},
		},
		{
			name: "empty_name_entry_matches_any_property",
			tag:  `exportprops:",prefix=any.;zip,prefix=zip."`,
			validate: func(t *testing.T, f *meta.Field) {
				assert.Equal(t, "any.", f.PrefixKey("zip"))
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f, err := meta.ParseField(tt.tag)
			require.NoError(t, err)
			tt.validate(t, f)
		})
	}
}

func TestParseFieldErrors(t *testing.T) {
	tests := []struct {
		name string
		tag  reflect.StructTag
	}{
		{"unknown_option", `export:",colour=red"`},
		{"position_not_integer", `export:",position=first"`},
		{"option_without_value", `export:",position"`},
		{"unexportable_with_props", `export:"-" exportprops:"city"`},
		{"set_without_props", `exportset:"label=x"`},
		{"empty_props", `exportprops:" ; "`},
		{"unknown_set_option", `exportprops:"city" exportset:"prefix=x"`},
		{"option_as_name", `export:"position=1"`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := meta.ParseField(tt.tag)
			require.Error(t, err)
			assert.True(t, errors.IsErrorCode(err, errors.ErrTagInvalid), "got %v", err)
		})
	}
}
