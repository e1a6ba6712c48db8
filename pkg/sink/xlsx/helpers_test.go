package xlsx_test

import (
	"reflect"

	"github.com/xuri/excelize/v2"
)

func reflectType[T any]() reflect.Type {
	return reflect.TypeOf((*T)(nil)).Elem()
}

// numberFormat returns the format code of style; simple codes are stored
// as built-in format ids.
func numberFormat(style *excelize.Style) string {
	if style.CustomNumFmt != nil {
		return *style.CustomNumFmt
	}
	return map[int]string{1: "0", 2: "0.00"}[style.NumFmt]
}
