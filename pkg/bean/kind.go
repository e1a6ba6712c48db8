package bean

import (
	"database/sql"
	"reflect"
	"time"

	"github.com/shopspring/decimal"
)

// Kind classifies a property type. Every kind but Composite is written as a
// single cell; Composite values are expanded recursively. The set is closed:
// adding a scalar type means editing Classify and Scalar together.
type Kind int

const (
	Composite Kind = iota
	Integral
	Floating
	Decimal
	Boolean
	Text
	Time
)

var kindNames = [...]string{"composite", "integral", "floating", "decimal", "boolean", "text", "time"}

func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return "unknown"
	}
	return kindNames[k]
}

var (
	timeType        = reflect.TypeOf(time.Time{})
	decimalType     = reflect.TypeOf(decimal.Decimal{})
	nullDecimalType = reflect.TypeOf(decimal.NullDecimal{})

	// nullable variants from database/sql
	nullTypes = map[reflect.Type]Kind{
		reflect.TypeOf(sql.NullString{}):  Text,
		reflect.TypeOf(sql.NullInt16{}):   Integral,
		reflect.TypeOf(sql.NullInt32{}):   Integral,
		reflect.TypeOf(sql.NullInt64{}):   Integral,
		reflect.TypeOf(sql.NullByte{}):    Integral,
		reflect.TypeOf(sql.NullFloat64{}): Floating,
		reflect.TypeOf(sql.NullBool{}):    Boolean,
		reflect.TypeOf(sql.NullTime{}):    Time,
		nullDecimalType:                   Decimal,
	}
)

// Classify returns the kind of t.
func Classify(t reflect.Type) Kind {
	switch t {
	case timeType:
		return Time
	case decimalType:
		return Decimal
	}
	if k, ok := nullTypes[t]; ok {
		return k
	}

	switch t.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return Integral
	case reflect.Float32, reflect.Float64:
		return Floating
	case reflect.Bool:
		return Boolean
	case reflect.String:
		return Text
	case reflect.Pointer:
		return Classify(t.Elem())
	}
	return Composite
}

// IsPrimitive reports whether values of t are written as a single cell.
func IsPrimitive(t reflect.Type) bool {
	return Classify(t) != Composite
}

// Scalar converts a scalar value to its canonical Go form: int64 or uint64
// for integral kinds, float64, decimal.Decimal, bool, string or time.Time.
// Nil pointers, nil interfaces and invalid nullable variants become nil.
// Composite values are returned as they are.
func Scalar(v reflect.Value) any {
	for v.IsValid() && (v.Kind() == reflect.Pointer || v.Kind() == reflect.Interface) {
		if v.IsNil() {
			return nil
		}
		v = v.Elem()
	}
	if !v.IsValid() {
		return nil
	}

	switch v.Type() {
	case timeType:
		return v.Interface().(time.Time)
	case decimalType:
		return v.Interface().(decimal.Decimal)
	}

	if _, ok := nullTypes[v.Type()]; ok {
		return nullScalar(v.Interface())
	}

	switch v.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return v.Int()
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return v.Uint()
	case reflect.Float32, reflect.Float64:
		return v.Float()
	case reflect.Bool:
		return v.Bool()
	case reflect.String:
		return v.String()
	}

	if v.CanInterface() {
		return v.Interface()
	}
	return nil
}

func nullScalar(x any) any {
	switch n := x.(type) {
	case sql.NullString:
		if n.Valid {
			return n.String
		}
	case sql.NullInt16:
		if n.Valid {
			return int64(n.Int16)
		}
	case sql.NullInt32:
		if n.Valid {
			return int64(n.Int32)
		}
	case sql.NullInt64:
		if n.Valid {
			return n.Int64
		}
	case sql.NullByte:
		if n.Valid {
			return int64(n.Byte)
		}
	case sql.NullFloat64:
		if n.Valid {
			return n.Float64
		}
	case sql.NullBool:
		if n.Valid {
			return n.Bool
		}
	case sql.NullTime:
		if n.Valid {
			return n.Time
		}
	case decimal.NullDecimal:
		if n.Valid {
			return n.Decimal
		}
	}
	return nil
}
