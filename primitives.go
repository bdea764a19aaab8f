package goderive

import (
	"math"
	"strconv"
)

// String returns the codec for JSON strings.
func String() Codec[string] { return stringCodec{} }

// Bool returns the codec for JSON booleans.
func Bool() Codec[bool] { return boolCodec{} }

// Int returns the codec for integral JSON numbers that fit in an int.
func Int() Codec[int] { return intCodec{} }

// Int64 returns the codec for integral JSON numbers that fit in an int64.
func Int64() Codec[int64] { return int64Codec{} }

// Uint64 returns the codec for non-negative integral JSON numbers.
func Uint64() Codec[uint64] { return uint64Codec{} }

// Float64 returns the codec for JSON numbers as float64. Non-finite values
// encode as null.
func Float64() Codec[float64] { return float64Codec{} }

// Raw returns the identity codec over Value.
func Raw() Codec[Value] { return rawCodec{} }

type stringCodec struct{}

func (stringCodec) Encode(s string) Value { return NewString(s) }
func (stringCodec) Decode(v Value) (string, error) {
	s, ok := v.Str()
	if !ok {
		return "", TypeMismatch("string", v.Kind())
	}
	return s, nil
}

type boolCodec struct{}

func (boolCodec) Encode(b bool) Value { return NewBool(b) }
func (boolCodec) Decode(v Value) (bool, error) {
	b, ok := v.Bool()
	if !ok {
		return false, TypeMismatch("bool", v.Kind())
	}
	return b, nil
}

type int64Codec struct{}

func (int64Codec) Encode(n int64) Value { return NewInt(n) }
func (int64Codec) Decode(v Value) (int64, error) {
	text, ok := v.Number()
	if !ok {
		return 0, TypeMismatch("integer", v.Kind())
	}
	n, err := strconv.ParseInt(text, 10, 64)
	if err != nil {
		// Accept integral values written with a fraction or exponent (2.0, 1e3).
		f, ferr := strconv.ParseFloat(text, 64)
		if ferr != nil || f != math.Trunc(f) || f < math.MinInt64 || f >= -math.MinInt64 {
			return 0, Conversion("not an int64: "+text, err)
		}
		return int64(f), nil
	}
	return n, nil
}

type intCodec struct{}

func (intCodec) Encode(n int) Value { return NewInt(int64(n)) }
func (intCodec) Decode(v Value) (int, error) {
	n, err := int64Codec{}.Decode(v)
	if err != nil {
		return 0, err
	}
	if int64(int(n)) != n {
		return 0, Conversion("integer overflows int", nil)
	}
	return int(n), nil
}

type uint64Codec struct{}

func (uint64Codec) Encode(n uint64) Value { return NewUint(n) }
func (uint64Codec) Decode(v Value) (uint64, error) {
	text, ok := v.Number()
	if !ok {
		return 0, TypeMismatch("integer", v.Kind())
	}
	n, err := strconv.ParseUint(text, 10, 64)
	if err != nil {
		f, ferr := strconv.ParseFloat(text, 64)
		if ferr != nil || f != math.Trunc(f) || f < 0 || f >= 0x1p64 {
			return 0, Conversion("not a uint64: "+text, err)
		}
		return uint64(f), nil
	}
	return n, nil
}

type float64Codec struct{}

func (float64Codec) Encode(f float64) Value { return NewFloat(f) }
func (float64Codec) Decode(v Value) (float64, error) {
	text, ok := v.Number()
	if !ok {
		return 0, TypeMismatch("number", v.Kind())
	}
	f, err := strconv.ParseFloat(text, 64)
	if err != nil {
		return 0, Conversion("not a float64: "+text, err)
	}
	return f, nil
}

type rawCodec struct{}

func (rawCodec) Encode(v Value) Value           { return v }
func (rawCodec) Decode(v Value) (Value, error) { return v, nil }

// SliceOf returns a codec for JSON arrays whose elements use elem. A nil
// slice encodes as the empty array.
func SliceOf[T any](elem Codec[T]) Codec[[]T] { return sliceCodec[T]{elem: elem} }

type sliceCodec[T any] struct{ elem Codec[T] }

func (c sliceCodec[T]) refs() []refTarget { return refsOf(c.elem) }

func (c sliceCodec[T]) Encode(xs []T) Value {
	items := make([]Value, len(xs))
	for i, x := range xs {
		items[i] = c.elem.Encode(x)
	}
	return Value{kind: KindArray, items: items}
}

func (c sliceCodec[T]) Decode(v Value) ([]T, error) {
	if v.Kind() != KindArray {
		return nil, TypeMismatch("array", v.Kind())
	}
	items := v.Items()
	out := make([]T, len(items))
	for i, it := range items {
		x, err := c.elem.Decode(it)
		if err != nil {
			return nil, withSegment(err, Index(i))
		}
		out[i] = x
	}
	return out, nil
}

// Nullable returns a codec mapping a nil pointer to null and any other
// value through elem.
func Nullable[T any](elem Codec[T]) Codec[*T] { return nullableCodec[T]{elem: elem} }

type nullableCodec[T any] struct{ elem Codec[T] }

func (c nullableCodec[T]) refs() []refTarget { return refsOf(c.elem) }

func (c nullableCodec[T]) Encode(p *T) Value {
	if p == nil {
		return Null()
	}
	return c.elem.Encode(*p)
}

func (c nullableCodec[T]) Decode(v Value) (*T, error) {
	if v.IsNull() {
		return nil, nil
	}
	x, err := c.elem.Decode(v)
	if err != nil {
		return nil, err
	}
	return &x, nil
}
