package goderive

import (
	"fmt"
	"reflect"
)

// FieldDescriptor describes one field of a product type T: its source
// name, the codec of its value and an optional default. Build it with
// Field or FieldDefault.
type FieldDescriptor[T any] struct {
	name       string
	rename     string
	hasDefault bool
	encode     func(*T) Value
	decode     func(Value, *T) error
	setDefault func(*T)
	codec      any
}

// Field describes the field of T addressed by sel. The selector must
// return the address of a field of its argument, for example:
//
//	goderive.Field("firstName", func(u *User) *string { return &u.FirstName }, goderive.String())
func Field[T, F any](name string, sel func(*T) *F, c Codec[F]) FieldDescriptor[T] {
	if sel == nil || c == nil {
		panic("goderive.Field: selector and codec must not be nil")
	}
	return FieldDescriptor[T]{
		name:   name,
		codec:  c,
		encode: func(v *T) Value { return c.Encode(*sel(v)) },
		decode: func(raw Value, dst *T) error {
			f, err := c.Decode(raw)
			if err != nil {
				return err
			}
			*sel(dst) = f
			return nil
		},
	}
}

// FieldDefault is Field with a default used when the key is absent and the
// configuration enables defaults.
func FieldDefault[T, F any](name string, sel func(*T) *F, c Codec[F], def F) FieldDescriptor[T] {
	fd := Field(name, sel, c)
	fd.hasDefault = true
	fd.setDefault = func(dst *T) { *sel(dst) = def }
	return fd
}

// Rename pins the JSON key of this field. It takes precedence over the
// configuration's field name transform.
func (f FieldDescriptor[T]) Rename(key string) FieldDescriptor[T] {
	f.rename = key
	return f
}

// Name returns the source field name.
func (f FieldDescriptor[T]) Name() string { return f.name }

// Override returns the pinned key, if any.
func (f FieldDescriptor[T]) Override() (string, bool) { return f.rename, f.rename != "" }

// HasDefault reports whether a default was declared.
func (f FieldDescriptor[T]) HasDefault() bool { return f.hasDefault }

// key computes the JSON key under cfg.
func (f FieldDescriptor[T]) key(cfg *Config) string {
	if f.rename != "" {
		return f.rename
	}
	return cfg.FieldName(f.name)
}

// ProductDescriptor is the ordered field list of a product type.
type ProductDescriptor[T any] struct {
	typeName string
	fields   []FieldDescriptor[T]
}

// Product describes T by its fields in encoding order. An empty typeName
// defaults to the Go type name.
func Product[T any](typeName string, fields ...FieldDescriptor[T]) ProductDescriptor[T] {
	if typeName == "" {
		typeName = typeNameOf[T]()
	}
	return ProductDescriptor[T]{typeName: typeName, fields: append([]FieldDescriptor[T](nil), fields...)}
}

// TypeName returns the descriptor's type name.
func (d ProductDescriptor[T]) TypeName() string { return d.typeName }

// Fields returns a copy of the field list.
func (d ProductDescriptor[T]) Fields() []FieldDescriptor[T] {
	return append([]FieldDescriptor[T](nil), d.fields...)
}

// VariantDescriptor describes one variant of a sum type T.
type VariantDescriptor[T any] struct {
	tag     string
	rename  string
	project func(T) (Value, bool)
	decode  func(Value) (T, error)
	shape   ObjectShaped
	payload any
}

// Variant describes the variant tagged tag whose payload P is encoded by
// payload. wrap injects a payload into T; unwrap reports whether a T holds
// this variant and extracts its payload.
func Variant[T, P any](tag string, payload Codec[P], wrap func(P) T, unwrap func(T) (P, bool)) VariantDescriptor[T] {
	if payload == nil || wrap == nil || unwrap == nil {
		panic("goderive.Variant: payload, wrap and unwrap must not be nil")
	}
	vd := VariantDescriptor[T]{
		tag:     tag,
		payload: payload,
		project: func(t T) (Value, bool) {
			p, ok := unwrap(t)
			if !ok {
				return Value{}, false
			}
			return payload.Encode(p), true
		},
		decode: func(v Value) (T, error) {
			p, err := payload.Decode(v)
			if err != nil {
				var zero T
				return zero, err
			}
			return wrap(p), nil
		},
	}
	if s, ok := payload.(ObjectShaped); ok {
		vd.shape = s
	}
	return vd
}

// Case is Variant for sealed interfaces: P must implement T, and a T holds
// this variant when its dynamic type is P.
func Case[T, P any](tag string, payload Codec[P]) VariantDescriptor[T] {
	if _, ok := any(*new(P)).(T); !ok {
		panic(fmt.Sprintf("goderive.Case: %s does not implement %s", typeNameOf[P](), typeNameOf[T]()))
	}
	return Variant(tag, payload,
		func(p P) T { return any(p).(T) },
		func(t T) (P, bool) {
			p, ok := any(t).(P)
			return p, ok
		},
	)
}

// Rename pins the JSON tag of this variant. It takes precedence over the
// configuration's constructor name transform.
func (v VariantDescriptor[T]) Rename(tag string) VariantDescriptor[T] {
	v.rename = tag
	return v
}

// Tag returns the source tag.
func (v VariantDescriptor[T]) Tag() string { return v.tag }

func (v VariantDescriptor[T]) key(cfg *Config) string {
	if v.rename != "" {
		return v.rename
	}
	return cfg.ConstructorName(v.tag)
}

// SumDescriptor is the ordered variant list of a closed sum type.
type SumDescriptor[T any] struct {
	typeName string
	variants []VariantDescriptor[T]
}

// Sum describes T by its variants. An empty typeName defaults to the Go
// type name.
func Sum[T any](typeName string, variants ...VariantDescriptor[T]) SumDescriptor[T] {
	if typeName == "" {
		typeName = typeNameOf[T]()
	}
	return SumDescriptor[T]{typeName: typeName, variants: append([]VariantDescriptor[T](nil), variants...)}
}

// TypeName returns the descriptor's type name.
func (d SumDescriptor[T]) TypeName() string { return d.typeName }

// Variants returns a copy of the variant list.
func (d SumDescriptor[T]) Variants() []VariantDescriptor[T] {
	return append([]VariantDescriptor[T](nil), d.variants...)
}

func typeNameOf[T any]() string { return reflect.TypeFor[T]().String() }
