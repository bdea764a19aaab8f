package goderive

import (
	"fmt"
	"sync"
)

// Encoder turns a T into a Value. Encode must be total and pure: it never
// fails and the same input always yields the same output.
type Encoder[T any] interface {
	Encode(v T) Value
}

// Decoder turns a Value into a T or reports a *DecodeError.
type Decoder[T any] interface {
	Decode(v Value) (T, error)
}

// Codec pairs an Encoder and a Decoder for the same type.
type Codec[T any] interface {
	Encoder[T]
	Decoder[T]
}

// ObjectShaped is implemented by codecs whose encoder always produces an
// object. ObjectKeys lists every key the encoder may emit. Sum types using
// a discriminator field require object-shaped payload codecs.
type ObjectShaped interface {
	ObjectKeys() []string
}

// EncoderFunc adapts a function to Encoder.
type EncoderFunc[T any] func(T) Value

func (f EncoderFunc[T]) Encode(v T) Value { return f(v) }

// DecoderFunc adapts a function to Decoder.
type DecoderFunc[T any] func(Value) (T, error)

func (f DecoderFunc[T]) Decode(v Value) (T, error) { return f(v) }

// NewCodec pairs enc and dec.
func NewCodec[T any](enc Encoder[T], dec Decoder[T]) Codec[T] {
	return codecPair[T]{enc: enc, dec: dec}
}

type codecPair[T any] struct {
	enc Encoder[T]
	dec Decoder[T]
}

func (c codecPair[T]) Encode(v T) Value           { return c.enc.Encode(v) }
func (c codecPair[T]) Decode(v Value) (T, error) { return c.dec.Decode(v) }

func (c codecPair[T]) refs() []refTarget { return append(refsOf(c.enc), refsOf(c.dec)...) }

// Map transforms the successful result of d with the pure function f.
func Map[A, B any](d Decoder[A], f func(A) B) Decoder[B] {
	return DecoderFunc[B](func(v Value) (B, error) {
		a, err := d.Decode(v)
		if err != nil {
			var zero B
			return zero, err
		}
		return f(a), nil
	})
}

// FlatMap decodes an A with d, then runs the decoder chosen by f on the
// same input.
func FlatMap[A, B any](d Decoder[A], f func(A) Decoder[B]) Decoder[B] {
	return DecoderFunc[B](func(v Value) (B, error) {
		a, err := d.Decode(v)
		if err != nil {
			var zero B
			return zero, err
		}
		return f(a).Decode(v)
	})
}

// Try decodes an A with d and converts it with f. An error returned by f,
// or a panic raised inside it, becomes a conversion DecodeError. A
// *DecodeError returned by f is passed through unchanged.
//
// Try is the only place where panics are absorbed into the error channel.
func Try[A, B any](d Decoder[A], f func(A) (B, error)) Decoder[B] {
	return DecoderFunc[B](func(v Value) (B, error) {
		a, err := d.Decode(v)
		if err != nil {
			var zero B
			return zero, err
		}
		return convert(a, f)
	})
}

func convert[A, B any](a A, f func(A) (B, error)) (out B, err error) {
	defer func() {
		if r := recover(); r != nil {
			var zero B
			out = zero
			perr, ok := r.(error)
			if !ok {
				perr = fmt.Errorf("%v", r)
			}
			err = Conversion(fmt.Sprintf("panic: %v", r), perr)
		}
	}()
	b, ferr := f(a)
	if ferr != nil {
		var zero B
		if _, ok := AsDecodeError(ferr); ok {
			return zero, ferr
		}
		return zero, Conversion(ferr.Error(), ferr)
	}
	return b, nil
}

// Contramap adapts an Encoder[B] to an Encoder[A] through the pure
// function f.
func Contramap[A, B any](e Encoder[B], f func(A) B) Encoder[A] {
	return EncoderFunc[A](func(a A) Value { return e.Encode(f(a)) })
}

// Transform derives a Codec[B] from a Codec[A]: decode converts with Try
// semantics, encode maps B back to A.
func Transform[A, B any](c Codec[A], decode func(A) (B, error), encode func(B) A) Codec[B] {
	return NewCodec[B](Contramap[B, A](c, encode), Try[A, B](c, decode))
}

// Lazy defers building a codec until first use. It allows recursive
// types to refer to their own codec.
func Lazy[T any](build func() Codec[T]) Codec[T] {
	return &lazyCodec[T]{build: build}
}

type lazyCodec[T any] struct {
	once  sync.Once
	build func() Codec[T]
	c     Codec[T]
}

func (l *lazyCodec[T]) get() Codec[T] {
	l.once.Do(func() { l.c = l.build() })
	return l.c
}

func (l *lazyCodec[T]) Encode(v T) Value           { return l.get().Encode(v) }
func (l *lazyCodec[T]) Decode(v Value) (T, error) { return l.get().Decode(v) }

// AsObject declares that c always encodes to an object with at most the
// given keys, so it can serve as a discriminated sum payload. The caller
// guarantees the encoder honors the declaration.
func AsObject[T any](c Codec[T], keys ...string) Codec[T] {
	return objectCodec[T]{Codec: c, keys: append([]string(nil), keys...)}
}

type objectCodec[T any] struct {
	Codec[T]
	keys []string
}

func (o objectCodec[T]) ObjectKeys() []string { return append([]string(nil), o.keys...) }

func (o objectCodec[T]) refs() []refTarget { return refsOf(o.Codec) }
